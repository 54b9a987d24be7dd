package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func pathHelpers() []Helper {
	return []Helper{
		{Name: "normalizePath", MinArgs: 1, MaxArgs: 1, Fn: normalizePath},
		{Name: "joinPath", MinArgs: 0, MaxArgs: Variadic, Fn: joinPath},
	}
}

func normalizePath(args []any, _ map[string]any) (any, error) {
	if !isString(args[0]) {
		return nil, fmt.Errorf(
			"%w: path must be a string, got %T", ErrArgument, args[0],
		)
	}

	return normalize(toString(args[0])), nil
}

// joinPath drops falsy segments and joins the rest.
func joinPath(args []any, _ map[string]any) (any, error) {
	segments := make([]string, 0, len(args))

	for idx, arg := range args {
		if !truthy(arg) {
			continue
		}

		if !isString(arg) {
			return nil, fmt.Errorf(
				"%w: segment %d must be a string, got %T",
				ErrArgument, idx, arg,
			)
		}

		segments = append(segments, toString(arg))
	}

	return normalize(strings.Join(segments, string(filepath.Separator))), nil
}

// normalize cleans p with the platform separator, keeping a
// trailing separator. The empty path is ".".
func normalize(p string) string {
	if p == "" {
		return "."
	}

	p = filepath.FromSlash(p)
	cleaned := filepath.Clean(p)

	if os.IsPathSeparator(p[len(p)-1]) &&
		!os.IsPathSeparator(cleaned[len(cleaned)-1]) {
		cleaned += string(filepath.Separator)
	}

	return cleaned
}
