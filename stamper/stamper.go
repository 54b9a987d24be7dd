package stamper

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/hbs_renderer/fileset"
)

// ErrVariable is returned for a variable not in NAME=VALUE form.
var ErrVariable = errors.New("variable must be NAME=VALUE")

// Stamps maps stamp keys to their values.
type Stamps map[string]any

// Load reads the stamp files and merges them in order, later
// files overriding earlier ones. Lines without a space are
// skipped.
func Load(ctx context.Context, infoFiles []string) (Stamps, error) {
	const errCtx = "loading stamps"

	contents, err := fileset.Read(ctx, infoFiles, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	stamps := make(Stamps)

	for _, content := range contents {
		for _, line := range strings.Split(content, "\n") {
			key, val, ok := strings.Cut(strings.TrimSuffix(line, "\r"), " ")
			if ok {
				stamps[key] = val
			}
		}
	}

	return stamps, nil
}

// Expand substitutes {KEY} placeholders in format.
func (st Stamps) Expand(format string) string {
	return fasttemplate.ExecuteStringStd(format, "{", "}", st)
}

// Variables parses NAME=VALUE definitions, expanding each value
// against the stamps. Later definitions override earlier ones.
func (st Stamps) Variables(defs []string) (map[string]any, error) {
	const errCtx = "resolving variables"

	vars := make(map[string]any, len(defs))

	for _, def := range defs {
		name, val, ok := strings.Cut(def, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%s: %w, got %q", errCtx, ErrVariable, def)
		}

		vars[name] = st.Expand(val)
	}

	return vars, nil
}

// Merge copies layers into one map, later layers winning.
func Merge(layers ...map[string]any) map[string]any {
	out := make(map[string]any)

	for _, layer := range layers {
		for key, val := range layer {
			out[key] = val
		}
	}

	return out
}
