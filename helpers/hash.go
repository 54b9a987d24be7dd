package helpers

import (
	"fmt"

	"github.com/byte4ever/hbs_renderer/digester"
)

func hashHelpers() []Helper {
	return []Helper{
		{Name: "hash", MinArgs: 2, MaxArgs: 3, Fn: hashValue},
	}
}

// hashValue digests a string value. The encoding defaults to
// hex.
func hashValue(args []any, _ map[string]any) (any, error) {
	var data []byte

	switch tv := args[0].(type) {
	case []byte:
		data = tv
	default:
		if !isString(tv) {
			return nil, fmt.Errorf(
				"%w: value must be a string, got %T", ErrArgument, args[0],
			)
		}

		data = []byte(toString(tv))
	}

	out, err := digester.Sum(
		data,
		toString(args[1]),
		toString(argAt(args, 2)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArgument, err)
	}

	return out, nil
}
