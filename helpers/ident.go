package helpers

import (
	"strings"

	"github.com/google/uuid"
)

// NoDash is the uuid style without hyphens.
const NoDash = "nodash"

func identHelpers() []Helper {
	return []Helper{
		{Name: "uuid", MinArgs: 0, MaxArgs: 1, Fn: newUUID},
	}
}

func newUUID(args []any, _ map[string]any) (any, error) {
	id := uuid.NewString()

	if toString(argAt(args, 0)) == NoDash {
		return strings.ReplaceAll(id, "-", ""), nil
	}

	return id, nil
}
