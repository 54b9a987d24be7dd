package helpers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
)

// DocumentSeparator is emitted by the "---" helper.
const DocumentSeparator = "---"

var lineBreak = regexp.MustCompile(`\r\n|\r|\n`)

func documentHelpers() []Helper {
	return []Helper{
		{Name: "yaml", MinArgs: 1, MaxArgs: 1, Fn: toYAML},
		{Name: "indentBlob", MinArgs: 2, MaxArgs: 2, Fn: indentBlob},
		{Name: DocumentSeparator, MinArgs: 0, MaxArgs: 0, Fn: separator},
	}
}

func toYAML(args []any, _ map[string]any) (any, error) {
	out, err := yaml.MarshalWithOptions(
		args[0],
		yaml.Indent(2),
		yaml.IndentSequence(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArgument, err)
	}

	return string(out), nil
}

// indentBlob inserts the indent after every line break of the
// value, keeping the break style. A numeric indent means that
// many spaces; any other indent, numeric-looking strings
// included, is inserted literally.
func indentBlob(args []any, _ map[string]any) (any, error) {
	indent := ""

	if isNumber(args[0]) {
		if n := toInt(args[0]); n > 0 {
			indent = strings.Repeat(" ", n)
		}
	} else {
		indent = toString(args[0])
	}

	return lineBreak.ReplaceAllStringFunc(
		toString(args[1]),
		func(br string) string { return br + indent },
	), nil
}

func separator(_ []any, _ map[string]any) (any, error) {
	return DocumentSeparator, nil
}
