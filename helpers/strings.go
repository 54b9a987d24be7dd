package helpers

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

func stringHelpers() []Helper {
	return []Helper{
		{Name: "upperFirst", MinArgs: 1, MaxArgs: 1, Fn: upperFirst},
		{Name: "lowerFirst", MinArgs: 1, MaxArgs: 1, Fn: lowerFirst},
		{Name: "repeat", MinArgs: 1, MaxArgs: 2, Fn: repeat},
		{Name: "abbreviate", MinArgs: 1, MaxArgs: 2, Fn: abbreviate},
		{Name: "concat", MinArgs: 0, MaxArgs: Variadic, Fn: concat},
	}
}

func upperFirst(args []any, _ map[string]any) (any, error) {
	return mapFirst(toString(args[0]), unicode.ToUpper), nil
}

func lowerFirst(args []any, _ map[string]any) (any, error) {
	return mapFirst(toString(args[0]), unicode.ToLower), nil
}

func mapFirst(s string, fn func(rune) rune) string {
	if s == "" {
		return s
	}

	r, size := utf8.DecodeRuneInString(s)

	return string(fn(r)) + s[size:]
}

// repeat concatenates the value count times. A missing or
// non-numeric count repeats zero times.
func repeat(args []any, _ map[string]any) (any, error) {
	count := toInt(argAt(args, 1))
	if count < 1 {
		return "", nil
	}

	return strings.Repeat(toString(args[0]), count), nil
}

// abbreviate takes the first letter of every kebab-case word,
// uppercased and followed by the separator. The separator comes
// from the "separator" hash argument or the second positional
// argument.
func abbreviate(args []any, hash map[string]any) (any, error) {
	sep := hash["separator"]
	if !truthy(sep) {
		sep = argAt(args, 1)
	}

	separator := ""
	if truthy(sep) {
		separator = toString(sep)
	}

	var sb strings.Builder

	for _, word := range strings.Split(strcase.ToKebab(toString(args[0])), "-") {
		if word == "" {
			continue
		}

		r, _ := utf8.DecodeRuneInString(word)
		sb.WriteRune(unicode.ToUpper(r))
		sb.WriteString(separator)
	}

	return sb.String(), nil
}

func concat(args []any, _ map[string]any) (any, error) {
	var sb strings.Builder

	for _, arg := range args {
		sb.WriteString(toString(arg))
	}

	return sb.String(), nil
}
