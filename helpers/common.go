package helpers

import (
	"fmt"
	"reflect"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/iancoleman/strcase"
)

// commonHelpers are registered by every renderer. The logic
// helpers also work as blocks.
func commonHelpers() []Helper {
	return []Helper{
		{Name: "uppercase", MinArgs: 1, MaxArgs: 1, Fn: stringFn(strings.ToUpper)},
		{Name: "lowercase", MinArgs: 1, MaxArgs: 1, Fn: stringFn(strings.ToLower)},
		{Name: "capitalize", MinArgs: 1, MaxArgs: 1, Fn: upperFirst},
		{Name: "camelcase", MinArgs: 1, MaxArgs: 1, Fn: stringFn(strcase.ToLowerCamel)},
		{Name: "pascalcase", MinArgs: 1, MaxArgs: 1, Fn: stringFn(strcase.ToCamel)},
		{Name: "snakecase", MinArgs: 1, MaxArgs: 1, Fn: stringFn(strcase.ToSnake)},
		{Name: "dashcase", MinArgs: 1, MaxArgs: 1, Fn: stringFn(strcase.ToKebab)},
		{Name: "trim", MinArgs: 1, MaxArgs: 1, Fn: stringFn(strings.TrimSpace)},
		{Name: "replace", MinArgs: 3, MaxArgs: 3, Fn: replace},
		{Name: "default", MinArgs: 1, MaxArgs: Variadic, Fn: firstDefined},
		{Name: "eq", MinArgs: 2, MaxArgs: 2, Fn: eq, Block: true},
		{Name: "ne", MinArgs: 2, MaxArgs: 2, Fn: ne, Block: true},
		{Name: "and", MinArgs: 1, MaxArgs: Variadic, Fn: and, Block: true},
		{Name: "or", MinArgs: 1, MaxArgs: Variadic, Fn: or, Block: true},
		{Name: "not", MinArgs: 1, MaxArgs: 1, Fn: not, Block: true},
		{Name: "JSONstringify", MinArgs: 1, MaxArgs: 2, Fn: jsonStringify},
	}
}

func stringFn(fn func(string) string) Func {
	return func(args []any, _ map[string]any) (any, error) {
		return fn(toString(args[0])), nil
	}
}

func replace(args []any, _ map[string]any) (any, error) {
	return strings.ReplaceAll(
		toString(args[0]), toString(args[1]), toString(args[2]),
	), nil
}

func firstDefined(args []any, _ map[string]any) (any, error) {
	for _, arg := range args {
		if arg != nil {
			return arg, nil
		}
	}

	return "", nil
}

func eq(args []any, _ map[string]any) (any, error) {
	return equal(args[0], args[1]), nil
}

func ne(args []any, _ map[string]any) (any, error) {
	return !equal(args[0], args[1]), nil
}

// equal compares numbers by value, strings by content and
// anything else structurally.
func equal(a, b any) bool {
	if isNumber(a) && isNumber(b) {
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)

		return fa == fb
	}

	if isString(a) && isString(b) {
		return toString(a) == toString(b)
	}

	return reflect.DeepEqual(a, b)
}

func and(args []any, _ map[string]any) (any, error) {
	for _, arg := range args {
		if !truthy(arg) {
			return false, nil
		}
	}

	return true, nil
}

func or(args []any, _ map[string]any) (any, error) {
	for _, arg := range args {
		if truthy(arg) {
			return true, nil
		}
	}

	return false, nil
}

func not(args []any, _ map[string]any) (any, error) {
	return !truthy(args[0]), nil
}

// jsonStringify encodes the value as JSON, indented by the
// optional numeric second argument.
func jsonStringify(args []any, _ map[string]any) (any, error) {
	var (
		out []byte
		err error
	)

	if n := toInt(argAt(args, 1)); n > 0 {
		out, err = json.MarshalIndent(args[0], "", strings.Repeat(" ", n))
	} else {
		out, err = json.Marshal(args[0])
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArgument, err)
	}

	return string(out), nil
}
