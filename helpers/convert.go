package helpers

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

// toString renders v the way a script engine would when
// concatenating: nil is empty, numbers use the shortest form,
// sequences are comma joined.
func toString(v any) string {
	if v == nil {
		return ""
	}

	switch tv := v.(type) {
	case string:
		return tv
	case []byte:
		return string(tv)
	case bool:
		return strconv.FormatBool(tv)
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for idx := range parts {
			parts[idx] = toString(rv.Index(idx).Interface())
		}

		return strings.Join(parts, ",")
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return ""
		}

		return toString(rv.Elem().Interface())
	default:
		return "[object Object]"
	}
}

// isNumber reports whether v holds a numeric kind.
func isNumber(v any) bool {
	if v == nil {
		return false
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// toFloat converts numbers and numeric strings.
func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()

		return f, !math.IsNaN(f)
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}

		return f, true
	default:
		return 0, false
	}
}

// toInt truncates toFloat; anything unconvertible is 0.
func toInt(v any) int {
	f, ok := toFloat(v)
	if !ok || math.IsInf(f, 0) {
		return 0
	}

	return int(f)
}

// Truthy reports whether a helper result selects the main branch
// of a block.
func Truthy(v any) bool {
	return truthy(v)
}

// truthy follows script truthiness: nil, false, zero, NaN and
// the empty string are false; everything else is true.
func truthy(v any) bool {
	if v == nil {
		return false
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return false
		}

		return true
	}

	if isNumber(v) {
		f, _ := toFloat(v)

		return f != 0 && !math.IsNaN(f)
	}

	return true
}

// isString reports whether v has a string kind.
func isString(v any) bool {
	return v != nil && reflect.ValueOf(v).Kind() == reflect.String
}

// argAt returns args[idx] or nil when absent.
func argAt(args []any, idx int) any {
	if idx < len(args) {
		return args[idx]
	}

	return nil
}
