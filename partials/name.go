package partials

import "strings"

// Name derives the partial name of match for pattern. The
// pattern's literal prefix (before the first "*") and literal
// suffix (after the last "*") are each removed once from match,
// then backslashes become forward slashes.
//
// A pattern without "*" has an empty prefix and the whole
// pattern as suffix, so an exact match yields "".
func Name(pattern, match string) string {
	prefix, suffix := "", pattern

	if first := strings.Index(pattern, "*"); first >= 0 {
		prefix = pattern[:first]
		suffix = pattern[strings.LastIndex(pattern, "*")+1:]
	}

	name := strings.Replace(match, prefix, "", 1)
	name = strings.Replace(name, suffix, "", 1)

	return strings.ReplaceAll(name, `\`, "/")
}
