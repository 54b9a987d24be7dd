package templating

import (
	"fmt"
	"strconv"
	"strings"
)

// aliasSep joins a helper name and the call shape into the name
// the call is registered under.
const aliasSep = "__"

// blockMark tags the alias of a helper opened as a block.
const blockMark = "b"

// alias is one helper call shape found in a template.
type alias struct {
	helper string
	args   int
	block  bool
}

// name returns an identifier the handlebars lexer accepts. Bytes
// outside [A-Za-z0-9_] are hex escaped, so "---" becomes
// "_2d_2d_2d".
func (al alias) name() string {
	var sb strings.Builder

	for idx := 0; idx < len(al.helper); idx++ {
		ch := al.helper[idx]

		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z',
			ch >= '0' && ch <= '9', ch == '_':
			sb.WriteByte(ch)
		default:
			fmt.Fprintf(&sb, "_%02x", ch)
		}
	}

	sb.WriteString(aliasSep)

	if al.block {
		sb.WriteString(blockMark)
	}

	sb.WriteString(strconv.Itoa(al.args))

	return sb.String()
}

// callMode tells expr how to treat the leading token.
type callMode int

const (
	callNone callMode = iota
	callValue
	callBlock
)

// openBlock pairs the name a block was opened with and the name it
// was rewritten to, so the closing tag can follow.
type openBlock struct {
	name    string
	rewrite string
}

// preparer rewrites template text before compilation: plain
// mustaches become unescaped ones and every call to a known
// helper is renamed after its call shape.
type preparer struct {
	known  func(string) bool
	used   map[string]alias
	blocks []openBlock
}

func newPreparer(known func(string) bool) *preparer {
	return &preparer{
		known: known,
		used:  make(map[string]alias),
	}
}

// prepare returns the rewritten source.
func (pr *preparer) prepare(src string) string {
	var sb strings.Builder

	pr.blocks = pr.blocks[:0]

	sb.Grow(len(src) + len(src)/8)

	for pos := 0; pos < len(src); {
		idx := strings.Index(src[pos:], "{{")
		if idx < 0 {
			sb.WriteString(src[pos:])

			break
		}

		start := pos + idx
		sb.WriteString(src[pos:start])

		if escapedAt(src, start) {
			sb.WriteString("{{")
			pos = start + 2

			continue
		}

		pos = pr.tag(&sb, src, start)
	}

	return sb.String()
}

// escapedAt reports whether the mustache at start is preceded by a
// single backslash.
func escapedAt(src string, start int) bool {
	return start > 0 && src[start-1] == '\\' &&
		(start < 2 || src[start-2] != '\\')
}

// tag rewrites the tag opening at start and returns the position
// after it. Unterminated tags are copied as-is and left to the
// parser to report.
func (pr *preparer) tag(sb *strings.Builder, src string, start int) int {
	rest := src[start:]

	switch {
	case strings.HasPrefix(rest, "{{{{"):
		return copyRaw(sb, src, start)
	case strings.HasPrefix(rest, "{{!--"), strings.HasPrefix(rest, "{{~!--"):
		return copyComment(sb, src, start, true)
	case strings.HasPrefix(rest, "{{!"), strings.HasPrefix(rest, "{{~!"):
		return copyComment(sb, src, start, false)
	}

	open := "{{"
	body := start + 2

	if body < len(src) && src[body] == '~' {
		open = "{{~"
		body++
	}

	if body < len(src) && src[body] == '{' {
		return pr.triple(sb, src, start, open, body+1)
	}

	end := closeAt(src, body, "}}")
	if end < 0 {
		sb.WriteString(src[start:])

		return len(src)
	}

	inner := src[body:end]
	closing := "}}"

	if strings.HasSuffix(inner, "~") {
		inner = inner[:len(inner)-1]
		closing = "~}}"
	}

	sb.WriteString(open)

	switch {
	case inner != "" && (inner[0] == '#' || inner[0] == '^'):
		sb.WriteByte(inner[0])
		sb.WriteString(pr.block(inner[1:]))
		sb.WriteString(closing)
	case inner != "" && inner[0] == '/':
		sb.WriteByte('/')
		sb.WriteString(pr.closeBlock(inner[1:]))
		sb.WriteString(closing)
	case inner != "" && inner[0] == '&':
		sb.WriteByte('&')
		sb.WriteString(pr.expr(inner[1:], callValue))
		sb.WriteString(closing)
	case inner != "" && strings.ContainsRune(">*", rune(inner[0])):
		sb.WriteByte(inner[0])
		sb.WriteString(pr.expr(inner[1:], callNone))
		sb.WriteString(closing)
	case firstWord(inner) == "else":
		sb.WriteString(pr.expr(inner, callNone))
		sb.WriteString(closing)
	default:
		sb.WriteByte('{')
		sb.WriteString(pr.expr(inner, callValue))
		sb.WriteByte('}')
		sb.WriteString(closing)
	}

	return end + 2
}

// triple handles an already unescaped {{{...}}} tag.
func (pr *preparer) triple(
	sb *strings.Builder,
	src string,
	start int,
	open string,
	body int,
) int {
	end := closeAt(src, body, "}}}")
	closing := "}}}"

	if alt := closeAt(src, body, "}~}}"); alt >= 0 && (end < 0 || alt < end) {
		end, closing = alt, "}~}}"
	}

	if end < 0 {
		sb.WriteString(src[start:])

		return len(src)
	}

	sb.WriteString(open)
	sb.WriteByte('{')
	sb.WriteString(pr.expr(src[body:end], callValue))
	sb.WriteString(closing)

	return end + len(closing)
}

// block rewrites the body of a block opening tag and records the
// block so its closing tag gets the same name. An empty body is
// the inverse shorthand and opens nothing.
func (pr *preparer) block(body string) string {
	out := pr.expr(body, callBlock)

	name := firstWord(body)
	if name == "" {
		return out
	}

	pr.blocks = append(pr.blocks, openBlock{
		name:    name,
		rewrite: firstWord(out),
	})

	return out
}

// closeBlock renames the closing tag of the innermost open block
// when that block was aliased.
func (pr *preparer) closeBlock(body string) string {
	if len(pr.blocks) == 0 {
		return body
	}

	top := pr.blocks[len(pr.blocks)-1]
	pr.blocks = pr.blocks[:len(pr.blocks)-1]

	toks := tokenize(body)
	if len(toks) == 0 || body[toks[0].start:toks[0].end] != top.name {
		return body
	}

	return body[:toks[0].start] + top.rewrite + body[toks[0].end:]
}

// expr rewrites an expression body. A leading known helper name is
// aliased unless mode is callNone. Parenthesized sub expressions
// are always rewritten as value calls.
func (pr *preparer) expr(body string, mode callMode) string {
	toks := tokenize(body)

	var sb strings.Builder

	last := 0

	for idx, tk := range toks {
		sb.WriteString(body[last:tk.start])

		text := body[tk.start:tk.end]

		if idx == 0 && mode != callNone && pr.known(text) {
			sb.WriteString(pr.use(alias{
				helper: text,
				args:   positional(body, toks[1:]),
				block:  mode == callBlock,
			}))
		} else {
			sb.WriteString(pr.nested(text))
		}

		last = tk.end
	}

	sb.WriteString(body[last:])

	return sb.String()
}

// nested rewrites every parenthesized group in text.
func (pr *preparer) nested(text string) string {
	if !strings.ContainsRune(text, '(') {
		return text
	}

	var sb strings.Builder

	for pos := 0; pos < len(text); {
		switch ch := text[pos]; ch {
		case '"', '\'':
			end := skipQuoted(text, pos)
			sb.WriteString(text[pos:end])
			pos = end
		case '(':
			end := skipGroup(text, pos)
			if end > len(text) || text[end-1] != ')' {
				sb.WriteString(text[pos:])

				return sb.String()
			}

			sb.WriteByte('(')
			sb.WriteString(pr.expr(text[pos+1:end-1], callValue))
			sb.WriteByte(')')
			pos = end
		default:
			sb.WriteByte(ch)
			pos++
		}
	}

	return sb.String()
}

func (pr *preparer) use(al alias) string {
	name := al.name()
	pr.used[name] = al

	return name
}

// token is a byte range of an expression body.
type token struct {
	start int
	end   int
}

// tokenize splits body on whitespace outside of string literals,
// parentheses and brackets.
func tokenize(body string) []token {
	var toks []token

	for pos := 0; pos < len(body); {
		if isSpace(body[pos]) {
			pos++

			continue
		}

		start := pos

		for pos < len(body) && !isSpace(body[pos]) {
			switch body[pos] {
			case '"', '\'':
				pos = skipQuoted(body, pos)
			case '(':
				pos = skipGroup(body, pos)
			case '[':
				if end := strings.IndexByte(body[pos:], ']'); end >= 0 {
					pos += end + 1
				} else {
					pos = len(body)
				}
			default:
				pos++
			}
		}

		if pos > len(body) {
			pos = len(body)
		}

		toks = append(toks, token{start: start, end: pos})
	}

	return toks
}

// positional counts the tokens that are not key=value pairs.
func positional(body string, toks []token) int {
	count := 0

	for _, tk := range toks {
		if !isHashPair(body[tk.start:tk.end]) {
			count++
		}
	}

	return count
}

func isHashPair(text string) bool {
	idx := strings.IndexByte(text, '=')

	return idx > 0 && !strings.ContainsAny(text[:idx], "\"'()[")
}

// skipQuoted returns the position after the string literal
// opening at pos.
func skipQuoted(text string, pos int) int {
	quote := text[pos]

	for idx := pos + 1; idx < len(text); idx++ {
		switch text[idx] {
		case '\\':
			idx++
		case quote:
			return idx + 1
		}
	}

	return len(text)
}

// skipGroup returns the position after the parenthesized group
// opening at pos, or len(text) when it is not closed.
func skipGroup(text string, pos int) int {
	depth := 0

	for idx := pos; idx < len(text); {
		switch text[idx] {
		case '"', '\'':
			idx = skipQuoted(text, idx)

			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return idx + 1
			}
		}

		idx++
	}

	return len(text)
}

// closeAt finds closer at or after pos, skipping string literals.
func closeAt(src string, pos int, closer string) int {
	for idx := pos; idx < len(src); {
		switch src[idx] {
		case '"', '\'':
			idx = skipQuoted(src, idx)

			continue
		}

		if strings.HasPrefix(src[idx:], closer) {
			return idx
		}

		idx++
	}

	return -1
}

// copyComment copies a comment tag verbatim. A block comment
// only ends at a closing mustache preceded by "--".
func copyComment(sb *strings.Builder, src string, start int, block bool) int {
	from := start + strings.Index(src[start:], "!") + 1
	if block {
		from += 2
	}

	for pos := from; ; {
		idx := strings.Index(src[pos:], "}}")
		if idx < 0 {
			sb.WriteString(src[start:])

			return len(src)
		}

		end := pos + idx + 2
		head := strings.TrimSuffix(src[from:pos+idx], "~")

		if !block || strings.HasSuffix(head, "--") {
			sb.WriteString(src[start:end])

			return end
		}

		pos = end
	}
}

// copyRaw copies a {{{{raw}}}}...{{{{/raw}}}} block verbatim so
// its content is not rewritten. raymond has no raw block support
// and renders such a block as empty, as handlebars does without a
// matching raw helper.
func copyRaw(sb *strings.Builder, src string, start int) int {
	closeIdx := strings.Index(src[start:], "{{{{/")
	if closeIdx < 0 {
		sb.WriteString(src[start:])

		return len(src)
	}

	endIdx := strings.Index(src[start+closeIdx:], "}}}}")
	if endIdx < 0 {
		sb.WriteString(src[start:])

		return len(src)
	}

	end := start + closeIdx + endIdx + 4
	sb.WriteString(src[start:end])

	return end
}

func firstWord(body string) string {
	toks := tokenize(body)
	if len(toks) == 0 {
		return ""
	}

	return body[toks[0].start:toks[0].end]
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
