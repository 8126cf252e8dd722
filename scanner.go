// scanner.go — logical-line scanner and comment filter.
//
// The scanner turns raw Lua source into a slice of Line values: trimmed
// content with comments removed, the 1-based source line number, and the
// table-brace depth in effect before the line. It deliberately stops far
// short of a real lexer. The matcher downstream only needs to recognize a
// small fixed set of top-level statement shapes, so the scanner's job is to
// keep comment text and nested-table interiors from reaching it, carrying an
// explicit depth counter instead of a grammar.
//
// Known approximation: a comment marker inside a string literal is handled
// for single-line quoted strings (the scanner tracks quote state within one
// line), but a long string spanning lines is not tracked across the line
// break; its tail lines are scanned as ordinary code.
package binder

import "strings"

// Line is one logical source line after comment filtering.
type Line struct {
	// Text is the trimmed line content with comments stripped. Empty for
	// blank lines, comment-only lines, and directive lines.
	Text string
	// Directive holds the annotation text (starting at '@') when the source
	// line is a directive comment such as "---@param hp number".
	Directive string
	// Num is the 1-based source line number, used only for diagnostics.
	Num int
	// Depth is the table-brace depth before the line starts. Lines with
	// Depth > 0 are continuations of a multi-line table literal.
	Depth int
	// Opens and Closes count the braces seen on the line outside comments
	// and quoted strings.
	Opens  int
	Closes int
}

// Scanner scans source text into logical lines. A Scanner is single-use and
// call-scoped: each Parse builds its own, so independent parses never share
// state.
type Scanner struct {
	src string

	depth        int
	inComment    bool
	commentLevel int // count of '=' in the [=*[ opener
	lineNum      int
}

// NewScanner returns a scanner over the given source text.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

const directivePrefix = "---@"

// Lines scans the whole source and returns its logical lines.
func (s *Scanner) Lines() []Line {
	raw := strings.Split(s.src, "\n")
	out := make([]Line, 0, len(raw))
	for _, r := range raw {
		s.lineNum++
		out = append(out, s.scanLine(r))
	}
	return out
}

func (s *Scanner) scanLine(raw string) Line {
	ln := Line{Num: s.lineNum, Depth: s.depth}

	rest := raw
	if s.inComment {
		close := longCloser(s.commentLevel)
		idx := strings.Index(rest, close)
		if idx < 0 {
			return ln // still inside the block comment
		}
		s.inComment = false
		rest = rest[idx+len(close):]
	}

	if d, ok := strings.CutPrefix(strings.TrimSpace(rest), directivePrefix); ok {
		ln.Directive = "@" + strings.TrimSpace(d)
		return ln
	}

	ln.Text = strings.TrimSpace(s.stripAndCount(rest, &ln))
	return ln
}

// stripAndCount removes comments from one line, counting braces outside
// strings and comments, and updating the running depth.
func (s *Scanner) stripAndCount(text string, ln *Line) string {
	var b strings.Builder
	var quote byte // active quote char, 0 when outside a string

	for i := 0; i < len(text); i++ {
		c := text[i]

		if quote != 0 {
			if c == '\\' && i+1 < len(text) {
				b.WriteByte(c)
				i++
				b.WriteByte(text[i])
				continue
			}
			if c == quote {
				quote = 0
			}
			b.WriteByte(c)
			continue
		}

		switch c {
		case '"', '\'':
			quote = c
			b.WriteByte(c)
		case '[':
			// Long-string opener [[ or [=*[; consumed to its closer when it
			// ends on this line, to end of line otherwise.
			if lvl, w := longOpener(text[i:]); w > 0 {
				close := longCloser(lvl)
				end := strings.Index(text[i+w:], close)
				if end < 0 {
					b.WriteString(text[i:])
					i = len(text)
					continue
				}
				b.WriteString(text[i : i+w+end+len(close)])
				i += w + end + len(close) - 1
				continue
			}
			b.WriteByte(c)
		case '-':
			if i+1 < len(text) && text[i+1] == '-' {
				// Block comment when "--" is immediately followed by a long
				// opener, line comment otherwise.
				if lvl, w := longOpener(text[i+2:]); w > 0 {
					close := longCloser(lvl)
					end := strings.Index(text[i+2+w:], close)
					if end < 0 {
						s.inComment = true
						s.commentLevel = lvl
						return b.String()
					}
					i += 2 + w + end + len(close) - 1
					continue
				}
				return b.String()
			}
			b.WriteByte(c)
		case '{':
			s.depth++
			ln.Opens++
			b.WriteByte(c)
		case '}':
			s.depth--
			ln.Closes++
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// longOpener reports whether s starts with a long-bracket opener "[=*[",
// returning the '=' count and the opener width (0 when not an opener).
func longOpener(s string) (level, width int) {
	if len(s) < 2 || s[0] != '[' {
		return 0, 0
	}
	i := 1
	for i < len(s) && s[i] == '=' {
		i++
	}
	if i < len(s) && s[i] == '[' {
		return i - 1, i + 1
	}
	return 0, 0
}

func longCloser(level int) string {
	return "]" + strings.Repeat("=", level) + "]"
}
