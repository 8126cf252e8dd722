// table.go — table-literal schema extraction.
//
// Given right-hand-side text that starts at '{', possibly continuing on the
// following source lines, this file produces the ordered list of keyed
// fields, recursing into nested table values. Everything runs on a manual
// nested-brace counter: content extraction keeps nested braces verbatim so
// recursion can re-parse them, and sibling splitting only honors commas
// where the counter is zero, so a nested table's own entries are never
// mistaken for sibling boundaries.
//
// Recursion terminates because each recursive call re-parses strictly
// contained, strictly shorter text.
package binder

import "strings"

// extractTableContent returns the text between the opening '{' of rhs and
// its matching '}'. When the braces do not balance on rhs itself, following
// lines are appended (line breaks collapsed to single spaces) until the
// counter returns to zero. It returns the inner content and the index of
// the first line not consumed.
func extractTableContent(rhs string, lines []Line, next int) (string, int) {
	if inner, ok := balancedInner(rhs); ok {
		return inner, next
	}

	var b strings.Builder
	b.WriteString(rhs)
	for next < len(lines) {
		ln := lines[next]
		next++
		if ln.Text == "" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(ln.Text)
		if inner, ok := balancedInner(b.String()); ok {
			return inner, next
		}
	}
	// Unterminated literal: best effort on what was collected, minus the
	// opening brace.
	s := b.String()
	if i := strings.IndexByte(s, '{'); i >= 0 {
		return strings.TrimSpace(s[i+1:]), next
	}
	return "", next
}

// balancedInner slices s between its first '{' and the matching '}' when the
// brace counter returns to zero within s.
func balancedInner(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start+1 : i], true
			}
		}
	}
	return "", false
}

// parseTableFields splits table content into keyed fields. Purely positional
// entries (no '=') are dropped; duplicates are kept in source order.
func parseTableFields(content string) []TableField {
	fields := []TableField{}
	for _, seg := range splitTopLevel(content) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue // trailing comma before '}'
		}
		eq := indexTopLevel(seg, '=')
		if eq < 0 {
			continue // positional entry, not part of the named-field schema
		}
		name := strings.TrimSpace(seg[:eq])
		value := strings.TrimSpace(seg[eq+1:])
		if !isIdentifier(name) {
			continue
		}
		f := TableField{Name: name, ValueType: InferValueType(value)}
		if f.ValueType == VTTable {
			if inner, ok := balancedInner(value); ok {
				f.NestedFields = parseTableFields(inner)
			} else {
				f.NestedFields = []TableField{}
			}
		}
		fields = append(fields, f)
	}
	return fields
}

// splitTopLevel splits on commas where the nested-brace counter is zero.
func splitTopLevel(content string) []string {
	var segs []string
	depth := 0
	start := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				segs = append(segs, content[start:i])
				start = i + 1
			}
		}
	}
	segs = append(segs, content[start:])
	return segs
}

// indexTopLevel finds the first occurrence of c outside any braces, skipping
// "==" so comparisons inside a value never read as a key separator.
func indexTopLevel(s string, c byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		case c:
			if depth > 0 {
				continue
			}
			if c == '=' && i+1 < len(s) && s[i+1] == '=' {
				i++
				continue
			}
			return i
		}
	}
	return -1
}
