// naming.go — naming-convention transforms for generated code.
//
// All transforms here are pure, total and deterministic: empty input maps
// to empty output and nothing panics.
package binder

import "strings"

// PascalCase converts a separator-delimited identifier to PascalCase:
// "player_health" -> "PlayerHealth", "update" -> "Update", "" -> "".
func PascalCase(ident string) string {
	if ident == "" {
		return ""
	}
	var b strings.Builder
	for _, seg := range strings.Split(ident, "_") {
		if seg == "" {
			continue
		}
		b.WriteString(strings.ToUpper(seg[:1]))
		b.WriteString(seg[1:])
	}
	return b.String()
}

// BindingsClassName maps a source file stem to its wrapper-class name.
func BindingsClassName(stem string) string {
	if stem == "" {
		return ""
	}
	return PascalCase(stem) + "Bindings"
}

// TableClassName maps a table field or global name to its wrapper-class name.
func TableClassName(name string) string {
	if name == "" {
		return ""
	}
	return PascalCase(name) + "Table"
}

// isIdentifier reports whether s is a plain name: a letter or underscore
// followed by letters, digits or underscores. Bracketed keys, dotted paths
// and anything quoted are not identifiers.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
