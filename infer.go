// infer.go — literal-based type inference and annotation type names.
package binder

import "strings"

// InferValueType classifies a right-hand-side literal by its leading syntax,
// first match wins. References, calls and arithmetic are unresolvable
// without evaluation and come back VTUnknown.
func InferValueType(rhs string) ValueType {
	rhs = strings.TrimSpace(rhs)
	switch {
	case rhs == "":
		return VTUnknown
	case rhs[0] == '{':
		return VTTable
	case rhs[0] == '"' || rhs[0] == '\'':
		return VTString
	case isLongStringOpen(rhs):
		return VTString
	case rhs == "true" || rhs == "false":
		return VTBoolean
	case rhs == "nil":
		return VTNil
	case isDecimalNumeral(rhs):
		return VTNumber
	case rhs == "function" || strings.HasPrefix(rhs, "function(") || strings.HasPrefix(rhs, "function ("):
		return VTFunction
	default:
		return VTUnknown
	}
}

// annotationTypes maps annotation type names to value types. Unrecognized
// names fall back to VTUnknown; an annotation is never a parse error.
var annotationTypes = map[string]ValueType{
	"number":   VTNumber,
	"integer":  VTNumber,
	"int":      VTNumber,
	"string":   VTString,
	"boolean":  VTBoolean,
	"bool":     VTBoolean,
	"table":    VTTable,
	"function": VTFunction,
}

// TypeFromAnnotation resolves an annotation type name. The second result
// reports whether the name was recognized; callers that only care about the
// type can ignore it, VTUnknown is returned either way.
func TypeFromAnnotation(name string) (ValueType, bool) {
	vt, ok := annotationTypes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return VTUnknown, false
	}
	return vt, true
}

func isLongStringOpen(s string) bool {
	_, w := longOpener(s)
	return w > 0
}

// isDecimalNumeral matches an optionally-negative decimal numeral with an
// optional fraction part. No exponent and no hex: those infer VTUnknown.
func isDecimalNumeral(s string) bool {
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	digits := 0
	dot := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits++
		case s[i] == '.' && !dot && digits > 0:
			dot = true
			digits = 0
		default:
			return false
		}
	}
	return digits > 0
}
