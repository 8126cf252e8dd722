// infer_test.go
package binder

import "testing"

func Test_Infer_Literals(t *testing.T) {
	cases := []struct {
		rhs  string
		want ValueType
	}{
		{"0", VTNumber},
		{"42", VTNumber},
		{"-17", VTNumber},
		{"3.25", VTNumber},
		{"-0.5", VTNumber},
		{`"hello"`, VTString},
		{`'hello'`, VTString},
		{"[[long string]]", VTString},
		{"[=[leveled]=]", VTString},
		{"true", VTBoolean},
		{"false", VTBoolean},
		{"nil", VTNil},
		{"{ a = 1 }", VTTable},
		{"{}", VTTable},
		{"function(x) return x end", VTFunction},
		{"function (x) return x end", VTFunction},

		// Unresolvable without evaluation.
		{"someRef", VTUnknown},
		{"compute(1, 2)", VTUnknown},
		{"a + b", VTUnknown},
		{"1e5", VTUnknown}, // exponent form is out of scope
		{"0x1F", VTUnknown},
		{"1.2.3", VTUnknown},
		{"-", VTUnknown},
		{"", VTUnknown},
		{"truely", VTUnknown},
	}
	for _, c := range cases {
		if got := InferValueType(c.rhs); got != c.want {
			t.Errorf("InferValueType(%q) = %s, want %s", c.rhs, got, c.want)
		}
	}
}

func Test_Infer_AnnotationLookup(t *testing.T) {
	cases := []struct {
		name string
		want ValueType
		ok   bool
	}{
		{"number", VTNumber, true},
		{"integer", VTNumber, true},
		{"int", VTNumber, true},
		{"string", VTString, true},
		{"boolean", VTBoolean, true},
		{"bool", VTBoolean, true},
		{"table", VTTable, true},
		{"function", VTFunction, true},
		{"Number", VTNumber, true}, // case-insensitive
		{"Vector3", VTUnknown, false},
		{"", VTUnknown, false},
	}
	for _, c := range cases {
		got, ok := TypeFromAnnotation(c.name)
		if got != c.want || ok != c.ok {
			t.Errorf("TypeFromAnnotation(%q) = %s,%v want %s,%v", c.name, got, ok, c.want, c.ok)
		}
	}
}
