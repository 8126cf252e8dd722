// table_test.go
package binder

import "testing"

func fieldsOf(t *testing.T, content string) []TableField {
	t.Helper()
	return parseTableFields(content)
}

func Test_Table_SingleLine_TwoFields(t *testing.T) {
	fs := fieldsOf(t, ` a = 1, b = "x" `)
	if len(fs) != 2 {
		t.Fatalf("want 2 fields, got %v", fs)
	}
	if fs[0].Name != "a" || fs[0].ValueType != VTNumber {
		t.Fatalf("field a: %+v", fs[0])
	}
	if fs[1].Name != "b" || fs[1].ValueType != VTString {
		t.Fatalf("field b: %+v", fs[1])
	}
}

func Test_Table_NestedTable_NoFalseSplit(t *testing.T) {
	fs := fieldsOf(t, ` a = { x = 1, y = 2 }, b = 3 `)
	if len(fs) != 2 {
		t.Fatalf("inner comma caused a top-level split: %v", fs)
	}
	a := fs[0]
	if a.ValueType != VTTable || len(a.NestedFields) != 2 {
		t.Fatalf("field a: %+v", a)
	}
	if a.NestedFields[0].Name != "x" || a.NestedFields[1].Name != "y" {
		t.Fatalf("nested order: %+v", a.NestedFields)
	}
	if fs[1].Name != "b" || fs[1].ValueType != VTNumber {
		t.Fatalf("field b: %+v", fs[1])
	}
}

func Test_Table_DeepNesting(t *testing.T) {
	fs := fieldsOf(t, `world = { region = { spawn = { x = 0, y = 0 } } }`)
	spawn := fs[0].NestedFields[0].NestedFields[0]
	if spawn.Name != "spawn" || len(spawn.NestedFields) != 2 {
		t.Fatalf("deep nesting lost: %+v", spawn)
	}
}

func Test_Table_Empty(t *testing.T) {
	if fs := fieldsOf(t, ""); len(fs) != 0 {
		t.Fatalf("empty table: %v", fs)
	}
}

func Test_Table_EmptyNested(t *testing.T) {
	fs := fieldsOf(t, `inv = {}`)
	if len(fs) != 1 || fs[0].ValueType != VTTable || len(fs[0].NestedFields) != 0 {
		t.Fatalf("empty nested table: %+v", fs)
	}
}

func Test_Table_TrailingComma_Discarded(t *testing.T) {
	fs := fieldsOf(t, ` a = 1, b = 2, `)
	if len(fs) != 2 {
		t.Fatalf("trailing comma produced a field: %v", fs)
	}
}

func Test_Table_PositionalEntries_Dropped(t *testing.T) {
	fs := fieldsOf(t, ` "first", 2, named = 3, true `)
	if len(fs) != 1 || fs[0].Name != "named" {
		t.Fatalf("mixed table must keep only keyed entries: %v", fs)
	}
}

func Test_Table_DuplicateNames_KeptInOrder(t *testing.T) {
	fs := fieldsOf(t, ` a = 1, a = "x" `)
	if len(fs) != 2 {
		t.Fatalf("duplicates must not be deduplicated here: %v", fs)
	}
	if fs[0].ValueType != VTNumber || fs[1].ValueType != VTString {
		t.Fatalf("duplicate order lost: %v", fs)
	}
}

func Test_Table_ValueWithComparison_NotAKeySplit(t *testing.T) {
	fs := fieldsOf(t, ` ready = a == b, count = 1 `)
	if len(fs) != 2 || fs[0].Name != "ready" || fs[0].ValueType != VTUnknown {
		t.Fatalf("comparison rhs mishandled: %v", fs)
	}
}

func Test_Table_BracketedKeys_NotNamedFields(t *testing.T) {
	fs := fieldsOf(t, ` ["weird key"] = 1, plain = 2 `)
	if len(fs) != 1 || fs[0].Name != "plain" {
		t.Fatalf("bracketed key leaked: %v", fs)
	}
}

func Test_Table_ExtractContent_SameLine(t *testing.T) {
	content, next := extractTableContent(`{ a = 1 }`, nil, 7)
	if content != " a = 1 " || next != 7 {
		t.Fatalf("content %q next %d", content, next)
	}
}

func Test_Table_ExtractContent_MultiLine(t *testing.T) {
	lines := NewScanner("t = {\n  a = 1,\n  b = { c = 2 },\n}\nafter = 1").Lines()
	content, next := extractTableContent("{", lines, 1)
	if next != 4 {
		t.Fatalf("consumed to line index %d", next)
	}
	fs := parseTableFields(content)
	if len(fs) != 2 || fs[1].NestedFields[0].Name != "c" {
		t.Fatalf("multi-line fields: %+v", fs)
	}
}
