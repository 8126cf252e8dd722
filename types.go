// types.go — schema model for extracted script declarations.
//
// The model is a plain tree: one ParseResult per source file, owning ordered
// Functions, Globals and Errors. It is built bottom-up in a single scan pass
// and never mutated afterward; consumers (the emitter, the inspect REPL)
// treat it as read-only. There are no back-references and no sharing between
// fields, so independent parses are safe to run concurrently.
package binder

// ValueType is the inferred or annotated kind of a declaration's value.
type ValueType int

const (
	VTUnknown ValueType = iota
	VTNumber
	VTString
	VTBoolean
	VTTable
	VTFunction
	VTNil
)

func (v ValueType) String() string {
	switch v {
	case VTNumber:
		return "Number"
	case VTString:
		return "String"
	case VTBoolean:
		return "Boolean"
	case VTTable:
		return "Table"
	case VTFunction:
		return "Function"
	case VTNil:
		return "Nil"
	default:
		return "Unknown"
	}
}

// ParseResult is the product of one Parse call: every top-level declaration
// recognized in a single source file, in source order, plus any diagnostics
// raised while extracting them.
type ParseResult struct {
	// Name is the file stem the result was parsed under; it seeds the
	// generated wrapper-class name.
	Name string

	Functions []Function
	Globals   []Global
	Errors    []Diagnostic
}

// Exposable reports whether the result contains at least one non-local
// declaration worth generating bindings for.
func (r *ParseResult) Exposable() bool {
	return len(r.Functions) > 0 || len(r.Globals) > 0
}

// Function is a top-level named function declaration.
type Function struct {
	Name       string
	Parameters []Parameter
	// ReturnType is set only by a return annotation.
	ReturnType ValueType
	HasReturn  bool
}

// Parameter is one formal parameter of a Function. Parameter types never
// appear inline in the source; ExplicitType comes from annotations only.
type Parameter struct {
	Name         string
	ExplicitType ValueType
	HasExplicit  bool
}

// Global is a top-level assignment declaration.
type Global struct {
	Name      string
	ValueType ValueType
	// TableFields is populated iff ValueType == VTTable (possibly empty).
	TableFields  []TableField
	ExplicitType ValueType
	HasExplicit  bool
}

// TableField is one keyed entry of a table literal. NestedFields is populated
// iff ValueType == VTTable. Duplicate names within one table are kept in
// source order; consumers see later entries shadow earlier ones.
type TableField struct {
	Name         string
	ValueType    ValueType
	NestedFields []TableField
	ExplicitType ValueType
	HasExplicit  bool
}

// EffectiveType returns the annotated type when present, the inferred type
// otherwise.
func (g Global) EffectiveType() ValueType {
	if g.HasExplicit {
		return g.ExplicitType
	}
	return g.ValueType
}

func (f TableField) EffectiveType() ValueType {
	if f.HasExplicit {
		return f.ExplicitType
	}
	return f.ValueType
}
