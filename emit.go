// emit.go — C# accessor emission for extracted schemas.
//
// The emitter walks a ParseResult tree and writes one wrapper class per
// file plus one class per table-valued global and nested table field. The
// generated code targets the MoonSharp interpreter API: primitive accessors
// read through to the live backing Table on every get/set (external script
// mutation is observed immediately), while table wrappers and function
// handles are resolved on first access and cached with "??=" for the
// lifetime of the generated instance.
package binder

import (
	"fmt"
	"strings"
)

// Emitter generates C# binding classes from parse results. It carries no
// state across Emit calls.
type Emitter struct {
	// Namespace encloses all generated classes.
	Namespace string
}

func NewEmitter(namespace string) *Emitter {
	if namespace == "" {
		namespace = "ScriptBindings"
	}
	return &Emitter{Namespace: namespace}
}

// Emit renders binding classes for every exposable result, in input order.
func (e *Emitter) Emit(results []ParseResult) string {
	var b strings.Builder
	b.WriteString("// <auto-generated>\n")
	b.WriteString("//     Generated by moonsharp-binder. Do not edit by hand.\n")
	b.WriteString("// </auto-generated>\n\n")
	b.WriteString("using MoonSharp.Interpreter;\n\n")
	fmt.Fprintf(&b, "namespace %s\n{\n", e.Namespace)

	first := true
	for i := range results {
		r := &results[i]
		if !r.Exposable() {
			continue
		}
		if !first {
			b.WriteString("\n")
		}
		first = false
		e.emitBindings(&b, r)
	}

	b.WriteString("}\n")
	return b.String()
}

func (e *Emitter) emitBindings(b *strings.Builder, r *ParseResult) {
	cls := BindingsClassName(r.Name)
	fmt.Fprintf(b, "    public sealed class %s\n    {\n", cls)
	fmt.Fprintf(b, "        private readonly Table _globals;\n\n")
	fmt.Fprintf(b, "        public %s(Script script)\n        {\n", cls)
	fmt.Fprintf(b, "            _globals = script.Globals;\n        }\n")

	var nested []TableField
	for _, g := range shadowGlobals(r.Globals) {
		b.WriteString("\n")
		if g.EffectiveType() == VTTable {
			e.emitTableProperty(b, g.Name, "_globals")
			nested = append(nested, TableField{Name: g.Name, ValueType: VTTable, NestedFields: g.TableFields})
			continue
		}
		e.emitScalarProperty(b, g.Name, g.EffectiveType(), "_globals")
	}
	for _, fn := range r.Functions {
		b.WriteString("\n")
		e.emitFunction(b, fn)
	}
	b.WriteString("    }\n")

	for _, f := range nested {
		b.WriteString("\n")
		e.emitTableClass(b, f)
	}
}

// emitTableClass renders the wrapper for one table value, then recurses
// into its table-typed fields.
func (e *Emitter) emitTableClass(b *strings.Builder, field TableField) {
	cls := TableClassName(field.Name)
	fmt.Fprintf(b, "    public sealed class %s\n    {\n", cls)
	fmt.Fprintf(b, "        private readonly Table _table;\n\n")
	fmt.Fprintf(b, "        public %s(Table table)\n        {\n", cls)
	fmt.Fprintf(b, "            _table = table;\n        }\n")

	var nested []TableField
	for _, f := range shadowFields(field.NestedFields) {
		b.WriteString("\n")
		if f.EffectiveType() == VTTable {
			e.emitTableProperty(b, f.Name, "_table")
			nested = append(nested, f)
			continue
		}
		e.emitScalarProperty(b, f.Name, f.EffectiveType(), "_table")
	}
	b.WriteString("    }\n")

	for _, f := range nested {
		b.WriteString("\n")
		e.emitTableClass(b, f)
	}
}

// emitScalarProperty writes a get/set pair that reads through to the live
// backing table.
func (e *Emitter) emitScalarProperty(b *strings.Builder, name string, vt ValueType, backing string) {
	prop := PascalCase(name)
	cs := csType(vt)
	fmt.Fprintf(b, "        public %s %s\n        {\n", cs, prop)
	fmt.Fprintf(b, "            get => %s.Get(%q)%s;\n", backing, name, csUnwrap(vt))
	fmt.Fprintf(b, "            set => %s.Set(%q, %s);\n", backing, name, csWrap(vt, "value"))
	b.WriteString("        }\n")
}

// emitTableProperty writes a lazily-constructed, instance-cached wrapper
// accessor for a table value.
func (e *Emitter) emitTableProperty(b *strings.Builder, name, backing string) {
	prop := PascalCase(name)
	cls := TableClassName(name)
	fmt.Fprintf(b, "        private %s _%s;\n", cls, prop)
	fmt.Fprintf(b, "        public %s %s => _%s ??= new %s(%s.Get(%q).Table);\n",
		cls, prop, prop, cls, backing, name)
}

// emitFunction writes a typed call shim over a lazily-resolved, cached
// function handle.
func (e *Emitter) emitFunction(b *strings.Builder, fn Function) {
	name := PascalCase(fn.Name)

	params := make([]string, len(fn.Parameters))
	args := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		pt := VTUnknown
		if p.HasExplicit {
			pt = p.ExplicitType
		}
		params[i] = csType(pt) + " " + p.Name
		args[i] = p.Name
	}

	ret := "DynValue"
	unwrap := ""
	if fn.HasReturn && fn.ReturnType != VTUnknown && fn.ReturnType != VTTable {
		ret = csType(fn.ReturnType)
		unwrap = csUnwrap(fn.ReturnType)
	}

	call := fmt.Sprintf("(_fn%s ??= _globals.Get(%q).Function).Call(%s)",
		name, fn.Name, strings.Join(args, ", "))
	fmt.Fprintf(b, "        private Closure _fn%s;\n", name)
	fmt.Fprintf(b, "        public %s %s(%s) => %s%s;\n",
		ret, name, strings.Join(params, ", "), call, unwrap)
}

/* ───────────────────────── type mapping ───────────────────────── */

// csType maps a ValueType to its C# representation. VTUnknown and VTNil map
// to DynValue, the host's most dynamic representation.
func csType(vt ValueType) string {
	switch vt {
	case VTNumber:
		return "double"
	case VTString:
		return "string"
	case VTBoolean:
		return "bool"
	case VTFunction:
		return "Closure"
	default:
		return "DynValue"
	}
}

func csUnwrap(vt ValueType) string {
	switch vt {
	case VTNumber:
		return ".Number"
	case VTString:
		return ".String"
	case VTBoolean:
		return ".Boolean"
	case VTFunction:
		return ".Function"
	default:
		return ""
	}
}

func csWrap(vt ValueType, expr string) string {
	switch vt {
	case VTNumber:
		return "DynValue.NewNumber(" + expr + ")"
	case VTString:
		return "DynValue.NewString(" + expr + ")"
	case VTBoolean:
		return "DynValue.NewBoolean(" + expr + ")"
	case VTFunction:
		return "DynValue.NewClosure(" + expr + ")"
	default:
		return expr
	}
}

// shadowFields keeps the last occurrence of each duplicated field, in the
// position of its final write. The schema itself preserves duplicates;
// collapsing here mirrors how the script runtime resolves them. Keying on
// the generated member name also merges distinct source names that
// PascalCase to the same identifier ("player_health" / "playerHealth"),
// which would otherwise emit colliding C# members.
func shadowFields(fields []TableField) []TableField {
	last := map[string]int{}
	for i, f := range fields {
		last[PascalCase(f.Name)] = i
	}
	out := make([]TableField, 0, len(fields))
	for i, f := range fields {
		if last[PascalCase(f.Name)] == i {
			out = append(out, f)
		}
	}
	return out
}

func shadowGlobals(globals []Global) []Global {
	last := map[string]int{}
	for i, g := range globals {
		last[PascalCase(g.Name)] = i
	}
	out := make([]Global, 0, len(globals))
	for i, g := range globals {
		if last[PascalCase(g.Name)] == i {
			out = append(out, g)
		}
	}
	return out
}
