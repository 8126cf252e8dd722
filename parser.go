// parser.go — declaration extraction for Lua script sources.
//
// OVERVIEW
// --------
// Parse walks the scanner's logical lines once and recognizes exactly two
// top-level statement shapes:
//
//	[local] function name(a, b, c)
//	[local] name = <rhs>
//
// Everything else (bare statements, block terminators, control keywords) is
// ignored. This is a shallow structural scan, not a compiler front end: the
// matcher never looks past a single line except to collect a multi-line
// table literal, and the only state threaded through the loop is the
// pending-annotation list and the scanner's brace depth.
//
// Annotation model
// ----------------
// Directive comments ("---@param", "---@return", "---@type", "---@field")
// accumulate while adjacent. Blank lines keep the pending block alive, so a
// doc block may be separated from its target by an empty line. Any other
// non-directive, non-blank line consumes the block — handed to the
// declaration when the line matches one, discarded otherwise. Annotations
// never survive past an intervening statement.
//
// Failure contract
// ----------------
// Parse never lets a fault escape. An unexpected panic is recovered into a
// single CodeInternal diagnostic and whatever declarations were accumulated
// before the fault are returned; partial results are valid results.
package binder

import "strings"

// annotation is one parsed directive line.
type annotation struct {
	kind string // "param", "return", "type", "field", ...
	args []string
}

// Parse extracts the declaration schema from one file's source text. stem is
// the source file's base name without extension; it only names the result.
// Parse is a pure function of its inputs and safe to call concurrently.
func Parse(src, stem string) (res ParseResult) {
	res = ParseResult{Name: stem}
	defer func() {
		if r := recover(); r != nil {
			res.Errors = append(res.Errors, internalDiag(r))
		}
	}()

	lines := NewScanner(src).Lines()
	var pending []annotation

	for i := 0; i < len(lines); i++ {
		ln := lines[i]

		if ln.Directive != "" {
			pending = append(pending, parseDirective(ln.Directive))
			continue
		}
		if ln.Text == "" {
			continue // blank lines do not break an annotation block
		}
		if ln.Depth > 0 {
			// Interior of a multi-line table the builder did not consume
			// (e.g. a table passed as a call argument).
			pending = nil
			continue
		}

		if fn, ok := matchFunction(ln.Text); ok {
			if !fn.local {
				applyFunctionAnnotations(&fn.decl, pending)
				res.Functions = append(res.Functions, fn.decl)
			}
			pending = nil
			continue
		}

		if g, rhs, ok := matchAssignment(ln.Text); ok {
			if g.decl.ValueType == VTTable {
				content, next := extractTableContent(rhs, lines, i+1)
				g.decl.TableFields = parseTableFields(content)
				i = next - 1
			}
			if !g.local {
				applyGlobalAnnotations(&g.decl, pending)
				res.Globals = append(res.Globals, g.decl)
			}
			pending = nil
			continue
		}

		pending = nil
	}
	return res
}

/* ───────────────────────── directive parsing ───────────────────────── */

func parseDirective(text string) annotation {
	// text is "@kind arg arg ..." as produced by the scanner.
	fields := strings.Fields(strings.TrimPrefix(text, "@"))
	if len(fields) == 0 {
		return annotation{}
	}
	return annotation{kind: strings.ToLower(fields[0]), args: fields[1:]}
}

func applyFunctionAnnotations(fn *Function, pending []annotation) {
	for _, a := range pending {
		switch a.kind {
		case "param":
			if len(a.args) < 2 {
				continue
			}
			for p := range fn.Parameters {
				if fn.Parameters[p].Name == a.args[0] {
					fn.Parameters[p].ExplicitType, _ = TypeFromAnnotation(a.args[1])
					fn.Parameters[p].HasExplicit = true
				}
			}
		case "return":
			if len(a.args) < 1 {
				continue
			}
			fn.ReturnType, _ = TypeFromAnnotation(a.args[0])
			fn.HasReturn = true
		}
	}
}

func applyGlobalAnnotations(g *Global, pending []annotation) {
	for _, a := range pending {
		switch a.kind {
		case "type":
			if len(a.args) < 1 {
				continue
			}
			g.ExplicitType, _ = TypeFromAnnotation(a.args[0])
			g.HasExplicit = true
		case "field":
			// "---@field name type" pins the type of a top-level table field.
			if len(a.args) < 2 {
				continue
			}
			for f := range g.TableFields {
				if g.TableFields[f].Name == a.args[0] {
					g.TableFields[f].ExplicitType, _ = TypeFromAnnotation(a.args[1])
					g.TableFields[f].HasExplicit = true
				}
			}
		}
	}
}

/* ───────────────────────── declaration shapes ───────────────────────── */

type functionMatch struct {
	decl  Function
	local bool
}

type globalMatch struct {
	decl  Global
	local bool
}

const (
	kwLocal    = "local"
	kwFunction = "function"
)

// matchFunction recognizes "[local] function name(a, b, c)". Method-style
// names (dots or colons) are not top-level declarations and do not match.
func matchFunction(text string) (functionMatch, bool) {
	var m functionMatch
	rest, ok := cutKeyword(text, kwLocal)
	if ok {
		m.local = true
		text = rest
	}
	text, ok = cutKeyword(text, kwFunction)
	if !ok {
		return m, false
	}

	open := strings.IndexByte(text, '(')
	if open < 0 {
		return m, false
	}
	name := strings.TrimSpace(text[:open])
	if !isIdentifier(name) {
		return m, false
	}
	close := strings.IndexByte(text[open:], ')')
	if close < 0 {
		return m, false
	}

	m.decl = Function{Name: name}
	params := strings.TrimSpace(text[open+1 : open+close])
	if params != "" {
		for _, p := range strings.Split(params, ",") {
			p = strings.TrimSpace(p)
			if !isIdentifier(p) {
				continue // varargs and anything malformed
			}
			m.decl.Parameters = append(m.decl.Parameters, Parameter{Name: p})
		}
	}
	return m, true
}

// matchAssignment recognizes "[local] name = <rhs>". The raw rhs text is
// returned so a table literal can be re-scanned by the table builder. An
// rhs opening with the function keyword never matches: anonymous-function
// assignments are silently dropped from the schema.
func matchAssignment(text string) (globalMatch, string, bool) {
	var m globalMatch
	rest, ok := cutKeyword(text, kwLocal)
	if ok {
		m.local = true
		text = rest
	}

	eq := strings.IndexByte(text, '=')
	if eq < 0 || (eq+1 < len(text) && text[eq+1] == '=') {
		return m, "", false
	}
	name := strings.TrimSpace(text[:eq])
	if !isIdentifier(name) {
		return m, "", false
	}
	rhs := strings.TrimSpace(text[eq+1:])

	if InferValueType(rhs) == VTFunction {
		return m, "", false
	}

	m.decl = Global{Name: name, ValueType: InferValueType(rhs)}
	if m.decl.ValueType == VTTable {
		m.decl.TableFields = []TableField{}
	}
	return m, rhs, true
}

// cutKeyword strips a leading keyword followed by whitespace.
func cutKeyword(text, kw string) (string, bool) {
	rest, ok := strings.CutPrefix(text, kw)
	if !ok || rest == "" {
		return text, false
	}
	if rest[0] != ' ' && rest[0] != '\t' {
		return text, false
	}
	return strings.TrimLeft(rest, " \t"), true
}
