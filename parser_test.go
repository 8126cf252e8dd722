// parser_test.go
package binder

import (
	"reflect"
	"testing"
)

func parse(t *testing.T, src string) ParseResult {
	t.Helper()
	res := Parse(src, "test")
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", res.Errors)
	}
	return res
}

func wantGlobal(t *testing.T, res ParseResult, name string, vt ValueType) Global {
	t.Helper()
	for _, g := range res.Globals {
		if g.Name == name {
			if g.EffectiveType() != vt {
				t.Fatalf("global %s: want %s, got %s", name, vt, g.EffectiveType())
			}
			return g
		}
	}
	t.Fatalf("global %s not found in %v", name, res.Globals)
	return Global{}
}

func wantNoGlobal(t *testing.T, res ParseResult, name string) {
	t.Helper()
	for _, g := range res.Globals {
		if g.Name == name {
			t.Fatalf("global %s should not be present", name)
		}
	}
}

func wantFunction(t *testing.T, res ParseResult, name string) Function {
	t.Helper()
	for _, f := range res.Functions {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("function %s not found in %v", name, res.Functions)
	return Function{}
}

func Test_Parse_EndToEnd_ScoreAndPlayer(t *testing.T) {
	src := `
score = 0
player = { x = 1, y = 2 }
function reset() end
`
	res := parse(t, src)
	if len(res.Globals) != 2 || len(res.Functions) != 1 {
		t.Fatalf("want 2 globals / 1 function, got %d / %d", len(res.Globals), len(res.Functions))
	}
	wantGlobal(t, res, "score", VTNumber)
	p := wantGlobal(t, res, "player", VTTable)
	if len(p.TableFields) != 2 {
		t.Fatalf("player: want 2 fields, got %d", len(p.TableFields))
	}
	if p.TableFields[0].Name != "x" || p.TableFields[1].Name != "y" {
		t.Fatalf("player fields out of order: %v", p.TableFields)
	}
	if p.TableFields[0].ValueType != VTNumber || p.TableFields[1].ValueType != VTNumber {
		t.Fatalf("player field types: %v", p.TableFields)
	}
	fn := wantFunction(t, res, "reset")
	if len(fn.Parameters) != 0 || fn.HasReturn {
		t.Fatalf("reset: want no params, no return; got %+v", fn)
	}
}

func Test_Parse_Function_Parameters_InOrder(t *testing.T) {
	res := parse(t, "function move(dx, dy, speed)\nend")
	fn := wantFunction(t, res, "move")
	got := []string{}
	for _, p := range fn.Parameters {
		got = append(got, p.Name)
	}
	if !reflect.DeepEqual(got, []string{"dx", "dy", "speed"}) {
		t.Fatalf("parameters: %v", got)
	}
}

func Test_Parse_Locality_ExcludesDeclarations(t *testing.T) {
	src := `
local secret = 42
local function helper(a) end
local hidden = { k = 1 }
visible = 1
`
	res := parse(t, src)
	wantNoGlobal(t, res, "secret")
	wantNoGlobal(t, res, "hidden")
	wantGlobal(t, res, "visible", VTNumber)
	if len(res.Functions) != 0 {
		t.Fatalf("local function leaked: %v", res.Functions)
	}
}

func Test_Parse_AnonymousFunctionAssignment_Dropped(t *testing.T) {
	src := `
onTick = function(dt) return dt end
function real() end
`
	res := parse(t, src)
	wantNoGlobal(t, res, "onTick")
	for _, f := range res.Functions {
		if f.Name == "onTick" {
			t.Fatalf("anonymous assignment must not produce a function")
		}
	}
	wantFunction(t, res, "real")
}

func Test_Parse_MultiLineTable_NestedCommaNotASplit(t *testing.T) {
	src := `
config = {
    debug = true,
    limits = { max = 10, min = 1 },
}
`
	res := parse(t, src)
	g := wantGlobal(t, res, "config", VTTable)
	if len(g.TableFields) != 2 {
		t.Fatalf("want 2 top-level fields, got %v", g.TableFields)
	}
	limits := g.TableFields[1]
	if limits.Name != "limits" || limits.ValueType != VTTable || len(limits.NestedFields) != 2 {
		t.Fatalf("limits: %+v", limits)
	}
}

func Test_Parse_Annotation_AppliesAcrossBlankLine(t *testing.T) {
	src := `
---@param n number
---@return number

function double(n) end
`
	res := parse(t, src)
	fn := wantFunction(t, res, "double")
	if !fn.HasReturn || fn.ReturnType != VTNumber {
		t.Fatalf("return annotation lost: %+v", fn)
	}
	if !fn.Parameters[0].HasExplicit || fn.Parameters[0].ExplicitType != VTNumber {
		t.Fatalf("param annotation lost: %+v", fn.Parameters[0])
	}
}

func Test_Parse_Annotation_ClearedByInterveningStatement(t *testing.T) {
	src := `
---@type number
print("unrelated")
counter = "actually a string"
`
	res := parse(t, src)
	g := wantGlobal(t, res, "counter", VTString)
	if g.HasExplicit {
		t.Fatalf("annotation must not survive an intervening statement: %+v", g)
	}
}

func Test_Parse_Annotation_TypeOverridesInference(t *testing.T) {
	src := `
---@type integer
flag = somefunc()
`
	res := parse(t, src)
	g := wantGlobal(t, res, "flag", VTNumber)
	if !g.HasExplicit {
		t.Fatalf("explicit type missing: %+v", g)
	}
}

func Test_Parse_Annotation_UnknownName_NotAnError(t *testing.T) {
	src := `
---@type Vector3
pos = makeVector()
`
	res := parse(t, src)
	g := wantGlobal(t, res, "pos", VTUnknown)
	if !g.HasExplicit {
		t.Fatalf("unrecognized annotation still overrides: %+v", g)
	}
}

func Test_Parse_FieldAnnotation_PinsTableField(t *testing.T) {
	src := `
---@field hp integer
stats = { hp = read("hp"), name = "hero" }
`
	res := parse(t, src)
	g := wantGlobal(t, res, "stats", VTTable)
	hp := g.TableFields[0]
	if hp.Name != "hp" || !hp.HasExplicit || hp.EffectiveType() != VTNumber {
		t.Fatalf("field annotation not applied: %+v", hp)
	}
	if g.TableFields[1].HasExplicit {
		t.Fatalf("field annotation leaked onto sibling: %+v", g.TableFields[1])
	}
}

func Test_Parse_Idempotent(t *testing.T) {
	src := `
score = 0
player = { x = 1, y = 2, tags = { "a", "b" } }
---@return number
function reset() end
`
	a := Parse(src, "same")
	b := Parse(src, "same")
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("parsing twice differed:\n%+v\n%+v", a, b)
	}
}

func Test_Parse_IgnoredShapes_NoDeclarations(t *testing.T) {
	src := `
if score > 0 then
end
return
print(score)
`
	res := parse(t, src)
	if len(res.Globals) != 0 || len(res.Functions) != 0 {
		t.Fatalf("control flow leaked into schema: %+v", res)
	}
}

func Test_Parse_MethodFunctions_NotTopLevel(t *testing.T) {
	res := parse(t, "function player.move(dx) end\nfunction player:hit(dmg) end")
	if len(res.Functions) != 0 {
		t.Fatalf("method-style names must not match: %v", res.Functions)
	}
}

func Test_Parse_UnterminatedTable_PartialResult(t *testing.T) {
	src := "a = 1\nbroken = {\n  x = 1\n"
	res := Parse(src, "ragged")
	wantGlobal(t, res, "a", VTNumber)
	g := wantGlobal(t, res, "broken", VTTable)
	if len(g.TableFields) != 1 || g.TableFields[0].Name != "x" {
		t.Fatalf("best-effort fields: %+v", g.TableFields)
	}
}

func Test_Parse_StemNamesResult(t *testing.T) {
	res := Parse("x = 1", "player_data")
	if res.Name != "player_data" {
		t.Fatalf("stem: %q", res.Name)
	}
}
