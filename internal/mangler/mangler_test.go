package mangler

import (
	"testing"

	"github.com/quale-lang/qcc/internal/ast"
	"github.com/quale-lang/qcc/internal/parser"
	"github.com/quale-lang/qcc/internal/typesystem"
)

func callTo(name string) *ast.FnCall {
	return &ast.FnCall{Ref: &ast.FunctionRef{Name: name, OutputType: typesystem.Bottom}}
}

func TestManglePeerCall(t *testing.T) {
	helper := &ast.Function{Name: "helper"}
	caller := &ast.Function{
		Name: "caller",
		Body: []ast.Expr{callTo("helper")},
	}
	mod := &ast.Module{Name: "lib", Functions: []*ast.Function{helper, caller}}
	prog := &ast.Program{Modules: []*ast.Module{mod}}

	if errs := Mangle(prog, nil); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if helper.Name != "lib$helper" {
		t.Errorf("helper.Name = %q, want lib$helper", helper.Name)
	}
	if caller.Name != "lib$caller" {
		t.Errorf("caller.Name = %q, want lib$caller", caller.Name)
	}
	call := caller.Body[0].(*ast.FnCall)
	if call.Ref.Name != "lib$helper" {
		t.Errorf("call target = %q, want lib$helper", call.Ref.Name)
	}
}

func TestMangleDoesNotTouchNonPeerCalls(t *testing.T) {
	caller := &ast.Function{Name: "caller", Body: []ast.Expr{callTo("external")}}
	mod := &ast.Module{Name: "lib", Functions: []*ast.Function{caller}}
	prog := &ast.Program{Modules: []*ast.Module{mod}}

	Mangle(prog, nil)

	call := caller.Body[0].(*ast.FnCall)
	if call.Ref.Name != "external" {
		t.Errorf("call target = %q, want untouched external", call.Ref.Name)
	}
}

func TestMangleImportedCall(t *testing.T) {
	caller := &ast.Function{Name: "caller", Body: []ast.Expr{callTo("rotate")}}
	mainMod := &ast.Module{Name: "main", Functions: []*ast.Function{caller}}
	libMod := &ast.Module{Name: "mathlib", Functions: []*ast.Function{{Name: "rotate"}}}
	prog := &ast.Program{Modules: []*ast.Module{mainMod, libMod}}

	imports := map[string][]parser.Import{
		"main": {{ModuleName: "mathlib", FunctionName: "rotate"}},
	}

	if errs := Mangle(prog, imports); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	call := caller.Body[0].(*ast.FnCall)
	if call.Ref.Name != "mathlib$rotate" {
		t.Errorf("call target = %q, want mathlib$rotate", call.Ref.Name)
	}
}

func TestMangleRecursesThroughNestedExprs(t *testing.T) {
	inner := callTo("helper")
	cond := &ast.Conditional{
		Cond:       &ast.Literal{Kind: ast.BooleanLiteral, Boolean: true},
		TruthBlock: []ast.Expr{inner},
	}
	caller := &ast.Function{Name: "caller", Body: []ast.Expr{cond}}
	helper := &ast.Function{Name: "helper"}
	mod := &ast.Module{Name: "lib", Functions: []*ast.Function{helper, caller}}
	prog := &ast.Program{Modules: []*ast.Module{mod}}

	Mangle(prog, nil)

	if inner.Ref.Name != "lib$helper" {
		t.Errorf("nested call target = %q, want lib$helper", inner.Ref.Name)
	}
}

func TestSanitize(t *testing.T) {
	tests := map[string]string{
		"foo-bar":   "foo_bar",
		"a.b.c":     "a_b_c",
		"plainName": "plainName",
	}
	for in, want := range tests {
		if got := Sanitize(in); got != want {
			t.Errorf("Sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}
