package analyzer

import (
	"testing"

	"github.com/quale-lang/qcc/internal/ast"
	"github.com/quale-lang/qcc/internal/diagnostics"
	"github.com/quale-lang/qcc/internal/typesystem"
)

func TestInferLetFromLiteral(t *testing.T) {
	v := &ast.Var{Name: "x", Type_: typesystem.Bottom}
	let := &ast.Let{Binding: v, Value: &ast.Literal{Kind: ast.DigitLiteral, Digit: 1.0}}
	fn := &ast.Function{Name: "f", OutputType: typesystem.Bottom, Body: []ast.Expr{let}}
	mod := &ast.Module{Name: "m", Functions: []*ast.Function{fn}}
	prog := &ast.Program{Modules: []*ast.Module{mod}}

	errs := Infer(prog)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if v.Type_ != typesystem.F64 {
		t.Errorf("binding type = %s, want f64", v.Type_)
	}
	if fn.OutputType != typesystem.F64 {
		t.Errorf("fn.OutputType = %s, want f64 (inferred from last statement)", fn.OutputType)
	}
}

func TestInferBitCoercesToQbitLet(t *testing.T) {
	v := &ast.Var{Name: "q", Type_: typesystem.Qbit}
	bitVar := &ast.Var{Name: "b", Type_: typesystem.Bit}
	let := &ast.Let{Binding: v, Value: bitVar}
	fn := &ast.Function{Name: "f", OutputType: typesystem.Qbit, Body: []ast.Expr{let}}
	mod := &ast.Module{Name: "m", Functions: []*ast.Function{fn}}
	prog := &ast.Program{Modules: []*ast.Module{mod}}

	errs := Infer(prog)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestInferScalarRotateBinaryExpr(t *testing.T) {
	theta := &ast.Var{Name: "theta", Type_: typesystem.F64}
	q := &ast.Var{Name: "q", Type_: typesystem.Qbit}
	bin := &ast.BinaryExpr{Lhs: q, Op: ast.Mul, Rhs: theta, ResolvedType: typesystem.Bottom}
	fn := &ast.Function{Name: "f", OutputType: typesystem.Qbit, Body: []ast.Expr{bin}}
	mod := &ast.Module{Name: "m", Functions: []*ast.Function{fn}}
	prog := &ast.Program{Modules: []*ast.Module{mod}}

	errs := Infer(prog)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if bin.ResolvedType != typesystem.Qbit {
		t.Errorf("ResolvedType = %s, want qbit (scalar rotate)", bin.ResolvedType)
	}
}

func TestInferUnknownVarReportsUnknownType(t *testing.T) {
	unknown := &ast.Var{Name: "mystery", Type_: typesystem.Bottom}
	fn := &ast.Function{Name: "f", OutputType: typesystem.Bottom, Body: []ast.Expr{unknown}}
	mod := &ast.Module{Name: "m", Functions: []*ast.Function{fn}}
	prog := &ast.Program{Modules: []*ast.Module{mod}}

	errs := Infer(prog)
	if len(errs) == 0 {
		t.Fatal("expected an UnknownType error for an unresolvable variable")
	}
	if errs[0].Kind != diagnostics.UnknownType {
		t.Errorf("Kind = %v, want UnknownType", errs[0].Kind)
	}
}

func TestInferConditionalRequiresMatchingBranchTypes(t *testing.T) {
	cond := &ast.Conditional{
		Cond:       &ast.Literal{Kind: ast.BooleanLiteral, Boolean: true},
		TruthBlock: []ast.Expr{&ast.Literal{Kind: ast.DigitLiteral, Digit: 1}},
		FalseBlock: []ast.Expr{&ast.Literal{Kind: ast.BooleanLiteral, Boolean: false}},
	}
	// Mismatched branches resolve the conditional to Bottom; the error
	// surfaces against the function's declared return type.
	fn := &ast.Function{Name: "f", OutputType: typesystem.F64, Body: []ast.Expr{cond}}
	mod := &ast.Module{Name: "m", Functions: []*ast.Function{fn}}
	prog := &ast.Program{Modules: []*ast.Module{mod}}

	errs := Infer(prog)
	if len(errs) == 0 {
		t.Fatal("expected a type error for mismatched conditional branches")
	}
}

func TestBuildFunctionTableRegistersBareAndMangledNames(t *testing.T) {
	fn := &ast.Function{Name: "lib$helper", OutputType: typesystem.F64}
	mod := &ast.Module{Name: "lib", Functions: []*ast.Function{fn}}
	prog := &ast.Program{Modules: []*ast.Module{mod}}

	table := buildFunctionTable(prog)

	if typ, ok := table.Lookup("lib$helper"); !ok || typ != typesystem.F64 {
		t.Errorf("Lookup(lib$helper) = (%s, %v), want (f64, true)", typ, ok)
	}
	if typ, ok := table.Lookup("helper"); !ok || typ != typesystem.F64 {
		t.Errorf("Lookup(helper) = (%s, %v), want (f64, true)", typ, ok)
	}
}
