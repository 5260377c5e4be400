// Package analyzer implements qcc's two-pass type inference (§4.5) and,
// separately, the trivial `--analyze` AST walk the driver can opt into.
// Inference is deliberately single-pass over functions (once the
// program-wide function table is built): it does not iterate to a
// fixpoint, so a program that needs multi-round inference surfaces an
// UnknownType diagnostic for the residual, exactly as the original
// design note describes.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/quale-lang/qcc/internal/ast"
	"github.com/quale-lang/qcc/internal/diagnostics"
	"github.com/quale-lang/qcc/internal/symbols"
	"github.com/quale-lang/qcc/internal/typesystem"
)

// Infer runs type inference over every module in prog, mutating Var,
// FnCall, and Function.OutputType fields in place. It returns every
// diagnostic raised; the caller reports TypeError to the driver if the
// slice is non-empty (mirroring original_source/src/inference.rs's
// seen_errors flag).
func Infer(prog *ast.Program) []*diagnostics.Error {
	var errs []*diagnostics.Error

	fnTable := buildFunctionTable(prog)

	for _, mod := range prog.Modules {
		for _, fn := range mod.Functions {
			errs = append(errs, inferFunction(fn, fnTable)...)
		}
	}

	return errs
}

// buildFunctionTable pre-builds the program-wide function table before
// any function body is visited, so forward and cross-module calls
// resolve regardless of declaration order. Each function is entered
// under both its current (by now mangled, "Module$Function") name and
// its bare suffix, per §4.5.
func buildFunctionTable(prog *ast.Program) *symbols.FunctionTable {
	table := symbols.NewFunctionTable()
	for _, fn := range prog.Functions() {
		table.Add(fn.Name, fn.OutputType)
		if idx := strings.LastIndex(fn.Name, "$"); idx >= 0 {
			table.Add(fn.Name[idx+1:], fn.OutputType)
		}
	}
	return table
}

func inferFunction(fn *ast.Function, fnTable *symbols.FunctionTable) []*diagnostics.Error {
	var errs []*diagnostics.Error

	paramTable := symbols.NewVarTable()
	for _, p := range fn.Params {
		paramTable.Push(p.Name, p.Type_)
	}

	localTable := symbols.NewVarTable()
	for _, stmt := range fn.Body {
		gatherAlreadyTyped(stmt, localTable)
	}

	for _, stmt := range fn.Body {
		typ := inferExpr(stmt)
		if typ == typesystem.Bottom {
			if err := inferFromTable(stmt, paramTable, localTable, fnTable); err != nil {
				errs = append(errs, err)
			}
		}

		if let, ok := stmt.(*ast.Let); ok && let.Binding.IsTyped() {
			localTable.Push(let.Binding.Name, let.Binding.Type_)
		}
	}

	if len(fn.Body) == 0 {
		return errs
	}
	last := fn.Body[len(fn.Body)-1]
	lastType := inferExpr(last)

	if fn.OutputType == typesystem.Bottom && lastType != typesystem.Bottom {
		fn.OutputType = lastType
	} else if lastType != fn.OutputType {
		errs = append(errs, diagnostics.NewErrorAt(diagnostics.TypeMismatch, last.Location(),
			fmt.Sprintf("between %q (%s) and declared return type (%s)", fn.Name, lastType, fn.OutputType)))
	}

	return errs
}

// inferExpr walks e bottom-up, returning the type it can fully resolve,
// or typesystem.Bottom when it cannot (the Go stand-in for Rust's
// Option<Type>::None, since Bottom already means "unknown").
func inferExpr(e ast.Expr) typesystem.Type {
	switch n := e.(type) {
	case *ast.Var:
		return n.Type_

	case *ast.Literal:
		return n.Type()

	case *ast.BinaryExpr:
		lt := inferExpr(n.Lhs)
		rt := inferExpr(n.Rhs)
		if lt == typesystem.Bottom || rt == typesystem.Bottom {
			return typesystem.Bottom
		}
		if lt == rt {
			n.ResolvedType = lt
			return lt
		}
		if result, ok := typesystem.ScalarRotate(lt, rt); ok {
			n.ResolvedType = result
			return result
		}
		return typesystem.Bottom

	case *ast.Tensor:
		if len(n.Elements) == 0 {
			return typesystem.Bottom
		}
		first := inferExpr(n.Elements[0])
		if first == typesystem.Bottom {
			return typesystem.Bottom
		}
		for _, el := range n.Elements[1:] {
			if inferExpr(el) != first {
				return typesystem.Bottom
			}
		}
		return first

	case *ast.FnCall:
		if n.Ref.OutputType == typesystem.Bottom && len(n.Args) != 0 {
			for _, arg := range n.Args {
				argType := inferExpr(arg)
				if argType == typesystem.Bottom {
					return typesystem.Bottom
				}
				n.Ref.InputTypes = append(n.Ref.InputTypes, argType)
			}
		}
		return n.Ref.OutputType

	case *ast.Let:
		if !n.Binding.IsTyped() {
			rt := inferExpr(n.Value)
			if rt == typesystem.Bottom {
				return typesystem.Bottom
			}
			n.Binding.Type_ = rt
			return rt
		}
		lt := n.Binding.Type_
		rt := inferExpr(n.Value)
		if rt == typesystem.Bottom || !typesystem.CoercesTo(rt, lt) && rt != lt {
			return typesystem.Bottom
		}
		return lt

	case *ast.Conditional:
		truthType := blockLastType(n.TruthBlock)
		falseType := blockLastType(n.FalseBlock)
		if truthType == falseType {
			return truthType
		}
		return typesystem.Bottom

	default:
		return typesystem.Bottom
	}
}

func blockLastType(block []ast.Expr) typesystem.Type {
	if len(block) == 0 {
		return typesystem.Bottom
	}
	return inferExpr(block[len(block)-1])
}

// gatherAlreadyTyped collects every already-typed Var reference reachable
// from e into table, the local symbol table's seed before the main
// inference walk runs.
func gatherAlreadyTyped(e ast.Expr, table *symbols.VarTable) {
	switch n := e.(type) {
	case *ast.Var:
		if n.IsTyped() {
			table.Push(n.Name, n.Type_)
		}
	case *ast.BinaryExpr:
		gatherAlreadyTyped(n.Lhs, table)
		gatherAlreadyTyped(n.Rhs, table)
	case *ast.FnCall:
		for _, arg := range n.Args {
			gatherAlreadyTyped(arg, table)
		}
	case *ast.Let:
		if n.Binding.IsTyped() {
			table.Push(n.Binding.Name, n.Binding.Type_)
		}
		gatherAlreadyTyped(n.Value, table)
	case *ast.Assign:
		gatherAlreadyTyped(n.Value, table)
	case *ast.Tensor:
		for _, el := range n.Elements {
			gatherAlreadyTyped(el, table)
		}
	case *ast.Conditional:
		gatherAlreadyTyped(n.Cond, table)
		for _, s := range n.TruthBlock {
			gatherAlreadyTyped(s, table)
		}
		for _, s := range n.FalseBlock {
			gatherAlreadyTyped(s, table)
		}
	}
}

// inferFromTable is the table-driven fallback for an expression
// inferExpr could not fully resolve: it fills in Var and FnCall types
// from the parameter/local/function tables, and flags a hard conflict in
// a Let binding. It returns nil when nothing conflicts (a FnCall target
// missing from the function table is left untyped without an error), an
// UnknownType Error for a Var found in neither the parameter nor the local
// table, or a TypeMismatch Error for a Let whose value conflicts with its
// declared type.
func inferFromTable(e ast.Expr, paramT, localT *symbols.VarTable, fnT *symbols.FunctionTable) *diagnostics.Error {
	switch n := e.(type) {
	case *ast.Var:
		if n.IsTyped() {
			return nil
		}
		if typ, ok := paramT.Lookup(n.Name); ok {
			n.Type_ = typ
			return nil
		}
		if typ, ok := localT.Lookup(n.Name); ok {
			n.Type_ = typ
			return nil
		}
		return diagnostics.NewErrorAt(diagnostics.UnknownType, n.Loc, fmt.Sprintf("for %q", n.Name))

	case *ast.BinaryExpr:
		if err := inferFromTable(n.Lhs, paramT, localT, fnT); err != nil {
			return err
		}
		return inferFromTable(n.Rhs, paramT, localT, fnT)

	case *ast.FnCall:
		for _, arg := range n.Args {
			if err := inferFromTable(arg, paramT, localT, fnT); err != nil {
				return err
			}
		}
		if n.Ref.OutputType == typesystem.Bottom {
			if typ, ok := fnT.Lookup(n.Ref.Name); ok {
				n.Ref.OutputType = typ
			}
		}
		return nil

	case *ast.Let:
		if err := inferFromTable(n.Value, paramT, localT, fnT); err != nil {
			return err
		}
		if !n.Binding.IsTyped() {
			return nil
		}
		rt := inferExpr(n.Value)
		if rt != typesystem.Bottom && rt != n.Binding.Type_ && !typesystem.CoercesTo(rt, n.Binding.Type_) {
			return diagnostics.NewErrorAt(diagnostics.TypeMismatch, n.Loc,
				fmt.Sprintf("between `%s` and declared type %s", n.Binding.Name, n.Binding.Type_))
		}
		return nil

	case *ast.Tensor:
		for _, el := range n.Elements {
			if err := inferFromTable(el, paramT, localT, fnT); err != nil {
				return err
			}
		}
		return nil

	case *ast.Conditional:
		if err := inferFromTable(n.Cond, paramT, localT, fnT); err != nil {
			return err
		}
		for _, s := range n.TruthBlock {
			if err := inferFromTable(s, paramT, localT, fnT); err != nil {
				return err
			}
		}
		for _, s := range n.FalseBlock {
			if err := inferFromTable(s, paramT, localT, fnT); err != nil {
				return err
			}
		}
		return nil

	default:
		return nil
	}
}
