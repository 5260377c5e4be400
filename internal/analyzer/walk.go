package analyzer

import "github.com/quale-lang/qcc/internal/ast"

// Walk performs the `--analyze` flag's trivial traversal: every function
// body in prog is visited once, only to guarantee the tree built by the
// parser is actually walkable end to end. It returns the number of
// top-level statements visited; callers with nothing more specific to do
// with the count (the driver, at present) only care that Walk returned
// without panicking.
func Walk(prog *ast.Program) int {
	n := 0
	for _, fn := range prog.Functions() {
		for _, stmt := range fn.Body {
			n += walkExpr(stmt)
		}
	}
	return n
}

func walkExpr(e ast.Expr) int {
	if e == nil {
		return 0
	}
	n := 1
	switch v := e.(type) {
	case *ast.BinaryExpr:
		n += walkExpr(v.Lhs) + walkExpr(v.Rhs)
	case *ast.Tensor:
		for _, el := range v.Elements {
			n += walkExpr(el)
		}
	case *ast.FnCall:
		for _, arg := range v.Args {
			n += walkExpr(arg)
		}
	case *ast.Let:
		n += walkExpr(v.Value)
	case *ast.Assign:
		n += walkExpr(v.Value)
	case *ast.Conditional:
		n += walkExpr(v.Cond)
		for _, s := range v.TruthBlock {
			n += walkExpr(s)
		}
		for _, s := range v.FalseBlock {
			n += walkExpr(s)
		}
	}
	return n
}
