// Package prettyprinter renders a typed ast.Program back to readable text,
// for the driver's --dump-ast flag. It walks the tree directly rather than
// through a Visitor (qcc's Expr union is closed and small enough that a
// type switch is simpler than a second dispatch mechanism), but otherwise
// matches the teacher's printer shape: one indenting buffer, written to
// top-down.
package prettyprinter

import (
	"bytes"
	"fmt"

	"github.com/quale-lang/qcc/internal/ast"
)

// Printer accumulates rendered text in an indented buffer.
type Printer struct {
	buf    bytes.Buffer
	indent int
}

// New returns an empty Printer.
func New() *Printer { return &Printer{} }

func (p *Printer) write(s string) { p.buf.WriteString(s) }

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *Printer) line(format string, args ...interface{}) {
	p.writeIndent()
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

// String returns everything rendered so far.
func (p *Printer) String() string { return p.buf.String() }

// Program renders prog: every module, in source order, followed by its
// functions and their bodies.
func Program(prog *ast.Program) string {
	p := New()
	for _, mod := range prog.Modules {
		p.module(mod)
	}
	return p.String()
}

func (p *Printer) module(mod *ast.Module) {
	p.line("module %s {", mod.Name)
	p.indent++
	for _, fn := range mod.Functions {
		p.function(fn)
	}
	p.indent--
	p.line("}")
}

func (p *Printer) function(fn *ast.Function) {
	attrs := ""
	if fn.Attrs.IsNonDeter() {
		attrs = "#[nondeter] "
	} else if fn.Attrs.IsDeter() {
		attrs = "#[deter] "
	}

	params := ""
	for i, param := range fn.Params {
		if i > 0 {
			params += ", "
		}
		params += fmt.Sprintf("%s: %s", param.Name, param.Type_)
	}

	p.line("%sfn %s(%s) -> %s {", attrs, fn.Name, params, fn.OutputType)
	p.indent++
	for _, stmt := range fn.Body {
		p.stmt(stmt)
	}
	p.indent--
	p.line("}")
}

func (p *Printer) stmt(e ast.Expr) {
	p.writeIndent()
	p.write(p.exprText(e))
	fmt.Fprintf(&p.buf, "  : %s\n", e.Type())
}

// exprText renders e inline, recursing without its own indentation. A
// Conditional is rendered with only the number of statements in each
// block; its sub-statements are not printed.
func (p *Printer) exprText(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Var:
		if n.UnaryNegative {
			return "-" + n.Name
		}
		return n.Name

	case *ast.Literal:
		switch n.Kind {
		case ast.DigitLiteral:
			return fmt.Sprintf("%g", n.Digit)
		case ast.BooleanLiteral:
			return fmt.Sprintf("%t", n.Boolean)
		case ast.StrLiteral:
			return fmt.Sprintf("%q", n.Str)
		case ast.QbitLiteral:
			return fmt.Sprintf("0q(%g, %g)", n.Amp0, n.Amp1)
		default:
			return "<literal>"
		}

	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", p.exprText(n.Lhs), n.Op, p.exprText(n.Rhs))

	case *ast.Tensor:
		s := "["
		for i, el := range n.Elements {
			if i > 0 {
				s += ", "
			}
			s += p.exprText(el)
		}
		return s + "]"

	case *ast.FnCall:
		s := n.Ref.Name + "("
		for i, arg := range n.Args {
			if i > 0 {
				s += ", "
			}
			s += p.exprText(arg)
		}
		return s + ")"

	case *ast.Let:
		return fmt.Sprintf("let %s = %s", n.Binding.Name, p.exprText(n.Value))

	case *ast.Assign:
		return fmt.Sprintf("%s = %s", n.Target.Name, p.exprText(n.Value))

	case *ast.Conditional:
		return fmt.Sprintf("if %s { %d stmt(s) } else { %d stmt(s) }",
			p.exprText(n.Cond), len(n.TruthBlock), len(n.FalseBlock))

	default:
		return "<???>"
	}
}
