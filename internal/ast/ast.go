// Package ast defines the tree the parser builds and every later stage
// (mangler, analyzer, backend) walks: Program, Module, Function, Var, and
// the closed Expr union.
package ast

import (
	"github.com/quale-lang/qcc/internal/diagnostics"
	"github.com/quale-lang/qcc/internal/typesystem"
)

// Expr is any node in the Expr union: Var, Literal, BinaryExpr, Tensor,
// FnCall, Let, Assign, Conditional. Each exposes its source location and
// its (possibly not-yet-inferred) type.
type Expr interface {
	Location() diagnostics.Location
	Type() typesystem.Type
	exprNode()
}

// Var is a named, located, typed binding. Two Vars compare equal (via the
// == operator, since every field is comparable) iff all fields match.
type Var struct {
	Name          string
	Loc           diagnostics.Location
	Type_         typesystem.Type
	UnaryNegative bool
}

// IsTyped reports whether inference has assigned v a real type.
func (v *Var) IsTyped() bool { return v.Type_ != typesystem.Bottom }

func (v *Var) Location() diagnostics.Location { return v.Loc }
func (v *Var) Type() typesystem.Type          { return v.Type_ }
func (v *Var) exprNode()                      {}

// LiteralKind distinguishes the four surface literal forms.
type LiteralKind int

const (
	DigitLiteral LiteralKind = iota
	BooleanLiteral
	StrLiteral
	QbitLiteral
)

// Literal is the closed literal union: a Digit (f64), a Boolean, a string,
// or a Qbit amplitude pair. Only the field matching Kind is meaningful.
type Literal struct {
	Loc  diagnostics.Location
	Kind LiteralKind

	Digit   float64
	Boolean bool
	Str     string
	Amp0    float64
	Amp1    float64
}

func (l *Literal) Location() diagnostics.Location { return l.Loc }

// Type reports the literal's intrinsic type: F64 for a digit, Bool for a
// boolean, Bottom for a string (strings carry no lattice type), Qbit for a
// qbit amplitude pair.
func (l *Literal) Type() typesystem.Type {
	switch l.Kind {
	case DigitLiteral:
		return typesystem.F64
	case BooleanLiteral:
		return typesystem.Bool
	case QbitLiteral:
		return typesystem.Qbit
	default:
		return typesystem.Bottom
	}
}
func (l *Literal) exprNode() {}

// Opcode is a BinaryExpr's operator.
type Opcode int

const (
	Add Opcode = iota
	Sub
	Mul
	Div
	Eq
	Neq
	LT
	GT
	LTE
	GTE
)

var opcodeNames = [...]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/",
	Eq: "==", Neq: "!=", LT: "<", GT: ">", LTE: "<=", GTE: ">=",
}

func (o Opcode) String() string {
	if int(o) >= 0 && int(o) < len(opcodeNames) {
		return opcodeNames[o]
	}
	return "?"
}

// BinaryExpr is lhs Opcode rhs. ResolvedType is Bottom until the analyzer
// fills it in.
type BinaryExpr struct {
	Loc          diagnostics.Location
	Lhs          Expr
	Op           Opcode
	Rhs          Expr
	ResolvedType typesystem.Type
}

func (b *BinaryExpr) Location() diagnostics.Location { return b.Loc }
func (b *BinaryExpr) Type() typesystem.Type          { return b.ResolvedType }
func (b *BinaryExpr) exprNode()                      {}

// Tensor groups a (possibly nested) sequence of expressions. Its type is
// structural: the type of its first element, or Bottom when empty.
// Rectangularity across nested tensors is not checked.
type Tensor struct {
	Loc      diagnostics.Location
	Elements []Expr
}

func (t *Tensor) Location() diagnostics.Location { return t.Loc }
func (t *Tensor) Type() typesystem.Type {
	if len(t.Elements) == 0 {
		return typesystem.Bottom
	}
	return t.Elements[0].Type()
}
func (t *Tensor) exprNode() {}

// FunctionRef names a call target. OutputType is Bottom until the analyzer
// resolves it against the function table; InputTypes accumulates the
// argument types inference observed at this call site when the callee's
// own signature couldn't be resolved otherwise (§4.5, FnCall inference).
type FunctionRef struct {
	Name       string
	Loc        diagnostics.Location
	OutputType typesystem.Type
	InputTypes []typesystem.Type
}

// FnCall applies Ref to Args.
type FnCall struct {
	Loc  diagnostics.Location
	Ref  *FunctionRef
	Args []Expr
}

func (f *FnCall) Location() diagnostics.Location { return f.Loc }
func (f *FnCall) Type() typesystem.Type          { return f.Ref.OutputType }
func (f *FnCall) exprNode()                      {}

// Let introduces a new binding. Its own type() is Bottom; the binding's
// type lives on Binding itself once inference runs.
type Let struct {
	Loc     diagnostics.Location
	Binding *Var
	Value   Expr
}

func (l *Let) Location() diagnostics.Location { return l.Loc }
func (l *Let) Type() typesystem.Type          { return typesystem.Bottom }
func (l *Let) exprNode()                      {}

// Assign rebinds an existing Var.
type Assign struct {
	Loc     diagnostics.Location
	Target  *Var
	Value   Expr
}

func (a *Assign) Location() diagnostics.Location { return a.Loc }
func (a *Assign) Type() typesystem.Type          { return typesystem.Bottom }
func (a *Assign) exprNode()                      {}

// Conditional is an if/else. Its type is the type of TruthBlock's last
// expression, tie-broken to Bottom when either block is empty.
type Conditional struct {
	Loc         diagnostics.Location
	Cond        Expr
	TruthBlock  []Expr
	FalseBlock  []Expr
}

func (c *Conditional) Location() diagnostics.Location { return c.Loc }
func (c *Conditional) Type() typesystem.Type {
	if len(c.TruthBlock) == 0 || len(c.FalseBlock) == 0 {
		return typesystem.Bottom
	}
	return c.TruthBlock[len(c.TruthBlock)-1].Type()
}
func (c *Conditional) exprNode() {}
