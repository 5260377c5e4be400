// Package typesystem implements the subtype lattice described in §3 of the
// spec: a small, totally-ordered set of scalar types plus the two lattice
// operations (bigtype, smalltype) the inference engine uses to reconcile
// mixed-type binary expressions.
package typesystem

import "fmt"

// Type is one member of qcc's closed type set. Bottom, Bit, Qbit, Rad, and
// F64 form the totally-ordered subtype lattice; Bool sits outside the
// lattice (boolean literals are never mixed arithmetically with the
// numeric/quantum types, so it participates only in equality checks).
type Type int

const (
	Bottom Type = iota
	Bit
	Qbit
	Rad
	F64
	Bool
)

var names = [...]string{
	Bottom: "<unknown>",
	Bit:    "bit",
	Qbit:   "qbit",
	Rad:    "rad",
	F64:    "f64",
	Bool:   "bool",
}

func (t Type) String() string {
	if int(t) >= 0 && int(t) < len(names) {
		return names[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// rank gives each lattice member's position in the total order
// Bottom < Bit < Qbit < Rad < F64. Bool has no position in this order; it
// is handled separately by bigtype/smalltype.
var rank = map[Type]int{
	Bottom: 0,
	Bit:    1,
	Qbit:   2,
	Rad:    3,
	F64:    4,
}

func (t Type) inLattice() bool {
	_, ok := rank[t]
	return ok
}

// Bigtype returns the higher of a and b in the subtype lattice. If either
// operand is Bool, the result is Bool only when both are Bool; otherwise
// (a mismatched Bool against a lattice type) Bigtype reports Bottom, since
// the two are not comparable under this lattice.
func Bigtype(a, b Type) Type {
	if a == Bool || b == Bool {
		if a == Bool && b == Bool {
			return Bool
		}
		return Bottom
	}
	if !a.inLattice() || !b.inLattice() {
		return Bottom
	}
	if rank[a] >= rank[b] {
		return a
	}
	return b
}

// Smalltype returns the lower of a and b in the subtype lattice, with the
// same Bool handling as Bigtype.
func Smalltype(a, b Type) Type {
	if a == Bool || b == Bool {
		if a == Bool && b == Bool {
			return Bool
		}
		return Bottom
	}
	if !a.inLattice() || !b.inLattice() {
		return Bottom
	}
	if rank[a] <= rank[b] {
		return a
	}
	return b
}

// CoercesTo reports whether a value of type from may be used where a value
// of type to is expected, per §3's declared subtyping rules: Bit and Qbit
// coerce to each other across a let binding (the lowering stage is
// responsible for the implicit measurement/wrap this implies; see
// SPEC_FULL.md's resolution of the Bit<->Qbit Open Question), and a type
// always coerces to itself.
func CoercesTo(from, to Type) bool {
	if from == to {
		return true
	}
	if (from == Bit && to == Qbit) || (from == Qbit && to == Bit) {
		return true
	}
	return false
}

// ScalarRotate reports the result type of multiplying/adding a Qbit by an
// F64 scalar: the scalar rotates the qubit, so the result stays Qbit. It
// returns (result, true) when the combination applies, or (Bottom, false)
// otherwise, letting callers fall back to ordinary equality/lattice
// handling.
func ScalarRotate(a, b Type) (Type, bool) {
	if (a == Qbit && b == F64) || (a == F64 && b == Qbit) {
		return Qbit, true
	}
	return Bottom, false
}
