package ast

import "github.com/quale-lang/qcc/internal/diagnostics"

// AttrKind is one of the two recognized attribute names.
type AttrKind int

const (
	Deter AttrKind = iota
	NonDeter
)

// Attribute is one parsed `#[name]` entry.
type Attribute struct {
	Kind AttrKind
	Loc  diagnostics.Location
}

// Attributes is the attribute list attached to a Function. Empty is the
// common case.
type Attributes []Attribute

// IsNonDeter reports whether the list contains #[nondeter], the backend's
// criterion for emitting a gate.
func (a Attributes) IsNonDeter() bool {
	for _, attr := range a {
		if attr.Kind == NonDeter {
			return true
		}
	}
	return false
}

// IsDeter reports whether the list contains #[deter].
func (a Attributes) IsDeter() bool {
	for _, attr := range a {
		if attr.Kind == Deter {
			return true
		}
	}
	return false
}
