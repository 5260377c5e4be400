package diagnostics

import (
	"fmt"

	"github.com/quale-lang/qcc/internal/token"
)

// Error is a LocatedError: an internal, stage-facing diagnostic that still
// carries the source Location it was raised at. Parser and lexer code (and
// the inference/mangling passes that inherited token positions from them)
// work exclusively in terms of *Error; File is filled in by the pipeline
// once the originating path is known, mirroring how a LocatedError's partial
// Location is enriched as it unwinds (see Attributes parsing, §9).
type Error struct {
	Kind     Kind
	Location Location
	Detail   string // extra context appended after the Kind's fixed sentence
	File     string
}

// NewError builds an Error at the position recorded in tok.
func NewError(kind Kind, tok token.Token, detail string) *Error {
	loc := NewLocation(tok.Path, tok.Row, tok.Col)
	return &Error{Kind: kind, Location: loc, Detail: detail, File: tok.Path}
}

// NewErrorAt builds an Error at an explicit Location, for diagnostics raised
// away from a single token (e.g. attribute parsing, which only knows a
// column until the caller enriches it).
func NewErrorAt(kind Kind, loc Location, detail string) *Error {
	return &Error{Kind: kind, Location: loc, Detail: detail, File: loc.Path}
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind.String(), e.Detail)
}

// Outward drops the Location, producing the API-boundary-facing error the
// design notes (§9, "Error surface") call for: callers outside the
// diagnostic-reporting path should never observe internal positions.
func (e *Error) Outward() *Outward {
	return &Outward{Kind: e.Kind, Detail: e.Detail}
}

// Outward is the location-free error type returned across package
// boundaries once a diagnostic has already been reported.
type Outward struct {
	Kind   Kind
	Detail string
}

func (o *Outward) Error() string {
	if o.Detail == "" {
		return o.Kind.String()
	}
	return fmt.Sprintf("%s: %s", o.Kind.String(), o.Detail)
}
