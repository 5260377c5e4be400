// Package symbols implements the small, append-only symbol tables the
// type inference engine builds per function: a parameter table, a local
// table, and a program-wide function table. Grounded on
// original_source/src/inference.rs's generic SymbolTable<T>, specialized
// here to the two concrete element types qcc needs.
package symbols

import "github.com/quale-lang/qcc/internal/typesystem"

// VarTable holds *ast.Var-shaped entries by name; it is used for both the
// parameter table and the local (Let-bound) table. It only needs enough
// of ast.Var to answer "is this name typed, and as what", so it stores
// name/type pairs directly rather than importing the ast package.
type VarTable struct {
	names []string
	types []typesystem.Type
}

// NewVarTable returns an empty table.
func NewVarTable() *VarTable {
	return &VarTable{}
}

// Push records one (name, type) entry.
func (t *VarTable) Push(name string, typ typesystem.Type) {
	t.names = append(t.names, name)
	t.types = append(t.types, typ)
}

// Lookup returns the type of the most recently pushed entry named name,
// and whether it is typed (non-Bottom). Later pushes shadow earlier ones,
// matching a Let rebinding a name deeper in a block.
func (t *VarTable) Lookup(name string) (typesystem.Type, bool) {
	for i := len(t.names) - 1; i >= 0; i-- {
		if t.names[i] == name {
			typ := t.types[i]
			return typ, typ != typesystem.Bottom
		}
	}
	return typesystem.Bottom, false
}

// FunctionTable maps a function name (bare or "Module$Function"
// qualified — inference's pre-build step inserts both spellings, per
// §4.5's function-table construction) to its declared output type.
type FunctionTable struct {
	byName map[string]typesystem.Type
}

// NewFunctionTable returns an empty table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{byName: make(map[string]typesystem.Type)}
}

// Add records name -> outputType, without overwriting an existing entry,
// even one whose type is Bottom (the first function table build wins; spec.md
// treats this as a stable, one-time construction before any body is
// visited).
func (t *FunctionTable) Add(name string, outputType typesystem.Type) {
	if _, exists := t.byName[name]; !exists {
		t.byName[name] = outputType
	}
}

// Lookup returns name's output type and whether it is known at all
// (present in the table, regardless of whether that type is Bottom).
func (t *FunctionTable) Lookup(name string) (typesystem.Type, bool) {
	typ, ok := t.byName[name]
	return typ, ok
}
