package ast

import (
	"fmt"

	"github.com/quale-lang/qcc/internal/diagnostics"
	"github.com/quale-lang/qcc/internal/typesystem"
)

// Function is one `fn` definition.
type Function struct {
	Name        string
	Loc         diagnostics.Location
	Params      []*Var
	InputTypes  []typesystem.Type
	OutputType  typesystem.Type
	Attrs       Attributes
	Body        []Expr
}

// Module groups a set of uniquely-named functions under one name, the
// sanitized source-file stem the parser derived it from (or, for a nested
// `module { ... }` block, the declared name).
type Module struct {
	Name      string
	Loc       diagnostics.Location
	Functions []*Function
}

// AddFunction appends fn, rejecting a name already defined in m.
func (m *Module) AddFunction(fn *Function) *diagnostics.Error {
	for _, existing := range m.Functions {
		if existing.Name == fn.Name {
			return diagnostics.NewErrorAt(diagnostics.RedefinedFunction, fn.Loc,
				fmt.Sprintf("%q already defined in module %q", fn.Name, m.Name))
		}
	}
	m.Functions = append(m.Functions, fn)
	return nil
}

// Lookup returns the function named name, or nil.
func (m *Module) Lookup(name string) *Function {
	for _, fn := range m.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

// Program is an ordered sequence of Modules, in source order.
type Program struct {
	Modules []*Module
}

// MonolithModuleName is the synthetic module merge-to-monolith folds every
// module into.
const MonolithModuleName = "Main"

// Merge folds every module in p into one synthetic MonolithModuleName
// module, preserving source order: run after internal/mangler.Mangle has
// given every function a globally unique name, it leaves later stages
// (inference's function table, translation) a single flat namespace to
// walk instead of one per originating file. Merge is idempotent: calling
// it on a Program already folded into MonolithModuleName is a no-op.
func (p *Program) Merge() {
	if len(p.Modules) == 1 && p.Modules[0].Name == MonolithModuleName {
		return
	}
	monolith := &Module{Name: MonolithModuleName}
	for _, mod := range p.Modules {
		monolith.Functions = append(monolith.Functions, mod.Functions...)
	}
	p.Modules = []*Module{monolith}
}

// AddModule appends m to the program, preserving source order.
func (p *Program) AddModule(m *Module) {
	p.Modules = append(p.Modules, m)
}

// Lookup returns the module named name, or nil.
func (p *Program) Lookup(name string) *Module {
	for _, m := range p.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Functions yields every function in the program, module by module, in
// source order; used by the analyzer's function-table pass and the
// backend, both of which need a flat, program-wide view.
func (p *Program) Functions() []*Function {
	var all []*Function
	for _, m := range p.Modules {
		all = append(all, m.Functions...)
	}
	return all
}
