// Package backend implements qcc's QASM translator (§4.6): a shallow
// lowering of the typed, mangled AST to an OpenQASM 2.0 QasmModule. Only
// functions tagged #[nondeter] become gates; the gate body itself is a
// placeholder, per spec — "the engineering rigor is in the front-end".
package backend

import (
	"fmt"
	"os"
	"strings"

	"github.com/quale-lang/qcc/internal/ast"
	"github.com/quale-lang/qcc/internal/typesystem"
)

// Qreg is a named quantum register reference, shaped after
// original_source/src/codegen/qasm.rs's Qreg: a gate qarg derived from a
// #[nondeter] function's Qbit-typed parameters.
type Qreg struct {
	Name string
	Len  int
}

func (q Qreg) String() string { return fmt.Sprintf("qreg %s[%d]", q.Name, q.Len) }

// QasmGate is one `gate name(params) qargs { ... }` block.
type QasmGate struct {
	Name   string
	Params []string
	Qargs  []Qreg
}

func (g QasmGate) String() string {
	names := make([]string, len(g.Qargs))
	for i, q := range g.Qargs {
		names[i] = q.Name
	}
	qargsStr := strings.Join(names, ", ")

	if len(g.Params) > 0 {
		return fmt.Sprintf("\ngate %s(%s) %s\n{\n    // body: feature to be implemented\n}\n",
			g.Name, strings.Join(g.Params, ", "), qargsStr)
	}
	return fmt.Sprintf("\ngate %s %s\n{\n    // body: feature to be implemented\n}\n", g.Name, qargsStr)
}

// QasmInclude is one `include "path";` header line.
type QasmInclude string

func (i QasmInclude) String() string { return fmt.Sprintf("include %q;", string(i)) }

// QasmModule is the translator's output: a fixed version string, zero or
// more includes, and one gate per #[nondeter] function.
type QasmModule struct {
	Version  string
	Includes []QasmInclude
	Gates    []QasmGate
}

// New returns an empty QasmModule at the fixed 2.0 version.
func New() *QasmModule {
	return &QasmModule{Version: "2.0"}
}

func (m *QasmModule) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "OPENQASM %s;\n", m.Version)
	for _, inc := range m.Includes {
		fmt.Fprintln(&b, inc.String())
	}
	for _, gate := range m.Gates {
		b.WriteString(gate.String())
	}
	return b.String()
}

// Generate writes m's rendered text to path.
func (m *QasmModule) Generate(path string) error {
	return os.WriteFile(path, []byte(m.String()), 0o644)
}

// Translate lowers prog's #[nondeter] functions into gates. prog is
// expected to already be mangled and typed (i.e. Translate runs after
// internal/mangler.Mangle and internal/analyzer.Infer).
func Translate(prog *ast.Program) *QasmModule {
	mod := New()
	for _, fn := range prog.Functions() {
		if !fn.Attrs.IsNonDeter() {
			continue
		}
		mod.Gates = append(mod.Gates, gateFromFunction(fn))
	}
	return mod
}

// gateFromFunction splits fn's parameters into scalar gate params
// (anything not Qbit-typed, e.g. a rotation angle) and qubit qargs
// (Qbit-typed params), matching the original's Qreg::new(name, len)
// shape: each qarg is a single-qubit register named after the parameter.
func gateFromFunction(fn *ast.Function) QasmGate {
	gate := QasmGate{Name: fn.Name}
	for _, p := range fn.Params {
		if p.Type_ == typesystem.Qbit {
			gate.Qargs = append(gate.Qargs, Qreg{Name: p.Name, Len: 1})
		} else {
			gate.Params = append(gate.Params, p.Name)
		}
	}
	return gate
}
