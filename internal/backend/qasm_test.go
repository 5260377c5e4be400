package backend

import (
	"strings"
	"testing"

	"github.com/quale-lang/qcc/internal/ast"
	"github.com/quale-lang/qcc/internal/typesystem"
)

func TestTranslateOnlyNonDeterBecomesGate(t *testing.T) {
	gateFn := &ast.Function{
		Name:  "lib$rotate",
		Attrs: ast.Attributes{{Kind: ast.NonDeter}},
		Params: []*ast.Var{
			{Name: "theta", Type_: typesystem.F64},
			{Name: "q", Type_: typesystem.Qbit},
		},
	}
	plainFn := &ast.Function{Name: "lib$helper"}
	mod := &ast.Module{Name: "lib", Functions: []*ast.Function{gateFn, plainFn}}
	prog := &ast.Program{Modules: []*ast.Module{mod}}

	qasm := Translate(prog)

	if len(qasm.Gates) != 1 {
		t.Fatalf("got %d gates, want 1", len(qasm.Gates))
	}
	if qasm.Gates[0].Name != "lib$rotate" {
		t.Errorf("gate name = %q, want lib$rotate", qasm.Gates[0].Name)
	}
}

func TestGateFromFunctionSplitsParams(t *testing.T) {
	fn := &ast.Function{
		Name: "f",
		Params: []*ast.Var{
			{Name: "theta", Type_: typesystem.F64},
			{Name: "q0", Type_: typesystem.Qbit},
			{Name: "q1", Type_: typesystem.Qbit},
		},
	}
	gate := gateFromFunction(fn)

	if len(gate.Params) != 1 || gate.Params[0] != "theta" {
		t.Errorf("scalar Params = %v, want [theta]", gate.Params)
	}
	if len(gate.Qargs) != 2 {
		t.Fatalf("got %d qargs, want 2", len(gate.Qargs))
	}
	if gate.Qargs[0].Name != "q0" || gate.Qargs[0].Len != 1 {
		t.Errorf("Qargs[0] = %+v, want {q0 1}", gate.Qargs[0])
	}
}

func TestQasmModuleString(t *testing.T) {
	mod := New()
	mod.Includes = append(mod.Includes, QasmInclude("qelib1.inc"))
	mod.Gates = append(mod.Gates, QasmGate{
		Name:   "rotate",
		Params: []string{"theta"},
		Qargs:  []Qreg{{Name: "q", Len: 1}},
	})

	out := mod.String()
	if !strings.HasPrefix(out, "OPENQASM 2.0;\n") {
		t.Errorf("missing version header, got: %q", out)
	}
	if !strings.Contains(out, `include "qelib1.inc";`) {
		t.Errorf("missing include line, got: %q", out)
	}
	if !strings.Contains(out, "gate rotate(theta) q") {
		t.Errorf("missing gate signature, got: %q", out)
	}
}

func TestGenerateWritesFile(t *testing.T) {
	mod := New()
	mod.Gates = append(mod.Gates, QasmGate{Name: "noop"})

	path := t.TempDir() + "/out.s"
	if err := mod.Generate(path); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
}
