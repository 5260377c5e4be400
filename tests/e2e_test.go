// Package tests holds multi-file, end-to-end fixtures that exercise the
// full lex→parse→mangle→infer→translate pipeline against real files on
// disk — the one scenario a package-level _test.go can't cover, since it
// needs an importer and an imported module living in the same directory.
package tests

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/quale-lang/qcc/internal/ast"
	"github.com/quale-lang/qcc/internal/diagnostics"
	"github.com/quale-lang/qcc/internal/pipeline"
)

const crossModuleFixture = `
-- main.ql --
import mathlib::rotate;

#[nondeter]
fn entry(theta: f64, q: qbit): qbit {
	rotate(theta, q)
}
-- mathlib.ql --
#[nondeter]
fn rotate(theta: f64, q: qbit): qbit {
	q
}
`

func writeArchive(t *testing.T, archive string) string {
	t.Helper()
	dir := t.TempDir()
	ar := txtar.Parse([]byte(archive))
	for _, f := range ar.Files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			t.Fatalf("writing fixture file %s: %v", f.Name, err)
		}
	}
	return dir
}

func TestCrossModuleImportCompilesToQasm(t *testing.T) {
	dir := writeArchive(t, crossModuleFixture)
	mainPath := filepath.Join(dir, "main.ql")

	source, err := os.ReadFile(mainPath)
	if err != nil {
		t.Fatalf("reading fixture main file: %v", err)
	}

	ctx := pipeline.NewPipelineContext(mainPath, source)
	ctx = pipeline.New(
		pipeline.LoadStage{},
		pipeline.MangleStage{},
		pipeline.MergeStage{},
		pipeline.InferStage{},
		pipeline.TranslateStage{},
	).Run(ctx)

	if ctx.HasErrors() {
		t.Fatalf("unexpected pipeline errors: %v", ctx.Errors)
	}
	if ctx.Program == nil {
		t.Fatal("pipeline produced no program")
	}
	if len(ctx.Program.Modules) != 1 {
		t.Fatalf("got %d modules, want 1 (merged into the monolith)", len(ctx.Program.Modules))
	}

	mainMod := ctx.Program.Lookup(ast.MonolithModuleName)
	if mainMod == nil {
		t.Fatal("monolith module not found")
	}
	if mainMod.Lookup("main$entry") == nil {
		t.Error("entry function was not mangled to main$entry")
	}

	if ctx.QasmModule == nil {
		t.Fatal("no QASM module produced")
	}
	if len(ctx.QasmModule.Gates) != 2 {
		t.Fatalf("got %d gates, want 2 (one per #[nondeter] function)", len(ctx.QasmModule.Gates))
	}

	rendered := ctx.QasmModule.String()
	if !strings.HasPrefix(rendered, "OPENQASM 2.0;\n") {
		t.Errorf("missing version header, got: %q", rendered)
	}
	if !strings.Contains(rendered, "mathlib$rotate") {
		t.Errorf("expected a gate for the imported rotate, got: %q", rendered)
	}
}

const unknownImportFixture = `
-- main.ql --
import ghost::vanish;

fn entry() {
	vanish()
}
`

func TestUnresolvedImportReportsError(t *testing.T) {
	dir := writeArchive(t, unknownImportFixture)
	mainPath := filepath.Join(dir, "main.ql")

	source, err := os.ReadFile(mainPath)
	if err != nil {
		t.Fatalf("reading fixture main file: %v", err)
	}

	ctx := pipeline.NewPipelineContext(mainPath, source)
	ctx = pipeline.New(pipeline.LoadStage{}).Run(ctx)

	if !ctx.HasErrors() {
		t.Fatal("expected an UnknownModName error for a nonexistent import target")
	}
}

const cyclicImportFixture = `
-- main.ql --
import helper::assist;

fn entry() {
	assist()
}
-- helper.ql --
import main::entry;

fn assist() {
	entry()
}
`

func TestImportCycleIsDetected(t *testing.T) {
	dir := writeArchive(t, cyclicImportFixture)
	mainPath := filepath.Join(dir, "main.ql")

	source, err := os.ReadFile(mainPath)
	if err != nil {
		t.Fatalf("reading fixture main file: %v", err)
	}

	ctx := pipeline.NewPipelineContext(mainPath, source)
	ctx = pipeline.New(pipeline.LoadStage{}).Run(ctx)

	if !ctx.HasErrors() {
		t.Fatal("expected an ImportCycle error for a two-module import cycle")
	}
	found := false
	for _, e := range ctx.Errors {
		if e.Kind == diagnostics.ImportCycle {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("no ImportCycle error among: %v", ctx.Errors)
	}
}
