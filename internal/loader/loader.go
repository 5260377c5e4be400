// Package loader resolves a Quale compilation session: a "main" source
// file plus every module it transitively imports. It is grounded on the
// teacher's module loader (cache-by-path, Processing set for cycle
// detection) but scaled down to Quale's single-file-per-module world:
// an imported module name "Foo" resolves to "<dir>/Foo.ql" alongside the
// importing file.
package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/quale-lang/qcc/internal/ast"
	"github.com/quale-lang/qcc/internal/config"
	"github.com/quale-lang/qcc/internal/diagnostics"
	"github.com/quale-lang/qcc/internal/parser"
)

// Loader loads a main file and every module it (transitively) imports
// into one ast.Program, in discovery order.
type Loader struct {
	dir string

	loaded     map[string]*ast.Module // module name -> parsed module
	processing map[string]bool        // module name -> currently on the load stack

	Program *ast.Program
	Errors  []*diagnostics.Error

	// ImportsByModule records each module's recorded import statements,
	// keyed by module name, for internal/mangler's per-import rewrite.
	ImportsByModule map[string][]parser.Import
}

// New creates a Loader rooted at the directory containing the main file.
func New(mainPath string) *Loader {
	return &Loader{
		dir:             filepath.Dir(mainPath),
		loaded:          make(map[string]*ast.Module),
		processing:      make(map[string]bool),
		Program:         &ast.Program{},
		ImportsByModule: make(map[string][]parser.Import),
	}
}

// Load parses mainPath and every module it transitively imports, adding
// each to l.Program in discovery order. Diagnostics from any file are
// appended to l.Errors with that file's path already attached.
func (l *Loader) Load(mainPath string) {
	buf, err := os.ReadFile(mainPath)
	if err != nil {
		l.Errors = append(l.Errors, diagnostics.NewErrorAt(diagnostics.NoFile,
			diagnostics.NewLocation(mainPath, 0, 0), err.Error()))
		return
	}
	l.loadBuffer(mainPath, buf)
}

func (l *Loader) loadBuffer(path string, buf []byte) *ast.Module {
	name := parser.ModuleNameFromPath(path)

	if mod, ok := l.loaded[name]; ok {
		return mod
	}
	if l.processing[name] {
		l.Errors = append(l.Errors, diagnostics.NewErrorAt(diagnostics.ImportCycle,
			diagnostics.NewLocation(path, 0, 0),
			fmt.Sprintf("module %q imports itself transitively", name)))
		return nil
	}
	l.processing[name] = true
	defer delete(l.processing, name)

	p := parser.New(buf, path)
	mod := p.ParseFile()
	l.loaded[name] = mod
	l.Program.AddModule(mod)
	for _, nested := range p.NestedModules() {
		l.Program.AddModule(nested)
		l.loaded[nested.Name] = nested
	}

	for _, err := range p.Errors {
		if err.File == "" {
			err.File = path
		}
		l.Errors = append(l.Errors, err)
	}

	if len(p.Imports) > 0 {
		l.ImportsByModule[mod.Name] = append(l.ImportsByModule[mod.Name], p.Imports...)
	}
	for _, imp := range p.Imports {
		l.resolveImport(mod, imp)
	}

	return mod
}

// resolveImport loads the file backing imp's module (if not already
// loaded) and validates that the imported function actually exists in
// it, per §4.3's UnknownModName/UnknownImport contract.
func (l *Loader) resolveImport(importer *ast.Module, imp parser.Import) {
	if l.processing[imp.ModuleName] {
		l.Errors = append(l.Errors, diagnostics.NewErrorAt(diagnostics.ImportCycle,
			imp.Loc, fmt.Sprintf("module %q imports itself transitively", imp.ModuleName)))
		return
	}

	target := l.Program.Lookup(imp.ModuleName)
	if target == nil {
		candidate := filepath.Join(l.dir, imp.ModuleName+config.SourceFileExt)
		buf, err := os.ReadFile(candidate)
		if err != nil {
			l.Errors = append(l.Errors, diagnostics.NewErrorAt(diagnostics.UnknownModName,
				imp.Loc, imp.ModuleName))
			return
		}
		target = l.loadBuffer(candidate, buf)
		if target == nil {
			return
		}
	}

	if target.Lookup(imp.FunctionName) == nil {
		l.Errors = append(l.Errors, diagnostics.NewErrorAt(diagnostics.UnknownImport,
			imp.Loc, imp.ModuleName+"::"+imp.FunctionName))
	}
}
