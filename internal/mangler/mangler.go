// Package mangler rewrites every function definition and call site to the
// fully-qualified `Module$Function` form, in two passes grounded on
// original_source/src/mangle.rs: top-level mangling (a module's own
// functions and the peer calls inside them) followed by per-import
// mangling (call sites naming an explicitly imported function).
package mangler

import (
	"strings"

	"github.com/quale-lang/qcc/internal/ast"
	"github.com/quale-lang/qcc/internal/diagnostics"
	"github.com/quale-lang/qcc/internal/parser"
)

const sep = "$"

// Mangle rewrites prog in place: every Function.Name becomes
// "<Module>$<Function>", every peer FnCall within the same module is
// rewritten likewise, and every call matching an entry in importsByModule
// (keyed by module name) is rewritten to the imported function's
// qualified name. importsByModule is typically loader.Loader.ImportsByModule.
func Mangle(prog *ast.Program, importsByModule map[string][]parser.Import) []*diagnostics.Error {
	var errs []*diagnostics.Error

	for _, mod := range prog.Modules {
		peers := make(map[string]bool, len(mod.Functions))
		for _, fn := range mod.Functions {
			peers[fn.Name] = true
		}

		for _, fn := range mod.Functions {
			for _, stmt := range fn.Body {
				mangleFns(stmt, mod.Name, peers)
			}
		}

		for _, fn := range mod.Functions {
			fn.Name = mod.Name + sep + fn.Name
		}
	}

	for modName, imports := range importsByModule {
		mod := prog.Lookup(modName)
		if mod == nil {
			continue
		}
		for _, imp := range imports {
			for _, fn := range mod.Functions {
				for _, stmt := range fn.Body {
					mangleExprCheck(stmt, imp.ModuleName, imp.FunctionName)
				}
			}
		}
	}

	return errs
}

// Sanitize replaces every non-alphanumeric byte with '_', mirroring
// original_source/src/mangle.rs's sanitize. Used for module names derived
// from file paths; internal/parser.ModuleNameFromPath applies the same
// rule directly, so this is exposed for callers sanitizing names that
// didn't come through the parser (e.g. a project config's import roots).
func Sanitize(identifier string) string {
	var b strings.Builder
	for i := 0; i < len(identifier); i++ {
		ch := identifier[i]
		if ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' {
			b.WriteByte(ch)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// mangleFns walks expr, rewriting any FnCall whose target names a peer
// function (one defined in the same module, not yet mangled) to
// "<moduleName>$<target>".
func mangleFns(expr ast.Expr, moduleName string, peers map[string]bool) {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		mangleFns(e.Lhs, moduleName, peers)
		mangleFns(e.Rhs, moduleName, peers)
	case *ast.Let:
		mangleFns(e.Value, moduleName, peers)
	case *ast.Assign:
		mangleFns(e.Value, moduleName, peers)
	case *ast.FnCall:
		for _, arg := range e.Args {
			mangleFns(arg, moduleName, peers)
		}
		if peers[e.Ref.Name] && !strings.Contains(e.Ref.Name, sep) {
			e.Ref.Name = moduleName + sep + e.Ref.Name
		}
	case *ast.Tensor:
		for _, el := range e.Elements {
			mangleFns(el, moduleName, peers)
		}
	case *ast.Conditional:
		mangleFns(e.Cond, moduleName, peers)
		for _, s := range e.TruthBlock {
			mangleFns(s, moduleName, peers)
		}
		for _, s := range e.FalseBlock {
			mangleFns(s, moduleName, peers)
		}
	case *ast.Var, *ast.Literal:
		// no call targets to rewrite
	}
}

// mangleExprCheck rewrites every FnCall named fnName (exact, unqualified
// match) to "<modName>$<fnName>", per one recorded import statement.
func mangleExprCheck(expr ast.Expr, modName, fnName string) {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		mangleExprCheck(e.Lhs, modName, fnName)
		mangleExprCheck(e.Rhs, modName, fnName)
	case *ast.Let:
		mangleExprCheck(e.Value, modName, fnName)
	case *ast.Assign:
		mangleExprCheck(e.Value, modName, fnName)
	case *ast.FnCall:
		for _, arg := range e.Args {
			mangleExprCheck(arg, modName, fnName)
		}
		if e.Ref.Name == fnName {
			e.Ref.Name = modName + sep + fnName
		}
	case *ast.Tensor:
		for _, el := range e.Elements {
			mangleExprCheck(el, modName, fnName)
		}
	case *ast.Conditional:
		mangleExprCheck(e.Cond, modName, fnName)
		for _, s := range e.TruthBlock {
			mangleExprCheck(s, modName, fnName)
		}
		for _, s := range e.FalseBlock {
			mangleExprCheck(s, modName, fnName)
		}
	case *ast.Var, *ast.Literal:
	}
}
