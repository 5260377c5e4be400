// Command qcc compiles a single Quale (.ql) source file to OpenQASM 2.0,
// driving the lex→parse→mangle→merge→infer→translate pipeline in
// internal/pipeline. The flag surface is exactly §6.1: a positional source
// path plus the flags documented in usage().
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/quale-lang/qcc/internal/analyzer"
	"github.com/quale-lang/qcc/internal/config"
	"github.com/quale-lang/qcc/internal/diagnostics"
	"github.com/quale-lang/qcc/internal/pipeline"
	"github.com/quale-lang/qcc/internal/prettyprinter"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: qcc <file.ql> [flags]

flags:
  --help, -h        print this message and exit
  --analyze         run the trivial post-parse AST walk
  --dump-ast        print the AST after inference
  --dump-ast-only   print the AST and exit before translation
  --dump-qasm       print the emitted QASM to stdout
  -O0|-O1|-O2|-Og   optimizer level (informational)
  -o <path>         output file path (default: replace .ql with .s)
  -d, --debug       enable verbose driver diagnostics`)
}

// parseArgs turns args (os.Args[1:]) into a config.Config, per §6.1's
// exhaustive flag contract. A bare "-o" with no following argument is
// allowed — it simply leaves OutputPath at its default.
func parseArgs(args []string) (config.Config, *diagnostics.Error) {
	cfg := config.New()
	sawSource := false

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--help", "-h":
			usage()
			os.Exit(0)
		case "--analyze":
			cfg.Analyzer.Enabled = true
		case "--dump-ast":
			cfg.DumpAST = true
		case "--dump-ast-only":
			cfg.DumpASTOnly = true
		case "--dump-qasm":
			cfg.DumpQASM = true
		case "-O0":
			cfg.Optimizer.Level = 0
		case "-O1":
			cfg.Optimizer.Level = 1
		case "-O2":
			cfg.Optimizer.Level = 2
		case "-Og":
			cfg.Optimizer.Level = 3
		case "-d", "--debug":
			cfg.Debug = true
		case "-o":
			if i+1 < len(args) {
				cfg.OutputPath = args[i+1]
				i++
			}
		default:
			if len(arg) > 0 && arg[0] == '-' {
				return cfg, diagnostics.NewErrorAt(diagnostics.NoSuchArg,
					diagnostics.NewLocation("", 0, 0), arg)
			}
			cfg.SourcePath = arg
			sawSource = true
		}
	}

	if !sawSource {
		return cfg, diagnostics.NewErrorAt(diagnostics.NoFile, diagnostics.NewLocation("", 0, 0), "")
	}
	if !config.HasSourceExt(cfg.SourcePath) {
		return cfg, diagnostics.NewErrorAt(diagnostics.InvalidArgs, diagnostics.NewLocation("", 0, 0),
			fmt.Sprintf("%q does not end in %s", cfg.SourcePath, config.SourceFileExt))
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = config.DefaultOutputPath(cfg.SourcePath)
	}
	return cfg, nil
}

func main() {
	reporter := diagnostics.NewReporter(os.Stderr)

	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		reporter.Report(err)
		os.Exit(1)
	}

	source, rerr := os.ReadFile(cfg.SourcePath)
	if rerr != nil {
		reporter.Report(diagnostics.NewErrorAt(diagnostics.NoFile,
			diagnostics.NewLocation(cfg.SourcePath, 0, 0), rerr.Error()))
		os.Exit(1)
	}
	reporter.WithSource(cfg.SourcePath, source)

	if project, perr := config.LoadProject(filepath.Dir(cfg.SourcePath)); perr == nil {
		if cfg.Optimizer.Level == 0 && project.DefaultOptLv != 0 {
			cfg.Optimizer.Level = project.DefaultOptLv
		}
	}

	if cfg.Debug {
		fmt.Fprintln(os.Stderr, cfg)
	}

	ctx := pipeline.NewPipelineContext(cfg.SourcePath, source)

	stages := []pipeline.Processor{
		pipeline.LoadStage{}, pipeline.MangleStage{}, pipeline.MergeStage{}, pipeline.InferStage{},
	}
	if !cfg.DumpASTOnly {
		stages = append(stages, pipeline.TranslateStage{})
	}
	ctx = pipeline.New(stages...).Run(ctx)

	if cfg.Analyzer.Enabled && ctx.Program != nil {
		n := analyzer.Walk(ctx.Program)
		if cfg.Debug {
			fmt.Fprintf(os.Stderr, "qcc: analyzer walked %d statement(s)\n", n)
		}
	}

	if cfg.DumpAST || cfg.DumpASTOnly {
		if ctx.Program != nil {
			fmt.Printf("; qcc session %s\n", ctx.SessionID)
			fmt.Println(prettyprinter.Program(ctx.Program))
		}
	}

	if ctx.HasErrors() {
		reporter.ReportAll(ctx.Errors)
		os.Exit(1)
	}

	if cfg.DumpASTOnly {
		return
	}

	if cfg.DumpQASM && ctx.QasmModule != nil {
		fmt.Printf("; qcc session %s\n", ctx.SessionID)
		fmt.Println(ctx.QasmModule.String())
	}

	if ctx.QasmModule != nil {
		if werr := ctx.QasmModule.Generate(cfg.OutputPath); werr != nil {
			reporter.Report(diagnostics.NewErrorAt(diagnostics.TranslationError,
				diagnostics.NewLocation(cfg.SourcePath, 0, 0), werr.Error()))
			os.Exit(1)
		}
	}
}
