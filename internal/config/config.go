package config

import "fmt"

// AnalyzerConfig configures the (out-of-scope, trivial) analyzer walk.
// Kept as its own nested struct rather than flattened into Config, mirroring
// original_source/src/analyzer/config.rs's AnalyzerConfig.
type AnalyzerConfig struct {
	Enabled bool
}

func (a AnalyzerConfig) String() string {
	return fmt.Sprintf("\nAnalyzer Configuration\n----------------------\nenabled: %v", a.Enabled)
}

// OptimizerConfig records the informational optimization level requested on
// the command line (§6.1: "currently informational"). Mirrors
// original_source/src/optimizer/config.rs's OptConfig.
type OptimizerConfig struct {
	Level int // 0, 1, 2, or 3 for -Og
}

func (o OptimizerConfig) String() string {
	label := fmt.Sprintf("O%d", o.Level)
	if o.Level == 3 {
		label = "Og"
	}
	return fmt.Sprintf("\nOptimizer Configuration\n-----------------------\nStage: %s", label)
}

// Config is the fully-parsed command-line configuration for one compilation
// session, populated by the driver (cmd/qcc) per §6.1.
type Config struct {
	SourcePath  string
	OutputPath  string
	Analyzer    AnalyzerConfig
	Optimizer   OptimizerConfig
	DumpAST     bool
	DumpASTOnly bool
	DumpQASM    bool
	Debug       bool // supplemented from original_source/src/utils.rs's -d/--debug
}

// New returns a Config with every flag at its documented default.
func New() Config {
	return Config{Optimizer: OptimizerConfig{Level: 0}}
}

func (c Config) String() string {
	return fmt.Sprintf("%s\n%s", c.Analyzer, c.Optimizer)
}
