// Package config holds ambient, session-wide settings: the recognized
// source extension, command-line configuration, and optional per-project
// defaults loaded from qcc.yaml.
package config

import "strings"

// Version is the current qcc version, set at build time via
// -ldflags "-X github.com/quale-lang/qcc/internal/config.Version=...".
var Version = "0.1.0"

// SourceFileExt is the one recognized Quale source extension (§6.2).
const SourceFileExt = ".ql"

// IsTestMode disables terminal-dependent rendering (ANSI color, TTY
// detection) so golden-file tests produce stable output. Set once at
// startup by tests that need determinism, mirroring funxy's
// config.IsTestMode gate on typesystem.TVar.String().
var IsTestMode = false

// HasSourceExt reports whether path ends in the recognized extension.
func HasSourceExt(path string) bool {
	return strings.HasSuffix(path, SourceFileExt)
}

// TrimSourceExt removes the recognized source extension from name, if
// present.
func TrimSourceExt(name string) string {
	if strings.HasSuffix(name, SourceFileExt) {
		return name[:len(name)-len(SourceFileExt)]
	}
	return name
}

// DefaultOutputPath replaces a .ql source path's extension with .s, per
// §6.1's documented default for -o.
func DefaultOutputPath(sourcePath string) string {
	return TrimSourceExt(sourcePath) + ".s"
}
