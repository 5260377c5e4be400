package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/quale-lang/qcc/internal/config"
)

// Reporter prints Errors to an io.Writer in qcc's fixed diagnostic format:
//
//	qcc: error: <sentence>[: detail] @basename:row:col
//	<source line>
//	      ^
//
// The caret line is only printed when the source text for the offending
// file is available; the Location may be partially known (row/col only),
// matching §4.1's contract that callers enrich a Location as it unwinds.
type Reporter struct {
	w      io.Writer
	color  bool
	source map[string][]string // file path -> lines, populated via WithSource
}

// NewReporter builds a Reporter writing to w. Color is enabled only when w
// is a terminal (checked via isatty) and the compiler isn't running under
// test, matching funxy's own isatty-gated terminal buffering.
func NewReporter(w io.Writer) *Reporter {
	color := false
	if !config.IsTestMode {
		if f, ok := w.(*os.File); ok {
			color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}
	return &Reporter{w: w, color: color, source: make(map[string][]string)}
}

// WithSource registers the source text for path so caret previews can be
// rendered for diagnostics located in it.
func (r *Reporter) WithSource(path string, text []byte) {
	r.source[path] = strings.Split(string(text), "\n")
}

// Report prints a single diagnostic.
func (r *Reporter) Report(err *Error) {
	header := fmt.Sprintf("qcc: error: %s %s", err.Error(), err.Location.String())
	if r.color {
		header = "\x1b[1;31m" + header + "\x1b[0m"
	}
	fmt.Fprintln(r.w, header)

	lines, ok := r.source[err.File]
	if !ok || err.Location.Row < 1 || err.Location.Row > len(lines) {
		return
	}
	line := lines[err.Location.Row-1]
	fmt.Fprintln(r.w, line)

	col := err.Location.Col
	if col < 1 {
		col = 1
	}
	caret := strings.Repeat(" ", col-1) + "^"
	if r.color {
		caret = "\x1b[1;32m" + caret + "\x1b[0m"
	}
	fmt.Fprintln(r.w, caret)
}

// ReportAll prints every diagnostic in errs, in order.
func (r *Reporter) ReportAll(errs []*Error) {
	for _, err := range errs {
		r.Report(err)
	}
}
