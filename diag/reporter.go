// Package diag prints and accumulates the diagnostics produced by a
// composition run.  Every line is emitted at the point of detection;
// the accumulated records gate the final write.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type Severity int

const (
	Progress Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "progress"
	}
}

type Record struct {
	Severity Severity
	Message  string
}

// Reporter writes colored diagnostic lines and records them in order.
// It is owned by a single pipeline execution and not safe for
// concurrent use.
type Reporter struct {
	w       io.Writer
	colors  *Colors
	records []Record
	failed  bool
}

// New returns a Reporter writing to w, with color enabled when w is a
// terminal.
func New(w io.Writer) *Reporter {
	colors := NoColors()
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		colors = NewColors()
	}
	return &Reporter{w: w, colors: colors}
}

func NewWithColors(w io.Writer, colors *Colors) *Reporter {
	return &Reporter{w: w, colors: colors}
}

func (r *Reporter) Progressf(format string, args ...any) {
	r.emit(Progress, fmt.Sprintf(format, args...))
}

func (r *Reporter) Warnf(format string, args ...any) {
	r.emit(Warning, "warning: "+fmt.Sprintf(format, args...))
}

func (r *Reporter) Errorf(format string, args ...any) {
	r.failed = true
	r.emit(Error, "error: "+fmt.Sprintf(format, args...))
}

func (r *Reporter) emit(s Severity, msg string) {
	r.records = append(r.records, Record{Severity: s, Message: msg})
	fmt.Fprintln(r.w, r.colors.Get(s)(msg))
}

// Failed reports whether any error was recorded.  Warnings and
// progress lines do not fail the run.
func (r *Reporter) Failed() bool {
	return r.failed
}

func (r *Reporter) Records() []Record {
	return r.records
}
