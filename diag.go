package except

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// diagnostics is the single textual channel for lost-exception notices,
// catch-list warnings, and the default try-trace target. Writes are
// serialized; warnings are colorized only on the standard error default,
// never on a caller-supplied writer.
type diagnostics struct {
	mu   sync.Mutex
	w    io.Writer
	warn *color.Color
}

func newDiagnostics(w io.Writer) *diagnostics {
	d := &diagnostics{w: w}
	if w == nil {
		d.w = os.Stderr
	}
	if d.w == os.Stderr && !color.NoColor {
		d.warn = color.New(color.FgYellow)
	}
	return d
}

func (d *diagnostics) target() io.Writer {
	return d.w
}

func (d *diagnostics) printf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.w, format, args...)
}

func (d *diagnostics) warnf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.warn != nil {
		d.warn.Fprintf(d.w, format, args...)
		return
	}
	fmt.Fprintf(d.w, format, args...)
}
