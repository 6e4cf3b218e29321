package cmd

import (
	"fmt"
	"io"
	"time"

	"flip/logger"
)

// consoleReporter renders batch progress the way the tool always has: an
// in-place "flipping..." line per file on stdout, failures on stderr.
type consoleReporter struct {
	out     io.Writer
	console *logger.Console
	pending bool
}

func (r *consoleReporter) Converting(outPath string) {
	fmt.Fprintf(r.out, "%s: flipping...", outPath)
	r.pending = true
}

func (r *consoleReporter) Converted(outPath string, elapsed time.Duration) {
	fmt.Fprintf(r.out, "\r%s: done in %s          \n", outPath, elapsed.Round(time.Millisecond))
	r.pending = false
}

func (r *consoleReporter) Failed(reason string) {
	if r.pending {
		// Terminate the half-drawn progress line before the error prints.
		fmt.Fprintln(r.out)
		r.pending = false
	}
	r.console.Error("%s", reason)
}

func (r *consoleReporter) DeleteFailed(path string, err error) {
	r.console.Error("failed to delete '%s': %v", path, err)
}
