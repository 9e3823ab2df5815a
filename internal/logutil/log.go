// Package logutil writes diagnostic lines for the command line tools.
package logutil

import (
	"fmt"
	"io"
	"sync"
)

// Logger writes prefixed lines to a writer. A nil *Logger discards
// everything, so packages can accept one as an optional dependency
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	quiet bool
}

// New returns a Logger writing to out. If quiet is true, nothing
// is written
func New(out io.Writer, quiet bool) *Logger {
	return &Logger{out: out, quiet: quiet}
}

// Warnf writes a "WARNING: " line
func (l *Logger) Warnf(format string, a ...any) {
	l.printf("WARNING: ", format, a...)
}

// Infof writes an unprefixed line
func (l *Logger) Infof(format string, a ...any) {
	l.printf("", format, a...)
}

func (l *Logger) printf(prefix, format string, a ...any) {
	if l == nil || l.quiet || l.out == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.out, prefix+format+"\n", a...)
}
