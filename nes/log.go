package nes

import (
	"io"
	"log"
	"os"
)

// NewLogger returns the logger the command line tools use. Verbose output
// goes to stderr, otherwise it is dropped.
func NewLogger(verbose bool) *log.Logger {
	var w io.Writer = io.Discard
	if verbose {
		w = os.Stderr
	}
	return log.New(w, "nes: ", log.Ltime|log.Lmicroseconds)
}

func logf(l *log.Logger, format string, v ...interface{}) {
	if l == nil {
		return
	}
	l.Printf(format, v...)
}
