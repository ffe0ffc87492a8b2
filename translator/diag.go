package main

import (
	"fmt"
	"golang.org/x/term"
	"io"
	"os"
)

// Diagnostics go to stderr so stdout keeps exactly one output line per input
// line. Warnings are colored only when stderr is an actual terminal.

const (
	colorYellow = "\x1b[33m"
	colorReset  = "\x1b[0m"
)

type diagWriter struct {
	out   io.Writer
	color bool
	quiet bool
}

func newStderrDiagWriter(quiet bool) *diagWriter {
	return &diagWriter{
		out:   os.Stderr,
		color: term.IsTerminal(int(os.Stderr.Fd())),
		quiet: quiet,
	}
}

// warnf reports a recoverable per-line problem. The caller still emits the
// offending line verbatim, so a warning never changes the output stream.
func (d *diagWriter) warnf(format string, args ...interface{}) {
	if d.quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if d.color {
		fmt.Fprintf(d.out, "%s[translator]: %s%s\n", colorYellow, msg, colorReset)
	} else {
		fmt.Fprintf(d.out, "[translator]: %s\n", msg)
	}
}

// debugf prints encoding details requested with -d. Not silenced by quiet
// since the user asked for it explicitly.
func (d *diagWriter) debugf(format string, args ...interface{}) {
	fmt.Fprintf(d.out, format+"\n", args...)
}
