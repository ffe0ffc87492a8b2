package main

import (
	"flag"
	"fmt"
	"github.com/xyproto/env/v2"
	"io"
	"os"
)

// A naive assembler pre-pass for RISC-V: reads assembly source, replaces
// every bit-manipulation extension instruction with an equivalent .byte
// directive, and leaves everything else alone. Flag defaults can also be set
// through RVB_* environment variables.

var (
	inputPath  = flag.String("i", env.Str("RVB_INPUT", ""), "the input assembly file, default stdin")
	outputPath = flag.String("o", env.Str("RVB_OUTPUT", ""), "the output file, default stdout")
	debug      = flag.Bool("d", env.Bool("RVB_DEBUG"), "print the field encoding of each translated instruction")
	quiet      = flag.Bool("q", env.Bool("RVB_QUIET"), "suppress warnings about malformed instructions")
)

func main() {
	flag.Parse()
	var input io.Reader = os.Stdin
	if len(*inputPath) > 0 {
		f, err := os.Open(*inputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[translator]: failed to open file: %s, err: %v\n", *inputPath, err)
			os.Exit(1)
		}
		defer f.Close()
		input = f
	}
	translator := NewTranslator(*debug, *quiet)
	if err := translator.Translate(input); err != nil {
		fmt.Fprintf(os.Stderr, "[translator]: failed to read input, err: %v\n", err)
		os.Exit(1)
	}
	var output io.Writer = os.Stdout
	if len(*outputPath) > 0 {
		f, err := os.Create(*outputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[translator]: failed to create file: %s, err: %v\n", *outputPath, err)
			os.Exit(1)
		}
		defer f.Close()
		output = f
	}
	if _, err := translator.WriteTo(output); err != nil {
		fmt.Fprintf(os.Stderr, "[translator]: failed to write output, err: %v\n", err)
		os.Exit(1)
	}
}
