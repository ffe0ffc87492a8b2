package main

import (
	"bufio"
	"bytes"
	"io"
	"riscv_b_extension_translator/util"
	"strings"
)

// A line-at-a-time translator that rewrites RISC-V bit-manipulation
// instructions into .byte directives, so that toolchains whose assembler
// does not know the Zb* mnemonics can still build the source. Every line the
// translator does not confidently recognize and encode is copied to the
// output byte for byte: blank lines, comments, labels, directives, base ISA
// instructions, and recognized mnemonics with malformed operands.

type Translator struct {
	line   int
	debug  bool
	output bytes.Buffer
	diag   *diagWriter
}

func NewTranslator(debug, quiet bool) *Translator {
	return &Translator{
		debug: debug,
		diag:  newStderrDiagWriter(quiet),
	}
}

// Translate consumes the whole assembly stream from rd and accumulates the
// rewritten stream in order, one output line per input line. Only a read
// failure is an error; per-line problems are handled inside translateLine.
func (t *Translator) Translate(rd io.Reader) error {
	bfReader := bufio.NewReader(rd)
	for {
		line, err := bfReader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return err
		}
		if len(line) == 0 && err == io.EOF {
			return nil
		}
		t.line++
		body, terminator := splitLineTerminator(line)
		t.translateLine(body, terminator)
		if err == io.EOF {
			return nil
		}
	}
}

// WriteTo writes the accumulated output stream to w.
func (t *Translator) WriteTo(w io.Writer) (int64, error) {
	return t.output.WriteTo(w)
}

// splitLineTerminator separates the line body from its \n or \r\n ending so
// pass-through can reproduce the original bytes exactly. A last line without
// a newline keeps an empty terminator.
func splitLineTerminator(line []byte) (string, string) {
	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		if n > 1 && line[n-2] == '\r' {
			return string(line[:n-2]), "\r\n"
		}
		return string(line[:n-1]), "\n"
	}
	return string(line), ""
}

// translateLine classifies one source line and writes exactly one output
// line. Anything that cannot be encoded keeps the original text, so the
// assembler downstream always gets something it already accepted.
func (t *Translator) translateLine(body, terminator string) {
	prefix, mnemonic, operandText, ok := splitInstruction(body)
	if !ok {
		t.passThrough(body, terminator)
		return
	}
	format, exist := lookupInstrFormat(mnemonic)
	if !exist {
		t.passThrough(body, terminator)
		return
	}
	operands, err := parseOperands(operandText, format.operandShape())
	var word uint32
	if err == nil {
		word, err = encode(format, operands)
	}
	if err != nil {
		t.diag.warnf("syntax err at line %d: %v, line passed through", t.line, err)
		t.passThrough(body, terminator)
		return
	}
	if t.debug {
		t.diag.debugf("# Encoding %s", fieldBitsString(word))
	}
	annotation := mnemonic
	if len(operandText) > 0 {
		annotation += " " + operandText
	}
	t.output.WriteString(prefix)
	t.output.WriteString(renderWord(word))
	t.output.WriteString(" # ")
	t.output.WriteString(annotation)
	t.output.WriteString(terminator)
}

func (t *Translator) passThrough(body, terminator string) {
	t.output.WriteString(body)
	t.output.WriteString(terminator)
}

// splitInstruction scans one line into the prefix that must stay in front of
// any replacement (leading whitespace plus an optional label), the candidate
// mnemonic, and the operand text with any trailing # comment removed. ok is
// false when the line holds no mnemonic at all: blank lines, pure comments,
// pure labels, and directives (which start with a dot, not a letter).
func splitInstruction(line string) (prefix, mnemonic, operands string, ok bool) {
	code := line
	if idx := strings.IndexByte(code, '#'); idx != -1 {
		code = code[:idx]
	}
	pos := 0
	// At most one leading label is recognized; a second colon-terminated
	// token means the line is not a plain instruction.
	for scan := 0; scan < 2; scan++ {
		for pos < len(code) && (code[pos] == ' ' || code[pos] == '\t') {
			pos++
		}
		if pos >= len(code) || !util.IsLetter(code[pos]) {
			return "", "", "", false
		}
		start := pos
		for pos < len(code) && isMnemonicChar(code[pos]) {
			pos++
		}
		if pos < len(code) && code[pos] == ':' {
			pos++
			continue
		}
		return line[:start], code[start:pos], strings.TrimSpace(code[pos:]), true
	}
	return "", "", "", false
}

func isMnemonicChar(b byte) bool {
	return util.IsLetterOrUnderscoreOrNumber(b) || b == '.'
}
