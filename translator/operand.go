package main

import (
	"errors"
	"fmt"
	"riscv_b_extension_translator/util"
	"strconv"
	"strings"
)

// Operand parsing for the fixed grammars the instruction table accepts:
// integer registers by ABI name or xN number, and plain decimal/hex
// immediates. Labels and every other addressing form are not parsed here;
// lines using them fall back to pass-through.

// All operand errors are local to one line. The driver treats each of them
// the same as an unrecognized mnemonic and keeps the original text.
var (
	errArityMismatch       = errors.New("wrong operand count")
	errBadRegister         = errors.New("bad register")
	errBadImmediate        = errors.New("bad immediate")
	errImmediateOutOfRange = errors.New("immediate out of range")
)

type operandKind int

const (
	RegisterOperand operandKind = iota
	ImmediateOperand
)

type operand struct {
	kind operandKind
	reg  uint32
	imm  int64
}

// The 32 integer registers in ABI order. Index in this slice is the
// architectural register number.
var abiRegisterNames = []string{
	"zero", "ra", "sp", "gp", "tp",
	"t0", "t1", "t2",
	"s0", "s1",
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	"s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11",
	"t3", "t4", "t5", "t6",
}

var registerMap = map[string]uint32{}

func init() {
	for i, name := range abiRegisterNames {
		registerMap[name] = uint32(i)
		registerMap[fmt.Sprintf("x%d", i)] = uint32(i)
	}
	// the frame pointer shares x8 with s0
	registerMap["fp"] = 8
}

// parseOperands splits the operand field on commas and parses each token as
// the kind shape demands. The token count must match the shape exactly.
func parseOperands(text string, shape []operandKind) ([]operand, error) {
	var tokens []string
	for _, token := range strings.Split(text, ",") {
		token = strings.TrimSpace(token)
		if len(token) > 0 {
			tokens = append(tokens, token)
		}
	}
	if len(tokens) != len(shape) {
		return nil, fmt.Errorf("%w: got %d operands, want %d", errArityMismatch, len(tokens), len(shape))
	}
	operands := make([]operand, len(tokens))
	for i, token := range tokens {
		switch shape[i] {
		case RegisterOperand:
			reg, err := parseRegister(token)
			if err != nil {
				return nil, err
			}
			operands[i] = operand{kind: RegisterOperand, reg: reg}
		default:
			imm, err := parseImmediate(token)
			if err != nil {
				return nil, err
			}
			operands[i] = operand{kind: ImmediateOperand, imm: imm}
		}
	}
	return operands, nil
}

// parseRegister resolves an ABI name or xN spelling to its register number.
// The map only holds x0-x31, so out of range numbers like x40 fail here.
func parseRegister(token string) (uint32, error) {
	reg, exist := registerMap[token]
	if !exist {
		return 0, fmt.Errorf("%w: %s", errBadRegister, token)
	}
	return reg, nil
}

// parseImmediate accepts an optionally signed decimal or 0x-prefixed hex
// literal. Leading zeros stay decimal; there is no octal form in this
// grammar.
func parseImmediate(token string) (int64, error) {
	digits := token
	sign := ""
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		sign, digits = digits[:1], digits[1:]
	}
	base := 10
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		base, digits = 16, digits[2:]
	}
	if len(digits) == 0 {
		return 0, fmt.Errorf("%w: %s", errBadImmediate, token)
	}
	for i := 0; i < len(digits); i++ {
		if base == 16 && !util.IsHexDigit(digits[i]) {
			return 0, fmt.Errorf("%w: %s", errBadImmediate, token)
		}
		if base == 10 && !util.IsNumber(digits[i]) {
			return 0, fmt.Errorf("%w: %s", errBadImmediate, token)
		}
	}
	value, err := strconv.ParseInt(sign+digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errBadImmediate, token)
	}
	return value, nil
}
