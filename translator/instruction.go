package main

import (
	"fmt"
)

// Static encoding table for the RISC-V bit-manipulation (Zba/Zbb/Zbc/Zbs)
// instructions. Every supported mnemonic maps to its fixed opcode/funct
// constants plus the shape of its operand list. The table is built once and
// never mutated, so lookups are safe from anywhere.

// All supported instructions are 32 bits wide and reuse the base R/I-type
// field positions:
// * bits 0-6   opcode
// * bits 7-11  rd
// * bits 12-14 funct3
// * bits 15-19 rs1
// * bits 20-24 rs2 (or a 5-bit shift amount, or bits 20-25 for a 6-bit one)
// * bits 25-31 funct7 (bits 26-31 funct6 when paired with a 6-bit shamt)

type instrKind int

const (
	// rd, rs1, rs2
	RegRegReg instrKind = iota
	// rd, rs1; the rs2 field carries a fixed function code
	RegReg
	// rd, rs1, shamt; 6-bit shift amount paired with funct6
	RegRegShamt
	// rd, rs1, shamt; 5-bit shift amount in the rs2 field, paired with funct7
	RegRegShamt5
)

type instrFormat struct {
	kind   instrKind
	opcode uint32
	funct3 uint32
	funct7 uint32 // RegRegReg, RegReg and RegRegShamt5 only
	funct6 uint32 // RegRegShamt only
	rs2    uint32 // fixed rs2 field value, RegReg only
}

var instrFormatMap = map[string]instrFormat{
	"add.uw":    {kind: RegRegReg, opcode: 0b0111011, funct3: 0b000, funct7: 0b0000100},
	"andn":      {kind: RegRegReg, opcode: 0b0110011, funct3: 0b111, funct7: 0b0100000},
	"bclr":      {kind: RegRegReg, opcode: 0b0110011, funct3: 0b001, funct7: 0b0100100},
	"bclri":     {kind: RegRegShamt, opcode: 0b0010011, funct3: 0b001, funct6: 0b010010},
	"bext":      {kind: RegRegReg, opcode: 0b0110011, funct3: 0b101, funct7: 0b0100100},
	"bexti":     {kind: RegRegShamt, opcode: 0b0010011, funct3: 0b101, funct6: 0b010010},
	"binv":      {kind: RegRegReg, opcode: 0b0110011, funct3: 0b001, funct7: 0b0110100},
	"binvi":     {kind: RegRegShamt, opcode: 0b0010011, funct3: 0b001, funct6: 0b011010},
	"bset":      {kind: RegRegReg, opcode: 0b0110011, funct3: 0b001, funct7: 0b0010100},
	"bseti":     {kind: RegRegShamt, opcode: 0b0010011, funct3: 0b001, funct6: 0b001010},
	"clmul":     {kind: RegRegReg, opcode: 0b0110011, funct3: 0b001, funct7: 0b0000101},
	"clmulh":    {kind: RegRegReg, opcode: 0b0110011, funct3: 0b011, funct7: 0b0000101},
	"clmulr":    {kind: RegRegReg, opcode: 0b0110011, funct3: 0b010, funct7: 0b0000101},
	"clz":       {kind: RegReg, opcode: 0b0010011, funct3: 0b001, funct7: 0b0110000, rs2: 0b00000},
	"clzw":      {kind: RegReg, opcode: 0b0011011, funct3: 0b001, funct7: 0b0110000, rs2: 0b00000},
	"cpop":      {kind: RegReg, opcode: 0b0010011, funct3: 0b001, funct7: 0b0110000, rs2: 0b00010},
	"cpopw":     {kind: RegReg, opcode: 0b0011011, funct3: 0b001, funct7: 0b0110000, rs2: 0b00010},
	"ctz":       {kind: RegReg, opcode: 0b0010011, funct3: 0b001, funct7: 0b0110000, rs2: 0b00001},
	"ctzw":      {kind: RegReg, opcode: 0b0011011, funct3: 0b001, funct7: 0b0110000, rs2: 0b00001},
	"max":       {kind: RegRegReg, opcode: 0b0110011, funct3: 0b110, funct7: 0b0000101},
	"maxu":      {kind: RegRegReg, opcode: 0b0110011, funct3: 0b111, funct7: 0b0000101},
	"min":       {kind: RegRegReg, opcode: 0b0110011, funct3: 0b100, funct7: 0b0000101},
	"minu":      {kind: RegRegReg, opcode: 0b0110011, funct3: 0b101, funct7: 0b0000101},
	"orc.b":     {kind: RegReg, opcode: 0b0010011, funct3: 0b101, funct7: 0b0010100, rs2: 0b00111},
	"orn":       {kind: RegRegReg, opcode: 0b0110011, funct3: 0b110, funct7: 0b0100000},
	"rev8":      {kind: RegReg, opcode: 0b0010011, funct3: 0b101, funct7: 0b0110101, rs2: 0b11000},
	"rol":       {kind: RegRegReg, opcode: 0b0110011, funct3: 0b001, funct7: 0b0110000},
	"rolw":      {kind: RegRegReg, opcode: 0b0111011, funct3: 0b001, funct7: 0b0110000},
	"ror":       {kind: RegRegReg, opcode: 0b0110011, funct3: 0b101, funct7: 0b0110000},
	"rori":      {kind: RegRegShamt, opcode: 0b0010011, funct3: 0b101, funct6: 0b011000},
	"roriw":     {kind: RegRegShamt5, opcode: 0b0011011, funct3: 0b101, funct7: 0b0110000},
	"rorw":      {kind: RegRegReg, opcode: 0b0111011, funct3: 0b101, funct7: 0b0110000},
	"sext.b":    {kind: RegReg, opcode: 0b0010011, funct3: 0b001, funct7: 0b0110000, rs2: 0b00100},
	"sext.h":    {kind: RegReg, opcode: 0b0010011, funct3: 0b001, funct7: 0b0110000, rs2: 0b00101},
	"sh1add":    {kind: RegRegReg, opcode: 0b0110011, funct3: 0b010, funct7: 0b0010000},
	"sh1add.uw": {kind: RegRegReg, opcode: 0b0111011, funct3: 0b010, funct7: 0b0010000},
	"sh2add":    {kind: RegRegReg, opcode: 0b0110011, funct3: 0b100, funct7: 0b0010000},
	"sh2add.uw": {kind: RegRegReg, opcode: 0b0111011, funct3: 0b100, funct7: 0b0010000},
	"sh3add":    {kind: RegRegReg, opcode: 0b0110011, funct3: 0b110, funct7: 0b0010000},
	"sh3add.uw": {kind: RegRegReg, opcode: 0b0111011, funct3: 0b110, funct7: 0b0010000},
	"slli.uw":   {kind: RegRegShamt, opcode: 0b0011011, funct3: 0b001, funct6: 0b000010},
	"xnor":      {kind: RegRegReg, opcode: 0b0110011, funct3: 0b100, funct7: 0b0100000},
	"zext.h":    {kind: RegReg, opcode: 0b0111011, funct3: 0b100, funct7: 0b0000100, rs2: 0b00000},
}

// lookupInstrFormat reports whether mnemonic names a supported instruction.
// Matching is an exact, case-sensitive string compare; base ISA mnemonics are
// deliberately absent so those lines pass through untouched.
func lookupInstrFormat(mnemonic string) (instrFormat, bool) {
	format, exist := instrFormatMap[mnemonic]
	return format, exist
}

// operandShape describes the operand list the format's kind expects, in
// source order.
func (f instrFormat) operandShape() []operandKind {
	switch f.kind {
	case RegReg:
		return []operandKind{RegisterOperand, RegisterOperand}
	case RegRegShamt, RegRegShamt5:
		return []operandKind{RegisterOperand, RegisterOperand, ImmediateOperand}
	default:
		return []operandKind{RegisterOperand, RegisterOperand, RegisterOperand}
	}
}

// fieldRanges lists the inclusive [low, high] bit ranges the format assigns.
// Together they must cover bits 0-31 exactly once; this is a static property
// of the table and is verified by TestInstrFormatFieldPartition rather than
// per encode call.
func (f instrFormat) fieldRanges() [][2]uint {
	ranges := [][2]uint{{0, 6}, {7, 11}, {12, 14}, {15, 19}}
	if f.kind == RegRegShamt {
		return append(ranges, [2]uint{20, 25}, [2]uint{26, 31})
	}
	return append(ranges, [2]uint{20, 24}, [2]uint{25, 31})
}

// encode packs the parsed operands and the format's constant fields into the
// 32-bit instruction word. The operand list must already match the format's
// shape (parseOperands guarantees that); the only runtime failure left is a
// shift amount that does not fit its field.
func encode(format instrFormat, operands []operand) (uint32, error) {
	word := format.opcode | operands[0].reg<<7 | format.funct3<<12 | operands[1].reg<<15
	switch format.kind {
	case RegRegReg:
		return word | operands[2].reg<<20 | format.funct7<<25, nil
	case RegReg:
		return word | format.rs2<<20 | format.funct7<<25, nil
	case RegRegShamt:
		shamt, err := shamtField(operands[2].imm, 6)
		if err != nil {
			return 0, err
		}
		return word | shamt<<20 | format.funct6<<26, nil
	case RegRegShamt5:
		shamt, err := shamtField(operands[2].imm, 5)
		if err != nil {
			return 0, err
		}
		return word | shamt<<20 | format.funct7<<25, nil
	default:
		return 0, fmt.Errorf("unknown instruction kind: %d", format.kind)
	}
}

// shamtField validates that an unsigned shift amount fits in width bits.
func shamtField(value int64, width uint) (uint32, error) {
	if value < 0 || value >= int64(1)<<width {
		return 0, fmt.Errorf("%w: shift amount %d does not fit in %d bits", errImmediateOutOfRange, value, width)
	}
	return uint32(value), nil
}

// renderWord renders the encoded word as the little-endian byte directive
// understood by gas and llvm-mc, least significant byte first.
func renderWord(word uint32) string {
	return fmt.Sprintf(".byte 0x%02x,0x%02x,0x%02x,0x%02x",
		word&0xff, (word>>8)&0xff, (word>>16)&0xff, (word>>24)&0xff)
}

// fieldBitsString dumps the standard field groups of word with each group
// printed most significant bit first. Used by the -d flag.
func fieldBitsString(word uint32) string {
	bits := func(low, high uint) string {
		group := make([]byte, 0, high-low+1)
		for i := int(high); i >= int(low); i-- {
			if word&(1<<uint(i)) != 0 {
				group = append(group, '1')
			} else {
				group = append(group, '0')
			}
		}
		return string(group)
	}
	return fmt.Sprintf("funct7: %s rs2: %s rs1: %s funct3: %s rd: %s opcode: %s",
		bits(25, 31), bits(20, 24), bits(15, 19), bits(12, 14), bits(7, 11), bits(0, 6))
}
