package main

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"testing"
)

// Expected byte sequences are cross-checked against binutils output for the
// same instructions.

func TestEncodeKnownInstructions(t *testing.T) {
	testData := []struct {
		mnemonic string
		operands string
		rendered string
	}{
		{"add.uw", "a2, s11, s5", ".byte 0x3b,0x86,0x5d,0x09"},
		{"andn", "zero, tp, s6", ".byte 0x33,0x70,0x62,0x41"},
		{"bclr", "s10, a4, a5", ".byte 0x33,0x1d,0xf7,0x48"},
		{"sh3add.uw", "a3,s5,gp", ".byte 0xbb,0xe6,0x3a,0x20"},
		{"clz", "x5, x6", ".byte 0x93,0x12,0x03,0x60"},
		{"clz", "t0, t1", ".byte 0x93,0x12,0x03,0x60"},
		{"rori", "a0, a1, 7", ".byte 0x13,0xd5,0x75,0x60"},
		{"roriw", "a0, a1, 7", ".byte 0x1b,0xd5,0x75,0x60"},
		{"slli.uw", "t0, t1, 32", ".byte 0x9b,0x12,0x03,0x0a"},
	}
	for _, data := range testData {
		format, exist := lookupInstrFormat(data.mnemonic)
		assert.True(t, exist, data.mnemonic)
		operands, err := parseOperands(data.operands, format.operandShape())
		assert.Nil(t, err, data.mnemonic)
		word, err := encode(format, operands)
		assert.Nil(t, err, data.mnemonic)
		assert.Equal(t, data.rendered, renderWord(word), data.mnemonic)
	}
}

func TestLookupInstrFormat(t *testing.T) {
	// Base ISA and anything else outside the table must miss.
	for _, mnemonic := range []string{"add", "addi", "xor", "lw", "CLZ", "Clz", "clzz", ""} {
		_, exist := lookupInstrFormat(mnemonic)
		assert.False(t, exist, mnemonic)
	}
	for mnemonic := range instrFormatMap {
		_, exist := lookupInstrFormat(mnemonic)
		assert.True(t, exist, mnemonic)
	}
}

func TestShamtBoundaries(t *testing.T) {
	testData := []struct {
		mnemonic string
		shamt    string
		ok       bool
	}{
		{"rori", "0", true},
		{"rori", "63", true},
		{"rori", "64", false},
		{"rori", "-1", false},
		{"bseti", "0x3f", true},
		{"bseti", "0x40", false},
		{"roriw", "31", true},
		{"roriw", "32", false},
	}
	for _, data := range testData {
		format, exist := lookupInstrFormat(data.mnemonic)
		assert.True(t, exist, data.mnemonic)
		operands, err := parseOperands("a0, a1, "+data.shamt, format.operandShape())
		assert.Nil(t, err, data.mnemonic)
		_, err = encode(format, operands)
		if data.ok {
			assert.Nil(t, err, data.mnemonic+" "+data.shamt)
		} else {
			assert.True(t, errors.Is(err, errImmediateOutOfRange), data.mnemonic+" "+data.shamt)
		}
	}
}

// TestInstrFormatFieldPartition checks the static table invariant: for every
// format the field bit ranges are disjoint and together cover bits 0-31, and
// every constant fits its field.
func TestInstrFormatFieldPartition(t *testing.T) {
	for mnemonic, format := range instrFormatMap {
		var covered uint32
		for _, r := range format.fieldRanges() {
			low, high := r[0], r[1]
			assert.True(t, low <= high && high <= 31, mnemonic)
			var mask uint32
			for i := low; i <= high; i++ {
				mask |= 1 << i
			}
			assert.Zero(t, covered&mask, "%s: overlapping field at bits %d-%d", mnemonic, low, high)
			covered |= mask
		}
		assert.Equal(t, ^uint32(0), covered, mnemonic)

		assert.True(t, format.opcode < 1<<7, mnemonic)
		assert.True(t, format.funct3 < 1<<3, mnemonic)
		assert.True(t, format.funct7 < 1<<7, mnemonic)
		assert.True(t, format.funct6 < 1<<6, mnemonic)
		assert.True(t, format.rs2 < 1<<5, mnemonic)
		if format.kind == RegRegShamt {
			assert.Zero(t, format.funct7, mnemonic)
		} else {
			assert.Zero(t, format.funct6, mnemonic)
		}
	}
}

func TestRenderWord(t *testing.T) {
	testData := []struct {
		word     uint32
		rendered string
	}{
		{0x095d863b, ".byte 0x3b,0x86,0x5d,0x09"},
		{0x00000000, ".byte 0x00,0x00,0x00,0x00"},
		{0xffffffff, ".byte 0xff,0xff,0xff,0xff"},
		{0x60031293, ".byte 0x93,0x12,0x03,0x60"},
	}
	for _, data := range testData {
		assert.Equal(t, data.rendered, renderWord(data.word))
	}
}

func TestFieldBitsString(t *testing.T) {
	// clz x5, x6
	expect := "funct7: 0110000 rs2: 00000 rs1: 00110 funct3: 001 rd: 00101 opcode: 0010011"
	assert.Equal(t, expect, fieldBitsString(0x60031293))
}
