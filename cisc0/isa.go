// Package cisc0 implements the variable-length (1-3 word) CISC core: its
// 16-bit-word packet codec, 32-bit register file with architectural role
// aliases, unified 24-bit memory space, and fetch-decode-execute
// dispatcher (spec.md §3, §4.1.2, §4.3).
package cisc0

import "github.com/lookbusy1344/arm-emulator/core"

// Class is the 4-bit top-level opcode (spec.md §4.1.2: bits 0-3, 16
// values, 11 assigned).
type Class uint32

const (
	ClassMemory Class = iota
	ClassArithmetic
	ClassShift
	ClassLogical
	ClassCompare
	ClassBranch
	ClassSystemCall
	ClassSet
	ClassMove
	ClassSwap
	ClassComplex
)

var fieldClass = core.NewField(0, 4)

func DecodeClass(word uint16) Class { return Class(fieldClass.Decode(uint32(word))) }
func EncodeClass(word uint16, c Class) uint16 {
	return uint16(fieldClass.Encode(uint32(word), uint32(c)))
}

// Architectural role register indices (spec.md §3): the dispatcher reads
// these by fixed index rather than via a packet register nibble, though
// general code may still target them through Move/Swap's explicit
// register operands.
const (
	RegShiftField = 9 // shift (low 5 bits) and field-width (next 5 bits)
	RegMask       = 10
	RegValue      = 11
	RegAddr       = 12
	RegCR         = 13
	RegSP         = 14
	RegIP         = 15
)

// Shared word-0 field layout: every class reserves its 4-bit subtype
// immediately after the class nibble. Class-specific code interprets the
// remaining bits (spec.md §4.1.2: "bits 4-15 carry class-specific
// fields").
var fieldSubtype = core.NewField(4, 4)

func DecodeSubtype(word uint16) uint32 { return fieldSubtype.Decode(uint32(word)) }
func EncodeSubtype(word uint16, v uint32) uint16 {
	return uint16(fieldSubtype.Encode(uint32(word), v))
}

// Bitmask selector field, used by Memory/Set/Move/Logical (spec.md
// §4.1.2). The four bits each gate one byte of a 32-bit register-value
// slot; ReadLower/ReadUpper derive which 16-bit half(s) participate.
type Bitmask uint32

func (b Bitmask) ReadLower() bool { return b&0b0011 != 0 }
func (b Bitmask) ReadUpper() bool { return b&0b1100 != 0 }

// ExtraWordCount is popcount(lower-present) + popcount(upper-present),
// i.e. 0, 1, or 2 - the number of immediate words an instruction carrying
// this mask consumes (spec.md §4.1.2).
func (b Bitmask) ExtraWordCount() int {
	n := 0
	if b.ReadLower() {
		n++
	}
	if b.ReadUpper() {
		n++
	}
	return n
}

// Gate applies the mask to a 32-bit value assembled from a lower and
// upper fetched word, zeroing whichever bytes their bits don't select.
func (b Bitmask) Gate(lower, upper uint16) uint32 {
	var loLo, loHi, hiLo, hiHi byte
	if b&0b0001 != 0 {
		loLo = byte(lower)
	}
	if b&0b0010 != 0 {
		loHi = byte(lower >> 8)
	}
	if b&0b0100 != 0 {
		hiLo = byte(upper)
	}
	if b&0b1000 != 0 {
		hiHi = byte(upper >> 8)
	}
	return uint32(loLo) | uint32(loHi)<<8 | uint32(hiLo)<<16 | uint32(hiHi)<<24
}

// MergeBytes takes each byte of value where the mask selects it and each
// byte of old everywhere else - the preserve-unselected-bytes write used
// by move/memory/logical (spec.md §4.1.2), as opposed to Gate's
// zero-unselected-bytes write used by set's immediate load.
func (b Bitmask) MergeBytes(old, value uint32) uint32 {
	result := old
	if b&0b0001 != 0 {
		result = result&^0x000000FF | value&0x000000FF
	}
	if b&0b0010 != 0 {
		result = result&^0x0000FF00 | value&0x0000FF00
	}
	if b&0b0100 != 0 {
		result = result&^0x00FF0000 | value&0x00FF0000
	}
	if b&0b1000 != 0 {
		result = result&^0xFF000000 | value&0xFF000000
	}
	return result
}

var fieldBitmask = core.NewField(8, 4)

func DecodeBitmask(word uint16) Bitmask { return Bitmask(fieldBitmask.Decode(uint32(word))) }
func EncodeBitmask(word uint16, b Bitmask) uint16 {
	return uint16(fieldBitmask.Encode(uint32(word), uint32(b)))
}

var (
	fieldImmFlag  = core.NewField(12, 1)
	fieldDest4    = core.NewField(12, 4) // word-0 destination nibble, classes that need one
	fieldReg0     = core.NewField(0, 4)  // word-1 register nibble A
	fieldReg1     = core.NewField(4, 4)  // word-1 register nibble B
)

func DecodeImmFlag(word uint16) bool { return fieldImmFlag.Decode(uint32(word)) != 0 }
func EncodeImmFlag(word uint16, imm bool) uint16 {
	return uint16(fieldImmFlag.Encode(uint32(word), core.BoolToWord[uint32](imm)))
}

func DecodeDest4(word uint16) uint32 { return fieldDest4.Decode(uint32(word)) }
func EncodeDest4(word uint16, v uint32) uint16 {
	return uint16(fieldDest4.Encode(uint32(word), v))
}

func DecodeReg0(word uint16) uint32 { return fieldReg0.Decode(uint32(word)) }
func EncodeReg0(word uint16, v uint32) uint16 {
	return uint16(fieldReg0.Encode(uint32(word), v))
}
func DecodeReg1(word uint16) uint32 { return fieldReg1.Decode(uint32(word)) }
func EncodeReg1(word uint16, v uint32) uint16 {
	return uint16(fieldReg1.Encode(uint32(word), v))
}

// ArithmeticOp mirrors iris's arithmetic operations except the two shifts,
// which form the Shift class here; Shift and Logical classes reuse the
// arithmetic-shaped word layout with their own narrower op sets.
type ArithmeticOp uint32

const (
	ArithAdd ArithmeticOp = iota
	ArithSub
	ArithMul
	ArithDiv
	ArithRem
	ArithAnd
	ArithOr
	ArithXor
	ArithNot
	ArithMin
	ArithMax
)

type ShiftOp uint32

const (
	ShiftLeft ShiftOp = iota
	ShiftRight
)

type LogicalOp uint32

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
	LogicalXor
	LogicalNot
)

type CompareOp uint32

const (
	CmpEq CompareOp = iota
	CmpNeq
	CmpLt
	CmpGt
	CmpLe
	CmpGe
)

func (c CompareOp) ToCoreCompareOp() core.CompareOp {
	switch c {
	case CmpEq:
		return core.CmpEQ
	case CmpNeq:
		return core.CmpNEQ
	case CmpLt:
		return core.CmpLT
	case CmpGt:
		return core.CmpGT
	case CmpLe:
		return core.CmpLE
	default:
		return core.CmpGE
	}
}

// MemoryOp enumerates the Memory class's four sub-operations.
type MemoryOp uint32

const (
	MemLoad MemoryOp = iota
	MemStore
	MemPush
	MemPop
)

// Branch flags, packed into word 0 alongside the class/subtype nibbles.
var (
	fieldBranchIf          = core.NewField(8, 1)
	fieldBranchCall        = core.NewField(9, 1)
	fieldBranchConditional = core.NewField(10, 1)
	fieldBranchShiftLeft   = core.NewField(11, 1)
)

type BranchForm struct {
	IsIf          bool
	IsCall        bool
	IsConditional bool
	ShiftLeft     bool
	Immediate     bool
}

func DecodeBranchForm(word uint16) BranchForm {
	w := uint32(word)
	return BranchForm{
		IsIf:          fieldBranchIf.Decode(w) != 0,
		IsCall:        fieldBranchCall.Decode(w) != 0,
		IsConditional: fieldBranchConditional.Decode(w) != 0,
		ShiftLeft:     fieldBranchShiftLeft.Decode(w) != 0,
		Immediate:     DecodeImmFlag(word),
	}
}

func EncodeBranchForm(word uint16, f BranchForm) uint16 {
	w := uint32(word)
	w = fieldBranchIf.Encode(w, core.BoolToWord[uint32](f.IsIf))
	w = fieldBranchCall.Encode(w, core.BoolToWord[uint32](f.IsCall))
	w = fieldBranchConditional.Encode(w, core.BoolToWord[uint32](f.IsConditional))
	w = fieldBranchShiftLeft.Encode(w, core.BoolToWord[uint32](f.ShiftLeft))
	word = uint16(w)
	return EncodeImmFlag(word, f.Immediate)
}

// ComplexOp enumerates the Complex class's single sub-class, Encoding.
type ComplexOp uint32

const (
	ComplexBitSet ComplexOp = iota
	ComplexBitUnset
	ComplexEncode
	ComplexDecode
)
