// Package iris implements the 16-bit RISC core: its 32-bit instruction
// packet codec, register/predicate file, segmented memory, and
// fetch-decode-execute dispatcher (spec.md §3, §4.1.1, §4.2).
package iris

import "github.com/lookbusy1344/arm-emulator/core"

// Group is the 3-bit top-level opcode selector (spec.md §4.1.1: bits 0-2,
// five values, one reserved for a future double-wide extension).
type Group uint32

const (
	GroupArithmetic Group = iota
	GroupCompare
	GroupJump
	GroupMove
	GroupConditionalRegister
	groupReservedExtension // double-wide extension marker, not implemented
	groupReserved6
	groupReserved7
)

// Packet field layout, shared by the assembler's encoder and the
// interpreter's decoder - spec.md §9's "keep all field definitions in one
// declaration block".
var (
	fieldGroup = core.NewField(0, 3)
	fieldOp    = core.NewField(3, 5) // operation selector within the group, up to 32 values
	fieldDest  = core.NewField(8, 8)
	fieldSrc0  = core.NewField(16, 8)
	fieldSrc1  = core.NewField(24, 8)
	fieldImm16 = core.NewField(16, 16) // full-immediate form: replaces src0+src1
	fieldImm8  = core.NewField(24, 8)  // half-immediate form: replaces src1 only

	// Nibble splits of the 8-bit dest/src0 fields, used by Compare
	// (result/inverse predicate) and ConditionalRegister (two source and
	// up to two destination predicates).
	fieldDestLo = core.NewField(8, 4)
	fieldDestHi = core.NewField(12, 4)
	fieldSrc0Lo = core.NewField(16, 4)
	fieldSrc0Hi = core.NewField(20, 4)
)

// DecodeGroup reads the top-level group selector from a packet.
func DecodeGroup(packet uint32) Group {
	return Group(fieldGroup.Decode(packet))
}

// EncodeGroup writes the top-level group selector into a packet.
func EncodeGroup(packet uint32, g Group) uint32 {
	return fieldGroup.Encode(packet, uint32(g))
}

// DecodeOp reads the 5-bit operation selector.
func DecodeOp(packet uint32) uint32 { return fieldOp.Decode(packet) }

// EncodeOp writes the 5-bit operation selector.
func EncodeOp(packet, op uint32) uint32 { return fieldOp.Encode(packet, op) }

// DecodeDest reads the 8-bit destination register index.
func DecodeDest(packet uint32) uint32 { return fieldDest.Decode(packet) }

// EncodeDest writes the 8-bit destination register index.
func EncodeDest(packet, v uint32) uint32 { return fieldDest.Encode(packet, v) }

// DecodeSrc0 reads the 8-bit source-0 register index.
func DecodeSrc0(packet uint32) uint32 { return fieldSrc0.Decode(packet) }

// EncodeSrc0 writes the 8-bit source-0 register index.
func EncodeSrc0(packet, v uint32) uint32 { return fieldSrc0.Encode(packet, v) }

// DecodeSrc1 reads the 8-bit source-1 register index.
func DecodeSrc1(packet uint32) uint32 { return fieldSrc1.Decode(packet) }

// EncodeSrc1 writes the 8-bit source-1 register index.
func EncodeSrc1(packet, v uint32) uint32 { return fieldSrc1.Encode(packet, v) }

// DecodeImm16 reads the full 16-bit immediate (bits 16-31).
func DecodeImm16(packet uint32) uint16 { return uint16(fieldImm16.Decode(packet)) }

// EncodeImm16 writes the full 16-bit immediate.
func EncodeImm16(packet uint32, v uint16) uint32 { return fieldImm16.Encode(packet, uint32(v)) }

// DecodeImm8 reads the 8-bit half-immediate (bits 24-31).
func DecodeImm8(packet uint32) uint8 { return uint8(fieldImm8.Decode(packet)) }

// EncodeImm8 writes the 8-bit half-immediate.
func EncodeImm8(packet uint32, v uint8) uint32 { return fieldImm8.Encode(packet, uint32(v)) }

// DecodeDestLo/Hi and DecodeSrc0Lo/Hi read the 4-bit predicate-index
// nibbles Compare and ConditionalRegister multiplex into the dest/src0
// register fields.
func DecodeDestLo(packet uint32) uint32 { return fieldDestLo.Decode(packet) }
func DecodeDestHi(packet uint32) uint32 { return fieldDestHi.Decode(packet) }
func DecodeSrc0Lo(packet uint32) uint32 { return fieldSrc0Lo.Decode(packet) }
func DecodeSrc0Hi(packet uint32) uint32 { return fieldSrc0Hi.Decode(packet) }

func EncodeDestLo(packet, v uint32) uint32 { return fieldDestLo.Encode(packet, v) }
func EncodeDestHi(packet, v uint32) uint32 { return fieldDestHi.Encode(packet, v) }
func EncodeSrc0Lo(packet, v uint32) uint32 { return fieldSrc0Lo.Encode(packet, v) }
func EncodeSrc0Hi(packet, v uint32) uint32 { return fieldSrc0Hi.Encode(packet, v) }

// ArithmeticOp enumerates the Arithmetic group's 13 operations. The op
// selector packs a 4-bit op id (fieldArithOp) plus a 1-bit immediate flag
// (fieldArithImmFlag) into the 5-bit fieldOp region.
type ArithmeticOp uint32

const (
	ArithAdd ArithmeticOp = iota
	ArithSub
	ArithMul
	ArithDiv
	ArithRem
	ArithShl
	ArithShr
	ArithAnd
	ArithOr
	ArithXor
	ArithNot
	ArithMin
	ArithMax
)

var (
	fieldArithOp      = core.NewField(3, 4)
	fieldArithImmFlag = core.NewField(7, 1)
)

func DecodeArithOp(packet uint32) ArithmeticOp  { return ArithmeticOp(fieldArithOp.Decode(packet)) }
func DecodeArithImm(packet uint32) bool         { return fieldArithImmFlag.Decode(packet) != 0 }
func EncodeArithOp(packet uint32, op ArithmeticOp) uint32 {
	return fieldArithOp.Encode(packet, uint32(op))
}
func EncodeArithImm(packet uint32, imm bool) uint32 {
	return fieldArithImmFlag.Encode(packet, core.BoolToWord[uint32](imm))
}

// CompareSubOp enumerates the Compare group's six comparisons. Layout
// mirrors ArithmeticOp: a 3-bit op id plus a 1-bit immediate flag.
type CompareSubOp uint32

const (
	CmpEq CompareSubOp = iota
	CmpNeq
	CmpLt
	CmpGt
	CmpLe
	CmpGe
)

var (
	fieldCompareOp      = core.NewField(3, 3)
	fieldCompareImmFlag = core.NewField(6, 1)
)

func DecodeCompareOp(packet uint32) CompareSubOp { return CompareSubOp(fieldCompareOp.Decode(packet)) }
func DecodeCompareImm(packet uint32) bool        { return fieldCompareImmFlag.Decode(packet) != 0 }
func EncodeCompareOp(packet uint32, op CompareSubOp) uint32 {
	return fieldCompareOp.Encode(packet, uint32(op))
}
func EncodeCompareImm(packet uint32, imm bool) uint32 {
	return fieldCompareImmFlag.Encode(packet, core.BoolToWord[uint32](imm))
}

// ToCoreCompareOp maps the decoder's CompareSubOp onto core.CompareOp so
// the shared CompareUnsigned helper can evaluate it.
func (c CompareSubOp) ToCoreCompareOp() core.CompareOp {
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

// JumpOp enumerates the Jump group's encoded forms (spec.md §4.2). Values
// 0-7 pack three independent flags (conditional, immediate, link) into the
// 5-bit op selector; values 8-11 select forms the flag combination cannot
// express.
type JumpOp uint32

const (
	jumpFlagConditional uint32 = 1 << 0
	jumpFlagImmediate   uint32 = 1 << 1
	jumpFlagLink        uint32 = 1 << 2
)

const (
	JumpIfThenElse JumpOp = iota + 8
	JumpBranchLR
	JumpBranchLRConditional
	JumpReturnFromError
)

// JumpForm is the decoded shape of one Jump instruction.
type JumpForm struct {
	Conditional bool
	Immediate   bool
	Link        bool
	Special     JumpOp // zero value (< 8) means "no special form"
}

func DecodeJumpForm(packet uint32) JumpForm {
	sel := fieldOp.Decode(packet)
	if sel < 8 {
		return JumpForm{
			Conditional: sel&jumpFlagConditional != 0,
			Immediate:   sel&jumpFlagImmediate != 0,
			Link:        sel&jumpFlagLink != 0,
		}
	}
	return JumpForm{Special: JumpOp(sel)}
}

// EncodeJumpFlags packs the three base flags into the op selector.
func EncodeJumpFlags(packet uint32, conditional, immediate, link bool) uint32 {
	sel := core.BoolToWord[uint32](conditional)*jumpFlagConditional |
		core.BoolToWord[uint32](immediate)*jumpFlagImmediate |
		core.BoolToWord[uint32](link)*jumpFlagLink
	return fieldOp.Encode(packet, sel)
}

// EncodeJumpSpecial selects one of the forms flags cannot express.
func EncodeJumpSpecial(packet uint32, form JumpOp) uint32 {
	return fieldOp.Encode(packet, uint32(form))
}

// MoveOp enumerates the Move group's 21 sub-operations (spec.md §4.2).
type MoveOp uint32

const (
	MoveMove MoveOp = iota
	MoveSet
	MoveSwap
	MoveLoad
	MoveLoadImmOffset
	MoveStore
	MoveStoreImmOffset
	MoveMemset
	MovePush
	MovePushImmediate
	MovePop
	MoveLoadCode
	MoveStoreCode
	MoveIORead
	MoveIOReadOffset
	MoveIOWrite
	MoveIOWriteOffset
	MoveToIP
	MoveFromIP
	MoveToLR
	MoveFromLR
)

func DecodeMoveOp(packet uint32) MoveOp { return MoveOp(fieldOp.Decode(packet)) }
func EncodeMoveOp(packet uint32, op MoveOp) uint32 {
	return fieldOp.Encode(packet, uint32(op))
}

// CRFOp enumerates the ConditionalRegister group's predicate-only
// operations (spec.md §4.2).
type CRFOp uint32

const (
	CRFAnd CRFOp = iota
	CRFOr
	CRFXor
	CRFNor
	CRFNand
	CRFNot
	CRFSwap
	CRFMove
	CRFSaveCRs
	CRFRestoreCRs
)

func DecodeCRFOp(packet uint32) CRFOp { return CRFOp(fieldOp.Decode(packet)) }
func EncodeCRFOp(packet uint32, op CRFOp) uint32 {
	return fieldOp.Encode(packet, uint32(op))
}

// IsBinaryPredicateOp reports whether op takes two source predicates
// (and/or/xor/nor/nand), as opposed to the unary/transfer/pack forms.
func (op CRFOp) IsBinaryPredicateOp() bool {
	return op == CRFAnd || op == CRFOr || op == CRFXor || op == CRFNor || op == CRFNand
}

func (op CRFOp) toCorePredicateOp() core.PredicateOp {
	switch op {
	case CRFAnd:
		return core.PredAnd
	case CRFOr:
		return core.PredOr
	case CRFXor:
		return core.PredXor
	case CRFNor:
		return core.PredNor
	case CRFNand:
		return core.PredNand
	default:
		return core.PredNot
	}
}
