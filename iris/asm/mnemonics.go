package asm

import (
	"fmt"

	"github.com/lookbusy1344/arm-emulator/iris"
)

// Resolver looks up a label's address, returning the symbol table's
// "undefined label" error when it is missing.
type Resolver func(name string) (uint32, error)

// encodeFunc builds one packet from a parsed instruction's operands.
type encodeFunc func(ops []Operand, resolve Resolver) (uint32, error)

// mnemonics maps every iris assembly mnemonic to its encoder. Register-vs-
// immediate selection for arithmetic/compare is operand-driven (the last
// source operand's kind, not a distinct mnemonic) per the grammar note in
// DESIGN.md; every other group uses one mnemonic per distinct encoded
// form since those forms take different operand shapes.
var mnemonics = map[string]encodeFunc{
	"add": arithEncoder(iris.ArithAdd),
	"sub": arithEncoder(iris.ArithSub),
	"mul": arithEncoder(iris.ArithMul),
	"div": arithEncoder(iris.ArithDiv),
	"rem": arithEncoder(iris.ArithRem),
	"shl": arithEncoder(iris.ArithShl),
	"shr": arithEncoder(iris.ArithShr),
	"and": arithEncoder(iris.ArithAnd),
	"or":  arithEncoder(iris.ArithOr),
	"xor": arithEncoder(iris.ArithXor),
	"not": unaryArithEncoder(iris.ArithNot),
	"min": arithEncoder(iris.ArithMin),
	"max": arithEncoder(iris.ArithMax),

	"eq":  compareEncoder(iris.CmpEq),
	"neq": compareEncoder(iris.CmpNeq),
	"lt":  compareEncoder(iris.CmpLt),
	"gt":  compareEncoder(iris.CmpGt),
	"le":  compareEncoder(iris.CmpLe),
	"ge":  compareEncoder(iris.CmpGe),

	"bi":    jumpBaseEncoder(false, true, false),
	"bir":   jumpBaseEncoder(false, false, false),
	"bil":   jumpBaseEncoder(false, true, true),
	"bilr":  jumpBaseEncoder(false, false, true),
	"bit":   jumpBaseEncoder(true, true, false),
	"bitr":  jumpBaseEncoder(true, false, false),
	"bitl":  jumpBaseEncoder(true, true, true),
	"bitlr": jumpBaseEncoder(true, false, true),
	"ite":   iteEncoder,
	"blr":   specialJumpEncoder(iris.JumpBranchLR),
	"blrc":  blrcEncoder,
	"rfe":   specialJumpEncoder(iris.JumpReturnFromError),

	"mov":   moveRegEncoder(iris.MoveMove),
	"set":   moveSetEncoder,
	"swap":  moveRegEncoder(iris.MoveSwap),
	"ld":    moveLoadEncoder,
	"ldo":   moveLoadOffsetEncoder,
	"st":    moveStoreEncoder,
	"sto":   moveStoreOffsetEncoder,
	"mset":  moveMemsetEncoder,
	"push":  movePushEncoder,
	"pushi": movePushImmEncoder,
	"pop":   movePopEncoder,
	"stc":   moveStoreCodeEncoder,
	"ldc":   moveLoadCodeEncoder,
	"ior":   moveIOReadEncoder,
	"ioro":  moveIOReadOffsetEncoder,
	"iow":   moveIOWriteEncoder,
	"iowo":  moveIOWriteOffsetEncoder,
	"movip": moveFromIPEncoder,
	"movtoip": moveToIPEncoder,
	"movlr":   moveFromLREncoder,
	"movtolr": moveToLREncoder,
	"halt":    haltEncoder,

	"pand":  crfBinaryEncoder(iris.CRFAnd),
	"por":   crfBinaryEncoder(iris.CRFOr),
	"pxor":  crfBinaryEncoder(iris.CRFXor),
	"pnor":  crfBinaryEncoder(iris.CRFNor),
	"pnand": crfBinaryEncoder(iris.CRFNand),
	"pnot":  crfUnaryEncoder(iris.CRFNot),
	"pswap": crfUnaryEncoder(iris.CRFSwap),
	"pmov":  crfUnaryEncoder(iris.CRFMove),
	"savecr":    savecrEncoder,
	"restorecr": restorecrEncoder,
}

func requireOperands(ops []Operand, n int, mnemonic string) error {
	if len(ops) != n {
		return fmt.Errorf("%s requires %d operand(s), got %d", mnemonic, n, len(ops))
	}
	return nil
}

func regAt(ops []Operand, i int, mnemonic string) (uint32, error) {
	if ops[i].Kind != OperandReg {
		return 0, fmt.Errorf("%s operand %d must be a register", mnemonic, i+1)
	}
	return uint32(ops[i].Value), nil
}

func predAt(ops []Operand, i int, mnemonic string) (uint32, error) {
	if ops[i].Kind != OperandPred {
		return 0, fmt.Errorf("%s operand %d must be a predicate register", mnemonic, i+1)
	}
	return uint32(ops[i].Value), nil
}

// predOrSame resolves an inverse-predicate operand: "_" means "same as
// same", which the interpreter's suppressed-write rule treats as a no-op
// write.
func predOrSame(ops []Operand, i int, same uint32, mnemonic string) (uint32, error) {
	if ops[i].Kind == OperandUnderscore {
		return same, nil
	}
	return predAt(ops, i, mnemonic)
}

func targetAt(ops []Operand, i int, resolve Resolver, mnemonic string) (uint64, error) {
	switch ops[i].Kind {
	case OperandImm:
		return ops[i].Value, nil
	case OperandLabel:
		addr, err := resolve(ops[i].Label)
		return uint64(addr), err
	default:
		return 0, fmt.Errorf("%s operand %d must be an immediate or label", mnemonic, i+1)
	}
}

// arithEncoder builds a binary arithmetic op: "op dest, src0, src1OrImm".
func arithEncoder(op iris.ArithmeticOp) encodeFunc {
	return func(ops []Operand, _ Resolver) (uint32, error) {
		if err := requireOperands(ops, 3, "arithmetic"); err != nil {
			return 0, err
		}
		dest, err := regAt(ops, 0, "arithmetic")
		if err != nil {
			return 0, err
		}
		src0, err := regAt(ops, 1, "arithmetic")
		if err != nil {
			return 0, err
		}
		var packet uint32
		packet = iris.EncodeGroup(packet, iris.GroupArithmetic)
		packet = iris.EncodeArithOp(packet, op)
		packet = iris.EncodeDest(packet, dest)
		packet = iris.EncodeSrc0(packet, src0)
		switch ops[2].Kind {
		case OperandReg:
			packet = iris.EncodeArithImm(packet, false)
			packet = iris.EncodeSrc1(packet, uint32(ops[2].Value))
		case OperandImm:
			packet = iris.EncodeArithImm(packet, true)
			packet = iris.EncodeImm8(packet, uint8(ops[2].Value))
		default:
			return 0, fmt.Errorf("arithmetic operand 3 must be a register or immediate")
		}
		return packet, nil
	}
}

// unaryArithEncoder builds "not dest, src0" (source-1 unused).
func unaryArithEncoder(op iris.ArithmeticOp) encodeFunc {
	return func(ops []Operand, _ Resolver) (uint32, error) {
		if err := requireOperands(ops, 2, "not"); err != nil {
			return 0, err
		}
		dest, err := regAt(ops, 0, "not")
		if err != nil {
			return 0, err
		}
		src0, err := regAt(ops, 1, "not")
		if err != nil {
			return 0, err
		}
		var packet uint32
		packet = iris.EncodeGroup(packet, iris.GroupArithmetic)
		packet = iris.EncodeArithOp(packet, op)
		packet = iris.EncodeDest(packet, dest)
		packet = iris.EncodeSrc0(packet, src0)
		return packet, nil
	}
}

// compareEncoder builds "op resultPred, inversePredOrUnderscore, src0, src1OrImm".
func compareEncoder(op iris.CompareSubOp) encodeFunc {
	return func(ops []Operand, _ Resolver) (uint32, error) {
		if err := requireOperands(ops, 4, "compare"); err != nil {
			return 0, err
		}
		resultPred, err := predAt(ops, 0, "compare")
		if err != nil {
			return 0, err
		}
		inversePred, err := predOrSame(ops, 1, resultPred, "compare")
		if err != nil {
			return 0, err
		}
		src0, err := regAt(ops, 2, "compare")
		if err != nil {
			return 0, err
		}
		var packet uint32
		packet = iris.EncodeGroup(packet, iris.GroupCompare)
		packet = iris.EncodeCompareOp(packet, op)
		packet = iris.EncodeDestLo(packet, resultPred)
		packet = iris.EncodeDestHi(packet, inversePred)
		packet = iris.EncodeSrc0(packet, src0)
		switch ops[3].Kind {
		case OperandReg:
			packet = iris.EncodeCompareImm(packet, false)
			packet = iris.EncodeSrc1(packet, uint32(ops[3].Value))
		case OperandImm:
			packet = iris.EncodeCompareImm(packet, true)
			packet = iris.EncodeImm8(packet, uint8(ops[3].Value))
		default:
			return 0, fmt.Errorf("compare operand 4 must be a register or immediate")
		}
		return packet, nil
	}
}

// jumpBaseEncoder builds one of the eight flag-combination jump forms.
// conditional forms take a leading predicate operand; immediate forms take
// a trailing label/imm, register forms take a trailing register.
func jumpBaseEncoder(conditional, immediate, link bool) encodeFunc {
	return func(ops []Operand, resolve Resolver) (uint32, error) {
		want := 1
		if conditional {
			want = 2
		}
		if err := requireOperands(ops, want, "jump"); err != nil {
			return 0, err
		}
		var packet uint32
		packet = iris.EncodeGroup(packet, iris.GroupJump)
		packet = iris.EncodeJumpFlags(packet, conditional, immediate, link)

		targetIdx := 0
		if conditional {
			pred, err := predAt(ops, 0, "jump")
			if err != nil {
				return 0, err
			}
			packet = iris.EncodeDestLo(packet, pred)
			targetIdx = 1
		}
		if immediate {
			v, err := targetAt(ops, targetIdx, resolve, "jump")
			if err != nil {
				return 0, err
			}
			packet = iris.EncodeImm16(packet, uint16(v))
		} else {
			reg, err := regAt(ops, targetIdx, "jump")
			if err != nil {
				return 0, err
			}
			if conditional {
				packet = iris.EncodeSrc0(packet, reg)
			} else {
				packet = iris.EncodeDest(packet, reg)
			}
		}
		return packet, nil
	}
}

// iteEncoder builds "ite pred, regTrue, regFalse".
func iteEncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 3, "ite"); err != nil {
		return 0, err
	}
	pred, err := predAt(ops, 0, "ite")
	if err != nil {
		return 0, err
	}
	trueReg, err := regAt(ops, 1, "ite")
	if err != nil {
		return 0, err
	}
	falseReg, err := regAt(ops, 2, "ite")
	if err != nil {
		return 0, err
	}
	var packet uint32
	packet = iris.EncodeGroup(packet, iris.GroupJump)
	packet = iris.EncodeJumpSpecial(packet, iris.JumpIfThenElse)
	packet = iris.EncodeDestLo(packet, pred)
	packet = iris.EncodeSrc0(packet, trueReg)
	packet = iris.EncodeSrc1(packet, falseReg)
	return packet, nil
}

func specialJumpEncoder(form iris.JumpOp) encodeFunc {
	return func(ops []Operand, _ Resolver) (uint32, error) {
		if err := requireOperands(ops, 0, "jump"); err != nil {
			return 0, err
		}
		var packet uint32
		packet = iris.EncodeGroup(packet, iris.GroupJump)
		packet = iris.EncodeJumpSpecial(packet, form)
		return packet, nil
	}
}

func blrcEncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 1, "blrc"); err != nil {
		return 0, err
	}
	pred, err := predAt(ops, 0, "blrc")
	if err != nil {
		return 0, err
	}
	var packet uint32
	packet = iris.EncodeGroup(packet, iris.GroupJump)
	packet = iris.EncodeJumpSpecial(packet, iris.JumpBranchLRConditional)
	packet = iris.EncodeDestLo(packet, pred)
	return packet, nil
}

func moveBase(op iris.MoveOp) uint32 {
	var packet uint32
	packet = iris.EncodeGroup(packet, iris.GroupMove)
	packet = iris.EncodeMoveOp(packet, op)
	return packet
}

// moveRegEncoder builds "op dest, src" for mov/swap.
func moveRegEncoder(op iris.MoveOp) encodeFunc {
	return func(ops []Operand, _ Resolver) (uint32, error) {
		if err := requireOperands(ops, 2, "move"); err != nil {
			return 0, err
		}
		dest, err := regAt(ops, 0, "move")
		if err != nil {
			return 0, err
		}
		src, err := regAt(ops, 1, "move")
		if err != nil {
			return 0, err
		}
		packet := moveBase(op)
		packet = iris.EncodeDest(packet, dest)
		packet = iris.EncodeSrc0(packet, src)
		return packet, nil
	}
}

func moveSetEncoder(ops []Operand, resolve Resolver) (uint32, error) {
	if err := requireOperands(ops, 2, "set"); err != nil {
		return 0, err
	}
	dest, err := regAt(ops, 0, "set")
	if err != nil {
		return 0, err
	}
	v, err := targetAt(ops, 1, resolve, "set")
	if err != nil {
		return 0, err
	}
	packet := moveBase(iris.MoveSet)
	packet = iris.EncodeDest(packet, dest)
	packet = iris.EncodeImm16(packet, uint16(v))
	return packet, nil
}

func moveLoadEncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 2, "ld"); err != nil {
		return 0, err
	}
	dest, err := regAt(ops, 0, "ld")
	if err != nil {
		return 0, err
	}
	addr, err := regAt(ops, 1, "ld")
	if err != nil {
		return 0, err
	}
	packet := moveBase(iris.MoveLoad)
	packet = iris.EncodeDest(packet, dest)
	packet = iris.EncodeSrc0(packet, addr)
	return packet, nil
}

func moveLoadOffsetEncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 3, "ldo"); err != nil {
		return 0, err
	}
	dest, err := regAt(ops, 0, "ldo")
	if err != nil {
		return 0, err
	}
	addr, err := regAt(ops, 1, "ldo")
	if err != nil {
		return 0, err
	}
	if ops[2].Kind != OperandImm {
		return 0, fmt.Errorf("ldo operand 3 must be an immediate")
	}
	packet := moveBase(iris.MoveLoadImmOffset)
	packet = iris.EncodeDest(packet, dest)
	packet = iris.EncodeSrc0(packet, addr)
	packet = iris.EncodeImm8(packet, uint8(ops[2].Value))
	return packet, nil
}

func moveStoreEncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 2, "st"); err != nil {
		return 0, err
	}
	addr, err := regAt(ops, 0, "st")
	if err != nil {
		return 0, err
	}
	val, err := regAt(ops, 1, "st")
	if err != nil {
		return 0, err
	}
	packet := moveBase(iris.MoveStore)
	packet = iris.EncodeDest(packet, addr)
	packet = iris.EncodeSrc0(packet, val)
	return packet, nil
}

func moveStoreOffsetEncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 3, "sto"); err != nil {
		return 0, err
	}
	addr, err := regAt(ops, 0, "sto")
	if err != nil {
		return 0, err
	}
	val, err := regAt(ops, 1, "sto")
	if err != nil {
		return 0, err
	}
	if ops[2].Kind != OperandImm {
		return 0, fmt.Errorf("sto operand 3 must be an immediate")
	}
	packet := moveBase(iris.MoveStoreImmOffset)
	packet = iris.EncodeDest(packet, addr)
	packet = iris.EncodeSrc0(packet, val)
	packet = iris.EncodeImm8(packet, uint8(ops[2].Value))
	return packet, nil
}

func moveMemsetEncoder(ops []Operand, resolve Resolver) (uint32, error) {
	if err := requireOperands(ops, 2, "mset"); err != nil {
		return 0, err
	}
	addr, err := regAt(ops, 0, "mset")
	if err != nil {
		return 0, err
	}
	v, err := targetAt(ops, 1, resolve, "mset")
	if err != nil {
		return 0, err
	}
	packet := moveBase(iris.MoveMemset)
	packet = iris.EncodeDest(packet, addr)
	packet = iris.EncodeImm16(packet, uint16(v))
	return packet, nil
}

func movePushEncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 2, "push"); err != nil {
		return 0, err
	}
	sp, err := regAt(ops, 0, "push")
	if err != nil {
		return 0, err
	}
	val, err := regAt(ops, 1, "push")
	if err != nil {
		return 0, err
	}
	packet := moveBase(iris.MovePush)
	packet = iris.EncodeDest(packet, sp)
	packet = iris.EncodeSrc0(packet, val)
	return packet, nil
}

func movePushImmEncoder(ops []Operand, resolve Resolver) (uint32, error) {
	if err := requireOperands(ops, 2, "pushi"); err != nil {
		return 0, err
	}
	sp, err := regAt(ops, 0, "pushi")
	if err != nil {
		return 0, err
	}
	v, err := targetAt(ops, 1, resolve, "pushi")
	if err != nil {
		return 0, err
	}
	packet := moveBase(iris.MovePushImmediate)
	packet = iris.EncodeDest(packet, sp)
	packet = iris.EncodeImm16(packet, uint16(v))
	return packet, nil
}

func movePopEncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 2, "pop"); err != nil {
		return 0, err
	}
	sp, err := regAt(ops, 0, "pop")
	if err != nil {
		return 0, err
	}
	dest, err := regAt(ops, 1, "pop")
	if err != nil {
		return 0, err
	}
	packet := moveBase(iris.MovePop)
	packet = iris.EncodeDest(packet, sp)
	packet = iris.EncodeSrc0(packet, dest)
	return packet, nil
}

func moveStoreCodeEncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 3, "stc"); err != nil {
		return 0, err
	}
	lo, err := regAt(ops, 0, "stc")
	if err != nil {
		return 0, err
	}
	hi, err := regAt(ops, 1, "stc")
	if err != nil {
		return 0, err
	}
	addr, err := regAt(ops, 2, "stc")
	if err != nil {
		return 0, err
	}
	packet := moveBase(iris.MoveStoreCode)
	packet = iris.EncodeDest(packet, lo)
	packet = iris.EncodeSrc0(packet, hi)
	packet = iris.EncodeSrc1(packet, addr)
	return packet, nil
}

func moveLoadCodeEncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 3, "ldc"); err != nil {
		return 0, err
	}
	lo, err := regAt(ops, 0, "ldc")
	if err != nil {
		return 0, err
	}
	hi, err := regAt(ops, 1, "ldc")
	if err != nil {
		return 0, err
	}
	addr, err := regAt(ops, 2, "ldc")
	if err != nil {
		return 0, err
	}
	packet := moveBase(iris.MoveLoadCode)
	packet = iris.EncodeDest(packet, lo)
	packet = iris.EncodeSrc0(packet, hi)
	packet = iris.EncodeSrc1(packet, addr)
	return packet, nil
}

func moveIOReadEncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 2, "ior"); err != nil {
		return 0, err
	}
	dest, err := regAt(ops, 0, "ior")
	if err != nil {
		return 0, err
	}
	port, err := regAt(ops, 1, "ior")
	if err != nil {
		return 0, err
	}
	packet := moveBase(iris.MoveIORead)
	packet = iris.EncodeDest(packet, dest)
	packet = iris.EncodeSrc0(packet, port)
	return packet, nil
}

func moveIOReadOffsetEncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 2, "ioro"); err != nil {
		return 0, err
	}
	dest, err := regAt(ops, 0, "ioro")
	if err != nil {
		return 0, err
	}
	if ops[1].Kind != OperandImm {
		return 0, fmt.Errorf("ioro operand 2 must be an immediate port")
	}
	packet := moveBase(iris.MoveIOReadOffset)
	packet = iris.EncodeDest(packet, dest)
	packet = iris.EncodeImm8(packet, uint8(ops[1].Value))
	return packet, nil
}

func moveIOWriteEncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 2, "iow"); err != nil {
		return 0, err
	}
	port, err := regAt(ops, 0, "iow")
	if err != nil {
		return 0, err
	}
	val, err := regAt(ops, 1, "iow")
	if err != nil {
		return 0, err
	}
	packet := moveBase(iris.MoveIOWrite)
	packet = iris.EncodeSrc0(packet, port)
	packet = iris.EncodeSrc1(packet, val)
	return packet, nil
}

func moveIOWriteOffsetEncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 2, "iowo"); err != nil {
		return 0, err
	}
	if ops[0].Kind != OperandImm {
		return 0, fmt.Errorf("iowo operand 1 must be an immediate port")
	}
	val, err := regAt(ops, 1, "iowo")
	if err != nil {
		return 0, err
	}
	packet := moveBase(iris.MoveIOWriteOffset)
	packet = iris.EncodeImm8(packet, uint8(ops[0].Value))
	packet = iris.EncodeSrc0(packet, val)
	return packet, nil
}

func moveFromIPEncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 1, "movip"); err != nil {
		return 0, err
	}
	dest, err := regAt(ops, 0, "movip")
	if err != nil {
		return 0, err
	}
	packet := moveBase(iris.MoveFromIP)
	packet = iris.EncodeDest(packet, dest)
	return packet, nil
}

func moveToIPEncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 1, "movtoip"); err != nil {
		return 0, err
	}
	src, err := regAt(ops, 0, "movtoip")
	if err != nil {
		return 0, err
	}
	packet := moveBase(iris.MoveToIP)
	packet = iris.EncodeSrc0(packet, src)
	return packet, nil
}

func moveFromLREncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 1, "movlr"); err != nil {
		return 0, err
	}
	dest, err := regAt(ops, 0, "movlr")
	if err != nil {
		return 0, err
	}
	packet := moveBase(iris.MoveFromLR)
	packet = iris.EncodeDest(packet, dest)
	return packet, nil
}

func moveToLREncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 1, "movtolr"); err != nil {
		return 0, err
	}
	src, err := regAt(ops, 0, "movtolr")
	if err != nil {
		return 0, err
	}
	packet := moveBase(iris.MoveToLR)
	packet = iris.EncodeSrc0(packet, src)
	return packet, nil
}

// haltEncoder expands the "halt" pseudo-op to a write of any value to the
// terminate device (device index 0). The value register's contents are
// irrelevant; r0 is used for definiteness.
func haltEncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 0, "halt"); err != nil {
		return 0, err
	}
	packet := moveBase(iris.MoveIOWriteOffset)
	packet = iris.EncodeImm8(packet, uint8(iris.DeviceTerminate))
	packet = iris.EncodeSrc0(packet, 0)
	return packet, nil
}

func crfBase(op iris.CRFOp) uint32 {
	var packet uint32
	packet = iris.EncodeGroup(packet, iris.GroupConditionalRegister)
	packet = iris.EncodeCRFOp(packet, op)
	return packet
}

// crfBinaryEncoder builds "op destLo, destHiOrUnderscore, srcLo, srcHi".
func crfBinaryEncoder(op iris.CRFOp) encodeFunc {
	return func(ops []Operand, _ Resolver) (uint32, error) {
		if err := requireOperands(ops, 4, "crf"); err != nil {
			return 0, err
		}
		destLo, err := predAt(ops, 0, "crf")
		if err != nil {
			return 0, err
		}
		destHi, err := predOrSame(ops, 1, destLo, "crf")
		if err != nil {
			return 0, err
		}
		srcLo, err := predAt(ops, 2, "crf")
		if err != nil {
			return 0, err
		}
		srcHi, err := predAt(ops, 3, "crf")
		if err != nil {
			return 0, err
		}
		packet := crfBase(op)
		packet = iris.EncodeDestLo(packet, destLo)
		packet = iris.EncodeDestHi(packet, destHi)
		packet = iris.EncodeSrc0Lo(packet, srcLo)
		packet = iris.EncodeSrc0Hi(packet, srcHi)
		return packet, nil
	}
}

// crfUnaryEncoder builds "op destLo, srcLo" for not/swap/move.
func crfUnaryEncoder(op iris.CRFOp) encodeFunc {
	return func(ops []Operand, _ Resolver) (uint32, error) {
		if err := requireOperands(ops, 2, "crf"); err != nil {
			return 0, err
		}
		destLo, err := predAt(ops, 0, "crf")
		if err != nil {
			return 0, err
		}
		srcLo, err := predAt(ops, 1, "crf")
		if err != nil {
			return 0, err
		}
		packet := crfBase(op)
		packet = iris.EncodeDestLo(packet, destLo)
		packet = iris.EncodeSrc0Lo(packet, srcLo)
		return packet, nil
	}
}

func savecrEncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 2, "savecr"); err != nil {
		return 0, err
	}
	dest, err := regAt(ops, 0, "savecr")
	if err != nil {
		return 0, err
	}
	if ops[1].Kind != OperandImm {
		return 0, fmt.Errorf("savecr operand 2 must be an immediate mask")
	}
	packet := crfBase(iris.CRFSaveCRs)
	packet = iris.EncodeDest(packet, dest)
	packet = iris.EncodeImm16(packet, uint16(ops[1].Value))
	return packet, nil
}

func restorecrEncoder(ops []Operand, _ Resolver) (uint32, error) {
	if err := requireOperands(ops, 2, "restorecr"); err != nil {
		return 0, err
	}
	src, err := regAt(ops, 0, "restorecr")
	if err != nil {
		return 0, err
	}
	if ops[1].Kind != OperandImm {
		return 0, fmt.Errorf("restorecr operand 2 must be an immediate mask")
	}
	packet := crfBase(iris.CRFRestoreCRs)
	packet = iris.EncodeDest(packet, src)
	packet = iris.EncodeImm16(packet, uint16(ops[1].Value))
	return packet, nil
}
