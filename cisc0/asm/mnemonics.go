package asm

import (
	"fmt"

	"github.com/lookbusy1344/arm-emulator/cisc0"
)

// Resolver looks up a label's address, wrapping asmutil.SymbolTable.Lookup.
type Resolver func(name string) (uint32, error)

type mnemonicSpec struct {
	width  func(ops []Operand) (uint32, error)
	encode func(ops []Operand, resolve Resolver) ([]uint16, error)
}

// mnemonics maps the cisc0 dialect's textual grammar to its encoders.
// and/or/xor/not reach ClassLogical, not ClassArithmetic's own bitwise
// subtypes: spec.md §8 groups Logical with move/memory/set as bitmask-
// gated (preserving unselected dest bytes), while Arithmetic always
// overwrites the full destination, so the two aren't interchangeable.
// ArithAnd/ArithOr/ArithXor/ArithNot (isa.go) stay defined for raw-packet
// construction but have no assembler mnemonic of their own.
var mnemonics = map[string]mnemonicSpec{
	"add": arithSpec(cisc0.ArithAdd),
	"sub": arithSpec(cisc0.ArithSub),
	"mul": arithSpec(cisc0.ArithMul),
	"div": arithSpec(cisc0.ArithDiv),
	"rem": arithSpec(cisc0.ArithRem),
	"min": arithSpec(cisc0.ArithMin),
	"max": arithSpec(cisc0.ArithMax),

	"and": logicalSpec(cisc0.LogicalAnd),
	"or":  logicalSpec(cisc0.LogicalOr),
	"xor": logicalSpec(cisc0.LogicalXor),
	"not": logicalSpec(cisc0.LogicalNot),

	"shl": shiftSpec(cisc0.ShiftLeft),
	"shr": shiftSpec(cisc0.ShiftRight),

	"eq":  compareSpec(cisc0.CmpEq),
	"neq": compareSpec(cisc0.CmpNeq),
	"lt":  compareSpec(cisc0.CmpLt),
	"gt":  compareSpec(cisc0.CmpGt),
	"le":  compareSpec(cisc0.CmpLe),
	"ge":  compareSpec(cisc0.CmpGe),

	"ld":   memorySpec(cisc0.MemLoad),
	"st":   memorySpec(cisc0.MemStore),
	"push": memorySpec(cisc0.MemPush),
	"pop":  memorySpec(cisc0.MemPop),

	"br":     branchSpec(cisc0.BranchForm{}),
	"bif":    branchSpec(cisc0.BranchForm{IsIf: true, IsConditional: true}),
	"bifn":   branchSpec(cisc0.BranchForm{IsIf: true, IsConditional: true, ShiftLeft: true}),
	"call":   branchSpec(cisc0.BranchForm{IsCall: true}),
	"callif": branchSpec(cisc0.BranchForm{IsCall: true, IsIf: true, IsConditional: true}),

	"syscall": syscallSpec(),

	"set": setSpec(),

	"mov":  moveSpec(),
	"swap": swapSpec(),

	"bitset":   complexSpec(cisc0.ComplexBitSet),
	"bitunset": complexSpec(cisc0.ComplexBitUnset),
	"encode":   complexSpec(cisc0.ComplexEncode),
	"decode":   complexSpec(cisc0.ComplexDecode),
}

func requireOperands(ops []Operand, n int) error {
	if len(ops) != n {
		return fmt.Errorf("expected %d operands, got %d", n, len(ops))
	}
	return nil
}

func regAt(ops []Operand, i int) (uint32, error) {
	if ops[i].Kind != OperandReg {
		return 0, fmt.Errorf("operand %d must be a register", i)
	}
	return uint32(ops[i].Value), nil
}

func resolveTarget(op Operand, resolve Resolver) (uint32, error) {
	switch op.Kind {
	case OperandImm:
		return uint32(op.Value), nil
	case OperandLabel:
		return resolve(op.Label)
	default:
		return 0, fmt.Errorf("operand must be an immediate or label")
	}
}

// aluWidth, shared by the arith/logical/shift/compare specs: word0+word1,
// plus two more words
// (the assembler always emits a full 0b1111 immediate) when the last
// operand isn't a register.
func aluWidth(ops []Operand) (uint32, error) {
	if len(ops) == 0 {
		return 0, fmt.Errorf("missing operands")
	}
	last := ops[len(ops)-1]
	if last.Kind == OperandReg {
		return 2, nil
	}
	return 4, nil
}

func arithSpec(op cisc0.ArithmeticOp) mnemonicSpec {
	unary := op == cisc0.ArithNot
	return mnemonicSpec{
		width: aluWidth,
		encode: func(ops []Operand, resolve Resolver) ([]uint16, error) {
			n := 3
			if unary {
				n = 2
			}
			if err := requireOperands(ops, n); err != nil {
				return nil, err
			}
			dest, err := regAt(ops, 0)
			if err != nil {
				return nil, err
			}
			src0, err := regAt(ops, 1)
			if err != nil {
				return nil, err
			}
			if unary {
				return encodeALU(cisc0.ClassArithmetic, uint32(op), dest, src0, Operand{Kind: OperandReg, Value: uint64(src0)}, resolve)
			}
			return encodeALU(cisc0.ClassArithmetic, uint32(op), dest, src0, ops[2], resolve)
		},
	}
}

func logicalSpec(op cisc0.LogicalOp) mnemonicSpec {
	unary := op == cisc0.LogicalNot
	return mnemonicSpec{
		width: aluWidth,
		encode: func(ops []Operand, resolve Resolver) ([]uint16, error) {
			n := 3
			if unary {
				n = 2
			}
			if err := requireOperands(ops, n); err != nil {
				return nil, err
			}
			dest, err := regAt(ops, 0)
			if err != nil {
				return nil, err
			}
			src0, err := regAt(ops, 1)
			if err != nil {
				return nil, err
			}
			if unary {
				return encodeALU(cisc0.ClassLogical, uint32(op), dest, src0, Operand{Kind: OperandReg, Value: uint64(src0)}, resolve)
			}
			return encodeALU(cisc0.ClassLogical, uint32(op), dest, src0, ops[2], resolve)
		},
	}
}

func shiftSpec(op cisc0.ShiftOp) mnemonicSpec {
	return mnemonicSpec{
		width: aluWidth,
		encode: func(ops []Operand, resolve Resolver) ([]uint16, error) {
			if err := requireOperands(ops, 3); err != nil {
				return nil, err
			}
			dest, err := regAt(ops, 0)
			if err != nil {
				return nil, err
			}
			src0, err := regAt(ops, 1)
			if err != nil {
				return nil, err
			}
			return encodeALU(cisc0.ClassShift, uint32(op), dest, src0, ops[2], resolve)
		},
	}
}

func compareSpec(op cisc0.CompareOp) mnemonicSpec {
	return mnemonicSpec{
		width: aluWidth,
		encode: func(ops []Operand, resolve Resolver) ([]uint16, error) {
			if err := requireOperands(ops, 2); err != nil {
				return nil, err
			}
			src0, err := regAt(ops, 0)
			if err != nil {
				return nil, err
			}
			return encodeALU(cisc0.ClassCompare, uint32(op), 0, src0, ops[1], resolve)
		},
	}
}

// encodeALU builds the shared word0+word1(+immediate) shape: register
// form when last is a register, immediate form (full 0b1111 bitmask)
// otherwise.
func encodeALU(class cisc0.Class, subtype uint32, dest, src0 uint32, last Operand, resolve Resolver) ([]uint16, error) {
	w0 := uint16(0)
	w0 = cisc0.EncodeClass(w0, class)
	w0 = cisc0.EncodeSubtype(w0, subtype)
	w0 = cisc0.EncodeDest4(w0, dest)

	if last.Kind == OperandReg {
		w1 := uint16(0)
		w1 = cisc0.EncodeReg0(w1, src0)
		w1 = cisc0.EncodeReg1(w1, uint32(last.Value))
		return []uint16{w0, w1}, nil
	}

	w0 = cisc0.EncodeBitmask(w0, 0b1111)
	w1 := uint16(0)
	w1 = cisc0.EncodeReg0(w1, src0)
	v, err := resolveTarget(last, resolve)
	if err != nil {
		return nil, err
	}
	return []uint16{w0, w1, uint16(v), uint16(v >> 16)}, nil
}

func memorySpec(op cisc0.MemoryOp) mnemonicSpec {
	return mnemonicSpec{
		width: func(ops []Operand) (uint32, error) { return 1, nil },
		encode: func(ops []Operand, resolve Resolver) ([]uint16, error) {
			if err := requireOperands(ops, 0); err != nil {
				return nil, err
			}
			w0 := uint16(0)
			w0 = cisc0.EncodeClass(w0, cisc0.ClassMemory)
			w0 = cisc0.EncodeSubtype(w0, uint32(op))
			w0 = cisc0.EncodeBitmask(w0, 0b1111)
			return []uint16{w0}, nil
		},
	}
}

func branchSpec(form cisc0.BranchForm) mnemonicSpec {
	if form.IsIf {
		return ifBranchSpec(form)
	}
	return mnemonicSpec{
		width: func(ops []Operand) (uint32, error) {
			if err := requireOperands(ops, 1); err != nil {
				return 0, err
			}
			if ops[0].Kind == OperandReg {
				return 1, nil
			}
			return 3, nil
		},
		encode: func(ops []Operand, resolve Resolver) ([]uint16, error) {
			if err := requireOperands(ops, 1); err != nil {
				return nil, err
			}
			f := form
			if ops[0].Kind == OperandReg {
				w0 := uint16(0)
				w0 = cisc0.EncodeClass(w0, cisc0.ClassBranch)
				w0 = cisc0.EncodeSubtype(w0, uint32(ops[0].Value))
				w0 = cisc0.EncodeBranchForm(w0, f)
				return []uint16{w0}, nil
			}
			f.Immediate = true
			target, err := resolveTarget(ops[0], resolve)
			if err != nil {
				return nil, err
			}
			w0 := uint16(0)
			w0 = cisc0.EncodeClass(w0, cisc0.ClassBranch)
			w0 = cisc0.EncodeBranchForm(w0, f)
			return []uint16{w0, uint16(target), uint16(target >> 16)}, nil
		},
	}
}

// ifBranchSpec encodes the If-forms (bif, bifn, callif): two GPRs giving
// the true and false branch targets, selected by the condition register
// rather than gating whether the branch happens at all.
func ifBranchSpec(form cisc0.BranchForm) mnemonicSpec {
	return mnemonicSpec{
		width: func(ops []Operand) (uint32, error) {
			if err := requireOperands(ops, 2); err != nil {
				return 0, err
			}
			return 2, nil
		},
		encode: func(ops []Operand, resolve Resolver) ([]uint16, error) {
			if err := requireOperands(ops, 2); err != nil {
				return nil, err
			}
			trueReg, err := regAt(ops, 0)
			if err != nil {
				return nil, fmt.Errorf("branch if-form true-target: %w", err)
			}
			falseReg, err := regAt(ops, 1)
			if err != nil {
				return nil, fmt.Errorf("branch if-form false-target: %w", err)
			}
			w0 := uint16(0)
			w0 = cisc0.EncodeClass(w0, cisc0.ClassBranch)
			w0 = cisc0.EncodeBranchForm(w0, form)
			w1 := uint16(0)
			w1 = cisc0.EncodeReg0(w1, trueReg)
			w1 = cisc0.EncodeReg1(w1, falseReg)
			return []uint16{w0, w1}, nil
		},
	}
}

func syscallSpec() mnemonicSpec {
	return mnemonicSpec{
		width: func(ops []Operand) (uint32, error) { return 1, nil },
		encode: func(ops []Operand, resolve Resolver) ([]uint16, error) {
			if err := requireOperands(ops, 0); err != nil {
				return nil, err
			}
			w0 := uint16(0)
			w0 = cisc0.EncodeClass(w0, cisc0.ClassSystemCall)
			return []uint16{w0}, nil
		},
	}
}

func setSpec() mnemonicSpec {
	return mnemonicSpec{
		width: func(ops []Operand) (uint32, error) { return 3, nil },
		encode: func(ops []Operand, resolve Resolver) ([]uint16, error) {
			if err := requireOperands(ops, 2); err != nil {
				return nil, err
			}
			dest, err := regAt(ops, 0)
			if err != nil {
				return nil, err
			}
			v, err := resolveTarget(ops[1], resolve)
			if err != nil {
				return nil, err
			}
			w0 := uint16(0)
			w0 = cisc0.EncodeClass(w0, cisc0.ClassSet)
			w0 = cisc0.EncodeBitmask(w0, 0b1111)
			w0 = cisc0.EncodeDest4(w0, dest)
			return []uint16{w0, uint16(v), uint16(v >> 16)}, nil
		},
	}
}

func moveSpec() mnemonicSpec {
	return mnemonicSpec{
		width: func(ops []Operand) (uint32, error) { return 2, nil },
		encode: func(ops []Operand, resolve Resolver) ([]uint16, error) {
			if err := requireOperands(ops, 2); err != nil {
				return nil, err
			}
			dest, err := regAt(ops, 0)
			if err != nil {
				return nil, err
			}
			src, err := regAt(ops, 1)
			if err != nil {
				return nil, err
			}
			w0 := uint16(0)
			w0 = cisc0.EncodeClass(w0, cisc0.ClassMove)
			w0 = cisc0.EncodeBitmask(w0, 0b1111)
			w0 = cisc0.EncodeDest4(w0, dest)
			w1 := uint16(0)
			w1 = cisc0.EncodeReg0(w1, src)
			return []uint16{w0, w1}, nil
		},
	}
}

func swapSpec() mnemonicSpec {
	return mnemonicSpec{
		width: func(ops []Operand) (uint32, error) { return 2, nil },
		encode: func(ops []Operand, resolve Resolver) ([]uint16, error) {
			if err := requireOperands(ops, 2); err != nil {
				return nil, err
			}
			a, err := regAt(ops, 0)
			if err != nil {
				return nil, err
			}
			b, err := regAt(ops, 1)
			if err != nil {
				return nil, err
			}
			w0 := uint16(0)
			w0 = cisc0.EncodeClass(w0, cisc0.ClassSwap)
			w1 := uint16(0)
			w1 = cisc0.EncodeReg0(w1, a)
			w1 = cisc0.EncodeReg1(w1, b)
			return []uint16{w0, w1}, nil
		},
	}
}

func complexSpec(op cisc0.ComplexOp) mnemonicSpec {
	return mnemonicSpec{
		width: func(ops []Operand) (uint32, error) { return 1, nil },
		encode: func(ops []Operand, resolve Resolver) ([]uint16, error) {
			if err := requireOperands(ops, 1); err != nil {
				return nil, err
			}
			dest, err := regAt(ops, 0)
			if err != nil {
				return nil, err
			}
			w0 := uint16(0)
			w0 = cisc0.EncodeClass(w0, cisc0.ClassComplex)
			w0 = cisc0.EncodeSubtype(w0, uint32(op))
			w0 = cisc0.EncodeDest4(w0, dest)
			return []uint16{w0}, nil
		},
	}
}
