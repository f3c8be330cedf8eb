package cisc0

import "github.com/lookbusy1344/arm-emulator/core"

// aluOperands is the shared shape of Arithmetic/Shift/Logical/Compare:
// word 0 carries subtype, bitmask, and (for everything but Compare) a
// destination register; word 1 always follows, carrying src0 in its low
// nibble and, for the register form (bitmask == 0), src1 in its high
// nibble. The immediate form (bitmask != 0) instead fetches 0-2 more
// words per the bitmask and ignores word 1's high nibble.
type aluOperands struct {
	dest  uint32
	src0  uint32
	src1  uint32
	imm   uint32
	isImm bool
}

func (vm *VM) fetchALUOperands(word0 uint16) (aluOperands, error) {
	mask := DecodeBitmask(word0)
	word1, err := vm.fetchExtraWord()
	if err != nil {
		return aluOperands{}, err
	}
	ops := aluOperands{
		dest: DecodeDest4(word0),
		src0: DecodeReg0(word1),
	}
	if mask == 0 {
		ops.src1 = DecodeReg1(word1)
		return ops, nil
	}
	ops.isImm = true
	ops.imm, err = vm.fetchImmediate32(mask)
	return ops, err
}

// execArithmetic dispatches add/sub/mul/div/rem/and/or/xor/not/min/max
// (spec.md §4.3: "identical shape to iris").
func (vm *VM) execArithmetic(word0 uint16) error {
	op := ArithmeticOp(DecodeSubtype(word0))
	ops, err := vm.fetchALUOperands(word0)
	if err != nil {
		return err
	}

	src0 := vm.Regs.Get(ops.src0)
	var src1 uint32
	if ops.isImm {
		src1 = ops.imm
	} else {
		src1 = vm.Regs.Get(ops.src1)
	}

	var result uint32
	switch op {
	case ArithAdd:
		result = src0 + src1
	case ArithSub:
		result = src0 - src1
	case ArithMul:
		result = src0 * src1
	case ArithDiv:
		if src1 == 0 {
			return core.NewFault(core.DivisionByZero, vm.Regs.IP(), "div by zero")
		}
		result = src0 / src1
	case ArithRem:
		if src1 == 0 {
			return core.NewFault(core.DivisionByZero, vm.Regs.IP(), "rem by zero")
		}
		result = src0 % src1
	case ArithAnd:
		result = src0 & src1
	case ArithOr:
		result = src0 | src1
	case ArithXor:
		result = src0 ^ src1
	case ArithNot:
		result = ^src0
	case ArithMin:
		result = core.Min(src0, src1)
	case ArithMax:
		result = core.Max(src0, src1)
	default:
		return core.NewFault(core.DecodeFault, vm.Regs.IP(), "unknown arithmetic op %d", op)
	}

	vm.Regs.Set(ops.dest, result)
	return nil
}

// execShift dispatches shift-left/shift-right, shift amount masked to 5
// bits the way spec.md §4.3 masks shift/field register reads.
func (vm *VM) execShift(word0 uint16) error {
	op := ShiftOp(DecodeSubtype(word0))
	ops, err := vm.fetchALUOperands(word0)
	if err != nil {
		return err
	}

	src0 := vm.Regs.Get(ops.src0)
	var amount uint32
	if ops.isImm {
		amount = ops.imm
	} else {
		amount = vm.Regs.Get(ops.src1)
	}
	amount &= 0x1F

	var result uint32
	switch op {
	case ShiftLeft:
		result = src0 << amount
	case ShiftRight:
		result = src0 >> amount
	default:
		return core.NewFault(core.DecodeFault, vm.Regs.IP(), "unknown shift op %d", op)
	}

	vm.Regs.Set(ops.dest, result)
	return nil
}

// execLogical dispatches and/or/xor/not; not (unary) ignores src1. Unlike
// execArithmetic, the destination write is bitmask-gated (spec.md §8):
// the immediate form only overwrites the bytes its bitmask selected,
// preserving dest's other bytes, while the register form (no immediate
// bytes fetched) writes the full word.
func (vm *VM) execLogical(word0 uint16) error {
	op := LogicalOp(DecodeSubtype(word0))
	mask := DecodeBitmask(word0)
	ops, err := vm.fetchALUOperands(word0)
	if err != nil {
		return err
	}

	src0 := vm.Regs.Get(ops.src0)
	var src1 uint32
	writeMask := Bitmask(0b1111)
	if ops.isImm {
		src1 = ops.imm
		writeMask = mask
	} else {
		src1 = vm.Regs.Get(ops.src1)
	}

	var result uint32
	switch op {
	case LogicalAnd:
		result = src0 & src1
	case LogicalOr:
		result = src0 | src1
	case LogicalXor:
		result = src0 ^ src1
	case LogicalNot:
		result = ^src0
	default:
		return core.NewFault(core.DecodeFault, vm.Regs.IP(), "unknown logical op %d", op)
	}

	vm.Regs.Set(ops.dest, writeMask.MergeBytes(vm.Regs.Get(ops.dest), result))
	return nil
}

// execCompare dispatches eq/neq/lt/gt/le/ge, writing the boolean result
// to the condition register (RegCR) - cisc0 has one flag, not a bank
// (spec.md §3).
func (vm *VM) execCompare(word0 uint16) error {
	op := CompareOp(DecodeSubtype(word0))
	ops, err := vm.fetchALUOperands(word0)
	if err != nil {
		return err
	}

	src0 := vm.Regs.Get(ops.src0)
	var src1 uint32
	if ops.isImm {
		src1 = ops.imm
	} else {
		src1 = vm.Regs.Get(ops.src1)
	}

	result := core.CompareUnsigned(op.ToCoreCompareOp(), src0, src1)
	vm.Regs.SetCR(core.BoolToWord[uint32](result))
	return nil
}
