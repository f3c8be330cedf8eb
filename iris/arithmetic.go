package iris

import "github.com/lookbusy1344/arm-emulator/core"

// execArithmetic dispatches the Arithmetic group: add, sub, mul, div, rem,
// shl, shr, and, or, xor, not, min, max, each with a half-immediate form
// that replaces source-1 (spec.md §4.2).
func (vm *VM) execArithmetic(packet uint32) error {
	op := DecodeArithOp(packet)
	dest := DecodeDest(packet)
	src0 := vm.Regs.Get(DecodeSrc0(packet))

	var src1 uint16
	if DecodeArithImm(packet) {
		src1 = uint16(DecodeImm8(packet))
	} else {
		src1 = vm.Regs.Get(DecodeSrc1(packet))
	}

	var result uint16
	switch op {
	case ArithAdd:
		result = src0 + src1
	case ArithSub:
		result = src0 - src1
	case ArithMul:
		result = src0 * src1
	case ArithDiv:
		if src1 == 0 {
			return core.NewFault(core.DivisionByZero, vm.ip, "div by zero")
		}
		result = src0 / src1
	case ArithRem:
		if src1 == 0 {
			return core.NewFault(core.DivisionByZero, vm.ip, "rem by zero")
		}
		result = src0 % src1
	case ArithShl:
		result = src0 << (src1 & 0xF)
	case ArithShr:
		result = src0 >> (src1 & 0xF)
	case ArithAnd:
		result = src0 & src1
	case ArithOr:
		result = src0 | src1
	case ArithXor:
		result = src0 ^ src1
	case ArithNot:
		// Unary: source-1 is ignored.
		result = ^src0
	case ArithMin:
		result = core.Min(src0, src1)
	case ArithMax:
		result = core.Max(src0, src1)
	default:
		return core.NewFault(core.DecodeFault, vm.ip, "unknown arithmetic op %d", op)
	}

	vm.Regs.Set(dest, result)
	return nil
}
