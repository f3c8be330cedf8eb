package iris

import "github.com/lookbusy1344/arm-emulator/core"

// execCompare dispatches the Compare group: eq/neq/lt/gt/le/ge, register
// or half-immediate, writing the boolean result (and, when the inverse
// field names a different predicate, its negation) per spec.md §4.2 and
// the predicate-write state machine in §4.5.
func (vm *VM) execCompare(packet uint32) error {
	op := DecodeCompareOp(packet)
	src0 := vm.Regs.Get(DecodeSrc0(packet))

	var src1 uint16
	if DecodeCompareImm(packet) {
		src1 = uint16(DecodeImm8(packet))
	} else {
		src1 = vm.Regs.Get(DecodeSrc1(packet))
	}

	result := core.CompareUnsigned(op.ToCoreCompareOp(), src0, src1)

	resultPred := DecodeDestLo(packet)
	inversePred := DecodeDestHi(packet)

	vm.Pred.Set(resultPred, result)
	if inversePred != resultPred {
		vm.Pred.Set(inversePred, !result)
	}
	return nil
}
