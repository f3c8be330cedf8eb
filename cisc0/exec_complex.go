package cisc0

import "github.com/lookbusy1344/arm-emulator/core"

// execComplex dispatches bitset/bitunset/encode/decode, all of which read
// the shift position and field width from RegShiftField's two sub-fields
// (spec.md §3, §4.3).
func (vm *VM) execComplex(word0 uint16) error {
	op := ComplexOp(DecodeSubtype(word0))
	dest := DecodeDest4(word0)
	shift := vm.Regs.Shift()

	switch op {
	case ComplexBitSet:
		vm.Regs.Set(dest, vm.Regs.Get(dest)|(1<<shift))
		return nil
	case ComplexBitUnset:
		vm.Regs.Set(dest, vm.Regs.Get(dest)&^(1<<shift))
		return nil
	case ComplexEncode:
		width := vm.Regs.Field()
		fieldMask := fieldBitsMask(width)
		src := vm.Regs.Get(dest) & fieldMask
		vm.Regs.SetValue((vm.Regs.Value() &^ (fieldMask << shift)) | (src << shift))
		return nil
	case ComplexDecode:
		width := vm.Regs.Field()
		fieldMask := fieldBitsMask(width)
		extracted := (vm.Regs.Value() >> shift) & fieldMask
		vm.Regs.Set(dest, extracted)
		return nil
	default:
		return core.NewFault(core.DecodeFault, vm.Regs.IP(), "unknown complex op %d", op)
	}
}

// fieldBitsMask returns a mask of the low width bits, width in [0,32).
func fieldBitsMask(width uint32) uint32 {
	if width >= 32 {
		return 0xFFFFFFFF
	}
	return (uint32(1) << width) - 1
}
