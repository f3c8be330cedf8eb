package cisc0

// execMove copies a register into another, gated byte-wise by the
// bitmask: selected bytes come from src, every other byte keeps dest's
// prior value (spec.md §4.1.2 - move preserves, unlike set's zero-fill).
func (vm *VM) execMove(word0 uint16) error {
	dest := DecodeDest4(word0)
	mask := DecodeBitmask(word0)
	word1, err := vm.fetchExtraWord()
	if err != nil {
		return err
	}
	src := vm.Regs.Get(DecodeReg0(word1))
	vm.Regs.Set(dest, mask.MergeBytes(vm.Regs.Get(dest), src))
	return nil
}

// execSwap exchanges two whole registers named in word 1's nibbles.
func (vm *VM) execSwap(word0 uint16) error {
	_ = word0
	word1, err := vm.fetchExtraWord()
	if err != nil {
		return err
	}
	a, b := DecodeReg0(word1), DecodeReg1(word1)
	va, vb := vm.Regs.Get(a), vm.Regs.Get(b)
	vm.Regs.Set(a, vb)
	vm.Regs.Set(b, va)
	return nil
}
