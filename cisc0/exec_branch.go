package cisc0

// execBranch dispatches the Branch class. If-forms (IsIf) take two GPRs,
// packed into word1's Reg0/Reg1 nibbles, and the condition register
// selects which one is the target - the branch always happens, it just
// picks between a true-target and a false-target register. Every other
// form either branches unconditionally or is gated by IsConditional: the
// target there is an absolute 32-bit address fetched as two extra words
// (Immediate) or the value of the register named by the subtype nibble
// (register-indirect). ShiftLeft inverts the condition's sense
// (branch-if-false / pick the false-target). IsCall additionally pushes
// the return address (current IP + 1) before jumping.
func (vm *VM) execBranch(word0 uint16) error {
	form := DecodeBranchForm(word0)

	var target uint32
	switch {
	case form.IsIf:
		word1, err := vm.fetchExtraWord()
		if err != nil {
			return err
		}
		trueReg := DecodeReg0(word1)
		falseReg := DecodeReg1(word1)
		if (vm.Regs.CR() != 0) != form.ShiftLeft {
			target = vm.Regs.Get(trueReg)
		} else {
			target = vm.Regs.Get(falseReg)
		}
	case form.Immediate:
		lo, err := vm.fetchExtraWord()
		if err != nil {
			return err
		}
		hi, err := vm.fetchExtraWord()
		if err != nil {
			return err
		}
		target = uint32(lo) | uint32(hi)<<16
	default:
		reg := DecodeSubtype(word0)
		target = vm.Regs.Get(reg)
	}

	if form.IsConditional && !form.IsIf {
		take := (vm.Regs.CR() != 0) != form.ShiftLeft
		if !take {
			return nil
		}
	}

	if form.IsCall {
		retAddr := vm.Regs.IP() + 1
		sp := (vm.Regs.SP() - 2) & addressMask
		if err := vm.Mem.WriteWord32(sp, retAddr, vm.Regs.IP()); err != nil {
			return err
		}
		vm.Regs.SetSP(sp)
	}

	vm.branchTo(target)
	return nil
}
