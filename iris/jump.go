package iris

// execJump dispatches the Jump group's seven forms (spec.md §4.2 table).
// Every form that is reached writes IP explicitly, which per spec.md
// clears the auto-advance flag - vm.branchTo always does this, even when
// the computed address happens to equal IP+1 (the untaken branch of a
// conditional).
func (vm *VM) execJump(packet uint32) error {
	form := DecodeJumpForm(packet)
	next := (vm.ip + 1) & addressMask

	if form.Special != 0 {
		switch form.Special {
		case JumpIfThenElse:
			pred := vm.Pred.Get(DecodeDestLo(packet))
			var target uint32
			if pred {
				target = uint32(vm.Regs.Get(DecodeSrc0(packet)))
			} else {
				target = uint32(vm.Regs.Get(DecodeSrc1(packet)))
			}
			vm.branchTo(target)
		case JumpBranchLR, JumpReturnFromError:
			vm.branchTo(uint32(vm.lr))
		case JumpBranchLRConditional:
			pred := vm.Pred.Get(DecodeDestLo(packet))
			if pred {
				vm.branchTo(uint32(vm.lr))
			} else {
				vm.branchTo(next)
			}
		}
		return nil
	}

	// Base forms: combinations of conditional/immediate/link.
	var target uint32
	taken := true
	if form.Conditional {
		taken = vm.Pred.Get(DecodeDestLo(packet))
	}

	if taken {
		switch {
		case form.Immediate:
			target = uint32(DecodeImm16(packet))
		case form.Conditional:
			target = uint32(vm.Regs.Get(DecodeSrc0(packet)))
		default:
			target = uint32(vm.Regs.Get(DecodeDest(packet)))
		}
	} else {
		target = next
	}

	if form.Link && taken {
		vm.lr = uint16(next)
	}

	vm.branchTo(target)
	return nil
}
