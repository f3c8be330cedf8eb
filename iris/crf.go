package iris

import "github.com/lookbusy1344/arm-emulator/core"

// execCRF dispatches the ConditionalRegister group: predicate-only
// boolean ops, predicate swap/move, and save/restore-CRs (spec.md §4.2).
func (vm *VM) execCRF(packet uint32) error {
	op := DecodeCRFOp(packet)

	switch {
	case op.IsBinaryPredicateOp():
		a := vm.Pred.Get(DecodeSrc0Lo(packet))
		b := vm.Pred.Get(DecodeSrc0Hi(packet))
		result := core.EvalPredicate(op.toCorePredicateOp(), a, b)

		destLo := DecodeDestLo(packet)
		destHi := DecodeDestHi(packet)
		vm.Pred.Set(destLo, result)
		if destHi != destLo {
			vm.Pred.Set(destHi, !result)
		}
		return nil

	case op == CRFNot:
		a := vm.Pred.Get(DecodeSrc0Lo(packet))
		vm.Pred.Set(DecodeDestLo(packet), !a)
		return nil

	case op == CRFSwap:
		destLo := DecodeDestLo(packet)
		srcLo := DecodeSrc0Lo(packet)
		a, b := vm.Pred.Get(destLo), vm.Pred.Get(srcLo)
		vm.Pred.Set(destLo, b)
		vm.Pred.Set(srcLo, a)
		return nil

	case op == CRFMove:
		vm.Pred.Set(DecodeDestLo(packet), vm.Pred.Get(DecodeSrc0Lo(packet)))
		return nil

	case op == CRFSaveCRs:
		mask := DecodeImm16(packet)
		vm.Regs.Set(DecodeDest(packet), vm.Pred.Pack(mask))
		return nil

	case op == CRFRestoreCRs:
		mask := DecodeImm16(packet)
		vm.Pred.Unpack(mask, vm.Regs.Get(DecodeDest(packet)))
		return nil

	default:
		return core.NewFault(core.DecodeFault, vm.ip, "unknown CRF op %d", op)
	}
}
