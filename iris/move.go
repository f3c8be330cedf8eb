package iris

import "github.com/lookbusy1344/arm-emulator/core"

// execMove dispatches the Move group's data-transfer sub-operations
// (spec.md §4.2). This is the largest group: register transfer, data-space
// load/store, stack push/pop, code-space peek/poke and IP/LR transfer all
// live here because none of them touch the ALU or predicate bank.
func (vm *VM) execMove(packet uint32) error {
	op := DecodeMoveOp(packet)
	dest := DecodeDest(packet)
	src0 := DecodeSrc0(packet)
	src1 := DecodeSrc1(packet)

	switch op {
	case MoveMove:
		vm.Regs.Set(dest, vm.Regs.Get(src0))

	case MoveSet:
		vm.Regs.Set(dest, DecodeImm16(packet))

	case MoveSwap:
		a, b := vm.Regs.Get(dest), vm.Regs.Get(src0)
		vm.Regs.Set(dest, b)
		vm.Regs.Set(src0, a)

	case MoveLoad:
		v, err := vm.Mem.Data.Read(uint32(vm.Regs.Get(src0)), vm.ip)
		if err != nil {
			return err
		}
		vm.Regs.Set(dest, v)

	case MoveLoadImmOffset:
		addr := uint32(vm.Regs.Get(src0)) + uint32(DecodeImm8(packet))
		v, err := vm.Mem.Data.Read(addr, vm.ip)
		if err != nil {
			return err
		}
		vm.Regs.Set(dest, v)

	case MoveStore:
		return vm.Mem.Data.Write(uint32(vm.Regs.Get(dest)), vm.Regs.Get(src0), vm.ip)

	case MoveStoreImmOffset:
		addr := uint32(vm.Regs.Get(dest)) + uint32(DecodeImm8(packet))
		return vm.Mem.Data.Write(addr, vm.Regs.Get(src0), vm.ip)

	case MoveMemset:
		return vm.Mem.Data.Write(uint32(vm.Regs.Get(dest)), DecodeImm16(packet), vm.ip)

	case MovePush:
		sp := vm.Regs.Get(dest) - 1
		if err := vm.Mem.Stack.Write(uint32(sp), vm.Regs.Get(src0), vm.ip); err != nil {
			return err
		}
		vm.Regs.Set(dest, sp)

	case MovePushImmediate:
		sp := vm.Regs.Get(dest) - 1
		if err := vm.Mem.Stack.Write(uint32(sp), DecodeImm16(packet), vm.ip); err != nil {
			return err
		}
		vm.Regs.Set(dest, sp)

	case MovePop:
		sp := vm.Regs.Get(dest)
		v, err := vm.Mem.Stack.Read(uint32(sp), vm.ip)
		if err != nil {
			return err
		}
		vm.Regs.Set(src0, v)
		vm.Regs.Set(dest, sp+1)

	case MoveStoreCode:
		addr := uint32(vm.Regs.Get(src1))
		packed := uint32(vm.Regs.Get(src0))<<16 | uint32(vm.Regs.Get(dest))
		return vm.Mem.Code.Write(addr, packed, vm.ip)

	case MoveLoadCode:
		addr := uint32(vm.Regs.Get(src1))
		cell, err := vm.Mem.Code.Read(addr, vm.ip)
		if err != nil {
			return err
		}
		vm.Regs.Set(dest, uint16(cell))
		vm.Regs.Set(src0, uint16(cell>>16))

	case MoveIORead:
		return vm.ioTransfer(uint32(vm.Regs.Get(src0)), dest, false, 0)

	case MoveIOReadOffset:
		return vm.ioTransfer(uint32(DecodeImm8(packet)), dest, false, 0)

	case MoveIOWrite:
		return vm.ioTransfer(uint32(vm.Regs.Get(src0)), 0, true, vm.Regs.Get(src1))

	case MoveIOWriteOffset:
		return vm.ioTransfer(uint32(DecodeImm8(packet)), 0, true, vm.Regs.Get(src0))

	case MoveToIP:
		vm.branchTo(uint32(vm.Regs.Get(src0)))

	case MoveFromIP:
		vm.Regs.Set(dest, uint16(vm.ip))

	case MoveToLR:
		vm.lr = vm.Regs.Get(src0)

	case MoveFromLR:
		vm.Regs.Set(dest, vm.lr)

	default:
		return core.NewFault(core.DecodeFault, vm.ip, "unknown move op %d", op)
	}
	return nil
}

// ioTransfer routes to the device at index, writing the result into dest
// for a read or discarding it for a write.
func (vm *VM) ioTransfer(index uint32, dest uint32, write bool, value uint16) error {
	handler := vm.io.handler(index)
	if handler == nil {
		return core.NewFault(core.UndefinedSyscall, vm.ip, "no device at index %d", index)
	}
	result, err := handler(vm, write, value)
	if err != nil {
		return core.NewFault(core.UndefinedSyscall, vm.ip, "device %d: %v", index, err)
	}
	if !write {
		vm.Regs.Set(dest, result)
	}
	return nil
}
