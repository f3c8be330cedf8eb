package cisc0

import "github.com/lookbusy1344/arm-emulator/core"

// execMemory dispatches load/store/push/pop. All four address through the
// fixed RegAddr/RegValue/RegSP roles rather than packet-encoded register
// nibbles (spec.md §4.3); the bitmask gates which of the two 16-bit memory
// cells at the target address participate in the transfer, leaving
// unselected halves of the value register untouched on load and
// unselected memory cells untouched on store.
func (vm *VM) execMemory(word0 uint16) error {
	op := MemoryOp(DecodeSubtype(word0))
	mask := DecodeBitmask(word0)
	ip := vm.Regs.IP()

	switch op {
	case MemLoad:
		return vm.memLoad(vm.Regs.Addr(), mask, ip)
	case MemStore:
		return vm.memStore(vm.Regs.Addr(), mask, ip)
	case MemPush:
		sp := (vm.Regs.SP() - 2) & addressMask
		if err := vm.memStore(sp, mask, ip); err != nil {
			return err
		}
		vm.Regs.SetSP(sp)
		return nil
	case MemPop:
		sp := vm.Regs.SP()
		if err := vm.memLoad(sp, mask, ip); err != nil {
			return err
		}
		vm.Regs.SetSP((sp + 2) & addressMask)
		return nil
	default:
		return core.NewFault(core.DecodeFault, ip, "unknown memory op %d", op)
	}
}

func (vm *VM) memLoad(addr uint32, mask Bitmask, ip uint32) error {
	var lower, upper uint16
	var err error
	if mask.ReadLower() {
		lower, err = vm.Mem.Space.Read(addr&addressMask, ip)
		if err != nil {
			return err
		}
	}
	if mask.ReadUpper() {
		upper, err = vm.Mem.Space.Read((addr+1)&addressMask, ip)
		if err != nil {
			return err
		}
	}
	vm.Regs.SetValue(mask.MergeBytes(vm.Regs.Value(), mask.Gate(lower, upper)))
	return nil
}

func (vm *VM) memStore(addr uint32, mask Bitmask, ip uint32) error {
	v := vm.Regs.Value()
	if mask.ReadLower() {
		if err := vm.Mem.Space.Write(addr&addressMask, uint16(v), ip); err != nil {
			return err
		}
	}
	if mask.ReadUpper() {
		if err := vm.Mem.Space.Write((addr+1)&addressMask, uint16(v>>16), ip); err != nil {
			return err
		}
	}
	return nil
}
