package cisc0

import "github.com/lookbusy1344/arm-emulator/core"

// execSyscall dispatches through the address register's low 12 bits,
// the syscall table's index range (spec.md §4.3).
func (vm *VM) execSyscall(word0 uint16) error {
	_ = word0
	index := vm.Regs.Addr() & 0xFFF
	handler := vm.io.handler(index)
	if handler == nil {
		return core.NewFault(core.UndefinedSyscall, vm.Regs.IP(), "undefined syscall %d", index)
	}
	return handler(vm)
}
