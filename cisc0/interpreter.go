package cisc0

import (
	"io"

	"github.com/lookbusy1344/arm-emulator/core"
)

// addressMask keeps IP, SP, and addr-register derived addresses inside
// the 24-bit space (spec.md §3).
const addressMask = AddressSpaceSize - 1

// VM is one cisc0 core instance.
type VM struct {
	Regs RegisterFile
	Mem  *Memory
	io   *SyscallTable

	executing bool
	advanceIP bool
	lastFault error
}

func NewVM() *VM { return &VM{Mem: NewMemory()} }

// Initialize zeroes registers and memory and installs the syscall table.
func (vm *VM) Initialize() {
	vm.Regs.Reset()
	vm.Mem.Reset()
	vm.io = newSyscallTable()
	vm.io.install()
	vm.executing = true
	vm.lastFault = nil
}

func (vm *VM) Shutdown() {
	if vm.io != nil {
		vm.io.shutdown()
	}
}

// SetStorage exposes the secondary-storage backing store injection point
// to hosts (e.g. cmd/sim) without requiring them to reach into io.go.
func (vm *VM) SetStorage(index int, rw io.ReadWriteSeeker) {
	vm.io.SetStorage(index, rw)
}

func (vm *VM) Kind() core.CoreKind     { return core.Cisc0 }
func (vm *VM) IP() uint32              { return vm.Regs.IP() }
func (vm *VM) Halted() bool            { return !vm.executing }
func (vm *VM) Registers() []uint32     { return vm.Regs.Snapshot() }

// fetchWord reads the word at the current IP without advancing it.
func (vm *VM) fetchWord() (uint16, error) {
	return vm.Mem.Space.Read(vm.Regs.IP()&addressMask, vm.Regs.IP())
}

// fetchExtraWord advances IP and reads the next word, per spec.md
// §4.1.2's "extra words are fetched by post-incrementing the instruction
// pointer."
func (vm *VM) fetchExtraWord() (uint16, error) {
	vm.Regs.SetIP((vm.Regs.IP() + 1) & addressMask)
	return vm.fetchWord()
}

// fetchImmediate32 reads 0, 1, or 2 extra words per mask and gates them
// into a 32-bit value - the shared immediate-fetch path for Arithmetic,
// Shift, Logical, Compare, and Set.
func (vm *VM) fetchImmediate32(mask Bitmask) (uint32, error) {
	var lower, upper uint16
	var err error
	if mask.ReadLower() {
		lower, err = vm.fetchExtraWord()
		if err != nil {
			return 0, err
		}
	}
	if mask.ReadUpper() {
		upper, err = vm.fetchExtraWord()
		if err != nil {
			return 0, err
		}
	}
	return mask.Gate(lower, upper), nil
}

// branchTo sets IP and suppresses the post-execute advance.
func (vm *VM) branchTo(addr uint32) {
	vm.Regs.SetIP(addr & addressMask)
	vm.advanceIP = false
}

// Cycle runs one fetch-decode-execute step (spec.md §4.3).
func (vm *VM) Cycle() (bool, error) {
	if !vm.executing {
		return false, nil
	}

	word0, err := vm.fetchWord()
	if err != nil {
		vm.executing = false
		vm.lastFault = err
		return false, err
	}

	vm.advanceIP = true
	class := DecodeClass(word0)

	var execErr error
	switch class {
	case ClassMemory:
		execErr = vm.execMemory(word0)
	case ClassArithmetic:
		execErr = vm.execArithmetic(word0)
	case ClassShift:
		execErr = vm.execShift(word0)
	case ClassLogical:
		execErr = vm.execLogical(word0)
	case ClassCompare:
		execErr = vm.execCompare(word0)
	case ClassBranch:
		execErr = vm.execBranch(word0)
	case ClassSystemCall:
		execErr = vm.execSyscall(word0)
	case ClassSet:
		execErr = vm.execSet(word0)
	case ClassMove:
		execErr = vm.execMove(word0)
	case ClassSwap:
		execErr = vm.execSwap(word0)
	case ClassComplex:
		execErr = vm.execComplex(word0)
	default:
		execErr = core.NewFault(core.DecodeFault, vm.Regs.IP(), "reserved class %d", class)
	}

	if execErr != nil {
		vm.executing = false
		vm.lastFault = execErr
		return false, execErr
	}
	if !vm.executing {
		return false, nil
	}

	if vm.advanceIP {
		vm.Regs.SetIP((vm.Regs.IP() + 1) & addressMask)
	}
	return true, nil
}

// Run drives Cycle until it returns false, propagating any fault.
func (vm *VM) Run() error {
	for {
		cont, err := vm.Cycle()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}

// Dump serializes the register file followed by the flat memory space.
func (vm *VM) Dump() []byte {
	out := make([]byte, 0, NumGPR*4+AddressSpaceSize*2)
	for _, r := range vm.Regs.Snapshot() {
		out = append(out, byte(r), byte(r>>8), byte(r>>16), byte(r>>24))
	}
	for _, w := range vm.Mem.Space.Raw() {
		out = append(out, byte(w), byte(w>>8))
	}
	return out
}
