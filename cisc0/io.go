package cisc0

import (
	"bufio"
	"io"
	"os"

	"github.com/lookbusy1344/arm-emulator/core"
)

// Built-in syscall indices (spec.md §4.3). Secondary storage and random
// number generation are named in spec.md's Non-goals as external
// collaborators whose interface this dispatcher only needs to consume;
// accordingly the storage devices are backed by an injected
// io.ReadWriteSeeker rather than this package owning real disk I/O.
const (
	SyscallTerminate        = 0
	SyscallGetc              = 1
	SyscallPutc              = 2
	SyscallSeedRandom        = 3
	SyscallNextRandom        = 4
	SyscallSkipRandom        = 5
	SyscallStorage0Read      = 6
	SyscallStorage0Write     = 7
	SyscallStorage1Read      = 8
	SyscallStorage1Write     = 9
	numSyscalls              = 4096 // addr register's 12-bit index range
)

// SyscallHandler services one SystemCall instruction. It reads/writes
// through the value register (RegValue) the way the dispatcher's other
// fixed-role registers work.
type SyscallHandler func(vm *VM) error

// SyscallTable is the VM-owned handler table.
type SyscallTable struct {
	handlers [numSyscalls]SyscallHandler
	rng      uint32
	stdin    *bufio.Reader
	stdout   *bufio.Writer
	storage0 io.ReadWriteSeeker
	storage1 io.ReadWriteSeeker
}

func newSyscallTable() *SyscallTable {
	return &SyscallTable{
		rng:    0x9E3779B9,
		stdin:  bufio.NewReader(os.Stdin),
		stdout: bufio.NewWriter(os.Stdout),
	}
}

// SetStorage injects the backing store for secondary-storage device
// index 0 or 1; until set, syscalls against that device fault.
func (t *SyscallTable) SetStorage(index int, rw io.ReadWriteSeeker) {
	if index == 0 {
		t.storage0 = rw
	} else {
		t.storage1 = rw
	}
}

func (t *SyscallTable) install() {
	t.handlers[SyscallTerminate] = func(vm *VM) error {
		vm.executing = false
		return nil
	}
	t.handlers[SyscallGetc] = func(vm *VM) error {
		b, err := t.stdin.ReadByte()
		if err != nil {
			return err
		}
		vm.Regs.SetValue(uint32(b))
		return nil
	}
	t.handlers[SyscallPutc] = func(vm *VM) error {
		t.stdout.WriteByte(byte(vm.Regs.Value()))
		return t.stdout.Flush()
	}
	t.handlers[SyscallSeedRandom] = func(vm *VM) error {
		t.rng = vm.Regs.Value()
		if t.rng == 0 {
			t.rng = 1
		}
		return nil
	}
	t.handlers[SyscallNextRandom] = func(vm *VM) error {
		t.step()
		vm.Regs.SetValue(t.rng)
		return nil
	}
	t.handlers[SyscallSkipRandom] = func(vm *VM) error {
		t.step()
		return nil
	}
	t.handlers[SyscallStorage0Read] = storageHandler(0, false)
	t.handlers[SyscallStorage0Write] = storageHandler(0, true)
	t.handlers[SyscallStorage1Read] = storageHandler(1, false)
	t.handlers[SyscallStorage1Write] = storageHandler(1, true)
}

func (t *SyscallTable) step() {
	t.rng ^= t.rng << 13
	t.rng ^= t.rng >> 17
	t.rng ^= t.rng << 5
}

// storageHandler reads or writes one 32-bit word at the byte offset
// given by the whole address register (whose low 12 bits are also the
// syscall index), moving the word to or from the value register, through
// whichever backing store was injected via SetStorage.
func storageHandler(index int, write bool) SyscallHandler {
	return func(vm *VM) error {
		var rw io.ReadWriteSeeker
		if index == 0 {
			rw = vm.io.storage0
		} else {
			rw = vm.io.storage1
		}
		if rw == nil {
			return core.NewFault(core.UndefinedSyscall, vm.Regs.IP(), "secondary storage %d has no backing store", index)
		}
		if _, err := rw.Seek(int64(vm.Regs.Addr()), io.SeekStart); err != nil {
			return err
		}
		var buf [4]byte
		if write {
			v := vm.Regs.Value()
			buf[0], buf[1], buf[2], buf[3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24)
			_, err := rw.Write(buf[:])
			return err
		}
		if _, err := io.ReadFull(rw, buf[:]); err != nil {
			return err
		}
		vm.Regs.SetValue(uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24)
		return nil
	}
}

func (t *SyscallTable) shutdown() {
	for i := range t.handlers {
		t.handlers[i] = nil
	}
}

func (t *SyscallTable) handler(index uint32) SyscallHandler {
	if index >= numSyscalls {
		return nil
	}
	return t.handlers[index]
}
