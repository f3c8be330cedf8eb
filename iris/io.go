package iris

import (
	"bufio"
	"os"
)

// Device handler indices installed at initialize(), per spec.md §3's
// "install built-in I/O handlers for terminate/getc/putc/random" and
// §9's design note that the device table is owned by the core instance.
const (
	DeviceTerminate = 0
	DeviceGetc      = 1
	DevicePutc      = 2
	DeviceRandom    = 3
	numDevices      = 16
)

// DeviceHandler services one io-read or io-write instruction. write is
// true for io-write (value carries the data being written); for io-read
// the handler returns the value written to the destination register.
type DeviceHandler func(vm *VM, write bool, value uint16) (uint16, error)

// IODeviceTable is the VM-owned handler table, cleared at shutdown().
type IODeviceTable struct {
	handlers [numDevices]DeviceHandler
	rng      uint32 // xorshift state for the random device
	stdin    *bufio.Reader
	stdout   *bufio.Writer
}

func newIODeviceTable() *IODeviceTable {
	return &IODeviceTable{
		rng:    0x2545F491,
		stdin:  bufio.NewReader(os.Stdin),
		stdout: bufio.NewWriter(os.Stdout),
	}
}

// install registers the built-in handlers. Called from initialize().
func (t *IODeviceTable) install() {
	t.handlers[DeviceTerminate] = func(vm *VM, write bool, value uint16) (uint16, error) {
		vm.executing = false
		return 0, nil
	}
	t.handlers[DeviceGetc] = func(vm *VM, write bool, value uint16) (uint16, error) {
		b, err := t.stdin.ReadByte()
		if err != nil {
			return 0, err
		}
		return uint16(b), nil
	}
	t.handlers[DevicePutc] = func(vm *VM, write bool, value uint16) (uint16, error) {
		t.stdout.WriteByte(byte(value))
		t.stdout.Flush()
		return 0, nil
	}
	t.handlers[DeviceRandom] = func(vm *VM, write bool, value uint16) (uint16, error) {
		if write {
			t.rng = uint32(value)
			if t.rng == 0 {
				t.rng = 1
			}
			return 0, nil
		}
		t.rng ^= t.rng << 13
		t.rng ^= t.rng >> 17
		t.rng ^= t.rng << 5
		return uint16(t.rng), nil
	}
}

// shutdown releases the registered device handlers, per spec.md §3's
// shutdown() lifecycle event.
func (t *IODeviceTable) shutdown() {
	for i := range t.handlers {
		t.handlers[i] = nil
	}
}

// handler returns the handler at index, or nil when there is none; the
// caller reports UndefinedSyscall (move.go checks for a nil handler itself
// so it can attach the current IP to the fault).
func (t *IODeviceTable) handler(index uint32) DeviceHandler {
	if index >= numDevices {
		return nil
	}
	return t.handlers[index]
}
