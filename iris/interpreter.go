package iris

import "github.com/lookbusy1344/arm-emulator/core"

// addressMask keeps the instruction pointer inside the 16-bit code
// address space, per spec.md §3's invariant that any branch is masked to
// the address width before writing IP.
const addressMask = 0xFFFF

// VM is one iris core instance. Registers, memory, the predicate bank and
// the I/O device table are owned exclusively by this instance (spec.md
// §5's shared-resource policy).
type VM struct {
	Regs RegisterFile
	Pred PredicateBank
	Mem  *Memory
	io   *IODeviceTable

	ip uint32
	lr uint16

	executing  bool
	advanceIP  bool
	lastFault  error
}

// NewVM allocates a VM with memory in place but not yet initialized; call
// Initialize before the first Cycle.
func NewVM() *VM {
	return &VM{Mem: NewMemory()}
}

// Initialize is the initialize() lifecycle event from spec.md §3: zero
// registers/memory/predicates, install the built-in I/O handlers, and set
// the halt flag so the first Cycle call runs. Calling Initialize twice in
// a row is indistinguishable from calling it once (spec.md §8's
// idempotent-initialization property).
func (vm *VM) Initialize() {
	vm.Regs.Reset()
	vm.Pred.Reset()
	vm.Mem.Reset()
	vm.ip = 0
	vm.lr = 0
	vm.io = newIODeviceTable()
	vm.io.install()
	vm.executing = true
	vm.lastFault = nil
}

// Shutdown is the shutdown() lifecycle event: release I/O handlers.
func (vm *VM) Shutdown() {
	if vm.io != nil {
		vm.io.shutdown()
	}
}

// Kind implements core.Core.
func (vm *VM) Kind() core.CoreKind { return core.Iris }

// IP implements core.Core.
func (vm *VM) IP() uint32 { return vm.ip }

// Halted implements core.Core.
func (vm *VM) Halted() bool { return !vm.executing }

// Registers implements core.Core.
func (vm *VM) Registers() []uint32 { return vm.Regs.Snapshot() }

// LoadProgram copies a decoded instruction stream into code memory
// starting at address 0. (Object files go through LoadObject instead.)
func (vm *VM) LoadProgram(words []uint32) {
	copy(vm.Mem.Code.Raw(), words)
}

// Cycle runs the Fetch -> Decode -> Execute state machine for exactly one
// packet (spec.md §4.5) and reports whether the host should call Cycle
// again.
func (vm *VM) Cycle() (bool, error) {
	if !vm.executing {
		return false, nil
	}

	packet, err := vm.Mem.Code.Read(vm.ip, vm.ip)
	if err != nil {
		vm.executing = false
		vm.lastFault = err
		return false, err
	}

	vm.advanceIP = true
	group := DecodeGroup(packet)

	var execErr error
	switch group {
	case GroupArithmetic:
		execErr = vm.execArithmetic(packet)
	case GroupCompare:
		execErr = vm.execCompare(packet)
	case GroupJump:
		execErr = vm.execJump(packet)
	case GroupMove:
		execErr = vm.execMove(packet)
	case GroupConditionalRegister:
		execErr = vm.execCRF(packet)
	default:
		execErr = core.NewFault(core.DecodeFault, vm.ip, "reserved group %d", group)
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
		vm.ip = (vm.ip + 1) & addressMask
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

// branchTo sets IP directly and suppresses the post-execute auto-advance,
// per spec.md §4.2's "on any form where IP is explicitly written, the
// auto-advance flag is cleared."
func (vm *VM) branchTo(addr uint32) {
	vm.ip = addr & addressMask
	vm.advanceIP = false
}

// Dump serializes the register file followed by each memory segment in
// native order, per spec.md §6's persisted state layout.
func (vm *VM) Dump() []byte {
	out := make([]byte, 0, NumGPR*2+CodeSize*4+DataSize*2+StackSize*2)
	for _, r := range vm.Regs.Snapshot() {
		out = append(out, byte(r), byte(r>>8))
	}
	for _, w := range vm.Mem.Code.Raw() {
		out = append(out, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	for _, w := range vm.Mem.Data.Raw() {
		out = append(out, byte(w), byte(w>>8))
	}
	for _, w := range vm.Mem.Stack.Raw() {
		out = append(out, byte(w), byte(w>>8))
	}
	return out
}
