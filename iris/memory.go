package iris

import "github.com/lookbusy1344/arm-emulator/core"

// Segment sizes. Code is dword-indexed (each cell holds one packed 32-bit
// instruction packet, spec.md §3); data and stack are word-indexed.
const (
	CodeSize  = 1 << 16
	DataSize  = 1 << 16
	StackSize = 1 << 16
)

// Memory bundles the three general fixed-size load/store units spec.md §3
// assigns to iris: code, data, and stack. (The fourth unit spec.md names,
// the predicate bank, is PredicateBank in registers.go.)
//
// The stack pointer is, per spec.md §3, a GPR role "by convention" rather
// than a dedicated hardware register: push/pop (move.go) read and rewrite
// whichever GPR the program designates as its stack pointer directly.
// Because StackSize equals 1<<16 and the pointer is a uint16, every
// pointer value already addresses a valid cell, so predecrement/
// postincrement wrap at the unit boundary and no overflow/underflow check
// is made (cisc0's RegSP-based stack likewise wraps, modulo its 24-bit
// space).
type Memory struct {
	Code  *core.Unit[uint32] // dword-indexed instruction packets
	Data  *core.Unit[uint16]
	Stack *core.Unit[uint16]
}

func NewMemory() *Memory {
	return &Memory{
		Code:  core.NewUnit[uint32]("code", CodeSize),
		Data:  core.NewUnit[uint16]("data", DataSize),
		Stack: core.NewUnit[uint16]("stack", StackSize),
	}
}

func (m *Memory) Reset() {
	m.Code.Reset()
	m.Data.Reset()
	m.Stack.Reset()
}
