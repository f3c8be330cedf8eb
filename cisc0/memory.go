package cisc0

import "github.com/lookbusy1344/arm-emulator/core"

// AddressSpaceSize is the unified 24-bit word-addressable space, presented
// as 256 segments x 65536 words (spec.md §3). Stack and code share this
// space, partitioned by the program rather than by the VM.
const AddressSpaceSize = 1 << 24

// Memory is cisc0's single flat space. Unlike iris, the stack pointer
// (RegSP) is a real architectural register rather than a GPR-by-
// convention role. Push/pop compute the new stack pointer modulo the
// 24-bit space (addressMask), so a push below address 0 wraps to the top
// of the space and a pop past the top wraps to 0; no stack overflow or
// underflow fault is raised.
type Memory struct {
	Space *core.Unit[uint16]
}

func NewMemory() *Memory {
	return &Memory{Space: core.NewUnit[uint16]("space", AddressSpaceSize)}
}

func (m *Memory) Reset() { m.Space.Reset() }

// ReadWord32 reads the 32-bit value spanning addr (lower half) and addr+1
// (upper half).
func (m *Memory) ReadWord32(addr uint32, ip uint32) (uint32, error) {
	lo, err := m.Space.Read(addr, ip)
	if err != nil {
		return 0, err
	}
	hi, err := m.Space.Read(addr+1, ip)
	if err != nil {
		return 0, err
	}
	return uint32(lo) | uint32(hi)<<16, nil
}

// WriteWord32 writes a 32-bit value across addr (lower half) and addr+1
// (upper half).
func (m *Memory) WriteWord32(addr uint32, v uint32, ip uint32) error {
	if err := m.Space.Write(addr, uint16(v), ip); err != nil {
		return err
	}
	return m.Space.Write(addr+1, uint16(v>>16), ip)
}
