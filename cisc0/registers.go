package cisc0

// NumGPR is the size of the cisc0 register file (spec.md §3).
const NumGPR = 16

// RegisterFile holds the 16 32-bit GPRs. Indices 9, 10, ..., 15 carry
// architectural roles (see the Reg* constants in isa.go); general code
// may still address them as ordinary registers via Move/Swap.
type RegisterFile struct {
	gpr [NumGPR]uint32
}

func (r *RegisterFile) Get(index uint32) uint32 { return r.gpr[index&0xF] }
func (r *RegisterFile) Set(index uint32, value uint32) { r.gpr[index&0xF] = value }
func (r *RegisterFile) Reset()                          { r.gpr = [NumGPR]uint32{} }
func (r *RegisterFile) Snapshot() []uint32 {
	out := make([]uint32, NumGPR)
	copy(out, r.gpr[:])
	return out
}

// Shift returns RegShiftField's low 5 bits, masked per spec.md §4.3's
// "shift and field are always masked to 5 bits on read".
func (r *RegisterFile) Shift() uint32 { return r.gpr[RegShiftField] & 0x1F }

// Field returns RegShiftField's next 5 bits (bits 5-9) as the field
// width Complex's encode/decode sub-ops use - the one physical register
// serves both roles since shift and field-width are never needed
// simultaneously by a different operand.
func (r *RegisterFile) Field() uint32 { return (r.gpr[RegShiftField] >> 5) & 0x1F }

func (r *RegisterFile) Mask() Bitmask   { return Bitmask(r.gpr[RegMask] & 0xF) }
func (r *RegisterFile) Value() uint32   { return r.gpr[RegValue] }
func (r *RegisterFile) SetValue(v uint32) { r.gpr[RegValue] = v }
func (r *RegisterFile) Addr() uint32     { return r.gpr[RegAddr] }
func (r *RegisterFile) CR() uint32       { return r.gpr[RegCR] }
func (r *RegisterFile) SetCR(v uint32)   { r.gpr[RegCR] = v }
func (r *RegisterFile) SP() uint32       { return r.gpr[RegSP] }
func (r *RegisterFile) SetSP(v uint32)   { r.gpr[RegSP] = v }
func (r *RegisterFile) IP() uint32       { return r.gpr[RegIP] }
func (r *RegisterFile) SetIP(v uint32)   { r.gpr[RegIP] = v }
