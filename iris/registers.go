package iris

// NumGPR is the size of the general-purpose register file (spec.md §3).
const NumGPR = 256

// NumPredicates is the size of the one-bit predicate bank.
const NumPredicates = 16

// Conventional GPR indices for the roles spec.md §3 names "by convention".
// Unlike cisc0, iris does not special-case these indices in the
// dispatcher, and the iris assembler offers no aliases for them (registers
// are written rNN only). IP and LR are not GPRs at all but dedicated
// hardware fields on VM (vm.ip, vm.lr): the Move group's move-to/from-
// IP/LR sub-ops transfer between a named GPR and those fields.
const (
	RegThreadIndex = 4
)

// RegisterFile is the 256-entry general-purpose register file shared by
// every group handler.
type RegisterFile struct {
	gpr [NumGPR]uint16
}

func (r *RegisterFile) Get(index uint32) uint16 {
	return r.gpr[index%NumGPR]
}

func (r *RegisterFile) Set(index uint32, value uint16) {
	r.gpr[index%NumGPR] = value
}

func (r *RegisterFile) Reset() {
	for i := range r.gpr {
		r.gpr[i] = 0
	}
}

// Snapshot returns the register file widened to 32 bits, in index order,
// for core.Core.Registers() and for Dump.
func (r *RegisterFile) Snapshot() []uint32 {
	out := make([]uint32, NumGPR)
	for i, v := range r.gpr {
		out[i] = uint32(v)
	}
	return out
}

// PredicateBank is the 16-entry one-bit predicate register file.
type PredicateBank struct {
	bits [NumPredicates]bool
}

func (p *PredicateBank) Get(index uint32) bool {
	return p.bits[index%NumPredicates]
}

func (p *PredicateBank) Set(index uint32, value bool) {
	p.bits[index%NumPredicates] = value
}

// Reset seeds every predicate to false, per spec.md §3's initialize()
// lifecycle event.
func (p *PredicateBank) Reset() {
	for i := range p.bits {
		p.bits[i] = false
	}
}

// Pack returns the 16 predicates as bit i <-> predicate i, masked to the
// bits selected by mask. Used by save-CRs.
func (p *PredicateBank) Pack(mask uint16) uint16 {
	var out uint16
	for i := 0; i < NumPredicates; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		if p.bits[i] {
			out |= 1 << uint(i)
		}
	}
	return out
}

// Unpack writes bit i of value into predicate i for every bit selected by
// mask, leaving unselected predicates untouched. Used by restore-CRs.
// Mask bits beyond the 16 predicate registers are reserved-zero and
// ignored, per spec.md §9's open question on save-CRs masking.
func (p *PredicateBank) Unpack(mask, value uint16) {
	for i := 0; i < NumPredicates; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		p.bits[i] = value&(1<<uint(i)) != 0
	}
}
