package core

// Unit is the fixed-size load/store building block both dialects' memory
// spaces are built from (spec.md §3 "four fixed-size load/store units" for
// iris, "one unified word-addressable space" for cisc0 - both are just
// this type sized differently and, for cisc0, aliased across 256
// segments). Index is always in elements, never bytes: iris is
// word/dword-indexed and cisc0 is word-indexed, so there is never a byte
// stride to account for here.
type Unit[T any] struct {
	cells []T
	name  string
}

// NewUnit allocates a fixed-size unit of the given element count.
func NewUnit[T any](name string, size int) *Unit[T] {
	return &Unit[T]{cells: make([]T, size), name: name}
}

// Len reports the number of addressable elements.
func (u *Unit[T]) Len() int {
	return len(u.cells)
}

// Name reports the unit's label, used in fault messages.
func (u *Unit[T]) Name() string {
	return u.name
}

// Read returns the value at index, or an AddressOutOfRange fault.
func (u *Unit[T]) Read(index uint32, ip uint32) (T, error) {
	var zero T
	if index >= uint32(len(u.cells)) {
		return zero, NewFault(AddressOutOfRange, ip, "%s read at %d (size %d)", u.name, index, len(u.cells))
	}
	return u.cells[index], nil
}

// Write stores value at index, or reports an AddressOutOfRange fault and
// leaves memory unmodified.
func (u *Unit[T]) Write(index uint32, value T, ip uint32) error {
	if index >= uint32(len(u.cells)) {
		return NewFault(AddressOutOfRange, ip, "%s write at %d (size %d)", u.name, index, len(u.cells))
	}
	u.cells[index] = value
	return nil
}

// Raw exposes the backing slice for dump/restore and for bulk loader
// writes; callers must not resize it.
func (u *Unit[T]) Raw() []T {
	return u.cells
}

// Reset zeroes every cell, used by initialize().
func (u *Unit[T]) Reset() {
	var zero T
	for i := range u.cells {
		u.cells[i] = zero
	}
}
