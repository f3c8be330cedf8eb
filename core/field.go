package core

// Field describes one bit-field of a packed instruction word as a
// (mask, shift, width) triple, per spec.md §9's "template-heavy field
// decoders" design note: rather than one decoder method per field, every
// field in both dialects is a Field value and Decode/Encode are the single
// generic helpers that act on them.
type Field struct {
	Shift uint
	Width uint
}

// Mask returns the field's bitmask already shifted into position.
func (f Field) Mask() uint32 {
	return ((uint32(1) << f.Width) - 1) << f.Shift
}

// Decode extracts the field's value from a packed word.
func (f Field) Decode(packet uint32) uint32 {
	return (packet & f.Mask()) >> f.Shift
}

// Encode returns packet with this field overwritten by value. Bits of
// value outside the field's width are discarded, matching the "reserved
// bits must be emitted as zero" invariant: callers are expected to range
// check before calling Encode if a wider value would be silently
// truncated.
func (f Field) Encode(packet, value uint32) uint32 {
	cleared := packet &^ f.Mask()
	return cleared | ((value << f.Shift) & f.Mask())
}

// NewField constructs a Field from its shift and bit width.
func NewField(shift, width uint) Field {
	return Field{Shift: shift, Width: width}
}
