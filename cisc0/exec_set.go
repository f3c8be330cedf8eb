package cisc0

// execSet loads an immediate into a register. The bitmask selects which
// of up to two extra words are fetched; bytes not selected are zero in
// the result rather than preserving the register's prior value
// (spec.md §4.1.2, §8 scenario 5: "set r3, bitmask=0b1111, imm=0xAABBCCDD
// consumes three packet words total").
func (vm *VM) execSet(word0 uint16) error {
	dest := DecodeDest4(word0)
	mask := DecodeBitmask(word0)
	v, err := vm.fetchImmediate32(mask)
	if err != nil {
		return err
	}
	vm.Regs.Set(dest, v)
	return nil
}
