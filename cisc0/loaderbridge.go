package cisc0

import "github.com/lookbusy1344/arm-emulator/loader"

// LoadObject writes assembled records directly into the flat address
// space. Unlike iris, cisc0 has one unified word-addressable space rather
// than distinct Code/Data memory units, so no segment-aware reassembly is
// needed here - the assembler itself is responsible for keeping code and
// data addresses from colliding (cisc0/asm.DataSegmentBase).
func (m *Memory) LoadObject(records []loader.Record) error {
	for _, rec := range records {
		if err := m.Space.Write(rec.Address, rec.Value, 0); err != nil {
			return err
		}
	}
	return nil
}

// LoadObject is a convenience wrapper over Mem.LoadObject.
func (vm *VM) LoadObject(records []loader.Record) error {
	return vm.Mem.LoadObject(records)
}
