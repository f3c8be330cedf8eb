package iris

import (
	"fmt"

	"github.com/lookbusy1344/arm-emulator/loader"
)

// LoadObject populates vm.Mem from assembled records; see Memory.LoadObject.
func (vm *VM) LoadObject(records []loader.Record) error {
	return vm.Mem.LoadObject(records)
}

// LoadObject populates Code and Data from assembled records (spec.md
// §4.4/§6). Code records are halfword-addressed - the assembler splits
// each 32-bit packet into a low and high record at twice the packet
// index - so this reassembles pairs before writing Mem.Code, which is
// itself packet-indexed. Data records are written directly: Data is
// already word-indexed one-to-one.
func (m *Memory) LoadObject(records []loader.Record) error {
	codeHalves := make(map[uint32]uint16)

	for _, rec := range records {
		switch rec.Segment {
		case loader.SegmentData:
			if err := m.Data.Write(rec.Address, rec.Value, 0); err != nil {
				return err
			}
		case loader.SegmentCode:
			codeHalves[rec.Address] = rec.Value
		default:
			return fmt.Errorf("unknown object segment %d", rec.Segment)
		}
	}

	for wordAddr, lo := range codeHalves {
		if wordAddr%2 != 0 {
			continue // the odd half is consumed alongside its even partner below
		}
		hi, ok := codeHalves[wordAddr+1]
		if !ok {
			return fmt.Errorf("code word at address 0x%X missing its high half", wordAddr)
		}
		packet := uint32(lo) | uint32(hi)<<16
		if err := m.Code.Write(wordAddr/2, packet, 0); err != nil {
			return err
		}
	}

	return nil
}
