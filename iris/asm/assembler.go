package asm

import (
	"fmt"

	"github.com/lookbusy1344/arm-emulator/internal/asmutil"
	"github.com/lookbusy1344/arm-emulator/loader"
)

// Assemble runs both passes over source and returns the object records
// ready for loader.Writer. Instructions live in the packet-indexed code
// address space the interpreter uses directly; since the object format's
// "word" is 16 bits (spec.md §4.4/§6) each 32-bit packet is split into a
// low and high halfword record at twice the packet address, consecutive -
// the loader side (LoadObject in iris) reverses this.
func Assemble(filename, source string) ([]loader.Record, error) {
	prog, symtab, err := Parse(filename, source)
	if err != nil {
		return nil, err
	}

	resolve := func(name string) (uint32, error) {
		return symtab.Lookup(name)
	}

	var records []loader.Record

	for _, instr := range prog.Instructions {
		enc, ok := mnemonics[instr.Mnemonic]
		if !ok {
			return nil, &ParseError{Pos: instr.Pos, Message: fmt.Sprintf("unknown mnemonic %q", instr.Mnemonic)}
		}
		packet, err := enc(instr.Operands, resolve)
		if err != nil {
			return nil, &ParseError{Pos: instr.Pos, Message: err.Error()}
		}
		wordAddr := instr.Address * 2
		records = append(records,
			loader.Record{Segment: loader.SegmentCode, Address: wordAddr, Value: uint16(packet)},
			loader.Record{Segment: loader.SegmentCode, Address: wordAddr + 1, Value: uint16(packet >> 16)},
		)
	}

	for _, d := range prog.Directives {
		switch d.Name {
		case ".word":
			addr := d.Address
			for _, arg := range d.Args {
				v, err := resolveNumericOrLabel(arg, resolve)
				if err != nil {
					return nil, &ParseError{Pos: d.Pos, Message: err.Error()}
				}
				records = append(records, loader.Record{Segment: loader.SegmentData, Address: addr, Value: uint16(v)})
				addr++
			}
		case ".dword":
			addr := d.Address
			for _, arg := range d.Args {
				v, err := resolveNumericOrLabel(arg, resolve)
				if err != nil {
					return nil, &ParseError{Pos: d.Pos, Message: err.Error()}
				}
				records = append(records,
					loader.Record{Segment: loader.SegmentData, Address: addr, Value: uint16(v)},
					loader.Record{Segment: loader.SegmentData, Address: addr + 1, Value: uint16(v >> 16)},
				)
				addr += 2
			}
		}
	}

	return records, nil
}

func resolveNumericOrLabel(tok string, resolve Resolver) (uint64, error) {
	if v, err := asmutil.ParseNumber(tok); err == nil {
		return v, nil
	}
	addr, err := resolve(tok)
	return uint64(addr), err
}
