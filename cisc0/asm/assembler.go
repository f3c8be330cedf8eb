package asm

import (
	"fmt"

	"github.com/lookbusy1344/arm-emulator/internal/asmutil"
	"github.com/lookbusy1344/arm-emulator/loader"
)

// Assemble runs both passes over source and returns object records ready
// for loader.Writer. Unlike iris, cisc0's address space is already
// word-granular (spec.md §3), so each assembled instruction's words map
// 1:1 onto consecutive record addresses with no halfword splitting.
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
		spec, ok := mnemonics[instr.Mnemonic]
		if !ok {
			return nil, &ParseError{Pos: instr.Pos, Message: fmt.Sprintf("unknown mnemonic %q", instr.Mnemonic)}
		}
		words, err := spec.encode(instr.Operands, resolve)
		if err != nil {
			return nil, &ParseError{Pos: instr.Pos, Message: err.Error()}
		}
		for i, w := range words {
			records = append(records, loader.Record{
				Segment: loader.SegmentCode,
				Address: instr.Address + uint32(i),
				Value:   w,
			})
		}
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
