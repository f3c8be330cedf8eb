package asm

import (
	"strings"

	"github.com/lookbusy1344/arm-emulator/internal/asmutil"
)

// Parse runs the parse pass: it walks source line by line, assigning each
// instruction and directive an address within whichever segment is active
// and recording .label placements into a symbol table. Every iris
// instruction occupies exactly one code word (spec.md §4.1.1: the packet
// is always 32 bits), so the parse pass never needs to pre-scan operand
// widths the way cisc0's variable-length packets will.
func Parse(filename, source string) (*Program, *asmutil.SymbolTable, error) {
	prog := &Program{}
	symtab := asmutil.NewSymbolTable()

	var codeAddr, dataAddr uint32
	seg := SegmentCode

	cur := func() uint32 {
		if seg == SegmentData {
			return dataAddr
		}
		return codeAddr
	}
	advance := func(n uint32) {
		if seg == SegmentData {
			dataAddr += n
		} else {
			codeAddr += n
		}
	}

	lines := strings.Split(source, "\n")
	for i, raw := range lines {
		pos := Position{Filename: filename, Line: i + 1}
		line := strings.TrimSpace(asmutil.StripComment(raw))
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		head := fields[0]

		if strings.HasPrefix(head, ".") {
			rest := strings.TrimSpace(line[len(head):])
			args := asmutil.SplitFields(rest)
			d := &Directive{Pos: pos, Name: strings.ToLower(head), Args: args, Address: cur(), Segment: seg}

			switch d.Name {
			case ".org":
				if len(args) != 1 {
					return nil, nil, &ParseError{Pos: pos, Message: ".org requires exactly one address argument"}
				}
				v, err := asmutil.ParseNumber(args[0])
				if err != nil {
					return nil, nil, &ParseError{Pos: pos, Message: err.Error()}
				}
				if seg == SegmentData {
					dataAddr = uint32(v)
				} else {
					codeAddr = uint32(v)
				}
				d.Address = uint32(v)
			case ".label":
				if len(args) != 1 {
					return nil, nil, &ParseError{Pos: pos, Message: ".label requires exactly one name argument"}
				}
				symtab.Define(args[0], cur())
			case ".code":
				seg = SegmentCode
				d.Segment = seg
				d.Address = cur()
			case ".data":
				seg = SegmentData
				d.Segment = seg
				d.Address = cur()
			case ".word":
				if seg == SegmentCode {
					return nil, nil, &ParseError{Pos: pos, Message: ".word is only valid in the data segment"}
				}
				advance(uint32(len(args)))
			case ".dword":
				if seg == SegmentCode {
					return nil, nil, &ParseError{Pos: pos, Message: ".dword is only valid in the data segment"}
				}
				advance(uint32(2 * len(args)))
			default:
				return nil, nil, &ParseError{Pos: pos, Message: "unknown directive " + d.Name}
			}

			prog.Directives = append(prog.Directives, d)
			continue
		}

		operandStr := strings.TrimSpace(line[len(head):])
		var operandToks []string
		if operandStr != "" {
			operandToks = asmutil.SplitFields(operandStr)
		}

		operands := make([]Operand, 0, len(operandToks))
		for _, tok := range operandToks {
			op, err := parseOperand(tok)
			if err != nil {
				return nil, nil, &ParseError{Pos: pos, Message: err.Error()}
			}
			operands = append(operands, op)
		}

		instr := &Instruction{
			Pos:      pos,
			Mnemonic: strings.ToLower(head),
			Operands: operands,
			Address:  cur(),
			RawLine:  line,
		}
		prog.Instructions = append(prog.Instructions, instr)
		advance(1)
	}

	return prog, symtab, nil
}
