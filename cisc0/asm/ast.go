// Package asm implements the cisc0 assembler: grammar, two-pass label
// resolution, and binary emission (spec.md §4.4), specialized to cisc0's
// variable-length (1-3 word) packet codec in package cisc0.
package asm

import "fmt"

// Position locates a statement in the source.
type Position struct {
	Filename string
	Line     int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

// OperandKind tags what a parsed operand token turned out to be.
type OperandKind int

const (
	OperandReg OperandKind = iota
	OperandImm
	OperandLabel
)

// Operand is one parsed instruction argument.
type Operand struct {
	Kind  OperandKind
	Value uint64
	Label string
}

// Instruction is one parsed mnemonic statement. Unlike iris, cisc0's
// instructions are not uniformly one word wide, so the parse pass must
// settle each instruction's Width (in words) before addresses past it can
// be assigned - this is what makes cisc0's assembler a genuine two-pass
// design rather than iris's single address-tracking pass.
type Instruction struct {
	Pos      Position
	Mnemonic string
	Operands []Operand
	Address  uint32 // word address within its segment
	Width    uint32 // words this instruction occupies, fixed at parse time
	RawLine  string
}

// Directive is one parsed ".xxx" statement.
type Directive struct {
	Pos     Position
	Name    string
	Args    []string
	Address uint32
	Segment SegmentID
}

// SegmentID distinguishes the code and data address counters.
type SegmentID int

const (
	SegmentCode SegmentID = iota
	SegmentData
)

// DataSegmentBase is where the data counter starts. cisc0 has one flat
// address space rather than iris's separate Code/Data units (spec.md §3:
// "stack and code share this space, partitioned by the program"), so the
// assembler itself must keep code and data from colliding by starting
// each segment's counter at a fixed, non-overlapping base rather than
// relying on the loader to relocate them afterward.
const DataSegmentBase uint32 = 0x10000

// Program is the parse pass's output.
type Program struct {
	Instructions []*Instruction
	Directives   []*Directive
}

// ParseError reports a grammar mismatch with source position.
type ParseError struct {
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}
