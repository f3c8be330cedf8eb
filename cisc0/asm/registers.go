package asm

import (
	"strings"

	"github.com/lookbusy1344/arm-emulator/cisc0"
	"github.com/lookbusy1344/arm-emulator/internal/asmutil"
)

// registerAliases names the seven architectural-role registers so source
// can say "sp"/"ip"/"cr" instead of "r14"/"r15"/"r13" (spec.md §3).
var registerAliases = map[string]uint32{
	"shift": cisc0.RegShiftField,
	"mask":  cisc0.RegMask,
	"value": cisc0.RegValue,
	"addr":  cisc0.RegAddr,
	"cr":    cisc0.RegCR,
	"sp":    cisc0.RegSP,
	"ip":    cisc0.RegIP,
}

// ParseRegister matches r0..r15 case-insensitively, or one of the named
// architectural-role aliases.
func ParseRegister(tok string) (uint32, bool) {
	lower := strings.ToLower(tok)
	if idx, ok := registerAliases[lower]; ok {
		return idx, true
	}
	if !strings.HasPrefix(lower, "r") || len(lower) < 2 {
		return 0, false
	}
	n, err := asmutil.ParseNumber(lower[1:])
	if err != nil || n >= cisc0.NumGPR {
		return 0, false
	}
	return uint32(n), true
}

func isIdentifier(tok string) bool {
	if tok == "" {
		return false
	}
	for i, r := range tok {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}

func parseOperand(tok string) (Operand, error) {
	if reg, ok := ParseRegister(tok); ok {
		return Operand{Kind: OperandReg, Value: uint64(reg)}, nil
	}
	if n, err := asmutil.ParseNumber(tok); err == nil {
		return Operand{Kind: OperandImm, Value: n}, nil
	}
	if isIdentifier(tok) {
		return Operand{Kind: OperandLabel, Label: tok}, nil
	}
	return Operand{}, &ParseError{Message: "unrecognized operand " + tok}
}
