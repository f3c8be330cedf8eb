package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lookbusy1344/arm-emulator/internal/asmutil"
	"github.com/lookbusy1344/arm-emulator/iris"
)

// ParseRegister recognizes "r0".."r255", case-insensitively.
func ParseRegister(tok string) (uint32, bool) {
	low := strings.ToLower(tok)
	if !strings.HasPrefix(low, "r") || len(low) < 2 {
		return 0, false
	}
	n, err := strconv.ParseUint(low[1:], 10, 32)
	if err != nil || n >= iris.NumGPR {
		return 0, false
	}
	return uint32(n), true
}

// ParsePredicate recognizes "p0".."p15", case-insensitively.
func ParsePredicate(tok string) (uint32, bool) {
	low := strings.ToLower(tok)
	if !strings.HasPrefix(low, "p") || len(low) < 2 {
		return 0, false
	}
	n, err := strconv.ParseUint(low[1:], 10, 32)
	if err != nil || n >= iris.NumPredicates {
		return 0, false
	}
	return uint32(n), true
}

// parseOperand classifies a single operand token: underscore, register,
// predicate, numeric literal, or bare label reference.
func parseOperand(tok string) (Operand, error) {
	if tok == "_" {
		return Operand{Kind: OperandUnderscore}, nil
	}
	if r, ok := ParseRegister(tok); ok {
		return Operand{Kind: OperandReg, Value: uint64(r)}, nil
	}
	if p, ok := ParsePredicate(tok); ok {
		return Operand{Kind: OperandPred, Value: uint64(p)}, nil
	}
	if v, err := asmutil.ParseNumber(tok); err == nil {
		return Operand{Kind: OperandImm, Value: v}, nil
	}
	if isIdentifier(tok) {
		return Operand{Kind: OperandLabel, Label: tok}, nil
	}
	return Operand{}, fmt.Errorf("unrecognized operand %q", tok)
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
