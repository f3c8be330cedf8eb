package asm_test

import (
	"testing"

	"github.com/lookbusy1344/arm-emulator/cisc0"
	"github.com/lookbusy1344/arm-emulator/cisc0/asm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assembleAndRun(t *testing.T, source string) *cisc0.VM {
	t.Helper()
	records, err := asm.Assemble("test.asm", source)
	require.NoError(t, err)

	vm := cisc0.NewVM()
	vm.Initialize()
	require.NoError(t, vm.LoadObject(records))
	require.NoError(t, vm.Run())
	return vm
}

func TestAssemble_AddScenario(t *testing.T) {
	vm := assembleAndRun(t, `
set r0, 5
set r1, 7
add r2, r0, r1
syscall
`)
	assert.EqualValues(t, 12, vm.Regs.Get(2))
}

func TestAssemble_ImmediateSubtract(t *testing.T) {
	vm := assembleAndRun(t, `
set r0, 100
sub r3, r0, 30
syscall
`)
	assert.EqualValues(t, 70, vm.Regs.Get(3))
}

func TestAssemble_CompareAndBranchTaken(t *testing.T) {
	vm := assembleAndRun(t, `
set r0, 5
set r1, 5
set r4, TRUE
set r5, FALSE
eq r0, r1
bif r4, r5
.label FALSE
set r2, 99
syscall
.label TRUE
set r2, 1
syscall
`)
	assert.EqualValues(t, 1, vm.Regs.Get(2))
}

func TestAssemble_CompareAndBranchNotTaken(t *testing.T) {
	vm := assembleAndRun(t, `
set r0, 5
set r1, 6
set r4, TRUE
set r5, FALSE
eq r0, r1
bif r4, r5
.label FALSE
set r2, 99
syscall
.label TRUE
set r2, 1
syscall
`)
	assert.EqualValues(t, 99, vm.Regs.Get(2))
}

func TestAssemble_UnconditionalBranch(t *testing.T) {
	vm := assembleAndRun(t, `
br L
set r0, 99
.label L
set r0, 0xFEED
syscall
`)
	assert.EqualValues(t, 0xFEED, vm.Regs.Get(0))
}

func TestAssemble_PushPopRoundTrip(t *testing.T) {
	vm := assembleAndRun(t, `
set sp, 0x2000
set value, 0xDEADBEEF
push
pop
syscall
`)
	assert.EqualValues(t, 0xDEADBEEF, vm.Regs.Value())
	assert.EqualValues(t, 0x2000, vm.Regs.SP())
}

func TestAssemble_DataDirective(t *testing.T) {
	records, err := asm.Assemble("test.asm", `
.data
.word 0
.label L
.word 0xFEED
.code
syscall
`)
	require.NoError(t, err)
	vm := cisc0.NewVM()
	vm.Initialize()
	require.NoError(t, vm.LoadObject(records))

	v, err := vm.Mem.Space.Read(asm.DataSegmentBase+1, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0xFEED, v)
}

func TestAssemble_UndefinedLabel(t *testing.T) {
	_, err := asm.Assemble("test.asm", `br nope`)
	assert.Error(t, err)
}

func TestAssemble_WordDirectiveRejectedInCodeSegment(t *testing.T) {
	_, err := asm.Assemble("test.asm", `.word 1`)
	assert.Error(t, err)
}

func TestParseRegisterAlias(t *testing.T) {
	r, ok := asm.ParseRegister("sp")
	assert.True(t, ok)
	assert.EqualValues(t, cisc0.RegSP, r)

	r, ok = asm.ParseRegister("r7")
	assert.True(t, ok)
	assert.EqualValues(t, 7, r)

	_, ok = asm.ParseRegister("r99")
	assert.False(t, ok)
}
