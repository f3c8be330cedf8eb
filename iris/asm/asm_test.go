package asm_test

import (
	"testing"

	"github.com/lookbusy1344/arm-emulator/iris"
	"github.com/lookbusy1344/arm-emulator/iris/asm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assembleAndRun(t *testing.T, source string) *iris.VM {
	t.Helper()
	records, err := asm.Assemble("test.asm", source)
	require.NoError(t, err)

	vm := iris.NewVM()
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
halt
`)
	assert.EqualValues(t, 12, vm.Registers()[2])
}

func TestAssemble_CompareAndBranchTaken(t *testing.T) {
	vm := assembleAndRun(t, `
set r0, 5
set r1, 5
eq p0, _, r0, r1
bit p0, L
set r2, 99
.label L
set r2, 1
halt
`)
	assert.EqualValues(t, 1, vm.Registers()[2])
}

func TestAssemble_CompareAndBranchNotTaken(t *testing.T) {
	vm := assembleAndRun(t, `
set r0, 5
set r1, 6
eq p0, _, r0, r1
bit p0, L
set r2, 99
halt
.label L
set r2, 1
halt
`)
	assert.EqualValues(t, 99, vm.Registers()[2])
}

func TestAssemble_UnconditionalImmediateBranch(t *testing.T) {
	records, err := asm.Assemble("test.asm", `
bi L
.label L
set r0, 0xFEED
halt
`)
	require.NoError(t, err)
	vm := iris.NewVM()
	vm.Initialize()
	require.NoError(t, vm.LoadObject(records))
	require.NoError(t, vm.Run())
	assert.EqualValues(t, 0xFEED, vm.Registers()[0])
}

func TestAssemble_UnconditionalRegisterJump(t *testing.T) {
	vm := assembleAndRun(t, `
set r0, L
bir r0
set r1, 99
.label L
set r1, 0xFEED
halt
`)
	assert.EqualValues(t, 0xFEED, vm.Registers()[1])
}

func TestAssemble_StoreCodeLoadCodeRoundTrip(t *testing.T) {
	vm := assembleAndRun(t, `
set r0, 0x1111
set r1, 0x2222
set r2, 0x9000
stc r0, r1, r2
ldc r3, r4, r2
halt
`)
	assert.EqualValues(t, 0x1111, vm.Registers()[3])
	assert.EqualValues(t, 0x2222, vm.Registers()[4])
}

func TestAssemble_PushPopRoundTrip(t *testing.T) {
	vm := assembleAndRun(t, `
set r1, 0xDEAD
push r0, r1
pop r0, r2
halt
`)
	assert.EqualValues(t, 0xDEAD, vm.Registers()[2])
	assert.EqualValues(t, 0, vm.Registers()[0])
}

func TestAssemble_DataDirective(t *testing.T) {
	records, err := asm.Assemble("test.asm", `
.data
.word 0
.label L
.word 0xFEED
.code
halt
`)
	require.NoError(t, err)
	vm := iris.NewVM()
	vm.Initialize()
	require.NoError(t, vm.LoadObject(records))

	v, err := vm.Mem.Data.Read(1, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0xFEED, v)
}

func TestAssemble_UndefinedLabel(t *testing.T) {
	_, err := asm.Assemble("test.asm", `bi nope`)
	assert.Error(t, err)
}

func TestAssemble_WordDirectiveRejectedInCodeSegment(t *testing.T) {
	_, err := asm.Assemble("test.asm", `.word 1`)
	assert.Error(t, err)
}

func TestParseRegisterAndPredicate(t *testing.T) {
	r, ok := asm.ParseRegister("r12")
	assert.True(t, ok)
	assert.EqualValues(t, 12, r)

	_, ok = asm.ParseRegister("r999")
	assert.False(t, ok)

	p, ok := asm.ParsePredicate("p3")
	assert.True(t, ok)
	assert.EqualValues(t, 3, p)
}
