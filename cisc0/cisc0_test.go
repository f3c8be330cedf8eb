package cisc0_test

import (
	"testing"

	"github.com/lookbusy1344/arm-emulator/cisc0"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVM(t *testing.T) *cisc0.VM {
	t.Helper()
	vm := cisc0.NewVM()
	vm.Initialize()
	return vm
}

func poke(t *testing.T, vm *cisc0.VM, addr uint32, words ...uint16) {
	t.Helper()
	for i, w := range words {
		require.NoError(t, vm.Mem.Space.Write(addr+uint32(i), w, 0))
	}
}

func wordArith(op cisc0.ArithmeticOp, mask cisc0.Bitmask, dest uint32) uint16 {
	w := uint16(0)
	w = cisc0.EncodeClass(w, cisc0.ClassArithmetic)
	w = cisc0.EncodeSubtype(w, uint32(op))
	w = cisc0.EncodeBitmask(w, mask)
	w = cisc0.EncodeDest4(w, dest)
	return w
}

func wordRegPair(src0, src1 uint32) uint16 {
	w := uint16(0)
	w = cisc0.EncodeReg0(w, src0)
	w = cisc0.EncodeReg1(w, src1)
	return w
}

func TestArithmetic_RegisterForm(t *testing.T) {
	vm := newVM(t)
	vm.Regs.Set(0, 5)
	vm.Regs.Set(1, 7)
	poke(t, vm, 0,
		wordArith(cisc0.ArithAdd, 0, 2),
		wordRegPair(0, 1),
		haltWord(),
	)
	require.NoError(t, vm.Run())
	assert.EqualValues(t, 12, vm.Regs.Get(2))
}

func TestArithmetic_ImmediateForm(t *testing.T) {
	vm := newVM(t)
	vm.Regs.Set(0, 100)
	poke(t, vm, 0,
		wordArith(cisc0.ArithSub, 0b0011, 3),
		wordRegPair(0, 0),
		30,
		haltWord(),
	)
	require.NoError(t, vm.Run())
	assert.EqualValues(t, 70, vm.Regs.Get(3))
}

// TestMemory_BitmaskLoad covers spec.md §8 scenario 4: address register =
// 0x100, memory[0x100] = 0x1234, memory[0x101] = 0x5678; a load with
// bitmask 0b1111 yields 0x56781234, 0b0011 yields 0x00001234, and 0b1100
// yields 0x56780000.
func TestMemory_BitmaskLoad(t *testing.T) {
	cases := []struct {
		mask cisc0.Bitmask
		want uint32
	}{
		{0b1111, 0x56781234},
		{0b0011, 0x00001234},
		{0b1100, 0x56780000},
	}
	for _, tc := range cases {
		vm := newVM(t)
		require.NoError(t, vm.Mem.Space.Write(0x100, 0x1234, 0))
		require.NoError(t, vm.Mem.Space.Write(0x101, 0x5678, 0))
		vm.Regs.Set(cisc0.RegAddr, 0x100)

		w0 := uint16(0)
		w0 = cisc0.EncodeClass(w0, cisc0.ClassMemory)
		w0 = cisc0.EncodeSubtype(w0, uint32(cisc0.MemLoad))
		w0 = cisc0.EncodeBitmask(w0, tc.mask)
		poke(t, vm, 0, w0, haltWord())

		require.NoError(t, vm.Run())
		assert.EqualValues(t, tc.want, vm.Regs.Value(), "mask %04b", tc.mask)
	}
}

// TestSet_ThreeWordImmediate covers spec.md §8 scenario 5: set r3,
// bitmask=0b1111, imm=0xAABBCCDD consumes three packet words total; r3 =
// 0xAABBCCDD; IP advances by 3.
func TestSet_ThreeWordImmediate(t *testing.T) {
	vm := newVM(t)
	w0 := uint16(0)
	w0 = cisc0.EncodeClass(w0, cisc0.ClassSet)
	w0 = cisc0.EncodeBitmask(w0, 0b1111)
	w0 = cisc0.EncodeDest4(w0, 3)
	poke(t, vm, 0, w0, 0xCCDD, 0xAABB, haltWord())

	cont, err := vm.Cycle()
	require.NoError(t, err)
	assert.True(t, cont)
	assert.EqualValues(t, 0xAABBCCDD, vm.Regs.Get(3))
	assert.EqualValues(t, 3, vm.IP())
}

func TestMemory_PushPopRoundTrip(t *testing.T) {
	vm := newVM(t)
	vm.Regs.SetSP(0x1000)
	vm.Regs.SetValue(0xDEADBEEF)

	pushWord := uint16(0)
	pushWord = cisc0.EncodeClass(pushWord, cisc0.ClassMemory)
	pushWord = cisc0.EncodeSubtype(pushWord, uint32(cisc0.MemPush))
	pushWord = cisc0.EncodeBitmask(pushWord, 0b1111)

	popWord := uint16(0)
	popWord = cisc0.EncodeClass(popWord, cisc0.ClassMemory)
	popWord = cisc0.EncodeSubtype(popWord, uint32(cisc0.MemPop))
	popWord = cisc0.EncodeBitmask(popWord, 0b1111)

	poke(t, vm, 0, pushWord, popWord, haltWord())

	_, err := vm.Cycle()
	require.NoError(t, err)
	assert.EqualValues(t, 0x0FFE, vm.Regs.SP())

	vm.Regs.SetValue(0)
	_, err = vm.Cycle()
	require.NoError(t, err)
	assert.EqualValues(t, 0x1000, vm.Regs.SP())
	assert.EqualValues(t, 0xDEADBEEF, vm.Regs.Value())
}

// TestMove_PartialBitmaskPreserves covers spec.md §8's preserve rule:
// move only overwrites the bytes its bitmask selects, unlike set's
// zero-fill.
func TestMove_PartialBitmaskPreserves(t *testing.T) {
	vm := newVM(t)
	vm.Regs.Set(0, 0x11223344)
	vm.Regs.Set(1, 0xAABBCCDD)

	w0 := uint16(0)
	w0 = cisc0.EncodeClass(w0, cisc0.ClassMove)
	w0 = cisc0.EncodeBitmask(w0, 0b0011)
	w0 = cisc0.EncodeDest4(w0, 0)

	w1 := uint16(0)
	w1 = cisc0.EncodeReg0(w1, 1)

	poke(t, vm, 0, w0, w1, haltWord())
	require.NoError(t, vm.Run())
	assert.EqualValues(t, 0x1122CCDD, vm.Regs.Get(0))
}

// TestLogical_ImmediatePartialBitmaskPreserves covers spec.md §8's
// logical-preserve rule: the immediate form only overwrites the bytes
// its bitmask selected.
func TestLogical_ImmediatePartialBitmaskPreserves(t *testing.T) {
	vm := newVM(t)
	vm.Regs.Set(0, 0x11223344)
	vm.Regs.Set(2, 0xFFFFFFFF)

	w0 := uint16(0)
	w0 = cisc0.EncodeClass(w0, cisc0.ClassLogical)
	w0 = cisc0.EncodeSubtype(w0, uint32(cisc0.LogicalAnd))
	w0 = cisc0.EncodeBitmask(w0, 0b0011)
	w0 = cisc0.EncodeDest4(w0, 0)

	poke(t, vm, 0, w0, wordRegPair(2, 0), 0x0000, haltWord())
	require.NoError(t, vm.Run())
	assert.EqualValues(t, 0x11220000, vm.Regs.Get(0))
}

// TestBranch_IfFormSelectsByCondition covers spec.md §114's two-GPR
// If-form: the condition register picks the true-target register when
// set, the false-target register otherwise - the branch always happens.
func TestBranch_IfFormSelectsByCondition(t *testing.T) {
	branchWord := uint16(0)
	branchWord = cisc0.EncodeClass(branchWord, cisc0.ClassBranch)
	branchWord = cisc0.EncodeBranchForm(branchWord, cisc0.BranchForm{IsIf: true, IsConditional: true})

	for _, tc := range []struct {
		cr   uint32
		want uint32
	}{
		{1, 10},
		{0, 20},
	} {
		vm := newVM(t)
		vm.Regs.SetCR(tc.cr)
		vm.Regs.Set(4, 10) // true target
		vm.Regs.Set(5, 20) // false target
		poke(t, vm, 10, haltWord())
		poke(t, vm, 20, haltWord())
		poke(t, vm, 0, branchWord, wordRegPair(4, 5))

		require.NoError(t, vm.Run())
		assert.EqualValues(t, tc.want, vm.IP(), "cr=%d", tc.cr)
	}
}

func TestCompare_WritesCR(t *testing.T) {
	vm := newVM(t)
	vm.Regs.Set(0, 9)
	vm.Regs.Set(1, 9)
	w0 := wordArith(cisc0.ArithmeticOp(cisc0.CmpEq), 0, 0)
	w0 = cisc0.EncodeClass(w0, cisc0.ClassCompare)
	poke(t, vm, 0, w0, wordRegPair(0, 1), haltWord())

	_, err := vm.Cycle()
	require.NoError(t, err)
	assert.EqualValues(t, 1, vm.Regs.CR())
}

func haltWord() uint16 {
	w := uint16(0)
	w = cisc0.EncodeClass(w, cisc0.ClassSystemCall)
	return w
}
