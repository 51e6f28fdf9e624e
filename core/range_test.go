package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/npucost/npucost/core"
)

func TestRange_Contains_BoundsAndDivisor(t *testing.T) {
	r := core.NewRange(4, 20, 4)

	assert.True(t, r.Contains(4))
	assert.True(t, r.Contains(16))
	assert.False(t, r.Contains(3), "below Lo")
	assert.False(t, r.Contains(21), "above Hi")
	assert.False(t, r.Contains(6), "not a multiple of Divisor")
}

func TestRange_Contains_SecondaryDivisorLatchesAboveThreshold(t *testing.T) {
	// Below 16 only the primary divisor (2) applies; at or above 16 the
	// value must also satisfy the secondary divisor (16).
	r := core.NewRange(2, 64, 2).WithSecondary(16)

	assert.True(t, r.Contains(6), "below threshold, only Divisor=2 applies")
	assert.True(t, r.Contains(14), "below threshold, only Divisor=2 applies")
	assert.False(t, r.Contains(18), "at/above threshold, must also satisfy Divisor=16")
	assert.True(t, r.Contains(32), "at/above threshold, divisible by 16 (and 2)")
}

func TestRange_RoundUpTo(t *testing.T) {
	r := core.NewRange(1, 100, 16)

	v, ok := r.RoundUpTo(1)
	assert.True(t, ok)
	assert.Equal(t, int64(16), v)

	v, ok = r.RoundUpTo(17)
	assert.True(t, ok)
	assert.Equal(t, int64(32), v)

	_, ok = r.RoundUpTo(200)
	assert.False(t, ok, "200 is above Hi, no in-range value exists")
}

func TestRange_RoundUpTo_SecondaryDivisorSkipsUnsatisfyingCandidates(t *testing.T) {
	r := core.NewRange(1, 64, 2).WithSecondary(16)

	// 15 rounds up to 16 under the primary divisor alone, but 16 is exactly
	// the threshold where the secondary divisor also applies, and 16 % 16
	// == 0, so it's immediately accepted.
	v, ok := r.RoundUpTo(15)
	assert.True(t, ok)
	assert.Equal(t, int64(16), v)

	// 18 is even (primary-valid) but not a multiple of 16; the next
	// candidate that satisfies both is 32.
	v, ok = r.RoundUpTo(18)
	assert.True(t, ok)
	assert.Equal(t, int64(32), v)
}

func TestRange_MultiplyAndAddBounds(t *testing.T) {
	r := core.NewRange(4, 16, 1)

	assert.Equal(t, core.NewRange(8, 16, 1), r.MultiplyLower(2))
	assert.Equal(t, core.NewRange(4, 32, 1), r.MultiplyUpper(2))
	assert.Equal(t, core.NewRange(5, 16, 1), r.AddLower(1))
	assert.Equal(t, core.NewRange(4, 17, 1), r.AddUpper(1))
}

func TestMultiRange_ContainsAnyComponent(t *testing.T) {
	m := core.MultiRange{core.NewRange(1, 8, 1), core.NewRange(100, 200, 10)}

	assert.True(t, m.Contains(5))
	assert.True(t, m.Contains(150))
	assert.False(t, m.Contains(50))
	assert.False(t, m.Contains(105), "105 is in bounds but not divisible by 10")
}

func TestMultiRange_RoundUpTo_PicksSmallestAcrossComponents(t *testing.T) {
	m := core.MultiRange{core.NewRange(50, 100, 1), core.NewRange(1, 40, 8)}

	v, ok := m.RoundUpTo(10)
	assert.True(t, ok)
	assert.Equal(t, int64(16), v, "the second component reaches 10 first, rounding up to 16")
}
