package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePMDSize(t *testing.T) {
	size, err := parsePMDSize([]byte("2097152\n"))
	require.NoError(t, err)
	assert.EqualValues(t, 2097152, size)
}

func TestParsePMDSizeInvalid(t *testing.T) {
	_, err := parsePMDSize([]byte("abc"))
	assert.ErrorContains(t, err, "invalid data")
}

func TestMask(t *testing.T) {
	assert.EqualValues(t, 0xfff, Mask(0x1000))
	assert.EqualValues(t, 0x1fffff, Mask(2*1024*1024))
}

func TestMaskPanicsOnNonPowerOfTwo(t *testing.T) {
	assert.Panics(t, func() { Mask(3) })
	assert.Panics(t, func() { Mask(1) })
	assert.Panics(t, func() { Mask(0) })
}

func TestRoundUp(t *testing.T) {
	const mask = 0xfff
	assert.EqualValues(t, 0x1000, RoundUp(0x1000, mask))
	assert.EqualValues(t, 0x2000, RoundUp(0x1001, mask))
	assert.EqualValues(t, 0, RoundUp(0, mask))
}

func TestRoundDown(t *testing.T) {
	const mask = 0xfff
	assert.EqualValues(t, 0x1000, RoundDown(0x1000, mask))
	assert.EqualValues(t, 0x1000, RoundDown(0x1fff, mask))
}

func TestBasePageSize(t *testing.T) {
	size := BasePageSize()
	assert.NotZero(t, size)
	assert.Zero(t, size&(size-1), "base page size must be a power of two")
}

func TestHugePageSize(t *testing.T) {
	// Exercises the real sysfs probe; on hosts without transparent huge
	// pages this should return (nil, nil), never an error.
	_, err := HugePageSize()
	assert.NoError(t, err)
}
