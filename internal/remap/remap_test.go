package remap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scottlamb/page-primer/internal/segment"
)

// newTestEngine builds an Engine whose reserve/replace hooks are swapped
// for the given test doubles, so these tests never touch real mmap
// syscalls.
func newTestEngine(reserveFn reserveFunc, replaceFn replaceFunc) *Engine {
	return &Engine{reserve: reserveFn, replace: replaceFn}
}

func TestEngineRemapRejectsUnreadable(t *testing.T) {
	replaceCalls := 0
	e := newTestEngine(alwaysReserve, func(string, segment.AddrRange, segment.AddrRange, segment.ProtFlags) *Error {
		replaceCalls++
		return nil
	})
	_, err := e.Remap("/bin/x", segment.AddrRange{Start: 0x1000, End: 0x2000}, segment.ProtFlags(0), basePageMask, hugePageMask)
	require.NotNil(t, err)
	assert.Equal(t, Unreadable, err.Kind)
	assert.Zero(t, replaceCalls)
}

func TestEngineRemapRejectsWritable(t *testing.T) {
	replaceCalls := 0
	e := newTestEngine(alwaysReserve, func(string, segment.AddrRange, segment.AddrRange, segment.ProtFlags) *Error {
		replaceCalls++
		return nil
	})
	flags := segment.Read | segment.Write
	_, err := e.Remap("/bin/x", segment.AddrRange{Start: 0x1000, End: 0x2000}, flags, basePageMask, hugePageMask)
	require.NotNil(t, err)
	assert.Equal(t, Writable, err.Kind)
	assert.Zero(t, replaceCalls)
}

func TestEngineRemapReleasesPaddingOnReplaceFailure(t *testing.T) {
	var reserved []*mockReservation
	spyReserve := func(r segment.AddrRange) reservation {
		m := &mockReservation{addrs: r}
		reserved = append(reserved, m)
		return m
	}
	e := newTestEngine(spyReserve, func(string, segment.AddrRange, segment.AddrRange, segment.ProtFlags) *Error {
		return &Error{Kind: RemapFailed}
	})

	flags := segment.Read | segment.Exec
	addrs := segment.AddrRange{Start: hugePageSize + 0x1000, End: hugePageSize + 0x3000}
	_, err := e.Remap("/bin/x", addrs, flags, basePageMask, hugePageMask)
	require.NotNil(t, err)
	assert.Equal(t, RemapFailed, err.Kind)

	// No long-lived mapping outside the original segment pages may
	// survive a failed replace: every padding reservation claimed during
	// planning must have been released, none forgotten.
	require.NotEmpty(t, reserved)
	for _, m := range reserved {
		assert.True(t, m.released, "padding reservation was not released after replace failure")
		assert.False(t, m.forgot, "padding reservation must not be forgotten on failure")
	}
}

func TestEngineRemapForgetsPaddingOnSuccess(t *testing.T) {
	var reserved []*mockReservation
	spyReserve := func(r segment.AddrRange) reservation {
		m := &mockReservation{addrs: r}
		reserved = append(reserved, m)
		return m
	}
	var gotWindow, gotCopy segment.AddrRange
	e := newTestEngine(spyReserve, func(_ string, window, toCopy segment.AddrRange, _ segment.ProtFlags) *Error {
		gotWindow, gotCopy = window, toCopy
		return nil
	})

	flags := segment.Read | segment.Exec
	addrs := segment.AddrRange{Start: hugePageSize + 0x1000, End: hugePageSize + 0x3000}
	achieved, err := e.Remap("/bin/x", addrs, flags, basePageMask, hugePageMask)
	require.Nil(t, err)
	assert.Equal(t, gotWindow, achieved)
	assert.True(t, gotCopy.Start >= gotWindow.Start && gotCopy.End <= gotWindow.End)

	require.NotEmpty(t, reserved)
	for _, m := range reserved {
		assert.True(t, m.forgot, "padding reservation must be forgotten after a successful replace")
		assert.False(t, m.released, "a forgotten reservation must not also be released")
	}
}

func TestEngineRemapPropagatesConflict(t *testing.T) {
	replaceCalls := 0
	e := newTestEngine(neverReserve, func(string, segment.AddrRange, segment.AddrRange, segment.ProtFlags) *Error {
		replaceCalls++
		return nil
	})
	flags := segment.Read | segment.Exec
	addrs := segment.AddrRange{Start: hugePageSize + 0x1000, End: hugePageSize + 0x3000}
	_, err := e.Remap("/bin/x", addrs, flags, basePageMask, hugePageMask)
	require.NotNil(t, err)
	assert.Equal(t, Conflict, err.Kind)
	assert.Zero(t, replaceCalls, "replace must not be attempted once planning reports a conflict")
}
