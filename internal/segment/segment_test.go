package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProtFlagsStringTestsEachBitIndependently(t *testing.T) {
	cases := []struct {
		flags ProtFlags
		want  string
	}{
		{0, "---"},
		{Read, "r--"},
		{Write, "-w-"},
		{Exec, "--x"},
		{Read | Write, "rw-"},
		{Read | Exec, "r-x"},
		{Write | Exec, "-wx"},
		{Read | Write | Exec, "rwx"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.flags.String(), "flags=%v", c.flags)
	}
}

func TestProtFlagsAccessors(t *testing.T) {
	f := Write | Exec
	assert.False(t, f.Readable())
	assert.True(t, f.Writable())
	assert.True(t, f.Executable())
}

func TestAddrRangeLenAndEmpty(t *testing.T) {
	r := AddrRange{Start: 0x1000, End: 0x2000}
	assert.EqualValues(t, 0x1000, r.Len())
	assert.False(t, r.Empty())

	empty := AddrRange{Start: 0x2000, End: 0x1000}
	assert.EqualValues(t, 0, empty.Len())
	assert.True(t, empty.Empty())
}
