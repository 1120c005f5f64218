package remap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"

	"github.com/scottlamb/page-primer/internal/segment"
)

func TestTransformProt(t *testing.T) {
	cases := []struct {
		flags segment.ProtFlags
		want  int
	}{
		{0, 0},
		{segment.Read, unix.PROT_READ},
		{segment.Write, unix.PROT_WRITE},
		{segment.Exec, unix.PROT_EXEC},
		{segment.Read | segment.Write, unix.PROT_READ | unix.PROT_WRITE},
		{segment.Read | segment.Exec, unix.PROT_READ | unix.PROT_EXEC},
		{segment.Write | segment.Exec, unix.PROT_WRITE | unix.PROT_EXEC},
		{segment.Read | segment.Write | segment.Exec, unix.PROT_READ | unix.PROT_WRITE | unix.PROT_EXEC},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, transformProt(c.flags), "flags=%v", c.flags)
	}
}
