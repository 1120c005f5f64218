package lock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scottlamb/page-primer/internal/segment"
)

func TestLockEmptyRangeIsNoop(t *testing.T) {
	err := Lock(segment.AddrRange{})
	assert.Nil(t, err)
}
