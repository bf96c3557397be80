package stealth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/onetrace/tosa/pkg/pool"
)

func TestScanPicksMatches(t *testing.T) {
	p := pool.NewPool(0)
	defer p.TearDown()

	owned := Scan(p, 50, func(i int) bool { return i%7 == 0 })
	assert.Equal(t, []int{0, 7, 14, 21, 28, 35, 42, 49}, owned)
}

func TestScanNilPool(t *testing.T) {
	owned := Scan(nil, 10, func(i int) bool { return i >= 8 })
	assert.Equal(t, []int{8, 9}, owned)
}

func TestScanNoMatches(t *testing.T) {
	owned := Scan(nil, 10, func(int) bool { return false })
	assert.Empty(t, owned)
}
