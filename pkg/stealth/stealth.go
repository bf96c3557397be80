// Package stealth holds the pieces shared by all one-time address protocols:
// the error taxonomy and the batch scanning helper wallets use to pick their
// own outputs out of a block.
package stealth

import (
	"errors"
	"sort"

	"github.com/onetrace/tosa/pkg/pool"
)

var (
	// ErrIdentityPoint is returned when a received group element is the
	// identity, which would make the surrounding keys or addresses trivial.
	ErrIdentityPoint = errors.New("stealth: group element is the identity")

	// ErrZeroScalar is returned when a secret scalar is zero.
	ErrZeroScalar = errors.New("stealth: scalar is zero")

	// ErrNotRecipient is returned when a signing key is requested for an
	// address the key holder does not own.
	ErrNotRecipient = errors.New("stealth: address does not belong to this key")
)

// Scan runs match over the indices 0..n-1 and returns the indices it accepted,
// in increasing order.
//
// match is called once per index, from multiple goroutines when p is not nil,
// so it must be safe for concurrent use. It would typically run a scheme's
// fast recognition against the candidate at that index.
func Scan(p *pool.Pool, n int, match func(i int) bool) []int {
	results := p.Parallelize(n, func(i int) interface{} { return match(i) })
	var owned []int
	for i, r := range results {
		if r.(bool) {
			owned = append(owned, i)
		}
	}
	sort.Ints(owned)
	return owned
}
