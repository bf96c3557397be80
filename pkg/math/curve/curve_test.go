package curve

import (
	"crypto/rand"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScalar(t *testing.T, group Curve) Scalar {
	t.Helper()
	buf := make([]byte, group.ScalarBytes())
	s := group.NewScalar()
	for {
		_, err := io.ReadFull(rand.Reader, buf)
		require.NoError(t, err)
		if s.UnmarshalBinary(buf) == nil && !s.IsZero() {
			return s
		}
	}
}

func testGroups(group Curve) []func() Point {
	bases := []func() Point{group.NewBasePoint}
	if pairing, ok := group.(PairingCurve); ok {
		bases = append(bases, pairing.NewG2BasePoint)
	}
	return bases
}

func TestScalarArithmetic(t *testing.T) {
	for _, group := range []Curve{Secp256k1{}, BLS12381{}} {
		group := group
		t.Run(group.Name(), func(t *testing.T) {
			x := sampleScalar(t, group)
			y := sampleScalar(t, group)

			sum := group.NewScalar().Set(x).Add(y)
			back := group.NewScalar().Set(sum).Sub(y)
			assert.True(t, back.Equal(x), "x + y - y == x")

			neg := group.NewScalar().Set(x).Negate()
			assert.True(t, group.NewScalar().Set(x).Add(neg).IsZero(), "x + (-x) == 0")

			inv := group.NewScalar().Set(x).Invert()
			prod := group.NewScalar().Set(x).Mul(inv)
			one := group.NewScalar().Set(prod)
			assert.False(t, one.IsZero())
			assert.True(t, one.Mul(y).Equal(y), "x * x⁻¹ * y == y")
		})
	}
}

func TestPointArithmetic(t *testing.T) {
	for _, group := range []Curve{Secp256k1{}, BLS12381{}} {
		group := group
		t.Run(group.Name(), func(t *testing.T) {
			for _, base := range testGroups(group) {
				x := sampleScalar(t, group)
				y := sampleScalar(t, group)

				X := x.Act(base())
				Y := y.Act(base())

				// (x + y)•G == x•G + y•G
				sum := group.NewScalar().Set(x).Add(y)
				assert.True(t, sum.Act(base()).Equal(X.Add(Y)))

				// X - X == identity
				assert.True(t, X.Sub(X).IsIdentity())
				assert.False(t, X.IsIdentity())

				// -(-X) == X
				assert.True(t, X.Negate().Negate().Equal(X))
			}
		})
	}
}

func TestPairingBilinear(t *testing.T) {
	group := BLS12381{}
	a := sampleScalar(t, group)
	b := sampleScalar(t, group)

	P := a.Act(group.NewBasePoint())
	Q := b.Act(group.NewG2BasePoint())

	// e(aP, bQ) == e(P, Q)^(ab)
	lhs := group.Pair(P, Q)
	base := group.Pair(group.NewBasePoint(), group.NewG2BasePoint())
	ab := group.NewScalar().Set(a).Mul(b)
	rhs := ab.Act(base)
	assert.True(t, lhs.Equal(rhs))

	// e(P, Q) * e(-P, Q) == 1
	product := lhs.Add(group.Pair(P.Negate(), Q))
	assert.True(t, product.IsIdentity())
}

func TestMarshalRoundTrip(t *testing.T) {
	for _, group := range []Curve{Secp256k1{}, BLS12381{}} {
		group := group
		t.Run(group.Name(), func(t *testing.T) {
			x := sampleScalar(t, group)
			data, err := x.MarshalBinary()
			require.NoError(t, err)
			back := group.NewScalar()
			require.NoError(t, back.UnmarshalBinary(data))
			assert.True(t, back.Equal(x))

			P := x.Act(group.NewBasePoint())
			data, err = P.MarshalBinary()
			require.NoError(t, err)
			Q := group.NewPoint()
			require.NoError(t, Q.UnmarshalBinary(data))
			assert.True(t, Q.Equal(P))

			pairing, ok := group.(PairingCurve)
			if !ok {
				return
			}
			P2 := x.Act(pairing.NewG2BasePoint())
			data, err = P2.MarshalBinary()
			require.NoError(t, err)
			Q2 := pairing.NewG2Point()
			require.NoError(t, Q2.UnmarshalBinary(data))
			assert.True(t, Q2.Equal(P2))
		})
	}
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	for _, group := range []Curve{Secp256k1{}, BLS12381{}} {
		group := group
		t.Run(group.Name(), func(t *testing.T) {
			// Truncated encodings must fail.
			P := group.NewPoint()
			assert.Error(t, P.UnmarshalBinary([]byte{1, 2, 3}))

			// An all-0xFF scalar is above the group order.
			s := group.NewScalar()
			overflow := make([]byte, group.ScalarBytes())
			for i := range overflow {
				overflow[i] = 0xFF
			}
			assert.Error(t, s.UnmarshalBinary(overflow))
		})
	}
}

func TestFromHashInRange(t *testing.T) {
	for _, group := range []Curve{Secp256k1{}, BLS12381{}} {
		digest := make([]byte, 64)
		for i := range digest {
			digest[i] = 0xFF
		}
		s := FromHash(group, digest)
		// The reduced scalar must round trip through the canonical encoding.
		data, err := s.MarshalBinary()
		require.NoError(t, err)
		back := group.NewScalar()
		require.NoError(t, back.UnmarshalBinary(data))
		assert.True(t, back.Equal(s))
	}
}
