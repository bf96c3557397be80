package oracle

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onetrace/tosa/pkg/math/curve"
	"github.com/onetrace/tosa/pkg/math/sample"
)

func TestScalarDeterministic(t *testing.T) {
	group := curve.Secp256k1{}
	s := NewSuite(group, "test")
	a := s.Scalar("H1", []byte("input"))
	b := s.Scalar("H1", []byte("input"))
	assert.True(t, a.Equal(b), "same function and input must agree")
}

func TestFunctionSeparation(t *testing.T) {
	group := curve.BLS12381{}
	s := NewSuite(group, "test")
	in := []byte("shared input")
	names := []string{"H0", "H1", "H2", "H3", "H4"}
	out := make([]curve.Scalar, len(names))
	for i, name := range names {
		out[i] = s.Scalar(name, in)
	}
	for i := range out {
		for j := i + 1; j < len(out); j++ {
			assert.False(t, out[i].Equal(out[j]), "%s and %s must differ on the same input", names[i], names[j])
		}
	}
}

func TestSuiteSeparation(t *testing.T) {
	group := curve.Secp256k1{}
	a := NewSuite(group, "alpha").Scalar("H1", []byte("x"))
	b := NewSuite(group, "beta").Scalar("H1", []byte("x"))
	assert.False(t, a.Equal(b), "distinct suites must not collide")
}

func TestFramingPreventsSlides(t *testing.T) {
	group := curve.Secp256k1{}
	s := NewSuite(group, "test")
	a := s.Scalar("H1", []byte("ab"), []byte("c"))
	b := s.Scalar("H1", []byte("a"), []byte("bc"))
	assert.False(t, a.Equal(b))
}

func TestPointOnGroup(t *testing.T) {
	group := curve.BLS12381{}
	s := NewSuite(group, "test")
	_, X := sample.ScalarPointPair(rand.Reader, group)
	p := s.Point("H3", group.NewBasePoint(), X)
	require.False(t, p.IsIdentity())

	// Point must be consistent with Scalar acting on the base.
	h := s.Scalar("H3", X)
	assert.True(t, p.Equal(h.ActOnBase()))
}

func TestMarshalableInputs(t *testing.T) {
	group := curve.Secp256k1{}
	s := NewSuite(group, "test")
	x, X := sample.ScalarPointPair(rand.Reader, group)
	a := s.Scalar("H1", X, x)
	b := s.Scalar("H1", X, x)
	assert.True(t, a.Equal(b))
}
