package hash

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministic(t *testing.T) {
	a := New("test")
	require.NoError(t, a.WriteAny([]byte{1, 2, 3}, "hello"))
	b := New("test")
	require.NoError(t, b.WriteAny([]byte{1, 2, 3}, "hello"))
	assert.True(t, bytes.Equal(a.Sum(), b.Sum()))
}

func TestTagSeparates(t *testing.T) {
	a := New("one")
	b := New("two")
	require.NoError(t, a.WriteAny([]byte{1}))
	require.NoError(t, b.WriteAny([]byte{1}))
	assert.False(t, bytes.Equal(a.Sum(), b.Sum()))
}

func TestFramingPreventsSlides(t *testing.T) {
	// ("ab", "c") and ("a", "bc") must not collide.
	a := New("test")
	require.NoError(t, a.WriteAny([]byte("ab"), []byte("c")))
	b := New("test")
	require.NoError(t, b.WriteAny([]byte("a"), []byte("bc")))
	assert.False(t, bytes.Equal(a.Sum(), b.Sum()))
}

func TestTypeDomains(t *testing.T) {
	a := New("test")
	require.NoError(t, a.WriteAny([]byte("x")))
	b := New("test")
	require.NoError(t, b.WriteAny("x"))
	assert.False(t, bytes.Equal(a.Sum(), b.Sum()), "[]byte and string inputs must differ")
}

func TestClone(t *testing.T) {
	a := New("test")
	require.NoError(t, a.WriteAny([]byte("prefix")))
	b := a.Clone()
	require.NoError(t, a.WriteAny([]byte("left")))
	require.NoError(t, b.WriteAny([]byte("right")))
	assert.False(t, bytes.Equal(a.Sum(), b.Sum()))
}

func TestSumLength(t *testing.T) {
	assert.Len(t, New("test").Sum(), DigestLengthBytes)
}
