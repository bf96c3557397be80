package cryptonote

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onetrace/tosa/pkg/pool"
	"github.com/onetrace/tosa/pkg/stealth"
)

func TestRecognizeOwnAddress(t *testing.T) {
	p := NewParams()
	sk, err := p.KeyGen(rand.Reader)
	require.NoError(t, err)

	addr, err := p.AddressGen(rand.Reader, sk.PublicKey())
	require.NoError(t, err)
	assert.True(t, p.Recognize(sk, addr))
}

func TestRecognizeSoundness(t *testing.T) {
	p := NewParams()
	sk, err := p.KeyGen(rand.Reader)
	require.NoError(t, err)

	for i := 0; i < 32; i++ {
		other, err := p.KeyGen(rand.Reader)
		require.NoError(t, err)
		addr, err := p.AddressGen(rand.Reader, other.PublicKey())
		require.NoError(t, err)
		assert.False(t, p.Recognize(sk, addr))
	}
}

func TestSigningKeyConsistency(t *testing.T) {
	p := NewParams()
	sk, err := p.KeyGen(rand.Reader)
	require.NoError(t, err)
	addr, err := p.AddressGen(rand.Reader, sk.PublicKey())
	require.NoError(t, err)

	key, err := p.SigningKeyGen(sk, addr)
	require.NoError(t, err)
	assert.True(t, key.PublicPoint().Equal(addr.P),
		"the one-time secret must be the discrete log of P")
}

func TestSigningKeyGenRejectsForeignAddress(t *testing.T) {
	p := NewParams()
	sk, err := p.KeyGen(rand.Reader)
	require.NoError(t, err)
	other, err := p.KeyGen(rand.Reader)
	require.NoError(t, err)
	addr, err := p.AddressGen(rand.Reader, other.PublicKey())
	require.NoError(t, err)

	_, err = p.SigningKeyGen(sk, addr)
	assert.True(t, errors.Is(err, stealth.ErrNotRecipient))
}

func TestAddressesUnlinkable(t *testing.T) {
	p := NewParams()
	sk, err := p.KeyGen(rand.Reader)
	require.NoError(t, err)

	a, err := p.AddressGen(rand.Reader, sk.PublicKey())
	require.NoError(t, err)
	b, err := p.AddressGen(rand.Reader, sk.PublicKey())
	require.NoError(t, err)
	assert.False(t, a.P.Equal(b.P))
	assert.False(t, a.R.Equal(b.R))
}

func TestSignVerify(t *testing.T) {
	p := NewParams()
	sk, err := p.KeyGen(rand.Reader)
	require.NoError(t, err)
	addr, err := p.AddressGen(rand.Reader, sk.PublicKey())
	require.NoError(t, err)
	key, err := p.SigningKeyGen(sk, addr)
	require.NoError(t, err)

	msg := []byte("spend output 7")
	sig, err := p.Sign(rand.Reader, key, msg)
	require.NoError(t, err)

	assert.True(t, p.Verify(addr.P, msg, sig))
	assert.False(t, p.Verify(addr.P, []byte("spend output 8"), sig))

	other, err := p.AddressGen(rand.Reader, sk.PublicKey())
	require.NoError(t, err)
	assert.False(t, p.Verify(other.P, msg, sig))
}

func TestScanBatch(t *testing.T) {
	p := NewParams()
	sk, err := p.KeyGen(rand.Reader)
	require.NoError(t, err)
	other, err := p.KeyGen(rand.Reader)
	require.NoError(t, err)

	const n = 64
	addrs := make([]*Address, n)
	var expected []int
	for i := range addrs {
		recipient := other.PublicKey()
		if i%5 == 0 {
			recipient = sk.PublicKey()
			expected = append(expected, i)
		}
		addrs[i], err = p.AddressGen(rand.Reader, recipient)
		require.NoError(t, err)
	}

	workers := pool.NewPool(0)
	defer workers.TearDown()
	owned := stealth.Scan(workers, n, func(i int) bool {
		return p.Recognize(sk, addrs[i])
	})
	assert.Equal(t, expected, owned)
}

func TestMarshalRoundTrips(t *testing.T) {
	p := NewParams()
	sk, err := p.KeyGen(rand.Reader)
	require.NoError(t, err)
	addr, err := p.AddressGen(rand.Reader, sk.PublicKey())
	require.NoError(t, err)

	data, err := addr.MarshalBinary()
	require.NoError(t, err)
	addr2 := EmptyAddress(p)
	require.NoError(t, addr2.UnmarshalBinary(data))
	assert.True(t, p.Recognize(sk, addr2))

	data, err = sk.MarshalBinary()
	require.NoError(t, err)
	sk2 := EmptySecretKey(p)
	require.NoError(t, sk2.UnmarshalBinary(data))
	assert.True(t, sk2.PublicKey().A.Equal(sk.PublicKey().A))
	assert.True(t, p.Recognize(sk2, addr))
}
