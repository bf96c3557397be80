package hdwsa

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onetrace/tosa/pkg/stealth"
)

func TestDelegateDeterministic(t *testing.T) {
	p := NewParams()
	root, err := p.RootKeyGen(rand.Reader)
	require.NoError(t, err)

	a, err := p.Delegate(root, "accounting")
	require.NoError(t, err)
	b, err := p.Delegate(root, "accounting")
	require.NoError(t, err)

	assert.True(t, a.PublicKey().A.Equal(b.PublicKey().A))
	assert.True(t, a.PublicKey().B.Equal(b.PublicKey().B))
}

func TestDelegateDistinctIdentities(t *testing.T) {
	p := NewParams()
	root, err := p.RootKeyGen(rand.Reader)
	require.NoError(t, err)

	a, err := p.Delegate(root, "accounting")
	require.NoError(t, err)
	b, err := p.Delegate(root, "engineering")
	require.NoError(t, err)

	assert.False(t, a.PublicKey().A.Equal(b.PublicKey().A))
	assert.False(t, a.PublicKey().B.Equal(b.PublicKey().B))
}

func TestDelegateEmptyIdentity(t *testing.T) {
	p := NewParams()
	root, err := p.RootKeyGen(rand.Reader)
	require.NoError(t, err)

	_, err = p.Delegate(root, "")
	assert.Error(t, err)
}

func TestDelegateChain(t *testing.T) {
	p := NewParams()
	root, err := p.RootKeyGen(rand.Reader)
	require.NoError(t, err)
	assert.Equal(t, 0, root.Depth())

	dept, err := p.Delegate(root, "accounting")
	require.NoError(t, err)
	device, err := p.Delegate(dept, "laptop-3")
	require.NoError(t, err)

	assert.Equal(t, 2, device.Depth())
	assert.Equal(t, []string{"accounting", "laptop-3"}, device.Path())

	// The whole protocol works at any depth.
	vk, err := p.VerifyKeyDerive(rand.Reader, device.PublicKey())
	require.NoError(t, err)
	assert.True(t, p.Recognize(device, vk))
	assert.False(t, p.Recognize(dept, vk), "parent must not recognize a child's key")
	assert.False(t, p.Recognize(root, vk))
}

func TestRecognize(t *testing.T) {
	p := NewParams()
	alice, err := p.RootKeyGen(rand.Reader)
	require.NoError(t, err)
	bob, err := p.RootKeyGen(rand.Reader)
	require.NoError(t, err)

	vk, err := p.VerifyKeyDerive(rand.Reader, alice.PublicKey())
	require.NoError(t, err)

	assert.True(t, p.Recognize(alice, vk))
	assert.False(t, p.Recognize(bob, vk))
}

func TestVerifyKeysUnlinkable(t *testing.T) {
	p := NewParams()
	root, err := p.RootKeyGen(rand.Reader)
	require.NoError(t, err)

	a, err := p.VerifyKeyDerive(rand.Reader, root.PublicKey())
	require.NoError(t, err)
	b, err := p.VerifyKeyDerive(rand.Reader, root.PublicKey())
	require.NoError(t, err)

	assert.False(t, a.Qr.Equal(b.Qr))
	assert.False(t, a.Qvk.Equal(b.Qvk))
}

func TestSignVerify(t *testing.T) {
	p := NewParams()
	root, err := p.RootKeyGen(rand.Reader)
	require.NoError(t, err)
	vk, err := p.VerifyKeyDerive(rand.Reader, root.PublicKey())
	require.NoError(t, err)
	key, err := p.SigningKeyGen(root, vk)
	require.NoError(t, err)

	msg := []byte("approve transfer 42")
	sig, err := p.Sign(rand.Reader, key, msg)
	require.NoError(t, err)

	assert.True(t, p.Verify(vk, msg, sig))
	assert.False(t, p.Verify(vk, []byte("approve transfer 43"), sig))

	other, err := p.VerifyKeyDerive(rand.Reader, root.PublicKey())
	require.NoError(t, err)
	assert.False(t, p.Verify(other, msg, sig), "signature must bind to its verify key")
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	p := NewParams()
	root, err := p.RootKeyGen(rand.Reader)
	require.NoError(t, err)
	vk, err := p.VerifyKeyDerive(rand.Reader, root.PublicKey())
	require.NoError(t, err)
	key, err := p.SigningKeyGen(root, vk)
	require.NoError(t, err)

	msg := []byte("message")
	sig, err := p.Sign(rand.Reader, key, msg)
	require.NoError(t, err)

	tampered := *sig
	tampered.Q = sig.Q.Add(p.group.NewBasePoint())
	assert.False(t, p.Verify(vk, msg, &tampered))
}

func TestSigningKeyGenRejectsForeignKey(t *testing.T) {
	p := NewParams()
	alice, err := p.RootKeyGen(rand.Reader)
	require.NoError(t, err)
	bob, err := p.RootKeyGen(rand.Reader)
	require.NoError(t, err)

	vk, err := p.VerifyKeyDerive(rand.Reader, alice.PublicKey())
	require.NoError(t, err)

	_, err = p.SigningKeyGen(bob, vk)
	assert.True(t, errors.Is(err, stealth.ErrNotRecipient))
}

func TestDelegatedSigning(t *testing.T) {
	p := NewParams()
	root, err := p.RootKeyGen(rand.Reader)
	require.NoError(t, err)
	child, err := p.Delegate(root, "payments")
	require.NoError(t, err)

	vk, err := p.VerifyKeyDerive(rand.Reader, child.PublicKey())
	require.NoError(t, err)
	key, err := p.SigningKeyGen(child, vk)
	require.NoError(t, err)

	msg := []byte("delegated approval")
	sig, err := p.Sign(rand.Reader, key, msg)
	require.NoError(t, err)
	assert.True(t, p.Verify(vk, msg, sig))
}

func TestMarshalRoundTrips(t *testing.T) {
	p := NewParams()
	root, err := p.RootKeyGen(rand.Reader)
	require.NoError(t, err)
	child, err := p.Delegate(root, "payments")
	require.NoError(t, err)
	vk, err := p.VerifyKeyDerive(rand.Reader, child.PublicKey())
	require.NoError(t, err)

	data, err := child.MarshalBinary()
	require.NoError(t, err)
	restored := EmptyNode(p)
	require.NoError(t, restored.UnmarshalBinary(data))
	assert.Equal(t, []string{"payments"}, restored.Path())
	assert.True(t, restored.PublicKey().A.Equal(child.PublicKey().A))
	assert.True(t, p.Recognize(restored, vk))

	data, err = vk.MarshalBinary()
	require.NoError(t, err)
	vk2 := EmptyVerifyKey(p)
	require.NoError(t, vk2.UnmarshalBinary(data))
	assert.True(t, p.Recognize(child, vk2))

	key, err := p.SigningKeyGen(child, vk)
	require.NoError(t, err)
	sig, err := p.Sign(rand.Reader, key, []byte("msg"))
	require.NoError(t, err)
	data, err = sig.MarshalBinary()
	require.NoError(t, err)
	sig2 := EmptySignature(p)
	require.NoError(t, sig2.UnmarshalBinary(data))
	assert.True(t, p.Verify(vk, []byte("msg"), sig2))
}
