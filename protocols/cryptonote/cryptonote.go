// Package cryptonote implements the baseline dual-key one-time address
// scheme over secp256k1.
//
// A recipient publishes a view key A = a·G and a spend key B = b·G. The
// sender picks a fresh nonce r and derives the one-time key
// P = H1(r·A)·G + B, publishing (P, R = r·G). Only the holder of a can
// recognize P, and only the holder of both a and b can compute the discrete
// logarithm of P. The scheme has no tracing authority; recognition and
// scanning are the same single-equation check.
package cryptonote

import (
	"fmt"
	"io"

	"github.com/onetrace/tosa/pkg/hash"
	"github.com/onetrace/tosa/pkg/math/curve"
	"github.com/onetrace/tosa/pkg/math/sample"
	"github.com/onetrace/tosa/pkg/oracle"
	"github.com/onetrace/tosa/pkg/stealth"
)

// Params fixes the curve and hash suite.
type Params struct {
	group curve.Curve
	suite *oracle.Suite
}

// NewParams returns the protocol parameters over secp256k1.
func NewParams() *Params {
	group := curve.Secp256k1{}
	return &Params{
		group: group,
		suite: oracle.NewSuite(group, "cryptonote"),
	}
}

// Group returns the curve the parameters are defined over.
func (p *Params) Group() curve.Curve { return p.group }

// PublicKey is a recipient's long-term key pair (A, B), view key first.
type PublicKey struct {
	A curve.Point
	B curve.Point
}

// SecretKey holds the view and spend secrets.
type SecretKey struct {
	a, b curve.Scalar
	pk   *PublicKey
}

// PublicKey returns the public part of the key.
func (sk *SecretKey) PublicKey() *PublicKey { return sk.pk }

// Address is a published one-time output: the one-time key P and the
// sender's nonce point R.
type Address struct {
	P curve.Point
	R curve.Point
}

// SigningKey is the one-time secret scalar x with x·G = P.
type SigningKey struct {
	x curve.Scalar
}

// PublicPoint returns x·G, which equals the address's one-time key.
func (key *SigningKey) PublicPoint() curve.Point { return key.x.ActOnBase() }

// Signature is a Schnorr signature under a one-time key.
type Signature struct {
	Z curve.Scalar
	R curve.Point
}

// KeyGen samples a long-term recipient key pair.
func (p *Params) KeyGen(rand io.Reader) (*SecretKey, error) {
	a := sample.Scalar(rand, p.group)
	b := sample.Scalar(rand, p.group)
	return &SecretKey{
		a:  a,
		b:  b,
		pk: &PublicKey{A: a.ActOnBase(), B: b.ActOnBase()},
	}, nil
}

// AddressGen derives a fresh one-time address for the recipient pk.
func (p *Params) AddressGen(rand io.Reader, pk *PublicKey) (*Address, error) {
	if pk.A.IsIdentity() || pk.B.IsIdentity() {
		return nil, fmt.Errorf("cryptonote: recipient key: %w", stealth.ErrIdentityPoint)
	}
	r := sample.Scalar(rand, p.group)
	shared := p.suite.Scalar("H1", r.Act(pk.A))
	return &Address{
		P: shared.ActOnBase().Add(pk.B),
		R: r.ActOnBase(),
	}, nil
}

// Recognize reports whether addr belongs to sk. This is already the cheapest
// possible scan predicate for the scheme.
func (p *Params) Recognize(sk *SecretKey, addr *Address) bool {
	if addr.R.IsIdentity() {
		return false
	}
	shared := p.suite.Scalar("H1", sk.a.Act(addr.R))
	return addr.P.Equal(shared.ActOnBase().Add(sk.pk.B))
}

// SigningKeyGen derives the one-time secret x = H1(a·R) + b. It fails with
// ErrNotRecipient when addr does not belong to sk.
func (p *Params) SigningKeyGen(sk *SecretKey, addr *Address) (*SigningKey, error) {
	if !p.Recognize(sk, addr) {
		return nil, fmt.Errorf("cryptonote: %w", stealth.ErrNotRecipient)
	}
	x := p.suite.Scalar("H1", sk.a.Act(addr.R)).Add(sk.b)
	return &SigningKey{x: x}, nil
}

func (p *Params) challenge(P, R curve.Point, msg []byte) curve.Scalar {
	h := hash.New("cryptonote-sign")
	_ = h.WriteAny(P, R, msg)
	return curve.FromHash(p.group, h.Sum())
}

// Sign produces a Schnorr signature on msg under the one-time key.
func (p *Params) Sign(rand io.Reader, key *SigningKey, msg []byte) (*Signature, error) {
	k := sample.Scalar(rand, p.group)
	R := k.ActOnBase()
	e := p.challenge(key.PublicPoint(), R, msg)
	z := p.group.NewScalar().Set(e).Mul(key.x).Add(k)
	return &Signature{Z: z, R: R}, nil
}

// Verify checks sig on msg against the one-time key P of an address.
func (p *Params) Verify(P curve.Point, msg []byte, sig *Signature) bool {
	if sig.Z.IsZero() || sig.R.IsIdentity() {
		return false
	}
	e := p.challenge(P, sig.R, msg)
	return sig.Z.ActOnBase().Equal(sig.R.Add(e.Act(P)))
}
