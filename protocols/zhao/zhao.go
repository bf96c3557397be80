// Package zhao implements a traceable one-time address scheme over
// secp256k1, with no pairings.
//
// Three parties hold ordinary dual key pairs: the sender, the recipient, and
// a tracing authority whose public view key doubles as the tracing key. The
// sender authenticates address generation with their own view secret, and
// publishes a scalar nonce alongside the one-time key, so the recipient can
// rebuild the shared secret from the sender's public key. The tracing
// authority can strip the masking from any published address and recover the
// recipient's spend key, without help from either party.
package zhao

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
		suite: oracle.NewSuite(group, "zhao"),
	}
}

// Group returns the curve the parameters are defined over.
func (p *Params) Group() curve.Curve { return p.group }

// PublicKey is a party's key pair (A, B), view key first. The tracing
// authority only ever uses its view half.
type PublicKey struct {
	A curve.Point
	B curve.Point
}

// SecretKey holds the view and spend secrets of one party.
type SecretKey struct {
	a, b curve.Scalar
	pk   *PublicKey
}

// PublicKey returns the public part of the key.
func (sk *SecretKey) PublicKey() *PublicKey { return sk.pk }

// Address is a published one-time output: the one-time key P, the masking
// point R, and the sender's published scalar nonce.
type Address struct {
	P     curve.Point
	R     curve.Point
	Nonce curve.Scalar
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

// KeyGen samples a key pair. The same shape serves senders, recipients, and
// the tracing authority.
func (p *Params) KeyGen(rand io.Reader) (*SecretKey, error) {
	a := sample.Scalar(rand, p.group)
	b := sample.Scalar(rand, p.group)
	return &SecretKey{
		a:  a,
		b:  b,
		pk: &PublicKey{A: a.ActOnBase(), B: b.ActOnBase()},
	}, nil
}

// AddressGen derives a one-time address from the sender's view secret, the
// recipient's public key, and the tracer's public view key.
func (p *Params) AddressGen(rand io.Reader, sender *SecretKey, recipient *PublicKey, tracer curve.Point) (*Address, error) {
	if recipient.A.IsIdentity() || recipient.B.IsIdentity() {
		return nil, fmt.Errorf("zhao: recipient key: %w", stealth.ErrIdentityPoint)
	}
	if tracer.IsIdentity() {
		return nil, fmt.Errorf("zhao: tracer key: %w", stealth.ErrIdentityPoint)
	}
	nonce := sample.Scalar(rand, p.group)
	r2 := p.suite.Scalar("H1", nonce, sender.a.Act(recipient.A))
	R := r2.ActOnBase()
	r3 := p.suite.Scalar("H2", r2.Act(tracer))
	return &Address{
		P:     r3.ActOnBase().Add(R).Add(recipient.B),
		R:     R,
		Nonce: nonce,
	}, nil
}

// maskingScalars recomputes (r2, r3) from the recipient's view secret, the
// sender's public view key, and the tracer's public view key.
func (p *Params) maskingScalars(sk *SecretKey, sender, tracer curve.Point, addr *Address) (r2, r3 curve.Scalar) {
	r2 = p.suite.Scalar("H1", addr.Nonce, sk.a.Act(sender))
	r3 = p.suite.Scalar("H2", r2.Act(tracer))
	return
}

// Recognize reports whether addr was generated for sk by the holder of the
// sender key. Both the masking point and the one-time key must match.
func (p *Params) Recognize(sk *SecretKey, sender, tracer curve.Point, addr *Address) bool {
	if addr.R.IsIdentity() || addr.Nonce.IsZero() {
		return false
	}
	r2, r3 := p.maskingScalars(sk, sender, tracer, addr)
	if !addr.R.Equal(r2.ActOnBase()) {
		return false
	}
	return addr.P.Equal(r3.ActOnBase().Add(addr.R).Add(sk.pk.B))
}

// SigningKeyGen derives the one-time secret x = r3 + r2 + b. It fails with
// ErrNotRecipient when addr does not belong to sk.
func (p *Params) SigningKeyGen(sk *SecretKey, sender, tracer curve.Point, addr *Address) (*SigningKey, error) {
	if !p.Recognize(sk, sender, tracer, addr) {
		return nil, fmt.Errorf("zhao: %w", stealth.ErrNotRecipient)
	}
	r2, r3 := p.maskingScalars(sk, sender, tracer, addr)
	x := r3.Add(r2).Add(sk.b)
	return &SigningKey{x: x}, nil
}

// Trace recovers the recipient's spend key B from a published address, using
// the tracing authority's view secret alone.
func (p *Params) Trace(tracer *SecretKey, addr *Address) (curve.Point, error) {
	if addr.R.IsIdentity() {
		return nil, fmt.Errorf("zhao: malformed address: %w", stealth.ErrIdentityPoint)
	}
	r3 := p.suite.Scalar("H2", tracer.a.Act(addr.R))
	B := addr.P.Sub(r3.ActOnBase()).Sub(addr.R)
	if B.IsIdentity() {
		return nil, fmt.Errorf("zhao: traced key: %w", stealth.ErrIdentityPoint)
	}
	return B, nil
}

func (p *Params) challenge(P, R curve.Point, msg []byte) curve.Scalar {
	h := hash.New("zhao-sign")
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
