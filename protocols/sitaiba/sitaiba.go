// Package sitaiba implements a traceable one-time address protocol over a
// pairing-friendly curve.
//
// A recipient publishes a long-term key pair (A, B). For every payment the
// sender derives a fresh one-time address that only the recipient can
// recognize and spend from, while a designated tracing authority, and nobody
// else, can strip the masking and recover the recipient's long-term spend key
// from the address alone.
//
// View keys live in G1 and spend keys in G2, so that the pairings in address
// generation, verification, and tracing all type check on an asymmetric
// curve.
package sitaiba

import (
	"fmt"
	"io"

	"github.com/onetrace/tosa/pkg/hash"
	"github.com/onetrace/tosa/pkg/math/curve"
	"github.com/onetrace/tosa/pkg/math/sample"
	"github.com/onetrace/tosa/pkg/oracle"
	"github.com/onetrace/tosa/pkg/stealth"
)

// Params fixes the curve and the hash suite shared by all participants.
type Params struct {
	group curve.PairingCurve
	suite *oracle.Suite
}

// NewParams returns the protocol parameters over BLS12-381.
func NewParams() *Params {
	group := curve.BLS12381{}
	return &Params{
		group: group,
		suite: oracle.NewSuite(group, "sitaiba"),
	}
}

// Group returns the pairing curve the parameters are defined over.
func (p *Params) Group() curve.PairingCurve { return p.group }

// PublicKey is a recipient's long-term public key.
//
// A is the view component in G1, B the spend component in G2.
type PublicKey struct {
	group curve.PairingCurve
	A     curve.Point
	B     curve.Point
}

// SecretKey holds a recipient's long-term secrets together with the matching
// public key.
type SecretKey struct {
	a, b curve.Scalar
	pk   *PublicKey
}

// PublicKey returns the public part of the key.
func (sk *SecretKey) PublicKey() *PublicKey { return sk.pk }

// TracerPublicKey is the tracing authority's public key TK ∈ G2.
type TracerPublicKey struct {
	group curve.PairingCurve
	TK    curve.Point
}

// TracerSecretKey is the tracing authority's secret.
type TracerSecretKey struct {
	k  curve.Scalar
	pk *TracerPublicKey
}

// PublicKey returns the tracer's public key.
func (tsk *TracerSecretKey) PublicKey() *TracerPublicKey { return tsk.pk }

// Address is a one-time address bundle as published on chain.
//
// Addr, R2 and C are in G2, R1 in G1. R1 and R2 let owners recognize the
// address and let the tracer undo the masking; C binds the recipient's spend
// key into verification.
type Address struct {
	group curve.PairingCurve
	Addr  curve.Point
	R1    curve.Point
	R2    curve.Point
	C     curve.Point
}

// SigningKey is the one-time secret that spends from a single address.
type SigningKey struct {
	group curve.PairingCurve
	dsk   curve.Point
}

// Signature is a signature under a one-time address.
type Signature struct {
	group curve.PairingCurve
	H     curve.Scalar
	Q     curve.Point
}

// KeyGen samples a long-term recipient key pair.
func (p *Params) KeyGen(rand io.Reader) (*SecretKey, error) {
	a := sample.Scalar(rand, p.group)
	b := sample.Scalar(rand, p.group)
	pk := &PublicKey{
		group: p.group,
		A:     a.ActOnBase(),
		B:     b.Act(p.group.NewG2BasePoint()),
	}
	return &SecretKey{a: a, b: b, pk: pk}, nil
}

// TracerKeyGen samples the tracing authority's key pair.
func (p *Params) TracerKeyGen(rand io.Reader) (*TracerSecretKey, error) {
	k := sample.Scalar(rand, p.group)
	pk := &TracerPublicKey{
		group: p.group,
		TK:    k.Act(p.group.NewG2BasePoint()),
	}
	return &TracerSecretKey{k: k, pk: pk}, nil
}

// AddressGen derives a fresh one-time address for the recipient pk, bound to
// the tracing key tpk. Every call consumes fresh randomness, so two addresses
// for the same recipient are unlinkable.
func (p *Params) AddressGen(rand io.Reader, pk *PublicKey, tpk *TracerPublicKey) (*Address, error) {
	if pk.A.IsIdentity() || pk.B.IsIdentity() {
		return nil, fmt.Errorf("sitaiba: recipient key: %w", stealth.ErrIdentityPoint)
	}
	if tpk.TK.IsIdentity() {
		return nil, fmt.Errorf("sitaiba: tracer key: %w", stealth.ErrIdentityPoint)
	}

	r := sample.Scalar(rand, p.group)
	R1 := r.ActOnBase()
	r2 := p.suite.Scalar("H1", r.Act(pk.A))
	R2 := r2.Act(p.group.NewG2BasePoint())
	C := r2.Act(pk.B)

	// The tracer hint e(R1, TK)^r2 equals e(R1, R2)^k, which is what Trace
	// recomputes from its own secret.
	hint := r2.Act(p.group.Pair(R1, tpk.TK))
	R3 := p.suite.Point("H2", p.group.NewG2BasePoint(), hint)

	return &Address{
		group: p.group,
		Addr:  R3.Add(pk.B).Add(C),
		R1:    R1,
		R2:    R2,
		C:     C,
	}, nil
}

// maskingScalar recomputes r2 from the recipient's view secret.
func (p *Params) maskingScalar(sk *SecretKey, addr *Address) curve.Scalar {
	return p.suite.Scalar("H1", sk.a.Act(addr.R1))
}

// Recognize reports whether addr belongs to sk, checking the full bundle:
// R2, the commitment C, and the masked address itself must all be consistent
// with the recomputed masking scalar.
func (p *Params) Recognize(sk *SecretKey, tpk *TracerPublicKey, addr *Address) bool {
	if addr.R1.IsIdentity() {
		return false
	}
	r2 := p.maskingScalar(sk, addr)
	if !addr.R2.Equal(r2.Act(p.group.NewG2BasePoint())) {
		return false
	}
	if !addr.C.Equal(r2.Act(sk.pk.B)) {
		return false
	}
	hint := r2.Act(p.group.Pair(addr.R1, tpk.TK))
	R3 := p.suite.Point("H2", p.group.NewG2BasePoint(), hint)
	return addr.Addr.Equal(R3.Add(sk.pk.B).Add(addr.C))
}

// FastRecognize is the pairing-free scan predicate: it checks only that R2
// matches the recomputed masking scalar. Suitable for filtering large
// batches; positives should be confirmed with Recognize before spending.
func (p *Params) FastRecognize(sk *SecretKey, addr *Address) bool {
	if addr.R1.IsIdentity() {
		return false
	}
	r2 := p.maskingScalar(sk, addr)
	return addr.R2.Equal(r2.Act(p.group.NewG2BasePoint()))
}

// SigningKeyGen derives the one-time signing key for addr. It fails with
// ErrNotRecipient when addr does not belong to sk.
func (p *Params) SigningKeyGen(sk *SecretKey, addr *Address) (*SigningKey, error) {
	if !p.FastRecognize(sk, addr) {
		return nil, fmt.Errorf("sitaiba: %w", stealth.ErrNotRecipient)
	}
	r2 := p.maskingScalar(sk, addr)
	exp := p.group.NewScalar().Set(sk.b).Mul(r2)
	base := p.suite.Point("H3", p.group.NewBasePoint(), addr.Addr)
	return &SigningKey{group: p.group, dsk: exp.Act(base)}, nil
}

// challenge is the Fiat-Shamir challenge binding the address, the message,
// and the commitment X ∈ GT.
func (p *Params) challenge(addr *Address, msg []byte, X curve.Point) curve.Scalar {
	h := hash.New("sitaiba-sign")
	_ = h.WriteAny(addr.Addr, X, msg)
	return curve.FromHash(p.group, h.Sum())
}

// Sign produces a signature on msg spendable only with addr's signing key.
func (p *Params) Sign(rand io.Reader, key *SigningKey, addr *Address, msg []byte) (*Signature, error) {
	x := sample.Scalar(rand, p.group)
	X := p.group.Pair(x.ActOnBase(), p.group.NewG2BasePoint())
	h := p.challenge(addr, msg, X)
	Q := x.ActOnBase().Sub(h.Act(key.dsk))
	return &Signature{group: p.group, H: h, Q: Q}, nil
}

// Verify checks sig on msg against the address alone; the verifier never
// learns which long-term key stands behind it.
func (p *Params) Verify(addr *Address, msg []byte, sig *Signature) bool {
	if sig.H.IsZero() || sig.Q.IsIdentity() {
		return false
	}
	base := p.suite.Point("H3", p.group.NewBasePoint(), addr.Addr)
	X := p.group.Pair(sig.Q, p.group.NewG2BasePoint()).
		Add(sig.H.Act(p.group.Pair(base, addr.C)))
	return p.challenge(addr, msg, X).Equal(sig.H)
}

// Trace recovers the recipient's long-term spend key B from an address,
// using only the tracer's secret. The result identifies the recipient.
func (p *Params) Trace(tsk *TracerSecretKey, addr *Address) (curve.Point, error) {
	if addr.R1.IsIdentity() || addr.R2.IsIdentity() {
		return nil, fmt.Errorf("sitaiba: malformed address: %w", stealth.ErrIdentityPoint)
	}
	hint := tsk.k.Act(p.group.Pair(addr.R1, addr.R2))
	R3 := p.suite.Point("H2", p.group.NewG2BasePoint(), hint)
	B := addr.Addr.Sub(R3).Sub(addr.C)
	if B.IsIdentity() {
		return nil, fmt.Errorf("sitaiba: traced key: %w", stealth.ErrIdentityPoint)
	}
	return B, nil
}
