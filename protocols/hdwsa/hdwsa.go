// Package hdwsa implements a hierarchical wallet with unlinkable one-time
// verification keys.
//
// A wallet holds a scalar pair (α, β) with public key (A, B) = (α·g2, β·g1).
// Delegation derives a child wallet deterministically from an identity
// string, so an organization can hand out department or device wallets
// without any shared state beyond the parent secrets. Anyone knowing a
// wallet's public key can derive fresh one-time verification keys for it;
// only the wallet recognizes which keys are its own, and only it can derive
// the matching signing keys.
package hdwsa

import (
	"fmt"
	"io"

	"github.com/onetrace/tosa/pkg/hash"
	"github.com/onetrace/tosa/pkg/math/curve"
	"github.com/onetrace/tosa/pkg/math/sample"
	"github.com/onetrace/tosa/pkg/oracle"
	"github.com/onetrace/tosa/pkg/stealth"
)

// Params fixes the curve and hash suite shared by all wallets of a hierarchy.
type Params struct {
	group curve.PairingCurve
	suite *oracle.Suite
}

// NewParams returns the protocol parameters over BLS12-381.
func NewParams() *Params {
	group := curve.BLS12381{}
	return &Params{
		group: group,
		suite: oracle.NewSuite(group, "hdwsa"),
	}
}

// Group returns the pairing curve the parameters are defined over.
func (p *Params) Group() curve.PairingCurve { return p.group }

// PublicKey is a wallet's public key: A ∈ G2, B ∈ G1.
type PublicKey struct {
	group curve.PairingCurve
	A     curve.Point
	B     curve.Point
}

// Node is one wallet in the hierarchy, holding its secrets and its position.
// The root has an empty path.
type Node struct {
	group       curve.PairingCurve
	alpha, beta curve.Scalar
	pk          *PublicKey
	path        []string
}

// PublicKey returns the wallet's public key.
func (n *Node) PublicKey() *PublicKey { return n.pk }

// Path returns the identity strings from the root down to this wallet.
func (n *Node) Path() []string {
	out := make([]string, len(n.path))
	copy(out, n.path)
	return out
}

// Depth returns the number of delegations separating this wallet from the
// root.
func (n *Node) Depth() int { return len(n.path) }

// VerifyKey is a one-time verification key: a nonce point Qr ∈ G1 and a
// blinded commitment Qvk ∈ GT. It reveals nothing about the wallet it was
// derived for.
type VerifyKey struct {
	group curve.PairingCurve
	Qr    curve.Point
	Qvk   curve.Point
}

// SigningKey is the one-time signing key matching a single VerifyKey.
type SigningKey struct {
	group curve.PairingCurve
	Qr    curve.Point
	dsk   curve.Point
}

// Signature is a signature under a one-time verification key.
type Signature struct {
	group curve.PairingCurve
	H     curve.Scalar
	Q     curve.Point
}

func (p *Params) publicKeyFor(alpha, beta curve.Scalar) *PublicKey {
	return &PublicKey{
		group: p.group,
		A:     alpha.Act(p.group.NewG2BasePoint()),
		B:     beta.ActOnBase(),
	}
}

// RootKeyGen samples the root wallet of a new hierarchy.
func (p *Params) RootKeyGen(rand io.Reader) (*Node, error) {
	alpha := sample.Scalar(rand, p.group)
	beta := sample.Scalar(rand, p.group)
	return &Node{
		group: p.group,
		alpha: alpha,
		beta:  beta,
		pk:    p.publicKeyFor(alpha, beta),
	}, nil
}

// Delegate derives the child wallet for the given identity. The derivation
// is deterministic: delegating the same identity twice yields the same
// wallet, so a parent can re-issue a child without storing it.
func (p *Params) Delegate(parent *Node, id string) (*Node, error) {
	if id == "" {
		return nil, fmt.Errorf("hdwsa: empty identity")
	}
	Q := p.suite.Point("H0", p.group.NewBasePoint(), []byte(id))
	alpha := p.suite.Scalar("H1", Q, parent.alpha.Act(Q))
	beta := p.suite.Scalar("H2", Q, parent.beta.Act(Q))
	path := append(parent.Path(), id)
	return &Node{
		group: p.group,
		alpha: alpha,
		beta:  beta,
		pk:    p.publicKeyFor(alpha, beta),
		path:  path,
	}, nil
}

// blindedBase recomputes the hashed base point H3(B, Qr, β·Qr) that ties a
// verification key to the wallet's spend secret.
func (p *Params) blindedBase(pk *PublicKey, Qr, betaQr curve.Point) curve.Point {
	return p.suite.Point("H3", p.group.NewBasePoint(), pk.B, Qr, betaQr)
}

// VerifyKeyDerive derives a fresh one-time verification key for the wallet
// with public key pk. Anyone can run this; the wallet itself need not be
// online.
func (p *Params) VerifyKeyDerive(rand io.Reader, pk *PublicKey) (*VerifyKey, error) {
	if pk.A.IsIdentity() || pk.B.IsIdentity() {
		return nil, fmt.Errorf("hdwsa: wallet key: %w", stealth.ErrIdentityPoint)
	}
	r := sample.Scalar(rand, p.group)
	Qr := r.ActOnBase()
	base := p.blindedBase(pk, Qr, r.Act(pk.B))
	return &VerifyKey{
		group: p.group,
		Qr:    Qr,
		Qvk:   p.group.Pair(base, pk.A.Negate()),
	}, nil
}

// Recognize reports whether vk was derived for this wallet. Only the wallet
// can tell, since the check needs β.
func (p *Params) Recognize(n *Node, vk *VerifyKey) bool {
	if vk.Qr.IsIdentity() {
		return false
	}
	base := p.blindedBase(n.pk, vk.Qr, n.beta.Act(vk.Qr))
	return vk.Qvk.Equal(p.group.Pair(base, n.pk.A.Negate()))
}

// SigningKeyGen derives the signing key for vk. It fails with
// ErrNotRecipient when vk was not derived for this wallet.
func (p *Params) SigningKeyGen(n *Node, vk *VerifyKey) (*SigningKey, error) {
	if !p.Recognize(n, vk) {
		return nil, fmt.Errorf("hdwsa: %w", stealth.ErrNotRecipient)
	}
	base := p.blindedBase(n.pk, vk.Qr, n.beta.Act(vk.Qr))
	return &SigningKey{
		group: p.group,
		Qr:    vk.Qr,
		dsk:   n.alpha.Act(base),
	}, nil
}

func (p *Params) challenge(Qr curve.Point, msg []byte, gt curve.Point) curve.Scalar {
	h := hash.New("hdwsa-sign")
	_ = h.WriteAny(Qr, gt, msg)
	return curve.FromHash(p.group, h.Sum())
}

// Sign produces a signature on msg verifiable under the matching VerifyKey.
func (p *Params) Sign(rand io.Reader, key *SigningKey, msg []byte) (*Signature, error) {
	x := sample.Scalar(rand, p.group)
	gt := p.group.Pair(x.ActOnBase(), p.group.NewG2BasePoint())
	h := p.challenge(key.Qr, msg, gt)
	Q := h.Act(key.dsk).Add(x.ActOnBase())
	return &Signature{group: p.group, H: h, Q: Q}, nil
}

// Verify checks sig on msg under the one-time verification key alone.
func (p *Params) Verify(vk *VerifyKey, msg []byte, sig *Signature) bool {
	if sig.H.IsZero() || sig.Q.IsIdentity() {
		return false
	}
	prod := p.group.Pair(sig.Q, p.group.NewG2BasePoint()).Add(sig.H.Act(vk.Qvk))
	return p.challenge(vk.Qr, msg, prod).Equal(sig.H)
}
