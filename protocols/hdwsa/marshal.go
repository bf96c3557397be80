package hdwsa

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/onetrace/tosa/pkg/math/curve"
	"github.com/onetrace/tosa/pkg/stealth"
)

type publicKeyCBOR struct {
	A []byte
	B []byte
}

type nodeCBOR struct {
	Alpha []byte
	Beta  []byte
	Path  []string
}

type verifyKeyCBOR struct {
	Qr  []byte
	Qvk []byte
}

type signingKeyCBOR struct {
	Qr  []byte
	DSK []byte
}

type signatureCBOR struct {
	H []byte
	Q []byte
}

// EmptyPublicKey returns a public key ready to be unmarshalled.
func EmptyPublicKey(p *Params) *PublicKey {
	return &PublicKey{
		group: p.group,
		A:     p.group.NewG2Point(),
		B:     p.group.NewPoint(),
	}
}

// EmptyNode returns a wallet ready to be unmarshalled.
func EmptyNode(p *Params) *Node {
	return &Node{
		group: p.group,
		alpha: p.group.NewScalar(),
		beta:  p.group.NewScalar(),
	}
}

// EmptyVerifyKey returns a verification key ready to be unmarshalled.
func EmptyVerifyKey(p *Params) *VerifyKey {
	return &VerifyKey{
		group: p.group,
		Qr:    p.group.NewPoint(),
		Qvk:   p.group.NewGTElement(),
	}
}

// EmptySigningKey returns a signing key ready to be unmarshalled.
func EmptySigningKey(p *Params) *SigningKey {
	return &SigningKey{
		group: p.group,
		Qr:    p.group.NewPoint(),
		dsk:   p.group.NewPoint(),
	}
}

// EmptySignature returns a signature ready to be unmarshalled.
func EmptySignature(p *Params) *Signature {
	return &Signature{
		group: p.group,
		H:     p.group.NewScalar(),
		Q:     p.group.NewPoint(),
	}
}

func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	a, err := pk.A.MarshalBinary()
	if err != nil {
		return nil, err
	}
	b, err := pk.B.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(publicKeyCBOR{A: a, B: b})
}

func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	var raw publicKeyCBOR
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := pk.A.UnmarshalBinary(raw.A); err != nil {
		return err
	}
	return pk.B.UnmarshalBinary(raw.B)
}

func (n *Node) MarshalBinary() ([]byte, error) {
	alpha, err := n.alpha.MarshalBinary()
	if err != nil {
		return nil, err
	}
	beta, err := n.beta.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(nodeCBOR{Alpha: alpha, Beta: beta, Path: n.path})
}

// UnmarshalBinary restores the wallet secrets and recomputes the public key.
func (n *Node) UnmarshalBinary(data []byte) error {
	var raw nodeCBOR
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := n.alpha.UnmarshalBinary(raw.Alpha); err != nil {
		return err
	}
	if err := n.beta.UnmarshalBinary(raw.Beta); err != nil {
		return err
	}
	if n.alpha.IsZero() || n.beta.IsZero() {
		return fmt.Errorf("hdwsa: wallet secrets: %w", stealth.ErrZeroScalar)
	}
	n.path = raw.Path
	group := n.alpha.Curve().(curve.PairingCurve)
	n.pk = &PublicKey{
		group: group,
		A:     n.alpha.Act(group.NewG2BasePoint()),
		B:     n.beta.ActOnBase(),
	}
	return nil
}

func (vk *VerifyKey) MarshalBinary() ([]byte, error) {
	qr, err := vk.Qr.MarshalBinary()
	if err != nil {
		return nil, err
	}
	qvk, err := vk.Qvk.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(verifyKeyCBOR{Qr: qr, Qvk: qvk})
}

func (vk *VerifyKey) UnmarshalBinary(data []byte) error {
	var raw verifyKeyCBOR
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := vk.Qr.UnmarshalBinary(raw.Qr); err != nil {
		return err
	}
	return vk.Qvk.UnmarshalBinary(raw.Qvk)
}

func (key *SigningKey) MarshalBinary() ([]byte, error) {
	qr, err := key.Qr.MarshalBinary()
	if err != nil {
		return nil, err
	}
	dsk, err := key.dsk.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(signingKeyCBOR{Qr: qr, DSK: dsk})
}

func (key *SigningKey) UnmarshalBinary(data []byte) error {
	var raw signingKeyCBOR
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := key.Qr.UnmarshalBinary(raw.Qr); err != nil {
		return err
	}
	return key.dsk.UnmarshalBinary(raw.DSK)
}

func (sig *Signature) MarshalBinary() ([]byte, error) {
	h, err := sig.H.MarshalBinary()
	if err != nil {
		return nil, err
	}
	q, err := sig.Q.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(signatureCBOR{H: h, Q: q})
}

func (sig *Signature) UnmarshalBinary(data []byte) error {
	var raw signatureCBOR
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := sig.H.UnmarshalBinary(raw.H); err != nil {
		return err
	}
	return sig.Q.UnmarshalBinary(raw.Q)
}
