package sitaiba

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/onetrace/tosa/pkg/math/curve"
	"github.com/onetrace/tosa/pkg/stealth"
)

// The CBOR mirrors below hold the compressed encodings of each component.
// Unmarshaling goes through the Empty* constructors so the destination
// carries the right group before any bytes are decoded.

type publicKeyCBOR struct {
	A []byte
	B []byte
}

type secretKeyCBOR struct {
	A []byte
	B []byte
}

type tracerPublicKeyCBOR struct {
	TK []byte
}

type tracerSecretKeyCBOR struct {
	K []byte
}

type addressCBOR struct {
	Addr []byte
	R1   []byte
	R2   []byte
	C    []byte
}

type signingKeyCBOR struct {
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
		A:     p.group.NewPoint(),
		B:     p.group.NewG2Point(),
	}
}

// EmptySecretKey returns a secret key ready to be unmarshalled.
func EmptySecretKey(p *Params) *SecretKey {
	return &SecretKey{
		a: p.group.NewScalar(),
		b: p.group.NewScalar(),
	}
}

// EmptyTracerPublicKey returns a tracer public key ready to be unmarshalled.
func EmptyTracerPublicKey(p *Params) *TracerPublicKey {
	return &TracerPublicKey{
		group: p.group,
		TK:    p.group.NewG2Point(),
	}
}

// EmptyTracerSecretKey returns a tracer secret key ready to be unmarshalled.
func EmptyTracerSecretKey(p *Params) *TracerSecretKey {
	return &TracerSecretKey{k: p.group.NewScalar()}
}

// EmptyAddress returns an address bundle ready to be unmarshalled.
func EmptyAddress(p *Params) *Address {
	return &Address{
		group: p.group,
		Addr:  p.group.NewG2Point(),
		R1:    p.group.NewPoint(),
		R2:    p.group.NewG2Point(),
		C:     p.group.NewG2Point(),
	}
}

// EmptySigningKey returns a signing key ready to be unmarshalled.
func EmptySigningKey(p *Params) *SigningKey {
	return &SigningKey{
		group: p.group,
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

func marshalAll(elements ...interface {
	MarshalBinary() ([]byte, error)
}) ([][]byte, error) {
	out := make([][]byte, len(elements))
	for i, e := range elements {
		data, err := e.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}

func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	raw, err := marshalAll(pk.A, pk.B)
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(publicKeyCBOR{A: raw[0], B: raw[1]})
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

func (sk *SecretKey) MarshalBinary() ([]byte, error) {
	raw, err := marshalAll(sk.a, sk.b)
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(secretKeyCBOR{A: raw[0], B: raw[1]})
}

// UnmarshalBinary restores the secret scalars and recomputes the public key,
// so a deserialized secret key never disagrees with its public half.
func (sk *SecretKey) UnmarshalBinary(data []byte) error {
	var raw secretKeyCBOR
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := sk.a.UnmarshalBinary(raw.A); err != nil {
		return err
	}
	if err := sk.b.UnmarshalBinary(raw.B); err != nil {
		return err
	}
	if sk.a.IsZero() || sk.b.IsZero() {
		return fmt.Errorf("sitaiba: secret key: %w", stealth.ErrZeroScalar)
	}
	group := sk.a.Curve().(curve.PairingCurve)
	sk.pk = &PublicKey{
		group: group,
		A:     sk.a.ActOnBase(),
		B:     sk.b.Act(group.NewG2BasePoint()),
	}
	return nil
}

func (tpk *TracerPublicKey) MarshalBinary() ([]byte, error) {
	raw, err := tpk.TK.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(tracerPublicKeyCBOR{TK: raw})
}

func (tpk *TracerPublicKey) UnmarshalBinary(data []byte) error {
	var raw tracerPublicKeyCBOR
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	return tpk.TK.UnmarshalBinary(raw.TK)
}

func (tsk *TracerSecretKey) MarshalBinary() ([]byte, error) {
	raw, err := tsk.k.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(tracerSecretKeyCBOR{K: raw})
}

func (tsk *TracerSecretKey) UnmarshalBinary(data []byte) error {
	var raw tracerSecretKeyCBOR
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := tsk.k.UnmarshalBinary(raw.K); err != nil {
		return err
	}
	if tsk.k.IsZero() {
		return fmt.Errorf("sitaiba: tracer secret key: %w", stealth.ErrZeroScalar)
	}
	group := tsk.k.Curve().(curve.PairingCurve)
	tsk.pk = &TracerPublicKey{
		group: group,
		TK:    tsk.k.Act(group.NewG2BasePoint()),
	}
	return nil
}

func (a *Address) MarshalBinary() ([]byte, error) {
	raw, err := marshalAll(a.Addr, a.R1, a.R2, a.C)
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(addressCBOR{Addr: raw[0], R1: raw[1], R2: raw[2], C: raw[3]})
}

func (a *Address) UnmarshalBinary(data []byte) error {
	var raw addressCBOR
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := a.Addr.UnmarshalBinary(raw.Addr); err != nil {
		return err
	}
	if err := a.R1.UnmarshalBinary(raw.R1); err != nil {
		return err
	}
	if err := a.R2.UnmarshalBinary(raw.R2); err != nil {
		return err
	}
	return a.C.UnmarshalBinary(raw.C)
}

func (key *SigningKey) MarshalBinary() ([]byte, error) {
	raw, err := key.dsk.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(signingKeyCBOR{DSK: raw})
}

func (key *SigningKey) UnmarshalBinary(data []byte) error {
	var raw signingKeyCBOR
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	return key.dsk.UnmarshalBinary(raw.DSK)
}

func (sig *Signature) MarshalBinary() ([]byte, error) {
	raw, err := marshalAll(sig.H, sig.Q)
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(signatureCBOR{H: raw[0], Q: raw[1]})
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
