package cryptonote

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/onetrace/tosa/pkg/stealth"
)

type publicKeyCBOR struct {
	A []byte
	B []byte
}

type secretKeyCBOR struct {
	A []byte
	B []byte
}

type addressCBOR struct {
	P []byte
	R []byte
}

type signingKeyCBOR struct {
	X []byte
}

type signatureCBOR struct {
	Z []byte
	R []byte
}

// EmptyPublicKey returns a public key ready to be unmarshalled.
func EmptyPublicKey(p *Params) *PublicKey {
	return &PublicKey{A: p.group.NewPoint(), B: p.group.NewPoint()}
}

// EmptySecretKey returns a secret key ready to be unmarshalled.
func EmptySecretKey(p *Params) *SecretKey {
	return &SecretKey{a: p.group.NewScalar(), b: p.group.NewScalar()}
}

// EmptyAddress returns an address ready to be unmarshalled.
func EmptyAddress(p *Params) *Address {
	return &Address{P: p.group.NewPoint(), R: p.group.NewPoint()}
}

// EmptySigningKey returns a signing key ready to be unmarshalled.
func EmptySigningKey(p *Params) *SigningKey {
	return &SigningKey{x: p.group.NewScalar()}
}

// EmptySignature returns a signature ready to be unmarshalled.
func EmptySignature(p *Params) *Signature {
	return &Signature{Z: p.group.NewScalar(), R: p.group.NewPoint()}
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

func (sk *SecretKey) MarshalBinary() ([]byte, error) {
	a, err := sk.a.MarshalBinary()
	if err != nil {
		return nil, err
	}
	b, err := sk.b.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(secretKeyCBOR{A: a, B: b})
}

// UnmarshalBinary restores the secret scalars and recomputes the public key.
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
		return fmt.Errorf("cryptonote: secret key: %w", stealth.ErrZeroScalar)
	}
	sk.pk = &PublicKey{A: sk.a.ActOnBase(), B: sk.b.ActOnBase()}
	return nil
}

func (a *Address) MarshalBinary() ([]byte, error) {
	pBytes, err := a.P.MarshalBinary()
	if err != nil {
		return nil, err
	}
	rBytes, err := a.R.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(addressCBOR{P: pBytes, R: rBytes})
}

func (a *Address) UnmarshalBinary(data []byte) error {
	var raw addressCBOR
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := a.P.UnmarshalBinary(raw.P); err != nil {
		return err
	}
	return a.R.UnmarshalBinary(raw.R)
}

func (key *SigningKey) MarshalBinary() ([]byte, error) {
	x, err := key.x.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(signingKeyCBOR{X: x})
}

func (key *SigningKey) UnmarshalBinary(data []byte) error {
	var raw signingKeyCBOR
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	return key.x.UnmarshalBinary(raw.X)
}

func (sig *Signature) MarshalBinary() ([]byte, error) {
	z, err := sig.Z.MarshalBinary()
	if err != nil {
		return nil, err
	}
	r, err := sig.R.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(signatureCBOR{Z: z, R: r})
}

func (sig *Signature) UnmarshalBinary(data []byte) error {
	var raw signatureCBOR
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := sig.Z.UnmarshalBinary(raw.Z); err != nil {
		return err
	}
	return sig.R.UnmarshalBinary(raw.R)
}
