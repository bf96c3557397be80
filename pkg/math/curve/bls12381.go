package curve

import (
	"fmt"
	"sync"

	bls "github.com/cloudflare/circl/ecc/bls12381"
	"github.com/cronokirby/saferith"
)

// BLS12381 is the BLS12-381 pairing curve. The Curve methods describe G1;
// G2 and GT are reached through the PairingCurve methods.
type BLS12381 struct{}

func (BLS12381) Name() string { return "bls12381" }

func (BLS12381) NewScalar() Scalar { return new(bls12381Scalar) }

func (BLS12381) NewPoint() Point {
	out := new(bls12381G1Point)
	out.value.SetIdentity()
	return out
}

func (BLS12381) NewBasePoint() Point {
	out := new(bls12381G1Point)
	out.value = *bls.G1Generator()
	return out
}

func (BLS12381) NewG2Point() Point {
	out := new(bls12381G2Point)
	out.value.SetIdentity()
	return out
}

func (BLS12381) NewG2BasePoint() Point {
	out := new(bls12381G2Point)
	out.value = *bls.G2Generator()
	return out
}

func (BLS12381) NewGTElement() Point {
	out := new(bls12381GTElement)
	out.value.SetIdentity()
	return out
}

// Pair evaluates the optimal Ate pairing. It panics unless p ∈ G1, q ∈ G2.
func (BLS12381) Pair(p, q Point) Point {
	g1 := bls12381CastG1(p)
	g2 := bls12381CastG2(q)
	out := new(bls12381GTElement)
	out.value = *bls.Pair(&g1.value, &g2.value)
	return out
}

func (BLS12381) ScalarBytes() int { return 32 }

var (
	bls12381OrderOnce sync.Once
	bls12381Order     *saferith.Modulus
)

func (BLS12381) Order() *saferith.Modulus {
	bls12381OrderOnce.Do(func() {
		bls12381Order = saferith.ModulusFromBytes(bls.Order())
	})
	return bls12381Order
}

type bls12381Scalar struct {
	value bls.Scalar
}

func bls12381CastScalar(generic Scalar) *bls12381Scalar {
	out, ok := generic.(*bls12381Scalar)
	if !ok {
		panic(fmt.Sprintf("failed to convert to bls12381Scalar: %v", generic))
	}
	return out
}

func (s *bls12381Scalar) Curve() Curve { return BLS12381{} }

func (s *bls12381Scalar) MarshalBinary() ([]byte, error) {
	return s.value.MarshalBinary()
}

func (s *bls12381Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != 32 {
		return fmt.Errorf("invalid length for bls12381 scalar: %d", len(data))
	}
	return s.value.UnmarshalBinary(data)
}

func (s *bls12381Scalar) Add(that Scalar) Scalar {
	other := bls12381CastScalar(that)
	s.value.Add(&s.value, &other.value)
	return s
}

func (s *bls12381Scalar) Sub(that Scalar) Scalar {
	other := bls12381CastScalar(that)
	s.value.Sub(&s.value, &other.value)
	return s
}

func (s *bls12381Scalar) Mul(that Scalar) Scalar {
	other := bls12381CastScalar(that)
	s.value.Mul(&s.value, &other.value)
	return s
}

func (s *bls12381Scalar) Negate() Scalar {
	var zero bls.Scalar
	zero.SetUint64(0)
	s.value.Sub(&zero, &s.value)
	return s
}

func (s *bls12381Scalar) Invert() Scalar {
	s.value.Inv(&s.value)
	return s
}

func (s *bls12381Scalar) Equal(that Scalar) bool {
	other := bls12381CastScalar(that)
	return s.value.IsEqual(&other.value) == 1
}

func (s *bls12381Scalar) IsZero() bool { return s.value.IsZero() == 1 }

func (s *bls12381Scalar) Set(that Scalar) Scalar {
	other := bls12381CastScalar(that)
	s.value = other.value
	return s
}

// Act computes s•P. The result lands in whichever group P belongs to; for a
// GT element this is exponentiation.
func (s *bls12381Scalar) Act(that Point) Point {
	switch p := that.(type) {
	case *bls12381G1Point:
		out := new(bls12381G1Point)
		out.value.ScalarMult(&s.value, &p.value)
		return out
	case *bls12381G2Point:
		out := new(bls12381G2Point)
		out.value.ScalarMult(&s.value, &p.value)
		return out
	case *bls12381GTElement:
		out := new(bls12381GTElement)
		out.value.Exp(&p.value, &s.value)
		return out
	default:
		panic(fmt.Sprintf("failed to convert to bls12381 point: %v", that))
	}
}

func (s *bls12381Scalar) ActOnBase() Point {
	out := new(bls12381G1Point)
	out.value.ScalarMult(&s.value, bls.G1Generator())
	return out
}

type bls12381G1Point struct {
	value bls.G1
}

func bls12381CastG1(generic Point) *bls12381G1Point {
	out, ok := generic.(*bls12381G1Point)
	if !ok {
		panic(fmt.Sprintf("failed to convert to bls12381G1Point: %v", generic))
	}
	return out
}

func (p *bls12381G1Point) Curve() Curve { return BLS12381{} }

func (p *bls12381G1Point) MarshalBinary() ([]byte, error) {
	return p.value.BytesCompressed(), nil
}

// UnmarshalBinary decodes a compressed G1 encoding, rejecting points that
// are off the curve or outside the prime-order subgroup.
func (p *bls12381G1Point) UnmarshalBinary(data []byte) error {
	if len(data) != bls.G1SizeCompressed {
		return fmt.Errorf("invalid length for bls12381 G1 point: %d", len(data))
	}
	return p.value.SetBytes(data)
}

func (p *bls12381G1Point) Add(that Point) Point {
	other := bls12381CastG1(that)
	out := new(bls12381G1Point)
	out.value.Add(&p.value, &other.value)
	return out
}

func (p *bls12381G1Point) Sub(that Point) Point {
	other := bls12381CastG1(that)
	negated := other.Negate().(*bls12381G1Point)
	out := new(bls12381G1Point)
	out.value.Add(&p.value, &negated.value)
	return out
}

func (p *bls12381G1Point) Negate() Point {
	out := new(bls12381G1Point)
	out.value = p.value
	out.value.Neg()
	return out
}

func (p *bls12381G1Point) Set(that Point) Point {
	other := bls12381CastG1(that)
	p.value = other.value
	return p
}

func (p *bls12381G1Point) Equal(that Point) bool {
	other := bls12381CastG1(that)
	return p.value.IsEqual(&other.value)
}

func (p *bls12381G1Point) IsIdentity() bool { return p.value.IsIdentity() }

type bls12381G2Point struct {
	value bls.G2
}

func bls12381CastG2(generic Point) *bls12381G2Point {
	out, ok := generic.(*bls12381G2Point)
	if !ok {
		panic(fmt.Sprintf("failed to convert to bls12381G2Point: %v", generic))
	}
	return out
}

func (p *bls12381G2Point) Curve() Curve { return BLS12381{} }

func (p *bls12381G2Point) MarshalBinary() ([]byte, error) {
	return p.value.BytesCompressed(), nil
}

func (p *bls12381G2Point) UnmarshalBinary(data []byte) error {
	if len(data) != bls.G2SizeCompressed {
		return fmt.Errorf("invalid length for bls12381 G2 point: %d", len(data))
	}
	return p.value.SetBytes(data)
}

func (p *bls12381G2Point) Add(that Point) Point {
	other := bls12381CastG2(that)
	out := new(bls12381G2Point)
	out.value.Add(&p.value, &other.value)
	return out
}

func (p *bls12381G2Point) Sub(that Point) Point {
	other := bls12381CastG2(that)
	negated := other.Negate().(*bls12381G2Point)
	out := new(bls12381G2Point)
	out.value.Add(&p.value, &negated.value)
	return out
}

func (p *bls12381G2Point) Negate() Point {
	out := new(bls12381G2Point)
	out.value = p.value
	out.value.Neg()
	return out
}

func (p *bls12381G2Point) Set(that Point) Point {
	other := bls12381CastG2(that)
	p.value = other.value
	return p
}

func (p *bls12381G2Point) Equal(that Point) bool {
	other := bls12381CastG2(that)
	return p.value.IsEqual(&other.value)
}

func (p *bls12381G2Point) IsIdentity() bool { return p.value.IsIdentity() }

// bls12381GTElement adapts the target group to the Point interface: Add is
// GT multiplication, Negate is GT inversion, and the identity is 1.
type bls12381GTElement struct {
	value bls.Gt
}

func bls12381CastGT(generic Point) *bls12381GTElement {
	out, ok := generic.(*bls12381GTElement)
	if !ok {
		panic(fmt.Sprintf("failed to convert to bls12381GTElement: %v", generic))
	}
	return out
}

func (p *bls12381GTElement) Curve() Curve { return BLS12381{} }

func (p *bls12381GTElement) MarshalBinary() ([]byte, error) {
	return p.value.MarshalBinary()
}

func (p *bls12381GTElement) UnmarshalBinary(data []byte) error {
	return p.value.UnmarshalBinary(data)
}

func (p *bls12381GTElement) Add(that Point) Point {
	other := bls12381CastGT(that)
	out := new(bls12381GTElement)
	out.value.Mul(&p.value, &other.value)
	return out
}

func (p *bls12381GTElement) Sub(that Point) Point {
	other := bls12381CastGT(that)
	var inverted bls.Gt
	inverted.Inv(&other.value)
	out := new(bls12381GTElement)
	out.value.Mul(&p.value, &inverted)
	return out
}

func (p *bls12381GTElement) Negate() Point {
	out := new(bls12381GTElement)
	out.value.Inv(&p.value)
	return out
}

func (p *bls12381GTElement) Set(that Point) Point {
	other := bls12381CastGT(that)
	p.value = other.value
	return p
}

func (p *bls12381GTElement) Equal(that Point) bool {
	other := bls12381CastGT(that)
	return p.value.IsEqual(&other.value)
}

func (p *bls12381GTElement) IsIdentity() bool { return p.value.IsIdentity() }
