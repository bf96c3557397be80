package curve

import (
	"encoding"

	"github.com/cronokirby/saferith"
)

// Curve represents a cyclic group of prime order, along with its associated
// scalar field.
//
// For a pairing-friendly curve, this interface describes the G1 side; the
// PairingCurve interface extends it with the remaining groups.
type Curve interface {
	// Name returns a printable identifier for this group.
	Name() string
	// NewScalar returns the zero scalar of this group's scalar field.
	NewScalar() Scalar
	// NewPoint returns the identity element of the group.
	NewPoint() Point
	// NewBasePoint returns the fixed generator of the group.
	NewBasePoint() Point
	// ScalarBytes returns the length of a marshalled scalar.
	ScalarBytes() int
	// Order returns the order of the group, shared by all scalar fields
	// and groups of this curve.
	Order() *saferith.Modulus
}

// PairingCurve is a Curve equipped with a second source group and a bilinear
// map into a target group.
//
// Points of G1, G2, and GT all satisfy the Point interface; the group law of
// GT is field multiplication, so "adding" two GT elements multiplies them,
// and acting on a GT element with a scalar exponentiates it. Mixing points
// of different groups in a single operation panics, as does pairing
// arguments from the wrong groups.
type PairingCurve interface {
	Curve

	// NewG2Point returns the identity element of G2.
	NewG2Point() Point
	// NewG2BasePoint returns the fixed generator of G2.
	NewG2BasePoint() Point
	// NewGTElement returns the identity element of the target group.
	NewGTElement() Point
	// Pair evaluates the bilinear map e(p, q) for p ∈ G1, q ∈ G2.
	Pair(p, q Point) Point
}

// Scalar is an element of the scalar field Z_p of a Curve.
//
// Implementations are mutable: arithmetic methods modify the receiver and
// return it, allowing chained expressions.
type Scalar interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Mul(Scalar) Scalar
	Negate() Scalar
	Invert() Scalar
	Equal(Scalar) bool
	IsZero() bool
	Set(Scalar) Scalar
	// Act returns the scalar multiple s•P, leaving both operands unchanged.
	Act(Point) Point
	// ActOnBase returns s•G for the group generator G.
	ActOnBase() Point
}

// Point is an element of one of the groups of a Curve.
//
// UnmarshalBinary rejects encodings of the wrong length, points that are
// not on the curve, and points outside the prime-order subgroup.
type Point interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	Add(Point) Point
	Sub(Point) Point
	Negate() Point
	Set(Point) Point
	Equal(Point) bool
	IsIdentity() bool
}

// FromHash converts a hash digest to a Scalar of the given group.
//
// The digest is truncated to the byte length of the group order, right
// shifted to drop excess bits, and finally reduced. We follow [SECG],
// matching what OpenSSL and crypto/ecdsa do.
func FromHash(group Curve, h []byte) Scalar {
	order := group.Order()
	orderBits := order.BitLen()
	orderBytes := (orderBits + 7) / 8
	if len(h) > orderBytes {
		h = h[:orderBytes]
	}
	s := new(saferith.Nat).SetBytes(h)
	excess := len(h)*8 - orderBits
	if excess > 0 {
		s.Rsh(s, uint(excess), -1)
	}
	s.Mod(s, order)

	buf := make([]byte, group.ScalarBytes())
	s.FillBytes(buf)
	out := group.NewScalar()
	if err := out.UnmarshalBinary(buf); err != nil {
		// A value reduced mod the order is always canonical.
		panic("curve.FromHash: reduced scalar rejected: " + err.Error())
	}
	return out
}
