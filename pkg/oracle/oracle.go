// Package oracle implements the family of random oracles the address
// protocols are built on.
//
// Every scheme owns a Suite, and every hash function within a suite carries
// its own customization string, so two functions of the same suite (or the
// same function of two suites) produce independent outputs even on identical
// raw inputs. Functions map their inputs either to a scalar of the suite's
// group, or to a group element obtained by multiplying a designated base
// point, so callers never handle a dangling scalar when a curve point is
// required.
package oracle

import (
	"encoding"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/onetrace/tosa/internal/params"
	"github.com/onetrace/tosa/pkg/math/curve"
)

// Suite is the set of domain-separated hash functions of one scheme.
//
// A Suite is immutable and safe for concurrent use.
type Suite struct {
	group  curve.Curve
	scheme string
}

// NewSuite returns the hash suite for the named scheme over the given group.
func NewSuite(group curve.Curve, scheme string) *Suite {
	return &Suite{group: group, scheme: scheme}
}

// Scalar hashes the inputs under the named function and reduces the digest
// into ℤₚ.
//
// Inputs may be group elements or scalars (anything binary-marshalable),
// byte slices, or strings. Each input is length-framed before hashing.
func (s *Suite) Scalar(function string, inputs ...interface{}) curve.Scalar {
	shake := sha3.NewCShake128(nil, []byte("TOSA-"+s.scheme+"-"+function))
	for _, in := range inputs {
		var data []byte
		switch t := in.(type) {
		case []byte:
			data = t
		case string:
			data = []byte(t)
		case encoding.BinaryMarshaler:
			var err error
			data, err = t.MarshalBinary()
			if err != nil {
				panic(fmt.Sprintf("oracle: marshal %T: %v", in, err))
			}
		default:
			panic(fmt.Sprintf("oracle: unsupported input type %T", in))
		}
		var frame [4]byte
		binary.BigEndian.PutUint32(frame[:], uint32(len(data)))
		_, _ = shake.Write(frame[:])
		_, _ = shake.Write(data)
	}
	digest := make([]byte, params.HashBytes)
	_, _ = shake.Read(digest)
	return curve.FromHash(s.group, digest)
}

// Point hashes the inputs under the named function and returns the scalar
// multiple of the base point, guaranteeing a valid element of base's group.
func (s *Suite) Point(function string, base curve.Point, inputs ...interface{}) curve.Point {
	return s.Scalar(function, inputs...).Act(base)
}
