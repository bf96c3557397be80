package sample

import (
	"fmt"
	"io"

	"github.com/onetrace/tosa/pkg/math/curve"
)

const maxIterations = 255

// ErrMaxIterations is reported via panic when the source of randomness is
// broken enough that rejection sampling cannot terminate.
var ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", maxIterations)

func mustReadBits(rand io.Reader, buf []byte) {
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err == nil {
			return
		}
	}
	panic(ErrMaxIterations)
}

// Scalar returns a uniformly sampled, nonzero element of ℤₚ.
//
// Zero is rejected: every caller of this function uses the result as an
// ephemeral secret or private key, where zero would degenerate the scheme.
func Scalar(rand io.Reader, group curve.Curve) curve.Scalar {
	buf := make([]byte, group.ScalarBytes())
	s := group.NewScalar()
	for i := 0; i < maxIterations; i++ {
		mustReadBits(rand, buf)
		if err := s.UnmarshalBinary(buf); err != nil {
			// Above the group order, resample.
			continue
		}
		if !s.IsZero() {
			return s
		}
	}
	panic(ErrMaxIterations)
}

// ScalarPointPair returns a fresh scalar x together with x•G.
func ScalarPointPair(rand io.Reader, group curve.Curve) (curve.Scalar, curve.Point) {
	s := Scalar(rand, group)
	return s, s.ActOnBase()
}
