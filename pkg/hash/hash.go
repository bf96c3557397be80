package hash

import (
	"encoding"
	"fmt"
	"io"

	"github.com/zeebo/blake3"

	"github.com/onetrace/tosa/internal/params"
)

// DigestLengthBytes is the number of bytes Sum returns, twice the security
// parameter so scalar reduction of a digest keeps negligible bias.
const DigestLengthBytes = params.HashBytes

// Hash accumulates a domain-separated transcript of protocol values.
//
// Internally this is a wrapper around a blake3 hasher; any hash function
// with an extendable output would work as well. It is used wherever a
// challenge scalar must bind a set of published values and a message.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash, writing an initial domain tag to the fresh state.
func New(tag string) *Hash {
	hash := &Hash{h: blake3.New()}
	_ = writeWithDomain(hash.h, BytesWithDomain{TheDomain: "Tag", Bytes: []byte(tag)})
	return hash
}

// Digest returns a reader for the current output of the function.
//
// This finalizes the current state of the hash, and returns what is
// essentially a stream of random bytes.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns a digest of length DigestLengthBytes for the current state.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteAny writes protocol values to the hash state, framing each one with
// a domain so that concatenations of different types can never collide.
//
// Supported types:
//
//   - []byte
//   - string
//   - encoding.BinaryMarshaler (curve scalars and points)
//   - WriterToWithDomain
func (hash *Hash) WriteAny(data ...interface{}) error {
	for _, d := range data {
		var err error
		switch t := d.(type) {
		case []byte:
			err = writeWithDomain(hash.h, BytesWithDomain{TheDomain: "[]byte", Bytes: t})
		case string:
			err = writeWithDomain(hash.h, BytesWithDomain{TheDomain: "string", Bytes: []byte(t)})
		case WriterToWithDomain:
			err = writeWithDomain(hash.h, t)
		case encoding.BinaryMarshaler:
			var bytes []byte
			bytes, err = t.MarshalBinary()
			if err != nil {
				return fmt.Errorf("hash.Hash: marshal %T: %w", d, err)
			}
			err = writeWithDomain(hash.h, BytesWithDomain{TheDomain: "BinaryMarshaler", Bytes: bytes})
		default:
			panic(fmt.Sprintf("hash.Hash: unsupported type %T", d))
		}
		if err != nil {
			return fmt.Errorf("hash.Hash: write %T: %w", d, err)
		}
	}
	return nil
}

// Clone returns a copy of the Hash in its current state.
func (hash *Hash) Clone() *Hash {
	return &Hash{h: hash.h.Clone()}
}
