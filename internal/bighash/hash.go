// Package bighash implements the content-addressed hash used to key the
// string dictionary: a 128-bit SipHash-2-4 of the original UTF-8 bytes.
package bighash

import (
	"encoding/binary"

	"github.com/dchest/siphash"
)

// Size is the wire width of a Hash in bytes.
const Size = 16

// fixed SipHash key. The dictionary only needs the hash to be stable
// across process restarts for a given lexical form, not secret.
const key0, key1 = 0x646f6c6f72697465, 0x7261646961746573

// Hash is a 128-bit SipHash-2-4 digest, used as the dictionary key and
// embedded in every Big* term variant.
type Hash struct {
	hi, lo uint64
}

// New hashes value and returns its Hash.
func New(value string) Hash {
	hi, lo := siphash.Hash128(key0, key1, []byte(value))
	return Hash{hi: hi, lo: lo}
}

// FromBytes decodes a 16-byte big-endian buffer into a Hash.
func FromBytes(b []byte) (Hash, bool) {
	if len(b) != Size {
		return Hash{}, false
	}
	return Hash{
		hi: binary.BigEndian.Uint64(b[:8]),
		lo: binary.BigEndian.Uint64(b[8:]),
	}, true
}

// Bytes encodes the Hash as a 16-byte big-endian buffer.
func (h Hash) Bytes() [Size]byte {
	var b [Size]byte
	binary.BigEndian.PutUint64(b[:8], h.hi)
	binary.BigEndian.PutUint64(b[8:], h.lo)
	return b
}

// String returns a hex representation, mostly useful for debugging.
func (h Hash) String() string {
	b := h.Bytes()
	const hextable = "0123456789abcdef"
	out := make([]byte, Size*2)
	for i, c := range b {
		out[i*2] = hextable[c>>4]
		out[i*2+1] = hextable[c&0x0f]
	}
	return string(out)
}

// Less orders hashes the same way their Bytes() encodings compare,
// which is the order the index buckets keep their keys in; it is not
// the lexical order of the original string (see spec §4.2).
func (h Hash) Less(other Hash) bool {
	if h.hi != other.hi {
		return h.hi < other.hi
	}
	return h.lo < other.lo
}
