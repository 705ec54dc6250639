// Package dict implements the external string dictionary: a monotonic
// map from a lexical form's Hash128 to its UTF-8 bytes, backed by a
// single BoltDB bucket. Entries are inserted once and never rewritten
// or deleted (deletion is limited to a wholesale Clear), mirroring the
// teacher's term bucket (bucketTerms/bucketIdxTerms in the teacher's
// db.go) but keyed by content hash instead of a sequential uint32 id.
package dict

import (
	"errors"

	"github.com/boltdb/bolt"

	"github.com/relationlabs/graphdb/internal/bighash"
)

// BucketName is the BoltDB bucket holding hash -> lexical form.
var BucketName = []byte("dict")

// ErrNotFound is returned by GetStr when the hash is not present.
var ErrNotFound = errors.New("dict: hash not found")

// ErrValueTooLarge is returned by InsertStr when value exceeds the
// configured maximum length.
var ErrValueTooLarge = errors.New("dict: value exceeds configured maximum length")

// Setup creates the dictionary bucket if it does not already exist.
// Must run inside a write transaction, typically once at Store.Open.
func Setup(tx *bolt.Tx) error {
	_, err := tx.CreateBucketIfNotExists(BucketName)
	return err
}

// GetStr looks up the lexical form for hash. Returns ErrNotFound if
// absent — every Big* term variant's hash is expected to resolve, so
// the term decoder in package graphdb reports this as ErrDanglingHash
// instead.
func GetStr(tx *bolt.Tx, hash bighash.Hash) (string, error) {
	bkt := tx.Bucket(BucketName)
	key := hash.Bytes()
	v := bkt.Get(key[:])
	if v == nil {
		return "", ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return string(out), nil
}

// Contains reports whether hash has an entry, without copying the value.
func Contains(tx *bolt.Tx, hash bighash.Hash) bool {
	bkt := tx.Bucket(BucketName)
	key := hash.Bytes()
	return bkt.Get(key[:]) != nil
}

// InsertStr computes value's Hash128 and stores the mapping if absent.
// Re-inserting the same value is a no-op (idempotent), matching
// spec.md's "insert is idempotent" dictionary invariant. maxLen bounds
// value's byte length; pass 0 for no bound.
func InsertStr(tx *bolt.Tx, value string, maxLen int) (bighash.Hash, error) {
	if maxLen > 0 && len(value) > maxLen {
		return bighash.Hash{}, ErrValueTooLarge
	}
	h := bighash.New(value)
	bkt := tx.Bucket(BucketName)
	key := h.Bytes()
	if bkt.Get(key[:]) != nil {
		return h, nil
	}
	if err := bkt.Put(key[:], []byte(value)); err != nil {
		return bighash.Hash{}, err
	}
	return h, nil
}

// Clear removes every entry from the dictionary. The only supported
// form of deletion, per spec.md's Non-goals (no orphan GC, no partial
// rewrite).
func Clear(tx *bolt.Tx) error {
	if err := tx.DeleteBucket(BucketName); err != nil && err != bolt.ErrBucketNotFound {
		return err
	}
	_, err := tx.CreateBucket(BucketName)
	return err
}

// Count returns the number of entries currently in the dictionary.
func Count(tx *bolt.Tx) int {
	return tx.Bucket(BucketName).Stats().KeyN
}
