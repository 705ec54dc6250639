// Package index implements the nine covering indexes over encoded
// quads (three default-graph triple indexes, six named-graph quad
// indexes), the write-path fanout that keeps them mutually consistent,
// and the 16-pattern-shape router that picks the index whose key order
// matches the caller's bound components. Every index is a BoltDB
// bucket keyed by the concatenated binary encoding of its component
// terms (see internal/term), membership-only: the value is a single
// marker byte, never a multi-valued row.
package index

import (
	"bytes"

	"github.com/boltdb/bolt"

	"github.com/relationlabs/graphdb/internal/term"
)

var (
	bucketDefaultSPO = []byte("dspo")
	bucketDefaultPOS = []byte("dpos")
	bucketDefaultOSP = []byte("dosp")
	bucketGSPO       = []byte("gspo")
	bucketGPOS       = []byte("gpos")
	bucketGOSP       = []byte("gosp")
	bucketSPOG       = []byte("spog")
	bucketPOSG       = []byte("posg")
	bucketOSPG       = []byte("ospg")
	bucketGraphNames = []byte("graphs")
)

var allBuckets = [][]byte{
	bucketDefaultSPO, bucketDefaultPOS, bucketDefaultOSP,
	bucketGSPO, bucketGPOS, bucketGOSP,
	bucketSPOG, bucketPOSG, bucketOSPG,
	bucketGraphNames,
}

// marker is the sentinel value stored for every membership-only key.
var marker = []byte{1}

// Setup creates every index bucket if it does not already exist. Must
// run inside a write transaction, typically once at Store.Open.
func Setup(tx *bolt.Tx) error {
	for _, b := range allBuckets {
		if _, err := tx.CreateBucketIfNotExists(b); err != nil {
			return err
		}
	}
	return nil
}

// Reader wraps a read-only *bolt.Tx (opened by db.View) with the index
// query surface. It has no method that can mutate the database.
type Reader struct {
	tx *bolt.Tx
}

// NewReader wraps tx for read-only index access.
func NewReader(tx *bolt.Tx) Reader {
	return Reader{tx: tx}
}

// Writer embeds a Reader and adds the mutating index operations. It
// wraps the same *bolt.Tx, opened by db.Update — there is no separate
// read-only transaction to alias, so no reborrow trick is needed to
// read-while-writing within one Writer.
type Writer struct {
	Reader
}

// NewWriter wraps tx (opened by db.Update) for read-write index access.
func NewWriter(tx *bolt.Tx) Writer {
	return Writer{Reader: NewReader(tx)}
}

func encodeKey(terms ...term.Term) []byte {
	var buf []byte
	for _, t := range terms {
		buf = term.Encode(buf, t)
	}
	return buf
}

// decodeTerms decodes n terms in sequence from buf, requiring the
// whole buffer to be consumed. Used to recover the trailing components
// of an index key after its known-length prefix has been stripped.
func decodeTerms(buf []byte, n int) ([]term.Term, error) {
	out := make([]term.Term, 0, n)
	for i := 0; i < n; i++ {
		t, read, err := term.Decode(buf)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		buf = buf[read:]
	}
	if len(buf) != 0 {
		return nil, term.ErrCorrupt
	}
	return out, nil
}

func (r Reader) has(bucket, key []byte) bool {
	return r.tx.Bucket(bucket).Get(key) != nil
}

// forEachSuffix calls fn for every key in bucket that starts with
// prefix, passing the bytes of the key after the prefix. Stops early
// if fn returns false.
func (r Reader) forEachSuffix(bucket, prefix []byte, fn func(suffix []byte) bool) {
	c := r.tx.Bucket(bucket).Cursor()
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		if !fn(k[len(prefix):]) {
			return
		}
	}
}

// forEachKey calls fn for every key in bucket. Stops early if fn
// returns false.
func (r Reader) forEachKey(bucket []byte, fn func(key []byte) bool) {
	c := r.tx.Bucket(bucket).Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		if !fn(k) {
			return
		}
	}
}

func (w Writer) put(bucket, key []byte) error {
	return w.tx.Bucket(bucket).Put(key, marker)
}

func (w Writer) delete(bucket, key []byte) error {
	return w.tx.Bucket(bucket).Delete(key)
}

func (w Writer) clearBucket(bucket []byte) error {
	if err := w.tx.DeleteBucket(bucket); err != nil && err != bolt.ErrBucketNotFound {
		return err
	}
	_, err := w.tx.CreateBucket(bucket)
	return err
}

// AllBucketNames returns the name of every index bucket (the nine
// covering indexes plus the graph-name set), for callers that need to
// scan the whole store, such as Store.Stats.
func AllBucketNames() [][]byte {
	return allBuckets
}

// ForEachBucketKeyTerm decodes every term out of every key in the named
// bucket and calls fn with each. Keys are the concatenation of one or
// more encoded terms (see encodeKey); a bucket's component count is
// fixed by its position in the schema, but since callers here only need
// every term that appears (not their grouping), this decodes greedily:
// it repeatedly calls term.Decode on the remaining bytes until none are
// left, which is exactly how decodeTerms walks a key once its term
// count is known, except here that count is implicit in the bytes
// themselves rather than passed in.
func ForEachBucketKeyTerm(tx *bolt.Tx, bucket []byte, fn func(term.Term)) {
	NewReader(tx).forEachKey(bucket, func(key []byte) bool {
		for len(key) > 0 {
			t, n, err := term.Decode(key)
			if err != nil {
				return true
			}
			fn(t)
			key = key[n:]
		}
		return true
	})
}
