// Package graphdb is an RDF quad store: a dictionary-backed term codec,
// nine covering indexes over encoded quads, and a pattern router that
// picks the index whose key order matches the caller's bound
// components. SPARQL evaluation and RDF serialization beyond N-Quads
// are external collaborators; this package owns storage, encoding, and
// pattern-matched retrieval.
package graphdb

import (
	"encoding/binary"
	"os"

	"github.com/RoaringBitmap/roaring"
	"github.com/boltdb/bolt"

	"github.com/relationlabs/graphdb/internal/dict"
	"github.com/relationlabs/graphdb/internal/index"
	"github.com/relationlabs/graphdb/internal/term"
)

// defaultMaxDictValueBytes is the dictionary value-length bound used
// when WithMaxDictValueBytes is not given; spec.md §6 suggests a
// deployment parameter "conventionally >= 1024".
const defaultMaxDictValueBytes = 1 << 20

// Store is an RDF quad store backed by a single BoltDB file.
type Store struct {
	kv *bolt.DB

	base              string
	maxDictValueBytes int
	evaluator         Evaluator
}

// Option configures a Store at Open time.
type Option func(*Store)

// WithBase sets the store's base URI. Unlike the teacher's base-URI
// optimization (which relativizes stored URIs against it to save
// bytes), this store's URIs are dictionary-addressed regardless of
// base. The base is stored on the Store but no operation reads it:
// LoadGraph and DumpGraph do no relative-IRI resolution.
func WithBase(base string) Option {
	return func(s *Store) { s.base = base }
}

// WithMaxDictValueBytes bounds the length of any single dictionary
// value (the UTF-8 lexical form behind a Big* term). InsertStr rejects
// values over this bound with ErrValueTooLarge.
func WithMaxDictValueBytes(n int) Option {
	return func(s *Store) { s.maxDictValueBytes = n }
}

// WithEvaluator configures the SPARQL Evaluator used by Query/Update.
// Without one, those two calls return ErrNoEvaluator; every other
// Store operation works regardless.
func WithEvaluator(e Evaluator) Option {
	return func(s *Store) { s.evaluator = e }
}

// Open creates and opens a database at the given path, creating every
// index and dictionary bucket if the file is new. Only one process may
// have the file open at a time (BoltDB takes an exclusive file lock).
func Open(path string, opts ...Option) (*Store, error) {
	kv, err := bolt.Open(path, 0666, nil)
	if err != nil {
		return nil, err
	}
	s := &Store{kv: kv, maxDictValueBytes: defaultMaxDictValueBytes}
	for _, opt := range opts {
		opt(s)
	}
	if err := kv.Update(func(tx *bolt.Tx) error {
		if err := index.Setup(tx); err != nil {
			return err
		}
		return dict.Setup(tx)
	}); err != nil {
		kv.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database, releasing the file lock.
func (s *Store) Close() error {
	return s.kv.Close()
}

// Stats holds statistics about the store.
type Stats struct {
	NumDictEntries int
	NumNamedGraphs int
	File           string
	SizeInBytes    int64

	// BucketCardinality estimates, per index bucket, the number of
	// distinct dictionary-addressed terms touched by a full scan of
	// that bucket's keys. It is a roaring-bitmap cardinality over the
	// low 32 bits of each touched term's dictionary hash, so it is an
	// estimate (collisions in the truncation are possible) rather than
	// an exact distinct count.
	BucketCardinality map[string]uint64
}

// Stats returns statistics about the store.
func (s *Store) Stats() (Stats, error) {
	st := Stats{BucketCardinality: make(map[string]uint64)}
	err := s.kv.View(func(tx *bolt.Tx) error {
		st.NumDictEntries = dict.Count(tx)
		r := index.NewReader(tx)
		r.NamedGraphs(func(term.Term) bool {
			st.NumNamedGraphs++
			return true
		})
		for _, name := range index.AllBucketNames() {
			bm := roaring.NewBitmap()
			index.ForEachBucketKeyTerm(tx, name, func(t term.Term) {
				if h, ok := term.PrimaryHash(t); ok {
					b := h.Bytes()
					bm.Add(binary.BigEndian.Uint32(b[12:]))
				}
			})
			st.BucketCardinality[string(name)] = bm.GetCardinality()
		}
		return nil
	})
	if err != nil {
		return st, err
	}
	st.File = s.kv.Path()
	info, err := os.Stat(st.File)
	if err != nil {
		return st, err
	}
	st.SizeInBytes = info.Size()
	return st, nil
}
