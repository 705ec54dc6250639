package graphdb

import (
	"io"
	"iter"

	"github.com/boltdb/bolt"

	"github.com/relationlabs/graphdb/internal/dict"
	"github.com/relationlabs/graphdb/internal/index"
	"github.com/relationlabs/graphdb/internal/term"
	"github.com/relationlabs/graphdb/rdf"
)

// Evaluator is the SPARQL query/update collaborator spec.md §1 keeps
// external to this module: parsing, algebra, and evaluation are not
// this package's job, only storage, encoding, and pattern-matched
// retrieval are. Query/Update are no-ops that return ErrNoEvaluator
// until a Store is opened WithEvaluator.
type Evaluator interface {
	Query(s *Store, sparql string) ([]byte, error)
	Update(s *Store, sparql string) error
}

// Query evaluates a SPARQL 1.1 Query string against the store's
// current snapshot, returning a serialised SPARQL Results document.
func (s *Store) Query(sparql string) ([]byte, error) {
	if s.evaluator == nil {
		return nil, ErrNoEvaluator
	}
	return s.evaluator.Query(s, sparql)
}

// Update evaluates a SPARQL 1.1 Update string against the store.
func (s *Store) Update(sparql string) error {
	if s.evaluator == nil {
		return ErrNoEvaluator
	}
	return s.evaluator.Update(s, sparql)
}

// encodeQuad registers every one of q's components in the dictionary
// as needed and returns its EncodedTerm form.
func (s *Store) encodeQuad(tx *bolt.Tx, q rdf.Quad) (term.Quad, error) {
	subj, err := encodeTerm(tx, q.Subject, s.maxDictValueBytes)
	if err != nil {
		return term.Quad{}, err
	}
	pred, err := encodeTerm(tx, q.Predicate, s.maxDictValueBytes)
	if err != nil {
		return term.Quad{}, err
	}
	obj, err := encodeTerm(tx, q.Object, s.maxDictValueBytes)
	if err != nil {
		return term.Quad{}, err
	}
	graph, err := encodeGraphName(tx, q.Graph, s.maxDictValueBytes)
	if err != nil {
		return term.Quad{}, err
	}
	return term.Quad{Subject: subj, Predicate: pred, Object: obj, GraphName: graph}, nil
}

// tryEncodeQuad is encodeQuad's read-only counterpart: ok is false as
// soon as any component references a lexical form never registered in
// the dictionary, meaning q cannot possibly be stored.
func tryEncodeQuad(tx *bolt.Tx, q rdf.Quad, maxLen int) (term.Quad, bool) {
	subj, ok := tryEncodeTerm(tx, q.Subject, maxLen)
	if !ok {
		return term.Quad{}, false
	}
	pred, ok := tryEncodeTerm(tx, q.Predicate, maxLen)
	if !ok {
		return term.Quad{}, false
	}
	obj, ok := tryEncodeTerm(tx, q.Object, maxLen)
	if !ok {
		return term.Quad{}, false
	}
	graph, ok := tryEncodeGraphName(tx, q.Graph, maxLen)
	if !ok {
		return term.Quad{}, false
	}
	return term.Quad{Subject: subj, Predicate: pred, Object: obj, GraphName: graph}, true
}

// quadExists reports whether eq is present, via the SPOG/SPO point
// lookup the router already knows how to do for a fully bound pattern.
func quadExists(tx *bolt.Tx, eq term.Quad) (bool, error) {
	for _, err := range index.NewReader(tx).QuadsForPattern(eq.Subject, eq.Predicate, eq.Object, eq.GraphName) {
		if err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// InsertQuad stores q, fanning it out to every covering index that
// applies (the three default-graph indexes, or the six named-graph
// indexes plus the graph-name set).
func (s *Store) InsertQuad(q rdf.Quad) error {
	return s.kv.Update(func(tx *bolt.Tx) error {
		eq, err := s.encodeQuad(tx, q)
		if err != nil {
			return err
		}
		return index.NewWriter(tx).InsertEncoded(eq)
	})
}

// RemoveQuad removes q from every index it was stored in. It reports
// ErrNotFound if q was never inserted (mirroring the teacher's Delete)
// rather than performing a silent no-op fanout.
func (s *Store) RemoveQuad(q rdf.Quad) error {
	return s.kv.Update(func(tx *bolt.Tx) error {
		eq, ok := tryEncodeQuad(tx, q, s.maxDictValueBytes)
		if !ok {
			return ErrNotFound
		}
		exists, err := quadExists(tx, eq)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return index.NewWriter(tx).RemoveEncoded(eq)
	})
}

// InsertNamedGraph records graphName as known, independent of whether
// it ever gets a quad.
func (s *Store) InsertNamedGraph(graphName rdf.GraphName) error {
	return s.kv.Update(func(tx *bolt.Tx) error {
		eg, err := encodeGraphName(tx, graphName, s.maxDictValueBytes)
		if err != nil {
			return err
		}
		return index.NewWriter(tx).InsertNamedGraph(eg)
	})
}

// RemoveNamedGraph removes every quad in graphName and forgets the
// graph itself. Removing a graph that was never known is a no-op.
func (s *Store) RemoveNamedGraph(graphName rdf.GraphName) error {
	return s.kv.Update(func(tx *bolt.Tx) error {
		eg, ok := tryEncodeGraphName(tx, graphName, s.maxDictValueBytes)
		if !ok {
			return nil
		}
		return index.NewWriter(tx).RemoveNamedGraph(eg)
	})
}

// ClearGraph empties graphName without forgetting it (it still counts
// as known to NamedGraphs/ContainsNamedGraph). Clearing an unknown
// graph, or a default graph that is already empty, is a no-op.
func (s *Store) ClearGraph(graphName rdf.GraphName) error {
	return s.kv.Update(func(tx *bolt.Tx) error {
		eg, ok := tryEncodeGraphName(tx, graphName, s.maxDictValueBytes)
		if !ok {
			return nil
		}
		return index.NewWriter(tx).ClearGraph(eg)
	})
}

// ClearAll empties every index, the graph-name set, and the
// dictionary: a full reset.
func (s *Store) ClearAll() error {
	return s.kv.Update(func(tx *bolt.Tx) error {
		if err := index.NewWriter(tx).ClearAll(); err != nil {
			return err
		}
		return dict.Clear(tx)
	})
}

// ContainsNamedGraph reports whether graphName has been recorded.
func (s *Store) ContainsNamedGraph(graphName rdf.GraphName) (bool, error) {
	var found bool
	err := s.kv.View(func(tx *bolt.Tx) error {
		eg, ok := tryEncodeGraphName(tx, graphName, s.maxDictValueBytes)
		if !ok {
			return nil
		}
		found = index.NewReader(tx).ContainsNamedGraph(eg)
		return nil
	})
	return found, err
}

// NamedGraphs streams every recorded named graph.
func (s *Store) NamedGraphs() iter.Seq2[rdf.GraphName, error] {
	return func(yield func(rdf.GraphName, error) bool) {
		_ = s.kv.View(func(tx *bolt.Tx) error {
			cont := true
			nErr := index.NewReader(tx).NamedGraphs(func(t term.Term) bool {
				g, err := decodeGraphName(tx, t)
				if err != nil {
					cont = yield(nil, err)
					return false
				}
				cont = yield(g, nil)
				return cont
			})
			if nErr != nil && cont {
				yield(nil, nErr)
			}
			return nil
		})
	}
}

// QuadsForPattern is the public pattern-router entry point: pass nil
// for subject/predicate/object to leave them unbound, and nil for
// graph to leave the graph unbound (pass rdf.DefaultGraphName{} to
// bind it to the default graph explicitly). The returned iterator
// streams straight off a BoltDB cursor inside one read transaction; it
// never materialises a slice. A bound component whose dictionary hash
// isn't registered makes the whole pattern yield nothing, without
// touching any index (spec.md §4.5).
func (s *Store) QuadsForPattern(subject, predicate, object rdf.Term, graph rdf.GraphName) iter.Seq2[rdf.Quad, error] {
	return func(yield func(rdf.Quad, error) bool) {
		_ = s.kv.View(func(tx *bolt.Tx) error {
			var encS, encP, encO, encG term.Term
			if subject != nil {
				t, ok := tryEncodeTerm(tx, subject, s.maxDictValueBytes)
				if !ok {
					return nil
				}
				encS = t
			}
			if predicate != nil {
				t, ok := tryEncodeTerm(tx, predicate, s.maxDictValueBytes)
				if !ok {
					return nil
				}
				encP = t
			}
			if object != nil {
				t, ok := tryEncodeTerm(tx, object, s.maxDictValueBytes)
				if !ok {
					return nil
				}
				encO = t
			}
			if graph != nil {
				t, ok := tryEncodeGraphName(tx, graph, s.maxDictValueBytes)
				if !ok {
					return nil
				}
				encG = t
			}
			for eq, err := range index.NewReader(tx).QuadsForPattern(encS, encP, encO, encG) {
				if err != nil {
					if !yield(rdf.Quad{}, err) {
						return nil
					}
					continue
				}
				q, derr := decodeQuad(tx, eq)
				if derr != nil {
					if !yield(rdf.Quad{}, derr) {
						return nil
					}
					continue
				}
				if !yield(q, nil) {
					return nil
				}
			}
			return nil
		})
	}
}

// LoadGraph reads quads/triples from r in the given format and inserts
// each one into graphName, returning the count inserted. baseIRI is
// accepted for interface parity with a real Turtle/RDF-XML loader
// (spec.md §6) but unused: this module's N-Quads reader takes IRIs
// verbatim, with no relative-IRI resolution step. LoadGraph assigns
// every parsed quad/triple to graphName regardless of what (if
// anything) a fourth term in the input said.
func (s *Store) LoadGraph(r io.Reader, format rdf.Format, graphName rdf.GraphName, baseIRI string) (int, error) {
	_ = baseIRI
	dec := rdf.NewDecoder(r)
	n := 0
	for {
		q, err := dec.Decode()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		q.Graph = graphName
		if err := s.InsertQuad(q); err != nil {
			return n, err
		}
		n++
	}
}

// DumpGraph writes every quad in graphName to w in the given format.
func (s *Store) DumpGraph(w io.Writer, format rdf.Format, graphName rdf.GraphName) error {
	enc := rdf.NewEncoder(w)
	for q, err := range s.QuadsForPattern(nil, nil, nil, graphName) {
		if err != nil {
			return err
		}
		if format == rdf.NTriples {
			q.Graph = rdf.DefaultGraphName{}
		}
		if err := enc.Encode(q); err != nil {
			return err
		}
	}
	return nil
}
