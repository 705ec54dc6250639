package index

import "github.com/relationlabs/graphdb/internal/term"

func isDefaultGraph(t term.Term) bool {
	_, ok := t.(term.DefaultGraph)
	return ok
}

// InsertEncoded fans q out into the index buckets that cover it: the
// three default-graph triple indexes if q's graph is the default
// graph, otherwise the six named-graph quad indexes plus a graph-name
// membership entry.
func (w Writer) InsertEncoded(q term.Quad) error {
	if isDefaultGraph(q.GraphName) {
		if err := w.put(bucketDefaultSPO, encodeKey(q.Subject, q.Predicate, q.Object)); err != nil {
			return err
		}
		if err := w.put(bucketDefaultPOS, encodeKey(q.Predicate, q.Object, q.Subject)); err != nil {
			return err
		}
		return w.put(bucketDefaultOSP, encodeKey(q.Object, q.Subject, q.Predicate))
	}

	if err := w.put(bucketGSPO, encodeKey(q.GraphName, q.Subject, q.Predicate, q.Object)); err != nil {
		return err
	}
	if err := w.put(bucketGPOS, encodeKey(q.GraphName, q.Predicate, q.Object, q.Subject)); err != nil {
		return err
	}
	if err := w.put(bucketGOSP, encodeKey(q.GraphName, q.Object, q.Subject, q.Predicate)); err != nil {
		return err
	}
	if err := w.put(bucketSPOG, encodeKey(q.Subject, q.Predicate, q.Object, q.GraphName)); err != nil {
		return err
	}
	if err := w.put(bucketPOSG, encodeKey(q.Predicate, q.Object, q.Subject, q.GraphName)); err != nil {
		return err
	}
	if err := w.put(bucketOSPG, encodeKey(q.Object, q.Subject, q.Predicate, q.GraphName)); err != nil {
		return err
	}
	return w.put(bucketGraphNames, encodeKey(q.GraphName))
}

// RemoveEncoded fans the deletion of q out across the same buckets
// InsertEncoded writes to. Deleting an absent key is a no-op in
// BoltDB, so this unconditional fanout is safe to call even when q is
// only partially present (it never is, in practice, since every
// insert/remove goes through this same fanout).
//
// Unlike InsertEncoded, this never touches the graph-name bucket — a
// graph stays known even after its last quad is removed, until an
// explicit RemoveNamedGraph.
func (w Writer) RemoveEncoded(q term.Quad) error {
	if isDefaultGraph(q.GraphName) {
		if err := w.delete(bucketDefaultSPO, encodeKey(q.Subject, q.Predicate, q.Object)); err != nil {
			return err
		}
		if err := w.delete(bucketDefaultPOS, encodeKey(q.Predicate, q.Object, q.Subject)); err != nil {
			return err
		}
		return w.delete(bucketDefaultOSP, encodeKey(q.Object, q.Subject, q.Predicate))
	}

	if err := w.delete(bucketGSPO, encodeKey(q.GraphName, q.Subject, q.Predicate, q.Object)); err != nil {
		return err
	}
	if err := w.delete(bucketGPOS, encodeKey(q.GraphName, q.Predicate, q.Object, q.Subject)); err != nil {
		return err
	}
	if err := w.delete(bucketGOSP, encodeKey(q.GraphName, q.Object, q.Subject, q.Predicate)); err != nil {
		return err
	}
	if err := w.delete(bucketSPOG, encodeKey(q.Subject, q.Predicate, q.Object, q.GraphName)); err != nil {
		return err
	}
	if err := w.delete(bucketPOSG, encodeKey(q.Predicate, q.Object, q.Subject, q.GraphName)); err != nil {
		return err
	}
	return w.delete(bucketOSPG, encodeKey(q.Object, q.Subject, q.Predicate, q.GraphName))
}

// InsertNamedGraph records graphName as known, independent of whether
// it has any quads.
func (w Writer) InsertNamedGraph(graphName term.Term) error {
	return w.put(bucketGraphNames, encodeKey(graphName))
}

// ContainsNamedGraph reports whether graphName has been recorded,
// either by InsertNamedGraph or by inserting a quad naming it.
func (r Reader) ContainsNamedGraph(graphName term.Term) bool {
	return r.has(bucketGraphNames, encodeKey(graphName))
}

// NamedGraphs calls fn for every recorded named graph. Stops early if
// fn returns false.
func (r Reader) NamedGraphs(fn func(term.Term) bool) error {
	var decodeErr error
	r.forEachKey(bucketGraphNames, func(key []byte) bool {
		g, _, err := term.Decode(key)
		if err != nil {
			decodeErr = err
			return false
		}
		return fn(g)
	})
	return decodeErr
}

// ClearGraph removes every quad in graphName without forgetting the
// graph itself (RemoveNamedGraph forgets it too). Clearing the default
// graph is a direct bucket reset; clearing a named graph walks its
// quads so the other five named-graph indexes stay consistent.
func (w Writer) ClearGraph(graphName term.Term) error {
	if isDefaultGraph(graphName) {
		if err := w.clearBucket(bucketDefaultSPO); err != nil {
			return err
		}
		if err := w.clearBucket(bucketDefaultPOS); err != nil {
			return err
		}
		return w.clearBucket(bucketDefaultOSP)
	}
	var quads []term.Quad
	for q, err := range w.QuadsForGraph(graphName) {
		if err != nil {
			return err
		}
		quads = append(quads, q)
	}
	for _, q := range quads {
		if err := w.RemoveEncoded(q); err != nil {
			return err
		}
	}
	return nil
}

// RemoveNamedGraph removes every quad in graphName and forgets the
// graph itself.
func (w Writer) RemoveNamedGraph(graphName term.Term) error {
	if err := w.ClearGraph(graphName); err != nil {
		return err
	}
	return w.delete(bucketGraphNames, encodeKey(graphName))
}

// ClearAll empties every index and the graph-name set.
func (w Writer) ClearAll() error {
	for _, b := range allBuckets {
		if err := w.clearBucket(b); err != nil {
			return err
		}
	}
	return nil
}
