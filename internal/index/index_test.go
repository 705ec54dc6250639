package index

import (
	"os"
	"sort"
	"testing"

	"github.com/boltdb/bolt"

	"github.com/relationlabs/graphdb/internal/bighash"
	"github.com/relationlabs/graphdb/internal/term"
)

func tempfile() string {
	f, err := os.CreateTemp("", "graphdb-index-")
	if err != nil {
		panic(err)
	}
	f.Close()
	os.Remove(f.Name())
	return f.Name()
}

func openTestDB(t *testing.T) *bolt.DB {
	t.Helper()
	path := tempfile()
	db, err := bolt.Open(path, 0666, nil)
	if err != nil {
		t.Fatalf("bolt.Open: %v", err)
	}
	if err := db.Update(Setup); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(path)
	})
	return db
}

func node(s string) term.Term {
	return term.NamedNode{IRIID: bighash.New(s)}
}

func collect(t *testing.T, seq func(func(term.Quad, error) bool)) []term.Quad {
	t.Helper()
	var out []term.Quad
	for q, err := range seq {
		if err != nil {
			t.Fatalf("iteration error: %v", err)
		}
		out = append(out, q)
	}
	return out
}

func quadKey(q term.Quad) string {
	return string(encodeKey(q.Subject, q.Predicate, q.Object, q.GraphName))
}

func sortQuads(qs []term.Quad) {
	sort.Slice(qs, func(i, j int) bool { return quadKey(qs[i]) < quadKey(qs[j]) })
}

func TestInsertEncodedVisibleAcrossPatternShapes(t *testing.T) {
	db := openTestDB(t)

	defaultQuad := term.Quad{Subject: node("s1"), Predicate: node("p1"), Object: node("o1"), GraphName: term.DefaultGraph{}}
	namedQuad := term.Quad{Subject: node("s2"), Predicate: node("p2"), Object: node("o2"), GraphName: node("g1")}

	db.Update(func(tx *bolt.Tx) error {
		w := NewWriter(tx)
		if err := w.InsertEncoded(defaultQuad); err != nil {
			return err
		}
		return w.InsertEncoded(namedQuad)
	})

	db.View(func(tx *bolt.Tx) error {
		r := NewReader(tx)

		cases := []struct {
			name                     string
			s, p, o, g               term.Term
			want                     []term.Quad
		}{
			{"spog default", defaultQuad.Subject, defaultQuad.Predicate, defaultQuad.Object, defaultQuad.GraphName, []term.Quad{defaultQuad}},
			{"spog named", namedQuad.Subject, namedQuad.Predicate, namedQuad.Object, namedQuad.GraphName, []term.Quad{namedQuad}},
			{"spo unbound graph default", defaultQuad.Subject, defaultQuad.Predicate, defaultQuad.Object, nil, []term.Quad{defaultQuad}},
			{"spo unbound graph named", namedQuad.Subject, namedQuad.Predicate, namedQuad.Object, nil, []term.Quad{namedQuad}},
			{"s only default", defaultQuad.Subject, nil, nil, nil, []term.Quad{defaultQuad}},
			{"s only named", namedQuad.Subject, nil, nil, nil, []term.Quad{namedQuad}},
			{"p only default", nil, defaultQuad.Predicate, nil, nil, []term.Quad{defaultQuad}},
			{"o only named", nil, nil, namedQuad.Object, nil, []term.Quad{namedQuad}},
			{"g bound default", nil, nil, nil, term.DefaultGraph{}, []term.Quad{defaultQuad}},
			{"g bound named", nil, nil, nil, namedQuad.GraphName, []term.Quad{namedQuad}},
			{"all unbound", nil, nil, nil, nil, []term.Quad{defaultQuad, namedQuad}},
		}

		for _, c := range cases {
			got := collect(t, r.QuadsForPattern(c.s, c.p, c.o, c.g))
			sortQuads(got)
			sortQuads(c.want)
			if len(got) != len(c.want) {
				t.Fatalf("%s: got %d quads, want %d", c.name, len(got), len(c.want))
			}
			for i := range got {
				if quadKey(got[i]) != quadKey(c.want[i]) {
					t.Fatalf("%s: quad %d mismatch: got %#v want %#v", c.name, i, got[i], c.want[i])
				}
			}
		}
		return nil
	})
}

func TestSPOPatternChecksDefaultGraphMembership(t *testing.T) {
	db := openTestDB(t)
	s, p, o := node("s"), node("p"), node("o")

	db.View(func(tx *bolt.Tx) error {
		r := NewReader(tx)
		got := collect(t, r.QuadsForPattern(s, p, o, nil))
		if len(got) != 0 {
			t.Fatalf("expected no quads for an unstored s,p,o pattern, got %d", len(got))
		}
		return nil
	})
}

func TestRemoveEncodedIsIdempotentAndSymmetric(t *testing.T) {
	db := openTestDB(t)
	q := term.Quad{Subject: node("s"), Predicate: node("p"), Object: node("o"), GraphName: node("g")}

	db.Update(func(tx *bolt.Tx) error {
		w := NewWriter(tx)
		return w.InsertEncoded(q)
	})
	db.Update(func(tx *bolt.Tx) error {
		w := NewWriter(tx)
		if err := w.RemoveEncoded(q); err != nil {
			return err
		}
		return w.RemoveEncoded(q) // second removal must be a no-op, not an error
	})
	db.View(func(tx *bolt.Tx) error {
		r := NewReader(tx)
		got := collect(t, r.QuadsForPattern(nil, nil, nil, nil))
		if len(got) != 0 {
			t.Fatalf("expected store empty after removal, got %d quads", len(got))
		}
		if !r.ContainsNamedGraph(q.GraphName) {
			t.Fatalf("removing a quad must not forget its graph name")
		}
		return nil
	})
}

func TestClearGraphKeepsGraphNameRemoveForgetsIt(t *testing.T) {
	db := openTestDB(t)
	g := node("g")
	q := term.Quad{Subject: node("s"), Predicate: node("p"), Object: node("o"), GraphName: g}

	db.Update(func(tx *bolt.Tx) error {
		w := NewWriter(tx)
		return w.InsertEncoded(q)
	})
	db.Update(func(tx *bolt.Tx) error {
		w := NewWriter(tx)
		return w.ClearGraph(g)
	})
	db.View(func(tx *bolt.Tx) error {
		r := NewReader(tx)
		if !r.ContainsNamedGraph(g) {
			t.Fatalf("ClearGraph must keep the graph name")
		}
		got := collect(t, r.QuadsForPattern(nil, nil, nil, g))
		if len(got) != 0 {
			t.Fatalf("ClearGraph must remove all of the graph's quads")
		}
		return nil
	})

	db.Update(func(tx *bolt.Tx) error {
		w := NewWriter(tx)
		return w.InsertEncoded(q)
	})
	db.Update(func(tx *bolt.Tx) error {
		w := NewWriter(tx)
		return w.RemoveNamedGraph(g)
	})
	db.View(func(tx *bolt.Tx) error {
		r := NewReader(tx)
		if r.ContainsNamedGraph(g) {
			t.Fatalf("RemoveNamedGraph must forget the graph name")
		}
		return nil
	})
}

func TestClearAllEmptiesEveryIndex(t *testing.T) {
	db := openTestDB(t)
	db.Update(func(tx *bolt.Tx) error {
		w := NewWriter(tx)
		w.InsertEncoded(term.Quad{Subject: node("s1"), Predicate: node("p1"), Object: node("o1"), GraphName: term.DefaultGraph{}})
		w.InsertEncoded(term.Quad{Subject: node("s2"), Predicate: node("p2"), Object: node("o2"), GraphName: node("g")})
		return nil
	})
	db.Update(func(tx *bolt.Tx) error {
		w := NewWriter(tx)
		return w.ClearAll()
	})
	db.View(func(tx *bolt.Tx) error {
		r := NewReader(tx)
		got := collect(t, r.QuadsForPattern(nil, nil, nil, nil))
		if len(got) != 0 {
			t.Fatalf("expected empty store after ClearAll, got %d quads", len(got))
		}
		var graphs []term.Term
		r.NamedGraphs(func(g term.Term) bool {
			graphs = append(graphs, g)
			return true
		})
		if len(graphs) != 0 {
			t.Fatalf("expected no named graphs after ClearAll, got %d", len(graphs))
		}
		return nil
	})
}
