package graphdb

import (
	"bytes"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/relationlabs/graphdb/rdf"
)

func tempDBPath(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp("", "graphdb-store-")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	f.Close()
	os.Remove(f.Name())
	t.Cleanup(func() { os.Remove(f.Name()) })
	return f.Name()
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(tempDBPath(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func collectQuads(t *testing.T, s *Store, subj, pred, obj rdf.Term, graph rdf.GraphName) []rdf.Quad {
	t.Helper()
	var out []rdf.Quad
	for q, err := range s.QuadsForPattern(subj, pred, obj, graph) {
		if err != nil {
			t.Fatalf("QuadsForPattern: %v", err)
		}
		out = append(out, q)
	}
	return out
}

func TestInsertAndRemoveQuadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	q := rdf.Quad{
		Subject:   rdf.NewNamedNode("http://example/s"),
		Predicate: rdf.NewNamedNode("http://example/p"),
		Object:    rdf.NewLiteral("hello"),
		Graph:     rdf.DefaultGraphName{},
	}

	if err := s.InsertQuad(q); err != nil {
		t.Fatalf("InsertQuad: %v", err)
	}
	got := collectQuads(t, s, nil, nil, nil, nil)
	if len(got) != 1 || got[0].String() != q.String() {
		t.Fatalf("got %v, want one quad %v", got, q)
	}

	if err := s.RemoveQuad(q); err != nil {
		t.Fatalf("RemoveQuad: %v", err)
	}
	got = collectQuads(t, s, nil, nil, nil, nil)
	if len(got) != 0 {
		t.Fatalf("expected store empty after RemoveQuad, got %d", len(got))
	}
}

func TestRemoveQuadNotFound(t *testing.T) {
	s := openTestStore(t)
	q := rdf.Quad{
		Subject:   rdf.NewNamedNode("http://example/s"),
		Predicate: rdf.NewNamedNode("http://example/p"),
		Object:    rdf.NewLiteral("hello"),
		Graph:     rdf.DefaultGraphName{},
	}
	if err := s.RemoveQuad(q); err != ErrNotFound {
		t.Fatalf("RemoveQuad on unstored quad = %v, want ErrNotFound", err)
	}
}

func TestQuadsForPatternUnresolvableBoundTermYieldsNothing(t *testing.T) {
	s := openTestStore(t)
	if err := s.InsertQuad(rdf.Quad{
		Subject:   rdf.NewNamedNode("http://example/s"),
		Predicate: rdf.NewNamedNode("http://example/p"),
		Object:    rdf.NewLiteral("hello"),
		Graph:     rdf.DefaultGraphName{},
	}); err != nil {
		t.Fatalf("InsertQuad: %v", err)
	}

	never := rdf.NewNamedNode("http://example/never-inserted")
	got := collectQuads(t, s, never, nil, nil, nil)
	if len(got) != 0 {
		t.Fatalf("expected no match for an unregistered bound term, got %d", len(got))
	}
}

func TestNamedGraphLifecycle(t *testing.T) {
	s := openTestStore(t)
	g := rdf.NewNamedNode("http://example/g")

	if ok, err := s.ContainsNamedGraph(g); err != nil || ok {
		t.Fatalf("ContainsNamedGraph before insert = %v, %v; want false, nil", ok, err)
	}

	if err := s.InsertNamedGraph(g); err != nil {
		t.Fatalf("InsertNamedGraph: %v", err)
	}
	if ok, err := s.ContainsNamedGraph(g); err != nil || !ok {
		t.Fatalf("ContainsNamedGraph after insert = %v, %v; want true, nil", ok, err)
	}

	q := rdf.Quad{
		Subject:   rdf.NewNamedNode("http://example/s"),
		Predicate: rdf.NewNamedNode("http://example/p"),
		Object:    rdf.NewNamedNode("http://example/o"),
		Graph:     g,
	}
	if err := s.InsertQuad(q); err != nil {
		t.Fatalf("InsertQuad: %v", err)
	}

	if err := s.ClearGraph(g); err != nil {
		t.Fatalf("ClearGraph: %v", err)
	}
	if got := collectQuads(t, s, nil, nil, nil, g); len(got) != 0 {
		t.Fatalf("ClearGraph left %d quads behind", len(got))
	}
	if ok, _ := s.ContainsNamedGraph(g); !ok {
		t.Fatalf("ClearGraph must not forget the graph name")
	}

	if err := s.InsertQuad(q); err != nil {
		t.Fatalf("InsertQuad: %v", err)
	}
	if err := s.RemoveNamedGraph(g); err != nil {
		t.Fatalf("RemoveNamedGraph: %v", err)
	}
	if ok, _ := s.ContainsNamedGraph(g); ok {
		t.Fatalf("RemoveNamedGraph must forget the graph name")
	}
	if got := collectQuads(t, s, nil, nil, nil, g); len(got) != 0 {
		t.Fatalf("RemoveNamedGraph left %d quads behind", len(got))
	}
}

func TestNamedGraphsEnumeratesEveryRecordedGraph(t *testing.T) {
	s := openTestStore(t)
	g1 := rdf.NewNamedNode("http://example/g1")
	g2 := rdf.NewNamedNode("http://example/g2")
	if err := s.InsertNamedGraph(g1); err != nil {
		t.Fatalf("InsertNamedGraph: %v", err)
	}
	if err := s.InsertNamedGraph(g2); err != nil {
		t.Fatalf("InsertNamedGraph: %v", err)
	}

	var got []string
	for g, err := range s.NamedGraphs() {
		if err != nil {
			t.Fatalf("NamedGraphs: %v", err)
		}
		got = append(got, g.String())
	}
	sort.Strings(got)
	want := []string{g1.String(), g2.String()}
	sort.Strings(want)
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("NamedGraphs() = %v, want %v", got, want)
	}
}

func TestClearAllEmptiesStoreAndDictionary(t *testing.T) {
	s := openTestStore(t)
	if err := s.InsertQuad(rdf.Quad{
		Subject:   rdf.NewNamedNode("http://example/s"),
		Predicate: rdf.NewNamedNode("http://example/p"),
		Object:    rdf.NewLiteral(strings.Repeat("x", 64)),
		Graph:     rdf.NewNamedNode("http://example/g"),
	}); err != nil {
		t.Fatalf("InsertQuad: %v", err)
	}

	if err := s.ClearAll(); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if got := collectQuads(t, s, nil, nil, nil, nil); len(got) != 0 {
		t.Fatalf("expected empty store after ClearAll, got %d quads", len(got))
	}
	st, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.NumDictEntries != 0 {
		t.Fatalf("expected empty dictionary after ClearAll, got %d entries", st.NumDictEntries)
	}
}

func TestQueryUpdateWithoutEvaluator(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Query("SELECT * WHERE { ?s ?p ?o }"); err != ErrNoEvaluator {
		t.Fatalf("Query without evaluator = %v, want ErrNoEvaluator", err)
	}
	if err := s.Update("INSERT DATA { <http://x/s> <http://x/p> <http://x/o> }"); err != ErrNoEvaluator {
		t.Fatalf("Update without evaluator = %v, want ErrNoEvaluator", err)
	}
}

type stubEvaluator struct{}

func (stubEvaluator) Query(s *Store, sparql string) ([]byte, error) {
	return []byte(sparql), nil
}

func (stubEvaluator) Update(s *Store, sparql string) error {
	return nil
}

func TestQueryUpdateWithEvaluator(t *testing.T) {
	s, err := Open(tempDBPath(t), WithEvaluator(stubEvaluator{}))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	got, err := s.Query("SELECT * WHERE { ?s ?p ?o }")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if string(got) != "SELECT * WHERE { ?s ?p ?o }" {
		t.Fatalf("Query() = %q", got)
	}
	if err := s.Update("anything"); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestLoadGraphThenDumpGraphRoundTrips(t *testing.T) {
	s := openTestStore(t)
	input := "<http://example/s> <http://example/p> \"o\" <http://example/g> .\n" +
		"<http://example/s2> <http://example/p> _:b1 <http://example/g> .\n"

	g := rdf.NewNamedNode("http://example/g")
	n, err := s.LoadGraph(strings.NewReader(input), rdf.NQuads, g, "")
	if err != nil {
		t.Fatalf("LoadGraph: %v", err)
	}
	if n != 2 {
		t.Fatalf("LoadGraph inserted %d quads, want 2", n)
	}

	got := collectQuads(t, s, nil, nil, nil, g)
	if len(got) != 2 {
		t.Fatalf("expected both quads assigned to %s, got %d", g, len(got))
	}

	var buf bytes.Buffer
	if err := s.DumpGraph(&buf, rdf.NQuads, g); err != nil {
		t.Fatalf("DumpGraph: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("DumpGraph wrote %d lines, want 2", len(lines))
	}
}

func TestLoadGraphNTriplesIntoNamedGraphDumpOmitsGraphTerm(t *testing.T) {
	s := openTestStore(t)
	input := "<http://example/s> <http://example/p> <http://example/o> .\n"
	target := rdf.NewNamedNode("http://example/loaded-into")

	n, err := s.LoadGraph(strings.NewReader(input), rdf.NTriples, target, "")
	if err != nil {
		t.Fatalf("LoadGraph: %v", err)
	}
	if n != 1 {
		t.Fatalf("LoadGraph inserted %d quads, want 1", n)
	}

	got := collectQuads(t, s, nil, nil, nil, target)
	if len(got) != 1 {
		t.Fatalf("expected the triple assigned to %s, got %d quads", target, len(got))
	}

	var buf bytes.Buffer
	if err := s.DumpGraph(&buf, rdf.NTriples, target); err != nil {
		t.Fatalf("DumpGraph: %v", err)
	}
	if strings.Contains(buf.String(), target.IRI()) {
		t.Fatalf("NTriples dump must omit the graph term, got %q", buf.String())
	}
}
