package rdf

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func decodeAll(t *testing.T, input string) []Quad {
	t.Helper()
	d := NewDecoder(strings.NewReader(input))
	var out []Quad
	for {
		q, err := d.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		out = append(out, q)
	}
	return out
}

func TestDecodeDefaultGraphTriple(t *testing.T) {
	quads := decodeAll(t, `<http://example/s> <http://example/p> <http://example/o> .`+"\n")
	if len(quads) != 1 {
		t.Fatalf("got %d quads, want 1", len(quads))
	}
	q := quads[0]
	if _, ok := q.Graph.(DefaultGraphName); !ok {
		t.Errorf("expected default graph, got %#v", q.Graph)
	}
	if q.Subject.String() != "http://example/s" {
		t.Errorf("subject = %q", q.Subject.String())
	}
}

func TestDecodeNamedGraphQuad(t *testing.T) {
	quads := decodeAll(t, `<http://example/s> <http://example/p> <http://example/o> <http://example/g> .`+"\n")
	if len(quads) != 1 {
		t.Fatalf("got %d quads, want 1", len(quads))
	}
	g, ok := quads[0].Graph.(NamedNode)
	if !ok || g.IRI() != "http://example/g" {
		t.Errorf("graph = %#v", quads[0].Graph)
	}
}

func TestDecodeBlankNodeSubjectAndGraph(t *testing.T) {
	quads := decodeAll(t, `_:a <http://example/p> <http://example/o> _:g .`+"\n")
	if len(quads) != 1 {
		t.Fatalf("got %d quads, want 1", len(quads))
	}
	q := quads[0]
	if bn, ok := q.Subject.(BlankNode); !ok || bn.ID() != "a" {
		t.Errorf("subject = %#v", q.Subject)
	}
	if bn, ok := q.Graph.(BlankNode); !ok || bn.ID() != "g" {
		t.Errorf("graph = %#v", q.Graph)
	}
}

func TestDecodeLangTaggedLiteral(t *testing.T) {
	quads := decodeAll(t, `<http://example/s> <http://example/p> "hei"@nb-no .`+"\n")
	lit, ok := quads[0].Object.(Literal)
	if !ok {
		t.Fatalf("object is %T, want Literal", quads[0].Object)
	}
	if lit.Lexical() != "hei" || lit.Lang() != "nb-no" {
		t.Errorf("got %q@%q", lit.Lexical(), lit.Lang())
	}
}

func TestDecodeTypedLiteral(t *testing.T) {
	quads := decodeAll(t, `<http://example/s> <http://example/p> "42"^^<http://www.w3.org/2001/XMLSchema#integer> .`+"\n")
	lit, ok := quads[0].Object.(Literal)
	if !ok {
		t.Fatalf("object is %T, want Literal", quads[0].Object)
	}
	if lit.Lexical() != "42" || lit.DataType() != XSDInteger {
		t.Errorf("got %q^^%v", lit.Lexical(), lit.DataType())
	}
}

func TestDecodeSkipsCommentsAndBlankLines(t *testing.T) {
	input := "# a leading comment\n\n<http://example/s> <http://example/p> <http://example/o> . # trailing\n"
	quads := decodeAll(t, input)
	if len(quads) != 1 {
		t.Fatalf("got %d quads, want 1", len(quads))
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := Quad{
		Subject:   NewNamedNode("http://example/s"),
		Predicate: NewNamedNode("http://example/p"),
		Object:    NewLangLiteral("hello", "en"),
		Graph:     NewNamedNode("http://example/g"),
	}
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(want); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	quads := decodeAll(t, buf.String())
	if len(quads) != 1 {
		t.Fatalf("got %d quads, want 1", len(quads))
	}
	got := quads[0]
	if got.Subject.String() != want.Subject.String() || got.Graph.String() != want.Graph.String() {
		t.Errorf("roundtrip mismatch: got %#v, want %#v", got, want)
	}
	lit := got.Object.(Literal)
	if lit.Lexical() != "hello" || lit.Lang() != "en" {
		t.Errorf("object roundtrip mismatch: %#v", lit)
	}
}

func TestDecodeUnterminatedURIIsError(t *testing.T) {
	d := NewDecoder(strings.NewReader("<http://example/s "))
	if _, err := d.Decode(); err == nil {
		t.Fatal("expected an error for an unterminated URI")
	}
}
