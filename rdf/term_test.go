package rdf

import (
	"testing"
	"time"
)

func TestNewLiteralInfersDatatype(t *testing.T) {
	tests := []struct {
		v    interface{}
		want NamedNode
	}{
		{true, XSDBoolean},
		{int8(1), XSDByte},
		{int16(1), XSDShort},
		{int32(1), XSDInt},
		{int64(1), XSDLong},
		{uint8(1), XSDUnsignedByte},
		{uint16(1), XSDUnsignedShort},
		{uint32(1), XSDUnsignedInt},
		{uint64(1), XSDUnsignedLong},
		{float32(1.5), XSDFloat},
		{float64(1.5), XSDDouble},
		{"hello", XSDString},
		{time.Unix(0, 0).UTC(), XSDDateTime},
	}
	for _, tc := range tests {
		got := NewLiteral(tc.v)
		if got.DataType() != tc.want {
			t.Errorf("NewLiteral(%#v).DataType() = %v, want %v", tc.v, got.DataType(), tc.want)
		}
	}
}

func TestLangLiteral(t *testing.T) {
	l := NewLangLiteral("hello", "en")
	if l.Lang() != "en" {
		t.Errorf("Lang() = %q, want %q", l.Lang(), "en")
	}
	if l.DataType() != RDFLangString {
		t.Errorf("DataType() = %v, want rdf:langString", l.DataType())
	}
}

func TestBlankNodeGeneratorIsMonotonic(t *testing.T) {
	var g BlankNodeGenerator
	first := g.Next()
	second := g.Next()
	if first.ID() == second.ID() {
		t.Fatalf("expected distinct ids, got %q twice", first.ID())
	}
	if first.ID() != "b0" || second.ID() != "b1" {
		t.Errorf("got %q, %q; want b0, b1", first.ID(), second.ID())
	}
}

func TestQuadStringDefaultGraphOmitsGraphTerm(t *testing.T) {
	q := Quad{
		Subject:   NewNamedNode("http://example/s"),
		Predicate: NewNamedNode("http://example/p"),
		Object:    NewLiteral("o"),
		Graph:     DefaultGraphName{},
	}
	want := `<http://example/s> <http://example/p> "o" .`
	if got := q.String(); got != want {
		t.Errorf("Quad.String() = %q, want %q", got, want)
	}
}

func TestQuadStringNamedGraphIncludesGraphTerm(t *testing.T) {
	q := Quad{
		Subject:   NewBlankNode("x"),
		Predicate: NewNamedNode("http://example/p"),
		Object:    NewNamedNode("http://example/o"),
		Graph:     NewNamedNode("http://example/g"),
	}
	want := `_:x <http://example/p> <http://example/o> <http://example/g> .`
	if got := q.String(); got != want {
		t.Errorf("Quad.String() = %q, want %q", got, want)
	}
}
