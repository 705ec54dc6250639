package graphdb

import (
	"github.com/boltdb/bolt"

	"github.com/relationlabs/graphdb/internal/bighash"
	"github.com/relationlabs/graphdb/internal/dict"
	"github.com/relationlabs/graphdb/internal/smallstr"
	"github.com/relationlabs/graphdb/internal/term"
	"github.com/relationlabs/graphdb/rdf"
)

// tryLookupHash computes value's content hash and reports whether it
// is already registered in the dictionary, without writing anything.
// Pattern matching against an unregistered Big* value can never find a
// match (spec.md §4.5's "unresolvable bound terms" short-circuit), so
// the caller treats a false ok as "this pattern matches nothing".
func tryLookupHash(tx *bolt.Tx, value string, maxLen int) (bighash.Hash, bool) {
	if maxLen > 0 && len(value) > maxLen {
		return bighash.Hash{}, false
	}
	h := bighash.New(value)
	return h, dict.Contains(tx, h)
}

func tryEncodePiece(tx *bolt.Tx, value string, maxLen int) (piece, bool) {
	if s, err := smallstr.New(value); err == nil {
		return piece{small: s}, true
	}
	h, ok := tryLookupHash(tx, value, maxLen)
	if !ok {
		return piece{}, false
	}
	return piece{hash: h, isBig: true}, true
}

// tryEncodeTerm is the read-only counterpart of encodeTerm: it never
// registers a lexical form in the dictionary, so an IRI, blank node
// label, or literal value/datatype/language that hasn't previously
// been inserted resolves to ok=false instead of a fresh hash.
func tryEncodeTerm(tx *bolt.Tx, t rdf.Term, maxLen int) (term.Term, bool) {
	switch v := t.(type) {
	case rdf.NamedNode:
		h, ok := tryLookupHash(tx, v.IRI(), maxLen)
		if !ok {
			return nil, false
		}
		return term.NamedNode{IRIID: h}, true
	case rdf.BlankNode:
		if s, err := smallstr.New(v.ID()); err == nil {
			return term.SmallBlankNode{ID: s}, true
		}
		h, ok := tryLookupHash(tx, v.ID(), maxLen)
		if !ok {
			return nil, false
		}
		return term.BigBlankNode{IDID: h}, true
	case rdf.Literal:
		return tryEncodeLiteral(tx, v, maxLen)
	default:
		panic("graphdb: unknown rdf.Term implementation")
	}
}

func tryEncodeLiteral(tx *bolt.Tx, l rdf.Literal, maxLen int) (term.Term, bool) {
	if l.Lang() != "" {
		return tryEncodeLangLiteral(tx, l, maxLen)
	}
	if t, ok, err := encodeSpecializedLiteral(l); ok || err != nil {
		return t, ok
	}
	if l.DataType() == rdf.XSDString {
		return tryEncodeStringLiteral(tx, l.Lexical(), maxLen)
	}
	return tryEncodeTypedLiteral(tx, l, maxLen)
}

func tryEncodeLangLiteral(tx *bolt.Tx, l rdf.Literal, maxLen int) (term.Term, bool) {
	value, ok := tryEncodePiece(tx, l.Lexical(), maxLen)
	if !ok {
		return nil, false
	}
	lang, ok := tryEncodePiece(tx, l.Lang(), maxLen)
	if !ok {
		return nil, false
	}
	switch {
	case !value.isBig && !lang.isBig:
		return term.SmallSmallLangStringLiteral{Value: value.small, Language: lang.small}, true
	case !value.isBig && lang.isBig:
		return term.SmallBigLangStringLiteral{Value: value.small, LanguageID: lang.hash}, true
	case value.isBig && !lang.isBig:
		return term.BigSmallLangStringLiteral{ValueID: value.hash, Language: lang.small}, true
	default:
		return term.BigBigLangStringLiteral{ValueID: value.hash, LanguageID: lang.hash}, true
	}
}

func tryEncodeTypedLiteral(tx *bolt.Tx, l rdf.Literal, maxLen int) (term.Term, bool) {
	dt, ok := tryLookupHash(tx, l.DataType().IRI(), maxLen)
	if !ok {
		return nil, false
	}
	if s, err := smallstr.New(l.Lexical()); err == nil {
		return term.SmallTypedLiteral{Value: s, DatatypeID: dt}, true
	}
	vh, ok := tryLookupHash(tx, l.Lexical(), maxLen)
	if !ok {
		return nil, false
	}
	return term.BigTypedLiteral{ValueID: vh, DatatypeID: dt}, true
}

func tryEncodeStringLiteral(tx *bolt.Tx, value string, maxLen int) (term.Term, bool) {
	if s, err := smallstr.New(value); err == nil {
		return term.SmallStringLiteral{Value: s}, true
	}
	h, ok := tryLookupHash(tx, value, maxLen)
	if !ok {
		return nil, false
	}
	return term.BigStringLiteral{ValueID: h}, true
}

// tryEncodeGraphName is tryEncodeTerm widened to accept DefaultGraphName.
func tryEncodeGraphName(tx *bolt.Tx, g rdf.GraphName, maxLen int) (term.Term, bool) {
	if _, ok := g.(rdf.DefaultGraphName); ok {
		return term.DefaultGraph{}, true
	}
	return tryEncodeTerm(tx, g.(rdf.Term), maxLen)
}
