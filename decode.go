package graphdb

import (
	"github.com/boltdb/bolt"

	"github.com/relationlabs/graphdb/internal/bighash"
	"github.com/relationlabs/graphdb/internal/dict"
	"github.com/relationlabs/graphdb/internal/term"
	"github.com/relationlabs/graphdb/rdf"
)

// decodeTerm is the inverse of encodeTerm: it resolves any
// dictionary-addressed component and reconstructs a user-facing
// rdf.Term. A Big* term whose hash has no dictionary entry is a hard
// failure (ErrDanglingHash) — invariant I1 says that should never
// happen outside a bug or external corruption.
func decodeTerm(tx *bolt.Tx, t term.Term) (rdf.Term, error) {
	switch v := t.(type) {
	case term.NamedNode:
		iri, err := lookupStr(tx, v.IRIID)
		if err != nil {
			return nil, err
		}
		return rdf.NewNamedNode(iri), nil
	case term.NumericalBlankNode:
		return rdf.NewBlankNode(numericalBlankLabel(v.ID)), nil
	case term.SmallBlankNode:
		return rdf.NewBlankNode(v.ID.String()), nil
	case term.BigBlankNode:
		id, err := lookupStr(tx, v.IDID)
		if err != nil {
			return nil, err
		}
		return rdf.NewBlankNode(id), nil
	case term.SmallStringLiteral:
		return rdf.NewTypedLiteral(v.Value.String(), rdf.XSDString), nil
	case term.BigStringLiteral:
		s, err := lookupStr(tx, v.ValueID)
		if err != nil {
			return nil, err
		}
		return rdf.NewTypedLiteral(s, rdf.XSDString), nil
	case term.SmallSmallLangStringLiteral:
		return rdf.NewLangLiteral(v.Value.String(), v.Language.String()), nil
	case term.SmallBigLangStringLiteral:
		lang, err := lookupStr(tx, v.LanguageID)
		if err != nil {
			return nil, err
		}
		return rdf.NewLangLiteral(v.Value.String(), lang), nil
	case term.BigSmallLangStringLiteral:
		value, err := lookupStr(tx, v.ValueID)
		if err != nil {
			return nil, err
		}
		return rdf.NewLangLiteral(value, v.Language.String()), nil
	case term.BigBigLangStringLiteral:
		value, err := lookupStr(tx, v.ValueID)
		if err != nil {
			return nil, err
		}
		lang, err := lookupStr(tx, v.LanguageID)
		if err != nil {
			return nil, err
		}
		return rdf.NewLangLiteral(value, lang), nil
	case term.SmallTypedLiteral:
		dt, err := lookupStr(tx, v.DatatypeID)
		if err != nil {
			return nil, err
		}
		return rdf.NewTypedLiteral(v.Value.String(), rdf.NewNamedNode(dt)), nil
	case term.BigTypedLiteral:
		value, err := lookupStr(tx, v.ValueID)
		if err != nil {
			return nil, err
		}
		dt, err := lookupStr(tx, v.DatatypeID)
		if err != nil {
			return nil, err
		}
		return rdf.NewTypedLiteral(value, rdf.NewNamedNode(dt)), nil
	case term.BooleanLiteral:
		return rdf.NewLiteral(v.Value), nil
	case term.FloatLiteral:
		return rdf.NewLiteral(v.Value), nil
	case term.DoubleLiteral:
		return rdf.NewLiteral(v.Value), nil
	case term.IntegerLiteral:
		return rdf.NewTypedLiteral(formatInt64(v.Value), rdf.XSDInteger), nil
	case term.DecimalLiteral:
		return rdf.NewTypedLiteral(v.Value.String(), rdf.XSDDecimal), nil
	case term.DateTimeLiteral:
		return rdf.NewTypedLiteral(v.Value.String(), rdf.XSDDateTime), nil
	case term.TimeLiteral:
		return rdf.NewTypedLiteral(v.Value.String(), rdf.XSDTime), nil
	case term.DateLiteral:
		return rdf.NewTypedLiteral(v.Value.String(), rdf.XSDDate), nil
	case term.GYearMonthLiteral:
		return rdf.NewTypedLiteral(v.Value.String(), rdf.XSDGYearMonth), nil
	case term.GYearLiteral:
		return rdf.NewTypedLiteral(v.Value.String(), rdf.XSDGYear), nil
	case term.GMonthDayLiteral:
		return rdf.NewTypedLiteral(v.Value.String(), rdf.XSDGMonthDay), nil
	case term.GDayLiteral:
		return rdf.NewTypedLiteral(v.Value.String(), rdf.XSDGDay), nil
	case term.GMonthLiteral:
		return rdf.NewTypedLiteral(v.Value.String(), rdf.XSDGMonth), nil
	case term.DurationLiteral:
		return rdf.NewTypedLiteral(v.Value.String(), rdf.XSDDuration), nil
	case term.YearMonthDurationLiteral:
		return rdf.NewTypedLiteral(v.Value.String(), rdf.XSDYearMonthDuration), nil
	case term.DayTimeDurationLiteral:
		return rdf.NewTypedLiteral(v.Value.String(), rdf.XSDDayTimeDuration), nil
	default:
		return nil, ErrCorruptData
	}
}

// decodeGraphName is decodeTerm specialized to the graph-name slot,
// where DefaultGraph is a legal value with no dictionary lookup.
func decodeGraphName(tx *bolt.Tx, t term.Term) (rdf.GraphName, error) {
	if _, ok := t.(term.DefaultGraph); ok {
		return rdf.DefaultGraphName{}, nil
	}
	rt, err := decodeTerm(tx, t)
	if err != nil {
		return nil, err
	}
	gn, ok := rt.(rdf.GraphName)
	if !ok {
		return nil, ErrCorruptData
	}
	return gn, nil
}

// decodeQuad decodes every component of an encoded quad.
func decodeQuad(tx *bolt.Tx, q term.Quad) (rdf.Quad, error) {
	s, err := decodeTerm(tx, q.Subject)
	if err != nil {
		return rdf.Quad{}, err
	}
	p, err := decodeTerm(tx, q.Predicate)
	if err != nil {
		return rdf.Quad{}, err
	}
	pn, ok := p.(rdf.NamedNode)
	if !ok {
		return rdf.Quad{}, ErrCorruptData
	}
	o, err := decodeTerm(tx, q.Object)
	if err != nil {
		return rdf.Quad{}, err
	}
	g, err := decodeGraphName(tx, q.GraphName)
	if err != nil {
		return rdf.Quad{}, err
	}
	return rdf.Quad{Subject: s, Predicate: pn, Object: o, Graph: g}, nil
}

func lookupStr(tx *bolt.Tx, h bighash.Hash) (string, error) {
	s, err := dict.GetStr(tx, h)
	if err != nil {
		return "", ErrDanglingHash
	}
	return s, nil
}

func formatInt64(v int64) string {
	// avoid importing strconv twice across files; kept local and tiny.
	if v == 0 {
		return "0"
	}
	neg := v < 0
	u := uint64(v)
	if neg {
		u = uint64(-v)
	}
	var buf [20]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// numericalBlankLabel renders a NumericalBlankNode's raw 128-bit id as
// a stable string label ("nXXXX...", hex).
func numericalBlankLabel(id [16]byte) string {
	const hextable = "0123456789abcdef"
	out := make([]byte, 1+len(id)*2)
	out[0] = 'n'
	for i, c := range id {
		out[1+i*2] = hextable[c>>4]
		out[1+i*2+1] = hextable[c&0x0f]
	}
	return string(out)
}
