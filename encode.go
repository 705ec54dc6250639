package graphdb

import (
	"strconv"

	"github.com/boltdb/bolt"

	"github.com/relationlabs/graphdb/internal/bighash"
	"github.com/relationlabs/graphdb/internal/decimal"
	"github.com/relationlabs/graphdb/internal/dict"
	"github.com/relationlabs/graphdb/internal/smallstr"
	"github.com/relationlabs/graphdb/internal/term"
	"github.com/relationlabs/graphdb/internal/xsdtime"
	"github.com/relationlabs/graphdb/rdf"
)

// encodeTerm translates a user-facing rdf.Term into its EncodedTerm,
// registering any lexical form that doesn't fit inline in the
// dictionary. Numeric, boolean, and temporal XSD datatypes with a
// parseable lexical form get their specialized variant instead of a
// generic typed literal; an unparseable lexical form for a recognized
// datatype still falls back to a typed literal rather than failing.
func encodeTerm(tx *bolt.Tx, t rdf.Term, maxLen int) (term.Term, error) {
	switch v := t.(type) {
	case rdf.NamedNode:
		h, err := dict.InsertStr(tx, v.IRI(), maxLen)
		if err != nil {
			return nil, err
		}
		return term.NamedNode{IRIID: h}, nil
	case rdf.BlankNode:
		if s, err := smallstr.New(v.ID()); err == nil {
			return term.SmallBlankNode{ID: s}, nil
		}
		h, err := dict.InsertStr(tx, v.ID(), maxLen)
		if err != nil {
			return nil, err
		}
		return term.BigBlankNode{IDID: h}, nil
	case rdf.Literal:
		return encodeLiteral(tx, v, maxLen)
	default:
		panic("graphdb: unknown rdf.Term implementation")
	}
}

// encodeGraphName is encodeTerm widened to accept DefaultGraphName,
// the one GraphName value with no dictionary-addressed representation.
func encodeGraphName(tx *bolt.Tx, g rdf.GraphName, maxLen int) (term.Term, error) {
	if _, ok := g.(rdf.DefaultGraphName); ok {
		return term.DefaultGraph{}, nil
	}
	return encodeTerm(tx, g.(rdf.Term), maxLen)
}

func encodeLiteral(tx *bolt.Tx, l rdf.Literal, maxLen int) (term.Term, error) {
	if l.Lang() != "" {
		return encodeLangLiteral(tx, l, maxLen)
	}
	if t, ok, err := encodeSpecializedLiteral(l); ok || err != nil {
		return t, err
	}
	if l.DataType() == rdf.XSDString {
		return encodeStringLiteral(tx, l.Lexical(), maxLen)
	}
	return encodeTypedLiteral(tx, l, maxLen)
}

// piece is either a SmallString (isBig=false) or a dictionary hash
// (isBig=true).
type piece struct {
	small smallstr.SmallString
	hash  bighash.Hash
	isBig bool
}

// encodePiece registers value in the dictionary only if it doesn't fit
// inline, so lang-string value/language pairs can be combined into
// whichever of the four {Small,Big}{Small,Big} shapes applies.
func encodePiece(tx *bolt.Tx, value string, maxLen int) (piece, error) {
	if s, err := smallstr.New(value); err == nil {
		return piece{small: s}, nil
	}
	h, err := dict.InsertStr(tx, value, maxLen)
	if err != nil {
		return piece{}, err
	}
	return piece{hash: h, isBig: true}, nil
}

func encodeLangLiteral(tx *bolt.Tx, l rdf.Literal, maxLen int) (term.Term, error) {
	value, err := encodePiece(tx, l.Lexical(), maxLen)
	if err != nil {
		return nil, err
	}
	lang, err := encodePiece(tx, l.Lang(), maxLen)
	if err != nil {
		return nil, err
	}
	switch {
	case !value.isBig && !lang.isBig:
		return term.SmallSmallLangStringLiteral{Value: value.small, Language: lang.small}, nil
	case !value.isBig && lang.isBig:
		return term.SmallBigLangStringLiteral{Value: value.small, LanguageID: lang.hash}, nil
	case value.isBig && !lang.isBig:
		return term.BigSmallLangStringLiteral{ValueID: value.hash, Language: lang.small}, nil
	default:
		return term.BigBigLangStringLiteral{ValueID: value.hash, LanguageID: lang.hash}, nil
	}
}

func encodeTypedLiteral(tx *bolt.Tx, l rdf.Literal, maxLen int) (term.Term, error) {
	if s, err := smallstr.New(l.Lexical()); err == nil {
		dt, err := dict.InsertStr(tx, l.DataType().IRI(), maxLen)
		if err != nil {
			return nil, err
		}
		return term.SmallTypedLiteral{Value: s, DatatypeID: dt}, nil
	}
	vh, err := dict.InsertStr(tx, l.Lexical(), maxLen)
	if err != nil {
		return nil, err
	}
	dt, err := dict.InsertStr(tx, l.DataType().IRI(), maxLen)
	if err != nil {
		return nil, err
	}
	return term.BigTypedLiteral{ValueID: vh, DatatypeID: dt}, nil
}

func encodeStringLiteral(tx *bolt.Tx, value string, maxLen int) (term.Term, error) {
	if s, err := smallstr.New(value); err == nil {
		return term.SmallStringLiteral{Value: s}, nil
	}
	h, err := dict.InsertStr(tx, value, maxLen)
	if err != nil {
		return nil, err
	}
	return term.BigStringLiteral{ValueID: h}, nil
}

// encodeSpecializedLiteral recognizes the XSD datatypes that have a
// dedicated EncodedTerm variant and attempts to parse the lexical form
// into it. ok is false when the datatype isn't one of these or the
// lexical form fails to parse, in which case the caller falls back to
// a typed literal.
func encodeSpecializedLiteral(l rdf.Literal) (term.Term, bool, error) {
	switch l.DataType() {
	case rdf.XSDBoolean:
		v, err := strconv.ParseBool(l.Lexical())
		if err != nil {
			return nil, false, nil
		}
		return term.BooleanLiteral{Value: v}, true, nil
	case rdf.XSDFloat:
		v, err := strconv.ParseFloat(l.Lexical(), 32)
		if err != nil {
			return nil, false, nil
		}
		return term.FloatLiteral{Value: float32(v)}, true, nil
	case rdf.XSDDouble:
		v, err := strconv.ParseFloat(l.Lexical(), 64)
		if err != nil {
			return nil, false, nil
		}
		return term.DoubleLiteral{Value: v}, true, nil
	case rdf.XSDInteger:
		v, err := strconv.ParseInt(l.Lexical(), 10, 64)
		if err != nil {
			return nil, false, nil
		}
		return term.IntegerLiteral{Value: v}, true, nil
	case rdf.XSDDecimal:
		v, err := decimal.Parse(l.Lexical())
		if err != nil {
			return nil, false, nil
		}
		return term.DecimalLiteral{Value: v}, true, nil
	case rdf.XSDDateTime, rdf.XSDDateTimeStamp:
		v, err := xsdtime.ParseDateTime(l.Lexical())
		if err != nil {
			return nil, false, nil
		}
		return term.DateTimeLiteral{Value: v}, true, nil
	case rdf.XSDTime:
		v, err := xsdtime.ParseTime(l.Lexical())
		if err != nil {
			return nil, false, nil
		}
		return term.TimeLiteral{Value: v}, true, nil
	case rdf.XSDDate:
		v, err := xsdtime.ParseDate(l.Lexical())
		if err != nil {
			return nil, false, nil
		}
		return term.DateLiteral{Value: v}, true, nil
	case rdf.XSDGYearMonth:
		v, err := xsdtime.ParseGYearMonth(l.Lexical())
		if err != nil {
			return nil, false, nil
		}
		return term.GYearMonthLiteral{Value: v}, true, nil
	case rdf.XSDGYear:
		v, err := xsdtime.ParseGYear(l.Lexical())
		if err != nil {
			return nil, false, nil
		}
		return term.GYearLiteral{Value: v}, true, nil
	case rdf.XSDGMonthDay:
		v, err := xsdtime.ParseGMonthDay(l.Lexical())
		if err != nil {
			return nil, false, nil
		}
		return term.GMonthDayLiteral{Value: v}, true, nil
	case rdf.XSDGDay:
		v, err := xsdtime.ParseGDay(l.Lexical())
		if err != nil {
			return nil, false, nil
		}
		return term.GDayLiteral{Value: v}, true, nil
	case rdf.XSDGMonth:
		v, err := xsdtime.ParseGMonth(l.Lexical())
		if err != nil {
			return nil, false, nil
		}
		return term.GMonthLiteral{Value: v}, true, nil
	case rdf.XSDDuration:
		v, err := xsdtime.ParseDuration(l.Lexical())
		if err != nil {
			return nil, false, nil
		}
		return term.DurationLiteral{Value: v}, true, nil
	case rdf.XSDYearMonthDuration:
		v, err := xsdtime.ParseYearMonthDuration(l.Lexical())
		if err != nil {
			return nil, false, nil
		}
		return term.YearMonthDurationLiteral{Value: v}, true, nil
	case rdf.XSDDayTimeDuration:
		v, err := xsdtime.ParseDayTimeDuration(l.Lexical())
		if err != nil {
			return nil, false, nil
		}
		return term.DayTimeDurationLiteral{Value: v}, true, nil
	default:
		return nil, false, nil
	}
}
