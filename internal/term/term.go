// Package term implements EncodedTerm: the tagged union of dictionary-
// addressed RDF term encodings stored in every index key, plus its
// binary codec (encode_term/decode_term). One concrete Go type backs
// each variant; Term is the common interface they all satisfy.
package term

import (
	"github.com/relationlabs/graphdb/internal/bighash"
	"github.com/relationlabs/graphdb/internal/decimal"
	"github.com/relationlabs/graphdb/internal/smallstr"
	"github.com/relationlabs/graphdb/internal/xsdtime"
)

// Term is the tagged union of every encoded term shape. The unexported
// method keeps the set closed to this package.
type Term interface {
	isTerm()
}

// DefaultGraph is the distinguished term naming the unnamed graph. It
// writes to zero bytes on the wire (see codec.go).
type DefaultGraph struct{}

// NamedNode is an IRI, addressed by its dictionary hash.
type NamedNode struct{ IRIID bighash.Hash }

// NumericalBlankNode is a blank node identified by a raw 128-bit
// numerical id rather than a string label.
type NumericalBlankNode struct{ ID [16]byte }

// SmallBlankNode is a blank node whose label fits inline.
type SmallBlankNode struct{ ID smallstr.SmallString }

// BigBlankNode is a blank node whose label is dictionary-addressed.
type BigBlankNode struct{ IDID bighash.Hash }

// SmallStringLiteral is a plain (no language, no datatype) literal
// whose lexical form fits inline.
type SmallStringLiteral struct{ Value smallstr.SmallString }

// BigStringLiteral is a plain literal whose lexical form is
// dictionary-addressed.
type BigStringLiteral struct{ ValueID bighash.Hash }

// SmallSmallLangStringLiteral: both the value and the language tag fit inline.
type SmallSmallLangStringLiteral struct {
	Value    smallstr.SmallString
	Language smallstr.SmallString
}

// SmallBigLangStringLiteral: value fits inline, language tag is dictionary-addressed.
type SmallBigLangStringLiteral struct {
	Value      smallstr.SmallString
	LanguageID bighash.Hash
}

// BigSmallLangStringLiteral: value is dictionary-addressed, language tag fits inline.
type BigSmallLangStringLiteral struct {
	ValueID  bighash.Hash
	Language smallstr.SmallString
}

// BigBigLangStringLiteral: both value and language tag are dictionary-addressed.
type BigBigLangStringLiteral struct {
	ValueID    bighash.Hash
	LanguageID bighash.Hash
}

// SmallTypedLiteral: a custom-datatype literal whose value fits inline;
// the datatype IRI is always dictionary-addressed.
type SmallTypedLiteral struct {
	Value      smallstr.SmallString
	DatatypeID bighash.Hash
}

// BigTypedLiteral: a custom-datatype literal whose value is dictionary-addressed.
type BigTypedLiteral struct {
	ValueID    bighash.Hash
	DatatypeID bighash.Hash
}

// BooleanLiteral is xsd:boolean, inlined as the tag byte itself.
type BooleanLiteral struct{ Value bool }

// FloatLiteral is xsd:float.
type FloatLiteral struct{ Value float32 }

// DoubleLiteral is xsd:double.
type DoubleLiteral struct{ Value float64 }

// IntegerLiteral is xsd:integer.
type IntegerLiteral struct{ Value int64 }

// DecimalLiteral is xsd:decimal.
type DecimalLiteral struct{ Value decimal.Decimal }

// DateTimeLiteral is xsd:dateTime.
type DateTimeLiteral struct{ Value xsdtime.DateTime }

// TimeLiteral is xsd:time.
type TimeLiteral struct{ Value xsdtime.Time }

// DateLiteral is xsd:date.
type DateLiteral struct{ Value xsdtime.Date }

// GYearMonthLiteral is xsd:gYearMonth.
type GYearMonthLiteral struct{ Value xsdtime.GYearMonth }

// GYearLiteral is xsd:gYear.
type GYearLiteral struct{ Value xsdtime.GYear }

// GMonthDayLiteral is xsd:gMonthDay.
type GMonthDayLiteral struct{ Value xsdtime.GMonthDay }

// GDayLiteral is xsd:gDay.
type GDayLiteral struct{ Value xsdtime.GDay }

// GMonthLiteral is xsd:gMonth.
type GMonthLiteral struct{ Value xsdtime.GMonth }

// DurationLiteral is xsd:duration.
type DurationLiteral struct{ Value xsdtime.Duration }

// YearMonthDurationLiteral is xsd:yearMonthDuration.
type YearMonthDurationLiteral struct{ Value xsdtime.YearMonthDuration }

// DayTimeDurationLiteral is xsd:dayTimeDuration.
type DayTimeDurationLiteral struct{ Value xsdtime.DayTimeDuration }

func (DefaultGraph) isTerm()                {}
func (NamedNode) isTerm()                   {}
func (NumericalBlankNode) isTerm()          {}
func (SmallBlankNode) isTerm()              {}
func (BigBlankNode) isTerm()                {}
func (SmallStringLiteral) isTerm()          {}
func (BigStringLiteral) isTerm()            {}
func (SmallSmallLangStringLiteral) isTerm() {}
func (SmallBigLangStringLiteral) isTerm()   {}
func (BigSmallLangStringLiteral) isTerm()   {}
func (BigBigLangStringLiteral) isTerm()     {}
func (SmallTypedLiteral) isTerm()           {}
func (BigTypedLiteral) isTerm()             {}
func (BooleanLiteral) isTerm()              {}
func (FloatLiteral) isTerm()                {}
func (DoubleLiteral) isTerm()               {}
func (IntegerLiteral) isTerm()              {}
func (DecimalLiteral) isTerm()              {}
func (DateTimeLiteral) isTerm()             {}
func (TimeLiteral) isTerm()                 {}
func (DateLiteral) isTerm()                 {}
func (GYearMonthLiteral) isTerm()           {}
func (GYearLiteral) isTerm()                {}
func (GMonthDayLiteral) isTerm()            {}
func (GDayLiteral) isTerm()                 {}
func (GMonthLiteral) isTerm()               {}
func (DurationLiteral) isTerm()             {}
func (YearMonthDurationLiteral) isTerm()    {}
func (DayTimeDurationLiteral) isTerm()      {}

// Quad is a quadruple of EncodedTerms: subject, predicate, object, graph.
// GraphName is DefaultGraph{} for a default-graph quad.
type Quad struct {
	Subject   Term
	Predicate Term
	Object    Term
	GraphName Term
}
