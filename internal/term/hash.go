package term

import "github.com/relationlabs/graphdb/internal/bighash"

// PrimaryHash returns the dictionary hash that most directly identifies
// t, if it has one: a NamedNode's IRI hash, a BigBlankNode's label
// hash, or a *literal's* value hash. Terms with no dictionary-addressed
// value (inline SmallString values, numeric/temporal/boolean literals,
// DefaultGraph) return ok=false, even when their datatype or language
// tag is dictionary-addressed. Used for cardinality
// estimation, not for any correctness-bearing codepath.
func PrimaryHash(t Term) (h bighash.Hash, ok bool) {
	switch v := t.(type) {
	case NamedNode:
		return v.IRIID, true
	case BigBlankNode:
		return v.IDID, true
	case BigStringLiteral:
		return v.ValueID, true
	case BigSmallLangStringLiteral:
		return v.ValueID, true
	case BigBigLangStringLiteral:
		return v.ValueID, true
	case BigTypedLiteral:
		return v.ValueID, true
	default:
		return bighash.Hash{}, false
	}
}
