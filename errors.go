package graphdb

import (
	"errors"

	"github.com/relationlabs/graphdb/internal/dict"
	"github.com/relationlabs/graphdb/internal/term"
)

// Exported errors.
var (
	// ErrNotFound is returned by RemoveQuad when the quad is not stored.
	ErrNotFound = errors.New("graphdb: not found")

	// ErrCorruptData is returned when a stored byte sequence cannot be
	// decoded back into a term: an unknown tag byte, a truncated
	// buffer, or a malformed SmallString. It is the same value the
	// term codec returns, so decode errors surfacing from an index scan
	// compare equal to it.
	ErrCorruptData = term.ErrCorrupt

	// ErrDanglingHash is returned when a Big* term's Hash128 is not
	// present in the dictionary: the index referenced a lexical form
	// that was never (or no longer) registered.
	ErrDanglingHash = errors.New("graphdb: dangling dictionary hash")

	// ErrNoEvaluator is returned by Query/Update when the Store was
	// opened without a SPARQL Evaluator. Evaluating SPARQL is an
	// external collaborator's job; this module owns only the quad
	// store and its pattern router.
	ErrNoEvaluator = errors.New("graphdb: no evaluator configured")

	// ErrValueTooLarge is returned when a dictionary value exceeds the
	// store's configured maximum length. It is the same value the
	// dictionary returns, so the error from an insert compares equal
	// to it.
	ErrValueTooLarge = dict.ErrValueTooLarge
)
