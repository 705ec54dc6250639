package index

import (
	"iter"

	"github.com/relationlabs/graphdb/internal/term"
)

// QuadsForPattern is the 16-pattern-shape router: it picks the index
// whose key order has the caller's bound components as a prefix and
// streams matching quads directly off a BoltDB cursor, never
// materializing a slice first. Pass nil for any component left
// unbound; pass an explicit term.DefaultGraph{} (not nil) to bind
// graphName to the default graph.
func (r Reader) QuadsForPattern(subject, predicate, object, graphName term.Term) iter.Seq2[term.Quad, error] {
	switch {
	case subject != nil && predicate != nil && object != nil && graphName != nil:
		return r.quadsSPOG(subject, predicate, object, graphName)
	case subject != nil && predicate != nil && object != nil:
		return r.quadsSPO(subject, predicate, object)
	case subject != nil && predicate != nil && graphName != nil:
		return r.quadsSPG(subject, predicate, graphName)
	case subject != nil && predicate != nil:
		return r.quadsSP(subject, predicate)
	case subject != nil && object != nil && graphName != nil:
		return r.quadsSOG(subject, object, graphName)
	case subject != nil && object != nil:
		return r.quadsSO(subject, object)
	case subject != nil && graphName != nil:
		return r.quadsSG(subject, graphName)
	case subject != nil:
		return r.quadsS(subject)
	case predicate != nil && object != nil && graphName != nil:
		return r.quadsPOG(predicate, object, graphName)
	case predicate != nil && object != nil:
		return r.quadsPO(predicate, object)
	case predicate != nil && graphName != nil:
		return r.quadsPG(predicate, graphName)
	case predicate != nil:
		return r.quadsP(predicate)
	case object != nil && graphName != nil:
		return r.quadsOG(object, graphName)
	case object != nil:
		return r.quadsO(object)
	case graphName != nil:
		return r.quadsG(graphName)
	default:
		return r.quadsAll()
	}
}

// spog: a single point lookup against the index whose key is exactly
// the bound quad.
func (r Reader) quadsSPOG(s, p, o, g term.Term) iter.Seq2[term.Quad, error] {
	return func(yield func(term.Quad, error) bool) {
		q := term.Quad{Subject: s, Predicate: p, Object: o, GraphName: g}
		var found bool
		if isDefaultGraph(g) {
			found = r.has(bucketDefaultSPO, encodeKey(s, p, o))
		} else {
			found = r.has(bucketSPOG, encodeKey(s, p, o, g))
		}
		if found {
			yield(q, nil)
		}
	}
}

// spo: the default-graph candidate is only emitted if it is actually a
// member of the default-graph SPO index — reimplemented from the
// original's unconditional emission, which skipped that check.
func (r Reader) quadsSPO(s, p, o term.Term) iter.Seq2[term.Quad, error] {
	return func(yield func(term.Quad, error) bool) {
		if r.has(bucketDefaultSPO, encodeKey(s, p, o)) {
			if !yield(term.Quad{Subject: s, Predicate: p, Object: o, GraphName: term.DefaultGraph{}}, nil) {
				return
			}
		}
		cont := true
		r.forEachSuffix(bucketSPOG, encodeKey(s, p, o), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 1)
			if err != nil {
				cont = yield(term.Quad{}, err)
				return false
			}
			cont = yield(term.Quad{Subject: s, Predicate: p, Object: o, GraphName: terms[0]}, nil)
			return cont
		})
	}
}

func (r Reader) quadsSPG(s, p, g term.Term) iter.Seq2[term.Quad, error] {
	return func(yield func(term.Quad, error) bool) {
		if isDefaultGraph(g) {
			r.forEachSuffix(bucketDefaultSPO, encodeKey(s, p), func(suffix []byte) bool {
				terms, err := decodeTerms(suffix, 1)
				if err != nil {
					return yield(term.Quad{}, err)
				}
				return yield(term.Quad{Subject: s, Predicate: p, Object: terms[0], GraphName: g}, nil)
			})
			return
		}
		r.forEachSuffix(bucketGSPO, encodeKey(g, s, p), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 1)
			if err != nil {
				return yield(term.Quad{}, err)
			}
			return yield(term.Quad{Subject: s, Predicate: p, Object: terms[0], GraphName: g}, nil)
		})
	}
}

func (r Reader) quadsSP(s, p term.Term) iter.Seq2[term.Quad, error] {
	return func(yield func(term.Quad, error) bool) {
		cont := true
		r.forEachSuffix(bucketDefaultSPO, encodeKey(s, p), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 1)
			if err != nil {
				cont = yield(term.Quad{}, err)
				return false
			}
			cont = yield(term.Quad{Subject: s, Predicate: p, Object: terms[0], GraphName: term.DefaultGraph{}}, nil)
			return cont
		})
		if !cont {
			return
		}
		r.forEachSuffix(bucketSPOG, encodeKey(s, p), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 2)
			if err != nil {
				cont = yield(term.Quad{}, err)
				return false
			}
			cont = yield(term.Quad{Subject: s, Predicate: p, Object: terms[0], GraphName: terms[1]}, nil)
			return cont
		})
	}
}

func (r Reader) quadsSOG(s, o, g term.Term) iter.Seq2[term.Quad, error] {
	return func(yield func(term.Quad, error) bool) {
		if isDefaultGraph(g) {
			r.forEachSuffix(bucketDefaultOSP, encodeKey(o, s), func(suffix []byte) bool {
				terms, err := decodeTerms(suffix, 1)
				if err != nil {
					return yield(term.Quad{}, err)
				}
				return yield(term.Quad{Subject: s, Predicate: terms[0], Object: o, GraphName: g}, nil)
			})
			return
		}
		r.forEachSuffix(bucketGOSP, encodeKey(g, o, s), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 1)
			if err != nil {
				return yield(term.Quad{}, err)
			}
			return yield(term.Quad{Subject: s, Predicate: terms[0], Object: o, GraphName: g}, nil)
		})
	}
}

func (r Reader) quadsSO(s, o term.Term) iter.Seq2[term.Quad, error] {
	return func(yield func(term.Quad, error) bool) {
		cont := true
		r.forEachSuffix(bucketDefaultOSP, encodeKey(o, s), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 1)
			if err != nil {
				cont = yield(term.Quad{}, err)
				return false
			}
			cont = yield(term.Quad{Subject: s, Predicate: terms[0], Object: o, GraphName: term.DefaultGraph{}}, nil)
			return cont
		})
		if !cont {
			return
		}
		r.forEachSuffix(bucketOSPG, encodeKey(o, s), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 2)
			if err != nil {
				cont = yield(term.Quad{}, err)
				return false
			}
			cont = yield(term.Quad{Subject: s, Predicate: terms[0], Object: o, GraphName: terms[1]}, nil)
			return cont
		})
	}
}

func (r Reader) quadsSG(s, g term.Term) iter.Seq2[term.Quad, error] {
	return func(yield func(term.Quad, error) bool) {
		if isDefaultGraph(g) {
			r.forEachSuffix(bucketDefaultSPO, encodeKey(s), func(suffix []byte) bool {
				terms, err := decodeTerms(suffix, 2)
				if err != nil {
					return yield(term.Quad{}, err)
				}
				return yield(term.Quad{Subject: s, Predicate: terms[0], Object: terms[1], GraphName: g}, nil)
			})
			return
		}
		r.forEachSuffix(bucketGSPO, encodeKey(g, s), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 2)
			if err != nil {
				return yield(term.Quad{}, err)
			}
			return yield(term.Quad{Subject: s, Predicate: terms[0], Object: terms[1], GraphName: g}, nil)
		})
	}
}

func (r Reader) quadsS(s term.Term) iter.Seq2[term.Quad, error] {
	return func(yield func(term.Quad, error) bool) {
		cont := true
		r.forEachSuffix(bucketDefaultSPO, encodeKey(s), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 2)
			if err != nil {
				cont = yield(term.Quad{}, err)
				return false
			}
			cont = yield(term.Quad{Subject: s, Predicate: terms[0], Object: terms[1], GraphName: term.DefaultGraph{}}, nil)
			return cont
		})
		if !cont {
			return
		}
		r.forEachSuffix(bucketSPOG, encodeKey(s), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 3)
			if err != nil {
				cont = yield(term.Quad{}, err)
				return false
			}
			cont = yield(term.Quad{Subject: s, Predicate: terms[0], Object: terms[1], GraphName: terms[2]}, nil)
			return cont
		})
	}
}

func (r Reader) quadsPOG(p, o, g term.Term) iter.Seq2[term.Quad, error] {
	return func(yield func(term.Quad, error) bool) {
		if isDefaultGraph(g) {
			r.forEachSuffix(bucketDefaultPOS, encodeKey(p, o), func(suffix []byte) bool {
				terms, err := decodeTerms(suffix, 1)
				if err != nil {
					return yield(term.Quad{}, err)
				}
				return yield(term.Quad{Subject: terms[0], Predicate: p, Object: o, GraphName: g}, nil)
			})
			return
		}
		r.forEachSuffix(bucketGPOS, encodeKey(g, p, o), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 1)
			if err != nil {
				return yield(term.Quad{}, err)
			}
			return yield(term.Quad{Subject: terms[0], Predicate: p, Object: o, GraphName: g}, nil)
		})
	}
}

func (r Reader) quadsPO(p, o term.Term) iter.Seq2[term.Quad, error] {
	return func(yield func(term.Quad, error) bool) {
		cont := true
		r.forEachSuffix(bucketDefaultPOS, encodeKey(p, o), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 1)
			if err != nil {
				cont = yield(term.Quad{}, err)
				return false
			}
			cont = yield(term.Quad{Subject: terms[0], Predicate: p, Object: o, GraphName: term.DefaultGraph{}}, nil)
			return cont
		})
		if !cont {
			return
		}
		r.forEachSuffix(bucketPOSG, encodeKey(p, o), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 2)
			if err != nil {
				cont = yield(term.Quad{}, err)
				return false
			}
			cont = yield(term.Quad{Subject: terms[0], Predicate: p, Object: o, GraphName: terms[1]}, nil)
			return cont
		})
	}
}

func (r Reader) quadsPG(p, g term.Term) iter.Seq2[term.Quad, error] {
	return func(yield func(term.Quad, error) bool) {
		if isDefaultGraph(g) {
			r.forEachSuffix(bucketDefaultPOS, encodeKey(p), func(suffix []byte) bool {
				terms, err := decodeTerms(suffix, 2)
				if err != nil {
					return yield(term.Quad{}, err)
				}
				return yield(term.Quad{Subject: terms[1], Predicate: p, Object: terms[0], GraphName: g}, nil)
			})
			return
		}
		r.forEachSuffix(bucketGPOS, encodeKey(g, p), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 2)
			if err != nil {
				return yield(term.Quad{}, err)
			}
			return yield(term.Quad{Subject: terms[1], Predicate: p, Object: terms[0], GraphName: g}, nil)
		})
	}
}

func (r Reader) quadsP(p term.Term) iter.Seq2[term.Quad, error] {
	return func(yield func(term.Quad, error) bool) {
		cont := true
		r.forEachSuffix(bucketDefaultPOS, encodeKey(p), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 2)
			if err != nil {
				cont = yield(term.Quad{}, err)
				return false
			}
			cont = yield(term.Quad{Subject: terms[1], Predicate: p, Object: terms[0], GraphName: term.DefaultGraph{}}, nil)
			return cont
		})
		if !cont {
			return
		}
		r.forEachSuffix(bucketPOSG, encodeKey(p), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 3)
			if err != nil {
				cont = yield(term.Quad{}, err)
				return false
			}
			cont = yield(term.Quad{Subject: terms[1], Predicate: p, Object: terms[0], GraphName: terms[2]}, nil)
			return cont
		})
	}
}

func (r Reader) quadsOG(o, g term.Term) iter.Seq2[term.Quad, error] {
	return func(yield func(term.Quad, error) bool) {
		if isDefaultGraph(g) {
			r.forEachSuffix(bucketDefaultOSP, encodeKey(o), func(suffix []byte) bool {
				terms, err := decodeTerms(suffix, 2)
				if err != nil {
					return yield(term.Quad{}, err)
				}
				return yield(term.Quad{Subject: terms[0], Predicate: terms[1], Object: o, GraphName: g}, nil)
			})
			return
		}
		r.forEachSuffix(bucketGOSP, encodeKey(g, o), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 2)
			if err != nil {
				return yield(term.Quad{}, err)
			}
			return yield(term.Quad{Subject: terms[0], Predicate: terms[1], Object: o, GraphName: g}, nil)
		})
	}
}

func (r Reader) quadsO(o term.Term) iter.Seq2[term.Quad, error] {
	return func(yield func(term.Quad, error) bool) {
		cont := true
		r.forEachSuffix(bucketDefaultOSP, encodeKey(o), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 2)
			if err != nil {
				cont = yield(term.Quad{}, err)
				return false
			}
			cont = yield(term.Quad{Subject: terms[0], Predicate: terms[1], Object: o, GraphName: term.DefaultGraph{}}, nil)
			return cont
		})
		if !cont {
			return
		}
		r.forEachSuffix(bucketOSPG, encodeKey(o), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 3)
			if err != nil {
				cont = yield(term.Quad{}, err)
				return false
			}
			cont = yield(term.Quad{Subject: terms[0], Predicate: terms[1], Object: o, GraphName: terms[2]}, nil)
			return cont
		})
	}
}

// QuadsForGraph (exported, used by ClearGraph/RemoveNamedGraph as well
// as the g-bound pattern shape).
func (r Reader) QuadsForGraph(g term.Term) iter.Seq2[term.Quad, error] {
	return r.quadsG(g)
}

func (r Reader) quadsG(g term.Term) iter.Seq2[term.Quad, error] {
	return func(yield func(term.Quad, error) bool) {
		if isDefaultGraph(g) {
			r.forEachKey(bucketDefaultSPO, func(key []byte) bool {
				terms, err := decodeTerms(key, 3)
				if err != nil {
					return yield(term.Quad{}, err)
				}
				return yield(term.Quad{Subject: terms[0], Predicate: terms[1], Object: terms[2], GraphName: g}, nil)
			})
			return
		}
		r.forEachSuffix(bucketGSPO, encodeKey(g), func(suffix []byte) bool {
			terms, err := decodeTerms(suffix, 3)
			if err != nil {
				return yield(term.Quad{}, err)
			}
			return yield(term.Quad{Subject: terms[0], Predicate: terms[1], Object: terms[2], GraphName: g}, nil)
		})
	}
}

func (r Reader) quadsAll() iter.Seq2[term.Quad, error] {
	return func(yield func(term.Quad, error) bool) {
		cont := true
		r.forEachKey(bucketDefaultSPO, func(key []byte) bool {
			terms, err := decodeTerms(key, 3)
			if err != nil {
				cont = yield(term.Quad{}, err)
				return false
			}
			cont = yield(term.Quad{Subject: terms[0], Predicate: terms[1], Object: terms[2], GraphName: term.DefaultGraph{}}, nil)
			return cont
		})
		if !cont {
			return
		}
		r.forEachKey(bucketGSPO, func(key []byte) bool {
			terms, err := decodeTerms(key, 4)
			if err != nil {
				cont = yield(term.Quad{}, err)
				return false
			}
			cont = yield(term.Quad{Subject: terms[1], Predicate: terms[2], Object: terms[3], GraphName: terms[0]}, nil)
			return cont
		})
	}
}
