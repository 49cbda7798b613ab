// Package query builds storage-agnostic query predicates from optional
// filter criteria. A predicate is a set of typed clauses (equality, set
// membership, range, boolean) keyed by field name; the persistence layer
// translates clauses to its concrete query language. Absent criteria
// contribute no clause, so an empty predicate matches everything.
package query

import (
	"fmt"
	"sort"
)

// Kind identifies the comparison a clause performs.
type Kind int

const (
	// KindEqual matches a field against exactly one value.
	KindEqual Kind = iota
	// KindIn matches a field against membership of a value set.
	KindIn
	// KindRange matches a field against inclusive lower/upper bounds,
	// either of which may be absent.
	KindRange
	// KindBool matches a boolean field against an explicit value.
	KindBool
)

// Clause is one predicate condition on a single field.
type Clause struct {
	Field  string
	Kind   Kind
	Values []any // KindEqual: one element; KindIn: two or more
	Min    any   // KindRange lower bound, nil when absent
	Max    any   // KindRange upper bound, nil when absent
}

// Predicate is a conjunction of clauses, at most one per field. Clause
// insertion order does not affect the result: Clauses returns them in a
// deterministic field order.
type Predicate struct {
	clauses map[string]Clause
}

// New creates an empty predicate (matches all).
func New() *Predicate {
	return &Predicate{clauses: make(map[string]Clause)}
}

// IsEmpty returns true if no criteria have been added.
func (p *Predicate) IsEmpty() bool { return len(p.clauses) == 0 }

// Clauses returns the clauses sorted by field name.
func (p *Predicate) Clauses() []Clause {
	out := make([]Clause, 0, len(p.clauses))
	for _, c := range p.clauses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

func (p *Predicate) put(c Clause) {
	p.clauses[c.Field] = c
}

// Values adds an equality clause (one value) or a set-membership clause
// (several values). A nil or empty slice is treated as an absent criterion
// and contributes nothing.
func Values[T any](p *Predicate, field string, values []T) {
	switch len(values) {
	case 0:
		return
	case 1:
		p.put(Clause{Field: field, Kind: KindEqual, Values: []any{values[0]}})
	default:
		vals := make([]any, len(values))
		for i, v := range values {
			vals[i] = v
		}
		p.put(Clause{Field: field, Kind: KindIn, Values: vals})
	}
}

// Strings adds an equality or set-membership clause using each value's
// canonical textual representation, keeping the predicate stable across
// storage-engine encodings of enum-like types.
func Strings[T fmt.Stringer](p *Predicate, field string, values []T) {
	if len(values) == 0 {
		return
	}
	texts := make([]string, len(values))
	for i, v := range values {
		texts[i] = v.String()
	}
	Values(p, field, texts)
}

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32
}

// Ints adds an equality or set-membership clause over integer values,
// widening every value to int64 so narrow in-memory types compare
// consistently in the stored predicate.
func Ints[T integer](p *Predicate, field string, values []T) {
	if len(values) == 0 {
		return
	}
	widened := make([]int64, len(values))
	for i, v := range values {
		widened[i] = int64(v)
	}
	Values(p, field, widened)
}

// Range adds an inclusive range clause. Either bound may be nil; when both
// are nil the criterion is absent and contributes nothing.
func Range[T any](p *Predicate, field string, min, max *T) {
	if min == nil && max == nil {
		return
	}
	c := Clause{Field: field, Kind: KindRange}
	if min != nil {
		c.Min = *min
	}
	if max != nil {
		c.Max = *max
	}
	p.put(c)
}

// Boolean adds an exact-match clause for a tri-state boolean criterion.
// A nil value means the criterion is absent.
func Boolean(p *Predicate, field string, value *bool) {
	if value == nil {
		return
	}
	p.put(Clause{Field: field, Kind: KindBool, Values: []any{*value}})
}
