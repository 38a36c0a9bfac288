// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package keyword holds the per-draft keyword dispatch tables: for
// each schema keyword, a [Rule] that produces zero or more violations
// against an instance. The common subset shared by draft-03 and
// draft-04 lives in common.go; each draft's divergent rules
// (type, properties, required-handling) live in draft3.go/draft4.go.
// Tables are composed, not inherited: [Draft3] and [Draft4] each
// start from [commonKeywords] and layer their
// own entries on top.
package keyword

import (
	"iter"

	"github.com/altshiftab/jsonschema-legacy/pkg/resolver"
	"github.com/altshiftab/jsonschema-legacy/pkg/validerr"
	"github.com/altshiftab/jsonschema-legacy/pkg/value"
)

// Violations is the lazy, pull-based sequence every rule produces.
type Violations = iter.Seq[*validerr.ViolationError]

// Evaluator is the subset of pkg/evaluator.Evaluator that a Rule
// needs: the ability to recurse into a sub-schema, consult the
// active format checker and resolver, and test an instance's type.
// Defined here as an interface, rather than depending on the
// concrete Evaluator type, so that this package stays a leaf:
// pkg/evaluator depends on keyword, never the reverse.
type Evaluator interface {
	// IterErrors recurses instance against schema using the same
	// draft and resolver as the caller.
	IterErrors(instance, schema value.Value) Violations
	// IsValid reports whether IterErrors(instance, schema) yields
	// nothing, short-circuiting on the first violation.
	IsValid(instance, schema value.Value) bool
	// Resolver returns the active $ref resolver.
	Resolver() *resolver.Resolver
	// ConformsFormat reports whether instance satisfies the named
	// format under the active format checker.
	ConformsFormat(instance value.Value, name string) bool
	// IsType reports whether instance matches typeName under the
	// active type predicate (including any registered overrides).
	IsType(instance value.Value, typeName string) (bool, error)
}

// Rule evaluates one schema keyword's value against an instance,
// given the full schema object the keyword was found in (so that a
// rule may read sibling keywords directly, e.g. "additionalItems"
// consulting "items").
type Rule func(e Evaluator, keywordValue, instance, schema value.Value) Violations

// Table is a keyword dispatch table: keyword name to Rule.
type Table map[string]Rule

// Clone returns a shallow copy of t, so that a draft table can be
// built by cloning the common table and layering its own entries on
// top without mutating the shared original.
func (t Table) Clone() Table {
	c := make(Table, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

// --- sequence helpers shared by every rule in this package ---

// none yields nothing.
func none() Violations {
	return func(yield func(*validerr.ViolationError) bool) {}
}

// one yields a single violation.
func one(v *validerr.ViolationError) Violations {
	return func(yield func(*validerr.ViolationError) bool) { yield(v) }
}

// concat yields the violations of every sequence in order.
func concat(seqs ...Violations) Violations {
	return func(yield func(*validerr.ViolationError) bool) {
		for _, s := range seqs {
			for v := range s {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// collectAll forces a sequence to a slice. refRule uses it so that
// the referenced schema is fully evaluated while the resolver's scope
// for the $ref is still active.
func collectAll(seq Violations) []*validerr.ViolationError {
	var out []*validerr.ViolationError
	for v := range seq {
		out = append(out, v)
	}
	return out
}

// withPath returns seq with segment prepended to every violation's
// instance path. Callers invoke this AFTER a recursive IterErrors
// call returns, per the "append post-recursion" rule.
func withPath(seq Violations, segment validerr.PathSegment) Violations {
	return func(yield func(*validerr.ViolationError) bool) {
		for v := range seq {
			if !yield(v.WithPrefix(segment)) {
				return
			}
		}
	}
}

// withKeyword returns seq with every violation's Keyword filled in
// from name, unless the rule already set one of its own.
func withKeyword(seq Violations, name string) Violations {
	return func(yield func(*validerr.ViolationError) bool) {
		for v := range seq {
			if v.Keyword == "" {
				v.Keyword = name
			}
			if !yield(v) {
				return
			}
		}
	}
}
