// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package evaluator implements the keyword-driven evaluation engine:
// for each schema keyword, dispatch to the rule registered for the
// active draft and yield its violations, recursing into sub-schemas
// as keyword rules require.
package evaluator

import (
	"iter"

	"github.com/altshiftab/jsonschema-legacy/internal/keyword"
	"github.com/altshiftab/jsonschema-legacy/pkg/format"
	"github.com/altshiftab/jsonschema-legacy/pkg/resolver"
	"github.com/altshiftab/jsonschema-legacy/pkg/validerr"
	"github.com/altshiftab/jsonschema-legacy/pkg/value"
)

// Evaluator walks a schema and instance in lockstep, dispatching each
// schema keyword to the rule registered for the active draft. Two
// concrete variants exist, built by [NewDraft3] and [NewDraft4]; both
// share the bulk of their keyword table (see internal/keyword).
type Evaluator struct {
	table      keyword.Table
	types      *value.TypePredicate
	formats    *format.FormatChecker
	res        *resolver.Resolver
	metaSchema value.Value
	schemaURI  string
}

// NewDraft3 constructs an Evaluator for draft-03 schemas. res is the
// $ref resolver shared across the validation run; formats, if nil,
// defaults to [format.NewDraft3]().
func NewDraft3(res *resolver.Resolver, formats *format.FormatChecker) *Evaluator {
	if formats == nil {
		formats = format.NewDraft3()
	}
	e := &Evaluator{
		table:     keyword.Draft3(),
		types:     value.NewTypePredicate(),
		formats:   formats,
		res:       res,
		schemaURI: Draft3URI,
	}
	// draft-03's own meta-schema describes the shape of the "type"
	// keyword using two pseudo-type names outside the seven
	// primitives: "any" (already special-cased in draft3TypeRule) and
	// "union" (the schema-or-array-of-schema-or-string shape of "type"
	// itself). Registering both as always-true keeps CheckSchema
	// against the embedded draft-03 document free of spurious
	// UnknownType violations.
	e.RegisterType("any", func(value.Value) bool { return true })
	e.RegisterType("union", func(value.Value) bool { return true })
	return e
}

// NewDraft4 constructs an Evaluator for draft-04 schemas.
func NewDraft4(res *resolver.Resolver, formats *format.FormatChecker) *Evaluator {
	if formats == nil {
		formats = format.NewDraft4()
	}
	return &Evaluator{
		table:     keyword.Draft4(),
		types:     value.NewTypePredicate(),
		formats:   formats,
		res:       res,
		schemaURI: Draft4URI,
	}
}

// Canonical meta-schema URIs. pkg/metaschema declares the same two
// values for the documents it embeds.
const (
	Draft3URI = "http://json-schema.org/draft-03/schema#"
	Draft4URI = "http://json-schema.org/draft-04/schema#"
)

// RegisterType installs an override or addition to the active type
// predicate.
func (e *Evaluator) RegisterType(name string, pred func(value.Value) bool) {
	e.types.Register(name, pred)
}

// RegisterFormat installs or overrides a format check.
func (e *Evaluator) RegisterFormat(name string, check format.CheckFunc) {
	e.formats.Register(name, check)
}

// SetMetaSchema installs the literal meta-schema document used by
// [Evaluator.CheckSchema].
func (e *Evaluator) SetMetaSchema(meta value.Value) {
	e.metaSchema = meta
}

// Resolver implements keyword.Evaluator.
func (e *Evaluator) Resolver() *resolver.Resolver { return e.res }

// ConformsFormat implements keyword.Evaluator.
func (e *Evaluator) ConformsFormat(instance value.Value, name string) bool {
	return e.formats.Conforms(instance, name)
}

// IsType implements keyword.Evaluator.
func (e *Evaluator) IsType(instance value.Value, typeName string) (bool, error) {
	return e.types.IsType(instance, typeName)
}

// IterErrors recurses instance against schema, yielding every
// violation lazily. Per spec §4.4, schema keyword iteration order
// does not affect correctness, but this implementation iterates in
// the schema object's declared key order (via [value.Object]'s
// order-preserving Members) so that output is deterministic across
// runs, standing in for the source's reliance on dict insertion
// order.
func (e *Evaluator) IterErrors(instance, schema value.Value) iter.Seq[*validerr.ViolationError] {
	return func(yield func(*validerr.ViolationError) bool) {
		// A boolean schema is shorthand for {} (true) or {"not":{}}
		// (false).
		if schema.IsBool() {
			if schema.AsBool() {
				return
			}
			yield(validerr.Newf("", "%s is not valid: schema is false", instance.String()))
			return
		}
		if !schema.IsObject() {
			return
		}

		pop := func() {}
		if id, ok := schema.Obj().Get("id"); ok && id.IsString() && e.res != nil {
			pop = e.res.PushScope(id.Str())
		}
		defer pop()

		for _, m := range schema.Obj().Members() {
			name := m.Key
			lookup := name
			if name == "$ref" {
				lookup = "$ref"
			}
			rule, ok := e.table[lookup]
			if !ok {
				continue
			}
			for v := range rule(e, m.Value, instance, schema) {
				if v.Keyword == "" {
					v.Keyword = name
				}
				if !yield(v) {
					return
				}
			}
		}
	}
}

// IsValid reports whether IterErrors(instance, schema) yields
// nothing, short-circuiting on the first violation rather than
// materializing the full sequence.
func (e *Evaluator) IsValid(instance, schema value.Value) bool {
	for range e.IterErrors(instance, schema) {
		return false
	}
	return true
}

// CheckSchema validates schema against the evaluator's meta-schema
// and returns the first violation, if any, as a [validerr.SchemaError].
func (e *Evaluator) CheckSchema(schema value.Value) error {
	if e.metaSchema.IsNull() {
		return nil
	}
	for v := range e.IterErrors(schema, e.metaSchema) {
		return validerr.NewSchemaError(v.Path, "%s", v.Message)
	}
	return nil
}

// SchemaURI returns the canonical $schema URI this Evaluator
// validates against.
func (e *Evaluator) SchemaURI() string { return e.schemaURI }
