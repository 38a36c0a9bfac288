// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonschema ties the evaluator, resolver and meta-schema
// packages together into the top-level entry points: parse a schema
// document, select a draft by its "$schema" member, and validate
// instances against it.
package jsonschema

import (
	"fmt"
	"iter"
	"sync"

	motmedelErrors "github.com/Motmedel/utils_go/pkg/errors"

	"github.com/altshiftab/jsonschema-legacy/pkg/errortree"
	"github.com/altshiftab/jsonschema-legacy/pkg/evaluator"
	"github.com/altshiftab/jsonschema-legacy/pkg/metaschema"
	"github.com/altshiftab/jsonschema-legacy/pkg/resolver"
	"github.com/altshiftab/jsonschema-legacy/pkg/validerr"
	"github.com/altshiftab/jsonschema-legacy/pkg/value"
)

// Schema is a decoded schema document.
type Schema = value.Value

// Constructor builds the Evaluator for one draft, wiring res as its
// $ref resolver.
type Constructor func(res *resolver.Resolver) *evaluator.Evaluator

type registry struct {
	mu      sync.RWMutex
	entries map[string]Constructor
	def     string
}

func (r *registry) add(uri string, c Constructor, def bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]Constructor)
	}
	r.entries[uri] = c
	if def || r.def == "" {
		r.def = uri
	}
}

func (r *registry) lookup(uri string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.entries[uri]
	return c, ok
}

func (r *registry) defaultURI() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.def
}

// defaultRegistry maps a "$schema" URI to the Constructor that
// validates it. Callers may add further entries with
// [RegisterValidator]; a process is never required to use this
// registry at all, since [evaluator.NewDraft3]/[evaluator.NewDraft4]
// can be driven directly.
var defaultRegistry = &registry{}

// RegisterValidator installs c under uri, the canonical "$schema" URI
// it handles. def marks uri as the fallback used for a schema document
// that omits "$schema" entirely.
func RegisterValidator(uri string, c Constructor, def bool) {
	defaultRegistry.add(uri, c, def)
}

func init() {
	RegisterValidator(evaluator.Draft3URI, func(res *resolver.Resolver) *evaluator.Evaluator {
		return evaluator.NewDraft3(res, nil)
	}, false)
	RegisterValidator(evaluator.Draft4URI, func(res *resolver.Resolver) *evaluator.Evaluator {
		return evaluator.NewDraft4(res, nil)
	}, true)
}

// New parses data as a schema document.
func New(data []byte) (Schema, error) {
	s, err := value.Decode(data)
	if err != nil {
		return value.Value{}, motmedelErrors.NewWithTrace(fmt.Errorf("json unmarshal: %w", err))
	}
	return s, nil
}

// Validator validates instances against one bound schema document,
// resolving "$ref" relative to it.
type Validator struct {
	eval   *evaluator.Evaluator
	schema Schema
}

// NewValidator builds a Validator for schema. The draft is selected by
// schema's "$schema" member, falling back to the registry default when
// absent; schema is then checked against that draft's meta-schema
// before any instance is validated.
func NewValidator(schema Schema) (*Validator, error) {
	uri := schemaURI(schema)
	constructor, ok := defaultRegistry.lookup(uri)
	if !ok {
		return nil, fmt.Errorf("jsonschema: no validator registered for %q", uri)
	}

	res := resolver.FromSchema(schema)
	seedMetaSchemas(res)
	eval := constructor(res)

	if meta, ok, err := metaschema.Get(uri); err == nil && ok {
		eval.SetMetaSchema(meta)
	}
	if err := eval.CheckSchema(schema); err != nil {
		return nil, err
	}

	return &Validator{eval: eval, schema: schema}, nil
}

// seedMetaSchemas pre-populates res's document store with every known
// meta-schema, keyed by its own canonical URI, so that a "$ref" inside
// a meta-schema (draft-04's own schema makes heavy use of
// "$ref":"#/definitions/...") or inside a user schema that "$ref"s a
// meta-schema directly resolves against that document instead of
// falling through to a remote fetch, which has no handler registered
// for http/https by default.
func seedMetaSchemas(res *resolver.Resolver) {
	for _, uri := range []string{evaluator.Draft3URI, evaluator.Draft4URI} {
		if doc, ok, err := metaschema.Get(uri); err == nil && ok {
			res.Store(uri, doc)
		}
	}
}

func schemaURI(schema Schema) string {
	if schema.IsObject() {
		if v, ok := schema.Obj().Get("$schema"); ok && v.IsString() {
			return v.Str()
		}
	}
	return defaultRegistry.defaultURI()
}

// Validate reports every violation of instance against v's schema, as
// a populated [errortree.Tree]. A Tree with [errortree.Tree.Contains]
// false indicates the instance is valid.
func (v *Validator) Validate(instance value.Value) *errortree.Tree {
	return errortree.Build(collect(v.eval.IterErrors(instance, v.schema)))
}

// IterErrors yields every violation of instance lazily, short-circuiting
// as soon as the caller stops ranging over it.
func (v *Validator) IterErrors(instance value.Value) iter.Seq[*validerr.ViolationError] {
	return v.eval.IterErrors(instance, v.schema)
}

// IsValid reports whether instance validates, short-circuiting on the
// first violation rather than materializing the full error tree.
func (v *Validator) IsValid(instance value.Value) bool {
	return v.eval.IsValid(instance, v.schema)
}

// Resolver returns the $ref resolver bound to v's schema document, so
// callers can register custom scheme handlers or pre-seed the document
// store before validating.
func (v *Validator) Resolver() *resolver.Resolver {
	return v.eval.Resolver()
}

func collect(seq iter.Seq[*validerr.ViolationError]) []*validerr.ViolationError {
	var out []*validerr.ViolationError
	for e := range seq {
		out = append(out, e)
	}
	return out
}

// Validate is a convenience wrapper around [New], [NewValidator] and
// [Validator.Validate]: parse schemaData and instanceData, select a
// draft, and report every violation of the instance against the
// schema.
func Validate(schemaData, instanceData []byte) (*errortree.Tree, error) {
	schema, err := New(schemaData)
	if err != nil {
		return nil, err
	}
	instance, err := value.Decode(instanceData)
	if err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("json unmarshal: %w", err))
	}
	validator, err := NewValidator(schema)
	if err != nil {
		return nil, err
	}
	return validator.Validate(instance), nil
}
