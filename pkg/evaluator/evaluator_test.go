// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altshiftab/jsonschema-legacy/pkg/metaschema"
	"github.com/altshiftab/jsonschema-legacy/pkg/resolver"
	"github.com/altshiftab/jsonschema-legacy/pkg/value"
)

func mustDecode(t *testing.T, s string) value.Value {
	t.Helper()
	v, err := value.Decode([]byte(s))
	require.NoError(t, err)
	return v
}

func TestEmptySchemaAcceptsEverything(t *testing.T) {
	e := NewDraft4(resolver.New("", value.Null, false), nil)
	empty := mustDecode(t, `{}`)

	for _, s := range []string{`1`, `"s"`, `null`, `true`, `[1,2]`, `{"a":1}`} {
		inst := mustDecode(t, s)
		assert.True(t, e.IsValid(inst, empty), "instance %s should validate against {}", s)
	}
}

func TestBooleanSchemas(t *testing.T) {
	e := NewDraft4(resolver.New("", value.Null, false), nil)
	assert.True(t, e.IsValid(mustDecode(t, `1`), value.Bool(true)))
	assert.False(t, e.IsValid(mustDecode(t, `1`), value.Bool(false)))
}

func TestDraft4Required(t *testing.T) {
	e := NewDraft4(resolver.New("", value.Null, false), nil)
	schema := mustDecode(t, `{"required": ["a", "b"]}`)

	assert.True(t, e.IsValid(mustDecode(t, `{"a":1,"b":2}`), schema))
	assert.False(t, e.IsValid(mustDecode(t, `{"a":1}`), schema))
}

func TestDraft4AllOfAnyOfOneOfNot(t *testing.T) {
	e := NewDraft4(resolver.New("", value.Null, false), nil)

	allOf := mustDecode(t, `{"allOf": [{"type": "integer"}, {"minimum": 0}]}`)
	assert.True(t, e.IsValid(mustDecode(t, `5`), allOf))
	assert.False(t, e.IsValid(mustDecode(t, `-5`), allOf))

	anyOf := mustDecode(t, `{"anyOf": [{"type": "string"}, {"type": "integer"}]}`)
	assert.True(t, e.IsValid(mustDecode(t, `"s"`), anyOf))
	assert.False(t, e.IsValid(mustDecode(t, `1.5`), anyOf))

	oneOf := mustDecode(t, `{"oneOf": [{"multipleOf": 2}, {"multipleOf": 3}]}`)
	assert.True(t, e.IsValid(mustDecode(t, `4`), oneOf))  // only multiple of 2
	assert.False(t, e.IsValid(mustDecode(t, `6`), oneOf)) // multiple of both

	not := mustDecode(t, `{"not": {"type": "null"}}`)
	assert.True(t, e.IsValid(mustDecode(t, `1`), not))
	assert.False(t, e.IsValid(mustDecode(t, `null`), not))
}

func TestDraft4TypeUnionAndIntegerNumberOverlap(t *testing.T) {
	e := NewDraft4(resolver.New("", value.Null, false), nil)
	schema := mustDecode(t, `{"type": ["integer", "string"]}`)
	assert.True(t, e.IsValid(mustDecode(t, `1`), schema))
	assert.True(t, e.IsValid(mustDecode(t, `"x"`), schema))
	assert.False(t, e.IsValid(mustDecode(t, `1.5`), schema))
	assert.False(t, e.IsValid(mustDecode(t, `true`), mustDecode(t, `{"type":"integer"}`)))
}

func TestDraft3TypeAnyAndSchemaUnion(t *testing.T) {
	e := NewDraft3(resolver.New("", value.Null, false), nil)

	anySchema := mustDecode(t, `{"type": "any"}`)
	assert.True(t, e.IsValid(mustDecode(t, `null`), anySchema))
	assert.True(t, e.IsValid(mustDecode(t, `1`), anySchema))

	union := mustDecode(t, `{"type": ["string", {"type": "object"}]}`)
	assert.True(t, e.IsValid(mustDecode(t, `"s"`), union))
	assert.True(t, e.IsValid(mustDecode(t, `{"a":1}`), union))
	assert.False(t, e.IsValid(mustDecode(t, `1`), union))
}

func TestDraft3PropertiesRequired(t *testing.T) {
	e := NewDraft3(resolver.New("", value.Null, false), nil)
	schema := mustDecode(t, `{"properties": {"a": {"type": "string", "required": true}}}`)

	assert.True(t, e.IsValid(mustDecode(t, `{"a":"x"}`), schema))
	assert.False(t, e.IsValid(mustDecode(t, `{}`), schema))
}

func TestDraft3DisallowAndExtends(t *testing.T) {
	e := NewDraft3(resolver.New("", value.Null, false), nil)

	disallow := mustDecode(t, `{"disallow": "string"}`)
	assert.True(t, e.IsValid(mustDecode(t, `1`), disallow))
	assert.False(t, e.IsValid(mustDecode(t, `"x"`), disallow))

	extends := mustDecode(t, `{"extends": {"minimum": 0}}`)
	assert.True(t, e.IsValid(mustDecode(t, `5`), extends))
	assert.False(t, e.IsValid(mustDecode(t, `-5`), extends))
}

func TestRefResolvesAgainstDefinitions(t *testing.T) {
	schema := mustDecode(t, `{
		"definitions": {"positive": {"type": "integer", "minimum": 0}},
		"properties": {"n": {"$ref": "#/definitions/positive"}}
	}`)
	e := NewDraft4(resolver.FromSchema(schema), nil)

	assert.True(t, e.IsValid(mustDecode(t, `{"n": 5}`), schema))
	assert.False(t, e.IsValid(mustDecode(t, `{"n": -5}`), schema))
}

func TestUniqueItemsBooleanIsNotInteger(t *testing.T) {
	e := NewDraft4(resolver.New("", value.Null, false), nil)
	schema := mustDecode(t, `{"uniqueItems": true}`)
	assert.True(t, e.IsValid(mustDecode(t, `[true, 1]`), schema))
	assert.False(t, e.IsValid(mustDecode(t, `[1, 1]`), schema))
}

func TestCheckSchemaSelfValidatesMetaSchemas(t *testing.T) {
	draft4Meta := metaschema.MustGet(Draft4URI)
	e4 := NewDraft4(resolver.FromSchema(draft4Meta), nil)
	e4.SetMetaSchema(draft4Meta)
	assert.NoError(t, e4.CheckSchema(draft4Meta))

	draft3Meta := metaschema.MustGet(Draft3URI)
	e3 := NewDraft3(resolver.FromSchema(draft3Meta), nil)
	e3.SetMetaSchema(draft3Meta)
	assert.NoError(t, e3.CheckSchema(draft3Meta))
}

func TestCheckSchemaRejectsMalformedSchema(t *testing.T) {
	draft4Meta := metaschema.MustGet(Draft4URI)
	e := NewDraft4(resolver.New("", value.Null, false), nil)
	e.SetMetaSchema(draft4Meta)

	bad := mustDecode(t, `{"type": 5}`)
	assert.Error(t, e.CheckSchema(bad))
}

func TestIterErrorsYieldsInstanceLocation(t *testing.T) {
	e := NewDraft4(resolver.New("", value.Null, false), nil)
	schema := mustDecode(t, `{"properties": {"name": {"minLength": 3}}}`)
	instance := mustDecode(t, `{"name": "ab"}`)

	var got []string
	for v := range e.IterErrors(instance, schema) {
		got = append(got, v.Path.String())
	}
	assert.Equal(t, []string{"/name"}, got)
}
