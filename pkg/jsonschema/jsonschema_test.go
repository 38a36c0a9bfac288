// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altshiftab/jsonschema-legacy/pkg/evaluator"
	"github.com/altshiftab/jsonschema-legacy/pkg/resolver"
	"github.com/altshiftab/jsonschema-legacy/pkg/value"
)

func TestNewParsesSchemaDocument(t *testing.T) {
	schema, err := New([]byte(`{"type": "string"}`))
	require.NoError(t, err)
	assert.True(t, schema.IsObject())
}

func TestNewRejectsMalformedJSON(t *testing.T) {
	_, err := New([]byte(`{not json`))
	assert.Error(t, err)
}

func TestNewValidatorDefaultsToDraft4WhenSchemaAbsent(t *testing.T) {
	schema, err := New([]byte(`{"type": "integer"}`))
	require.NoError(t, err)
	validator, err := NewValidator(schema)
	require.NoError(t, err)

	assert.True(t, validator.IsValid(value.Int(5)))
	assert.False(t, validator.IsValid(value.String("not an integer")))
}

func TestNewValidatorSelectsDraft3BySchemaURI(t *testing.T) {
	schema, err := New([]byte(`{"$schema": "http://json-schema.org/draft-03/schema#", "type": "any"}`))
	require.NoError(t, err)
	validator, err := NewValidator(schema)
	require.NoError(t, err)

	assert.True(t, validator.IsValid(value.Null))
}

func TestNewValidatorRejectsUnregisteredSchemaURI(t *testing.T) {
	schema, err := New([]byte(`{"$schema": "http://example.com/unknown-draft#"}`))
	require.NoError(t, err)
	_, err = NewValidator(schema)
	assert.Error(t, err)
}

func TestNewValidatorRejectsMalformedSchema(t *testing.T) {
	schema, err := New([]byte(`{"type": 5}`))
	require.NoError(t, err)
	_, err = NewValidator(schema)
	assert.Error(t, err)
}

func TestValidatorValidateProducesErrorTree(t *testing.T) {
	schema, err := New([]byte(`{
		"type": "object",
		"properties": {"name": {"type": "string", "minLength": 1}},
		"required": ["name"]
	}`))
	require.NoError(t, err)
	validator, err := NewValidator(schema)
	require.NoError(t, err)

	tree := validator.Validate(value.FromObject(value.NewObject()))
	assert.True(t, tree.Contains())

	tree = validator.Validate(value.FromObject(value.NewObject(value.Member{Key: "name", Value: value.String("ok")})))
	assert.False(t, tree.Contains())
}

func TestRegisterValidatorAddsCustomDraft(t *testing.T) {
	const customURI = "http://example.com/test-custom-draft#"
	RegisterValidator(customURI, func(res *resolver.Resolver) *evaluator.Evaluator {
		return evaluator.NewDraft4(res, nil)
	}, false)

	schema, err := New([]byte(`{"$schema": "` + customURI + `", "type": "string"}`))
	require.NoError(t, err)
	validator, err := NewValidator(schema)
	require.NoError(t, err)

	assert.True(t, validator.IsValid(value.String("x")))
	assert.False(t, validator.IsValid(value.Int(1)))
}

func TestTopLevelValidateConvenienceWrapper(t *testing.T) {
	tree, err := Validate(
		[]byte(`{"type": "integer", "minimum": 0}`),
		[]byte(`-1`),
	)
	require.NoError(t, err)
	assert.True(t, tree.Contains())

	tree, err = Validate(
		[]byte(`{"type": "integer", "minimum": 0}`),
		[]byte(`5`),
	)
	require.NoError(t, err)
	assert.False(t, tree.Contains())
}
