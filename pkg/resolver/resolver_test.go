// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altshiftab/jsonschema-legacy/pkg/value"
)

func TestResolvingLocalFragment(t *testing.T) {
	schema, err := value.Decode([]byte(`{
		"definitions": {"positive": {"type": "integer", "minimum": 0}}
	}`))
	require.NoError(t, err)

	r := FromSchema(schema)

	var resolved value.Value
	err = r.Resolving("#/definitions/positive", func(target value.Value) error {
		resolved = target
		return nil
	})
	require.NoError(t, err)
	assert.True(t, resolved.Obj().Has("minimum"))
}

func TestResolvingRestoresStateOnSuccess(t *testing.T) {
	schema, _ := value.Decode([]byte(`{"definitions": {"x": {"type": "string"}}}`))
	r := FromSchema(schema)

	baseBefore, scopeBefore := r.BaseURI(), r.ResolutionScope()
	err := r.Resolving("#/definitions/x", func(value.Value) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, baseBefore, r.BaseURI())
	assert.Equal(t, scopeBefore, r.ResolutionScope())
}

func TestResolvingRestoresStateOnError(t *testing.T) {
	schema, _ := value.Decode([]byte(`{"definitions": {"x": {"type": "string"}}}`))
	r := FromSchema(schema)

	baseBefore, scopeBefore := r.BaseURI(), r.ResolutionScope()
	wantErr := errors.New("boom")
	err := r.Resolving("#/definitions/x", func(value.Value) error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, baseBefore, r.BaseURI())
	assert.Equal(t, scopeBefore, r.ResolutionScope())
}

func TestResolvingMissingFragmentIsRefResolutionError(t *testing.T) {
	schema, _ := value.Decode([]byte(`{"definitions": {}}`))
	r := FromSchema(schema)

	err := r.Resolving("#/definitions/missing", func(value.Value) error { return nil })
	assert.Error(t, err)
}

func TestInScopeRestoresOnPanic(t *testing.T) {
	r := New("http://example.com/schema.json", value.Null, false)
	before := r.ResolutionScope()

	func() {
		defer func() { _ = recover() }()
		_ = r.InScope("sub", func() error {
			panic("boom")
		})
	}()

	assert.Equal(t, before, r.ResolutionScope())
}

func TestStoreServesCachedDocumentWithoutFetch(t *testing.T) {
	r := New("", value.Null, false)
	r.RegisterScheme("mem", FetcherFunc(func(uri string) (value.Value, error) {
		t.Fatalf("fetch should not be called for a cached document")
		return value.Value{}, nil
	}))

	doc, _ := value.Decode([]byte(`{"cached": true}`))
	r.Store("mem://doc", doc)

	err := r.Resolving("mem://doc", func(target value.Value) error {
		assert.True(t, target.Obj().Has("cached"))
		return nil
	})
	require.NoError(t, err)
}

func TestResolveRemoteUsesRegisteredScheme(t *testing.T) {
	r := New("", value.Null, true)
	r.RegisterScheme("mem", FetcherFunc(func(uri string) (value.Value, error) {
		return value.Decode([]byte(`{"fetched": true}`))
	}))

	err := r.Resolving("mem://remote-doc", func(target value.Value) error {
		assert.True(t, target.Obj().Has("fetched"))
		return nil
	})
	require.NoError(t, err)
}

func TestResolveRemoteUnregisteredSchemeErrors(t *testing.T) {
	r := New("", value.Null, false)
	err := r.Resolving("http://example.com/schema.json", func(value.Value) error { return nil })
	assert.Error(t, err)
}
