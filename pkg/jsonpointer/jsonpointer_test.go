// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonpointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altshiftab/jsonschema-legacy/pkg/value"
)

func TestResolveEscapeInversion(t *testing.T) {
	doc, err := value.Decode([]byte(`{"a/b":{"c~d":1}}`))
	require.NoError(t, err)

	got, err := Resolve(doc, "#/a~1b/c~0d")
	require.NoError(t, err)
	assert.True(t, got.Equal(value.Int(1)))
}

func TestResolveTildeZeroOneIsLiteralTildeOne(t *testing.T) {
	// "~01" must decode to "~1" (the literal key), not "/" -- "~1" is
	// replaced before "~0" is, so a doubly-escaped token is not
	// misread as a path separator.
	doc, err := value.Decode([]byte(`{"~1":"hit"}`))
	require.NoError(t, err)

	got, err := Resolve(doc, "#/~01")
	require.NoError(t, err)
	assert.True(t, got.Equal(value.String("hit")))
}

func TestResolveEmptyFragmentIsRoot(t *testing.T) {
	doc, err := value.Decode([]byte(`{"a":1}`))
	require.NoError(t, err)

	got, err := Resolve(doc, "")
	require.NoError(t, err)
	assert.True(t, got.Equal(doc))

	got, err = Resolve(doc, "#")
	require.NoError(t, err)
	assert.True(t, got.Equal(doc))
}

func TestResolveArrayIndex(t *testing.T) {
	doc, err := value.Decode([]byte(`{"items":["x","y","z"]}`))
	require.NoError(t, err)

	got, err := Resolve(doc, "#/items/1")
	require.NoError(t, err)
	assert.True(t, got.Equal(value.String("y")))
}

func TestResolveArrayDashRejected(t *testing.T) {
	doc, err := value.Decode([]byte(`{"items":[1,2]}`))
	require.NoError(t, err)

	_, err = Resolve(doc, "#/items/-")
	assert.Error(t, err)
}

func TestResolveMissingKey(t *testing.T) {
	doc, err := value.Decode([]byte(`{"a":1}`))
	require.NoError(t, err)

	_, err = Resolve(doc, "#/b")
	assert.Error(t, err)
}
