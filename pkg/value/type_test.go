// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTypeExactlyOneBuiltinMatches(t *testing.T) {
	tp := NewTypePredicate()
	names := []string{"null", "boolean", "integer", "number", "string", "array", "object"}
	instances := []Value{Null, Bool(true), Int(1), Number(1.5), String("s"), Array(), FromObject(NewObject())}

	for _, inst := range instances {
		matches := 0
		for _, name := range names {
			ok, err := tp.IsType(inst, name)
			require.NoError(t, err)
			if ok {
				matches++
			}
		}
		// An integer matches both "integer" and "number"; every other
		// kind matches exactly one name.
		if inst.IsInt() {
			assert.Equal(t, 2, matches, "integer should match integer and number")
		} else {
			assert.Equal(t, 1, matches, "%v should match exactly one type name", inst)
		}
	}
}

func TestIsTypeIntegerTracksLexicalFormNotNumericValue(t *testing.T) {
	tp := NewTypePredicate()

	wholeFloat, err := Decode([]byte(`4.0`))
	require.NoError(t, err)
	ok, err := tp.IsType(wholeFloat, "integer")
	require.NoError(t, err)
	assert.False(t, ok, `"4.0" has a float literal shape and must not match "integer"`)

	ok, err = tp.IsType(wholeFloat, "number")
	require.NoError(t, err)
	assert.True(t, ok)

	plainInt, err := Decode([]byte(`4`))
	require.NoError(t, err)
	ok, err = tp.IsType(plainInt, "integer")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsTypeUnknownName(t *testing.T) {
	tp := NewTypePredicate()
	_, err := tp.IsType(String("x"), "frozenset")
	assert.Error(t, err)
}

func TestIsTypeOverrideTakesPriority(t *testing.T) {
	tp := NewTypePredicate()
	tp.Register("any", func(Value) bool { return true })
	ok, err := tp.IsType(Null, "any")
	require.NoError(t, err)
	assert.True(t, ok)
}
