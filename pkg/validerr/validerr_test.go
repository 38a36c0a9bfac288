// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validerr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathStringEscaping(t *testing.T) {
	p := Path{KeySegment("a/b"), KeySegment("c~d")}
	assert.Equal(t, "/a~1b/c~0d", p.String())
}

func TestPathStringEmpty(t *testing.T) {
	assert.Equal(t, "", Path(nil).String())
}

func TestPathStringIndexSegment(t *testing.T) {
	p := Path{KeySegment("items"), IndexSegment(3)}
	assert.Equal(t, "/items/3", p.String())
}

func TestWithPrefixBuildsPathRootToLeaf(t *testing.T) {
	leaf := New("minLength", "too short")
	withIndex := leaf.WithPrefix(IndexSegment(2))
	withKey := withIndex.WithPrefix(KeySegment("items"))

	assert.Equal(t, "/items/2", withKey.Path.String())
	// The original leaf value must not have been mutated.
	assert.Equal(t, "", leaf.Path.String())
}

func TestViolationErrorMessage(t *testing.T) {
	v := New("type", "1 is not of type string").WithPrefix(KeySegment("name"))
	assert.Equal(t, "#/name: 1 is not of type string", v.Error())
}

func TestIsViolation(t *testing.T) {
	assert.True(t, IsViolation(New("type", "x")))
	assert.False(t, IsViolation(NewUnknownType("foo")))
}
