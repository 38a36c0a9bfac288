// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errortree groups [validerr.ViolationError] values by the
// reversed instance path, so that callers can ask "what went wrong at
// or under this instance location" without re-scanning a flat list.
package errortree

import "github.com/altshiftab/jsonschema-legacy/pkg/validerr"

// Tree is one node of the error tree. The root node corresponds to
// the instance's top-level document; each child corresponds to one
// path segment, keyed by its string form.
type Tree struct {
	// Errors holds the violations whose path ends exactly here.
	Errors []*validerr.ViolationError
	// children is keyed by the reversed path segment string, i.e.
	// the last segment of a violation's path is the key of the
	// child hanging directly off the root.
	children map[string]*Tree
}

// New builds an empty Tree.
func New() *Tree {
	return &Tree{children: make(map[string]*Tree)}
}

// Build constructs a Tree from a flat slice of violations.
func Build(violations []*validerr.ViolationError) *Tree {
	t := New()
	for _, v := range violations {
		t.Add(v)
	}
	return t
}

// Add inserts one violation, descending the tree by the REVERSED
// instance path (deepest segment first), so that siblings sharing a
// common deep suffix (e.g. two failures both under .../items/0) group
// together before branching toward the root.
func (t *Tree) Add(v *validerr.ViolationError) {
	node := t
	for i := len(v.Path) - 1; i >= 0; i-- {
		key := v.Path[i].String()
		child, ok := node.children[key]
		if !ok {
			child = New()
			node.children[key] = child
		}
		node = child
	}
	node.Errors = append(node.Errors, v)
}

// Child returns the subtree reached by descending one more reversed
// path segment, or nil if there is none.
func (t *Tree) Child(segment string) *Tree {
	if t == nil {
		return nil
	}
	return t.children[segment]
}

// Contains reports whether t or any descendant holds at least one
// error.
func (t *Tree) Contains() bool {
	return t.TotalErrors() > 0
}

// TotalErrors returns the recursive sum of errors at this node and
// every descendant.
func (t *Tree) TotalErrors() int {
	if t == nil {
		return 0
	}
	total := len(t.Errors)
	for _, c := range t.children {
		total += c.TotalErrors()
	}
	return total
}

// Children returns the keys of the immediate child subtrees.
func (t *Tree) Children() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.children))
	for k := range t.children {
		keys = append(keys, k)
	}
	return keys
}
