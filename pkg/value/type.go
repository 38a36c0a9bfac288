// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import "github.com/altshiftab/jsonschema-legacy/pkg/validerr"

// TypePredicate maps JSON-Schema primitive type names to membership
// tests over the Value Model. The seven primitive names are built
// in; callers may register additional names (e.g. a vendor-specific
// "frozenset") or override a built-in name's predicate.
type TypePredicate struct {
	overrides map[string]func(Value) bool
}

// NewTypePredicate returns a TypePredicate with only the built-in
// names registered.
func NewTypePredicate() *TypePredicate {
	return &TypePredicate{}
}

// Register installs pred under name, taking priority over any
// built-in predicate of the same name.
func (tp *TypePredicate) Register(name string, pred func(Value) bool) {
	if tp.overrides == nil {
		tp.overrides = make(map[string]func(Value) bool)
	}
	tp.overrides[name] = pred
}

// IsType reports whether v matches name. An unregistered, non-builtin
// name is a [validerr.UnknownType] error.
func (tp *TypePredicate) IsType(v Value, name string) (bool, error) {
	if tp != nil {
		if pred, ok := tp.overrides[name]; ok {
			return pred(v), nil
		}
	}
	switch name {
	case "null":
		return v.IsNull(), nil
	case "boolean":
		return v.IsBool(), nil
	case "integer":
		return v.IsInt(), nil
	case "number":
		return v.IsNumber(), nil
	case "string":
		return v.IsString(), nil
	case "array":
		return v.IsArray(), nil
	case "object":
		return v.IsObject(), nil
	default:
		return false, validerr.NewUnknownType(name)
	}
}
