// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keyword

import (
	"github.com/altshiftab/jsonschema-legacy/pkg/validerr"
	"github.com/altshiftab/jsonschema-legacy/pkg/value"
)

// Draft3 returns the keyword table for draft-03: the common table
// plus draft-03's divergent type/properties/disallow/extends rules.
func Draft3() Table {
	t := commonKeywords.Clone()
	t["type"] = draft3TypeRule
	t["properties"] = draft3PropertiesRule
	t["disallow"] = draft3DisallowRule
	t["extends"] = draft3ExtendsRule
	t["divisibleBy"] = multipleOfRuleNamed("divisibleBy")
	return t
}

// matchesTypeUnion reports whether instance matches the draft-03
// "type" union member branch: a bare string is a direct type test
// ("any" always passes), a schema object is a nested is_valid check.
func matchesTypeUnion(e Evaluator, instance, branch value.Value) (bool, error) {
	if branch.IsString() {
		name := branch.Str()
		if name == "any" {
			return true, nil
		}
		return e.IsType(instance, name)
	}
	return e.IsValid(instance, branch), nil
}

func draft3TypeRule(e Evaluator, kv, instance, _ value.Value) Violations {
	var branches []value.Value
	switch {
	case kv.IsString():
		branches = []value.Value{kv}
	case kv.IsArray():
		branches = kv.Items()
	default:
		return none()
	}

	var firstErr error
	for _, b := range branches {
		ok, err := matchesTypeUnion(e, instance, b)
		if err != nil {
			firstErr = err
			continue
		}
		if ok {
			return none()
		}
	}
	if firstErr != nil {
		return one(validerr.Newf("type", "%v", firstErr))
	}
	return one(validerr.Newf("type", "%s does not match any of the allowed types", instance.String()))
}

func draft3PropertiesRule(e Evaluator, kv, instance, _ value.Value) Violations {
	if !instance.IsObject() || !kv.IsObject() {
		return none()
	}
	var seqs []Violations
	for _, m := range kv.Obj().Members() {
		name, sub := m.Key, m.Value
		val, present := instance.Obj().Get(name)
		if present {
			seqs = append(seqs, withPath(e.IterErrors(val, sub), validerr.KeySegment(name)))
			continue
		}
		if sub.IsObject() {
			if req, ok := sub.Obj().Get("required"); ok && req.IsBool() && req.AsBool() {
				seqs = append(seqs, one(&validerr.ViolationError{
					Keyword: "required",
					Message: "required property " + name + " is missing",
					Path:    validerr.Path{validerr.KeySegment(name)},
				}))
			}
		}
	}
	return withKeyword(concat(seqs...), "properties")
}

func draft3DisallowRule(e Evaluator, kv, instance, _ value.Value) Violations {
	var names []value.Value
	switch {
	case kv.IsString():
		names = []value.Value{kv}
	case kv.IsArray():
		names = kv.Items()
	default:
		return none()
	}
	for _, n := range names {
		if !n.IsString() {
			continue
		}
		if n.Str() == "any" {
			return one(validerr.Newf("disallow", "%s is disallowed", instance.String()))
		}
		ok, err := e.IsType(instance, n.Str())
		if err == nil && ok {
			return one(validerr.Newf("disallow", "%s is of disallowed type %q", instance.String(), n.Str()))
		}
	}
	return none()
}

func draft3ExtendsRule(e Evaluator, kv, instance, _ value.Value) Violations {
	var schemas []value.Value
	switch {
	case kv.IsArray():
		schemas = kv.Items()
	case kv.IsObject(), kv.IsBool():
		schemas = []value.Value{kv}
	default:
		return none()
	}
	var seqs []Violations
	for _, s := range schemas {
		seqs = append(seqs, e.IterErrors(instance, s))
	}
	return withKeyword(concat(seqs...), "extends")
}
