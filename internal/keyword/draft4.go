// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keyword

import (
	"fmt"
	"strings"

	"github.com/altshiftab/jsonschema-legacy/pkg/validerr"
	"github.com/altshiftab/jsonschema-legacy/pkg/value"
)

// simpleTypeNames are the names draft-04's "type" keyword tests
// directly; unlike draft-03, there is no schema-object branch and no
// "any" wildcard.
var simpleTypeNames = map[string]bool{
	"null": true, "boolean": true, "integer": true, "number": true,
	"string": true, "array": true, "object": true,
}

// Draft4 returns the keyword table for draft-04: the common table
// plus draft-04's divergent type/properties/required rules and the
// boolean-combinator keywords (allOf/anyOf/oneOf/not).
func Draft4() Table {
	t := commonKeywords.Clone()
	t["type"] = draft4TypeRule
	t["properties"] = draft4PropertiesRule
	t["required"] = draft4RequiredRule
	t["minProperties"] = minPropertiesRule
	t["maxProperties"] = maxPropertiesRule
	t["allOf"] = allOfRule
	t["anyOf"] = anyOfRule
	t["oneOf"] = oneOfRule
	t["not"] = notRule
	t["multipleOf"] = multipleOfRuleNamed("multipleOf")
	return t
}

func draft4TypeRule(e Evaluator, kv, instance, _ value.Value) Violations {
	var names []string
	switch {
	case kv.IsString():
		names = []string{kv.Str()}
	case kv.IsArray():
		for _, v := range kv.Items() {
			if v.IsString() {
				names = append(names, v.Str())
			}
		}
	default:
		return none()
	}

	var firstErr error
	for _, name := range names {
		ok, err := e.IsType(instance, name)
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
	return one(validerr.Newf("type", "%s is not of type %s", instance.String(), strings.Join(names, ", ")))
}

func draft4PropertiesRule(e Evaluator, kv, instance, _ value.Value) Violations {
	if !instance.IsObject() || !kv.IsObject() {
		return none()
	}
	var seqs []Violations
	for _, m := range kv.Obj().Members() {
		val, present := instance.Obj().Get(m.Key)
		if !present {
			continue
		}
		seqs = append(seqs, withPath(e.IterErrors(val, m.Value), validerr.KeySegment(m.Key)))
	}
	return withKeyword(concat(seqs...), "properties")
}

func draft4RequiredRule(_ Evaluator, kv, instance, _ value.Value) Violations {
	if !instance.IsObject() || !kv.IsArray() {
		return none()
	}
	var seqs []Violations
	for _, name := range kv.Items() {
		if !name.IsString() {
			continue
		}
		if !instance.Obj().Has(name.Str()) {
			seqs = append(seqs, one(&validerr.ViolationError{
				Keyword: "required",
				Message: fmt.Sprintf("required property %q is missing", name.Str()),
				Path:    validerr.Path{validerr.KeySegment(name.Str())},
			}))
		}
	}
	return concat(seqs...)
}

func minPropertiesRule(_ Evaluator, kv, instance, _ value.Value) Violations {
	return lengthBoundRule(kv, instance, value.Value.IsObject, "minProperties", false)
}

func maxPropertiesRule(_ Evaluator, kv, instance, _ value.Value) Violations {
	return lengthBoundRule(kv, instance, value.Value.IsObject, "maxProperties", true)
}

func allOfRule(e Evaluator, kv, instance, _ value.Value) Violations {
	if !kv.IsArray() {
		return none()
	}
	var seqs []Violations
	for _, sub := range kv.Items() {
		seqs = append(seqs, e.IterErrors(instance, sub))
	}
	return withKeyword(concat(seqs...), "allOf")
}

func anyOfRule(e Evaluator, kv, instance, _ value.Value) Violations {
	if !kv.IsArray() {
		return none()
	}
	for _, sub := range kv.Items() {
		if e.IsValid(instance, sub) {
			return none()
		}
	}
	return one(validerr.Newf("anyOf", "%s is not valid under any of the given schemas", instance.String()))
}

func oneOfRule(e Evaluator, kv, instance, _ value.Value) Violations {
	if !kv.IsArray() {
		return none()
	}
	schemas := kv.Items()
	var passed []int
	for i, sub := range schemas {
		if e.IsValid(instance, sub) {
			passed = append(passed, i)
		}
	}
	switch len(passed) {
	case 1:
		return none()
	case 0:
		return one(validerr.Newf("oneOf", "%s is not valid under any of the given schemas", instance.String()))
	default:
		return one(validerr.Newf("oneOf", "%s is valid under each of schemas %v", instance.String(), passed))
	}
}

func notRule(e Evaluator, kv, instance, _ value.Value) Violations {
	if e.IsValid(instance, kv) {
		return one(validerr.Newf("not", "%s should not be valid under the given schema", instance.String()))
	}
	return none()
}
