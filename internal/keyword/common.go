// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keyword

import (
	"math"
	"math/big"
	"regexp"

	"github.com/altshiftab/jsonschema-legacy/pkg/validerr"
	"github.com/altshiftab/jsonschema-legacy/pkg/value"
)

// floatTolerance is the slack permitted when multipleOf/divisibleBy's
// divisor is itself a float, per spec §4.5.
const floatTolerance = 1e-15

// commonKeywords holds the keyword rules shared verbatim by draft-03
// and draft-04. Each draft's table is built by cloning this one and
// layering its own divergent entries (type, properties, required) on
// top.
var commonKeywords = Table{
	"patternProperties": patternPropertiesRule,
	"additionalProperties": additionalPropertiesRule,
	"items":              itemsRule,
	"additionalItems":    additionalItemsRule,
	"minimum":            minimumRule,
	"maximum":            maximumRule,
	"minItems":           minItemsRule,
	"maxItems":           maxItemsRule,
	"minLength":          minLengthRule,
	"maxLength":          maxLengthRule,
	"uniqueItems":        uniqueItemsRule,
	"pattern":            patternRule,
	"format":             formatRule,
	"dependencies":       dependenciesRule,
	"enum":               enumRule,
	"$ref":               refRule,
}

// patternPropertiesKeys returns the (pattern, compiled regexp, subschema)
// triples declared by schema's "patternProperties", in declaration
// order. Invalid patterns are skipped; a malformed schema is reported
// by check_schema against the meta-schema, not by this rule.
func patternPropertiesKeys(schema value.Value) []struct {
	pattern string
	re      *regexp.Regexp
	sub     value.Value
} {
	pp, ok := schema.Obj().Get("patternProperties")
	if !ok || !pp.IsObject() {
		return nil
	}
	var out []struct {
		pattern string
		re      *regexp.Regexp
		sub     value.Value
	}
	for _, m := range pp.Obj().Members() {
		re, err := regexp.Compile(m.Key)
		if err != nil {
			continue
		}
		out = append(out, struct {
			pattern string
			re      *regexp.Regexp
			sub     value.Value
		}{m.Key, re, m.Value})
	}
	return out
}

func patternPropertiesRule(e Evaluator, kv, instance, schema value.Value) Violations {
	if !instance.IsObject() || !kv.IsObject() {
		return none()
	}
	var seqs []Violations
	for _, m := range kv.Obj().Members() {
		re, err := regexp.Compile(m.Key)
		if err != nil {
			continue
		}
		for _, im := range instance.Obj().Members() {
			if re.MatchString(im.Key) {
				seqs = append(seqs, withPath(e.IterErrors(im.Value, m.Value), validerr.KeySegment(im.Key)))
			}
		}
	}
	return withKeyword(concat(seqs...), "patternProperties")
}

func additionalPropertiesRule(e Evaluator, kv, instance, schema value.Value) Violations {
	if !instance.IsObject() {
		return none()
	}

	declared := map[string]bool{}
	if props, ok := schema.Obj().Get("properties"); ok && props.IsObject() {
		for _, m := range props.Obj().Members() {
			declared[m.Key] = true
		}
	}
	patterns := patternPropertiesKeys(schema)

	var extras []value.Member
	for _, m := range instance.Obj().Members() {
		if declared[m.Key] {
			continue
		}
		matched := false
		for _, p := range patterns {
			if p.re.MatchString(m.Key) {
				matched = true
				break
			}
		}
		if !matched {
			extras = append(extras, m)
		}
	}
	if len(extras) == 0 {
		return none()
	}

	switch {
	case kv.IsBool():
		if kv.AsBool() {
			return none()
		}
		names := make([]string, len(extras))
		for i, m := range extras {
			names[i] = m.Key
		}
		return one(validerr.Newf("additionalProperties", "additional properties %v are not allowed", names))

	case kv.IsObject():
		var seqs []Violations
		for _, m := range extras {
			seqs = append(seqs, withPath(e.IterErrors(m.Value, kv), validerr.KeySegment(m.Key)))
		}
		return withKeyword(concat(seqs...), "additionalProperties")

	default:
		return none()
	}
}

func itemsRule(e Evaluator, kv, instance, schema value.Value) Violations {
	if !instance.IsArray() {
		return none()
	}
	items := instance.Items()

	if kv.IsArray() {
		schemas := kv.Items()
		var seqs []Violations
		n := len(items)
		if len(schemas) < n {
			n = len(schemas)
		}
		for i := 0; i < n; i++ {
			seqs = append(seqs, withPath(e.IterErrors(items[i], schemas[i]), validerr.IndexSegment(i)))
		}
		return withKeyword(concat(seqs...), "items")
	}

	// A single schema object (or boolean) applies to every element.
	var seqs []Violations
	for i, item := range items {
		seqs = append(seqs, withPath(e.IterErrors(item, kv), validerr.IndexSegment(i)))
	}
	return withKeyword(concat(seqs...), "items")
}

func additionalItemsRule(e Evaluator, kv, instance, schema value.Value) Violations {
	if !instance.IsArray() {
		return none()
	}
	itemsKV, hasItems := schema.Obj().Get("items")
	if hasItems && !itemsKV.IsArray() {
		// additionalItems only applies when "items" is an array or
		// absent.
		return none()
	}

	prefixLen := 0
	if hasItems {
		prefixLen = len(itemsKV.Items())
	}

	items := instance.Items()
	if prefixLen >= len(items) {
		return none()
	}
	extra := items[prefixLen:]

	switch {
	case kv.IsBool():
		if kv.AsBool() {
			return none()
		}
		return one(validerr.Newf("additionalItems", "array has %d additional item(s) beyond the declared items schema", len(extra)))

	case kv.IsObject():
		var seqs []Violations
		for i, item := range extra {
			seqs = append(seqs, withPath(e.IterErrors(item, kv), validerr.IndexSegment(prefixLen+i)))
		}
		return withKeyword(concat(seqs...), "additionalItems")

	default:
		return none()
	}
}

func minimumRule(_ Evaluator, kv, instance, schema value.Value) Violations {
	return boundRule(kv, instance, schema, "minimum", "exclusiveMinimum", false)
}

func maximumRule(_ Evaluator, kv, instance, schema value.Value) Violations {
	return boundRule(kv, instance, schema, "maximum", "exclusiveMaximum", true)
}

func boundRule(kv, instance, schema value.Value, keyword, exclusiveKey string, isMax bool) Violations {
	if !instance.IsNumber() || instance.IsBool() {
		return none()
	}
	if !kv.IsNumber() {
		return none()
	}
	exclusive := false
	if ex, ok := schema.Obj().Get(exclusiveKey); ok && ex.IsBool() {
		exclusive = ex.AsBool()
	}

	cmp := instance.Rat().Cmp(kv.Rat())
	var bad bool
	if isMax {
		bad = cmp > 0 || (exclusive && cmp == 0)
	} else {
		bad = cmp < 0 || (exclusive && cmp == 0)
	}
	if !bad {
		return none()
	}
	relation := "greater than or equal to"
	if isMax {
		relation = "less than or equal to"
	}
	if exclusive {
		relation = "strictly " + map[bool]string{true: "less than", false: "greater than"}[isMax]
	}
	return one(validerr.Newf(keyword, "%s is not %s %s", instance.String(), relation, kv.String()))
}

func minItemsRule(_ Evaluator, kv, instance, _ value.Value) Violations {
	return lengthBoundRule(kv, instance, value.Value.IsArray, "minItems", false)
}

func maxItemsRule(_ Evaluator, kv, instance, _ value.Value) Violations {
	return lengthBoundRule(kv, instance, value.Value.IsArray, "maxItems", true)
}

func minLengthRule(_ Evaluator, kv, instance, _ value.Value) Violations {
	return lengthBoundRule(kv, instance, value.Value.IsString, "minLength", false)
}

func maxLengthRule(_ Evaluator, kv, instance, _ value.Value) Violations {
	return lengthBoundRule(kv, instance, value.Value.IsString, "maxLength", true)
}

func lengthBoundRule(kv, instance value.Value, applies func(value.Value) bool, keyword string, isMax bool) Violations {
	if !applies(instance) || !kv.IsNumber() {
		return none()
	}
	bound := int(kv.Float64())
	n := instance.Len()
	bad := n < bound
	if isMax {
		bad = n > bound
	}
	if !bad {
		return none()
	}
	if isMax {
		return one(validerr.Newf(keyword, "%s is too long (%d > %d)", instance.String(), n, bound))
	}
	return one(validerr.Newf(keyword, "%s is too short (%d < %d)", instance.String(), n, bound))
}

func uniqueItemsRule(_ Evaluator, kv, instance, _ value.Value) Violations {
	if !instance.IsArray() || !kv.IsBool() || !kv.AsBool() {
		return none()
	}
	items := instance.Items()
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if items[i].Equal(items[j]) {
				return one(validerr.Newf("uniqueItems", "%s has non-unique elements", instance.String()))
			}
		}
	}
	return none()
}

func patternRule(_ Evaluator, kv, instance, _ value.Value) Violations {
	if !instance.IsString() || !kv.IsString() {
		return none()
	}
	re, err := regexp.Compile(kv.Str())
	if err != nil {
		return none()
	}
	if re.MatchString(instance.Str()) {
		return none()
	}
	return one(validerr.Newf("pattern", "%q does not match pattern %q", instance.Str(), kv.Str()))
}

func formatRule(e Evaluator, kv, instance, _ value.Value) Violations {
	if !instance.IsString() || !kv.IsString() {
		return none()
	}
	if e.ConformsFormat(instance, kv.Str()) {
		return none()
	}
	return one(validerr.Newf("format", "%q does not conform to format %q", instance.Str(), kv.Str()))
}

func dependenciesRule(e Evaluator, kv, instance, _ value.Value) Violations {
	if !instance.IsObject() || !kv.IsObject() {
		return none()
	}
	var seqs []Violations
	for _, m := range kv.Obj().Members() {
		if !instance.Obj().Has(m.Key) {
			continue
		}
		dep := m.Value
		switch {
		case dep.IsObject(), dep.IsBool():
			seqs = append(seqs, e.IterErrors(instance, dep))

		case dep.IsArray():
			for _, req := range dep.Items() {
				if !req.IsString() {
					continue
				}
				if !instance.Obj().Has(req.Str()) {
					seqs = append(seqs, one(validerr.Newf("dependencies", "%q is required by a dependency of %q", req.Str(), m.Key)))
				}
			}

		case dep.IsString():
			if !instance.Obj().Has(dep.Str()) {
				seqs = append(seqs, one(validerr.Newf("dependencies", "%q is required by a dependency of %q", dep.Str(), m.Key)))
			}
		}
	}
	return withKeyword(concat(seqs...), "dependencies")
}

func enumRule(_ Evaluator, kv, instance, _ value.Value) Violations {
	if !kv.IsArray() {
		return none()
	}
	for _, candidate := range kv.Items() {
		if instance.Equal(candidate) {
			return none()
		}
	}
	return one(validerr.Newf("enum", "%s is not one of the allowed values", instance.String()))
}

func refRule(e Evaluator, kv, instance, _ value.Value) Violations {
	if !kv.IsString() {
		return none()
	}
	var collected []*validerr.ViolationError
	err := e.Resolver().Resolving(kv.Str(), func(target value.Value) error {
		collected = collectAll(e.IterErrors(instance, target))
		return nil
	})
	if err != nil {
		// RefResolutionError is fatal; surface it as a single
		// violation so it still flows through the lazy sequence,
		// matching the contract that iter_errors never panics.
		return one(validerr.Newf("$ref", "%v", err))
	}
	return withKeyword(func(yield func(*validerr.ViolationError) bool) {
		for _, v := range collected {
			if !yield(v) {
				return
			}
		}
	}, "$ref")
}

// mulTolerance reports whether instance is within floatTolerance of a
// multiple of divisor, per spec §4.5's divisor-is-float branch.
func mulTolerance(instance, divisor *big.Rat) bool {
	instF, _ := instance.Float64()
	divF, _ := divisor.Float64()
	if divF == 0 {
		return false
	}
	quotient := instF / divF
	mod := quotient - math.Floor(quotient)
	return math.Min(mod, 1-mod)*math.Abs(divF) <= floatTolerance
}

func multipleOfRuleNamed(keyword string) Rule {
	return func(_ Evaluator, kv, instance, _ value.Value) Violations {
		if !instance.IsNumber() || instance.IsBool() || !kv.IsNumber() {
			return none()
		}
		divisor := kv.Rat()
		if divisor.Sign() == 0 {
			return none()
		}

		var ok bool
		if kv.IsInt() {
			// The divisor's own literal has no fractional part: check
			// divisibility exactly, regardless of the instance's
			// lexical form (a float instance that is a whole multiple,
			// e.g. 6.0 against 3, still passes).
			quotient := new(big.Rat).Quo(instance.Rat(), divisor)
			ok = quotient.IsInt()
		} else {
			ok = mulTolerance(instance.Rat(), divisor)
		}
		if ok {
			return none()
		}
		return one(validerr.Newf(keyword, "%s is not a multiple of %s", instance.String(), kv.String()))
	}
}
