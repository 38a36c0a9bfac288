// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package value defines the tagged JSON value model shared by schemas and
// instances. A [Value] is produced by decoding arbitrary JSON text; it
// keeps integers distinct from floating-point numbers and keeps object
// keys in their original insertion order, since both schemas and
// instances are printed in diagnostics and the original.
//
// Most programs do not need to construct a [Value] directly; use
// [Decode] or [FromAny] to build one from JSON text or from a
// pre-parsed `any` such as the output of [encoding/json.Unmarshal].
package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
)

// Kind identifies which alternative of the tagged union a [Value] holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON-Schema type name that corresponds to k,
// except that Kind does not distinguish "integer" from "number" on its
// own terms: KindInt reports "integer" and KindNumber reports "number".
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Member is one key/value pair of an [Object], in declaration order.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object. Order is preserved for diagnostics only; it
// carries no semantic weight for validation purposes.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject builds an Object from members, preserving their order.
// A later member with a duplicate key overwrites an earlier one's
// value but keeps the earlier member's position, matching
// [encoding/json]'s handling of duplicate object keys.
func NewObject(members ...Member) *Object {
	o := &Object{index: make(map[string]int, len(members))}
	for _, m := range members {
		o.Set(m.Key, m.Value)
	}
	return o
}

// Set adds or overwrites a member.
func (o *Object) Set(key string, v Value) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

// Get returns the value of key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.members[i].Value, true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.index[key]
	return ok
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Members returns the members in declaration order. The caller must
// not mutate the returned slice.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	return o.members
}

// Keys returns the member keys in declaration order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// Value is a tagged JSON value: null, boolean, integer, floating-point
// number, string, array, or object. The zero Value is null.
//
// Booleans are a distinct tag from integers and numbers: a Value never
// reports both [Value.IsBool] and [Value.IsInt]/[Value.IsNumber] as
// true, even though some languages conflate bool with a 0/1 integer.
type Value struct {
	kind Kind
	b    bool
	num  *big.Rat // exact value for KindInt and KindNumber
	str  string
	arr  []Value
	obj  *Object
}

// Null is the JSON null value.
var Null = Value{kind: KindNull}

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer-tagged Value.
func Int(i int64) Value { return Value{kind: KindInt, num: new(big.Rat).SetInt64(i)} }

// IntFromRat returns an integer-tagged Value from an exact rational.
func IntFromRat(r *big.Rat) Value { return Value{kind: KindInt, num: r} }

// Number returns a float-tagged Value.
func Number(f float64) Value {
	r := new(big.Rat)
	r.SetFloat64(f)
	return Value{kind: KindNumber, num: r}
}

// NumberFromRat returns a number-tagged Value from an exact rational.
func NumberFromRat(r *big.Rat) Value { return Value{kind: KindNumber, num: r} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array returns an array Value.
func Array(items ...Value) Value { return Value{kind: KindArray, arr: items} }

// FromObject returns an object Value.
func FromObject(o *Object) Value { return Value{kind: KindObject, obj: o} }

func (v Value) Kind() Kind       { return v.kind }
func (v Value) IsNull() bool     { return v.kind == KindNull }
func (v Value) IsBool() bool     { return v.kind == KindBool }
func (v Value) IsInt() bool      { return v.kind == KindInt }
func (v Value) IsNumber() bool   { return v.kind == KindNumber || v.kind == KindInt }
func (v Value) IsString() bool   { return v.kind == KindString }
func (v Value) IsArray() bool    { return v.kind == KindArray }
func (v Value) IsObject() bool   { return v.kind == KindObject }

// Bool returns the boolean payload; valid only when IsBool.
func (v Value) AsBool() bool { return v.b }

// Rat returns the exact rational payload; valid only when IsNumber.
func (v Value) Rat() *big.Rat { return v.num }

// Float64 returns the payload as a float64; valid only when IsNumber.
func (v Value) Float64() float64 {
	if v.num == nil {
		return 0
	}
	f, _ := v.num.Float64()
	return f
}

// Str returns the string payload; valid only when IsString.
func (v Value) Str() string { return v.str }

// Items returns the array payload; valid only when IsArray.
func (v Value) Items() []Value { return v.arr }

// Obj returns the object payload; valid only when IsObject.
func (v Value) Obj() *Object { return v.obj }

// Len returns the length of a string (rune count), array, or object.
// It returns 0 for any other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindString:
		return len([]rune(v.str))
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	default:
		return 0
	}
}

// Equal reports deep equality per the JSON-Schema notion of equality:
// numbers compare by value regardless of the int/number tag, but a
// boolean is never equal to a number, arrays compare elementwise in
// order, and objects compare by key/value pairs regardless of order.
func (v Value) Equal(o Value) bool {
	if v.kind == KindNull || o.kind == KindNull {
		return v.kind == o.kind
	}
	if v.kind == KindBool || o.kind == KindBool {
		return v.kind == KindBool && o.kind == KindBool && v.b == o.b
	}
	vNum := v.kind == KindInt || v.kind == KindNumber
	oNum := o.kind == KindInt || o.kind == KindNumber
	if vNum || oNum {
		if !vNum || !oNum {
			return false
		}
		return v.num.Cmp(o.num) == 0
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.obj.Len() != o.obj.Len() {
			return false
		}
		for _, m := range v.obj.Members() {
			ov, ok := o.obj.Get(m.Key)
			if !ok || !m.Value.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String returns a compact, human-readable rendering of v, used in
// violation messages. It is not guaranteed to be valid JSON (e.g. a
// very large number may be abbreviated), but is typically identical
// to it.
func (v Value) String() string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("<unprintable value: %v>", err)
	}
	return string(data)
}

// MarshalJSON implements [json.Marshaler].
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindInt:
		if v.num.IsInt() {
			buf.WriteString(v.num.Num().String())
		} else {
			buf.WriteString(v.num.RatString())
		}
	case KindNumber:
		f, _ := v.num.Float64()
		data, err := json.Marshal(f)
		if err != nil {
			return err
		}
		buf.Write(data)
	case KindString:
		data, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(data)
	case KindArray:
		buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.obj.Members() {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyData, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(keyData)
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// UnmarshalJSON implements [json.Unmarshaler]. It decodes using
// [json.Number] so that integers and floats keep distinct tags
// instead of collapsing to float64.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	dv, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = dv
	return nil
}

// Decode parses JSON text into a Value, preserving the int/number
// distinction via [json.Number].
func Decode(data []byte) (Value, error) {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return Value{}, err
	}
	return v, nil
}

// FromAny converts a value produced by [encoding/json.Unmarshal] (with
// or without [json.Decoder.UseNumber]) into a [Value]. Maps become
// objects with keys sorted for determinism, since map iteration order
// is not the original document order; prefer [Decode] when key order
// matters for diagnostics.
func FromAny(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null, nil
	case bool:
		return Bool(x), nil
	case json.Number:
		return numberFromJSONNumber(x), nil
	case float64:
		return Number(x), nil
	case string:
		return String(x), nil
	case []any:
		items := make([]Value, len(x))
		for i, e := range x {
			cv, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			items[i] = cv
		}
		return Array(items...), nil
	case map[string]any:
		return fromUnorderedMap(x)
	default:
		return Value{}, fmt.Errorf("value: cannot convert %T to Value", raw)
	}
}

func numberFromJSONNumber(n json.Number) Value {
	s := n.String()
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		f, _ := n.Float64()
		return Number(f)
	}
	if isIntegerLiteral(s) {
		return IntFromRat(r)
	}
	return NumberFromRat(r)
}

// isIntegerLiteral reports whether s, a JSON number token, has integer
// lexical form: no fractional part and no exponent. The int/number
// tag tracks the literal's own shape, not whether its value happens to
// be a whole number, matching a native JSON decoder's int/float split
// (e.g. "4" decodes to an int, "4.0" to a float, regardless of both
// denoting the same number).
func isIntegerLiteral(s string) bool {
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'E' {
			return false
		}
	}
	return true
}

func fromUnorderedMap(m map[string]any) (Value, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortStrings(keys)
	o := &Object{index: make(map[string]int, len(keys))}
	for _, k := range keys {
		cv, err := FromAny(m[k])
		if err != nil {
			return Value{}, err
		}
		o.Set(k, cv)
	}
	return FromObject(o), nil
}

// sortStrings sorts ss in place. Defined locally to avoid importing
// "sort" just for this one call site's worth of use.
func sortStrings(ss []string) {
	for i := 1; i < len(ss); i++ {
		for j := i; j > 0 && ss[j-1] > ss[j]; j-- {
			ss[j-1], ss[j] = ss[j], ss[j-1]
		}
	}
}
