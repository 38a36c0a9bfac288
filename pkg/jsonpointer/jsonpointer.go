// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonpointer implements JSON Pointer (RFC 6901) navigation
// over the decoded [value.Value] tree. This is not a fully general
// package: it is scoped to what the resolver and $ref keyword need.
package jsonpointer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/altshiftab/jsonschema-legacy/pkg/value"
)

// Resolve navigates doc by the tokens of fragment (a URI fragment, with
// or without a leading "#") and returns the value found there.
func Resolve(doc value.Value, fragment string) (value.Value, error) {
	fragment = strings.TrimPrefix(fragment, "#")
	if fragment == "" {
		return doc, nil
	}
	if !strings.HasPrefix(fragment, "/") {
		return value.Value{}, fmt.Errorf("json pointer %q must be empty or start with %q", fragment, "/")
	}

	v := doc
	for _, raw := range strings.Split(fragment[1:], "/") {
		tok := decodeToken(raw)
		switch {
		case v.IsObject():
			next, ok := v.Obj().Get(tok)
			if !ok {
				return value.Value{}, fmt.Errorf("json pointer %q: key %q not present", fragment, tok)
			}
			v = next

		case v.IsArray():
			items := v.Items()
			if tok == "-" {
				return value.Value{}, fmt.Errorf("json pointer %q: %q does not refer to an existing array element", fragment, tok)
			}
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 {
				return value.Value{}, fmt.Errorf("json pointer %q: token %q is not a valid array index", fragment, tok)
			}
			if idx >= len(items) {
				return value.Value{}, fmt.Errorf("json pointer %q: array index %d out of range (length %d)", fragment, idx, len(items))
			}
			v = items[idx]

		default:
			return value.Value{}, fmt.Errorf("json pointer %q: cannot descend into a %s", fragment, v.Kind())
		}
	}
	return v, nil
}

// decodeToken unescapes a single JSON Pointer reference token. The
// order matters: "~1" must be converted to "/" before "~0" is
// converted to "~", or a literal "~01" token would be misread as "/".
func decodeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~1", "/")
	return strings.ReplaceAll(tok, "~0", "~")
}
