// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package format implements format checkers for the "format" keyword.
// A [FormatChecker] is a per-draft, instantiable registry: an
// unregistered format name is always accepted, matching the JSON
// Schema rule that "format" is an annotation keyword unless a
// validator opts into enforcing it.
package format

import "github.com/altshiftab/jsonschema-legacy/pkg/value"

// CheckFunc reports whether s satisfies a named format.
type CheckFunc func(s string) bool

// FormatChecker holds a named set of format predicates. The zero
// value has no registered formats (every format conforms).
type FormatChecker struct {
	checks map[string]CheckFunc
}

// NewFormatChecker builds a FormatChecker. If parent is non-nil, its
// registered checks are copied in first, so the result inherits them
// and may add to or override them.
func NewFormatChecker(parent *FormatChecker) *FormatChecker {
	fc := &FormatChecker{checks: make(map[string]CheckFunc)}
	if parent != nil {
		for name, check := range parent.checks {
			fc.checks[name] = check
		}
	}
	return fc
}

// Register installs check under name, replacing any existing check
// registered under that name.
func (fc *FormatChecker) Register(name string, check CheckFunc) {
	if fc.checks == nil {
		fc.checks = make(map[string]CheckFunc)
	}
	fc.checks[name] = check
}

// Conforms reports whether instance satisfies the named format. A
// name with no registered check, or an instance that is not a
// string, conforms trivially.
func (fc *FormatChecker) Conforms(instance value.Value, name string) bool {
	if fc == nil {
		return true
	}
	check, ok := fc.checks[name]
	if !ok {
		return true
	}
	if !instance.IsString() {
		return true
	}
	return check(instance.Str())
}

// NewDraft3 returns a FormatChecker populated with the formats
// draft-03 names: "ip-address" and "host-name" in place of draft-04's
// "ipv4"/"hostname", plus the formats common to both drafts.
func NewDraft3() *FormatChecker {
	fc := NewFormatChecker(nil)
	registerCommon(fc)
	fc.Register("ip-address", ipv4Check)
	fc.Register("host-name", hostnameCheck)
	return fc
}

// NewDraft4 returns a FormatChecker populated with the formats
// draft-04 names, plus the formats common to both drafts.
func NewDraft4() *FormatChecker {
	fc := NewFormatChecker(nil)
	registerCommon(fc)
	fc.Register("ipv4", ipv4Check)
	fc.Register("ipv6", ipv6Check)
	fc.Register("hostname", hostnameCheck)
	return fc
}

func registerCommon(fc *FormatChecker) {
	fc.Register("email", emailCheck)
	fc.Register("date", dateCheck)
	fc.Register("time", timeCheck)
	fc.Register("date-time", dateTimeCheck)
	fc.Register("regex", regexCheck)
	fc.Register("uri", uriCheck)
	fc.Register("color", colorCheck)
}
