// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/altshiftab/jsonschema-legacy/pkg/value"
)

func TestUnregisteredFormatConformsTrivially(t *testing.T) {
	fc := NewFormatChecker(nil)
	assert.True(t, fc.Conforms(value.String("not a date"), "date"))
}

func TestNonStringConformsTrivially(t *testing.T) {
	fc := NewDraft4()
	assert.True(t, fc.Conforms(value.Int(1), "date"))
}

func TestDraft3UsesLegacyIPAndHostNames(t *testing.T) {
	fc := NewDraft3()
	assert.True(t, fc.Conforms(value.String("192.0.2.1"), "ip-address"))
	assert.False(t, fc.Conforms(value.String("not-an-ip"), "ip-address"))
	assert.True(t, fc.Conforms(value.String("example.com"), "host-name"))
}

func TestDraft4UsesIPv4IPv6Hostname(t *testing.T) {
	fc := NewDraft4()
	assert.True(t, fc.Conforms(value.String("192.0.2.1"), "ipv4"))
	assert.True(t, fc.Conforms(value.String("::1"), "ipv6"))
	assert.False(t, fc.Conforms(value.String("192.0.2.1"), "ipv6"))
	assert.True(t, fc.Conforms(value.String("example.com"), "hostname"))
}

func TestEmailFormat(t *testing.T) {
	fc := NewDraft4()
	assert.True(t, fc.Conforms(value.String("user@example.com"), "email"))
	assert.False(t, fc.Conforms(value.String("not-an-email"), "email"))
}

func TestDateTimeFormats(t *testing.T) {
	fc := NewDraft4()
	assert.True(t, fc.Conforms(value.String("2026-07-29"), "date"))
	assert.False(t, fc.Conforms(value.String("2026-13-40"), "date"))
	assert.True(t, fc.Conforms(value.String("12:30:00Z"), "time"))
	assert.True(t, fc.Conforms(value.String("2026-07-29T12:30:00Z"), "date-time"))
	assert.False(t, fc.Conforms(value.String("not-a-date-time"), "date-time"))
}

func TestRegexFormat(t *testing.T) {
	fc := NewDraft4()
	assert.True(t, fc.Conforms(value.String("^[a-z]+$"), "regex"))
	assert.False(t, fc.Conforms(value.String("("), "regex"))
}

func TestURIFormat(t *testing.T) {
	fc := NewDraft4()
	assert.True(t, fc.Conforms(value.String("https://example.com/path"), "uri"))
	assert.False(t, fc.Conforms(value.String("not a uri"), "uri"))
}

func TestColorFormat(t *testing.T) {
	fc := NewDraft4()
	assert.True(t, fc.Conforms(value.String("red"), "color"))
	assert.True(t, fc.Conforms(value.String("#fff"), "color"))
	assert.True(t, fc.Conforms(value.String("#ff00ff"), "color"))
	assert.False(t, fc.Conforms(value.String("not-a-color"), "color"))
}

func TestNewFormatCheckerInheritsParent(t *testing.T) {
	parent := NewDraft4()
	child := NewFormatChecker(parent)
	assert.True(t, child.Conforms(value.String("user@example.com"), "email"))

	child.Register("email", func(string) bool { return false })
	assert.False(t, child.Conforms(value.String("user@example.com"), "email"))
	// The parent's own checker is untouched.
	assert.True(t, parent.Conforms(value.String("user@example.com"), "email"))
}
