// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package validerr defines the error and path types produced while
// validating an instance against a schema.
package validerr

import (
	"fmt"
	"strconv"
	"strings"

	motmedelErrors "github.com/Motmedel/utils_go/pkg/errors"
)

// PathSegment is one step of an instance path: either an array index
// or an object key. It is a closed tagged union; the only
// implementations are [IndexSegment] and [KeySegment].
type PathSegment interface {
	pathSegment()
	String() string
}

// IndexSegment is an array-index path step.
type IndexSegment int

func (IndexSegment) pathSegment() {}

func (s IndexSegment) String() string { return strconv.Itoa(int(s)) }

// KeySegment is an object-key path step.
type KeySegment string

func (KeySegment) pathSegment() {}

func (s KeySegment) String() string { return string(s) }

// Path is an instance path, root first. Keyword rules append their
// own segment only after a recursive call returns, so a Path is built
// leaf-to-root internally and reported root-to-leaf here.
type Path []PathSegment

// String renders p as a JSON Pointer ("" for the root).
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('/')
		b.WriteString(pointerEscape(seg.String()))
	}
	return b.String()
}

func pointerEscape(tok string) string {
	tok = strings.ReplaceAll(tok, "~", "~0")
	tok = strings.ReplaceAll(tok, "/", "~1")
	return tok
}

// ViolationError describes one keyword failing against one instance
// location. It is not itself a fatal Go error in the usual sense: a
// validation run that produces ViolationErrors is working correctly,
// reporting that the instance is invalid.
type ViolationError struct {
	// Message is a human-readable description of the failure.
	Message string
	// Keyword is the failing keyword's name, e.g. "minLength".
	Keyword string
	// Path is the instance path at which the keyword was evaluated.
	Path Path
	// SchemaPath is the schema path at which the keyword was found.
	SchemaPath Path
}

func (ve *ViolationError) Error() string {
	loc := ve.Path.String()
	if loc == "" {
		loc = "#"
	} else {
		loc = "#" + loc
	}
	return fmt.Sprintf("%s: %s", loc, ve.Message)
}

// WithPrefix returns a copy of ve with segment prepended to both the
// instance and schema paths. Keyword rules call this after a
// recursive evaluation returns, building the path from the leaf
// upward.
func (ve *ViolationError) WithPrefix(segment PathSegment) *ViolationError {
	cp := *ve
	cp.Path = append(Path{segment}, ve.Path...)
	if len(ve.SchemaPath) > 0 || segment != nil {
		cp.SchemaPath = append(Path{segment}, ve.SchemaPath...)
	}
	return &cp
}

// New builds a ViolationError scoped to the current instance location
// (no path yet; callers append path segments as recursion unwinds).
func New(keyword, message string) *ViolationError {
	return &ViolationError{Keyword: keyword, Message: message}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(keyword, format string, args ...any) *ViolationError {
	return New(keyword, fmt.Sprintf(format, args...))
}

// SchemaError reports that a schema document itself is malformed:
// a keyword has the wrong argument type, a required sibling is
// missing, or a draft constraint is violated. It is a fatal error,
// distinct from a [ViolationError], which reports instance failures
// under an otherwise well-formed schema.
type SchemaError struct {
	Path    Path
	Message string
}

func (e *SchemaError) Error() string {
	loc := e.Path.String()
	if loc == "" {
		loc = "#"
	} else {
		loc = "#" + loc
	}
	return fmt.Sprintf("schema error at %s: %s", loc, e.Message)
}

// NewSchemaError constructs a stack-traced [SchemaError].
func NewSchemaError(path Path, format string, args ...any) error {
	return motmedelErrors.NewWithTrace(&SchemaError{Path: path, Message: fmt.Sprintf(format, args...)})
}

// RefResolutionError reports a failure to resolve a $ref: the
// referenced URI could not be fetched, had no matching scheme
// handler, or its fragment did not resolve within the referenced
// document.
type RefResolutionError struct {
	Ref     string
	Message string
}

func (e *RefResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve ref %q: %s", e.Ref, e.Message)
}

// NewRefResolutionError constructs a stack-traced [RefResolutionError].
func NewRefResolutionError(ref, format string, args ...any) error {
	return motmedelErrors.NewWithTrace(&RefResolutionError{Ref: ref, Message: fmt.Sprintf(format, args...)})
}

// UnknownType reports that a type name appearing in a "type" keyword
// (or its draft-03 "disallow" counterpart) is not one of the seven
// JSON Schema primitive type names and has no registered override.
type UnknownType struct {
	Name string
}

func (e *UnknownType) Error() string {
	return fmt.Sprintf("unknown type %q", e.Name)
}

// NewUnknownType constructs a stack-traced [UnknownType].
func NewUnknownType(name string) error {
	return motmedelErrors.NewWithTrace(&UnknownType{Name: name})
}

// IsViolation reports whether err is a [ViolationError].
func IsViolation(err error) bool {
	_, ok := err.(*ViolationError)
	return ok
}
