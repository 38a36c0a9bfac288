// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metaschema embeds the canonical draft-03 and draft-04
// meta-schema documents and exposes them by their $schema URI.
package metaschema

import (
	"embed"
	"fmt"
	"sync"

	"github.com/altshiftab/jsonschema-legacy/pkg/value"
)

//go:embed schemas/*.json
var schemasFS embed.FS

// Canonical $schema URIs. Duplicated from pkg/evaluator rather than
// imported: pkg/evaluator's own tests import this package, so an
// import of pkg/evaluator here would form an import cycle.
const (
	Draft3URI = "http://json-schema.org/draft-03/schema#"
	Draft4URI = "http://json-schema.org/draft-04/schema#"
)

var files = map[string]string{
	Draft3URI: "schemas/draft-03.json",
	Draft4URI: "schemas/draft-04.json",
}

var (
	loadOnce sync.Once
	loaded   map[string]value.Value
	loadErr  error
)

func loadAll() (map[string]value.Value, error) {
	loadOnce.Do(func() {
		loaded = make(map[string]value.Value, len(files))
		for uri, path := range files {
			raw, err := schemasFS.ReadFile(path)
			if err != nil {
				loadErr = fmt.Errorf("metaschema: read %s: %w", path, err)
				return
			}
			doc, err := value.Decode(raw)
			if err != nil {
				loadErr = fmt.Errorf("metaschema: decode %s: %w", path, err)
				return
			}
			loaded[uri] = doc
		}
	})
	return loaded, loadErr
}

// Get returns the embedded meta-schema document for the given $schema
// URI, or false if uri names neither draft-03 nor draft-04.
func Get(uri string) (value.Value, bool, error) {
	all, err := loadAll()
	if err != nil {
		return value.Value{}, false, err
	}
	doc, ok := all[uri]
	return doc, ok, nil
}

// MustGet is Get, panicking on failure. Intended for package-level
// registry construction, where the embedded documents are expected to
// always parse.
func MustGet(uri string) value.Value {
	doc, ok, err := Get(uri)
	if err != nil {
		panic(err)
	}
	if !ok {
		panic(fmt.Sprintf("metaschema: no document registered for %s", uri))
	}
	return doc
}
