// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolver implements $ref resolution and resolution-scope
// tracking for draft-03/draft-04 JSON Schema: a stack of base URIs,
// a document store keyed by canonical URI, and pluggable scheme
// handlers for fetching remote documents.
package resolver

import (
	"fmt"
	"net/url"
	"os"
	"sync"

	"github.com/altshiftab/jsonschema-legacy/pkg/jsonpointer"
	"github.com/altshiftab/jsonschema-legacy/pkg/validerr"
	"github.com/altshiftab/jsonschema-legacy/pkg/value"
)

// Fetcher retrieves the bytes at uri and returns them decoded as
// UTF-8 JSON. Implementations are registered per scheme via
// [Resolver.RegisterScheme].
type Fetcher interface {
	Fetch(uri string) (value.Value, error)
}

// FetcherFunc adapts a function to a [Fetcher].
type FetcherFunc func(uri string) (value.Value, error)

func (f FetcherFunc) Fetch(uri string) (value.Value, error) { return f(uri) }

// unsupportedSchemeFetcher is installed by default for http/https:
// network fetching is out of scope for this module (see spec §1's
// non-goals); callers that need it register their own Fetcher.
var unsupportedSchemeFetcher = FetcherFunc(func(uri string) (value.Value, error) {
	return value.Value{}, fmt.Errorf("no fetcher registered for %q; remote fetching is not built in", uri)
})

// Resolver tracks $ref resolution state: the current base URI, a LIFO
// resolution-scope stack, the current referrer document, and a cache
// of documents keyed by canonical (fragment-stripped) URI.
//
// Resolver is not safe for concurrent use by multiple goroutines; the
// scope stack mutates under strict push/pop discipline matched to a
// single validation run.
type Resolver struct {
	baseURI  string
	referrer value.Value
	scopes   []string

	mu          sync.Mutex
	store       map[string]value.Value
	cacheRemote bool
	handlers    map[string]Fetcher
}

// New constructs a Resolver rooted at baseURI, with referrer as the
// document that $ref resolves against when no more specific document
// applies. cacheRemote controls whether fetched remote documents are
// added to the store.
func New(baseURI string, referrer value.Value, cacheRemote bool) *Resolver {
	return &Resolver{
		baseURI:     baseURI,
		referrer:    referrer,
		scopes:      []string{baseURI},
		store:       make(map[string]value.Value),
		cacheRemote: cacheRemote,
		handlers:    map[string]Fetcher{"file": FileFetcher{Read: os.ReadFile}, "http": unsupportedSchemeFetcher, "https": unsupportedSchemeFetcher},
	}
}

// FromSchema constructs a Resolver whose referrer is schema and whose
// base URI is schema's top-level "id" keyword, if present ("" if not).
func FromSchema(schema value.Value) *Resolver {
	base := ""
	if schema.IsObject() {
		if id, ok := schema.Obj().Get("id"); ok && id.IsString() {
			base = id.Str()
		}
	}
	return New(base, schema, true)
}

// RegisterScheme installs f as the fetcher for the given URI scheme
// (without the trailing colon), overriding any previous handler,
// including the http/https defaults.
func (r *Resolver) RegisterScheme(scheme string, f Fetcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[scheme] = f
}

// Store records doc under uri (fragment stripped) so that later
// resolution of that URI does not require a fetch.
func (r *Resolver) Store(uri string, doc value.Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[canonicalize(uri)] = doc
}

// BaseURI returns the resolver's current base URI.
func (r *Resolver) BaseURI() string { return r.baseURI }

// ResolutionScope returns the resolver's current resolution scope,
// the top of the scope stack.
func (r *Resolver) ResolutionScope() string {
	if len(r.scopes) == 0 {
		return ""
	}
	return r.scopes[len(r.scopes)-1]
}

// PushScope joins scopeURI onto the current resolution scope and
// pushes the result. The caller MUST call the returned pop function
// exactly once, on every exit path (including error paths), to
// restore the previous scope.
func (r *Resolver) PushScope(scopeURI string) (pop func()) {
	joined := urlJoin(r.ResolutionScope(), scopeURI)
	r.scopes = append(r.scopes, joined)
	return func() {
		r.scopes = r.scopes[:len(r.scopes)-1]
	}
}

// PopScope is the primitive counterpart to PushScope, for callers
// that cannot structure their code as a single nested call. It pops
// exactly one scope; it is the caller's responsibility to pair every
// PopScope with a preceding PushScope.
func (r *Resolver) PopScope() {
	if len(r.scopes) > 0 {
		r.scopes = r.scopes[:len(r.scopes)-1]
	}
}

// InScope runs fn with scopeURI pushed onto the resolution scope,
// restoring the previous scope when fn returns, panics, or returns an
// error.
func (r *Resolver) InScope(scopeURI string, fn func() error) (err error) {
	pop := r.PushScope(scopeURI)
	defer pop()
	return fn()
}

// Resolving resolves ref against the current scope and invokes fn
// with the referenced value. For the duration of fn, the resolver's
// base URI, referrer, and resolution scope are swapped to the
// resolved document; all three are restored before Resolving returns,
// on every exit path.
func (r *Resolver) Resolving(ref string, fn func(value.Value) error) error {
	full := urlJoin(r.ResolutionScope(), ref)
	uri, fragment := urlDefrag(full)

	doc, err := r.documentFor(uri)
	if err != nil {
		return err
	}

	savedBase, savedReferrer := r.baseURI, r.referrer
	r.baseURI, r.referrer = uri, doc
	defer func() { r.baseURI, r.referrer = savedBase, savedReferrer }()

	return r.InScope(uri, func() error {
		target, err := jsonpointer.Resolve(doc, fragment)
		if err != nil {
			return validerr.NewRefResolutionError(ref, "%v", err)
		}
		return fn(target)
	})
}

// documentFor chooses the document that uri refers to: the store if
// cached, the current referrer if uri is empty or equal to the
// current base URI with its fragment stripped, otherwise a remote
// fetch.
func (r *Resolver) documentFor(uri string) (value.Value, error) {
	key := canonicalize(uri)

	r.mu.Lock()
	cached, ok := r.store[key]
	r.mu.Unlock()
	if ok {
		return cached, nil
	}

	if uri == "" || uri == canonicalize(r.baseURI) {
		return r.referrer, nil
	}

	doc, err := r.resolveRemote(uri)
	if err != nil {
		return value.Value{}, err
	}
	return doc, nil
}

// resolveRemote fetches uri using the handler registered for its
// scheme, caching the parsed document into the store iff cacheRemote.
func (r *Resolver) resolveRemote(uri string) (value.Value, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return value.Value{}, validerr.NewRefResolutionError(uri, "invalid URI: %v", err)
	}

	r.mu.Lock()
	handler, ok := r.handlers[parsed.Scheme]
	r.mu.Unlock()
	if !ok {
		return value.Value{}, validerr.NewRefResolutionError(uri, "no handler registered for scheme %q", parsed.Scheme)
	}

	doc, err := handler.Fetch(uri)
	if err != nil {
		return value.Value{}, validerr.NewRefResolutionError(uri, "fetch failed: %v", err)
	}

	if r.cacheRemote {
		r.Store(uri, doc)
	}
	return doc, nil
}

// canonicalize strips the fragment from uri, matching the invariant
// that the store keys documents by fragment-stripped URI.
func canonicalize(uri string) string {
	key, _ := urlDefrag(uri)
	return key
}

// urlJoin resolves ref against base the way a browser resolves a
// relative link: absolute refs are returned unchanged, and refs with
// no scheme are joined onto base.
func urlJoin(base, ref string) string {
	if ref == "" {
		return base
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if refURL.IsAbs() || base == "" {
		return ref
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// urlDefrag splits full into its fragment-stripped URI and fragment
// (without the leading "#").
func urlDefrag(full string) (uri, fragment string) {
	parsed, err := url.Parse(full)
	if err != nil {
		return full, ""
	}
	frag := parsed.Fragment
	parsed.Fragment = ""
	return parsed.String(), frag
}

// FileFetcher is a [Fetcher] that reads documents from the local
// filesystem. [New] registers one, reading with [os.ReadFile], as the
// handler for scheme "file".
type FileFetcher struct {
	// Read reads the file named by the URI's path (its Opaque or
	// Path component, whichever is set).
	Read func(path string) ([]byte, error)
}

func (f FileFetcher) Fetch(uri string) (value.Value, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return value.Value{}, err
	}
	path := parsed.Path
	if path == "" {
		path = parsed.Opaque
	}
	data, err := f.Read(path)
	if err != nil {
		return value.Value{}, err
	}
	return value.Decode(data)
}
