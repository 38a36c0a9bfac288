// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"net/netip"
	"net/url"
	"strings"
)

// uriCheck requires a valid absolute URI-reference, per RFC 3987.
func uriCheck(s string) bool {
	uri, err := url.Parse(s)
	if err != nil {
		return false
	}
	if !uri.IsAbs() {
		return false
	}
	return checkURI(uri)
}

// checkURI applies the additional checks a JSON Schema test suite
// expects beyond what net/url itself enforces.
func checkURI(uri *url.URL) bool {
	// An IPv6 host should be in square brackets; otherwise the
	// colons can confuse the parse.
	if addr, err := netip.ParseAddr(uri.Host); err == nil && addr.Is6() {
		return false
	}
	if strings.Contains(uri.Fragment, `\`) {
		return false
	}

	for i := range uri.RawPath {
		c := uri.RawPath[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			continue
		}
		switch c {
		case '-', '_', '.', '~', '@', '&', '=', '+', '$', '/', ';', ',', '(', ')', '#':
			continue
		default:
			return false
		}
	}

	return true
}
