// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"net/mail"
	"strings"
)

// emailCheck requires a valid email address, per spec §4.2: presence
// of a single "@" plus something that parses as an RFC5321 mailbox.
func emailCheck(s string) bool {
	// RFC5321 permits IPv6 literals as "IPv6:literal" but net/mail
	// doesn't parse that.
	s = strings.Replace(s, "[IPv6:", "[", 1)

	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" {
		return false
	}

	idx := strings.LastIndex(addr.Address, "@")
	if idx < 0 {
		return false
	}
	domain := addr.Address[idx+1:]
	if domain == "" {
		return false
	}
	if domain[0] != '[' && !isNonIDNDomain(domain) {
		return false
	}

	return true
}

// isNonIDNDomain reports whether s might be a non-internationalized
// domain name.
func isNonIDNDomain(s string) bool {
	for i := range len(s) {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '.':
		case c == '-':
		default:
			return false
		}
	}
	return true
}
