// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"net/netip"
	"strings"
	"sync"

	"golang.org/x/net/idna"
)

// hostnameProfile returns the IDNA profile used to validate
// non-internationalized hostnames.
var hostnameProfile = sync.OnceValue(func() *idna.Profile {
	return idna.New(idna.ValidateForRegistration())
})

// hostnameCheck accepts any IP address literal that net/netip parses,
// IPv6 forms with colons included. Any other string must be ASCII,
// contain no "_", and pass IDNA's registration profile
// (RFC952/RFC1123 label rules), which limits every dot-separated
// label to 63 octets.
func hostnameCheck(s string) bool {
	if _, err := netip.ParseAddr(s); err == nil {
		return true
	}

	if strings.Contains(s, "_") {
		return false
	}
	for i := range len(s) {
		if s[i]&0x80 != 0 {
			return false
		}
	}

	_, err := hostnameProfile().ToASCII(s)
	return err == nil
}
