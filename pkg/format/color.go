// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import "strings"

// cssNamedColors is the CSS2.1 set of named colors, the set draft-03
// and draft-04's "color" format accept alongside hex codes.
var cssNamedColors = map[string]bool{
	"maroon": true, "red": true, "orange": true, "yellow": true,
	"olive": true, "purple": true, "fuchsia": true, "white": true,
	"lime": true, "green": true, "navy": true, "blue": true,
	"aqua": true, "teal": true, "black": true, "silver": true,
	"gray": true,
}

// colorCheck requires a CSS2.1 named color or a "#rgb"/"#rrggbb" hex
// code.
func colorCheck(s string) bool {
	if cssNamedColors[strings.ToLower(s)] {
		return true
	}
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
