// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import "regexp/syntax"

// regexCheck requires a valid regular expression. Note that only
// Go-style (RE2/Perl-subset) regexps are accepted; ECMA-262 features
// unsupported by Go's regexp/syntax are rejected even if a draft-03
// or draft-04 schema author intended them.
func regexCheck(s string) bool {
	_, err := syntax.Parse(s, syntax.Perl)
	return err == nil
}
