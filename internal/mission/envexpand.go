// SPDX-License-Identifier: MPL-2.0

package mission

import "strings"

// ExpandEnv replaces every $NAME in s, NAME being one or more ASCII letters,
// digits or underscores, with lookup(NAME). A '$' not followed by a name is
// kept as is. When a variable is not defined, its $NAME text is kept and
// missing is called with it (missing may be nil).
func ExpandEnv(s string, lookup func(string) (string, bool), missing func(ref string)) string {
	if !strings.Contains(s, "$") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '$' {
			b.WriteByte(s[i])
			i++
			continue
		}
		end := i + 1
		for end < len(s) && isNameByte(s[end]) {
			end++
		}
		if end == i+1 {
			b.WriteByte('$')
			i++
			continue
		}
		ref := s[i:end]
		if value, ok := lookup(ref[1:]); ok {
			b.WriteString(value)
		} else {
			if missing != nil {
				missing(ref)
			}
			b.WriteString(ref)
		}
		i = end
	}
	return b.String()
}

func isNameByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
