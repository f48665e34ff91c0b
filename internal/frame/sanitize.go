package frame

import (
	"regexp"
	"strings"
)

// catalogSpacing collapses the space in catalog designations so "M 31" and
// "NGC 224" sanitize to m31 and ngc224 instead of m_31 and ngc_224.
var catalogSpacing = regexp.MustCompile(`(?i)\b(m|ngc|ic|sh2)[ \t]+(\d+)`)

// Sanitize lowercases a header value and maps it onto the filesystem-safe
// alphabet [a-z0-9._-]. Runs of replaced characters collapse to a single
// underscore. Empty input sanitizes to "unknown".
func Sanitize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	b.Grow(len(name))
	lastUnderscore := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "unknown"
	}
	return out
}

// SanitizeTarget normalizes an OBJECT header value for use as a path
// segment, fixing catalog designation spacing before sanitizing.
func SanitizeTarget(name string) string {
	return Sanitize(catalogSpacing.ReplaceAllString(name, "$1$2"))
}
