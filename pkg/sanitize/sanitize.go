// Package sanitize cleans user-supplied file names before they become
// Cloudinary public IDs.
package sanitize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FileName transliterates name to plain ASCII-safe form: diacritics are
// stripped, anything outside [A-Za-z0-9._-] becomes an underscore, runs of
// underscores collapse, and leading/trailing underscores are trimmed.
func FileName(name string) string {
	clean, _, err := transform.String(stripMarks, name)
	if err != nil {
		clean = name
	}
	var b strings.Builder
	b.Grow(len(clean))
	prevUnderscore := false
	for _, r := range clean {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-':
			b.WriteRune(r)
			prevUnderscore = false
		default:
			if !prevUnderscore {
				b.WriteByte('_')
				prevUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
