// Package naming produces the canonical, URL-safe names documents are stored under.
package naming

import (
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fallbackStem is used when nothing of the original stem survives slugification.
const fallbackStem = "document"

// Slugify lower-cases s, strips diacritics and collapses every run of characters outside
// [a-z0-9] into a single hyphen. Leading and trailing hyphens are trimmed.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// Normalize strips the extension from original, slugifies the stem and appends ext, which should
// be the sniffed extension rather than the one the client claimed. It is deterministic.
func Normalize(original, ext string) string {
	stem := strings.TrimSuffix(original, path.Ext(original))
	slug := Slugify(stem)
	if slug == "" {
		slug = fallbackStem
	}
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return slug + ext
}

// Compose builds the pre-normalization stem for a course document:
// {course code}-{category}[-{term}]-{token}.
func Compose(courseCode, category, termTag, token string) string {
	parts := []string{courseCode, category}
	if termTag != "" {
		parts = append(parts, termTag)
	}
	parts = append(parts, token)
	return strings.Join(parts, "-")
}

// Token returns a short random hex disambiguator.
func Token() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
