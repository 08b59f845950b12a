package database

import (
	"fmt"
	"strings"

	goslug "github.com/gosimple/slug"
)

const maxSlugLen = 80

// Slugify converts a row title into a filename stem.
// Example: "Fix FTS5 empty query crash" → "fix-fts5-empty-query-crash"
//
// Rules:
//   - Lowercase
//   - Spaces and underscores become hyphens
//   - Non-alphanumeric characters (except hyphens) are removed
//   - Consecutive hyphens are collapsed
//   - Leading/trailing hyphens are trimmed
//   - Truncated to 80 characters (at a word boundary if possible)
//   - Empty input returns "untitled"
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	prevHyphen := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			prevHyphen = false
		case r == ' ' || r == '_' || r == '-' || r == '\t':
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "untitled"
	}
	if len(slug) <= maxSlugLen {
		return slug
	}

	truncated := slug[:maxSlugLen]
	if lastHyphen := strings.LastIndex(truncated, "-"); lastHyphen > maxSlugLen/2 {
		truncated = truncated[:lastHyphen]
	}
	return strings.TrimRight(truncated, "-")
}

// identifier derives a view or column id from a display name. Unlike
// Slugify it transliterates non-ASCII letters.
func identifier(name, fallback string) string {
	id := goslug.Make(name)
	if id == "" {
		return fallback
	}
	return id
}

// uniqueStem appends -1, -2, ... to stem until taken reports false.
func uniqueStem(stem string, taken func(string) bool) string {
	if !taken(stem) {
		return stem
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", stem, i)
		if !taken(candidate) {
			return candidate
		}
	}
}
