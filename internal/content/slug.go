// Package content holds the pure derivations applied to post and comment text before it is stored:
// slugs, reading time, markdown rendering, sanitising and excerpts.
package content

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FallbackSlug is used when a title contains no characters that survive slugging.
const FallbackSlug = "post"

var slugDenylist = strings.NewReplacer(
	"*", "", "+", "", "~", "", ".", "", "(", "", ")", "",
	"'", "", `"`, "", "!", "", ":", "", "@", "",
)

// Slugify turns a title into a lowercase token made of [a-z0-9] runs joined by single hyphens.
// Accented letters are folded to their ASCII base; everything else separates words.
func Slugify(title string) string {
	s := slugDenylist.Replace(title)
	s = foldASCII(s)
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))

	pendingHyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	if b.Len() == 0 {
		return FallbackSlug
	}
	return b.String()
}

// WithSuffix returns the n-th collision candidate for base: base itself for 0, base-n otherwise.
func WithSuffix(base string, n int) string {
	if n <= 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}

func foldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
