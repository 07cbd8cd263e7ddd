// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug derives and checks the public identifiers of categories and
// genres (e.g., "science-fiction").
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// valid is the accepted slug alphabet: ASCII letters, digits, hyphens, underscores.
	valid = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

	// separators matches every run of characters a generated slug cannot hold.
	separators = regexp.MustCompile(`[^a-z0-9]+`)

	foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
)

// Valid reports whether s may be used as a slug.
//
// Client-supplied slugs may keep upper case and underscores; generated ones never do.
func Valid(s string) bool {
	return valid.MatchString(s)
}

// From derives a lowercase, hyphen-separated slug from a display name.
//
// Accents are folded ("Café" → "cafe"). Letters with no ASCII form are
// dropped, so a name in another script yields "".
func From(s string) string {
	folded, _, err := transform.String(foldAccents, s)
	if err != nil {
		folded = s
	}

	return strings.Trim(separators.ReplaceAllString(strings.ToLower(folded), "-"), "-")
}

// FromMax is [From] cut to at most max bytes without a trailing hyphen.
// A non-positive max disables the cut.
func FromMax(s string, max int) string {
	result := From(s)
	if max <= 0 || len(result) <= max {
		return result
	}
	return strings.TrimRight(result[:max], "-")
}
