// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug derives and checks the ASCII codes that identify churches in
// URLs and exports (e.g. "st-marys-forane-church-kuravilangad").
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// separators matches every run of characters that is not [a-z0-9].
	separators = regexp.MustCompile(`[^a-z0-9]+`)
	// wellFormed is the shape [From] produces: hyphen-joined [a-z0-9] words.
	wellFormed = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	stripMarks = transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
)

/*
From converts a display name into a slug.

Steps:
 1. NFD-decompose and drop combining marks ("Église" becomes "Eglise").
 2. Lowercase.
 3. Replace every run of other characters with one hyphen.
 4. Trim hyphens at both ends.

Names with no ASCII letters or digits yield "".
*/
func From(name string) string {
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)
	return strings.Trim(separators.ReplaceAllString(folded, "-"), "-")
}

// Valid reports whether s already has the shape [From] produces.
func Valid(s string) bool {
	return wellFormed.MatchString(s)
}

// Truncate shortens a slug to at most max bytes without leaving a trailing hyphen.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return strings.TrimRight(s[:max], "-")
}
