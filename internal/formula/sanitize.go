// Package formula turns a simulator's field labels and formula text into
// a computed result. The formula is parsed by a small recursive-descent
// parser over an explicit grammar (numbers, field identifiers, + - * /,
// parentheses and a closed set of helper functions); nothing in a
// formula string is ever executed as code.
package formula

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Diacritics are folded to their base letter so accented labels keep a
// readable identifier ("Durée" -> "duree" rather than "dure").
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var (
	nonIdentRe = regexp.MustCompile(`[^a-z0-9_\s]+`)
	spaceRunRe = regexp.MustCompile(`\s+`)
)

// Sanitize derives the evaluation-variable name for a field label:
// lower-case, fold accents, drop everything that is not a letter, digit,
// underscore or space, then join the remaining words with single
// underscores. The result contains only [a-z0-9_].
//
// Sanitize gives no uniqueness guarantee: "Taux (%)" and "Taux %" both
// become "taux". When two fields collide, binding iterates fields in
// order and the later field's value wins. That behavior is part of the
// contract (see the package tests), not an accident to be patched here.
func Sanitize(label string) string {
	s := strings.ToLower(label)
	if folded, _, err := transform.String(foldDiacritics, s); err == nil {
		s = folded
	}
	s = nonIdentRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return spaceRunRe.ReplaceAllString(s, "_")
}
