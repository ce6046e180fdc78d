// Package names canonicalizes display names into comparable keys.
//
// The same options must be used when building an index and when
// normalizing the query that is looked up in it; a mismatch silently
// produces no matches.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Options struct {
	IgnoreSpaces      bool
	CaseSensitive     bool
	IgnoreAccents     bool
	IgnorePunctuation bool
}

func DefaultOptions() Options {
	return Options{
		IgnoreSpaces:      true,
		CaseSensitive:     false,
		IgnoreAccents:     true,
		IgnorePunctuation: true,
	}
}

var punctuation = strings.NewReplacer(
	"-", " ",
	",", "",
	".", "",
	"(", "",
	")", "",
	`"`, "",
	"'", "",
)

// Normalize returns the canonical key for text.
func Normalize(text string, opts Options) string {
	if !opts.CaseSensitive {
		text = strings.ToLower(text)
	}
	if opts.IgnorePunctuation {
		text = punctuation.Replace(text)
	}
	if opts.IgnoreAccents {
		text = stripAccents(text)
	}
	if opts.IgnoreSpaces {
		text = strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, text)
	}
	return text
}

// Key normalizes text with DefaultOptions.
func Key(text string) string {
	return Normalize(text, DefaultOptions())
}

// Fix removes the '|' break markers the game embeds in some names.
func Fix(name string) string {
	return strings.ReplaceAll(name, "|", "")
}

func stripAccents(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}
