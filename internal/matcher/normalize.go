// Package matcher implements the Product Matcher of §4.8: GTIN exact match,
// fingerprint lookup, then fuzzy name matching. The GTIN/fingerprint tiers
// have no teacher analogue (the teacher dedups by domain, not by product
// identity) and are built as plain Go; the fuzzy tier uses
// github.com/agnivade/levenshtein, a real out-of-pack dependency, since
// nothing in the retrieved pack implements FuzzyWuzzy-style ratio scoring.
package matcher

import (
	"regexp"
	"strings"
)

var typeSuffixes = []string{
	"single malt scotch whisky", "single malt whisky", "scotch whisky",
	"blended whisky", "bourbon whiskey", "rye whiskey", "irish whiskey",
	"whisky", "whiskey", "port wine", "port",
}

var agePhraseRe = regexp.MustCompile(`(?i)(\d{1,2})\s*(?:years?|yrs?)\s*old`)
var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeName case-folds, strips standard type suffixes, normalizes age
// phrases, and collapses whitespace (§4.8 step 3).
func NormalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = agePhraseRe.ReplaceAllString(n, "$1yo")
	for _, suf := range typeSuffixes {
		n = strings.ReplaceAll(n, suf, "")
	}
	n = whitespaceRe.ReplaceAllString(n, " ")
	return strings.TrimSpace(n)
}

var articles = map[string]bool{"the": true, "a": true, "an": true}

// FirstSignificantWord returns the first word of a name, skipping leading
// articles (§4.8 step 3: "require first significant word of name (skipping
// articles the/a/an) to match").
func FirstSignificantWord(name string) string {
	for _, w := range strings.Fields(strings.ToLower(name)) {
		if !articles[w] {
			return w
		}
	}
	return ""
}
