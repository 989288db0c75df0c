package matcher

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ratio is the classic FuzzyWuzzy "ratio" score: 100 * (1 - distance / maxLen).
func ratio(a, b string) int {
	if a == "" && b == "" {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 100
	}
	score := 100 * (1 - float64(dist)/float64(maxLen))
	if score < 0 {
		score = 0
	}
	return int(score)
}

// partialRatio scores the best-aligned substring of the longer string
// against the shorter one — catches "Glenfiddich 12" inside "Glenfiddich 12
// Year Old Single Malt".
func partialRatio(a, b string) int {
	shorter, longer := a, b
	if len(a) > len(b) {
		shorter, longer = b, a
	}
	if shorter == "" {
		return ratio(a, b)
	}
	best := 0
	window := len(shorter)
	for i := 0; i+window <= len(longer); i++ {
		score := ratio(shorter, longer[i:i+window])
		if score > best {
			best = score
		}
	}
	if best == 0 {
		return ratio(a, b)
	}
	return best
}

func sortedTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// tokenSortRatio compares the two strings with their words alphabetically
// sorted, neutralizing word-order differences.
func tokenSortRatio(a, b string) int {
	return ratio(sortedTokens(a), sortedTokens(b))
}

// tokenSetRatio compares the intersection/union of tokens, neutralizing
// both order and repeated/extra words.
func tokenSetRatio(a, b string) int {
	aTokens := strings.Fields(a)
	bTokens := strings.Fields(b)
	aSet := toSet(aTokens)
	bSet := toSet(bTokens)

	var intersection, aOnly, bOnly []string
	for t := range aSet {
		if bSet[t] {
			intersection = append(intersection, t)
		} else {
			aOnly = append(aOnly, t)
		}
	}
	for t := range bSet {
		if !aSet[t] {
			bOnly = append(bOnly, t)
		}
	}
	sort.Strings(intersection)
	sort.Strings(aOnly)
	sort.Strings(bOnly)

	base := strings.Join(intersection, " ")
	combinedA := strings.TrimSpace(base + " " + strings.Join(aOnly, " "))
	combinedB := strings.TrimSpace(base + " " + strings.Join(bOnly, " "))

	scores := []int{
		ratio(base, combinedA),
		ratio(base, combinedB),
		ratio(combinedA, combinedB),
	}
	best := 0
	for _, s := range scores {
		if s > best {
			best = s
		}
	}
	return best
}

func toSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

// BestFuzzyScore returns the best of {ratio, partial_ratio, token_sort_ratio,
// token_set_ratio} over two already-normalized names (§4.8 step 3).
func BestFuzzyScore(a, b string) int {
	best := ratio(a, b)
	for _, s := range []int{partialRatio(a, b), tokenSortRatio(a, b), tokenSetRatio(a, b)} {
		if s > best {
			best = s
		}
	}
	return best
}
