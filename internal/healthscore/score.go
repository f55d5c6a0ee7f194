// Package healthscore computes the 1-10 nutritional desirability score for a
// product from its ingredient list. The computation is a pure function of the
// list and two fixed keyword tables.
package healthscore

import (
	"strings"
)

const (
	baseScore = 7
	minScore  = 1
	maxScore  = 10
)

var badKeywords = []string{
	"refined oil",
	"sugar",
	"maida",
	"artificial flavoring",
	"preservatives",
}

var goodKeywords = []string{
	"olive oil",
	"whole grain",
	"fiber",
	"protein",
	"organic",
	"natural",
}

// Compute returns the health score for an ingredient list. Each ingredient
// contributes at most one bad-keyword penalty and at most one good-keyword
// bonus; matching is a case-insensitive substring test. The result is clamped
// to [1, 10].
func Compute(ingredients []string) int {
	score := baseScore
	for _, ingredient := range ingredients {
		name := strings.ToLower(ingredient)
		if matchesAny(name, badKeywords) {
			score--
		}
		if matchesAny(name, goodKeywords) {
			score++
		}
	}
	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

func matchesAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
