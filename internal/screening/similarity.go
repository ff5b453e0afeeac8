package screening

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Similarity weights for CombinedSimilarity. Edit distance dominates because
// designation lists mostly differ from queries by spelling, not word order.
const (
	editWeight     = 0.6
	tokenWeight    = 0.4
	substringBonus = 0.1
)

// EditSimilarity returns 1 - d/max(len) where d is the classic unit-cost
// Levenshtein distance over runes. Two empty strings are identical (1.0).
func EditSimilarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 && lb == 0 {
		return 1.0
	}
	max := la
	if lb > max {
		max = lb
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(d)/float64(max)
}

// TokenSimilarity compares two names token-wise. A token from a matches b if
// an equal token exists or one within edit distance 1 (absorbs single-letter
// transliteration differences like smith/smyth). Returns matched tokens over
// the larger token count, or 0 when either side has no tokens.
func TokenSimilarity(a, b string) float64 {
	tokensA := tokenize(a)
	tokensB := tokenize(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	matched := 0
	for _, ta := range tokensA {
		for _, tb := range tokensB {
			if ta == tb || levenshtein.ComputeDistance(ta, tb) <= 1 {
				matched++
				break
			}
		}
	}

	max := len(tokensA)
	if len(tokensB) > max {
		max = len(tokensB)
	}
	return float64(matched) / float64(max)
}

// CombinedSimilarity is the fuzzy-stage score: a weighted blend of edit and
// token similarity over normalized forms, plus a bonus when one normalized
// name contains the other. Clamped to 1.0.
func CombinedSimilarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)

	score := editWeight*EditSimilarity(na, nb) + tokenWeight*TokenSimilarity(na, nb)

	if na != "" && nb != "" && (strings.Contains(na, nb) || strings.Contains(nb, na)) {
		score += substringBonus
	}

	if score > 1.0 {
		return 1.0
	}
	return score
}
