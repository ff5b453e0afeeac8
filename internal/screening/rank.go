package screening

import "sort"

// Confidence bucket boundaries. A 0.95+ score is treated as a firm
// identification; 0.85+ warrants analyst review.
const (
	highConfidenceFloor   = 0.95
	mediumConfidenceFloor = 0.85
)

// Classify maps a raw similarity score to its confidence bucket.
func Classify(score float64) Confidence {
	switch {
	case score >= highConfidenceFloor:
		return ConfidenceHigh
	case score >= mediumConfidenceFloor:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

var confidenceRank = map[Confidence]int{
	ConfidenceHigh:   0,
	ConfidenceMedium: 1,
	ConfidenceLow:    2,
}

// rankMatches orders matches by confidence (high first), then score
// descending. The sort is stable so equally-scored matches keep pipeline
// production order: exact/alias before fuzzy before phonetic.
func rankMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		ri, rj := confidenceRank[matches[i].Confidence], confidenceRank[matches[j].Confidence]
		if ri != rj {
			return ri < rj
		}
		return matches[i].Score > matches[j].Score
	})
}
