package screening

// Verdict reduces a match set to a screening status. A single high-confidence
// match outweighs any number of weaker ones, so the scan short-circuits;
// matches need not be sorted.
func Verdict(matches []Match) Status {
	if len(matches) == 0 {
		return StatusClear
	}

	sawMedium := false
	for _, m := range matches {
		switch m.Confidence {
		case ConfidenceHigh:
			return StatusSanctioned
		case ConfidenceMedium:
			sawMedium = true
		}
	}
	if sawMedium {
		return StatusReviewRequired
	}
	return StatusPotentialMatch
}
