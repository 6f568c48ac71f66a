package extract

const (
	// ReviewThreshold is the confidence score below which an extraction is
	// flagged for manual review.
	ReviewThreshold = 70

	minScoredDescription = 400
	minScoredSkills      = 3
)

// ScoreConfidence is a coarse completeness heuristic over the extracted
// fields, 0 to 100. It rewards presence, not correctness: a role and a
// company weigh most, a substantial description next, location and a
// handful of skills round it out.
func ScoreConfidence(f Fields) int {
	score := 0
	if f.Role != "" {
		score += 25
	}
	if f.CompanyName != "" {
		score += 20
	}
	if f.Location != "" {
		score += 15
	}
	if len(f.Description) > minScoredDescription {
		score += 25
	}
	if len(f.Skills) >= minScoredSkills {
		score += 15
	}
	if score > 100 {
		score = 100
	}
	return score
}
