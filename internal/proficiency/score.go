package proficiency

const (
	// AdvancedThreshold is the average above which a learner is Advanced.
	AdvancedThreshold = 90.0

	// IntermediateThreshold is the average above which a learner is
	// Intermediate.
	IntermediateThreshold = 70.0

	// FluencyVolumeDivisor scales session count in the fluency score.
	FluencyVolumeDivisor = 10.0
)

// AverageScore returns the arithmetic mean of scores, or 0 when there are none.
func AverageScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// ClassifyTier maps an average score to a tier. Band lower bounds are
// exclusive: exactly 90 is Intermediate and exactly 70 is Beginner.
func ClassifyTier(average float64) Tier {
	switch {
	case average > AdvancedThreshold:
		return Advanced
	case average > IntermediateThreshold:
		return Intermediate
	default:
		return Beginner
	}
}

// FluencyScore rewards accuracy and volume: average * (count / 10).
// It is not a percentage and has no upper bound.
func FluencyScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	return AverageScore(scores) * (float64(len(scores)) / FluencyVolumeDivisor)
}
