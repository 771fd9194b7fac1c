// Package scoring computes per-dimension compatibility scores between a
// candidate resume and a job posting. Each scorer returns an integer in
// [0, 100]; the aggregation into an overall score lives in internal/match.
package scoring

// Policy holds the tunable constants used by the dimension scorers.
// Callers that want non-default behavior construct their own Policy;
// the zero value is not usable.
type Policy struct {
	// Per-dimension weights for the overall score. Expected to sum to 1.
	SkillsWeight     float64
	ExperienceWeight float64
	EducationWeight  float64
	LocationWeight   float64

	// LocationUnknownScore is used when either side's location is unknown.
	LocationUnknownScore int

	// LocationMismatchScore is used when both locations are known and differ.
	LocationMismatchScore int

	// PartialSkillCredit is the credit for a substring skill match in the
	// lexical comparison path.
	PartialSkillCredit float64
}

// DefaultPolicy returns the standard weighting: skills dominate, then
// experience, education, and location.
func DefaultPolicy() Policy {
	return Policy{
		SkillsWeight:          0.40,
		ExperienceWeight:      0.30,
		EducationWeight:       0.20,
		LocationWeight:        0.10,
		LocationUnknownScore:  50,
		LocationMismatchScore: 30,
		PartialSkillCredit:    0.5,
	}
}

// Clamp bounds a score to [0, 100].
func Clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
