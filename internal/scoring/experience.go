package scoring

import (
	"math"
	"time"

	"github.com/jonathan/job-matcher/internal/types"
)

const dateLayout = "2006-01"

// TotalExperienceYears sums the duration of every experience entry that has
// both a parseable start and end date, then rounds the total months to whole
// years. Entries with a missing or unparseable date contribute nothing.
func TotalExperienceYears(entries []types.Experience) int {
	months := 0
	for _, e := range entries {
		start, err := time.Parse(dateLayout, e.StartDate)
		if err != nil {
			continue
		}
		end, err := time.Parse(dateLayout, e.EndDate)
		if err != nil {
			continue
		}
		delta := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
		if delta > 0 {
			months += delta
		}
	}
	return int(math.Round(float64(months) / 12.0))
}

// ScoreExperience scores candidate experience against the job's minimum.
// A job with no minimum accepts anyone at full score. Below the minimum the
// score degrades linearly, so a candidate with half the required years
// scores 50.
func ScoreExperience(candidateYears, minYears int) int {
	if minYears <= 0 {
		return 100
	}
	if candidateYears >= minYears {
		return 100
	}
	return Clamp(int(math.Round(100 * float64(candidateYears) / float64(minYears))))
}
