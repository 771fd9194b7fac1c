package scoring

import (
	"strings"

	"github.com/jonathan/job-matcher/internal/types"
)

// ScoreEducation is binary: jobs without an education requirement accept
// everyone at 100, otherwise the candidate needs at least one degree whose
// name contains the required degree keyword.
func ScoreEducation(education []types.Education, req types.EducationRequirement) int {
	if !req.Required {
		return 100
	}
	want := strings.ToLower(strings.TrimSpace(req.Degree))
	for _, e := range education {
		have := strings.ToLower(e.Degree)
		if want == "" || strings.Contains(have, want) {
			return 100
		}
	}
	return 0
}
