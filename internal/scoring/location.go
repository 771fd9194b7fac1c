package scoring

import (
	"strings"

	"github.com/jonathan/job-matcher/internal/types"
)

// ScoreLocation scores geographic compatibility. Remote jobs are a perfect
// fit regardless of where the candidate lives. When either side's location
// is unknown the result is neutral rather than punitive.
func ScoreLocation(candidateLocation string, job types.Location, p Policy) int {
	if job.Remote {
		return 100
	}
	candidate := strings.ToLower(strings.TrimSpace(candidateLocation))
	city := strings.ToLower(strings.TrimSpace(job.City))
	state := strings.ToLower(strings.TrimSpace(job.State))
	if candidate == "" || (city == "" && state == "") {
		return p.LocationUnknownScore
	}
	if city != "" && containsEither(candidate, city) {
		return 100
	}
	if state != "" && containsEither(candidate, state) {
		return 100
	}
	return p.LocationMismatchScore
}

// containsEither reports whether one location string contains the other.
func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}
