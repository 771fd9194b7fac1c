package skills

import (
	"math"
	"strings"
)

// Match credit constants for the lexical comparison rule
const (
	// ExactCredit is the credit for a case-insensitive exact name match
	ExactCredit = 1.0
	// DefaultPartialCredit is the credit for a substring-containment
	// match (either name contains the other). A policy constant, not a
	// derived value; overridable through scoring configuration.
	DefaultPartialCredit = 0.5
)

// Comparison lists how a candidate's skills line up against a job's
// required skills, using the substring-containment rule. It is computed
// independently of the numeric skills score so matches stay explainable
// even when the score came from embeddings.
type Comparison struct {
	Matched []string // required skills the candidate has
	Missing []string // required skills the candidate lacks
	Extra   []string // candidate skills the job did not ask for
}

// Compare matches candidate skills against required skills. A required
// skill counts as matched on an exact case-insensitive name match or
// when either name contains the other.
func Compare(candidate, required []string) Comparison {
	cmp := Comparison{
		Matched: []string{},
		Missing: []string{},
		Extra:   []string{},
	}

	matchedCandidate := make(map[int]bool)
	for _, req := range required {
		found := false
		for i, cand := range candidate {
			if namesMatch(req, cand) {
				matchedCandidate[i] = true
				found = true
			}
		}
		if found {
			cmp.Matched = append(cmp.Matched, req)
		} else {
			cmp.Missing = append(cmp.Missing, req)
		}
	}

	for i, cand := range candidate {
		if !matchedCandidate[i] {
			cmp.Extra = append(cmp.Extra, cand)
		}
	}

	return cmp
}

// LexicalScore scores candidate skills against required skills without
// any AI assistance: 1.0 credit per exact case-insensitive match,
// partialCredit per substring-containment match, 0 otherwise, scaled to
// 0-100 over the number of required skills. Returns 0 when either list
// is empty.
func LexicalScore(candidate, required []string, partialCredit float64) int {
	if len(required) == 0 || len(candidate) == 0 {
		return 0
	}

	total := 0.0
	for _, req := range required {
		best := 0.0
		for _, cand := range candidate {
			credit := matchCredit(req, cand, partialCredit)
			if credit > best {
				best = credit
			}
			if best == ExactCredit {
				break
			}
		}
		total += best
	}

	score := int(math.Round(100 * total / float64(len(required))))
	if score > 100 {
		score = 100
	}
	return score
}

// matchCredit returns the lexical credit for a single skill pair
func matchCredit(required, candidate string, partialCredit float64) float64 {
	r := strings.ToLower(strings.TrimSpace(required))
	c := strings.ToLower(strings.TrimSpace(candidate))
	if r == "" || c == "" {
		return 0
	}
	if r == c {
		return ExactCredit
	}
	if strings.Contains(r, c) || strings.Contains(c, r) {
		return partialCredit
	}
	return 0
}

// namesMatch reports whether two skill names match under the
// substring-containment rule
func namesMatch(a, b string) bool {
	return matchCredit(a, b, DefaultPartialCredit) > 0
}
