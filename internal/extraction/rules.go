// Package extraction turns raw résumé text into a typed
// StructuredProfile. The primary path is a schema-constrained model
// extraction; a rule-based parser covers every failure mode, trading
// precision for guaranteed termination and well-formedness.
package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/job-matcher/internal/types"
)

// Entry caps for the rule-based parser
const (
	maxSkills               = 100
	maxExperienceEntries    = 20
	maxProjectEntries       = 20
	maxEducationEntries     = 10
	maxCertificationEntries = 20
	maxLanguageEntries      = 20
)

// sectionAliases maps recognized résumé section headers to buckets
var sectionAliases = []struct {
	alias  string
	bucket string
}{
	// Longer aliases first so "technical skills" wins over "skills"
	{"technical skills", "skills"},
	{"work experience", "experience"},
	{"certifications", "certifications"},
	{"experience", "experience"},
	{"education", "education"},
	{"languages", "languages"},
	{"projects", "projects"},
	{"skills", "skills"},
}

// Contact extraction patterns, applied to the whole document regardless
// of section.
var (
	emailPattern    = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern    = regexp.MustCompile(`\+?\d[\d\s\-().]{7,}\d`)
	linkedinPattern = regexp.MustCompile(`linkedin\.com/in/[A-Za-z0-9_\-]+`)
	githubPattern   = regexp.MustCompile(`github\.com/[A-Za-z0-9_\-]+`)
)

// skillSeparators are the characters a skills line is split on
func skillSeparator(r rune) bool {
	switch r {
	case ',', '|', '•', '·', '▪', '‣':
		return true
	}
	return false
}

// ExtractWithRules parses résumé text with section-header heuristics.
// Lines are assigned to the most recently seen section header; anything
// before the first header lands in an "other" bucket. The first
// non-empty line of the document is treated as the candidate name.
func ExtractWithRules(resumeText string) *types.StructuredProfile {
	profile := &types.StructuredProfile{
		Experience:     []types.Experience{},
		Education:      []types.Education{},
		Skills:         []string{},
		Certifications: []string{},
		Projects:       []types.Project{},
		Languages:      []string{},
	}

	bucket := "other"
	sawName := false
	seenSkills := make(map[string]bool)

	for _, line := range strings.Split(resumeText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !sawName {
			profile.PersonalInfo.Name = trimmed
			sawName = true
		}

		if section, rest, ok := matchSectionHeader(trimmed); ok {
			bucket = section
			if rest == "" {
				continue
			}
			trimmed = rest
		}

		switch bucket {
		case "skills":
			for _, piece := range strings.FieldsFunc(trimmed, skillSeparator) {
				skill := stripBullet(piece)
				if skill == "" {
					continue
				}
				key := strings.ToLower(skill)
				if seenSkills[key] || len(profile.Skills) >= maxSkills {
					continue
				}
				seenSkills[key] = true
				profile.Skills = append(profile.Skills, skill)
			}
		case "experience":
			if entry := stripBullet(trimmed); entry != "" && len(profile.Experience) < maxExperienceEntries {
				profile.Experience = append(profile.Experience, types.Experience{Title: entry})
			}
		case "projects":
			if entry := stripBullet(trimmed); entry != "" && len(profile.Projects) < maxProjectEntries {
				profile.Projects = append(profile.Projects, types.Project{Name: entry})
			}
		case "education":
			if entry := stripBullet(trimmed); entry != "" && len(profile.Education) < maxEducationEntries {
				profile.Education = append(profile.Education, types.Education{Degree: entry})
			}
		case "certifications":
			if entry := stripBullet(trimmed); entry != "" && len(profile.Certifications) < maxCertificationEntries {
				profile.Certifications = append(profile.Certifications, entry)
			}
		case "languages":
			if entry := stripBullet(trimmed); entry != "" && len(profile.Languages) < maxLanguageEntries {
				profile.Languages = append(profile.Languages, entry)
			}
		}
	}

	profile.PersonalInfo.Email = emailPattern.FindString(resumeText)
	profile.PersonalInfo.Phone = strings.TrimSpace(phonePattern.FindString(resumeText))
	profile.PersonalInfo.LinkedIn = linkedinPattern.FindString(resumeText)
	profile.PersonalInfo.GitHub = githubPattern.FindString(resumeText)

	return profile
}

// matchSectionHeader reports whether a line starts a recognized section.
// Headers match case-insensitively, with an optional trailing colon or
// dash; any content after the delimiter belongs to the new section
// (e.g. "Skills: Python, React").
func matchSectionHeader(line string) (section, rest string, ok bool) {
	lower := strings.ToLower(line)
	for _, entry := range sectionAliases {
		if !strings.HasPrefix(lower, entry.alias) {
			continue
		}
		tail := line[len(entry.alias):]
		trimmedTail := strings.TrimSpace(tail)
		if trimmedTail == "" {
			return entry.bucket, "", true
		}
		if trimmedTail[0] == ':' || trimmedTail[0] == '-' {
			return entry.bucket, strings.TrimSpace(trimmedTail[1:]), true
		}
	}
	return "", "", false
}

// stripBullet removes leading bullet markers and surrounding whitespace
func stripBullet(s string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s), "-•*·▪‣ \t"))
}
