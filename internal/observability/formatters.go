// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of the parsed resume profile.
func (p *Printer) PrintProfile(profile *types.StructuredProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.PersonalInfo.Name))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", profile.PersonalInfo.Email))
	if profile.PersonalInfo.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", profile.PersonalInfo.Location))
	}
	sb.WriteString("\n")

	if len(profile.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(profile.Skills)))
		count := min(len(profile.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(profile.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience entries: %d\n", len(profile.Experience)))
	}
	if len(profile.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education entries:  %d\n", len(profile.Education)))
	}

	p.printBox("PARSED RESUME PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatch outputs a match result with its per-dimension breakdown.
func (p *Printer) PrintMatch(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	b := result.Breakdown

	sb.WriteString(fmt.Sprintf("Overall:    %d/100\n\n", result.OverallScore))
	sb.WriteString(fmt.Sprintf("Skills:     %3d    Experience: %3d\n", b.SkillsScore, b.ExperienceScore))
	sb.WriteString(fmt.Sprintf("Education:  %3d    Location:   %3d\n", b.EducationScore, b.LocationScore))

	if len(b.MatchedSkills) > 0 {
		skills := strings.Join(b.MatchedSkills, ", ")
		if len(skills) > 40 {
			skills = skills[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("\nMatched: %s\n", skills))
	}
	if len(b.MissingSkills) > 0 {
		skills := strings.Join(b.MissingSkills, ", ")
		if len(skills) > 40 {
			skills = skills[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("Missing: %s\n", skills))
	}
	if b.RequiredYears > 0 {
		sb.WriteString(fmt.Sprintf("Years:   %d of %d required\n", b.CandidateYears, b.RequiredYears))
	}

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintInsights outputs the qualitative insights attached to a match.
func (p *Printer) PrintInsights(insights *types.Insights) {
	if insights == nil {
		return
	}

	var sb strings.Builder

	writeList := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(label + ":\n")
		count := min(len(items), 3)
		for i := 0; i < count; i++ {
			item := items[i]
			if len(item) > 50 {
				item = item[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", item))
		}
		if len(items) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-3))
		}
		sb.WriteString("\n")
	}

	writeList("Strengths", insights.Strengths)
	writeList("Weaknesses", insights.Weaknesses)
	writeList("Recommendations", insights.Recommendations)

	if len(insights.SkillGaps) > 0 {
		sb.WriteString("Skill Gaps:\n")
		for _, gap := range insights.SkillGaps {
			sb.WriteString(fmt.Sprintf("  ⚠ %s (importance %d)\n", gap.Skill, gap.Importance))
		}
	}

	p.printBox("MATCH INSIGHTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs a resume analysis.
func (p *Printer) PrintAnalysis(analysis *types.Analysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d/100\n\n", analysis.OverallScore))

	if len(analysis.Strengths) > 0 {
		sb.WriteString("Strengths:\n")
		count := min(len(analysis.Strengths), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", analysis.Strengths[i]))
		}
		sb.WriteString("\n")
	}
	if len(analysis.Suggestions) > 0 {
		sb.WriteString("Suggestions:\n")
		count := min(len(analysis.Suggestions), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", analysis.Suggestions[i]))
		}
	}

	p.printBox("RESUME ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}
