// Package skills provides skill-name normalization and lexical
// comparison of candidate skill sets against job requirements.
package skills

import "strings"

// canonicalNames maps common skill name variants to canonical names
var canonicalNames = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
}

// NormalizeName normalizes a skill name to its canonical form
func NormalizeName(skillName string) string {
	normalized := strings.TrimSpace(skillName)
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := canonicalNames[lower]; ok {
		return canonical
	}

	// Single all-lowercase words get a capitalized first letter
	if normalized == lower && !strings.Contains(normalized, " ") {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}

	return normalized
}

// NormalizeAll normalizes and deduplicates a list of skill names,
// preserving first-encounter order
func NormalizeAll(names []string) []string {
	normalized := make([]string, 0, len(names))
	seen := make(map[string]bool)

	for _, name := range names {
		n := NormalizeName(name)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		normalized = append(normalized, n)
	}

	return normalized
}
