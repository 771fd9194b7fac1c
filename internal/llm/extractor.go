// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "ResumeProfile", "MatchInsights")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "[]object"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// ResumeProfileSchema returns the extraction schema for résumé text.
// The output shape mirrors types.StructuredProfile.
func ResumeProfileSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ResumeProfile",
		Description: `You are an expert résumé parser. Your task is to extract structured candidate data from raw résumé text.
IMPORTANT: Preserve names, dates and skill spellings exactly as written.
Goal: Extract contact details, summary, work experience, education, skills, certifications, projects and languages.
EXCLUDE: References, salary expectations, cover-letter prose.`,
		Fields: []SchemaField{
			{
				Name:        "personal_info",
				Type:        "{\"name\": string, \"email\": string, \"phone\": string, \"location\": string, \"linkedin\": string, \"github\": string}",
				Description: "Contact details found anywhere in the document",
				Required:    true,
			},
			{
				Name:        "summary",
				Type:        "\"string\"",
				Description: "Professional summary or objective, verbatim if present",
				Required:    false,
			},
			{
				Name:        "experience",
				Type:        "[{\"title\": string, \"company\": string, \"start_date\": \"YYYY-MM\", \"end_date\": \"YYYY-MM\", \"description\": string, \"skills\": [string]}]",
				Description: "Work experience entries, most recent first; end_date empty for current roles",
				Required:    true,
			},
			{
				Name:        "education",
				Type:        "[{\"degree\": string, \"institution\": string, \"field\": string, \"year\": string}]",
				Description: "Education entries with full degree names",
				Required:    true,
			},
			{
				Name:        "skills",
				Type:        "[\"string\"]",
				Description: "Individual skill names, one per entry, no grouping",
				Required:    true,
			},
			{
				Name:        "certifications",
				Type:        "[\"string\"]",
				Description: "Certification names",
				Required:    false,
			},
			{
				Name:        "projects",
				Type:        "[{\"name\": string, \"description\": string, \"skills\": [string]}]",
				Description: "Personal or professional projects",
				Required:    false,
			},
			{
				Name:        "languages",
				Type:        "[\"string\"]",
				Description: "Spoken languages",
				Required:    false,
			},
		},
	}
}

// JobPostingSchema returns the extraction schema for job posting text.
// The output shape mirrors types.JobPosting minus identifiers.
func JobPostingSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "JobPosting",
		Description: `You are an expert job posting parser. Your task is to extract structured requirements from job posting text.
IMPORTANT: Preserve skill spellings exactly as written. Importance reflects how critical the skill is to the role (5 = must have, 1 = nice to have).
EXCLUDE: Benefits boilerplate, equal-opportunity statements, application instructions.`,
		Fields: []SchemaField{
			{
				Name:        "title",
				Type:        "\"string\"",
				Description: "Role title",
				Required:    true,
			},
			{
				Name:        "company",
				Type:        "\"string\"",
				Description: "Hiring company name",
				Required:    false,
			},
			{
				Name:        "location",
				Type:        "{\"city\": string, \"state\": string, \"remote\": bool}",
				Description: "Work location; remote true only if explicitly remote",
				Required:    false,
			},
			{
				Name:        "requirements",
				Type:        "{\"skills\": [{\"name\": string, \"importance\": 1-5}], \"min_years\": int, \"max_years\": int, \"education\": {\"required\": bool, \"degree\": string}}",
				Description: "Structured requirements; min_years 0 when no experience requirement is stated",
				Required:    true,
			},
			{
				Name:        "compensation",
				Type:        "\"string\"",
				Description: "Stated salary range verbatim, omit if absent",
				Required:    false,
			},
		},
	}
}

// MatchInsightsSchema returns the extraction schema for qualitative
// match insights generated from a computed breakdown.
func MatchInsightsSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "MatchInsights",
		Description: `You are an expert career coach. Given a candidate profile, a job posting and a numeric match breakdown, produce qualitative insights.
Base every statement on the provided data; do not invent skills or experience.`,
		Fields: []SchemaField{
			{
				Name:        "strengths",
				Type:        "[\"string\"]",
				Description: "Concrete reasons this candidate fits the role",
				Required:    true,
			},
			{
				Name:        "weaknesses",
				Type:        "[\"string\"]",
				Description: "Gaps or risks relative to the requirements",
				Required:    true,
			},
			{
				Name:        "recommendations",
				Type:        "[\"string\"]",
				Description: "Actionable steps to improve the match",
				Required:    true,
			},
			{
				Name:        "interview_tips",
				Type:        "[\"string\"]",
				Description: "Preparation tips specific to this role",
				Required:    true,
			},
			{
				Name:        "skill_gaps",
				Type:        "[{\"skill\": string, \"importance\": 1-5, \"current_level\": string, \"required_level\": string, \"learning_path\": string}]",
				Description: "Required skills the candidate lacks, with remediation",
				Required:    true,
			},
		},
	}
}
