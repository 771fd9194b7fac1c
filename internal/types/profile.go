// Package types provides type definitions for structured data used throughout the job-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// StructuredProfile represents a résumé parsed into typed sections
type StructuredProfile struct {
	PersonalInfo   PersonalInfo `json:"personal_info"`
	Summary        string       `json:"summary,omitempty"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Skills         []string     `json:"skills"`
	Certifications []string     `json:"certifications"`
	Projects       []Project    `json:"projects"`
	Languages      []string     `json:"languages"`
}

// PersonalInfo holds candidate contact details extracted from the résumé
type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// Experience represents a single work experience entry.
// StartDate and EndDate use the "YYYY-MM" format; EndDate is empty for
// current positions.
type Experience struct {
	Title       string   `json:"title,omitempty"`
	Company     string   `json:"company,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Description string   `json:"description,omitempty"`
	Skills      []string `json:"skills,omitempty"`
}

// Education represents a single education entry
type Education struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Field       string `json:"field,omitempty"`
	Year        string `json:"year,omitempty"`
}

// Project represents a personal or professional project entry
type Project struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Skills      []string `json:"skills,omitempty"`
}
