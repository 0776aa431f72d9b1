package models

import "strings"

// Project represents a showcased project as returned by the backend.
// Skills arrive resolved by name on the read side; the write side sends
// skill identifiers instead (see ProjectDraft).
type Project struct {
	ID                   int64   `json:"projectId"`
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	Period               string  `json:"period,omitempty"`
	TeamSize             string  `json:"teamSize,omitempty"`
	Content              string  `json:"content,omitempty"`
	GithubURL            string  `json:"githubUrl,omitempty"`
	DemoURL              string  `json:"demoUrl,omitempty"`
	ThumbnailURL         string  `json:"thumbnailUrl,omitempty"`
	ERDImageURL          string  `json:"erdImageUrl,omitempty"`
	ArchitectureImageURL string  `json:"architectureImageUrl,omitempty"`
	Skills               []Skill `json:"skills,omitempty"`
}

// ProjectDraft is the write-side field set for creating or updating a
// project. Skill references are ordered identifiers.
type ProjectDraft struct {
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	Period               string  `json:"period"`
	TeamSize             string  `json:"teamSize"`
	Content              string  `json:"content"`
	GithubURL            string  `json:"githubUrl"`
	DemoURL              string  `json:"demoUrl"`
	ThumbnailURL         string  `json:"thumbnailUrl"`
	ERDImageURL          string  `json:"erdImageUrl"`
	ArchitectureImageURL string  `json:"architectureImageUrl"`
	SkillIDs             []int64 `json:"skillIds"`
}

// SkillNames returns the names of the project's resolved skills in order.
func (p Project) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, s.Name)
	}
	return names
}

// Blank reports whether s is empty after trimming whitespace.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
