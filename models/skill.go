package models

import "fmt"

// SkillCategory is the closed set of groupings the site renders skills
// under.
type SkillCategory string

const (
	CategoryFrontend SkillCategory = "Frontend"
	CategoryBackend  SkillCategory = "Backend"
	CategoryDatabase SkillCategory = "Database"
	CategoryDevOps   SkillCategory = "DevOps"
	CategoryOther    SkillCategory = "Other"
)

// ParseSkillCategory validates a category value coming from user input.
func ParseSkillCategory(s string) (SkillCategory, error) {
	switch SkillCategory(s) {
	case CategoryFrontend, CategoryBackend, CategoryDatabase, CategoryDevOps, CategoryOther:
		return SkillCategory(s), nil
	}
	return "", fmt.Errorf("unknown skill category %q", s)
}

// Skill is one entry in the shared tag vocabulary.
type Skill struct {
	ID       int64         `json:"skillId"`
	Name     string        `json:"name"`
	Category SkillCategory `json:"category"`
	IconURL  string        `json:"iconUrl,omitempty"`
}
