package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lseungyeop/portfolio-admin/models"
)

type addSkillRequest struct {
	Name     string               `json:"name"`
	Category models.SkillCategory `json:"category"`
}

// ListSkills fetches the shared tag vocabulary. Public route.
func (c *Client) ListSkills(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	if err := c.do(ctx, http.MethodGet, "/skills", nil, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

// AddSkill registers a new skill tag. Admin route.
func (c *Client) AddSkill(ctx context.Context, name string, category models.SkillCategory) (models.Skill, error) {
	var skill models.Skill
	err := c.do(ctx, http.MethodPost, "/admin/skills", addSkillRequest{Name: name, Category: category}, &skill)
	return skill, err
}

// DeleteSkill removes a skill tag. The server rejects the deletion with a
// conflict when the skill is still referenced by a project; the registry
// layer turns that into a referential error and rolls back.
func (c *Client) DeleteSkill(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/skills/%d", id), nil, nil)
}
