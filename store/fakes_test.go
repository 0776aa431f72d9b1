package store

import (
	"context"
	"fmt"

	"github.com/lseungyeop/portfolio-admin/errs"
	"github.com/lseungyeop/portfolio-admin/models"
)

// fakeAPI stands in for the backend client across store tests.
type fakeAPI struct {
	skills   []models.Skill
	projects map[int64]models.Project
	config   models.SiteConfig
	nextID   int64

	calls map[string]int

	failGetConfig   bool
	referencedSkill int64
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		projects: make(map[int64]models.Project),
		calls:    make(map[string]int),
		nextID:   1,
	}
}

func (f *fakeAPI) count(name string) { f.calls[name]++ }

func (f *fakeAPI) ListSkills(ctx context.Context) ([]models.Skill, error) {
	f.count("ListSkills")
	return append([]models.Skill(nil), f.skills...), nil
}

func (f *fakeAPI) AddSkill(ctx context.Context, name string, category models.SkillCategory) (models.Skill, error) {
	f.count("AddSkill")
	skill := models.Skill{ID: f.nextID, Name: name, Category: category}
	f.nextID++
	f.skills = append(f.skills, skill)
	return skill, nil
}

func (f *fakeAPI) DeleteSkill(ctx context.Context, id int64) error {
	f.count("DeleteSkill")
	if id == f.referencedSkill {
		return errs.NewServerError("DELETE /admin/skills", 409, "skill is referenced by existing projects")
	}
	return nil
}

func (f *fakeAPI) ListProjects(ctx context.Context) ([]models.Project, error) {
	f.count("ListProjects")
	out := make([]models.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeAPI) GetProject(ctx context.Context, id int64) (models.Project, error) {
	f.count("GetProject")
	p, ok := f.projects[id]
	if !ok {
		return models.Project{}, errs.NewServerError("GET /projects", 404, "project not found")
	}
	return p, nil
}

func (f *fakeAPI) CreateProject(ctx context.Context, draft models.ProjectDraft) (models.Project, error) {
	f.count("CreateProject")
	p := models.Project{ID: f.nextID, Title: draft.Title, Description: draft.Description}
	f.nextID++
	f.projects[p.ID] = p
	return p, nil
}

func (f *fakeAPI) UpdateProject(ctx context.Context, id int64, draft models.ProjectDraft) (models.Project, error) {
	f.count("UpdateProject")
	p, ok := f.projects[id]
	if !ok {
		return models.Project{}, errs.NewServerError("PUT /admin/projects", 404, "project not found")
	}
	p.Title = draft.Title
	p.Description = draft.Description
	f.projects[id] = p
	return p, nil
}

func (f *fakeAPI) DeleteProject(ctx context.Context, id int64) error {
	f.count("DeleteProject")
	delete(f.projects, id)
	return nil
}

func (f *fakeAPI) GetConfig(ctx context.Context) (models.SiteConfig, error) {
	f.count("GetConfig")
	if f.failGetConfig {
		return models.SiteConfig{}, errs.NewTransportError("GET /config", fmt.Errorf("connection refused"))
	}
	return f.config, nil
}

func (f *fakeAPI) PutConfig(ctx context.Context, cfg models.SiteConfig) error {
	f.count("PutConfig")
	f.config = cfg
	return nil
}
