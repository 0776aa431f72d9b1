package store

import (
	"context"
	"net/url"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lseungyeop/portfolio-admin/errs"
	"github.com/lseungyeop/portfolio-admin/models"
)

type projectAPI interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id int64) (models.Project, error)
	CreateProject(ctx context.Context, draft models.ProjectDraft) (models.Project, error)
	UpdateProject(ctx context.Context, id int64, draft models.ProjectDraft) (models.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

const projectCacheSize = 32

// ProjectRepo manages project records against the backend. Reads of single
// projects go through a small cache that any successful mutation
// invalidates.
type ProjectRepo struct {
	api    projectAPI
	skills *SkillRegistry
	cache  *lru.Cache[int64, models.Project]
	logger zerolog.Logger
}

func NewProjectRepo(api projectAPI, skills *SkillRegistry) *ProjectRepo {
	logger := log.With().Str("component", "projectRepo").Logger()
	cache, _ := lru.New[int64, models.Project](projectCacheSize)
	return &ProjectRepo{api: api, skills: skills, cache: cache, logger: logger}
}

// FindAll returns all projects.
func (r *ProjectRepo) FindAll(ctx context.Context) ([]models.Project, error) {
	return r.api.ListProjects(ctx)
}

// FindByID returns a project by its ID, served from cache when possible.
func (r *ProjectRepo) FindByID(ctx context.Context, id int64) (models.Project, error) {
	if project, ok := r.cache.Get(id); ok {
		return project, nil
	}
	project, err := r.api.GetProject(ctx, id)
	if err != nil {
		return models.Project{}, err
	}
	r.cache.Add(id, project)
	return project, nil
}

// Validate applies the current client-side rules: title and description
// must be non-empty after trimming, everything else is optional. The
// server remains authoritative.
func Validate(draft models.ProjectDraft) error {
	if models.Blank(draft.Title) {
		return errs.NewMissingRequiredFieldError("title")
	}
	if models.Blank(draft.Description) {
		return errs.NewMissingRequiredFieldError("description")
	}
	return nil
}

// ValidateStrict applies the earlier, stricter rules: URL-shaped fields
// must parse as absolute URLs and at least one skill must be selected.
// Kept for callers that want to mirror the old server contract; submission
// uses Validate.
func ValidateStrict(draft models.ProjectDraft) error {
	if err := Validate(draft); err != nil {
		return err
	}
	urlFields := map[string]string{
		"githubUrl":            draft.GithubURL,
		"demoUrl":              draft.DemoURL,
		"thumbnailUrl":         draft.ThumbnailURL,
		"erdImageUrl":          draft.ERDImageURL,
		"architectureImageUrl": draft.ArchitectureImageURL,
	}
	for field, value := range urlFields {
		if value == "" {
			continue
		}
		parsed, err := url.Parse(value)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return errs.NewInvalidFieldError(field, "not a valid URL")
		}
	}
	if len(draft.SkillIDs) == 0 {
		return errs.NewMissingRequiredFieldError("skillIds")
	}
	return nil
}

// Add creates a new project from the draft.
func (r *ProjectRepo) Add(ctx context.Context, draft models.ProjectDraft) (models.Project, error) {
	if err := Validate(draft); err != nil {
		return models.Project{}, err
	}
	created, err := r.api.CreateProject(ctx, draft)
	if err != nil {
		return models.Project{}, err
	}
	r.cache.Purge()
	r.logger.Info().Int64("projectId", created.ID).Str("title", created.Title).Msg("project created")
	return created, nil
}

// Update replaces an existing project with the draft.
func (r *ProjectRepo) Update(ctx context.Context, id int64, draft models.ProjectDraft) (models.Project, error) {
	if err := Validate(draft); err != nil {
		return models.Project{}, err
	}
	updated, err := r.api.UpdateProject(ctx, id, draft)
	if err != nil {
		return models.Project{}, err
	}
	r.cache.Remove(id)
	return updated, nil
}

// Delete removes a project by id.
func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	if err := r.api.DeleteProject(ctx, id); err != nil {
		return err
	}
	r.cache.Remove(id)
	return nil
}

// EditDraft loads a project into an editable draft. The server returns
// skills by name, so the selection is reconciled against the current
// registry snapshot; names the registry no longer knows are dropped.
func (r *ProjectRepo) EditDraft(ctx context.Context, id int64) (models.ProjectDraft, error) {
	project, err := r.FindByID(ctx, id)
	if err != nil {
		return models.ProjectDraft{}, err
	}

	skills := r.skills.Snapshot()
	if len(skills) == 0 {
		if skills, err = r.skills.List(ctx); err != nil {
			return models.ProjectDraft{}, err
		}
	}

	return models.ProjectDraft{
		Title:                project.Title,
		Description:          project.Description,
		Period:               project.Period,
		TeamSize:             project.TeamSize,
		Content:              project.Content,
		GithubURL:            project.GithubURL,
		DemoURL:              project.DemoURL,
		ThumbnailURL:         project.ThumbnailURL,
		ERDImageURL:          project.ERDImageURL,
		ArchitectureImageURL: project.ArchitectureImageURL,
		SkillIDs:             HydrateSkillIDs(project.SkillNames(), skills),
	}, nil
}
