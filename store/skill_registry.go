package store

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lseungyeop/portfolio-admin/errs"
	"github.com/lseungyeop/portfolio-admin/models"
)

type skillAPI interface {
	ListSkills(ctx context.Context) ([]models.Skill, error)
	AddSkill(ctx context.Context, name string, category models.SkillCategory) (models.Skill, error)
	DeleteSkill(ctx context.Context, id int64) error
}

// SkillRegistry manages the shared tag vocabulary. It keeps the last
// fetched snapshot so edit-mode hydration and optimistic removal have a
// local view to work against.
type SkillRegistry struct {
	api       skillAPI
	mu        sync.Mutex
	snapshot  []models.Skill
	onRemoved []func(id int64)
	logger    zerolog.Logger
}

func NewSkillRegistry(api skillAPI) *SkillRegistry {
	logger := log.With().Str("component", "skillRegistry").Logger()
	return &SkillRegistry{api: api, logger: logger}
}

// List fetches the vocabulary from the server and refreshes the local
// snapshot.
func (r *SkillRegistry) List(ctx context.Context) ([]models.Skill, error) {
	skills, err := r.api.ListSkills(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.snapshot = skills
	r.mu.Unlock()
	return skills, nil
}

// Snapshot returns the last fetched skill list without a server round
// trip.
func (r *SkillRegistry) Snapshot() []models.Skill {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Skill, len(r.snapshot))
	copy(out, r.snapshot)
	return out
}

// Add registers a new skill. Empty and whitespace-only names are rejected
// locally before any request, as are categories outside the closed set.
func (r *SkillRegistry) Add(ctx context.Context, name string, category models.SkillCategory) (models.Skill, error) {
	if models.Blank(name) {
		return models.Skill{}, errs.NewMissingRequiredFieldError("name")
	}
	if _, err := models.ParseSkillCategory(string(category)); err != nil {
		return models.Skill{}, errs.NewInvalidFieldError("category", err.Error())
	}

	skill, err := r.api.AddSkill(ctx, name, category)
	if err != nil {
		return models.Skill{}, err
	}

	r.mu.Lock()
	r.snapshot = append(r.snapshot, skill)
	r.mu.Unlock()
	return skill, nil
}

// OnRemoved registers a callback fired after a skill is removed, so an
// open project form can drop the id from its pending selection.
func (r *SkillRegistry) OnRemoved(fn func(id int64)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onRemoved = append(r.onRemoved, fn)
}

// Remove deletes a skill. The local snapshot drops the entry optimistically
// before the request; when the server rejects the deletion the entry is
// restored at its original position and a referential error is surfaced.
func (r *SkillRegistry) Remove(ctx context.Context, id int64) error {
	r.mu.Lock()
	index := -1
	var removed models.Skill
	for i, s := range r.snapshot {
		if s.ID == id {
			index = i
			removed = s
			break
		}
	}
	if index >= 0 {
		r.snapshot = append(r.snapshot[:index], r.snapshot[index+1:]...)
	}
	r.mu.Unlock()

	if err := r.api.DeleteSkill(ctx, id); err != nil {
		r.restore(index, removed)
		var clientErr *errs.ClientErr
		if errors.As(err, &clientErr) && clientErr.StatusCode == 409 {
			r.logger.Warn().Int64("skillId", id).Str("name", removed.Name).Msg("skill still referenced, removal rolled back")
			return errs.NewReferentialError(removed.Name, err)
		}
		return err
	}

	r.mu.Lock()
	callbacks := make([]func(int64), len(r.onRemoved))
	copy(callbacks, r.onRemoved)
	r.mu.Unlock()
	for _, fn := range callbacks {
		fn(id)
	}
	return nil
}

func (r *SkillRegistry) restore(index int, skill models.Skill) {
	if index < 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if index > len(r.snapshot) {
		index = len(r.snapshot)
	}
	r.snapshot = append(r.snapshot[:index], append([]models.Skill{skill}, r.snapshot[index:]...)...)
}
