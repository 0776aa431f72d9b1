package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lseungyeop/portfolio-admin/errs"
	"github.com/lseungyeop/portfolio-admin/models"
)

func newTestRepo(api *fakeAPI) *ProjectRepo {
	return NewProjectRepo(api, NewSkillRegistry(api))
}

func TestValidateRelaxedRule(t *testing.T) {
	// Non-empty title and description pass regardless of skill selection
	// or URL well-formedness.
	draft := models.ProjectDraft{
		Title:       "X",
		Description: "Y",
		GithubURL:   "definitely not a url",
		SkillIDs:    []int64{},
	}
	assert.NoError(t, Validate(draft))
}

func TestValidateBlocksBlankRequiredFields(t *testing.T) {
	cases := []models.ProjectDraft{
		{Title: "", Description: "Y"},
		{Title: "   ", Description: "Y"},
		{Title: "X", Description: ""},
		{Title: "X", Description: "\t\n"},
	}
	for _, draft := range cases {
		err := Validate(draft)
		require.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	}
}

func TestValidateStrict(t *testing.T) {
	draft := models.ProjectDraft{Title: "X", Description: "Y", SkillIDs: []int64{1}}
	assert.NoError(t, ValidateStrict(draft))

	draft.GithubURL = "notaurl"
	assert.Error(t, ValidateStrict(draft))

	draft.GithubURL = "https://github.com/x"
	draft.SkillIDs = nil
	assert.Error(t, ValidateStrict(draft))
}

func TestAddBlocksInvalidDraftBeforeNetwork(t *testing.T) {
	api := newFakeAPI()
	repo := newTestRepo(api)

	_, err := repo.Add(context.Background(), models.ProjectDraft{Title: " ", Description: "Y"})
	require.Error(t, err)
	assert.Equal(t, 0, api.calls["CreateProject"], "validation failure must not reach the network")
}

func TestAddSucceedsWithEmptySkillSelection(t *testing.T) {
	api := newFakeAPI()
	repo := newTestRepo(api)

	created, err := repo.Add(context.Background(), models.ProjectDraft{
		Title: "X", Description: "Y", SkillIDs: []int64{},
	})
	require.NoError(t, err)
	assert.Equal(t, "X", created.Title)
	assert.Equal(t, 1, api.calls["CreateProject"])
}

func TestFindByIDUsesCacheUntilInvalidated(t *testing.T) {
	api := newFakeAPI()
	api.projects[7] = models.Project{ID: 7, Title: "cached", Description: "d"}
	repo := newTestRepo(api)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, 7)
	require.NoError(t, err)
	_, err = repo.FindByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, api.calls["GetProject"])

	_, err = repo.Update(ctx, 7, models.ProjectDraft{Title: "new", Description: "d"})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, 2, api.calls["GetProject"])
}

func TestDeleteInvalidatesCache(t *testing.T) {
	api := newFakeAPI()
	api.projects[3] = models.Project{ID: 3, Title: "t", Description: "d"}
	repo := newTestRepo(api)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, 3)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, 3))

	_, err = repo.FindByID(ctx, 3)
	assert.Error(t, err)
}

func TestEditDraftHydratesSkillSelection(t *testing.T) {
	api := newFakeAPI()
	api.skills = []models.Skill{{ID: 11, Name: "React", Category: models.CategoryFrontend}}
	api.projects[5] = models.Project{
		ID: 5, Title: "t", Description: "d",
		Skills: []models.Skill{
			{Name: "React"},
			{Name: "Unknown"},
		},
	}
	repo := newTestRepo(api)

	draft, err := repo.EditDraft(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{11}, draft.SkillIDs, "unmatched names must be dropped")
	assert.Equal(t, "t", draft.Title)
}
