package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lseungyeop/portfolio-admin/errs"
	"github.com/lseungyeop/portfolio-admin/models"
	"github.com/lseungyeop/portfolio-admin/theme"
)

func validConfig() models.SiteConfig {
	return models.SiteConfig{
		MainTitle:      "Main",
		SubTitle:       "Sub",
		PrimaryColor:   "#374151",
		SecondaryColor: "#0D9488",
		NavColor:       "transparent",
	}
}

func TestFetchFallsBackToDefaults(t *testing.T) {
	api := newFakeAPI()
	api.failGetConfig = true
	configs := NewConfigStore(api)

	cfg := configs.Fetch(context.Background())

	// The caller must be able to keep rendering.
	assert.Equal(t, theme.DefaultPrimary, cfg.PrimaryColor)
	assert.Equal(t, theme.DefaultSecondary, cfg.SecondaryColor)
	require.NotNil(t, configs.Snapshot())
}

func TestSaveRejectsInvalidColorBeforeRequest(t *testing.T) {
	api := newFakeAPI()
	configs := NewConfigStore(api)

	cfg := validConfig()
	cfg.PrimaryColor = "notacolor"

	err := configs.Save(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Equal(t, 0, api.calls["PutConfig"], "no PUT may be issued for an invalid config")
}

func TestSaveRejectsTransparentPrimary(t *testing.T) {
	api := newFakeAPI()
	configs := NewConfigStore(api)

	cfg := validConfig()
	cfg.PrimaryColor = "transparent"

	err := configs.Save(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, 0, api.calls["PutConfig"])
}

func TestSaveRejectsBlankTitles(t *testing.T) {
	api := newFakeAPI()
	configs := NewConfigStore(api)

	cfg := validConfig()
	cfg.MainTitle = "  "

	err := configs.Save(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, 0, api.calls["PutConfig"])
}

func TestSaveReplacesConfigAndSnapshot(t *testing.T) {
	api := newFakeAPI()
	configs := NewConfigStore(api)

	cfg := validConfig()
	require.NoError(t, configs.Save(context.Background(), cfg))
	assert.Equal(t, 1, api.calls["PutConfig"])

	snapshot := configs.Snapshot()
	require.NotNil(t, snapshot)
	assert.Equal(t, "Main", snapshot.MainTitle)
}
