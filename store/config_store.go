package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lseungyeop/portfolio-admin/errs"
	"github.com/lseungyeop/portfolio-admin/models"
	"github.com/lseungyeop/portfolio-admin/theme"
)

type configAPI interface {
	GetConfig(ctx context.Context) (models.SiteConfig, error)
	PutConfig(ctx context.Context, cfg models.SiteConfig) error
}

// ConfigStore fetches and saves the site-wide settings singleton. The last
// fetched snapshot is shared read-only with theme derivation and the home
// view.
type ConfigStore struct {
	api      configAPI
	mu       sync.Mutex
	snapshot *models.SiteConfig
	logger   zerolog.Logger
}

func NewConfigStore(api configAPI) *ConfigStore {
	logger := log.With().Str("component", "configStore").Logger()
	return &ConfigStore{api: api, logger: logger}
}

// Fetch loads the site config. It never fails the caller outward: when the
// request fails the built-in defaults are returned so the rest of the site
// still renders.
func (s *ConfigStore) Fetch(ctx context.Context) models.SiteConfig {
	cfg, err := s.api.GetConfig(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("config fetch failed, falling back to defaults")
		cfg = theme.DefaultConfig()
	}
	s.mu.Lock()
	s.snapshot = &cfg
	s.mu.Unlock()
	return cfg
}

// Snapshot returns the last fetched config, or nil when none has been
// fetched yet.
func (s *ConfigStore) Snapshot() *models.SiteConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return nil
	}
	cfg := *s.snapshot
	return &cfg
}

// ValidateConfig applies the local save rules: titles must be non-blank,
// primary/secondary must be hex colors, and the nav color may additionally
// be "transparent".
func ValidateConfig(cfg models.SiteConfig) error {
	if models.Blank(cfg.MainTitle) {
		return errs.NewMissingRequiredFieldError("mainTitle")
	}
	if models.Blank(cfg.SubTitle) {
		return errs.NewMissingRequiredFieldError("subTitle")
	}
	if !theme.ValidHex(cfg.PrimaryColor) {
		return errs.NewInvalidColorError("primaryColor", cfg.PrimaryColor)
	}
	if !theme.ValidHex(cfg.SecondaryColor) {
		return errs.NewInvalidColorError("secondaryColor", cfg.SecondaryColor)
	}
	if !theme.ValidNavColor(cfg.NavColor) {
		return errs.NewInvalidColorError("navColor", cfg.NavColor)
	}
	return nil
}

// Save validates locally and replaces the server-side config wholesale.
// Validation failures block the save before any request is issued.
func (s *ConfigStore) Save(ctx context.Context, cfg models.SiteConfig) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	if err := s.api.PutConfig(ctx, cfg); err != nil {
		return err
	}
	s.mu.Lock()
	s.snapshot = &cfg
	s.mu.Unlock()
	s.logger.Info().Msg("site config saved")
	return nil
}
