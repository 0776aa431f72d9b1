package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lseungyeop/portfolio-admin/errs"
	"github.com/lseungyeop/portfolio-admin/models"
	"github.com/lseungyeop/portfolio-admin/services"
	"github.com/lseungyeop/portfolio-admin/store"
)

// FieldMainImage is the settings form's single upload field.
const FieldMainImage = "mainImageUrl"

// SettingsForm owns the in-progress site-config edit.
type SettingsForm struct {
	mu         sync.Mutex
	draft      models.SiteConfig
	submitting bool
	generation uint64

	configs       *store.ConfigStore
	uploader      Uploader
	uploads       *services.UploadTracker
	notifier      *Notifier
	navigator     Navigator
	navigateDelay time.Duration
	logger        zerolog.Logger
}

func NewSettingsForm(configs *store.ConfigStore, uploader Uploader, notifier *Notifier, navigator Navigator, navigateDelay time.Duration) *SettingsForm {
	logger := log.With().Str("component", "settingsForm").Logger()
	return &SettingsForm{
		configs:       configs,
		uploader:      uploader,
		uploads:       services.NewUploadTracker(),
		notifier:      notifier,
		navigator:     navigator,
		navigateDelay: navigateDelay,
		logger:        logger,
	}
}

// Load pulls the current config into the draft. Fetch falls back to
// defaults on failure, so the form always opens editable.
func (f *SettingsForm) Load(ctx context.Context) {
	cfg := f.configs.Fetch(ctx)
	f.mu.Lock()
	f.draft = cfg
	f.mu.Unlock()
}

func (f *SettingsForm) Draft() models.SiteConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *SettingsForm) Edit(fn func(*models.SiteConfig)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.draft)
}

// UploadMainImage uploads the hero image and writes the hosted URL into
// the draft.
func (f *SettingsForm) UploadMainImage(ctx context.Context, file models.Upload) error {
	if err := f.uploads.Begin(FieldMainImage); err != nil {
		return err
	}
	defer f.uploads.End(FieldMainImage)

	f.mu.Lock()
	generation := f.generation
	f.mu.Unlock()

	url, err := f.uploader.Upload(ctx, file)
	if err != nil {
		f.notifier.Error("Image upload failed: " + err.Error())
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.generation != generation {
		f.logger.Debug().Msg("dropping upload result for superseded settings form")
		return nil
	}
	f.draft.MainImageURL = url
	f.notifier.Success("Image uploaded.")
	return nil
}

// Submit saves the config. Local validation failures block the save before
// any request; on success the home view is scheduled so the admin sees the
// changes applied.
func (f *SettingsForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return errs.ErrSubmitInFlight
	}
	if f.uploads.InFlight(FieldMainImage) {
		f.mu.Unlock()
		return errs.ErrUploadInFlight
	}
	f.submitting = true
	draft := f.draft
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	if err := f.configs.Save(ctx, draft); err != nil {
		if !errs.IsValidation(err) {
			f.notifier.Error("Failed to save settings: " + err.Error())
		}
		return err
	}

	f.mu.Lock()
	f.generation++
	f.mu.Unlock()

	f.notifier.Success("Site settings saved. Applied on next load.")
	time.AfterFunc(f.navigateDelay, f.navigator.ToHome)
	return nil
}
