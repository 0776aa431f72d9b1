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

// Uploader forwards a validated file to the image host. Satisfied by
// *services.ImageHost.
type Uploader interface {
	Upload(ctx context.Context, file models.Upload) (string, error)
}

// Image field names a project form can upload into.
const (
	FieldThumbnail    = "thumbnailUrl"
	FieldERDImage     = "erdImageUrl"
	FieldArchitecture = "architectureImageUrl"
)

// ProjectForm owns the in-progress draft for one project create/edit. It
// enforces single-flight submission, per-field upload locks, and drops
// async results that complete after the form has moved on.
type ProjectForm struct {
	mu         sync.Mutex
	draft      models.ProjectDraft
	projectID  *int64 // nil until editing an existing project
	submitting bool
	generation uint64

	repo          *store.ProjectRepo
	uploader      Uploader
	uploads       *services.UploadTracker
	notifier      *Notifier
	navigator     Navigator
	navigateDelay time.Duration
	logger        zerolog.Logger
}

func NewProjectForm(repo *store.ProjectRepo, uploader Uploader, notifier *Notifier, navigator Navigator, navigateDelay time.Duration) *ProjectForm {
	logger := log.With().Str("component", "projectForm").Logger()
	return &ProjectForm{
		repo:          repo,
		uploader:      uploader,
		uploads:       services.NewUploadTracker(),
		notifier:      notifier,
		navigator:     navigator,
		navigateDelay: navigateDelay,
		logger:        logger,
	}
}

// LoadForEdit hydrates the draft from an existing project. Skill names the
// registry no longer knows are dropped from the selection.
func (f *ProjectForm) LoadForEdit(ctx context.Context, id int64) error {
	draft, err := f.repo.EditDraft(ctx, id)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.draft = draft
	f.projectID = &id
	f.mu.Unlock()
	return nil
}

func (f *ProjectForm) Draft() models.ProjectDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	draft := f.draft
	draft.SkillIDs = append([]int64(nil), f.draft.SkillIDs...)
	return draft
}

// Edit mutates the draft under the form's lock.
func (f *ProjectForm) Edit(fn func(*models.ProjectDraft)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.draft)
}

// DeselectSkill drops a skill id from the pending selection. Wired to the
// registry's removal callback so deleting a skill while this form is open
// keeps the selection consistent.
func (f *ProjectForm) DeselectSkill(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.draft.SkillIDs[:0]
	for _, skillID := range f.draft.SkillIDs {
		if skillID != id {
			kept = append(kept, skillID)
		}
	}
	f.draft.SkillIDs = kept
}

// UploadImage uploads a file for one image field and writes the hosted URL
// into the draft. A second upload for the same field is rejected while the
// first is in flight; other fields proceed independently. A result that
// lands after the form has been submitted is discarded.
func (f *ProjectForm) UploadImage(ctx context.Context, field string, file models.Upload) error {
	switch field {
	case FieldThumbnail, FieldERDImage, FieldArchitecture:
	default:
		return errs.NewInvalidFieldError(field, "not an image field")
	}

	if err := f.uploads.Begin(field); err != nil {
		return err
	}
	defer f.uploads.End(field)

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
		f.logger.Debug().Str("field", field).Msg("dropping upload result for superseded form")
		return nil
	}
	switch field {
	case FieldThumbnail:
		f.draft.ThumbnailURL = url
	case FieldERDImage:
		f.draft.ERDImageURL = url
	case FieldArchitecture:
		f.draft.ArchitectureImageURL = url
	}
	return nil
}

// Uploading reports whether the named field has an upload in flight.
func (f *ProjectForm) Uploading(field string) bool {
	return f.uploads.InFlight(field)
}

// Submit performs exactly one create or update call. Re-submission while a
// prior submission is in flight is rejected, as is submitting while any
// upload is still running. On success the listing view is scheduled after
// a short delay so the success notification stays visible.
func (f *ProjectForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return errs.ErrSubmitInFlight
	}
	if active := f.uploads.Active(); len(active) > 0 {
		f.mu.Unlock()
		return errs.ErrUploadInFlight
	}
	f.submitting = true
	draft := f.draft
	projectID := f.projectID
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	var err error
	if projectID == nil {
		_, err = f.repo.Add(ctx, draft)
	} else {
		_, err = f.repo.Update(ctx, *projectID, draft)
	}
	if err != nil {
		// Validation stays in the form; everything else is notified. The
		// draft remains editable either way so the user can retry.
		if !errs.IsValidation(err) {
			f.notifier.Error(err.Error())
		}
		return err
	}

	f.mu.Lock()
	f.generation++
	f.mu.Unlock()

	f.notifier.Success("Project saved.")
	time.AfterFunc(f.navigateDelay, f.navigator.ToProjects)
	return nil
}
