package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lseungyeop/portfolio-admin/errs"
)

func TestTrackerRejectsSameFieldWhileInFlight(t *testing.T) {
	tracker := NewUploadTracker()

	assert.NoError(t, tracker.Begin("thumbnailUrl"))
	err := tracker.Begin("thumbnailUrl")
	assert.True(t, errors.Is(err, errs.ErrUploadInFlight))
}

func TestTrackerAllowsIndependentFields(t *testing.T) {
	tracker := NewUploadTracker()

	assert.NoError(t, tracker.Begin("thumbnailUrl"))
	assert.NoError(t, tracker.Begin("erdImageUrl"))
	assert.True(t, tracker.InFlight("thumbnailUrl"))
	assert.True(t, tracker.InFlight("erdImageUrl"))
	assert.Len(t, tracker.Active(), 2)
}

func TestTrackerEndReleasesField(t *testing.T) {
	tracker := NewUploadTracker()

	assert.NoError(t, tracker.Begin("mainImageUrl"))
	tracker.End("mainImageUrl")
	assert.False(t, tracker.InFlight("mainImageUrl"))
	assert.NoError(t, tracker.Begin("mainImageUrl"))
}

func TestTrackerEndIdleFieldIsNoop(t *testing.T) {
	tracker := NewUploadTracker()
	tracker.End("never-started")
	assert.Empty(t, tracker.Active())
}
