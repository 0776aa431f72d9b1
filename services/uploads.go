package services

import (
	"sync"

	"github.com/lseungyeop/portfolio-admin/errs"
)

// UploadTracker enforces single-flight uploads per logical field name.
// Uploads for different fields may run concurrently; a second upload for a
// field whose upload is still in flight is rejected, not queued. This
// mirrors the form disabling a field's trigger while its upload runs.
type UploadTracker struct {
	mu       sync.Mutex
	inFlight map[string]bool
}

func NewUploadTracker() *UploadTracker {
	return &UploadTracker{inFlight: make(map[string]bool)}
}

// Begin marks the field busy. It fails when an upload for the same field
// is already in flight.
func (t *UploadTracker) Begin(field string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inFlight[field] {
		return errs.ErrUploadInFlight
	}
	t.inFlight[field] = true
	return nil
}

// End releases the field. Ending a field that is not busy is a no-op.
func (t *UploadTracker) End(field string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inFlight, field)
}

// InFlight reports whether the field currently has an upload running.
func (t *UploadTracker) InFlight(field string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inFlight[field]
}

// Active returns the names of all fields with uploads in flight.
func (t *UploadTracker) Active() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	fields := make([]string, 0, len(t.inFlight))
	for field := range t.inFlight {
		fields = append(fields, field)
	}
	return fields
}
