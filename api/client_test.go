package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lseungyeop/portfolio-admin/errs"
	"github.com/lseungyeop/portfolio-admin/models"
)

type staticCredentials struct {
	secret string
}

func (c staticCredentials) Get() (string, bool) {
	return c.secret, c.secret != ""
}

// newFakeBackend routes the subset of the API the tests exercise.
func newFakeBackend(t *testing.T, adminSecret string) (*httptest.Server, *sync.Map) {
	t.Helper()
	seen := &sync.Map{}

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen.Store("lastAuthHeader", r.Header.Get(AdminHeader))
			seen.Store("lastRequestID", r.Header.Get("X-Request-Id"))
			next.ServeHTTP(w, r)
		})
	})

	router.Get("/skills", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"skillId": 1, "name": "React", "category": "Frontend"}]`))
	})
	router.Get("/admin/verify", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(AdminHeader) != adminSecret {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": "unauthorized", "message": "invalid admin password"}`))
			return
		}
		w.Write([]byte(`{"status": "ok"}`))
	})
	router.Post("/admin/projects", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(AdminHeader) != adminSecret {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"projectId": 10, "title": "X", "description": "Y"}`))
	})
	router.Post("/admin/skills", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "validation error", "message": "name already taken", "field": "name"}`))
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, seen
}

func TestClientAttachesAdminHeaderWhenStored(t *testing.T) {
	server, seen := newFakeBackend(t, "s3cret")
	client := NewClient(server.URL, WithCredentials(staticCredentials{secret: "s3cret"}))

	require.NoError(t, client.Verify(context.Background()))

	header, _ := seen.Load("lastAuthHeader")
	assert.Equal(t, "s3cret", header)
}

func TestClientOmitsAdminHeaderWhenAbsent(t *testing.T) {
	server, seen := newFakeBackend(t, "s3cret")
	client := NewClient(server.URL, WithCredentials(staticCredentials{}))

	_, err := client.ListSkills(context.Background())
	require.NoError(t, err)

	header, _ := seen.Load("lastAuthHeader")
	assert.Equal(t, "", header)
}

func TestClientTagsRequests(t *testing.T) {
	server, seen := newFakeBackend(t, "s3cret")
	client := NewClient(server.URL)

	_, err := client.ListSkills(context.Background())
	require.NoError(t, err)

	id, _ := seen.Load("lastRequestID")
	assert.NotEmpty(t, id)
}

func TestUnauthorizedResponseFiresHookOnce(t *testing.T) {
	server, _ := newFakeBackend(t, "s3cret")

	var hookStatuses []int
	client := NewClient(server.URL,
		WithCredentials(staticCredentials{secret: "wrong"}),
		WithUnauthorizedHook(func(status int) { hookStatuses = append(hookStatuses, status) }),
	)

	err := client.Verify(context.Background())
	require.Error(t, err)
	assert.Equal(t, errs.KindAuth, errs.KindOf(err))
	assert.Equal(t, []int{http.StatusForbidden}, hookStatuses)
}

func TestServerErrorEnvelopeSurfaced(t *testing.T) {
	server, _ := newFakeBackend(t, "s3cret")
	client := NewClient(server.URL, WithCredentials(staticCredentials{secret: "s3cret"}))

	_, err := client.AddSkill(context.Background(), "React", models.CategoryFrontend)
	require.Error(t, err)
	assert.Equal(t, errs.KindTransport, errs.KindOf(err))
	assert.Contains(t, err.Error(), "name already taken")
}

func TestCreateProjectDecodesResponse(t *testing.T) {
	server, _ := newFakeBackend(t, "s3cret")
	client := NewClient(server.URL, WithCredentials(staticCredentials{secret: "s3cret"}))

	created, err := client.CreateProject(context.Background(), models.ProjectDraft{Title: "X", Description: "Y"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)
}

func TestTransportFailureMapped(t *testing.T) {
	client := NewClient("http://127.0.0.1:0")

	_, err := client.ListProjects(context.Background())
	require.Error(t, err)
	assert.Equal(t, errs.KindTransport, errs.KindOf(err))
}
