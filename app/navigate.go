package app

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Navigator moves the user between views. The CLI implementation records
// the target; a UI would swap routes.
type Navigator interface {
	ToLogin()
	ToHome()
	ToProjects()
}

const (
	RouteLogin    = "/login"
	RouteHome     = "/"
	RouteProjects = "/projects"
)

// RouteRecorder is the default Navigator: it logs each transition and
// remembers the current route so callers (and tests) can observe where the
// user ended up.
type RouteRecorder struct {
	mu      sync.Mutex
	current string
	logger  zerolog.Logger
}

func NewRouteRecorder() *RouteRecorder {
	logger := log.With().Str("component", "navigator").Logger()
	return &RouteRecorder{current: RouteHome, logger: logger}
}

func (r *RouteRecorder) navigate(route string) {
	r.mu.Lock()
	r.current = route
	r.mu.Unlock()
	r.logger.Info().Str("route", route).Msg("navigated")
}

func (r *RouteRecorder) ToLogin()    { r.navigate(RouteLogin) }
func (r *RouteRecorder) ToHome()     { r.navigate(RouteHome) }
func (r *RouteRecorder) ToProjects() { r.navigate(RouteProjects) }

func (r *RouteRecorder) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
