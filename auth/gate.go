package auth

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lseungyeop/portfolio-admin/credstore"
	"github.com/lseungyeop/portfolio-admin/errs"
)

// State is the admin session state. Presence of a stored secret implies
// Authenticated until a request disproves it.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Verifier proves a stored credential against the server. Satisfied by
// *api.Client.
type Verifier interface {
	Verify(ctx context.Context) error
}

// Notifier surfaces the blocking "session expired" notification.
type Notifier interface {
	Blocking(message string)
}

// Navigator moves the user between views.
type Navigator interface {
	ToLogin()
	ToHome()
}

// Gate owns the admin session lifecycle. It is the only writer of the
// credential store, and HandleUnauthorized is the single authoritative
// point where a dead session is decided.
type Gate struct {
	mu          sync.Mutex
	state       State
	creds       *credstore.Store
	verifier    Verifier
	notifier    Notifier
	navigator   Navigator
	subscribers []func(State)
	logger      zerolog.Logger
}

func NewGate(creds *credstore.Store, verifier Verifier, notifier Notifier, navigator Navigator) *Gate {
	logger := log.With().Str("component", "authGate").Logger()

	state := StateAnonymous
	if _, ok := creds.Get(); ok {
		state = StateAuthenticated
	}

	return &Gate{
		state:     state,
		creds:     creds,
		verifier:  verifier,
		notifier:  notifier,
		navigator: navigator,
		logger:    logger,
	}
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Subscribe registers a callback invoked on every state transition.
func (g *Gate) Subscribe(fn func(State)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.subscribers = append(g.subscribers, fn)
}

func (g *Gate) setState(state State) {
	g.mu.Lock()
	if g.state == state {
		g.mu.Unlock()
		return
	}
	g.state = state
	subscribers := make([]func(State), len(g.subscribers))
	copy(subscribers, g.subscribers)
	g.mu.Unlock()

	for _, fn := range subscribers {
		fn(state)
	}
}

// Login stores the secret and proves it with a verification round trip.
// Any failure, including network failure, clears the secret and leaves the
// gate Anonymous.
func (g *Gate) Login(ctx context.Context, secret string) error {
	g.setState(StateAuthenticating)

	if err := g.creds.Set(secret); err != nil {
		g.setState(StateAnonymous)
		return err
	}

	if err := g.verifier.Verify(ctx); err != nil {
		g.logger.Warn().Err(err).Msg("credential verification failed")
		if clearErr := g.creds.Clear(); clearErr != nil {
			g.logger.Error().Err(clearErr).Msg("failed to clear rejected credential")
		}
		g.setState(StateAnonymous)
		if errs.KindOf(err) == errs.KindAuth {
			return err
		}
		return errs.NewAuthError(0, "could not verify credential: "+err.Error())
	}

	g.setState(StateAuthenticated)
	g.logger.Info().Msg("admin authenticated")
	return nil
}

// Logout clears the secret and returns the user to the public home.
func (g *Gate) Logout() {
	if err := g.creds.Clear(); err != nil {
		g.logger.Error().Err(err).Msg("failed to clear credential on logout")
	}
	g.setState(StateAnonymous)
	if g.navigator != nil {
		g.navigator.ToHome()
	}
}

// HandleUnauthorized reacts to a 401/403 seen anywhere on the wire: the
// credential is destroyed, the session ends, and the user is sent back to
// the login entry point. During an explicit login attempt the login flow
// owns the outcome, so only the state is left for Login to settle.
func (g *Gate) HandleUnauthorized(statusCode int) {
	g.mu.Lock()
	current := g.state
	g.mu.Unlock()

	if current == StateAuthenticating || current == StateAnonymous {
		return
	}

	g.logger.Warn().Int("status", statusCode).Msg("request rejected as unauthorized, ending admin session")
	if err := g.creds.Clear(); err != nil {
		g.logger.Error().Err(err).Msg("failed to clear credential after unauthorized response")
	}
	g.setState(StateAnonymous)

	if g.notifier != nil {
		g.notifier.Blocking("Your admin session is no longer valid. Please log in again.")
	}
	if g.navigator != nil {
		g.navigator.ToLogin()
	}
}

// Guard consults the gate before an admin-only view renders. When the
// session is not Authenticated it redirects to login and reports false.
func (g *Gate) Guard() bool {
	if g.State() == StateAuthenticated {
		return true
	}
	if g.navigator != nil {
		g.navigator.ToLogin()
	}
	return false
}
