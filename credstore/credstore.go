package credstore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Store persists the admin shared secret as a single durable key. It does
// no validation of the secret; correctness is only known after the server
// accepts a request carrying it. The auth gate is the only component that
// should write to it.
type Store struct {
	mu     sync.Mutex
	path   string
	logger zerolog.Logger
}

func New(path string) *Store {
	logger := log.With().Str("component", "credstore").Logger()
	return &Store{path: path, logger: logger}
}

// Set writes the secret, creating the parent directory if needed. The file
// is owner-only: it holds a plaintext credential.
func (s *Store) Set(secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, []byte(secret), 0o600); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("failed to persist credential")
		return err
	}
	return nil
}

// Get returns the stored secret and whether one is present. A missing or
// empty file counts as absent.
func (s *Store) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("failed to read credential")
		}
		return "", false
	}
	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", false
	}
	return secret, true
}

// Clear removes the stored secret. Clearing an absent secret is not an
// error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Error().Err(err).Str("path", s.path).Msg("failed to clear credential")
		return err
	}
	return nil
}
