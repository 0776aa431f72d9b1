package credstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetClear(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "nested", "credential"))

	_, ok := store.Get()
	assert.False(t, ok)

	require.NoError(t, store.Set("hunter2"))
	secret, ok := store.Get()
	assert.True(t, ok)
	assert.Equal(t, "hunter2", secret)

	require.NoError(t, store.Clear())
	_, ok = store.Get()
	assert.False(t, ok)
}

func TestClearAbsentIsNotAnError(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "credential"))
	assert.NoError(t, store.Clear())
}

func TestSurvivesProcessRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential")
	require.NoError(t, New(path).Set("secret"))

	// A fresh store over the same path sees the value.
	secret, ok := New(path).Get()
	assert.True(t, ok)
	assert.Equal(t, "secret", secret)
}

func TestEmptyFileCountsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	_, ok := New(path).Get()
	assert.False(t, ok)
}

func TestCredentialFileIsOwnerOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential")
	require.NoError(t, New(path).Set("secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
