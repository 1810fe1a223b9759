package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-tools/deskctl/internal/model"
)

func demoSession() *model.Session {
	return &model.Session{
		ID:      "u-1",
		Name:    "Juan Pérez",
		Email:   "juan.perez@example.com",
		Role:    model.RoleClient,
		Token:   "tok-abc",
		SavedAt: time.Now().UTC(),
	}
}

func TestFileStoreSetThenCurrent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStoreAt(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set(demoSession()))

	got, err := store.Current()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "juan.perez@example.com", got.Email)
	assert.Equal(t, model.RoleClient, got.Role)
	assert.Equal(t, "tok-abc", got.Token)
}

func TestFileStoreSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStoreAt(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(demoSession()))

	// A fresh store over the same directory simulates a new process.
	reloaded, err := NewFileStoreAt(dir)
	require.NoError(t, err)
	got, err := reloaded.Current()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u-1", got.ID)
}

func TestFileStoreClearIsDurable(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStoreAt(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(demoSession()))
	require.NoError(t, store.Clear())

	got, err := store.Current()
	require.NoError(t, err)
	assert.Nil(t, got)

	// Persistence is cleared too, not just in-memory state.
	reloaded, err := NewFileStoreAt(dir)
	require.NoError(t, err)
	got, err = reloaded.Current()
	require.NoError(t, err)
	assert.Nil(t, got)

	// Clearing an already-anonymous store is not an error.
	assert.NoError(t, store.Clear())
}

func TestFileStoreCorruptFileReadsAsAnonymous(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStoreAt(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, sessionFile), []byte("{not json"), 0600))

	got, err := store.Current()
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStoreRejectsInvalidSessions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStoreAt(dir)
	require.NoError(t, err)

	assert.Error(t, store.Set(nil))

	bad := demoSession()
	bad.Role = "SUPERUSER"
	assert.Error(t, store.Set(bad))
}
