package storage

import (
	"os"
	"path/filepath"
	"testing"

	"studyspace-client/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := tempStore(t)
	session := domain.Session{
		Username: "jdoe",
		FullName: "Jane Doe",
		Token:    "tok-123",
	}

	require.NoError(t, store.Write(session))

	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestFileStore_MissingFileReadsAsLoggedOut(t *testing.T) {
	store := tempStore(t)

	session, err := store.Read()

	require.NoError(t, err)
	assert.False(t, session.LoggedIn())
}

func TestFileStore_CorruptFileReadsAsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	store := NewFileStore(path)

	session, err := store.Read()

	require.NoError(t, err)
	assert.False(t, session.LoggedIn())
}

func TestFileStore_NormalizesLegacyNameSentinel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	raw := `{"username":"jdoe","fullName":"undefined","token":"tok-123"}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))
	store := NewFileStore(path)

	session, err := store.Read()

	require.NoError(t, err)
	assert.Equal(t, "jdoe", session.Username)
	assert.Empty(t, session.FullName)
	assert.True(t, session.LoggedIn())
}

func TestFileStore_WriteCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "session.json")
	store := NewFileStore(path)

	require.NoError(t, store.Write(domain.Session{Username: "jdoe", Token: "tok"}))

	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "jdoe", got.Username)
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.Write(domain.Session{Username: "jdoe", Token: "tok"}))

	require.NoError(t, store.Clear())
	// Clearing an already-empty store must stay a no-op
	require.NoError(t, store.Clear())

	session, err := store.Read()
	require.NoError(t, err)
	assert.False(t, session.LoggedIn())
}

func TestMemoryStore_NormalizesLegacyNameSentinel(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Write(domain.Session{
		Username: "jdoe",
		FullName: "undefined",
		Token:    "tok",
	}))

	session, err := store.Read()

	require.NoError(t, err)
	assert.Empty(t, session.FullName)
}

func TestMemoryStore_ClearResetsSession(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Write(domain.Session{Username: "jdoe", Token: "tok"}))

	require.NoError(t, store.Clear())

	session, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, domain.Session{}, session)
}
