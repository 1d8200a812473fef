package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicore/hms-console/pkg/logger"
	"github.com/medicore/hms-console/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	return NewStore(NewStateFile(path), logger.New("debug"))
}

func TestEstablish_PersistsSession(t *testing.T) {
	store := newTestStore(t)

	err := store.Establish(types.Session{
		Token: "tok-abc",
		Email: "admin@hospital.test",
		Role:  types.RoleAdmin,
	})

	require.NoError(t, err)
	current := store.Current()
	assert.True(t, current.IsAuthenticated)
	assert.Equal(t, "tok-abc", store.Token())
	assert.Equal(t, types.RoleAdmin, current.Role)
}

func TestEstablish_PersistFailureLeavesStoreLoggedOut(t *testing.T) {
	// A state file in a missing directory cannot be written; the
	// in-memory session must not claim a login the disk never recorded
	path := filepath.Join(t.TempDir(), "missing", "session.json")
	store := NewStore(NewStateFile(path), logger.New("debug"))

	err := store.Establish(types.Session{
		Token: "tok-abc",
		Email: "admin@hospital.test",
		Role:  types.RoleAdmin,
	})

	require.Error(t, err)
	assert.False(t, store.Current().IsAuthenticated)
	assert.Empty(t, store.Token())
}

func TestEstablish_EmptyTokenIsNotAuthenticated(t *testing.T) {
	store := newTestStore(t)

	err := store.Establish(types.Session{Email: "admin@hospital.test"})

	require.NoError(t, err)
	assert.False(t, store.Current().IsAuthenticated)
}

func TestRestore_RebuildsSessionFromStateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	file := NewStateFile(path)
	first := NewStore(file, logger.New("debug"))
	require.NoError(t, first.Establish(types.Session{
		Token: "tok-restored",
		Email: "dr.jones@hospital.test",
		Role:  types.RoleDoctor,
	}))

	// A second store over the same file models a console restart
	second := NewStore(NewStateFile(path), logger.New("debug"))
	require.NoError(t, second.Restore())

	current := second.Current()
	assert.True(t, current.IsAuthenticated)
	assert.Equal(t, "tok-restored", second.Token())
	assert.Equal(t, "dr.jones@hospital.test", current.Email)
	assert.Equal(t, types.RoleDoctor, current.Role)
}

func TestRestore_MissingFileStaysLoggedOut(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Restore())

	assert.False(t, store.Current().IsAuthenticated)
	assert.Empty(t, store.Token())
}

func TestRestore_CorruptFileStaysLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o600))
	store := NewStore(NewStateFile(path), logger.New("debug"))

	require.NoError(t, store.Restore())

	assert.False(t, store.Current().IsAuthenticated)
}

func TestInvalidate_ClearsEverythingAtOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	file := NewStateFile(path)
	store := NewStore(file, logger.New("debug"))
	require.NoError(t, store.Establish(types.Session{
		Token: "tok-abc",
		Email: "admin@hospital.test",
		Role:  types.RoleAdmin,
	}))

	store.Invalidate()

	current := store.Current()
	assert.False(t, current.IsAuthenticated)
	assert.Empty(t, store.Token())
	assert.Empty(t, current.Email)
	assert.Empty(t, current.Role)

	// The persisted state must not keep any field either
	state, err := file.Load()
	require.NoError(t, err)
	assert.Empty(t, state[keyToken])
	assert.Empty(t, state[keyUserEmail])
	assert.Empty(t, state[keyUserRole])
	assert.Empty(t, state[keyIsAuthenticated])
}

func TestInvalidate_NotifiesSubscribers(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Establish(types.Session{
		Token: "tok-abc",
		Email: "admin@hospital.test",
		Role:  types.RoleAdmin,
	}))

	notified := 0
	store.OnInvalidate(func() { notified++ })
	store.OnInvalidate(func() { notified++ })

	store.Invalidate()

	assert.Equal(t, 2, notified)
}

func TestInvalidate_WhenLoggedOutSkipsSubscribers(t *testing.T) {
	store := newTestStore(t)
	notified := false
	store.OnInvalidate(func() { notified = true })

	store.Invalidate()

	assert.False(t, notified)
}
