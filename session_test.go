package webfront_test

import (
	"testing"

	webfront "github.com/novacoders/webfront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*webfront.SessionStore, *webfront.MemoryStorage) {
	t.Helper()
	storage := webfront.NewMemoryStorage()
	return webfront.NewSessionStore("sid-1", storage), storage
}

func testUser() *webfront.User {
	return &webfront.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: webfront.RoleUser}
}

func TestSessionStoreLifecycle(t *testing.T) {
	store, _ := newTestStore(t)

	state := store.Snapshot()
	assert.False(t, state.Authenticated)
	assert.Empty(t, state.Token)

	gen := store.Begin()
	assert.True(t, store.Snapshot().Loading)

	require.True(t, store.ApplySuccess(gen, "tok-1", testUser()))

	state = store.Snapshot()
	assert.True(t, state.Authenticated)
	assert.Equal(t, "tok-1", state.Token)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
	assert.Equal(t, "ada@example.com", state.User.Email)
}

func TestSessionStoreFailureDropsCredentials(t *testing.T) {
	store, _ := newTestStore(t)

	gen := store.Begin()
	require.True(t, store.ApplySuccess(gen, "tok-1", testUser()))

	gen = store.Begin()
	require.True(t, store.ApplyFailure(gen, "Invalid credentials"))

	state := store.Snapshot()
	assert.False(t, state.Authenticated)
	assert.Nil(t, state.User)
	assert.Empty(t, state.Token)
	assert.False(t, state.Loading)
	assert.Equal(t, "Invalid credentials", state.Err)
}

func TestSessionStoreFailureDefaultMessage(t *testing.T) {
	store, _ := newTestStore(t)

	gen := store.Begin()
	require.True(t, store.ApplyFailure(gen, ""))
	assert.Equal(t, "Authentication failed", store.Snapshot().Err)
}

func TestSessionStoreStaleResultsDiscarded(t *testing.T) {
	t.Run("logout beats in-flight success", func(t *testing.T) {
		store, _ := newTestStore(t)

		gen := store.Begin()
		store.Clear()

		assert.False(t, store.ApplySuccess(gen, "tok-late", testUser()))

		state := store.Snapshot()
		assert.False(t, state.Authenticated)
		assert.Empty(t, state.Token)
	})

	t.Run("stale failure cannot tear down a newer session", func(t *testing.T) {
		store, _ := newTestStore(t)

		staleGen := store.Begin()

		freshGen := store.Begin()
		require.True(t, store.ApplySuccess(freshGen, "tok-new", testUser()))

		assert.False(t, store.ApplyFailure(staleGen, "too late"))

		state := store.Snapshot()
		assert.True(t, state.Authenticated)
		assert.Equal(t, "tok-new", state.Token)
		assert.Empty(t, state.Err)
	})

	t.Run("settle respects generation", func(t *testing.T) {
		store, _ := newTestStore(t)

		gen := store.Begin()
		assert.True(t, store.Settle(gen))
		assert.False(t, store.Snapshot().Loading)

		gen = store.Begin()
		store.Clear()
		assert.False(t, store.Settle(gen))
	})
}

func TestSessionStoreClearError(t *testing.T) {
	store, _ := newTestStore(t)

	gen := store.Begin()
	require.True(t, store.ApplyFailure(gen, "boom"))

	store.ClearError()
	assert.Empty(t, store.Snapshot().Err)

	// idempotent
	store.ClearError()
	assert.Empty(t, store.Snapshot().Err)
}

func TestSessionStoreDurableRecord(t *testing.T) {
	store, storage := newTestStore(t)

	gen := store.Begin()
	require.True(t, store.ApplySuccess(gen, "tok-1", testUser()))

	token, ok, err := storage.Get("sid-1", webfront.TokenKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-1", token)

	// legacy mirrors are written alongside the canonical pair
	email, ok, _ := storage.Get("sid-1", webfront.LegacyEmailKey)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", email)

	role, ok, _ := storage.Get("sid-1", webfront.LegacyRoleKey)
	require.True(t, ok)
	assert.Equal(t, webfront.RoleUser, role)

	store.Clear()

	for _, key := range []string{
		webfront.TokenKey, webfront.UserKey,
		webfront.LegacyTokenKey, webfront.LegacyEmailKey,
		webfront.LegacyRoleKey, webfront.LegacyIDKey,
	} {
		_, ok, err := storage.Get("sid-1", key)
		require.NoError(t, err)
		assert.False(t, ok, "key %q should be cleared", key)
	}
}

func TestSessionStoreRestore(t *testing.T) {
	storage := webfront.NewMemoryStorage()

	first := webfront.NewSessionStore("sid-1", storage)
	gen := first.Begin()
	require.True(t, first.ApplySuccess(gen, "tok-1", testUser()))

	// a fresh store over the same storage restores the session
	second := webfront.NewSessionStore("sid-1", storage)
	require.True(t, second.Restore())

	state := second.Snapshot()
	assert.True(t, state.Authenticated)
	assert.Equal(t, "tok-1", state.Token)
	assert.Equal(t, "u1", state.User.ID)
}

func TestSessionStoreRestoreMissingRecord(t *testing.T) {
	store, _ := newTestStore(t)
	assert.False(t, store.Restore())
	assert.False(t, store.Authenticated())
}

func TestSessionStoreRestoreDefaultsRole(t *testing.T) {
	storage := webfront.NewMemoryStorage()
	require.NoError(t, storage.Set("sid-1", webfront.TokenKey, "tok-1"))
	require.NoError(t, storage.Set("sid-1", webfront.UserKey, `{"id":"u1","email":"ada@example.com"}`))

	store := webfront.NewSessionStore("sid-1", storage)
	require.True(t, store.Restore())
	assert.Equal(t, webfront.RoleUser, store.Snapshot().User.Role)
}

func TestSessionManager(t *testing.T) {
	manager := webfront.NewSessionManager(nil)

	t.Run("get is stable per sid", func(t *testing.T) {
		a := manager.Get("sid-a")
		b := manager.Get("sid-b")
		assert.NotSame(t, a, b)
		assert.Same(t, a, manager.Get("sid-a"))
	})

	t.Run("lookup does not create", func(t *testing.T) {
		_, ok := manager.Lookup("sid-missing")
		assert.False(t, ok)
	})

	t.Run("evict drops the in-memory store", func(t *testing.T) {
		manager.Get("sid-evict")
		manager.Evict("sid-evict")
		_, ok := manager.Lookup("sid-evict")
		assert.False(t, ok)
	})

	t.Run("get restores from durable storage", func(t *testing.T) {
		storage := webfront.NewMemoryStorage()
		seed := webfront.NewSessionStore("sid-r", storage)
		gen := seed.Begin()
		require.True(t, seed.ApplySuccess(gen, "tok-r", testUser()))

		fresh := webfront.NewSessionManager(storage)
		store := fresh.Get("sid-r")
		assert.True(t, store.Authenticated())
		assert.Equal(t, "tok-r", store.Token())
	})
}
