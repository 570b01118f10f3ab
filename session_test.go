package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *clientStore {
	t.Helper()
	store, err := openClientStoreAt(filepath.Join(t.TempDir(), "client.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSessionManager_LoadsStoredSession(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.Set(authStorageKey, session{
		Token:     "tok",
		ExpiresAt: time.Now().Add(time.Hour).UnixMilli(),
		Remember:  true,
	}))

	m := newSessionManager(store)
	assert.True(t, m.Authenticated())
	assert.Equal(t, "tok", m.Token())
}

func TestSessionManager_ExpiredSessionClearedOnLoad(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.Set(authStorageKey, session{
		Token:     "tok",
		ExpiresAt: time.Now().Add(-time.Minute).UnixMilli(),
		Remember:  true,
	}))

	m := newSessionManager(store)
	assert.False(t, m.Authenticated())
	assert.Empty(t, m.Token())

	var stored session
	ok, err := store.Get(authStorageKey, &stored)
	require.NoError(t, err)
	assert.False(t, ok, "expired session is removed from storage")
}

func TestSessionManager_SignInRememberPersists(t *testing.T) {
	store := testStore(t)
	m := newSessionManager(store)

	m.SignIn(session{Token: "tok", ExpiresAt: time.Now().Add(time.Hour).UnixMilli(), Remember: true})
	assert.True(t, m.Authenticated())

	var stored session
	ok, err := store.Get(authStorageKey, &stored)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok", stored.Token)
}

func TestSessionManager_SignInWithoutRememberStaysInMemory(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.Set(authStorageKey, session{Token: "stale"}))

	m := newSessionManager(store)
	m.SignIn(session{Token: "tok", ExpiresAt: time.Now().Add(time.Hour).UnixMilli()})
	assert.True(t, m.Authenticated())

	var stored session
	ok, err := store.Get(authStorageKey, &stored)
	require.NoError(t, err)
	assert.False(t, ok, "non-remembered sign-in clears storage")
}

func TestSessionManager_SignOut(t *testing.T) {
	store := testStore(t)
	m := newSessionManager(store)
	m.SignIn(session{Token: "tok", ExpiresAt: time.Now().Add(time.Hour).UnixMilli(), Remember: true})

	m.SignOut()
	assert.False(t, m.Authenticated())
	var stored session
	ok, err := store.Get(authStorageKey, &stored)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionFromLogin_ExpiryPrecedence(t *testing.T) {
	// Explicit expiresInMins wins.
	sess := sessionFromLogin(loginResponse{AccessToken: "tok", ExpiresInMins: 30}, 60, true)
	want := time.Now().Add(30 * time.Minute).UnixMilli()
	assert.InDelta(t, want, sess.ExpiresAt, float64(5*time.Second.Milliseconds()))
	assert.True(t, sess.Remember)

	// Next: the token's exp claim.
	exp := time.Now().Add(45 * time.Minute).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": float64(exp.Unix())})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	sess = sessionFromLogin(loginResponse{AccessToken: signed}, 60, false)
	assert.Equal(t, exp.UnixMilli(), sess.ExpiresAt)
	assert.False(t, sess.Remember)

	// Last: the configured fallback.
	sess = sessionFromLogin(loginResponse{AccessToken: "opaque-token"}, 60, false)
	want = time.Now().Add(60 * time.Minute).UnixMilli()
	assert.InDelta(t, want, sess.ExpiresAt, float64(5*time.Second.Milliseconds()))
}

func TestSessionFromLogin_LegacyTokenField(t *testing.T) {
	sess := sessionFromLogin(loginResponse{Token: "legacy"}, 10, false)
	assert.Equal(t, "legacy", sess.Token)
}

func TestTokenExpiry(t *testing.T) {
	_, ok := tokenExpiry("not-a-jwt")
	assert.False(t, ok)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, ok = tokenExpiry(signed)
	assert.False(t, ok, "token without exp claim")
}
