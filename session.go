package main

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// session is the signed-in state. Remembered sessions survive restarts
// in the client store; non-remembered ones live only in process memory
// and die with the program.
type session struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"` // unix milliseconds
	Remember  bool   `json:"remember"`
}

func (s session) expired() bool {
	return time.Now().UnixMilli() > s.ExpiresAt
}

// sessionManager owns the session lifecycle: initialized from storage
// at startup, mutated only by SignIn/SignOut, read-only everywhere
// else. Passed by reference to whatever needs it.
type sessionManager struct {
	store   *clientStore
	current *session
}

func newSessionManager(store *clientStore) *sessionManager {
	m := &sessionManager{store: store}
	var stored session
	ok, err := store.Get(authStorageKey, &stored)
	if err != nil || !ok {
		return m
	}
	if stored.Token == "" || stored.expired() {
		_ = store.Delete(authStorageKey)
		return m
	}
	m.current = &stored
	return m
}

func (m *sessionManager) Authenticated() bool {
	return m.current != nil && !m.current.expired()
}

func (m *sessionManager) Token() string {
	if m.current == nil {
		return ""
	}
	return m.current.Token
}

func (m *sessionManager) SignIn(sess session) {
	m.current = &sess
	if sess.Remember {
		_ = m.store.Set(authStorageKey, sess)
		return
	}
	_ = m.store.Delete(authStorageKey)
}

func (m *sessionManager) SignOut() {
	m.current = nil
	_ = m.store.Delete(authStorageKey)
}

// sessionFromLogin builds a session from a login response. Expiry comes
// from the response when present, else from the token's exp claim, else
// from the configured fallback.
func sessionFromLogin(resp loginResponse, fallbackMinutes int, remember bool) session {
	token := resp.AccessToken
	if token == "" {
		token = resp.Token
	}
	expiresAt := time.Now().Add(time.Duration(fallbackMinutes) * time.Minute)
	if resp.ExpiresInMins > 0 {
		expiresAt = time.Now().Add(time.Duration(resp.ExpiresInMins) * time.Minute)
	} else if exp, ok := tokenExpiry(token); ok {
		expiresAt = exp
	}
	return session{Token: token, ExpiresAt: expiresAt.UnixMilli(), Remember: remember}
}

// tokenExpiry reads the exp claim without verifying the signature; the
// client only uses it to decide when to prompt for a fresh login.
func tokenExpiry(token string) (time.Time, bool) {
	if strings.Count(token, ".") != 2 {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
