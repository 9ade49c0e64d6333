// Package session holds the client's authentication state: anonymous, or
// bound to one user plus an opaque token. The store is constructed
// explicitly and injected where needed; there is no ambient lookup.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/example/taskflow/client/kv"
	"github.com/example/taskflow/domain/user"
	"github.com/example/taskflow/validate"
)

// State is the session lifecycle state.
type State string

const (
	// StateAnonymous means no user is signed in.
	StateAnonymous State = "anonymous"
	// StateRestoring means a cached user is visible while the persisted
	// token is being revalidated against the backend.
	StateRestoring State = "restoring"
	// StateAuthenticated means the session holds a validated user + token.
	StateAuthenticated State = "authenticated"
)

// AuthBackend is the port to an authentication backend. Implementations:
// the REST API client and the on-device account store.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (user.User, string, error)
	Register(ctx context.Context, email, password, name string) (user.User, string, error)
	Validate(ctx context.Context, token string) (user.User, error)
}

// Store owns the current session and its persistence across restarts.
type Store struct {
	backend AuthBackend
	creds   *kv.Store

	mu         sync.RWMutex
	state      State
	user       user.User
	token      string
	inProgress bool
}

// NewStore creates an anonymous session store. Call Restore once at startup
// to pick up a previously persisted session.
func NewStore(backend AuthBackend, creds *kv.Store) *Store {
	return &Store{
		backend: backend,
		creds:   creds,
		state:   StateAnonymous,
	}
}

// Login authenticates with the backend. On success the session becomes
// authenticated and is persisted. Any failure returns false and leaves the
// prior session untouched; errors never escape.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	s.setInProgress(true)
	defer s.setInProgress(false)

	u, token, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return false
	}
	s.establish(u, token)
	return true
}

// Register creates an account and auto-authenticates it. Field validation
// runs before the backend is called; invalid input returns false without a
// network round trip.
func (s *Store) Register(ctx context.Context, email, password, name string) bool {
	if validate.Email(email) != nil || validate.Password(password) != nil || validate.DisplayName(name) != nil {
		return false
	}

	s.setInProgress(true)
	defer s.setInProgress(false)

	u, token, err := s.backend.Register(ctx, email, password, name)
	if err != nil {
		return false
	}
	s.establish(u, token)
	return true
}

// Logout clears the session and the persisted credential. It always
// succeeds.
func (s *Store) Logout() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.user = user.User{}
	s.token = ""
	s.mu.Unlock()

	_ = s.creds.Delete(kv.KeyCurrentUser)
	_ = s.creds.Delete(kv.KeyToken)
}

// Restore runs once at startup. If a persisted credential exists the cached
// user becomes visible immediately (restoring state), then the token is
// validated against the backend: success yields an authenticated session
// with the refreshed user, failure clears everything back to anonymous.
func (s *Store) Restore(ctx context.Context) {
	rawToken, haveToken, err := s.creds.Get(kv.KeyToken)
	if err != nil || !haveToken {
		return
	}
	rawUser, haveUser, err := s.creds.Get(kv.KeyCurrentUser)
	if err != nil || !haveUser {
		// A token without its user record is unusable; drop it.
		s.Logout()
		return
	}

	var cached user.User
	if err := json.Unmarshal(rawUser, &cached); err != nil {
		s.Logout()
		return
	}

	token := string(rawToken)
	s.mu.Lock()
	s.state = StateRestoring
	s.user = cached
	s.token = token
	s.mu.Unlock()

	fresh, err := s.backend.Validate(ctx, token)
	if err != nil {
		// Stale or revoked credential; do not leave unverified data visible.
		s.Logout()
		return
	}
	s.establish(fresh, token)
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns the session user. Meaningful only outside the anonymous
// state; during restore it is the cached, not-yet-validated user.
func (s *Store) User() user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Token returns the opaque credential of the current session.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// InProgress reports whether a login or register call is running, so forms
// can be disabled while it is.
func (s *Store) InProgress() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inProgress
}

func (s *Store) establish(u user.User, token string) {
	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = u
	s.token = token
	s.mu.Unlock()

	if raw, err := json.Marshal(u); err == nil {
		_ = s.creds.Set(kv.KeyCurrentUser, raw)
	}
	_ = s.creds.Set(kv.KeyToken, []byte(token))
}

func (s *Store) setInProgress(v bool) {
	s.mu.Lock()
	s.inProgress = v
	s.mu.Unlock()
}
