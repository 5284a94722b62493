// Package auth owns the client's session state: the current credential and
// profile, their durable persistence, and the login/logout/refresh calls
// against the backend.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/hashedin27-max/GCS-Upload/internal/client/models"
	"github.com/hashedin27-max/GCS-Upload/internal/client/session"
	"github.com/hashedin27-max/GCS-Upload/internal/client/token"
	"github.com/hashedin27-max/GCS-Upload/internal/logging"
)

// Backend is the authentication surface of the API client.
type Backend interface {
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) (*models.RefreshResponse, error)
}

// Error is an authentication failure carrying a message fit for display.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Manager holds the one session of the running client. All session writes go
// through its methods; collaborators only read via CurrentUser/IsAuthenticated
// and receive change notifications through Subscribe.
type Manager struct {
	backend Backend
	store   session.Store
	log     logging.Logger
	now     func() time.Time

	mu    sync.Mutex
	token string
	user  *models.User

	subMu   sync.Mutex
	subs    map[int]func(*models.User)
	nextSub int
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager wires a Manager to its backend and durable store.
func NewManager(backend Backend, store session.Store, log logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		backend: backend,
		store:   store,
		log:     log,
		now:     time.Now,
		subs:    make(map[int]func(*models.User)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Restore adopts a previously persisted session at process start. An absent
// or expired stored credential leaves the manager anonymous and wipes the
// store. This is the only automatic state transition.
func (m *Manager) Restore(ctx context.Context) {
	tok, user, err := m.store.Load()
	if err != nil {
		return
	}
	if token.IsExpired(tok, m.now()) {
		m.log.Info(ctx, "stored session expired, clearing")
		if err := m.store.Clear(); err != nil {
			m.log.Warn(ctx, "clearing stored session", "error", err)
		}
		return
	}

	m.mu.Lock()
	m.token = tok
	m.user = user
	m.mu.Unlock()

	m.log.Info(ctx, "session restored", "username", user.Username)
	m.notify(user)
}

// Login authenticates against the backend. On success the manager becomes
// authenticated, persists the session, and notifies subscribers with the new
// profile. On any failure the session state, stored or in memory, is left
// untouched and an *Error is returned for display.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	resp, err := m.backend.Login(ctx, username, password)
	if err != nil {
		m.log.Warn(ctx, "login request failed", "error", err)
		return &Error{Message: err.Error()}
	}
	if !resp.Success || resp.Token == "" || resp.User == nil {
		msg := resp.Message
		if msg == "" {
			msg = "invalid username or password"
		}
		return &Error{Message: msg}
	}

	m.mu.Lock()
	m.token = resp.Token
	m.user = resp.User
	m.mu.Unlock()

	if err := m.store.Save(resp.Token, resp.User); err != nil {
		m.log.Warn(ctx, "persisting session", "error", err)
	}
	m.log.Info(ctx, "login successful", "username", resp.User.Username)
	m.notify(resp.User)
	return nil
}

// Logout tells the backend to end the session, then clears local state.
// The local clear is unconditional: a transport failure never leaves the
// client logged in, so Logout always succeeds from the caller's viewpoint.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.backend.Logout(ctx); err != nil {
		m.log.Warn(ctx, "backend logout failed, clearing local session anyway", "error", err)
	}
	m.ForceLogout(ctx)
	return nil
}

// ForceLogout clears the local session without calling the backend. Used by
// the request authorizer when the backend reports the credential invalid.
func (m *Manager) ForceLogout(ctx context.Context) {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.log.Warn(ctx, "clearing stored session", "error", err)
	}
	m.notify(nil)
}

// Refresh swaps the stored credential for a fresh one. The profile is not
// touched. On failure the existing session survives unchanged.
func (m *Manager) Refresh(ctx context.Context) error {
	resp, err := m.backend.Refresh(ctx)
	if err != nil {
		m.log.Warn(ctx, "refresh request failed", "error", err)
		return &Error{Message: err.Error()}
	}
	if !resp.Success || resp.Token == "" {
		msg := resp.Message
		if msg == "" {
			msg = "token refresh rejected"
		}
		return &Error{Message: msg}
	}

	m.mu.Lock()
	m.token = resp.Token
	user := m.user
	m.mu.Unlock()

	if user != nil {
		if err := m.store.Save(resp.Token, user); err != nil {
			m.log.Warn(ctx, "persisting refreshed session", "error", err)
		}
	}
	return nil
}

// IsAuthenticated reports whether a credential is present and unexpired.
// It must be consulted on every access decision, never cached.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	tok := m.token
	m.mu.Unlock()
	return tok != "" && !token.IsExpired(tok, m.now())
}

// CurrentUser returns the latest known profile, independent of credential
// expiry. May be nil when anonymous.
func (m *Manager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Token returns the current raw credential, or "" when anonymous.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Subscribe registers fn to be called synchronously on every profile change.
// The current value is replayed immediately so late subscribers do not wait
// for the next change. The returned function removes the subscription.
func (m *Manager) Subscribe(fn func(*models.User)) func() {
	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.subMu.Unlock()

	fn(m.CurrentUser())

	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

func (m *Manager) notify(user *models.User) {
	m.subMu.Lock()
	fns := make([]func(*models.User), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		fn(user)
	}
}
