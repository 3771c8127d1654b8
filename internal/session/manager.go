// Package session owns the signed-in user's credentials. The Manager is the
// only place that reads or writes them; everything else asks it.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mmcdole/reel/internal/domain"
)

// Persister is the durable backing of a Manager
type Persister interface {
	SaveSession(s domain.Session) error
	LoadSession() domain.Session
	ClearSession() error
}

// Manager holds the current session in memory and mirrors every change to
// the Persister.
type Manager struct {
	mu      sync.RWMutex
	store   Persister
	current domain.Session
	subs    []chan domain.Session
	logger  *slog.Logger
}

// NewManager loads the persisted session once
func NewManager(store Persister, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		store:   store,
		current: store.LoadSession(),
		logger:  logger,
	}
	if m.current.Valid() {
		logger.Info("restored session", "username", m.current.Username)
	}
	return m
}

// Current returns a copy of the session
func (m *Manager) Current() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// LoggedIn reports whether a usable session exists
func (m *Manager) LoggedIn() bool {
	return m.Current().Valid()
}

// Username returns the signed-in username or ""
func (m *Manager) Username() string {
	return m.Current().Username
}

// BearerToken returns the access token for authenticated requests
func (m *Manager) BearerToken() (string, error) {
	token := m.Current().AccessToken
	if token == "" {
		return "", domain.ErrNotLoggedIn
	}
	return token, nil
}

// Save persists s and makes it current
func (m *Manager) Save(s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.SaveSession(s); err != nil {
		m.logger.Error("failed to save session", "error", err)
		return err
	}
	m.current = s
	m.logger.Info("session saved", "username", s.Username)
	m.notify(s)
	return nil
}

// Invalidate forgets the session in memory and on disk. The in-memory copy
// is cleared even if the store fails.
func (m *Manager) Invalidate() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = domain.Session{}
	err := m.store.ClearSession()
	if err != nil {
		m.logger.Error("failed to clear session", "error", err)
	} else {
		m.logger.Info("session cleared")
	}
	m.notify(domain.Session{})
	return err
}

// Subscribe returns a channel that receives the session after every change.
// Slow readers only see the latest value.
func (m *Manager) Subscribe() <-chan domain.Session {
	ch := make(chan domain.Session, 1)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}

// notify runs under m.mu so subscribers see changes in the order they were
// made. Sends never block.
func (m *Manager) notify(s domain.Session) {
	for _, ch := range m.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s:
		default:
		}
	}
}

// Expiry returns the exp claim of the access token. The signature is not
// checked; the server does that.
func (m *Manager) Expiry() (time.Time, bool) {
	token := m.Current().AccessToken
	if token == "" {
		return time.Time{}, false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		m.logger.Debug("access token is not a JWT", "error", err)
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Expired reports whether the access token's exp claim lies before now.
// Tokens without a readable expiry never count as expired.
func (m *Manager) Expired(now time.Time) bool {
	exp, ok := m.Expiry()
	return ok && now.After(exp)
}
