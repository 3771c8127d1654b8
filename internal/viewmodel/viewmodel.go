// Package viewmodel holds one controller per screen. Controllers own their
// state, call the repositories and publish new state snapshots. Every
// method blocks until its remote calls finish, so the UI runs them off its
// event loop.
package viewmodel

import (
	"github.com/mmcdole/reel/internal/domain"
)

// SessionStore is the session the controllers read and update
type SessionStore interface {
	Current() domain.Session
	Username() string
	LoggedIn() bool
	Save(s domain.Session) error
	Invalidate() error
}
