package tui

import (
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/paging"
	"github.com/mmcdole/reel/internal/viewmodel"
	"golang.org/x/oauth2"
)

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	msg := domain.UserMessage(e.Err)
	if e.Context != "" {
		return e.Context + ": " + msg
	}
	return msg
}

// ListID names each paged list on screen
type ListID int

const (
	ListTopRated ListID = iota
	ListLatest
	ListRecommended
	ListSearch
	ListCategory
	ListWatchlist
	ListFavorites
	ListSimilar
)

// ListLoadedMsg carries a new snapshot of one list. Err is set when the load
// failed; State then holds the Error state.
type ListLoadedMsg struct {
	List  ListID
	State paging.State[domain.Movie]
	Err   error
}

// AuthResultMsg signals that a login, registration or logout finished
type AuthResultMsg struct {
	State viewmodel.AuthState
	Form  viewmodel.Form
}

// SessionChangedMsg carries the session after a login, logout or expiry
type SessionChangedMsg struct {
	Session domain.Session
}

// DeviceCodeMsg carries the code the user enters on another device
type DeviceCodeMsg struct {
	Auth *oauth2.DeviceAuthResponse
}

// GoogleTokenMsg signals that the device flow produced an ID token
type GoogleTokenMsg struct {
	IDToken string
}

// DetailsLoadedMsg carries the details screen snapshot
type DetailsLoadedMsg struct {
	State viewmodel.DetailsState
}

// ProfileLoadedMsg signals that both user lists were fetched
type ProfileLoadedMsg struct {
	Err error
}

// ListToggledMsg signals that a movie was added to or removed from a list
type ListToggledMsg struct {
	Kind    domain.ListKind
	MovieID int64
	Title   string
	Added   bool
	State   paging.State[domain.Movie]
}

// BrowserOpenedMsg signals that the movie page was handed to the browser
type BrowserOpenedMsg struct {
	URL string
}

// StatusMsg displays a status message in the footer
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the footer status
type ClearStatusMsg struct{}
