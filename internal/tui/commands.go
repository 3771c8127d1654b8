package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/paging"
	"github.com/mmcdole/reel/internal/viewmodel"
	"golang.org/x/oauth2"
)

// Command factories for async operations

const (
	requestTimeout = 30 * time.Second
	deviceTimeout  = 10 * time.Minute
)

type loadFunc func(ctx context.Context) (paging.State[domain.Movie], error)

// pageCmd runs one list load. Loads the pager refused to start or whose
// result was superseded produce no message.
func pageCmd(id ListID, load loadFunc) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		state, err := load(ctx)
		if paging.Skipped(err) {
			return nil
		}
		return ListLoadedMsg{List: id, State: state, Err: err}
	}
}

// RefreshPagerCmd loads the first page of a pager
func RefreshPagerCmd(id ListID, p *paging.Pager[domain.Movie]) tea.Cmd {
	return pageCmd(id, func(ctx context.Context) (paging.State[domain.Movie], error) {
		return p.Refresh(ctx, p.Query())
	})
}

// LoadMorePagerCmd loads the next page of a pager
func LoadMorePagerCmd(id ListID, p *paging.Pager[domain.Movie]) tea.Cmd {
	return pageCmd(id, p.LoadMore)
}

// RecommendationsCmd reloads the personal recommendations
func RecommendationsCmd(recs *viewmodel.Recommendations) tea.Cmd {
	return pageCmd(ListRecommended, recs.Refresh)
}

// RecommendationsMoreCmd extends the recommendations by one favorite
func RecommendationsMoreCmd(recs *viewmodel.Recommendations) tea.Cmd {
	return pageCmd(ListRecommended, recs.LoadMore)
}

// SearchCmd starts a title search
func SearchCmd(search *viewmodel.Search, query string) tea.Cmd {
	return pageCmd(ListSearch, func(ctx context.Context) (paging.State[domain.Movie], error) {
		return search.Search(ctx, query)
	})
}

// SearchMoreCmd loads the next page of search results
func SearchMoreCmd(search *viewmodel.Search) tea.Cmd {
	return pageCmd(ListSearch, search.LoadMore)
}

// CategoryCmd opens a genre
func CategoryCmd(category *viewmodel.Category, genre string) tea.Cmd {
	return pageCmd(ListCategory, func(ctx context.Context) (paging.State[domain.Movie], error) {
		return category.Open(ctx, genre)
	})
}

// CategoryMoreCmd loads the next page of a genre
func CategoryMoreCmd(category *viewmodel.Category) tea.Cmd {
	return pageCmd(ListCategory, category.LoadMore)
}

// LoadProfileCmd fetches the watchlist and favorites
func LoadProfileCmd(profile *viewmodel.Profile) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return ProfileLoadedMsg{Err: profile.Load(ctx)}
	}
}

// ToggleListCmd adds movie to the list or removes it when already there
func ToggleListCmd(profile *viewmodel.Profile, kind domain.ListKind, movie domain.Movie) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		wasOn := profile.Contains(kind, movie.ID)
		state, err := profile.Toggle(ctx, kind, movie.ID)
		if err != nil {
			return ErrMsg{Err: err, Context: "updating " + kind.String()}
		}
		return ListToggledMsg{Kind: kind, MovieID: movie.ID, Title: movie.Title, Added: !wasOn, State: state}
	}
}

// LoadDetailsCmd loads one movie and its similar movies
func LoadDetailsCmd(details *viewmodel.Details, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		// failures are carried in the state
		state, _ := details.Open(ctx, id)
		return DetailsLoadedMsg{State: state}
	}
}

// LoginCmd signs in with a username and password
func LoginCmd(auth *viewmodel.Auth, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		auth.SetUsername(username)
		auth.SetPassword(password)
		state := auth.Login(ctx)
		return AuthResultMsg{State: state, Form: auth.Form()}
	}
}

// RegisterCmd creates an account
func RegisterCmd(auth *viewmodel.Auth, username, email, password, confirm string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		auth.SetUsername(username)
		auth.SetEmail(email)
		auth.SetPassword(password)
		auth.SetConfirm(confirm)
		state := auth.Register(ctx)
		return AuthResultMsg{State: state, Form: auth.Form()}
	}
}

// LogoutCmd revokes the session
func LogoutCmd(auth *viewmodel.Auth) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return AuthResultMsg{State: auth.Logout(ctx)}
	}
}

// GoogleLoginCmd exchanges a Google ID token for a session
func GoogleLoginCmd(auth *viewmodel.Auth, idToken string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return AuthResultMsg{State: auth.LoginWithGoogle(ctx, idToken)}
	}
}

// StartDeviceFlowCmd asks Google for a device code
func StartDeviceFlowCmd(google DeviceAuthorizer) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		resp, err := google.Start(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "google sign-in"}
		}
		return DeviceCodeMsg{Auth: resp}
	}
}

// WaitDeviceFlowCmd polls until the user approved the device code
func WaitDeviceFlowCmd(google DeviceAuthorizer, resp *oauth2.DeviceAuthResponse) tea.Cmd {
	return func() tea.Msg {
		deadline := time.Now().Add(deviceTimeout)
		if !resp.Expiry.IsZero() {
			deadline = resp.Expiry
		}
		ctx, cancel := context.WithDeadline(context.Background(), deadline)
		defer cancel()

		idToken, err := google.Wait(ctx, resp)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				err = errors.New("the code expired")
			}
			return ErrMsg{Err: err, Context: "google sign-in"}
		}
		return GoogleTokenMsg{IDToken: idToken}
	}
}

// OpenBrowserCmd shows the movie page in the browser
func OpenBrowserCmd(browser Opener, url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return ErrMsg{Err: err, Context: "opening browser"}
		}
		return BrowserOpenedMsg{URL: url}
	}
}

// WatchSessionCmd waits for the next session change
func WatchSessionCmd(ch <-chan domain.Session) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return SessionChangedMsg{Session: s}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
