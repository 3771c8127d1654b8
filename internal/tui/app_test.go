package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/paging"
	"github.com/mmcdole/reel/internal/route"
	"github.com/mmcdole/reel/internal/session"
	"github.com/mmcdole/reel/internal/store"
	"github.com/mmcdole/reel/internal/viewmodel"
)

// catalog serves a few movies on the first page of every listing and
// nothing after it
type catalog struct {
	mu    sync.Mutex
	lists map[domain.ListKind][]domain.Movie
	pages []int
}

func newCatalog() *catalog {
	return &catalog{lists: make(map[domain.ListKind][]domain.Movie)}
}

func film(id int64) domain.Movie {
	return domain.Movie{ID: id, Title: fmt.Sprintf("Film %d", id), RawGenres: "Drama|Crime", MovieURL: "https://example.com"}
}

func (c *catalog) page(page int) (domain.Page[domain.Movie], error) {
	c.mu.Lock()
	c.pages = append(c.pages, page)
	c.mu.Unlock()
	if page > 0 {
		return domain.Page[domain.Movie]{Number: page, Last: true, Empty: true}, nil
	}
	return domain.Page[domain.Movie]{Content: []domain.Movie{film(1), film(2), film(3)}}, nil
}

func (c *catalog) Login(_ context.Context, creds domain.Credentials) (domain.Session, error) {
	return domain.Session{AccessToken: "access", RefreshToken: "refresh", Username: creds.Username}, nil
}

func (c *catalog) Register(context.Context, domain.Registration) (string, error) { return "ok", nil }
func (c *catalog) Logout(context.Context, string) error                        { return nil }
func (c *catalog) LoginWithGoogle(context.Context, string) (domain.Session, error) {
	return domain.Session{AccessToken: "access", Username: "google"}, nil
}

func (c *catalog) Browse(_ context.Context, page int) (domain.Page[domain.Movie], error) {
	return c.page(page)
}

func (c *catalog) TopRated(_ context.Context, page int) (domain.Page[domain.Movie], error) {
	return c.page(page)
}

func (c *catalog) MovieByID(_ context.Context, id int64) (domain.Movie, error) {
	return film(id), nil
}

func (c *catalog) MovieByTitle(context.Context, string) (domain.Movie, error) {
	return domain.Movie{}, domain.ErrNotFound
}

func (c *catalog) MoviesByTitles(context.Context, []string) ([]domain.Movie, error) {
	return nil, nil
}

func (c *catalog) SearchByTitle(_ context.Context, _ string, page int) (domain.Page[domain.Movie], error) {
	return c.page(page)
}

func (c *catalog) MoviesByGenre(_ context.Context, _ string, page int) (domain.Page[domain.Movie], error) {
	return c.page(page)
}

func (c *catalog) List(_ context.Context, kind domain.ListKind, _ string) ([]domain.Movie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Movie(nil), c.lists[kind]...), nil
}

func (c *catalog) Add(_ context.Context, kind domain.ListKind, _ string, id int64) (domain.Movie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[kind] = append(c.lists[kind], film(id))
	return film(id), nil
}

func (c *catalog) Remove(_ context.Context, kind domain.ListKind, _ string, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.lists[kind][:0]
	for _, m := range c.lists[kind] {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	c.lists[kind] = kept
	return nil
}

func (c *catalog) Similar(_ context.Context, id int64) ([]domain.Movie, error) {
	return []domain.Movie{film(id + 100)}, nil
}

func newTestModel(t *testing.T, loggedIn bool) (Model, *catalog) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.NewStore("")
	require.NoError(t, err)
	if loggedIn {
		require.NoError(t, st.SaveSession(domain.Session{AccessToken: "access", RefreshToken: "refresh", Username: "neo"}))
	}
	sessions := session.NewManager(st, logger)

	c := newCatalog()
	opts := []paging.Option{paging.WithLogger(logger)}
	m := NewModel(Services{
		Auth:            viewmodel.NewAuth(c, sessions, logger),
		Home:            viewmodel.NewHome(c, opts...),
		Recommendations: viewmodel.NewRecommendations(c, c, sessions, logger, opts...),
		Search:          viewmodel.NewSearch(c, opts...),
		Category:        viewmodel.NewCategory(c, opts...),
		Profile:         viewmodel.NewProfile(c, sessions, logger),
		Details:         viewmodel.NewDetails(c, c, st, logger),
		Sessions:        sessions,
	})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), c
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyPress(k))
		m = next.(Model)
	}
	return m, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = press(t, m, string(r))
	}
	return m
}

func deliver(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestStartsOnHome(t *testing.T) {
	m, _ := newTestModel(t, false)
	assert.Equal(t, route.Home, m.Current().Pattern)
	assert.NotNil(t, m.Init())
	assert.Equal(t, ListTopRated, m.activeListID())

	view := m.View()
	assert.Contains(t, view, "reel")
	assert.Contains(t, view, "not logged in")
}

func TestLoadedListAsksForNextPage(t *testing.T) {
	m, c := newTestModel(t, false)

	msg := RefreshPagerCmd(ListTopRated, m.svc.Home.TopRated)()
	loaded, ok := msg.(ListLoadedMsg)
	require.True(t, ok)
	require.Equal(t, paging.Loaded, loaded.State.Status)

	// three rows fit on screen, so the end is visible at once
	m, cmd := deliver(t, m, loaded)
	require.NotNil(t, cmd)
	assert.Equal(t, paging.Loading, m.lists[ListTopRated].State().Status)

	more, ok := cmd().(ListLoadedMsg)
	require.True(t, ok)
	m, cmd = deliver(t, m, more)
	assert.Nil(t, cmd, "an empty page must not trigger another load")
	assert.Equal(t, 3, m.lists[ListTopRated].State().Len())
	assert.Equal(t, []int{0, 1}, c.pages)
}

func TestProfileRequiresLogin(t *testing.T) {
	m, _ := newTestModel(t, false)

	m, _ = press(t, m, "p")
	assert.Equal(t, route.Login, m.Current().Pattern)

	m.navigate(route.To(route.Profile))
	assert.Equal(t, route.Login, m.Current().Pattern)
}

func TestLoginOpensProfile(t *testing.T) {
	m, _ := newTestModel(t, false)
	m, _ = press(t, m, "p")

	m = typeText(t, m, "neo")
	m, _ = press(t, m, "tab")
	m = typeText(t, m, "secret")
	m, cmd := press(t, m, "ctrl+s")
	require.NotNil(t, cmd)
	assert.True(t, m.authBusy)

	result, ok := cmd().(AuthResultMsg)
	require.True(t, ok)
	require.Equal(t, viewmodel.LoggedIn, result.State.Status)

	m, _ = deliver(t, m, result)
	assert.Equal(t, route.Profile, m.Current().Pattern)
	assert.False(t, m.authBusy)
	assert.Equal(t, viewmodel.ToastLogin, m.StatusMsg)
	assert.Contains(t, m.View(), "neo")

	// back from the profile lands on home, not on the login form
	m, _ = press(t, m, "esc")
	assert.Equal(t, route.Home, m.Current().Pattern)
}

func TestLoginValidation(t *testing.T) {
	m, _ := newTestModel(t, false)
	m, _ = press(t, m, "p")

	_, cmd := press(t, m, "ctrl+s")
	require.NotNil(t, cmd)
	result := cmd().(AuthResultMsg)
	assert.Equal(t, viewmodel.AuthFailed, result.State.Status)

	m, _ = deliver(t, m, result)
	assert.Equal(t, route.Login, m.Current().Pattern)
	assert.True(t, m.StatusIsErr)
	assert.Contains(t, m.View(), viewmodel.MsgEmptyUsername)
}

func TestSearchModalNavigates(t *testing.T) {
	m, _ := newTestModel(t, false)

	m, _ = press(t, m, "s")
	require.True(t, m.SearchModal.IsVisible())
	m = typeText(t, m, "heat")
	m, cmd := press(t, m, "enter")

	assert.False(t, m.SearchModal.IsVisible())
	assert.Equal(t, route.Search, m.Current().Pattern)
	assert.Equal(t, "heat", m.Current().Query.Get("q"))
	assert.Equal(t, ListSearch, m.activeListID())
	require.NotNil(t, cmd)

	loaded := cmd().(ListLoadedMsg)
	assert.Equal(t, ListSearch, loaded.List)
	m, _ = deliver(t, m, loaded)
	assert.Equal(t, 3, m.lists[ListSearch].State().Len())
	assert.Equal(t, "heat", m.svc.Search.Query())
}

func TestGenrePickerOpensCategory(t *testing.T) {
	m, _ := newTestModel(t, false)

	m, _ = press(t, m, "c")
	require.True(t, m.GenrePicker.IsVisible())
	m = typeText(t, m, "crime")
	m, cmd := press(t, m, "enter")

	assert.Equal(t, route.Category, m.Current().Pattern)
	genre, err := m.Current().Param("category_name")
	require.NoError(t, err)
	assert.Equal(t, "Crime", genre)
	require.NotNil(t, cmd)
	assert.Equal(t, ListCategory, cmd().(ListLoadedMsg).List)
}

func TestOpenDetailsAndBack(t *testing.T) {
	m, _ := newTestModel(t, false)
	m.lists[ListTopRated].SetState(paging.LoadedState([]domain.Movie{film(7)}))

	m, cmd := press(t, m, "enter")
	require.Equal(t, route.Details, m.Current().Pattern)
	id, err := m.Current().Int64("movieId")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	details := cmd().(DetailsLoadedMsg)
	m, _ = deliver(t, m, details)
	require.True(t, m.Details.HasMovie())
	assert.Equal(t, "Film 7", m.Details.Movie().Title)
	assert.Equal(t, 1, m.lists[ListSimilar].State().Len())

	// tab moves to the similar list
	m, _ = press(t, m, "tab")
	assert.Equal(t, ListSimilar, m.activeListID())

	m, _ = press(t, m, "esc")
	assert.Equal(t, route.Details, m.Current().Pattern, "esc first leaves the similar list")
	m, _ = press(t, m, "esc")
	assert.Equal(t, route.Home, m.Current().Pattern)
}

func TestStaleDetailsIgnored(t *testing.T) {
	m, _ := newTestModel(t, false)
	m.navigate(route.ToDetails(1))

	stale := viewmodel.DetailsState{Status: paging.Loaded, MovieID: 2, Movie: film(2)}
	m, _ = deliver(t, m, DetailsLoadedMsg{State: stale})
	assert.False(t, m.Details.HasMovie())
}

func TestToggleRequiresLogin(t *testing.T) {
	m, _ := newTestModel(t, false)
	m.lists[ListTopRated].SetState(paging.LoadedState([]domain.Movie{film(1)}))

	m, _ = press(t, m, "w")
	assert.Contains(t, m.StatusMsg, "Log in")
}

func TestToggleWatchlist(t *testing.T) {
	m, c := newTestModel(t, true)
	m.lists[ListTopRated].SetState(paging.LoadedState([]domain.Movie{film(1)}))

	_, cmd := press(t, m, "w")
	require.NotNil(t, cmd)
	toggled, ok := cmd().(ListToggledMsg)
	require.True(t, ok)
	assert.True(t, toggled.Added)
	assert.Len(t, c.lists[domain.ListWatchLater], 1)

	m, _ = deliver(t, m, toggled)
	assert.Equal(t, 1, m.lists[ListWatchlist].State().Len())
	assert.Equal(t, "◷ ", markerOf(m))
}

// markerOf returns the membership marker of the selected top rated movie
func markerOf(m Model) string {
	sel, _ := m.lists[ListTopRated].Selected()
	return m.membershipMarker(sel)
}

func TestLogoutConfirmation(t *testing.T) {
	m, _ := newTestModel(t, true)
	require.True(t, m.loggedIn())

	m, _ = press(t, m, "L")
	assert.Equal(t, StateConfirmLogout, m.State)
	m, _ = press(t, m, "n")
	assert.Equal(t, StateBrowsing, m.State)

	m, _ = press(t, m, "L")
	m, cmd := press(t, m, "y")
	require.NotNil(t, cmd)
	result := cmd().(AuthResultMsg)
	require.Equal(t, viewmodel.LoggedOut, result.State.Status)

	m, _ = deliver(t, m, result)
	assert.False(t, m.loggedIn())
	assert.Equal(t, route.Home, m.Current().Pattern)

	// the cleared session reaches the model through the subscription
	changed := WatchSessionCmd(m.sessionCh)()
	require.IsType(t, SessionChangedMsg{}, changed)
	m, cmd = deliver(t, m, changed)
	assert.NotNil(t, cmd, "keeps watching")
	assert.Equal(t, paging.Idle, m.lists[ListWatchlist].State().Status)
	assert.Equal(t, paging.Idle, m.lists[ListRecommended].State().Status)
}

func TestSessionChangeResetsUserLists(t *testing.T) {
	m, _ := newTestModel(t, true)
	m.lists[ListWatchlist].SetState(paging.LoadedState([]domain.Movie{{ID: 1, Title: "Heat"}}))

	// logging in from a logged-out state keeps what is loading
	fresh, _ := newTestModel(t, false)
	fresh.lists[ListWatchlist].SetState(paging.State[domain.Movie]{Status: paging.Loading})
	fresh, _ = deliver(t, fresh, SessionChangedMsg{Session: domain.Session{AccessToken: "a", Username: "neo"}})
	assert.Equal(t, paging.Loading, fresh.lists[ListWatchlist].State().Status)

	// a different user replaces the lists
	m, _ = deliver(t, m, SessionChangedMsg{Session: domain.Session{AccessToken: "b", Username: "trinity"}})
	assert.Equal(t, paging.Idle, m.lists[ListWatchlist].State().Status)
	assert.Equal(t, "trinity", m.sessionUser)
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t, false)
	m, _ = press(t, m, "?")
	assert.Equal(t, StateHelp, m.State)
	assert.Contains(t, m.View(), "NAVIGATION")

	m, _ = press(t, m, "?")
	assert.Equal(t, StateBrowsing, m.State)
}

func TestCalculateSplit(t *testing.T) {
	s := calculateSplit(100)
	assert.Equal(t, 60, s.detailsWidth)
	assert.Equal(t, 40, s.similarWidth)

	narrow := calculateSplit(40)
	assert.Equal(t, 40, narrow.detailsWidth)
	assert.Zero(t, narrow.similarWidth)
}
