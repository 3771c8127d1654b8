package tui

import (
	"net/url"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/paging"
	"github.com/mmcdole/reel/internal/route"
	"github.com/mmcdole/reel/internal/tui/components"
)

// handleKeyMsg routes a key press. Modals take precedence over the screen.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.State {
	case StateHelp:
		if key.Matches(msg, Keys.Help) || key.Matches(msg, Keys.Back) || key.Matches(msg, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil
	case StateConfirmLogout:
		switch {
		case key.Matches(msg, Keys.Confirm):
			m.State = StateBrowsing
			return m, LogoutCmd(m.svc.Auth)
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
		}
		return m, nil
	}

	if m.SearchModal.IsVisible() {
		return m.handleSearchModal(msg)
	}
	if m.GenrePicker.IsVisible() {
		return m.handleGenrePicker(msg)
	}

	switch m.Current().Pattern {
	case route.Login, route.Register:
		return m.handleAuthKeys(msg)
	}

	// An open filter input gets every key
	if l := m.activeList(); l != nil && l.IsFilterTyping() {
		cmd := l.Update(msg)
		return m, cmd
	}

	if model, cmd, handled := m.handleGlobalKeys(msg); handled {
		return model, cmd
	}
	if model, cmd, handled := m.handleScreenKeys(msg); handled {
		return model, cmd
	}

	if m.Current().Pattern == route.Details && m.detailsFocus == 0 {
		var cmd tea.Cmd
		m.Details, cmd = m.Details.Update(msg)
		return m, cmd
	}

	l := m.activeList()
	if l == nil {
		return m, nil
	}
	cmd := l.Update(msg)
	return m, tea.Batch(cmd, m.maybeLoadMore())
}

func (m Model) handleSearchModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var submitted bool
	m.SearchModal, cmd, submitted = m.SearchModal.Update(msg)
	if !submitted {
		return m, cmd
	}

	query := m.SearchModal.Value()
	m.SearchModal.Hide()
	if query == "" {
		return m, nil
	}

	// the list editor searches in place
	if m.Current().Pattern == route.CreateList {
		l := m.lists[ListSearch]
		l.Reset()
		l.SetState(paging.State[domain.Movie]{Status: paging.Loading})
		l.SetTitle("Results for \"" + query + "\"")
		return m, SearchCmd(m.svc.Search, query)
	}

	r := route.To(route.Search)
	r.Query = url.Values{"q": {query}}
	if m.Current().Pattern == route.Search || m.Current().Pattern == route.Browse {
		return m, m.replace(r)
	}
	return m, m.navigate(r)
}

func (m Model) handleGenrePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var selected bool
	m.GenrePicker, cmd, selected = m.GenrePicker.Update(msg)
	if !selected {
		return m, cmd
	}
	genre, ok := m.GenrePicker.Selected()
	m.GenrePicker.Hide()
	if !ok {
		return m, nil
	}
	return m, m.navigate(route.ToCategory(genre))
}

func (m Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	register := m.Current().Pattern == route.Register

	switch {
	case msg.String() == "esc":
		m.deviceCode = nil
		return m, m.back()
	case key.Matches(msg, Keys.SwitchScreen):
		m.deviceCode = nil
		if register {
			return m, m.replace(route.To(route.Login))
		}
		return m, m.replace(route.To(route.Register))
	case key.Matches(msg, Keys.Google) && !register:
		if m.authBusy {
			return m, nil
		}
		if m.svc.Google == nil || !m.svc.Google.Enabled() {
			return m, m.setStatus("Google sign-in is not configured", true)
		}
		m.authBusy = true
		return m, StartDeviceFlowCmd(m.svc.Google)
	case key.Matches(msg, Keys.Submit):
		return m.submitAuth()
	}

	var cmd tea.Cmd
	var submitted bool
	if register {
		m.RegisterForm, cmd, submitted = m.RegisterForm.Update(msg)
	} else {
		m.LoginForm, cmd, submitted = m.LoginForm.Update(msg)
	}
	if submitted {
		return m.submitAuth()
	}
	return m, cmd
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	if m.authBusy {
		return m, nil
	}
	m.authBusy = true

	if m.Current().Pattern == route.Register {
		f := m.RegisterForm
		return m, RegisterCmd(m.svc.Auth,
			f.Value(components.FieldUsername),
			f.Value(components.FieldEmail),
			f.Value(components.FieldPassword),
			f.Value(components.FieldConfirm))
	}
	f := m.LoginForm
	return m, LoginCmd(m.svc.Auth, f.Value(components.FieldUsername), f.Value(components.FieldPassword))
}

// handleGlobalKeys handles keys that work on every browsing screen
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit, true

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil, true

	case key.Matches(msg, Keys.Back):
		if l := m.activeList(); l != nil && l.IsFiltering() {
			l.ClearFilter()
			return m, nil, true
		}
		if m.Current().Pattern == route.Details && m.detailsFocus == 1 {
			m.detailsFocus = 0
			m.focusActive()
			return m, nil, true
		}
		return m, m.back(), true

	case key.Matches(msg, Keys.Home):
		if m.Current().Pattern == route.Home {
			return m, nil, true
		}
		m.history = []route.Route{route.To(route.Home)}
		return m, m.enter(m.Current()), true

	case key.Matches(msg, Keys.Profile):
		if m.Current().Pattern == route.Profile {
			return m, nil, true
		}
		if !m.loggedIn() {
			return m, m.navigate(route.To(route.Login)), true
		}
		return m, m.navigate(route.To(route.Profile)), true

	case key.Matches(msg, Keys.Search):
		m.SearchModal.Show("Search movies", "title...", m.svc.Search.Query())
		return m, nil, true

	case key.Matches(msg, Keys.Genres) && m.Current().Pattern != route.Details:
		m.GenrePicker.Show()
		return m, nil, true

	case key.Matches(msg, Keys.Filter):
		if l := m.activeList(); l != nil {
			l.ToggleFilter()
		}
		return m, nil, true

	case key.Matches(msg, Keys.Refresh):
		if m.Current().Pattern == route.Details {
			return m, m.enter(m.Current()), true
		}
		id := m.activeListID()
		if id < 0 {
			return m, nil, true
		}
		return m, m.startRefresh(id), true

	case key.Matches(msg, Keys.Logout):
		if !m.loggedIn() {
			return m, m.setStatus("Not logged in", false), true
		}
		m.State = StateConfirmLogout
		return m, nil, true
	}
	return m, nil, false
}

// handleScreenKeys handles keys whose meaning depends on the screen
func (m Model) handleScreenKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	pattern := m.Current().Pattern

	switch {
	case key.Matches(msg, Keys.NextTab), key.Matches(msg, Keys.PrevTab):
		delta := 1
		if key.Matches(msg, Keys.PrevTab) {
			delta = -1
		}
		return m, m.switchTab(delta), true

	case key.Matches(msg, Keys.Enter):
		if pattern == route.Details && m.detailsFocus == 0 {
			return m, nil, false
		}
		movie, ok := m.selectedMovie()
		if !ok {
			return m, nil, true
		}
		return m, m.navigate(route.ToDetails(movie.ID)), true

	case key.Matches(msg, Keys.Watchlist):
		return m, m.toggle(domain.ListWatchLater), true

	case key.Matches(msg, Keys.Favorite):
		return m, m.toggle(domain.ListLiked), true

	case key.Matches(msg, Keys.Remove) && pattern == route.Profile:
		movie, ok := m.selectedMovie()
		if !ok {
			return m, nil, true
		}
		kind := domain.ListWatchLater
		if profileTabs[m.profileTab] == ListFavorites {
			kind = domain.ListLiked
		}
		return m, ToggleListCmd(m.svc.Profile, kind, movie), true

	case key.Matches(msg, Keys.Open):
		movie, ok := m.selectedMovie()
		if !ok || movie.MovieURL == "" {
			return m, m.setStatus("No link for this movie", true), true
		}
		return m, OpenBrowserCmd(m.svc.Browser, movie.MovieURL), true

	case key.Matches(msg, Keys.EditLists) && pattern == route.Profile:
		return m, m.navigate(route.ToCreateList(m.svc.Profile.Session().Username)), true

	case key.Matches(msg, Keys.Genres) && pattern == route.Details:
		if !m.Details.HasMovie() {
			return m, nil, true
		}
		m.GenrePicker.ShowGenres(nonEmpty(m.Details.Movie().Genres()))
		return m, nil, true
	}
	return m, nil, false
}

// switchTab cycles the tabs of the home and profile screens, or moves focus
// between a movie and its similar list
func (m *Model) switchTab(delta int) tea.Cmd {
	switch m.Current().Pattern {
	case route.Home:
		m.homeTab = (m.homeTab + delta + len(homeTabs)) % len(homeTabs)
		if homeTabs[m.homeTab] == ListRecommended && !m.loggedIn() {
			m.focusActive()
			return m.setStatus("Log in to get recommendations", false)
		}
	case route.Profile:
		m.profileTab = (m.profileTab + delta + len(profileTabs)) % len(profileTabs)
	case route.Details:
		m.detailsFocus = 1 - m.detailsFocus
	default:
		return nil
	}
	m.focusActive()
	return m.maybeLoadMore()
}

// selectedMovie returns the movie the screen's actions apply to
func (m Model) selectedMovie() (domain.Movie, bool) {
	if m.Current().Pattern == route.Details && m.detailsFocus == 0 {
		if m.Details.HasMovie() {
			return m.Details.Movie(), true
		}
		return domain.Movie{}, false
	}
	l := m.activeList()
	if l == nil {
		return domain.Movie{}, false
	}
	return l.Selected()
}

func (m *Model) toggle(kind domain.ListKind) tea.Cmd {
	if !m.loggedIn() {
		return m.setStatus("Log in to keep a "+listLabel(kind), false)
	}
	movie, ok := m.selectedMovie()
	if !ok {
		return nil
	}
	return ToggleListCmd(m.svc.Profile, kind, movie)
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
