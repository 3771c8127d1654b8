package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/paging"
	"github.com/mmcdole/reel/internal/route"
	"github.com/mmcdole/reel/internal/tui/components"
)

// navigate pushes r and prepares its screen
func (m *Model) navigate(r route.Route) tea.Cmd {
	if cur := m.Current(); cur.String() == r.String() {
		return m.enter(r)
	}
	m.history = append(m.history, r)
	return m.enter(r)
}

// replace swaps the current screen for r
func (m *Model) replace(r route.Route) tea.Cmd {
	m.history[len(m.history)-1] = r
	return m.enter(r)
}

// back returns to the previous screen without reloading it
func (m *Model) back() tea.Cmd {
	if len(m.history) <= 1 {
		return nil
	}
	m.history = m.history[:len(m.history)-1]
	m.deviceCode = nil
	m.focusActive()
	m.updateLayout()

	// a details screen further down the stack shows another movie now
	if m.Current().Pattern == route.Details {
		return m.enter(m.Current())
	}
	return nil
}

// requireLogin sends signed-out users to the login screen instead of r
func (m *Model) requireLogin(r route.Route) (tea.Cmd, bool) {
	if m.loggedIn() {
		return nil, false
	}
	login := route.To(route.Login)
	m.history[len(m.history)-1] = login
	m.LoginForm.Reset()
	m.focusActive()
	return m.setStatus("Log in to see "+screenTitle(r), false), true
}

// enter prepares the screen for r and starts the loads it needs
func (m *Model) enter(r route.Route) tea.Cmd {
	defer func() {
		m.focusActive()
		m.updateLayout()
	}()

	switch r.Pattern {
	case route.Home:
		var cmds []tea.Cmd
		if m.lists[ListTopRated].State().Status == paging.Idle {
			cmds = append(cmds, m.startRefresh(ListTopRated))
		}
		if m.lists[ListLatest].State().Status == paging.Idle {
			cmds = append(cmds, m.startRefresh(ListLatest))
		}
		if m.loggedIn() {
			if m.lists[ListRecommended].State().Status == paging.Idle {
				cmds = append(cmds, m.startRefresh(ListRecommended))
			}
			if m.svc.Profile.List(domain.ListWatchLater).Status == paging.Idle {
				cmds = append(cmds, LoadProfileCmd(m.svc.Profile))
			}
		}
		return tea.Batch(cmds...)

	case route.Login:
		m.LoginForm.Reset()
		return nil

	case route.Register:
		m.RegisterForm.Reset()
		return nil

	case route.Profile:
		if cmd, redirected := m.requireLogin(r); redirected {
			return cmd
		}
		m.lists[ListWatchlist].SetState(m.svc.Profile.List(domain.ListWatchLater).BeginLoad())
		m.lists[ListFavorites].SetState(m.svc.Profile.List(domain.ListLiked).BeginLoad())
		return LoadProfileCmd(m.svc.Profile)

	case route.CreateList:
		if cmd, redirected := m.requireLogin(r); redirected {
			return cmd
		}
		if m.svc.Search.Query() == "" {
			m.SearchModal.Show("Find movies for your lists", "title...", "")
		}
		return LoadProfileCmd(m.svc.Profile)

	case route.Browse, route.Search:
		query := r.Query.Get("q")
		if query == "" {
			if m.svc.Search.Query() == "" {
				m.SearchModal.Show("Search movies", "title...", "")
			}
			return nil
		}
		if query == m.svc.Search.Query() && m.lists[ListSearch].State().Status != paging.Idle {
			return nil
		}
		m.lists[ListSearch].Reset()
		m.lists[ListSearch].SetState(paging.State[domain.Movie]{Status: paging.Loading})
		m.lists[ListSearch].SetTitle("Results for \"" + query + "\"")
		return SearchCmd(m.svc.Search, query)

	case route.Category:
		genre, err := r.Param("category_name")
		if err != nil {
			return m.setStatus(err.Error(), true)
		}
		m.lists[ListCategory].SetTitle(genre)
		if genre == m.svc.Category.Genre() && m.lists[ListCategory].State().Status != paging.Idle {
			return nil
		}
		m.lists[ListCategory].Reset()
		m.lists[ListCategory].SetState(paging.State[domain.Movie]{Status: paging.Loading})
		return CategoryCmd(m.svc.Category, genre)

	case route.Details:
		id, err := r.Int64("movieId")
		if err != nil {
			return m.setStatus(err.Error(), true)
		}
		m.detailsFocus = 0
		m.Details.Clear()
		m.lists[ListSimilar].Reset()
		m.lists[ListSimilar].SetState(paging.State[domain.Movie]{Status: paging.Loading})
		return LoadDetailsCmd(m.svc.Details, id)
	}
	return nil
}

// activeListID returns the list that receives navigation keys, or -1
func (m Model) activeListID() ListID {
	switch m.Current().Pattern {
	case route.Home:
		return homeTabs[m.homeTab]
	case route.Profile:
		return profileTabs[m.profileTab]
	case route.Search, route.Browse, route.CreateList:
		return ListSearch
	case route.Category:
		return ListCategory
	case route.Details:
		if m.detailsFocus == 1 {
			return ListSimilar
		}
	}
	return -1
}

func (m Model) activeList() *components.MovieList {
	return m.lists[m.activeListID()]
}

// focusActive moves focus to the active list
func (m *Model) focusActive() {
	active := m.activeListID()
	for id, l := range m.lists {
		l.SetFocused(id == active)
	}
	m.Details.SetFocused(m.Current().Pattern == route.Details && m.detailsFocus == 0)
}

// maybeLoadMore asks for the next page when the end of the active list is
// on screen
func (m *Model) maybeLoadMore() tea.Cmd {
	l := m.activeList()
	if l == nil || !l.WantsMore() {
		return nil
	}
	cmd := m.loadMoreCmd(m.activeListID())
	if cmd != nil {
		l.SetState(l.State().BeginLoad())
	}
	return cmd
}

// loadMoreCmd returns the next-page load of a list. Lists that are fetched
// in full have none.
func (m Model) loadMoreCmd(id ListID) tea.Cmd {
	switch id {
	case ListTopRated:
		return LoadMorePagerCmd(id, m.svc.Home.TopRated)
	case ListLatest:
		return LoadMorePagerCmd(id, m.svc.Home.Latest)
	case ListRecommended:
		return RecommendationsMoreCmd(m.svc.Recommendations)
	case ListSearch:
		if m.svc.Search.Query() == "" {
			return nil
		}
		return SearchMoreCmd(m.svc.Search)
	case ListCategory:
		return CategoryMoreCmd(m.svc.Category)
	}
	return nil
}

// startRefresh reloads a list from its first page
func (m *Model) startRefresh(id ListID) tea.Cmd {
	var cmd tea.Cmd
	switch id {
	case ListTopRated:
		cmd = RefreshPagerCmd(id, m.svc.Home.TopRated)
	case ListLatest:
		cmd = RefreshPagerCmd(id, m.svc.Home.Latest)
	case ListRecommended:
		cmd = RecommendationsCmd(m.svc.Recommendations)
	case ListSearch:
		if q := m.svc.Search.Query(); q != "" {
			cmd = SearchCmd(m.svc.Search, q)
		}
	case ListCategory:
		if g := m.svc.Category.Genre(); g != "" {
			cmd = CategoryCmd(m.svc.Category, g)
		}
	case ListWatchlist, ListFavorites:
		cmd = LoadProfileCmd(m.svc.Profile)
	case ListSimilar:
		if id, err := m.Current().Int64("movieId"); err == nil {
			cmd = LoadDetailsCmd(m.svc.Details, id)
		}
	}
	if cmd != nil {
		l := m.lists[id]
		l.Reset()
		l.SetState(paging.State[domain.Movie]{Status: paging.Loading})
	}
	return cmd
}

// screenTitle names a route in the header
func screenTitle(r route.Route) string {
	switch r.Pattern {
	case route.Home:
		return "Home"
	case route.Login:
		return "Log in"
	case route.Register:
		return "Register"
	case route.Profile:
		return "your profile"
	case route.CreateList:
		return "your lists"
	case route.Browse, route.Search:
		return "Search"
	case route.Category:
		if g, err := r.Param("category_name"); err == nil {
			return g
		}
		return "Category"
	case route.Details:
		return "Details"
	}
	return r.Pattern
}
