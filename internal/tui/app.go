package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/paging"
	"github.com/mmcdole/reel/internal/route"
	"github.com/mmcdole/reel/internal/tui/components"
	"github.com/mmcdole/reel/internal/tui/styles"
	"github.com/mmcdole/reel/internal/viewmodel"
	"golang.org/x/oauth2"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateConfirmLogout
)

// Opener shows a URL outside the terminal
type Opener interface {
	Open(url string) error
}

// DeviceAuthorizer runs the Google device sign-in
type DeviceAuthorizer interface {
	Enabled() bool
	Start(ctx context.Context) (*oauth2.DeviceAuthResponse, error)
	Wait(ctx context.Context, resp *oauth2.DeviceAuthResponse) (string, error)
}

// Services bundles the controllers the screens drive
type Services struct {
	Auth            *viewmodel.Auth
	Home            *viewmodel.Home
	Recommendations *viewmodel.Recommendations
	Search          *viewmodel.Search
	Category        *viewmodel.Category
	Profile         *viewmodel.Profile
	Details         *viewmodel.Details
	Browser         Opener
	Google          DeviceAuthorizer
	Sessions        SessionWatcher
}

// SessionWatcher publishes every change of the signed-in session
type SessionWatcher interface {
	Subscribe() <-chan domain.Session
}

// Tabs of the tabbed screens
var (
	homeTabs    = []ListID{ListTopRated, ListLatest, ListRecommended}
	profileTabs = []ListID{ListWatchlist, ListFavorites}
)

var listTitles = map[ListID]string{
	ListTopRated:    "Top rated",
	ListLatest:      "New",
	ListRecommended: "For you",
	ListSearch:      "Results",
	ListCategory:    "Category",
	ListWatchlist:   "Watchlist",
	ListFavorites:   "Favorites",
	ListSimilar:     "Similar movies",
}

// Layout
const (
	HeaderHeight = 1
	FooterHeight = 1
	TabsHeight   = 1

	DetailsPercent = 60
	MinColumnWidth = 24
)

const (
	statusDelay = 3 * time.Second
	errorDelay  = 5 * time.Second
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	svc     Services
	history []route.Route

	// UI Components
	lists        map[ListID]*components.MovieList
	Details      components.MovieDetails
	LoginForm    components.AuthForm
	RegisterForm components.AuthForm
	SearchModal  components.SearchPrompt
	GenrePicker  components.GenrePicker
	Spinner      spinner.Model

	homeTab      int
	profileTab   int
	detailsFocus int // 0 is the movie, 1 the similar list

	// Google device sign-in in progress
	deviceCode *oauth2.DeviceAuthResponse
	authBusy   bool

	sessionCh   <-chan domain.Session
	sessionUser string // whose lists are on screen

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
}

// NewModel creates a new application model
func NewModel(svc Services) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Spinner{Frames: styles.SpinnerFrames, FPS: 80 * time.Millisecond}
	sp.Style = styles.SpinnerStyle

	m := Model{
		State:        StateBrowsing,
		svc:          svc,
		history:      []route.Route{route.To(route.Home)},
		lists:        make(map[ListID]*components.MovieList, len(listTitles)),
		Details:      components.NewMovieDetails(),
		LoginForm:    components.NewAuthForm(components.FormLogin),
		RegisterForm: components.NewAuthForm(components.FormRegister),
		SearchModal:  components.NewSearchPrompt(),
		GenrePicker:  components.NewGenrePicker(svc.Home.Genres()),
		Spinner:      sp,
		sessionUser:  svc.Profile.Session().Username,
	}
	if svc.Sessions != nil {
		m.sessionCh = svc.Sessions.Subscribe()
	}
	for id, title := range listTitles {
		l := components.NewMovieList(title)
		l.SetMarker(m.membershipMarker)
		m.lists[id] = l
	}
	m.focusActive()
	return m
}

// Init loads the home screen
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, m.enter(m.Current()), WatchSessionCmd(m.sessionCh))
}

// Current returns the route on screen
func (m Model) Current() route.Route {
	return m.history[len(m.history)-1]
}

func (m Model) loggedIn() bool {
	return m.svc.Auth.State().Status == viewmodel.LoggedIn
}

// membershipMarker shows which user lists hold a movie
func (m Model) membershipMarker(movie domain.Movie) string {
	w, f := " ", " "
	if m.svc.Profile.Contains(domain.ListWatchLater, movie.ID) {
		w = styles.WatchlistChar
	}
	if m.svc.Profile.Contains(domain.ListLiked, movie.ID) {
		f = styles.FavoriteChar
	}
	return w + f
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, m.maybeLoadMore()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		for _, l := range m.lists {
			l.SetSpinner(m.Spinner.View())
		}
		return m, cmd

	case ListLoadedMsg:
		m.lists[msg.List].SetState(msg.State)
		var cmds []tea.Cmd
		if msg.Err != nil && domain.KindOf(msg.Err) != domain.KindCanceled {
			cmds = append(cmds, m.setStatus(ErrMsg{Err: msg.Err, Context: "loading " + listTitles[msg.List]}.Error(), true))
		}
		if msg.List == m.activeListID() {
			cmds = append(cmds, m.maybeLoadMore())
		}
		return m, tea.Batch(cmds...)

	case ProfileLoadedMsg:
		m.syncProfileLists()
		if msg.Err != nil {
			return m, m.setStatus(ErrMsg{Err: msg.Err, Context: "loading lists"}.Error(), true)
		}
		return m, nil

	case ListToggledMsg:
		m.syncProfileLists()
		verb, prep := "Removed", "from"
		if msg.Added {
			verb, prep = "Added", "to"
		}
		cmds := []tea.Cmd{m.setStatus(verb+" "+msg.Title+" "+prep+" "+listLabel(msg.Kind), false)}
		if msg.Kind == domain.ListLiked && m.lists[ListRecommended].State().Status != paging.Idle {
			cmds = append(cmds, RecommendationsCmd(m.svc.Recommendations))
		}
		return m, tea.Batch(cmds...)

	case DetailsLoadedMsg:
		id, err := m.Current().Int64("movieId")
		if m.Current().Pattern != route.Details || err != nil || id != msg.State.MovieID {
			return m, nil
		}
		m.applyDetails(msg.State)
		if msg.State.Status == paging.Error {
			return m, m.setStatus(msg.State.Message, true)
		}
		return m, nil

	case AuthResultMsg:
		return m.handleAuthResult(msg)

	case SessionChangedMsg:
		prev := m.sessionUser
		m.sessionUser = msg.Session.Username
		if prev != "" && prev != m.sessionUser {
			m.resetUserLists()
		}
		return m, WatchSessionCmd(m.sessionCh)

	case DeviceCodeMsg:
		m.deviceCode = msg.Auth
		slog.Info("device code issued", "verification_uri", msg.Auth.VerificationURI)
		return m, WaitDeviceFlowCmd(m.svc.Google, msg.Auth)

	case GoogleTokenMsg:
		m.deviceCode = nil
		return m, GoogleLoginCmd(m.svc.Auth, msg.IDToken)

	case BrowserOpenedMsg:
		return m, m.setStatus("Opened "+msg.URL, false)

	case ErrMsg:
		m.authBusy = false
		m.deviceCode = nil
		return m, m.setStatus(msg.Error(), true)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// setStatus shows a footer message and schedules its removal
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	if isErr {
		return ClearStatusCmd(errorDelay)
	}
	return ClearStatusCmd(statusDelay)
}

func (m Model) handleAuthResult(msg AuthResultMsg) (tea.Model, tea.Cmd) {
	m.authBusy = false
	st := msg.State

	switch st.Status {
	case viewmodel.LoggedIn:
		m.LoginForm.Reset()
		cmd := m.setStatus(st.Toast, false)
		m.history = []route.Route{route.To(route.Home)}
		return m, tea.Batch(cmd, m.navigate(route.To(route.Profile)), RecommendationsCmd(m.svc.Recommendations))

	case viewmodel.RegistrationSuccess:
		m.RegisterForm.Reset()
		cmd := m.setStatus(st.Toast, false)
		return m, tea.Batch(cmd, m.replace(route.To(route.Login)))

	case viewmodel.LoggedOut:
		m.State = StateBrowsing
		m.history = []route.Route{route.To(route.Home)}
		m.homeTab = 0
		m.focusActive()
		return m, m.setStatus(st.Toast, false)

	case viewmodel.AuthFailed:
		form := &m.LoginForm
		if m.Current().Pattern == route.Register {
			form = &m.RegisterForm
			form.SetError(components.FieldEmail, msg.Form.Email.Err)
			form.SetError(components.FieldConfirm, msg.Form.Confirm.Err)
		}
		form.SetError(components.FieldUsername, msg.Form.Username.Err)
		form.SetError(components.FieldPassword, msg.Form.Password.Err)
		m.svc.Auth.DismissError()
		return m, m.setStatus(st.Message, true)
	}
	return m, nil
}

// resetUserLists drops everything that belonged to the previous user
func (m *Model) resetUserLists() {
	m.svc.Profile.Clear()
	m.svc.Recommendations.Reset()
	for _, id := range []ListID{ListWatchlist, ListFavorites, ListRecommended} {
		m.lists[id].Reset()
	}
	if m.Details.HasMovie() {
		m.Details.SetMembership(m.membership(m.Details.Movie().ID))
	}
}

// syncProfileLists copies the profile controller's lists into the view
func (m *Model) syncProfileLists() {
	m.lists[ListWatchlist].SetState(m.svc.Profile.List(domain.ListWatchLater))
	m.lists[ListFavorites].SetState(m.svc.Profile.List(domain.ListLiked))
	if m.Details.HasMovie() {
		m.Details.SetMembership(m.membership(m.Details.Movie().ID))
	}
}

func (m Model) membership(id int64) components.Membership {
	return components.Membership{
		LoggedIn:  m.loggedIn(),
		Watchlist: m.svc.Profile.Contains(domain.ListWatchLater, id),
		Favorite:  m.svc.Profile.Contains(domain.ListLiked, id),
	}
}

func (m *Model) applyDetails(st viewmodel.DetailsState) {
	switch st.Status {
	case paging.Loaded:
		m.Details.SetMovie(st.Movie, st.Cached)
		m.Details.SetMembership(m.membership(st.MovieID))
		m.updateLayout()
	default:
		m.Details.Clear()
	}
	m.lists[ListSimilar].SetState(st.Similar)
}

func listLabel(kind domain.ListKind) string {
	if kind == domain.ListLiked {
		return "favorites"
	}
	return "watchlist"
}
