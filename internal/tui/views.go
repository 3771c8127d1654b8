package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/paging"
	"github.com/mmcdole/reel/internal/route"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}
	if m.State == StateConfirmLogout {
		return m.renderLogoutConfirmation()
	}

	rows := []string{m.renderHeader()}
	if hasTabs(m.Current()) {
		rows = append(rows, m.renderTabs())
	}

	height := m.contentHeight()
	var content string
	switch {
	case m.SearchModal.IsVisible():
		content = lipgloss.Place(m.Width, height, lipgloss.Center, lipgloss.Center, m.SearchModal.View())
	case m.GenrePicker.IsVisible():
		content = m.GenrePicker.View()
	default:
		content = m.renderContent()
	}
	content = lipgloss.NewStyle().Height(height).MaxHeight(height).Render(content)

	rows = append(rows, content, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderContent() string {
	switch m.Current().Pattern {
	case route.Login, route.Register:
		return m.renderAuth()
	case route.Details:
		split := calculateSplit(m.Width)
		if split.similarWidth == 0 {
			if m.detailsFocus == 1 {
				return m.lists[ListSimilar].View()
			}
			return m.Details.View()
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, m.Details.View(), m.lists[ListSimilar].View())
	case route.Home:
		if homeTabs[m.homeTab] == ListRecommended && !m.loggedIn() {
			return m.renderPrompt("Log in to get recommendations based on your favorites", "p")
		}
	}

	if l := m.activeList(); l != nil {
		return l.View()
	}
	return ""
}

// renderHeader shows the brand, the screen and the signed-in user
func (m Model) renderHeader() string {
	left := styles.AccentStyle.Bold(true).Render("reel") +
		styles.DimStyle.Render(" › ") +
		styles.TitleStyle.Render(screenTitle(m.Current()))

	var right string
	if m.loggedIn() {
		right = styles.DimStyle.Render("@") + styles.SubtitleStyle.Render(m.svc.Profile.Session().Username)
	} else {
		right = styles.DimStyle.Render("not logged in")
	}

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderTabs() string {
	tabs, active := homeTabs, m.homeTab
	if m.Current().Pattern == route.Profile {
		tabs, active = profileTabs, m.profileTab
	}

	parts := make([]string, 0, len(tabs))
	for i, id := range tabs {
		label := listTitles[id]
		if st := m.lists[id].State(); st.Status == paging.Loaded {
			label = fmt.Sprintf("%s %d", label, st.Len())
		}
		if i == active {
			parts = append(parts, styles.ActiveTabStyle.Render(label))
		} else {
			parts = append(parts, styles.InactiveTabStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderAuth() string {
	register := m.Current().Pattern == route.Register

	title, form, hint := "Log in", m.LoginForm.View(), "C-r create an account"
	if register {
		title, form, hint = "Create an account", m.RegisterForm.View(), "C-r back to login"
	}

	rows := []string{styles.TitleStyle.Render(title), "", form, ""}
	if m.authBusy {
		rows = append(rows, m.Spinner.View()+" "+styles.DimStyle.Render("Please wait..."))
	}

	if m.deviceCode != nil {
		rows = append(rows,
			styles.SubtitleStyle.Render("Sign in with Google"),
			styles.DimStyle.Render("Visit ")+styles.LinkStyle.Render(m.deviceCode.VerificationURI),
			styles.DimStyle.Render("and enter ")+styles.AccentStyle.Bold(true).Render(m.deviceCode.UserCode),
		)
	} else if !register && m.svc.Google != nil && m.svc.Google.Enabled() {
		rows = append(rows, styles.DimStyle.Render("C-g sign in with Google"))
	}
	rows = append(rows, styles.DimStyle.Render("enter next field · C-s submit · "+hint))

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.Place(m.Width, m.contentHeight(), lipgloss.Center, lipgloss.Center, body)
}

func (m Model) renderPrompt(text, keyHint string) string {
	body := styles.DimStyle.Render(text) + "\n\n" +
		styles.AccentStyle.Render(keyHint) + styles.DimStyle.Render(" log in")
	return lipgloss.Place(m.Width, m.contentHeight(), lipgloss.Center, lipgloss.Center, body)
}

// renderFooter shows the status on the left, screen hints in the center and
// the help hint on the right
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	case m.loading():
		left = m.Spinner.View() + " " + styles.DimStyle.Render("Loading...")
	}

	center := m.renderHints()
	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad
	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

func (m Model) renderHints() string {
	hint := func(k, desc string) string {
		return styles.HelpKeyStyle.Render(k) + styles.HelpDescStyle.Render(" "+desc)
	}

	var hints []string
	switch m.Current().Pattern {
	case route.Login, route.Register:
		return ""
	case route.Profile:
		hints = append(hints, hint("x", "remove"), hint("e", "edit lists"))
	case route.CreateList:
		hints = append(hints, hint("s", "search"), hint("w", "watchlist"), hint("f", "favorite"))
	case route.Details:
		hints = append(hints, hint("tab", "similar"), hint("c", "genres"), hint("o", "open"))
	default:
		hints = append(hints, hint("s", "search"), hint("c", "genres"))
	}
	return strings.Join(hints, "  ")
}

// loading reports whether the screen waits on the network
func (m Model) loading() bool {
	if m.authBusy {
		return true
	}
	if l := m.activeList(); l != nil && l.State().Status == paging.Loading {
		return true
	}
	return m.Current().Pattern == route.Details && !m.Details.HasMovie() &&
		m.lists[ListSimilar].State().Status == paging.Loading
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
NAVIGATION                      LISTS
  j/k        Up/down               w      Toggle watchlist
  h/l        Back/open             f      Toggle favorite
  g/G        First/last item       x      Remove (profile)
  Ctrl+u/d   Scroll half page      e      Edit lists (profile)
  Tab        Next tab / pane       o      Open in browser

BROWSE                          ACCOUNT
  s          Search titles         p      Profile / log in
  c          Browse genres         L      Logout
  /          Filter loaded items   C-g    Google sign-in
  r          Refresh               q      Quit
  H          Home                  ?      This help

Press ? or esc to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// renderLogoutConfirmation renders the logout confirmation modal
func (m Model) renderLogoutConfirmation() string {
	modal := `
              Log Out?

  This ends your session and forgets
  your watchlist and favorites here.

        [Y] Yes      [N] No
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(modal))
}
