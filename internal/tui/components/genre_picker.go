package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// GenrePicker is a modal listing the movie categories, narrowed as the
// user types
type GenrePicker struct {
	input   textinput.Model
	keys    PickerKeyMap
	all     []string
	genres  []string // what the current session picks from
	matches []string
	cursor  int
	visible bool
	width   int
	height  int
}

// NewGenrePicker creates a picker over genres
func NewGenrePicker(genres []string) GenrePicker {
	ti := textinput.New()
	ti.Placeholder = "Genre..."
	ti.CharLimit = 40
	ti.Width = 30
	ti.Prompt = "# "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return GenrePicker{
		input:   ti,
		keys:    DefaultPickerKeyMap(),
		all:     genres,
		genres:  genres,
		matches: genres,
	}
}

// Show opens the picker over every genre
func (p *GenrePicker) Show() {
	p.ShowGenres(p.all)
}

// ShowGenres opens the picker over a custom list, e.g. one movie's genres
func (p *GenrePicker) ShowGenres(genres []string) {
	p.genres = genres
	p.visible = true
	p.cursor = 0
	p.input.SetValue("")
	p.input.Focus()
	p.matches = p.genres
}

// Hide closes the picker
func (p *GenrePicker) Hide() {
	p.visible = false
	p.input.Blur()
}

// IsVisible returns whether the picker is shown
func (p GenrePicker) IsVisible() bool {
	return p.visible
}

// SetSize updates the area the modal is centered in
func (p *GenrePicker) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Matches returns the genres matching the current query
func (p GenrePicker) Matches() []string {
	return p.matches
}

// Selected returns the highlighted genre
func (p GenrePicker) Selected() (string, bool) {
	if p.cursor >= len(p.matches) {
		return "", false
	}
	return p.matches[p.cursor], true
}

// MatchGenres ranks genres against query. Closer matches come first and an
// empty query keeps the original order.
func MatchGenres(genres []string, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return genres
	}

	ranks := fuzzy.RankFindFold(query, genres)
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Distance < ranks[j].Distance
	})

	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = r.Target
	}
	return out
}

// Update handles input events, returns (picker, cmd, selected)
func (p GenrePicker) Update(msg tea.Msg) (GenrePicker, tea.Cmd, bool) {
	if !p.visible {
		return p, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, p.keys.Cancel):
			p.Hide()
			return p, nil, false
		case key.Matches(keyMsg, p.keys.Select):
			return p, nil, len(p.matches) > 0
		case key.Matches(keyMsg, p.keys.Down):
			if p.cursor < len(p.matches)-1 {
				p.cursor++
			}
			return p, nil, false
		case key.Matches(keyMsg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil, false
		}
	}

	var cmd tea.Cmd
	before := p.input.Value()
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.matches = MatchGenres(p.genres, p.input.Value())
		p.cursor = 0
	}
	return p, cmd, false
}

// View renders the picker centered in its area
func (p GenrePicker) View() string {
	if !p.visible {
		return ""
	}

	const modalWidth = 40
	maxResults := max(min(p.height-10, 12), 3)

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Browse by genre"))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	if len(p.matches) == 0 {
		b.WriteString(styles.DimStyle.Render("No matching genres"))
	}

	start := 0
	if p.cursor >= maxResults {
		start = p.cursor - maxResults + 1
	}
	end := min(start+maxResults, len(p.matches))
	for i := start; i < end; i++ {
		style := styles.NormalItemStyle
		if i == p.cursor {
			style = styles.SelectedItemStyle
		}
		b.WriteString(style.Render(styles.Truncate(p.matches[i], modalWidth-8)))
		b.WriteString("\n")
	}
	if rest := len(p.matches) - end; rest > 0 {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("... and %d more", rest)))
	}

	modal := styles.ModalStyle.
		Width(modalWidth).
		Render(strings.TrimRight(b.String(), "\n"))

	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, modal)
}
