package components

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// MaxRecentQueries bounds the search history kept by a SearchPrompt
const MaxRecentQueries = 8

// SearchPrompt asks for a title query. Up and down walk through the
// queries submitted earlier in the session.
type SearchPrompt struct {
	visible bool
	title   string
	input   textinput.Model
	keys    PickerKeyMap

	recent []string // newest first
	recall int      // index into recent, -1 while typing
}

// NewSearchPrompt creates a hidden prompt
func NewSearchPrompt() SearchPrompt {
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "⌕ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return SearchPrompt{input: ti, keys: DefaultPickerKeyMap(), recall: -1}
}

// Show opens the prompt prefilled with value
func (p *SearchPrompt) Show(title, placeholder, value string) {
	p.visible = true
	p.title = title
	p.recall = -1
	p.input.Placeholder = placeholder
	p.input.SetValue(value)
	p.input.CursorEnd()
	p.input.Focus()
}

// Hide closes the prompt
func (p *SearchPrompt) Hide() {
	p.visible = false
	p.input.Blur()
}

// IsVisible returns whether the prompt is shown
func (p SearchPrompt) IsVisible() bool {
	return p.visible
}

// Value returns the query without surrounding blanks
func (p SearchPrompt) Value() string {
	return strings.TrimSpace(p.input.Value())
}

// Recent returns the remembered queries, newest first
func (p SearchPrompt) Recent() []string {
	return p.recent
}

// remember moves query to the front of the history
func (p *SearchPrompt) remember(query string) {
	if query == "" {
		return
	}
	p.recent = slices.DeleteFunc(p.recent, func(q string) bool {
		return strings.EqualFold(q, query)
	})
	p.recent = append([]string{query}, p.recent...)
	if len(p.recent) > MaxRecentQueries {
		p.recent = p.recent[:MaxRecentQueries]
	}
}

func (p *SearchPrompt) step(delta int) {
	if len(p.recent) == 0 {
		return
	}
	p.recall = min(max(p.recall+delta, -1), len(p.recent)-1)
	if p.recall < 0 {
		p.input.SetValue("")
	} else {
		p.input.SetValue(p.recent[p.recall])
	}
	p.input.CursorEnd()
}

// Update handles input events, returns (prompt, cmd, submitted). A
// submitted query is added to the history.
func (p SearchPrompt) Update(msg tea.Msg) (SearchPrompt, tea.Cmd, bool) {
	if !p.visible {
		return p, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, p.keys.Select):
			p.remember(p.Value())
			return p, nil, true
		case key.Matches(keyMsg, p.keys.Cancel):
			p.Hide()
			return p, nil, false
		case key.Matches(keyMsg, p.keys.Up):
			p.step(1)
			return p, nil, false
		case key.Matches(keyMsg, p.keys.Down):
			p.step(-1)
			return p, nil, false
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

// View renders the prompt box
func (p SearchPrompt) View() string {
	if !p.visible {
		return ""
	}

	const width = 46
	rows := []string{
		styles.ModalTitleStyle.Width(width).Render(p.title),
		p.input.View(),
	}
	if len(p.recent) > 0 {
		rows = append(rows, "", styles.DimStyle.Render("Recent  ↑/↓"))
		for i, q := range p.recent {
			style := styles.NormalItemStyle
			if i == p.recall {
				style = styles.SelectedItemStyle
			}
			rows = append(rows, style.Render(styles.Truncate(q, width-2)))
		}
	}

	return styles.ModalStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
