package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Membership tells the details panel which user lists hold the movie
type Membership struct {
	Watchlist bool
	Favorite  bool
	LoggedIn  bool
}

// MovieDetails shows the metadata of one movie. The header stays fixed and
// the body scrolls.
type MovieDetails struct {
	movie   domain.Movie
	has     bool
	cached  bool
	member  Membership
	width   int
	height  int
	body    viewport.Model
	focused bool
}

// NewMovieDetails creates an empty details panel
func NewMovieDetails() MovieDetails {
	return MovieDetails{body: viewport.New(0, 0)}
}

// SetMovie sets the movie to display. cached marks offline data.
func (d *MovieDetails) SetMovie(m domain.Movie, cached bool) {
	d.movie = m
	d.has = true
	d.cached = cached
	d.body.SetContent(d.renderBody())
	d.body.GotoTop()
}

// Clear removes the movie
func (d *MovieDetails) Clear() {
	d.movie = domain.Movie{}
	d.has = false
	d.body.SetContent("")
}

// HasMovie returns true if there is a movie to display
func (d MovieDetails) HasMovie() bool { return d.has }

// Movie returns the displayed movie
func (d MovieDetails) Movie() domain.Movie { return d.movie }

// SetMembership updates the list badges
func (d *MovieDetails) SetMembership(m Membership) { d.member = m }

// SetFocused routes scroll keys to the body when true
func (d *MovieDetails) SetFocused(focused bool) { d.focused = focused }

// SetSize updates the component dimensions
func (d *MovieDetails) SetSize(width, height int) {
	d.width = width
	d.height = height
	frameW, frameH := styles.InactiveBorder.GetFrameSize()
	header := lipgloss.Height(d.renderHeader(width - frameW))
	d.body.Width = max(width-frameW, 10)
	d.body.Height = max(height-frameH-header-1, 1)
	if d.has {
		d.body.SetContent(d.renderBody())
	}
}

// Update scrolls the body
func (d MovieDetails) Update(msg tea.Msg) (MovieDetails, tea.Cmd) {
	if !d.focused {
		return d, nil
	}
	var cmd tea.Cmd
	d.body, cmd = d.body.Update(msg)
	return d, cmd
}

// View renders the component
func (d MovieDetails) View() string {
	style := styles.InactiveBorder
	if d.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	width := max(d.width-frameW, 10)

	var content string
	if !d.has {
		content = styles.DimStyle.Render("No movie selected")
	} else {
		content = d.renderHeader(width) + "\n\n" + d.body.View()
	}

	return style.
		Width(width).
		Height(max(d.height-frameH, 0)).
		Render(content)
}

func (d MovieDetails) renderHeader(width int) string {
	m := d.movie
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(styles.Truncate(m.Title, width)))
	b.WriteString("\n")

	var meta []string
	if year := m.YearLabel(); year != "" {
		meta = append(meta, year)
	}
	if rt := m.Runtime(); rt != "" {
		meta = append(meta, rt)
	}
	if d.cached {
		meta = append(meta, "offline copy")
	}
	b.WriteString(styles.DimStyle.Render(strings.Join(meta, " · ")))
	b.WriteString("\n")

	var status []string
	if m.IMDbRating > 0 {
		status = append(status, ratingStyle(m.IMDbRating).Render(styles.StarChar+" "+m.RatingLabel()))
	}
	if d.member.LoggedIn {
		if d.member.Watchlist {
			status = append(status, styles.BadgeStyle.Render(styles.WatchlistChar+" Watchlist"))
		} else {
			status = append(status, styles.DimStyle.Render(styles.WatchlistChar+" not on watchlist"))
		}
		if d.member.Favorite {
			status = append(status, styles.BadgeStyle.Render(styles.FavoriteChar+" Favorite"))
		}
	}
	b.WriteString(strings.Join(status, "   "))

	return b.String()
}

func ratingStyle(rating float64) lipgloss.Style {
	switch {
	case rating >= 7:
		return lipgloss.NewStyle().Foreground(styles.Green)
	case rating >= 5:
		return lipgloss.NewStyle().Foreground(styles.Accent)
	default:
		return lipgloss.NewStyle().Foreground(styles.Red)
	}
}

func (d MovieDetails) renderBody() string {
	m := d.movie
	width := min(max(d.body.Width-2, 20), 80)
	var b strings.Builder

	if genres := nonEmpty(m.Genres()); len(genres) > 0 {
		badges := make([]string, len(genres))
		for i, g := range genres {
			badges[i] = styles.DimBadgeStyle.Render(g)
		}
		b.WriteString(strings.Join(badges, " "))
		b.WriteString("\n\n")
	}

	if m.Plot != "" {
		b.WriteString(styles.SubtitleStyle.Render(wordWrap(m.Plot, width)))
		b.WriteString("\n\n")
	}

	credits := []struct {
		label string
		names []string
	}{
		{"Directed by", m.Directors()},
		{"Written by", m.Writers()},
		{"Starring", m.Stars()},
	}
	for _, c := range credits {
		names := nonEmpty(c.names)
		if len(names) == 0 {
			continue
		}
		b.WriteString(styles.DimStyle.Render(c.label))
		b.WriteString("\n")
		b.WriteString(wordWrap(strings.Join(names, ", "), width))
		b.WriteString("\n\n")
	}

	if m.MovieURL != "" {
		b.WriteString(styles.LinkStyle.Render(m.MovieURL))
		b.WriteString("\n")
	}
	if m.RatingCount > 0 {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%.0f ratings", m.RatingCount)))
	}

	return strings.TrimRight(b.String(), "\n")
}

// nonEmpty drops blank entries, e.g. the single "" of an empty field
func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lineLen := 0

	for _, word := range strings.Fields(text) {
		wordLen := lipgloss.Width(word)
		if lineLen > 0 && lineLen+wordLen+1 > width {
			result.WriteString("\n")
			lineLen = 0
		}
		if lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}
		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}
