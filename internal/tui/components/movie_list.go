package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/paging"
	"github.com/mmcdole/reel/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for movie lists
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// "↑ more" and "↓ more" each take 1 line
	ScrollIndicatorLines = 2
)

// Marker renders a short prefix for a movie, e.g. list membership
type Marker func(m domain.Movie) string

// MovieList is a scrollable, filterable list of movies backed by a paging
// State. Scrolling to the last row reports that the next page is wanted.
type MovieList struct {
	title string
	state paging.State[domain.Movie]
	keys  ListKeyMap

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	spinner string
	marker  Marker
	trigger paging.Trigger

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into state.Items
}

// NewMovieList creates an empty list with the given title
func NewMovieList(title string) *MovieList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &MovieList{
		title:       title,
		keys:        DefaultListKeyMap(),
		filterInput: ti,
	}
}

// Title returns the list title
func (l *MovieList) Title() string { return l.title }

// SetTitle changes the list title
func (l *MovieList) SetTitle(title string) { l.title = title }

// SetMarker installs a row prefix renderer
func (l *MovieList) SetMarker(m Marker) { l.marker = m }

// SetSpinner sets the frame shown while loading
func (l *MovieList) SetSpinner(frame string) { l.spinner = frame }

// SetFocused marks the list as the active one
func (l *MovieList) SetFocused(focused bool) { l.focused = focused }

// State returns the snapshot being shown
func (l *MovieList) State() paging.State[domain.Movie] { return l.state }

// SetState replaces the shown snapshot. When the new snapshot is shorter the
// cursor is clamped; a replaced list starts from the top.
func (l *MovieList) SetState(s paging.State[domain.Movie]) {
	grew := len(s.Items) >= len(l.state.Items) && l.state.Status != paging.Idle
	l.state = s
	if !grew {
		l.cursor = 0
		l.offset = 0
		l.trigger.Reset()
	}
	if l.filterActive {
		l.applyFilter()
	}
	l.clamp()
}

// Reset clears items, filter and scroll position
func (l *MovieList) Reset() {
	l.state = paging.State[domain.Movie]{}
	l.cursor = 0
	l.offset = 0
	l.trigger.Reset()
	l.clearFilter()
}

// SetSize updates the component dimensions
func (l *MovieList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

// Selected returns the movie under the cursor
func (l *MovieList) Selected() (domain.Movie, bool) {
	count := l.ItemCount()
	if count == 0 || l.cursor >= count {
		return domain.Movie{}, false
	}
	return l.state.Items[l.mapIndex(l.cursor)], true
}

// Cursor returns the selected row among the visible rows
func (l *MovieList) Cursor() int { return l.cursor }

// ItemCount returns the number of rows after filtering
func (l *MovieList) ItemCount() int {
	if l.filteredIdx != nil {
		return len(l.filteredIdx)
	}
	return len(l.state.Items)
}

// IsFiltering returns true if filter mode is active
func (l *MovieList) IsFiltering() bool { return l.filterActive }

// IsFilterTyping returns true if the filter input has focus
func (l *MovieList) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// ToggleFilter activates the filter input
func (l *MovieList) ToggleFilter() {
	l.filterActive = true
	l.filterInput.Focus()
	l.recalcMaxVisible()
}

// ClearFilter deactivates the filter and shows all rows
func (l *MovieList) ClearFilter() { l.clearFilter() }

// LastVisible returns the index in the unfiltered list of the last row on
// screen, or -1 when nothing is shown
func (l *MovieList) LastVisible() int {
	count := l.ItemCount()
	if count == 0 {
		return -1
	}
	end := min(l.offset+l.maxVisible, count) - 1
	return l.mapIndex(end)
}

// WantsMore feeds the viewport to the load-more trigger. It is true once
// each time the end of the list scrolls into view. A filtered list never
// asks for more since its rows are a subset.
func (l *MovieList) WantsMore() bool {
	if l.filterActive || l.state.Status == paging.Loading || l.state.Status == paging.Error {
		return false
	}
	return l.trigger.Observe(l.LastVisible(), len(l.state.Items))
}

// Update handles navigation and filter typing
func (l *MovieList) Update(msg tea.Msg) tea.Cmd {
	if !l.focused {
		return nil
	}
	keyMsg, isKey := msg.(tea.KeyMsg)

	if l.filterActive && l.filterInput.Focused() {
		if isKey {
			switch {
			case key.Matches(keyMsg, l.keys.Escape):
				l.clearFilter()
				return nil
			case key.Matches(keyMsg, l.keys.Accept):
				l.filterInput.Blur()
				return nil
			case keyMsg.String() == "backspace" && l.filterInput.Value() == "":
				l.clearFilter()
				return nil
			}
		}
		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter()
		return cmd
	}

	if !isKey {
		return nil
	}

	if l.filterActive {
		switch {
		case key.Matches(keyMsg, l.keys.Escape):
			l.clearFilter()
			return nil
		case key.Matches(keyMsg, l.keys.Filter):
			l.filterInput.Focus()
			return nil
		}
	}

	count := l.ItemCount()
	if count == 0 {
		return nil
	}

	switch {
	case key.Matches(keyMsg, l.keys.Down):
		if l.cursor < count-1 {
			l.cursor++
		}
	case key.Matches(keyMsg, l.keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(keyMsg, l.keys.Home):
		l.cursor = 0
	case key.Matches(keyMsg, l.keys.End):
		l.cursor = count - 1
	case key.Matches(keyMsg, l.keys.HalfDown):
		l.cursor = min(l.cursor+max(l.maxVisible/2, 1), count-1)
	case key.Matches(keyMsg, l.keys.HalfUp):
		l.cursor = max(l.cursor-max(l.maxVisible/2, 1), 0)
	}
	l.ensureVisible()
	return nil
}

// View renders the list inside a border
func (l *MovieList) View() string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(l.width-frameW, 0)).
		Height(max(l.height-frameH, 0)).
		Render(l.renderContent())
}

func (l *MovieList) clearFilter() {
	l.filterActive = false
	l.filterQuery = ""
	l.filteredIdx = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.recalcMaxVisible()
	l.clamp()
}

func (l *MovieList) applyFilter() {
	query := l.filterInput.Value()
	if query == l.filterQuery && l.filteredIdx != nil {
		return
	}
	l.filterQuery = query

	if query == "" {
		l.filteredIdx = nil
		return
	}

	l.filteredIdx = FilterMovies(l.state.Items, query)
	l.cursor = 0
	l.offset = 0
}

// FilterMovies returns the indices of movies whose title fuzzy-matches
// query, best match first. Matching ignores case.
func FilterMovies(movies []domain.Movie, query string) []int {
	lowerTitles := make([]string, len(movies))
	for i, m := range movies {
		lowerTitles[i] = strings.ToLower(m.FilterValue())
	}

	matches := fuzzy.Find(strings.ToLower(query), lowerTitles)

	idx := make([]int, len(matches))
	for i, match := range matches {
		idx[i] = match.Index
	}
	return idx
}

func (l *MovieList) mapIndex(i int) int {
	if l.filteredIdx != nil && i < len(l.filteredIdx) {
		return l.filteredIdx[i]
	}
	return i
}

func (l *MovieList) recalcMaxVisible() {
	// title line plus scroll indicators
	l.maxVisible = l.height - BorderHeight - ScrollIndicatorLines - 1
	if l.filterActive {
		l.maxVisible--
	}
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *MovieList) clamp() {
	count := l.ItemCount()
	if l.cursor >= count {
		l.cursor = max(count-1, 0)
	}
	l.ensureVisible()
}

func (l *MovieList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

func (l *MovieList) renderContent() string {
	itemWidth := max(l.width-BorderWidth, 10)

	title := l.title
	if n := len(l.state.Items); n > 0 {
		title = fmt.Sprintf("%s (%d)", l.title, n)
	}
	titleLine := styles.AccentStyle.Render(styles.Truncate(title, itemWidth))

	count := l.ItemCount()
	if count == 0 {
		return titleLine + "\n \n" + l.renderPlaceholder() + "\n "
	}

	end := min(l.offset+l.maxVisible, count)
	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderMovie(l.state.Items[l.mapIndex(i)], i == l.cursor && l.focused, itemWidth))
	}

	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	switch {
	case l.state.Status == paging.Loading:
		footer = styles.SpinnerStyle.Render(l.spinner + " loading more...")
	case l.state.Status == paging.Error:
		footer = styles.ErrorStyle.Render(styles.Truncate(l.state.Message, itemWidth))
	case end < count:
		footer = styles.DimStyle.Render("↓ more")
	case l.state.Last && !l.filterActive:
		footer = styles.DimStyle.Render("end of list")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if l.filterActive {
		content += "\n" + l.renderFilterBar()
	}
	return content
}

func (l *MovieList) renderPlaceholder() string {
	switch l.state.Status {
	case paging.Loading:
		return styles.SpinnerStyle.Render(l.spinner + " Loading...")
	case paging.Error:
		return styles.ErrorStyle.Render(l.state.Message)
	case paging.Idle:
		return styles.DimStyle.Render(" ")
	}
	if l.filterActive && l.filterQuery != "" {
		return styles.DimStyle.Render("No matches")
	}
	return styles.DimStyle.Render("No movies")
}

func (l *MovieList) renderMovie(m domain.Movie, selected bool, width int) string {
	var parts []styles.RowPart

	if l.marker != nil {
		accent := styles.Accent
		parts = append(parts, styles.RowPart{Text: l.marker(m), Foreground: &accent})
	}

	rating := ""
	if m.IMDbRating > 0 {
		rating = fmt.Sprintf("%s %.1f", styles.StarChar, m.IMDbRating)
	}

	title := m.Title
	if year := m.YearLabel(); year != "" {
		title = fmt.Sprintf("%s (%s)", m.Title, year)
	}

	used := 4 + lipgloss.Width(rating)
	for _, p := range parts {
		used += lipgloss.Width(p.Text)
	}
	avail := max(width-used, 5)
	title = styles.Pad(styles.Truncate(title, avail), avail)

	dim := styles.DimGray
	parts = append(parts,
		styles.RowPart{Text: " " + title},
		styles.RowPart{Text: " " + rating, Foreground: &dim},
	)
	return styles.RenderListRow(parts, selected, width)
}

func (l *MovieList) renderFilterBar() string {
	input := l.filterInput.View()
	if l.filterQuery == "" {
		return input
	}
	return input + styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", l.ItemCount(), len(l.state.Items)))
}
