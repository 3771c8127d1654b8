package tui

import "github.com/mmcdole/reel/internal/route"

// FormWidth caps the width of the login and registration forms
const FormWidth = 48

// splitLayout holds the widths of the details screen
type splitLayout struct {
	detailsWidth int
	similarWidth int
}

// calculateSplit divides the width between a movie and its similar list
func calculateSplit(availableWidth int) splitLayout {
	details := max(availableWidth*DetailsPercent/100, MinColumnWidth)
	similar := availableWidth - details
	if similar < MinColumnWidth {
		// too narrow for two columns
		return splitLayout{detailsWidth: availableWidth}
	}
	return splitLayout{detailsWidth: details, similarWidth: similar}
}

// hasTabs reports whether the screen shows a tab bar
func hasTabs(r route.Route) bool {
	return r.Pattern == route.Home || r.Pattern == route.Profile
}

// contentHeight is the height left after the header, tabs and footer
func (m Model) contentHeight() int {
	h := m.Height - HeaderHeight - FooterHeight
	if hasTabs(m.Current()) {
		h -= TabsHeight
	}
	return max(h, 3)
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	height := m.contentHeight()
	m.GenrePicker.SetSize(m.Width, height)

	formWidth := min(m.Width-4, FormWidth)
	m.LoginForm.SetWidth(formWidth)
	m.RegisterForm.SetWidth(formWidth)

	for id, l := range m.lists {
		if id == ListSimilar {
			continue
		}
		l.SetSize(m.Width, height)
	}

	split := calculateSplit(m.Width)
	m.Details.SetSize(split.detailsWidth, height)
	m.lists[ListSimilar].SetSize(max(split.similarWidth, MinColumnWidth), height)
}
