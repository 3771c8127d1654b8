package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Gold       = lipgloss.Color("#E5A00D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
)

// SpinnerFrames is shared by the terminal prompts and the TUI spinner
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Borders
var (
	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style
)

// Text styles
var (
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	DimStyle      lipgloss.Style
	AccentStyle   lipgloss.Style
	ErrorStyle    lipgloss.Style
	SuccessStyle  lipgloss.Style
	LinkStyle     lipgloss.Style
)

// Tab styles
var (
	ActiveTabStyle   lipgloss.Style
	InactiveTabStyle lipgloss.Style
)

// List item styles
var (
	SelectedItemStyle lipgloss.Style
	NormalItemStyle   lipgloss.Style
)

// Modal styles
var (
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
)

// Help styles
var (
	HelpKeyStyle  lipgloss.Style
	HelpDescStyle lipgloss.Style
)

// Misc
var (
	SpinnerStyle      lipgloss.Style
	FilterStyle       lipgloss.Style
	FilterPromptStyle lipgloss.Style
	BadgeStyle        lipgloss.Style
	DimBadgeStyle     lipgloss.Style
)

// Markers for list membership
const (
	WatchlistChar = "◷"
	FavoriteChar  = "♥"
	StarChar      = "★"
)

func init() {
	build(Gold)
}

// ApplyTheme switches the accent color. Unknown names keep the default.
func ApplyTheme(name string) {
	switch strings.ToLower(name) {
	case "blue":
		build(Blue)
	case "green":
		build(Green)
	case "red":
		build(Red)
	default:
		build(Gold)
	}
}

// Accent is the color of the active theme
var Accent lipgloss.Color

func build(accent lipgloss.Color) {
	Accent = accent

	ActiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent)
	InactiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(DimGray)

	TitleStyle = lipgloss.NewStyle().Foreground(White).Bold(true)
	SubtitleStyle = lipgloss.NewStyle().Foreground(LightGray)
	DimStyle = lipgloss.NewStyle().Foreground(DimGray)
	AccentStyle = lipgloss.NewStyle().Foreground(accent)
	ErrorStyle = lipgloss.NewStyle().Foreground(Red)
	SuccessStyle = lipgloss.NewStyle().Foreground(Green)
	LinkStyle = lipgloss.NewStyle().Foreground(Blue).Underline(true)

	ActiveTabStyle = lipgloss.NewStyle().
		Foreground(SlateDark).
		Background(accent).
		Bold(true).
		Padding(0, 1)
	InactiveTabStyle = lipgloss.NewStyle().
		Foreground(LightGray).
		Padding(0, 1)

	SelectedItemStyle = lipgloss.NewStyle().
		Foreground(White).
		Background(SlateLight).
		Padding(0, 1)
	NormalItemStyle = lipgloss.NewStyle().
		Foreground(LightGray).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Background(SlateDark)
	ModalTitleStyle = lipgloss.NewStyle().
		Foreground(White).
		Bold(true).
		MarginBottom(1)

	HelpKeyStyle = lipgloss.NewStyle().Foreground(accent)
	HelpDescStyle = lipgloss.NewStyle().Foreground(DimGray)

	SpinnerStyle = lipgloss.NewStyle().Foreground(accent)
	FilterStyle = lipgloss.NewStyle().Foreground(accent)
	FilterPromptStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	BadgeStyle = lipgloss.NewStyle().
		Foreground(SlateDark).
		Background(accent).
		Padding(0, 1)
	DimBadgeStyle = lipgloss.NewStyle().
		Foreground(LightGray).
		Background(SlateLight).
		Padding(0, 1)
}

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// Pad pads a string to the given width
func Pad(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-n)
}

// RowPart represents a part of a row with optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
}

// RenderListRow renders a row with a uniform background when selected.
// Each part is styled on its own so ANSI resets do not break the background.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	var b strings.Builder
	visible := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		switch {
		case part.Foreground != nil:
			style = style.Foreground(*part.Foreground)
		case selected:
			style = style.Foreground(White)
		default:
			style = style.Foreground(LightGray)
		}
		if selected {
			style = style.Background(SlateLight)
		}
		b.WriteString(style.Render(part.Text))
		visible += lipgloss.Width(part.Text)
	}

	fill := lipgloss.NewStyle()
	if selected {
		fill = fill.Background(SlateLight)
	}
	// 2 for left and right margin
	if pad := width - visible - 2; pad > 0 {
		b.WriteString(fill.Render(strings.Repeat(" ", pad)))
	}
	margin := fill.Render(" ")
	return margin + b.String() + margin
}
