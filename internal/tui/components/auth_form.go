package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// FormMode selects which fields the auth form shows
type FormMode int

const (
	FormLogin FormMode = iota
	FormRegister
)

// Field names
const (
	FieldUsername = "Username"
	FieldEmail    = "Email"
	FieldPassword = "Password"
	FieldConfirm  = "Confirm password"
)

type formField struct {
	label string
	input textinput.Model
	err   string
}

// AuthForm is the login and registration form
type AuthForm struct {
	mode   FormMode
	fields []formField
	focus  int
	width  int
}

// NewAuthForm creates a form for mode
func NewAuthForm(mode FormMode) AuthForm {
	labels := []string{FieldUsername, FieldPassword}
	if mode == FormRegister {
		labels = []string{FieldUsername, FieldEmail, FieldPassword, FieldConfirm}
	}

	f := AuthForm{mode: mode, width: 40}
	for _, label := range labels {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 128
		ti.Width = 32
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		ti.Placeholder = strings.ToLower(label)
		if label == FieldPassword || label == FieldConfirm {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		f.fields = append(f.fields, formField{label: label, input: ti})
	}
	f.fields[0].input.Focus()
	return f
}

// Mode returns the form mode
func (f AuthForm) Mode() FormMode { return f.mode }

// Value returns the text of the named field
func (f AuthForm) Value(label string) string {
	for _, fld := range f.fields {
		if fld.label == label {
			return fld.input.Value()
		}
	}
	return ""
}

// SetError shows msg under the named field. An empty msg clears it.
func (f *AuthForm) SetError(label, msg string) {
	for i := range f.fields {
		if f.fields[i].label == label {
			f.fields[i].err = msg
		}
	}
}

// Reset clears every field and focuses the first one
func (f *AuthForm) Reset() {
	for i := range f.fields {
		f.fields[i].input.SetValue("")
		f.fields[i].input.Blur()
		f.fields[i].err = ""
	}
	f.focus = 0
	f.fields[0].input.Focus()
}

// SetWidth sets the rendered width
func (f *AuthForm) SetWidth(w int) {
	f.width = w
	for i := range f.fields {
		f.fields[i].input.Width = max(w-4, 10)
	}
}

func (f *AuthForm) move(delta int) {
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

// Update handles typing and focus movement. submitted is true when enter is
// pressed on the last field.
func (f AuthForm) Update(msg tea.Msg) (AuthForm, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			f.move(1)
			return f, nil, false
		case "shift+tab", "up":
			f.move(-1)
			return f, nil, false
		case "enter":
			if f.focus == len(f.fields)-1 {
				return f, nil, true
			}
			f.move(1)
			return f, nil, false
		}
	}

	var cmd tea.Cmd
	fld := &f.fields[f.focus]
	before := fld.input.Value()
	fld.input, cmd = fld.input.Update(msg)
	if fld.input.Value() != before {
		fld.err = ""
	}
	return f, cmd, false
}

// View renders the form fields
func (f AuthForm) View() string {
	var rows []string
	for i, fld := range f.fields {
		label := styles.SubtitleStyle.Render(fld.label)
		border := styles.InactiveBorder
		if i == f.focus {
			label = styles.AccentStyle.Render(fld.label)
			border = styles.ActiveBorder
		}
		rows = append(rows, label, border.Width(f.width).Render(fld.input.View()))
		if fld.err != "" {
			rows = append(rows, styles.ErrorStyle.Render(fld.err))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
