package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/reel/internal/domain"
)

func typeInto(f AuthForm, text string) AuthForm {
	for _, r := range text {
		f, _, _ = f.Update(runes(string(r)))
	}
	return f
}

func TestAuthFormLoginSubmit(t *testing.T) {
	f := NewAuthForm(FormLogin)
	f = typeInto(f, "neo")

	var submitted bool
	f, _, submitted = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, submitted, "enter on the first field moves on")

	f = typeInto(f, "secret")
	_, _, submitted = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, submitted)

	assert.Equal(t, "neo", f.Value(FieldUsername))
	assert.Equal(t, "secret", f.Value(FieldPassword))
	assert.Empty(t, f.Value(FieldEmail), "login has no email field")
}

func TestAuthFormFocusWraps(t *testing.T) {
	f := NewAuthForm(FormRegister)

	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	f = typeInto(f, "pw")
	assert.Equal(t, "pw", f.Value(FieldConfirm))

	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f = typeInto(f, "trinity")
	assert.Equal(t, "trinity", f.Value(FieldUsername))
}

func TestAuthFormErrors(t *testing.T) {
	f := NewAuthForm(FormRegister)
	f.SetError(FieldEmail, "Email cannot be empty")
	assert.Contains(t, f.View(), "Email cannot be empty")

	// editing the field clears its message
	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f = typeInto(f, "a")
	assert.NotContains(t, f.View(), "Email cannot be empty")

	f.SetError(FieldUsername, "Username cannot be empty")
	f.Reset()
	assert.NotContains(t, f.View(), "Username cannot be empty")
	assert.Empty(t, f.Value(FieldEmail))
}

func TestAuthFormHidesPasswords(t *testing.T) {
	f := NewAuthForm(FormLogin)
	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f = typeInto(f, "hunter2")
	assert.NotContains(t, f.View(), "hunter2")
}

func TestMatchGenres(t *testing.T) {
	assert.Equal(t, domain.Genres, MatchGenres(domain.Genres, "  "))

	got := MatchGenres(domain.Genres, "mus")
	require.NotEmpty(t, got)
	assert.Equal(t, "Music", got[0], "closest match first")
	assert.Contains(t, got, "Musical")
	assert.NotContains(t, got, "Drama")

	assert.Equal(t, []string{"Sci-Fi"}, MatchGenres(domain.Genres, "SCI"))
	assert.Empty(t, MatchGenres(domain.Genres, "xyz"))
}

func TestGenrePickerSelect(t *testing.T) {
	p := NewGenrePicker(domain.Genres)
	p.SetSize(80, 30)

	_, _, selected := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, selected, "hidden picker ignores keys")

	p.Show()
	for _, r := range "war" {
		p, _, _ = p.Update(runes(string(r)))
	}
	got, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, "War", got)

	p, _, selected = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, selected)

	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, p.IsVisible())
}

func TestGenrePickerShowGenres(t *testing.T) {
	p := NewGenrePicker(domain.Genres)
	p.ShowGenres([]string{"Crime", "Drama"})
	assert.Equal(t, []string{"Crime", "Drama"}, p.Matches())

	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	got, _ := p.Selected()
	assert.Equal(t, "Drama", got)

	p.Hide()
	p.Show()
	assert.Len(t, p.Matches(), len(domain.Genres))
}

func submitQuery(p SearchPrompt, q string) SearchPrompt {
	p.Show("Search movies", "title...", "")
	for _, r := range q {
		p, _, _ = p.Update(runes(string(r)))
	}
	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return p
}

func TestSearchPrompt(t *testing.T) {
	p := NewSearchPrompt()
	p.Show("Search movies", "title...", "")
	for _, r := range " heat " {
		p, _, _ = p.Update(runes(string(r)))
	}

	var submitted bool
	p, _, submitted = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, submitted)
	assert.Equal(t, "heat", p.Value())

	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, p.IsVisible())
}

func TestSearchPromptRecent(t *testing.T) {
	p := NewSearchPrompt()
	p = submitQuery(p, "heat")
	p = submitQuery(p, "alien")
	p = submitQuery(p, "Heat")
	assert.Equal(t, []string{"Heat", "alien"}, p.Recent(), "newest first without duplicates")

	p.Show("Search movies", "title...", "")
	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "Heat", p.Value())
	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "alien", p.Value())
	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "alien", p.Value(), "stops at the oldest")
	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(t, p.Value())
	assert.Contains(t, p.View(), "alien")

	_, _, submitted := NewSearchPrompt().Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, submitted, "hidden prompt ignores keys")
}

func TestSearchPromptKeepsHistoryBounded(t *testing.T) {
	p := NewSearchPrompt()
	for i := range MaxRecentQueries + 3 {
		p = submitQuery(p, string(rune('a'+i)))
	}
	assert.Len(t, p.Recent(), MaxRecentQueries)
	assert.Equal(t, string(rune('a'+MaxRecentQueries+2)), p.Recent()[0])
}
