package components

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/paging"
)

func movies(n int) []domain.Movie {
	out := make([]domain.Movie, n)
	for i := range out {
		out[i] = domain.Movie{ID: int64(i + 1), Title: fmt.Sprintf("Movie %d", i+1)}
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// newTestList returns a focused list showing five rows
func newTestList(items []domain.Movie) *MovieList {
	l := NewMovieList("Top rated")
	l.SetFocused(true)
	l.SetSize(60, 10)
	l.SetState(paging.State[domain.Movie]{Status: paging.Loading})
	l.SetState(paging.LoadedState(items))
	return l
}

func TestFilterMovies(t *testing.T) {
	list := []domain.Movie{
		{Title: "The Matrix"},
		{Title: "Heat"},
		{Title: "Matrix Reloaded"},
	}

	idx := FilterMovies(list, "MATRIX")
	assert.ElementsMatch(t, []int{0, 2}, idx)

	assert.Empty(t, FilterMovies(list, "zzz"))
}

func TestMovieListWantsMoreAtEnd(t *testing.T) {
	l := newTestList(movies(20))

	assert.Equal(t, 4, l.LastVisible())
	assert.False(t, l.WantsMore(), "end of list not on screen")

	l.Update(runes("G"))
	assert.Equal(t, 19, l.Cursor())
	assert.Equal(t, 19, l.LastVisible())
	assert.True(t, l.WantsMore())
	assert.False(t, l.WantsMore(), "fires once per arrival at the end")
}

func TestMovieListWantsMoreShortList(t *testing.T) {
	// the whole list fits, so the next page is wanted right away
	l := newTestList(movies(3))
	assert.True(t, l.WantsMore())

	// an empty next page leaves the list unchanged and must not loop
	l.SetState(l.State().BeginLoad())
	assert.False(t, l.WantsMore(), "loading")
	l.SetState(paging.LoadedState(movies(3)))
	assert.False(t, l.WantsMore())
}

func TestMovieListWantsMoreSingleRow(t *testing.T) {
	l := newTestList(movies(1))
	assert.False(t, l.WantsMore())
}

func TestMovieListWantsMoreEmpty(t *testing.T) {
	l := NewMovieList("Search")
	l.SetSize(60, 20)
	l.SetState(paging.State[domain.Movie]{Status: paging.Loading})
	l.SetState(paging.LoadedState[domain.Movie](nil))

	assert.Equal(t, -1, l.LastVisible())
	assert.False(t, l.WantsMore(), "an empty result never asks for page 1")
}

func TestMovieListShowsEndOfList(t *testing.T) {
	l := newTestList(movies(3))
	assert.NotContains(t, l.View(), "end of list")

	st := paging.LoadedState(movies(3))
	st.Last = true
	l.SetState(st)
	assert.Contains(t, l.View(), "end of list")
}

func TestMovieListWantsMoreBlocked(t *testing.T) {
	l := newTestList(movies(20))
	l.Update(runes("G"))

	l.SetState(l.State().BeginLoad())
	assert.False(t, l.WantsMore())

	l.SetState(l.State().Fail(domain.ErrServerOffline))
	assert.False(t, l.WantsMore(), "errors wait for a refresh")
}

func TestMovieListKeepsCursorWhenGrowing(t *testing.T) {
	l := newTestList(movies(20))
	l.Update(runes("G"))
	require.Equal(t, 19, l.Cursor())

	l.SetState(l.State().BeginLoad())
	l.SetState(paging.LoadedState(movies(40)))
	assert.Equal(t, 19, l.Cursor())

	sel, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, int64(20), sel.ID)
}

func TestMovieListResetsCursorWhenReplaced(t *testing.T) {
	l := newTestList(movies(20))
	l.Update(runes("G"))

	l.SetState(paging.LoadedState(movies(5)))
	assert.Equal(t, 0, l.Cursor())

	l.Reset()
	_, ok := l.Selected()
	assert.False(t, ok)
	assert.Equal(t, paging.Idle, l.State().Status)
}

func TestMovieListFilter(t *testing.T) {
	l := newTestList([]domain.Movie{
		{ID: 1, Title: "The Matrix"},
		{ID: 2, Title: "Heat"},
		{ID: 3, Title: "Alien"},
	})

	l.ToggleFilter()
	require.True(t, l.IsFilterTyping())
	for _, r := range "alien" {
		l.Update(runes(string(r)))
	}

	assert.Equal(t, 1, l.ItemCount())
	sel, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "Alien", sel.Title)
	assert.False(t, l.WantsMore(), "filtered views never page")

	l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, l.IsFilterTyping())
	assert.True(t, l.IsFiltering())

	l.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, l.IsFiltering())
	assert.Equal(t, 3, l.ItemCount())
}

func TestMovieListIgnoresKeysWhenBlurred(t *testing.T) {
	l := newTestList(movies(10))
	l.SetFocused(false)
	l.Update(runes("j"))
	assert.Equal(t, 0, l.Cursor())

	l.SetFocused(true)
	l.Update(runes("j"))
	assert.Equal(t, 1, l.Cursor())
}

func TestMovieListViewStates(t *testing.T) {
	l := NewMovieList("Search")
	l.SetSize(60, 12)

	l.SetState(paging.EmptyState[domain.Movie]())
	assert.NotEmpty(t, l.View())

	l.SetState(paging.LoadedState([]domain.Movie{{ID: 1, Title: "Heat", ReleaseYear: 1995}}))
	assert.Contains(t, l.View(), "Heat")
}
