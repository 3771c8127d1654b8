package components

import "github.com/charmbracelet/bubbles/key"

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// ListKeyMap holds the cursor and filter keys of a MovieList
type ListKeyMap struct {
	Up, Down         key.Binding
	Home, End        key.Binding
	HalfUp, HalfDown key.Binding

	// filter input
	Filter, Accept, Escape key.Binding
}

// DefaultListKeyMap returns vim-style list keys
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up:       bind("k/↑", "up", "k", "up"),
		Down:     bind("j/↓", "down", "j", "down"),
		Home:     bind("g", "first movie", "g", "home"),
		End:      bind("G", "last movie", "G", "end"),
		HalfUp:   bind("C-u", "half page up", "ctrl+u", "pgup"),
		HalfDown: bind("C-d", "half page down", "ctrl+d", "pgdown"),
		Filter:   bind("/", "filter", "/"),
		Accept:   bind("enter", "keep filter", "enter"),
		Escape:   bind("esc", "clear filter", "esc"),
	}
}

// PickerKeyMap is shared by the genre picker and the search prompt. Up and
// down avoid letters so they never collide with typed text.
type PickerKeyMap struct {
	Up, Down       key.Binding
	Select, Cancel key.Binding
}

// DefaultPickerKeyMap returns the picker keys
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up:     bind("↑", "previous", "up", "ctrl+p", "ctrl+k"),
		Down:   bind("↓", "next", "down", "ctrl+n", "ctrl+j"),
		Select: bind("enter", "choose", "enter"),
		Cancel: bind("esc", "close", "esc"),
	}
}
