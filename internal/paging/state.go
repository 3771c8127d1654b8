// Package paging holds the list state shared by every paginated screen:
// an immutable list state, a page cursor, a boundary trigger and a
// generic pager that ties them to a remote fetch.
package paging

import "github.com/mmcdole/reel/internal/domain"

// Status is the tag of a list State
type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	Error
	Empty
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Error:
		return "error"
	case Empty:
		return "empty"
	default:
		return "idle"
	}
}

// State is a snapshot of one list. A State is never mutated after it is
// published; every transition builds a new value with a fresh slice.
//
// In the Error state Items still holds what was visible before the failure
// so a failed load-more does not blank the screen.
type State[T any] struct {
	Status  Status
	Items   []T
	Err     error
	Message string

	// Last mirrors the server's final-page flag of the latest page. It is
	// shown to the user and never stops a load-more.
	Last bool

	// set when the chain since the last Loaded passed through Error;
	// the next Complete then starts over instead of appending
	fromError bool
}

// Len returns the number of visible items
func (s State[T]) Len() int {
	return len(s.Items)
}

// BeginLoad transitions to Loading. Visible items are carried over.
func (s State[T]) BeginLoad() State[T] {
	return State[T]{
		Status:    Loading,
		Items:     s.Items,
		Last:      s.Last,
		fromError: s.fromError || s.Status == Error,
	}
}

// Complete transitions to Loaded. With appendMode the items are concatenated
// onto the previously loaded ones, otherwise they replace them. Completing
// after an Error yields only the new items.
func (s State[T]) Complete(items []T, appendMode bool) State[T] {
	var base []T
	if appendMode && !s.fromError && s.Status != Error {
		base = s.Items
	}
	merged := make([]T, 0, len(base)+len(items))
	merged = append(merged, base...)
	merged = append(merged, items...)
	return State[T]{Status: Loaded, Items: merged}
}

// Fail transitions to Error. Items fetched by the failed call are dropped.
func (s State[T]) Fail(err error) State[T] {
	return State[T]{
		Status:  Error,
		Items:   s.Items,
		Err:     err,
		Message: domain.UserMessage(err),
	}
}

// LoadedState builds a Loaded state holding a copy of items
func LoadedState[T any](items []T) State[T] {
	return State[T]{Status: Loaded, Items: append([]T(nil), items...)}
}

// EmptyState builds the Empty state
func EmptyState[T any]() State[T] {
	return State[T]{Status: Empty}
}
