package domain

// Page is one page of a paginated backend listing
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalPages    int
	TotalElements int64
	First         bool
	Last          bool
	Empty         bool
}

// SinglePage wraps a complete, unpaginated result as page 0
func SinglePage[T any](items []T) Page[T] {
	return Page[T]{
		Content:       items,
		Size:          len(items),
		TotalPages:    1,
		TotalElements: int64(len(items)),
		First:         true,
		Last:          true,
		Empty:         len(items) == 0,
	}
}
