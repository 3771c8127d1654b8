package viewmodel

import (
	"context"
	"strings"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/paging"
)

// Search pages through title matches for the current query
type Search struct {
	results *paging.Pager[domain.Movie]
}

// NewSearch creates the search controller
func NewSearch(movies domain.MovieRepository, opts ...paging.Option) *Search {
	fetch := func(ctx context.Context, query string, page int) (domain.Page[domain.Movie], error) {
		return movies.SearchByTitle(ctx, query, page)
	}
	return &Search{results: paging.New(fetch, append(opts, paging.WithName("search"))...)}
}

// Search starts over with query. A blank query returns to Idle without a call.
func (s *Search) Search(ctx context.Context, query string) (paging.State[domain.Movie], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		s.results.Reset()
		return s.results.State(), nil
	}
	return s.results.Refresh(ctx, query)
}

// LoadMore appends the next page of results
func (s *Search) LoadMore(ctx context.Context) (paging.State[domain.Movie], error) {
	if s.results.Query() == "" {
		return s.results.State(), nil
	}
	return s.results.LoadMore(ctx)
}

// State returns the results snapshot
func (s *Search) State() paging.State[domain.Movie] { return s.results.State() }

// Query returns the query the results belong to
func (s *Search) Query() string { return s.results.Query() }
