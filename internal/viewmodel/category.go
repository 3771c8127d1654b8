package viewmodel

import (
	"context"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/paging"
)

// Category pages through the movies of one genre
type Category struct {
	movies *paging.Pager[domain.Movie]
}

// NewCategory creates the category controller
func NewCategory(repo domain.MovieRepository, opts ...paging.Option) *Category {
	fetch := func(ctx context.Context, genre string, page int) (domain.Page[domain.Movie], error) {
		return repo.MoviesByGenre(ctx, genre, page)
	}
	return &Category{movies: paging.New(fetch, append(opts, paging.WithName("category"))...)}
}

// Open shows genre from its first page
func (c *Category) Open(ctx context.Context, genre string) (paging.State[domain.Movie], error) {
	return c.movies.Refresh(ctx, genre)
}

// LoadMore appends the next page
func (c *Category) LoadMore(ctx context.Context) (paging.State[domain.Movie], error) {
	return c.movies.LoadMore(ctx)
}

// State returns the list snapshot
func (c *Category) State() paging.State[domain.Movie] { return c.movies.State() }

// Genre returns the genre being shown
func (c *Category) Genre() string { return c.movies.Query() }
