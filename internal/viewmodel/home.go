package viewmodel

import (
	"context"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/paging"
)

// Home holds the top rated and newest movie rows
type Home struct {
	TopRated *paging.Pager[domain.Movie]
	Latest   *paging.Pager[domain.Movie]
}

// NewHome creates the home controller
func NewHome(movies domain.MovieRepository, opts ...paging.Option) *Home {
	return &Home{
		TopRated: paging.New(func(ctx context.Context, _ string, page int) (domain.Page[domain.Movie], error) {
			return movies.TopRated(ctx, page)
		}, append(opts, paging.WithName("top_rated"))...),
		Latest: paging.New(func(ctx context.Context, _ string, page int) (domain.Page[domain.Movie], error) {
			return movies.Browse(ctx, page)
		}, append(opts, paging.WithName("browse"))...),
	}
}

// Genres returns the categories offered on the home screen
func (h *Home) Genres() []string {
	return domain.Genres
}
