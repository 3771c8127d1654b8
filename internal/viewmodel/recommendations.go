package viewmodel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/paging"
)

// Recommendations pages through movies similar to the user's favorites.
// Page k holds the movies similar to the k-th favorite.
type Recommendations struct {
	lists    domain.UserListRepository
	recs     domain.RecommendationRepository
	sessions SessionStore
	pager    *paging.Pager[domain.Movie]
	logger   *slog.Logger

	mu        sync.Mutex
	favorites []domain.Movie
}

// NewRecommendations creates the recommendations controller
func NewRecommendations(lists domain.UserListRepository, recs domain.RecommendationRepository, sessions SessionStore, logger *slog.Logger, opts ...paging.Option) *Recommendations {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Recommendations{lists: lists, recs: recs, sessions: sessions, logger: logger}
	r.pager = paging.New(r.fetch, append(opts, paging.WithName("recommendations"))...)
	return r
}

func (r *Recommendations) fetch(ctx context.Context, _ string, page int) (domain.Page[domain.Movie], error) {
	r.mu.Lock()
	favorites := r.favorites
	r.mu.Unlock()

	if page >= len(favorites) {
		return domain.Page[domain.Movie]{Number: page, Last: true, Empty: true}, nil
	}
	seed := favorites[page]
	movies, err := r.recs.Similar(ctx, seed.ID)
	if err != nil {
		return domain.Page[domain.Movie]{}, err
	}
	r.logger.Debug("fetched recommendations", "seed", seed.Title, "count", len(movies))
	return domain.Page[domain.Movie]{
		Content:    movies,
		Number:     page,
		Size:       len(movies),
		TotalPages: len(favorites),
		First:      page == 0,
		Last:       page == len(favorites)-1,
		Empty:      len(movies) == 0,
	}, nil
}

// Refresh reloads the favorites and the first page. Without a signed-in
// user, or without favorites, the list is Empty.
func (r *Recommendations) Refresh(ctx context.Context) (paging.State[domain.Movie], error) {
	username := r.sessions.Username()
	if username == "" {
		r.pager.SetEmpty()
		return r.pager.State(), nil
	}

	r.pager.Set(r.pager.State().BeginLoad())
	favorites, err := r.lists.List(ctx, domain.ListLiked, username)
	if err != nil {
		r.logger.Error("failed to load favorites", "error", err)
		r.pager.Set(r.pager.State().Fail(err))
		return r.pager.State(), err
	}
	if len(favorites) == 0 {
		r.pager.SetEmpty()
		return r.pager.State(), nil
	}

	r.mu.Lock()
	r.favorites = favorites
	r.mu.Unlock()
	return r.pager.Refresh(ctx, username)
}

// LoadMore moves on to the next favorite
func (r *Recommendations) LoadMore(ctx context.Context) (paging.State[domain.Movie], error) {
	if r.pager.Query() == "" {
		return r.pager.State(), nil
	}
	return r.pager.LoadMore(ctx)
}

// State returns the list snapshot
func (r *Recommendations) State() paging.State[domain.Movie] { return r.pager.State() }

// Reset forgets the favorites and the list, e.g. after logout
func (r *Recommendations) Reset() {
	r.mu.Lock()
	r.favorites = nil
	r.mu.Unlock()
	r.pager.Reset()
}
