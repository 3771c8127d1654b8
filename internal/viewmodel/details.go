package viewmodel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/paging"
)

// DetailsState is a snapshot of the details screen
type DetailsState struct {
	Status  paging.Status
	MovieID int64
	Movie   domain.Movie
	// Cached is set when Movie came from the local cache because the
	// server was unreachable
	Cached  bool
	Similar paging.State[domain.Movie]
	Err     error
	Message string
}

// Details loads one movie and the movies similar to it
type Details struct {
	mu         sync.Mutex
	movies     domain.MovieRepository
	recs       domain.RecommendationRepository
	cache      domain.MovieCache
	state      DetailsState
	generation uint64
	logger     *slog.Logger
}

// NewDetails creates the details controller. cache may be nil.
func NewDetails(movies domain.MovieRepository, recs domain.RecommendationRepository, cache domain.MovieCache, logger *slog.Logger) *Details {
	if logger == nil {
		logger = slog.Default()
	}
	return &Details{movies: movies, recs: recs, cache: cache, logger: logger}
}

// State returns the current snapshot
func (d *Details) State() DetailsState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// publish stores s if gen is still current and returns the live state
func (d *Details) publish(gen uint64, s DetailsState) DetailsState {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen == d.generation {
		d.state = s
	}
	return d.state
}

// Open loads movie id. A failure of the similar-movies call only affects
// that section.
func (d *Details) Open(ctx context.Context, id int64) (DetailsState, error) {
	d.mu.Lock()
	d.generation++
	gen := d.generation
	d.state = DetailsState{Status: paging.Loading, MovieID: id}
	d.mu.Unlock()

	movie, err := d.movies.MovieByID(ctx, id)
	cached := false
	if err != nil && d.cache != nil && domain.KindOf(err) == domain.KindNetwork {
		if m, ok := d.cache.GetMovie(id); ok {
			d.logger.Info("showing cached movie", "movie_id", id)
			movie, cached, err = m, true, nil
		}
	}
	if err != nil {
		d.logger.Error("failed to load movie", "movie_id", id, "error", err)
		failed := DetailsState{Status: paging.Error, MovieID: id, Err: err, Message: domain.UserMessage(err)}
		return d.publish(gen, failed), err
	}
	if d.cache != nil && !cached {
		if err := d.cache.PutMovie(movie); err != nil {
			d.logger.Warn("failed to cache movie", "movie_id", id, "error", err)
		}
	}

	loaded := DetailsState{
		Status:  paging.Loaded,
		MovieID: id,
		Movie:   movie,
		Cached:  cached,
		Similar: paging.State[domain.Movie]{Status: paging.Loading},
	}
	d.publish(gen, loaded)

	similar, err := d.recs.Similar(ctx, id)
	if err != nil {
		d.logger.Error("failed to load similar movies", "movie_id", id, "error", err)
		loaded.Similar = loaded.Similar.Fail(err)
	} else {
		loaded.Similar = paging.LoadedState(domain.RemoveMovie(similar, id))
	}
	return d.publish(gen, loaded), nil
}
