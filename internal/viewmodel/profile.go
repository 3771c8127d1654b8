package viewmodel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/paging"
)

// Profile holds the signed-in user's watchlist and favorites. Both are sets
// keyed by movie id and change only after the server accepted the change.
type Profile struct {
	mu       sync.Mutex
	repo     domain.UserListRepository
	sessions SessionStore
	lists    map[domain.ListKind]paging.State[domain.Movie]
	logger   *slog.Logger
}

// NewProfile creates the profile controller
func NewProfile(repo domain.UserListRepository, sessions SessionStore, logger *slog.Logger) *Profile {
	if logger == nil {
		logger = slog.Default()
	}
	return &Profile{
		repo:     repo,
		sessions: sessions,
		lists:    make(map[domain.ListKind]paging.State[domain.Movie]),
		logger:   logger,
	}
}

// Session returns the profile owner's session
func (p *Profile) Session() domain.Session {
	return p.sessions.Current()
}

// List returns the snapshot of one list
func (p *Profile) List(kind domain.ListKind) paging.State[domain.Movie] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lists[kind]
}

func (p *Profile) set(kind domain.ListKind, s paging.State[domain.Movie]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lists[kind] = s
}

// Load fetches both lists in full. Without a session both lists are Empty.
func (p *Profile) Load(ctx context.Context) error {
	username := p.sessions.Username()
	if username == "" {
		p.set(domain.ListWatchLater, paging.EmptyState[domain.Movie]())
		p.set(domain.ListLiked, paging.EmptyState[domain.Movie]())
		return nil
	}

	var firstErr error
	for _, kind := range []domain.ListKind{domain.ListWatchLater, domain.ListLiked} {
		p.set(kind, p.List(kind).BeginLoad())
		movies, err := p.repo.List(ctx, kind, username)
		if err != nil {
			p.logger.Error("failed to load list", "list", kind.String(), "error", err)
			p.set(kind, p.List(kind).Fail(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		p.set(kind, paging.LoadedState(dedupe(movies)))
	}
	return firstErr
}

// Contains reports whether movieID is on the list
func (p *Profile) Contains(kind domain.ListKind, movieID int64) bool {
	return domain.ContainsMovie(p.List(kind).Items, movieID)
}

// Add puts a movie on a list. The other list is left as it is.
func (p *Profile) Add(ctx context.Context, kind domain.ListKind, movieID int64) (paging.State[domain.Movie], error) {
	username := p.sessions.Username()
	if username == "" {
		return p.List(kind), domain.ErrNotLoggedIn
	}

	movie, err := p.repo.Add(ctx, kind, username, movieID)
	if err != nil {
		p.logger.Error("failed to add movie", "list", kind.String(), "movie_id", movieID, "error", err)
		return p.List(kind), err
	}
	// some responses omit the id; the request is authoritative
	if movie.ID == 0 {
		movie.ID = movieID
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	current := p.lists[kind].Items
	if !domain.ContainsMovie(current, movie.ID) {
		current = append(append([]domain.Movie(nil), current...), movie)
	}
	p.lists[kind] = paging.LoadedState(current)
	p.logger.Debug("added movie", "list", kind.String(), "movie_id", movie.ID)
	return p.lists[kind], nil
}

// Remove takes a movie off a list. The other list is left as it is.
func (p *Profile) Remove(ctx context.Context, kind domain.ListKind, movieID int64) (paging.State[domain.Movie], error) {
	username := p.sessions.Username()
	if username == "" {
		return p.List(kind), domain.ErrNotLoggedIn
	}

	if err := p.repo.Remove(ctx, kind, username, movieID); err != nil {
		p.logger.Error("failed to remove movie", "list", kind.String(), "movie_id", movieID, "error", err)
		return p.List(kind), err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.lists[kind] = paging.LoadedState(domain.RemoveMovie(p.lists[kind].Items, movieID))
	p.logger.Debug("removed movie", "list", kind.String(), "movie_id", movieID)
	return p.lists[kind], nil
}

// Toggle adds the movie when absent and removes it when present
func (p *Profile) Toggle(ctx context.Context, kind domain.ListKind, movieID int64) (paging.State[domain.Movie], error) {
	if p.Contains(kind, movieID) {
		return p.Remove(ctx, kind, movieID)
	}
	return p.Add(ctx, kind, movieID)
}

// Clear forgets both lists, e.g. after logout
func (p *Profile) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lists = make(map[domain.ListKind]paging.State[domain.Movie])
}

func dedupe(movies []domain.Movie) []domain.Movie {
	seen := make(map[int64]bool, len(movies))
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	return out
}
