package viewmodel

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/session"
	"github.com/mmcdole/reel/internal/store"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSessions(t *testing.T, initial *domain.Session) (*session.Manager, *store.Store) {
	t.Helper()
	s, err := store.NewStore("")
	require.NoError(t, err)
	if initial != nil {
		require.NoError(t, s.SaveSession(*initial))
	}
	return session.NewManager(s, quietLogger()), s
}

func movie(id int64) domain.Movie {
	return domain.Movie{ID: id, Title: fmt.Sprintf("movie-%d", id)}
}

func movies(ids ...int64) []domain.Movie {
	out := make([]domain.Movie, len(ids))
	for i, id := range ids {
		out[i] = movie(id)
	}
	return out
}

// fakeAuth records calls and returns canned results
type fakeAuth struct {
	mu            sync.Mutex
	loginCalls    int
	registerCalls int
	logoutCalls   []string
	session       domain.Session
	err           error
	// block, when set, parks Login until it is closed
	block chan struct{}
}

func (f *fakeAuth) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	f.mu.Lock()
	f.loginCalls++
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if f.err != nil {
		return domain.Session{}, f.err
	}
	s := f.session
	if s.Username == "" {
		s.Username = creds.Username
	}
	return s, nil
}

func (f *fakeAuth) Register(ctx context.Context, reg domain.Registration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerCalls++
	return "ok", f.err
}

func (f *fakeAuth) Logout(ctx context.Context, refreshToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls = append(f.logoutCalls, refreshToken)
	return f.err
}

func (f *fakeAuth) LoginWithGoogle(ctx context.Context, idToken string) (domain.Session, error) {
	if f.err != nil {
		return domain.Session{}, f.err
	}
	return f.session, nil
}

// fakeMovies serves pages of three movies with ids derived from the page
type fakeMovies struct {
	mu       sync.Mutex
	calls    []string
	notFound bool
	offline  bool
}

func (f *fakeMovies) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeMovies) page(base int64, page int) domain.Page[domain.Movie] {
	start := base + int64(page)*3
	return domain.Page[domain.Movie]{Content: movies(start, start+1, start+2), Number: page}
}

func (f *fakeMovies) Browse(ctx context.Context, page int) (domain.Page[domain.Movie], error) {
	f.record(fmt.Sprintf("browse:%d", page))
	return f.page(1000, page), nil
}

func (f *fakeMovies) TopRated(ctx context.Context, page int) (domain.Page[domain.Movie], error) {
	f.record(fmt.Sprintf("top:%d", page))
	return f.page(0, page), nil
}

func (f *fakeMovies) MovieByID(ctx context.Context, id int64) (domain.Movie, error) {
	f.record(fmt.Sprintf("movie:%d", id))
	switch {
	case f.offline:
		return domain.Movie{}, &domain.APIError{Kind: domain.KindNetwork, Err: domain.ErrServerOffline}
	case f.notFound:
		return domain.Movie{}, &domain.APIError{Kind: domain.KindNotFound, StatusCode: 404, Message: "Movie not found", Err: domain.ErrNotFound}
	}
	return movie(id), nil
}

func (f *fakeMovies) MovieByTitle(ctx context.Context, title string) (domain.Movie, error) {
	return domain.Movie{ID: 1, Title: title}, nil
}

func (f *fakeMovies) MoviesByTitles(ctx context.Context, titles []string) ([]domain.Movie, error) {
	return nil, nil
}

func (f *fakeMovies) SearchByTitle(ctx context.Context, title string, page int) (domain.Page[domain.Movie], error) {
	f.record(fmt.Sprintf("search:%s:%d", title, page))
	return f.page(2000, page), nil
}

func (f *fakeMovies) MoviesByGenre(ctx context.Context, genre string, page int) (domain.Page[domain.Movie], error) {
	f.record(fmt.Sprintf("genre:%s:%d", genre, page))
	return f.page(3000, page), nil
}

// fakeLists keeps per-user lists in memory
type fakeLists struct {
	mu    sync.Mutex
	lists map[domain.ListKind][]domain.Movie
	calls int
	err   error
}

func newFakeLists() *fakeLists {
	return &fakeLists{lists: make(map[domain.ListKind][]domain.Movie)}
}

func (f *fakeLists) List(ctx context.Context, kind domain.ListKind, username string) ([]domain.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Movie(nil), f.lists[kind]...), nil
}

func (f *fakeLists) Add(ctx context.Context, kind domain.ListKind, username string, movieID int64) (domain.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return domain.Movie{}, f.err
	}
	m := movie(movieID)
	f.lists[kind] = append(f.lists[kind], m)
	return m, nil
}

func (f *fakeLists) Remove(ctx context.Context, kind domain.ListKind, username string, movieID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.lists[kind] = domain.RemoveMovie(f.lists[kind], movieID)
	return nil
}

// fakeRecs returns movies seed*10+1 and seed*10+2
type fakeRecs struct {
	mu    sync.Mutex
	seeds []int64
	err   error
}

func (f *fakeRecs) Similar(ctx context.Context, movieID int64) ([]domain.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeds = append(f.seeds, movieID)
	if f.err != nil {
		return nil, f.err
	}
	return movies(movieID*10+1, movieID*10+2, movieID), nil
}

func newMemCache(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewStore("")
	require.NoError(t, err)
	return s
}
