package domain

import (
	"context"
)

// Credentials is the login form payload
type Credentials struct {
	Username string
	Password string
}

// Registration is the signup form payload
type Registration struct {
	Username string
	Email    string
	Password string
}

// AuthRepository talks to the authentication endpoints
type AuthRepository interface {
	// Login exchanges credentials for a session
	Login(ctx context.Context, creds Credentials) (Session, error)

	// Register creates an account. The returned string is the server's message.
	Register(ctx context.Context, reg Registration) (string, error)

	// Logout revokes the refresh token server-side
	Logout(ctx context.Context, refreshToken string) error

	// LoginWithGoogle exchanges a Google ID token for a session
	LoginWithGoogle(ctx context.Context, idToken string) (Session, error)
}

// MovieRepository provides the public catalog
type MovieRepository interface {
	Browse(ctx context.Context, page int) (Page[Movie], error)
	TopRated(ctx context.Context, page int) (Page[Movie], error)
	MovieByID(ctx context.Context, id int64) (Movie, error)
	MovieByTitle(ctx context.Context, title string) (Movie, error)
	MoviesByTitles(ctx context.Context, titles []string) ([]Movie, error)
	SearchByTitle(ctx context.Context, title string, page int) (Page[Movie], error)
	MoviesByGenre(ctx context.Context, genre string, page int) (Page[Movie], error)
}

// ListKind names one of the per-user movie lists
type ListKind int

const (
	ListWatchLater ListKind = iota
	ListLiked
)

func (k ListKind) String() string {
	if k == ListLiked {
		return "favorites"
	}
	return "watchlist"
}

// UserListRepository manages the per-user watchlist and favorites.
// All calls require a bearer token.
type UserListRepository interface {
	List(ctx context.Context, kind ListKind, username string) ([]Movie, error)
	Add(ctx context.Context, kind ListKind, username string, movieID int64) (Movie, error)
	Remove(ctx context.Context, kind ListKind, username string, movieID int64) error
}

// RecommendationRepository returns movies similar to a seed movie
type RecommendationRepository interface {
	Similar(ctx context.Context, movieID int64) ([]Movie, error)
}

// MovieCache keeps previously fetched movies for offline display
type MovieCache interface {
	PutMovie(m Movie) error
	GetMovie(id int64) (Movie, bool)
}
