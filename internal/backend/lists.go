package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mmcdole/reel/internal/domain"
)

type listPaths struct {
	get    string
	add    string
	remove string
}

var userListPaths = map[domain.ListKind]listPaths{
	domain.ListWatchLater: {
		get:    "/movies/user/getWatchLaterMovies/",
		add:    "/movies/user/addMovieToWatchLaterList",
		remove: "/movies/user/removeMovieFromWatchLaterList",
	},
	domain.ListLiked: {
		get:    "/movies/user/getLikedMovies/",
		add:    "/movies/user/addMovieToLikedList",
		remove: "/movies/user/removeMovieFromLikedList",
	},
}

func pathsFor(kind domain.ListKind) (listPaths, error) {
	p, ok := userListPaths[kind]
	if !ok {
		return listPaths{}, fmt.Errorf("unknown list kind: %d", kind)
	}
	return p, nil
}

func membershipQuery(username string, movieID int64) url.Values {
	return url.Values{
		"username": []string{username},
		"movieId":  []string{strconv.FormatInt(movieID, 10)},
	}
}

// List returns every movie on the user's list
func (c *Client) List(ctx context.Context, kind domain.ListKind, username string) ([]domain.Movie, error) {
	p, err := pathsFor(kind)
	if err != nil {
		return nil, err
	}
	var dtos []MovieDTO
	if err := c.get(ctx, p.get+url.PathEscape(username), nil, true, &dtos); err != nil {
		c.logger.Error("failed to fetch user list", "list", kind.String(), "error", err)
		return nil, err
	}
	c.logger.Debug("fetched user list", "list", kind.String(), "count", len(dtos))
	return mapMovies(dtos), nil
}

// Add puts a movie on the list and returns it
func (c *Client) Add(ctx context.Context, kind domain.ListKind, username string, movieID int64) (domain.Movie, error) {
	p, err := pathsFor(kind)
	if err != nil {
		return domain.Movie{}, err
	}
	body, err := c.doRequest(ctx, request{
		base:   c.baseURL,
		method: http.MethodPost,
		path:   p.add,
		query:  membershipQuery(username, movieID),
		auth:   true,
	})
	if err != nil {
		return domain.Movie{}, err
	}
	var dto MovieDTO
	if err := decode(body, &dto); err != nil {
		return domain.Movie{}, err
	}
	return mapMovie(dto), nil
}

// Remove takes a movie off the list
func (c *Client) Remove(ctx context.Context, kind domain.ListKind, username string, movieID int64) error {
	p, err := pathsFor(kind)
	if err != nil {
		return err
	}
	_, err = c.doRequest(ctx, request{
		base:   c.baseURL,
		method: http.MethodDelete,
		path:   p.remove,
		query:  membershipQuery(username, movieID),
		auth:   true,
	})
	return err
}
