package backend

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mmcdole/reel/internal/domain"
)

func pageQuery(page int) url.Values {
	return url.Values{"page": []string{strconv.Itoa(page)}}
}

func (c *Client) fetchPage(ctx context.Context, path string, page int) (domain.Page[domain.Movie], error) {
	var resp PagedListResponse[MovieDTO]
	if err := c.get(ctx, path, pageQuery(page), false, &resp); err != nil {
		c.logger.Error("failed to fetch movie page", "path", path, "page", page, "error", err)
		return domain.Page[domain.Movie]{}, err
	}
	c.logger.Debug("fetched movie page", "path", path, "page", page, "count", len(resp.Content))
	return mapPage(resp), nil
}

// Browse returns a page of the full catalog
func (c *Client) Browse(ctx context.Context, page int) (domain.Page[domain.Movie], error) {
	return c.fetchPage(ctx, "/movies/browse", page)
}

// TopRated returns a page of the best rated movies
func (c *Client) TopRated(ctx context.Context, page int) (domain.Page[domain.Movie], error) {
	return c.fetchPage(ctx, "/movies/topRated", page)
}

// SearchByTitle returns a page of movies whose title matches
func (c *Client) SearchByTitle(ctx context.Context, title string, page int) (domain.Page[domain.Movie], error) {
	return c.fetchPage(ctx, "/movies/title/"+url.PathEscape(title), page)
}

// MoviesByGenre returns a page of movies in genre
func (c *Client) MoviesByGenre(ctx context.Context, genre string, page int) (domain.Page[domain.Movie], error) {
	return c.fetchPage(ctx, "/movies/genre/"+url.PathEscape(genre), page)
}

// MovieByID returns one movie
func (c *Client) MovieByID(ctx context.Context, id int64) (domain.Movie, error) {
	return c.fetchMovie(ctx, "/movies", url.Values{"id": []string{strconv.FormatInt(id, 10)}})
}

// MovieByTitle returns the movie with an exact title
func (c *Client) MovieByTitle(ctx context.Context, title string) (domain.Movie, error) {
	return c.fetchMovie(ctx, "/movies/title", url.Values{"title": []string{title}})
}

func (c *Client) fetchMovie(ctx context.Context, path string, query url.Values) (domain.Movie, error) {
	body, err := c.doRequest(ctx, request{base: c.baseURL, method: http.MethodGet, path: path, query: query})
	if err != nil {
		return domain.Movie{}, err
	}
	// the API answers a miss with an empty or null body
	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return domain.Movie{}, &domain.APIError{Kind: domain.KindNotFound, Message: "Movie not found", Err: domain.ErrNotFound}
	}
	var dto MovieDTO
	if err := decode(body, &dto); err != nil {
		return domain.Movie{}, err
	}
	return mapMovie(dto), nil
}

// MoviesByTitles resolves several exact titles at once
func (c *Client) MoviesByTitles(ctx context.Context, titles []string) ([]domain.Movie, error) {
	if len(titles) == 0 {
		return nil, nil
	}
	var dtos []MovieDTO
	if err := c.get(ctx, "/movies/titles", url.Values{"titles": titles}, false, &dtos); err != nil {
		return nil, err
	}
	return mapMovies(dtos), nil
}
