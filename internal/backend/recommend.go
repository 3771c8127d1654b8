package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mmcdole/reel/internal/domain"
)

// Similar asks the recommendation service for movies like movieID
func (c *Client) Similar(ctx context.Context, movieID int64) ([]domain.Movie, error) {
	body, err := c.doRequest(ctx, request{
		base:   c.recURL,
		method: http.MethodGet,
		path:   "/recommendations",
		query:  url.Values{"movie_id": []string{strconv.FormatInt(movieID, 10)}},
	})
	if err != nil {
		c.logger.Error("failed to fetch recommendations", "movie_id", movieID, "error", err)
		return nil, err
	}
	var dtos []MovieDTO
	if err := decode(body, &dtos); err != nil {
		return nil, err
	}
	c.logger.Debug("fetched recommendations", "movie_id", movieID, "count", len(dtos))
	return mapMovies(dtos), nil
}
