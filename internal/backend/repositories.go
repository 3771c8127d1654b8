package backend

import "github.com/mmcdole/reel/internal/domain"

var (
	_ domain.AuthRepository           = (*Client)(nil)
	_ domain.MovieRepository          = (*Client)(nil)
	_ domain.UserListRepository       = (*Client)(nil)
	_ domain.RecommendationRepository = (*Client)(nil)
)
