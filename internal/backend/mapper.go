package backend

import "github.com/mmcdole/reel/internal/domain"

// mapMovie converts a wire movie to the domain type
func mapMovie(d MovieDTO) domain.Movie {
	return domain.Movie{
		ID:           d.ID,
		Title:        d.Title,
		MovieURL:     d.MovieURL,
		PosterURL:    d.PosterURL,
		ReleaseYear:  d.ReleaseYear,
		LengthMin:    d.LengthMin,
		IMDbRating:   d.IMDbRating,
		RatingCount:  d.RatingCount,
		Plot:         d.Plot,
		RawDirectors: d.Directors,
		RawWriters:   d.Writers,
		RawStars:     d.Stars,
		RawGenres:    d.Genres,
	}
}

func mapMovies(dtos []MovieDTO) []domain.Movie {
	movies := make([]domain.Movie, 0, len(dtos))
	for _, d := range dtos {
		movies = append(movies, mapMovie(d))
	}
	return movies
}

func mapPage(resp PagedListResponse[MovieDTO]) domain.Page[domain.Movie] {
	return domain.Page[domain.Movie]{
		Content:       mapMovies(resp.Content),
		Number:        resp.Number,
		Size:          resp.Size,
		TotalPages:    resp.TotalPages,
		TotalElements: resp.TotalElements,
		First:         resp.First,
		Last:          resp.Last,
		Empty:         resp.Empty,
	}
}

func mapSession(resp LoginResponse) domain.Session {
	return domain.Session{
		AccessToken:  resp.JWTResponse.AccessToken,
		RefreshToken: resp.JWTResponse.RefreshToken,
		Username:     resp.UserInfo.Username,
		Email:        resp.UserInfo.Email,
		AvatarURL:    resp.UserInfo.ProfilePicture,
	}
}
