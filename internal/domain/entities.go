package domain

import (
	"fmt"
	"strings"
)

// multiValueSep separates entries in the directors/writers/stars/genres fields
const multiValueSep = "|"

// Movie represents a single catalog entry as served by the backend.
// The multi-value fields hold the raw pipe-delimited text; use the accessor
// methods to split them.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	MovieURL    string  `json:"movieUrl"`
	PosterURL   string  `json:"posterUrl"`
	ReleaseYear int     `json:"releaseYear"`
	LengthMin   float64 `json:"lengthMin"`
	IMDbRating  float64 `json:"imdbRating"`
	RatingCount float64 `json:"ratingCount"`
	Plot        string  `json:"plot"`

	RawDirectors string `json:"directors"`
	RawWriters   string `json:"writers"`
	RawStars     string `json:"stars"`
	RawGenres    string `json:"genres"`
}

// Directors returns the directors split on '|'
func (m Movie) Directors() []string { return splitMulti(m.RawDirectors) }

// Writers returns the writers split on '|'
func (m Movie) Writers() []string { return splitMulti(m.RawWriters) }

// Stars returns the cast split on '|'
func (m Movie) Stars() []string { return splitMulti(m.RawStars) }

// Genres returns the genres split on '|'
func (m Movie) Genres() []string { return splitMulti(m.RawGenres) }

// splitMulti never validates: an empty field yields a single empty entry.
func splitMulti(raw string) []string {
	return strings.Split(raw, multiValueSep)
}

// Runtime returns the runtime formatted as "2h 15m" or "45m"
func (m Movie) Runtime() string {
	total := int(m.LengthMin)
	if total <= 0 {
		return ""
	}
	hours := total / 60
	minutes := total % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// YearLabel returns the release year or an empty string when unknown
func (m Movie) YearLabel() string {
	if m.ReleaseYear <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", m.ReleaseYear)
}

// RatingLabel returns the IMDb rating with its vote count, e.g. "8.1 (12k)"
func (m Movie) RatingLabel() string {
	if m.IMDbRating <= 0 {
		return ""
	}
	count := m.RatingCount
	switch {
	case count >= 1_000_000:
		return fmt.Sprintf("%.1f (%.1fM)", m.IMDbRating, count/1_000_000)
	case count >= 1_000:
		return fmt.Sprintf("%.1f (%.0fk)", m.IMDbRating, count/1_000)
	case count > 0:
		return fmt.Sprintf("%.1f (%.0f)", m.IMDbRating, count)
	default:
		return fmt.Sprintf("%.1f", m.IMDbRating)
	}
}

// FilterValue implements the fuzzy filter source used by list views
func (m Movie) FilterValue() string {
	return m.Title
}

// RemoveMovie returns a new slice without the movie matching id
func RemoveMovie(movies []Movie, id int64) []Movie {
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}

// ContainsMovie reports whether a movie with id is present
func ContainsMovie(movies []Movie, id int64) bool {
	for _, m := range movies {
		if m.ID == id {
			return true
		}
	}
	return false
}
