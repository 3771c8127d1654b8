// Package route names the screens and the identifiers passed between them.
// Routes only ever carry ids and names, never whole entities.
package route

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Patterns of every screen
const (
	Home       = "movies/home"
	Login      = "movies/login"
	Register   = "movies/register"
	Profile    = "movies/profile"
	CreateList = "movies/create_list/{username}"
	Browse     = "movies/browse"
	Details    = "movies/details/{movieId}"
	Category   = "movies/category/{category_name}"
	Search     = "movies/search"
)

// Patterns lists every known pattern
var Patterns = []string{Home, Login, Register, Profile, CreateList, Browse, Details, Category, Search}

var (
	// ErrUnknownRoute is returned when a path matches no pattern
	ErrUnknownRoute = errors.New("unknown route")

	// ErrMissingParam is returned when a pattern parameter has no value
	ErrMissingParam = errors.New("missing route parameter")
)

// Route is a parsed path
type Route struct {
	Pattern string
	Params  map[string]string
	Query   url.Values
}

// String renders the route back to a path
func (r Route) String() string {
	path, err := Build(r.Pattern, r.Params)
	if err != nil {
		return r.Pattern
	}
	if len(r.Query) > 0 {
		path += "?" + r.Query.Encode()
	}
	return path
}

// Param returns a path parameter
func (r Route) Param(name string) (string, error) {
	v, ok := r.Params[name]
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return v, nil
}

// Int64 returns a path parameter as an integer
func (r Route) Int64(name string) (int64, error) {
	v, err := r.Param(name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("route parameter %s: %w", name, err)
	}
	return n, nil
}

// Build fills the {placeholders} of pattern. Values are path-escaped.
func Build(pattern string, params map[string]string) (string, error) {
	parts := strings.Split(pattern, "/")
	for i, part := range parts {
		name, ok := placeholder(part)
		if !ok {
			continue
		}
		v, ok := params[name]
		if !ok || v == "" {
			return "", fmt.Errorf("%w: %s", ErrMissingParam, name)
		}
		parts[i] = url.PathEscape(v)
	}
	return strings.Join(parts, "/"), nil
}

// Parse matches path against the known patterns
func Parse(path string) (Route, error) {
	rawPath, rawQuery, _ := strings.Cut(strings.Trim(path, "/"), "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return Route{}, fmt.Errorf("invalid route query: %w", err)
	}
	segments := strings.Split(rawPath, "/")

	for _, pattern := range Patterns {
		params, ok := match(strings.Split(pattern, "/"), segments)
		if ok {
			return Route{Pattern: pattern, Params: params, Query: query}, nil
		}
	}
	return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
}

func match(pattern, segments []string) (map[string]string, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}
	params := make(map[string]string)
	for i, part := range pattern {
		if name, ok := placeholder(part); ok {
			v, err := url.PathUnescape(segments[i])
			if err != nil || v == "" {
				return nil, false
			}
			params[name] = v
			continue
		}
		if part != segments[i] {
			return nil, false
		}
	}
	return params, true
}

func placeholder(part string) (string, bool) {
	if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") && len(part) > 2 {
		return part[1 : len(part)-1], true
	}
	return "", false
}

// ToDetails returns the details route of a movie
func ToDetails(movieID int64) Route {
	return Route{Pattern: Details, Params: map[string]string{"movieId": strconv.FormatInt(movieID, 10)}}
}

// ToCategory returns the route of a genre
func ToCategory(genre string) Route {
	return Route{Pattern: Category, Params: map[string]string{"category_name": genre}}
}

// ToCreateList returns the list editor route of a user
func ToCreateList(username string) Route {
	return Route{Pattern: CreateList, Params: map[string]string{"username": username}}
}

// To returns a route without parameters
func To(pattern string) Route {
	return Route{Pattern: pattern}
}
