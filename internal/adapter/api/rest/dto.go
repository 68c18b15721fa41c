package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"movie-collections/internal/core/domain/catalog"
	"movie-collections/internal/core/domain/membership"
)

// toggleResponse is the body of a successful toggle.
type toggleResponse struct {
	Status membership.ToggleStatus `json:"status"`
}

// pageResponse is the body of every listing call.
type pageResponse struct {
	Items      []catalog.AnnotatedMovie `json:"items"`
	TotalPages int                      `json:"totalPages"`
}

// activitiesResponse wraps the recent-activity feed.
type activitiesResponse struct {
	Activities []membership.Activity `json:"activities"`
}

// genresResponse wraps the distinct genre list.
type genresResponse struct {
	Genres []string `json:"genres"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// parsePage validates the page query parameter. Absent means page 1;
// anything that is not an integer >= 1 is a caller error rejected
// before any service call.
func parsePage(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("page %q is not a number", raw)
	}
	if page < 1 {
		return 0, fmt.Errorf("page must be >= 1, got %d", page)
	}
	return page, nil
}

// parseFilter validates and assembles the filter query parameters:
// query (search text), minYear, maxYear, genres (comma-separated).
func parseFilter(r *http.Request) (catalog.Filter, error) {
	q := r.URL.Query()
	filter := catalog.Filter{
		Search: strings.TrimSpace(q.Get("query")),
	}

	var err error
	if filter.MinYear, err = parseYear(q.Get("minYear")); err != nil {
		return catalog.Filter{}, err
	}
	if filter.MaxYear, err = parseYear(q.Get("maxYear")); err != nil {
		return catalog.Filter{}, err
	}
	if filter.MinYear > 0 && filter.MaxYear > 0 && filter.MinYear > filter.MaxYear {
		return catalog.Filter{}, fmt.Errorf("minYear %d exceeds maxYear %d", filter.MinYear, filter.MaxYear)
	}

	if raw := q.Get("genres"); raw != "" {
		for _, g := range strings.Split(raw, ",") {
			if g = strings.TrimSpace(g); g != "" {
				filter.Genres = append(filter.Genres, g)
			}
		}
	}
	return filter, nil
}

func parseYear(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("year %q is not a number", raw)
	}
	if year < 0 {
		return 0, fmt.Errorf("year must be positive, got %d", year)
	}
	return year, nil
}
