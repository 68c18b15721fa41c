package catalog

import (
	"fmt"
	"strings"
)

// ErrValidation is the sentinel error for validation failures.
var ErrValidation = fmt.Errorf("validation failed")

// Movie is a catalog record. The catalog is read-only from this
// service's perspective; movies are never created or mutated here.
type Movie struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Synopsis string `json:"synopsis"`
	Released int    `json:"released"`
	Genre    string `json:"genre"`
}

// AnnotatedMovie is a Movie decorated with the calling user's own
// membership flags.
type AnnotatedMovie struct {
	Movie
	Favorited  bool `json:"favorited"`
	WatchLater bool `json:"watchLater"`
}

// PageResult is the uniform paginated response shape. TotalPages is
// derived from the matching-set cardinality at query time; an empty
// matching set reports TotalPages = 1.
type PageResult[T any] struct {
	Items      []T `json:"items"`
	TotalPages int `json:"totalPages"`
}

// TotalPages computes the page count for a matching set of size total
// with the given page size. The empty set still occupies one page.
func TotalPages(total, pageSize int) int {
	if total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Filter is the conjunctive set of optional constraints applied to
// catalog and watch-later queries. Zero values impose no restriction.
type Filter struct {
	Search  string
	MinYear int
	MaxYear int
	Genres  []string
}

// IsZero reports whether the filter imposes no restriction at all.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.MinYear == 0 && f.MaxYear == 0 && len(f.Genres) == 0
}

// Validate checks the year bounds. Bounds are inclusive; a zero bound
// means unbounded on that side.
func (f Filter) Validate() error {
	if f.MinYear < 0 || f.MaxYear < 0 {
		return fmt.Errorf("%w: year bounds must be positive", ErrValidation)
	}
	if f.MinYear > 0 && f.MaxYear > 0 && f.MinYear > f.MaxYear {
		return fmt.Errorf("%w: minYear %d exceeds maxYear %d", ErrValidation, f.MinYear, f.MaxYear)
	}
	return nil
}

// Matches reports whether the movie satisfies every provided
// constraint. Search text is matched case-insensitively as a substring
// of the title or synopsis; year bounds are inclusive; a non-empty
// genre set requires the movie's genre to be a member.
func (f Filter) Matches(m Movie) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(m.Title), q) &&
			!strings.Contains(strings.ToLower(m.Synopsis), q) {
			return false
		}
	}
	if f.MinYear > 0 && m.Released < f.MinYear {
		return false
	}
	if f.MaxYear > 0 && m.Released > f.MaxYear {
		return false
	}
	if len(f.Genres) > 0 {
		found := false
		for _, g := range f.Genres {
			if strings.EqualFold(g, m.Genre) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
