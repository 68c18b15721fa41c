package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		pageSize int
		want     int
	}{
		{"empty set still occupies one page", 0, 6, 1},
		{"exact single page", 6, 6, 1},
		{"one over spills to second page", 7, 6, 2},
		{"partial page", 5, 6, 1},
		{"many pages", 25, 6, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.total, tt.pageSize))
		})
	}
}

func TestFilter_Validate(t *testing.T) {
	assert.NoError(t, Filter{}.Validate())
	assert.NoError(t, Filter{MinYear: 2000, MaxYear: 2010}.Validate())
	assert.NoError(t, Filter{MinYear: 2000}.Validate())
	assert.NoError(t, Filter{MaxYear: 2010}.Validate())

	err := Filter{MinYear: 2011, MaxYear: 2010}.Validate()
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFilter_Matches(t *testing.T) {
	movie := Movie{
		ID:       "m1",
		Title:    "The Long Goodbye",
		Synopsis: "A private detective in Los Angeles.",
		Released: 1973,
		Genre:    "Crime",
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"zero filter matches everything", Filter{}, true},
		{"search matches title case-insensitively", Filter{Search: "long good"}, true},
		{"search matches synopsis", Filter{Search: "DETECTIVE"}, true},
		{"search miss", Filter{Search: "spaceship"}, false},
		{"year range inclusive lower", Filter{MinYear: 1973}, true},
		{"year range inclusive upper", Filter{MaxYear: 1973}, true},
		{"year below range", Filter{MinYear: 1974}, false},
		{"year above range", Filter{MaxYear: 1972}, false},
		{"genre member", Filter{Genres: []string{"Drama", "Crime"}}, true},
		{"genre case-insensitive", Filter{Genres: []string{"crime"}}, true},
		{"genre non-member", Filter{Genres: []string{"Comedy"}}, false},
		{"empty genre set imposes no restriction", Filter{Genres: []string{}}, true},
		{"conjunction: all constraints must hold", Filter{Search: "goodbye", MinYear: 1970, MaxYear: 1980, Genres: []string{"Crime"}}, true},
		{"conjunction: one failing constraint rejects", Filter{Search: "goodbye", MinYear: 1980, Genres: []string{"Crime"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(movie))
		})
	}
}
