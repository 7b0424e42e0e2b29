package client

import (
	"strings"

	"reelist/models"
)

// Filter narrows the loaded catalog entirely in memory; applying one
// never triggers a network call.
//
// Watched and Unwatched mirror the grid's checkbox pair: both off and
// both on mean "no watched filter". Zero-valued range bounds are
// unbounded.
type Filter struct {
	Search    string
	Watched   bool
	Unwatched bool
	MinRating float64
	MaxRating float64
	MinYear   int
	MaxYear   int
}

// Filtered returns the movies matching f, preserving rank order.
func (c *Controller) Filtered(f Filter) []models.MovieRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	search := strings.ToLower(f.Search)
	out := make([]models.MovieRecord, 0, len(c.movies))
	for _, m := range c.movies {
		if search != "" && !strings.Contains(strings.ToLower(m.Title), search) {
			continue
		}

		if f.Watched != f.Unwatched {
			_, watched := c.watched[m.ID]
			if f.Watched && !watched {
				continue
			}
			if f.Unwatched && watched {
				continue
			}
		}

		if f.MinRating > 0 && m.VoteAverage < f.MinRating {
			continue
		}
		if f.MaxRating > 0 && m.VoteAverage > f.MaxRating {
			continue
		}

		year := m.Year()
		if f.MinYear > 0 && year < f.MinYear {
			continue
		}
		if f.MaxYear > 0 && (year == 0 || year > f.MaxYear) {
			continue
		}

		out = append(out, m)
	}
	return out
}
