package models

import "strconv"

// CatalogEntry is one slot in the curated list: the TMDB id of a film
// and the rank it occupies in the default display order. The list is
// static configuration; entries are never created or modified at runtime.
type CatalogEntry struct {
	ID   int64 `json:"id"`
	Rank int   `json:"rank"`
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MovieRecord is the per-request projection of an upstream movie record
// merged with its catalog rank. It is derived data and is never persisted;
// every catalog read rebuilds it from the metadata provider (or the
// short-lived cache).
type MovieRecord struct {
	ID          int64   `json:"id"`
	Rank        int     `json:"rank"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	Runtime     int     `json:"runtime"`
	Genres      []Genre `json:"genres"`
	Tagline     string  `json:"tagline,omitempty"`
}

// Year returns the release year parsed from ReleaseDate, or 0 when the
// date is missing or malformed.
func (m *MovieRecord) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}
