package services

import (
	"context"
	"sort"

	"reelist/models"

	"golang.org/x/sync/errgroup"
)

// WatchedLister is the read side of the watched-state store needed to
// compose a catalog page.
type WatchedLister interface {
	ListMarked(ctx context.Context, scope models.Scope) ([]int64, error)
}

// CatalogPage is the composed response for a catalog read: the curated
// list enriched with metadata and sorted by rank, plus the scope's
// watched set.
type CatalogPage struct {
	Movies        []models.MovieRecord `json:"movies"`
	WatchedMovies []int64              `json:"watchedMovies"`
}

// CatalogService merges metadata lookups with the watched-state store.
type CatalogService struct {
	entries []models.CatalogEntry
	fetcher MetadataFetcher
	watched WatchedLister
}

func NewCatalogService(entries []models.CatalogEntry, fetcher MetadataFetcher, watched WatchedLister) *CatalogService {
	return &CatalogService{
		entries: entries,
		fetcher: fetcher,
		watched: watched,
	}
}

// Page fetches metadata and the watched set concurrently and merges
// them. Upstream lookup failures only shrink the movie list; a store
// failure fails the whole read.
func (s *CatalogService) Page(ctx context.Context, scope models.Scope) (*CatalogPage, error) {
	var (
		g       errgroup.Group
		movies  []models.MovieRecord
		watched []int64
	)

	g.Go(func() error {
		movies = s.fetcher.FetchCatalog(ctx, s.entries)
		return nil
	})
	g.Go(func() error {
		var err error
		watched, err = s.watched.ListMarked(ctx, scope)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(movies, func(i, j int) bool {
		return movies[i].Rank < movies[j].Rank
	})

	if movies == nil {
		movies = []models.MovieRecord{}
	}
	if watched == nil {
		watched = []int64{}
	}
	return &CatalogPage{Movies: movies, WatchedMovies: watched}, nil
}
