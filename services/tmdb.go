package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"reelist/config"
	"reelist/models"

	"golang.org/x/sync/errgroup"
)

// MetadataFetcher retrieves movie records for the curated catalog
// entries, tolerating partial failure.
type MetadataFetcher interface {
	FetchCatalog(ctx context.Context, entries []models.CatalogEntry) []models.MovieRecord
}

// TMDBClient looks movies up on TMDB by numeric id. Lookups go through
// the metadata cache first; the upstream is only hit on a miss.
type TMDBClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	cache   MetadataCache
}

func NewTMDBClient(cfg *config.Config, cache MetadataCache) *TMDBClient {
	if cache == nil {
		cache = NoopCache{}
	}
	return &TMDBClient{
		apiKey:  cfg.TMDBAPIKey,
		baseURL: cfg.TMDBBaseURL,
		client:  &http.Client{Timeout: cfg.TMDBTimeout},
		cache:   cache,
	}
}

type tmdbMovieResponse struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	ReleaseDate string         `json:"release_date"`
	PosterPath  string         `json:"poster_path"`
	Overview    string         `json:"overview"`
	VoteAverage float64        `json:"vote_average"`
	Runtime     int            `json:"runtime"`
	Genres      []models.Genre `json:"genres"`
	Tagline     string         `json:"tagline"`
}

// MovieDetails fetches one movie by TMDB id. The returned record has no
// rank; callers annotate it from the catalog entry.
func (c *TMDBClient) MovieDetails(ctx context.Context, movieID int64) (*models.MovieRecord, error) {
	if rec, ok := c.cache.Get(ctx, movieID); ok {
		return rec, nil
	}

	if c.apiKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is not set")
	}

	detailsURL := fmt.Sprintf("%s/movie/%d?api_key=%s", c.baseURL, movieID, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, detailsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movie %d: %w", movieID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tmdb returned status %d for movie %d", resp.StatusCode, movieID)
	}

	var details tmdbMovieResponse
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("failed to decode movie %d: %w", movieID, err)
	}

	rec := &models.MovieRecord{
		ID:          details.ID,
		Title:       details.Title,
		ReleaseDate: details.ReleaseDate,
		PosterPath:  details.PosterPath,
		Overview:    details.Overview,
		VoteAverage: details.VoteAverage,
		Runtime:     details.Runtime,
		Genres:      details.Genres,
		Tagline:     details.Tagline,
	}
	c.cache.Set(ctx, movieID, rec)
	return rec, nil
}

// FetchCatalog looks up every entry concurrently. A failed lookup is
// logged and its entry dropped; the batch never aborts, so one bad id or
// a flaky upstream only shrinks the result. The result is unordered.
func (c *TMDBClient) FetchCatalog(ctx context.Context, entries []models.CatalogEntry) []models.MovieRecord {
	var g errgroup.Group
	results := make([]*models.MovieRecord, len(entries))

	for i, entry := range entries {
		g.Go(func() error {
			rec, err := c.MovieDetails(ctx, entry.ID)
			if err != nil {
				slog.Warn("dropping catalog entry",
					"movie_id", entry.ID,
					"rank", entry.Rank,
					"error", err)
				return nil
			}
			rec.Rank = entry.Rank
			results[i] = rec
			return nil
		})
	}
	// Lookups never return errors, so Wait only synchronizes.
	_ = g.Wait()

	movies := make([]models.MovieRecord, 0, len(entries))
	for _, rec := range results {
		if rec != nil {
			movies = append(movies, *rec)
		}
	}
	return movies
}
