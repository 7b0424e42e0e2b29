package client

import (
	"context"
	"fmt"
	"sync"

	"reelist/models"
)

// Service is the slice of the API the controller depends on.
type Service interface {
	Catalog(ctx context.Context) (*Catalog, error)
	Watch(ctx context.Context, movieID int64) error
	Unwatch(ctx context.Context, movieID int64) error
}

// Controller is the client-side state container behind a movie grid:
// it loads the composed catalog once, answers filter queries from
// memory, and applies watch toggles optimistically. When the server
// rejects a toggle the local flip is rolled back and the error surfaced,
// so the view never drifts from persisted state silently.
type Controller struct {
	svc Service

	mu      sync.Mutex
	movies  []models.MovieRecord
	watched map[int64]struct{}
	loaded  bool
}

func NewController(svc Service) *Controller {
	return &Controller{
		svc:     svc,
		watched: make(map[int64]struct{}),
	}
}

// Load fetches the catalog. Cancelling ctx aborts the in-flight fetch.
func (c *Controller) Load(ctx context.Context) error {
	cat, err := c.svc.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.movies = cat.Movies
	c.watched = make(map[int64]struct{}, len(cat.WatchedMovies))
	for _, id := range cat.WatchedMovies {
		c.watched[id] = struct{}{}
	}
	c.loaded = true
	return nil
}

func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Movies returns the loaded catalog in rank order.
func (c *Controller) Movies() []models.MovieRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.MovieRecord, len(c.movies))
	copy(out, c.movies)
	return out
}

func (c *Controller) IsWatched(movieID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.watched[movieID]
	return ok
}

// WatchedCount returns how many catalog movies are marked watched.
func (c *Controller) WatchedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.watched)
}

// Toggle flips the watched state of a movie: the local set is updated
// immediately, then the matching mark/unmark call is issued. On failure
// the optimistic flip is rolled back and the returned state reflects
// the server again. The returned bool is the state after the call.
func (c *Controller) Toggle(ctx context.Context, movieID int64) (bool, error) {
	c.mu.Lock()
	_, wasWatched := c.watched[movieID]
	if wasWatched {
		delete(c.watched, movieID)
	} else {
		c.watched[movieID] = struct{}{}
	}
	c.mu.Unlock()

	var err error
	if wasWatched {
		err = c.svc.Unwatch(ctx, movieID)
	} else {
		err = c.svc.Watch(ctx, movieID)
	}
	if err != nil {
		c.mu.Lock()
		if wasWatched {
			c.watched[movieID] = struct{}{}
		} else {
			delete(c.watched, movieID)
		}
		c.mu.Unlock()
		return wasWatched, fmt.Errorf("sync failed for movie %d: %w", movieID, err)
	}

	return !wasWatched, nil
}
