package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"reelist/config"
	"reelist/models"

	"github.com/redis/go-redis/v9"
)

// MetadataCache is the short-lived cache in front of the metadata
// provider, keyed by external movie id. Implementations must return a
// caller-owned copy from Get: fetch results get their rank stamped on
// after lookup. A cache failure is a miss, never an error.
type MetadataCache interface {
	Get(ctx context.Context, movieID int64) (*models.MovieRecord, bool)
	Set(ctx context.Context, movieID int64, rec *models.MovieRecord)
}

// NoopCache is used when no cache is configured; every lookup goes to
// the upstream provider, matching the original refetch-per-read design.
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, movieID int64) (*models.MovieRecord, bool) {
	return nil, false
}

func (NoopCache) Set(ctx context.Context, movieID int64, rec *models.MovieRecord) {}

// RedisCache stores JSON-encoded movie records in Redis with a TTL.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(cfg *config.Config) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{rdb: rdb, ttl: cfg.MetadataCacheTTL}, nil
}

func (c *RedisCache) key(movieID int64) string {
	return fmt.Sprintf("tmdb:movie:%d", movieID)
}

func (c *RedisCache) Get(ctx context.Context, movieID int64) (*models.MovieRecord, bool) {
	data, err := c.rdb.Get(ctx, c.key(movieID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Debug("metadata cache read failed", "movie_id", movieID, "error", err)
		}
		return nil, false
	}

	var rec models.MovieRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		slog.Warn("metadata cache holds bad entry", "movie_id", movieID, "error", err)
		return nil, false
	}
	return &rec, true
}

func (c *RedisCache) Set(ctx context.Context, movieID int64, rec *models.MovieRecord) {
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(movieID), data, c.ttl).Err(); err != nil {
		slog.Debug("metadata cache write failed", "movie_id", movieID, "error", err)
	}
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
