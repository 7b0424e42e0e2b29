package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"reelist/models"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// WatchedStore persists watched marks, partitioned by scope. The
// uniqueness constraint lives in the database; this layer translates a
// violated insert into ErrAlreadyMarked instead of leaking the raw
// driver error.
type WatchedStore struct {
	db *sql.DB
}

func NewWatchedStore(db *sql.DB) *WatchedStore {
	return &WatchedStore{db: db}
}

// Mark inserts a watched mark. Re-marking an already watched movie
// returns ErrAlreadyMarked; callers decide how to surface it (the API
// treats it as a no-op success).
func (s *WatchedStore) Mark(ctx context.Context, scope models.Scope, movieID int64) error {
	var err error
	if userID, ok := scope.UserID(); ok {
		_, err = s.db.ExecContext(ctx,
			"INSERT INTO watched_movies (user_id, movie_id) VALUES ($1, $2)",
			userID, movieID)
	} else {
		_, err = s.db.ExecContext(ctx,
			"INSERT INTO watched_movies (movie_id) VALUES ($1)",
			movieID)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.ErrAlreadyMarked
		}
		return fmt.Errorf("failed to mark movie %d watched for %s: %w", movieID, scope, err)
	}
	return nil
}

// Unmark deletes the mark if present. Unmarking an unmarked movie is a
// no-op, not an error.
func (s *WatchedStore) Unmark(ctx context.Context, scope models.Scope, movieID int64) error {
	var err error
	if userID, ok := scope.UserID(); ok {
		_, err = s.db.ExecContext(ctx,
			"DELETE FROM watched_movies WHERE user_id = $1 AND movie_id = $2",
			userID, movieID)
	} else {
		_, err = s.db.ExecContext(ctx,
			"DELETE FROM watched_movies WHERE user_id IS NULL AND movie_id = $1",
			movieID)
	}
	if err != nil {
		return fmt.Errorf("failed to unmark movie %d for %s: %w", movieID, scope, err)
	}
	return nil
}

// ListMarked returns the movie ids currently marked for the scope,
// ascending by id.
func (s *WatchedStore) ListMarked(ctx context.Context, scope models.Scope) ([]int64, error) {
	var rows *sql.Rows
	var err error
	if userID, ok := scope.UserID(); ok {
		rows, err = s.db.QueryContext(ctx,
			"SELECT movie_id FROM watched_movies WHERE user_id = $1 ORDER BY movie_id",
			userID)
	} else {
		rows, err = s.db.QueryContext(ctx,
			"SELECT movie_id FROM watched_movies WHERE user_id IS NULL ORDER BY movie_id")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list watched movies for %s: %w", scope, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan watched movie: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read watched movies: %w", err)
	}
	return ids, nil
}
