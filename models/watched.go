package models

import (
	"fmt"
	"time"
)

// WatchedMark records that a scope has seen a movie. UserID is nil for
// marks made in the global scope. MovieID references a catalog entry
// logically; there is no foreign key onto the static list.
type WatchedMark struct {
	ID        int64     `db:"id"`
	UserID    *int64    `db:"user_id"`
	MovieID   int64     `db:"movie_id"`
	WatchedAt time.Time `db:"watched_at"`
}

// Scope selects which partition of watched marks an operation acts on:
// the single implicit global partition, or one authenticated user's.
// The deployment mode decides which kind of scope the handlers build,
// the store treats both uniformly.
type Scope struct {
	userID int64
	global bool
}

func GlobalScope() Scope {
	return Scope{global: true}
}

func UserScope(userID int64) Scope {
	return Scope{userID: userID}
}

// UserID returns the user the scope is bound to, or false for the
// global scope.
func (s Scope) UserID() (int64, bool) {
	if s.global {
		return 0, false
	}
	return s.userID, true
}

func (s Scope) String() string {
	if s.global {
		return "global"
	}
	return fmt.Sprintf("user:%d", s.userID)
}
