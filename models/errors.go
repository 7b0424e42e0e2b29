package models

import "errors"

// Sentinel errors shared across services and handlers. Handlers map
// these onto HTTP statuses; anything else surfaces as a 500 with a
// generic message so raw storage errors never reach the client.
var (
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("no token provided")
	ErrInvalidToken       = errors.New("invalid token")
	ErrAlreadyMarked      = errors.New("movie already marked as watched")
)
