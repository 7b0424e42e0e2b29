package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"reelist/config"
	"reelist/models"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login, and bearer-token issuance.
// A missing user and a wrong password are indistinguishable to callers
// so usernames cannot be enumerated through the login endpoint.
type AuthService struct {
	db       *sql.DB
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(db *sql.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:       db,
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: cfg.TokenTTL,
	}
}

// Register creates a user and returns it with a signed token. A taken
// username yields models.ErrDuplicateUsername; the stored credential of
// the existing user is unaffected.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	var user models.User
	err = s.db.QueryRowContext(ctx,
		"INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id, username, password_hash, created_at, updated_at",
		username, string(hashedPassword),
	).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, "", models.ErrDuplicateUsername
		}
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login verifies the credentials and returns the user with a fresh token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at, updated_at FROM users WHERE username = $1",
		username,
	).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", models.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("database error: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// GetUserByID loads a user by id; used by the auth middleware to reject
// tokens for accounts that no longer exist.
func (s *AuthService) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at, updated_at FROM users WHERE id = $1",
		userID,
	).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}
