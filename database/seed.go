package database

import (
	"context"
	"database/sql"
	"fmt"

	"reelist/config"

	"golang.org/x/crypto/bcrypt"
)

// SeedInitialUser creates the bootstrap account named by ADMIN_USERNAME
// when ADMIN_PASSWORD is set and the account does not exist yet. With no
// password configured, seeding is skipped.
func SeedInitialUser(ctx context.Context, db *sql.DB, cfg *config.Config) error {
	if cfg.AdminPassword == "" {
		return nil
	}

	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE username = $1", cfg.AdminUsername).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check for existing user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash) VALUES ($1, $2)",
		cfg.AdminUsername,
		string(hashedPassword),
	)
	if err != nil {
		return fmt.Errorf("failed to seed initial user: %w", err)
	}

	return nil
}
