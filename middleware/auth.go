package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"reelist/models"
	"reelist/services"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Authenticator validates bearer tokens and resolves the user behind
// them. Tokens for deleted accounts are rejected.
type Authenticator interface {
	ParseToken(tokenStr string) (*services.Claims, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
}

// WithUserID attaches an authenticated user id to the context. Exported
// for handler tests.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the authenticated user id set by RequireAuth.
func UserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// RequireAuth guards a handler behind `Authorization: Bearer <token>`.
// A missing header is distinguished from a bad token; both end the
// request with a 401 JSON body.
func RequireAuth(auth Authenticator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, models.ErrMissingToken.Error())
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(w, models.ErrInvalidToken.Error())
			return
		}

		claims, err := auth.ParseToken(parts[1])
		if err != nil {
			slog.Debug("rejected token", "path", r.URL.Path, "error", err)
			unauthorized(w, models.ErrInvalidToken.Error())
			return
		}

		if _, err := auth.GetUserByID(r.Context(), claims.UserID); err != nil {
			slog.Warn("token for unknown user", "user_id", claims.UserID)
			unauthorized(w, models.ErrInvalidToken.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
