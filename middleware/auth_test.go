package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"reelist/models"
	"reelist/services"

	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	claims  *services.Claims
	userErr error
}

func (f *fakeAuth) ParseToken(tokenStr string) (*services.Claims, error) {
	if tokenStr != "good-token" {
		return nil, models.ErrInvalidToken
	}
	return f.claims, nil
}

func (f *fakeAuth) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return &models.User{ID: userID}, nil
}

func requireAuthRecorder(t *testing.T, auth Authenticator, header string) (*httptest.ResponseRecorder, *int64) {
	t.Helper()
	var gotUserID *int64
	handler := RequireAuth(auth, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := UserID(r.Context()); ok {
			gotUserID = &id
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr, gotUserID
}

func TestRequireAuthMissingHeader(t *testing.T) {
	rr, _ := requireAuthRecorder(t, &fakeAuth{}, "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.JSONEq(t, `{"error":"no token provided"}`, rr.Body.String())
}

func TestRequireAuthBadScheme(t *testing.T) {
	rr, _ := requireAuthRecorder(t, &fakeAuth{}, "Basic abc123")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.JSONEq(t, `{"error":"invalid token"}`, rr.Body.String())
}

func TestRequireAuthInvalidToken(t *testing.T) {
	rr, _ := requireAuthRecorder(t, &fakeAuth{}, "Bearer bad-token")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.JSONEq(t, `{"error":"invalid token"}`, rr.Body.String())
}

// A valid token for an account that no longer exists is rejected.
func TestRequireAuthDeletedUser(t *testing.T) {
	auth := &fakeAuth{
		claims:  &services.Claims{UserID: 7},
		userErr: errors.New("user not found"),
	}
	rr, _ := requireAuthRecorder(t, auth, "Bearer good-token")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireAuthSuccess(t *testing.T) {
	auth := &fakeAuth{claims: &services.Claims{UserID: 7}}
	rr, userID := requireAuthRecorder(t, auth, "Bearer good-token")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, userID)
	require.Equal(t, int64(7), *userID)
}
