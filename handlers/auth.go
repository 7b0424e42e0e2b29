package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"reelist/models"
)

// AuthService is what the auth endpoints need from the service layer.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
}

type AuthHandler struct {
	auth AuthService
}

func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, token, err := h.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateUsername) {
			writeError(w, http.StatusBadRequest, models.ErrDuplicateUsername.Error())
			return
		}
		slog.Error("registration failed", "username", req.Username, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	slog.Info("user registered", "username", user.Username, "user_id", user.ID)
	writeJSON(w, http.StatusOK, authResponse{Token: token, Username: user.Username})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, models.ErrInvalidCredentials.Error())
			return
		}
		slog.Error("login failed", "username", req.Username, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	slog.Info("user logged in", "username", user.Username, "user_id", user.ID)
	writeJSON(w, http.StatusOK, authResponse{Token: token, Username: user.Username})
}
