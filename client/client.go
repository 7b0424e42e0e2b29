// Package client is the Go consumer of the reelist API: a thin HTTP
// client plus a state controller that mirrors the browser grid's
// behavior (one catalog fetch, optimistic watch toggles, purely local
// filtering).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"reelist/models"
)

// Catalog is the composed catalog payload as it appears on the wire.
type Catalog struct {
	Movies        []models.MovieRecord `json:"movies"`
	WatchedMovies []int64              `json:"watchedMovies"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// API talks to a reelist server. The zero token means unauthenticated;
// against a per-user deployment, call SetToken after Login/Register.
type API struct {
	baseURL string
	token   string
	httpc   *http.Client
}

func New(baseURL string) *API {
	return &API{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *API) SetToken(token string) {
	a.token = token
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{Status: resp.StatusCode, Message: payload.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Register creates an account and returns its token. The token is also
// installed on the client.
func (a *API) Register(ctx context.Context, username, password string) (string, error) {
	var resp authResponse
	if err := a.do(ctx, http.MethodPost, "/api/auth/register", credentials{username, password}, &resp); err != nil {
		return "", err
	}
	a.token = resp.Token
	return resp.Token, nil
}

// Login authenticates and installs the returned token.
func (a *API) Login(ctx context.Context, username, password string) (string, error) {
	var resp authResponse
	if err := a.do(ctx, http.MethodPost, "/api/auth/login", credentials{username, password}, &resp); err != nil {
		return "", err
	}
	a.token = resp.Token
	return resp.Token, nil
}

// Catalog fetches the composed movie list and watched set.
func (a *API) Catalog(ctx context.Context) (*Catalog, error) {
	var cat Catalog
	if err := a.do(ctx, http.MethodGet, "/api/movies", nil, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Watch marks a movie watched.
func (a *API) Watch(ctx context.Context, movieID int64) error {
	return a.do(ctx, http.MethodPost, fmt.Sprintf("/api/movies/%d/watch", movieID), nil, nil)
}

// Unwatch removes the watched mark.
func (a *API) Unwatch(ctx context.Context, movieID int64) error {
	return a.do(ctx, http.MethodDelete, fmt.Sprintf("/api/movies/%d/watch", movieID), nil, nil)
}
