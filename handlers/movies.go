package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"reelist/middleware"
	"reelist/models"
	"reelist/services"
)

// CatalogReader composes the catalog page for a scope.
type CatalogReader interface {
	Page(ctx context.Context, scope models.Scope) (*services.CatalogPage, error)
}

// WatchedWriter is the mutation side of the watched-state store.
type WatchedWriter interface {
	Mark(ctx context.Context, scope models.Scope, movieID int64) error
	Unmark(ctx context.Context, scope models.Scope, movieID int64) error
}

type MoviesHandler struct {
	catalog CatalogReader
	watched WatchedWriter
	// perUser mirrors the deployment mode: per-user scopes require the
	// auth middleware in front of these handlers.
	perUser bool
}

func NewMoviesHandler(catalog CatalogReader, watched WatchedWriter, perUser bool) *MoviesHandler {
	return &MoviesHandler{catalog: catalog, watched: watched, perUser: perUser}
}

func (h *MoviesHandler) scope(r *http.Request) (models.Scope, bool) {
	if !h.perUser {
		return models.GlobalScope(), true
	}
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		return models.Scope{}, false
	}
	return models.UserScope(userID), true
}

// List handles GET /api/movies.
func (h *MoviesHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, models.ErrMissingToken.Error())
		return
	}

	page, err := h.catalog.Page(r.Context(), scope)
	if err != nil {
		slog.Error("catalog read failed", "scope", scope.String(), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch movies")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Watch handles POST /api/movies/{id}/watch. Re-marking an already
// watched movie is a no-op success.
func (h *MoviesHandler) Watch(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, models.ErrMissingToken.Error())
		return
	}

	movieID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	if err := h.watched.Mark(r.Context(), scope, movieID); err != nil && !errors.Is(err, models.ErrAlreadyMarked) {
		slog.Error("mark failed", "scope", scope.String(), "movie_id", movieID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to mark movie as watched")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Unwatch handles DELETE /api/movies/{id}/watch. Unmarking an unmarked
// movie succeeds.
func (h *MoviesHandler) Unwatch(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, models.ErrMissingToken.Error())
		return
	}

	movieID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	if err := h.watched.Unmark(r.Context(), scope, movieID); err != nil {
		slog.Error("unmark failed", "scope", scope.String(), "movie_id", movieID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to unmark movie as watched")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
