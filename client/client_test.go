package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestLoginInstallsToken(t *testing.T) {
	api := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		fmt.Fprint(w, `{"token":"signed-token","username":"alice"}`)
	})

	token, err := api.Login(context.Background(), "alice", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "signed-token", token)
	require.Equal(t, "signed-token", api.token)
}

func TestCatalogSendsBearerToken(t *testing.T) {
	api := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer signed-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"movies":[{"id":278,"rank":1,"title":"The Shawshank Redemption"}],"watchedMovies":[278]}`)
	})
	api.SetToken("signed-token")

	cat, err := api.Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, cat.Movies, 1)
	require.Equal(t, int64(278), cat.Movies[0].ID)
	require.Equal(t, []int64{278}, cat.WatchedMovies)
}

func TestWatchHitsMarkEndpoint(t *testing.T) {
	api := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/movies/42/watch", r.URL.Path)
		fmt.Fprint(w, `{"success":true}`)
	})

	require.NoError(t, api.Watch(context.Background(), 42))
}

func TestUnwatchHitsMarkEndpoint(t *testing.T) {
	api := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/movies/42/watch", r.URL.Path)
		fmt.Fprint(w, `{"success":true}`)
	})

	require.NoError(t, api.Unwatch(context.Background(), 42))
}

func TestErrorResponsesBecomeAPIErrors(t *testing.T) {
	api := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid token"}`)
	})

	_, err := api.Catalog(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "invalid token", apiErr.Message)
}
