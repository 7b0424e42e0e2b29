package services

import (
	"context"
	"errors"
	"testing"

	"reelist/models"

	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	// failIDs simulates upstream lookup failures for specific entries.
	failIDs map[int64]struct{}
}

func (f *stubFetcher) FetchCatalog(ctx context.Context, entries []models.CatalogEntry) []models.MovieRecord {
	// Returned in reverse order so the service's sort is observable.
	out := make([]models.MovieRecord, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if _, ok := f.failIDs[e.ID]; ok {
			continue
		}
		out = append(out, models.MovieRecord{ID: e.ID, Rank: e.Rank})
	}
	return out
}

type stubLister struct {
	ids map[string][]int64
	err error
}

func (l *stubLister) ListMarked(ctx context.Context, scope models.Scope) ([]int64, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.ids[scope.String()], nil
}

var testEntries = []models.CatalogEntry{
	{ID: 278, Rank: 1},
	{ID: 238, Rank: 2},
	{ID: 240, Rank: 3},
}

func TestPageSortedByRank(t *testing.T) {
	svc := NewCatalogService(testEntries, &stubFetcher{}, &stubLister{})

	page, err := svc.Page(context.Background(), models.GlobalScope())
	require.NoError(t, err)
	require.Len(t, page.Movies, 3)
	for i, m := range page.Movies {
		require.Equal(t, i+1, m.Rank, "movies must be sorted ascending by rank")
	}
}

// Catalog list {1,2,3} with the rank-2 lookup failing yields the sorted
// two-element page [rank1, rank3].
func TestPageDropsFailedEntryOnly(t *testing.T) {
	fetcher := &stubFetcher{failIDs: map[int64]struct{}{238: {}}}
	lister := &stubLister{ids: map[string][]int64{"global": {240}}}
	svc := NewCatalogService(testEntries, fetcher, lister)

	page, err := svc.Page(context.Background(), models.GlobalScope())
	require.NoError(t, err)
	require.Len(t, page.Movies, 2)
	require.Equal(t, 1, page.Movies[0].Rank)
	require.Equal(t, 3, page.Movies[1].Rank)
	require.Equal(t, []int64{240}, page.WatchedMovies)
}

func TestPageScopesWatchedSet(t *testing.T) {
	lister := &stubLister{ids: map[string][]int64{
		"user:1": {278, 238},
		"user:2": {240},
	}}
	svc := NewCatalogService(testEntries, &stubFetcher{}, lister)

	page, err := svc.Page(context.Background(), models.UserScope(1))
	require.NoError(t, err)
	require.Equal(t, []int64{278, 238}, page.WatchedMovies)

	page, err = svc.Page(context.Background(), models.UserScope(2))
	require.NoError(t, err)
	require.Equal(t, []int64{240}, page.WatchedMovies)
}

func TestPageStoreFailureFailsRead(t *testing.T) {
	lister := &stubLister{err: errors.New("connection refused")}
	svc := NewCatalogService(testEntries, &stubFetcher{}, lister)

	_, err := svc.Page(context.Background(), models.GlobalScope())
	require.Error(t, err)
}

func TestPageEmptySetsAreNotNil(t *testing.T) {
	fetcher := &stubFetcher{failIDs: map[int64]struct{}{278: {}, 238: {}, 240: {}}}
	svc := NewCatalogService(testEntries, fetcher, &stubLister{})

	page, err := svc.Page(context.Background(), models.GlobalScope())
	require.NoError(t, err)
	require.NotNil(t, page.Movies)
	require.NotNil(t, page.WatchedMovies)
	require.Empty(t, page.Movies)
	require.Empty(t, page.WatchedMovies)
}
