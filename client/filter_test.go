package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func filterIDs(t *testing.T, ctrl *Controller, f Filter) []int64 {
	t.Helper()
	movies := ctrl.Filtered(f)
	ids := make([]int64, 0, len(movies))
	for _, m := range movies {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestFilteredNoFilter(t *testing.T) {
	ctrl := loadedController(t, &fakeService{catalog: testCatalog()})
	require.Equal(t, []int64{278, 238, 240}, filterIDs(t, ctrl, Filter{}))
}

func TestFilteredSearchIsCaseInsensitive(t *testing.T) {
	ctrl := loadedController(t, &fakeService{catalog: testCatalog()})
	require.Equal(t, []int64{238, 240}, filterIDs(t, ctrl, Filter{Search: "godfather"}))
	require.Equal(t, []int64{240}, filterIDs(t, ctrl, Filter{Search: "PART II"}))
	require.Empty(t, filterIDs(t, ctrl, Filter{Search: "no such movie"}))
}

func TestFilteredWatchedStates(t *testing.T) {
	ctrl := loadedController(t, &fakeService{catalog: testCatalog()})

	require.Equal(t, []int64{238}, filterIDs(t, ctrl, Filter{Watched: true}))
	require.Equal(t, []int64{278, 240}, filterIDs(t, ctrl, Filter{Unwatched: true}))
	// Both checkboxes on cancel each other out.
	require.Equal(t, []int64{278, 238, 240}, filterIDs(t, ctrl, Filter{Watched: true, Unwatched: true}))
}

func TestFilteredRatingRange(t *testing.T) {
	ctrl := loadedController(t, &fakeService{catalog: testCatalog()})
	require.Equal(t, []int64{278, 238}, filterIDs(t, ctrl, Filter{MinRating: 8.65}))
	require.Equal(t, []int64{240}, filterIDs(t, ctrl, Filter{MaxRating: 8.65}))
}

func TestFilteredYearRange(t *testing.T) {
	ctrl := loadedController(t, &fakeService{catalog: testCatalog()})
	require.Equal(t, []int64{278}, filterIDs(t, ctrl, Filter{MinYear: 1990}))
	require.Equal(t, []int64{238}, filterIDs(t, ctrl, Filter{MaxYear: 1973}))
	require.Equal(t, []int64{238, 240}, filterIDs(t, ctrl, Filter{MinYear: 1970, MaxYear: 1980}))
}

// Filters compose and watched state stays live: toggling a movie moves
// it between the watched and unwatched views.
func TestFilteredTracksToggles(t *testing.T) {
	ctrl := loadedController(t, &fakeService{catalog: testCatalog()})

	_, err := ctrl.Toggle(context.Background(), 278)
	require.NoError(t, err)
	require.Equal(t, []int64{278, 238}, filterIDs(t, ctrl, Filter{Watched: true}))
	require.Equal(t, []int64{240}, filterIDs(t, ctrl, Filter{Unwatched: true}))
}
