// Package catalog holds the curated list of 100 films the application
// tracks. The list is static configuration: (external_id, rank) pairs,
// embedded in the binary with an optional file override.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"reelist/models"
)

//go:embed movies-list.json
var embeddedList []byte

type listFile struct {
	Movies []models.CatalogEntry `json:"movies"`
}

// Load returns the curated catalog entries. When path is non-empty the
// file at that location replaces the embedded list. Duplicate ranks or
// ids are configuration errors and fail the load.
func Load(path string) ([]models.CatalogEntry, error) {
	data := embeddedList
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read movies list: %w", err)
		}
	}

	var f listFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse movies list: %w", err)
	}
	if len(f.Movies) == 0 {
		return nil, fmt.Errorf("movies list is empty")
	}

	ranks := make(map[int]struct{}, len(f.Movies))
	ids := make(map[int64]struct{}, len(f.Movies))
	for _, e := range f.Movies {
		if e.ID <= 0 || e.Rank <= 0 {
			return nil, fmt.Errorf("invalid catalog entry (id=%d, rank=%d)", e.ID, e.Rank)
		}
		if _, ok := ranks[e.Rank]; ok {
			return nil, fmt.Errorf("duplicate rank %d in movies list", e.Rank)
		}
		if _, ok := ids[e.ID]; ok {
			return nil, fmt.Errorf("duplicate movie id %d in movies list", e.ID)
		}
		ranks[e.Rank] = struct{}{}
		ids[e.ID] = struct{}{}
	}

	return f.Movies, nil
}
