// Package catalog supplies media records from an external media index.
package catalog

import (
	"context"
	"time"

	"medialetter/internal/core"
)

// Query narrows a recently-added lookup.
type Query struct {
	Since     time.Time // lower bound on the date-added timestamp
	Libraries []string  // library allow-list; empty means all libraries
	Types     []string  // item type allow-list
	Limit     int       // maximum number of records returned
}

// Source supplies recently added media records, ordered most-recent-first,
// already filtered by type and library and truncated to the query limit.
type Source interface {
	RecentlyAdded(ctx context.Context, q Query) ([]*core.MediaRecord, error)
}
