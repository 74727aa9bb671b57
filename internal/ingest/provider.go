// Package ingest normalizes sportsbook and schedule payloads into store
// rows and drives the per-source providers.
package ingest

import "context"

// Provider is the common contract for a data source connector: a full
// historical load and an incremental update. Providers skip bad records
// and return errors only for fatal conditions (store unavailable,
// cancelled context).
type Provider interface {
	Name() string
	Backfill(ctx context.Context) error
	Update(ctx context.Context) error
}
