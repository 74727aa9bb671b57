// Package engine runs ingestion providers on a polling schedule.
package engine

import (
	"context"
	"log/slog"
	"time"

	"sports-intel/internal/ingest"
)

// Updater periodically runs every provider's incremental update until the
// context is cancelled. A provider failure is logged and does not stop
// the loop or the other providers.
type Updater struct {
	providers []ingest.Provider
	interval  time.Duration
}

// New creates an Updater polling at the given interval.
func New(interval time.Duration, providers ...ingest.Provider) *Updater {
	return &Updater{providers: providers, interval: interval}
}

// Run blocks until ctx is cancelled. The first pass runs immediately.
func (u *Updater) Run(ctx context.Context) {
	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	u.pass(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Updater stopping")
			return
		case <-ticker.C:
			u.pass(ctx)
		}
	}
}

func (u *Updater) pass(ctx context.Context) {
	for _, p := range u.providers {
		if ctx.Err() != nil {
			return
		}
		start := time.Now()
		if err := p.Update(ctx); err != nil {
			slog.Error("Provider update failed", "provider", p.Name(), "err", err)
			continue
		}
		slog.Info("Provider updated", "provider", p.Name(), "took", time.Since(start).Round(time.Millisecond))
	}
}
