package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sports-intel/internal/resolve"
	"sports-intel/internal/store"
)

// PayloadSource hands the provider already-decoded payload trees. The
// network layer behind it (page rendering, timeouts, retries) is outside
// this core; its only contract is "parseable JSON-like tree, possibly
// missing expected keys".
type PayloadSource interface {
	// EventGroup returns the league-page payload covering the given day.
	EventGroup(ctx context.Context, day time.Time) (any, error)
	// EventPage returns the detail-page payload for one event.
	EventPage(ctx context.Context, eventID int64, eventURL string) (any, error)
}

// DKOddsProvider ingests DraftKings odds snapshots: league pages during
// backfill and update, event detail pages for full market depth.
type DKOddsProvider struct {
	store      *store.Store
	resolver   *resolve.Resolver
	source     PayloadSource
	sportsbook string
	season     int

	now func() time.Time
}

// NewDKOddsProvider wires an odds provider for one season.
func NewDKOddsProvider(st *store.Store, res *resolve.Resolver, src PayloadSource, sportsbook string, season int) *DKOddsProvider {
	return &DKOddsProvider{
		store:      st,
		resolver:   res,
		source:     src,
		sportsbook: sportsbook,
		season:     season,
		now:        time.Now,
	}
}

func (p *DKOddsProvider) Name() string { return "draftkings-odds" }

// Backfill fetches odds for every date the season has scheduled games.
// Fetch failures for a single day are logged and skipped; store failures
// abort the run.
func (p *DKOddsProvider) Backfill(ctx context.Context) error {
	dates, err := p.store.GameDates(p.season)
	if err != nil {
		return err
	}
	for _, day := range dates {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.ingestDay(ctx, day); err != nil {
			return err
		}
	}
	return nil
}

// Update fetches today's odds and detail pages.
func (p *DKOddsProvider) Update(ctx context.Context) error {
	return p.ingestDay(ctx, p.now().UTC())
}

func (p *DKOddsProvider) ingestDay(ctx context.Context, day time.Time) error {
	payload, err := p.source.EventGroup(ctx, day)
	if err != nil {
		slog.Warn("Fetching event group failed", "day", day.Format("2006-01-02"), "err", err)
		return nil
	}

	rows, err := NormalizeEventGroup(payload, p.now().UTC(), p.sportsbook, p.resolver)
	if err != nil {
		return fmt.Errorf("normalizing event group: %w", err)
	}
	if len(rows) == 0 {
		slog.Info("No odds found", "day", day.Format("2006-01-02"))
		return nil
	}

	inserted, err := p.store.InsertOddsLines(rows)
	if err != nil {
		return err
	}
	slog.Info("Ingested odds", "day", day.Format("2006-01-02"), "rows", len(rows), "inserted", inserted)

	return p.ingestEventDetails(ctx, rows)
}

// ingestEventDetails pulls the detail page for each distinct event seen
// on the league page. Per-event fetch failures are skipped.
func (p *DKOddsProvider) ingestEventDetails(ctx context.Context, rows []store.OddsLine) error {
	seen := make(map[int64]string)
	for _, r := range rows {
		if _, ok := seen[r.EventID]; ok {
			continue
		}
		url := ""
		if r.EventURL != nil {
			url = *r.EventURL
		}
		seen[r.EventID] = url
	}

	for eventID, url := range seen {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := p.source.EventPage(ctx, eventID, url)
		if err != nil {
			slog.Warn("Fetching event page failed", "event", eventID, "err", err)
			continue
		}
		detail, err := NormalizeEventPage(payload, eventID, p.now().UTC(), p.sportsbook, p.resolver)
		if err != nil {
			return fmt.Errorf("normalizing event page %d: %w", eventID, err)
		}
		if len(detail) == 0 {
			continue
		}
		inserted, err := p.store.InsertOddsLines(detail)
		if err != nil {
			return err
		}
		slog.Info("Ingested event detail", "event", eventID, "rows", len(detail), "inserted", inserted)
	}
	return nil
}

// IngestPayload normalizes and persists a single pre-fetched league-page
// payload. Used by the CLI when payloads arrive from files instead of a
// live source.
func (p *DKOddsProvider) IngestPayload(root any) (int, error) {
	rows, err := NormalizeEventGroup(root, p.now().UTC(), p.sportsbook, p.resolver)
	if err != nil {
		return 0, err
	}
	return p.store.InsertOddsLines(rows)
}
