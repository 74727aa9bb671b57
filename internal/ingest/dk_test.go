package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"sports-intel/internal/resolve"
)

type stubPayloadSource struct {
	group any
	pages map[int64]any
}

func (s *stubPayloadSource) EventGroup(context.Context, time.Time) (any, error) {
	if s.group == nil {
		return nil, errors.New("no payload")
	}
	return s.group, nil
}

func (s *stubPayloadSource) EventPage(_ context.Context, eventID int64, _ string) (any, error) {
	page, ok := s.pages[eventID]
	if !ok {
		return nil, errors.New("no payload")
	}
	return page, nil
}

func TestDKUpdateIdempotent(t *testing.T) {
	st := newIngestStore(t)
	src := &stubPayloadSource{group: leaguePagePayload()}
	p := NewDKOddsProvider(st, resolve.New(st, "NBA"), src, "DraftKings", 2024)
	p.now = func() time.Time { return time.Date(2024, 11, 2, 18, 0, 0, 0, time.UTC) }

	if err := p.Update(context.Background()); err != nil {
		t.Fatalf("first update: %v", err)
	}
	first, err := st.CountOddsLines()
	if err != nil {
		t.Fatal(err)
	}
	if first != 4 {
		t.Fatalf("stored %d rows, want 4", first)
	}

	// Same capture timestamp: the second pass dedups to a no-op.
	if err := p.Update(context.Background()); err != nil {
		t.Fatalf("second update: %v", err)
	}
	second, err := st.CountOddsLines()
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Errorf("row count grew from %d to %d on re-ingest", first, second)
	}
}

func TestDKUpdateFetchFailureIsSkipped(t *testing.T) {
	st := newIngestStore(t)
	p := NewDKOddsProvider(st, resolve.New(st, "NBA"), &stubPayloadSource{}, "DraftKings", 2024)

	if err := p.Update(context.Background()); err != nil {
		t.Fatalf("update with failing source: %v", err)
	}
	n, err := st.CountOddsLines()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("stored %d rows from a failed fetch", n)
	}
}

func TestDKIngestPayload(t *testing.T) {
	st := newIngestStore(t)
	p := NewDKOddsProvider(st, resolve.New(st, "NBA"), nil, "DraftKings", 2024)

	inserted, err := p.IngestPayload(leaguePagePayload())
	if err != nil {
		t.Fatalf("ingest payload: %v", err)
	}
	if inserted != 4 {
		t.Errorf("inserted %d rows, want 4", inserted)
	}

	ids, err := st.EventIDs()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != 101 {
		t.Errorf("event ids = %v, want [101]", ids)
	}
}
