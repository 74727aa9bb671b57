package ingest

import (
	"testing"
	"time"
)

func eventMarketsPayload() map[string]any {
	return map[string]any{
		"event": map[string]any{
			"awayTeamName": "MIA Heat",
			"homeTeamName": "CLE Cavaliers",
		},
		"eventMarkets": []any{
			map[string]any{
				"marketName": "Player Points",
				"outcomes": []any{
					map[string]any{"label": "Donovan Mitchell", "criterionName": "Over", "line": 28.5, "oddsAmerican": float64(-110)},
					map[string]any{"label": "Donovan Mitchell", "criterionName": "Under", "line": 28.5, "oddsAmerican": float64(-110)},
				},
			},
			map[string]any{
				"marketName": "Player Threes",
				"outcomes": []any{
					map[string]any{"label": "Donovan Mitchell", "criterionName": "Over", "line": 3.5, "oddsAmerican": float64(-105)},
				},
			},
			map[string]any{
				"marketName": "First Basket Scorer",
				"outcomes": []any{
					map[string]any{"label": "Jimmy Butler", "oddsAmerican": float64(600)},
				},
			},
			map[string]any{
				// Not player-level; dropped.
				"marketName": "Game Total",
				"outcomes": []any{
					map[string]any{"label": "Over", "line": 220.5, "oddsAmerican": float64(-110)},
				},
			},
		},
	}
}

func TestNormalizeEventMarkets(t *testing.T) {
	now := time.Now().UTC()
	rows := NormalizeEventMarkets(eventMarketsPayload(), 42, now)

	if len(rows) != 4 {
		t.Fatalf("normalized %d prop rows, want 4", len(rows))
	}
	first := rows[0]
	if first.Player != "Donovan Mitchell" || first.Market != "Player Points - Over" {
		t.Errorf("unexpected first prop: %+v", first)
	}
	if first.HomeTeam != "CLE Cavaliers" || first.AwayTeam != "MIA Heat" {
		t.Errorf("team context not carried: %+v", first)
	}
	// First basket has no criterion; the market name stands alone.
	if rows[3].Market != "First Basket Scorer" {
		t.Errorf("criterion-less market = %q", rows[3].Market)
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3-pt", "three"},
		{"3-pointers", "three"},
		{"3pt", "three"},
		{"player-threes", "three"},
		{"player-combos", "combo"},
		{"combinations", "combo"},
		{"first-scorer", "first basket"},
		{"Points", "points"},
		{"REBOUNDS", "rebounds"},
		{"something-else", "something-else"},
	}
	for _, tt := range tests {
		if got := NormalizeCategory(tt.in); got != tt.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilterByCategory(t *testing.T) {
	rows := NormalizeEventMarkets(eventMarketsPayload(), 42, time.Now())

	threes := FilterByCategory(rows, "3-pt")
	if len(threes) != 1 {
		t.Fatalf("3-pt filter kept %d rows, want 1", len(threes))
	}
	if threes[0].Market != "Player Threes - Over" {
		t.Errorf("3-pt filter kept %q", threes[0].Market)
	}

	points := FilterByCategory(rows, "points")
	if len(points) != 2 {
		t.Errorf("points filter kept %d rows, want 2", len(points))
	}

	first := FilterByCategory(rows, "first-scorer")
	if len(first) != 1 || first[0].Player != "Jimmy Butler" {
		t.Errorf("first-scorer filter = %+v", first)
	}

	if got := FilterByCategory(rows, ""); len(got) != len(rows) {
		t.Errorf("empty category filtered rows: %d != %d", len(got), len(rows))
	}
}

func TestFixtureProps(t *testing.T) {
	rows := FixtureProps(7, time.Now())
	if len(rows) == 0 {
		t.Fatal("fixture dataset is empty")
	}
	for _, r := range rows {
		if r.EventID != 7 {
			t.Errorf("fixture row missing event id: %+v", r)
		}
		if r.Odds == nil {
			t.Errorf("fixture row without odds: %+v", r)
		}
	}
	if got := FilterByCategory(rows, "first-basket"); len(got) != 3 {
		t.Errorf("fixture first-basket rows = %d, want 3", len(got))
	}
}
