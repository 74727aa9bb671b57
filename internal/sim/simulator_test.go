package sim

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"sports-intel/internal/store"
)

func approx(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func seedTeam(t *testing.T, st *store.Store, name string) int64 {
	t.Helper()
	if err := st.InsertTeam(store.Team{Name: name, League: "NBA", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("inserting team %s: %v", name, err)
	}
	team, err := st.TeamByName(name, "NBA")
	if err != nil || team == nil {
		t.Fatalf("reading back team %s: %v", name, err)
	}
	return team.ID
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// seedSeason stores two games: a decided home win with a priced home
// moneyline at evens, and an unplayed game that the simulator must skip.
func seedSeason(t *testing.T, st *store.Store) (decidedGameID int64) {
	t.Helper()
	home := seedTeam(t, st, "Boston Celtics")
	away := seedTeam(t, st, "Los Angeles Lakers")

	decided := store.Game{
		ExtGameID:  "1001",
		Season:     2024,
		Date:       time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC),
		HomeTeamID: home,
		AwayTeamID: away,
		HomeScore:  intPtr(100),
		AwayScore:  intPtr(90),
	}
	gameID, err := st.UpsertGame(decided)
	if err != nil {
		t.Fatalf("storing decided game: %v", err)
	}

	if _, err := st.UpsertGame(store.Game{
		ExtGameID:  "1002",
		Season:     2024,
		Date:       time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC),
		HomeTeamID: home,
		AwayTeamID: away,
	}); err != nil {
		t.Fatalf("storing unplayed game: %v", err)
	}

	lines := []store.OddsLine{{
		TS:         time.Date(2024, 11, 2, 18, 0, 0, 0, time.UTC),
		Sportsbook: "draftkings",
		EventID:    5001,
		GameID:     &gameID,
		Market:     "Moneyline",
		Outcome:    "home",
		Odds:       floatPtr(2.0),
	}}
	if _, err := st.InsertOddsLines(lines); err != nil {
		t.Fatalf("storing odds: %v", err)
	}
	return gameID
}

func TestRunProfitableHomeWin(t *testing.T) {
	st := testStore(t)
	gameID := seedSeason(t, st)

	sim := New(st, 0.05)
	bankroll, stats, err := sim.Run(2024, 1000)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// Implied 0.5 + 0.05 edge at evens gives Kelly fraction 0.10: a 100
	// stake that wins 100 on the 100-90 home result.
	if stats.NBets != 1 {
		t.Fatalf("placed %d bets, want 1", stats.NBets)
	}
	if !approx(bankroll, 1100) {
		t.Errorf("final bankroll = %v, want 1100", bankroll)
	}
	if stats.WinRate != 1.0 {
		t.Errorf("win rate = %v, want 1.0", stats.WinRate)
	}
	if !approx(stats.ROI, 0.1) {
		t.Errorf("roi = %v, want 0.1", stats.ROI)
	}

	bets, err := st.BetsByRun(stats.RunID)
	if err != nil {
		t.Fatalf("listing bets: %v", err)
	}
	if len(bets) != 1 {
		t.Fatalf("recorded %d bets, want 1", len(bets))
	}
	b := bets[0]
	if b.GameID != gameID || b.Selection != "home" || b.Mode != "paper" {
		t.Errorf("unexpected bet: %+v", b)
	}
	if !approx(b.Stake, 100) {
		t.Errorf("stake = %v, want 100", b.Stake)
	}
	if b.Profit == nil || !approx(*b.Profit, 100) {
		t.Errorf("profit = %v, want 100", b.Profit)
	}
}

func TestRunAwaySideLoses(t *testing.T) {
	st := testStore(t)
	gameID := seedSeason(t, st)

	// A later away snapshot supersedes the home one; the home win then
	// settles the wager as a loss.
	if _, err := st.InsertOddsLines([]store.OddsLine{{
		TS:         time.Date(2024, 11, 2, 19, 0, 0, 0, time.UTC),
		Sportsbook: "draftkings",
		EventID:    5001,
		GameID:     &gameID,
		Market:     "Moneyline",
		Outcome:    "away",
		Odds:       floatPtr(2.0),
	}}); err != nil {
		t.Fatalf("storing odds: %v", err)
	}

	bankroll, stats, err := New(st, 0.05).Run(2024, 1000)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.NBets != 1 || stats.WinRate != 0 {
		t.Fatalf("stats = %+v, want one losing bet", stats)
	}
	if !approx(bankroll, 900) {
		t.Errorf("final bankroll = %v, want 900", bankroll)
	}
}

func TestRunNoEdgeNoBets(t *testing.T) {
	st := testStore(t)
	seedSeason(t, st)

	bankroll, stats, err := New(st, 0).Run(2024, 1000)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.NBets != 0 {
		t.Errorf("placed %d bets at zero edge, want 0", stats.NBets)
	}
	if bankroll != 1000 {
		t.Errorf("bankroll moved without bets: %v", bankroll)
	}
}

func TestRunMaxBetCapsStake(t *testing.T) {
	st := testStore(t)
	seedSeason(t, st)

	sim := New(st, 0.05)
	sim.MaxBet = 25
	bankroll, stats, err := sim.Run(2024, 1000)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.NBets != 1 {
		t.Fatalf("placed %d bets, want 1", stats.NBets)
	}
	if !approx(bankroll, 1025) {
		t.Errorf("final bankroll = %v, want 1025", bankroll)
	}
}

func TestRunEmptySeason(t *testing.T) {
	st := testStore(t)

	bankroll, stats, err := New(st, 0.05).Run(2031, 500)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.NBets != 0 || bankroll != 500 {
		t.Errorf("empty season produced bets: bankroll=%v stats=%+v", bankroll, stats)
	}
}
