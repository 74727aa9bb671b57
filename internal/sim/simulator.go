// Package sim replays a season's games chronologically, sizing and
// settling one paper wager per game.
package sim

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"sports-intel/internal/analysis"
	"sports-intel/internal/odds"
	"sports-intel/internal/store"
)

// Stats summarizes one simulation run.
type Stats struct {
	RunID   string
	NBets   int
	WinRate float64
	ROI     float64
}

// Simulator folds a Kelly-sized wager over a season's game stream.
// EdgeMargin is the assumed edge over the market-implied win probability,
// in probability points; the probability model is deliberately that
// simple. MaxBet caps a single stake when > 0.
type Simulator struct {
	store      *store.Store
	EdgeMargin float64
	MaxBet     float64

	now func() time.Time
}

// New creates a simulator against a store.
func New(st *store.Store, edgeMargin float64) *Simulator {
	return &Simulator{store: st, EdgeMargin: edgeMargin, now: time.Now}
}

// Run replays every game of the season in date order (insertion order
// breaking ties), settling each wager against the recorded scores and
// writing the Bet row immediately. Games without a decided winner, a
// priced moneyline snapshot, or a positive stake are skipped. A store
// error aborts the remaining games; bets already written stand as a
// valid partial result.
func (s *Simulator) Run(season int, initialBankroll float64) (float64, Stats, error) {
	runID := uuid.NewString()
	stats := Stats{RunID: runID}
	bankroll := initialBankroll

	games, err := s.store.GamesBySeason(season)
	if err != nil {
		return bankroll, stats, err
	}
	if len(games) == 0 {
		slog.Warn("No games found", "season", season)
		return bankroll, stats, nil
	}

	wins := 0
	for _, game := range games {
		winner := game.WinnerTeamID()
		if winner == nil {
			slog.Debug("Skipping game without winner", "game", game.ID)
			continue
		}

		snap, err := s.store.LatestOddsForGame(game.ID, "moneyline")
		if err != nil {
			return bankroll, statsWith(stats, wins), fmt.Errorf("loading odds for game %d: %w", game.ID, err)
		}
		if snap == nil || snap.Odds == nil {
			slog.Debug("No odds for game", "game", game.ID)
			continue
		}

		price := *snap.Odds
		pWin := odds.Implied(price) + s.EdgeMargin
		fraction := analysis.KellyFraction(pWin, price)
		stake := analysis.StakeSize(bankroll, fraction, s.MaxBet)
		if stake <= 0 {
			continue
		}

		homeSide := strings.HasPrefix(strings.ToLower(snap.Outcome), "home")
		won := *winner == game.AwayTeamID
		if homeSide {
			won = *winner == game.HomeTeamID
		}

		profit := -stake
		if won {
			profit = stake * (price - 1)
			wins++
		}
		bankroll += profit
		stats.NBets++

		bet := store.Bet{
			TS:        s.now().UTC(),
			RunID:     runID,
			GameID:    game.ID,
			Market:    snap.Market,
			Selection: snap.Outcome,
			Stake:     stake,
			Odds:      price,
			Mode:      "paper",
			Profit:    &profit,
		}
		if _, err := s.store.InsertBet(bet); err != nil {
			return bankroll, statsWith(stats, wins), fmt.Errorf("recording bet for game %d: %w", game.ID, err)
		}
	}

	stats = statsWith(stats, wins)
	stats.ROI = (bankroll - initialBankroll) / initialBankroll
	slog.Info("Simulation complete",
		"run", runID, "season", season,
		"bets", stats.NBets, "winRate", stats.WinRate,
		"bankroll", bankroll, "roi", stats.ROI)
	return bankroll, stats, nil
}

func statsWith(stats Stats, wins int) Stats {
	if stats.NBets > 0 {
		stats.WinRate = float64(wins) / float64(stats.NBets)
	}
	return stats
}
