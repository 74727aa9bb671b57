package store

import "fmt"

// InsertBet records one settled wager. Bets are written immediately as
// the simulator settles them, never batched, so a partial run leaves a
// valid prefix behind.
func (s *Store) InsertBet(b Bet) (int64, error) {
	id, err := s.insertID(`
		INSERT INTO bets (ts, run_id, game_id, market, selection, stake, odds, mode, profit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.TS, b.RunID, b.GameID, b.Market, b.Selection, b.Stake, b.Odds, b.Mode, b.Profit)
	if err != nil {
		return 0, fmt.Errorf("inserting bet: %w", err)
	}
	return id, nil
}

// BetsByRun lists the bets of one simulation run in settlement order.
func (s *Store) BetsByRun(runID string) ([]Bet, error) {
	rows, err := s.db.Query(s.rebind(`
		SELECT id, ts, run_id, game_id, market, selection, stake, odds, mode, profit
		FROM bets
		WHERE run_id = ?
		ORDER BY id ASC
	`), runID)
	if err != nil {
		return nil, fmt.Errorf("querying bets: %w", err)
	}
	defer rows.Close()

	var bets []Bet
	for rows.Next() {
		var b Bet
		if err := rows.Scan(&b.ID, &b.TS, &b.RunID, &b.GameID, &b.Market, &b.Selection, &b.Stake, &b.Odds, &b.Mode, &b.Profit); err != nil {
			return nil, fmt.Errorf("scanning bet row: %w", err)
		}
		bets = append(bets, b)
	}
	return bets, rows.Err()
}
