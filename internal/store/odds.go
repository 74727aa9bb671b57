package store

import (
	"database/sql"
	"fmt"
)

// InsertOddsLines persists a batch of odds snapshots with
// insert-or-ignore semantics: a row whose (ts, event_id, market, outcome)
// key already exists is silently dropped, never overwritten. Returns the
// number of rows actually inserted.
func (s *Store) InsertOddsLines(lines []OddsLine) (int, error) {
	query := s.rebind(`
		INSERT INTO odds_lines (ts, sportsbook, event_id, game_id, market, outcome, line, odds, event_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`)

	inserted := 0
	for _, l := range lines {
		res, err := s.db.Exec(query,
			l.TS, l.Sportsbook, l.EventID, l.GameID, l.Market, l.Outcome, l.Line, l.Odds, l.EventURL)
		if err != nil {
			return inserted, fmt.Errorf("inserting odds line: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, nil
}

// LatestOddsForGame returns the most recent odds snapshot for a game
// whose market label contains marketSubstr, case-insensitively. Returns
// nil when no snapshot matches.
func (s *Store) LatestOddsForGame(gameID int64, marketSubstr string) (*OddsLine, error) {
	row := s.db.QueryRow(s.rebind(`
		SELECT id, ts, sportsbook, event_id, game_id, market, outcome, line, odds, event_url
		FROM odds_lines
		WHERE game_id = ? AND LOWER(market) LIKE '%' || LOWER(?) || '%'
		ORDER BY ts DESC, id DESC
		LIMIT 1
	`), gameID, marketSubstr)

	var l OddsLine
	err := row.Scan(&l.ID, &l.TS, &l.Sportsbook, &l.EventID, &l.GameID, &l.Market, &l.Outcome, &l.Line, &l.Odds, &l.EventURL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning odds line: %w", err)
	}
	return &l, nil
}

// EventURL returns a stored source URL for an event, or "" when none of
// the event's snapshots carried one.
func (s *Store) EventURL(eventID int64) (string, error) {
	var url string
	err := s.db.QueryRow(s.rebind(`
		SELECT event_url FROM odds_lines
		WHERE event_id = ? AND event_url IS NOT NULL
		LIMIT 1
	`), eventID).Scan(&url)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying event url: %w", err)
	}
	return url, nil
}

// EventIDs lists the distinct event ids present in the odds table.
func (s *Store) EventIDs() ([]int64, error) {
	rows, err := s.db.Query(`SELECT DISTINCT event_id FROM odds_lines ORDER BY event_id`)
	if err != nil {
		return nil, fmt.Errorf("querying event ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning event id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountOddsLines reports the total number of stored snapshots.
func (s *Store) CountOddsLines() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM odds_lines`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting odds lines: %w", err)
	}
	return n, nil
}
