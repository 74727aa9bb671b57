package store

import (
	"database/sql"
	"fmt"
	"time"
)

// UpsertGame inserts a game or, when a row with the same external id
// already exists, updates only its scores (and only when both are
// present; a partial score never clobbers stored results). Returns the
// internal game id either way.
func (s *Store) UpsertGame(g Game) (int64, error) {
	var existing int64
	err := s.db.QueryRow(s.rebind(`SELECT id FROM games WHERE ext_game_id = ?`), g.ExtGameID).Scan(&existing)
	if err == nil {
		if g.HomeScore != nil && g.AwayScore != nil {
			_, err = s.db.Exec(s.rebind(`
				UPDATE games SET home_score = ?, away_score = ? WHERE id = ?
			`), g.HomeScore, g.AwayScore, existing)
			if err != nil {
				return 0, fmt.Errorf("updating game scores: %w", err)
			}
		}
		return existing, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("checking game: %w", err)
	}

	id, err := s.insertID(`
		INSERT INTO games (ext_game_id, season, date, home_team_id, away_team_id, venue, home_score, away_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, g.ExtGameID, g.Season, g.Date.Format(dateLayout), g.HomeTeamID, g.AwayTeamID, g.Venue, g.HomeScore, g.AwayScore)
	if err != nil {
		return 0, fmt.Errorf("inserting game: %w", err)
	}
	return id, nil
}

// GameByDateTeams finds a game by exact date and resolved home/away team
// ids. Returns nil when no row matches.
func (s *Store) GameByDateTeams(date time.Time, homeTeamID, awayTeamID int64) (*Game, error) {
	row := s.db.QueryRow(s.rebind(`
		SELECT id, ext_game_id, season, date, home_team_id, away_team_id, venue, home_score, away_score
		FROM games
		WHERE date = ? AND home_team_id = ? AND away_team_id = ?
	`), date.Format(dateLayout), homeTeamID, awayTeamID)
	return scanGame(row)
}

// GameByID retrieves a single game. Returns nil when absent.
func (s *Store) GameByID(id int64) (*Game, error) {
	row := s.db.QueryRow(s.rebind(`
		SELECT id, ext_game_id, season, date, home_team_id, away_team_id, venue, home_score, away_score
		FROM games WHERE id = ?
	`), id)
	return scanGame(row)
}

// GamesBySeason lists a season's games in chronological order, with
// insertion order breaking date ties.
func (s *Store) GamesBySeason(season int) ([]Game, error) {
	rows, err := s.db.Query(s.rebind(`
		SELECT id, ext_game_id, season, date, home_team_id, away_team_id, venue, home_score, away_score
		FROM games
		WHERE season = ?
		ORDER BY date ASC, id ASC
	`), season)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		g, err := scanGameRow(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}

// GameDates lists the distinct dates of a season's games, ascending.
func (s *Store) GameDates(season int) ([]time.Time, error) {
	rows, err := s.db.Query(s.rebind(`
		SELECT DISTINCT date FROM games WHERE season = ? ORDER BY date ASC
	`), season)
	if err != nil {
		return nil, fmt.Errorf("querying game dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning game date: %w", err)
		}
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("parsing game date %q: %w", raw, err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func scanGame(row *sql.Row) (*Game, error) {
	var g Game
	var raw string
	err := row.Scan(&g.ID, &g.ExtGameID, &g.Season, &raw, &g.HomeTeamID, &g.AwayTeamID, &g.Venue, &g.HomeScore, &g.AwayScore)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning game: %w", err)
	}
	if g.Date, err = time.Parse(dateLayout, raw); err != nil {
		return nil, fmt.Errorf("parsing game date %q: %w", raw, err)
	}
	return &g, nil
}

func scanGameRow(rows *sql.Rows) (*Game, error) {
	var g Game
	var raw string
	err := rows.Scan(&g.ID, &g.ExtGameID, &g.Season, &raw, &g.HomeTeamID, &g.AwayTeamID, &g.Venue, &g.HomeScore, &g.AwayScore)
	if err != nil {
		return nil, fmt.Errorf("scanning game row: %w", err)
	}
	if g.Date, err = time.Parse(dateLayout, raw); err != nil {
		return nil, fmt.Errorf("parsing game date %q: %w", raw, err)
	}
	return &g, nil
}
