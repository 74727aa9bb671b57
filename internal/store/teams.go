package store

import (
	"database/sql"
	"fmt"
	"time"
)

// InsertTeam inserts a team, silently ignoring a row that already exists
// under the same (name, league) identity or external id.
func (s *Store) InsertTeam(t Team) error {
	created := t.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := s.db.Exec(s.rebind(`
		INSERT INTO teams (ext_team_id, name, alias, league, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`), t.ExtTeamID, t.Name, t.Alias, t.League, created)
	if err != nil {
		return fmt.Errorf("inserting team: %w", err)
	}
	return nil
}

// TeamByName finds a team by case-insensitive exact name within a league.
// Returns nil when no row matches.
func (s *Store) TeamByName(name, league string) (*Team, error) {
	row := s.db.QueryRow(s.rebind(`
		SELECT id, ext_team_id, name, alias, league, created_at
		FROM teams
		WHERE LOWER(name) = LOWER(?) AND league = ?
	`), name, league)
	return scanTeam(row)
}

// TeamsMatching finds teams whose name contains fragment,
// case-insensitively, within a league.
func (s *Store) TeamsMatching(fragment, league string) ([]Team, error) {
	rows, err := s.db.Query(s.rebind(`
		SELECT id, ext_team_id, name, alias, league, created_at
		FROM teams
		WHERE LOWER(name) LIKE '%' || LOWER(?) || '%' AND league = ?
		ORDER BY id
	`), fragment, league)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.ExtTeamID, &t.Name, &t.Alias, &t.League, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// TeamByID retrieves a single team. Returns nil when absent.
func (s *Store) TeamByID(id int64) (*Team, error) {
	row := s.db.QueryRow(s.rebind(`
		SELECT id, ext_team_id, name, alias, league, created_at
		FROM teams WHERE id = ?
	`), id)
	return scanTeam(row)
}

func scanTeam(row *sql.Row) (*Team, error) {
	var t Team
	err := row.Scan(&t.ID, &t.ExtTeamID, &t.Name, &t.Alias, &t.League, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning team: %w", err)
	}
	return &t, nil
}
