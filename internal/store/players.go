package store

import "fmt"

// InsertPlayer inserts a player, ignoring conflicts on the external id.
func (s *Store) InsertPlayer(p Player) error {
	_, err := s.db.Exec(s.rebind(`
		INSERT INTO players (ext_player_id, name, position, height_cm, weight_kg, team_id)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`), p.ExtPlayerID, p.Name, p.Position, p.HeightCM, p.WeightKG, p.TeamID)
	if err != nil {
		return fmt.Errorf("inserting player: %w", err)
	}
	return nil
}

// PlayersByTeam lists a team's roster.
func (s *Store) PlayersByTeam(teamID int64) ([]Player, error) {
	rows, err := s.db.Query(s.rebind(`
		SELECT id, ext_player_id, name, position, height_cm, weight_kg, team_id
		FROM players
		WHERE team_id = ?
		ORDER BY name
	`), teamID)
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.ExtPlayerID, &p.Name, &p.Position, &p.HeightCM, &p.WeightKG, &p.TeamID); err != nil {
			return nil, fmt.Errorf("scanning player row: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
