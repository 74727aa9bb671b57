package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const dateLayout = "2006-01-02"

// Store persists teams, players, games, odds snapshots and bets in a
// relational database. SQLite is the default engine; a postgres:// URL
// selects Postgres instead.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the database named by url and creates the schema if
// missing. Accepted forms: a postgres://... DSN, a sqlite://path prefix,
// a bare file path, or ":memory:".
func Open(url string) (*Store, error) {
	driver, dsn := resolveDriver(url)

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, driver: driver}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func resolveDriver(url string) (driver, dsn string) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return "postgres", url
	case strings.HasPrefix(url, "sqlite://"):
		return "sqlite3", strings.TrimPrefix(url, "sqlite://")
	default:
		return "sqlite3", url
	}
}

func (s *Store) createTables() error {
	idCol := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.driver == "postgres" {
		idCol = "BIGSERIAL PRIMARY KEY"
	}

	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS teams (
		id %[1]s,
		ext_team_id BIGINT UNIQUE,
		name TEXT NOT NULL,
		alias TEXT,
		league TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE UNIQUE INDEX IF NOT EXISTS uq_team_name_league ON teams(LOWER(name), league);

	CREATE TABLE IF NOT EXISTS players (
		id %[1]s,
		ext_player_id BIGINT UNIQUE,
		name TEXT NOT NULL,
		position TEXT,
		height_cm INTEGER,
		weight_kg INTEGER,
		team_id BIGINT REFERENCES teams(id)
	);
	CREATE INDEX IF NOT EXISTS idx_players_name ON players(name);

	CREATE TABLE IF NOT EXISTS games (
		id %[1]s,
		ext_game_id TEXT NOT NULL UNIQUE,
		season INTEGER NOT NULL,
		date TEXT NOT NULL,
		home_team_id BIGINT NOT NULL REFERENCES teams(id),
		away_team_id BIGINT NOT NULL REFERENCES teams(id),
		venue TEXT,
		home_score INTEGER,
		away_score INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_games_season ON games(season);
	CREATE INDEX IF NOT EXISTS idx_games_date ON games(date);

	CREATE TABLE IF NOT EXISTS odds_lines (
		id %[1]s,
		ts TIMESTAMP NOT NULL,
		sportsbook TEXT NOT NULL,
		event_id BIGINT NOT NULL,
		game_id BIGINT REFERENCES games(id),
		market TEXT NOT NULL,
		outcome TEXT NOT NULL,
		line DOUBLE PRECISION,
		odds DOUBLE PRECISION,
		event_url TEXT,
		UNIQUE (ts, event_id, market, outcome)
	);
	CREATE INDEX IF NOT EXISTS idx_odds_event ON odds_lines(event_id);
	CREATE INDEX IF NOT EXISTS idx_odds_game ON odds_lines(game_id);

	CREATE TABLE IF NOT EXISTS bets (
		id %[1]s,
		ts TIMESTAMP NOT NULL,
		run_id TEXT NOT NULL,
		game_id BIGINT NOT NULL REFERENCES games(id),
		market TEXT NOT NULL,
		selection TEXT NOT NULL,
		stake DOUBLE PRECISION NOT NULL,
		odds DOUBLE PRECISION NOT NULL,
		mode TEXT NOT NULL,
		profit DOUBLE PRECISION
	);
	CREATE INDEX IF NOT EXISTS idx_bets_run ON bets(run_id);
	`, idCol)

	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind converts ?-style placeholders to $N for Postgres. Queries in
// this package are written with ? throughout.
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// insertID runs an INSERT and reports the new row id, papering over the
// LastInsertId/RETURNING split between the two drivers.
func (s *Store) insertID(query string, args ...any) (int64, error) {
	if s.driver == "postgres" {
		var id int64
		err := s.db.QueryRow(s.rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
