package store

import "time"

// Team is an internal team identity. Natural identity is the
// case-insensitive (name, league) pair; ExtTeamID is a soft link to the
// upstream provider's identifier.
type Team struct {
	ID        int64
	ExtTeamID *int64
	Name      string
	Alias     *string
	League    string
	CreatedAt time.Time
}

// Player is keyed by external id. Height and weight are metric (cm / kg).
// TeamID is a weak reference; a player may exist without a resolved team.
type Player struct {
	ID          int64
	ExtPlayerID *int64
	Name        string
	Position    *string
	HeightCM    *int
	WeightKG    *int
	TeamID      *int64
}

// Game is one scheduled or played game. Scores may be updated after
// creation; all other fields are immutable once inserted.
type Game struct {
	ID         int64
	ExtGameID  string
	Season     int
	Date       time.Time
	HomeTeamID int64
	AwayTeamID int64
	Venue      *string
	HomeScore  *int
	AwayScore  *int
}

// WinnerTeamID returns the winning team's id, or nil while either score
// is missing.
func (g *Game) WinnerTeamID() *int64 {
	if g.HomeScore == nil || g.AwayScore == nil {
		return nil
	}
	if *g.HomeScore > *g.AwayScore {
		return &g.HomeTeamID
	}
	return &g.AwayTeamID
}

// OddsLine is one timestamped snapshot of one outcome's price. Rows are
// append-only; (TS, EventID, Market, Outcome) is the dedup key. Odds is
// nil when the sportsbook listed the outcome without a price.
type OddsLine struct {
	ID         int64
	TS         time.Time
	Sportsbook string
	EventID    int64
	GameID     *int64
	Market     string
	Outcome    string
	Line       *float64
	Odds       *float64
	EventURL   *string
}

// Bet records one simulated wager. Rows are written once and never
// mutated; RunID groups the bets of a single simulation run.
type Bet struct {
	ID        int64
	TS        time.Time
	RunID     string
	GameID    int64
	Market    string
	Selection string
	Stake     float64
	Odds      float64
	Mode      string
	Profit    *float64
}
