package sportsdb

// TheSportsDB returns every field as a string; parsing happens in the
// ingestion layer.

// TeamInfo from lookup_all_teams.php.
type TeamInfo struct {
	IDTeam       string `json:"idTeam"`
	StrTeam      string `json:"strTeam"`
	StrTeamShort string `json:"strTeamShort"`
}

// PlayerInfo from lookup_all_players.php.
type PlayerInfo struct {
	IDPlayer    string `json:"idPlayer"`
	StrPlayer   string `json:"strPlayer"`
	StrPosition string `json:"strPosition"`
	StrHeight   string `json:"strHeight"`
	StrWeight   string `json:"strWeight"`
}

// Event from eventsseason.php / eventsnextleague.php.
type Event struct {
	IDEvent      string `json:"idEvent"`
	StrSeason    string `json:"strSeason"`
	DateEvent    string `json:"dateEvent"`
	StrTime      string `json:"strTime"`
	StrHomeTeam  string `json:"strHomeTeam"`
	StrAwayTeam  string `json:"strAwayTeam"`
	IDHomeTeam   string `json:"idHomeTeam"`
	IDAwayTeam   string `json:"idAwayTeam"`
	StrVenue     string `json:"strVenue"`
	IntHomeScore string `json:"intHomeScore"`
	IntAwayScore string `json:"intAwayScore"`
}

type teamsResponse struct {
	Teams []TeamInfo `json:"teams"`
}

type playersResponse struct {
	Players []PlayerInfo `json:"player"`
}

type eventsResponse struct {
	Events []Event `json:"events"`
}
