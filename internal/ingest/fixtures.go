package ingest

import (
	"time"

	"sports-intel/internal/odds"
)

// FixtureProps returns a canned player prop dataset for demos and tests.
// It is only served when the use_fixtures config flag is set; providers
// never fall back to it silently.
func FixtureProps(eventID int64, now time.Time) []PropLine {
	type row struct {
		player   string
		market   string
		line     float64
		hasLine  bool
		american int
	}
	rows := []row{
		{"Donovan Mitchell", "Player Points - Over", 28.5, true, -110},
		{"Donovan Mitchell", "Player Points - Under", 28.5, true, -110},
		{"Jimmy Butler", "Player Points - Over", 23.5, true, -115},
		{"Jimmy Butler", "Player Points - Under", 23.5, true, -105},
		{"Bam Adebayo", "Player Points - Over", 18.5, true, -120},
		{"Bam Adebayo", "Player Points - Under", 18.5, true, 100},
		{"Bam Adebayo", "Player Rebounds - Over", 9.5, true, -125},
		{"Bam Adebayo", "Player Rebounds - Under", 9.5, true, 105},
		{"Donovan Mitchell", "Player Rebounds - Over", 4.5, true, -110},
		{"Donovan Mitchell", "Player Rebounds - Under", 4.5, true, -110},
		{"Darius Garland", "Player Assists - Over", 7.5, true, -130},
		{"Darius Garland", "Player Assists - Under", 7.5, true, 110},
		{"Tyler Herro", "Player Assists - Over", 4.5, true, -115},
		{"Tyler Herro", "Player Assists - Under", 4.5, true, -105},
		{"Donovan Mitchell", "Player Threes - Over", 3.5, true, -105},
		{"Donovan Mitchell", "Player Threes - Under", 3.5, true, -115},
		{"Donovan Mitchell", "First Basket Scorer", 0, false, 550},
		{"Jimmy Butler", "First Basket Scorer", 0, false, 600},
		{"Bam Adebayo", "First Basket Scorer", 0, false, 700},
	}

	props := make([]PropLine, 0, len(rows))
	for _, r := range rows {
		american := r.american
		var line *float64
		if r.hasLine {
			v := r.line
			line = &v
		}
		props = append(props, PropLine{
			TS:       now,
			EventID:  eventID,
			Player:   r.player,
			Market:   r.market,
			Line:     line,
			Odds:     odds.ToDecimal(&american),
			AwayTeam: "MIA Heat",
			HomeTeam: "CLE Cavaliers",
		})
	}
	return props
}
