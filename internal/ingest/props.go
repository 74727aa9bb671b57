package ingest

import (
	"strings"
	"time"

	"sports-intel/internal/odds"
)

// PropLine is one player-level proposition price extracted from an event
// markets payload.
type PropLine struct {
	TS       time.Time
	EventID  int64
	Player   string
	Market   string
	Line     *float64
	Odds     *float64
	AwayTeam string
	HomeTeam string
}

// Keywords identifying player-level markets on an event page.
var playerMarketKeywords = []string{"player", "point", "rebound", "assist", "basket", "scorer"}

// categorySynonyms normalizes the many spellings users and URLs use for
// prop categories onto the canonical token matched against market labels.
var categorySynonyms = map[string]string{
	"player-points":        "points",
	"player-rebounds":      "rebounds",
	"player-assists":       "assists",
	"player-threes":        "three",
	"player-combos":        "combo",
	"player-pts+rebs+asts": "pts+rebs+asts",
	"points":               "points",
	"rebounds":             "rebounds",
	"assists":              "assists",
	"threes":               "three",
	"3-pointers":           "three",
	"3-pts":                "three",
	"3-pt":                 "three",
	"3pt":                  "three",
	"combos":               "combo",
	"combinations":         "combo",
	"first-basket":         "first basket",
	"first-scorer":         "first basket",
}

// NormalizeCategory maps a user-supplied category through the synonym
// table; unknown categories pass through lowercased.
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if norm, ok := categorySynonyms[c]; ok {
		return norm
	}
	return c
}

// FilterByCategory keeps the prop rows whose market label contains the
// normalized category, case-insensitively.
func FilterByCategory(rows []PropLine, category string) []PropLine {
	norm := NormalizeCategory(category)
	if norm == "" {
		return rows
	}
	var out []PropLine
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Market), norm) {
			out = append(out, r)
		}
	}
	return out
}

// NormalizeEventMarkets flattens an event-markets payload (the per-event
// markets API response) into player prop rows. Non-player markets are
// dropped; outcomes without a price are kept with nil odds.
func NormalizeEventMarkets(root map[string]any, eventID int64, now time.Time) []PropLine {
	event := asMap(root["event"])
	awayTeam := asString(event["awayTeamName"])
	homeTeam := asString(event["homeTeamName"])

	var rows []PropLine
	for _, m := range asSlice(root["eventMarkets"]) {
		market := asMap(m)
		marketName := asString(market["marketName"])
		if !isPlayerMarket(marketName) {
			continue
		}

		for _, o := range asSlice(market["outcomes"]) {
			outcome := asMap(o)
			label := marketName
			if criterion := asString(outcome["criterionName"]); criterion != "" {
				label = marketName + " - " + criterion
			}
			rows = append(rows, PropLine{
				TS:       now,
				EventID:  eventID,
				Player:   asString(outcome["label"]),
				Market:   label,
				Line:     asFloat(outcome["line"]),
				Odds:     odds.FromPayloadValue(outcome["oddsAmerican"]),
				AwayTeam: awayTeam,
				HomeTeam: homeTeam,
			})
		}
	}
	return rows
}

func isPlayerMarket(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range playerMarketKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
