package ingest

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"sports-intel/internal/odds"
	"sports-intel/internal/resolve"
	"sports-intel/internal/store"
)

const dkBaseURL = "https://sportsbook.draftkings.com"

// FindEventGroup locates the first node in a decoded payload tree that
// carries an "eventGroup" object containing "events". Traversal is
// depth-first with an explicit work stack; a visited set guards against
// payloads that alias the same container twice.
func FindEventGroup(root any) (map[string]any, bool) {
	stack := []any{root}
	visited := make(map[uintptr]bool)

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n := node.(type) {
		case map[string]any:
			ptr := reflect.ValueOf(n).Pointer()
			if visited[ptr] {
				continue
			}
			visited[ptr] = true

			if eg, ok := n["eventGroup"].(map[string]any); ok {
				if _, ok := eg["events"]; ok {
					return eg, true
				}
			}
			for _, v := range n {
				stack = append(stack, v)
			}
		case []any:
			ptr := reflect.ValueOf(n).Pointer()
			if visited[ptr] {
				continue
			}
			visited[ptr] = true

			// Push in reverse so the first element is explored first.
			for i := len(n) - 1; i >= 0; i-- {
				stack = append(stack, n[i])
			}
		}
	}
	return nil, false
}

// findEventNode locates the event object with the given id anywhere in a
// single-event page payload.
func findEventNode(root any, eventID int64) (map[string]any, bool) {
	stack := []any{root}
	visited := make(map[uintptr]bool)

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n := node.(type) {
		case map[string]any:
			ptr := reflect.ValueOf(n).Pointer()
			if visited[ptr] {
				continue
			}
			visited[ptr] = true

			if id, ok := asInt64(n["eventId"]); ok && id == eventID {
				return n, true
			}
			for _, v := range n {
				stack = append(stack, v)
			}
		case []any:
			ptr := reflect.ValueOf(n).Pointer()
			if visited[ptr] {
				continue
			}
			visited[ptr] = true

			for i := len(n) - 1; i >= 0; i-- {
				stack = append(stack, n[i])
			}
		}
	}
	return nil, false
}

// ParseEventName splits a sportsbook event name like "Lakers @ Warriors"
// or "Lakers at Warriors" into (home, away). The first side of the
// separator is the visitor.
func ParseEventName(name string) (home, away string, ok bool) {
	if i := strings.Index(name, "@"); i >= 0 {
		return strings.TrimSpace(name[i+1:]), strings.TrimSpace(name[:i]), true
	}
	if i := strings.Index(strings.ToLower(name), " at "); i >= 0 {
		return strings.TrimSpace(name[i+4:]), strings.TrimSpace(name[:i]), true
	}
	return "", "", false
}

// NormalizeEventGroup flattens a league-page payload into odds snapshot
// rows. A payload missing the event-group container yields an empty
// result, not an error. Offers pointing at unknown events are skipped;
// outcomes without a price are kept with nil odds so row counts reflect
// the full outcome enumeration.
func NormalizeEventGroup(root any, now time.Time, sportsbook string, res *resolve.Resolver) ([]store.OddsLine, error) {
	eg, found := FindEventGroup(root)
	if !found {
		return nil, nil
	}

	events := make(map[int64]map[string]any)
	for _, e := range asSlice(eg["events"]) {
		evt := asMap(e)
		if id, ok := asInt64(evt["eventId"]); ok {
			events[id] = evt
		}
	}

	var rows []store.OddsLine
	for _, c := range asSlice(eg["offerCategories"]) {
		cat := asMap(c)
		for _, sc := range asSlice(cat["offerSubcategoryDescriptors"]) {
			subcat := asMap(sc)
			subcatName := asString(subcat["name"])
			offers := asSlice(asMap(subcat["offerSubcategory"])["offers"])
			for _, o := range offers {
				offer := asMap(o)
				eventID, ok := asInt64(offer["eventId"])
				if !ok {
					continue
				}
				evt, ok := events[eventID]
				if !ok {
					continue
				}

				gameID, err := lookupGameForEvent(evt, res)
				if err != nil {
					return rows, err
				}

				market := asString(offer["label"])
				if market == "" {
					market = subcatName
				}

				eventURL := eventURLFor(evt)
				for _, out := range asSlice(offer["outcomes"]) {
					outcome := asMap(out)
					rows = append(rows, store.OddsLine{
						TS:         now,
						Sportsbook: sportsbook,
						EventID:    eventID,
						GameID:     gameID,
						Market:     market,
						Outcome:    asString(outcome["label"]),
						Line:       asFloat(outcome["line"]),
						Odds:       odds.FromPayloadValue(outcome["oddsAmerican"]),
						EventURL:   eventURL,
					})
				}
			}
		}
	}
	return rows, nil
}

// NormalizeEventPage flattens a single-event detail page into odds rows.
// Detail pages nest markets one level deeper than the league page and the
// market label carries its category context ("Cat - Subcat - Market").
func NormalizeEventPage(root any, eventID int64, now time.Time, sportsbook string, res *resolve.Resolver) ([]store.OddsLine, error) {
	evt, found := findEventNode(root, eventID)
	if !found {
		return nil, nil
	}

	gameID, err := lookupGameForEvent(evt, res)
	if err != nil {
		return nil, err
	}
	eventURL := eventURLFor(evt)

	var rows []store.OddsLine
	for _, c := range asSlice(evt["eventCategories"]) {
		cat := asMap(c)
		catName := asString(cat["name"])
		for _, sc := range asSlice(cat["componentizedOfferCategories"]) {
			subcat := asMap(sc)
			subcatName := asString(subcat["name"])
			for _, oc := range asSlice(subcat["offerCategories"]) {
				for _, o := range asSlice(asMap(oc)["offers"]) {
					offer := asMap(o)
					market := catName + " - " + subcatName + " - " + asString(offer["label"])
					for _, out := range asSlice(offer["outcomes"]) {
						outcome := asMap(out)
						rows = append(rows, store.OddsLine{
							TS:         now,
							Sportsbook: sportsbook,
							EventID:    eventID,
							GameID:     gameID,
							Market:     market,
							Outcome:    asString(outcome["label"]),
							Line:       asFloat(outcome["line"]),
							Odds:       odds.FromPayloadValue(outcome["oddsAmerican"]),
							EventURL:   eventURL,
						})
					}
				}
			}
		}
	}
	return rows, nil
}

// lookupGameForEvent maps an event object onto a stored game via its
// start date and team names. Unresolvable names leave the link nil and
// the rows still flow; only store failures propagate.
func lookupGameForEvent(evt map[string]any, res *resolve.Resolver) (*int64, error) {
	if res == nil {
		return nil, nil
	}
	startMS, ok := asInt64(evt["startDate"])
	if !ok {
		return nil, nil
	}
	home, away, ok := ParseEventName(asString(evt["name"]))
	if !ok {
		return nil, nil
	}

	date := time.UnixMilli(startMS).UTC().Truncate(24 * time.Hour)
	game, err := res.LookupGame(date, home, away)
	if err != nil {
		if errors.Is(err, resolve.ErrUnresolvable) {
			slog.Warn("Event teams not resolved", "home", home, "away", away)
			return nil, nil
		}
		return nil, err
	}
	if game == nil {
		return nil, nil
	}
	return &game.ID, nil
}

func eventURLFor(evt map[string]any) *string {
	path := asString(evt["eventPath"])
	if path == "" {
		return nil
	}
	url := dkBaseURL + path
	return &url
}
