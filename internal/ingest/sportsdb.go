package ingest

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"sports-intel/internal/resolve"
	"sports-intel/internal/sportsdb"
	"sports-intel/internal/store"
)

// ScheduleFeed is the slice of the TheSportsDB client the provider needs;
// tests satisfy it with static payloads.
type ScheduleFeed interface {
	ListTeams(ctx context.Context) ([]sportsdb.TeamInfo, error)
	ListPlayers(ctx context.Context, extTeamID int64) ([]sportsdb.PlayerInfo, error)
	SeasonEvents(ctx context.Context, season string) ([]sportsdb.Event, error)
	NextEvents(ctx context.Context) ([]sportsdb.Event, error)
}

// SportsDBProvider ingests teams, rosters and the game schedule (with
// results) from TheSportsDB. Games gain scores in place as results
// arrive; odds never create games.
type SportsDBProvider struct {
	store    *store.Store
	resolver *resolve.Resolver
	feed     ScheduleFeed
	league   string
	season   int
}

// NewSportsDBProvider wires a schedule provider for one season.
func NewSportsDBProvider(st *store.Store, res *resolve.Resolver, feed ScheduleFeed, league string, season int) *SportsDBProvider {
	return &SportsDBProvider{store: st, resolver: res, feed: feed, league: league, season: season}
}

func (p *SportsDBProvider) Name() string { return "thesportsdb" }

// Backfill loads the league's teams, each team's roster, and the full
// season schedule.
func (p *SportsDBProvider) Backfill(ctx context.Context) error {
	if err := p.ingestTeams(ctx); err != nil {
		return err
	}
	if err := p.ingestRosters(ctx); err != nil {
		return err
	}

	label := strconv.Itoa(p.season) + "-" + strconv.Itoa(p.season+1)
	events, err := p.feed.SeasonEvents(ctx, label)
	if err != nil {
		slog.Warn("Fetching season events failed", "season", label, "err", err)
		return nil
	}
	return p.upsertEvents(events)
}

// Update merges the next scheduled events, picking up final scores for
// games already stored.
func (p *SportsDBProvider) Update(ctx context.Context) error {
	events, err := p.feed.NextEvents(ctx)
	if err != nil {
		slog.Warn("Fetching next events failed", "err", err)
		return nil
	}
	return p.upsertEvents(events)
}

func (p *SportsDBProvider) ingestTeams(ctx context.Context) error {
	teams, err := p.feed.ListTeams(ctx)
	if err != nil {
		slog.Warn("Fetching teams failed", "err", err)
		return nil
	}
	for _, t := range teams {
		if t.StrTeam == "" {
			continue
		}
		var alias *string
		if t.StrTeamShort != "" {
			alias = &t.StrTeamShort
		}
		row := store.Team{
			ExtTeamID: parseInt64(t.IDTeam),
			Name:      t.StrTeam,
			Alias:     alias,
			League:    p.league,
			CreatedAt: time.Now().UTC(),
		}
		if err := p.store.InsertTeam(row); err != nil {
			return err
		}
	}
	slog.Info("Ingested teams", "count", len(teams))
	return nil
}

func (p *SportsDBProvider) ingestRosters(ctx context.Context) error {
	teams, err := p.store.TeamsMatching("", p.league)
	if err != nil {
		return err
	}
	for _, t := range teams {
		if t.ExtTeamID == nil {
			continue
		}
		players, err := p.feed.ListPlayers(ctx, *t.ExtTeamID)
		if err != nil {
			slog.Warn("Fetching roster failed", "team", t.Name, "err", err)
			continue
		}
		for _, pl := range players {
			if pl.StrPlayer == "" {
				continue
			}
			var position *string
			if pl.StrPosition != "" {
				position = &pl.StrPosition
			}
			teamID := t.ID
			row := store.Player{
				ExtPlayerID: parseInt64(pl.IDPlayer),
				Name:        pl.StrPlayer,
				Position:    position,
				HeightCM:    ParseHeightCM(pl.StrHeight),
				WeightKG:    ParseWeightKG(pl.StrWeight),
				TeamID:      &teamID,
			}
			if err := p.store.InsertPlayer(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *SportsDBProvider) upsertEvents(events []sportsdb.Event) error {
	stored := 0
	for _, e := range events {
		date, err := time.Parse("2006-01-02", e.DateEvent)
		if err != nil {
			slog.Warn("Skipping event with bad date", "event", e.IDEvent, "date", e.DateEvent)
			continue
		}

		homeID, err := p.resolver.ResolveTeamExt(e.StrHomeTeam, parseInt64(e.IDHomeTeam))
		if err != nil {
			if errors.Is(err, resolve.ErrUnresolvable) {
				slog.Warn("Skipping event, home team unresolved", "event", e.IDEvent, "team", e.StrHomeTeam)
				continue
			}
			return err
		}
		awayID, err := p.resolver.ResolveTeamExt(e.StrAwayTeam, parseInt64(e.IDAwayTeam))
		if err != nil {
			if errors.Is(err, resolve.ErrUnresolvable) {
				slog.Warn("Skipping event, away team unresolved", "event", e.IDEvent, "team", e.StrAwayTeam)
				continue
			}
			return err
		}

		var venue *string
		if e.StrVenue != "" {
			venue = &e.StrVenue
		}
		g := store.Game{
			ExtGameID:  e.IDEvent,
			Season:     seasonYear(e.StrSeason, p.season),
			Date:       date,
			HomeTeamID: homeID,
			AwayTeamID: awayID,
			Venue:      venue,
			HomeScore:  parseScore(e.IntHomeScore),
			AwayScore:  parseScore(e.IntAwayScore),
		}
		if _, err := p.store.UpsertGame(g); err != nil {
			return err
		}
		stored++
	}
	slog.Info("Upserted games", "count", stored)
	return nil
}

// seasonYear extracts the calendar start year from a label like
// "2024-2025"; unparsable labels fall back to the configured season.
func seasonYear(label string, fallback int) int {
	first, _, _ := strings.Cut(label, "-")
	if y, err := strconv.Atoi(strings.TrimSpace(first)); err == nil && y > 1900 {
		return y
	}
	return fallback
}

// ParseHeightCM parses upstream height strings ("198 cm", "1.98 m") into
// centimeters. Unknown formats yield nil.
func ParseHeightCM(s string) *int {
	s = strings.TrimSpace(s)
	switch {
	case strings.Contains(s, "cm"):
		v, err := strconv.Atoi(strings.TrimSpace(strings.Split(s, "cm")[0]))
		if err != nil {
			return nil
		}
		return &v
	case strings.Contains(s, "m"):
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.Split(s, "m")[0]), 64)
		if err != nil {
			return nil
		}
		v := int(f * 100)
		return &v
	default:
		return nil
	}
}

// ParseWeightKG parses upstream weight strings ("98 kg", "216 lbs") into
// kilograms. Unknown formats yield nil.
func ParseWeightKG(s string) *int {
	s = strings.TrimSpace(s)
	switch {
	case strings.Contains(s, "kg"):
		v, err := strconv.Atoi(strings.TrimSpace(strings.Split(s, "kg")[0]))
		if err != nil {
			return nil
		}
		return &v
	case strings.Contains(s, "lbs"):
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.Split(s, "lbs")[0]), 64)
		if err != nil {
			return nil
		}
		v := int(f * 0.453592)
		return &v
	default:
		return nil
	}
}

func parseInt64(s string) *int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseScore(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}
