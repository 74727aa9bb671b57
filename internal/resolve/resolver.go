// Package resolve maps free-text team names from scraped payloads onto
// stable store identities.
package resolve

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sports-intel/internal/store"
)

// ErrUnresolvable marks a name that matched no team, or matched more than
// one. Callers skip the offending record and continue the batch.
var ErrUnresolvable = errors.New("unresolvable team name")

// Resolver looks up and creates team identities within one league.
type Resolver struct {
	store  *store.Store
	league string
}

// New returns a resolver bound to a store and league tag.
func New(st *store.Store, league string) *Resolver {
	return &Resolver{store: st, league: league}
}

// ResolveTeam returns the internal id for a free-text team name,
// case-insensitively: exact match first, then a unique substring match.
// When nothing matches, a new team is created with an alias derived from
// the name. Ambiguous substring matches are ErrUnresolvable.
func (r *Resolver) ResolveTeam(name string) (int64, error) {
	return r.resolveTeam(name, nil)
}

// ResolveTeamExt behaves like ResolveTeam but records the upstream
// provider's id when the team has to be created.
func (r *Resolver) ResolveTeamExt(name string, extTeamID *int64) (int64, error) {
	return r.resolveTeam(name, extTeamID)
}

func (r *Resolver) resolveTeam(name string, extTeamID *int64) (int64, error) {
	id, found, err := r.lookupTeam(name)
	if err != nil {
		return 0, err
	}
	if found {
		return id, nil
	}

	clean := strings.TrimSpace(name)
	alias := deriveAlias(clean)
	err = r.store.InsertTeam(store.Team{
		ExtTeamID: extTeamID,
		Name:      clean,
		Alias:     &alias,
		League:    r.league,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return 0, fmt.Errorf("creating team %q: %w", clean, err)
	}

	// Re-read rather than trusting the insert: a concurrent resolver or a
	// re-run may have won the insert-or-ignore race with other casing.
	t, err := r.store.TeamByName(clean, r.league)
	if err != nil {
		return 0, err
	}
	if t == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnresolvable, name)
	}
	return t.ID, nil
}

// lookupTeam finds an existing team without creating one.
func (r *Resolver) lookupTeam(name string) (int64, bool, error) {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return 0, false, fmt.Errorf("%w: empty name", ErrUnresolvable)
	}

	t, err := r.store.TeamByName(clean, r.league)
	if err != nil {
		return 0, false, err
	}
	if t != nil {
		return t.ID, true, nil
	}

	matches, err := r.store.TeamsMatching(clean, r.league)
	if err != nil {
		return 0, false, err
	}
	switch len(matches) {
	case 0:
		return 0, false, nil
	case 1:
		return matches[0].ID, true, nil
	default:
		return 0, false, fmt.Errorf("%w: %q matches %d teams", ErrUnresolvable, clean, len(matches))
	}
}

// LookupGame finds a game by date and home/away team names. Games are
// only ever created from schedule feeds, so an odds-side lookup that
// misses returns nil without creating anything.
func (r *Resolver) LookupGame(date time.Time, homeName, awayName string) (*store.Game, error) {
	homeID, found, err := r.lookupTeam(homeName)
	if err != nil || !found {
		return nil, err
	}
	awayID, found, err := r.lookupTeam(awayName)
	if err != nil || !found {
		return nil, err
	}
	return r.store.GameByDateTeams(date, homeID, awayID)
}

func deriveAlias(name string) string {
	n := strings.ReplaceAll(name, " ", "")
	if len(n) > 3 {
		n = n[:3]
	}
	return strings.ToUpper(n)
}
