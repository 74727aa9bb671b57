// Package sportsdb is a minimal TheSportsDB API client used by the
// schedule/results provider.
package sportsdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const DefaultBaseURL = "https://www.thesportsdb.com/api/v1/json/3"

// League ids on TheSportsDB.
const NBALeagueID = 4387

// Client wraps http.Client with rate limiting and retries.
type Client struct {
	client      *http.Client
	rateLimiter *rateLimiter
	maxRetries  int
	baseURL     string
	leagueID    int
}

type rateLimiter struct {
	mu         sync.Mutex
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
}

func newRateLimiter(requestsPerMinute int) *rateLimiter {
	refillRate := time.Minute / time.Duration(requestsPerMinute)
	burst := requestsPerMinute / 6
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		tokens:     burst,
		maxTokens:  burst,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

func (rl *rateLimiter) wait(ctx context.Context) error {
	for {
		rl.mu.Lock()

		now := time.Now()
		elapsed := now.Sub(rl.lastRefill)
		tokensToAdd := int(elapsed / rl.refillRate)
		if tokensToAdd > 0 {
			rl.tokens = min(rl.tokens+tokensToAdd, rl.maxTokens)
			rl.lastRefill = now
		}

		if rl.tokens > 0 {
			rl.tokens--
			rl.mu.Unlock()
			return nil
		}

		waitTime := rl.refillRate
		rl.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}
}

// NewClient creates a client limited to requestsPerMinute against the
// given base URL (DefaultBaseURL when empty) and league.
func NewClient(baseURL string, leagueID, requestsPerMinute int, timeout time.Duration, maxRetries int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		client:      &http.Client{Timeout: timeout},
		rateLimiter: newRateLimiter(requestsPerMinute),
		maxRetries:  maxRetries,
		baseURL:     baseURL,
		leagueID:    leagueID,
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				lastErr = readErr
			} else if resp.StatusCode != http.StatusOK {
				lastErr = fmt.Errorf("status %d from %s", resp.StatusCode, endpoint)
			} else {
				if err := json.Unmarshal(body, out); err != nil {
					return fmt.Errorf("parsing %s response: %w", endpoint, err)
				}
				return nil
			}
		}

		backoff := time.Duration(1<<attempt) * 100 * time.Millisecond
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("request to %s failed after %d attempts: %w", endpoint, c.maxRetries+1, lastErr)
}

// ListTeams fetches all teams in the league.
func (c *Client) ListTeams(ctx context.Context) ([]TeamInfo, error) {
	var resp teamsResponse
	params := url.Values{"id": {fmt.Sprint(c.leagueID)}}
	if err := c.get(ctx, "lookup_all_teams.php", params, &resp); err != nil {
		return nil, err
	}
	return resp.Teams, nil
}

// ListPlayers fetches a team's roster by the provider's team id.
func (c *Client) ListPlayers(ctx context.Context, extTeamID int64) ([]PlayerInfo, error) {
	var resp playersResponse
	params := url.Values{"id": {fmt.Sprint(extTeamID)}}
	if err := c.get(ctx, "lookup_all_players.php", params, &resp); err != nil {
		return nil, err
	}
	return resp.Players, nil
}

// SeasonEvents fetches all events for a season label like "2024-2025".
func (c *Client) SeasonEvents(ctx context.Context, season string) ([]Event, error) {
	var resp eventsResponse
	params := url.Values{"id": {fmt.Sprint(c.leagueID)}, "s": {season}}
	if err := c.get(ctx, "eventsseason.php", params, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// NextEvents fetches the league's next scheduled events.
func (c *Client) NextEvents(ctx context.Context) ([]Event, error) {
	var resp eventsResponse
	params := url.Values{"id": {fmt.Sprint(c.leagueID)}}
	if err := c.get(ctx, "eventsnextleague.php", params, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}
