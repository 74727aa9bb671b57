package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"sports-intel/internal/config"
	"sports-intel/internal/engine"
	"sports-intel/internal/ingest"
	"sports-intel/internal/resolve"
	"sports-intel/internal/sim"
	"sports-intel/internal/sportsdb"
	"sports-intel/internal/store"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: sportsintel <command> [flags]

Commands:
  backfill     load teams, rosters and the season schedule (plus odds from -payload-dir)
  update       run one incremental pass of every provider
  watch        poll providers on the configured interval until interrupted
  ingest-odds  normalize and store a league-page odds payload from a file
  props        show player props for an event from a payload file or fixtures
  simulate     replay a season with Kelly-sized paper bets
`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg := config.Load()
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	st, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Opening database %s: %v", cfg.DatabaseURL, err)
	}
	defer st.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	resolver := resolve.New(st, cfg.League)

	switch os.Args[1] {
	case "backfill":
		err = runBackfill(ctx, cfg, st, resolver, os.Args[2:])
	case "update":
		err = runUpdate(ctx, cfg, st, resolver, os.Args[2:])
	case "watch":
		err = runWatch(ctx, cfg, st, resolver, os.Args[2:])
	case "ingest-odds":
		err = runIngestOdds(cfg, st, resolver, os.Args[2:])
	case "props":
		err = runProps(cfg, os.Args[2:])
	case "simulate":
		err = runSimulate(cfg, st, os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

// currentSeason returns the start year of the season in progress; the
// NBA season rolls over in the fall.
func currentSeason(now time.Time) int {
	if now.Month() >= time.August {
		return now.Year()
	}
	return now.Year() - 1
}

func scheduleProvider(cfg config.Config, st *store.Store, resolver *resolve.Resolver, season int) ingest.Provider {
	client := sportsdb.NewClient("", sportsdb.NBALeagueID, cfg.RequestsPerMinute, cfg.HTTPTimeout, cfg.MaxRetries)
	return ingest.NewSportsDBProvider(st, resolver, client, cfg.League, season)
}

func runBackfill(ctx context.Context, cfg config.Config, st *store.Store, resolver *resolve.Resolver, args []string) error {
	fs := flag.NewFlagSet("backfill", flag.ExitOnError)
	season := fs.Int("season", currentSeason(time.Now()), "season start year")
	payloadDir := fs.String("payload-dir", "", "directory of saved odds payloads, one per game date")
	fs.Parse(args)

	providers := []ingest.Provider{scheduleProvider(cfg, st, resolver, *season)}
	if *payloadDir != "" {
		src := &filePayloadSource{dir: *payloadDir}
		providers = append(providers, ingest.NewDKOddsProvider(st, resolver, src, cfg.Sportsbook, *season))
	}

	for _, p := range providers {
		log.Printf("Backfilling %s (season %d)...", p.Name(), *season)
		if err := p.Backfill(ctx); err != nil {
			return fmt.Errorf("backfilling %s: %w", p.Name(), err)
		}
	}
	return nil
}

func runUpdate(ctx context.Context, cfg config.Config, st *store.Store, resolver *resolve.Resolver, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	season := fs.Int("season", currentSeason(time.Now()), "season start year")
	fs.Parse(args)

	p := scheduleProvider(cfg, st, resolver, *season)
	return p.Update(ctx)
}

func runWatch(ctx context.Context, cfg config.Config, st *store.Store, resolver *resolve.Resolver, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	season := fs.Int("season", currentSeason(time.Now()), "season start year")
	payloadDir := fs.String("payload-dir", "", "directory of saved odds payloads, one per game date")
	fs.Parse(args)

	providers := []ingest.Provider{scheduleProvider(cfg, st, resolver, *season)}
	if *payloadDir != "" {
		src := &filePayloadSource{dir: *payloadDir}
		providers = append(providers, ingest.NewDKOddsProvider(st, resolver, src, cfg.Sportsbook, *season))
	}

	log.Printf("Watching (interval %s)...", cfg.PollInterval)
	engine.New(cfg.PollInterval, providers...).Run(ctx)
	log.Println("Stopped gracefully")
	return nil
}

func runIngestOdds(cfg config.Config, st *store.Store, resolver *resolve.Resolver, args []string) error {
	fs := flag.NewFlagSet("ingest-odds", flag.ExitOnError)
	payload := fs.String("payload", "", "path to a saved league-page JSON payload (required)")
	season := fs.Int("season", currentSeason(time.Now()), "season start year")
	fs.Parse(args)
	if *payload == "" {
		return fmt.Errorf("-payload is required")
	}

	root, err := readPayload(*payload)
	if err != nil {
		return err
	}
	p := ingest.NewDKOddsProvider(st, resolver, nil, cfg.Sportsbook, *season)
	inserted, err := p.IngestPayload(root)
	if err != nil {
		return err
	}
	log.Printf("Inserted %d odds rows from %s", inserted, *payload)
	return nil
}

func runProps(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("props", flag.ExitOnError)
	eventID := fs.Int64("event", 0, "event id (required)")
	category := fs.String("category", "", "prop category filter (points, rebounds, 3-pt, ...)")
	payload := fs.String("payload", "", "path to a saved event-markets JSON payload")
	fixtures := fs.Bool("fixtures", false, "serve the canned fixture dataset")
	fs.Parse(args)
	if *eventID == 0 {
		return fmt.Errorf("-event is required")
	}

	var rows []ingest.PropLine
	switch {
	case *fixtures || cfg.UseFixtures:
		rows = ingest.FixtureProps(*eventID, time.Now().UTC())
	case *payload != "":
		root, err := readPayload(*payload)
		if err != nil {
			return err
		}
		m, ok := root.(map[string]any)
		if !ok {
			return fmt.Errorf("payload %s is not a JSON object", *payload)
		}
		rows = ingest.NormalizeEventMarkets(m, *eventID, time.Now().UTC())
	default:
		return fmt.Errorf("either -payload or -fixtures is required")
	}

	rows = ingest.FilterByCategory(rows, *category)
	if len(rows) == 0 {
		log.Printf("No props for event %d (category %q)", *eventID, *category)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PLAYER\tMARKET\tLINE\tODDS")
	for _, r := range rows {
		line, odds := "-", "-"
		if r.Line != nil {
			line = fmt.Sprintf("%.1f", *r.Line)
		}
		if r.Odds != nil {
			odds = fmt.Sprintf("%.3f", *r.Odds)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Player, r.Market, line, odds)
	}
	return w.Flush()
}

func runSimulate(cfg config.Config, st *store.Store, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	season := fs.Int("season", currentSeason(time.Now()), "season start year")
	bankroll := fs.Float64("bankroll", cfg.InitialBankroll, "starting bankroll")
	fs.Parse(args)

	s := sim.New(st, cfg.EdgeMargin)
	s.MaxBet = cfg.MaxBet
	final, stats, err := s.Run(*season, *bankroll)
	if err != nil {
		return err
	}

	log.Printf("Run %s: %d bets, win rate %.1f%%, bankroll %.2f -> %.2f (ROI %.2f%%)",
		stats.RunID, stats.NBets, stats.WinRate*100, *bankroll, final, stats.ROI*100)
	return nil
}

// filePayloadSource serves pre-fetched payloads from a directory: one
// <YYYY-MM-DD>.json league page per game date and event-<id>.json detail
// pages. Missing files surface as fetch errors, which the provider
// logs and skips.
type filePayloadSource struct {
	dir string
}

func (s *filePayloadSource) EventGroup(_ context.Context, day time.Time) (any, error) {
	return readPayload(filepath.Join(s.dir, day.Format("2006-01-02")+".json"))
}

func (s *filePayloadSource) EventPage(_ context.Context, eventID int64, _ string) (any, error) {
	return readPayload(filepath.Join(s.dir, fmt.Sprintf("event-%d.json", eventID)))
}

func readPayload(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decoding payload %s: %w", path, err)
	}
	return root, nil
}
