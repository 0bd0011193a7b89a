package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chicken/config"
	"chicken/experiments"
)

func main() {
	first := flag.String("a", "", "YAML config of the first agent (default: iterative deepening minimax)")
	second := flag.String("b", "", "YAML config of the second agent (default: greedy)")
	games := flag.Int("games", 10, "Games per matchup")
	concurrency := flag.Int("concurrency", 4, "Games played at the same time")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for trapdoor placement and tie-breaking")
	bank := flag.Duration("bank", 0, "Thinking time per player per game (default: match rules)")
	out := flag.String("out", "experiments", "Directory for the CSV results, empty to skip")
	experiment := flag.String("experiment", "", "Run a predefined experiment instead: pruning")
	depth := flag.Int("depth", 4, "Search depth of the pruning experiment")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	configs, matchUps, name := selectMatchUps(*experiment, *depth, *first, *second)
	t := experiments.Tournament{
		Name:        name,
		Games:       *games,
		Concurrency: *concurrency,
		Seed:        *seed,
		TimeBank:    *bank,
	}
	gameRecords, moveRecords, err := t.Run(ctx, matchUps)
	if err != nil {
		log.Fatal().Err(err).Msg("tournament failed")
	}

	standings := experiments.Standings(gameRecords)
	throughputs := experiments.Throughputs(gameRecords, moveRecords)
	for _, c := range configs {
		s, tp := standings[c.ID], throughputs[c.ID]
		log.Info().Str("agent", c.String()).Int("wins", s.Wins).Int("losses", s.Losses).Int("ties", s.Ties).
			Float64("nodes_per_second", tp.NodesPerSecond()).Float64("mean_depth", tp.MeanDepth()).Msg("standing")
	}

	if *out == "" {
		return
	}
	dir, err := experiments.Store(*out, t.Name, configs, gameRecords, moveRecords)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to store results")
	}
	log.Info().Str("dir", dir).Msg("results stored")
}

// selectMatchUps returns the agents and pairings to play, exiting on invalid input.
func selectMatchUps(experiment string, depth int, first, second string) ([]config.Agent, []experiments.Matchup, string) {
	switch experiment {
	case "":
	case "pruning":
		configs, matchUps := experiments.PruningMatchups(depth)
		return configs, matchUps, "pruning"
	default:
		log.Fatal().Str("experiment", experiment).Msg("unknown experiment")
	}

	a, err := loadAgent(first, config.Default())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load first agent")
	}
	greedy := config.Default()
	greedy.Name, greedy.Variant = "bob", config.Greedy
	b, err := loadAgent(second, greedy)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load second agent")
	}
	a.ID, b.ID = 1, 2
	return []config.Agent{a, b}, []experiments.Matchup{{A: a, B: b}}, a.String() + "_vs_" + b.String()
}

func loadAgent(path string, fallback config.Agent) (config.Agent, error) {
	if path == "" {
		return fallback, nil
	}
	return config.Load(path)
}
