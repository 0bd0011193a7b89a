package experiments

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"chicken/agent"
	"chicken/config"
	"chicken/engine"
	"chicken/experiments/metrics"
	"chicken/game"
)

// Matchup pairs two agents. A plays SideA in odd-numbered games and B in even ones.
type Matchup struct {
	A config.Agent
	B config.Agent
}

type Tournament struct {
	Name        string
	Games       int // Per matchup
	Concurrency int // Games played at the same time
	Seed        uint64
	TimeBank    time.Duration
}

type Standing struct {
	Wins   int
	Losses int
	Ties   int
}

type gameResult struct {
	record metrics.GameRecord
	moves  []metrics.MoveRecord
}

// Run plays every game of every matchup. Games are independent, each one runs its
// single-threaded agents in its own goroutine.
func (t Tournament) Run(ctx context.Context, matchUps []Matchup) ([]metrics.GameRecord, []metrics.MoveRecord, error) {
	if t.Games <= 0 {
		return nil, nil, fmt.Errorf("games per matchup must be positive, got %d", t.Games)
	}
	results := make([]gameResult, len(matchUps)*t.Games)

	log.Info().Msgf("starting %s tournament with %d games...", t.Name, len(results))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(t.Concurrency, 1))
	for mi, matchup := range matchUps {
		for i := 0; i < t.Games; i++ {
			id := mi*t.Games + i + 1
			first, second := matchup.A, matchup.B
			if i%2 == 1 { // Alternate sides for the same matchup
				first, second = second, first
			}
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[id-1] = t.play(id, first, second)
				log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %q", mi+1, len(matchUps), i+1, t.Games, results[id-1].record.Winner)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("tournament %s interrupted: %w", t.Name, err)
	}

	gameRecords := make([]metrics.GameRecord, 0, len(results))
	moveRecords := []metrics.MoveRecord{}
	for _, r := range results {
		gameRecords = append(gameRecords, r.record)
		moveRecords = append(moveRecords, r.moves...)
	}
	log.Info().Msgf("completed %s tournament", t.Name)
	return gameRecords, moveRecords, nil
}

func (t Tournament) play(id int, first, second config.Agent) gameResult {
	seed := t.Seed + uint64(id)
	agents := []agent.Agent{agent.New(first, seed), agent.New(second, seed+1)}
	options := []engine.Option{engine.WithSeed(seed)}
	if t.TimeBank > 0 {
		options = append(options, engine.WithTimeBank(t.TimeBank))
	}
	e := engine.LocalEngine(agents, options...)

	_, gameMetric, moveMetrics := e.Run()

	r := gameResult{
		record: metrics.GameRecord{ID: id, Agent1: first.ID, Agent2: second.ID, GameMetric: gameMetric},
		moves:  make([]metrics.MoveRecord, 0, len(moveMetrics)),
	}
	for _, mm := range moveMetrics {
		r.moves = append(r.moves, metrics.MoveRecord{Game: id, MoveMetric: mm})
	}
	return r
}

// Standings tallies results by agent ID.
func Standings(records []metrics.GameRecord) map[int]Standing {
	standings := map[int]Standing{}
	for _, r := range records {
		a, b := standings[r.Agent1], standings[r.Agent2]
		switch r.Winner {
		case game.SideA.String():
			a.Wins++
			b.Losses++
		case game.SideB.String():
			a.Losses++
			b.Wins++
		default:
			a.Ties++
			b.Ties++
		}
		standings[r.Agent1], standings[r.Agent2] = a, b
	}
	return standings
}

// Store writes the agent configurations and the records under baseDir.
func Store(baseDir, name string, configs []config.Agent, games []metrics.GameRecord, moves []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(baseDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	stored := make([]metrics.AgentConfig, 0, len(configs))
	for _, c := range configs {
		stored = append(stored, metrics.AgentConfig{
			ID:         c.ID,
			Name:       c.String(),
			Variant:    c.Variant,
			MaxDepth:   c.MaxDepth,
			FixedDepth: c.FixedDepth,
			Pruning:    !c.DisablePruning,
		})
	}
	if err := writer.WriteAgentConfigs(stored); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
