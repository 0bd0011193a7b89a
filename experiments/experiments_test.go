package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chicken/config"
	"chicken/experiments/metrics"
)

func greedy(id int, name string) config.Agent {
	a := config.Default()
	a.ID, a.Name, a.Variant = id, name, config.Greedy
	return a
}

func TestRun(t *testing.T) {
	bob, alice := greedy(1, "bob"), greedy(2, "alice")
	tournament := Tournament{Name: "test", Games: 4, Concurrency: 2, Seed: 1}

	games, moves, err := tournament.Run(context.Background(), []Matchup{{A: bob, B: alice}})
	require.NoError(t, err)
	require.Len(t, games, 4)

	total := 0
	for i, g := range games {
		require.Equal(t, i+1, g.ID)
		if i%2 == 0 {
			require.Equal(t, []int{1, 2}, []int{g.Agent1, g.Agent2})
		} else {
			require.Equal(t, []int{2, 1}, []int{g.Agent1, g.Agent2}, "sides alternate")
		}
		total += g.TotalMoves
	}
	require.Len(t, moves, total)

	standings := Standings(games)
	for _, id := range []int{1, 2} {
		s := standings[id]
		require.Equal(t, 4, s.Wins+s.Losses+s.Ties)
	}
	require.Equal(t, standings[1].Wins, standings[2].Losses)

	again, _, err := tournament.Run(context.Background(), []Matchup{{A: bob, B: alice}})
	require.NoError(t, err)
	for i := range games {
		require.Equal(t, games[i].Winner, again[i].Winner, "seeded games replay")
		require.Equal(t, games[i].Eggs, again[i].Eggs)
	}
}

func TestRunErrors(t *testing.T) {
	_, _, err := Tournament{Name: "empty"}.Run(context.Background(), []Matchup{{A: greedy(1, "a"), B: greedy(2, "b")}})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = Tournament{Name: "cancelled", Games: 2}.Run(ctx, []Matchup{{A: greedy(1, "a"), B: greedy(2, "b")}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestStore(t *testing.T) {
	configs := []config.Agent{greedy(1, "bob"), greedy(2, "alice")}
	games, moves, err := Tournament{Name: "store", Games: 2, Seed: 5}.Run(context.Background(), []Matchup{{A: configs[0], B: configs[1]}})
	require.NoError(t, err)

	dir, err := Store(t.TempDir(), "store", configs, games, moves)
	require.NoError(t, err)

	for name, rows := range map[string]int{
		"agent_configs.csv": len(configs),
		"game_records.csv":  len(games),
		"move_records.csv":  len(moves),
	} {
		f, err := os.Open(filepath.Join(dir, name))
		require.NoError(t, err)
		records, err := csv.NewReader(f).ReadAll()
		f.Close()
		require.NoError(t, err)
		require.Len(t, records, rows+1, name)
	}
}

func TestThroughputs(t *testing.T) {
	games := []metrics.GameRecord{{ID: 1, Agent1: 2, Agent2: 1}, {ID: 2, Agent1: 1, Agent2: 2}}
	move := func(game int, player string, nodes int, aborted bool) metrics.MoveRecord {
		return metrics.MoveRecord{Game: game, MoveMetric: metrics.MoveMetric{Player: player, SearchMetric: metrics.SearchMetric{
			Duration: 100 * time.Millisecond, Nodes: nodes, Cutoffs: 1, Depth: 2, Aborted: aborted,
		}}}
	}
	moves := []metrics.MoveRecord{
		move(1, "A", 100, false),
		move(1, "B", 0, false),
		move(2, "B", 300, true),
		move(3, "A", 1000, false), // Unknown game
	}

	throughputs := Throughputs(games, moves)

	searching := throughputs[2]
	require.Equal(t, 2, searching.Moves)
	require.Equal(t, 400, searching.Nodes)
	require.Equal(t, 1, searching.Aborted)
	require.InDelta(t, 2000.0, searching.NodesPerSecond(), 1e-9)
	require.Equal(t, 2.0, searching.MeanDepth())
	require.Equal(t, 1, throughputs[1].Moves)
	require.Zero(t, Throughput{}.NodesPerSecond())
	require.Zero(t, Throughput{}.MeanDepth())
}

func TestPruningMatchups(t *testing.T) {
	configs, matchups := PruningMatchups(3)

	require.Len(t, matchups, 3)
	ids := map[int]bool{}
	for _, c := range configs {
		require.NoError(t, c.Validate(), c.String())
		ids[c.ID] = true
	}
	require.Len(t, ids, len(configs))
	require.True(t, matchups[1].A.DisablePruning)
	require.False(t, matchups[0].A.DisablePruning)
	require.Equal(t, config.Greedy, matchups[2].B.Variant)
}
