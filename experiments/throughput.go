package experiments

import (
	"time"

	"chicken/config"
	"chicken/experiments/metrics"
	"chicken/game"
)

// Throughput sums the search effort of one agent over a set of games.
type Throughput struct {
	Moves    int
	Nodes    int
	Cutoffs  int
	Aborted  int // Moves whose last iteration ran out of time
	Depths   int // Sum of completed depths
	Duration time.Duration
}

func (t Throughput) NodesPerSecond() float64 {
	if t.Duration <= 0 {
		return 0
	}
	return float64(t.Nodes) / t.Duration.Seconds()
}

func (t Throughput) MeanDepth() float64 {
	if t.Moves == 0 {
		return 0
	}
	return float64(t.Depths) / float64(t.Moves)
}

// Throughputs tallies move records by the ID of the agent that played them.
func Throughputs(games []metrics.GameRecord, moves []metrics.MoveRecord) map[int]Throughput {
	records := make(map[int]metrics.GameRecord, len(games))
	for _, g := range games {
		records[g.ID] = g
	}

	throughputs := map[int]Throughput{}
	for _, m := range moves {
		g, ok := records[m.Game]
		if !ok {
			continue
		}
		id := g.Agent1
		if m.Player == game.SideB.String() {
			id = g.Agent2
		}

		t := throughputs[id]
		t.Moves++
		t.Nodes += m.Nodes
		t.Cutoffs += m.Cutoffs
		t.Depths += m.Depth
		t.Duration += m.Duration
		if m.Aborted {
			t.Aborted++
		}
		throughputs[id] = t
	}
	return throughputs
}

// PruningMatchups plays the same fixed-depth searcher with and without alpha-beta,
// and with iterative deepening, against the greedy agent.
func PruningMatchups(depth int) ([]config.Agent, []Matchup) {
	bob := config.Default()
	bob.ID, bob.Name, bob.Variant = 1, "bob", config.Greedy

	pruned := config.Default()
	pruned.ID, pruned.Name, pruned.Variant, pruned.FixedDepth = 2, "alphabeta", config.Fixed, depth

	unpruned := pruned
	unpruned.ID, unpruned.Name, unpruned.DisablePruning = 3, "minimax", true

	deepening := config.Default()
	deepening.ID, deepening.Name, deepening.MaxDepth = 4, "deepening", depth

	configs := []config.Agent{bob, pruned, unpruned, deepening}
	return configs, []Matchup{{A: pruned, B: bob}, {A: unpruned, B: bob}, {A: deepening, B: bob}}
}
