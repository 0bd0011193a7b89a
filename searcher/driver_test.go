package searcher

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"chicken/experiments/metrics"
	"chicken/game"
	"chicken/sensor"
	"chicken/utils"
)

func TestFindMoveWithoutMoves(t *testing.T) {
	b := newBuilder(1)
	_, ok := NewDriver(WithEvaluationFn(score)).FindMove(tree{node: b.leaf(0)}, game.Context{}, nil)
	require.False(t, ok)

	_, ok = NewDriver().FindMove(game.NewBoard(8).WithChicken(game.SideA, game.Chicken{Even: true}), game.Context{}, nil)
	require.False(t, ok)
}

func TestFindMoveIsBestRootMove(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		b := newBuilder(seed)
		root := b.random(4)
		if root.terminal || len(root.children) == 0 {
			continue
		}
		state := tree{node: root}

		for _, options := range [][]Option{
			{WithMaxDepth(4)},
			{WithFixedDepth(4)},
			{WithMaxDepth(4), WithoutPruning()},
		} {
			t.Run(fmt.Sprint("seed ", seed), func(t *testing.T) {
				d := NewDriver(append(options, WithEvaluationFn(score))...)
				move, ok := d.FindMove(state, game.Context{}, Unlimited())
				if !anyChild(root.children) {
					require.True(t, ok)
					require.Equal(t, moveAt(0), move)
					return
				}

				require.True(t, ok)
				require.GreaterOrEqual(t, utils.FindIndex(state.LegalMoves(), move), 0)
				chosen := root.children[indexOf(move)]
				require.NotNil(t, chosen)
				require.Equal(t, reference(root, 4, true), reference(chosen, 3, false))
			})
		}
	}
}

func anyChild(children []*node) bool {
	for _, c := range children {
		if c != nil {
			return true
		}
	}
	return false
}

func TestFindMoveOutOfTime(t *testing.T) {
	b := newBuilder(7)
	root := tree{node: b.full(3, 3)}
	n := len(root.LegalMoves())

	fixed, ok := NewDriver(WithEvaluationFn(score), WithFixedDepth(1)).FindMove(root, game.Context{}, Unlimited())
	require.True(t, ok)

	t.Run("no time at all", func(t *testing.T) {
		move, ok := NewDriver(WithEvaluationFn(score)).FindMove(root, game.Context{}, ticks(0))
		require.True(t, ok)
		require.Equal(t, root.LegalMoves()[0], move)
	})

	t.Run("time for a single iteration", func(t *testing.T) {
		collector := metrics.NewCollector()
		move, ok := NewDriver(WithEvaluationFn(score), WithMetrics(collector)).FindMove(root, game.Context{}, ticks(1+n))
		require.True(t, ok)
		require.Equal(t, fixed, move)
		require.Equal(t, 1, collector.Complete().Depth)
		require.False(t, collector.Complete().Aborted)
	})

	t.Run("second iteration is discarded", func(t *testing.T) {
		collector := metrics.NewCollector()
		move, ok := NewDriver(WithEvaluationFn(score), WithMetrics(collector)).FindMove(root, game.Context{}, ticks(1+n+2))
		require.True(t, ok)
		require.Equal(t, fixed, move, "a partial iteration must not replace the completed one")
		require.Equal(t, 1, collector.Complete().Depth)
		require.True(t, collector.Complete().Aborted)
	})

	t.Run("countdown", func(t *testing.T) {
		move, ok := NewDriver(WithEvaluationFn(score)).FindMove(root, game.Context{}, Countdown(0))
		require.True(t, ok)
		require.Equal(t, root.LegalMoves()[0], move)
	})
}

func TestFindMoveMetrics(t *testing.T) {
	b := newBuilder(8)
	collector := metrics.NewCollector()
	_, ok := NewDriver(WithEvaluationFn(score), WithMaxDepth(3), WithMetrics(collector)).FindMove(tree{node: b.full(3, 3)}, game.Context{}, nil)

	require.True(t, ok)
	m := collector.Complete()
	require.Equal(t, 3, m.Depth)
	require.False(t, m.Aborted)
	require.Greater(t, m.Nodes, 3, "nodes of every iteration are counted")
}

// board returns an in-progress 8x8 board with SideA to move.
func board(at game.Loc, eggsA, eggsB, turns int) *game.Board {
	return game.NewBoard(8).
		WithChicken(game.SideA, game.Chicken{Loc: at, Even: true, Eggs: eggsA, TurdsLeft: 0, TurnsLeft: turns}).
		WithChicken(game.SideB, game.Chicken{Loc: game.Loc{X: 7, Y: 6}, Eggs: eggsB, TurdsLeft: 0, TurnsLeft: turns})
}

func TestFindMoveOnBoard(t *testing.T) {
	t.Run("lays when it can", func(t *testing.T) {
		at := game.Loc{X: 2, Y: 2}
		ctx := game.Context{Visited: game.NewVisitedSet(at), Origin: at}

		move, ok := NewDriver(WithMaxDepth(3)).FindMove(board(at, 3, 1, 20), ctx, Unlimited())
		require.True(t, ok)
		require.Equal(t, game.Egg, move.Type)
	})

	t.Run("leaves a confirmed trapdoor by the only safe square", func(t *testing.T) {
		at := game.Loc{X: 3, Y: 3}
		memory := sensor.NewMemory().Confirm(at, game.Loc{X: 4, Y: 3}, game.Loc{X: 3, Y: 4}, game.Loc{X: 2, Y: 3})
		ctx := game.Context{Hazards: memory, Visited: game.NewVisitedSet(at), Origin: at, Felt: true}

		move, ok := NewDriver(WithMaxDepth(3)).FindMove(board(at, 0, 0, 20), ctx, Unlimited())
		require.True(t, ok)
		require.Equal(t, game.Up, move.Dir)
	})

	t.Run("avoids squares next to a felt trapdoor", func(t *testing.T) {
		// Felt from (3,3): the trapdoor is one of its neighbors
		memory := sensor.NewMemory().Observe(game.Loc{X: 3, Y: 3}, sensor.Readings{{Heard: true, Felt: true}})
		at := game.Loc{X: 2, Y: 2}
		ctx := game.Context{Hazards: memory, Visited: game.NewVisitedSet(at), Origin: at}
		require.True(t, memory.Near(at.Step(game.Right)))
		require.True(t, memory.Near(at.Step(game.Down)))

		move, ok := NewDriver(WithMaxDepth(2)).FindMove(board(at, 0, 0, 20), ctx, Unlimited())
		require.True(t, ok)
		require.Contains(t, []game.Direction{game.Up, game.Left}, move.Dir)
	})

	t.Run("stops deepening once the game is decided", func(t *testing.T) {
		// Whatever A does ends the game with A ahead
		last := board(game.Loc{X: 2, Y: 2}, 5, 0, 1).WithChicken(game.SideB, game.Chicken{Loc: game.Loc{X: 7, Y: 6}})
		collector := metrics.NewCollector()
		move, ok := NewDriver(WithMetrics(collector)).FindMove(last, game.Context{}, Unlimited())

		require.True(t, ok)
		require.GreaterOrEqual(t, utils.FindIndex(last.LegalMoves(), move), 0)
		require.Equal(t, 1, collector.Complete().Depth)
	})
}

func TestOrderMoves(t *testing.T) {
	state := board(game.Loc{X: 3, Y: 3}, 0, 0, 20)
	memory := sensor.NewMemory().
		Observe(game.Loc{X: 3, Y: 4}, sensor.Readings{{Heard: true}}).
		Confirm(game.Loc{X: 4, Y: 3})
	previous := game.Move{Dir: game.Left, Type: game.Plain}

	ordered := orderMoves(state, state.LegalMoves(), previous, memory)

	require.Equal(t, []game.Move{
		{Dir: game.Left, Type: game.Plain},
		{Dir: game.Up, Type: game.Plain},
		{Dir: game.Up, Type: game.Egg},
		{Dir: game.Left, Type: game.Egg},
		{Dir: game.Down, Type: game.Plain},
		{Dir: game.Down, Type: game.Egg},
		{Dir: game.Right, Type: game.Plain},
		{Dir: game.Right, Type: game.Egg},
	}, ordered)
	require.Len(t, state.LegalMoves(), 8, "ordering must not touch the input")

	unordered := orderMoves(state, state.LegalMoves(), state.LegalMoves()[0], nil)
	require.Equal(t, state.LegalMoves(), unordered)
}
