package searcher

import (
	"math"
	"time"

	"chicken/experiments/metrics"
	"chicken/game"
)

// Minimax is a depth-limited minimax search over forecast states, with alpha-beta
// pruning unless disabled. Scores are always from the perspective of the root mover:
// maximizing levels are states where the root mover is to move, minimizing levels are
// states where the opponent is.
type Minimax struct {
	evaluate game.Evaluate
	timeLeft TimeLeft
	reserve  time.Duration
	prune    bool
	metrics  metrics.Collector
}

func NewMinimax(evaluate game.Evaluate, timeLeft TimeLeft, reserve time.Duration, prune bool, collector metrics.Collector) *Minimax {
	if evaluate == nil {
		panic("evaluate function is required")
	}
	if timeLeft == nil {
		timeLeft = Unlimited()
	}
	if collector == nil {
		collector = metrics.NewDummyCollector()
	}
	return &Minimax{
		evaluate: evaluate,
		timeLeft: timeLeft,
		reserve:  reserve,
		prune:    prune,
		metrics:  collector,
	}
}

// Search scores state to the given depth. maximizing tells whether the mover of state
// is the root player.
func (m *Minimax) Search(state game.State, depth int, maximizing bool, ctx game.Context) Outcome {
	return m.search(state, depth, math.Inf(-1), math.Inf(1), maximizing, ctx)
}

func (m *Minimax) search(state game.State, depth int, alpha, beta float64, maximizing bool, ctx game.Context) Outcome {
	m.metrics.AddNode()

	if state.IsTerminal() || depth <= 0 {
		return Scored(m.leaf(state, maximizing, ctx))
	}
	if m.timeLeft() < m.reserve {
		return Aborted()
	}

	moves := state.LegalMoves()
	if len(moves) == 0 { // Stuck, score the position as it stands
		return Scored(m.leaf(state, maximizing, ctx))
	}

	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	expanded := false
	for _, move := range moves {
		next, ok := state.Forecast(move)
		if !ok {
			continue
		}

		child := ctx
		if maximizing {
			child = visit(ctx, next.Player().Loc)
		}
		value, ok := m.child(next, depth, alpha, beta, maximizing, child).Score()
		if !ok {
			return Aborted()
		}
		expanded = true

		if maximizing {
			best = math.Max(best, value)
			alpha = math.Max(alpha, best)
		} else {
			best = math.Min(best, value)
			beta = math.Min(beta, best)
		}
		if m.prune && beta <= alpha {
			m.metrics.AddCutoff()
			break
		}
	}

	if !expanded { // Every forecast was rejected
		return Scored(m.leaf(state, maximizing, ctx))
	}
	return Scored(best)
}

// child scores the state a move of the current mover leads to. A root player step onto
// a confirmed trapdoor ends the line there, since the real game would end too.
func (m *Minimax) child(next game.State, depth int, alpha, beta float64, maximizing bool, ctx game.Context) Outcome {
	if maximizing && ctx.Hazards != nil && ctx.Hazards.Confirmed(next.Player().Loc) {
		m.metrics.AddNode()
		return Scored(m.evaluate(next, ctx))
	}
	return m.search(next.ReversePerspective(), depth-1, alpha, beta, !maximizing, ctx)
}

// visit records a root player move onto l. Whether l was already crossed is decided
// before l joins the set.
func visit(ctx game.Context, l game.Loc) game.Context {
	ctx.Revisit = ctx.Visited.Contains(l)
	ctx.Visited = ctx.Visited.With(l)
	return ctx
}

// leaf evaluates from the root mover's side, flipping minimizing states back first.
func (m *Minimax) leaf(state game.State, maximizing bool, ctx game.Context) float64 {
	if maximizing {
		return m.evaluate(state, ctx)
	}
	return m.evaluate(state.ReversePerspective(), ctx)
}
