package searcher

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"chicken/experiments/metrics"
	"chicken/game"
	"chicken/meta"
)

// Default reserves, kept back from the match clock.
const (
	DepthReserve = 100 * time.Millisecond // Before starting another iteration
	MoveReserve  = 50 * time.Millisecond  // Before scoring another root move
	NodeReserve  = 10 * time.Millisecond  // Before expanding a node
)

type Option func(d *Driver)

// Driver picks a root move by iterative deepening over Minimax.
type Driver struct {
	maxDepth     int
	fixedDepth   int
	depthReserve time.Duration
	moveReserve  time.Duration
	nodeReserve  time.Duration
	evaluate     game.Evaluate
	decisive     float64 // Scores at or beyond this magnitude end the deepening
	prune        bool
	metrics      metrics.Collector
}

func WithMaxDepth(depth int) Option {
	return func(d *Driver) {
		if depth > 0 {
			d.maxDepth = depth
		}
	}
}

// WithFixedDepth searches a single iteration at the given depth.
func WithFixedDepth(depth int) Option {
	return func(d *Driver) {
		if depth > 0 {
			d.fixedDepth = depth
		}
	}
}

func WithDepthReserve(reserve time.Duration) Option {
	return func(d *Driver) {
		if reserve >= 0 {
			d.depthReserve = reserve
		}
	}
}

func WithMoveReserve(reserve time.Duration) Option {
	return func(d *Driver) {
		if reserve >= 0 {
			d.moveReserve = reserve
		}
	}
}

func WithNodeReserve(reserve time.Duration) Option {
	return func(d *Driver) {
		if reserve >= 0 {
			d.nodeReserve = reserve
		}
	}
}

func WithWeights(w game.Weights) Option {
	return func(d *Driver) {
		d.evaluate = w.Evaluate
		d.decisive = w.Win
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(d *Driver) {
		if evaluate != nil {
			d.evaluate = evaluate
			d.decisive = 0
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(d *Driver) {
		if collector != nil {
			d.metrics = collector
		}
	}
}

// WithoutPruning runs plain minimax, for comparisons against alpha-beta.
func WithoutPruning() Option {
	return func(d *Driver) {
		d.prune = false
	}
}

func NewDriver(options ...Option) *Driver {
	w := game.DefaultWeights()
	d := &Driver{ // Default values
		maxDepth:     meta.MAX_DEPTH,
		depthReserve: DepthReserve,
		moveReserve:  MoveReserve,
		nodeReserve:  NodeReserve,
		evaluate:     w.Evaluate,
		decisive:     w.Win,
		prune:        true,
		metrics:      metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(d)
	}
	return d
}

// FindMove returns the best root move of the deepest completed iteration. ok is false
// only when the state has no legal move. Once a legal move exists a move is always
// returned, even if not a single iteration completes in time.
func (d *Driver) FindMove(state game.State, ctx game.Context, timeLeft TimeLeft) (game.Move, bool) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, false
	}
	if timeLeft == nil {
		timeLeft = Unlimited()
	}

	d.metrics.Start()
	mm := NewMinimax(d.evaluate, timeLeft, d.nodeReserve, d.prune, d.metrics)

	first, last := 1, d.maxDepth
	if d.fixedDepth > 0 {
		first, last = d.fixedDepth, d.fixedDepth
	}

	best := moves[0]
	for depth := first; depth <= last; depth++ {
		if timeLeft() < d.depthReserve {
			break
		}

		move, value, ok := d.searchRoot(mm, state, orderMoves(state, moves, best, ctx.Hazards), depth, ctx, timeLeft)
		if !ok { // Partial iteration, keep the previous depth's move
			d.metrics.Abort()
			log.Debug().Int("depth", depth).Msg("iteration aborted")
			break
		}
		best = move
		d.metrics.CompleteDepth(depth)
		log.Debug().Int("depth", depth).Str("move", best.String()).Float64("value", value).Msg("iteration completed")

		if d.decisive > 0 && math.Abs(value) >= d.decisive {
			break
		}
	}
	return best, true
}

// searchRoot scores every root move at the given depth. ok is false when time ran out
// before every move was scored, or when no move could be forecast.
func (d *Driver) searchRoot(mm *Minimax, state game.State, moves []game.Move, depth int, ctx game.Context, timeLeft TimeLeft) (game.Move, float64, bool) {
	var best game.Move
	bestValue := math.Inf(-1)
	found := false
	alpha := math.Inf(-1)

	for _, move := range moves {
		if timeLeft() < d.moveReserve {
			return best, bestValue, false
		}
		next, ok := state.Forecast(move)
		if !ok {
			continue
		}

		child := visit(ctx, next.Player().Loc)
		value, ok := mm.child(next, depth, alpha, math.Inf(1), true, child).Score()
		if !ok {
			return best, bestValue, false
		}

		if !found || value > bestValue {
			best, bestValue, found = move, value, true
		}
		if d.prune {
			alpha = math.Max(alpha, bestValue)
		}
	}
	return best, bestValue, found
}

// orderMoves puts the previous iteration's best move first, then moves by how
// strongly their destination is suspected. Nothing is removed.
func orderMoves(state game.State, moves []game.Move, previous game.Move, hazards game.Hazards) []game.Move {
	from := state.Player().Loc
	rank := func(m game.Move) int {
		if m == previous {
			return -1
		}
		if hazards == nil {
			return 0
		}
		to := from.Step(m.Dir)
		if hazards.Confirmed(to) {
			return math.MaxInt32
		}
		return hazards.Suspicion(to)
	}

	ordered := slices.Clone(moves)
	slices.SortStableFunc(ordered, func(a, b game.Move) int {
		return cmp.Compare(rank(a), rank(b))
	})
	return ordered
}
