package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"chicken/agent"
	"chicken/experiments/metrics"
	"chicken/game"
	"chicken/meta"
	"chicken/sensor"
	"chicken/utils"
)

type Option func(e *Local)

// Local runs a match in process. Board holds the engine's truth, hidden trapdoors
// included; agents only ever see Board.Public().
type Local struct {
	Board     *game.Board
	agents    [2]agent.Agent
	trapdoors []game.Loc
	banks     [2]time.Duration
	seed      uint64
}

// WithBoard starts from the given board instead of a fresh one.
func WithBoard(b *game.Board) Option {
	return func(e *Local) {
		if b != nil {
			e.Board = b
		}
	}
}

// WithTrapdoors places the trapdoors instead of sampling them.
func WithTrapdoors(locs ...game.Loc) Option {
	return func(e *Local) {
		e.trapdoors = append([]game.Loc{}, locs...)
	}
}

func WithSeed(seed uint64) Option {
	return func(e *Local) {
		e.seed = seed
	}
}

func WithTimeBank(bank time.Duration) Option {
	return func(e *Local) {
		if bank > 0 {
			e.banks = [2]time.Duration{bank, bank}
		}
	}
}

func WithStartingSide(side game.Side) Option {
	return func(e *Local) {
		e.Board = e.Board.WithMover(side)
	}
}

// LocalEngine sets up a match between agents[0] playing SideA and agents[1] playing SideB.
func LocalEngine(agents []agent.Agent, options ...Option) *Local {
	if len(agents) != 2 {
		panic(fmt.Sprintf("need exactly two agents, got %d", len(agents)))
	}
	e := &Local{
		Board:  game.NewBoard(meta.MAP_SIZE),
		agents: [2]agent.Agent{agents[0], agents[1]},
		banks:  [2]time.Duration{meta.TIME_BANK, meta.TIME_BANK},
		seed:   uint64(time.Now().UnixNano()),
	}
	for _, option := range options {
		option(e)
	}
	if e.trapdoors == nil {
		e.trapdoors = PlaceTrapdoors(rand.New(rand.NewSource(e.seed)), e.Board)
	}
	for _, t := range e.trapdoors {
		e.Board = e.Board.WithHidden(t)
	}
	return e
}

// PlaceTrapdoors samples one trapdoor per coloring from the center of the board,
// away from both chickens.
func PlaceTrapdoors(r *rand.Rand, b *game.Board) []game.Loc {
	lo, hi := 2, b.Size()-3
	if hi < lo {
		lo, hi = 0, b.Size()-1
	}
	occupied := []game.Loc{b.Chicken(game.SideA).Loc, b.Chicken(game.SideB).Loc}

	var trapdoors []game.Loc
	for _, even := range []bool{true, false} {
		var candidates []game.Loc
		for y := lo; y <= hi; y++ {
			for x := lo; x <= hi; x++ {
				l := game.Loc{X: x, Y: y}
				if l.Even() == even && utils.FindIndex(occupied, l) < 0 {
					candidates = append(candidates, l)
				}
			}
		}
		if len(candidates) > 0 {
			trapdoors = append(trapdoors, candidates[r.Intn(len(candidates))])
		}
	}
	return trapdoors
}

func (e *Local) Trapdoors() []game.Loc {
	return e.trapdoors
}

// Run executes the entire game loop until the match is decided.
func (e *Local) Run() (Result, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Board.Mover().String(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("player %s is starting, trapdoors at %v", e.Board.Mover(), e.trapdoors)

	reason := ReasonEggs
	forfeit, forfeited := game.SideA, false
	step := 0
	for !e.Board.IsTerminal() && step < MaxMoves {
		side := e.Board.Mover()
		view := e.Board.Public()
		legal := view.LegalMoves()
		if len(legal) == 0 && view.Player().TurnsLeft <= 0 { // Out of turns, the other side finishes
			e.Board = e.Board.WithMover(side.Other())
			continue
		}
		if len(legal) == 0 {
			other := e.Board.Chicken(side.Other())
			other.Eggs += meta.BLOCKED_BONUS
			e.Board = e.Board.WithChicken(side.Other(), other)
			reason = ReasonBlocked
			log.Info().Msgf("player %s is blocked, player %s gets %d eggs", side, side.Other(), meta.BLOCKED_BONUS)
			break
		}

		readings := sensor.Probe(view.Player().Loc, e.trapdoors)
		bank, start := e.banks[side], time.Now()
		move, ok := e.agents[side].Play(view, readings, func() time.Duration {
			return bank - time.Since(start)
		})
		e.banks[side] -= time.Since(start)
		if e.banks[side] <= 0 {
			forfeit, forfeited = side, true
			reason = ReasonTimeout
			log.Info().Msgf("player %s ran out of time", side)
			break
		}
		if !ok || utils.FindIndex(legal, move) < 0 {
			log.Warn().Msgf("player %s returned an illegal move %v (ok=%t), forcing %v", side, move, ok, legal[0])
			move = legal[0]
		}

		next, _ := e.Board.Apply(move)
		step++
		moveMetric := metrics.MoveMetric{Step: step, Player: side.String(), Move: move.String()}
		if r, ok := e.agents[side].(agent.Reporter); ok {
			moveMetric.SearchMetric = r.Metric()
		}
		moveMetrics = append(moveMetrics, moveMetric)

		if next.Chicken(side).Fallen {
			reason = ReasonTrapdoor
			log.Info().Msgf("player %s fell into the trapdoor at %v", side, next.Chicken(side).Loc)
		}
		e.Board = next.WithMover(side.Other())
	}

	result := Result{Reason: reason, Moves: step}
	result.Eggs = [2]int{e.Board.Chicken(game.SideA).Eggs, e.Board.Chicken(game.SideB).Eggs}
	if forfeited {
		result.Winner = forfeit.Other()
	} else {
		winner, ok := e.Board.WinningSide()
		result.Winner, result.Tie = winner, !ok
	}

	gameMetric.Winner = result.WinnerName()
	gameMetric.Reason = result.Reason
	gameMetric.Eggs = result.Eggs
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step

	log.Info().Str("winner", result.WinnerName()).Str("reason", reason).Ints("eggs", result.Eggs[:]).Msg("game over")
	return result, gameMetric, moveMetrics
}

var _ Engine = (*Local)(nil)
