package agent

import (
	"math"

	"golang.org/x/exp/rand"

	"chicken/game"
	"chicken/searcher"
	"chicken/sensor"
)

// One-ply scoring constants.
const (
	eggBonus        = 50
	cornerEggBonus  = 30
	turdNearBonus   = 20
	turdFarPenalty  = 10
	turdRange       = 3
	centerPull      = 10
	turdZonePenalty = 200
	suspectPenalty  = 100
	nearPenalty     = 1e3
	hazardPenalty   = 1e4
	fallPenalty     = 1e6
)

// Greedy scores each legal move on its own, without looking at replies.
type Greedy struct {
	memory sensor.Memory
	rand   *rand.Rand
}

func NewGreedy(seed uint64) *Greedy {
	return &Greedy{
		memory: sensor.NewMemory(),
		rand:   rand.New(rand.NewSource(seed)),
	}
}

func (g *Greedy) Play(state game.State, readings sensor.Readings, _ searcher.TimeLeft) (game.Move, bool) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, false
	}
	g.memory = g.memory.Observe(state.Player().Loc, readings).Confirm(state.FoundTrapdoors()...)

	var best game.Move
	bestScore := math.Inf(-1)
	ties := 0
	for _, move := range moves {
		score := g.score(state, move)
		switch {
		case score > bestScore:
			best, bestScore, ties = move, score, 1
		case score == bestScore:
			// Reservoir sampling over equally scored moves
			ties++
			if g.rand.Intn(ties) == 0 {
				best = move
			}
		}
	}
	return best, true
}

func (g *Greedy) score(state game.State, move game.Move) float64 {
	me, enemy := state.Player(), state.Enemy()
	next := me.Loc.Step(move.Dir)
	size := state.Size()
	score := 0.0

	switch move.Type {
	case game.Egg:
		score += eggBonus
		if (me.Loc.X == 0 || me.Loc.X == size-1) && (me.Loc.Y == 0 || me.Loc.Y == size-1) {
			score += cornerEggBonus
		}
	case game.Turd:
		if me.Loc.Manhattan(enemy.Loc) <= turdRange {
			score += turdNearBonus
		} else {
			score -= turdFarPenalty
		}
	}

	score += centerPull - game.DistanceToCenter(size, next)
	if state.InEnemyTurdZone(next) {
		score -= turdZonePenalty
	}
	if g.memory.Confirmed(next) {
		score -= hazardPenalty
	} else if g.memory.Near(next) {
		score -= nearPenalty
	}
	score -= suspectPenalty * float64(min(g.memory.Suspicion(next), 3))

	if after, ok := state.Forecast(move); ok && after.Winner() == game.EnemyWins {
		score -= fallPenalty
	}
	return score
}

func (g *Greedy) Memory() sensor.Memory {
	return g.memory
}
