package game

import (
	"fmt"
	"math"

	"chicken/meta"
)

// Branching is the most moves a chicken can have: four directions times three move types.
const Branching = 3 * 4

// Weights tunes the evaluator. Every positional term must stay below one egg, the
// hazard penalty must outweigh all positional terms across a full branching factor,
// and a decided game must outweigh everything else. Validate enforces that.
type Weights struct {
	Win         float64 `yaml:"win"`          // Terminal win, negated for a loss
	Hazard      float64 `yaml:"hazard"`       // Standing on a confirmed or felt trapdoor square
	Near        float64 `yaml:"near"`         // Standing next to a square where a trapdoor was felt
	Egg         float64 `yaml:"egg"`          // Per egg of lead
	Turd        float64 `yaml:"turd"`         // Per turd of reserve lead
	Edge        float64 `yaml:"edge"`         // Per square away from the nearest edge
	Center      float64 `yaml:"center"`       // Per square away from the center
	Layable     float64 `yaml:"layable"`      // Per square away from the nearest layable square
	LayableHere float64 `yaml:"layable_here"` // Standing on a layable square
	Visited     float64 `yaml:"visited"`      // Returning to a square already crossed in this line
	Mobility    float64 `yaml:"mobility"`     // Per legal move
	Heard       float64 `yaml:"heard"`        // Per heard signal recorded at the square
	HeardCap    int     `yaml:"heard_cap"`    // Signals counted at most
}

func DefaultWeights() Weights {
	return Weights{
		Win:         1e6,
		Hazard:      1e4,
		Near:        1e3,
		Egg:         10,
		Turd:        0.5,
		Edge:        0.2,
		Center:      0,
		Layable:     0.25,
		LayableHere: 1,
		Visited:     1,
		Mobility:    0.1,
		Heard:       2,
		HeardCap:    3,
	}
}

// positional returns the largest magnitude of each shaping term on a board of the given size.
func (w Weights) positional(size int) map[string]float64 {
	span := float64(size - 1)
	return map[string]float64{
		"turd":     math.Abs(w.Turd) * meta.TURDS,
		"edge":     math.Abs(w.Edge) * math.Floor(span/2),
		"center":   math.Abs(w.Center) * span,
		"layable":  math.Max(math.Abs(w.LayableHere), math.Abs(w.Layable)*2*span),
		"visited":  math.Abs(w.Visited),
		"mobility": math.Abs(w.Mobility) * Branching,
		"heard":    math.Abs(w.Heard) * float64(w.HeardCap),
	}
}

// Validate checks the ordering between terminal, hazard, near, egg and positional terms.
func (w Weights) Validate(size int) error {
	if w.Egg <= 0 {
		return fmt.Errorf("egg weight must be positive, got %v", w.Egg)
	}
	if w.HeardCap < 0 {
		return fmt.Errorf("heard cap must not be negative, got %d", w.HeardCap)
	}
	total := 0.0
	for name, v := range w.positional(size) {
		if v >= w.Egg {
			return fmt.Errorf("%s term reaches %v, must stay below one egg (%v)", name, v, w.Egg)
		}
		total += v
	}
	if w.Hazard <= total*Branching {
		return fmt.Errorf("hazard penalty %v must exceed positional total %v times branching %d", w.Hazard, total, Branching)
	}
	if w.Near <= total*Branching || w.Near >= w.Hazard {
		return fmt.Errorf("near penalty %v must lie between positional total %v times branching %d and the hazard penalty %v", w.Near, total, Branching, w.Hazard)
	}
	bound := w.Hazard + w.Near + w.Egg*float64(size*size) + total
	if w.Win <= bound {
		return fmt.Errorf("win value %v must exceed every non-terminal score (%v)", w.Win, bound)
	}
	return nil
}

// Evaluate scores the state for its mover.
func (w Weights) Evaluate(s State, ctx Context) float64 {
	if s.IsTerminal() {
		switch s.Winner() {
		case PlayerWins:
			return w.Win
		case EnemyWins:
			return -w.Win
		default:
			return 0
		}
	}

	p, e := s.Player(), s.Enemy()
	score := float64(p.Eggs-e.Eggs) * w.Egg
	score += float64(p.TurdsLeft-e.TurdsLeft) * w.Turd

	if ctx.Felt && p.Loc == ctx.Origin {
		score -= w.Hazard
	} else if ctx.Hazards != nil && ctx.Hazards.Confirmed(p.Loc) {
		score -= w.Hazard
	} else if ctx.Hazards != nil && ctx.Hazards.Near(p.Loc) {
		score -= w.Near
	}
	if ctx.Hazards != nil {
		score -= w.Heard * float64(min(ctx.Hazards.Suspicion(p.Loc), w.HeardCap))
	}

	score -= w.Edge * float64(DistanceToEdge(s.Size(), p.Loc))
	score -= w.Center * DistanceToCenter(s.Size(), p.Loc)
	if d, ok := NearestLayable(s); ok {
		if d == 0 {
			score += w.LayableHere
		} else {
			score -= w.Layable * float64(d)
		}
	}
	if ctx.Revisit {
		score -= w.Visited
	}
	if w.Mobility != 0 {
		score += w.Mobility * float64(len(s.LegalMoves()))
	}
	return score
}

func DistanceToEdge(size int, l Loc) int {
	return min(l.X, size-1-l.X, l.Y, size-1-l.Y)
}

func DistanceToCenter(size int, l Loc) float64 {
	c := float64(size-1) / 2
	return math.Abs(float64(l.X)-c) + math.Abs(float64(l.Y)-c)
}

// NearestLayable returns the Manhattan distance from the mover to the closest square of
// its coloring that holds nothing and is outside the enemy turd zone.
func NearestLayable(s State) (int, bool) {
	p := s.Player()
	best, found := 0, false
	for y := 0; y < s.Size(); y++ {
		for x := 0; x < s.Size(); x++ {
			l := Loc{X: x, Y: y}
			if !p.Owns(l) || s.IsOccupied(l) || s.InEnemyTurdZone(l) {
				continue
			}
			if d := p.Loc.Manhattan(l); !found || d < best {
				best, found = d, true
			}
		}
	}
	return best, found
}
