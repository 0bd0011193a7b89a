package sensor

import (
	"chicken/game"
)

// Reading is what a chicken senses about one trapdoor at its current square.
type Reading struct {
	Heard bool // Trapdoor is somewhere near
	Felt  bool // Trapdoor is right next to the chicken
}

// Readings holds one Reading per trapdoor, in the engine's trapdoor order.
type Readings []Reading

func (r Readings) AnyFelt() bool {
	for _, reading := range r {
		if reading.Felt {
			return true
		}
	}
	return false
}

func (r Readings) AnyHeard() bool {
	for _, reading := range r {
		if reading.Heard {
			return true
		}
	}
	return false
}

// Felt and heard ranges in king moves.
const (
	FeltRange  = 1
	HeardRange = 2
)

// Probe produces the readings at a square for the given trapdoors. It is the
// engine-side counterpart of Observe and has no noise.
func Probe(at game.Loc, trapdoors []game.Loc) Readings {
	readings := make(Readings, len(trapdoors))
	for i, t := range trapdoors {
		d := at.Chebyshev(t)
		readings[i] = Reading{Heard: d <= HeardRange, Felt: d <= FeltRange}
	}
	return readings
}
