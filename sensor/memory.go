package sensor

import (
	"chicken/game"
)

// Memory accumulates the squares an agent believes to hold trapdoors. It is a value:
// Observe and Confirm return a new Memory and leave the receiver untouched. Entries
// are never removed.
type Memory struct {
	confirmed map[game.Loc]struct{}
	near      map[game.Loc]struct{} // Neighbors of squares where a trapdoor was felt
	suspected map[game.Loc]int
}

func NewMemory() Memory {
	return Memory{
		confirmed: map[game.Loc]struct{}{},
		near:      map[game.Loc]struct{}{},
		suspected: map[game.Loc]int{},
	}
}

func (m Memory) clone() Memory {
	n := Memory{
		confirmed: make(map[game.Loc]struct{}, len(m.confirmed)+1),
		near:      make(map[game.Loc]struct{}, len(m.near)+8),
		suspected: make(map[game.Loc]int, len(m.suspected)+9),
	}
	for l := range m.confirmed {
		n.confirmed[l] = struct{}{}
	}
	for l := range m.near {
		n.near[l] = struct{}{}
	}
	for l, c := range m.suspected {
		n.suspected[l] = c
	}
	return n
}

// Observe folds one turn of readings taken at a square into the memory.
// A felt trapdoor confirms the square itself and marks its neighbors as near, where
// the trapdoor must actually be. A heard-only trapdoor raises suspicion on the square.
func (m Memory) Observe(at game.Loc, readings Readings) Memory {
	if !readings.AnyFelt() && !readings.AnyHeard() {
		return m
	}
	n := m.clone()
	for _, r := range readings {
		switch {
		case r.Felt:
			n.confirmed[at] = struct{}{}
			for dx := -FeltRange; dx <= FeltRange; dx++ {
				for dy := -FeltRange; dy <= FeltRange; dy++ {
					if dx != 0 || dy != 0 {
						l := game.Loc{X: at.X + dx, Y: at.Y + dy}
						n.near[l] = struct{}{}
						n.suspected[l]++
					}
				}
			}
		case r.Heard:
			n.suspected[at]++
		}
	}
	return n
}

// Confirm records squares known to hold trapdoors, such as ones revealed by a fall.
func (m Memory) Confirm(locs ...game.Loc) Memory {
	fresh := false
	for _, l := range locs {
		if !m.Confirmed(l) {
			fresh = true
			break
		}
	}
	if !fresh {
		return m
	}
	n := m.clone()
	for _, l := range locs {
		n.confirmed[l] = struct{}{}
	}
	return n
}

func (m Memory) Confirmed(l game.Loc) bool {
	_, ok := m.confirmed[l]
	return ok
}

func (m Memory) Near(l game.Loc) bool {
	_, ok := m.near[l]
	return ok
}

func (m Memory) Suspicion(l game.Loc) int {
	return m.suspected[l]
}

// Len returns the number of confirmed and suspected squares.
func (m Memory) Len() (confirmed, suspected int) {
	return len(m.confirmed), len(m.suspected)
}
