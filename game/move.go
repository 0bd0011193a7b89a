package game

import "fmt"

type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions in enumeration order.
var Directions = [...]Direction{Up, Right, Down, Left}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

func (d Direction) delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		panic(fmt.Sprintf("unexpected direction %d", int(d)))
	}
}

// MoveType is what the chicken does on its current square before stepping.
type MoveType int

const (
	Plain MoveType = iota // Step only
	Egg                   // Lay an egg, then step
	Turd                  // Drop a turd, then step
)

func (t MoveType) String() string {
	switch t {
	case Plain:
		return "plain"
	case Egg:
		return "egg"
	case Turd:
		return "turd"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Move represents a move in the game.
type Move struct {
	Dir  Direction
	Type MoveType
}

func (m Move) String() string {
	return m.Dir.String() + "/" + m.Type.String()
}

// Loc is a square on the board, x grows to the right and y grows downwards.
type Loc struct {
	X, Y int
}

func (l Loc) Step(d Direction) Loc {
	dx, dy := d.delta()
	return Loc{X: l.X + dx, Y: l.Y + dy}
}

// Even reports whether the square has the even coloring.
func (l Loc) Even() bool {
	return (l.X+l.Y)%2 == 0
}

func (l Loc) Manhattan(o Loc) int {
	return abs(l.X-o.X) + abs(l.Y-o.Y)
}

// Chebyshev is the king-move distance between two squares.
func (l Loc) Chebyshev(o Loc) int {
	return max(abs(l.X-o.X), abs(l.Y-o.Y))
}

func (l Loc) String() string {
	return fmt.Sprintf("(%d,%d)", l.X, l.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
