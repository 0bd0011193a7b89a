package game

import (
	"cmp"
	"fmt"
	"slices"

	"chicken/meta"
)

// Side identifies one of the two chickens independently of whose turn it is.
type Side int

const (
	SideA Side = iota // Lays on even squares
	SideB             // Lays on odd squares
)

func (s Side) Other() Side {
	return 1 - s
}

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// Chicken is the per-player part of a Board.
type Chicken struct {
	Loc       Loc
	Spawn     Loc
	Even      bool // Lays eggs on squares where (x+y) is even
	Eggs      int
	TurdsLeft int
	TurnsLeft int
	Fallen    bool // Stepped on a trapdoor
}

// Owns reports whether the chicken's coloring allows laying on the square.
func (c Chicken) Owns(l Loc) bool {
	return l.Even() == c.Even
}

type locSet map[Loc]struct{}

func (s locSet) has(l Loc) bool {
	_, ok := s[l]
	return ok
}

// with returns a copy of the set including l, the receiver is left untouched.
func (s locSet) with(l Loc) locSet {
	n := make(locSet, len(s)+1)
	for k := range s {
		n[k] = struct{}{}
	}
	n[l] = struct{}{}
	return n
}

func (s locSet) sorted() []Loc {
	locs := make([]Loc, 0, len(s))
	for l := range s {
		locs = append(locs, l)
	}
	slices.SortFunc(locs, func(a, b Loc) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return locs
}

// Board is the reference State implementation. Boards are never mutated once
// built: every transition copies the struct and replaces only the sets it changes,
// so siblings share the untouched sets.
type Board struct {
	size     int
	chickens [2]Chicken
	mover    Side
	eggs     [2]locSet
	turds    [2]locSet
	found    locSet // Trapdoors known to both players
	hidden   locSet // Trapdoors only the engine knows about
}

// NewBoard returns a board with both chickens on their spawns and SideA to move.
func NewBoard(size int) *Board {
	if size < 2 {
		panic(fmt.Sprintf("board size must be at least 2, got %d", size))
	}
	spawnA := Loc{X: 0, Y: 0}
	spawnB := Loc{X: size - 1, Y: 0}
	if spawnB.Even() {
		spawnB.Y = 1
	}
	return &Board{
		size: size,
		chickens: [2]Chicken{
			{Loc: spawnA, Spawn: spawnA, Even: true, TurdsLeft: meta.TURDS, TurnsLeft: meta.TURNS},
			{Loc: spawnB, Spawn: spawnB, Even: false, TurdsLeft: meta.TURDS, TurnsLeft: meta.TURNS},
		},
		mover: SideA,
	}
}

func (b *Board) clone() *Board {
	c := *b
	return &c
}

// WithChicken replaces the chicken of the given side.
func (b *Board) WithChicken(side Side, c Chicken) *Board {
	n := b.clone()
	n.chickens[side] = c
	return n
}

// WithEgg places an egg of the given side without counting it as laid.
func (b *Board) WithEgg(side Side, l Loc) *Board {
	n := b.clone()
	n.eggs[side] = n.eggs[side].with(l)
	return n
}

func (b *Board) WithTurd(side Side, l Loc) *Board {
	n := b.clone()
	n.turds[side] = n.turds[side].with(l)
	return n
}

// WithFound marks a trapdoor as known to both sides.
func (b *Board) WithFound(l Loc) *Board {
	n := b.clone()
	n.found = n.found.with(l)
	return n
}

// WithHidden places a trapdoor that only this copy of the board knows about.
func (b *Board) WithHidden(l Loc) *Board {
	n := b.clone()
	n.hidden = n.hidden.with(l)
	return n
}

func (b *Board) WithMover(side Side) *Board {
	n := b.clone()
	n.mover = side
	return n
}

// Public strips the hidden trapdoors, this is the view handed to agents.
func (b *Board) Public() *Board {
	n := b.clone()
	n.hidden = nil
	return n
}

func (b *Board) Mover() Side {
	return b.mover
}

func (b *Board) Chicken(side Side) Chicken {
	return b.chickens[side]
}

func (b *Board) HiddenTrapdoors() []Loc {
	return b.hidden.sorted()
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) Player() Chicken {
	return b.chickens[b.mover]
}

func (b *Board) Enemy() Chicken {
	return b.chickens[b.mover.Other()]
}

func (b *Board) FoundTrapdoors() []Loc {
	return b.found.sorted()
}

func (b *Board) inBounds(l Loc) bool {
	return l.X >= 0 && l.Y >= 0 && l.X < b.size && l.Y < b.size
}

func (b *Board) IsOccupied(l Loc) bool {
	return b.eggs[SideA].has(l) || b.eggs[SideB].has(l) || b.turds[SideA].has(l) || b.turds[SideB].has(l)
}

func (b *Board) InEnemyTurdZone(l Loc) bool {
	turds := b.turds[b.mover.Other()]
	if turds.has(l) {
		return true
	}
	for _, d := range Directions {
		if turds.has(l.Step(d)) {
			return true
		}
	}
	return false
}

// canEnter checks whether the mover may step onto the square.
func (b *Board) canEnter(l Loc) bool {
	enemy := b.mover.Other()
	switch {
	case !b.inBounds(l):
		return false
	case l == b.chickens[enemy].Loc:
		return false
	case b.eggs[enemy].has(l):
		return false
	case b.turds[SideA].has(l) || b.turds[SideB].has(l):
		return false
	}
	return !b.InEnemyTurdZone(l)
}

func (b *Board) canLay() bool {
	p := b.chickens[b.mover]
	return p.Owns(p.Loc) && !b.IsOccupied(p.Loc)
}

func (b *Board) canDropTurd() bool {
	p := b.chickens[b.mover]
	return p.TurdsLeft > 0 && !b.IsOccupied(p.Loc) && p.Loc.Manhattan(b.chickens[b.mover.Other()].Loc) > 1
}

func (b *Board) isLegal(m Move) bool {
	if b.IsTerminal() || b.chickens[b.mover].TurnsLeft <= 0 {
		return false
	}
	if !b.canEnter(b.chickens[b.mover].Loc.Step(m.Dir)) {
		return false
	}
	switch m.Type {
	case Plain:
		return true
	case Egg:
		return b.canLay()
	case Turd:
		return b.canDropTurd()
	default:
		return false
	}
}

func (b *Board) LegalMoves() []Move {
	p := b.chickens[b.mover]
	if b.IsTerminal() || p.TurnsLeft <= 0 {
		return nil
	}
	lay, drop := b.canLay(), b.canDropTurd()
	moves := make([]Move, 0, 3*len(Directions))
	for _, d := range Directions {
		if !b.canEnter(p.Loc.Step(d)) {
			continue
		}
		moves = append(moves, Move{Dir: d, Type: Plain})
		if lay {
			moves = append(moves, Move{Dir: d, Type: Egg})
		}
		if drop {
			moves = append(moves, Move{Dir: d, Type: Turd})
		}
	}
	return moves
}

// Forecast applies the move for the mover. The mover stays the same.
func (b *Board) Forecast(m Move) (State, bool) {
	next, ok := b.Apply(m)
	if !ok {
		return nil, false
	}
	return next, true
}

// Apply is Forecast with the concrete type, used by the engine.
func (b *Board) Apply(m Move) (*Board, bool) {
	if !b.isLegal(m) {
		return nil, false
	}
	n := b.clone()
	p := n.chickens[n.mover]
	switch m.Type {
	case Egg:
		n.eggs[n.mover] = n.eggs[n.mover].with(p.Loc)
		p.Eggs++
	case Turd:
		n.turds[n.mover] = n.turds[n.mover].with(p.Loc)
		p.TurdsLeft--
	}
	p.Loc = p.Loc.Step(m.Dir)
	p.TurnsLeft--
	if n.found.has(p.Loc) || n.hidden.has(p.Loc) {
		p.Fallen = true
		n.found = n.found.with(p.Loc)
	}
	n.chickens[n.mover] = p
	return n, true
}

func (b *Board) ReversePerspective() State {
	return b.WithMover(b.mover.Other())
}

func (b *Board) IsTerminal() bool {
	a, e := b.chickens[SideA], b.chickens[SideB]
	if a.Fallen || e.Fallen {
		return true
	}
	return a.TurnsLeft <= 0 && e.TurnsLeft <= 0
}

func (b *Board) Winner() Result {
	if !b.IsTerminal() {
		return None
	}
	winner, ok := b.WinningSide()
	switch {
	case !ok:
		return Tie
	case winner == b.mover:
		return PlayerWins
	default:
		return EnemyWins
	}
}

// WinningSide decides the game by falls, then eggs. ok is false on a tie.
func (b *Board) WinningSide() (winner Side, ok bool) {
	a, e := b.chickens[SideA], b.chickens[SideB]
	switch {
	case a.Fallen && !e.Fallen:
		return SideB, true
	case e.Fallen && !a.Fallen:
		return SideA, true
	case a.Eggs > e.Eggs:
		return SideA, true
	case e.Eggs > a.Eggs:
		return SideB, true
	}
	return SideA, false
}
