package searcher

import (
	"time"

	"golang.org/x/exp/rand"

	"chicken/game"
)

// node is a position of a hand-built game tree. value is the root player's score
// of the position, used whenever the search scores it as a leaf.
type node struct {
	id       int
	value    float64
	terminal bool
	children []*node // nil entries are moves the forecast rejects
}

// tree is a game.State over a node tree. flipped is set while the opponent is to move.
type tree struct {
	node    *node
	flipped bool
}

var _ game.State = tree{}

func moveAt(i int) game.Move {
	return game.Move{Dir: game.Directions[i%len(game.Directions)], Type: game.MoveType(i / len(game.Directions))}
}

func indexOf(m game.Move) int {
	return int(m.Type)*len(game.Directions) + int(m.Dir)
}

func (t tree) LegalMoves() []game.Move {
	if t.node.terminal {
		return nil
	}
	moves := make([]game.Move, len(t.node.children))
	for i := range t.node.children {
		moves[i] = moveAt(i)
	}
	return moves
}

func (t tree) Forecast(m game.Move) (game.State, bool) {
	i := indexOf(m)
	if i >= len(t.node.children) || t.node.children[i] == nil {
		return nil, false
	}
	return tree{node: t.node.children[i], flipped: t.flipped}, true
}

func (t tree) ReversePerspective() game.State {
	return tree{node: t.node, flipped: !t.flipped}
}

func (t tree) IsTerminal() bool         { return t.node.terminal }
func (t tree) Winner() game.Result      { return game.None }
func (t tree) Size() int                { return 8 }
func (t tree) Player() game.Chicken     { return game.Chicken{Loc: game.Loc{X: t.node.id}} }
func (t tree) Enemy() game.Chicken      { return game.Chicken{} }
func (t tree) IsOccupied(game.Loc) bool { return false }
func (t tree) InEnemyTurdZone(game.Loc) bool {
	return false
}
func (t tree) FoundTrapdoors() []game.Loc { return nil }

// score evaluates a tree state for its mover.
func score(s game.State, _ game.Context) float64 {
	t := s.(tree)
	if t.flipped {
		return -t.node.value
	}
	return t.node.value
}

// reference is plain minimax over the tree, in root player values.
func reference(n *node, depth int, maximizing bool) float64 {
	if n.terminal || depth == 0 {
		return n.value
	}
	best, found := 0.0, false
	for _, c := range n.children {
		if c == nil {
			continue
		}
		v := reference(c, depth-1, !maximizing)
		if !found || (maximizing && v > best) || (!maximizing && v < best) {
			best, found = v, true
		}
	}
	if !found {
		return n.value
	}
	return best
}

type builder struct {
	r    *rand.Rand
	next int
}

func newBuilder(seed uint64) *builder {
	return &builder{r: rand.New(rand.NewSource(seed))}
}

func (b *builder) leaf(value float64) *node {
	b.next++
	return &node{id: b.next, value: value}
}

func (b *builder) branch(children ...*node) *node {
	n := b.leaf(b.r.Float64()*200 - 100)
	n.children = children
	return n
}

// random returns an irregular tree with terminal nodes and rejected moves.
func (b *builder) random(depth int) *node {
	n := b.leaf(b.r.Float64()*200 - 100)
	if depth == 0 {
		return n
	}
	if b.r.Intn(10) == 0 {
		n.terminal = true
		return n
	}
	width := 1 + b.r.Intn(4)
	for i := 0; i < width; i++ {
		if b.r.Intn(8) == 0 {
			n.children = append(n.children, nil)
			continue
		}
		n.children = append(n.children, b.random(depth-1))
	}
	return n
}

// full returns a complete tree with the given width at every level.
func (b *builder) full(width, depth int) *node {
	n := b.leaf(b.r.Float64()*200 - 100)
	if depth == 0 {
		return n
	}
	for i := 0; i < width; i++ {
		n.children = append(n.children, b.full(width, depth-1))
	}
	return n
}

// ticks allows n clock reads before the clock runs out.
func ticks(n int) TimeLeft {
	calls := 0
	return func() time.Duration {
		calls++
		if calls <= n {
			return time.Hour
		}
		return 0
	}
}

type hazards map[game.Loc]bool

func (h hazards) Confirmed(l game.Loc) bool { return h[l] }
func (h hazards) Near(game.Loc) bool        { return false }
func (h hazards) Suspicion(game.Loc) int    { return 0 }
