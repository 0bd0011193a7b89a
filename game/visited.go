package game

// VisitedSet is a persistent set of squares. With returns a new set sharing the
// receiver's entries, so sibling branches extending the same parent never see each
// other's additions. The zero value is the empty set.
type VisitedSet struct {
	head *visitedNode
}

type visitedNode struct {
	loc  Loc
	next *visitedNode
	size int
}

func NewVisitedSet(locs ...Loc) VisitedSet {
	var v VisitedSet
	for _, l := range locs {
		v = v.With(l)
	}
	return v
}

func (v VisitedSet) With(l Loc) VisitedSet {
	if v.Contains(l) {
		return v
	}
	return VisitedSet{head: &visitedNode{loc: l, next: v.head, size: v.Len() + 1}}
}

func (v VisitedSet) Contains(l Loc) bool {
	for n := v.head; n != nil; n = n.next {
		if n.loc == l {
			return true
		}
	}
	return false
}

func (v VisitedSet) Len() int {
	if v.head == nil {
		return 0
	}
	return v.head.size
}
