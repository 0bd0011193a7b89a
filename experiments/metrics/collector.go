package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Duration time.Duration
	Nodes    int
	Cutoffs  int
	Depth    int  // Deepest fully completed iteration
	Aborted  bool // An iteration ran out of time and was discarded
}

type MoveMetric struct {
	Step   int
	Player string // Side that moved
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // "" on a tie
	Reason         string
	Eggs           [2]int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start()
	AddNode()
	AddCutoff()
	CompleteDepth(depth int)
	Abort()
	Complete() SearchMetric
}

type collector struct {
	startTime time.Time
	nodes     atomic.Int64
	cutoffs   atomic.Int64
	depth     atomic.Int32
	aborted   atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new move.
func (m *collector) Start() {
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.cutoffs.Store(0)
	m.depth.Store(0)
	m.aborted.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) CompleteDepth(depth int) {
	m.depth.Store(int32(depth))
}

func (m *collector) Abort() {
	m.aborted.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration: time.Since(m.startTime),
		Nodes:    int(m.nodes.Load()),
		Cutoffs:  int(m.cutoffs.Load()),
		Depth:    int(m.depth.Load()),
		Aborted:  m.aborted.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                  {}
func (m *dummyCollector) AddNode()                {}
func (m *dummyCollector) AddCutoff()              {}
func (m *dummyCollector) CompleteDepth(depth int) {}
func (m *dummyCollector) Abort()                  {}
func (m *dummyCollector) Complete() SearchMetric  { return SearchMetric{} }
