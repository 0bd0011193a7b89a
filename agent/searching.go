package agent

import (
	"chicken/experiments/metrics"
	"chicken/game"
	"chicken/searcher"
	"chicken/sensor"
)

// Searching plays the driver's move. Its hazard memory and real match path live for
// the whole match and are only written here, once per real turn.
type Searching struct {
	driver          *searcher.Driver
	collector       metrics.Collector
	memory          sensor.Memory
	history         game.VisitedSet
	penalizeHistory bool
}

// NewSearching returns an agent around a driver built from options. With
// penalizeHistory the search-local visited set starts from the real match path
// instead of only the current square.
func NewSearching(penalizeHistory bool, options ...searcher.Option) *Searching {
	collector := metrics.NewCollector()
	return &Searching{
		driver:          searcher.NewDriver(append(options, searcher.WithMetrics(collector))...),
		collector:       collector,
		memory:          sensor.NewMemory(),
		penalizeHistory: penalizeHistory,
	}
}

func (a *Searching) Play(state game.State, readings sensor.Readings, timeLeft searcher.TimeLeft) (game.Move, bool) {
	me := state.Player().Loc
	a.memory = a.memory.Observe(me, readings).Confirm(state.FoundTrapdoors()...)
	a.history = a.history.With(me)

	visited := game.NewVisitedSet(me)
	if a.penalizeHistory {
		visited = a.history
	}
	ctx := game.Context{
		Hazards: a.memory,
		Visited: visited,
		Origin:  me,
		Felt:    readings.AnyFelt(),
	}
	return a.driver.FindMove(state, ctx, timeLeft)
}

func (a *Searching) Memory() sensor.Memory {
	return a.memory
}

func (a *Searching) History() game.VisitedSet {
	return a.history
}

func (a *Searching) Metric() metrics.SearchMetric {
	return a.collector.Complete()
}
