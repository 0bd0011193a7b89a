package agent

import (
	"chicken/config"
	"chicken/experiments/metrics"
	"chicken/game"
	"chicken/searcher"
	"chicken/sensor"
)

type Agent interface {
	// Play returns the move for this turn, or ok=false when the state has no legal move.
	Play(state game.State, readings sensor.Readings, timeLeft searcher.TimeLeft) (move game.Move, ok bool)
}

// Reporter is implemented by agents that collect search metrics for their last move.
type Reporter interface {
	Metric() metrics.SearchMetric
}

// New builds the agent described by the configuration. seed only affects variants
// that break ties randomly.
func New(cfg config.Agent, seed uint64) Agent {
	switch cfg.Variant {
	case config.Greedy:
		return NewGreedy(seed)
	default:
		return NewSearching(cfg.PenalizeHistory, cfg.Options()...)
	}
}
