package engine

import (
	"chicken/experiments/metrics"
	"chicken/game"
)

// MaxMoves guards against rule sets that never end a game.
const MaxMoves = 10000

// Reasons a match ended.
const (
	ReasonEggs     = "eggs"
	ReasonTrapdoor = "trapdoor"
	ReasonBlocked  = "blocked"
	ReasonTimeout  = "timeout"
)

type Engine interface {
	// Run plays the match till it is decided and returns the result with its metrics
	Run() (result Result, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

type Result struct {
	Winner game.Side
	Tie    bool
	Reason string
	Eggs   [2]int
	Moves  int
}

func (r Result) WinnerName() string {
	if r.Tie {
		return ""
	}
	return r.Winner.String()
}
