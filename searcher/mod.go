package searcher

import (
	"math"
	"time"
)

// Outcome is the result of searching a subtree: either a score or an abort because
// the time reserve was reached. Callers must check Score's ok before using the value.
type Outcome struct {
	score   float64
	aborted bool
}

func Scored(score float64) Outcome {
	return Outcome{score: score}
}

func Aborted() Outcome {
	return Outcome{score: math.NaN(), aborted: true}
}

// Score returns the backed-up value, ok is false when the search was aborted.
func (o Outcome) Score() (score float64, ok bool) {
	return o.score, !o.aborted
}

func (o Outcome) IsAborted() bool {
	return o.aborted
}

// TimeLeft reports the thinking time remaining for the whole match.
type TimeLeft func() time.Duration

// Countdown returns a TimeLeft that starts at budget now.
func Countdown(budget time.Duration) TimeLeft {
	start := time.Now()
	return func() time.Duration {
		return budget - time.Since(start)
	}
}

// Unlimited never runs out.
func Unlimited() TimeLeft {
	return func() time.Duration {
		return time.Duration(math.MaxInt64)
	}
}
