package uci

import (
	"time"

	"github.com/tanemura/corvid/internal/board"
)

// UCILimits holds the UCI `go` command's time-control parameters.
type UCILimits struct {
	Time      [2]time.Duration
	Inc       [2]time.Duration
	MovesToGo int
	MoveTime  time.Duration
	Depth     int
	Nodes     uint64
	Infinite  bool
}

// TimeManager converts clock state into a time budget for the search
// core. Time management is policy that belongs to the front end, not the
// search core: the core only ever receives a millisecond value and a
// mode, never clock state directly.
type TimeManager struct {
	optimumTime time.Duration
	maximumTime time.Duration
	startTime   time.Time
}

func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Init computes the optimum and maximum time to spend on the move about
// to be searched. ply is the current game ply.
func (tm *TimeManager) Init(limits UCILimits, us board.Color, ply int) {
	tm.startTime = time.Now()

	if limits.MoveTime > 0 {
		tm.optimumTime = limits.MoveTime
		tm.maximumTime = limits.MoveTime
		return
	}

	if limits.Infinite || limits.Depth > 0 || (limits.Time[us] == 0 && limits.MoveTime == 0) {
		tm.optimumTime = time.Hour
		tm.maximumTime = time.Hour
		return
	}

	timeLeft := limits.Time[us]
	inc := limits.Inc[us]

	mtg := limits.MovesToGo
	if mtg == 0 {
		mtg = 50 - ply/4
		if mtg < 10 {
			mtg = 10
		}
		if mtg > 50 {
			mtg = 50
		}
	}

	baseTime := timeLeft / time.Duration(mtg)
	baseTime += inc * 9 / 10
	tm.optimumTime = baseTime

	if ply < 8 {
		tm.optimumTime = baseTime * 85 / 100
	}

	maxFromOptimum := tm.optimumTime * 5
	maxFromRemaining := timeLeft * 8 / 10
	if maxFromOptimum < maxFromRemaining {
		tm.maximumTime = maxFromOptimum
	} else {
		tm.maximumTime = maxFromRemaining
	}

	safetyMargin := timeLeft * 95 / 100
	if tm.maximumTime > safetyMargin {
		tm.maximumTime = safetyMargin
	}

	if tm.optimumTime < 10*time.Millisecond {
		tm.optimumTime = 10 * time.Millisecond
	}
	if tm.maximumTime < 50*time.Millisecond {
		tm.maximumTime = 50 * time.Millisecond
	}
}

// OptimumTime is the budget handed to search.Context.IterativeDeepening
// as its TIME-mode value.
func (tm *TimeManager) OptimumTime() time.Duration {
	return tm.optimumTime
}

// MaximumTime is an upper bound informational only; the search core
// derives its own hard stop from the optimum via MaxTimeFactor.
func (tm *TimeManager) MaximumTime() time.Duration {
	return tm.maximumTime
}
