package engine

import (
	"time"
)

// DefaultTimeLimit is the thinking time of a move when none is configured.
const DefaultTimeLimit = 500 * time.Millisecond

// TimeManager tracks the deadline of one top-level search.
type TimeManager struct {
	limit     time.Duration // Time allowed for this move
	startTime time.Time     // When search started
	deadline  time.Time     // startTime + limit
}

// NewTimeManager creates a new time manager.
func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Init starts the clock for a new search. A limit of zero or less means
// the search never runs out of time.
func (tm *TimeManager) Init(limit time.Duration) {
	tm.startTime = time.Now()
	tm.limit = limit
	if limit > 0 {
		tm.deadline = tm.startTime.Add(limit)
	} else {
		tm.deadline = time.Time{}
	}
}

// Elapsed returns the time elapsed since search started.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// Limit returns the time allowed for this move.
func (tm *TimeManager) Limit() time.Duration {
	return tm.limit
}

// Deadline returns the point in time the search must stop at, or the zero
// time when it is unbounded.
func (tm *TimeManager) Deadline() time.Time {
	return tm.deadline
}

// Remaining returns the time left before the deadline.
func (tm *TimeManager) Remaining() time.Duration {
	if tm.deadline.IsZero() {
		return time.Duration(1<<63 - 1)
	}
	return time.Until(tm.deadline)
}

// ShouldStop returns true if we should stop searching.
func (tm *TimeManager) ShouldStop() bool {
	return !tm.deadline.IsZero() && time.Now().After(tm.deadline)
}
