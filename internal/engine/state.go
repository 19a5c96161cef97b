package engine

import (
	"sync/atomic"
	"time"
)

// Options toggles the instrumentation around a strategy's top-level call.
type Options struct {
	EnableTimer   bool          // stop searching at TimeLimit
	EnableMeasure bool          // record elapsed time and node counts
	TimeLimit     time.Duration // 0 means DefaultTimeLimit
}

// DefaultOptions returns options with both timer and measure enabled.
func DefaultOptions() Options {
	return Options{EnableTimer: true, EnableMeasure: true, TimeLimit: DefaultTimeLimit}
}

func (o Options) limit() time.Duration {
	if !o.EnableTimer {
		return 0
	}
	if o.TimeLimit <= 0 {
		return DefaultTimeLimit
	}
	return o.TimeLimit
}

// SearchState is created once per top-level NextMove and threaded through
// the recursion. It carries the deadline, the timeout flag and the node
// counter of that one search, so independent strategies never share them.
type SearchState struct {
	tm       *TimeManager
	stop     *atomic.Bool
	timedOut bool
	nodes    uint64
}

// NewSearchState starts the clock for a search run with opts.
func NewSearchState(opts Options) *SearchState {
	tm := NewTimeManager()
	tm.Init(opts.limit())
	return &SearchState{tm: tm}
}

// WithStop makes the search also give up once stop is set.
func (st *SearchState) WithStop(stop *atomic.Bool) *SearchState {
	st.stop = stop
	return st
}

// enter is called at the top of every recursive search call. It reports
// whether the search has run out of time; otherwise it counts the node.
func (st *SearchState) enter() bool {
	if st.timedOut {
		return true
	}
	if st.tm.ShouldStop() || (st.stop != nil && st.stop.Load()) {
		st.timedOut = true
		return true
	}
	st.nodes++
	return false
}

// TimedOut reports whether the search was cut off.
func (st *SearchState) TimedOut() bool {
	return st.timedOut
}

// Nodes returns the number of nodes searched so far.
func (st *SearchState) Nodes() uint64 {
	return st.nodes
}

// Elapsed returns the time since the search started.
func (st *SearchState) Elapsed() time.Duration {
	return st.tm.Elapsed()
}
