package engine

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

var (
	// searchNodesTotal counts search nodes by strategy
	searchNodesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reversi_search_nodes_total",
		Help: "Total search nodes visited by strategy",
	}, []string{"strategy"})

	// nextMoveDuration tracks the thinking time of one move
	nextMoveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reversi_next_move_duration_seconds",
		Help:    "Time spent choosing one move in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
	}, []string{"strategy"})

	// searchTimeouts counts searches cut off by their deadline
	searchTimeouts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reversi_search_timeouts_total",
		Help: "Total searches stopped by the time limit",
	}, []string{"strategy"})
)

// MeasureStats is a snapshot of a Measure.
type MeasureStats struct {
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Count int
	Nodes uint64 // nodes of the most recent search
}

// Measure keeps elapsed time statistics of one strategy instance.
type Measure struct {
	name string

	mu    sync.Mutex
	stats MeasureStats
	sum   time.Duration
}

// NewMeasure creates a measure reporting under name.
func NewMeasure(name string) *Measure {
	return &Measure{name: name}
}

// Name returns the strategy label the measure reports under.
func (m *Measure) Name() string {
	return m.name
}

// Record adds one finished search.
func (m *Measure) Record(elapsed time.Duration, st *SearchState) {
	m.mu.Lock()
	if m.stats.Count == 0 || elapsed < m.stats.Min {
		m.stats.Min = elapsed
	}
	if elapsed > m.stats.Max {
		m.stats.Max = elapsed
	}
	m.sum += elapsed
	m.stats.Count++
	m.stats.Avg = m.sum / time.Duration(m.stats.Count)
	if st != nil {
		m.stats.Nodes = st.Nodes()
	}
	m.mu.Unlock()

	nextMoveDuration.WithLabelValues(m.name).Observe(elapsed.Seconds())
	if st != nil {
		searchNodesTotal.WithLabelValues(m.name).Add(float64(st.Nodes()))
		if st.TimedOut() {
			searchTimeouts.WithLabelValues(m.name).Inc()
		}
	}
}

// Stats returns a snapshot of the statistics.
func (m *Measure) Stats() MeasureStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Reset clears the statistics.
func (m *Measure) Reset() {
	m.mu.Lock()
	m.stats = MeasureStats{}
	m.sum = 0
	m.mu.Unlock()
}

// instrument runs one top-level search with a fresh state and records it when
// measuring is enabled.
func instrument(opts Options, m *Measure, search func(st *SearchState)) *SearchState {
	st := NewSearchState(opts)
	search(st)
	if opts.EnableMeasure && m != nil {
		m.Record(st.Elapsed(), st)
		log.Debug().
			Str("strategy", m.name).
			Uint64("nodes", st.Nodes()).
			Dur("elapsed", st.Elapsed()).
			Bool("timeout", st.TimedOut()).
			Msg("move searched")
	}
	return st
}
