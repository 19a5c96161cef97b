package engine

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/hailam/reversi/internal/board"
	"github.com/hailam/reversi/internal/eval"
)

func TestMeasureStats(t *testing.T) {
	m := NewMeasure("measure-test")

	st := NewSearchState(untimed)
	for range 3 {
		st.enter()
	}
	m.Record(10*time.Millisecond, nil)
	m.Record(30*time.Millisecond, st)

	stats := m.Stats()
	assert.Equal(t, 10*time.Millisecond, stats.Min)
	assert.Equal(t, 30*time.Millisecond, stats.Max)
	assert.Equal(t, 20*time.Millisecond, stats.Avg)
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, uint64(3), stats.Nodes)

	assert.Equal(t, 3.0, testutil.ToFloat64(searchNodesTotal.WithLabelValues("measure-test")))
	assert.Equal(t, 0.0, testutil.ToFloat64(searchTimeouts.WithLabelValues("measure-test")))

	m.Reset()
	assert.Equal(t, MeasureStats{}, m.Stats())
}

func TestMeasureDisabled(t *testing.T) {
	s := NewAlphaBeta(2, eval.MustNew("TPW"), Options{EnableMeasure: false})
	s.NextMove(board.Black, board.MustNewBoard(8))
	assert.Zero(t, s.Measure().Stats().Count)

	s.Options.EnableMeasure = true
	s.NextMove(board.Black, board.MustNewBoard(8))
	stats := s.Measure().Stats()
	assert.Equal(t, 1, stats.Count)
	assert.Positive(t, stats.Nodes)
}

func TestTimeManager(t *testing.T) {
	tm := NewTimeManager()
	tm.Init(0)
	assert.False(t, tm.ShouldStop())
	assert.True(t, tm.Deadline().IsZero())

	tm.Init(time.Hour)
	assert.False(t, tm.ShouldStop())
	assert.Equal(t, time.Hour, tm.Limit())
	assert.Greater(t, tm.Remaining(), 59*time.Minute)

	tm.Init(time.Microsecond)
	time.Sleep(time.Millisecond)
	assert.True(t, tm.ShouldStop())
}
