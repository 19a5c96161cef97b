package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/reversi/internal/board"
	"github.com/hailam/reversi/internal/eval"
)

func TestIterativeDeepeningDepths(t *testing.T) {
	b := afterD3(t)
	s := NewIterativeDeepening(1, nil, BestFirst{}, NewAlphaBeta(1, eval.MustNew("TPW"), untimed), untimed)
	s.Limit = 3

	var infos []SearchInfo
	s.OnInfo = func(info SearchInfo) { infos = append(infos, info) }

	m := s.NextMove(board.White, b)
	require.Len(t, infos, 3)
	for i, info := range infos {
		assert.Equal(t, i+1, info.Depth)
		assert.Positive(t, info.Nodes)
	}
	assert.Equal(t, infos[2].Best, m)
	assert.Equal(t, 3, s.MaxDepth)
	assert.True(t, afterD3(t).Equal(b))
}

func TestIterativeDeepeningMatchesFixedDepth(t *testing.T) {
	b := board.MustNewBoard(8)
	_, err := b.PlaySequence(board.Black, []board.Move{
		board.NewMove(3, 2), board.NewMove(2, 4), board.NewMove(5, 5),
		board.NewMove(4, 2), board.NewMove(5, 2), board.NewMove(5, 4),
	})
	require.NoError(t, err)

	s := NewIterativeDeepening(5, nil, nil, NewAlphaBeta(5, eval.MustNew("TPW"), untimed), untimed)
	s.Limit = 5
	assert.Equal(t, board.NewMove(2, 2), s.NextMove(board.Black, b))
}

func TestIterativeDeepeningReadsToTheEnd(t *testing.T) {
	b := board.MustNewBoard(4)
	s := NewIterativeDeepening(1, NewWorstSelector(), MobilityOrderer{}, NewNegaScout(1, eval.MustNew("TPW"), untimed), untimed)

	m := s.NextMove(board.Black, b)
	assert.True(t, board.ContainsMove(b.LegalMoves(board.Black), m))
	assert.Equal(t, b.Empties(), s.MaxDepth)
}

func TestIterativeDeepeningTimeLimit(t *testing.T) {
	opts := Options{EnableTimer: true, EnableMeasure: true, TimeLimit: 50 * time.Millisecond}
	s := NewIterativeDeepening(1, nil, BestFirst{}, NewNegaScout(1, eval.MustNew("TPW"), opts), opts)

	b := board.MustNewBoard(8)
	start := time.Now()
	m := s.NextMove(board.Black, b)

	assert.True(t, board.ContainsMove(b.LegalMoves(board.Black), m))
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, 1, s.Measure().Stats().Count)
	assert.Equal(t, "iterative/negascout", s.Measure().Name())
}

// scripted answers each depth with a fixed move and runs out of time at
// depth cutAt.
type scripted struct {
	moves  map[int]board.Move
	cutAt  int
	depths []int
}

func (s *scripted) Name() string { return "scripted" }

func (s *scripted) BestMove(st *SearchState, _ board.Color, _ *board.Board, moves []board.Move, depth int) (board.Move, Scores) {
	s.depths = append(s.depths, depth)
	if depth >= s.cutAt {
		st.timedOut = true
	}
	m := s.moves[depth]
	scores := make(Scores, len(moves))
	for _, mv := range moves {
		scores[mv] = 0
	}
	scores[m] = 1
	return m, scores
}

func TestIterativeDeepeningKeepsCompletedDepth(t *testing.T) {
	d3, c4, f5, e6 := board.NewMove(3, 2), board.NewMove(2, 3), board.NewMove(5, 4), board.NewMove(4, 5)
	tests := []struct {
		name   string
		moves  map[int]board.Move
		cutAt  int
		want   board.Move
		depths []int
	}{
		{"cut at depth 2", map[int]board.Move{1: c4, 2: f5}, 2, c4, []int{1, 2}},
		{"cut at depth 3", map[int]board.Move{1: e6, 2: f5, 3: d3}, 3, f5, []int{1, 2, 3}},
		{"no depth finished", map[int]board.Move{1: e6}, 1, e6, []int{1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			search := &scripted{moves: tc.moves, cutAt: tc.cutAt}
			s := NewIterativeDeepening(1, nil, nil, search, untimed)

			b := board.MustNewBoard(8)
			assert.Equal(t, tc.want, s.NextMove(board.Black, b))
			assert.Equal(t, tc.depths, search.depths)
			assert.True(t, board.MustNewBoard(8).Equal(b))
		})
	}
}

func TestIterativeDeepeningStop(t *testing.T) {
	s := NewIterativeDeepening(1, nil, BestFirst{}, NewNegaScout(1, eval.MustNew("TPW"), untimed), untimed)
	b := board.MustNewBoard(8)

	done := make(chan board.Move, 1)
	go func() { done <- s.NextMove(board.Black, b) }()
	time.AfterFunc(50*time.Millisecond, s.Stop)

	select {
	case m := <-done:
		assert.True(t, board.ContainsMove(board.MustNewBoard(8).LegalMoves(board.Black), m))
	case <-time.After(10 * time.Second):
		t.Fatal("search did not stop")
	}
}

func TestIterativeDeepeningTable(t *testing.T) {
	tt := NewTranspositionTable(1024)
	s := NewIterativeDeepening(1, nil, BestFirst{}, NewAlphaBeta(1, eval.MustNew("TPW"), untimed), untimed)
	s.Limit = 3
	s.Table = tt

	b := afterD3(t)
	m := s.NextMove(board.White, b)

	e, ok := tt.Probe(b.HashFor(board.White))
	require.True(t, ok)
	assert.Equal(t, m, e.Best)
	assert.Equal(t, int8(3), e.Depth)

	again := s.NextMove(board.White, b)
	assert.True(t, board.ContainsMove(b.LegalMoves(board.White), again))
	assert.Positive(t, tt.HitRate())
}
