package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/reversi/internal/board"
	"github.com/hailam/reversi/internal/eval"
)

// untimed searches without a deadline.
var untimed = Options{}

// afterD3 is the start position after black plays d3, white to move.
func afterD3(t *testing.T) *board.Board {
	t.Helper()
	b := board.MustNewBoard(8)
	b.Play(board.Black, board.NewMove(3, 2))
	return b
}

func TestAlphaBetaScore(t *testing.T) {
	tests := []struct {
		depth int
		score float64
		nodes uint64
	}{
		{2, -13, 16},
		{3, 4, 62},
		{4, -9, 263},
	}
	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			b := afterD3(t)
			before := b.Copy()
			s := NewAlphaBeta(tc.depth, eval.MustNew("TPW"), untimed)
			st := NewSearchState(untimed)

			got := s.Score(st, board.White, b, MinScore, MaxScore, tc.depth)
			assert.Equal(t, tc.score, got, "depth %d", tc.depth)
			assert.Equal(t, tc.nodes, st.Nodes(), "depth %d", tc.depth)
			assert.True(t, before.Equal(b), "board changed by the search")
		})
	}
}

func TestAlphaBetaTable(t *testing.T) {
	tests := []struct {
		name   string
		board  func(t *testing.T) *board.Board
		color  board.Color
		scores []float64 // depths 1..4
	}{
		{"start", func(*testing.T) *board.Board { return board.MustNewBoard(8) }, board.Black, []float64{-3, -1, -4, 0}},
		{"after d3", afterD3, board.White, []float64{1, 4, 0, 3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for i, want := range tc.scores {
				depth := i + 1
				s := NewAlphaBeta(depth, eval.MustNew("T"), untimed)
				got := s.Score(NewSearchState(untimed), tc.color, tc.board(t), MinScore, MaxScore, depth)
				assert.Equal(t, want, got, "depth %d", depth)
			}
		})
	}
}

func TestNegaScoutMatchesAlphaBeta(t *testing.T) {
	for depth := 2; depth <= 4; depth++ {
		ab := NewAlphaBeta(depth, eval.MustNew("TPW"), untimed)
		ns := NewNegaScout(depth, eval.MustNew("TPW"), untimed)

		want := ab.Score(NewSearchState(untimed), board.White, afterD3(t), MinScore, MaxScore, depth)
		got := ns.Score(NewSearchState(untimed), board.White, afterD3(t), MinScore, MaxScore, depth)
		assert.Equal(t, want, got, "depth %d", depth)
	}
	assert.Equal(t, -13.0, NewNegaScout(2, eval.MustNew("TPW"), untimed).
		Score(NewSearchState(untimed), board.White, afterD3(t), MinScore, MaxScore, 2))
}

func TestMinMaxIsNegamax(t *testing.T) {
	for _, c := range []board.Color{board.Black, board.White} {
		for depth := 1; depth <= 3; depth++ {
			b := afterD3(t)
			mm := NewMinMax(depth, eval.MustNew("TPW"), untimed)
			ab := NewAlphaBeta(depth, eval.MustNew("TPW"), untimed)

			black := mm.Score(NewSearchState(untimed), c, b, depth)
			own := ab.Score(NewSearchState(untimed), c, b, MinScore, MaxScore, depth)
			assert.Equal(t, c.Sign()*black, own, "%v depth %d", c, depth)
		}
	}
}

func TestRootBestMove(t *testing.T) {
	b := board.MustNewBoard(8)
	_, err := b.PlaySequence(board.Black, []board.Move{
		board.NewMove(3, 2), board.NewMove(2, 4), board.NewMove(5, 5),
		board.NewMove(4, 2), board.NewMove(5, 2), board.NewMove(5, 4),
	})
	require.NoError(t, err)

	moves := b.LegalMoves(board.Black)
	assert.Equal(t, []board.Move{
		board.NewMove(2, 2), board.NewMove(2, 3), board.NewMove(5, 3), board.NewMove(1, 5),
		board.NewMove(2, 5), board.NewMove(3, 5), board.NewMove(4, 5), board.NewMove(6, 5),
	}, moves)

	s := NewAlphaBeta(5, eval.MustNew("TPW"), untimed)
	best, scores := s.BestMove(NewSearchState(untimed), board.Black, b, moves, 5)
	assert.Equal(t, board.NewMove(2, 2), best)
	require.Len(t, scores, len(moves))
	for _, m := range moves {
		assert.Equal(t, 8.0, scores[m], "move %v", m)
	}
}

func TestSearchNoMoves(t *testing.T) {
	full, err := board.ParseDiagram(`
		X X X X
		X X X X
		X X O O
		X X O O
	`)
	require.NoError(t, err)

	strategies := map[string]Strategy{
		"alphabeta": NewAlphaBeta(2, eval.MustNew("TPW"), untimed),
		"negascout": NewNegaScout(2, eval.MustNew("TPW"), untimed),
		"minmax":    NewMinMax(2, eval.MustNew("TPW"), untimed),
	}
	for name, s := range strategies {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, board.NoMove, s.NextMove(board.White, full))
		})
	}
}

func TestSearchTimeout(t *testing.T) {
	opts := Options{EnableTimer: true, EnableMeasure: true, TimeLimit: time.Microsecond}
	b := board.MustNewBoard(8)

	s := NewAlphaBeta(60, eval.MustNew("TPW"), opts)
	m := s.NextMove(board.Black, b)
	assert.True(t, board.ContainsMove(b.LegalMoves(board.Black), m))
	assert.True(t, board.MustNewBoard(8).Equal(b))

	stats := s.Measure().Stats()
	assert.Equal(t, 1, stats.Count)
}

// stopAfter raises stop once it has evaluated n positions.
type stopAfter struct {
	eval.Evaluator
	n    int
	stop *atomic.Bool
}

func (e *stopAfter) Evaluate(c board.Color, b *board.Board, movesBlack, movesWhite board.Bitboard) float64 {
	e.n--
	if e.n <= 0 {
		e.stop.Store(true)
	}
	return e.Evaluator.Evaluate(c, b, movesBlack, movesWhite)
}

func TestMinMaxTimeoutKeepsSearchedMoves(t *testing.T) {
	b := afterD3(t)
	moves := b.LegalMoves(board.White)
	require.Equal(t, []board.Move{board.NewMove(2, 2), board.NewMove(4, 2), board.NewMove(2, 4)}, moves)

	b.Play(board.White, moves[0])
	firstLeaves := len(b.LegalMoves(board.Black))
	b.Unplay()

	tests := []struct {
		name  string
		evals int
	}{
		{"cut inside the first move", 1},
		{"cut after the first move", firstLeaves},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stop atomic.Bool
			e := &stopAfter{Evaluator: eval.MustNew("TPW"), n: tc.evals, stop: &stop}
			s := NewMinMax(2, e, untimed)
			st := NewSearchState(untimed).WithStop(&stop)

			got := s.bestMove(st, board.White, b, moves)
			assert.True(t, st.TimedOut())
			assert.Equal(t, moves[0], got)
			assert.True(t, afterD3(t).Equal(b), "board changed by the search")
		})
	}
}

func TestTimedOutStateIsSticky(t *testing.T) {
	st := NewSearchState(Options{EnableTimer: true, TimeLimit: time.Microsecond})
	time.Sleep(time.Millisecond)

	assert.True(t, st.enter())
	assert.True(t, st.TimedOut())
	assert.True(t, st.enter())
	assert.Zero(t, st.Nodes())
}
