package eval

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/reversi/internal/board"
)

func TestTableLayout8(t *testing.T) {
	want := []float64{
		50, -20, -1, -1, -1, -1, -20, 50,
		-20, -25, -5, -5, -5, -5, -25, -20,
		-1, -5, 0, -1, -1, 0, -5, -1,
		-1, -5, -1, -1, -1, -1, -5, -1,
		-1, -5, -1, -1, -1, -1, -5, -1,
		-1, -5, 0, -1, -1, 0, -5, -1,
		-20, -25, -5, -5, -5, -5, -25, -20,
		50, -20, -1, -1, -1, -1, -20, 50,
	}
	got := BuildTable(8, DefaultWeights().TableParams())
	assert.Equal(t, want, got)
}

func TestTableSymmetry(t *testing.T) {
	for size := board.MinSize; size <= board.MaxSize; size += 2 {
		cells := BuildTable(size, DefaultWeights().TableParams())
		require.Len(t, cells, size*size)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				v := cells[y*size+x]
				assert.Equal(t, v, cells[x*size+y], "size %d transpose (%d,%d)", size, x, y)
				assert.Equal(t, v, cells[y*size+size-1-x], "size %d mirror (%d,%d)", size, x, y)
			}
		}
		assert.Equal(t, 50.0, cells[0], "size %d corner", size)
	}
}

func TestTableFollowsBoardSize(t *testing.T) {
	tbl := NewTable(8, DefaultWeights().TableParams())
	b := board.MustNewBoard(10)
	_ = tbl.Score(b, board.Empty, board.Empty)
	assert.Len(t, tbl.Cells(10), 100)
}

func TestTableSharedAcrossSizes(t *testing.T) {
	e := MustNew("T")
	small, big := board.MustNewBoard(6), board.MustNewBoard(8)
	small.Play(board.Black, board.NewMove(2, 1))
	big.Play(board.Black, board.NewMove(3, 2))
	wantSmall := NewTable(6, DefaultWeights().TableParams()).Score(small, board.Empty, board.Empty)
	wantBig := NewTable(8, DefaultWeights().TableParams()).Score(big, board.Empty, board.Empty)

	var wg sync.WaitGroup
	for i := range 8 {
		b, want := small, wantSmall
		if i%2 == 1 {
			b, want = big, wantBig
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				assert.Equal(t, want, e.Evaluate(board.Black, b, board.Empty, board.Empty))
			}
		}()
	}
	wg.Wait()
}

func TestEvaluatorSign(t *testing.T) {
	b := board.MustNewBoard(8)
	b.Play(board.Black, board.NewMove(3, 2))
	mb, mw := b.LegalMovesBits(board.Black), b.LegalMovesBits(board.White)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			e, err := New(name)
			require.NoError(t, err)
			black := e.Evaluate(board.Black, b, mb, mw)
			white := e.Evaluate(board.White, b, mb, mw)
			assert.Equal(t, black, -white)
		})
	}
}

func TestTableScore(t *testing.T) {
	e := MustNew("T")
	b := board.MustNewBoard(8)
	assert.Equal(t, 0.0, e.Evaluate(board.Black, b, board.Empty, board.Empty))

	b.Play(board.Black, board.NewMove(3, 2))
	assert.Equal(t, -3.0, e.Evaluate(board.Black, b, board.Empty, board.Empty))
	assert.Equal(t, 3.0, e.Evaluate(board.White, b, board.Empty, board.Empty))
}

func TestMobility(t *testing.T) {
	b := board.MustNewBoard(8)
	b.Play(board.Black, board.NewMove(3, 2))
	mb, mw := b.LegalMovesBits(board.Black), b.LegalMovesBits(board.White)
	require.Equal(t, 3, mw.PopCount())

	s := Mobility{W: 5}
	assert.Equal(t, float64(mb.PopCount()-3)*5, s.Score(b, mb, mw))
}

func TestOpening(t *testing.T) {
	b := board.MustNewBoard(8)
	assert.Equal(t, 0.0, Opening{W: -0.75}.Score(b, board.Empty, board.Empty))

	// black d3 flips d4, whose empty neighbours are c3, e3, c4 and c5
	b.Play(board.Black, board.NewMove(3, 2))
	assert.Equal(t, 4, Openness(b, b.LastFlips()))
	assert.Equal(t, -3.0, Opening{W: -0.75}.Score(b, board.Empty, board.Empty))
}

func TestWinLoseOverrides(t *testing.T) {
	b, err := board.ParseDiagram(`
		X X X X
		X X O O
		X X O O
		X X O O
	`)
	require.NoError(t, err)
	mb, mw := b.LegalMovesBits(board.Black), b.LegalMovesBits(board.White)
	require.True(t, mb.IsZero() && mw.IsZero())

	v, ok := WinLose{W: 10000}.Decide(b, mb, mw)
	require.True(t, ok)
	assert.Equal(t, 10004.0, v)

	e := MustNew("TPW")
	assert.Equal(t, 10004.0, e.Evaluate(board.Black, b, mb, mw))
	assert.Equal(t, -10004.0, e.Evaluate(board.White, b, mb, mw))

	draw, err := board.ParseDiagram(`
		X X O O
		X X O O
		X X O O
		X X O O
	`)
	require.NoError(t, err)
	v, ok = WinLose{W: 10000}.Decide(draw, board.Empty, board.Empty)
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)

	start := board.MustNewBoard(8)
	_, ok = WinLose{W: 10000}.Decide(start, start.LegalMovesBits(board.Black), start.LegalMovesBits(board.White))
	assert.False(t, ok)
	assert.Equal(t, 0.0, MustNew("W").Evaluate(board.Black, start, start.LegalMovesBits(board.Black), board.Empty))
}

func TestEdgeChains(t *testing.T) {
	assert.Equal(t, 13, edgeChains[0xFF])
	assert.Equal(t, 0, edgeChains[0x01])
	assert.Equal(t, 1, edgeChains[0x03])
	assert.Equal(t, 2, edgeChains[0x07])
	assert.Equal(t, 2, edgeChains[0xC3])
	assert.Equal(t, 0, edgeChains[0x7E])

	var black board.Bitboard
	for x := 0; x < 8; x++ {
		black = black.Set(x)
	}
	b, err := board.NewBoardFromMasks(8, black, board.Empty)
	require.NoError(t, err)
	assert.Equal(t, 1300.0, Edge{W: 100}.Score(b, board.Empty, board.Empty))

	small := board.MustNewBoard(6)
	assert.Equal(t, 0.0, Edge{W: 100}.Score(small, board.Empty, board.Empty))
}

func TestCornerLevels(t *testing.T) {
	shape := func(rows ...int) board.Bitboard {
		var m board.Bitboard
		for r, n := range rows {
			for i := 0; i < n; i++ {
				m = m.Set(r*8 + i)
			}
		}
		return m
	}

	tests := []struct {
		name  string
		black board.Bitboard
		want  float64
	}{
		{"none", shape(2, 1), 0},
		{"level1", shape(3, 2, 1), 100},
		{"level2", shape(4, 3, 2, 1), 300},
		{"level2 short", shape(4, 3), 200},
		{"level3", shape(5, 4, 3, 2, 1), 600},
		{"level4", shape(6, 5, 4, 3), 800},
		{"level5", shape(7, 6, 5, 4, 3, 2, 1), 900},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := board.NewBoardFromMasks(8, tc.black, board.Empty)
			require.NoError(t, err)
			assert.Equal(t, tc.want, Corner{W: 100}.Score(b, board.Empty, board.Empty))

			// the same shape for white, mirrored into the bottom-right corner
			var white board.Bitboard
			tc.black.ForEach(func(i int) {
				white = white.Set(63 - i)
			})
			b, err = board.NewBoardFromMasks(8, board.Empty, white)
			require.NoError(t, err)
			assert.Equal(t, -tc.want, Corner{W: 100}.Score(b, board.Empty, board.Empty))
		})
	}
}

func TestByNameUnknown(t *testing.T) {
	_, err := ByName("XYZ", DefaultWeights())
	assert.ErrorIs(t, err, ErrUnknownEvaluator)
	assert.Equal(t, 120.0, DefaultWeightsFor("TPWEC").WC)
	assert.Equal(t, 10.0, DefaultWeightsFor("PWE").WP)
}

func TestWeightsWithOverrides(t *testing.T) {
	w, err := DefaultWeights().WithOverrides(map[string]float64{"corner": 80, "wp": 2.5})
	require.NoError(t, err)
	assert.Equal(t, 80.0, w.Corner)
	assert.Equal(t, 2.5, w.WP)
	assert.Equal(t, -25.0, w.X)

	same, err := DefaultWeights().WithOverrides(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultWeights(), same)

	_, err = DefaultWeights().WithOverrides(map[string]float64{"nope": 1})
	assert.ErrorIs(t, err, ErrUnknownWeight)
}
