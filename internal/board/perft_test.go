package board

import (
	"math/rand"
	"testing"
)

// perft counts the number of leaf nodes at the given depth. A side without
// moves passes; a finished game counts as a single leaf.
func perft(b *Board, c Color, depth int, passed bool) int64 {
	if depth == 0 {
		return 1
	}

	moves := b.LegalMoves(c)
	if len(moves) == 0 {
		if passed {
			return 1
		}
		return perft(b, c.Other(), depth-1, true)
	}
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		b.Play(c, m)
		nodes += perft(b, c.Other(), depth-1, false)
		b.Unplay()
	}
	return nodes
}

// TestPerftStartingPosition tests move generation from the 8x8 starting position.
func TestPerftStartingPosition(t *testing.T) {
	b := MustNewBoard(8)

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 4},
		{2, 12},
		{3, 56},
		{4, 244},
		{5, 1396},
		{6, 8200},
		// Depth 7 takes longer, enable for thorough testing:
		// {7, 55092},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			before := *b
			got := perft(b, Black, tc.depth, false)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
			if b.discs != before.discs || b.Ply() != 0 {
				t.Errorf("perft(%d) left the board modified", tc.depth)
			}
		})
	}
}

// slowLegalMoves scans every cell with Flips; the sweep must agree with it.
func slowLegalMoves(b *Board, c Color) Bitboard {
	var legal Bitboard
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			if !b.Flips(c, x, y).IsZero() {
				legal = legal.Set(y*b.Size() + x)
			}
		}
	}
	return legal
}

// TestSweepMatchesScan plays random games on every board size and checks the
// shift sweep against the per-cell ray scan at each position.
func TestSweepMatchesScan(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for size := MinSize; size <= MaxSize; size += 2 {
		b := MustNewBoard(size)
		c := Black
		for !b.IsGameOver() {
			for _, side := range []Color{Black, White} {
				fast, slow := b.LegalMovesBits(side), slowLegalMoves(b, side)
				if fast != slow {
					t.Fatalf("size %d ply %d %s: sweep\n%s\nscan\n%s\nboard\n%s",
						size, b.Ply(), side, fast.Format(size), slow.Format(size), b)
				}
			}
			moves := b.LegalMoves(c)
			if len(moves) == 0 {
				c = c.Other()
				continue
			}
			b.Play(c, moves[rng.Intn(len(moves))])
			c = c.Other()
		}
		if b.DiscCount() > size*size {
			t.Fatalf("size %d: %d discs on the board", size, b.DiscCount())
		}
	}
}
