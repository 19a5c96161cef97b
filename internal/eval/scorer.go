package eval

import "github.com/hailam/reversi/internal/board"

// Scorer computes one component of a position's value from black's point of
// view: positive favors black, negative favors white.
type Scorer interface {
	Score(b *board.Board, movesBlack, movesWhite board.Bitboard) float64
}

// Decider is a scorer that only speaks when its verdict overrides everything
// else, such as a finished game.
type Decider interface {
	Decide(b *board.Board, movesBlack, movesWhite board.Bitboard) (float64, bool)
}

// Mobility scores the difference in legal move counts.
type Mobility struct {
	W float64
}

func (s Mobility) Score(_ *board.Board, movesBlack, movesWhite board.Bitboard) float64 {
	return float64(movesBlack.PopCount()-movesWhite.PopCount()) * s.W
}

// Opening scores how many empty cells surround the discs flipped by the last
// placement. Moves that open up the position tend to hand the opponent moves,
// so W is normally negative.
type Opening struct {
	W float64
}

func (s Opening) Score(b *board.Board, _, _ board.Bitboard) float64 {
	return float64(Openness(b, b.LastFlips())) * s.W
}

// Openness counts the empty neighbours of each disc in flipped.
func Openness(b *board.Board, flipped board.Bitboard) int {
	size := b.Size()
	blanks := b.Blanks()
	n := 0
	flipped.ForEach(func(i int) {
		x, y := i%size, i/size
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := x+dx, y+dy
				if b.InBounds(nx, ny) && blanks.Has(ny*size+nx) {
					n++
				}
			}
		}
	})
	return n
}

// WinLose decides finished games: the disc difference pushed W further away
// from zero, or exactly zero for a draw.
type WinLose struct {
	W float64
}

func (s WinLose) Decide(b *board.Board, movesBlack, movesWhite board.Bitboard) (float64, bool) {
	if !movesBlack.IsZero() || !movesWhite.IsZero() {
		return 0, false
	}
	d := float64(b.Count(board.Black) - b.Count(board.White))
	switch {
	case d > 0:
		d += s.W
	case d < 0:
		d -= s.W
	}
	return d, true
}

// Score implements Scorer; undecided positions score zero.
func (s WinLose) Score(b *board.Board, movesBlack, movesWhite board.Bitboard) float64 {
	v, _ := s.Decide(b, movesBlack, movesWhite)
	return v
}

// Number scores the disc difference.
type Number struct{}

func (Number) Score(b *board.Board, _, _ board.Bitboard) float64 {
	return float64(b.Count(board.Black) - b.Count(board.White))
}
