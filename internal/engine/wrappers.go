package engine

import (
	"math/rand/v2"

	"github.com/hailam/reversi/internal/board"
	"github.com/hailam/reversi/internal/book"
	"github.com/hailam/reversi/internal/eval"
)

// FullReading reads the game out to the end once at most Remain cells are
// empty, maximizing the final disc difference; before that it defers to
// Base.
type FullReading struct {
	Remain int
	Base   Strategy

	reader *AlphaBeta
}

// NewFullReading creates an end game reader in front of base.
func NewFullReading(remain int, base Strategy, opts Options) *FullReading {
	return &FullReading{
		Remain: remain,
		Base:   base,
		reader: NewAlphaBeta(remain, eval.MustNew("N"), opts),
	}
}

func (s *FullReading) NextMove(c board.Color, b *board.Board) board.Move {
	if b.Empties() <= s.Remain {
		return s.reader.NextMove(c, b)
	}
	return s.Base.NextMove(c, b)
}

// RandomOpening plays random moves while fewer than Depth discs have been
// added to the starting four, then defers to Base.
type RandomOpening struct {
	Depth int
	Base  Strategy
	Rand  *rand.Rand
}

func (s *RandomOpening) NextMove(c board.Color, b *board.Board) board.Move {
	if b.DiscCount()-4 < s.Depth {
		return (&Random{Rand: s.Rand}).NextMove(c, b)
	}
	return s.Base.NextMove(c, b)
}

// Joseki plays book moves while the position is in the book, then defers
// to Base.
type Joseki struct {
	Book *book.Book
	Base Strategy
	Rand *rand.Rand
}

func (s *Joseki) NextMove(c board.Color, b *board.Board) board.Move {
	if m, ok := s.Book.Probe(b, c, s.Rand); ok {
		return m
	}
	return s.Base.NextMove(c, b)
}
