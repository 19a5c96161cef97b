package engine

import (
	"math/rand/v2"

	"github.com/hailam/reversi/internal/board"
	"github.com/hailam/reversi/internal/eval"
)

// slowStarterStage is the filled fraction of the board below which
// SlowStarter plays unselfishly.
const slowStarterStage = 0.15

// Random plays any legal move.
type Random struct {
	Rand *rand.Rand
}

func (s *Random) NextMove(c board.Color, b *board.Board) board.Move {
	moves := b.LegalMoves(c)
	if len(moves) == 0 {
		return board.NoMove
	}
	return randomChoice(s.Rand, moves)
}

// Greedy flips as many discs as possible.
type Greedy struct {
	Rand *rand.Rand
}

func (s *Greedy) NextMove(c board.Color, b *board.Board) board.Move {
	return pickByFlips(s.Rand, c, b, func(n, best int) bool { return n > best })
}

// Unselfish flips as few discs as possible.
type Unselfish struct {
	Rand *rand.Rand
}

func (s *Unselfish) NextMove(c board.Color, b *board.Board) board.Move {
	return pickByFlips(s.Rand, c, b, func(n, best int) bool { return n < best })
}

// pickByFlips returns a random move among those whose flip count no other
// move beats.
func pickByFlips(r *rand.Rand, c board.Color, b *board.Board, better func(n, best int) bool) board.Move {
	moves := b.LegalMoves(c)
	if len(moves) == 0 {
		return board.NoMove
	}
	var picks []board.Move
	best := 0
	for i, m := range moves {
		n := b.Flips(c, m.X, m.Y).PopCount()
		switch {
		case i == 0 || better(n, best):
			best = n
			picks = append(picks[:0], m)
		case n == best:
			picks = append(picks, m)
		}
	}
	return randomChoice(r, picks)
}

// SlowStarter plays Unselfish while less than 15% of the board is filled,
// then Greedy.
type SlowStarter struct {
	Rand *rand.Rand
}

func (s *SlowStarter) NextMove(c board.Color, b *board.Board) board.Move {
	cells := b.Size() * b.Size()
	if float64(b.DiscCount())/float64(cells) < slowStarterStage {
		return (&Unselfish{Rand: s.Rand}).NextMove(c, b)
	}
	return (&Greedy{Rand: s.Rand}).NextMove(c, b)
}

// TableStrategy plays the move whose resulting position scores best on the
// weight table, one ply deep.
type TableStrategy struct {
	Table *eval.Table
	Rand  *rand.Rand
}

// NewTableStrategy creates a table strategy with the given weights.
func NewTableStrategy(p eval.TableParams) *TableStrategy {
	return &TableStrategy{Table: eval.NewTable(board.DefaultSize, p)}
}

func (s *TableStrategy) NextMove(c board.Color, b *board.Board) board.Move {
	moves := b.LegalMoves(c)
	if len(moves) == 0 {
		return board.NoMove
	}
	var picks []board.Move
	var best float64
	for i, m := range moves {
		b.Play(c, m)
		v := c.Sign() * s.Table.Score(b, board.Empty, board.Empty)
		b.Unplay()

		switch {
		case i == 0 || v > best:
			best = v
			picks = append(picks[:0], m)
		case v == best:
			picks = append(picks, m)
		}
	}
	return randomChoice(s.Rand, picks)
}
