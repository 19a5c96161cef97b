package engine

import (
	"github.com/hailam/reversi/internal/board"
	"github.com/hailam/reversi/internal/eval"
)

// NegaScout narrows every child after the first to a null window and only
// searches again with the full window when that guess fails high.
type NegaScout struct {
	Depth     int
	Evaluator eval.Evaluator
	Options   Options

	measure *Measure
}

// NewNegaScout creates a NegaScout search of the given depth.
func NewNegaScout(depth int, e eval.Evaluator, opts Options) *NegaScout {
	return &NegaScout{Depth: depth, Evaluator: e, Options: opts, measure: NewMeasure("negascout")}
}

func (s *NegaScout) Name() string { return "negascout" }

// Measure returns the timing statistics of the strategy.
func (s *NegaScout) Measure() *Measure { return s.measure }

// NextMove implements Strategy.
func (s *NegaScout) NextMove(c board.Color, b *board.Board) board.Move {
	moves := b.LegalMoves(c)
	if len(moves) == 0 {
		return board.NoMove
	}
	best := board.NoMove
	instrument(s.Options, s.measure, func(st *SearchState) {
		best, _ = s.BestMove(st, c, b, moves, s.Depth)
	})
	return best
}

// BestMove implements Searcher.
func (s *NegaScout) BestMove(st *SearchState, c board.Color, b *board.Board, moves []board.Move, depth int) (board.Move, Scores) {
	return bestMove(st, c, b, moves, depth, s.Score)
}

// Score returns the value of the position for c. Out of time, it returns
// MinScore.
func (s *NegaScout) Score(st *SearchState, c board.Color, b *board.Board, alpha, beta float64, depth int) float64 {
	if st.enter() {
		return MinScore
	}

	movesBlack, movesWhite := b.LegalMovesBits(board.Black), b.LegalMovesBits(board.White)
	if depth <= 0 || (movesBlack.IsZero() && movesWhite.IsZero()) {
		return s.Evaluator.Evaluate(c, b, movesBlack, movesWhite)
	}

	legal := movesBlack
	if c == board.White {
		legal = movesWhite
	}
	if legal.IsZero() {
		// pass
		return -s.Score(st, c.Other(), b, -beta, -alpha, depth)
	}

	size := b.Size()
	nullWindow := beta
	for i := 0; !legal.IsZero(); i++ {
		if alpha >= beta {
			break
		}
		m := board.MoveFromIndex(legal.PopLSB(), size)

		b.Play(c, m)
		tmp := -s.Score(st, c.Other(), b, -nullWindow, -alpha, depth-1)
		b.Unplay()

		if alpha < tmp {
			// a first child is already searched with the full window
			if tmp <= nullWindow && i > 0 {
				b.Play(c, m)
				alpha = -s.Score(st, c.Other(), b, -beta, -tmp, depth-1)
				b.Unplay()

				if st.TimedOut() {
					return alpha
				}
			} else {
				alpha = tmp
			}
		}
		nullWindow = alpha + 1
	}
	return alpha
}
