package engine

import (
	"github.com/hailam/reversi/internal/board"
	"github.com/hailam/reversi/internal/eval"
)

// AlphaBeta is a depth-limited negamax search with alpha-beta pruning.
type AlphaBeta struct {
	Depth     int
	Evaluator eval.Evaluator
	Options   Options

	measure *Measure
}

// NewAlphaBeta creates an alpha-beta search of the given depth.
func NewAlphaBeta(depth int, e eval.Evaluator, opts Options) *AlphaBeta {
	return &AlphaBeta{Depth: depth, Evaluator: e, Options: opts, measure: NewMeasure("alphabeta")}
}

func (s *AlphaBeta) Name() string { return "alphabeta" }

// Measure returns the timing statistics of the strategy.
func (s *AlphaBeta) Measure() *Measure { return s.measure }

// NextMove implements Strategy.
func (s *AlphaBeta) NextMove(c board.Color, b *board.Board) board.Move {
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
func (s *AlphaBeta) BestMove(st *SearchState, c board.Color, b *board.Board, moves []board.Move, depth int) (board.Move, Scores) {
	return bestMove(st, c, b, moves, depth, s.Score)
}

// Score returns the value of the position for c, searched depth plies deep
// within the window [alpha, beta]. Out of time, it returns MinScore.
func (s *AlphaBeta) Score(st *SearchState, c board.Color, b *board.Board, alpha, beta float64, depth int) float64 {
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
	for !legal.IsZero() {
		m := board.MoveFromIndex(legal.PopLSB(), size)

		b.Play(c, m)
		score := -s.Score(st, c.Other(), b, -beta, -alpha, depth-1)
		b.Unplay()

		if st.TimedOut() {
			return alpha
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return alpha
}
