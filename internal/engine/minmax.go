package engine

import (
	"math/rand/v2"

	"github.com/hailam/reversi/internal/board"
	"github.com/hailam/reversi/internal/eval"
)

// MinMax is the plain minimax search: black maximizes and white minimizes
// values that are always taken from black's point of view.
type MinMax struct {
	Depth     int
	Evaluator eval.Evaluator
	Options   Options
	Rand      *rand.Rand

	measure *Measure
}

// NewMinMax creates a minimax search of the given depth.
func NewMinMax(depth int, e eval.Evaluator, opts Options) *MinMax {
	return &MinMax{Depth: depth, Evaluator: e, Options: opts, measure: NewMeasure("minmax")}
}

func (s *MinMax) Name() string { return "minmax" }

// Measure returns the timing statistics of the strategy.
func (s *MinMax) Measure() *Measure { return s.measure }

// NextMove implements Strategy. Ties between equally good moves are broken
// at random.
func (s *MinMax) NextMove(c board.Color, b *board.Board) board.Move {
	moves := b.LegalMoves(c)
	if len(moves) == 0 {
		return board.NoMove
	}
	best := board.NoMove
	instrument(s.Options, s.measure, func(st *SearchState) {
		best = s.bestMove(st, c, b, moves)
	})
	return best
}

// bestMove picks among the root moves whose subtree was searched in full.
func (s *MinMax) bestMove(st *SearchState, c board.Color, b *board.Board, moves []board.Move) board.Move {
	bestScore := float64(MinScore)
	if c == board.White {
		bestScore = MaxScore
	}
	byScore := make(map[float64][]board.Move)
	for _, m := range moves {
		b.Play(c, m)
		score := s.Score(st, c.Other(), b, s.Depth-1)
		b.Unplay()

		// a cut-off child has no value; keep what finished, or the first move tried
		if st.TimedOut() {
			if len(byScore) == 0 {
				return m
			}
			break
		}
		if (c == board.Black && score > bestScore) || (c == board.White && score < bestScore) {
			bestScore = score
		}
		byScore[score] = append(byScore[score], m)
	}
	return randomChoice(s.Rand, byScore[bestScore])
}

// Score returns the minimax value of the position from black's point of
// view, with c to move.
func (s *MinMax) Score(st *SearchState, c board.Color, b *board.Board, depth int) float64 {
	if st.enter() {
		return MinScore
	}

	movesBlack, movesWhite := b.LegalMovesBits(board.Black), b.LegalMovesBits(board.White)
	if depth <= 0 || (movesBlack.IsZero() && movesWhite.IsZero()) {
		return s.Evaluator.Evaluate(board.Black, b, movesBlack, movesWhite)
	}

	legal := movesBlack
	if c == board.White {
		legal = movesWhite
	}
	if legal.IsZero() {
		return s.Score(st, c.Other(), b, depth)
	}

	best := float64(MinScore)
	if c == board.White {
		best = MaxScore
	}
	size := b.Size()
	for !legal.IsZero() {
		m := board.MoveFromIndex(legal.PopLSB(), size)

		b.Play(c, m)
		score := s.Score(st, c.Other(), b, depth-1)
		b.Unplay()

		if c == board.Black {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}
