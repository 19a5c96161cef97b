package engine

import (
	"github.com/hailam/reversi/internal/board"
)

// Selector narrows the candidate moves before each depth of iterative
// deepening, using the scores of the previous depth. scores is nil before
// the first depth. Selectors return a new slice and leave moves untouched.
type Selector interface {
	Select(c board.Color, b *board.Board, moves []board.Move, scores Scores, depth int) []board.Move
}

// KeepAll keeps every move.
type KeepAll struct{}

func (KeepAll) Select(_ board.Color, _ *board.Board, moves []board.Move, _ Scores, _ int) []board.Move {
	return append([]board.Move(nil), moves...)
}

// WorstSelector drops the worst scoring moves from depth Depth on, as long
// as at least Limit moves remain.
type WorstSelector struct {
	Depth int
	Limit int
}

// NewWorstSelector returns a selector starting at depth 3 and keeping at
// least 3 moves.
func NewWorstSelector() *WorstSelector {
	return &WorstSelector{Depth: 3, Limit: 3}
}

func (s *WorstSelector) Select(_ board.Color, _ *board.Board, moves []board.Move, scores Scores, depth int) []board.Move {
	out := append([]board.Move(nil), moves...)
	if depth < s.Depth || len(scores) == 0 {
		return out
	}

	worst := float64(MaxScore)
	for _, v := range scores {
		worst = min(worst, v)
	}
	var drop []board.Move
	for m, v := range scores {
		if v == worst {
			drop = append(drop, m)
		}
	}
	if len(out)-len(drop) < s.Limit {
		return out
	}

	kept := out[:0]
	for _, m := range out {
		if !board.ContainsMove(drop, m) {
			kept = append(kept, m)
		}
	}
	return kept
}

// MarginSelector keeps the moves scoring within a depth dependent margin of
// the best one: max - (Base + PerDepth*depth).
type MarginSelector struct {
	Base     float64
	PerDepth float64
}

func (s *MarginSelector) margin(depth int) float64 {
	return s.Base + s.PerDepth*float64(depth)
}

func (s *MarginSelector) Select(_ board.Color, _ *board.Board, moves []board.Move, scores Scores, depth int) []board.Move {
	out := append([]board.Move(nil), moves...)
	if len(scores) == 0 {
		return out
	}

	best := float64(MinScore)
	for _, v := range scores {
		best = max(best, v)
	}
	threshold := best - s.margin(depth)

	kept := out[:0]
	for _, m := range out {
		v, ok := scores[m]
		if !ok || v >= threshold {
			kept = append(kept, m)
		}
	}
	return kept
}
