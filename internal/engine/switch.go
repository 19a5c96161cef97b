package engine

import (
	"fmt"

	"github.com/hailam/reversi/internal/board"
)

// Switch hands each move to one of several strategies by game stage. Stage
// i covers the moves played while the number of discs added to the starting
// four is at most Turns[i]; moves beyond the last threshold go to the last
// strategy.
type Switch struct {
	Turns      []int
	Strategies []Strategy
}

// NewSwitch pairs thresholds with strategies.
func NewSwitch(turns []int, strategies []Strategy) (*Switch, error) {
	if len(turns) != len(strategies) {
		return nil, fmt.Errorf("%w: %d turns, %d strategies", ErrSwitchSize, len(turns), len(strategies))
	}
	if len(strategies) == 0 {
		return nil, fmt.Errorf("%w: no strategies", ErrSwitchSize)
	}
	return &Switch{Turns: turns, Strategies: strategies}, nil
}

// Stage returns the index of the strategy that plays on b.
func (s *Switch) Stage(b *board.Board) int {
	played := b.DiscCount() - 4
	for i, turn := range s.Turns {
		if played <= turn {
			return i
		}
	}
	return len(s.Strategies) - 1
}

// NextMove implements Strategy.
func (s *Switch) NextMove(c board.Color, b *board.Board) board.Move {
	return s.Strategies[s.Stage(b)].NextMove(c, b)
}
