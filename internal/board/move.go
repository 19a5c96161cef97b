package board

import (
	"fmt"
	"strconv"
)

// Move is a disc placement at column X, row Y. (0,0) is the top-left cell.
type Move struct {
	X, Y int
}

// NoMove represents the absence of a move (a pass, or nothing found).
var NoMove = Move{X: -1, Y: -1}

// NewMove creates a move.
func NewMove(x, y int) Move {
	return Move{X: x, Y: y}
}

// MoveFromIndex converts a bit index on an N x N board to a move.
func MoveFromIndex(i, size int) Move {
	return Move{X: i % size, Y: i / size}
}

// Index returns the bit index of the move on an N x N board.
func (m Move) Index(size int) int {
	return m.Y*size + m.X
}

// IsValid returns true if m is a real move.
func (m Move) IsValid() bool {
	return m.X >= 0 && m.Y >= 0
}

// String returns the move in column-letter/row-number notation, e.g. "f5".
func (m Move) String() string {
	if !m.IsValid() || m.X >= 26 {
		return "pass"
	}
	return string(rune('a'+m.X)) + strconv.Itoa(m.Y+1)
}

// ParseMove parses "f5" style notation.
func ParseMove(s string) (Move, error) {
	if len(s) < 2 || s[0] < 'a' || s[0] > 'z' {
		return NoMove, fmt.Errorf("%w: move %q", ErrParse, s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 {
		return NoMove, fmt.Errorf("%w: move %q", ErrParse, s)
	}
	return Move{X: int(s[0] - 'a'), Y: row - 1}, nil
}

// MovesFromBits lists the moves of a bitboard in ascending bit order.
func MovesFromBits(b Bitboard, size int) []Move {
	moves := make([]Move, 0, b.PopCount())
	b.ForEach(func(i int) {
		moves = append(moves, MoveFromIndex(i, size))
	})
	return moves
}

// ContainsMove reports whether moves contains m.
func ContainsMove(moves []Move, m Move) bool {
	for _, mv := range moves {
		if mv == m {
			return true
		}
	}
	return false
}

// undoEntry stores everything needed to take back a placement.
type undoEntry struct {
	discs [2]Bitboard
	count [2]int
	flips Bitboard
	move  Move
	color Color
}
