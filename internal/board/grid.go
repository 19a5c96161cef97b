package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Grid returns the board as rows of protocol values: 1 black, -1 white, 0 empty.
func (b *Board) Grid() [][]int {
	grid := make([][]int, b.size)
	for y := range grid {
		grid[y] = make([]int, b.size)
		for x := range grid[y] {
			grid[y][x] = b.At(x, y).Int()
		}
	}
	return grid
}

// NewBoardFromGrid builds a board from rows of protocol values.
func NewBoardFromGrid(grid [][]int) (*Board, error) {
	size := len(grid)
	var black, white Bitboard
	for y, row := range grid {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrParse, y, len(row), size)
		}
		for x, v := range row {
			switch v {
			case 1:
				black = black.Set(y*size + x)
			case -1:
				white = white.Set(y*size + x)
			case 0:
			default:
				return nil, fmt.Errorf("%w: cell (%d, %d) has value %d", ErrParse, x, y, v)
			}
		}
	}
	return NewBoardFromMasks(size, black, white)
}

// ParseGridRows parses whitespace separated protocol rows such as "0 1 -1 0".
func ParseGridRows(rows []string) ([][]int, error) {
	grid := make([][]int, len(rows))
	for y, row := range rows {
		fields := strings.Fields(row)
		grid[y] = make([]int, len(fields))
		for x, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrParse, y, err)
			}
			grid[y][x] = v
		}
	}
	return grid, nil
}

// ParseDiagram builds a board from a diagram of 'X' (black), 'O' (white)
// and '.' (empty) cells. Whitespace is ignored and rows are separated by
// newlines.
func ParseDiagram(s string) (*Board, error) {
	var rows []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), "")
		if line != "" {
			rows = append(rows, line)
		}
	}
	grid := make([][]int, len(rows))
	for y, row := range rows {
		grid[y] = make([]int, len(row))
		for x, ch := range row {
			switch ch {
			case 'X', 'x':
				grid[y][x] = 1
			case 'O', 'o':
				grid[y][x] = -1
			case '.', '-':
			default:
				return nil, fmt.Errorf("%w: unexpected %q at (%d, %d)", ErrParse, ch, x, y)
			}
		}
	}
	return NewBoardFromGrid(grid)
}

// String returns a diagram of the board with column letters and row numbers.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for x := 0; x < b.size; x++ {
		sb.WriteByte(byte('a' + x))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')
	for y := 0; y < b.size; y++ {
		fmt.Fprintf(&sb, "%2d ", y+1)
		for x := 0; x < b.size; x++ {
			switch b.At(x, y) {
			case Black:
				sb.WriteString("X ")
			case White:
				sb.WriteString("O ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "X: %d  O: %d\n", b.count[Black], b.count[White])
	return sb.String()
}

// PlaySequence plays moves alternately starting with first, inserting passes
// when the side to move has no legal move. It returns the color to move next.
func (b *Board) PlaySequence(first Color, moves []Move) (Color, error) {
	c := first
	for i, m := range moves {
		if !b.HasLegalMoves(c) {
			c = c.Other()
		}
		if _, err := b.Place(c, m.X, m.Y); err != nil {
			return c, fmt.Errorf("move %d (%s): %w", i+1, m, err)
		}
		c = c.Other()
	}
	return c, nil
}

// ParseMoves parses a space separated move list such as "f5 d6 c3".
func ParseMoves(s string) ([]Move, error) {
	fields := strings.Fields(s)
	moves := make([]Move, 0, len(fields))
	for _, f := range fields {
		m, err := ParseMove(strings.ToLower(f))
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}
