package eval

import (
	"sync/atomic"

	"github.com/hailam/reversi/internal/board"
)

// TableParams names the cell classes of the weight table.
//
//	Corner  the four corners
//	C       cells orthogonally next to a corner
//	A1, A2  even rings' corners / cells two steps from a corner along an edge
//	B1      the four center cells
//	B2, B3  inner ring edges / everything else
//	X       cells diagonally next to a corner (and their inner-ring analogues)
//	O1, O2  second ring cells next to X / the rest of the second ring
type TableParams struct {
	Corner, C, A1, A2, B1, B2, B3, X, O1, O2 float64
}

// BuildTable lays out the weight table for an N x N board. The result is
// indexed by bit index (y*N + x).
func BuildTable(size int, p TableParams) []float64 {
	t := make([][]float64, size)
	for y := range t {
		t[y] = make([]float64, size)
		for x := range t[y] {
			t[y][x] = p.B3
		}
	}
	h := size / 2

	t[h-1][h-1], t[h-1][h], t[h][h-1], t[h][h] = p.B1, p.B1, p.B1, p.B1

	for num := 0; num < h; num += 2 {
		if num == h-1 {
			continue
		}
		for _, y := range []int{num, size - num - 1} {
			for _, x := range []int{num, size - num - 1} {
				t[y][x] = p.A1
			}
		}
	}

	for y := 2; y < h-1; y += 2 {
		for x := y + 1; x < size-y-1; x++ {
			for _, c := range [][2]int{{y, x}, {size - y - 1, x}} {
				t[c[0]][c[1]] = p.B2
				t[c[1]][c[0]] = p.B2
			}
		}
	}

	for y := 1; y < h-1; y += 2 {
		x := y
		for _, ty := range []int{y, size - y - 1} {
			for _, tx := range []int{x, size - x - 1} {
				t[ty][tx] = p.X
			}
		}
	}

	for y := 1; y < h-1; y += 2 {
		for _, c := range [][2]int{{y, y + 1}, {y, size - y - 2}, {size - y - 1, y + 1}, {size - y - 1, size - y - 2}} {
			t[c[0]][c[1]] = p.O1
			t[c[1]][c[0]] = p.O1
		}
		for x := y + 2; x < size-y-2; x++ {
			for _, c := range [][2]int{{y, x}, {size - y - 1, x}} {
				t[c[0]][c[1]] = p.O2
				t[c[1]][c[0]] = p.O2
			}
		}
	}

	last := size - 1
	for _, corner := range [][2]int{{0, 0}, {last, 0}, {0, last}, {last, last}} {
		x, y := corner[0], corner[1]
		sx, sy := 1, 1
		if x == last {
			sx = -1
		}
		if y == last {
			sy = -1
		}
		t[y][x] = p.Corner
		t[y][x+sx] = p.C
		t[y+sy][x] = p.C
		if size >= 6 {
			t[y][x+2*sx] = p.A2
			t[y+2*sy][x] = p.A2
		}
	}

	flat := make([]float64, 0, size*size)
	for _, row := range t {
		flat = append(flat, row...)
	}
	return flat
}

// Table scores a position by summing per-cell weights, positive for black
// discs and negative for white ones. The layout follows the board size of
// the scored position. A Table is safe for concurrent use.
type Table struct {
	Params TableParams
	layout atomic.Pointer[tableLayout]
}

type tableLayout struct {
	size  int
	cells []float64
}

// NewTable creates a table scorer laid out for the given size.
func NewTable(size int, p TableParams) *Table {
	t := &Table{Params: p}
	t.layout.Store(&tableLayout{size: size, cells: BuildTable(size, p)})
	return t
}

// Cells returns the table for the given size, building it if the last
// layout was for another size.
func (t *Table) Cells(size int) []float64 {
	if l := t.layout.Load(); l != nil && l.size == size {
		return l.cells
	}
	l := &tableLayout{size: size, cells: BuildTable(size, t.Params)}
	t.layout.Store(l)
	return l.cells
}

// Score implements Scorer.
func (t *Table) Score(b *board.Board, _, _ board.Bitboard) float64 {
	cells := t.Cells(b.Size())
	black, white := b.Masks()
	var score float64
	black.ForEach(func(i int) {
		score += cells[i]
	})
	white.ForEach(func(i int) {
		score -= cells[i]
	})
	return score
}
