package eval

import "github.com/hailam/reversi/internal/board"

// cornerShape describes a stable region grown from a corner: shape[r] is the
// number of cells filled along the edge in the r-th line away from the corner.
type cornerShape struct {
	rows   []int
	weight float64
}

// cornerLevels holds the five confidence levels of corner stability, from a
// three-cell triangle (level 1) up to a seven-deep staircase (level 5).
var cornerLevels = [5][]cornerShape{
	{
		{[]int{3, 2, 1}, 1}, {[]int{3, 2}, 1}, {[]int{2, 2, 1}, 1},
	},
	{
		{[]int{4, 3, 2, 1}, 3}, {[]int{4, 3, 2}, 3}, {[]int{3, 3, 2, 1}, 3},
		{[]int{4, 3}, 2}, {[]int{2, 2, 2, 1}, 2},
	},
	{
		{[]int{5, 4, 3, 2, 1}, 6}, {[]int{5, 4, 3, 2}, 6}, {[]int{4, 4, 3, 2, 1}, 6},
		{[]int{5, 4, 3}, 5}, {[]int{3, 3, 3, 2, 1}, 5},
		{[]int{5, 4, 2}, 4}, {[]int{3, 3, 2, 2, 1}, 4},
		{[]int{5, 4}, 3}, {[]int{2, 2, 2, 2, 1}, 3},
	},
	{
		{[]int{6, 5, 4, 3, 2, 1}, 8}, {[]int{6, 5, 4, 3}, 8}, {[]int{4, 4, 4, 3, 2, 1}, 8},
		{[]int{6, 5, 4, 2}, 7}, {[]int{4, 4, 3, 3, 2, 1}, 7},
		{[]int{6, 5, 3, 2}, 6}, {[]int{4, 4, 3, 2, 2, 1}, 6}, {[]int{6, 5, 4}, 6}, {[]int{3, 3, 3, 3, 2, 1}, 6},
		{[]int{6, 5, 3}, 5}, {[]int{3, 3, 3, 2, 2, 1}, 5},
		{[]int{6, 5, 2}, 4}, {[]int{3, 3, 2, 2, 2, 1}, 4},
		{[]int{6, 5}, 3}, {[]int{2, 2, 2, 2, 2, 1}, 3},
	},
	{
		{[]int{7, 6, 5, 4, 3, 2, 1}, 9}, {[]int{7, 6, 5, 4}, 9}, {[]int{4, 4, 4, 4, 3, 2, 1}, 9},
	},
}

type cornerMask struct {
	mask   board.Bitboard
	weight float64
}

// cornerMasks[corner][level] are the shapes materialized on an 8x8 board for
// each of the four corners.
var cornerMasks = func() [4][5][]cornerMask {
	var out [4][5][]cornerMask
	corners := [4][4]int{
		// x, y, dx, dy
		{0, 0, 1, 1},
		{7, 0, -1, 1},
		{0, 7, 1, -1},
		{7, 7, -1, -1},
	}
	for ci, c := range corners {
		for li, level := range cornerLevels {
			for _, shape := range level {
				var m board.Bitboard
				for r, n := range shape.rows {
					for i := 0; i < n; i++ {
						x, y := c[0]+c[2]*i, c[1]+c[3]*r
						m = m.Set(y*8 + x)
					}
				}
				out[ci][li] = append(out[ci][li], cornerMask{mask: m, weight: shape.weight})
			}
		}
	}
	return out
}()

// Corner scores the stable regions grown from each corner of an 8x8 board.
// A corner scores only if at least a level 1 shape is held; the highest level
// matched then decides the corner's value.
type Corner struct {
	W float64
}

func (s Corner) Score(b *board.Board, _, _ board.Bitboard) float64 {
	if b.Size() != 8 {
		return 0
	}
	black, white := b.Masks()
	var score float64
	for _, levels := range cornerMasks {
		v := s.match(black, white, levels[0])
		if v == 0 {
			continue
		}
		for li := 4; li >= 1; li-- {
			if hv := s.match(black, white, levels[li]); hv != 0 {
				v = hv
				break
			}
		}
		score += v
	}
	return score
}

func (s Corner) match(black, white board.Bitboard, shapes []cornerMask) float64 {
	for _, m := range shapes {
		var v float64
		if black.And(m.mask) == m.mask {
			v += m.weight * s.W
		}
		if white.And(m.mask) == m.mask {
			v -= m.weight * s.W
		}
		if v != 0 {
			return v
		}
	}
	return 0
}
