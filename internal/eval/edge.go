package eval

import "github.com/hailam/reversi/internal/board"

// edgeChains[p] counts the corner-anchored runs in an 8-bit edge pattern p
// (bit k = k-th cell from one corner): one per run length 2..7 from either
// end, plus one when the whole edge is filled.
var edgeChains [256]int

func init() {
	for p := 0; p < 256; p++ {
		n := 0
		for k := 2; k <= 7; k++ {
			low := (1 << k) - 1
			high := low << (8 - k)
			if p&low == low {
				n++
			}
			if p&high == high {
				n++
			}
		}
		if p == 0xFF {
			n++
		}
		edgeChains[p] = n
	}
}

// edgeCells lists the cells of the four 8x8 edges, each ordered from one
// corner to the other.
var edgeCells = func() [4][8]int {
	var e [4][8]int
	for i := 0; i < 8; i++ {
		e[0][i] = i       // top
		e[1][i] = 56 + i  // bottom
		e[2][i] = i * 8   // left
		e[3][i] = i*8 + 7 // right
	}
	return e
}()

func edgePattern(discs board.Bitboard, cells [8]int) int {
	p := 0
	for k, i := range cells {
		if discs.Has(i) {
			p |= 1 << k
		}
	}
	return p
}

// Edge scores discs that can no longer be flipped because they form an
// unbroken chain from a corner along an edge. Only 8x8 boards are scored.
type Edge struct {
	W float64
}

func (s Edge) Score(b *board.Board, _, _ board.Bitboard) float64 {
	if b.Size() != 8 {
		return 0
	}
	black, white := b.Masks()
	n := 0
	for _, cells := range edgeCells {
		n += edgeChains[edgePattern(black, cells)]
		n -= edgeChains[edgePattern(white, cells)]
	}
	return float64(n) * s.W
}
