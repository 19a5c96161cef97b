package board

import (
	"math/bits"
	"strings"
)

// Words is the number of 64-bit words backing a Bitboard. 11 words hold the
// 676 cells of the largest supported board (26x26).
const Words = 11

// Bitboard is a set of board cells, one bit per cell.
// Bit i corresponds to cell (i%N, i/N) on an N x N board, so bit 0 is the
// top-left corner and bits grow row by row toward the bottom-right.
type Bitboard [Words]uint64

// Empty is the bitboard with no cells set.
var Empty Bitboard

// CellBB returns a bitboard with only the given bit index set.
func CellBB(i int) Bitboard {
	var b Bitboard
	b[i>>6] = 1 << uint(i&63)
	return b
}

// Set returns b with bit i set.
func (b Bitboard) Set(i int) Bitboard {
	b[i>>6] |= 1 << uint(i&63)
	return b
}

// Clear returns b with bit i cleared.
func (b Bitboard) Clear(i int) Bitboard {
	b[i>>6] &^= 1 << uint(i&63)
	return b
}

// Has returns true if bit i is set.
func (b Bitboard) Has(i int) bool {
	return b[i>>6]&(1<<uint(i&63)) != 0
}

// And returns the intersection of two bitboards.
func (b Bitboard) And(o Bitboard) Bitboard {
	for i := range b {
		b[i] &= o[i]
	}
	return b
}

// Or returns the union of two bitboards.
func (b Bitboard) Or(o Bitboard) Bitboard {
	for i := range b {
		b[i] |= o[i]
	}
	return b
}

// Xor returns the symmetric difference of two bitboards.
func (b Bitboard) Xor(o Bitboard) Bitboard {
	for i := range b {
		b[i] ^= o[i]
	}
	return b
}

// AndNot returns the cells of b that are not in o.
func (b Bitboard) AndNot(o Bitboard) Bitboard {
	for i := range b {
		b[i] &^= o[i]
	}
	return b
}

// Shl shifts every bit s positions toward higher indices (0 < s < 64).
// Bits carried past the last word are dropped.
func (b Bitboard) Shl(s uint) Bitboard {
	var r Bitboard
	for i := Words - 1; i > 0; i-- {
		r[i] = b[i]<<s | b[i-1]>>(64-s)
	}
	r[0] = b[0] << s
	return r
}

// Shr shifts every bit s positions toward lower indices (0 < s < 64).
func (b Bitboard) Shr(s uint) Bitboard {
	var r Bitboard
	for i := 0; i < Words-1; i++ {
		r[i] = b[i]>>s | b[i+1]<<(64-s)
	}
	r[Words-1] = b[Words-1] >> s
	return r
}

// IsZero returns true if no bits are set.
func (b Bitboard) IsZero() bool {
	var acc uint64
	for _, w := range b {
		acc |= w
	}
	return acc == 0
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

// LSB returns the lowest set bit index, or -1 if b is empty.
func (b Bitboard) LSB() int {
	for i, w := range b {
		if w != 0 {
			return i<<6 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// PopLSB removes and returns the lowest set bit index.
func (b *Bitboard) PopLSB() int {
	for i, w := range b {
		if w != 0 {
			b[i] = w & (w - 1)
			return i<<6 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// ForEach calls f for each set bit in ascending order.
func (b Bitboard) ForEach(f func(int)) {
	for i, w := range b {
		for w != 0 {
			f(i<<6 + bits.TrailingZeros64(w))
			w &= w - 1
		}
	}
}

// Indices returns the set bit indices in ascending order.
func (b Bitboard) Indices() []int {
	out := make([]int, 0, b.PopCount())
	b.ForEach(func(i int) {
		out = append(out, i)
	})
	return out
}

// Format renders b as an N x N grid of '1' and '.' rows.
func (b Bitboard) Format(size int) string {
	var sb strings.Builder
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if b.Has(y*size + x) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
