package board

import (
	"errors"
	"fmt"
)

// Supported board sizes.
const (
	MinSize     = 4
	MaxSize     = 26
	DefaultSize = 8
)

var (
	ErrBoardSize     = errors.New("board size must be even and between 4 and 26")
	ErrIllegalMove   = errors.New("illegal move")
	ErrUndoUnderflow = errors.New("nothing to undo")
	ErrParse         = errors.New("parse error")
)

// geometry holds the size-dependent masks shared by all boards of one size.
type geometry struct {
	size       int
	full       Bitboard // every cell of the board
	horizontal Bitboard // columns 1..N-2
	vertical   Bitboard // rows 1..N-2
	diagonal   Bitboard // horizontal & vertical
	steps      int      // saturation steps of the legal move sweep
}

var geometries [MaxSize + 1]*geometry

func init() {
	for size := MinSize; size <= MaxSize; size += 2 {
		geometries[size] = newGeometry(size)
	}
}

func newGeometry(size int) *geometry {
	g := &geometry{size: size, steps: size - 3}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := y*size + x
			g.full = g.full.Set(i)
			innerX := x > 0 && x < size-1
			innerY := y > 0 && y < size-1
			if innerX {
				g.horizontal = g.horizontal.Set(i)
			}
			if innerY {
				g.vertical = g.vertical.Set(i)
			}
			if innerX && innerY {
				g.diagonal = g.diagonal.Set(i)
			}
		}
	}
	return g
}

// Board is a reversi position: two disjoint disc masks plus an undo stack.
type Board struct {
	size    int
	geo     *geometry
	discs   [2]Bitboard // indexed by Color
	count   [2]int
	history []undoEntry
}

// NewBoard creates a board of the given size with the four starting discs.
func NewBoard(size int) (*Board, error) {
	b, err := newEmptyBoard(size)
	if err != nil {
		return nil, err
	}
	c := size / 2
	b.discs[White] = CellBB((c-1)*size + c - 1).Set(c*size + c)
	b.discs[Black] = CellBB((c-1)*size + c).Set(c*size + c - 1)
	b.count = [2]int{2, 2}
	return b, nil
}

// MustNewBoard is NewBoard for sizes known to be valid.
func MustNewBoard(size int) *Board {
	b, err := NewBoard(size)
	if err != nil {
		panic(err)
	}
	return b
}

func newEmptyBoard(size int) (*Board, error) {
	if size < MinSize || size > MaxSize || size%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBoardSize, size)
	}
	return &Board{
		size:    size,
		geo:     geometries[size],
		history: make([]undoEntry, 0, size*size),
	}, nil
}

// NewBoardFromMasks creates a board holding exactly the given discs.
// The undo stack starts empty.
func NewBoardFromMasks(size int, black, white Bitboard) (*Board, error) {
	b, err := newEmptyBoard(size)
	if err != nil {
		return nil, err
	}
	if !black.And(white).IsZero() {
		return nil, fmt.Errorf("%w: black and white discs overlap", ErrParse)
	}
	if !black.Or(white).AndNot(b.geo.full).IsZero() {
		return nil, fmt.Errorf("%w: discs outside a %dx%d board", ErrParse, size, size)
	}
	b.discs[Black] = black
	b.discs[White] = white
	b.count = [2]int{black.PopCount(), white.PopCount()}
	return b, nil
}

// Size returns the board edge length.
func (b *Board) Size() int {
	return b.size
}

// Masks returns the black and white disc masks.
func (b *Board) Masks() (black, white Bitboard) {
	return b.discs[Black], b.discs[White]
}

// Discs returns the disc mask of one color.
func (b *Board) Discs(c Color) Bitboard {
	return b.discs[c]
}

// Full returns the mask of all cells of the board.
func (b *Board) Full() Bitboard {
	return b.geo.full
}

// Blanks returns the mask of empty cells.
func (b *Board) Blanks() Bitboard {
	return b.geo.full.AndNot(b.discs[Black].Or(b.discs[White]))
}

// Count returns the number of discs of one color.
func (b *Board) Count(c Color) int {
	return b.count[c]
}

// DiscCount returns the number of discs on the board.
func (b *Board) DiscCount() int {
	return b.count[Black] + b.count[White]
}

// Empties returns the number of empty cells.
func (b *Board) Empties() int {
	return b.size*b.size - b.DiscCount()
}

// Ply returns the number of placements on the undo stack.
func (b *Board) Ply() int {
	return len(b.history)
}

// InBounds returns true if (x, y) lies on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.size && y < b.size
}

// At returns the color of the disc at (x, y), or NoColor if the cell is empty.
func (b *Board) At(x, y int) Color {
	i := y*b.size + x
	switch {
	case b.discs[Black].Has(i):
		return Black
	case b.discs[White].Has(i):
		return White
	default:
		return NoColor
	}
}

// LegalMovesBits returns the mask of cells where c can play, computed with a
// parallel shift sweep over the whole board.
func (b *Board) LegalMovesBits(c Color) Bitboard {
	g := b.geo
	player, opp := b.discs[c], b.discs[c.Other()]
	blank := b.Blanks()

	h := opp.And(g.horizontal)
	v := opp.And(g.vertical)
	d := opp.And(g.diagonal)
	n := uint(b.size)

	var legal Bitboard
	for _, dir := range [...]struct {
		mask  Bitboard
		shift uint
	}{
		{h, 1}, {v, n}, {d, n + 1}, {d, n - 1},
	} {
		legal = legal.Or(sweepUp(player, dir.mask, blank, dir.shift, g.steps))
		legal = legal.Or(sweepDown(player, dir.mask, blank, dir.shift, g.steps))
	}
	return legal
}

func sweepUp(player, mask, blank Bitboard, s uint, steps int) Bitboard {
	tmp := mask.And(player.Shl(s))
	for i := 0; i < steps; i++ {
		tmp = tmp.Or(mask.And(tmp.Shl(s)))
	}
	return blank.And(tmp.Shl(s))
}

func sweepDown(player, mask, blank Bitboard, s uint, steps int) Bitboard {
	tmp := mask.And(player.Shr(s))
	for i := 0; i < steps; i++ {
		tmp = tmp.Or(mask.And(tmp.Shr(s)))
	}
	return blank.And(tmp.Shr(s))
}

// LegalMoves returns the moves available to c in row-major order from the
// top-left corner.
func (b *Board) LegalMoves(c Color) []Move {
	return MovesFromBits(b.LegalMovesBits(c), b.size)
}

// LegalMoveFlips maps each legal move of c to the discs it would flip.
func (b *Board) LegalMoveFlips(c Color) map[Move]Bitboard {
	out := make(map[Move]Bitboard)
	b.LegalMovesBits(c).ForEach(func(i int) {
		m := MoveFromIndex(i, b.size)
		out[m] = b.Flips(c, m.X, m.Y)
	})
	return out
}

// HasLegalMoves returns true if c has at least one move.
func (b *Board) HasLegalMoves(c Color) bool {
	return !b.LegalMovesBits(c).IsZero()
}

// IsGameOver returns true when neither color can move.
func (b *Board) IsGameOver() bool {
	return !b.HasLegalMoves(Black) && !b.HasLegalMoves(White)
}

// Winner returns the color with more discs, or NoColor on a draw.
func (b *Board) Winner() Color {
	switch {
	case b.count[Black] > b.count[White]:
		return Black
	case b.count[White] > b.count[Black]:
		return White
	default:
		return NoColor
	}
}

var rays = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Flips returns the opponent discs c would capture by playing (x, y).
// It is empty if the cell is occupied, off the board, or captures nothing.
func (b *Board) Flips(c Color, x, y int) Bitboard {
	var flips Bitboard
	if !b.InBounds(x, y) {
		return flips
	}
	size := b.size
	player, opp := b.discs[c], b.discs[c.Other()]
	if player.Or(opp).Has(y*size + x) {
		return flips
	}
	for _, r := range rays {
		var run Bitboard
		cx, cy := x+r[0], y+r[1]
		for b.InBounds(cx, cy) && opp.Has(cy*size+cx) {
			run = run.Set(cy*size + cx)
			cx += r[0]
			cy += r[1]
		}
		if !run.IsZero() && b.InBounds(cx, cy) && player.Has(cy*size+cx) {
			flips = flips.Or(run)
		}
	}
	return flips
}

// Place puts a disc of color c at (x, y), flips the captured discs and
// records an undo entry. It returns the flipped discs.
func (b *Board) Place(c Color, x, y int) (Bitboard, error) {
	if c != Black && c != White {
		return Empty, fmt.Errorf("%w: no color to move", ErrIllegalMove)
	}
	flips := b.Flips(c, x, y)
	if flips.IsZero() {
		return Empty, fmt.Errorf("%w: %s cannot play (%d, %d)", ErrIllegalMove, c, x, y)
	}
	b.apply(c, Move{X: x, Y: y}, flips)
	return flips, nil
}

// Play is the unchecked placement used inside search. The move must come
// from LegalMoves; anything else is a bookkeeping bug and panics.
func (b *Board) Play(c Color, m Move) Bitboard {
	flips := b.Flips(c, m.X, m.Y)
	if flips.IsZero() {
		panic(fmt.Sprintf("board: %s cannot play %s", c, m))
	}
	b.apply(c, m, flips)
	return flips
}

func (b *Board) apply(c Color, m Move, flips Bitboard) {
	b.history = append(b.history, undoEntry{
		discs: b.discs,
		count: b.count,
		flips: flips,
		move:  m,
		color: c,
	})
	n := flips.PopCount()
	b.discs[c] = b.discs[c].Or(flips).Set(m.Index(b.size))
	b.discs[c.Other()] = b.discs[c.Other()].Xor(flips)
	b.count[c] += n + 1
	b.count[c.Other()] -= n
}

// Undo takes back the most recent placement.
func (b *Board) Undo() error {
	n := len(b.history)
	if n == 0 {
		return ErrUndoUnderflow
	}
	e := b.history[n-1]
	b.history = b.history[:n-1]
	b.discs = e.discs
	b.count = e.count
	return nil
}

// Unplay is Undo for search code, where an empty stack is a bug.
func (b *Board) Unplay() {
	if err := b.Undo(); err != nil {
		panic(err)
	}
}

// LastFlips returns the discs flipped by the most recent placement.
func (b *Board) LastFlips() Bitboard {
	if len(b.history) == 0 {
		return Empty
	}
	return b.history[len(b.history)-1].flips
}

// LastMove returns the most recent placement and its color.
func (b *Board) LastMove() (Move, Color) {
	if len(b.history) == 0 {
		return NoMove, NoColor
	}
	e := b.history[len(b.history)-1]
	return e.move, e.color
}

// Copy returns an independent deep copy of the board, undo stack included.
func (b *Board) Copy() *Board {
	nb := &Board{
		size:    b.size,
		geo:     b.geo,
		discs:   b.discs,
		count:   b.count,
		history: make([]undoEntry, len(b.history), cap(b.history)),
	}
	copy(nb.history, b.history)
	return nb
}

// Snapshot returns a copy holding only the current discs, with an empty
// undo stack.
func (b *Board) Snapshot() *Board {
	return &Board{
		size:    b.size,
		geo:     b.geo,
		discs:   b.discs,
		count:   b.count,
		history: make([]undoEntry, 0, b.Empties()),
	}
}

// Equal returns true if both boards hold the same discs.
func (b *Board) Equal(o *Board) bool {
	return b.size == o.size && b.discs == o.discs
}
