package book

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sort"

	"github.com/hailam/reversi/internal/board"
)

var ErrBadLine = errors.New("book: bad line")

// Lines are the named openings of the default book, black moving first on
// the standard 8x8 board.
var Lines = map[string]string{
	"tiger":   "f5 d6 c3 d3 c4",
	"rabbit":  "f5 f6 e6 f4 e3",
	"buffalo": "f5 f6 e6 f4 c3",
}

// BookEntry represents a single book entry.
type BookEntry struct {
	Move   board.Move `json:"move"`
	Weight uint16     `json:"weight"`
}

// Book maps positions, keyed by board.HashFor of the side to move, to the
// moves to play there.
type Book struct {
	entries map[uint64][]BookEntry
}

// New creates an empty book.
func New() *Book {
	return &Book{
		entries: make(map[uint64][]BookEntry),
	}
}

// Default returns a book holding Lines in all four orientations of the
// starting position.
func Default() *Book {
	bk := New()
	names := make([]string, 0, len(Lines))
	for name := range Lines {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		moves, err := board.ParseMoves(Lines[name])
		if err != nil {
			panic(err)
		}
		if err := bk.AddLine(board.DefaultSize, moves, 1); err != nil {
			panic(fmt.Sprintf("book line %s: %v", name, err))
		}
	}
	return bk
}

// Add stores a move for the position with the given key. Adding a move that
// is already there raises its weight instead.
func (bk *Book) Add(key uint64, e BookEntry) {
	for i, old := range bk.entries[key] {
		if old.Move == e.Move {
			bk.entries[key][i].Weight += e.Weight
			return
		}
	}
	bk.entries[key] = append(bk.entries[key], e)
}

// Set replaces all moves stored for key.
func (bk *Book) Set(key uint64, entries []BookEntry) {
	bk.entries[key] = append([]BookEntry(nil), entries...)
}

// AddLine plays moves from the starting position of a size x size board,
// black first and passing when needed, and stores every move of the line.
// The line is added once per symmetry of the starting position.
func (bk *Book) AddLine(size int, moves []board.Move, weight uint16) error {
	for _, sym := range symmetries {
		b, err := board.NewBoard(size)
		if err != nil {
			return err
		}
		c := board.Black
		for i, m := range moves {
			m = sym(m, size)
			if !b.HasLegalMoves(c) {
				c = c.Other()
			}
			key := b.HashFor(c)
			if _, err := b.Place(c, m.X, m.Y); err != nil {
				return fmt.Errorf("%w: move %d (%s): %v", ErrBadLine, i+1, m, err)
			}
			bk.Add(key, BookEntry{Move: m, Weight: weight})
			c = c.Other()
		}
	}
	return nil
}

// symmetries map a move onto the four orientations that leave the starting
// position unchanged.
var symmetries = [...]func(m board.Move, size int) board.Move{
	func(m board.Move, _ int) board.Move { return m },
	func(m board.Move, _ int) board.Move { return board.NewMove(m.Y, m.X) },
	func(m board.Move, n int) board.Move { return board.NewMove(n-1-m.Y, n-1-m.X) },
	func(m board.Move, n int) board.Move { return board.NewMove(n-1-m.X, n-1-m.Y) },
}

// Load reads a book written by WriteTo.
//
// Entry format:
// 8 bytes: position key (big-endian)
// 2 bytes: move, x in the low byte and y in the high byte (big-endian)
// 2 bytes: weight (big-endian)
// 4 bytes: reserved
func Load(r io.Reader) (*Book, error) {
	book := New()
	var entry [16]byte

	for {
		_, err := io.ReadFull(r, entry[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		key := binary.BigEndian.Uint64(entry[0:8])
		moveData := binary.BigEndian.Uint16(entry[8:10])
		weight := binary.BigEndian.Uint16(entry[10:12])

		move := board.NewMove(int(moveData&0xFF), int(moveData>>8))
		book.Add(key, BookEntry{Move: move, Weight: weight})
	}

	return book, nil
}

// LoadFile loads a book from a file.
func LoadFile(filename string) (*Book, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Load(file)
}

// WriteTo writes the book in the format Load reads, keys in ascending order.
func (bk *Book) WriteTo(w io.Writer) (int64, error) {
	var n int64
	var entry [16]byte
	for _, key := range bk.Keys() {
		for _, e := range bk.entries[key] {
			binary.BigEndian.PutUint64(entry[0:8], key)
			binary.BigEndian.PutUint16(entry[8:10], uint16(e.Move.X)|uint16(e.Move.Y)<<8)
			binary.BigEndian.PutUint16(entry[10:12], e.Weight)
			k, err := w.Write(entry[:])
			n += int64(k)
			if err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// Probe looks up a position in the book and returns a move using weighted
// random selection. Only moves legal on b are returned.
func (bk *Book) Probe(b *board.Board, c board.Color, r *rand.Rand) (board.Move, bool) {
	entries := bk.ProbeAll(b, c)
	if len(entries) == 0 {
		return board.NoMove, false
	}

	totalWeight := uint32(0)
	for _, e := range entries {
		totalWeight += uint32(e.Weight)
	}
	if totalWeight == 0 {
		// All weights are 0, just pick the first
		return entries[0].Move, true
	}

	var pick uint32
	if r != nil {
		pick = r.Uint32N(totalWeight)
	} else {
		pick = rand.Uint32N(totalWeight)
	}
	cumulative := uint32(0)
	for _, e := range entries {
		cumulative += uint32(e.Weight)
		if pick < cumulative {
			return e.Move, true
		}
	}
	return entries[0].Move, true
}

// ProbeAll returns the legal book moves for c on b, sorted by weight.
func (bk *Book) ProbeAll(b *board.Board, c board.Color) []BookEntry {
	if bk == nil {
		return nil
	}
	entries := bk.entries[b.HashFor(c)]

	result := make([]BookEntry, 0, len(entries))
	for _, e := range entries {
		if !b.Flips(c, e.Move.X, e.Move.Y).IsZero() {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Weight > result[j].Weight
	})
	return result
}

// Entries returns the moves stored for key.
func (bk *Book) Entries(key uint64) []BookEntry {
	return bk.entries[key]
}

// Keys returns the position keys in ascending order.
func (bk *Book) Keys() []uint64 {
	keys := make([]uint64, 0, len(bk.entries))
	for k := range bk.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Size returns the number of positions in the book.
func (bk *Book) Size() int {
	return len(bk.entries)
}
