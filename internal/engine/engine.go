package engine

import (
	"time"

	"github.com/hailam/reversi/internal/board"
	"github.com/hailam/reversi/internal/book"
	"github.com/hailam/reversi/internal/eval"
)

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // 1-2 ply, 200ms
	Medium                   // 2-4 ply, 500ms, book, reads the last 8
	Hard                     // unbounded depth, 2s, book, reads the last 12
)

// Settings configures the search of one difficulty level.
type Settings struct {
	Depth     int           // first depth of iterative deepening
	Limit     int           // last depth (0 = no limit)
	TimeLimit time.Duration // time for one move
	Remain    int           // empty cells at which to read to the end (0 = never)
	Book      bool          // play book moves
}

// DifficultySettings maps difficulty to search settings.
var DifficultySettings = map[Difficulty]Settings{
	Easy:   {Depth: 1, Limit: 2, TimeLimit: 200 * time.Millisecond},
	Medium: {Depth: 2, Limit: 4, TimeLimit: 500 * time.Millisecond, Remain: 8, Book: true},
	Hard:   {Depth: 2, TimeLimit: 2 * time.Second, Remain: 12, Book: true},
}

// DefaultTableSize is the number of positions the engine remembers.
const DefaultTableSize = 1 << 16

// Engine is the reversi AI: NegaScout with iterative deepening behind an
// opening book and an end game reader, sized by difficulty.
type Engine struct {
	search     *IterativeDeepening
	strategy   Strategy
	tt         *TranspositionTable
	book       *book.Book
	difficulty Difficulty

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine at Medium difficulty remembering up to
// tableSize positions.
func NewEngine(tableSize int) *Engine {
	e := &Engine{
		tt:   NewTranspositionTable(tableSize),
		book: book.Default(),
	}
	e.SetDifficulty(Medium)
	return e
}

// SetDifficulty rebuilds the strategy for difficulty d.
func (e *Engine) SetDifficulty(d Difficulty) {
	set, ok := DifficultySettings[d]
	if !ok {
		d, set = Medium, DifficultySettings[Medium]
	}
	e.difficulty = d

	opts := Options{EnableTimer: true, EnableMeasure: true, TimeLimit: set.TimeLimit}
	e.search = NewIterativeDeepening(set.Depth, nil, BestFirst{}, NewNegaScout(set.Depth, eval.MustNew("TPW"), opts), opts)
	e.search.Limit = set.Limit
	e.search.Table = e.tt
	e.search.OnInfo = func(info SearchInfo) {
		if e.OnInfo != nil {
			e.OnInfo(info)
		}
	}

	var s Strategy = e.search
	if set.Remain > 0 {
		s = NewFullReading(set.Remain, s, opts)
	}
	if set.Book {
		s = &Joseki{Book: e.book, Base: s}
	}
	e.strategy = s
}

// Difficulty returns the current difficulty.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// SetBook replaces the opening book.
func (e *Engine) SetBook(bk *book.Book) {
	e.book = bk
	e.SetDifficulty(e.difficulty)
}

// NextMove implements Strategy.
func (e *Engine) NextMove(c board.Color, b *board.Board) board.Move {
	e.tt.NewSearch()
	return e.strategy.NextMove(c, b)
}

// Stop stops the current search.
func (e *Engine) Stop() {
	e.search.Stop()
}

// Clear forgets all searched positions.
func (e *Engine) Clear() {
	e.tt.Clear()
}

// Measure returns the timing statistics of the main search.
func (e *Engine) Measure() *Measure {
	return e.search.Measure()
}

// Evaluate returns the static evaluation of b for c.
func (e *Engine) Evaluate(c board.Color, b *board.Board) float64 {
	return eval.MustNew("TPW").Evaluate(c, b, b.LegalMovesBits(board.Black), b.LegalMovesBits(board.White))
}

// Perft counts the leaves of the game tree depth plies below b with c to
// move (for debugging move generation). A pass is a ply; a finished game is
// a single leaf.
func Perft(b *board.Board, c board.Color, depth int) uint64 {
	return perft(b, c, depth, false)
}

func perft(b *board.Board, c board.Color, depth int, passed bool) uint64 {
	if depth == 0 {
		return 1
	}

	moves := b.LegalMoves(c)
	if len(moves) == 0 {
		if passed {
			return 1
		}
		return perft(b, c.Other(), depth-1, true)
	}
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		b.Play(c, m)
		nodes += perft(b, c.Other(), depth-1, false)
		b.Unplay()
	}
	return nodes
}
