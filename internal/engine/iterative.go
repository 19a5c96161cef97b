package engine

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hailam/reversi/internal/board"
)

// SearchInfo describes one completed depth of iterative deepening.
type SearchInfo struct {
	Depth int
	Best  board.Move
	Score float64
	Nodes uint64
	Time  time.Duration
}

// IterativeDeepening runs its search at increasing depths until the time
// limit or Limit is hit, and plays the best move of the last depth that
// finished.
type IterativeDeepening struct {
	Depth    int // first depth searched
	Limit    int // last depth searched, 0 for no limit
	Selector Selector
	Orderer  Orderer
	Search   Searcher
	Options  Options

	// Table, when set, seeds the move ordering with the best move found
	// the last time the position was searched, and records the result.
	Table *TranspositionTable

	// MaxDepth is the depth the last NextMove reached.
	MaxDepth int

	// OnInfo, when set, is called after each completed depth.
	OnInfo func(SearchInfo)

	stopFlag atomic.Bool
	measure  *Measure
}

// NewIterativeDeepening creates a driver for search starting at depth.
func NewIterativeDeepening(depth int, sel Selector, ord Orderer, search Searcher, opts Options) *IterativeDeepening {
	if sel == nil {
		sel = KeepAll{}
	}
	if ord == nil {
		ord = KeepOrder{}
	}
	return &IterativeDeepening{
		Depth:    depth,
		Selector: sel,
		Orderer:  ord,
		Search:   search,
		Options:  opts,
		measure:  NewMeasure("iterative/" + search.Name()),
	}
}

func (s *IterativeDeepening) Name() string { return "iterative" }

// Measure returns the timing statistics of the strategy.
func (s *IterativeDeepening) Measure() *Measure { return s.measure }

// Stop makes a running NextMove return after the current node.
func (s *IterativeDeepening) Stop() {
	s.stopFlag.Store(true)
}

// NextMove implements Strategy.
func (s *IterativeDeepening) NextMove(c board.Color, b *board.Board) board.Move {
	moves := b.LegalMoves(c)
	if len(moves) == 0 {
		return board.NoMove
	}
	s.stopFlag.Store(false)

	best := board.NoMove
	st := NewSearchState(s.Options).WithStop(&s.stopFlag)
	start := time.Now()

	hint := board.NoMove
	if s.Table != nil {
		if e, ok := s.Table.Probe(b.HashFor(c)); ok && board.ContainsMove(moves, e.Best) {
			hint = e.Best
		}
	}

	var scores Scores
	completed := false
	done := 0
	depth := max(s.Depth, 1)
	for {
		first := best
		if first == board.NoMove {
			first = hint
		}
		moves = s.Selector.Select(c, b, moves, scores, depth)
		moves = s.Orderer.Order(c, b, moves, first)
		move, sc := s.Search.BestMove(st, c, b, moves, depth)

		if st.TimedOut() {
			// a depth cut short only counts when no depth finished at all
			if !completed {
				best = move
			}
			break
		}
		best, scores, completed, done = move, sc, true, depth

		if s.OnInfo != nil {
			s.OnInfo(SearchInfo{Depth: depth, Best: best, Score: scores[best], Nodes: st.Nodes(), Time: time.Since(start)})
		}
		log.Debug().
			Int("depth", depth).
			Str("best", best.String()).
			Float64("score", scores[best]).
			Uint64("nodes", st.Nodes()).
			Msg("depth completed")

		if s.Limit > 0 && depth >= s.Limit {
			break
		}
		// nothing deeper left to read
		if depth >= b.Empties() {
			break
		}
		depth++
	}
	s.MaxDepth = depth

	if s.Table != nil && completed {
		s.Table.Store(b.HashFor(c), done, scores[best], best)
	}
	if s.Options.EnableMeasure {
		s.measure.Record(st.Elapsed(), st)
	}
	return best
}
