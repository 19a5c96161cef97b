package engine

import (
	"errors"
	"math/rand/v2"

	"github.com/hailam/reversi/internal/board"
)

// Search bounds. They also stand in for the value of a search that ran out
// of time before it could produce one.
const (
	MinScore = -10000000
	MaxScore = 10000000
)

var (
	ErrSwitchSize      = errors.New("switch: turns and strategies differ in length")
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Strategy picks the next move for color c. The board is restored to its
// original state before NextMove returns. Strategies are only asked to move
// when c has a legal move; otherwise they return board.NoMove.
type Strategy interface {
	NextMove(c board.Color, b *board.Board) board.Move
}

// Scores maps each candidate move to its value at the last searched depth.
type Scores map[board.Move]float64

// Searcher is a depth-limited search that the iterative deepening driver can
// run one depth at a time.
type Searcher interface {
	BestMove(st *SearchState, c board.Color, b *board.Board, moves []board.Move, depth int) (board.Move, Scores)
	Name() string
}

// scoreFunc is the negamax recursion of a searcher.
type scoreFunc func(st *SearchState, c board.Color, b *board.Board, alpha, beta float64, depth int) float64

// bestMove searches each root move with alpha threaded across siblings.
// When the search runs out of time, the move being searched is kept only if
// no move had been chosen yet.
func bestMove(st *SearchState, c board.Color, b *board.Board, moves []board.Move, depth int, score scoreFunc) (board.Move, Scores) {
	best := board.NoMove
	alpha, beta := float64(MinScore), float64(MaxScore)
	scores := make(Scores, len(moves))

	for _, m := range moves {
		b.Play(c, m)
		v := -score(st, c.Other(), b, -beta, -alpha, depth-1)
		b.Unplay()

		scores[m] = v
		if st.TimedOut() {
			if best == board.NoMove {
				best = m
			}
			break
		}
		if v > alpha {
			alpha = v
			best = m
		}
	}
	return best, scores
}

// randomChoice picks one element of xs using r, or the global source when r
// is nil.
func randomChoice[T any](r *rand.Rand, xs []T) T {
	if r == nil {
		return xs[rand.IntN(len(xs))]
	}
	return xs[r.IntN(len(xs))]
}

// outcome maps the end of a game to a value from c's point of view.
func outcome(b *board.Board, c board.Color, win, draw, lose float64) float64 {
	switch b.Winner() {
	case c:
		return win
	case c.Other():
		return lose
	default:
		return draw
	}
}

// randomPlayout plays random moves for both sides, starting with c, until
// the game ends, then undoes them all and returns the winner.
func randomPlayout(r *rand.Rand, c board.Color, b *board.Board) board.Color {
	played := 0
	passes := 0
	for passes < 2 {
		moves := b.LegalMoves(c)
		if len(moves) == 0 {
			passes++
			c = c.Other()
			continue
		}
		passes = 0
		b.Play(c, randomChoice(r, moves))
		played++
		c = c.Other()
	}
	winner := b.Winner()
	for ; played > 0; played-- {
		b.Unplay()
	}
	return winner
}
