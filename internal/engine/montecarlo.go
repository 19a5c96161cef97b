package engine

import (
	"math/rand/v2"

	"github.com/hailam/reversi/internal/board"
)

// MonteCarlo scores each move by the results of random games played after
// it: 1 for a win, 0.5 for a draw, -1 for a loss. While more than Remain
// cells are empty the playouts are skipped and every move scores zero.
type MonteCarlo struct {
	Count   int // playouts per move
	Remain  int
	Options Options
	Rand    *rand.Rand

	measure *Measure
}

// NewMonteCarlo creates a flat Monte-Carlo strategy.
func NewMonteCarlo(count, remain int, opts Options, r *rand.Rand) *MonteCarlo {
	return &MonteCarlo{Count: count, Remain: remain, Options: opts, Rand: r, measure: NewMeasure("montecarlo")}
}

func (s *MonteCarlo) Name() string { return "montecarlo" }

// Measure returns the timing statistics of the strategy.
func (s *MonteCarlo) Measure() *Measure { return s.measure }

// NextMove implements Strategy.
func (s *MonteCarlo) NextMove(c board.Color, b *board.Board) board.Move {
	moves := b.LegalMoves(c)
	if len(moves) == 0 {
		return board.NoMove
	}
	scores := make([]float64, len(moves))
	instrument(s.Options, s.measure, func(st *SearchState) {
	playouts:
		for n := 0; n < s.Count; n++ {
			for i, m := range moves {
				if st.enter() {
					break playouts
				}
				scores[i] += s.playout(c, b, m)
			}
		}
	})

	var picks []board.Move
	var best float64
	for i, v := range scores {
		switch {
		case i == 0 || v > best:
			best = v
			picks = append(picks[:0], moves[i])
		case v == best:
			picks = append(picks, moves[i])
		}
	}
	return randomChoice(s.Rand, picks)
}

func (s *MonteCarlo) playout(c board.Color, b *board.Board, m board.Move) float64 {
	if b.Empties() > s.Remain {
		return 0
	}
	b.Play(c, m)
	winner := randomPlayout(s.Rand, c.Other(), b)
	b.Unplay()

	switch winner {
	case c:
		return 1
	case c.Other():
		return -1
	default:
		return 0.5
	}
}
