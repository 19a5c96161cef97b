package engine

import (
	"github.com/hailam/reversi/internal/board"
	"github.com/hailam/reversi/internal/eval"
)

// Orderer re-ranks the candidate moves before each depth of iterative
// deepening. best is the best move of the previous depth, or board.NoMove.
// Orderers return a new slice and leave moves untouched.
type Orderer interface {
	Order(c board.Color, b *board.Board, moves []board.Move, best board.Move) []board.Move
}

// KeepOrder leaves the moves as they are.
type KeepOrder struct{}

func (KeepOrder) Order(_ board.Color, _ *board.Board, moves []board.Move, _ board.Move) []board.Move {
	return append([]board.Move(nil), moves...)
}

// BestFirst moves the previous best move to the front.
type BestFirst struct{}

func (BestFirst) Order(_ board.Color, _ *board.Board, moves []board.Move, best board.Move) []board.Move {
	out := append([]board.Move(nil), moves...)
	toFront(out, best)
	return out
}

// CornerFirst moves the corners to the front.
type CornerFirst struct{}

func (CornerFirst) Order(_ board.Color, b *board.Board, moves []board.Move, _ board.Move) []board.Move {
	out := append([]board.Move(nil), moves...)
	n := b.Size() - 1
	for _, corner := range [...]board.Move{{X: 0, Y: 0}, {X: 0, Y: n}, {X: n, Y: 0}, {X: n, Y: n}} {
		toFront(out, corner)
	}
	return out
}

// MobilityOrderer tries first the moves that leave the opponent the fewest
// replies.
type MobilityOrderer struct{}

func (MobilityOrderer) Order(c board.Color, b *board.Board, moves []board.Move, _ board.Move) []board.Move {
	out := append([]board.Move(nil), moves...)
	keys := make([]int, len(out))
	for i, m := range out {
		b.Play(c, m)
		keys[i] = b.LegalMovesBits(c.Other()).PopCount()
		b.Unplay()
	}
	SortMoves(out, keys)
	return out
}

// OpeningOrderer tries first the moves whose flipped discs touch the fewest
// empty cells.
type OpeningOrderer struct{}

func (OpeningOrderer) Order(c board.Color, b *board.Board, moves []board.Move, _ board.Move) []board.Move {
	out := append([]board.Move(nil), moves...)
	keys := make([]int, len(out))
	for i, m := range out {
		flips := b.Play(c, m)
		keys[i] = eval.Openness(b, flips)
		b.Unplay()
	}
	SortMoves(out, keys)
	return out
}

// Chain applies its orderers in turn, so the last one has the final say on
// what comes first.
type Chain []Orderer

func (ch Chain) Order(c board.Color, b *board.Board, moves []board.Move, best board.Move) []board.Move {
	out := append([]board.Move(nil), moves...)
	for _, o := range ch {
		out = o.Order(c, b, out, best)
	}
	return out
}

// toFront moves m to the front of moves if it is present.
func toFront(moves []board.Move, m board.Move) {
	for i, x := range moves {
		if x == m {
			copy(moves[1:i+1], moves[:i])
			moves[0] = m
			return
		}
	}
}

// SortMoves sorts moves by their keys (ascending), keeping equal keys in
// their original order.
func SortMoves(moves []board.Move, keys []int) {
	// Insertion sort (sufficient for the few dozen moves of a position)
	for i := 1; i < len(moves); i++ {
		m, k := moves[i], keys[i]
		j := i - 1
		for ; j >= 0 && keys[j] > k; j-- {
			moves[j+1], keys[j+1] = moves[j], keys[j]
		}
		moves[j+1], keys[j+1] = m, k
	}
}
