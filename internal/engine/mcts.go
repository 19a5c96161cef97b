package engine

import (
	"math"
	"math/rand/v2"

	"github.com/hailam/reversi/internal/board"
)

// Playout values from the point of view of the node's color.
const (
	mctsWin  = 2
	mctsDraw = 1
	mctsLose = -2
)

// DefaultExpandCount is the number of playouts a leaf collects before it is
// expanded into children.
const DefaultExpandCount = 10

// MCTS is Monte-Carlo tree search with UCB1 selection.
type MCTS struct {
	Count   int // simulations per move
	Excount int // playouts before a leaf expands
	Options Options
	Rand    *rand.Rand

	measure *Measure
}

// NewMCTS creates a tree search running count simulations per move.
func NewMCTS(count int, opts Options, r *rand.Rand) *MCTS {
	return &MCTS{Count: count, Excount: DefaultExpandCount, Options: opts, Rand: r, measure: NewMeasure("mcts")}
}

func (s *MCTS) Name() string { return "mcts" }

// Measure returns the timing statistics of the strategy.
func (s *MCTS) Measure() *Measure { return s.measure }

// NextMove implements Strategy. It plays the most visited root child.
func (s *MCTS) NextMove(c board.Color, b *board.Board) board.Move {
	if !b.HasLegalMoves(c) {
		return board.NoMove
	}
	excount := s.Excount
	if excount <= 0 {
		excount = DefaultExpandCount
	}

	var root *mctsNode
	instrument(s.Options, s.measure, func(st *SearchState) {
		root = newMCTSNode(c, b.Snapshot(), board.NoMove, excount)
		root.expand()
		for i := 0; i < s.Count; i++ {
			if st.enter() {
				break
			}
			root.evaluate(s.Rand)
		}
	})
	return root.mostVisited()
}

type mctsNode struct {
	color    board.Color
	board    *board.Board
	move     board.Move // move that led here, NoMove for the root or a pass
	excount  int
	total    float64
	count    int
	children []*mctsNode
}

func newMCTSNode(c board.Color, b *board.Board, m board.Move, excount int) *mctsNode {
	return &mctsNode{color: c, board: b, move: m, excount: excount}
}

// expand creates one child per legal move, or a single pass child when
// only the opponent can move.
func (n *mctsNode) expand() {
	next := n.color.Other()
	moves := n.board.LegalMoves(n.color)
	n.children = make([]*mctsNode, 0, max(len(moves), 1))
	if len(moves) > 0 {
		for _, m := range moves {
			child := n.board.Snapshot()
			child.Play(n.color, m)
			n.children = append(n.children, newMCTSNode(next, child, m, n.excount))
		}
		return
	}
	if n.board.HasLegalMoves(next) {
		n.children = append(n.children, newMCTSNode(next, n.board.Snapshot(), board.NoMove, n.excount))
	}
}

// evaluate runs one simulation through n and returns its value from n's
// color point of view. Finished games score on the playout scale (win 2,
// draw 1, loss -2) rather than 1/0/-1, so a decided node and a rolled-out
// leaf are comparable.
func (n *mctsNode) evaluate(r *rand.Rand) float64 {
	var value float64
	leaf := false
	switch {
	case n.board.IsGameOver():
		value = outcome(n.board, n.color, mctsWin, mctsDraw, mctsLose)
	case len(n.children) == 0:
		value = n.playout(r)
		leaf = true
	default:
		value = -n.selectChild().evaluate(r)
	}
	n.total += value
	n.count++
	if leaf && n.count == n.excount {
		n.expand()
	}
	return value
}

// playout plays a random game from the node's position and undoes it.
func (n *mctsNode) playout(r *rand.Rand) float64 {
	c := n.color
	moves := n.board.LegalMoves(c)
	if len(moves) == 0 {
		c = c.Other()
		moves = n.board.LegalMoves(c)
	}
	n.board.Play(c, randomChoice(r, moves))
	winner := randomPlayout(r, c.Other(), n.board)
	n.board.Unplay()

	switch winner {
	case n.color:
		return mctsWin
	case n.color.Other():
		return mctsLose
	default:
		return mctsDraw
	}
}

// selectChild returns the first unvisited child, or else the child with the
// highest UCB1 value. Child values are from the opponent's point of view,
// hence the negated mean.
func (n *mctsNode) selectChild() *mctsNode {
	visits := 0
	for _, ch := range n.children {
		if ch.count == 0 {
			return ch
		}
		visits += ch.count
	}
	logVisits := math.Log(float64(visits))

	best := n.children[0]
	bestUCB := math.Inf(-1)
	for _, ch := range n.children {
		ucb := -ch.total/float64(ch.count) + math.Sqrt(2*logVisits/float64(ch.count))
		if ucb > bestUCB {
			best, bestUCB = ch, ucb
		}
	}
	return best
}

// mostVisited returns the move of the child visited most, the first one on
// ties.
func (n *mctsNode) mostVisited() board.Move {
	best := board.NoMove
	visits := -1
	for _, ch := range n.children {
		if ch.count > visits {
			best, visits = ch.move, ch.count
		}
	}
	return best
}
