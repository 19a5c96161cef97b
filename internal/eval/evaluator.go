package eval

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hailam/reversi/internal/board"
)

var ErrUnknownEvaluator = errors.New("unknown evaluator")

// Evaluator values a position from the point of view of color c: positive
// favors c. movesBlack and movesWhite are the legal move masks of both sides,
// which the search has already computed.
type Evaluator interface {
	Evaluate(c board.Color, b *board.Board, movesBlack, movesWhite board.Bitboard) float64
}

// Composite sums its scorers, unless Override decides the position first.
// It owns its scorers by value; composites never share or nest cyclically.
// The built-in scorers keep no per-position state, so a Composite may be
// shared between goroutines.
type Composite struct {
	Name     string
	Override Decider
	Scorers  []Scorer
}

// Evaluate implements Evaluator.
func (e *Composite) Evaluate(c board.Color, b *board.Board, movesBlack, movesWhite board.Bitboard) float64 {
	return c.Sign() * e.Score(b, movesBlack, movesWhite)
}

// Score returns the value from black's point of view.
func (e *Composite) Score(b *board.Board, movesBlack, movesWhite board.Bitboard) float64 {
	if e.Override != nil {
		if v, ok := e.Override.Decide(b, movesBlack, movesWhite); ok {
			return v
		}
	}
	var score float64
	for _, s := range e.Scorers {
		score += s.Score(b, movesBlack, movesWhite)
	}
	return score
}

func (e *Composite) String() string {
	return e.Name
}

// Component letters used in evaluator names.
//
//	T table, P mobility, O openness, W win/lose, N disc count,
//	E edge stability, C corner stability
var builders = map[string]func(w Weights) *Composite{
	"T": func(w Weights) *Composite {
		return &Composite{Scorers: []Scorer{NewTable(board.DefaultSize, w.TableParams())}}
	},
	"P": func(w Weights) *Composite {
		return &Composite{Scorers: []Scorer{Mobility{W: w.WP}}}
	},
	"O": func(w Weights) *Composite {
		return &Composite{Scorers: []Scorer{Opening{W: w.WO}}}
	},
	"W": func(w Weights) *Composite {
		return &Composite{Override: WinLose{W: w.WW}}
	},
	"N": func(w Weights) *Composite {
		return &Composite{Scorers: []Scorer{Number{}}}
	},
	"E": func(w Weights) *Composite {
		return &Composite{Scorers: []Scorer{Edge{W: w.WE}}}
	},
	"C": func(w Weights) *Composite {
		return &Composite{Scorers: []Scorer{Corner{W: w.WC}}}
	},
	"TP": func(w Weights) *Composite {
		return &Composite{Scorers: []Scorer{
			NewTable(board.DefaultSize, w.TableParams()),
			Mobility{W: w.WP},
		}}
	},
	"TPO": func(w Weights) *Composite {
		return &Composite{Scorers: []Scorer{
			NewTable(board.DefaultSize, w.TableParams()),
			Mobility{W: w.WP},
			Opening{W: w.WO},
		}}
	},
	"NW": func(w Weights) *Composite {
		return &Composite{Override: WinLose{W: w.WW}, Scorers: []Scorer{Number{}}}
	},
	"PW": func(w Weights) *Composite {
		return &Composite{Override: WinLose{W: w.WW}, Scorers: []Scorer{Mobility{W: w.WP}}}
	},
	"TPW": func(w Weights) *Composite {
		return &Composite{Override: WinLose{W: w.WW}, Scorers: []Scorer{
			NewTable(board.DefaultSize, w.TableParams()),
			Mobility{W: w.WP},
		}}
	},
	"TPOW": func(w Weights) *Composite {
		return &Composite{Override: WinLose{W: w.WW}, Scorers: []Scorer{
			NewTable(board.DefaultSize, w.TableParams()),
			Mobility{W: w.WP},
			Opening{W: w.WO},
		}}
	},
	"TPWE": func(w Weights) *Composite {
		return &Composite{Override: WinLose{W: w.WW}, Scorers: []Scorer{
			NewTable(board.DefaultSize, w.TableParams()),
			Mobility{W: w.WP},
			Edge{W: w.WE},
		}}
	},
	"TPWEC": func(w Weights) *Composite {
		return &Composite{Override: WinLose{W: w.WW}, Scorers: []Scorer{
			NewTable(board.DefaultSize, w.TableParams()),
			Mobility{W: w.WP},
			Edge{W: w.WE},
			Corner{W: w.WC},
		}}
	},
	"PWE": func(w Weights) *Composite {
		return &Composite{Override: WinLose{W: w.WW}, Scorers: []Scorer{
			Mobility{W: w.WP},
			Edge{W: w.WE},
		}}
	},
}

// ByName builds a named evaluator with the given weights.
func ByName(name string, w Weights) (*Composite, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvaluator, name)
	}
	e := build(w)
	e.Name = name
	return e, nil
}

// New builds a named evaluator with its default weights.
func New(name string) (*Composite, error) {
	return ByName(name, DefaultWeightsFor(name))
}

// MustNew is New for names known at compile time.
func MustNew(name string) *Composite {
	e, err := New(name)
	if err != nil {
		panic(err)
	}
	return e
}

// Names lists the known evaluator names.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
