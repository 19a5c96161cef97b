package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/hailam/reversi/internal/book"
	"github.com/hailam/reversi/internal/config"
	"github.com/hailam/reversi/internal/eval"
)

// Build turns a configured strategy tree into a Strategy.
func Build(spec config.Strategy) (Strategy, error) {
	r := newRand(spec.Seed)

	switch spec.Type {
	case config.TypeRandom:
		return &Random{Rand: r}, nil
	case config.TypeGreedy:
		return &Greedy{Rand: r}, nil
	case config.TypeUnselfish:
		return &Unselfish{Rand: r}, nil
	case config.TypeSlowStarter:
		return &SlowStarter{Rand: r}, nil
	case config.TypeTable:
		w, err := weights(spec)
		if err != nil {
			return nil, err
		}
		s := NewTableStrategy(w.TableParams())
		s.Rand = r
		return s, nil

	case config.TypeMinMax:
		e, err := evaluator(spec)
		if err != nil {
			return nil, err
		}
		s := NewMinMax(spec.Depth, e, options(spec))
		s.Rand = r
		return s, nil
	case config.TypeAlphaBeta, config.TypeNegaScout:
		return buildSearcher(spec.Type, spec)
	case config.TypeIterative:
		kind := spec.Search
		if kind == "" {
			kind = config.TypeNegaScout
		}
		search, err := buildSearcher(kind, spec)
		if err != nil {
			return nil, err
		}
		ord, err := buildOrderer(spec.Orderer)
		if err != nil {
			return nil, err
		}
		s := NewIterativeDeepening(spec.Depth, buildSelector(spec.Selector), ord, search, options(spec))
		s.Limit = spec.Limit
		return s, nil

	case config.TypeMCTS:
		s := NewMCTS(spec.Count, options(spec), r)
		if spec.Excount > 0 {
			s.Excount = spec.Excount
		}
		return s, nil
	case config.TypeMonteCarlo:
		return NewMonteCarlo(spec.Count, spec.Remain, options(spec), r), nil

	case config.TypeSwitch:
		stages := make([]Strategy, len(spec.Stages))
		for i, st := range spec.Stages {
			s, err := Build(st)
			if err != nil {
				return nil, fmt.Errorf("stage %d: %w", i, err)
			}
			stages[i] = s
		}
		s, err := NewSwitch(spec.Turns, stages)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.TypeFullReading, config.TypeRandomOpening, config.TypeJoseki:
		if spec.Base == nil {
			return nil, fmt.Errorf("%w: %s without a base strategy", ErrUnknownStrategy, spec.Type)
		}
		base, err := Build(*spec.Base)
		if err != nil {
			return nil, err
		}
		switch spec.Type {
		case config.TypeFullReading:
			return NewFullReading(spec.Remain, base, options(spec)), nil
		case config.TypeRandomOpening:
			return &RandomOpening{Depth: spec.Depth, Base: base, Rand: r}, nil
		}
		bk := book.Default()
		if spec.Book != "" {
			if bk, err = book.LoadFile(spec.Book); err != nil {
				return nil, err
			}
		}
		return &Joseki{Book: bk, Base: base, Rand: r}, nil

	case config.TypeExternal:
		return NewExternal(spec.Command, spec.Timeout), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, spec.Type)
}

// searchStrategy is a depth-limited search that can also play on its own.
type searchStrategy interface {
	Strategy
	Searcher
}

// buildSearcher builds the depth-limited search named kind.
func buildSearcher(kind string, spec config.Strategy) (searchStrategy, error) {
	e, err := evaluator(spec)
	if err != nil {
		return nil, err
	}
	switch kind {
	case config.TypeAlphaBeta:
		return NewAlphaBeta(spec.Depth, e, options(spec)), nil
	case config.TypeNegaScout:
		return NewNegaScout(spec.Depth, e, options(spec)), nil
	}
	return nil, fmt.Errorf("%w: search %q", ErrUnknownStrategy, kind)
}

func buildSelector(spec *config.Selector) Selector {
	if spec == nil {
		return KeepAll{}
	}
	switch spec.Type {
	case "worst":
		s := NewWorstSelector()
		if spec.Depth > 0 {
			s.Depth = spec.Depth
		}
		if spec.Limit > 0 {
			s.Limit = spec.Limit
		}
		return s
	case "margin":
		return &MarginSelector{Base: spec.Base, PerDepth: spec.PerDepth}
	}
	return KeepAll{}
}

func buildOrderer(names []string) (Orderer, error) {
	if len(names) == 0 {
		return KeepOrder{}, nil
	}
	chain := make(Chain, 0, len(names))
	for _, name := range names {
		switch name {
		case "best":
			chain = append(chain, BestFirst{})
		case "corner":
			chain = append(chain, CornerFirst{})
		case "mobility":
			chain = append(chain, MobilityOrderer{})
		case "opening":
			chain = append(chain, OpeningOrderer{})
		default:
			return nil, fmt.Errorf("%w: orderer %q", ErrUnknownStrategy, name)
		}
	}
	if len(chain) == 1 {
		return chain[0], nil
	}
	return chain, nil
}

func evaluator(spec config.Strategy) (eval.Evaluator, error) {
	name := spec.Evaluator
	if name == "" {
		name = "TPW"
	}
	w, err := eval.DefaultWeightsFor(name).WithOverrides(spec.Weights)
	if err != nil {
		return nil, err
	}
	e, err := eval.ByName(name, w)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func weights(spec config.Strategy) (eval.Weights, error) {
	return eval.DefaultWeights().WithOverrides(spec.Weights)
}

func options(spec config.Strategy) Options {
	opts := DefaultOptions()
	if spec.Timer != nil {
		opts.EnableTimer = *spec.Timer
	}
	if spec.Measure != nil {
		opts.EnableMeasure = *spec.Measure
	}
	if spec.TimeLimit > 0 {
		opts.TimeLimit = spec.TimeLimit
	}
	return opts
}

// newRand returns a seeded source, or nil for the global one.
func newRand(seed *uint64) *rand.Rand {
	if seed == nil {
		return nil
	}
	return rand.New(rand.NewPCG(*seed, *seed))
}
