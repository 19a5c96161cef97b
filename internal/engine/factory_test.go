package engine

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/reversi/internal/board"
	"github.com/hailam/reversi/internal/config"
)

func TestBuild(t *testing.T) {
	base := &config.Strategy{Type: config.TypeGreedy}
	tests := []struct {
		spec config.Strategy
		want Strategy
	}{
		{config.Strategy{Type: config.TypeRandom}, &Random{}},
		{config.Strategy{Type: config.TypeGreedy}, &Greedy{}},
		{config.Strategy{Type: config.TypeUnselfish}, &Unselfish{}},
		{config.Strategy{Type: config.TypeSlowStarter}, &SlowStarter{}},
		{config.Strategy{Type: config.TypeTable}, &TableStrategy{}},
		{config.Strategy{Type: config.TypeMinMax, Depth: 2}, &MinMax{}},
		{config.Strategy{Type: config.TypeAlphaBeta, Depth: 2}, &AlphaBeta{}},
		{config.Strategy{Type: config.TypeNegaScout, Depth: 2, Evaluator: "TPWE"}, &NegaScout{}},
		{config.Strategy{Type: config.TypeIterative, Depth: 2}, &IterativeDeepening{}},
		{config.Strategy{Type: config.TypeMCTS, Count: 10}, &MCTS{}},
		{config.Strategy{Type: config.TypeMonteCarlo, Count: 10, Remain: 8}, &MonteCarlo{}},
		{config.Strategy{Type: config.TypeSwitch, Turns: []int{10}, Stages: []config.Strategy{*base}}, &Switch{}},
		{config.Strategy{Type: config.TypeFullReading, Remain: 8, Base: base}, &FullReading{}},
		{config.Strategy{Type: config.TypeRandomOpening, Depth: 4, Base: base}, &RandomOpening{}},
		{config.Strategy{Type: config.TypeJoseki, Base: base}, &Joseki{}},
		{config.Strategy{Type: config.TypeExternal, Command: "echo 2 3"}, &External{}},
	}
	for _, tc := range tests {
		t.Run(tc.spec.Type, func(t *testing.T) {
			s, err := Build(tc.spec)
			require.NoError(t, err)
			assert.IsType(t, tc.want, s)
		})
	}
}

func TestBuildDefault(t *testing.T) {
	s, err := Build(config.DefaultStrategy())
	require.NoError(t, err)

	b := afterD3(t)
	m := s.NextMove(board.White, b)
	assert.True(t, board.ContainsMove(b.LegalMoves(board.White), m))
}

func TestBuildIterative(t *testing.T) {
	timer := false
	s, err := Build(config.Strategy{
		Type:      config.TypeIterative,
		Search:    config.TypeAlphaBeta,
		Depth:     2,
		Limit:     6,
		Evaluator: "TPOW",
		Weights:   map[string]float64{"wp": 7},
		Timer:     &timer,
		TimeLimit: time.Second,
		Selector:  &config.Selector{Type: "worst", Limit: 4},
		Orderer:   []string{"corner", "best"},
	})
	require.NoError(t, err)

	id := s.(*IterativeDeepening)
	assert.Equal(t, 2, id.Depth)
	assert.Equal(t, 6, id.Limit)
	assert.Equal(t, &WorstSelector{Depth: 3, Limit: 4}, id.Selector)
	assert.Equal(t, Chain{CornerFirst{}, BestFirst{}}, id.Orderer)
	assert.False(t, id.Options.EnableTimer)
	assert.Equal(t, time.Second, id.Options.TimeLimit)

	ab := id.Search.(*AlphaBeta)
	assert.Equal(t, 2, ab.Depth)
	assert.NotNil(t, ab.Evaluator)
}

func TestBuildSeeded(t *testing.T) {
	seed := uint64(99)
	spec := config.Strategy{Type: config.TypeRandom, Seed: &seed}

	play := func() []board.Move {
		s, err := Build(spec)
		require.NoError(t, err)
		b := board.MustNewBoard(8)
		var moves []board.Move
		c := board.Black
		for range 10 {
			m := s.NextMove(c, b)
			if m == board.NoMove {
				c = c.Other()
				continue
			}
			b.Play(c, m)
			moves = append(moves, m)
			c = c.Other()
		}
		return moves
	}
	assert.Equal(t, play(), play())
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		spec config.Strategy
	}{
		{"unknown type", config.Strategy{Type: "chess"}},
		{"unknown search", config.Strategy{Type: config.TypeIterative, Depth: 1, Search: "dfs"}},
		{"unknown orderer", config.Strategy{Type: config.TypeIterative, Depth: 1, Orderer: []string{"random"}}},
		{"wrapper without base", config.Strategy{Type: config.TypeJoseki}},
		{"bad stage", config.Strategy{Type: config.TypeSwitch, Turns: []int{1}, Stages: []config.Strategy{{Type: "chess"}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(tc.spec)
			assert.ErrorIs(t, err, ErrUnknownStrategy)
		})
	}

	_, err := Build(config.Strategy{Type: config.TypeSwitch, Turns: []int{1, 2}, Stages: []config.Strategy{{Type: config.TypeGreedy}}})
	assert.ErrorIs(t, err, ErrSwitchSize)

	_, err = Build(config.Strategy{Type: config.TypeJoseki, Base: &config.Strategy{Type: config.TypeGreedy}, Book: filepath.Join(t.TempDir(), "missing.bin")})
	assert.Error(t, err)
}
