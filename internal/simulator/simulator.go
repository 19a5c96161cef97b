// Package simulator runs round-robin tournaments between strategies.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/reversi/internal/config"
	"github.com/hailam/reversi/internal/engine"
	"github.com/hailam/reversi/internal/storage"
)

var ErrPlayers = errors.New("simulator: need at least two players with distinct names")

// Factory builds a fresh strategy for one game. Strategies keep per-search
// state, so games running in parallel never share one.
type Factory func() (engine.Strategy, error)

// Player is a named entrant.
type Player struct {
	Name string
	New  Factory
}

// Simulator plays every player against every other, Matches games per
// pairing and color.
type Simulator struct {
	cfg     config.SimulatorConfig
	players []Player
	store   *storage.Storage
}

// New creates a simulator for players.
func New(cfg config.SimulatorConfig, players []Player) (*Simulator, error) {
	if len(players) < 2 {
		return nil, ErrPlayers
	}
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: %q twice", ErrPlayers, p.Name)
		}
		seen[p.Name] = true
	}
	if cfg.Parallel < 1 {
		cfg.Parallel = runtime.NumCPU()
	}
	if cfg.Matches < 1 {
		cfg.Matches = 1
	}
	return &Simulator{cfg: cfg, players: players}, nil
}

// FromConfig creates a simulator for the configured players.
func FromConfig(cfg config.Config) (*Simulator, error) {
	players := make([]Player, len(cfg.Players))
	for i, p := range cfg.Players {
		spec := p.Strategy
		if _, err := engine.Build(spec); err != nil {
			return nil, fmt.Errorf("player %q: %w", p.Name, err)
		}
		players[i] = Player{Name: p.Name, New: func() (engine.Strategy, error) { return engine.Build(spec) }}
	}
	return New(cfg.Simulator, players)
}

// WithStore makes Run persist its result.
func (s *Simulator) WithStore(store *storage.Storage) *Simulator {
	s.store = store
	return s
}

type task struct {
	black, white Player
	index        int
}

// Run plays all games. It stops at the first error or when ctx is done.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	var tasks []task
	for _, black := range s.players {
		for _, white := range s.players {
			if black.Name == white.Name {
				continue
			}
			for range s.cfg.Matches {
				tasks = append(tasks, task{black: black, white: white, index: len(tasks)})
			}
		}
	}

	seed := s.cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	res := &Result{
		ID:        uuid.New(),
		Started:   time.Now(),
		BoardSize: s.cfg.BoardSize,
		Matches:   s.cfg.Matches,
		Games:     make([]GameResult, len(tasks)),
	}
	for _, p := range s.players {
		res.Players = append(res.Players, p.Name)
	}

	log.Info().
		Str("run", res.ID.String()).
		Int("players", len(s.players)).
		Int("games", len(tasks)).
		Int("parallel", s.cfg.Parallel).
		Msg("simulation started")

	var done atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Parallel)
	for _, t := range tasks {
		g.Go(func() error {
			game, err := s.play(ctx, t, seed)
			if err != nil {
				return err
			}
			res.Games[t.index] = game

			n := done.Add(1)
			log.Debug().
				Str("black", t.black.Name).
				Str("white", t.white.Name).
				Int("black_discs", game.BlackDiscs).
				Int("white_discs", game.WhiteDiscs).
				Int64("done", n).
				Msg("game finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Duration = time.Since(res.Started)
	res.totalize()

	log.Info().
		Str("run", res.ID.String()).
		Dur("elapsed", res.Duration).
		Msg("simulation finished")

	if s.store != nil {
		if err := s.store.SaveRun(res.Record()); err != nil {
			return res, fmt.Errorf("save run: %w", err)
		}
	}
	return res, nil
}

func (s *Simulator) play(ctx context.Context, t task, seed uint64) (GameResult, error) {
	black, err := t.black.New()
	if err != nil {
		return GameResult{}, fmt.Errorf("player %q: %w", t.black.Name, err)
	}
	white, err := t.white.New()
	if err != nil {
		return GameResult{}, fmt.Errorf("player %q: %w", t.white.Name, err)
	}
	if s.cfg.RandomOpening > 0 {
		// one stream per game, so results do not depend on scheduling
		r := rand.New(rand.NewPCG(seed, uint64(t.index)))
		black = &engine.RandomOpening{Depth: s.cfg.RandomOpening, Base: black, Rand: r}
		white = &engine.RandomOpening{Depth: s.cfg.RandomOpening, Base: white, Rand: r}
	}

	game, err := Play(ctx, s.cfg.BoardSize, black, white)
	if err != nil {
		return GameResult{}, err
	}
	game.Black, game.White = t.black.Name, t.white.Name
	return game, nil
}
