package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hailam/reversi/internal/eval"
)

var ErrInvalidConfig = errors.New("invalid config")

// Strategy types understood by engine.Build.
const (
	TypeRandom        = "random"
	TypeGreedy        = "greedy"
	TypeUnselfish     = "unselfish"
	TypeSlowStarter   = "slowstarter"
	TypeTable         = "table"
	TypeMinMax        = "minmax"
	TypeAlphaBeta     = "alphabeta"
	TypeNegaScout     = "negascout"
	TypeIterative     = "iterative"
	TypeMCTS          = "mcts"
	TypeMonteCarlo    = "montecarlo"
	TypeSwitch        = "switch"
	TypeFullReading   = "fullreading"
	TypeRandomOpening = "randomopening"
	TypeJoseki        = "joseki"
	TypeExternal      = "external"
)

// Config is the configuration of the reversi tools.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Strategy  Strategy        `yaml:"strategy"`
	Players   []Player        `yaml:"players" validate:"dive"`
	Simulator SimulatorConfig `yaml:"simulator"`
	Storage   StorageConfig   `yaml:"storage"`
}

// LogConfig controls the global logger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error disabled"`
	Pretty bool   `yaml:"pretty"`
}

// Player is a named strategy taking part in simulations.
type Player struct {
	Name     string   `yaml:"name" validate:"required"`
	Strategy Strategy `yaml:"strategy"`
}

// SimulatorConfig controls round-robin matches between players.
type SimulatorConfig struct {
	Matches       int    `yaml:"matches" validate:"gte=1"`
	BoardSize     int    `yaml:"board_size" validate:"gte=4,lte=26,even"`
	RandomOpening int    `yaml:"random_opening" validate:"gte=0"`
	Parallel      int    `yaml:"parallel" validate:"gte=1"`
	Seed          uint64 `yaml:"seed"`
}

// StorageConfig locates the database. An empty Dir uses the per-user data
// directory.
type StorageConfig struct {
	Dir      string `yaml:"dir"`
	InMemory bool   `yaml:"in_memory"`
}

// Strategy describes a strategy tree. Which fields matter depends on Type;
// wrapper types hold their inner strategy in Base and switch stages in
// Stages.
type Strategy struct {
	Type string `yaml:"type" validate:"required,oneof=random greedy unselfish slowstarter table minmax alphabeta negascout iterative mcts montecarlo switch fullreading randomopening joseki external"`

	// searches
	Depth     int                `yaml:"depth" validate:"gte=0"`
	Limit     int                `yaml:"limit" validate:"gte=0"`
	Evaluator string             `yaml:"evaluator" validate:"omitempty,evaluator"`
	Weights   map[string]float64 `yaml:"weights"`
	Search    string             `yaml:"search" validate:"omitempty,oneof=alphabeta negascout"`
	Selector  *Selector          `yaml:"selector"`
	Orderer   []string           `yaml:"orderer" validate:"dive,oneof=best corner mobility opening"`

	// instrumentation
	Timer     *bool         `yaml:"timer"`
	Measure   *bool         `yaml:"measure"`
	TimeLimit time.Duration `yaml:"time_limit" validate:"gte=0"`

	// playouts
	Count   int     `yaml:"count" validate:"gte=0"`
	Excount int     `yaml:"excount" validate:"gte=0"`
	Remain  int     `yaml:"remain" validate:"gte=0"`
	Seed    *uint64 `yaml:"seed"`

	// composition
	Turns  []int      `yaml:"turns" validate:"dive,gte=0"`
	Stages []Strategy `yaml:"stages" validate:"dive"`
	Base   *Strategy  `yaml:"base"`
	Book   string     `yaml:"book"`

	// external
	Command string        `yaml:"command"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

// Selector configures move selection of iterative deepening.
type Selector struct {
	Type     string  `yaml:"type" validate:"oneof=all worst margin"`
	Depth    int     `yaml:"depth" validate:"gte=0"`
	Limit    int     `yaml:"limit" validate:"gte=0"`
	Base     float64 `yaml:"base" validate:"gte=0"`
	PerDepth float64 `yaml:"per_depth" validate:"gte=0"`
}

// DefaultStrategy is the strongest stock strategy: book moves, then
// NegaScout with iterative deepening, reading the last 10 moves perfectly.
func DefaultStrategy() Strategy {
	return Strategy{
		Type: TypeJoseki,
		Base: &Strategy{
			Type:   TypeFullReading,
			Remain: 10,
			Base: &Strategy{
				Type:      TypeIterative,
				Search:    TypeNegaScout,
				Depth:     2,
				Evaluator: "TPW",
				Orderer:   []string{"best"},
			},
		},
	}
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		Strategy: DefaultStrategy(),
		Players: []Player{
			{Name: "negascout", Strategy: Strategy{Type: TypeIterative, Search: TypeNegaScout, Depth: 2, Evaluator: "TPW", Orderer: []string{"best"}}},
			{Name: "alphabeta", Strategy: Strategy{Type: TypeIterative, Search: TypeAlphaBeta, Depth: 2, Evaluator: "TPW", Orderer: []string{"best"}}},
			{Name: "greedy", Strategy: Strategy{Type: TypeGreedy}},
			{Name: "table", Strategy: Strategy{Type: TypeTable}},
		},
		Simulator: SimulatorConfig{
			Matches:   10,
			BoardSize: 8,
			Parallel:  runtime.NumCPU(),
		},
	}
}

// Load reads the configuration at path over the defaults, applies
// environment overrides and validates the result. A missing file is not an
// error.
func Load(path string) (Config, error) {
	def := Default()
	cfg := def

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return cfg, fmt.Errorf("load config file: %w", err)
		default:
			// strategy trees and player lists replace the defaults as a whole
			cfg.Strategy = Strategy{}
			cfg.Players = nil
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
			}
			if cfg.Strategy.Type == "" {
				cfg.Strategy = def.Strategy
			}
			if len(cfg.Players) == 0 {
				cfg.Players = def.Players
			}
		}
	}

	loadFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("REVERSI_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("REVERSI_STORE_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv("REVERSI_PARALLEL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Simulator.Parallel = i
		}
	}
}

// Validate checks field constraints and the rules that span fields.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Strategy.check("strategy"); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Players))
	for i, p := range c.Players {
		if seen[p.Name] {
			return fmt.Errorf("%w: players[%d]: duplicate name %q", ErrInvalidConfig, i, p.Name)
		}
		seen[p.Name] = true
		if err := p.Strategy.check(fmt.Sprintf("players[%d].strategy", i)); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a strategy tree on its own.
func (s *Strategy) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return s.check("strategy")
}

// check walks the tree for the rules struct tags cannot express.
func (s *Strategy) check(path string) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, path, fmt.Sprintf(format, args...))
	}

	if _, err := eval.DefaultWeights().WithOverrides(s.Weights); err != nil {
		return fail("%v", err)
	}

	switch s.Type {
	case TypeMinMax, TypeAlphaBeta, TypeNegaScout:
		if s.Depth < 1 {
			return fail("%s needs depth >= 1", s.Type)
		}
	case TypeIterative:
		if s.Depth < 1 {
			return fail("iterative needs a starting depth >= 1")
		}
		if s.Limit > 0 && s.Limit < s.Depth {
			return fail("limit %d is below the starting depth %d", s.Limit, s.Depth)
		}
	case TypeSwitch:
		if len(s.Turns) != len(s.Stages) {
			return fail("%d turns but %d stages", len(s.Turns), len(s.Stages))
		}
		if len(s.Stages) == 0 {
			return fail("switch needs at least one stage")
		}
		for i := range s.Stages {
			if err := s.Stages[i].check(fmt.Sprintf("%s.stages[%d]", path, i)); err != nil {
				return err
			}
		}
	case TypeFullReading, TypeRandomOpening, TypeJoseki:
		if s.Base == nil {
			return fail("%s needs a base strategy", s.Type)
		}
		return s.Base.check(path + ".base")
	case TypeExternal:
		if strings.TrimSpace(s.Command) == "" {
			return fail("external needs a command")
		}
	}
	return nil
}
