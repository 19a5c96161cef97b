// Command reversi-engine answers move requests on stdin: the color to move,
// the board size and the grid, one request after another. Each answer is
// written to stdout as "x y".
package main

import (
	"flag"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hailam/reversi/internal/config"
	"github.com/hailam/reversi/internal/engine"
	"github.com/hailam/reversi/internal/protocol"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	configPath = flag.String("config", "", "YAML config with the strategy to play")
	difficulty = flag.String("difficulty", "medium", "built-in engine strength: easy, medium or hard")
	timeLimit  = flag.Duration("time", 0, "time limit per move (overrides the config)")
	logLevel   = flag.String("log-level", "", "log level (overrides the config)")
)

var difficulties = map[string]engine.Difficulty{
	"easy":   engine.Easy,
	"medium": engine.Medium,
	"hard":   engine.Hard,
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		config.LogConfig{Level: "info"}.Setup()
		log.Fatal().Err(err).Msg("could not load config")
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	cfg.Log.Setup()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", profilePath).Msg("CPU profiling enabled")
	}

	strategy, err := newStrategy(cfg, *timeLimit)
	if err != nil {
		log.Fatal().Err(err).Msg("could not build strategy")
	}

	server := protocol.NewServer(strategy, os.Stdin, os.Stdout)
	if err := server.Run(); err != nil {
		log.Error().Err(err).Msg("protocol error")
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

// newStrategy builds the configured strategy when a config file was given,
// and the built-in engine otherwise.
func newStrategy(cfg config.Config, limit time.Duration) (engine.Strategy, error) {
	if *configPath != "" {
		spec := cfg.Strategy
		if limit > 0 {
			withTimeLimit(&spec, limit)
		}
		return engine.Build(spec)
	}

	d, ok := difficulties[*difficulty]
	if !ok {
		log.Warn().Str("difficulty", *difficulty).Msg("unknown difficulty, using medium")
		d = engine.Medium
	}
	if limit > 0 {
		set := engine.DifficultySettings[d]
		set.TimeLimit = limit
		engine.DifficultySettings[d] = set
	}
	eng := engine.NewEngine(engine.DefaultTableSize)
	eng.SetDifficulty(d)
	return eng, nil
}

// withTimeLimit sets the time limit of every node of the strategy tree.
func withTimeLimit(s *config.Strategy, limit time.Duration) {
	s.TimeLimit = limit
	if s.Base != nil {
		withTimeLimit(s.Base, limit)
	}
	for i := range s.Stages {
		withTimeLimit(&s.Stages[i], limit)
	}
}
