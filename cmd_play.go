package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hailam/reversi/internal/board"
	"github.com/hailam/reversi/internal/engine"
	"github.com/hailam/reversi/internal/protocol"
)

func runMove(cmd *cobra.Command, args []string) error {
	strategy, err := engine.Build(cfg.Strategy)
	if err != nil {
		return err
	}
	if moveStoredBook {
		if j, ok := strategy.(*engine.Joseki); ok {
			bk, err := storedBook()
			if err != nil {
				return err
			}
			if bk.Size() > 0 {
				j.Book = bk
			}
		}
	}
	log.Debug().Str("strategy", cfg.Strategy.Type).Msg("strategy ready")

	server := protocol.NewServer(strategy, cmd.InOrStdin(), cmd.OutOrStdout())
	if moveLoop {
		return server.Run()
	}
	return server.ServeOne()
}

func runPerft(cmd *cobra.Command, args []string) error {
	b, err := board.NewBoard(perftSize)
	if err != nil {
		return err
	}
	if perftDepth < 0 {
		return fmt.Errorf("perft: negative depth %d", perftDepth)
	}

	out := cmd.OutOrStdout()
	for d := 1; d <= perftDepth; d++ {
		start := time.Now()
		nodes := engine.Perft(b, board.Black, d)
		fmt.Fprintf(out, "depth %2d  nodes %12d  time %v\n", d, nodes, time.Since(start).Round(time.Microsecond))
	}
	return nil
}
