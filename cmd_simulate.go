package main

import (
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hailam/reversi/internal/simulator"
)

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sim, err := simulator.FromConfig(cfg)
	if err != nil {
		return err
	}
	if simulateSave {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer logClose("store", store.Close)
		sim.WithStore(store)
	}

	res, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	if simulateTable {
		if err := res.WriteTable(cmd.OutOrStdout()); err != nil {
			return err
		}
	}
	if simulateSave {
		log.Info().Str("run", res.ID.String()).Msg("run stored")
	}
	return nil
}

func runListRuns(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer logClose("store", store.Close)

	runs, err := store.ListRuns()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTARTED\tSIZE\tMATCHES\tDURATION")
	seen := make(map[string]bool)
	var players []string
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%v\n", run.ID, run.Started.Format("2006-01-02 15:04:05"), run.BoardSize, run.Matches, run.Duration)
		for _, p := range run.Players {
			if !seen[p] {
				seen[p] = true
				players = append(players, p)
			}
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(players) == 0 {
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout())
	w = tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PLAYER\tRUNS\tGAMES\tWIN\tLOSE\tDRAW\tRATE")
	for _, p := range players {
		st, err := store.LoadStats(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%.1f%%\n", p, st.Runs, st.Games, st.Wins, st.Losses, st.Draws, st.WinRate())
	}
	return w.Flush()
}
