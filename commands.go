package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hailam/reversi/internal/config"
)

var (
	configPath string
	logLevel   string
	storeDir   string

	// cfg is loaded before any subcommand runs.
	cfg config.Config

	rootCmd = &cobra.Command{
		Use:           "reversi",
		Short:         "A Reversi engine with a match simulator and opening book store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				config.LogConfig{Level: "info"}.Setup()
				return err
			}
			if logLevel != "" {
				loaded.Log.Level = logLevel
			}
			if storeDir != "" {
				loaded.Storage.Dir = storeDir
			}
			loaded.Log.Setup()
			cfg = loaded
			return nil
		},
	}

	// --- Play ---
	moveCmd = &cobra.Command{
		Use:   "move",
		Short: "Answers move requests read from stdin with the configured strategy",
		Args:  cobra.NoArgs,
		RunE:  runMove, // Defined in cmd_play.go
	}
	perftCmd = &cobra.Command{
		Use:   "perft",
		Short: "Counts the leaf positions of the game tree from the starting position",
		Args:  cobra.NoArgs,
		RunE:  runPerft, // Defined in cmd_play.go
	}

	// --- Simulation ---
	simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Plays a round robin between the configured players",
		Args:  cobra.NoArgs,
		RunE:  runSimulate, // Defined in cmd_simulate.go
	}
	runsCmd = &cobra.Command{
		Use:   "runs",
		Short: "Lists stored simulation runs and player statistics",
		Args:  cobra.NoArgs,
		RunE:  runListRuns, // Defined in cmd_simulate.go
	}

	// --- Opening book ---
	bookCmd = &cobra.Command{
		Use:   "book",
		Short: "Manage the opening book kept in the store",
	}
	bookListCmd = &cobra.Command{
		Use:   "list",
		Short: "Prints the stored book",
		Args:  cobra.NoArgs,
		RunE:  runBookList, // Defined in cmd_book.go
	}
	bookImportCmd = &cobra.Command{
		Use:   "import [file]",
		Short: "Adds a binary book file to the store, or the built-in lines when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBookImport, // Defined in cmd_book.go
	}
	bookExportCmd = &cobra.Command{
		Use:   "export <file>",
		Short: "Writes the stored book to a binary book file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBookExport, // Defined in cmd_book.go
	}
)

var (
	moveLoop       bool
	moveStoredBook bool
	perftSize      int
	perftDepth     int
	simulateSave   bool
	simulateTable  bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides the config)")
	rootCmd.PersistentFlags().StringVar(&storeDir, "store", "", "store directory (overrides the config)")

	moveCmd.Flags().BoolVar(&moveLoop, "loop", false, "keep answering until stdin ends")
	moveCmd.Flags().BoolVar(&moveStoredBook, "stored-book", false, "play openings from the stored book")
	rootCmd.AddCommand(moveCmd)

	perftCmd.Flags().IntVar(&perftSize, "size", 8, "board size")
	perftCmd.Flags().IntVar(&perftDepth, "depth", 5, "depth in plies")
	rootCmd.AddCommand(perftCmd)

	simulateCmd.Flags().BoolVar(&simulateSave, "save", false, "store the run")
	simulateCmd.Flags().BoolVar(&simulateTable, "table", true, "print the result table")
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(runsCmd)

	bookCmd.AddCommand(bookListCmd)
	bookCmd.AddCommand(bookImportCmd)
	bookCmd.AddCommand(bookExportCmd)
	rootCmd.AddCommand(bookCmd)
}

func logClose(name string, close func() error) {
	if err := close(); err != nil {
		log.Warn().Err(err).Str("resource", name).Msg("close failed")
	}
}
