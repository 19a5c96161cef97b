// Reversi - a Reversi engine, match simulator and opening book tool.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("reversi failed")
		os.Exit(1)
	}
}
