package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hailam/reversi/internal/book"
	"github.com/hailam/reversi/internal/storage"
)

// openStore opens the configured store. The caller closes it.
func openStore() (*storage.Storage, error) {
	return storage.New(cfg.Storage)
}

// storedBook loads the book kept in the store.
func storedBook() (*book.Book, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	defer logClose("store", store.Close)
	return store.LoadBook()
}

func runBookList(cmd *cobra.Command, args []string) error {
	bk, err := storedBook()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, key := range bk.Keys() {
		fmt.Fprintf(out, "%016x", key)
		for _, e := range bk.Entries(key) {
			fmt.Fprintf(out, " %s:%d", e.Move, e.Weight)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "%d positions\n", bk.Size())
	return nil
}

func runBookImport(cmd *cobra.Command, args []string) error {
	bk := book.Default()
	if len(args) == 1 {
		var err error
		if bk, err = book.LoadFile(args[0]); err != nil {
			return fmt.Errorf("load book: %w", err)
		}
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer logClose("store", store.Close)

	if err := store.SaveBook(bk); err != nil {
		return err
	}
	log.Info().Int("positions", bk.Size()).Msg("book imported")
	return nil
}

func runBookExport(cmd *cobra.Command, args []string) error {
	bk, err := storedBook()
	if err != nil {
		return err
	}

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	if _, err := bk.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info().Int("positions", bk.Size()).Str("path", args[0]).Msg("book exported")
	return nil
}
