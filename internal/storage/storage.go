package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/hailam/reversi/internal/book"
	"github.com/hailam/reversi/internal/config"
)

// Storage key prefixes
const (
	prefixBook  = "book/"
	prefixRun   = "sim/"
	prefixStats = "stats/"
)

var ErrRunNotFound = errors.New("simulation run not found")

// PairResult is the record of one player against one opponent, counted
// from the player's side.
type PairResult struct {
	Player   string `json:"player"`
	Opponent string `json:"opponent"`
	Wins     int    `json:"wins"`
	Draws    int    `json:"draws"`
	Losses   int    `json:"losses"`
}

// RunRecord is a finished simulation run.
type RunRecord struct {
	ID        uuid.UUID     `json:"id"`
	Started   time.Time     `json:"started"`
	Duration  time.Duration `json:"duration"`
	BoardSize int           `json:"board_size"`
	Matches   int           `json:"matches"`
	Players   []string      `json:"players"`
	Results   []PairResult  `json:"results"`
}

// PlayerStats accumulates the games of one player over all stored runs.
type PlayerStats struct {
	Games  int `json:"games"`
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
	Runs   int `json:"runs"`
}

// WinRate returns the win rate as a percentage (0-100)
func (s *PlayerStats) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games) * 100
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens the database in dir, or in the per-user data directory when
// dir is empty.
func Open(dir string) (*Storage, error) {
	if dir == "" {
		var err error
		if dir, err = DatabaseDir(); err != nil {
			return nil, err
		}
	}
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

// New opens the database described by cfg.
func New(cfg config.StorageConfig) (*Storage, error) {
	if cfg.InMemory {
		return OpenInMemory()
	}
	return Open(cfg.Dir)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func bookKey(key uint64) []byte {
	return fmt.Appendf(nil, "%s%016x", prefixBook, key)
}

// SaveBook stores every position of bk, replacing stored entries of the
// same positions.
func (s *Storage) SaveBook(bk *book.Book) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, key := range bk.Keys() {
		data, err := json.Marshal(bk.Entries(key))
		if err != nil {
			return err
		}
		if err := wb.Set(bookKey(key), data); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// LoadBook reads all stored book positions. An empty database gives an
// empty book.
func (s *Storage) LoadBook() (*book.Book, error) {
	bk := book.New()
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(prefixBook)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			k := strings.TrimPrefix(string(item.Key()), prefixBook)
			key, err := strconv.ParseUint(k, 16, 64)
			if err != nil {
				return fmt.Errorf("bad book key %q: %w", item.Key(), err)
			}
			var entries []book.BookEntry
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &entries)
			}); err != nil {
				return err
			}
			bk.Set(key, entries)
		}
		return nil
	})
	return bk, err
}

// BookEntries returns the stored moves of one position, or nil.
func (s *Storage) BookEntries(key uint64) ([]book.BookEntry, error) {
	var entries []book.BookEntry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(bookKey(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entries)
		})
	})
	return entries, err
}

// SaveRun stores a simulation run and adds its games to the players'
// statistics in one transaction.
func (s *Storage) SaveRun(run *RunRecord) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	data, err := json.Marshal(run)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(prefixRun+run.ID.String()), data); err != nil {
			return err
		}

		seen := make(map[string]bool)
		for _, r := range run.Results {
			stats, err := loadStats(txn, r.Player)
			if err != nil {
				return err
			}
			stats.Games += r.Wins + r.Draws + r.Losses
			stats.Wins += r.Wins
			stats.Draws += r.Draws
			stats.Losses += r.Losses
			if !seen[r.Player] {
				stats.Runs++
				seen[r.Player] = true
			}
			data, err := json.Marshal(stats)
			if err != nil {
				return err
			}
			if err := txn.Set([]byte(prefixStats+r.Player), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadRun reads the run with the given ID.
func (s *Storage) LoadRun(id uuid.UUID) (*RunRecord, error) {
	var run RunRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixRun + id.String()))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &run)
		})
	})
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns returns all stored runs, oldest first.
func (s *Storage) ListRuns() ([]RunRecord, error) {
	var runs []RunRecord
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(prefixRun)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var run RunRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &run)
			}); err != nil {
				return err
			}
			runs = append(runs, run)
		}
		return nil
	})
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Started.Before(runs[j].Started) })
	return runs, err
}

// LoadStats returns the statistics of player, empty if it never played.
func (s *Storage) LoadStats(player string) (*PlayerStats, error) {
	var stats *PlayerStats
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stats, err = loadStats(txn, player)
		return err
	})
	return stats, err
}

func loadStats(txn *badger.Txn, player string) (*PlayerStats, error) {
	stats := &PlayerStats{}
	item, err := txn.Get([]byte(prefixStats + player))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return stats, nil // Use empty stats
	}
	if err != nil {
		return nil, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, stats)
	})
	return stats, err
}
