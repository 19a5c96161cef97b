package engine

import (
	"sync"
	"sync/atomic"

	"github.com/hailam/reversi/internal/board"
)

// Number of shards for table locking (power of 2 for fast modulo)
const ttShardCount = 64
const ttShardMask = ttShardCount - 1

// TTEntry is the result of a finished root search.
type TTEntry struct {
	Key   uint64 // full hash of position and side to move
	Best  board.Move
	Score float64
	Depth int8
	Age   uint8
}

// TranspositionTable remembers the best root move found for positions
// searched before. Iterative deepening tries that move first when it meets
// the position again. Safe for concurrent use.
type TranspositionTable struct {
	entries []TTEntry
	shards  [ttShardCount]sync.RWMutex
	size    uint64
	mask    uint64
	age     atomic.Uint32

	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewTranspositionTable creates a table with room for at least entries
// positions, rounded up to a power of 2.
func NewTranspositionTable(entries int) *TranspositionTable {
	n := roundUpToPowerOf2(uint64(max(entries, 1)))
	return &TranspositionTable{
		entries: make([]TTEntry, n),
		size:    n,
		mask:    n - 1,
	}
}

func roundUpToPowerOf2(n uint64) uint64 {
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// Probe looks up the position hashed as key.
func (tt *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	tt.probes.Add(1)

	idx := key & tt.mask
	shard := idx & ttShardMask

	tt.shards[shard].RLock()
	entry := tt.entries[idx]
	tt.shards[shard].RUnlock()

	if entry.Key == key && entry.Depth > 0 {
		tt.hits.Add(1)
		return entry, true
	}
	return TTEntry{}, false
}

// Store saves a search result. An entry of the current generation is only
// replaced by one searched at least as deep.
func (tt *TranspositionTable) Store(key uint64, depth int, score float64, best board.Move) {
	idx := key & tt.mask
	shard := idx & ttShardMask

	tt.shards[shard].Lock()
	defer tt.shards[shard].Unlock()

	entry := &tt.entries[idx]
	age := uint8(tt.age.Load())
	if entry.Age != age || entry.Key != key || depth >= int(entry.Depth) {
		*entry = TTEntry{Key: key, Best: best, Score: score, Depth: int8(min(depth, 127)), Age: age}
	}
}

// NewSearch starts a new generation of entries.
func (tt *TranspositionTable) NewSearch() {
	tt.age.Add(1)
}

// Clear empties the table.
func (tt *TranspositionTable) Clear() {
	for i := range tt.shards {
		tt.shards[i].Lock()
	}
	clear(tt.entries)
	for i := range tt.shards {
		tt.shards[i].Unlock()
	}
	tt.age.Store(0)
	tt.hits.Store(0)
	tt.probes.Store(0)
}

// HitRate returns the share of probes that found an entry, in percent.
func (tt *TranspositionTable) HitRate() float64 {
	probes := tt.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(tt.hits.Load()) / float64(probes) * 100
}

// Size returns the number of slots in the table.
func (tt *TranspositionTable) Size() uint64 {
	return tt.size
}
