package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility, so hashes can be persisted.
var (
	zobristDisc       [2][MaxSize * MaxSize]uint64 // [Color][cell]
	zobristSize       [MaxSize + 1]uint64
	zobristSideToMove uint64 // XOR when white to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for c := Black; c <= White; c++ {
		for i := range zobristDisc[c] {
			zobristDisc[c][i] = rng.next()
		}
	}
	for size := range zobristSize {
		zobristSize[size] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// Hash returns the Zobrist hash of the discs on the board. Cells are keyed by
// (x, y) rather than bit index so equal layouts hash equally for every size.
func (b *Board) Hash() uint64 {
	h := zobristSize[b.size]
	for c := Black; c <= White; c++ {
		b.discs[c].ForEach(func(i int) {
			x, y := i%b.size, i/b.size
			h ^= zobristDisc[c][y*MaxSize+x]
		})
	}
	return h
}

// HashFor returns the position hash with the side to move folded in.
func (b *Board) HashFor(toMove Color) uint64 {
	h := b.Hash()
	if toMove == White {
		h ^= zobristSideToMove
	}
	return h
}
