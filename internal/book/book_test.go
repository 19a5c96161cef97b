package book

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/reversi/internal/board"
)

func mustMoves(t *testing.T, s string) []board.Move {
	t.Helper()
	moves, err := board.ParseMoves(s)
	require.NoError(t, err)
	return moves
}

func TestDefaultBookStart(t *testing.T) {
	bk := Default()
	b := board.MustNewBoard(8)

	entries := bk.ProbeAll(b, board.Black)
	require.Len(t, entries, 4)
	for _, e := range entries {
		assert.Equal(t, uint16(3), e.Weight, e.Move.String())
		assert.Contains(t, []string{"f5", "e6", "d3", "c4"}, e.Move.String())
	}

	// white never moves first
	assert.Empty(t, bk.ProbeAll(b, board.White))
}

func TestDefaultBookBranches(t *testing.T) {
	bk := Default()
	b := board.MustNewBoard(8)
	_, err := b.PlaySequence(board.Black, mustMoves(t, "f5"))
	require.NoError(t, err)

	entries := bk.ProbeAll(b, board.White)
	require.Len(t, entries, 2)
	assert.Equal(t, "f6", entries[0].Move.String())
	assert.Equal(t, uint16(2), entries[0].Weight)
	assert.Equal(t, "d6", entries[1].Move.String())
	assert.Equal(t, uint16(1), entries[1].Weight)
}

func TestBookFollowsLines(t *testing.T) {
	bk := Default()
	for name, line := range Lines {
		t.Run(name, func(t *testing.T) {
			b := board.MustNewBoard(8)
			c := board.Black
			for _, m := range mustMoves(t, line) {
				entries := bk.ProbeAll(b, c)
				var found bool
				for _, e := range entries {
					found = found || e.Move == m
				}
				assert.True(t, found, "%s missing at %s", m, b.String())
				b.Play(c, m)
				c = c.Other()
			}
		})
	}
}

func TestProbeIsLegal(t *testing.T) {
	bk := Default()
	r := rand.New(rand.NewPCG(1, 2))
	b := board.MustNewBoard(8)
	c := board.Black
	for i := 0; i < 5; i++ {
		m, ok := bk.Probe(b, c, r)
		require.True(t, ok, "ply %d", i)
		_, err := b.Place(c, m.X, m.Y)
		require.NoError(t, err)
		c = c.Other()
	}
	_, ok := bk.Probe(b, c, r)
	assert.False(t, ok)
}

func TestBookWriteLoad(t *testing.T) {
	bk := Default()

	var buf bytes.Buffer
	n, err := bk.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Zero(t, buf.Len()%16)

	loaded, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, bk.Size(), loaded.Size())
	assert.Equal(t, bk.Keys(), loaded.Keys())
	for _, key := range bk.Keys() {
		assert.ElementsMatch(t, bk.Entries(key), loaded.Entries(key))
	}
}

func TestAddLineRejectsIllegal(t *testing.T) {
	bk := New()
	err := bk.AddLine(8, mustMoves(t, "a1"), 1)
	assert.ErrorIs(t, err, ErrBadLine)

	var nilBook *Book
	assert.Nil(t, nilBook.ProbeAll(board.MustNewBoard(8), board.Black))
}
