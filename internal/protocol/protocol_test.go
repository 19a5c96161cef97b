package protocol

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/reversi/internal/board"
)

func TestEncodeRequest(t *testing.T) {
	b := board.MustNewBoard(4)
	var buf bytes.Buffer
	require.NoError(t, EncodeRequest(&buf, board.White, b))

	want := "-1\n4\n0 0 0 0\n0 -1 1 0\n0 1 -1 0\n0 0 0 0\n"
	assert.Equal(t, want, buf.String())
}

func TestRequestRoundTrip(t *testing.T) {
	b := board.MustNewBoard(8)
	b.Play(board.Black, board.NewMove(3, 2))

	var buf bytes.Buffer
	require.NoError(t, EncodeRequest(&buf, board.White, b))

	req, err := ReadRequest(&buf)
	require.NoError(t, err)
	assert.Equal(t, board.White, req.Color)
	assert.True(t, b.Equal(req.Board))
}

func TestReadRequestMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bad color", "2\n4\n0 0 0 0\n0 -1 1 0\n0 1 -1 0\n0 0 0 0\n"},
		{"bad size", "1\nx\n"},
		{"odd size", "1\n5\n"},
		{"missing rows", "1\n4\n0 0 0 0\n"},
		{"short row", "1\n4\n0 0 0\n0 -1 1 0\n0 1 -1 0\n0 0 0 0\n"},
		{"bad cell", "1\n4\n0 0 0 0\n0 -1 1 0\n0 1 2 0\n0 0 0 0\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadRequest(strings.NewReader(tc.input))
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestParseReply(t *testing.T) {
	tests := []struct {
		input string
		want  board.Move
		ok    bool
	}{
		{"3 2", board.NewMove(3, 2), true},
		{"  5   4 \n", board.NewMove(5, 4), true},
		{"3", board.NoMove, false},
		{"3 2 1", board.NoMove, false},
		{"-1 2", board.NoMove, false},
		{"a b", board.NoMove, false},
		{"", board.NoMove, false},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			m, err := ParseReply(tc.input)
			if !tc.ok {
				assert.ErrorIs(t, err, ErrMalformedInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, m)
		})
	}
}

type firstMove struct{}

func (firstMove) NextMove(c board.Color, b *board.Board) board.Move {
	moves := b.LegalMoves(c)
	if len(moves) == 0 {
		return board.NoMove
	}
	return moves[0]
}

func TestServerRun(t *testing.T) {
	var in bytes.Buffer
	b := board.MustNewBoard(8)
	require.NoError(t, EncodeRequest(&in, board.Black, b))
	in.WriteString("\n")
	b.Play(board.Black, board.NewMove(3, 2))
	require.NoError(t, EncodeRequest(&in, board.White, b))

	var out bytes.Buffer
	require.NoError(t, NewServer(firstMove{}, &in, &out).Run())
	assert.Equal(t, "3 2\n2 2\n", out.String())
}

func TestServerNoMove(t *testing.T) {
	full, err := board.ParseDiagram(`
		X X X X
		X X X X
		X X X X
		X X X X
	`)
	require.NoError(t, err)

	var in, out bytes.Buffer
	require.NoError(t, EncodeRequest(&in, board.White, full))
	require.NoError(t, NewServer(firstMove{}, &in, &out).ServeOne())
	assert.Equal(t, "1 1\n", out.String())
}
