// Package protocol implements the line protocol spoken with external move
// programs. A request is three parts on standard input:
//
//	1            color to move: 1 black, -1 white
//	8            board size
//	0 0 0 ...    size rows of cells: 0 empty, 1 black, -1 white
//
// and the reply is a single line "x y" on standard output.
package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/hailam/reversi/internal/board"
)

var ErrMalformedInput = errors.New("protocol: malformed input")

var replyPattern = regexp.MustCompile(`^\s*(\d+)\s+(\d+)\s*$`)

// Request is one position to answer.
type Request struct {
	Color board.Color
	Board *board.Board
}

// EncodeRequest writes a request for c to move on b.
func EncodeRequest(w io.Writer, c board.Color, b *board.Board) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%d\n", c.Int(), b.Size())
	for _, row := range b.Grid() {
		cells := make([]string, len(row))
		for x, v := range row {
			cells[x] = strconv.Itoa(v)
		}
		bw.WriteString(strings.Join(cells, " "))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteReply writes the "x y" reply line.
func WriteReply(w io.Writer, m board.Move) error {
	_, err := fmt.Fprintf(w, "%d %d\n", m.X, m.Y)
	return err
}

// ParseReply parses an "x y" reply of two non-negative integers.
func ParseReply(s string) (board.Move, error) {
	parts := replyPattern.FindStringSubmatch(s)
	if parts == nil {
		return board.NoMove, fmt.Errorf("%w: reply %q", ErrMalformedInput, strings.TrimSpace(s))
	}
	x, errX := strconv.Atoi(parts[1])
	y, errY := strconv.Atoi(parts[2])
	if errX != nil || errY != nil {
		return board.NoMove, fmt.Errorf("%w: reply %q", ErrMalformedInput, strings.TrimSpace(s))
	}
	return board.NewMove(x, y), nil
}

// Decoder reads consecutive requests from a stream. Blank lines between
// requests are skipped.
type Decoder struct {
	scanner *bufio.Scanner
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{scanner: bufio.NewScanner(r)}
}

// line returns the next non-blank line.
func (d *Decoder) line() (string, error) {
	for d.scanner.Scan() {
		line := strings.TrimSpace(d.scanner.Text())
		if line != "" {
			return line, nil
		}
	}
	if err := d.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// Decode reads the next request. It returns io.EOF when the stream ends
// cleanly before a request starts.
func (d *Decoder) Decode() (Request, error) {
	colorLine, err := d.line()
	if err != nil {
		return Request{}, err
	}
	var c board.Color
	switch colorLine {
	case "1":
		c = board.Black
	case "-1":
		c = board.White
	default:
		return Request{}, fmt.Errorf("%w: color %q", ErrMalformedInput, colorLine)
	}

	sizeLine, err := d.line()
	if err != nil {
		return Request{}, fmt.Errorf("%w: missing size: %v", ErrMalformedInput, err)
	}
	size, err := strconv.Atoi(sizeLine)
	if err != nil || size < board.MinSize || size > board.MaxSize {
		return Request{}, fmt.Errorf("%w: size %q", ErrMalformedInput, sizeLine)
	}

	rows := make([]string, size)
	for y := range rows {
		if rows[y], err = d.line(); err != nil {
			return Request{}, fmt.Errorf("%w: missing row %d: %v", ErrMalformedInput, y, err)
		}
	}
	grid, err := board.ParseGridRows(rows)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	b, err := board.NewBoardFromGrid(grid)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return Request{Color: c, Board: b}, nil
}

// ReadRequest reads exactly one request from r.
func ReadRequest(r io.Reader) (Request, error) {
	req, err := NewDecoder(r).Decode()
	if errors.Is(err, io.EOF) {
		return req, fmt.Errorf("%w: empty input", ErrMalformedInput)
	}
	return req, err
}
