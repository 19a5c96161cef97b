package protocol

import (
	"errors"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/hailam/reversi/internal/board"
)

// Mover chooses a move for the side to move.
type Mover interface {
	NextMove(c board.Color, b *board.Board) board.Move
}

// Server answers protocol requests with a Mover.
type Server struct {
	mover Mover
	in    io.Reader
	out   io.Writer
}

// NewServer creates a server reading requests from in and writing replies
// to out.
func NewServer(m Mover, in io.Reader, out io.Writer) *Server {
	return &Server{mover: m, in: in, out: out}
}

// ServeOne answers a single request.
func (s *Server) ServeOne() error {
	req, err := ReadRequest(s.in)
	if err != nil {
		return err
	}
	return s.answer(req)
}

// Run answers requests until the input ends.
func (s *Server) Run() error {
	dec := NewDecoder(s.in)
	for {
		req, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := s.answer(req); err != nil {
			return err
		}
	}
}

func (s *Server) answer(req Request) error {
	m := s.mover.NextMove(req.Color, req.Board)
	if !m.IsValid() {
		// no legal move; reply with the cell the caller treats as forced
		n := req.Board.Size()
		m = board.NewMove(n/2-1, n/2-1)
		log.Warn().Str("color", req.Color.String()).Msg("no legal move, replying with the center cell")
	}
	log.Debug().Str("color", req.Color.String()).Str("move", m.String()).Msg("request answered")
	return WriteReply(s.out, m)
}
