package simulator

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/hailam/reversi/internal/board"
	"github.com/hailam/reversi/internal/engine"
)

// GameResult is the outcome of one finished game.
type GameResult struct {
	Black      string      `json:"black"`
	White      string      `json:"white"`
	Winner     board.Color `json:"winner"` // NoColor on a draw
	BlackDiscs int         `json:"black_discs"`
	WhiteDiscs int         `json:"white_discs"`
	Foul       bool        `json:"foul,omitempty"` // the loser played an illegal move
	Moves      int         `json:"moves"`
}

// Play plays one game on a fresh board of the given size, black first. A
// side without a legal move passes. A player answering with an illegal move
// loses on the spot.
func Play(ctx context.Context, size int, black, white engine.Strategy) (GameResult, error) {
	b, err := board.NewBoard(size)
	if err != nil {
		return GameResult{}, err
	}

	var res GameResult
	players := map[board.Color]engine.Strategy{board.Black: black, board.White: white}
	c := board.Black
	for !b.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return GameResult{}, err
		}
		if !b.HasLegalMoves(c) {
			c = c.Other()
			continue
		}

		m := players[c].NextMove(c, b)
		if _, err := b.Place(c, m.X, m.Y); err != nil {
			log.Warn().Err(err).Stringer("color", c).Str("move", m.String()).Msg("illegal move, game forfeited")
			res.Winner = c.Other()
			res.Foul = true
			break
		}
		res.Moves++
		c = c.Other()
	}

	res.BlackDiscs = b.Count(board.Black)
	res.WhiteDiscs = b.Count(board.White)
	if !res.Foul {
		res.Winner = b.Winner()
	}
	return res, nil
}
