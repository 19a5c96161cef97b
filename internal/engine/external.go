package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hailam/reversi/internal/board"
	"github.com/hailam/reversi/internal/protocol"
)

// DefaultExternalTimeout bounds one move of an external program.
const DefaultExternalTimeout = 60 * time.Second

var errNoCommand = errors.New("no command configured")

// External asks another program for its move over the line protocol. Any
// failure of the program (timeout, bad exit, garbled reply) is logged and
// answered with the forced move at (N/2-1, N/2-1).
type External struct {
	Command string
	Timeout time.Duration
}

// NewExternal creates a strategy running command through the shell.
func NewExternal(command string, timeout time.Duration) *External {
	if timeout <= 0 {
		timeout = DefaultExternalTimeout
	}
	return &External{Command: command, Timeout: timeout}
}

// NextMove implements Strategy.
func (s *External) NextMove(c board.Color, b *board.Board) board.Move {
	m, err := s.ask(c, b)
	if err != nil {
		n := b.Size()
		log.Warn().Err(err).Str("command", s.Command).Msg("external move failed, forcing the center cell")
		return board.NewMove(n/2-1, n/2-1)
	}
	return m
}

func (s *External) ask(c board.Color, b *board.Board) (board.Move, error) {
	if s.Command == "" {
		return board.NoMove, errNoCommand
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultExternalTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var stdin, stdout, stderr bytes.Buffer
	if err := protocol.EncodeRequest(&stdin, c, b); err != nil {
		return board.NoMove, err
	}

	cmd := shellCommand(ctx, s.Command)
	cmd.Stdin = &stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// children of the shell may hold the pipes open after it is killed
	cmd.WaitDelay = 500 * time.Millisecond

	err := cmd.Run()
	if ctx.Err() != nil {
		return board.NoMove, fmt.Errorf("timed out after %s", timeout)
	}
	if err != nil {
		return board.NoMove, fmt.Errorf("%w (stderr: %q)", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return protocol.ParseReply(stdout.String())
}

func shellCommand(ctx context.Context, command string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", command)
	}
	return exec.CommandContext(ctx, "sh", "-c", command)
}
