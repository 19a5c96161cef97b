package simulator

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hailam/reversi/internal/board"
	"github.com/hailam/reversi/internal/storage"
)

// Record counts the games of one player against one opponent.
type Record struct {
	Matches int
	Wins    int
	Draws   int
}

// Losses returns the games neither won nor drawn.
func (r Record) Losses() int {
	return r.Matches - r.Wins - r.Draws
}

// Result is the outcome of a simulation run.
type Result struct {
	ID        uuid.UUID
	Started   time.Time
	Duration  time.Duration
	BoardSize int
	Matches   int
	Players   []string
	Games     []GameResult

	// Total[player][opponent] counts both colors.
	Total map[string]map[string]*Record
}

func (r *Result) add(player, opponent string, win, draw bool) {
	if r.Total[player] == nil {
		r.Total[player] = make(map[string]*Record)
	}
	rec := r.Total[player][opponent]
	if rec == nil {
		rec = &Record{}
		r.Total[player][opponent] = rec
	}
	rec.Matches++
	if win {
		rec.Wins++
	}
	if draw {
		rec.Draws++
	}
}

func (r *Result) totalize() {
	r.Total = make(map[string]map[string]*Record)
	for _, g := range r.Games {
		draw := g.Winner == board.NoColor
		r.add(g.Black, g.White, g.Winner == board.Black, draw)
		r.add(g.White, g.Black, g.Winner == board.White, draw)
	}
}

// Summary adds up the records of player against every opponent.
func (r *Result) Summary(player string) Record {
	var sum Record
	for _, rec := range r.Total[player] {
		sum.Matches += rec.Matches
		sum.Wins += rec.Wins
		sum.Draws += rec.Draws
	}
	return sum
}

// Ratio returns the win percentage of player over all its games.
func (r *Result) Ratio(player string) float64 {
	sum := r.Summary(player)
	if sum.Matches == 0 {
		return 0
	}
	return float64(sum.Wins) / float64(sum.Matches) * 100
}

// Record converts the result into its stored form.
func (r *Result) Record() *storage.RunRecord {
	run := &storage.RunRecord{
		ID:        r.ID,
		Started:   r.Started,
		Duration:  r.Duration,
		BoardSize: r.BoardSize,
		Matches:   r.Matches,
		Players:   r.Players,
	}
	for _, p := range r.Players {
		for _, o := range r.Players {
			rec, ok := r.Total[p][o]
			if !ok {
				continue
			}
			run.Results = append(run.Results, storage.PairResult{
				Player: p, Opponent: o,
				Wins: rec.Wins, Draws: rec.Draws, Losses: rec.Losses(),
			})
		}
	}
	return run
}

// WriteTable prints the win ratio of every pairing followed by each
// player's totals.
func (r *Result) WriteTable(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nSize : %d\n", r.BoardSize)

	fmt.Fprintf(&sb, "%-25s | ", "")
	for _, p := range r.Players {
		fmt.Fprintf(&sb, "%-25s ", p)
	}
	sb.WriteString("\n")
	hr := strings.Repeat("-", 28+26*len(r.Players)) + "\n"
	sb.WriteString(hr)

	for _, p := range r.Players {
		fmt.Fprintf(&sb, "%-25s | ", p)
		for _, o := range r.Players {
			rec, ok := r.Total[p][o]
			if p == o || !ok || rec.Matches == 0 {
				fmt.Fprintf(&sb, "%-25s ", "------")
				continue
			}
			ratio := fmt.Sprintf("%3.1f%%", float64(rec.Wins)/float64(rec.Matches)*100)
			fmt.Fprintf(&sb, "%6s%-19s ", ratio, "")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(hr)

	fmt.Fprintf(&sb, "\n%-25s | Total  | Win   Lose  Draw  Match\n", "")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for _, p := range r.Players {
		sum := r.Summary(p)
		ratio := fmt.Sprintf("%3.1f%%", r.Ratio(p))
		fmt.Fprintf(&sb, "%-25s | %6s | %5d %5d %5d %5d\n", p, ratio, sum.Wins, sum.Losses(), sum.Draws, sum.Matches)
	}
	sb.WriteString(strings.Repeat("-", 60) + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
