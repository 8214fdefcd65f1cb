package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hailam/chessrules/internal/board"
)

type config struct {
	fen      string
	seed     int64
	maxPlies int
	games    int
	delay    time.Duration
	quiet    bool
}

type timings struct {
	legal []time.Duration
	apply []time.Duration
}

type tally struct {
	white, black, draws, unfinished int
	plies                           int
}

func (t *tally) add(b *board.Board, plies int) {
	t.plies += plies
	switch b.State() {
	case board.Checkmate:
		if winner, _ := b.Winner(); winner == board.White {
			t.white++
		} else {
			t.black++
		}
	case board.Stalemate:
		t.draws++
	default:
		t.unfinished++
	}
}

func run(cfg config, w io.Writer) error {
	log.Printf("============ step (seed=%d)", cfg.seed)
	rng := rand.New(rand.NewSource(cfg.seed))

	var (
		times timings
		total tally
	)
	for i := 0; i < cfg.games; i++ {
		b, err := board.NewBoard(board.WithFEN(cfg.fen))
		if err != nil {
			return err
		}

		plies, err := playGame(b, rng, cfg, w, &times)
		if err != nil {
			return err
		}
		total.add(b, plies)
		fmt.Fprintf(w, "game %d: %s after %d plies\n", i+1, outcome(b), plies)
	}

	p := message.NewPrinter(language.English)
	fmt.Fprintln(w, p.Sprintf("games=%d white=%d black=%d draws=%d unfinished=%d plies=%d",
		cfg.games, total.white, total.black, total.draws, total.unfinished, total.plies))
	fmt.Fprintln(w, "legal:", avg(times.legal))
	fmt.Fprintln(w, "apply:", avg(times.apply))
	return nil
}

// playGame plays random legal moves on b until the game ends or the ply
// limit is reached. It returns the number of plies played.
func playGame(b *board.Board, rng *rand.Rand, cfg config, w io.Writer, times *timings) (int, error) {
	for ply := 0; ply < cfg.maxPlies; ply++ {
		if b.State().IsTerminal() {
			return ply, nil
		}

		t1 := time.Now()
		moves := b.AllLegalMoves()
		times.legal = append(times.legal, time.Since(t1))
		if len(moves) == 0 {
			return ply, fmt.Errorf("unexpected move exhaustion: state=%s fen=%s", b.State(), b.FEN())
		}
		m := moves[rng.Intn(len(moves))]

		number, mover := b.FullMoveNumber(), b.Turn()
		t1 = time.Now()
		if err := b.ApplyMove(m); err != nil {
			return ply, fmt.Errorf("apply %s: %w", m, err)
		}
		times.apply = append(times.apply, time.Since(t1))

		if !cfg.quiet {
			fmt.Fprintf(w, "\n===== [#%d] %s: %s\n", number, mover, m)
			fmt.Fprintln(w, draw(b))
			fmt.Fprintln(w, b.FEN())
			fmt.Fprintln(w, b.State())
		}
		if cfg.delay > 0 {
			time.Sleep(cfg.delay)
		}
	}
	return cfg.maxPlies, nil
}

func outcome(b *board.Board) string {
	switch b.State() {
	case board.Checkmate:
		winner, _ := b.Winner()
		return fmt.Sprintf("%s wins by checkmate", winner)
	case board.Stalemate:
		return "draw by stalemate"
	default:
		return "unfinished"
	}
}

func avg(ds []time.Duration) time.Duration {
	if len(ds) == 0 {
		return 0
	}
	var s time.Duration
	for _, d := range ds {
		s += d
	}
	return s / time.Duration(len(ds))
}
