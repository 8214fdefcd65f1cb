// Command chessplay-step plays random legal moves from a position until the
// game ends, printing the board after every ply and a timing summary.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/hailam/chessrules/internal/board"
)

var (
	fen      = flag.String("fen", board.StartFEN, "starting position in FEN")
	seed     = flag.Int64("seed", 1, "random seed (0 seeds from the clock)")
	maxPlies = flag.Int("plies", 500, "stop a game after this many plies")
	games    = flag.Int("games", 1, "number of games to play")
	delay    = flag.Duration("delay", 0, "pause between plies")
	quiet    = flag.Bool("quiet", false, "print only the per-game results and summary")
	noColor  = flag.Bool("nocolor", false, "disable coloured output")
)

func main() {
	flag.Parse()

	if *noColor {
		color.NoColor = true
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	cfg := config{
		fen:      *fen,
		seed:     *seed,
		maxPlies: *maxPlies,
		games:    *games,
		delay:    *delay,
		quiet:    *quiet,
	}
	if err := run(cfg, os.Stdout); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
