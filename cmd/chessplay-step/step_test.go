package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/hailam/chessrules/internal/board"
)

func TestDraw(t *testing.T) {
	color.NoColor = true

	lines := strings.Split(draw(board.New()), "\n")
	if len(lines) != board.Size+1 {
		t.Fatalf("draw() has %d lines, want %d", len(lines), board.Size+1)
	}
	if want := " 8  r  n  b  q  k  b  n  r "; lines[0] != want {
		t.Errorf("rank 8 = %q, want %q", lines[0], want)
	}
	if want := " 1  R  N  B  Q  K  B  N  R "; lines[7] != want {
		t.Errorf("rank 1 = %q, want %q", lines[7], want)
	}
	if want := "    a  b  c  d  e  f  g  h "; lines[8] != want {
		t.Errorf("file labels = %q, want %q", lines[8], want)
	}
}

func TestRun(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name string
		cfg  config
		want []string
	}{
		{
			name: "ply limit",
			cfg:  config{fen: board.StartFEN, seed: 3, maxPlies: 4, games: 2, quiet: true},
			want: []string{"game 1: unfinished after 4 plies", "game 2: unfinished after 4 plies", "games=2 white=0 black=0 draws=0 unfinished=2 plies=8"},
		},
		{
			name: "already mated",
			cfg:  config{fen: "R6k/6pp/8/8/8/8/8/K7 b - - 0 1", seed: 1, maxPlies: 10, games: 1},
			want: []string{"game 1: White wins by checkmate after 0 plies", "games=1 white=1 black=0 draws=0 unfinished=0 plies=0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := run(tt.cfg, &out); err != nil {
				t.Fatalf("run: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out.String())
				}
			}
		})
	}
}

func TestRunInvalidFEN(t *testing.T) {
	var out bytes.Buffer
	if err := run(config{fen: "not a fen", games: 1, maxPlies: 1}, &out); err == nil {
		t.Error("run accepted an invalid FEN")
	}
}
