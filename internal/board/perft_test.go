package board

import "testing"

// perft counts the number of leaf nodes at the given depth.
// This is the standard way to verify move generation correctness.
func perft(b *Board, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := b.AllLegalMoves()
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		if err := b.apply(m, false); err != nil {
			panic(err)
		}
		nodes += perft(b, depth-1)
		b.Undo()
	}
	return nodes
}

func mustBoard(t *testing.T, opts ...Option) *Board {
	t.Helper()
	b, err := NewBoard(opts...)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return b
}

type perftCase struct {
	depth    int
	expected int64
	slow     bool
}

func runPerft(t *testing.T, b *Board, tests []perftCase) {
	t.Helper()
	for _, tc := range tests {
		if tc.slow && testing.Short() {
			continue
		}
		got := perft(b, tc.depth)
		if got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftStartingPosition tests move generation from the starting position.
func TestPerftStartingPosition(t *testing.T) {
	runPerft(t, New(), []perftCase{
		{1, 20, false},
		{2, 400, false},
		{3, 8902, false},
		{4, 197281, true},
	})
}

// TestPerftKiwipete tests the Kiwipete position: castling both ways, pins,
// en passant and promotions by capture.
func TestPerftKiwipete(t *testing.T) {
	b := mustBoard(t, WithFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -"))
	runPerft(t, b, []perftCase{
		{1, 48, false},
		{2, 2039, false},
		{3, 97862, true},
	})
}

// TestPerftPosition3 covers horizontal pins and en passant discovered checks.
func TestPerftPosition3(t *testing.T) {
	b := mustBoard(t, WithFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -"))
	runPerft(t, b, []perftCase{
		{1, 14, false},
		{2, 191, false},
		{3, 2812, false},
		{4, 43238, true},
	})
}

// TestPerftPromotions covers promotions with and without capture and castling
// rights lost to captured rooks.
func TestPerftPromotions(t *testing.T) {
	b := mustBoard(t, WithFEN("r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"))
	runPerft(t, b, []perftCase{
		{1, 6, false},
		{2, 264, false},
		{3, 9467, true},
	})
}

// TestPerftEnPassantPin: the black pawn on e4 cannot capture d3 en passant
// because that exposes the king on a4 to the rook on h4.
func TestPerftEnPassantPin(t *testing.T) {
	b := mustBoard(t, WithFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1"))

	for _, m := range b.AllLegalMoves() {
		if m.EnPassant {
			t.Errorf("en passant %s should be illegal", m)
		}
	}

	runPerft(t, b, []perftCase{
		{1, 6, false},
		{2, 94, false},
	})
}

func TestPerftUndoRestoresPosition(t *testing.T) {
	b := mustBoard(t, WithFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"))
	before := b.FEN()
	perft(b, 2)
	if got := b.FEN(); got != before {
		t.Errorf("FEN after perft = %q, want %q", got, before)
	}
}
