package board

import (
	"errors"
	"math/rand"
	"testing"
)

func sq(t *testing.T, s string) Square {
	t.Helper()
	square, err := ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return square
}

func mv(t *testing.T, from, to string) Move {
	t.Helper()
	return Move{From: sq(t, from), To: sq(t, to)}
}

func play(t *testing.T, b *Board, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m := mv(t, s[:2], s[2:4])
		if len(s) == 5 {
			p, ok := PieceFromChar(s[4])
			if !ok {
				t.Fatalf("bad promotion in %q", s)
			}
			m = m.WithPromotion(p.Kind)
		}
		if err := b.ApplyMove(m); err != nil {
			t.Fatalf("ApplyMove(%s): %v", s, err)
		}
	}
}

func TestInitialPosition(t *testing.T) {
	t.Parallel()

	b := New()
	if b.Turn() != White {
		t.Errorf("Turn() = %s, want White", b.Turn())
	}
	if b.State() != Active {
		t.Errorf("State() = %s, want Active", b.State())
	}
	if _, ok := b.EnPassantTarget(); ok {
		t.Error("initial board has an en passant target")
	}

	counts := map[Piece]int{}
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if p, ok := b.PieceAt(NewSquare(row, col)); ok {
				counts[Piece{Color: p.Color, Kind: p.Kind}]++
			}
		}
	}

	want := map[PieceKind]int{Pawn: 8, Rook: 2, Knight: 2, Bishop: 2, Queen: 1, King: 1}
	for _, c := range []Color{White, Black} {
		for k, n := range want {
			if got := counts[Piece{Color: c, Kind: k}]; got != n {
				t.Errorf("%s %s count = %d, want %d", c, k, got, n)
			}
		}
	}

	if got := len(b.AllLegalMoves()); got != 20 {
		t.Errorf("len(AllLegalMoves()) = %d, want 20", got)
	}
}

func TestInitialPiecesUnmoved(t *testing.T) {
	t.Parallel()

	b := New()
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if p, ok := b.PieceAt(NewSquare(row, col)); ok && p.HasMoved {
				t.Errorf("%s on %s marked as moved", p.Kind, NewSquare(row, col))
			}
		}
	}
}

func TestApplyMoveErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		move func(t *testing.T) Move
		err  error
	}{
		{
			name: "empty source",
			move: func(t *testing.T) Move { return mv(t, "e4", "e5") },
			err:  ErrInvalidSource,
		},
		{
			name: "wrong turn",
			move: func(t *testing.T) Move { return mv(t, "e7", "e5") },
			err:  ErrWrongTurn,
		},
		{
			name: "illegal target",
			move: func(t *testing.T) Move { return mv(t, "e2", "e5") },
			err:  ErrIllegalTarget,
		},
		{
			name: "blocked slider",
			move: func(t *testing.T) Move { return mv(t, "a1", "a3") },
			err:  ErrIllegalTarget,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := New()
			before := b.FEN()
			err := b.ApplyMove(tt.move(t))
			if !errors.Is(err, tt.err) {
				t.Fatalf("ApplyMove() error = %v, want %v", err, tt.err)
			}
			if got := b.FEN(); got != before {
				t.Errorf("board changed after failed move: %q, want %q", got, before)
			}
			if len(b.MoveHistory()) != 0 {
				t.Errorf("history has %d moves after failed move", len(b.MoveHistory()))
			}
		})
	}
}

func TestEnPassantTarget(t *testing.T) {
	t.Parallel()

	b := New()
	play(t, b, "e2e4")

	ep, ok := b.EnPassantTarget()
	if !ok || ep != sq(t, "e3") {
		t.Fatalf("EnPassantTarget() = %s, %v, want e3, true", ep, ok)
	}

	play(t, b, "g8f6")
	if ep, ok := b.EnPassantTarget(); ok {
		t.Errorf("EnPassantTarget() = %s after a non-pawn move, want none", ep)
	}

	play(t, b, "e4e5")
	if _, ok := b.EnPassantTarget(); ok {
		t.Error("single push set an en passant target")
	}
}

func TestEnPassantCapture(t *testing.T) {
	t.Parallel()

	b := New()
	play(t, b, "e2e4", "a7a6", "e4e5", "d7d5")

	var ep Move
	for _, m := range b.LegalMoves(sq(t, "e5")) {
		if m.EnPassant {
			ep = m
		}
	}
	if ep.To != sq(t, "d6") {
		t.Fatalf("no en passant capture onto d6 among %v", b.LegalMoves(sq(t, "e5")))
	}
	if ep.Captured.Kind != Pawn || ep.Captured.Color != Black {
		t.Errorf("Captured = %+v, want black pawn", ep.Captured)
	}

	if err := b.ApplyMove(ep); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if _, ok := b.PieceAt(sq(t, "d5")); ok {
		t.Error("captured pawn still on d5")
	}
	if p, _ := b.PieceAt(sq(t, "d6")); p.Kind != Pawn || p.Color != White {
		t.Errorf("d6 = %+v, want white pawn", p)
	}
}

func TestEnPassantExpires(t *testing.T) {
	t.Parallel()

	b := New()
	play(t, b, "e2e4", "a7a6", "e4e5", "d7d5", "h2h3", "h7h6")

	for _, m := range b.LegalMoves(sq(t, "e5")) {
		if m.EnPassant {
			t.Errorf("en passant %s still offered one move later", m)
		}
	}
}

func TestPromotion(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, WithFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1"))
	moves := b.LegalMoves(sq(t, "a7"))
	if len(moves) != 4 {
		t.Fatalf("len(LegalMoves(a7)) = %d, want 4", len(moves))
	}
	for i, m := range moves {
		if !m.Promotion || m.PromoteTo != PromotionKinds[i] {
			t.Errorf("moves[%d] = %+v, want promotion to %s", i, m, PromotionKinds[i])
		}
	}

	if err := b.ApplyMove(mv(t, "a7", "a8").WithPromotion(Knight)); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	p, ok := b.PieceAt(sq(t, "a8"))
	if !ok || p.Kind != Knight || p.Color != White || !p.HasMoved {
		t.Errorf("a8 = %+v, want moved white knight", p)
	}
}

func TestPromotionNeedsChoice(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, WithFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1"))
	pending := Move{From: sq(t, "a7"), To: sq(t, "a8"), Promotion: true}

	if err := b.ApplyMove(pending); !errors.Is(err, ErrIllegalTarget) {
		t.Fatalf("ApplyMove() error = %v, want %v", err, ErrIllegalTarget)
	}

	final := pending.WithPromotion(Queen)
	if pending.PromoteTo != NoKind {
		t.Error("WithPromotion modified its receiver")
	}
	if err := b.ApplyMove(final); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if p, _ := b.PieceAt(sq(t, "a8")); p.Kind != Queen {
		t.Errorf("a8 = %s, want Queen", p.Kind)
	}
}

func TestCloneIndependent(t *testing.T) {
	t.Parallel()

	b := New()
	play(t, b, "e2e4")
	before := b.FEN()

	c := b.Clone()
	play(t, c, "e7e5", "g1f3")

	if got := b.FEN(); got != before {
		t.Errorf("source FEN = %q, want %q", got, before)
	}
	if len(b.MoveHistory()) != 1 {
		t.Errorf("source history length = %d, want 1", len(b.MoveHistory()))
	}
	if len(c.MoveHistory()) != 2 {
		t.Errorf("clone history length = %d, want 2", len(c.MoveHistory()))
	}
}

func TestLegalMovesWrongTurn(t *testing.T) {
	t.Parallel()

	b := New()
	if moves := b.LegalMoves(sq(t, "e7")); len(moves) != 0 {
		t.Errorf("LegalMoves(e7) = %v, want none on White's turn", moves)
	}
	if moves := b.LegalMoves(sq(t, "e4")); len(moves) != 0 {
		t.Errorf("LegalMoves(e4) = %v, want none for empty square", moves)
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, WithFEN("4r1k1/8/8/8/8/8/4B3/4K3 w - - 0 1"))
	for _, m := range b.LegalMoves(sq(t, "e2")) {
		t.Errorf("pinned bishop has move %s", m)
	}
}

func TestCastleMovesRook(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, WithFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"))
	play(t, b, "e1g1", "e8c8")

	checks := []struct {
		square string
		kind   PieceKind
		color  Color
	}{
		{"g1", King, White},
		{"f1", Rook, White},
		{"c8", King, Black},
		{"d8", Rook, Black},
	}
	for _, c := range checks {
		p, ok := b.PieceAt(sq(t, c.square))
		if !ok || p.Kind != c.kind || p.Color != c.color || !p.HasMoved {
			t.Errorf("%s = %+v, want moved %s %s", c.square, p, c.color, c.kind)
		}
	}
	for _, s := range []string{"e1", "h1", "e8", "a8"} {
		if p, ok := b.PieceAt(sq(t, s)); ok {
			t.Errorf("%s = %+v, want empty", s, p)
		}
	}
}

func TestUndo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		fen   string
		moves []string
	}{
		{"quiet", StartFEN, []string{"g1f3"}},
		{"capture", StartFEN, []string{"e2e4", "d7d5", "e4d5"}},
		{"en passant", StartFEN, []string{"e2e4", "a7a6", "e4e5", "d7d5", "e5d6"}},
		{"castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"e1c1", "e8g8"}},
		{"promotion capture", "1n5k/P7/8/8/8/8/8/K7 w - - 0 1", []string{"a7b8r"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := mustBoard(t, WithFEN(tt.fen))
			var fens []string
			for _, m := range tt.moves {
				fens = append(fens, b.FEN())
				play(t, b, m)
			}

			for i := len(tt.moves) - 1; i >= 0; i-- {
				m, ok := b.Undo()
				if !ok {
					t.Fatalf("Undo() returned false at ply %d", i)
				}
				if m.String() != tt.moves[i] {
					t.Errorf("Undo() = %s, want %s", m, tt.moves[i])
				}
				if got := b.FEN(); got != fens[i] {
					t.Errorf("FEN after undo = %q, want %q", got, fens[i])
				}
			}

			if _, ok := b.Undo(); ok {
				t.Error("Undo() on empty history returned true")
			}
		})
	}
}

func TestLastMoveSnapshots(t *testing.T) {
	t.Parallel()

	b := New()
	play(t, b, "e2e4", "d7d5", "e4d5")

	last, ok := b.LastMove()
	if !ok {
		t.Fatal("LastMove() returned false")
	}
	if last.Piece.Kind != Pawn || !last.Piece.HasMoved {
		t.Errorf("Piece = %+v, want the moved pawn before the capture", last.Piece)
	}
	if last.Captured.Kind != Pawn || last.Captured.Color != Black {
		t.Errorf("Captured = %+v, want black pawn", last.Captured)
	}
	if len(b.MoveHistory()) != 3 {
		t.Errorf("len(MoveHistory()) = %d, want 3", len(b.MoveHistory()))
	}
}

// TestRandomPlayoutsKeepKings plays random legal games and checks that every
// reachable board has one king per color and consistent state.
func TestRandomPlayoutsKeepKings(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	games := 20
	if testing.Short() {
		games = 4
	}

	for g := 0; g < games; g++ {
		b := New()
		for ply := 0; ply < 150 && !b.State().IsTerminal(); ply++ {
			moves := b.AllLegalMoves()
			if len(moves) == 0 {
				t.Fatalf("game %d ply %d: no moves in state %s\n%s", g, ply, b.State(), b)
			}
			m := moves[rng.Intn(len(moves))]
			if err := b.ApplyMove(m); err != nil {
				t.Fatalf("game %d ply %d: ApplyMove(%s): %v", g, ply, m, err)
			}

			for _, c := range []Color{White, Black} {
				if _, ok := b.KingSquare(c); !ok {
					t.Fatalf("game %d ply %d: %s king missing\n%s", g, ply, c, b)
				}
			}
			if b.IsInCheck(b.Turn().Other()) {
				t.Fatalf("game %d ply %d: %s left in check\n%s", g, ply, b.Turn().Other(), b)
			}
		}

		if b.State().IsTerminal() {
			if moves := b.AllLegalMoves(); len(moves) != 0 {
				t.Errorf("game %d: %s with %d legal moves", g, b.State(), len(moves))
			}
		}
	}
}

func TestEmptyOption(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, Empty())
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if p, ok := b.PieceAt(NewSquare(row, col)); ok {
				t.Fatalf("PieceAt(%s) = %s on an empty board", NewSquare(row, col), p)
			}
		}
	}
	if b.State() != Active {
		t.Errorf("State() = %s, want Active", b.State())
	}

	// The last setup option wins.
	b = mustBoard(t, Empty(), WithFEN(StartFEN))
	if got := b.FEN(); got != StartFEN {
		t.Errorf("FEN() after Empty, WithFEN = %q, want %q", got, StartFEN)
	}
}
