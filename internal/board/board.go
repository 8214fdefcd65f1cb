package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSource is returned when a move starts on an empty square.
	ErrInvalidSource = errors.New("no piece on source square")
	// ErrWrongTurn is returned when the moved piece belongs to the side not to move.
	ErrWrongTurn = errors.New("not this side's turn")
	// ErrIllegalTarget is returned when a move is not in the current legal set.
	ErrIllegalTarget = errors.New("illegal move")
	// ErrInvalidFEN is returned when a setup string is rejected.
	ErrInvalidFEN = errors.New("invalid FEN")
)

// record holds what Undo needs besides the move itself.
type record struct {
	move      Move
	enPassant Square
	state     GameState
	halfMove  int
}

// Board is the 8x8 game state. It is mutated only through ApplyMove and Undo.
type Board struct {
	grid      [Size][Size]Piece
	turn      Color
	enPassant Square
	state     GameState
	history   []record

	halfMove int
	fullMove int
}

type boardConfig struct {
	fen    string
	empty  bool
	pieces []placement
	turn   Color
}

type placement struct {
	sq Square
	p  Piece
}

// Option configures NewBoard.
type Option func(*boardConfig)

// WithFEN sets up the board from a FEN string instead of the initial position.
func WithFEN(fen string) Option {
	return func(cfg *boardConfig) {
		cfg.fen = fen
		cfg.empty = false
	}
}

// Empty starts from a board with no pieces. Combine with WithPiece.
func Empty() Option {
	return func(cfg *boardConfig) {
		cfg.empty = true
	}
}

// WithPiece places p on sq after the rest of the setup is done.
func WithPiece(sq Square, p Piece) Option {
	return func(cfg *boardConfig) {
		cfg.pieces = append(cfg.pieces, placement{sq: sq, p: p})
	}
}

// WithTurn overrides the side to move.
func WithTurn(c Color) Option {
	return func(cfg *boardConfig) {
		cfg.turn = c
	}
}

// New returns a board in the standard initial position.
func New() *Board {
	b, err := parseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return b
}

// NewBoard builds a board from options. Without options it is the standard
// initial position. The game state is resolved only when both kings are on
// the board; otherwise it stays Active.
func NewBoard(opts ...Option) (*Board, error) {
	cfg := &boardConfig{
		fen:  StartFEN,
		turn: NoColor,
	}
	for _, f := range opts {
		f(cfg)
	}

	b := &Board{enPassant: NoSquare, fullMove: 1}
	if !cfg.empty {
		var err error
		if b, err = parseFEN(cfg.fen); err != nil {
			return nil, err
		}
	}

	for _, pl := range cfg.pieces {
		if !pl.sq.IsValid() {
			return nil, fmt.Errorf("invalid square for %s %s: %v", pl.p.Color, pl.p.Kind, pl.sq)
		}
		b.set(pl.sq, pl.p)
	}
	if cfg.turn != NoColor {
		b.turn = cfg.turn
	}

	b.state = Active
	_, whiteKing := b.KingSquare(White)
	_, blackKing := b.KingSquare(Black)
	if whiteKing && blackKing {
		b.resolveState()
	}

	return b, nil
}

// Clone returns an independent copy of the board. History is not copied.
func (b *Board) Clone() *Board {
	c := *b
	c.history = nil
	return &c
}

func (b *Board) at(sq Square) Piece {
	return b.grid[sq.Row][sq.Col]
}

func (b *Board) set(sq Square, p Piece) {
	b.grid[sq.Row][sq.Col] = p
}

// PieceAt returns the piece on sq, if any.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	if !sq.IsValid() {
		return Piece{}, false
	}
	p := b.at(sq)
	return p, !p.IsZero()
}

// Turn returns the side to move.
func (b *Board) Turn() Color {
	return b.turn
}

// State returns the game state for the side to move.
func (b *Board) State() GameState {
	return b.state
}

// Winner returns the winning color after checkmate.
func (b *Board) Winner() (Color, bool) {
	if b.state != Checkmate {
		return NoColor, false
	}
	return b.turn.Other(), true
}

// EnPassantTarget returns the square skipped by the last double pawn push.
func (b *Board) EnPassantTarget() (Square, bool) {
	return b.enPassant, b.enPassant.IsValid()
}

// FullMoveNumber returns the move counter, starting at 1 and incremented after Black moves.
func (b *Board) FullMoveNumber() int {
	return b.fullMove
}

// MoveHistory returns the moves applied to this board, oldest first.
func (b *Board) MoveHistory() []Move {
	moves := make([]Move, len(b.history))
	for i, r := range b.history {
		moves[i] = r.move
	}
	return moves
}

// LastMove returns the most recently applied move.
func (b *Board) LastMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	return b.history[len(b.history)-1].move, true
}

// KingSquare returns the square of c's king.
func (b *Board) KingSquare(c Color) (Square, bool) {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := b.grid[row][col]
			if p.Kind == King && p.Color == c {
				return NewSquare(row, col), true
			}
		}
	}
	return NoSquare, false
}

// IsSquareUnderAttack returns true if any piece not of color c attacks sq.
func (b *Board) IsSquareUnderAttack(sq Square, c Color) bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := b.grid[row][col]
			if p.IsZero() || p.Color == c {
				continue
			}
			for _, m := range CandidateMoves(b, NewSquare(row, col), true) {
				if m.To == sq {
					return true
				}
			}
		}
	}
	return false
}

// IsInCheck returns true if c's king is attacked. A board without that king
// is never in check.
func (b *Board) IsInCheck(c Color) bool {
	king, ok := b.KingSquare(c)
	if !ok {
		return false
	}
	return b.IsSquareUnderAttack(king, c)
}

// LegalMoves returns the legal moves of the piece on sq. The result is empty
// when sq is empty or holds a piece of the side not to move.
func (b *Board) LegalMoves(sq Square) []Move {
	p, ok := b.PieceAt(sq)
	if !ok || p.Color != b.turn {
		return nil
	}

	var legal []Move
	for _, m := range CandidateMoves(b, sq, false) {
		if b.isSafe(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// AllLegalMoves returns the legal moves of every piece of the side to move.
func (b *Board) AllLegalMoves() []Move {
	var moves []Move
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			moves = append(moves, b.LegalMoves(NewSquare(row, col))...)
		}
	}
	return moves
}

// isSafe plays m on a clone and reports whether the mover's king survives.
// Capturing a king is never legal.
func (b *Board) isSafe(m Move) bool {
	if m.Captured.Kind == King {
		return false
	}
	c := b.Clone()
	if err := c.apply(m, false); err != nil {
		return false
	}
	return !c.IsInCheck(m.Piece.Color)
}

// hasLegalMoves returns true as soon as one legal move is found for the side to move.
func (b *Board) hasLegalMoves() bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := b.grid[row][col]
			if p.IsZero() || p.Color != b.turn {
				continue
			}
			for _, m := range CandidateMoves(b, NewSquare(row, col), false) {
				if b.isSafe(m) {
					return true
				}
			}
		}
	}
	return false
}

func (b *Board) resolveState() {
	inCheck := b.IsInCheck(b.turn)
	canMove := b.hasLegalMoves()

	switch {
	case inCheck && canMove:
		b.state = Check
	case inCheck:
		b.state = Checkmate
	case canMove:
		b.state = Active
	default:
		b.state = Stalemate
	}
}

// ApplyMove validates m against the current legal set and applies it.
// Nothing changes when an error is returned. A promotion move must carry
// its kind (see Move.WithPromotion).
func (b *Board) ApplyMove(m Move) error {
	p, ok := b.PieceAt(m.From)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidSource, m.From)
	}
	if p.Color != b.turn {
		return fmt.Errorf("%w: %s piece on %s, %s to move", ErrWrongTurn, p.Color, m.From, b.turn)
	}
	if m.NeedsPromotionChoice() {
		return fmt.Errorf("%w: %s needs a promotion kind", ErrIllegalTarget, m)
	}

	for _, legal := range b.LegalMoves(m.From) {
		if legal.Equal(m) {
			return b.apply(legal, true)
		}
	}
	return fmt.Errorf("%w: %s", ErrIllegalTarget, m)
}

// castleRookSquares returns where the rook starts and ends for a castle move.
func castleRookSquares(m Move) (from, to Square) {
	if m.To.Col > m.From.Col {
		return m.From.Offset(0, 3), m.From.Offset(0, 1)
	}
	return m.From.Offset(0, -4), m.From.Offset(0, -1)
}

// apply mutates the board without checking legality. The legality filter
// calls it on clones with resolve=false.
func (b *Board) apply(m Move, resolve bool) error {
	p, ok := b.PieceAt(m.From)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidSource, m.From)
	}
	if p.Color != b.turn {
		return fmt.Errorf("%w: %s piece on %s", ErrWrongTurn, p.Color, m.From)
	}

	m.Piece = p
	m.Captured = b.at(m.To)
	rec := record{enPassant: b.enPassant, state: b.state, halfMove: b.halfMove}
	b.enPassant = NoSquare

	if m.Castle {
		rookFrom, rookTo := castleRookSquares(m)
		rook := b.at(rookFrom)
		rook.HasMoved = true
		b.set(rookTo, rook)
		b.set(rookFrom, Piece{})
	}

	if m.EnPassant {
		victim := NewSquare(m.From.Row, m.To.Col)
		m.Captured = b.at(victim)
		b.set(victim, Piece{})
	}

	b.set(m.From, Piece{})
	moved := p
	if m.Promotion {
		moved = NewPiece(p.Color, m.PromoteTo)
	}
	moved.HasMoved = true
	b.set(m.To, moved)

	if p.Kind == Pawn && abs(m.To.Row-m.From.Row) == 2 {
		b.enPassant = NewSquare((m.From.Row+m.To.Row)/2, m.From.Col)
	}

	if p.Kind == Pawn || m.IsCapture() {
		b.halfMove = 0
	} else {
		b.halfMove++
	}
	if p.Color == Black {
		b.fullMove++
	}

	rec.move = m
	b.history = append(b.history, rec)
	b.turn = b.turn.Other()

	if resolve {
		b.resolveState()
	}
	return nil
}

// Undo reverts the last applied move and returns it.
func (b *Board) Undo() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	rec := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	m := rec.move

	b.set(m.To, Piece{})
	b.set(m.From, m.Piece)
	if m.EnPassant {
		b.set(NewSquare(m.From.Row, m.To.Col), m.Captured)
	} else {
		b.set(m.To, m.Captured)
	}

	if m.Castle {
		rookFrom, rookTo := castleRookSquares(m)
		rook := b.at(rookTo)
		rook.HasMoved = false
		b.set(rookFrom, rook)
		b.set(rookTo, Piece{})
	}

	b.turn = m.Piece.Color
	b.enPassant = rec.enPassant
	b.state = rec.state
	b.halfMove = rec.halfMove
	if m.Piece.Color == Black {
		b.fullMove--
	}

	return m, true
}

// String returns a text dump of the board, White at the bottom.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < Size; row++ {
		fmt.Fprintf(&sb, "%d  ", Size-row)
		for col := 0; col < Size; col++ {
			p := b.grid[row][col]
			if p.IsZero() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", b.turn)
	fmt.Fprintf(&sb, "En passant: %s\n", b.enPassant)
	fmt.Fprintf(&sb, "State: %s\n", b.state)
	return sb.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
