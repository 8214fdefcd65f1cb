// Package board implements the chess rules engine: board state, per-piece
// move generation, legality filtering and game-state resolution.
package board

import "fmt"

// Size is the number of rows and columns on the board.
const Size = 8

// Square identifies a board cell by row and column, each in [0, 8).
// Row 0 is Black's back rank (rank 8) and row 7 is White's back rank (rank 1);
// column 0 is the a-file.
type Square struct {
	Row, Col int
}

// NoSquare is the sentinel for "no square", e.g. no en passant target.
var NoSquare = Square{Row: -1, Col: -1}

// NewSquare creates a square from row and column.
func NewSquare(row, col int) Square {
	return Square{Row: row, Col: col}
}

// IsValid returns true if the square lies on the board.
func (sq Square) IsValid() bool {
	return sq.Row >= 0 && sq.Row < Size && sq.Col >= 0 && sq.Col < Size
}

// Offset returns the square dr rows and dc columns away. The result may be off
// the board; check it with IsValid.
func (sq Square) Offset(dr, dc int) Square {
	return Square{Row: sq.Row + dr, Col: sq.Col + dc}
}

// String returns the algebraic name of the square (e.g., "e4"), or "-" when
// the square is off the board.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.Col, '8'-sq.Row)
}

// ParseSquare parses a square name (e.g., "e4").
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	col := int(s[0]) - 'a'
	row := '8' - int(s[1])
	sq := NewSquare(row, col)
	if !sq.IsValid() {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	return sq, nil
}
