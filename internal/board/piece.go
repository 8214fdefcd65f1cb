package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// forward is the row delta of a pawn push.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

// backRow is the row holding the color's king and rooks at the start.
func (c Color) backRow() int {
	if c == White {
		return Size - 1
	}
	return 0
}

// pawnRow is the row the color's pawns start on.
func (c Color) pawnRow() int {
	return c.backRow() + c.forward()
}

// promotionRow is the last rank from the color's point of view.
func (c Color) promotionRow() int {
	return c.Other().backRow()
}

// PieceKind represents the kind of a chess piece.
// The zero value is NoKind so that a zero Piece is an empty square.
type PieceKind uint8

const (
	NoKind PieceKind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// PromotionKinds lists the kinds a pawn may promote to, in menu order.
var PromotionKinds = []PieceKind{Queen, Rook, Bishop, Knight}

// String returns the piece kind name.
func (k PieceKind) String() string {
	switch k {
	case King:
		return "King"
	case Queen:
		return "Queen"
	case Rook:
		return "Rook"
	case Bishop:
		return "Bishop"
	case Knight:
		return "Knight"
	case Pawn:
		return "Pawn"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece kind (lowercase).
func (k PieceKind) Char() byte {
	chars := []byte{' ', 'k', 'q', 'r', 'b', 'n', 'p'}
	if k > Pawn {
		return ' '
	}
	return chars[k]
}

// Piece is a value owned by exactly one board square. It carries no
// reference back to the board, so copying a grid of pieces copies the pieces.
type Piece struct {
	Color    Color
	Kind     PieceKind
	HasMoved bool
}

// NewPiece creates an unmoved piece.
func NewPiece(c Color, k PieceKind) Piece {
	return Piece{Color: c, Kind: k}
}

// IsZero returns true for the empty-square value.
func (p Piece) IsZero() bool {
	return p.Kind == NoKind
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p.IsZero() {
		return " "
	}
	c := p.Kind.Char()
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return string(c)
}

// PieceFromChar converts a FEN character to an unmoved piece.
func PieceFromChar(c byte) (Piece, bool) {
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
		c -= 'a' - 'A'
	}

	var k PieceKind
	switch c {
	case 'K':
		k = King
	case 'Q':
		k = Queen
	case 'R':
		k = Rook
	case 'B':
		k = Bishop
	case 'N':
		k = Knight
	case 'P':
		k = Pawn
	default:
		return Piece{}, false
	}

	return NewPiece(color, k), true
}
