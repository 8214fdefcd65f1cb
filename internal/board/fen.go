package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// castleCorners pairs each castling letter with its king and rook squares.
var castleCorners = []struct {
	char  byte
	color Color
	king  Square
	rook  Square
}{
	{'K', White, NewSquare(7, 4), NewSquare(7, 7)},
	{'Q', White, NewSquare(7, 4), NewSquare(7, 0)},
	{'k', Black, NewSquare(0, 4), NewSquare(0, 7)},
	{'q', Black, NewSquare(0, 4), NewSquare(0, 0)},
}

// parseFEN builds a board from a FEN string. The half-move and full-move
// fields are optional. Kings and rooks count as moved unless a castling
// right keeps them unmoved; pawns count as moved off their start row.
func parseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return nil, fmt.Errorf("%w: need 4 to 6 fields, got %d", ErrInvalidFEN, len(parts))
	}

	b := &Board{enPassant: NoSquare, fullMove: 1}

	if err := parsePiecePlacement(b, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		b.turn = White
	case "b":
		b.turn = Black
	default:
		return nil, fmt.Errorf("%w: invalid side to move: %s", ErrInvalidFEN, parts[1])
	}

	if err := parseCastlingRights(b, parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid en passant square: %s", ErrInvalidFEN, parts[3])
		}
		// The pushed pawn stands one row past the target, seen from the pusher.
		pusher := b.turn.Other()
		pawn, ok := b.PieceAt(sq.Offset(pusher.forward(), 0))
		if sq.Row != pusher.pawnRow()+pusher.forward() || !ok || pawn.Kind != Pawn || pawn.Color != pusher {
			return nil, fmt.Errorf("%w: en passant square %s does not follow a double push", ErrInvalidFEN, sq)
		}
		b.enPassant = sq
	}

	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return nil, fmt.Errorf("%w: invalid half-move clock: %s", ErrInvalidFEN, parts[4])
		}
		b.halfMove = hmc
	}

	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 {
			return nil, fmt.Errorf("%w: invalid full-move number: %s", ErrInvalidFEN, parts[5])
		}
		b.fullMove = fmn
	}

	if err := b.validate(); err != nil {
		return nil, err
	}

	b.resolveState()
	return b, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != Size {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	for row, rankStr := range ranks {
		col := 0
		for _, c := range rankStr {
			if col >= Size {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, Size-row)
			}

			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}

			if c > unicode.MaxASCII {
				return fmt.Errorf("%w: invalid piece character: %c", ErrInvalidFEN, c)
			}
			piece, ok := PieceFromChar(byte(c))
			if !ok {
				return fmt.Errorf("%w: invalid piece character: %c", ErrInvalidFEN, c)
			}
			switch piece.Kind {
			case Pawn:
				piece.HasMoved = row != piece.Color.pawnRow()
			case King, Rook:
				piece.HasMoved = true
			}
			b.set(NewSquare(row, col), piece)
			col++
		}

		if col != Size {
			return fmt.Errorf("%w: invalid number of squares in rank %d: got %d", ErrInvalidFEN, Size-row, col)
		}
	}

	return nil
}

// parseCastlingRights marks the king and rook of each listed right as unmoved.
func parseCastlingRights(b *Board, castling string) error {
	if castling == "-" {
		return nil
	}

	for i := 0; i < len(castling); i++ {
		found := false
		for _, cc := range castleCorners {
			if cc.char != castling[i] {
				continue
			}
			found = true

			king, rook := b.at(cc.king), b.at(cc.rook)
			if king.Kind != King || king.Color != cc.color || rook.Kind != Rook || rook.Color != cc.color {
				return fmt.Errorf("%w: castling right %c without king and rook in place", ErrInvalidFEN, cc.char)
			}
			king.HasMoved = false
			rook.HasMoved = false
			b.set(cc.king, king)
			b.set(cc.rook, rook)
		}
		if !found {
			return fmt.Errorf("%w: invalid castling character: %c", ErrInvalidFEN, castling[i])
		}
	}

	return nil
}

// validate checks that the position could occur in play.
func (b *Board) validate() error {
	var kings [2]int
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := b.grid[row][col]
			switch {
			case p.Kind == King:
				kings[p.Color]++
			case p.Kind == Pawn && (row == 0 || row == Size-1):
				return fmt.Errorf("%w: pawns cannot be on rank 1 or 8", ErrInvalidFEN)
			}
		}
	}

	if kings[White] != 1 {
		return fmt.Errorf("%w: white must have exactly one king", ErrInvalidFEN)
	}
	if kings[Black] != 1 {
		return fmt.Errorf("%w: black must have exactly one king", ErrInvalidFEN)
	}
	if b.IsInCheck(b.turn.Other()) {
		return fmt.Errorf("%w: side not to move is in check", ErrInvalidFEN)
	}

	return nil
}

// castlingRights returns the FEN castling field derived from unmoved kings and rooks.
func (b *Board) castlingRights() string {
	var sb strings.Builder
	for _, cc := range castleCorners {
		king, rook := b.at(cc.king), b.at(cc.rook)
		if king.Kind == King && king.Color == cc.color && !king.HasMoved &&
			rook.Kind == Rook && rook.Color == cc.color && !rook.HasMoved {
			sb.WriteByte(cc.char)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// FEN returns the FEN representation of the board.
func (b *Board) FEN() string {
	var sb strings.Builder

	// Piece placement
	for row := 0; row < Size; row++ {
		empty := 0
		for col := 0; col < Size; col++ {
			p := b.grid[row][col]
			if p.IsZero() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < Size-1 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if b.turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.castlingRights())

	sb.WriteByte(' ')
	sb.WriteString(b.enPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfMove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullMove))

	return sb.String()
}
