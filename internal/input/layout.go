// Package input maps pointer positions to board squares and turns clicks into
// moves: selection, target application and the deferred promotion choice.
package input

import (
	"image"

	"github.com/hailam/chessrules/internal/board"
)

// Layout is the on-screen geometry of the board.
type Layout struct {
	OriginX, OriginY int
	SquareSize       int
	Flipped          bool // Black at the bottom
}

// BoardSize returns the board width and height in pixels.
func (l Layout) BoardSize() int {
	return l.SquareSize * board.Size
}

// Bounds returns the board rectangle.
func (l Layout) Bounds() image.Rectangle {
	return image.Rect(l.OriginX, l.OriginY, l.OriginX+l.BoardSize(), l.OriginY+l.BoardSize())
}

// SquareAt converts screen coordinates to a board square.
func (l Layout) SquareAt(x, y int) (board.Square, bool) {
	if l.SquareSize <= 0 || !image.Pt(x, y).In(l.Bounds()) {
		return board.NoSquare, false
	}

	row := (y - l.OriginY) / l.SquareSize
	col := (x - l.OriginX) / l.SquareSize
	if l.Flipped {
		row, col = board.Size-1-row, board.Size-1-col
	}
	return board.NewSquare(row, col), true
}

// Origin returns the top-left screen corner of sq.
func (l Layout) Origin(sq board.Square) (x, y int) {
	row, col := sq.Row, sq.Col
	if l.Flipped {
		row, col = board.Size-1-row, board.Size-1-col
	}
	return l.OriginX + col*l.SquareSize, l.OriginY + row*l.SquareSize
}

// PromotionMenu returns the rectangle of the promotion menu: one row of
// cells, one per promotion kind, centred on the board.
func (l Layout) PromotionMenu() image.Rectangle {
	w := l.SquareSize * len(board.PromotionKinds)
	x := l.OriginX + (l.BoardSize()-w)/2
	y := l.OriginY + (l.BoardSize()-l.SquareSize)/2
	return image.Rect(x, y, x+w, y+l.SquareSize)
}

// PromotionCell returns the rectangle of the i-th promotion choice.
func (l Layout) PromotionCell(i int) image.Rectangle {
	menu := l.PromotionMenu()
	x := menu.Min.X + i*l.SquareSize
	return image.Rect(x, menu.Min.Y, x+l.SquareSize, menu.Max.Y)
}

// PromotionChoiceAt returns the kind under (x, y) in the promotion menu.
func (l Layout) PromotionChoiceAt(x, y int) (board.PieceKind, bool) {
	p := image.Pt(x, y)
	for i, k := range board.PromotionKinds {
		if p.In(l.PromotionCell(i)) {
			return k, true
		}
	}
	return board.NoKind, false
}
