package input

import (
	"testing"

	"github.com/hailam/chessrules/internal/board"
)

func TestSquareAt(t *testing.T) {
	t.Parallel()

	l := Layout{OriginX: 10, OriginY: 20, SquareSize: 50}

	tests := []struct {
		name   string
		layout Layout
		x, y   int
		want   board.Square
		wantOK bool
	}{
		{"top left", l, 10, 20, board.NewSquare(0, 0), true},
		{"bottom right", l, 409, 419, board.NewSquare(7, 7), true},
		{"inside e2", l, 10 + 4*50 + 25, 20 + 6*50 + 1, board.NewSquare(6, 4), true},
		{"left of board", l, 9, 100, board.NoSquare, false},
		{"below board", l, 100, 420, board.NoSquare, false},
		{"flipped top left", Layout{OriginX: 10, OriginY: 20, SquareSize: 50, Flipped: true}, 10, 20, board.NewSquare(7, 7), true},
		{"zero size", Layout{}, 0, 0, board.NoSquare, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tt.layout.SquareAt(tt.x, tt.y)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("SquareAt(%d, %d) = %v, %v, want %v, %v", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestOriginInvertsSquareAt(t *testing.T) {
	t.Parallel()

	for _, flipped := range []bool{false, true} {
		l := Layout{OriginX: 5, OriginY: 7, SquareSize: 64, Flipped: flipped}
		for row := 0; row < board.Size; row++ {
			for col := 0; col < board.Size; col++ {
				sq := board.NewSquare(row, col)
				x, y := l.Origin(sq)
				got, ok := l.SquareAt(x+l.SquareSize/2, y+l.SquareSize/2)
				if !ok || got != sq {
					t.Errorf("flipped=%v: SquareAt(Origin(%v)) = %v, %v", flipped, sq, got, ok)
				}
			}
		}
	}
}

func TestPromotionChoiceAt(t *testing.T) {
	t.Parallel()

	l := Layout{SquareSize: 80}
	menu := l.PromotionMenu()
	if menu.Dx() != 4*80 || menu.Dy() != 80 {
		t.Fatalf("PromotionMenu() = %v, want 320x80", menu)
	}
	if menu.Min.X != 160 || menu.Min.Y != 280 {
		t.Errorf("PromotionMenu() origin = %v, want (160,280)", menu.Min)
	}

	for i, want := range board.PromotionKinds {
		cell := l.PromotionCell(i)
		got, ok := l.PromotionChoiceAt(cell.Min.X+1, cell.Min.Y+1)
		if !ok || got != want {
			t.Errorf("PromotionChoiceAt(cell %d) = %s, %v, want %s", i, got, ok, want)
		}
	}

	if _, ok := l.PromotionChoiceAt(0, 0); ok {
		t.Error("PromotionChoiceAt outside the menu returned a choice")
	}
}
