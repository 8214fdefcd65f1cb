package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/input"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
	MenuColor      color.RGBA
	MenuHover      color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180}, // Yellow highlight
		LegalMoveColor: color.RGBA{130, 151, 105, 200}, // Green dots
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180}, // Red
		Background:     color.RGBA{40, 44, 52, 255},
		TextColor:      color.RGBA{220, 220, 220, 255},
		MenuColor:      color.RGBA{60, 64, 72, 240},
		MenuHover:      color.RGBA{80, 84, 92, 255},
	}
}

// Renderer handles all board drawing. Positions come from the layout in
// logical pixels and are multiplied by the HiDPI scale when drawn.
type Renderer struct {
	sprites *SpriteManager
	theme   *Theme
	layout  input.Layout
	scale   float64
}

// NewRenderer creates a renderer for the given board layout.
func NewRenderer(l input.Layout) *Renderer {
	return &Renderer{
		sprites: Sprites(),
		theme:   DefaultTheme(),
		layout:  l,
		scale:   1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
}

// SetLayout replaces the board geometry, e.g. after flipping.
func (r *Renderer) SetLayout(l input.Layout) {
	r.layout = l
}

// s returns the scaled value for rendering.
func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// DrawBoard draws the chess board squares and coordinates.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			c := r.theme.LightSquare
			if (row+col)%2 == 1 {
				c = r.theme.DarkSquare
			}
			r.fillSquare(screen, board.NewSquare(row, col), c)
		}
	}

	r.drawCoordinates(screen)
}

// drawCoordinates draws file letters along the bottom edge and rank numbers
// along the left edge, in the color of the opposite square.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	face := GetRegularFace(coordFontSize, r.scale)
	size := r.layout.SquareSize

	for i := 0; i < board.Size; i++ {
		bottom, left := board.NewSquare(board.Size-1, i), board.NewSquare(i, 0)
		if r.layout.Flipped {
			bottom, left = board.NewSquare(0, board.Size-1-i), board.NewSquare(board.Size-1-i, board.Size-1)
		}

		x, y := r.layout.Origin(bottom)
		drawText(screen, bottom.String()[:1], face, float64(x+size-10), float64(y+size-15), r.scale, r.coordColor(bottom))

		x, y = r.layout.Origin(left)
		drawText(screen, left.String()[1:], face, float64(x+3), float64(y+2), r.scale, r.coordColor(left))
	}
}

func (r *Renderer) coordColor(sq board.Square) color.RGBA {
	if (sq.Row+sq.Col)%2 == 1 {
		return r.theme.LightSquare
	}
	return r.theme.DarkSquare
}

// DrawHighlights draws the last move, the selection and, when hints are on,
// the legal targets of the selected piece.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, b *board.Board, ctrl *input.Controller, showHints bool) {
	if last, ok := b.LastMove(); ok {
		r.fillSquare(screen, last.From, r.theme.LastMoveColor)
		r.fillSquare(screen, last.To, r.theme.LastMoveColor)
	}

	selected, ok := ctrl.Selected()
	if !ok {
		return
	}
	r.fillSquare(screen, selected, r.theme.SelectedSquare)

	if !showHints {
		return
	}
	seen := make(map[board.Square]bool)
	for _, m := range ctrl.Targets() {
		// Promotions list one move per kind on the same square.
		if seen[m.To] {
			continue
		}
		seen[m.To] = true
		r.drawLegalMoveIndicator(screen, m)
	}
}

// DrawCheck highlights the king of the side to move when it is in check.
func (r *Renderer) DrawCheck(screen *ebiten.Image, b *board.Board) {
	if st := b.State(); st != board.Check && st != board.Checkmate {
		return
	}
	if kingSq, ok := b.KingSquare(b.Turn()); ok {
		r.fillSquare(screen, kingSq, r.theme.CheckColor)
	}
}

// fillSquare draws a colored overlay on a square.
func (r *Renderer) fillSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if !sq.IsValid() {
		return
	}
	x, y := r.layout.Origin(sq)
	size := r.s(r.layout.SquareSize)
	vector.DrawFilledRect(screen, r.s(x), r.s(y), size, size, c, false)
}

// drawLegalMoveIndicator draws a dot on an empty target and a ring on a capture.
func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, m board.Move) {
	x, y := r.layout.Origin(m.To)
	size := r.s(r.layout.SquareSize)
	cx := r.s(x) + size/2
	cy := r.s(y) + size/2

	if m.IsCapture() {
		vector.StrokeCircle(screen, cx, cy, size*0.45, size*0.08, r.theme.LegalMoveColor, true)
		return
	}
	vector.DrawFilledCircle(screen, cx, cy, size*0.15, r.theme.LegalMoveColor, true)
}

// DrawPieces draws all pieces on the board with optional shake animations.
func (r *Renderer) DrawPieces(screen *ebiten.Image, b *board.Board, anims *AnimationManager) {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			sq := board.NewSquare(row, col)
			p, ok := b.PieceAt(sq)
			if !ok {
				continue
			}

			x, y := r.layout.Origin(sq)
			fx, fy := float64(x), float64(y)
			if anims != nil {
				dx, dy := anims.GetShakeOffset(sq)
				fx += dx
				fy += dy
			}
			r.sprites.DrawPieceAt(screen, p, fx*r.scale, fy*r.scale, r.scale)
		}
	}
}

// DrawPromotionMenu draws the promotion choices for a pawn of color c over
// a dimmed board. The cell under the pointer is highlighted.
func (r *Renderer) DrawPromotionMenu(screen *ebiten.Image, c board.Color, mx, my int) {
	bounds := r.layout.Bounds()
	vector.DrawFilledRect(screen, r.s(bounds.Min.X), r.s(bounds.Min.Y), r.s(bounds.Dx()), r.s(bounds.Dy()), color.RGBA{0, 0, 0, 120}, false)

	hovered, hasHover := r.layout.PromotionChoiceAt(mx, my)
	for i, k := range board.PromotionKinds {
		cell := r.layout.PromotionCell(i)
		bg := r.theme.MenuColor
		if hasHover && hovered == k {
			bg = r.theme.MenuHover
		}
		vector.DrawFilledRect(screen, r.s(cell.Min.X), r.s(cell.Min.Y), r.s(cell.Dx()), r.s(cell.Dy()), bg, false)
		vector.StrokeRect(screen, r.s(cell.Min.X), r.s(cell.Min.Y), r.s(cell.Dx()), r.s(cell.Dy()), 1, r.theme.TextColor, false)
		r.sprites.DrawPieceAt(screen, board.NewPiece(c, k), float64(cell.Min.X)*r.scale, float64(cell.Min.Y)*r.scale, r.scale)
	}
}

// DrawFlash draws a fading overlay on a square.
func (r *Renderer) DrawFlash(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	r.fillSquare(screen, sq, c)
}

// Layout returns the board geometry.
func (r *Renderer) Layout() input.Layout {
	return r.layout
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}
