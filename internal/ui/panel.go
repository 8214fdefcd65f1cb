package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Panel dimensions
const (
	PanelPadding   = 20
	SectionSpacing = 24
	ButtonHeight   = 40
	ToggleHeight   = 34
	SectionLabelH  = 20
	StatusBarH     = 90
	moveRowHeight  = 22
)

// Panel colors
var (
	panelBg         = color.RGBA{38, 40, 45, 255}
	buttonBg        = color.RGBA{50, 54, 60, 255}
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}
	buttonPressedBg = color.RGBA{40, 44, 50, 255}
	buttonBorder    = color.RGBA{70, 75, 82, 255}
	buttonActiveBg  = color.RGBA{76, 132, 96, 255}
	accentColor     = color.RGBA{76, 175, 120, 255}
	accentHover     = color.RGBA{96, 195, 140, 255}
	accentPressed   = color.RGBA{56, 155, 100, 255}
	textPrimary     = color.RGBA{240, 240, 245, 255}
	textSecondary   = color.RGBA{160, 165, 175, 255}
	textMuted       = color.RGBA{120, 125, 135, 255}
	dividerColor    = color.RGBA{60, 65, 72, 255}
	moveRowAlt      = color.RGBA{44, 48, 54, 255}
	statusCheck     = color.RGBA{255, 120, 100, 255}
	statusGameOver  = color.RGBA{255, 200, 80, 255} // Yellow for game over
)

// Button represents a clickable UI element.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	Active     func() bool // toggles only
	hovered    bool
	pressed    bool
}

func (b *Button) contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Panel is the side panel with controls, move history and status.
type Panel struct {
	game *Game

	newGameBtn *Button
	actionBtns []*Button // Undo, Flip
	toggleBtns []*Button // Hints, Sound

	// Move history scroll
	scrollY    int
	maxScrollY int
	followEnd  bool
}

// NewPanel creates a new panel for the given game.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g, followEnd: true}
	p.createButtons()
	return p
}

// createButtons lays out all panel buttons.
func (p *Panel) createButtons() {
	contentX := BoardSize + PanelPadding
	contentW := PanelWidth - PanelPadding*2
	halfW := (contentW - 8) / 2

	y := PanelPadding + 8
	p.newGameBtn = &Button{
		X: contentX, Y: y, W: contentW, H: ButtonHeight,
		Label:   "New Game",
		OnClick: p.game.NewGameAction,
	}

	y += ButtonHeight + 8
	p.actionBtns = []*Button{
		{X: contentX, Y: y, W: halfW, H: ButtonHeight - 6, Label: "Undo", OnClick: p.game.UndoAction},
		{X: contentX + halfW + 8, Y: y, W: halfW, H: ButtonHeight - 6, Label: "Flip Board", OnClick: p.game.FlipAction},
	}

	y += ButtonHeight - 6 + 8
	p.toggleBtns = []*Button{
		{X: contentX, Y: y, W: halfW, H: ToggleHeight, Label: "Hints",
			OnClick: p.game.ToggleHintsAction, Active: p.game.ShowHints},
		{X: contentX + halfW + 8, Y: y, W: halfW, H: ToggleHeight, Label: "Sound",
			OnClick: p.game.ToggleSoundAction, Active: p.game.SoundEnabled},
	}
}

func (p *Panel) buttons() []*Button {
	all := []*Button{p.newGameBtn}
	all = append(all, p.actionBtns...)
	return append(all, p.toggleBtns...)
}

// historyY returns the top of the move history section.
func (p *Panel) historyY() int {
	last := p.toggleBtns[0]
	return last.Y + last.H + SectionSpacing
}

// HandleInput processes input for the panel. Returns true if input was handled.
func (p *Panel) HandleInput(in *InputHandler) bool {
	mx, my := in.MousePosition()

	// Scroll wheel over the move history
	if wheelY := in.WheelY(); wheelY != 0 && mx >= BoardSize && my >= p.historyY() && my < ScreenHeight-StatusBarH {
		p.scrollY -= int(wheelY * 30) // 30px per scroll tick
		p.clampScroll()
		p.followEnd = p.scrollY >= p.maxScrollY
	}

	for _, btn := range p.buttons() {
		btn.hovered = btn.contains(mx, my)
		btn.pressed = btn.hovered && in.IsLeftPressed()
	}

	if !in.IsLeftJustPressed() {
		return false
	}
	for _, btn := range p.buttons() {
		if btn.hovered {
			btn.OnClick()
			return true
		}
	}
	// Clicks on the panel background never reach the board.
	return mx >= BoardSize
}

// AnyButtonHovered returns true if any button in the panel is hovered.
func (p *Panel) AnyButtonHovered() bool {
	for _, btn := range p.buttons() {
		if btn.hovered {
			return true
		}
	}
	return false
}

// ScrollToEnd keeps the newest move in view on the next draw.
func (p *Panel) ScrollToEnd() {
	p.followEnd = true
}

func (p *Panel) clampScroll() {
	if p.scrollY > p.maxScrollY {
		p.scrollY = p.maxScrollY
	}
	if p.scrollY < 0 {
		p.scrollY = 0
	}
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image, scale float64) {
	fillRect(screen, BoardSize, 0, PanelWidth, ScreenHeight, panelBg, scale)

	p.drawPrimaryButton(screen, p.newGameBtn, scale)
	for _, btn := range p.actionBtns {
		p.drawSecondaryButton(screen, btn, scale)
	}
	for _, btn := range p.toggleBtns {
		p.drawSecondaryButton(screen, btn, scale)
	}

	historyY := p.historyY()
	drawText(screen, "Moves", GetRegularFace(defaultFontSize, scale), BoardSize+PanelPadding, float64(historyY), scale, textMuted)
	p.drawMoveHistory(screen, historyY+SectionLabelH+4, scale)

	p.drawStatusBar(screen, scale)
}

func (p *Panel) drawPrimaryButton(screen *ebiten.Image, btn *Button, scale float64) {
	bg := accentColor
	if btn.pressed {
		bg = accentPressed
	} else if btn.hovered {
		bg = accentHover
	}
	fillRect(screen, btn.X, btn.Y, btn.W, btn.H, bg, scale)

	// Border for depth
	border := color.RGBA{56, 155, 100, 255}
	if btn.hovered {
		border = color.RGBA{116, 215, 160, 255}
	}
	strokeRect(screen, btn.X, btn.Y, btn.W, btn.H, border, scale)

	drawTextCentered(screen, btn.Label, GetBoldFace(titleFontSize, scale),
		float64(btn.X+btn.W/2), float64(btn.Y+btn.H/2), scale, textPrimary)
}

func (p *Panel) drawSecondaryButton(screen *ebiten.Image, btn *Button, scale float64) {
	active := btn.Active != nil && btn.Active()

	bg := buttonBg
	switch {
	case active:
		bg = buttonActiveBg
	case btn.pressed:
		bg = buttonPressedBg
	case btn.hovered:
		bg = buttonHoverBg
	}
	fillRect(screen, btn.X, btn.Y, btn.W, btn.H, bg, scale)

	border := buttonBorder
	if active {
		border = buttonActiveBg
	} else if btn.hovered {
		border = accentColor // Green border on hover
	}
	strokeRect(screen, btn.X, btn.Y, btn.W, btn.H, border, scale)

	textColor := textSecondary
	if active {
		textColor = textPrimary
	}
	drawTextCentered(screen, btn.Label, GetRegularFace(defaultFontSize, scale),
		float64(btn.X+btn.W/2), float64(btn.Y+btn.H/2), scale, textColor)
}

func (p *Panel) drawMoveHistory(screen *ebiten.Image, startY int, scale float64) {
	face := GetRegularFace(defaultFontSize, scale)
	x := BoardSize + PanelPadding

	moves := p.game.Board().MoveHistory()
	if len(moves) == 0 {
		drawText(screen, "No moves yet", face, float64(x), float64(startY+5), scale, textMuted)
		return
	}

	maxY := ScreenHeight - StatusBarH
	visibleHeight := maxY - startY

	totalRows := (len(moves) + 1) / 2
	contentHeight := totalRows * moveRowHeight
	p.maxScrollY = contentHeight - visibleHeight
	if p.maxScrollY < 0 {
		p.maxScrollY = 0
	}
	if p.followEnd {
		p.scrollY = p.maxScrollY
	}
	p.clampScroll()

	startRow := p.scrollY / moveRowHeight
	y := startY - (p.scrollY % moveRowHeight)

	for row := startRow; row < totalRows && y <= maxY-moveRowHeight; row++ {
		if y >= startY {
			if row%2 == 1 {
				fillRect(screen, x-4, y-2, PanelWidth-PanelPadding*2+8, moveRowHeight, moveRowAlt, scale)
			}

			i := row * 2
			drawText(screen, fmt.Sprintf("%d.", row+1), face, float64(x), float64(y), scale, textMuted)
			drawText(screen, moves[i].String(), face, float64(x+40), float64(y), scale, textPrimary)
			if i+1 < len(moves) {
				drawText(screen, moves[i+1].String(), face, float64(x+130), float64(y), scale, textPrimary)
			}
		}
		y += moveRowHeight
	}

	// Scroll indicator on the right
	if p.maxScrollY > 0 {
		pct := float64(p.scrollY) / float64(p.maxScrollY)
		indicatorH := visibleHeight * visibleHeight / contentHeight
		if indicatorH < 20 {
			indicatorH = 20
		}
		indicatorY := startY + int(pct*float64(visibleHeight-indicatorH))
		fillRect(screen, BoardSize+PanelWidth-8, indicatorY, 4, indicatorH, textMuted, scale)
	}
}

func (p *Panel) drawStatusBar(screen *ebiten.Image, scale float64) {
	face := GetRegularFace(defaultFontSize, scale)
	statusY := ScreenHeight - StatusBarH + 10
	x := BoardSize + PanelPadding

	fillRect(screen, x, statusY-10, PanelWidth-PanelPadding*2, 1, dividerColor, scale)

	username := p.game.Username()
	if len(username) > 12 {
		username = username[:12] + "..."
	}
	drawText(screen, username, face, float64(x), float64(statusY), scale, textPrimary)

	stats := p.game.Stats()
	record := fmt.Sprintf("%d games  W%d B%d D%d", stats.GamesPlayed, stats.WhiteWins, stats.BlackWins, stats.Draws)
	drawText(screen, record, face, float64(x+120), float64(statusY), scale, textSecondary)

	statusColor := textPrimary
	switch {
	case p.game.GameOver():
		statusColor = statusGameOver
	case p.game.Board().IsInCheck(p.game.Board().Turn()):
		statusColor = statusCheck
	}
	drawText(screen, p.game.StatusText(), GetBoldFace(titleFontSize, scale), float64(x), float64(statusY+26), scale, statusColor)

	if recent := p.game.RecentGames(); len(recent) > 0 {
		drawText(screen, "Last: "+recent[0].Summary(), GetRegularFace(coordFontSize, scale), float64(x), float64(statusY+54), scale, textMuted)
	}
}

// fillRect draws a filled rectangle given in logical pixels.
func fillRect(screen *ebiten.Image, x, y, w, h int, c color.Color, scale float64) {
	s := float32(scale)
	vector.DrawFilledRect(screen, float32(x)*s, float32(y)*s, float32(w)*s, float32(h)*s, c, false)
}

// strokeRect draws a one pixel rectangle outline given in logical pixels.
func strokeRect(screen *ebiten.Image, x, y, w, h int, c color.Color, scale float64) {
	s := float32(scale)
	vector.StrokeRect(screen, float32(x)*s, float32(y)*s, float32(w)*s, float32(h)*s, s, c, false)
}
