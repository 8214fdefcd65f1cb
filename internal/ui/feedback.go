package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessrules/internal/board"
)

// InvalidMoveReason represents why a move was rejected.
type InvalidMoveReason int

const (
	ReasonUnknown InvalidMoveReason = iota
	ReasonWouldLeaveKingInCheck
	ReasonInvalidPieceMovement
	ReasonNotYourTurn
)

func (r InvalidMoveReason) message() string {
	switch r {
	case ReasonWouldLeaveKingInCheck:
		return "Illegal move - King would be in check"
	case ReasonInvalidPieceMovement:
		return "Invalid move for this piece"
	case ReasonNotYourTurn:
		return "Not your turn"
	default:
		return "Invalid move"
	}
}

// classifyInvalidMove explains why from→to is not among the legal moves.
// A move the piece could make if king safety were ignored is rejected for
// exposing the king.
func classifyInvalidMove(b *board.Board, from, to board.Square) InvalidMoveReason {
	p, ok := b.PieceAt(from)
	if !ok {
		return ReasonUnknown
	}
	if p.Color != b.Turn() {
		return ReasonNotYourTurn
	}
	for _, m := range board.CandidateMoves(b, from, false) {
		if m.To == to {
			return ReasonWouldLeaveKingInCheck
		}
	}
	return ReasonInvalidPieceMovement
}

// ToastType represents the type of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastError
	ToastSuccess
)

// Toast represents a notification message.
type Toast struct {
	Message   string
	Type      ToastType
	StartTime time.Time
	Duration  time.Duration
}

// ToastManager manages toast notifications.
type ToastManager struct {
	toasts   []*Toast
	maxStack int
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{maxStack: 3}
}

// Show displays a new toast notification.
func (tm *ToastManager) Show(message string, toastType ToastType, duration time.Duration) {
	tm.toasts = append(tm.toasts, &Toast{
		Message:   message,
		Type:      toastType,
		StartTime: time.Now(),
		Duration:  duration,
	})
	if len(tm.toasts) > tm.maxStack {
		tm.toasts = tm.toasts[1:]
	}
}

// Update removes expired toasts.
func (tm *ToastManager) Update() {
	now := time.Now()
	active := tm.toasts[:0]
	for _, t := range tm.toasts {
		if now.Sub(t.StartTime) < t.Duration {
			active = append(active, t)
		}
	}
	tm.toasts = active
}

func toastColors(t ToastType, alpha float64) (bg, fg color.RGBA) {
	fg = color.RGBA{255, 255, 255, uint8(255 * alpha)}
	switch t {
	case ToastWarning:
		return color.RGBA{180, 140, 20, uint8(220 * alpha)}, color.RGBA{40, 30, 0, uint8(255 * alpha)}
	case ToastError:
		return color.RGBA{180, 50, 50, uint8(220 * alpha)}, fg
	case ToastSuccess:
		return color.RGBA{50, 150, 50, uint8(220 * alpha)}, fg
	default:
		return color.RGBA{50, 100, 150, uint8(220 * alpha)}, fg
	}
}

// Draw renders all active toasts centred over the board.
func (tm *ToastManager) Draw(screen *ebiten.Image, scale float64) {
	face := GetRegularFace(defaultFontSize, scale)
	if face == nil {
		return
	}

	y := 50.0
	for _, t := range tm.toasts {
		elapsed := time.Since(t.StartTime).Seconds()
		duration := t.Duration.Seconds()

		// Fade in/out
		alpha := 1.0
		fadeTime := 0.2
		if elapsed < fadeTime {
			alpha = elapsed / fadeTime
		} else if elapsed > duration-fadeTime {
			alpha = (duration - elapsed) / fadeTime
		}
		alpha = math.Max(0, math.Min(1, alpha))
		bg, fg := toastColors(t.Type, alpha)

		// Text is measured in device pixels.
		w, h := MeasureText(t.Message, face)
		padding := 12.0
		boxW := w/scale + padding*2
		boxH := h/scale + padding*2
		x := float64(BoardSize)/2 - boxW/2

		vector.DrawFilledRect(screen, float32(x*scale), float32(y*scale), float32(boxW*scale), float32(boxH*scale), bg, false)
		drawText(screen, t.Message, face, x+padding, y+padding, scale, fg)

		y += boxH + 8
	}
}

// ShakeAnimation represents a piece shake effect.
type ShakeAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Intensity float64
}

// FlashAnimation represents a square flash effect.
type FlashAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Color     color.RGBA
}

// AnimationManager manages visual animations.
type AnimationManager struct {
	shakes  []*ShakeAnimation
	flashes []*FlashAnimation
}

// NewAnimationManager creates a new animation manager.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{}
}

// StartShake begins a shake animation on a square.
func (am *AnimationManager) StartShake(sq board.Square) {
	am.shakes = append(am.shakes, &ShakeAnimation{
		Square:    sq,
		StartTime: time.Now(),
		Duration:  300 * time.Millisecond,
		Intensity: 8.0,
	})
}

// StartFlash begins a flash animation on a square.
func (am *AnimationManager) StartFlash(sq board.Square, c color.RGBA) {
	am.flashes = append(am.flashes, &FlashAnimation{
		Square:    sq,
		StartTime: time.Now(),
		Duration:  400 * time.Millisecond,
		Color:     c,
	})
}

// Update removes expired animations.
func (am *AnimationManager) Update() {
	now := time.Now()

	shakes := am.shakes[:0]
	for _, s := range am.shakes {
		if now.Sub(s.StartTime) < s.Duration {
			shakes = append(shakes, s)
		}
	}
	am.shakes = shakes

	flashes := am.flashes[:0]
	for _, f := range am.flashes {
		if now.Sub(f.StartTime) < f.Duration {
			flashes = append(flashes, f)
		}
	}
	am.flashes = flashes
}

// GetShakeOffset returns the current shake offset for a square.
func (am *AnimationManager) GetShakeOffset(sq board.Square) (float64, float64) {
	for _, s := range am.shakes {
		if s.Square != sq {
			continue
		}
		progress := time.Since(s.StartTime).Seconds() / s.Duration.Seconds()
		if progress >= 1.0 {
			return 0, 0
		}
		// Damped sine wave oscillation
		amplitude := s.Intensity * math.Exp(-5*progress)
		return amplitude * math.Sin(40*progress), 0
	}
	return 0, 0
}

// Clear drops all running animations.
func (am *AnimationManager) Clear() {
	am.shakes = nil
	am.flashes = nil
}

// DrawFlashes renders all active flash overlays.
func (am *AnimationManager) DrawFlashes(screen *ebiten.Image, r *Renderer) {
	for _, f := range am.flashes {
		progress := time.Since(f.StartTime).Seconds() / f.Duration.Seconds()
		if progress >= 1.0 {
			continue
		}

		// Fade out
		alpha := 1.0 - progress
		c := color.RGBA{f.Color.R, f.Color.G, f.Color.B, uint8(float64(f.Color.A) * alpha)}
		r.DrawFlash(screen, f.Square, c)
	}
}

// FeedbackManager coordinates all feedback systems.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
	audio      *AudioManager
}

// NewFeedbackManager creates a new feedback manager.
func NewFeedbackManager() *FeedbackManager {
	return &FeedbackManager{
		toasts:     NewToastManager(),
		animations: NewAnimationManager(),
		audio:      NewAudioManager(),
	}
}

// Update updates all feedback systems.
func (fm *FeedbackManager) Update() {
	fm.toasts.Update()
	fm.animations.Update()
}

// Draw renders all feedback overlays.
func (fm *FeedbackManager) Draw(screen *ebiten.Image, r *Renderer, scale float64) {
	fm.animations.DrawFlashes(screen, r)
	fm.toasts.Draw(screen, scale)
}

// Animations returns the animation manager for renderer integration.
func (fm *FeedbackManager) Animations() *AnimationManager {
	return fm.animations
}

// Info shows a short informational toast.
func (fm *FeedbackManager) Info(message string) {
	fm.toasts.Show(message, ToastInfo, 3*time.Second)
}

// Error shows an error toast.
func (fm *FeedbackManager) Error(message string) {
	fm.toasts.Show(message, ToastError, 3*time.Second)
	fm.audio.Play(SoundInvalid)
}

// OnInvalidMove handles an invalid move attempt.
func (fm *FeedbackManager) OnInvalidMove(from, to board.Square, reason InvalidMoveReason) {
	fm.toasts.Show(reason.message(), ToastWarning, 2*time.Second)
	fm.animations.StartShake(from)
	fm.animations.StartFlash(to, color.RGBA{255, 80, 80, 150})
	fm.audio.Play(SoundInvalid)
}

// OnCheck handles a check event.
func (fm *FeedbackManager) OnCheck() {
	fm.toasts.Show("Check!", ToastWarning, 2*time.Second)
	fm.audio.Play(SoundCheck)
}

// OnCheckmate handles a checkmate event.
func (fm *FeedbackManager) OnCheckmate(winner board.Color) {
	fm.toasts.Show("Checkmate! "+winner.String()+" wins!", ToastSuccess, 5*time.Second)
	fm.audio.Play(SoundGameEnd)
}

// OnStalemate handles a stalemate event.
func (fm *FeedbackManager) OnStalemate() {
	fm.toasts.Show("Stalemate - Draw", ToastInfo, 5*time.Second)
	fm.audio.Play(SoundGameEnd)
}

// OnMoveMade plays the sound for a completed move.
func (fm *FeedbackManager) OnMoveMade(m board.Move) {
	switch {
	case m.Castle:
		fm.audio.Play(SoundCastle)
	case m.Promotion:
		fm.audio.Play(SoundPromote)
	case m.IsCapture():
		fm.audio.Play(SoundCapture)
	default:
		fm.audio.Play(SoundMove)
	}
}

// OnUndo plays feedback for a taken-back move.
func (fm *FeedbackManager) OnUndo() {
	fm.animations.Clear()
	fm.audio.Play(SoundUndo)
}

// Audio returns the audio manager for settings access.
func (fm *FeedbackManager) Audio() *AudioManager {
	return fm.audio
}
