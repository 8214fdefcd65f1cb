package input

import (
	"errors"

	"github.com/hailam/chessrules/internal/board"
)

// ErrNoPromotion is returned by ChoosePromotion when no promotion is pending.
var ErrNoPromotion = errors.New("no promotion pending")

// Game is the part of the rules engine the controller drives.
type Game interface {
	PieceAt(sq board.Square) (board.Piece, bool)
	LegalMoves(sq board.Square) []board.Move
	ApplyMove(m board.Move) error
	Turn() board.Color
	State() board.GameState
}

// Outcome says what a click did.
type Outcome int

const (
	Ignored Outcome = iota
	Selected
	Deselected
	Moved
	PromotionPending
	PromotionCancelled
)

func (o Outcome) String() string {
	switch o {
	case Selected:
		return "Selected"
	case Deselected:
		return "Deselected"
	case Moved:
		return "Moved"
	case PromotionPending:
		return "PromotionPending"
	case PromotionCancelled:
		return "PromotionCancelled"
	default:
		return "Ignored"
	}
}

// Controller holds the selection state between clicks.
type Controller struct {
	game Game

	selected board.Square
	targets  []board.Move

	pending    board.Move
	hasPending bool
}

// NewController creates a controller with nothing selected.
func NewController(g Game) *Controller {
	return &Controller{game: g, selected: board.NoSquare}
}

// Selected returns the selected square.
func (c *Controller) Selected() (board.Square, bool) {
	return c.selected, c.selected.IsValid()
}

// Targets returns the legal moves of the selected piece.
func (c *Controller) Targets() []board.Move {
	return c.targets
}

// PendingPromotion returns the promotion move waiting for a kind.
func (c *Controller) PendingPromotion() (board.Move, bool) {
	return c.pending, c.hasPending
}

// Reset clears the selection and any pending promotion.
func (c *Controller) Reset() {
	c.selected = board.NoSquare
	c.targets = nil
	c.pending = board.Move{}
	c.hasPending = false
}

// Click handles a click on sq. With a piece selected, a click on one of its
// targets plays the move, or opens the promotion choice when the move
// promotes. A click on another own piece selects it; any other click clears
// the selection. While a promotion is pending, a click on the board cancels it.
func (c *Controller) Click(sq board.Square) (Outcome, error) {
	if c.hasPending {
		c.Reset()
		return PromotionCancelled, nil
	}
	if c.game.State().IsTerminal() {
		c.Reset()
		return Ignored, nil
	}

	if _, ok := c.Selected(); ok {
		for _, m := range c.targets {
			if m.To != sq {
				continue
			}
			if m.Promotion {
				c.pending = m.WithPromotion(board.NoKind)
				c.hasPending = true
				return PromotionPending, nil
			}
			c.Reset()
			if err := c.game.ApplyMove(m); err != nil {
				return Ignored, err
			}
			return Moved, nil
		}
	}

	if p, ok := c.game.PieceAt(sq); ok && p.Color == c.game.Turn() {
		c.selected = sq
		c.targets = c.game.LegalMoves(sq)
		return Selected, nil
	}

	if _, ok := c.Selected(); ok {
		c.Reset()
		return Deselected, nil
	}
	return Ignored, nil
}

// ChoosePromotion finishes the pending promotion with kind k.
func (c *Controller) ChoosePromotion(k board.PieceKind) error {
	if !c.hasPending {
		return ErrNoPromotion
	}
	m := c.pending.WithPromotion(k)
	c.Reset()
	return c.game.ApplyMove(m)
}

// CancelPromotion drops the pending promotion and the selection.
func (c *Controller) CancelPromotion() {
	c.Reset()
}
