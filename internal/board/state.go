package board

// GameState classifies the position for the player to move.
type GameState uint8

const (
	// Active is when the player to move is not in check and has a legal move.
	Active GameState = iota

	// Check is when the player to move is in check and has a legal move.
	Check

	// Checkmate is when the player to move is in check with no legal move.
	Checkmate

	// Stalemate is when the player to move is not in check and has no legal move.
	Stalemate
)

// IsTerminal returns true when no further move can be applied.
func (s GameState) IsTerminal() bool {
	return s == Checkmate || s == Stalemate
}

func (s GameState) String() string {
	switch s {
	case Active:
		return "Active"
	case Check:
		return "Check"
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	default:
		return ""
	}
}
