package board

// Move describes one state transition. It is a value: Piece and Captured are
// snapshots taken when the move was generated (and refreshed when it is
// applied), never live references into a board.
type Move struct {
	From, To Square

	Piece    Piece // moved piece as it was before the move
	Captured Piece // zero value when nothing is captured

	Castle    bool
	EnPassant bool
	Promotion bool
	PromoteTo PieceKind // NoKind until a promotion choice has been made
}

// IsCapture returns true if the move removes an enemy piece.
func (m Move) IsCapture() bool {
	return !m.Captured.IsZero()
}

// NeedsPromotionChoice returns true for a promotion whose kind is not chosen.
func (m Move) NeedsPromotionChoice() bool {
	return m.Promotion && m.PromoteTo == NoKind
}

// WithPromotion returns a copy of a promotion move finalized to kind k.
// The receiver is left untouched.
func (m Move) WithPromotion(k PieceKind) Move {
	m.PromoteTo = k
	return m
}

// Equal reports whether two moves describe the same transition. Flags and
// piece snapshots follow from the position, so only the squares and the
// promotion kind are compared.
func (m Move) Equal(o Move) bool {
	return m.From == o.From && m.To == o.To && m.PromoteTo == o.PromoteTo
}

// String returns the move in coordinate form (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion && m.PromoteTo != NoKind {
		s += string(m.PromoteTo.Char())
	}
	return s
}
