package board

// Query is the read-only view of a board that move generation needs.
// Board implements it; generators never mutate through it.
type Query interface {
	PieceAt(sq Square) (Piece, bool)
	EnPassantTarget() (Square, bool)
	IsInCheck(c Color) bool
	IsSquareUnderAttack(sq Square, c Color) bool
}

// ruleFunc generates pseudo-legal moves for the piece standing on from.
type ruleFunc func(q Query, from Square, p Piece, forAttack bool) []Move

// rules maps each piece kind to its generator.
var rules = [...]ruleFunc{
	King:   kingMoves,
	Queen:  queenMoves,
	Rook:   rookMoves,
	Bishop: bishopMoves,
	Knight: knightMoves,
	Pawn:   pawnMoves,
}

// Direction offsets as (row, col) deltas.
var (
	knightOffsets    = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets      = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	rookDirections   = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	bishopDirections = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	queenDirections  = append(append([][2]int{}, rookDirections...), bishopDirections...)
)

// CandidateMoves returns the pseudo-legal moves of the piece at from.
// With forAttack set, the result is the set of squares the piece attacks:
// castling is suppressed and pawns yield only their diagonals.
func CandidateMoves(q Query, from Square, forAttack bool) []Move {
	p, ok := q.PieceAt(from)
	if !ok || int(p.Kind) >= len(rules) || rules[p.Kind] == nil {
		return nil
	}
	return rules[p.Kind](q, from, p, forAttack)
}

// newMove builds a move snapshotting the mover and whatever stands on to.
func newMove(q Query, from, to Square, p Piece) Move {
	m := Move{From: from, To: to, Piece: p}
	if captured, ok := q.PieceAt(to); ok {
		m.Captured = captured
	}
	return m
}

// stepMoves generates single-step moves (king, knight) onto empty or enemy squares.
func stepMoves(q Query, from Square, p Piece, offsets [8][2]int) []Move {
	moves := make([]Move, 0, len(offsets))
	for _, d := range offsets {
		to := from.Offset(d[0], d[1])
		if !to.IsValid() {
			continue
		}
		if target, ok := q.PieceAt(to); ok && target.Color == p.Color {
			continue
		}
		moves = append(moves, newMove(q, from, to, p))
	}
	return moves
}

// rayMoves casts along each direction until the edge or the first occupied
// square, which is included when it holds an enemy piece.
func rayMoves(q Query, from Square, p Piece, directions [][2]int) []Move {
	var moves []Move
	for _, d := range directions {
		to := from
		for step := 1; step < Size; step++ {
			to = to.Offset(d[0], d[1])
			if !to.IsValid() {
				break
			}
			target, ok := q.PieceAt(to)
			if !ok {
				moves = append(moves, newMove(q, from, to, p))
				continue
			}
			if target.Color != p.Color {
				moves = append(moves, newMove(q, from, to, p))
			}
			break
		}
	}
	return moves
}

func queenMoves(q Query, from Square, p Piece, _ bool) []Move {
	return rayMoves(q, from, p, queenDirections)
}

func rookMoves(q Query, from Square, p Piece, _ bool) []Move {
	return rayMoves(q, from, p, rookDirections)
}

func bishopMoves(q Query, from Square, p Piece, _ bool) []Move {
	return rayMoves(q, from, p, bishopDirections)
}

func knightMoves(q Query, from Square, p Piece, _ bool) []Move {
	return stepMoves(q, from, p, knightOffsets)
}

func kingMoves(q Query, from Square, p Piece, forAttack bool) []Move {
	moves := stepMoves(q, from, p, kingOffsets)
	if forAttack || p.HasMoved || q.IsInCheck(p.Color) {
		return moves
	}

	if m, ok := castleMove(q, from, p, 1); ok {
		moves = append(moves, m)
	}
	if m, ok := castleMove(q, from, p, -1); ok {
		moves = append(moves, m)
	}
	return moves
}

// castleMove checks castling towards dir (1 kingside, -1 queenside).
// The rook sits three files away kingside and four queenside. Every square
// between king and rook must be empty, and the two squares the king crosses
// must not be attacked.
func castleMove(q Query, from Square, p Piece, dir int) (Move, bool) {
	dist := 3
	if dir < 0 {
		dist = 4
	}

	rookSq := from.Offset(0, dir*dist)
	if !rookSq.IsValid() {
		return Move{}, false
	}
	rook, ok := q.PieceAt(rookSq)
	if !ok || rook.Kind != Rook || rook.Color != p.Color || rook.HasMoved {
		return Move{}, false
	}

	for i := 1; i < dist; i++ {
		if _, occupied := q.PieceAt(from.Offset(0, dir*i)); occupied {
			return Move{}, false
		}
	}

	for i := 1; i <= 2; i++ {
		if q.IsSquareUnderAttack(from.Offset(0, dir*i), p.Color) {
			return Move{}, false
		}
	}

	return Move{From: from, To: from.Offset(0, dir*2), Piece: p, Castle: true}, true
}

func pawnMoves(q Query, from Square, p Piece, forAttack bool) []Move {
	var moves []Move
	fwd := p.Color.forward()

	if forAttack {
		for _, dc := range [2]int{-1, 1} {
			to := from.Offset(fwd, dc)
			if to.IsValid() {
				moves = append(moves, Move{From: from, To: to, Piece: p})
			}
		}
		return moves
	}

	// Pushes
	one := from.Offset(fwd, 0)
	if one.IsValid() {
		if _, occupied := q.PieceAt(one); !occupied {
			moves = appendPawnMove(moves, p, newMove(q, from, one, p))

			two := one.Offset(fwd, 0)
			if from.Row == p.Color.pawnRow() && two.IsValid() {
				if _, occupied := q.PieceAt(two); !occupied {
					moves = append(moves, newMove(q, from, two, p))
				}
			}
		}
	}

	// Captures
	ep, hasEP := q.EnPassantTarget()
	for _, dc := range [2]int{-1, 1} {
		to := from.Offset(fwd, dc)
		if !to.IsValid() {
			continue
		}

		if target, ok := q.PieceAt(to); ok {
			if target.Color != p.Color {
				moves = appendPawnMove(moves, p, newMove(q, from, to, p))
			}
			continue
		}

		if hasEP && to == ep {
			victim, ok := q.PieceAt(NewSquare(from.Row, to.Col))
			if ok && victim.Kind == Pawn && victim.Color != p.Color {
				moves = append(moves, Move{From: from, To: to, Piece: p, Captured: victim, EnPassant: true})
			}
		}
	}

	return moves
}

// appendPawnMove appends m, expanded into one move per promotion kind when
// it lands on the last rank.
func appendPawnMove(moves []Move, p Piece, m Move) []Move {
	if m.To.Row != p.Color.promotionRow() {
		return append(moves, m)
	}
	for _, k := range PromotionKinds {
		promo := m
		promo.Promotion = true
		promo.PromoteTo = k
		moves = append(moves, promo)
	}
	return moves
}
