package board

// StaticCopy returns an independent copy of p. The search core recurses on
// copies rather than mutating-and-unmaking so that a pruned or aborted
// branch never has to be undone; it is simply discarded.
func (p *Position) StaticCopy() *Position {
	return p.Copy()
}

// DoPseudoLegalMove copies p into dst and applies m there. It reports
// whether the move is legal (does not leave the moving side's own king in
// check); p itself is never modified. dst must not alias p.
func (p *Position) DoPseudoLegalMove(m Move, dst *Position) bool {
	*dst = *p
	dst.MakeMove(m)
	kingSq := dst.KingSquare[p.SideToMove]
	return !dst.IsSquareAttacked(kingSq, dst.SideToMove)
}

// DoNullMove copies p into dst and applies a null move (side to move
// passes). Applying DoNullMove twice in succession restores the original
// side to move. The null move clears any en-passant square, so the second
// call does not bring it back: en-passant state and hash are restored only
// when the original position had no en-passant square.
func (p *Position) DoNullMove(dst *Position) {
	*dst = *p
	dst.MakeNullMove()
}

// GivesCheck reports whether m, played pseudo-legally by the side to move,
// attacks the opposing king directly from its destination square. It is a
// cheap static test for futility pruning's "move does not give check"
// guard: like GenerateChecks, it only considers the moved piece's own
// attack from its new square and does not detect a discovered check from
// uncovering another piece's line.
func (p *Position) GivesCheck(m Move) bool {
	piece := p.PieceAt(m.From())
	if piece == NoPiece {
		return false
	}
	them := p.SideToMove.Other()
	kingSq := p.KingSquare[them]
	to := m.To()
	if m.IsPromotion() {
		return givesCheckAt(m.Promotion(), p.SideToMove, to, kingSq, p.AllOccupied)
	}
	return givesCheckAt(piece.Type(), p.SideToMove, to, kingSq, p.AllOccupied)
}

func givesCheckAt(pt PieceType, us Color, sq, kingSq Square, occupied Bitboard) bool {
	switch pt {
	case Pawn:
		return PawnAttacks(sq, us)&SquareBB(kingSq) != 0
	case Knight:
		return KnightAttacks(sq)&SquareBB(kingSq) != 0
	case Bishop:
		return BishopAttacks(sq, occupied)&SquareBB(kingSq) != 0
	case Rook:
		return RookAttacks(sq, occupied)&SquareBB(kingSq) != 0
	case Queen:
		return QueenAttacks(sq, occupied)&SquareBB(kingSq) != 0
	default:
		return false
	}
}
