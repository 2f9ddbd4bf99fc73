package search

import "github.com/tanemura/corvid/internal/board"

// sideToMoveEval returns Evaluate(pos) flipped to the side-to-move's
// perspective, the sign convention every negamax-shaped function in this
// package (pvs, quiescence) works in. Evaluate itself stays signed from
// White's perspective, matching the board collaborator contract.
func sideToMoveEval(pos *board.Position) int {
	score := Evaluate(pos)
	if pos.SideToMove == board.Black {
		return -score
	}
	return score
}

func capturedValue(pos *board.Position, m board.Move) int {
	if m.IsEnPassant() {
		return PawnValue
	}
	victim := pos.PieceAt(m.To())
	if victim == board.NoPiece {
		return 0
	}
	v := pieceValues[victim.Type()]
	if m.IsPromotion() {
		v += pieceValues[m.Promotion()] - PawnValue
	}
	return v
}

// quiescence resolves tactical noise at the fringe of the main search:
// captures and promotions only, with a stand-pat floor, until the
// position is "quiet" (no more winning captures) or ply bottoms out.
// Always fail-hard. Never touches the transposition table, killers, or
// history — those tables only record decisions the main search stood
// behind (spec.md §4.7).
func (c *Context) quiescence(pos *board.Position, ply, alpha, beta int) int {
	c.stats.QNodes++

	if pos.Checkers != 0 {
		return c.quiescenceInCheck(pos, ply, alpha, beta)
	}
	if ply >= MaxDepth {
		return sideToMoveEval(pos)
	}

	standPat := sideToMoveEval(pos)
	if standPat >= beta {
		return beta
	}
	const bigDelta = QueenValue + MaxPosScore
	if standPat < alpha-bigDelta {
		return alpha
	}
	if standPat > alpha {
		alpha = standPat
	}

	moves := pos.GenerateCaptures()
	scores := c.orderer.ScoreMovesSEE(pos, moves, ply, board.NoMove)

	for i := 0; i < moves.Len(); i++ {
		m := pickMove(moves, scores, i)
		if m == board.NoMove {
			break
		}

		if !m.IsPromotion() {
			gain := capturedValue(pos, m)
			if standPat+gain+MaxPosScore < alpha {
				continue
			}
			if !seeGEZero(pos, m) {
				continue
			}
		}

		child := c.positionAt(ply + 1)
		if !pos.DoPseudoLegalMove(m, child) {
			continue
		}

		score := -c.quiescence(child, ply+1, -beta, -alpha)
		if score >= beta {
			c.stats.QFailHighs++
			if i == 0 {
				c.stats.QFailHighsFirst++
			}
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// quiescenceInCheck is quiescence's check-evasion entry point: every
// legal move is considered, not just captures, since a side in check may
// have no capturing reply at all. Disabled stalemate detection inside
// plain quiescence means only this entry point can discover a terminal
// node (checkmate), matching spec.md's Design Notes.
func (c *Context) quiescenceInCheck(pos *board.Position, ply, alpha, beta int) int {
	if ply >= MaxDepth {
		return sideToMoveEval(pos)
	}

	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		return scoreMate(true, ply, alpha, beta)
	}

	scores := c.orderer.ScoreMoves(pos, moves, ply, board.NoMove)

	for i := 0; i < moves.Len(); i++ {
		m := pickMove(moves, scores, i)
		if m == board.NoMove {
			break
		}

		child := c.positionAt(ply + 1)
		if !pos.DoPseudoLegalMove(m, child) {
			continue
		}

		score := -c.quiescence(child, ply+1, -beta, -alpha)
		if score >= beta {
			c.stats.QFailHighs++
			if i == 0 {
				c.stats.QFailHighsFirst++
			}
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}
