package search

import "github.com/tanemura/corvid/internal/board"

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// iidDepth returns the reduced depth internal iterative deepening searches
// at before trusting its move, given the full depth of the node that
// needs a move. Grounded on original_source/search.cpp's IID_DEPTHS table
// (one ply deeper roughly every three plies of full depth, capped at 30)
// rather than reproduced as a literal lookup table.
func iidDepth(depth int) int {
	d := (depth-5)/3 + 1
	if d > 30 {
		return 30
	}
	if d < 0 {
		return 0
	}
	return d
}

// pvs is the principal-variation search: fail-hard alpha-beta with a
// null-window re-search for every move after the first at a PV node
// (spec.md §4.4). Except when the search has been stopped, in which case
// it returns -Infinity, it returns a value in [alpha, beta] — callers
// never have to guess whether a returned bound is exact.
func (c *Context) pvs(pos *board.Position, ply, depth, alpha, beta int, nullAllowed bool) int {
	pvNode := beta-alpha > 1
	c.pv.reset(ply)

	if depth <= 0 {
		return c.quiescence(pos, ply, alpha, beta)
	}

	if c.pollNode() {
		return -Infinity
	}

	inCheck := pos.Checkers != 0

	if ply > 0 {
		if c.isDraw(pos, ply) {
			return drawScore(alpha, beta)
		}
		if a := -MateScore + ply; a > alpha {
			alpha = a
		}
		if b := MateScore - ply; b < beta {
			beta = b
		}
		if alpha >= beta {
			return alpha
		}
	}

	var ttMove board.Move
	if entry, found := c.tt.Probe(pos.Hash); found {
		c.stats.TTHits++
		if entry.Move != board.NoMove && pos.IsLegal(entry.Move) {
			ttMove = entry.Move
		} else if entry.Move != board.NoMove {
			logTTCollision(pos.Hash, entry.Move)
		}

		if !pvNode && int(entry.Depth) >= depth {
			score := AdjustScoreFromTT(int(entry.Score), ply)
			switch entry.Node {
			case NodeCut:
				if score >= beta {
					c.stats.TTCuts++
					return beta
				}
			case NodeAll:
				if score <= alpha {
					c.stats.TTCuts++
					return alpha
				}
			case NodePV:
				// Left disabled: an exact-bound hit is not trusted as an
				// early return, only as a move-ordering hint, matching
				// the original engine's commented-out PV cutoff.
			}
		}
	}

	se := -Infinity
	if !inCheck {
		se = sideToMoveEval(pos)
	}

	if !pvNode && !inCheck && nullAllowed && depth >= 3 && se >= beta && pos.HasNonPawnMaterial() {
		r := 2
		switch {
		case depth >= 11:
			r = 4
		case depth >= 6:
			r = 3
		}
		r += (se - beta) / PawnValue
		reducedDepth := depth - r
		if reducedDepth < 1 {
			reducedDepth = 1
		}

		child := c.positionAt(ply + 1)
		pos.DoNullMove(child)
		score := -c.pvs(child, ply+1, reducedDepth, -beta, -beta+1, false)
		if score >= beta {
			if score > MateScore-MaxDepth {
				score = beta
			}
			return beta
		}
	}

	if !pvNode && !inCheck && depth <= 2 && pos.HasNonPawnMaterial() {
		margins := [3]int{0, MaxPosScore, MaxPosScore + 2*PawnValue}
		if se-margins[depth] >= beta {
			return beta
		}
	}

	var moves *board.MoveList
	if inCheck {
		moves = pos.GenerateLegalMoves()
	} else {
		moves = pos.GeneratePseudoLegalMoves()
	}

	var scores []int
	if !inCheck && (depth >= 3 || pvNode) {
		scores = c.orderer.ScoreMovesSEE(pos, moves, ply, ttMove)
	} else {
		scores = c.orderer.ScoreMoves(pos, moves, ply, ttMove)
	}

	if ttMove == board.NoMove && depth >= 5 {
		c.pvs(pos, ply, iidDepth(depth), alpha, beta, nullAllowed)
		c.pv.reset(ply)
		if entry, found := c.tt.Probe(pos.Hash); found && entry.Move != board.NoMove && pos.IsLegal(entry.Move) {
			ttMove = entry.Move
			for i := 0; i < moves.Len(); i++ {
				if moves.Get(i) == ttMove {
					scores[i] = Infinity
					break
				}
			}
		}
	}

	bestScore := -Infinity
	bestMove := board.NoMove
	nodeType := NodeAll
	movesSearched := 0
	legalMoveCount := 0

	for i := 0; i < moves.Len(); i++ {
		m := pickMove(moves, scores, i)
		if m == board.NoMove {
			break
		}

		quiet := !m.IsCapture(pos) && !m.IsPromotion()

		if !pvNode && !inCheck && quiet && depth <= 3 && se <= alpha-futilityMargin[depth] &&
			abs(alpha) < QueenValue && !m.IsPromotion() && !pos.GivesCheck(m) {
			continue
		}

		child := c.positionAt(ply + 1)
		if !pos.DoPseudoLegalMove(m, child) {
			continue
		}
		legalMoveCount++

		newDepth := depth - 1

		var score int
		if movesSearched == 0 {
			score = -c.pvs(child, ply+1, newDepth, -beta, -alpha, true)
		} else {
			reduction := 0
			if depth >= 3 && movesSearched >= 2 && quiet && !inCheck {
				reduction = int((float64(depth-3))/4.0 + float64(movesSearched)/9.5)
				if reduction < 0 {
					reduction = 0
				}
				if reduction > newDepth-1 {
					reduction = newDepth - 1
				}
			}

			score = -c.pvs(child, ply+1, newDepth-reduction, -alpha-1, -alpha, true)
			if score > alpha && reduction > 0 {
				score = -c.pvs(child, ply+1, newDepth, -alpha-1, -alpha, true)
			}
			if score > alpha && score < beta {
				score = -c.pvs(child, ply+1, newDepth, -beta, -alpha, true)
			}
		}
		movesSearched++

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			nodeType = NodePV
			c.pv.update(ply, m)

			if score >= beta {
				c.stats.FailHighs++
				if movesSearched == 1 {
					c.stats.FailHighsFirst++
				}
				if quiet {
					c.orderer.UpdateKillers(m, ply)
					c.orderer.UpdateHistory(pos, m, depth, true)
				}
				c.tt.Store(pos.Hash, depth, AdjustScoreToTT(beta, ply), NodeCut, m, c.rootMoveNumber)
				return beta
			}
		} else if quiet {
			c.orderer.UpdateHistory(pos, m, depth, false)
		}
	}

	if legalMoveCount == 0 {
		return scoreMate(inCheck, ply, alpha, beta)
	}

	if nodeType == NodePV {
		c.tt.Store(pos.Hash, depth, AdjustScoreToTT(bestScore, ply), NodePV, bestMove, c.rootMoveNumber)
	} else {
		c.tt.Store(pos.Hash, depth, AdjustScoreToTT(alpha, ply), NodeAll, board.NoMove, c.rootMoveNumber)
	}

	return alpha
}
