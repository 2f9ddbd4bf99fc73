package search

import "github.com/tanemura/corvid/internal/board"

// isRepetition reports whether pos's hash recurs earlier in the game or
// search path, counting both the supplied game history and the positions
// already placed on the search path up to ply.
func (c *Context) isRepetition(pos *board.Position, ply int) bool {
	for _, h := range c.rootPosHashes {
		if h == pos.Hash {
			return true
		}
	}
	for p := ply - 1; p >= 0; p-- {
		if c.scratch[p].Hash == pos.Hash {
			return true
		}
	}
	return false
}

// isDraw reports whether pos is drawn by the fifty-move rule, a
// repetition (a single earlier occurrence, see isRepetition), or
// insufficient material.
func (c *Context) isDraw(pos *board.Position, ply int) bool {
	if pos.HalfMoveClock >= 100 {
		return true
	}
	if pos.IsInsufficientMaterial() {
		return true
	}
	return c.isRepetition(pos, ply)
}

// drawScore clamps the exact draw value of zero into [alpha, beta], as
// every terminal score must be (spec.md §3 invariants).
func drawScore(alpha, beta int) int {
	if 0 < alpha {
		return alpha
	}
	if 0 > beta {
		return beta
	}
	return 0
}
