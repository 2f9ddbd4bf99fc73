package search

// scoreMate returns the fail-hard-clamped terminal score for a node with
// no legal moves: checkmate if inCheck (a loss for the side to move,
// scored so that shorter mates are preferred via the ply-dependent mate
// encoding), otherwise stalemate (an exact draw).
func scoreMate(inCheck bool, ply, alpha, beta int) int {
	var score int
	if inCheck {
		score = -MateScore + ply
	} else {
		score = 0
	}
	if score < alpha {
		return alpha
	}
	if score > beta {
		return beta
	}
	return score
}
