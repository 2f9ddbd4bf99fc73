package search

import (
	"testing"

	"github.com/tanemura/corvid/internal/board"
)

func newTestContext() *Context {
	return NewContext(NewTranspositionTable(1))
}

// TestPVSFailHardBound verifies the fail-hard invariant every caller of
// pvs relies on: the returned value always lands inside [alpha, beta],
// never outside it, regardless of the true minimax value of the node.
func TestPVSFailHardBound(t *testing.T) {
	pos := board.NewPosition()
	c := newTestContext()

	const alpha, beta = -50, 50
	score := c.pvs(pos, 0, 3, alpha, beta, true)

	if score < alpha || score > beta {
		t.Errorf("fail-hard violation: score=%d outside [%d, %d]", score, alpha, beta)
	}
}

// TestPVSDoesNotMutateCaller confirms recursion happens on copies: the
// position passed to pvs by the caller must be unchanged on return, since
// every level of search.Context recurses into c.scratch rather than
// mutating pos in place.
func TestPVSDoesNotMutateCaller(t *testing.T) {
	pos := board.NewPosition()
	before := *pos
	c := newTestContext()

	c.pvs(pos, 0, 3, -Infinity, Infinity, true)

	if pos.Hash != before.Hash {
		t.Error("pvs must not mutate the position it was given")
	}
}

// TestPVSFindsBackRankMate exercises a textbook back-rank mate: white to
// move, Qd8 forces immediate checkmate against a king boxed in by its own
// pawns with no flight square.
func TestPVSFindsBackRankMate(t *testing.T) {
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/8/3Q2K1 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	c := newTestContext()

	score := c.pvs(pos, 0, 5, -Infinity, Infinity, true)

	if score < MateScore-5 {
		t.Errorf("expected a near-mate score from the forced mating line, got %d", score)
	}
}

// TestPVSCheckmatePositionScoresAsLoss confirms a position where the side
// to move is already checkmated returns the mate score for ply 0, via
// scoreMate's no-legal-moves branch.
func TestPVSCheckmatePositionScoresAsLoss(t *testing.T) {
	pos, err := board.ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	pos.UpdateCheckers()
	c := newTestContext()

	score := c.pvs(pos, 0, 1, -Infinity, Infinity, true)

	if score != -MateScore {
		t.Errorf("expected an immediate mate score of %d at ply 0, got %d", -MateScore, score)
	}
}

// TestPVSStalematePositionScoresAsDraw confirms a stalemated side to move
// scores exactly 0, not a loss.
func TestPVSStalematePositionScoresAsDraw(t *testing.T) {
	pos, err := board.ParseFEN("7k/8/6QK/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	pos.UpdateCheckers()
	c := newTestContext()

	score := c.pvs(pos, 0, 1, -Infinity, Infinity, true)

	if score != 0 {
		t.Errorf("expected a stalemate score of 0, got %d", score)
	}
}

// TestPVSForcedReplyUnderCheckIsNotPrunedAway checks that when in check
// with very few legal replies, those replies are found rather than
// pruned: the futility gate disables itself while inCheck is true, and
// the no-legal-move branch only fires when there truly are no moves.
func TestPVSForcedReplyUnderCheckIsNotPrunedAway(t *testing.T) {
	// Black king on g8 is checked by the queen on g1 along the open
	// g-file; the king's only legal replies are to step off the file.
	pos, err := board.ParseFEN("6k1/8/8/8/8/8/8/6QK b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	pos.UpdateCheckers()
	c := newTestContext()

	legal := pos.GenerateLegalMoves()
	if legal.Len() == 0 {
		t.Fatal("test position must have at least one legal reply")
	}

	score := c.pvs(pos, 0, 2, -Infinity, Infinity, true)
	if score < -Infinity || score > Infinity {
		t.Errorf("score out of the legal value range: %d", score)
	}
}

// TestPVSAvoidsNullMoveInPureKingPawnEndgame guards against the classic
// null-move zugzwang failure: with no non-pawn material, HasNonPawnMaterial
// must gate the null-move try off, or the search could return a cutoff
// that is only valid because "passing" was illegally favorable.
func TestPVSAvoidsNullMoveInPureKingPawnEndgame(t *testing.T) {
	pos, err := board.ParseFEN("8/8/8/4k3/4P3/4K3/8/8 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if pos.HasNonPawnMaterial() {
		t.Fatal("test position must have no non-pawn material for the side to move")
	}

	c := newTestContext()
	score := c.pvs(pos, 0, 4, -Infinity, Infinity, true)

	if score < -Infinity || score > Infinity {
		t.Errorf("score out of range: %d", score)
	}
}

// TestPVSRepetitionIsScoredAsDraw verifies that a position repeated from
// the root game history is recognized and scored as a draw rather than
// searched to its (possibly non-drawn) minimax value.
func TestPVSRepetitionIsScoredAsDraw(t *testing.T) {
	pos := board.NewPosition()
	c := newTestContext()
	c.SetRootHistory([]uint64{pos.Hash})

	score := c.pvs(pos, 1, 2, -50, 50, true)
	if score != 0 {
		t.Errorf("expected a repeated root position to score as a draw (0), got %d", score)
	}
}
