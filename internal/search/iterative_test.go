package search

import (
	"testing"

	"github.com/tanemura/corvid/internal/board"
)

// TestIterativeDeepeningFindsFoolsMate reproduces the fastest possible
// checkmate: after 1.f3 e5 2.g4, it is black to move and Qh4# ends the
// game immediately. The driver should surface that move at shallow depth
// and report a near-mate score.
func TestIterativeDeepeningFindsFoolsMate(t *testing.T) {
	pos, err := board.ParseFEN("rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2")
	if err != nil {
		t.Fatal(err)
	}

	c := newTestContext()
	var last SearchInfo
	best := c.IterativeDeepening(pos, ModeDepth, 3, func(info SearchInfo) {
		last = info
	})

	want := board.NewMove(board.D8, board.H4)
	if best != want {
		t.Errorf("expected Qh4# (%v), got %v", want, best)
	}
	if last.Score < MateScore-10 {
		t.Errorf("expected a near-mate score for the mating side, got %d", last.Score)
	}
}

// TestIterativeDeepeningFindsMateInTwo checks a position with no mate in
// one but a forced mate in two: a rook ladder against a cornered king.
func TestIterativeDeepeningFindsMateInTwo(t *testing.T) {
	// White to move: 1.Ra7 (cutting off the seventh rank) Kg8, the only
	// reply, then 2.Rb8#. Neither Rb8+ nor Ra8+ mates at once, since the
	// king escapes along the open seventh rank.
	pos, err := board.ParseFEN("7k/8/8/8/8/8/R7/1R5K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	c := newTestContext()
	var last SearchInfo
	best := c.IterativeDeepening(pos, ModeDepth, 4, func(info SearchInfo) {
		last = info
	})

	if best == board.NoMove {
		t.Fatal("expected a move from a position with legal replies")
	}
	if last.Score < MateScore-10 {
		t.Errorf("expected the driver to find the forced mate, got score %d at depth %d", last.Score, last.Depth)
	}
}

// TestIterativeDeepeningReturnsNoMoveOnStalemate confirms the driver
// recognizes a position with no legal moves before ever calling pvs.
func TestIterativeDeepeningReturnsNoMoveOnStalemate(t *testing.T) {
	pos, err := board.ParseFEN("7k/8/6QK/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	c := newTestContext()
	best := c.IterativeDeepening(pos, ModeDepth, 3, nil)

	if best != board.NoMove {
		t.Errorf("expected NoMove for a position with no legal replies, got %v", best)
	}
}

// TestIterativeDeepeningAlwaysReturnsALegalMove runs a depth-limited
// search from the starting position and checks the returned move is
// actually one of the root's legal moves — the driver must never report
// a move from an aborted iteration.
func TestIterativeDeepeningAlwaysReturnsALegalMove(t *testing.T) {
	pos := board.NewPosition()
	c := newTestContext()

	best := c.IterativeDeepening(pos, ModeDepth, 3, nil)

	legal := pos.GenerateLegalMoves()
	found := false
	for i := 0; i < legal.Len(); i++ {
		if legal.Get(i) == best {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("returned move %v is not among the root's legal moves", best)
	}
}
