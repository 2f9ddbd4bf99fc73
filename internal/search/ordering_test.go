package search

import (
	"testing"

	"github.com/tanemura/corvid/internal/board"
)

func TestUpdateKillersKeepsSlotsDistinct(t *testing.T) {
	mo := NewMoveOrderer()
	m1 := board.NewMove(board.E2, board.E4)
	m2 := board.NewMove(board.D2, board.D4)

	mo.UpdateKillers(m1, 0)
	mo.UpdateKillers(m2, 0)

	if mo.killers[0][0] != m2 {
		t.Errorf("expected most recent killer in slot 0, got %v", mo.killers[0][0])
	}
	if mo.killers[0][1] != m1 {
		t.Errorf("expected previous killer pushed to slot 1, got %v", mo.killers[0][1])
	}
	if mo.killers[0][0] == mo.killers[0][1] {
		t.Error("the two killer slots must never hold the same move")
	}
}

func TestUpdateKillersIgnoresRepeatOfFirstSlot(t *testing.T) {
	mo := NewMoveOrderer()
	m1 := board.NewMove(board.E2, board.E4)

	mo.UpdateKillers(m1, 0)
	mo.UpdateKillers(m1, 0)

	if mo.killers[0][0] != m1 {
		t.Errorf("expected slot 0 to remain %v, got %v", m1, mo.killers[0][0])
	}
	if mo.killers[0][1] == m1 {
		t.Error("repeating the current first killer must not also populate the second slot")
	}
}

func TestUpdateHistoryGrowsByDepthSquared(t *testing.T) {
	mo := NewMoveOrderer()
	pos := board.NewPosition()
	m := board.NewMove(board.E2, board.E4)

	mo.UpdateHistory(pos, m, 4, true)

	got := mo.historyScore(pos, m)
	want := 4 * 4
	if got != want {
		t.Errorf("expected history bonus of depth^2=%d after one good update, got %d", want, got)
	}
}

func TestUpdateHistoryPenalizesOnFailureWithoutGoingNegative(t *testing.T) {
	mo := NewMoveOrderer()
	pos := board.NewPosition()
	m := board.NewMove(board.E2, board.E4)

	mo.UpdateHistory(pos, m, 3, true)
	mo.UpdateHistory(pos, m, 3, false)

	if got, want := mo.historyScore(pos, m), 0; got != want {
		t.Errorf("a rejected quiet move should cancel out its own prior bonus, got %d want %d", got, want)
	}

	mo.UpdateHistory(pos, m, 3, false)
	if got := mo.historyScore(pos, m); got != 0 {
		t.Errorf("history counters must stay non-negative per the data model, got %d", got)
	}
}

func TestNewSearchAgesHistoryRatherThanDiscardingIt(t *testing.T) {
	mo := NewMoveOrderer()
	pos := board.NewPosition()
	m := board.NewMove(board.E2, board.E4)

	mo.UpdateHistory(pos, m, 10, true)
	before := mo.historyScore(pos, m)

	mo.NewSearch()
	after := mo.historyScore(pos, m)

	if after == 0 {
		t.Error("NewSearch should age history, not wipe it")
	}
	if after >= before {
		t.Errorf("aged history should be smaller than before: before=%d after=%d", before, after)
	}
}

func TestClearWipesKillersAndHistory(t *testing.T) {
	mo := NewMoveOrderer()
	pos := board.NewPosition()
	m := board.NewMove(board.E2, board.E4)

	mo.UpdateKillers(m, 0)
	mo.UpdateHistory(pos, m, 5, true)

	mo.Clear()

	if mo.killers[0][0] != board.NoMove {
		t.Error("Clear should remove killers")
	}
	if mo.historyScore(pos, m) != 0 {
		t.Error("Clear should zero the history table")
	}
}

func TestScoreMovesPutsHashMoveFirst(t *testing.T) {
	mo := NewMoveOrderer()
	pos := board.NewPosition()
	moves := pos.GenerateLegalMoves()
	hashMove := moves.Get(moves.Len() - 1)

	scores := mo.ScoreMoves(pos, moves, 0, hashMove)

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	if moves.Get(best) != hashMove {
		t.Errorf("expected the hash move to score highest, got %v instead of %v", moves.Get(best), hashMove)
	}
}

// TestMVVLVAKillerRanksJustAboveMinorCapturesPawn exercises spec.md §4.3's
// shallow-depth ordering adjustment: at MVV/LVA (non-SEE) nodes, a killer
// must outrank a minor piece capturing a pawn, yet still rank below a
// clearly winning capture (a pawn taking a queen).
func TestMVVLVAKillerRanksJustAboveMinorCapturesPawn(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/1p6/3N4/8/8/3q4/2P1K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	mo := NewMoveOrderer()
	killer := board.NewMove(board.E1, board.E2)
	mo.UpdateKillers(killer, 0)

	knightTakesPawn := board.NewMove(board.D5, board.B6)
	pawnTakesQueen := board.NewMove(board.C1, board.D2)

	killerScore := mo.scoreMove(pos, killer, 0, board.NoMove, false)
	minorCaptureScore := mo.scoreMove(pos, knightTakesPawn, 0, board.NoMove, false)
	bigCaptureScore := mo.scoreMove(pos, pawnTakesQueen, 0, board.NoMove, false)

	if killerScore <= minorCaptureScore {
		t.Errorf("killer (%d) must outrank a minor piece capturing a pawn (%d)", killerScore, minorCaptureScore)
	}
	if killerScore >= bigCaptureScore {
		t.Errorf("killer (%d) must not outrank a pawn capturing a queen (%d)", killerScore, bigCaptureScore)
	}
}

func TestPickMoveSelectsHighestRemainingScore(t *testing.T) {
	pos := board.NewPosition()
	moves := pos.GenerateLegalMoves()
	scores := make([]int, moves.Len())
	maxIdx := moves.Len() / 2
	scores[maxIdx] = 1000
	want := moves.Get(maxIdx)

	picked := pickMove(moves, scores, 0)
	if picked != want {
		t.Errorf("expected the highest-scored move %v to be picked, got %v", want, picked)
	}
}
