package search

import (
	"testing"

	"github.com/tanemura/corvid/internal/board"
)

func TestTranspositionTableRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(1)
	pos := board.NewPosition()

	if _, found := tt.Probe(pos.Hash); found {
		t.Fatal("expected a fresh table to miss")
	}

	moves := pos.GenerateLegalMoves()
	m := moves.Get(0)
	tt.Store(pos.Hash, 4, 123, NodePV, m, 1)

	entry, found := tt.Probe(pos.Hash)
	if !found {
		t.Fatal("expected a hit after Store")
	}
	if entry.Move != m || int(entry.Depth) != 4 || int(entry.Score) != 123 || entry.Node != NodePV {
		t.Errorf("entry mismatch: %+v", entry)
	}
}

func TestTranspositionTableShallowerStoreDoesNotReplaceDeeper(t *testing.T) {
	tt := NewTranspositionTable(1)
	pos := board.NewPosition()
	moves := pos.GenerateLegalMoves()
	m1 := moves.Get(0)
	m2 := moves.Get(1)

	tt.Store(pos.Hash, 8, 50, NodePV, m1, 1)
	tt.Store(pos.Hash, 2, -50, NodeAll, m2, 1)

	entry, found := tt.Probe(pos.Hash)
	if !found {
		t.Fatal("expected a hit")
	}
	if entry.Move != m1 || int(entry.Depth) != 8 {
		t.Errorf("a shallower store should not replace a deeper entry, got %+v", entry)
	}
}

func TestTranspositionTableNewerAgeReplacesShallowerDepth(t *testing.T) {
	tt := NewTranspositionTable(1)
	pos := board.NewPosition()
	moves := pos.GenerateLegalMoves()
	m1 := moves.Get(0)
	m2 := moves.Get(1)

	tt.Store(pos.Hash, 8, 50, NodePV, m1, 1)
	tt.Store(pos.Hash, 2, -50, NodeAll, m2, 2)

	entry, found := tt.Probe(pos.Hash)
	if !found {
		t.Fatal("expected a hit")
	}
	if entry.Move != m2 || int(entry.Depth) != 2 || entry.Age != 2 {
		t.Errorf("a newer age should replace a stale deeper entry, got %+v", entry)
	}
}

func TestTranspositionTableClearEmptiesTable(t *testing.T) {
	tt := NewTranspositionTable(1)
	pos := board.NewPosition()
	moves := pos.GenerateLegalMoves()
	tt.Store(pos.Hash, 4, 10, NodePV, moves.Get(0), 1)

	tt.Clear()

	if _, found := tt.Probe(pos.Hash); found {
		t.Fatal("expected Clear to empty the table")
	}
}

func TestAdjustScoreRoundTripsThroughTT(t *testing.T) {
	const ply = 3
	mateScore := MateScore - 7

	stored := AdjustScoreToTT(mateScore, ply)
	restored := AdjustScoreFromTT(stored, ply)

	if restored != mateScore {
		t.Errorf("mate score did not round-trip: got %d, want %d", restored, mateScore)
	}

	// An ordinary score should never be adjusted.
	if AdjustScoreToTT(37, ply) != 37 || AdjustScoreFromTT(37, ply) != 37 {
		t.Error("non-mate scores should pass through unadjusted")
	}
}
