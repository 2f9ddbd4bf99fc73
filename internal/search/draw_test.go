package search

import (
	"testing"

	"github.com/tanemura/corvid/internal/board"
)

func TestDrawScoreClampsZeroIntoWindow(t *testing.T) {
	if s := drawScore(-50, 50); s != 0 {
		t.Errorf("draw inside window should be exactly 0, got %d", s)
	}
	if s := drawScore(10, 50); s != 10 {
		t.Errorf("draw below alpha should clamp to alpha, got %d", s)
	}
	if s := drawScore(-50, -10); s != -10 {
		t.Errorf("draw above beta should clamp to beta, got %d", s)
	}
}

func TestIsDrawFiftyMoveRule(t *testing.T) {
	pos, err := board.ParseFEN("8/8/4k3/8/8/4K3/8/8 w - - 100 60")
	if err != nil {
		t.Fatal(err)
	}
	c := &Context{}
	if !c.isDraw(pos, 0) {
		t.Error("expected a halfmove clock of 100 to be drawn")
	}
}

func TestIsDrawInsufficientMaterial(t *testing.T) {
	pos, err := board.ParseFEN("8/8/4k3/8/8/4K3/8/8 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	c := &Context{}
	if !c.isDraw(pos, 0) {
		t.Error("expected bare kings to be an insufficient-material draw")
	}
}

func TestIsRepetitionMatchesRootHistory(t *testing.T) {
	pos := board.NewPosition()
	c := &Context{rootPosHashes: []uint64{pos.Hash}}

	if !c.isRepetition(pos, 0) {
		t.Error("expected a position matching the root history to be a repetition")
	}
}

func TestIsRepetitionMatchesSearchPath(t *testing.T) {
	pos := board.NewPosition()
	c := &Context{}
	c.scratch[0] = *pos

	if !c.isRepetition(pos, 1) {
		t.Error("expected a position matching an earlier ply on the search path to be a repetition")
	}
}

func TestIsRepetitionFalseForNovelPosition(t *testing.T) {
	pos := board.NewPosition()
	other, err := board.ParseFEN("8/8/4k3/8/8/4K3/8/8 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	c := &Context{rootPosHashes: []uint64{other.Hash}}

	if c.isRepetition(pos, 0) {
		t.Error("expected an unrelated position not to be flagged as a repetition")
	}
}
