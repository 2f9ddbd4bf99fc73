package search

import (
	"testing"

	"github.com/tanemura/corvid/internal/board"
)

func TestEvaluateStartingPositionIsSymmetric(t *testing.T) {
	pos := board.NewPosition()
	if s := Evaluate(pos); s != tempoBonus {
		t.Errorf("the starting position should evaluate to the tempo bonus only, got %d", s)
	}
}

func TestEvaluateMaterialIgnoresPosition(t *testing.T) {
	up, err := board.ParseFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if m := EvaluateMaterial(up); m != RookValue {
		t.Errorf("a lone extra rook should be worth exactly RookValue=%d, got %d", RookValue, m)
	}
}

func TestSEEWinningCaptureIsPositive(t *testing.T) {
	// White pawn on e4 can capture an undefended black knight on d5.
	pos, err := board.ParseFEN("4k3/8/8/3n4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	m := board.NewMove(board.E4, board.D5)

	see := SEE(pos, m)
	if see <= 0 {
		t.Errorf("capturing an undefended knight with a pawn should be SEE-positive, got %d", see)
	}
	if !seeGEZero(pos, m) {
		t.Error("seeGEZero should agree the capture is not losing")
	}
}

func TestSEELosingCaptureIsNegative(t *testing.T) {
	// White queen on d1 captures a pawn on d5 defended by a knight on f6.
	pos, err := board.ParseFEN("4k3/8/5n2/3p4/8/8/8/3QK3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	m := board.NewMove(board.D1, board.D5)

	see := SEE(pos, m)
	if see >= 0 {
		t.Errorf("trading a queen for a pawn defended by a knight should be SEE-negative, got %d", see)
	}
	if seeGEZero(pos, m) {
		t.Error("seeGEZero should agree the capture is losing")
	}
}
