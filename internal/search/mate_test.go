package search

import "testing"

func TestScoreMateCheckmateFavorsShorterMate(t *testing.T) {
	shallow := scoreMate(true, 1, -Infinity, Infinity)
	deep := scoreMate(true, 3, -Infinity, Infinity)

	if deep <= shallow {
		t.Errorf("a mate further from the root should score higher (less bad) for the mated side: shallow(ply=1)=%d deep(ply=3)=%d", shallow, deep)
	}
}

func TestScoreMateStalemateIsZero(t *testing.T) {
	if s := scoreMate(false, 5, -Infinity, Infinity); s != 0 {
		t.Errorf("stalemate should score exactly 0, got %d", s)
	}
}

func TestScoreMateClampsIntoWindow(t *testing.T) {
	if s := scoreMate(true, 1, 100, 200); s != 100 {
		t.Errorf("checkmate score below alpha should clamp to alpha, got %d", s)
	}
	if s := scoreMate(false, 1, -200, -100); s != -100 {
		t.Errorf("stalemate score above beta should clamp to beta, got %d", s)
	}
}
