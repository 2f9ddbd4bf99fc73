package search

import (
	"github.com/tanemura/corvid/internal/board"
)

// Move ordering score bands. Grounded on
// hailam-chessplay/internal/engine/ordering.go.
const (
	ttMoveScore     = 10000000
	goodCaptureBase = 1000000
	killerScore1    = 900000
	killerScore2    = 800000

	// mvvLvaKillerScore1/2 rank killers in the MVV/LVA (non-SEE) capture
	// scale: just above mvvLva's "minor piece takes a pawn" entries (14),
	// and below an even trade of pawns (15) or anything that wins more
	// material, per spec.md §4.3's "killers sit just above minor captures
	// a pawn."
	mvvLvaKillerScore1 = goodCaptureBase + 14500
	mvvLvaKillerScore2 = goodCaptureBase + 14499
)

// mvvLva scores a capture by [victim][attacker]; higher sorts first.
var mvvLva = [6][6]int{
	/* P */ {15, 14, 14, 13, 12, 11},
	/* N */ {25, 24, 24, 23, 22, 21},
	/* B */ {35, 34, 34, 33, 32, 31},
	/* R */ {45, 44, 44, 43, 42, 41},
	/* Q */ {55, 54, 54, 53, 52, 51},
	/* K */ {0, 0, 0, 0, 0, 0},
}

// MoveOrderer holds the killer and history tables that persist across a
// whole game (aged, never wiped mid-game except by NewSearch/Clear). The
// history table is shaped [side][pieceType][toSquare], not the teacher's
// [from][to]: this indexes on the moving piece rather than its origin
// square, matching the data model the search core is built against.
type MoveOrderer struct {
	killers [MaxDepth][2]board.Move
	history [2][6][64]int
}

// NewMoveOrderer creates an empty move orderer.
func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// Clear wipes killers and history entirely, for a new game.
func (mo *MoveOrderer) Clear() {
	for i := range mo.killers {
		mo.killers[i][0] = board.NoMove
		mo.killers[i][1] = board.NoMove
	}
	mo.history = [2][6][64]int{}
}

// NewSearch ages the history table between searches within the same game
// rather than discarding it outright — history from a few moves ago is
// still useful signal, just less than history from this search.
func (mo *MoveOrderer) NewSearch() {
	for i := range mo.killers {
		mo.killers[i][0] = board.NoMove
		mo.killers[i][1] = board.NoMove
	}
	for c := range mo.history {
		for pt := range mo.history[c] {
			for sq := range mo.history[c][pt] {
				mo.history[c][pt][sq] /= 2
			}
		}
	}
}

// ScoreMoves assigns an ordering score to every move in moves.
func (mo *MoveOrderer) ScoreMoves(pos *board.Position, moves *board.MoveList, ply int, ttMove board.Move) []int {
	scores := make([]int, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		scores[i] = mo.scoreMove(pos, moves.Get(i), ply, ttMove, false)
	}
	return scores
}

// ScoreMovesSEE is ScoreMoves with SEE-based capture ordering instead of
// plain MVV-LVA, used at depth >= 3 and in PV nodes (spec.md §4.3).
func (mo *MoveOrderer) ScoreMovesSEE(pos *board.Position, moves *board.MoveList, ply int, ttMove board.Move) []int {
	scores := make([]int, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		scores[i] = mo.scoreMove(pos, moves.Get(i), ply, ttMove, true)
	}
	return scores
}

func (mo *MoveOrderer) scoreMove(pos *board.Position, m board.Move, ply int, ttMove board.Move, useSEE bool) int {
	if m == ttMove {
		return ttMoveScore
	}

	if m.IsCapture(pos) {
		attackerPiece := pos.PieceAt(m.From())
		if attackerPiece == board.NoPiece {
			return goodCaptureBase
		}
		attacker := attackerPiece.Type()

		var victim board.PieceType
		if m.IsEnPassant() {
			victim = board.Pawn
		} else {
			capturedPiece := pos.PieceAt(m.To())
			if capturedPiece == board.NoPiece {
				return goodCaptureBase
			}
			victim = capturedPiece.Type()
		}
		if victim >= board.King || attacker > board.King {
			return goodCaptureBase
		}

		if useSEE {
			see := SEE(pos, m)
			if see < 0 {
				return see
			}
			return goodCaptureBase + see
		}
		return goodCaptureBase + mvvLva[victim][attacker]*1000
	}

	if m.IsPromotion() {
		if m.Promotion() == board.Queen {
			return goodCaptureBase + MaxPosScore
		}
		return -MateScore + mo.historyScore(pos, m)
	}

	if m == mo.killers[ply][0] {
		if useSEE {
			return killerScore1
		}
		return mvvLvaKillerScore1
	}
	if m == mo.killers[ply][1] {
		if useSEE {
			return killerScore2
		}
		return mvvLvaKillerScore2
	}

	return mo.historyScore(pos, m)
}

func (mo *MoveOrderer) historyScore(pos *board.Position, m board.Move) int {
	piece := pos.PieceAt(m.From())
	if piece == board.NoPiece {
		return 0
	}
	return mo.history[pos.SideToMove][piece.Type()][m.To()]
}

// pickMove performs one pass of selection sort starting at index, swapping
// the maximum-scored remaining move into that slot, then returns it. This
// lazily sorts only as far as the search actually looks, rather than
// fully sorting a move list that might be pruned after the first few
// moves (spec.md §4.1).
func pickMove(moves *board.MoveList, scores []int, index int) board.Move {
	if index >= moves.Len() {
		return board.NoMove
	}
	best := index
	for j := index + 1; j < moves.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
	return moves.Get(index)
}

// UpdateKillers records m as a killer at ply, shifting the previous first
// killer into the second slot unless m is already the first killer — the
// two slots always hold distinct moves.
func (mo *MoveOrderer) UpdateKillers(m board.Move, ply int) {
	if ply >= MaxDepth {
		return
	}
	if mo.killers[ply][0] == m {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

// UpdateHistory adjusts the history score for a quiet move by depth
// squared: up on a beta cutoff, down (never below zero) for a quiet move
// tried and rejected before the cutoff — the butterfly table stays a
// non-negative counter, per spec.md §3's data model.
func (mo *MoveOrderer) UpdateHistory(pos *board.Position, m board.Move, depth int, good bool) {
	piece := pos.PieceAt(m.From())
	if piece == board.NoPiece {
		return
	}
	bonus := depth * depth
	slot := &mo.history[pos.SideToMove][piece.Type()][m.To()]
	if good {
		*slot += bonus
		if *slot > 400000 {
			mo.scaleHistory()
		}
	} else {
		*slot -= bonus
		if *slot < 0 {
			*slot = 0
		}
	}
}

func (mo *MoveOrderer) scaleHistory() {
	for c := range mo.history {
		for pt := range mo.history[c] {
			for sq := range mo.history[c][pt] {
				mo.history[c][pt][sq] /= 2
			}
		}
	}
}
