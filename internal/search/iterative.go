package search

import (
	"time"

	"github.com/tanemura/corvid/internal/board"
)

// SearchInfo is the progress record emitted after each completed
// iteration, for the front-end to turn into a UCI `info` line.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    uint64
	Elapsed  time.Duration
	PV       []board.Move
	HashFull int
}

// IterativeDeepening runs the search from pos one depth at a time until
// the configured limit is reached, reporting progress through onInfo and
// returning the best move found by the last fully-completed iteration —
// never a move from an iteration that was aborted mid-search (spec.md
// §4.8, §7).
func (c *Context) IterativeDeepening(pos *board.Position, mode Mode, value int, onInfo func(SearchInfo)) board.Move {
	c.Reset(false)
	c.rootMoveNumber++
	c.mode = mode
	c.startTime = time.Now()

	switch mode {
	case ModeTime:
		budget := time.Duration(value) * time.Millisecond
		c.timeLimit = time.Duration(float64(budget) * TimeFactor)
		c.hardTimeLimit = time.Duration(float64(budget) * MaxTimeFactor)
	case ModeMoveTime:
		budget := time.Duration(value) * time.Millisecond
		c.timeLimit = budget
		c.hardTimeLimit = budget
	default:
		c.timeLimit = time.Hour
		c.hardTimeLimit = time.Hour
	}

	root := pos.StaticCopy()
	rootMoves := root.GenerateLegalMoves()
	if rootMoves.Len() == 0 {
		return board.NoMove
	}

	maxDepth := MaxDepth
	if mode == ModeDepth {
		maxDepth = value
		if maxDepth > MaxDepth {
			maxDepth = MaxDepth
		}
	}

	best := rootMoves.Get(0)
	bestScore := 0

	for depth := 1; depth <= maxDepth; depth++ {
		if mode == ModeTime && depth > 1 && time.Since(c.startTime) > c.timeLimit {
			break
		}

		move, score, completed := c.searchRoot(root, rootMoves, depth, -Infinity, Infinity)

		if !completed {
			break
		}
		best = move
		bestScore = score

		for i := 0; i < rootMoves.Len(); i++ {
			if rootMoves.Get(i) == best {
				rootMoves.Swap(0, i)
				break
			}
		}

		if onInfo != nil {
			onInfo(SearchInfo{
				Depth:    depth,
				Score:    bestScore,
				Nodes:    c.stats.Nodes,
				Elapsed:  time.Since(c.startTime),
				PV:       c.PV(),
				HashFull: c.tt.HashFull(c.rootMoveNumber),
			})
		}

		if bestScore > MateScore-MaxDepth || bestScore < -MateScore+MaxDepth {
			break
		}

		if mode == ModeTime || mode == ModeMoveTime {
			elapsed := time.Since(c.startTime)
			remaining := c.timeLimit - elapsed
			if remaining < elapsed {
				break
			}
		}
	}

	c.LogSummary()
	c.orderer.NewSearch()
	c.stop.Store(true)
	return best
}

// searchRoot runs one iteration's full-width move loop over the root.
// Unlike interior nodes, the root never consults the transposition table
// for an early cutoff — every legal root move is always tried — and it
// always reports a move index, even if the clock runs out partway
// through, so long as at least one root move has been completed
// (spec.md §4.8). Its completed result is false whenever the stop
// condition interrupted the iteration, so the driver discards it.
func (c *Context) searchRoot(root *board.Position, rootMoves *board.MoveList, depth, alpha, beta int) (board.Move, int, bool) {
	scores := c.orderer.ScoreMovesSEE(root, rootMoves, 0, rootMoves.Get(0))

	bestMove := board.NoMove
	bestScore := -Infinity
	movesSearched := 0

	for i := 0; i < rootMoves.Len(); i++ {
		if c.Stopped() {
			return bestMove, bestScore, false
		}

		m := pickMove(rootMoves, scores, i)
		if m == board.NoMove {
			break
		}

		child := c.positionAt(1)
		if !root.DoPseudoLegalMove(m, child) {
			continue
		}

		newDepth := depth - 1
		var score int
		if movesSearched == 0 {
			score = -c.pvs(child, 1, newDepth, -beta, -alpha, true)
		} else {
			score = -c.pvs(child, 1, newDepth, -alpha-1, -alpha, true)
			if score > alpha && score < beta {
				score = -c.pvs(child, 1, newDepth, -beta, -alpha, true)
			}
		}
		movesSearched++

		if bestMove == board.NoMove || score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			c.pv.update(0, m)
		}
	}

	return bestMove, bestScore, movesSearched > 0 && !c.Stopped()
}
