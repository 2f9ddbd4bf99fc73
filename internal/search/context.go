package search

import (
	"sync/atomic"
	"time"

	"github.com/tanemura/corvid/internal/board"
)

// PVTable stores the principal variation produced by the search, indexed
// by ply. Grounded on hailam-chessplay/internal/engine/search.go's
// triangular PV array.
type PVTable struct {
	length [MaxDepth]int
	moves  [MaxDepth][MaxDepth]board.Move
}

func (pv *PVTable) update(ply int, move board.Move) {
	pv.moves[ply][0] = move
	n := pv.length[ply+1]
	copy(pv.moves[ply][1:1+n], pv.moves[ply+1][:n])
	pv.length[ply] = n + 1
}

func (pv *PVTable) reset(ply int) {
	pv.length[ply] = 0
}

// Line returns the principal variation from the root.
func (pv *PVTable) Line() []board.Move {
	n := pv.length[0]
	out := make([]board.Move, n)
	copy(out, pv.moves[0][:n])
	return out
}

// Stats accumulates the counters a search run reports, used both for the
// UCI `info` line and for the post-search diagnostic summary
// (SPEC_FULL.md §4.9).
type Stats struct {
	Nodes uint64

	TTProbes uint64
	TTHits   uint64
	TTCuts   uint64

	HashMoveTries uint64
	HashMoveCuts  uint64

	FailHighs      uint64
	FailHighsFirst uint64

	QNodes          uint64
	QFailHighs      uint64
	QFailHighsFirst uint64
}

// Context owns every piece of search state for one engine: the position
// being searched, killer/history tables, the shared transposition table,
// run statistics, and the cooperative stop flag. Nothing here is global —
// spec.md's Design Notes ask explicitly for "a single owning search
// context value" in place of package-level mutable state, with the stop
// flag as an atomic boolean rather than a goroutine-local or global.
type Context struct {
	tt      *TranspositionTable
	orderer *MoveOrderer

	pv    PVTable
	stats Stats

	rootMoveNumber int
	rootPosHashes  []uint64

	stop atomic.Bool

	startTime     time.Time
	timeLimit     time.Duration
	hardTimeLimit time.Duration
	mode          Mode

	scratch [MaxDepth + 1]board.Position
}

// NewContext creates a search context bound to the given transposition
// table. The table outlives any single Context and may be reused across
// searches (it is explicitly not cleared on NewContext, only on a fresh
// game via Reset(true)).
func NewContext(tt *TranspositionTable) *Context {
	return &Context{
		tt:      tt,
		orderer: NewMoveOrderer(),
	}
}

// Reset prepares the context for a new `go` command. newGame additionally
// ages the history tables fully (spec.md's "history aging is intentional"
// note) and clears the transposition table, matching a `ucinewgame`.
func (c *Context) Reset(newGame bool) {
	c.stats = Stats{}
	c.stop.Store(false)
	for i := range c.pv.length {
		c.pv.length[i] = 0
	}
	if newGame {
		c.orderer.Clear()
		c.tt.Clear()
	} else {
		c.orderer.NewSearch()
	}
}

// Stop requests that the search unwind as soon as it is next polled.
func (c *Context) Stop() {
	c.stop.Store(true)
}

// Stopped reports whether the search has been asked to stop, either
// externally or because the configured time limit has elapsed.
func (c *Context) Stopped() bool {
	if c.stop.Load() {
		return true
	}
	if c.mode == ModeTime || c.mode == ModeMoveTime {
		if time.Since(c.startTime) > c.hardTimeLimit {
			return true
		}
	}
	return false
}

// SetRootHistory supplies the hash history of the game so far, used for
// repetition detection at and above the root.
func (c *Context) SetRootHistory(hashes []uint64) {
	c.rootPosHashes = hashes
}

func (c *Context) pollNode() bool {
	c.stats.Nodes++
	if c.stats.Nodes%nodePollInterval != 0 {
		return false
	}
	return c.Stopped()
}

// PV returns the principal variation of the most recently completed
// iteration.
func (c *Context) PV() []board.Move {
	return c.pv.Line()
}

// Stats returns a copy of the accumulated run statistics.
func (c *Context) Stats() Stats {
	return c.stats
}

// positionAt returns the scratch Position reserved for the given ply,
// so that recursion on copies (spec.md §3) never allocates.
func (c *Context) positionAt(ply int) *board.Position {
	return &c.scratch[ply]
}
