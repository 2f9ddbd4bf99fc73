package search

import (
	"sync"
	"sync/atomic"

	"github.com/tanemura/corvid/internal/board"
)

// NodeType records which bound a stored score represents.
type NodeType uint8

const (
	// NodePV marks an exact score: the true minimax value of the node.
	NodePV NodeType = iota
	// NodeCut marks a lower bound: the search failed high (beta cutoff).
	NodeCut
	// NodeAll marks an upper bound: every move failed low.
	NodeAll
)

// ttShardCount shards the table's locks. The core is single-threaded
// (spec.md §5), so sharding buys nothing today; it is kept because it
// costs nothing and marks where a future multi-threaded search would hook
// in, not because Entry is ever written from more than one goroutine.
const ttShardCount = 256
const ttShardMask = ttShardCount - 1

// Entry is one transposition table slot. Fingerprint is a 32-bit
// truncation of the position's 64-bit Zobrist hash, not the full hash —
// two different positions mapping to the same table index can share a
// fingerprint by chance, a Type-1 collision, which is why a hash move
// pulled from an entry is always re-validated by attempting to play it
// before it is trusted (spec.md §4.5).
type Entry struct {
	Fingerprint uint32
	Move        board.Move
	Score       int16
	Depth       int8
	Node        NodeType
	Age         uint8
}

// TranspositionTable caches search results keyed by position hash.
// Grounded on hailam-chessplay/internal/engine/transposition.go's sharded
// design.
type TranspositionTable struct {
	entries []Entry
	shards  [ttShardCount]sync.RWMutex
	mask    uint64
	size    uint64

	probes atomic.Uint64
	hits   atomic.Uint64
}

// NewTranspositionTable builds a table sized to roughly sizeMB megabytes,
// rounded down to a power-of-two entry count.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	const entrySize = 16
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize
	numEntries = roundDownToPowerOf2(numEntries)
	if numEntries == 0 {
		numEntries = 1
	}
	return &TranspositionTable{
		entries: make([]Entry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

func roundDownToPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

func (tt *TranspositionTable) shardIndex(idx uint64) int {
	return int(idx & ttShardMask)
}

func fingerprintOf(hash uint64) uint32 {
	return uint32(hash >> 32)
}

// Probe looks up hash. found is false if the slot is empty or its
// fingerprint does not match — the caller cannot distinguish "never
// stored" from "evicted" from "different position, same fingerprint"
// without replaying the stored move, which is the caller's job, not the
// table's.
func (tt *TranspositionTable) Probe(hash uint64) (entry Entry, found bool) {
	tt.probes.Add(1)
	idx := hash & tt.mask
	shard := tt.shardIndex(idx)

	tt.shards[shard].RLock()
	entry = tt.entries[idx]
	tt.shards[shard].RUnlock()

	if entry.Depth == 0 || entry.Fingerprint != fingerprintOf(hash) {
		return Entry{}, false
	}
	tt.hits.Add(1)
	return entry, true
}

// Store records a search result. age is the caller's root-move-number
// (spec.md §3), stamped onto the entry verbatim; an entry whose age
// differs from the occupant's displaces it outright (callers pass the
// current root-move number, so this is a fresher entry replacing an older
// one), and among same-age entries the deeper search wins,
// matching spec.md §4.2's replacement policy.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int, node NodeType, move board.Move, age int) {
	if depth <= 0 {
		depth = 1
	}
	idx := hash & tt.mask
	shard := tt.shardIndex(idx)
	entryAge := uint8(age)

	tt.shards[shard].Lock()
	defer tt.shards[shard].Unlock()

	e := &tt.entries[idx]
	if entryAge != e.Age || depth >= int(e.Depth) {
		e.Fingerprint = fingerprintOf(hash)
		e.Move = move
		e.Score = int16(score)
		e.Depth = int8(depth)
		e.Node = node
		e.Age = entryAge
	}
}

// Clear empties the table, for a `ucinewgame`.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = Entry{}
	}
	tt.probes.Store(0)
	tt.hits.Store(0)
}

// HashFull reports the permille of the table in use by the most recent
// search generation, sampling the first 1000 entries.
func (tt *TranspositionTable) HashFull(currentAge int) int {
	sampleSize := 1000
	if uint64(sampleSize) > tt.size {
		sampleSize = int(tt.size)
	}
	wantAge := uint8(currentAge)
	used := 0
	for i := 0; i < sampleSize; i++ {
		if tt.entries[i].Depth > 0 && tt.entries[i].Age == wantAge {
			used++
		}
	}
	return (used * 1000) / sampleSize
}

// HitRate returns the percentage of probes that found a valid entry.
func (tt *TranspositionTable) HitRate() float64 {
	probes := tt.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(tt.hits.Load()) / float64(probes) * 100
}

// Size returns the number of entries in the table.
func (tt *TranspositionTable) Size() uint64 {
	return tt.size
}

// AdjustScoreFromTT converts a mate score stored relative to the node
// where it was found back into one relative to the root, by adding the
// current ply distance. AdjustScoreToTT is its inverse. Both are no-ops
// away from the near-mate threshold.
func AdjustScoreFromTT(score, ply int) int {
	if score > MateScore-MaxDepth {
		return score - ply
	}
	if score < -MateScore+MaxDepth {
		return score + ply
	}
	return score
}

func AdjustScoreToTT(score, ply int) int {
	if score > MateScore-MaxDepth {
		return score + ply
	}
	if score < -MateScore+MaxDepth {
		return score - ply
	}
	return score
}
