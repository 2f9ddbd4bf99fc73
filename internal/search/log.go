package search

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/tanemura/corvid/internal/board"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()

// logTTCollision records a Type-1 transposition table collision: the
// fingerprint at this slot matched but the stored move is not legal in
// the current position. The move is discarded and play continues as if
// the table had no entry (spec.md §7); this is diagnostic, not fatal.
func logTTCollision(hash uint64, move board.Move) {
	logger.Warn().
		Uint64("hash", hash).
		Str("move", move.String()).
		Msg("transposition table collision, discarding hash move")
}

// invariantViolation logs a structured fatal event and then panics,
// terminating the process. No search code calls it: at ply MaxDepth,
// quiescence returns the static evaluation instead of panicking.
func invariantViolation(msg string, fields map[string]interface{}) {
	ev := logger.Error()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
	logger.Panic().Msg(msg)
}

// LogSummary emits the post-search statistics line the original engine
// printed to stderr after every `go` command.
func (c *Context) LogSummary() {
	s := c.stats
	ttHitRate := c.tt.HitRate()

	var firstMoveRate float64
	if s.FailHighs > 0 {
		firstMoveRate = float64(s.FailHighsFirst) / float64(s.FailHighs) * 100
	}

	logger.Info().
		Uint64("nodes", s.Nodes).
		Uint64("qnodes", s.QNodes).
		Float64("tt_hit_rate", ttHitRate).
		Uint64("tt_hits", s.TTHits).
		Uint64("tt_cuts", s.TTCuts).
		Uint64("fail_highs", s.FailHighs).
		Float64("fail_high_first_move_pct", firstMoveRate).
		Msg("search summary")
}
