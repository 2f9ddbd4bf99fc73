package search

// Search-wide constants. MaxDepth, MaxTimeFactor and TimeFactor affect
// externally observable driver behavior and are kept exported; the rest
// are internal tuning constants.
const (
	Infinity  = 30000
	MateScore = 29000

	// MaxDepth bounds recursion depth (ply) and the size of every
	// per-ply array (killers, PV table, scratch positions).
	MaxDepth = 128

	// MaxPosScore is the generic "big but not mate" margin used by
	// reverse futility, futility and quiescence delta margins, and as the
	// promotion-to-queen move-ordering bonus.
	MaxPosScore = 2000

	// MaxTimeFactor and TimeFactor govern the iterative-deepening
	// driver's hard and soft stop conditions.
	MaxTimeFactor = 4.0
	TimeFactor    = 0.85
)

// Mode selects how the iterative deepening driver interprets its value
// argument.
type Mode int

const (
	ModeTime     Mode = 1
	ModeDepth    Mode = 2
	ModeMoveTime Mode = 4
	// ModeNodes is reserved; node-count limited search is not implemented.
	ModeNodes Mode = 8
)

// nodePollInterval is how often (in nodes) the stop flag is polled inside
// the recursive search, to keep the check cheap relative to node count.
const nodePollInterval = 2048

// futilityMargin[d] is the margin F used by futility pruning in the move
// loop at depth d (spec.md §4.4 step 9: F = {0, MAX_POS_SCORE,
// MAX_POS_SCORE+KNIGHT, MAX_POS_SCORE+QUEEN}).
var futilityMargin = [4]int{0, MaxPosScore, MaxPosScore + KnightValue, MaxPosScore + QueenValue}
