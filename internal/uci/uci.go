package uci

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tanemura/corvid/internal/board"
	"github.com/tanemura/corvid/internal/search"
)

// Protocol implements the subset of the Universal Chess Interface this
// engine speaks: `uci`/`isready`/`ucinewgame`/`position`/`go`/`stop`/
// `quit`, plus the debug `d` and `perft` commands. Grounded on
// hailam-chessplay/internal/uci/uci.go, trimmed of NNUE/Syzygy/opening
// book configuration, none of which this engine carries.
type Protocol struct {
	ctx      *search.Context
	tt       *search.TranspositionTable
	position *board.Position

	positionHashes []uint64

	searching     bool
	searchDone    chan struct{}
	stopRequested atomic.Bool
}

// New creates a protocol handler with a transposition table of the given
// size in megabytes.
func New(ttSizeMB int) *Protocol {
	tt := search.NewTranspositionTable(ttSizeMB)
	return &Protocol{
		ctx:      search.NewContext(tt),
		tt:       tt,
		position: board.NewPosition(),
	}
}

// Run reads commands from stdin until `quit` or EOF.
func (u *Protocol) Run() {
	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "quit":
			u.handleQuit()
		case "setoption":
			u.handleSetOption(args)
		case "d":
			fmt.Println(u.position.String())
		case "perft":
			u.handlePerft(args)
		}
	}
}

func (u *Protocol) handleUCI() {
	fmt.Println("id name Corvid")
	fmt.Println("id author Corvid contributors")
	fmt.Println()
	fmt.Println("option name Hash type spin default 64 min 1 max 4096")
	fmt.Println("uciok")
}

func (u *Protocol) handleNewGame() {
	u.ctx.Reset(true)
	u.position = board.NewPosition()
	u.positionHashes = []uint64{u.position.Hash}
}

// handlePosition parses `position startpos [moves ...]` and
// `position fen <fen> [moves ...]`.
func (u *Protocol) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	u.positionHashes = nil
	var moveStart int

	switch args[0] {
	case "startpos":
		u.position = board.NewPosition()
		moveStart = len(args)
		for i, arg := range args {
			if arg == "moves" {
				moveStart = i + 1
				break
			}
		}
	case "fen":
		fenEnd := len(args)
		for i, arg := range args[1:] {
			if arg == "moves" {
				fenEnd = i + 1
				break
			}
		}
		pos, err := board.ParseFEN(strings.Join(args[1:fenEnd], " "))
		if err != nil {
			fmt.Fprintf(os.Stderr, "info string invalid fen: %v\n", err)
			return
		}
		u.position = pos
		moveStart = len(args)
		for i, arg := range args {
			if arg == "moves" {
				moveStart = i + 1
				break
			}
		}
	default:
		return
	}

	u.positionHashes = append(u.positionHashes, u.position.Hash)

	for _, moveStr := range args[moveStart:] {
		move := u.parseMove(moveStr)
		if move == board.NoMove {
			fmt.Fprintf(os.Stderr, "info string invalid move: %s\n", moveStr)
			return
		}
		u.position.MakeMove(move)
		u.position.UpdateCheckers()
		u.positionHashes = append(u.positionHashes, u.position.Hash)
	}
}

func (u *Protocol) parseMove(moveStr string) board.Move {
	if len(moveStr) < 4 {
		return board.NoMove
	}

	fromFile := int(moveStr[0] - 'a')
	fromRank := int(moveStr[1] - '1')
	toFile := int(moveStr[2] - 'a')
	toRank := int(moveStr[3] - '1')
	if fromFile < 0 || fromFile > 7 || fromRank < 0 || fromRank > 7 ||
		toFile < 0 || toFile > 7 || toRank < 0 || toRank > 7 {
		return board.NoMove
	}

	from := board.NewSquare(fromFile, fromRank)
	to := board.NewSquare(toFile, toRank)

	var promo board.PieceType
	if len(moveStr) == 5 {
		switch moveStr[4] {
		case 'q':
			promo = board.Queen
		case 'r':
			promo = board.Rook
		case 'b':
			promo = board.Bishop
		case 'n':
			promo = board.Knight
		}
	}

	moves := u.position.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if promo != 0 {
			if m.IsPromotion() && m.Promotion() == promo {
				return m
			}
		} else if !m.IsPromotion() {
			return m
		}
	}
	return board.NoMove
}

func (u *Protocol) handleGo(args []string) {
	limits := u.parseGoOptions(args)
	u.ctx.SetRootHistory(u.positionHashes)

	mode, value := u.resolveMode(limits)

	u.searching = true
	u.stopRequested.Store(false)
	u.searchDone = make(chan struct{})

	pos := u.position.Copy()

	go func() {
		defer close(u.searchDone)

		best := u.ctx.IterativeDeepening(pos, mode, value, u.sendInfo)
		u.searching = false

		if best == board.NoMove {
			fmt.Println("bestmove 0000")
			return
		}
		fmt.Printf("bestmove %s\n", best.String())
	}()
}

func (u *Protocol) resolveMode(limits UCILimits) (search.Mode, int) {
	if limits.Depth > 0 {
		return search.ModeDepth, limits.Depth
	}
	if limits.MoveTime > 0 {
		return search.ModeMoveTime, int(limits.MoveTime.Milliseconds())
	}
	if limits.Infinite {
		return search.ModeDepth, search.MaxDepth
	}

	tm := NewTimeManager()
	ply := 2 * (u.position.FullMoveNumber - 1)
	if u.position.SideToMove == board.Black {
		ply++
	}
	tm.Init(limits, u.position.SideToMove, ply)
	return search.ModeTime, int(tm.OptimumTime().Milliseconds())
}

func (u *Protocol) parseGoOptions(args []string) UCILimits {
	var opts UCILimits
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				opts.Depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "nodes":
			if i+1 < len(args) {
				n, _ := strconv.ParseUint(args[i+1], 10, 64)
				opts.Nodes = n
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.MoveTime = time.Duration(ms) * time.Millisecond
				i++
			}
		case "infinite":
			opts.Infinite = true
		case "wtime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.Time[board.White] = time.Duration(ms) * time.Millisecond
				i++
			}
		case "btime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.Time[board.Black] = time.Duration(ms) * time.Millisecond
				i++
			}
		case "winc":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.Inc[board.White] = time.Duration(ms) * time.Millisecond
				i++
			}
		case "binc":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.Inc[board.Black] = time.Duration(ms) * time.Millisecond
				i++
			}
		case "movestogo":
			if i+1 < len(args) {
				opts.MovesToGo, _ = strconv.Atoi(args[i+1])
				i++
			}
		}
	}
	return opts
}

// sendInfo prints a search.SearchInfo progress record as the exact UCI
// `info` line format: depth, score (cp or mate), time, nodes, nps, pv.
func (u *Protocol) sendInfo(info search.SearchInfo) {
	var parts []string
	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))

	if info.Score > search.MateScore-100 {
		mateIn := (search.MateScore - info.Score + 1) / 2
		parts = append(parts, fmt.Sprintf("score mate %d", mateIn))
	} else if info.Score < -search.MateScore+100 {
		mateIn := -(search.MateScore + info.Score + 1) / 2
		parts = append(parts, fmt.Sprintf("score mate %d", mateIn))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %d", info.Score))
	}

	parts = append(parts, fmt.Sprintf("time %d", info.Elapsed.Milliseconds()))
	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	if info.Elapsed > 0 {
		nps := uint64(float64(info.Nodes) / info.Elapsed.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}

	if info.HashFull > 0 {
		parts = append(parts, fmt.Sprintf("hashfull %d", info.HashFull))
	}

	if len(info.PV) > 0 {
		moves := make([]string, len(info.PV))
		for i, m := range info.PV {
			moves[i] = m.String()
		}
		parts = append(parts, "pv "+strings.Join(moves, " "))
	}

	fmt.Printf("info %s\n", strings.Join(parts, " "))
}

func (u *Protocol) handleStop() {
	if u.searching {
		u.stopRequested.Store(true)
		u.ctx.Stop()
		<-u.searchDone
	}
}

func (u *Protocol) handleQuit() {
	u.handleStop()
	os.Exit(0)
}

func (u *Protocol) handleSetOption(args []string) {
	var name, value string
	readingName, readingValue := false, false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName, readingValue = true, false
		case "value":
			readingName, readingValue = false, true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	switch strings.ToLower(name) {
	case "hash":
		if mb, err := strconv.Atoi(value); err == nil && mb > 0 {
			u.tt = search.NewTranspositionTable(mb)
			u.ctx = search.NewContext(u.tt)
		}
	}
}

func (u *Protocol) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		depth, _ = strconv.Atoi(args[0])
	}

	start := time.Now()
	nodes := perft(u.position, depth)
	elapsed := time.Since(start)

	fmt.Printf("Nodes: %d\n", nodes)
	fmt.Printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}

func perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}
	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.MakeMove(m)
		nodes += perft(pos, depth-1)
		pos.UnmakeMove(m, undo)
	}
	return nodes
}
