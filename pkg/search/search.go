// Package search implements parallel iterative-deepening principal
// variation search over board.Position, backed by the transposition and
// evaluation caches in pkg/cache.
package search

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/seekerror/stdlib/pkg/lang"
)

// ErrHalted indicates the search was stopped before completing its
// requested depth; the caller should use the best move found so far.
var ErrHalted = errors.New("search halted")

// FullPly is the fixed-point unit of remaining depth; fractional
// extensions and reductions add or subtract a portion of it. Quiescence
// search activates once remaining depth drops below one FullPly.
const FullPly = 8

// Score sentinels, in the i16 centipawn space of eval.Score.
const (
	MaxScore   eval.Score = 32000
	MinScore   eval.Score = -32000
	NullScore  eval.Score = 32767 // out-of-band "no score".
	DrawScore  eval.Score = 0
	StaleMate  eval.Score = 0
	// InsufficientMaterialScore is returned when eval.InsufficientMaterial
	// holds; it is a claimed draw, same value as DrawScore.
	InsufficientMaterialScore eval.Score = 0

	// WinningCheckmate/LosingCheckmate bound the mate-score range; a score
	// with absolute value at or above winningMateThreshold is a mate score,
	// distance-adjusted by the node's ply as it propagates to the root.
	WinningCheckmate eval.Score = MaxScore - 1
	LosingCheckmate  eval.Score = -(MaxScore - 1)
)

const winningMateThreshold = WinningCheckmate - 1000 // headroom for max search ply.

// IsMateScore reports whether s represents a forced mate (in either
// direction), as opposed to a material/positional score.
func IsMateScore(s eval.Score) bool {
	return s >= winningMateThreshold || s <= -winningMateThreshold
}

// MateIn returns the number of moves to mate (positive: we mate; negative:
// we get mated) and true, if s is a mate score.
func MateIn(s eval.Score) (int, bool) {
	if !IsMateScore(s) {
		return 0, false
	}
	if s > 0 {
		return (int(WinningCheckmate-s) + 1) / 2, true
	}
	return -((int(WinningCheckmate+s) + 1) / 2), true
}

// addMateDistance/subMateDistance implement the "distance-from-root added"
// TT storage convention: a mate score is stored relative to the node it was
// found in (mate-in-k-from-here) and converted back to mate-in-k-from-root
// on retrieval, since intervening plies change the value otherwise.
func addMateDistance(s eval.Score, ply int) eval.Score {
	switch {
	case s >= winningMateThreshold:
		return s + eval.Score(ply)
	case s <= -winningMateThreshold:
		return s - eval.Score(ply)
	default:
		return s
	}
}

func subMateDistance(s eval.Score, ply int) eval.Score {
	switch {
	case s >= winningMateThreshold:
		return s - eval.Score(ply)
	case s <= -winningMateThreshold:
		return s + eval.Score(ply)
	default:
		return s
	}
}

// ScoreType classifies a reported score the way UCI-style consumers expect.
type ScoreType uint8

const (
	Exact ScoreType = iota
	LowerBound
	UpperBound
	Mate
)

func (t ScoreType) String() string {
	switch t {
	case Exact:
		return "exact"
	case LowerBound:
		return "lowerbound"
	case UpperBound:
		return "upperbound"
	case Mate:
		return "mate"
	default:
		return "?"
	}
}

// Result is the externally visible outcome of a search.
type Result struct {
	BestMove   lang.Optional[board.Move]
	PonderMove lang.Optional[board.Move]
	Score      lang.Optional[eval.Score]
	ScoreType  lang.Optional[ScoreType]
}

// PV is the principal variation found at one completed iterative-deepening
// depth.
type PV struct {
	Depth    int
	SelDepth int
	Moves    []board.Move
	Score    eval.Score
	Type     ScoreType
	Nodes    uint64
	Time     time.Duration
	Hash     float64 // TT utilization [0;1], best effort.
}

func (p PV) String() string {
	moves := make([]string, len(p.Moves))
	for i, m := range p.Moves {
		moves[i] = m.PACN()
	}
	return fmt.Sprintf("depth=%v seldepth=%v score=%v(%v) nodes=%v time=%v hash=%v%% pv=%v",
		p.Depth, p.SelDepth, p.Score, p.Type, p.Nodes, p.Time, int(100*p.Hash), strings.Join(moves, " "))
}

// TimeControl mirrors a UCI-style clock: remaining time per side plus an
// optional moves-to-go, used to derive soft/hard per-move budgets.
type TimeControl struct {
	White, Black time.Duration
	Increment    time.Duration
	MovesToGo    int // 0 == rest of game.
}

// Limits returns the soft and hard time budget for the side to move: after
// the soft limit, no new iterative-deepening depth is started; the hard
// limit force-stops an in-progress search.
func (t TimeControl) Limits(c board.Color) (soft, hard time.Duration) {
	remaining := t.White
	if c == board.Black {
		remaining = t.Black
	}

	moves := time.Duration(40)
	if t.MovesToGo > 0 {
		moves = time.Duration(t.MovesToGo) + 1
	}

	soft = remaining/(2*moves) + t.Increment/2
	hard = 3 * soft
	return soft, hard
}

// Limits bundles every disjunctive stop condition a caller may request.
type Limits struct {
	Depth       lang.Optional[uint]
	Nodes       lang.Optional[uint64]
	Time        lang.Optional[TimeControl]
	MoveTime    lang.Optional[time.Duration] // fixed time for this move only.
	MateIn      lang.Optional[uint]
	Infinite    bool // not read by Search: the search still ends at depth 64 or another limit.
	RootMoves   []board.Move // restrict search to this subset, if non-empty.
	Threads     int          // total OS threads, master + helpers; 0 == 1.
	HashBytes   uint64       // not read by Search: table sizes are fixed by NewEngine's hashBytes.
}

// Reporter receives search progress: the master thread emits one report at
// the end of every completed iteration. Best-move or score changes within
// an iteration are not reported.
type Reporter interface {
	Report(pv PV)
}

// NopReporter discards all reports.
type NopReporter struct{}

func (NopReporter) Report(PV) {}

// Book is a narrow opening-book probe interface: given a position key,
// return a candidate move to play without searching.
type Book interface {
	Probe(key board.ZobristKey) (board.Move, bool)
}

// Tablebase is a narrow endgame-tablebase probe interface: given a
// position, return its exact game-theoretic score if known.
type Tablebase interface {
	Probe(pos *board.Position) (eval.Score, bool)
}
