package search

import (
	"context"
	"time"

	"go.uber.org/atomic"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/cache"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/seekerror/stdlib/pkg/lang"
)

func optMove(m board.Move) lang.Optional[board.Move] {
	if m.Moved == board.NoPiece {
		return lang.Optional[board.Move]{}
	}
	return lang.Some(m)
}

func optScore(s eval.Score) lang.Optional[eval.Score] { return lang.Some(s) }

func optScoreType(t ScoreType) lang.Optional[ScoreType] { return lang.Some(t) }

// Engine owns the shared transposition and evaluation caches and runs
// parallel iterative-deepening searches against them. A single Engine may
// run successive searches; each one clears no state but NewSearch()s the
// TT's generation counter.
type Engine struct {
	TT     *cache.TranspositionTable
	ET     *cache.EvaluationTable
	Params *eval.Params

	Book       Book
	Tablebase  Tablebase
}

// NewEngine allocates an Engine with TT/ET sized per hashBytes (16 MiB when
// zero; split 3:1 in the TT's favor, a common practical ratio) and default
// evaluation parameters.
func NewEngine(hashBytes uint64) *Engine {
	if hashBytes == 0 {
		hashBytes = 16 << 20
	}
	params := eval.DefaultParams()
	return &Engine{
		TT:     cache.NewTranspositionTable(hashBytes * 3 / 4),
		ET:     cache.NewEvaluationTable(hashBytes / 4),
		Params: &params,
	}
}

// Search runs a parallel search from pos per limits, reporting progress to
// reporter, and returns once a stop condition fires (depth/node/time limit,
// ctx cancellation, or a mate within Limits.MateIn moves).
//
// The helper-thread pool is a Lazy-SMP-style root split: every
// thread, master included, runs its own independent iterative-deepening
// search of the same position, sharing only the TT/ET and a root move-order
// table; threads diverge only through TT timing races (every thread uses
// the same search parameters). The master's result is authoritative;
// helper results are discarded once the master stops.
func (e *Engine) Search(ctx context.Context, pos *board.Position, limits Limits, reporter Reporter) Result {
	if reporter == nil {
		reporter = NopReporter{}
	}
	if tb := e.Tablebase; tb != nil {
		if score, ok := tb.Probe(pos); ok {
			return Result{Score: optScore(score)}
		}
	}
	if book := e.Book; book != nil {
		if m, ok := book.Probe(pos.Key()); ok {
			return Result{BestMove: optMove(m)}
		}
	}

	e.TT.NewSearch()

	threads := limits.Threads
	if threads <= 0 {
		threads = 1
	}

	root := newRootState(rootMoves(pos, limits))
	stop := atomic.NewBool(false)

	soft, hard := deadlines(pos, limits)
	if hard > 0 {
		timer := time.AfterFunc(hard, func() { stop.Store(true) })
		defer timer.Stop()
	}
	go func() {
		<-ctx.Done()
		stop.Store(true)
	}()

	masterResult := make(chan rootResult, 1)
	results := make(chan rootResult, threads)
	for i := 0; i < threads; i++ {
		w := newWorker(i, e.TT, e.ET, e.Params, stop, root)
		out := results
		if i == 0 {
			out = masterResult
		}
		go e.runIterative(w, pos.Clone(), limits, soft, stop, reporter, i == 0, out)
	}

	final := <-masterResult // the master's result is authoritative.
	for i := 1; i < threads; i++ {
		<-results
	}

	res := Result{
		BestMove: optMove(final.move),
		Score:    optScore(final.score),
	}
	switch final.bound {
	case cache.Exact:
		res.ScoreType = optScoreType(Exact)
	case cache.FailHigh:
		res.ScoreType = optScoreType(LowerBound)
	case cache.FailLow:
		res.ScoreType = optScoreType(UpperBound)
	}
	if IsMateScore(final.score) {
		res.ScoreType = optScoreType(Mate)
	}
	return res
}

// runIterative drives one thread's iterative-deepening loop: increasing
// depth, aspiration-windowed at the root, until a depth/node/mate/time stop
// condition fires or the shared stop flag is set.
func (e *Engine) runIterative(w *worker, pos *board.Position, limits Limits, soft time.Duration, stop *atomic.Bool, reporter Reporter, isMaster bool, results chan<- rootResult) {
	start := time.Now()
	maxDepth := 64
	if d, ok := limits.Depth.V(); ok {
		maxDepth = int(d)
	}

	w.history.Halve() // fresh search: previous search's history is half-relevant at best.

	var prevScore eval.Score
	var last rootResult

	for depth := 1; depth <= maxDepth; depth++ {
		if stop.Load() {
			break
		}

		res := w.searchRoot(pos, depth*FullPly, prevScore)
		if w.shouldStop() && depth > 1 {
			break
		}

		last = res
		prevScore = res.score

		if isMaster {
			pv := PV{
				Depth:    depth,
				SelDepth: w.selDepth,
				Moves:    extractPV(pos, w.tt, res.move, depth),
				Score:    res.score,
				Nodes:    w.nodes.Load(),
				Time:     time.Since(start),
				Hash:     w.tt.Used(),
			}
			switch res.bound {
			case cache.Exact:
				pv.Type = Exact
			case cache.FailHigh:
				pv.Type = LowerBound
			case cache.FailLow:
				pv.Type = UpperBound
			}
			if IsMateScore(res.score) {
				pv.Type = Mate
			}
			reporter.Report(pv)

			if n, ok := limits.MateIn.V(); ok {
				if md, ok := MateIn(res.score); ok && md > 0 && md <= int(n) {
					stop.Store(true)
				}
			}
			if n, ok := limits.Nodes.V(); ok && w.nodes.Load() >= n {
				stop.Store(true)
			}
			if soft > 0 && time.Since(start) >= soft {
				stop.Store(true)
			}
		}
	}

	results <- last
}

// extractPV walks the shared TT from pos following each node's stored hash
// move, up to maxLen plies; best-effort and stops at the first miss, a
// repeated position, or a move the TT suggests but which is no longer
// legal (a possible hash collision).
func extractPV(pos *board.Position, tt *cache.TranspositionTable, first board.Move, maxLen int) []board.Move {
	clone := pos.Clone()
	moves := make([]board.Move, 0, maxLen)

	m := first
	for len(moves) < maxLen {
		if m.Moved == board.NoPiece || !clone.IsLegal(m) {
			break
		}
		moves = append(moves, m)
		clone.Make(m)
		if clone.HasRepeated(1) {
			break
		}

		r, ok := tt.Read(clone.Key())
		if !ok {
			break
		}
		m = r.Move
	}
	return moves
}

// rootMoves returns the legal moves to consider at the root, honoring
// Limits.RootMoves if the caller restricted the search.
func rootMoves(pos *board.Position, limits Limits) []board.Move {
	all := pos.AllMoves()
	if len(limits.RootMoves) == 0 {
		return all
	}
	var filtered []board.Move
	for _, m := range all {
		for _, r := range limits.RootMoves {
			if m.Equals(r) {
				filtered = append(filtered, m)
				break
			}
		}
	}
	return filtered
}

// deadlines resolves limits' time-related fields into a soft stop (no new
// depth started after it) and a hard stop (forcibly halts mid-depth).
func deadlines(pos *board.Position, limits Limits) (soft, hard time.Duration) {
	if mt, ok := limits.MoveTime.V(); ok {
		return mt, mt
	}
	if tc, ok := limits.Time.V(); ok {
		return tc.Limits(pos.SideToMove())
	}
	return 0, 0
}
