package search

import (
	"go.uber.org/atomic"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/cache"
	"github.com/corvidchess/corvid/pkg/eval"
)

// worker is one search thread's private state: its own Position clone,
// killer/history tables, and node counter, sharing only the TT/ET and the
// search-wide stop flag with its siblings.
type worker struct {
	id int

	tt *cache.TranspositionTable
	et *cache.EvaluationTable

	params *eval.Params

	killers *KillerTable
	history *HistoryTable

	nodes    atomic.Uint64
	selDepth int
	rootPly  int // the current iterative-deepening iteration's nominal depth (1, 2, 3, ...), constant for the whole iteration.

	stop *atomic.Bool // search-wide; set by the master or a node/time limit.
	root *rootState
}

func newWorker(id int, tt *cache.TranspositionTable, et *cache.EvaluationTable, params *eval.Params, stop *atomic.Bool, root *rootState) *worker {
	return &worker{
		id:      id,
		tt:      tt,
		et:      et,
		params:  params,
		killers: &KillerTable{},
		history: &HistoryTable{},
		stop:    stop,
		root:    root,
	}
}

func (w *worker) shouldStop() bool {
	return w.stop.Load()
}

// evaluate returns pos's static score, preferring a cached ET hit.
func (w *worker) evaluate(pos *board.Position) eval.Score {
	key := pos.Key()
	if w.et != nil {
		if s, ok := w.et.Read(key); ok {
			return s
		}
	}
	s := eval.Evaluate(pos, w.params)
	if w.et != nil {
		w.et.Write(key, s, w.tt.Generation())
	}
	return s
}

// drawScore reports the claimed-draw score for pos at this node, and
// whether one applies: fifty-move clock expiry, a repeated position, or
// insufficient material, checked at the start of every interior node. The
// root (ply 0) is not checked.
func (w *worker) drawScore(pos *board.Position) (eval.Score, bool) {
	if pos.FiftyMoveClock() >= 100 {
		return DrawScore, true
	}
	if pos.HasRepeated(1) {
		return DrawScore, true
	}
	if eval.InsufficientMaterial(pos) {
		return InsufficientMaterialScore, true
	}
	return 0, false
}
