package search

import (
	"sort"
	"sync"

	"go.uber.org/atomic"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/cache"
	"github.com/corvidchess/corvid/pkg/eval"
)

// rootMoveStat tracks one root move's subtree node count across every
// helper thread, so the root move list can be reordered: a move that has
// absorbed the most nodes so far is searched first on the next root pass.
type rootMoveStat struct {
	move  board.Move
	nodes atomic.Uint64
}

// rootState is the state shared by every thread searching the same root
// position: the candidate move list and per-move node counters. The list is
// re-sorted by every thread, master and helpers alike, at the start of each
// root pass (each depth and each aspiration re-search), so its order can
// change while other threads are mid-iteration.
type rootState struct {
	mu    sync.Mutex
	stats []*rootMoveStat
}

func newRootState(moves []board.Move) *rootState {
	stats := make([]*rootMoveStat, len(moves))
	for i, m := range moves {
		stats[i] = &rootMoveStat{move: m}
	}
	return &rootState{stats: stats}
}

// orderedMoves returns the current root move order, descending by
// previously observed subtree size. The first iteration (all counters
// zero) preserves the caller's original move order (sort is stable).
func (r *rootState) orderedMoves() []board.Move {
	r.mu.Lock()
	defer r.mu.Unlock()

	sort.SliceStable(r.stats, func(i, j int) bool {
		return r.stats[i].nodes.Load() > r.stats[j].nodes.Load()
	})
	moves := make([]board.Move, len(r.stats))
	for i, s := range r.stats {
		moves[i] = s.move
	}
	return moves
}

// addNodes records n additional nodes spent under move's subtree.
func (r *rootState) addNodes(move board.Move, n uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.stats {
		if s.move.Equals(move) {
			s.nodes.Add(n)
			return
		}
	}
}

// rootResult is one completed root search at a single depth.
type rootResult struct {
	move  board.Move
	score eval.Score
	bound cache.Bound
}

// searchRoot runs one depth of aspiration-windowed root search using w's
// private tables: it widens the window on either side and re-searches at
// the same depth on a fail-low or fail-high. prevScore is the previous
// iteration's score (ignored, full-width, below depth 5).
func (w *worker) searchRoot(pos *board.Position, depth int, prevScore eval.Score) rootResult {
	w.rootPly = depth / FullPly

	alpha, beta := int(MinScore), int(MaxScore)
	window := 25

	if depth > 4*FullPly {
		alpha = int(prevScore) - window
		beta = int(prevScore) + window
	}

	fails := 0
	for {
		res := w.searchRootWindow(pos, depth, alpha, beta)
		if w.shouldStop() {
			return res
		}

		failedLow := int(res.score) <= alpha && alpha > int(MinScore)
		failedHigh := int(res.score) >= beta && beta < int(MaxScore)
		if !failedLow && !failedHigh {
			return res
		}

		fails++
		grow := window << fails
		if failedLow {
			if fails >= 2 {
				alpha = int(MinScore)
			} else {
				alpha = int(prevScore) - grow
			}
		}
		if failedHigh {
			if fails >= 2 {
				beta = int(MaxScore)
			} else {
				beta = int(prevScore) + grow
			}
		}
	}
}

// searchRootWindow searches every root move once within [alpha, beta],
// using PVS (full window on the first move, null-window plus re-search on
// the rest), and returns the best move/score/bound found.
func (w *worker) searchRootWindow(pos *board.Position, depth, alpha, beta int) rootResult {
	moves := w.root.orderedMoves()
	if len(moves) == 0 {
		moves = orderMoves(pos, board.Move{}, board.Move{}, board.Move{}, w.history)
	}
	if len(moves) == 0 {
		// No legal moves at the root: checkmate or stalemate, not a
		// window to search.
		if pos.InCheck() {
			return rootResult{score: -WinningCheckmate, bound: cache.Exact}
		}
		return rootResult{score: StaleMate, bound: cache.Exact}
	}

	var best rootResult
	best.score = MinScore
	bound := cache.FailLow
	first := true

	for _, m := range moves {
		before := w.nodes.Load()

		pos.Make(m)
		var score eval.Score
		if first {
			score = -w.search(pos, depth-FullPly, -beta, -alpha, 1, true)
		} else {
			score = -w.search(pos, depth-FullPly, -alpha-1, -alpha, 1, false)
			if int(score) > alpha && int(score) < beta {
				score = -w.search(pos, depth-FullPly, -beta, -alpha, 1, true)
			}
		}
		pos.Unmake()

		w.root.addNodes(m, w.nodes.Load()-before)

		if w.shouldStop() && !first {
			break
		}
		first = false

		if score > best.score {
			best.score = score
			best.move = m
		}
		if int(score) > alpha {
			alpha = int(score)
			bound = cache.Exact
		}
		if alpha >= beta {
			bound = cache.FailHigh
			break
		}
	}

	best.bound = bound
	return best
}
