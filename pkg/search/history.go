package search

import "github.com/corvidchess/corvid/pkg/board"

// HistoryTable is the relative-history heuristic: a signed score per
// (piece, destination square), used to order quiet moves that have
// historically caused cutoffs at comparable depths. Not shared across
// threads; each search thread owns its own.
type HistoryTable struct {
	score [board.NumPieces][board.NumSquares]int32
}

// RecordSuccess bumps move's history score by an amount proportional to the
// square of the remaining depth: deeper cutoffs are stronger evidence.
func (h *HistoryTable) RecordSuccess(m board.Move, depth int) {
	if depth < 0 {
		depth = 0
	}
	h.score[m.Moved][m.To] += int32(depth * depth)
}

// RecordFailure decrements move's history score by a smaller amount when it
// was searched but failed to cause a cutoff.
func (h *HistoryTable) RecordFailure(m board.Move, depth int) {
	if depth < 0 {
		depth = 0
	}
	h.score[m.Moved][m.To] -= int32(depth)
}

// Score returns move's current relative-history value.
func (h *HistoryTable) Score(m board.Move) int32 {
	return h.score[m.Moved][m.To]
}

// Halve divides every entry by two, called by the iterative-deepening
// driver on each new search-root generation so stale history from earlier
// positions decays instead of dominating forever.
func (h *HistoryTable) Halve() {
	for p := range h.score {
		for sq := range h.score[p] {
			h.score[p][sq] /= 2
		}
	}
}
