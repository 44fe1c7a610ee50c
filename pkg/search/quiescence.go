package search

import (
	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
)

// quiescence runs a capture/promotion-only (or, in check, full-evasion)
// search to a quiet position. Stand-pat uses the static evaluation as a
// lower bound when not in check; fail-soft throughout.
func (w *worker) quiescence(pos *board.Position, alpha, beta eval.Score, ply int) eval.Score {
	w.nodes.Add(1)
	if ply > w.selDepth {
		w.selDepth = ply
	}
	if w.shouldStop() {
		return 0
	}

	inCheck := pos.InCheck()
	var standPat eval.Score
	if !inCheck {
		standPat = w.evaluate(pos)
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	var moves []board.Move
	if inCheck {
		moves = pos.AllMoves() // full evasions: no quiet/tactical split while in check.
	}

	best := standPat
	hasLegalMove := false

	if inCheck {
		best = MinScore
		for _, m := range moves {
			pos.Make(m)
			hasLegalMove = true
			score := -w.quiescence(pos, -beta, -alpha, ply+1)
			pos.Unmake()

			if score > best {
				best = score
				if score > alpha {
					alpha = score
				}
			}
			if alpha >= beta {
				break
			}
		}
		if !hasLegalMove {
			return LosingCheckmate + eval.Score(ply)
		}
		return best
	}

	for _, om := range orderTacticalMoves(pos) {
		if om.see < 0 {
			continue // delta/SEE pruning: losing captures never help a quiet stand-pat.
		}
		if standPat+om.see+w.params.DeltaMargin < alpha {
			continue // delta pruning: even the best case can't reach alpha.
		}

		pos.Make(om.move)
		score := -w.quiescence(pos, -beta, -alpha, ply+1)
		pos.Unmake()

		if score > best {
			best = score
			if score > alpha {
				alpha = score
			}
		}
		if alpha >= beta {
			break
		}
	}

	return best
}
