package search

import (
	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
)

// Priority tiers for orderMoves, highest first. Tactical and quiet moves
// are further ranked within their tier by MVV/LVA+SEE or history score
// respectively, added on top of the tier base so ties break correctly
// without tiers ever overlapping.
const (
	tierWinningTactical board.MovePriority = 400_000_000
	tierKiller1         board.MovePriority = 300_000_000
	tierKiller2         board.MovePriority = 299_000_000
	tierLosingTactical  board.MovePriority = 100_000_000
	tierQuiet           board.MovePriority = 0
)

// orderMoves returns every legal move in pos ordered by priority tier:
// hash move first, then winning/equal tacticals by SEE/MVV-LVA, then the
// two killers, then losing captures by SEE, then quiet moves by relative
// history. hash may be the zero Move if there is none; it never matches a
// real generated move by accident, since Move equality includes Moved and
// a zero Move's Moved is NoPiece.
func orderMoves(pos *board.Position, hash board.Move, killer1, killer2 board.Move, hist *HistoryTable) []board.Move {
	all := pos.AllMoves()

	priority := func(m board.Move) board.MovePriority {
		switch {
		case m.IsCapture() || m.IsPromotion():
			see := eval.SEE(pos, m)
			if see >= 0 {
				return tierWinningTactical + board.MovePriority(eval.MVVLVA(m))*1000 + board.MovePriority(see)
			}
			return tierLosingTactical + board.MovePriority(see)
		case killer1.Moved != board.NoPiece && m.Equals(killer1):
			return tierKiller1
		case killer2.Moved != board.NoPiece && m.Equals(killer2):
			return tierKiller2
		default:
			return tierQuiet + board.MovePriority(hist.Score(m))
		}
	}

	ml := board.NewMoveList(all, board.First(hash, priority))
	ordered := make([]board.Move, 0, len(all))
	for {
		m, ok := ml.Next()
		if !ok {
			break
		}
		ordered = append(ordered, m)
	}
	return ordered
}

// orderTacticalMoves returns pos's tactical moves (captures and
// promotions) sorted winning-to-losing by SEE, for quiescence search.
func orderTacticalMoves(pos *board.Position) []orderedMove {
	moves := pos.TacticalMoves()
	board.SortByPriority(moves, func(m board.Move) board.MovePriority {
		return board.MovePriority(eval.SEE(pos, m))
	})

	ordered := make([]orderedMove, len(moves))
	for i, m := range moves {
		ordered[i] = orderedMove{m, eval.SEE(pos, m)}
	}
	return ordered
}

// orderedMove pairs a candidate move with its precomputed SEE value, used
// by quiescence search for its SEE<0/delta-margin pruning checks.
type orderedMove struct {
	move board.Move
	see  eval.Score
}
