package search

import (
	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/cache"
	"github.com/corvidchess/corvid/pkg/eval"
)

// search is the interior-node principal-variation search: negamax with a
// null-window re-search ladder, pruning, reductions and extensions. Returns
// the score from the side-to-move's perspective; the principal variation is
// recovered afterwards from the TT's stored best moves.
func (w *worker) search(pos *board.Position, depth, alpha, beta, ply int, isPV bool) eval.Score {
	if w.shouldStop() {
		return 0
	}
	if ply > 0 {
		if s, ok := w.drawScore(pos); ok {
			return s
		}
		// Mate-distance pruning: a mate found shallower than what alpha/beta
		// can already guarantee cannot improve the result.
		mateAlpha := eval.Score(-WinningCheckmate + eval.Score(ply))
		if int(mateAlpha) > alpha {
			alpha = int(mateAlpha)
		}
		mateBeta := eval.Score(WinningCheckmate - eval.Score(ply))
		if int(mateBeta) < beta {
			beta = int(mateBeta)
		}
		if alpha >= beta {
			return eval.Score(alpha)
		}
	}

	if depth < FullPly {
		return w.quiescence(pos, eval.Score(alpha), eval.Score(beta), ply)
	}

	w.nodes.Add(1)
	if ply > w.selDepth {
		w.selDepth = ply
	}

	key := pos.Key()
	var hashMove board.Move
	if r, ok := w.tt.Read(key); ok {
		hashMove = r.Move
		if int(r.Depth) >= depth {
			score := subMateDistance(r.Score, ply)
			switch r.Bound {
			case cache.Exact:
				if !isPV {
					return score
				}
			case cache.FailHigh:
				if int(score) >= beta {
					return score
				}
			case cache.FailLow:
				if int(score) <= alpha {
					return score
				}
			}
		}
	}

	inCheck := pos.InCheck()
	staticEval := w.evaluate(pos) // from the side-to-move's own perspective.

	canPrune := !isPV && !inCheck && !IsMateScore(eval.Score(alpha)) && !IsMateScore(eval.Score(beta))

	if canPrune && depth <= 3*FullPly {
		idx := depth / FullPly
		if idx >= 1 && idx <= 3 {
			margin := w.params.RazorMargin[idx]
			if int(staticEval-margin) >= beta {
				return staticEval - margin
			}
		}
	}

	if canPrune && depth >= w.params.NullMoveReductionMinDepthLeft && hasNonPawnMaterial(pos) && int(staticEval) > alpha {
		// The reduction grows with the current iterative-deepening
		// iteration's nominal depth (w.rootPly, constant for every node
		// searched this iteration), not with the node's own remaining
		// depth: a literal-behavior requirement carried over unchanged.
		r := FullPly + FullPly*w.rootPly/4
		pos.MakeNull()
		score := -w.search(pos, depth-FullPly-r, -beta, -beta+1, ply+1, false)
		pos.UnmakeNull()
		if int(score) >= beta {
			return score
		}
	}

	if isPV && hashMove.Moved == board.NoPiece && depth >= 5*FullPly {
		w.search(pos, depth*5/8, alpha, beta, ply, false)
		if r, ok := w.tt.Read(key); ok {
			hashMove = r.Move
		}
	}

	k1, k2 := w.killers.Moves(ply)
	moves := orderMoves(pos, hashMove, k1, k2, w.history)

	var best eval.Score = eval.Score(MinScore)
	var bestMove board.Move
	bound := cache.FailLow
	legalCount := 0

	for _, m := range moves {
		quiet := !m.IsCapture() && !m.IsPromotion()
		if canPrune && quiet && !inCheck && depth <= 5*FullPly && legalCount > 0 {
			idx := depth / FullPly
			if idx >= 1 && idx <= 5 {
				margin := w.params.FutilityMargin[idx]
				if int(staticEval+margin) <= alpha {
					w.history.RecordFailure(m, depth/FullPly)
					continue
				}
			}
		}

		prevMove, prevWasCapture := pos.LastMove()
		prevWasCapture = prevWasCapture && prevMove.IsCapture()

		pos.Make(m)
		legalCount++

		// A move is extended when it is forcing enough that cutting the
		// search short at the horizon risks missing a tactic: it gives
		// check, pushes a pawn to the second rank from promoting, recaptures
		// on the square the opponent just captured on, or is the only legal
		// reply available at this node.
		extension := 0
		switch {
		case pos.InCheck():
			extension = FullPly
		case m.Moved.Type() == board.Pawn && (m.To.Rank() == board.Rank7 || m.To.Rank() == board.Rank2):
			extension = FullPly / 2
		case prevWasCapture && m.To == prevMove.To && m.IsCapture():
			extension = FullPly / 2
		case len(moves) == 1:
			extension = FullPly / 2
		}

		childDepth := depth - FullPly + extension
		var score eval.Score

		if legalCount == 1 {
			score = -w.search(pos, childDepth, -beta, -alpha, ply+1, isPV)
		} else {
			reduction := 0
			if quiet && canPrune && legalCount > 3 && depth >= 3*FullPly && extension == 0 {
				reduction = lmrReduction(depth, legalCount)
			}
			score = -w.search(pos, childDepth-reduction, -alpha-1, -alpha, ply+1, false)
			if reduction > 0 && int(score) > alpha {
				score = -w.search(pos, childDepth, -alpha-1, -alpha, ply+1, false)
			}
			if int(score) > alpha && int(score) < beta {
				score = -w.search(pos, childDepth, -beta, -alpha, ply+1, true)
			}
		}
		pos.Unmake()

		if int(score) > int(best) {
			best = score
			bestMove = m
		}
		if int(score) > alpha {
			alpha = int(score)
			bound = cache.Exact
		}
		if alpha >= beta {
			bound = cache.FailHigh
			if quiet {
				w.killers.Add(ply, m)
				w.history.RecordSuccess(m, depth/FullPly)
			}
			break
		}
		if quiet {
			w.history.RecordFailure(m, depth/FullPly)
		}
	}

	if legalCount == 0 {
		if len(moves) > 0 {
			// Every move was futility-pruned, not absent: there is no
			// terminal position here, just nothing worth searching further.
			return eval.Score(alpha)
		}
		if inCheck {
			return eval.Score(-WinningCheckmate) + eval.Score(ply)
		}
		return StaleMate
	}

	w.tt.Write(key, bound, addMateDistance(best, ply), bestMove, depth)
	return best
}

func hasNonPawnMaterial(pos *board.Position) bool {
	c := pos.SideToMove()
	for _, t := range []board.PieceType{board.Knight, board.Bishop, board.Rook, board.Queen} {
		if pos.PieceBB(c, t) != 0 {
			return true
		}
	}
	return false
}

// lmrReduction returns the late-move-reduction amount, in FullPly units,
// growing with both depth and move index.
func lmrReduction(depth, moveIndex int) int {
	r := FullPly / 2
	if depth >= 6*FullPly {
		r += FullPly / 4
	}
	if moveIndex > 8 {
		r += FullPly / 4
	}
	if r >= depth {
		r = depth - FullPly
	}
	if r < 0 {
		r = 0
	}
	return r
}
