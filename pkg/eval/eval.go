// Package eval implements tapered static position evaluation, static
// exchange evaluation, and move-ordering heuristics.
package eval

import "github.com/corvidchess/corvid/pkg/board"

// Evaluate returns the tapered static score of pos from the perspective of
// the side to move: positive favors the mover.
func Evaluate(pos *board.Position, params *Params) Score {
	p := Phase(pos)

	mat := Material(pos, &params.Material, p)
	pst := PST(pos, p)
	structure := pawnStructure(pos, params).Taper(p)
	pieces := pieceTerms(pos, params).Taper(p)
	mopUp := MopUp(pos, params)

	score := mat + pst + structure + pieces + mopUp
	if pos.SideToMove() == board.Black {
		score = -score
	}

	score += params.TempoBonus
	if !pos.InCheck() {
		score += bestImmediateCapture(pos)
	}
	return score
}

// bestImmediateCapture returns the material value of the single most
// valuable immediate capture available to the side to move, scanning the
// same pseudo-legal attack sets used by mobility. Zero if none. This term
// is asymmetric (computed only for the mover) and untapered, per the
// one-ply quiet-position bias.
func bestImmediateCapture(pos *board.Position) Score {
	c := pos.SideToMove()
	occ := pos.Occupied()
	enemy := pos.ColorBB(c.Opponent())

	var best Score
	for _, t := range []board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight} {
		for bb := pos.PieceBB(c, t); bb != 0; {
			sq := bb.PopLSB()
			targets := board.Attackboard(occ, sq, t) & enemy
			for tb := targets; tb != 0; {
				victim := tb.PopLSB()
				if v := SEEValue[pos.PieceAt(victim).Type()]; v > best {
					best = v
				}
			}
		}
	}

	pawns := pos.PieceBB(c, board.Pawn)
	targets := board.PawnCaptureboard(c, pawns) & enemy
	for tb := targets; tb != 0; {
		victim := tb.PopLSB()
		if v := SEEValue[pos.PieceAt(victim).Type()]; v > best {
			best = v
		}
	}

	if kingTargets := board.KingAttackboard(pos.KingSquare(c)) & enemy; kingTargets != 0 {
		for tb := kingTargets; tb != 0; {
			victim := tb.PopLSB()
			if v := SEEValue[pos.PieceAt(victim).Type()]; v > best {
				best = v
			}
		}
	}

	return best
}
