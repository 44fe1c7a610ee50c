package eval

import "github.com/corvidchess/corvid/pkg/board"

// SEEValue is the flat (non-tapered) material value used by SEE and
// MVV/LVA: {P:100, N:325, B:325, R:500, Q:900}; King is the same
// unreachable symbolic value as material.go.
var SEEValue = [board.NumPieceTypes]Score{
	board.Pawn:   100,
	board.Knight: 325,
	board.Bishop: 325,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   KingValue,
}

// attackOrder is the cascade SEE uses to pick the next least-valued attacker.
var attackOrder = [...]board.PieceType{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen, board.King}

// leastValuableAttacker returns the square and type of the cheapest attacker
// of color by on sq given occupancy occ, re-deriving slider attacks from occ
// each time so previously hidden X-ray attackers are found.
func leastValuableAttacker(pos *board.Position, occ board.Bitboard, sq board.Square, by board.Color) (board.Square, board.PieceType, bool) {
	for _, t := range attackOrder {
		var attackers board.Bitboard
		switch t {
		case board.Pawn:
			attackers = board.PawnCaptureboard(by.Opponent(), board.BitMask(sq)) & pos.PieceBB(by, board.Pawn) & occ
		case board.Knight:
			attackers = board.KnightAttackboard(sq) & pos.PieceBB(by, board.Knight) & occ
		case board.Bishop:
			attackers = board.BishopAttackboard(occ, sq) & pos.PieceBB(by, board.Bishop) & occ
		case board.Rook:
			attackers = board.RookAttackboard(occ, sq) & pos.PieceBB(by, board.Rook) & occ
		case board.Queen:
			attackers = board.QueenAttackboard(occ, sq) & pos.PieceBB(by, board.Queen) & occ
		case board.King:
			attackers = board.KingAttackboard(sq) & pos.PieceBB(by, board.King) & occ
		}
		if attackers != 0 {
			return attackers.LSB(), t, true
		}
	}
	return board.NoSquare, board.NoPieceType, false
}

// SEE computes the Static Exchange Evaluation of the capture m: the
// best-case material result (for the side making m) of the full capture
// sequence on m.To, assuming best play by both sides.
func SEE(pos *board.Position, m board.Move) Score {
	if m.Captured == board.NoPiece && m.Type != board.EnPassant {
		return 0
	}
	side := m.Moved.Color()
	to := m.To

	var gain [32]Score
	depth := 0

	capturedType := m.Captured.Type()
	gain[0] = SEEValue[capturedType]
	if m.IsPromotion() {
		gain[0] += SEEValue[m.Type.PromotionPiece(side).Type()] - SEEValue[board.Pawn]
	}

	occ := pos.Occupied()
	occ &^= board.BitMask(m.From)
	if m.Type == board.EnPassant {
		capturedSq := to
		if side == board.White {
			capturedSq -= 8
		} else {
			capturedSq += 8
		}
		occ &^= board.BitMask(capturedSq)
		occ |= board.BitMask(to) // the capturing pawn now occupies `to`.
	}

	attackerValue := SEEValue[m.Moved.Type()]
	if m.IsPromotion() {
		attackerValue = SEEValue[m.Type.PromotionPiece(side).Type()]
	}
	lastWasKing := m.Moved.Type() == board.King

	turn := side.Opponent()
	for {
		sq, t, ok := leastValuableAttacker(pos, occ, to, turn)
		if !ok {
			break
		}
		if lastWasKing {
			// The previous (friendly-to-`turn`) capture was with a king, and
			// turn still has an attacker: capturing the king is illegal, so
			// the exchange cannot continue past this point.
			break
		}

		depth++
		gain[depth] = attackerValue - gain[depth-1]
		if Max(gain[depth], -gain[depth-1]) < 0 {
			break
		}

		occ &^= board.BitMask(sq)
		attackerValue = SEEValue[t]
		lastWasKing = t == board.King
		turn = turn.Opponent()
	}

	for depth > 0 {
		gain[depth-1] = Min(-gain[depth], gain[depth-1])
		depth--
	}
	return gain[0]
}
