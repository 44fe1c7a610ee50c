package eval

import "github.com/corvidchess/corvid/pkg/board"

// kingZone returns the zone around the king: the king's square, its own
// attack pattern, and the squares at Chebyshev distance 2 except the four
// diagonal corners of that ring. This is up to 21 squares on an open board
// (fewer at the edge), not a 16-square zone.
func kingZone(king board.Square) board.Bitboard {
	zone := board.KingAttackboard(king) | board.BitMask(king)
	f, r := int(king.File()), int(king.Rank())
	for df := -2; df <= 2; df++ {
		for dr := -2; dr <= 2; dr++ {
			if df > -2 && df < 2 && dr > -2 && dr < 2 {
				continue // already covered by KingAttackboard/self.
			}
			nf, nr := f+df, r+dr
			if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
				continue
			}
			if abs(df) <= 1 || abs(dr) <= 1 {
				zone |= board.BitMask(board.NewSquare(board.File(nf), board.Rank(nr)))
			}
		}
	}
	return zone
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// pieceTerms computes, in a single pass over each side's non-king, non-pawn
// pieces (plus a dedicated pawn mobility pass), the combined tapered
// contribution of: mobility, piece/pawn defense, king-zone attacks, and
// piece-king tropism. Returns white-minus-black.
func pieceTerms(pos *board.Position, params *Params) Pair {
	var total Pair
	for _, c := range [2]board.Color{board.White, board.Black} {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		total = total.Add(pieceTermsFor(pos, params, c).Scale(sign))
	}
	return total
}

func pieceTermsFor(pos *board.Position, params *Params, c board.Color) Pair {
	var total Pair
	occ := pos.Occupied()
	own := pos.ColorBB(c)
	ownPawns := pos.PieceBB(c, board.Pawn)
	opp := c.Opponent()

	ownKing := pos.KingSquare(c)
	enemyKing := pos.KingSquare(opp)
	enemyZone := kingZone(enemyKing)

	var zoneAttackers int
	var zoneSquares board.Bitboard

	for _, t := range []board.PieceType{board.Knight, board.Bishop, board.Rook, board.Queen} {
		for bb := pos.PieceBB(c, t); bb != 0; {
			sq := bb.PopLSB()
			attacks := board.Attackboard(occ, sq, t)

			mobility := attacks &^ own
			total = total.Add(params.Mobility[t].Scale(mobility.PopCount()))

			total = total.Add(params.PieceDefense[t].Scale((attacks & own).PopCount()))
			total = total.Add(params.PawnDefense[t].Scale(boolToInt(board.PawnCaptureboard(c.Opponent(), board.BitMask(sq))&ownPawns != 0)))

			total = total.Add(params.TropismOwn[t].Scale(sq.ChebyshevDistance(ownKing)))
			total = total.Add(params.TropismEnemy[t].Scale(sq.ChebyshevDistance(enemyKing)))

			if inZone := attacks & enemyZone; inZone != 0 {
				zoneAttackers++
				zoneSquares |= inZone
			}
		}
	}

	// Pawn "mobility" counts legal pushes/captures; approximate here with
	// pseudo-legal pushes plus captures, consistent with other pieces'
	// pseudo-legal mobility counts.
	pawnMoves := board.PawnPushboard(occ, c, ownPawns) | board.PawnCaptureboard(c, ownPawns)&pos.ColorBB(opp)
	total = total.Add(params.Mobility[board.Pawn].Scale(pawnMoves.PopCount()))

	enemyPawns := pos.PieceBB(opp, board.Pawn)
	for bb := ownPawns; bb != 0; {
		sq := bb.PopLSB()
		d := sq.ManhattanDistance(ownKing)
		switch {
		case isPassed(c, sq, enemyPawns):
			total = total.Add(params.PassedPawnTropism.Scale(d))
		case hasAdjacentFilePawn(ownPawns, sq.File()) && isBackward(c, sq, ownPawns, enemyPawns):
			total = total.Add(params.WeakPawnTropism.Scale(d))
		default:
			total = total.Add(params.PawnTropism.Scale(d))
		}
	}

	total = total.Add(params.KingZoneAttackerWeight.Scale(zoneAttackers))
	total = total.Add(params.KingZoneSquareWeight.Scale(zoneSquares.PopCount()))

	if pos.PieceBB(c, board.Bishop).PopCount() >= 2 && bishopsOnBothColors(pos.PieceBB(c, board.Bishop)) {
		total = total.Add(params.BishopPair)
	}

	return total
}

func bishopsOnBothColors(bishops board.Bitboard) bool {
	first := bishops.LSB()
	firstDark := isDarkSquare(first)
	for bb := bishops; bb != 0; {
		sq := bb.PopLSB()
		if isDarkSquare(sq) != firstDark {
			return true
		}
	}
	return false
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// MopUp returns a bonus (for the side with overwhelming material, e.g.
// KRK/KQK) proportional to how far the weak king is from the board center,
// active only once the defending side has no pawns, rooks or queens of its
// own sufficient to complicate matters.
func MopUp(pos *board.Position, params *Params) Score {
	var total Score
	for _, c := range [2]board.Color{board.White, board.Black} {
		weak := c.Opponent()
		if !isOverwhelming(pos, c, weak) {
			continue
		}
		sign := Score(1)
		if c == board.Black {
			sign = -1
		}
		weakKing := pos.KingSquare(weak)
		total += sign * params.MopUpWeight * Score(centerDistance(weakKing))
	}
	return total
}

// isOverwhelming reports whether color c has at least one rook or queen
// while weak has no pawns or heavy pieces left to fight back with,
// characteristic of a KRK/KQK-style mating ending. The material balance
// itself is not compared.
func isOverwhelming(pos *board.Position, c, weak board.Color) bool {
	if pos.PieceBB(weak, board.Pawn)|pos.PieceBB(weak, board.Rook)|pos.PieceBB(weak, board.Queen) != 0 {
		return false
	}
	return pos.PieceBB(c, board.Rook)|pos.PieceBB(c, board.Queen) != 0
}

// centerDistance returns the Chebyshev distance of sq from the nearest of
// the four center squares, larger for corners.
func centerDistance(sq board.Square) int {
	f, r := int(sq.File()), int(sq.Rank())
	df := f - 4
	if df < 0 {
		df = 3 - f
	}
	dr := r - 4
	if dr < 0 {
		dr = 3 - r
	}
	if df > dr {
		return df
	}
	return dr
}
