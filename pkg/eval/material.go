package eval

import "github.com/corvidchess/corvid/pkg/board"

// TotalOpeningWeight is the denominator W in the phase-score formula.
const TotalOpeningWeight = 24

// KingValue is the King's unreachable symbolic value, used only by SEE to
// make a king-capture always dominate the exchange.
const KingValue Score = 20000

// DefaultMaterial is the default (mg, eg) material value pair per piece type,
// indexed by board.PieceType.
var DefaultMaterial = [board.NumPieceTypes]Pair{
	board.NoPieceType: {0, 0},
	board.King:        {KingValue, KingValue},
	board.Queen:       {900, 915},
	board.Rook:        {500, 505},
	board.Bishop:      {325, 340},
	board.Knight:      {325, 320},
	board.Pawn:        {100, 120},
}

// phaseWeight is the opening-weight contribution of one piece of the type,
// used by Phase; queens weight 4, rooks 2, minors 1, feeding the
// p = ((W-(4q+2r+b+n))*256+W/2)/W formula.
var phaseWeight = [board.NumPieceTypes]int{
	board.Queen:  4,
	board.Rook:   2,
	board.Bishop: 1,
	board.Knight: 1,
}

// Phase returns the phase score p in [0, 256]: 0 for a full board (pure
// mid-game), 256 once queens/rooks/minors have been traded off (pure
// end-game).
func Phase(pos *board.Position) int {
	weight := 0
	for _, t := range []board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight} {
		count := pos.PieceBB(board.White, t).PopCount() + pos.PieceBB(board.Black, t).PopCount()
		weight += count * phaseWeight[t]
	}
	p := ((TotalOpeningWeight-weight)*256 + TotalOpeningWeight/2) / TotalOpeningWeight
	switch {
	case p < 0:
		return 0
	case p > 256:
		return 256
	default:
		return p
	}
}

// Material returns the white-minus-black material balance, tapered.
func Material(pos *board.Position, mat *[board.NumPieceTypes]Pair, p int) Score {
	var total Pair
	for _, t := range board.WhitePieceTypes {
		count := pos.PieceBB(board.White, t).PopCount() - pos.PieceBB(board.Black, t).PopCount()
		total = total.Add(mat[t].Scale(count))
	}
	return total.Taper(p)
}
