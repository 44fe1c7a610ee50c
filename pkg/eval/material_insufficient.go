package eval

import "github.com/corvidchess/corvid/pkg/board"

// isDarkSquare reports whether sq is a dark square, used to test whether all
// bishops sit on a single color complex.
func isDarkSquare(sq board.Square) bool {
	return (int(sq.File())+int(sq.Rank()))%2 == 0
}

// InsufficientMaterial reports whether pos has insufficient material for
// either side to force checkmate.
//
// Any pawn, rook or queen on the board makes the position sufficient.
// Otherwise: two or three pieces total (the two kings plus at most one
// minor) is insufficient; with four or more pieces, the position is
// insufficient iff every bishop present sits on the same color complex as
// the first bishop found — this literally compares every bishop's square
// color to the first one's rather than independently verifying they share a
// complex, which is intentional (see the design notes on this predicate).
func InsufficientMaterial(pos *board.Position) bool {
	for _, t := range []board.PieceType{board.Pawn, board.Rook, board.Queen} {
		if pos.PieceBB(board.White, t)|pos.PieceBB(board.Black, t) != 0 {
			return false
		}
	}

	knights := pos.PieceBB(board.White, board.Knight) | pos.PieceBB(board.Black, board.Knight)
	bishops := pos.PieceBB(board.White, board.Bishop) | pos.PieceBB(board.Black, board.Bishop)
	total := 2 + knights.PopCount() + bishops.PopCount() // both kings plus minors.

	if total <= 3 {
		return true
	}
	if knights != 0 {
		return false
	}

	first := bishops.LSB()
	firstDark := isDarkSquare(first)
	for bb := bishops; bb != 0; {
		sq := bb.PopLSB()
		if isDarkSquare(sq) != firstDark {
			return false
		}
	}
	return true
}
