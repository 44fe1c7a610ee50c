package eval

import "github.com/corvidchess/corvid/pkg/board"

// queenPromotionBonus is pawn-value^2 / king-value, added to the MVV/LVA
// score of a promotion to queen.
var queenPromotionBonus = Score(int(SEEValue[board.Pawn]) * int(SEEValue[board.Pawn]) / int(SEEValue[board.King]))

// mvvLva is a fixed 13x13 lookup of (attacker, victim) -> score, highest
// value victims captured by the lowest value attackers ranked first.
var mvvLva [board.NumPieces][board.NumPieces]Score

func init() {
	for attacker := board.WhiteKing; attacker < board.NumPieces; attacker++ {
		for victim := board.WhiteKing; victim < board.NumPieces; victim++ {
			mvvLva[attacker][victim] = 10*SEEValue[victim.Type()] - SEEValue[attacker.Type()]
		}
	}
}

// MVVLVA returns the move-ordering score for capture/promotion move m:
// "Most Valuable Victim, Least Valuable Attacker", with a bonus for
// promotion to queen.
func MVVLVA(m board.Move) Score {
	var s Score
	if m.Captured != board.NoPiece {
		s = mvvLva[m.Moved][m.Captured]
	}
	if m.Type == board.PromotionToQueen {
		s += queenPromotionBonus
	}
	return s
}
