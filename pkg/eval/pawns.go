package eval

import "github.com/corvidchess/corvid/pkg/board"

func pawnPushDelta(c board.Color) int {
	if c == board.White {
		return 8
	}
	return -8
}

// pawnStructure returns the white-minus-black tapered contribution of every
// pawn-structure term: stopped, blocked, passed, isolated, backward pawns
// and the castled-king pawn shield.
func pawnStructure(pos *board.Position, params *Params) Pair {
	var total Pair
	for _, c := range [2]board.Color{board.White, board.Black} {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		total = total.Add(pawnStructureFor(pos, params, c).Scale(sign))
	}
	return total
}

func pawnStructureFor(pos *board.Position, params *Params, c board.Color) Pair {
	var total Pair
	own := pos.PieceBB(c, board.Pawn)
	enemy := pos.PieceBB(c.Opponent(), board.Pawn)
	occ := pos.Occupied()
	delta := pawnPushDelta(c)

	for bb := own; bb != 0; {
		sq := bb.PopLSB()
		f := sq.File()

		ahead := sq + board.Square(delta)
		if ahead.IsValid() {
			if occ.IsSet(ahead) && pos.PieceAt(ahead).Type() != board.Pawn {
				total = total.Add(params.StoppedPawn)
			}
		}
		behind := sq - board.Square(delta)
		if behind.IsValid() && own.IsSet(behind) {
			total = total.Add(params.BlockedPawn)
		}

		if isPassed(c, sq, enemy) {
			total = total.Add(params.PassedPawn)
		}
		if !hasAdjacentFilePawn(own, f) {
			total = total.Add(params.IsolatedPawn)
		} else if isBackward(c, sq, own, enemy) {
			total = total.Add(params.BackwardPawn)
		}
	}

	total = total.Add(pawnShield(pos, params, c))
	return total
}

// isPassed reports whether a pawn of the mover's color on sq has no enemy
// pawn on the same or an adjacent file ahead of it.
func isPassed(c board.Color, sq board.Square, enemy board.Bitboard) bool {
	f := sq.File()
	var files board.Bitboard
	files |= board.BitFile(f)
	if f > board.FileA {
		files |= board.BitFile(f - 1)
	}
	if f < board.FileH {
		files |= board.BitFile(f + 1)
	}

	var ahead board.Bitboard
	if c == board.White {
		for r := int(sq.Rank()) + 1; r < 8; r++ {
			ahead |= board.BitRank(board.Rank(r))
		}
	} else {
		for r := int(sq.Rank()) - 1; r >= 0; r-- {
			ahead |= board.BitRank(board.Rank(r))
		}
	}
	return files&ahead&enemy == 0
}

func hasAdjacentFilePawn(own board.Bitboard, f board.File) bool {
	var mask board.Bitboard
	if f > board.FileA {
		mask |= board.BitFile(f - 1)
	}
	if f < board.FileH {
		mask |= board.BitFile(f + 1)
	}
	return own&mask != 0
}

// isBackward reports whether the pawn on sq is attacked by an enemy pawn and
// cannot be defended by advancing a friendly pawn on an adjacent file (its
// "span": the adjacent files, from its rank back to its own side).
func isBackward(c board.Color, sq board.Square, own, enemy board.Bitboard) bool {
	if board.PawnCaptureboard(c, board.BitMask(sq))&enemy == 0 {
		return false
	}
	f := sq.File()
	var adjFiles board.Bitboard
	if f > board.FileA {
		adjFiles |= board.BitFile(f - 1)
	}
	if f < board.FileH {
		adjFiles |= board.BitFile(f + 1)
	}

	var span board.Bitboard
	if c == board.White {
		for r := 0; r <= int(sq.Rank()); r++ {
			span |= board.BitRank(board.Rank(r))
		}
	} else {
		for r := int(sq.Rank()); r < 8; r++ {
			span |= board.BitRank(board.Rank(r))
		}
	}
	return own&adjFiles&span == 0
}

// pawnShield counts own pawns on the two ranks in front of a castled king
// (king on the a-, b-, c-, f-, g- or h-file of its back rank).
func pawnShield(pos *board.Position, params *Params, c board.Color) Pair {
	king := pos.KingSquare(c)
	homeRank := board.Rank1
	if c == board.Black {
		homeRank = board.Rank8
	}
	if king.Rank() != homeRank {
		return Pair{}
	}
	f := king.File()
	if f != board.FileA && f != board.FileB && f != board.FileC &&
		f != board.FileF && f != board.FileG && f != board.FileH {
		return Pair{}
	}

	own := pos.PieceBB(c, board.Pawn)
	var shieldRanks board.Bitboard
	delta := pawnPushDelta(c)
	sq1 := king + board.Square(delta)
	sq2 := sq1 + board.Square(delta)
	if sq1.IsValid() {
		shieldRanks |= board.BitRank(sq1.Rank())
	}
	if sq2.IsValid() {
		shieldRanks |= board.BitRank(sq2.Rank())
	}

	var files board.Bitboard
	for d := -1; d <= 1; d++ {
		nf := int(f) + d
		if nf >= 0 && nf < 8 {
			files |= board.BitFile(board.File(nf))
		}
	}

	count := (own & shieldRanks & files).PopCount()
	return params.PawnShield.Scale(count)
}
