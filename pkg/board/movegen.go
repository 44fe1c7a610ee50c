package board

// allDirections enumerates the 8 ray directions used for pin detection.
var allDirections = [8]Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}

// pinInfo maps a pinned piece's square to the line (through the king and the
// pinning slider) its moves are restricted to.
type pinInfo map[Square]Bitboard

// computePinned finds side's absolutely pinned pieces: for each ray from the
// king, the first blocker (if it belongs to side) is pinned when an enemy
// slider matching the ray's orientation follows it with nothing in between.
func (p *Position) computePinned(side Color) pinInfo {
	pinned := pinInfo{}
	king := p.KingSquare(side)
	occ := p.Occupied()
	opp := side.Opponent()

	for _, d := range allDirections {
		ray := rayAttacks[d][king]
		blockers := ray & occ
		if blockers == 0 {
			continue
		}

		var first Square
		if isPositiveDir(d) {
			first = blockers.LSB()
		} else {
			first = blockers.MSB()
		}
		c, ok := p.colorAt(first)
		if !ok || c != side {
			continue
		}

		beyond := ray &^ rayAttacks[d][first] &^ BitMask(first)
		blockers2 := beyond & occ
		if blockers2 == 0 {
			continue
		}
		var second Square
		if isPositiveDir(d) {
			second = blockers2.LSB()
		} else {
			second = blockers2.MSB()
		}
		c2, ok := p.colorAt(second)
		if !ok || c2 != opp {
			continue
		}

		t := p.squares[second].Type()
		isDiag := d.IsDiagonal()
		if (isDiag && (t == Bishop || t == Queen)) || (!isDiag && (t == Rook || t == Queen)) {
			pinned[first] = LineThrough(king, second)
		}
	}
	return pinned
}

// checkMask returns the set of squares a non-king move must land on to
// resolve the current check: the checking piece's square, plus (for a
// slider) the squares between it and the king. All-ones when not in check.
func (p *Position) checkMask(side Color) Bitboard {
	checkers := p.checkers
	if checkers == 0 {
		return ^Bitboard(0)
	}
	checkerSq := checkers.LSB()
	mask := BitMask(checkerSq)
	t := p.squares[checkerSq].Type()
	if t == Bishop || t == Rook || t == Queen {
		mask |= Between(p.KingSquare(side), checkerSq)
	}
	return mask
}

// GenerateMoves returns pseudo-legal-free (fully legal) moves for the side to
// move. tactical selects captures, promotions and en passant; quiet selects
// everything else including castling. Both may be set to generate all moves.
func (p *Position) GenerateMoves(tactical, quiet bool) []Move {
	side := p.SideToMove()
	moves := make([]Move, 0, 32)

	numCheckers := p.checkers.PopCount()
	if numCheckers >= 2 {
		p.addKingMoves(&moves, side, tactical, quiet)
		return moves
	}

	mask := p.checkMask(side)
	pinned := p.computePinned(side)
	occ := p.Occupied()
	own := p.ColorBB(side)
	opp := p.ColorBB(side.Opponent())

	for _, t := range WhitePieceTypes {
		if t == King {
			continue
		}
		for bb := p.PieceBB(side, t); bb != 0; {
			from := bb.PopLSB()
			allowed := mask
			if line, ok := pinned[from]; ok {
				allowed &= line
			}
			if t == Pawn {
				p.addPawnMoves(&moves, side, from, allowed, tactical, quiet)
				continue
			}
			attacks := Attackboard(occ, from, t) &^ own & allowed
			p.addPieceMoves(&moves, from, p.squares[from], attacks, opp, tactical, quiet)
		}
	}

	p.addKingMoves(&moves, side, tactical, quiet)

	if numCheckers == 0 && quiet {
		p.addCastling(&moves, side)
	}
	p.addEnPassant(&moves, side, pinned, tactical)

	return moves
}

// AllMoves returns every legal move for the side to move.
func (p *Position) AllMoves() []Move { return p.GenerateMoves(true, true) }

// TacticalMoves returns captures, promotions and en passant for the side to
// move: the staged move set used to seed quiescence search.
func (p *Position) TacticalMoves() []Move { return p.GenerateMoves(true, false) }

// QuietMoves returns every legal move for the side to move that is not a
// capture, promotion or en passant (includes castling).
func (p *Position) QuietMoves() []Move { return p.GenerateMoves(false, true) }

func (p *Position) addPieceMoves(moves *[]Move, from Square, moved Piece, attacks, opp Bitboard, tactical, quiet bool) {
	for bb := attacks; bb != 0; {
		to := bb.PopLSB()
		if opp.IsSet(to) {
			if tactical {
				*moves = append(*moves, Move{Type: Normal, From: from, To: to, Moved: moved, Captured: p.squares[to]})
			}
		} else if quiet {
			*moves = append(*moves, Move{Type: Normal, From: from, To: to, Moved: moved})
		}
	}
}

var promotionTypes = [4]MoveType{PromotionToQueen, PromotionToRook, PromotionToBishop, PromotionToKnight}

func (p *Position) addPawnMoves(moves *[]Move, side Color, from Square, allowed Bitboard, tactical, quiet bool) {
	occ := p.Occupied()
	opp := p.ColorBB(side.Opponent())
	promoRank := PawnPromotionRank(side)
	fromBB := BitMask(from)

	if tactical {
		captures := PawnCaptureboard(side, fromBB) & opp & allowed
		for bb := captures; bb != 0; {
			to := bb.PopLSB()
			captured := p.squares[to]
			if BitMask(to)&promoRank != 0 {
				for _, pt := range promotionTypes {
					*moves = append(*moves, Move{Type: pt, From: from, To: to, Moved: p.squares[from], Captured: captured})
				}
			} else {
				*moves = append(*moves, Move{Type: Normal, From: from, To: to, Moved: p.squares[from], Captured: captured})
			}
		}
	}

	rawSingle := PawnPushboard(occ, side, fromBB)
	rawDouble := PawnDoublePushboard(occ, side, rawSingle)
	single := rawSingle & allowed
	double := rawDouble & allowed

	for bb := single; bb != 0; {
		to := bb.PopLSB()
		if BitMask(to)&promoRank != 0 {
			if tactical {
				for _, pt := range promotionTypes {
					*moves = append(*moves, Move{Type: pt, From: from, To: to, Moved: p.squares[from]})
				}
			}
		} else if quiet {
			*moves = append(*moves, Move{Type: Normal, From: from, To: to, Moved: p.squares[from]})
		}
	}
	if quiet {
		for bb := double; bb != 0; {
			to := bb.PopLSB()
			*moves = append(*moves, Move{Type: Normal, From: from, To: to, Moved: p.squares[from]})
		}
	}
}

func (p *Position) addKingMoves(moves *[]Move, side Color, tactical, quiet bool) {
	from := p.KingSquare(side)
	moved := p.squares[from]
	own := p.ColorBB(side)
	opp := p.ColorBB(side.Opponent())
	occWithoutKing := p.Occupied() &^ BitMask(from)

	for bb := KingAttackboard(from) &^ own; bb != 0; {
		to := bb.PopLSB()
		if p.attackersTo(occWithoutKing, to, side.Opponent()) != 0 {
			continue
		}
		if opp.IsSet(to) {
			if tactical {
				*moves = append(*moves, Move{Type: Normal, From: from, To: to, Moved: moved, Captured: p.squares[to]})
			}
		} else if quiet {
			*moves = append(*moves, Move{Type: Normal, From: from, To: to, Moved: moved})
		}
	}
}

func (p *Position) addCastling(moves *[]Move, side Color) {
	rights := p.castling[side]
	if rights == NoCastlingRights {
		return
	}
	occ := p.Occupied()
	opp := side.Opponent()
	king := p.KingSquare(side)
	kingPc := p.squares[king]

	if rights.HasShort() {
		var betweenMask Bitboard
		var passSquares [2]Square
		if side == White {
			betweenMask = (BitFile(FileF) | BitFile(FileG)) & BitRank(Rank1)
			passSquares = [2]Square{F1, G1}
		} else {
			betweenMask = (BitFile(FileF) | BitFile(FileG)) & BitRank(Rank8)
			passSquares = [2]Square{F8, G8}
		}
		if occ&betweenMask == 0 && !p.IsAttacked(passSquares[0], opp) && !p.IsAttacked(passSquares[1], opp) {
			*moves = append(*moves, Move{Type: ShortCastling, From: king, To: passSquares[1], Moved: kingPc})
		}
	}
	if rights.HasLong() {
		var empty Bitboard
		var passSquares [2]Square
		if side == White {
			empty = (BitFile(FileB) | BitFile(FileC) | BitFile(FileD)) & BitRank(Rank1)
			passSquares = [2]Square{D1, C1}
		} else {
			empty = (BitFile(FileB) | BitFile(FileC) | BitFile(FileD)) & BitRank(Rank8)
			passSquares = [2]Square{D8, C8}
		}
		if occ&empty == 0 && !p.IsAttacked(passSquares[0], opp) && !p.IsAttacked(passSquares[1], opp) {
			*moves = append(*moves, Move{Type: LongCastling, From: king, To: passSquares[1], Moved: kingPc})
		}
	}
}

// addEnPassant appends the en-passant capture, if any, after verifying its
// special discovered-check legality: remove both the capturing and captured
// pawn from occupancy, add the capturing pawn on the destination, and check
// whether the friendly king is then attacked by a rook/queen along the rank
// or a bishop/queen along a diagonal that the two pawns had been blocking.
func (p *Position) addEnPassant(moves *[]Move, side Color, pinned pinInfo, tactical bool) {
	if !tactical || !p.hasEnPassant {
		return
	}
	to := NewSquare(p.enPassantFile, epCaptureRank(side))
	capturedSq := enPassantCapturedSquare(side, to)
	attackers := PawnCaptureboard(side.Opponent(), BitMask(to)) & p.PieceBB(side, Pawn)

	for bb := attackers; bb != 0; {
		from := bb.PopLSB()
		if line, ok := pinned[from]; ok && line&BitMask(to) == 0 {
			continue
		}
		occ := p.Occupied()
		occ &^= BitMask(from)
		occ &^= BitMask(capturedSq)
		occ |= BitMask(to)

		king := p.KingSquare(side)
		if king == from { // cannot happen (king is not a pawn), kept for clarity
			continue
		}
		if p.attackersTo(occ, king, side.Opponent())&occ != 0 {
			continue
		}
		*moves = append(*moves, Move{Type: EnPassant, From: from, To: to, Moved: p.squares[from], Captured: p.squares[capturedSq]})
	}
}

func epCaptureRank(side Color) Rank {
	if side == White {
		return Rank6
	}
	return Rank3
}

// IsLegal reports whether m is a legal move in the current position. It is
// implemented by membership in GenerateMoves rather than a bespoke
// incremental check, trading some speed for reuse of the single
// already-verified move generator; used to validate hash/killer/PV moves
// and user-supplied moves before Make.
func (p *Position) IsLegal(m Move) bool {
	for _, cand := range p.GenerateMoves(true, true) {
		if cand.Equals(m) {
			return true
		}
	}
	return false
}
