package board

// castlingRookSquares returns the rook's origin and destination squares for
// a castling move type and color.
func castlingRookSquares(c Color, t MoveType) (from, to Square) {
	switch {
	case c == White && t == ShortCastling:
		return H1, F1
	case c == White && t == LongCastling:
		return A1, D1
	case c == Black && t == ShortCastling:
		return H8, F8
	default: // Black, LongCastling
		return A8, D8
	}
}

// enPassantCapturedSquare returns the square of the pawn captured by an
// en-passant move landing on to, made by color c.
func enPassantCapturedSquare(c Color, to Square) Square {
	if c == White {
		return to - 8
	}
	return to + 8
}

func (p *Position) remove(sq Square) {
	pc := p.squares[sq]
	if pc == NoPiece {
		return
	}
	mask := BitMask(sq)
	p.pieces[pc] &^= mask
	if pc.Color() == White {
		p.white &^= mask
	} else {
		p.black &^= mask
	}
	p.squares[sq] = NoPiece
}

func (p *Position) put(sq Square, pc Piece) {
	mask := BitMask(sq)
	p.pieces[pc] |= mask
	if pc.Color() == White {
		p.white |= mask
	} else {
		p.black |= mask
	}
	p.squares[sq] = pc
}

func (p *Position) move(from, to Square, pc Piece) {
	p.remove(from)
	p.remove(to)
	p.put(to, pc)
}

// Make applies m, which must be legal (the caller is expected to have
// produced m from GenerateMoves or validated it with IsLegal), and pushes a
// StateRecord so Unmake can reverse it.
func (p *Position) Make(m Move) {
	side := p.SideToMove()

	rec := StateRecord{
		WhiteCastling:  p.castling[White],
		BlackCastling:  p.castling[Black],
		EnPassantFile:  p.enPassantFile,
		HasEnPassant:   p.hasEnPassant,
		FiftyMoveClock: p.fiftyMoveClock,
		Checkers:       p.checkers,
		Key:            p.key,
	}
	p.history = append(p.history, rec)
	p.moveHistory = append(p.moveHistory, m)

	key := p.key
	key ^= zobristCastling[castlingIndex(p.castling[White], p.castling[Black])]
	key ^= epIndex(p.enPassantFile, p.hasEnPassant)

	// Resolve the captured piece's square: for en passant it is not m.To.
	capturedSq := m.To
	if m.Type == EnPassant {
		capturedSq = enPassantCapturedSquare(side, m.To)
	}
	if m.Captured != NoPiece {
		key ^= zobristPieces[m.Captured][capturedSq]
		p.remove(capturedSq)
	}

	key ^= zobristPieces[m.Moved][m.From]
	p.remove(m.From)

	placed := m.Moved
	if m.Type.IsPromotion() {
		placed = m.Type.PromotionPiece(side)
	}
	p.put(m.To, placed)
	key ^= zobristPieces[placed][m.To]

	if m.IsCastling() {
		rFrom, rTo := castlingRookSquares(side, m.Type)
		rook := p.squares[rFrom]
		key ^= zobristPieces[rook][rFrom]
		p.remove(rFrom)
		p.put(rTo, rook)
		key ^= zobristPieces[rook][rTo]
	}

	// Castling rights: moving the king forfeits both; moving/capturing a
	// rook forfeits that side's corresponding right.
	if m.Moved.Type() == King {
		p.castling[side] = NoCastlingRights
	}
	p.updateCastlingRightsForSquare(m.From)
	p.updateCastlingRightsForSquare(capturedSq)

	// En-passant target: only set after a pawn double push.
	p.hasEnPassant = false
	if m.Moved.Type() == Pawn && absSquareDelta(m.From, m.To) == 16 {
		p.enPassantFile = m.From.File()
		p.hasEnPassant = true
	}

	// Fifty-move clock resets on a capture or pawn move.
	if m.Moved.Type() == Pawn || m.Captured != NoPiece {
		p.fiftyMoveClock = 0
	} else {
		p.fiftyMoveClock++
	}

	key ^= zobristCastling[castlingIndex(p.castling[White], p.castling[Black])]
	key ^= epIndex(p.enPassantFile, p.hasEnPassant)
	key ^= zobristTurn

	p.whitesTurn = !p.whitesTurn
	if side == Black {
		p.fullMoveNumber++
	}
	p.halfMoveIndex++

	p.recomputeCheckers()
	p.key = key
	p.keyHistory = append(p.keyHistory, p.key)
}

// Unmake reverses the most recent Make. Panics if there is no move to unmake.
func (p *Position) Unmake() {
	n := len(p.moveHistory)
	if n == 0 {
		panic("board: Unmake with empty history")
	}
	m := p.moveHistory[n-1]
	rec := p.history[n-1]
	p.moveHistory = p.moveHistory[:n-1]
	p.history = p.history[:n-1]
	p.keyHistory = p.keyHistory[:len(p.keyHistory)-1]

	p.whitesTurn = !p.whitesTurn
	side := p.SideToMove()
	if side == Black {
		p.fullMoveNumber--
	}
	p.halfMoveIndex--

	if m.IsCastling() {
		rFrom, rTo := castlingRookSquares(side, m.Type)
		rook := p.squares[rTo]
		p.remove(rTo)
		p.put(rFrom, rook)
	}

	p.remove(m.To)
	p.put(m.From, m.Moved)

	if m.Captured != NoPiece {
		capturedSq := m.To
		if m.Type == EnPassant {
			capturedSq = enPassantCapturedSquare(side, m.To)
		}
		p.put(capturedSq, m.Captured)
	}

	p.castling[White] = rec.WhiteCastling
	p.castling[Black] = rec.BlackCastling
	p.enPassantFile = rec.EnPassantFile
	p.hasEnPassant = rec.HasEnPassant
	p.fiftyMoveClock = rec.FiftyMoveClock
	p.checkers = rec.Checkers
	p.key = rec.Key
}

// MakeNull passes the move without moving a piece: used by null-move
// pruning. UnmakeNull reverses it. The en-passant target is always cleared,
// matching the rule that a null move forfeits any pending en-passant capture.
func (p *Position) MakeNull() {
	rec := StateRecord{
		WhiteCastling:  p.castling[White],
		BlackCastling:  p.castling[Black],
		EnPassantFile:  p.enPassantFile,
		HasEnPassant:   p.hasEnPassant,
		FiftyMoveClock: p.fiftyMoveClock,
		Checkers:       p.checkers,
		Key:            p.key,
	}
	p.history = append(p.history, rec)
	p.moveHistory = append(p.moveHistory, Move{})

	key := p.key
	key ^= epIndex(p.enPassantFile, p.hasEnPassant)
	p.hasEnPassant = false
	key ^= epIndex(p.enPassantFile, p.hasEnPassant)
	key ^= zobristTurn

	p.whitesTurn = !p.whitesTurn
	p.halfMoveIndex++
	p.recomputeCheckers()
	p.key = key
	p.keyHistory = append(p.keyHistory, p.key)
}

// UnmakeNull reverses the most recent MakeNull.
func (p *Position) UnmakeNull() {
	n := len(p.moveHistory)
	if n == 0 {
		panic("board: UnmakeNull with empty history")
	}
	rec := p.history[n-1]
	p.moveHistory = p.moveHistory[:n-1]
	p.history = p.history[:n-1]
	p.keyHistory = p.keyHistory[:len(p.keyHistory)-1]

	p.whitesTurn = !p.whitesTurn
	p.halfMoveIndex--
	p.enPassantFile = rec.EnPassantFile
	p.hasEnPassant = rec.HasEnPassant
	p.checkers = rec.Checkers
	p.key = rec.Key
}

func (p *Position) updateCastlingRightsForSquare(sq Square) {
	switch sq {
	case A1:
		p.castling[White] &^= LongCastle
	case H1:
		p.castling[White] &^= ShortCastle
	case E1:
		p.castling[White] = NoCastlingRights
	case A8:
		p.castling[Black] &^= LongCastle
	case H8:
		p.castling[Black] &^= ShortCastle
	case E8:
		p.castling[Black] = NoCastlingRights
	}
}

func absSquareDelta(a, b Square) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

// HasRepeated reports whether the current position's key occurs at least n
// times among earlier positions reachable by strides of two plies (i.e. with
// the same side to move), scanning back no further than the fifty-move
// clock allows (positions before the last capture/pawn move/castling-right
// change cannot repeat the current one).
func (p *Position) HasRepeated(n int) bool {
	count := 0
	limit := int(p.fiftyMoveClock)
	idx := len(p.keyHistory) - 1
	for i := 2; i <= limit && i <= idx; i += 2 {
		if p.keyHistory[idx-i] == p.key {
			count++
			if count >= n {
				return true
			}
		}
	}
	return count >= n
}
