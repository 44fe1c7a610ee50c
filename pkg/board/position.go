package board

import "fmt"

// StateRecord captures the parts of a Position's state that Make cannot
// recompute by simply undoing piece placement; Unmake restores them
// verbatim instead of recomputing them.
type StateRecord struct {
	WhiteCastling  CastlingRights
	BlackCastling  CastlingRights
	EnPassantFile  File
	HasEnPassant   bool
	FiftyMoveClock uint8
	Checkers       Bitboard
	Key            ZobristKey
}

// Position is a mutable bitboard chess position: twelve per-color-per-type
// piece bitboards, a piece-per-square array kept in lock-step, side to move,
// castling and en-passant state, move counters, and a reversible history
// stack consulted by Unmake and repetition detection.
type Position struct {
	pieces [NumPieces]Bitboard // pieces[NoPiece] is always empty.
	white  Bitboard
	black  Bitboard

	squares [NumSquares]Piece

	whitesTurn    bool
	castling      [NumColors]CastlingRights
	enPassantFile File
	hasEnPassant  bool

	halfMoveIndex  uint32 // plies played since construction.
	fullMoveNumber uint32
	fiftyMoveClock uint8

	checkers Bitboard
	key      ZobristKey

	history     []StateRecord
	moveHistory []Move
	keyHistory  []ZobristKey
}

// NewEmptyPosition returns a Position with no pieces placed and white to
// move. Callers (the FEN decoder, test fixtures) place pieces directly with
// Place, set up side to move/castling/en-passant, then call Init.
func NewEmptyPosition() *Position {
	return &Position{whitesTurn: true, enPassantFile: NumFiles}
}

// Init finalizes a Position after direct piece placement: computes
// checkers and the Zobrist key, and seeds the history. Must be called once,
// after all Place calls and after SetSideToMove/SetCastling/SetEnPassantFile.
func (p *Position) Init() {
	p.recomputeCheckers()
	p.key = p.ComputeKey()
	p.keyHistory = append(p.keyHistory[:0], p.key)
}

// Clone returns an independent copy of p: safe for a helper search thread
// to Make/Unmake against concurrently with the original.
func (p *Position) Clone() *Position {
	c := *p
	c.history = append([]StateRecord(nil), p.history...)
	c.moveHistory = append([]Move(nil), p.moveHistory...)
	c.keyHistory = append([]ZobristKey(nil), p.keyHistory...)
	return &c
}

// Place puts piece pc on an empty square sq.
func (p *Position) Place(sq Square, pc Piece) {
	p.squares[sq] = pc
	mask := BitMask(sq)
	p.pieces[pc] |= mask
	if pc.Color() == White {
		p.white |= mask
	} else {
		p.black |= mask
	}
}

func (p *Position) SetSideToMove(c Color) { p.whitesTurn = c == White }
func (p *Position) SetCastling(c Color, r CastlingRights) { p.castling[c] = r }
func (p *Position) SetEnPassantFile(f File, has bool) {
	p.enPassantFile = f
	p.hasEnPassant = has
}
func (p *Position) SetFiftyMoveClock(n uint8)     { p.fiftyMoveClock = n }
func (p *Position) SetFullMoveNumber(n uint32)    { p.fullMoveNumber = n }

// SideToMove returns the color on move.
func (p *Position) SideToMove() Color {
	if p.whitesTurn {
		return White
	}
	return Black
}

// PieceAt returns the piece on sq, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.squares[sq]
}

// Occupied returns the bitboard of all occupied squares.
func (p *Position) Occupied() Bitboard { return p.white | p.black }

// Empty returns the bitboard of all empty squares.
func (p *Position) Empty() Bitboard { return ^p.Occupied() }

// ColorBB returns the bitboard of all pieces of color c.
func (p *Position) ColorBB(c Color) Bitboard {
	if c == White {
		return p.white
	}
	return p.black
}

// PieceBB returns the bitboard of pieces of color c and type t.
func (p *Position) PieceBB(c Color, t PieceType) Bitboard {
	return p.pieces[NewPiece(c, t)]
}

// KingSquare returns the square of color c's king.
func (p *Position) KingSquare(c Color) Square {
	return p.pieces[NewPiece(c, King)].LSB()
}

// Checkers returns the opponent pieces currently giving check to the side to
// move's king.
func (p *Position) Checkers() Bitboard { return p.checkers }

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool { return p.checkers != 0 }

// Key returns the Zobrist key, incrementally maintained across Make/Unmake.
func (p *Position) Key() ZobristKey { return p.key }

// EnPassantFile returns the en-passant target file and whether one exists.
func (p *Position) EnPassantFile() (File, bool) { return p.enPassantFile, p.hasEnPassant }

// FiftyMoveClock returns the number of plies since the last capture or pawn move.
func (p *Position) FiftyMoveClock() uint8 { return p.fiftyMoveClock }

// FullMoveNumber returns the full-move counter (increments after Black moves).
func (p *Position) FullMoveNumber() uint32 { return p.fullMoveNumber }

// Castling returns color c's castling rights.
func (p *Position) Castling(c Color) CastlingRights { return p.castling[c] }

// HalfMoveIndex returns the number of plies played since construction.
func (p *Position) HalfMoveIndex() uint32 { return p.halfMoveIndex }

// LastMove returns the most recently made move, and whether one exists (the
// zero Move, NoPiece Moved, otherwise). A null move (MakeNull) counts as a
// move with no useful recapture-square information, so it reports false.
func (p *Position) LastMove() (Move, bool) {
	n := len(p.moveHistory)
	if n == 0 {
		return Move{}, false
	}
	m := p.moveHistory[n-1]
	return m, m.Moved != NoPiece
}

func (p *Position) colorAt(sq Square) (Color, bool) {
	switch {
	case p.white.IsSet(sq):
		return White, true
	case p.black.IsSet(sq):
		return Black, true
	default:
		return White, false
	}
}

// attackersTo returns the bitboard of by-colored pieces attacking sq given
// occupancy occ. occ is explicit (not always p.Occupied()) so callers can
// probe a hypothetical occupancy: en-passant discovered check, SEE swap-offs,
// and "is this king move safe" (with the king itself removed from occ).
func (p *Position) attackersTo(occ Bitboard, sq Square, by Color) Bitboard {
	var attackers Bitboard
	attackers |= KnightAttackboard(sq) & p.PieceBB(by, Knight)
	attackers |= KingAttackboard(sq) & p.PieceBB(by, King)
	attackers |= RookAttackboard(occ, sq) & (p.PieceBB(by, Rook) | p.PieceBB(by, Queen))
	attackers |= BishopAttackboard(occ, sq) & (p.PieceBB(by, Bishop) | p.PieceBB(by, Queen))
	attackers |= PawnCaptureboard(by.Opponent(), BitMask(sq)) & p.PieceBB(by, Pawn)
	return attackers
}

// IsAttacked reports whether sq is attacked by color by, given the current occupancy.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	return p.attackersTo(p.Occupied(), sq, by) != 0
}

func (p *Position) recomputeCheckers() {
	side := p.SideToMove()
	p.checkers = p.attackersTo(p.Occupied(), p.KingSquare(side), side.Opponent())
}

func (p *Position) String() string {
	return fmt.Sprintf("%v %v", p.boardString(), p.stateString())
}

func (p *Position) boardString() string {
	buf := make([]byte, 0, int(NumSquares)+int(NumRanks))
	for r := int(NumRanks) - 1; r >= 0; r-- {
		for f := ZeroFile; f < NumFiles; f++ {
			pc := p.squares[NewSquare(f, Rank(r))]
			buf = append(buf, pc.String()[0])
		}
		if r != 0 {
			buf = append(buf, '/')
		}
	}
	return string(buf)
}

func (p *Position) stateString() string {
	ep := "-"
	if p.hasEnPassant {
		ep = p.enPassantFile.String()
	}
	return fmt.Sprintf("%v %v%v(%v)", p.SideToMove(), p.castling[White], p.castling[Black], ep)
}
