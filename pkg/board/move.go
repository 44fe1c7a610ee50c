package board

import "fmt"

// MoveType indicates the kind of move. PromotionToQueen is the lowest
// promotion tag, used in range checks (PromotionToQueen <= t <= PromotionToKnight).
type MoveType uint8

const (
	Normal MoveType = iota
	ShortCastling
	LongCastling
	EnPassant
	PromotionToQueen
	PromotionToRook
	PromotionToBishop
	PromotionToKnight
)

func (t MoveType) IsPromotion() bool {
	return t >= PromotionToQueen && t <= PromotionToKnight
}

// PromotionPiece returns the colored promotion piece for a promotion move type.
func (t MoveType) PromotionPiece(c Color) Piece {
	switch t {
	case PromotionToQueen:
		return NewPiece(c, Queen)
	case PromotionToRook:
		return NewPiece(c, Rook)
	case PromotionToBishop:
		return NewPiece(c, Bishop)
	case PromotionToKnight:
		return NewPiece(c, Knight)
	default:
		return NoPiece
	}
}

func (t MoveType) String() string {
	switch t {
	case Normal:
		return "normal"
	case ShortCastling:
		return "O-O"
	case LongCastling:
		return "O-O-O"
	case EnPassant:
		return "e.p."
	case PromotionToQueen:
		return "=Q"
	case PromotionToRook:
		return "=R"
	case PromotionToBishop:
		return "=B"
	case PromotionToKnight:
		return "=N"
	default:
		return "?"
	}
}

// Score is a nominal move-ordering score set by heuristics (SEE, MVV/LVA,
// history). Does not participate in Move equality.
type Score int32

// Move is a compact record of a (not necessarily legal) move plus contextual
// metadata. Equality uses the first five fields: Type, From, To, Moved, Captured.
type Move struct {
	Type     MoveType
	From, To Square
	Moved    Piece // the piece making the move
	Captured Piece // NoPiece if none

	Score Score // nominal move-ordering score; excluded from Equals
}

func (m Move) Equals(o Move) bool {
	return m.Type == o.Type && m.From == o.From && m.To == o.To && m.Moved == o.Moved && m.Captured == o.Captured
}

func (m Move) IsCapture() bool {
	return m.Captured != NoPiece
}

func (m Move) IsPromotion() bool {
	return m.Type.IsPromotion()
}

func (m Move) IsCastling() bool {
	return m.Type == ShortCastling || m.Type == LongCastling
}

// PACN renders the move in pure algebraic coordinate notation, e.g. "e2e4",
// "e7e8q". Castling is expressed as the king's two-square move; en passant
// uses the destination square, not the captured pawn's square.
func (m Move) PACN() string {
	if m.IsPromotion() {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Type.PromotionPiece(White).Type())
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}

func (m Move) String() string {
	return m.PACN()
}

// ParsePACNTarget parses only the From/To/promotion-type portion of a PACN
// string; the caller (Position.ParseMove) resolves the remaining move
// metadata (Moved, Captured, Type) against a concrete position.
func ParsePACNTarget(str string) (from, to Square, promo PieceType, err error) {
	runes := []rune(str)
	if len(runes) < 4 || len(runes) > 5 {
		return NoSquare, NoSquare, NoPieceType, fmt.Errorf("%w: invalid move %q", ErrInvalidMove, str)
	}

	from, err = ParseSquare(runes[0], runes[1])
	if err != nil {
		return NoSquare, NoSquare, NoPieceType, fmt.Errorf("%w: invalid from in %q: %v", ErrInvalidMove, str, err)
	}
	to, err = ParseSquare(runes[2], runes[3])
	if err != nil {
		return NoSquare, NoSquare, NoPieceType, fmt.Errorf("%w: invalid to in %q: %v", ErrInvalidMove, str, err)
	}

	if len(runes) == 5 {
		t, ok := ParsePieceType(runes[4])
		if !ok || t == Pawn || t == King {
			return NoSquare, NoSquare, NoPieceType, fmt.Errorf("%w: invalid promotion in %q", ErrInvalidMove, str)
		}
		promo = t
	}
	return from, to, promo, nil
}
