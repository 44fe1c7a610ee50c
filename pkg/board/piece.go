package board

import "strings"

// PieceType represents a chess piece kind without color.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
	NumPieceTypes
)

func ParsePieceType(r rune) (PieceType, bool) {
	switch r {
	case 'k', 'K':
		return King, true
	case 'q', 'Q':
		return Queen, true
	case 'r', 'R':
		return Rook, true
	case 'b', 'B':
		return Bishop, true
	case 'n', 'N':
		return Knight, true
	case 'p', 'P':
		return Pawn, true
	default:
		return NoPieceType, false
	}
}

func (t PieceType) String() string {
	switch t {
	case King:
		return "k"
	case Queen:
		return "q"
	case Rook:
		return "r"
	case Bishop:
		return "b"
	case Knight:
		return "n"
	case Pawn:
		return "p"
	default:
		return "-"
	}
}

// Piece is a tagged value with 13 variants: NULL, six white types {K,Q,R,B,N,P}
// and six black types, white preceding black and K,Q,R,B,N,P within a color.
// A Piece doubles as the index into Position's twelve colored-piece bitboards
// (index 0, NULL, is never set).
type Piece uint8

const (
	NoPiece Piece = iota
	WhiteKing
	WhiteQueen
	WhiteRook
	WhiteBishop
	WhiteKnight
	WhitePawn
	BlackKing
	BlackQueen
	BlackRook
	BlackBishop
	BlackKnight
	BlackPawn
	NumPieces
)

// NewPiece composes a colored piece from a color and piece type.
func NewPiece(c Color, t PieceType) Piece {
	if t == NoPieceType {
		return NoPiece
	}
	if c == White {
		return Piece(t)
	}
	return Piece(t) + Piece(NumPieceTypes) - 1
}

func (p Piece) IsValid() bool {
	return p > NoPiece && p < NumPieces
}

func (p Piece) Color() Color {
	if p >= BlackKing {
		return Black
	}
	return White
}

func (p Piece) Type() PieceType {
	switch p {
	case WhiteKing, BlackKing:
		return King
	case WhiteQueen, BlackQueen:
		return Queen
	case WhiteRook, BlackRook:
		return Rook
	case WhiteBishop, BlackBishop:
		return Bishop
	case WhiteKnight, BlackKnight:
		return Knight
	case WhitePawn, BlackPawn:
		return Pawn
	default:
		return NoPieceType
	}
}

func ParsePiece(r rune) (Piece, bool) {
	t, ok := ParsePieceType(r)
	if !ok {
		return NoPiece, false
	}
	if r >= 'a' && r <= 'z' {
		return NewPiece(Black, t), true
	}
	return NewPiece(White, t), true
}

func (p Piece) String() string {
	if p == NoPiece {
		return "-"
	}
	if p.Color() == White {
		return strings.ToUpper(p.Type().String())
	}
	return p.Type().String()
}

// WhitePieceTypes lists piece types in canonical K,Q,R,B,N,P order.
var WhitePieceTypes = [...]PieceType{King, Queen, Rook, Bishop, Knight, Pawn}
