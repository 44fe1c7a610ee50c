package board

import "errors"

// Sentinel error kinds. Use errors.Is against these after wrapping with
// fmt.Errorf("%w: ...", ErrXxx) for additional context.
var (
	// ErrInvalidFEN indicates a malformed FEN string: wrong field count,
	// unknown piece character, bad castling/en-passant/clock field, or a
	// rank count other than 8.
	ErrInvalidFEN = errors.New("invalid FEN")

	// ErrInvalidMove indicates a move that fails Position.IsLegal: the
	// moved piece isn't on the origin square, the destination isn't in its
	// pseudo-legal move set, the capture tag doesn't match the target
	// square, or making it would leave the mover's king in check.
	ErrInvalidMove = errors.New("invalid move")

	// ErrIllegalPromotionRequested is a sub-kind of ErrInvalidMove for a
	// promotion to pawn/king or a promotion move that isn't reaching the
	// back rank.
	ErrIllegalPromotionRequested = errors.New("illegal promotion requested")

	// ErrAmbiguousCastling is a sub-kind of ErrInvalidMove for a king move
	// that could be interpreted as more than one castling right.
	ErrAmbiguousCastling = errors.New("ambiguous castling")
)
