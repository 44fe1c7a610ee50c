package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// StartFEN is the standard chess starting position in Forsyth-Edwards Notation.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN decodes a six-field FEN record into a Position.
//
// A FEN record has six space-separated fields: piece placement (rank 8 down
// to rank 1, file a through h within a rank), active color, castling
// availability, en-passant target square, halfmove clock and fullmove number.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("%w: want 6 fields, got %d: %q", ErrInvalidFEN, len(fields), fen)
	}
	return parseFENFields(fields)
}

// ParseEPD decodes a four-field FEN/EPD record (no halfmove clock or
// fullmove number), defaulting both to their game-start values.
func ParseEPD(epd string) (*Position, error) {
	fields := strings.Fields(epd)
	if len(fields) != 4 {
		return nil, fmt.Errorf("%w: want 4 fields, got %d: %q", ErrInvalidFEN, len(fields), epd)
	}
	return parseFENFields(append(fields, "0", "1"))
}

func parseFENFields(fields []string) (*Position, error) {
	p := NewEmptyPosition()

	rank, file := Rank8, ZeroFile
	ranks := 1
	for _, r := range fields[0] {
		switch {
		case r == '/':
			rank--
			file = ZeroFile
			ranks++
		case unicode.IsDigit(r):
			file += File(r - '0')
		case unicode.IsLetter(r):
			pc, ok := ParsePiece(r)
			if !ok {
				return nil, fmt.Errorf("%w: invalid piece %q", ErrInvalidFEN, r)
			}
			if file >= NumFiles {
				return nil, fmt.Errorf("%w: rank overflow in piece placement %q", ErrInvalidFEN, fields[0])
			}
			p.Place(NewSquare(file, rank), pc)
			file++
		default:
			return nil, fmt.Errorf("%w: invalid character %q", ErrInvalidFEN, r)
		}
	}
	if ranks != int(NumRanks) {
		return nil, fmt.Errorf("%w: want 8 ranks, got %d: %q", ErrInvalidFEN, ranks, fields[0])
	}

	color, ok := parseColor(fields[1])
	if !ok {
		return nil, fmt.Errorf("%w: invalid active color %q", ErrInvalidFEN, fields[1])
	}
	p.SetSideToMove(color)

	white, black, ok := parseCastling(fields[2])
	if !ok {
		return nil, fmt.Errorf("%w: invalid castling %q", ErrInvalidFEN, fields[2])
	}
	p.SetCastling(White, white)
	p.SetCastling(Black, black)

	if fields[3] == "-" {
		p.SetEnPassantFile(NumFiles, false)
	} else {
		epSq, err := ParseSquareStr(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid en-passant square %q", ErrInvalidFEN, fields[3])
		}
		p.SetEnPassantFile(epSq.File(), true)
	}

	clock, err := strconv.Atoi(fields[4])
	if err != nil || clock < 0 {
		return nil, fmt.Errorf("%w: invalid halfmove clock %q", ErrInvalidFEN, fields[4])
	}
	p.SetFiftyMoveClock(uint8(clock))

	full, err := strconv.Atoi(fields[5])
	if err != nil || full < 1 {
		return nil, fmt.Errorf("%w: invalid fullmove number %q", ErrInvalidFEN, fields[5])
	}
	p.SetFullMoveNumber(uint32(full))

	if p.PieceBB(White, King).PopCount() != 1 || p.PieceBB(Black, King).PopCount() != 1 {
		return nil, fmt.Errorf("%w: each side must have exactly one king", ErrInvalidFEN)
	}

	p.Init()
	return p, nil
}

// FEN encodes p as a six-field FEN record.
func (p *Position) FEN() string {
	var sb strings.Builder
	for r := int(NumRanks) - 1; r >= 0; r-- {
		blanks := 0
		for f := ZeroFile; f < NumFiles; f++ {
			pc := p.squares[NewSquare(f, Rank(r))]
			if pc == NoPiece {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(pc.String())
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r != 0 {
			sb.WriteRune('/')
		}
	}

	sb.WriteRune(' ')
	sb.WriteString(p.SideToMove().String())

	sb.WriteRune(' ')
	sb.WriteString(encodeCastling(p.castling[White], p.castling[Black]))

	sb.WriteRune(' ')
	if p.hasEnPassant {
		rank := Rank3
		if p.SideToMove() == White {
			rank = Rank6
		}
		sb.WriteString(NewSquare(p.enPassantFile, rank).String())
	} else {
		sb.WriteRune('-')
	}

	fmt.Fprintf(&sb, " %d %d", p.fiftyMoveClock, p.fullMoveNumber)
	return sb.String()
}

func parseColor(s string) (Color, bool) {
	switch s {
	case "w":
		return White, true
	case "b":
		return Black, true
	default:
		return White, false
	}
}

func parseCastling(s string) (white, black CastlingRights, ok bool) {
	if s == "-" {
		return NoCastlingRights, NoCastlingRights, true
	}
	for _, r := range s {
		switch r {
		case 'K':
			white |= ShortCastle
		case 'Q':
			white |= LongCastle
		case 'k':
			black |= ShortCastle
		case 'q':
			black |= LongCastle
		default:
			return 0, 0, false
		}
	}
	return white, black, true
}

func encodeCastling(white, black CastlingRights) string {
	var sb strings.Builder
	if white.HasShort() {
		sb.WriteRune('K')
	}
	if white.HasLong() {
		sb.WriteRune('Q')
	}
	if black.HasShort() {
		sb.WriteRune('k')
	}
	if black.HasLong() {
		sb.WriteRune('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
