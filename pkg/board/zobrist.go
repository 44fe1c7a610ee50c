package board

import "math/rand"

// ZobristKey is a position hash XOR-composed from per-(piece, square) random
// constants plus side-to-move, castling and en-passant constants.
//
// See also: https://research.cs.wisc.edu/techreports/1970/TR88.pdf.
type ZobristKey uint64

// zobristSeed is fixed so the tables (and therefore all keys) are
// reproducible across processes and deterministic test runs.
const zobristSeed = 0xC0FFEE1234567

var (
	zobristPieces   [NumPieces][NumSquares]ZobristKey
	zobristCastling [NumCastlingStates * NumCastlingStates]ZobristKey
	zobristEP       [NumFiles + 1]ZobristKey // index NumFiles == "no ep file"
	zobristTurn     ZobristKey
)

// init computes the Zobrist random tables once at process start; they are
// read-only thereafter.
func init() {
	r := rand.New(rand.NewSource(zobristSeed))

	for p := WhiteKing; p < NumPieces; p++ {
		for sq := ZeroSquare; sq < NumSquares; sq++ {
			zobristPieces[p][sq] = ZobristKey(r.Uint64())
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = ZobristKey(r.Uint64())
	}
	for f := ZeroFile; f < NumFiles; f++ {
		zobristEP[f] = ZobristKey(r.Uint64())
	}
	zobristTurn = ZobristKey(r.Uint64())
}

func castlingIndex(white, black CastlingRights) int {
	return int(white)*NumCastlingStates + int(black)
}

func epIndex(f File, has bool) ZobristKey {
	if !has {
		return zobristEP[NumFiles]
	}
	return zobristEP[f]
}

// ComputeKey recomputes the Zobrist key for p from scratch: used to verify
// the incrementally maintained key against a from-scratch computation, and
// to seed a freshly parsed Position.
func (p *Position) ComputeKey() ZobristKey {
	var key ZobristKey
	for piece := WhiteKing; piece < NumPieces; piece++ {
		for bb := p.pieces[piece]; bb != 0; {
			sq := bb.PopLSB()
			key ^= zobristPieces[piece][sq]
		}
	}
	key ^= zobristCastling[castlingIndex(p.castling[White], p.castling[Black])]
	key ^= epIndex(p.enPassantFile, p.hasEnPassant)
	if p.whitesTurn {
		key ^= zobristTurn
	}
	return key
}
