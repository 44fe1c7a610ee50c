package board_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

// assertBitboardConsistency checks, for every square, that the piece array
// and the occupancy/color/per-type bitboards agree on what (if anything) is
// placed there.
func assertBitboardConsistency(t *testing.T, pos *board.Position) {
	t.Helper()
	for sq := board.A1; sq <= board.H8; sq++ {
		pc := pos.PieceAt(sq)
		occupied := pos.Occupied().IsSet(sq)
		if pc == board.NoPiece {
			assert.False(t, occupied, "square %v: empty in squares[] but set in Occupied()", sq)
			continue
		}
		require.True(t, occupied, "square %v: %v in squares[] but clear in Occupied()", sq, pc)
		assert.True(t, pos.ColorBB(pc.Color()).IsSet(sq), "square %v: %v not in its ColorBB", sq, pc)
		assert.True(t, pos.PieceBB(pc.Color(), pc.Type()).IsSet(sq), "square %v: %v not in its PieceBB", sq, pc)
	}
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	for _, fen := range []string{board.StartFEN, kiwipeteFEN} {
		pos, err := board.ParseFEN(fen)
		require.NoError(t, err)

		before := pos.FEN()
		for _, m := range pos.AllMoves() {
			pos.Make(m)
			assertBitboardConsistency(t, pos)
			assert.Equal(t, pos.Key(), pos.ComputeKey(), "key drifted after %v on %v", m, fen)
			pos.Unmake()

			assert.Equal(t, before, pos.FEN(), "Unmake did not restore %v after %v", fen, m)
			assert.Equal(t, pos.Key(), pos.ComputeKey())
		}
	}
}

func TestKeyConsistencyAcrossDeeperLines(t *testing.T) {
	pos, err := board.ParseFEN(kiwipeteFEN)
	require.NoError(t, err)

	var walk func(depth int)
	walk = func(depth int) {
		if depth == 0 {
			return
		}
		for _, m := range pos.AllMoves() {
			pos.Make(m)
			assert.Equal(t, pos.Key(), pos.ComputeKey())
			walk(depth - 1)
			pos.Unmake()
		}
	}
	walk(3)
}

// TestLegalMovesLeaveKingSafe checks that no generated move leaves the
// mover's own king attacked.
func TestLegalMovesLeaveKingSafe(t *testing.T) {
	for _, fen := range []string{board.StartFEN, kiwipeteFEN} {
		pos, err := board.ParseFEN(fen)
		require.NoError(t, err)

		for _, m := range pos.AllMoves() {
			mover := pos.SideToMove()
			pos.Make(m)
			assert.False(t, pos.IsAttacked(pos.KingSquare(mover), mover.Opponent()),
				"%v left %v's own king in check on %v", m, mover, fen)
			pos.Unmake()
		}
	}
}

func TestIsLegalAgreesWithGeneration(t *testing.T) {
	pos, err := board.ParseFEN(kiwipeteFEN)
	require.NoError(t, err)

	generated := pos.AllMoves()
	for _, m := range generated {
		assert.True(t, pos.IsLegal(m), "%v was generated but rejected by IsLegal", m)
	}

	bogus := board.Move{Type: board.Normal, From: board.A1, To: board.A8, Moved: board.WhiteRook}
	assert.False(t, pos.IsLegal(bogus), "rook cannot jump over its own pieces")
}

func TestDrawDetectionFiftyMoveClock(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 99 60")
	require.NoError(t, err)
	assert.False(t, pos.FiftyMoveClock() >= 100)

	km := findMove(t, pos, board.E1, board.E2)
	pos.Make(km)
	assert.True(t, pos.FiftyMoveClock() >= 100, "a non-pawn, non-capture move should tick the clock to 100")
}

func TestDrawDetectionRepetition(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	require.NoError(t, err)

	shuffle := []board.Square{board.G1, board.F3, board.G8, board.F6, board.F3, board.G1, board.F6, board.G8}
	// Two round trips (Nf3 Nf6 Ng1 Ng8, twice) return to the start position
	// three times total (the initial one plus two repeats).
	for rep := 0; rep < 2; rep++ {
		for i := 0; i < len(shuffle); i += 2 {
			m := findMove(t, pos, shuffle[i], shuffle[i+1])
			pos.Make(m)
		}
	}
	assert.True(t, pos.HasRepeated(2), "shuffling knights back and forth twice should repeat the start position three times")
}

// findMove locates the (unique, by from/to) move among pos's legal moves,
// failing the test if it isn't found.
func findMove(t *testing.T, pos *board.Position, from, to board.Square) board.Move {
	t.Helper()
	for _, m := range pos.AllMoves() {
		if m.From == from && m.To == to {
			return m
		}
	}
	t.Fatalf("no legal move %v%v in %v", from, to, pos.FEN())
	return board.Move{}
}

func perft(pos *board.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}
	var nodes int64
	for _, m := range pos.AllMoves() {
		pos.Make(m)
		nodes += perft(pos, depth-1)
		pos.Unmake()
	}
	return nodes
}

// TestPerft checks node counts against the well-known perft table
// (chessprogramming.org/Perft_Results). Depths beyond 4 are gated behind
// -short since they take minutes even for a reasonably fast generator.
func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		nodes int64
		long  bool
	}{
		{"startpos d1", board.StartFEN, 1, 20, false},
		{"startpos d2", board.StartFEN, 2, 400, false},
		{"startpos d3", board.StartFEN, 3, 8902, false},
		{"startpos d4", board.StartFEN, 4, 197281, false},
		{"startpos d5", board.StartFEN, 5, 4865609, true},
		{"startpos d6", board.StartFEN, 6, 119060324, true},
		{"kiwipete d4", kiwipeteFEN, 4, 4085603, false},
		{"kiwipete d5", kiwipeteFEN, 5, 193690690, true},
		{"endgame d6", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 6, 11030083, true},
		{"tricky d5", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RQk w kq - 0 1", 5, 15833292, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.long && testing.Short() {
				t.Skip("perft at this depth is too slow for -short")
			}
			pos, err := board.ParseFEN(tt.fen)
			require.NoError(t, err)
			assert.Equal(t, tt.nodes, perft(pos, tt.depth))
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	require.NoError(t, err)

	clone := pos.Clone()
	m := findMove(t, clone, board.E2, board.E4)
	clone.Make(m)

	assert.Equal(t, board.StartFEN, pos.FEN(), "mutating the clone must not affect the original")
	assert.NotEqual(t, pos.Key(), clone.Key())
}
