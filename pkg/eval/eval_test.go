package eval_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findCapture locates the legal move from `from` capturing on `to`, failing
// the test if none exists.
func findCapture(t *testing.T, pos *board.Position, from, to board.Square) board.Move {
	t.Helper()
	for _, m := range pos.AllMoves() {
		if m.From == from && m.To == to && (m.IsCapture() || m.Type == board.EnPassant) {
			return m
		}
	}
	t.Fatalf("no legal capture %v%v in %v", from, to, pos.FEN())
	return board.Move{}
}

func TestSEEWorkedExamples(t *testing.T) {
	tests := []struct {
		fen      string
		from, to board.Square
		expected eval.Score
	}{
		{"4k3/8/8/4n3/3P4/8/8/4K3 w - - 0 1", board.D4, board.E5, 325},
		{"4k3/8/3p4/4n3/3P4/8/8/4K3 w - - 0 1", board.D4, board.E5, 225},
	}
	for _, tt := range tests {
		pos, err := board.ParseFEN(tt.fen)
		require.NoError(t, err)
		m := findCapture(t, pos, tt.from, tt.to)
		assert.Equal(t, tt.expected, eval.SEE(pos, m), "SEE(%v) on %v", m, tt.fen)
	}
}

// TestSEEAfterPawnTrade exercises a position reached by real moves rather
// than a hand-built FEN: after 1.e4 d5 2.exd5, black's queen on d8 has a
// clear file to recapture on d5 and white has no second attacker there, so
// the exchange is an even pawn-for-pawn trade, not a net gain for white.
func TestSEEAfterPawnTrade(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	require.NoError(t, err)

	e4 := findQuiet(t, pos, board.E2, board.E4)
	pos.Make(e4)
	d5 := findQuiet(t, pos, board.D7, board.D5)
	pos.Make(d5)

	exd5 := findCapture(t, pos, board.E4, board.D5)
	assert.Equal(t, eval.Score(0), eval.SEE(pos, exd5))
}

func findQuiet(t *testing.T, pos *board.Position, from, to board.Square) board.Move {
	t.Helper()
	for _, m := range pos.AllMoves() {
		if m.From == from && m.To == to {
			return m
		}
	}
	t.Fatalf("no legal move %v%v in %v", from, to, pos.FEN())
	return board.Move{}
}

func TestSEENonCaptureIsZero(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	require.NoError(t, err)
	m := findQuiet(t, pos, board.E2, board.E4)
	assert.Equal(t, eval.Score(0), eval.SEE(pos, m))
}

// TestEvaluateStartpos checks that, with default (symmetric) parameters,
// the startpos score is exactly the tempo bonus.
func TestEvaluateStartpos(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	require.NoError(t, err)

	params := eval.DefaultParams()
	assert.Equal(t, params.TempoBonus, eval.Evaluate(pos, &params))
}

// mirrorFEN vertically flips a piece-placement field and swaps every
// piece's color, producing the FEN of the same structural position as seen
// by the other side - used to check evaluation symmetry.
func mirrorFEN(placement string) string {
	ranks := splitRanks(placement)
	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[len(ranks)-1-i] = swapCase(r)
	}
	return joinRanks(out)
}

func splitRanks(s string) []string {
	var ranks []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '/' {
			ranks = append(ranks, s[start:i])
			start = i + 1
		}
	}
	return ranks
}

func joinRanks(ranks []string) string {
	out := ranks[0]
	for _, r := range ranks[1:] {
		out += "/" + r
	}
	return out
}

func swapCase(rank string) string {
	b := []byte(rank)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
			b[i] = c - 'a' + 'A'
		case c >= 'A' && c <= 'Z':
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}

// TestEvaluationSymmetry checks the color-symmetry invariant on the
// material, PST and mop-up terms: mirroring the board vertically and
// swapping every piece's color must negate each term exactly. The tempo bonus and the best-immediate-
// capture bias are excluded, since both are defined relative to whichever
// side is to move rather than to color.
func TestEvaluationSymmetry(t *testing.T) {
	placement := "r1bqk2r/pp1nbppp/2p1pn2/3p4/2PP4/2N1PN2/PP2BPPP/R1BQK2R"
	p1, err := board.ParseFEN(placement + " w KQkq - 0 8")
	require.NoError(t, err)
	p2, err := board.ParseFEN(mirrorFEN(placement) + " w KQkq - 0 8")
	require.NoError(t, err)

	params := eval.DefaultParams()
	phase1 := eval.Phase(p1)
	phase2 := eval.Phase(p2)
	require.Equal(t, phase1, phase2, "mirroring must not change material count")

	mat1 := eval.Material(p1, &params.Material, phase1)
	mat2 := eval.Material(p2, &params.Material, phase2)
	assert.Equal(t, mat1, -mat2, "material must negate under color mirror")

	pst1 := eval.PST(p1, phase1)
	pst2 := eval.PST(p2, phase2)
	assert.Equal(t, pst1, -pst2, "PST must negate under color mirror")

	mopUp1 := eval.MopUp(p1, &params)
	mopUp2 := eval.MopUp(p2, &params)
	assert.Equal(t, mopUp1, -mopUp2, "mop-up must negate under color mirror")
}
