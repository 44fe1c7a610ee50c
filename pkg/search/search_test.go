package search_test

import (
	"context"
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func depthLimit(d uint) search.Limits {
	return search.Limits{Depth: lang.Some(d), Threads: 1}
}

// TestSearchFindsALegalMoveAtDepth1 covers scenario 1: even a minimal
// search returns a legal, non-mate-scored move from the start position.
func TestSearchFindsALegalMoveAtDepth1(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	require.NoError(t, err)

	e := search.NewEngine(1 << 20)
	res := e.Search(context.Background(), pos, depthLimit(1), search.NopReporter{})

	move, ok := res.BestMove.V()
	require.True(t, ok, "expected a best move")
	assert.True(t, pos.IsLegal(move))

	score, ok := res.Score.V()
	require.True(t, ok)
	assert.Less(t, int(score), int(search.WinningCheckmate))
	assert.Greater(t, int(score), int(search.LosingCheckmate))
}

// TestSearchHoldsRookEndingParity covers scenario 2: a rook ending in which
// the side to move is a rook up must not be assessed as losing for it.
func TestSearchHoldsRookEndingParity(t *testing.T) {
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	require.NoError(t, err)

	e := search.NewEngine(1 << 21)
	res := e.Search(context.Background(), pos, depthLimit(4), search.NopReporter{})

	score, ok := res.Score.V()
	require.True(t, ok)
	assert.GreaterOrEqual(t, int(score), 0)
}

// TestSearchFindsMateInOne covers scenario 3.
func TestSearchFindsMateInOne(t *testing.T) {
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/5PPP/4R1K1 w - - 0 1")
	require.NoError(t, err)

	e := search.NewEngine(1 << 21)
	res := e.Search(context.Background(), pos, depthLimit(3), search.NopReporter{})

	move, ok := res.BestMove.V()
	require.True(t, ok)
	assert.Equal(t, "e1e8", move.PACN())

	score, ok := res.Score.V()
	require.True(t, ok)
	md, isMate := search.MateIn(score)
	require.True(t, isMate)
	assert.Equal(t, 1, md)

	st, ok := res.ScoreType.V()
	require.True(t, ok)
	assert.Equal(t, search.Mate, st)
}

// TestSearchClaimsStalemate covers scenario 4: a stalemated side to move
// has no legal moves and is not in check, and the search reports no best
// move and the stalemate score.
func TestSearchClaimsStalemate(t *testing.T) {
	pos, err := board.ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	require.Empty(t, pos.AllMoves())
	require.False(t, pos.InCheck())

	e := search.NewEngine(1 << 20)
	res := e.Search(context.Background(), pos, depthLimit(3), search.NopReporter{})

	_, hasMove := res.BestMove.V()
	assert.False(t, hasMove)

	score, ok := res.Score.V()
	require.True(t, ok)
	assert.Equal(t, search.StaleMate, score)
}

// TestThreefoldRepetitionDetected covers scenario 5, at the board level:
// shuffling the knights out and back twice (Nf3 Nf6 Ng1 Ng8, twice)
// repeats the start position.
func TestThreefoldRepetitionDetected(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	require.NoError(t, err)

	shuffle := []board.Square{board.G1, board.F3, board.G8, board.F6, board.F3, board.G1, board.F6, board.G8}
	for rep := 0; rep < 2; rep++ {
		for i := 0; i < len(shuffle); i += 2 {
			from, to := shuffle[i], shuffle[i+1]
			var m board.Move
			for _, cand := range pos.AllMoves() {
				if cand.From == from && cand.To == to {
					m = cand
					break
				}
			}
			require.NotEqual(t, board.NoPiece, m.Moved, "no legal move %v%v", from, to)
			pos.Make(m)
		}
	}
	assert.True(t, pos.HasRepeated(2))
}

// TestConcurrentSearchAgreesWithSingleThread covers scenario 6, best-effort:
// a tactically forced position (mate in one) should be solved identically
// whether searched with one thread or several, since the forced line leaves
// no room for Lazy-SMP thread divergence to change the root result.
func TestConcurrentSearchAgreesWithSingleThread(t *testing.T) {
	fen := "6k1/5ppp/8/8/8/8/5PPP/4R1K1 w - - 0 1"

	pos1, err := board.ParseFEN(fen)
	require.NoError(t, err)
	e1 := search.NewEngine(1 << 21)
	res1 := e1.Search(context.Background(), pos1, depthLimit(3), search.NopReporter{})

	pos4, err := board.ParseFEN(fen)
	require.NoError(t, err)
	e4 := search.NewEngine(1 << 21)
	limits4 := depthLimit(3)
	limits4.Threads = 4
	res4 := e4.Search(context.Background(), pos4, limits4, search.NopReporter{})

	m1, ok1 := res1.BestMove.V()
	m4, ok4 := res4.BestMove.V()
	require.True(t, ok1)
	require.True(t, ok4)
	assert.True(t, m1.Equals(m4), "single-thread %v vs 4-thread %v", m1, m4)

	s1, _ := res1.Score.V()
	s4, _ := res4.Score.V()
	assert.Equal(t, s1, s4)
}
