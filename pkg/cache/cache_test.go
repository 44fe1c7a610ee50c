package cache_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/cache"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspositionTableRoundTrip(t *testing.T) {
	tt := cache.NewTranspositionTable(1 << 20)
	key := board.ZobristKey(0x1234567890abcdef)
	m := board.Move{Type: board.Normal, From: board.E2, To: board.E4, Moved: board.WhitePawn}

	ok := tt.Write(key, cache.Exact, eval.Score(42), m, 5)
	require.True(t, ok)

	r, ok := tt.Read(key)
	require.True(t, ok)
	assert.Equal(t, cache.Exact, r.Bound)
	assert.Equal(t, eval.Score(42), r.Score)
	assert.True(t, m.Equals(r.Move))
	assert.Equal(t, 5, r.Depth)
}

func TestTranspositionTableMiss(t *testing.T) {
	tt := cache.NewTranspositionTable(1 << 16)
	_, ok := tt.Read(board.ZobristKey(0xdeadbeef))
	assert.False(t, ok)
}

func TestTranspositionTableNewSearchAdvancesGeneration(t *testing.T) {
	tt := cache.NewTranspositionTable(1 << 16)
	g0 := tt.Generation()
	tt.NewSearch()
	assert.Equal(t, g0+1, tt.Generation())
}

func TestEvaluationTableRoundTrip(t *testing.T) {
	et := cache.NewEvaluationTable(1 << 16)
	key := board.ZobristKey(42)

	ok := et.Write(key, eval.Score(-17), 0)
	require.True(t, ok)

	s, ok := et.Read(key)
	require.True(t, ok)
	assert.Equal(t, eval.Score(-17), s)
}

func TestEvaluationTableNewestWriteWins(t *testing.T) {
	// Within one sub-table bucket, a later write for the same key always
	// overwrites the earlier one, carrying no depth/bound precedence.
	et := cache.NewEvaluationTable(1 << 16)
	key := board.ZobristKey(7)

	require.True(t, et.Write(key, eval.Score(1), 0))
	require.True(t, et.Write(key, eval.Score(2), 0))

	s, ok := et.Read(key)
	require.True(t, ok)
	assert.Equal(t, eval.Score(2), s)
}
