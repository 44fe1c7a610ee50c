// Package cache implements the concurrent, lossy Zobrist-keyed table shared
// by the transposition table (TT) and evaluation table (ET). Both are a
// single logical map from board.ZobristKey to an entry payload, backed by
// four sub-tables of decreasing size probed in order, using an XOR-keyed
// tear-protection scheme instead of locks for the hot read/write path.
package cache

import (
	"math/bits"
	"sync"

	"github.com/corvidchess/corvid/pkg/board"
)

// subTableFractions gives each sub-table's approximate share of the total
// slot count, largest first. They do not need to sum exactly to 1: each
// sub-table's slot count is independently rounded up to a power of two
// for cheap masking.
var subTableFractions = [4]float64{0.325, 0.275, 0.225, 0.175}

func nextPowerOfTwo(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return uint64(1) << (64 - bits.LeadingZeros64(n-1))
}

func slotIndex(key board.ZobristKey, mask uint64) uint64 {
	abs := uint64(key) &^ (1 << 63) // mask off the sign bit to get a magnitude.
	return abs & mask
}

// generation is a monotonically advancing search-root counter. Each table
// owns its own counter; the TT's and the ET's advance independently.
type generation struct {
	mu  sync.Mutex
	gen uint32
}

func (g *generation) advance() {
	g.mu.Lock()
	g.gen++
	g.mu.Unlock()
}

func (g *generation) current() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gen
}
