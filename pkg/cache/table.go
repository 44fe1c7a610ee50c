package cache

import (
	"sync"

	"github.com/corvidchess/corvid/pkg/board"
	"go.uber.org/atomic"
)

// validBit marks a data word as holding a real entry, distinguishing a
// legitimately all-zero-fields entry from an empty slot.
const validBit = uint64(1) << 63

// slot is one (key, data) pair. The stored key word is the true Zobrist key
// XORed with data, so a torn read (key written by one writer, data by
// another mid-race) reconstructs to the wrong key and is rejected by the
// reader instead of silently returning a corrupt entry.
type slot struct {
	key  atomic.Uint64
	data atomic.Uint64
}

// table is the generic four-way-probed structure shared by the
// transposition table and the evaluation table. betterThan and empty are
// supplied by the caller to interpret the opaque data word.
type table struct {
	sub        [4]subslice
	betterThan func(incumbent, candidate uint64) bool

	mu         sync.Mutex // guards Clear/Remove only; the hot path is lock-free.
	generation generation
}

type subslice []slot

func newTable(totalBytes uint64, betterThan func(incumbent, candidate uint64) bool) *table {
	bytesPerSlot := uint64(16) // two uint64 words.
	totalSlots := totalBytes / bytesPerSlot
	if totalSlots == 0 {
		totalSlots = 1
	}

	t := &table{betterThan: betterThan}
	for i, frac := range subTableFractions {
		n := nextPowerOfTwo(uint64(float64(totalSlots) * frac))
		if n == 0 {
			n = 1
		}
		t.sub[i] = make(subslice, n)
	}
	return t
}

// get probes the four sub-tables in order and returns the first slot whose
// reconstructed key matches, along with its data word.
func (t *table) get(key board.ZobristKey) (uint64, bool) {
	for _, sub := range t.sub {
		idx := slotIndex(key, uint64(len(sub)-1))
		s := &sub[idx]

		k := s.key.Load()
		d := s.data.Load()
		if d == 0 {
			continue
		}
		if board.ZobristKey(k^d) == key {
			return d, true
		}
	}
	return 0, false
}

// put attempts to place data (already tagged with validBit) for key, using a
// probe/evict/relocate rule: an empty or matching-key slot in any of the
// four sub-tables is used directly; failing that, the sub-table whose
// incumbent is beaten by data evicts it, relocating the incumbent to
// another sub-table only if an empty slot is available there (no cascading
// eviction).
func (t *table) put(key board.ZobristKey, data uint64) bool {
	var slots [4]*slot
	var existing [4]uint64

	for i := range t.sub {
		sub := t.sub[i]
		idx := slotIndex(key, uint64(len(sub)-1))
		s := &sub[idx]
		slots[i] = s

		k := s.key.Load()
		d := s.data.Load()
		existing[i] = d

		if d == 0 {
			t.store(s, key, data)
			return true
		}
		if board.ZobristKey(k^d) == key {
			if t.betterThan(d, data) {
				return false
			}
			t.store(s, key, data)
			return true
		}
	}

	// All four slots occupied by unrelated keys: evict the weakest one that
	// data beats, relocating its incumbent if a spare empty slot exists
	// elsewhere among the four.
	evict := -1
	for i, d := range existing {
		if !t.betterThan(d, data) {
			if evict == -1 || t.betterThan(existing[evict], d) {
				evict = i
			}
		}
	}
	if evict == -1 {
		return false
	}

	incumbentData := existing[evict]
	incumbentKey := slots[evict].key.Load() ^ incumbentData

	t.store(slots[evict], key, data)

	for i := range t.sub {
		if i == evict {
			continue
		}
		sub := t.sub[i]
		s := &sub[slotIndex(board.ZobristKey(incumbentKey), uint64(len(sub)-1))]
		if s.data.Load() == 0 {
			t.store(s, board.ZobristKey(incumbentKey), incumbentData)
			break
		}
	}
	return true
}

func (t *table) store(s *slot, key board.ZobristKey, data uint64) {
	s.data.Store(data)
	s.key.Store(uint64(key) ^ data)
}

// clear atomically replaces every sub-table's backing storage with fresh,
// empty slices.
func (t *table) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.sub {
		t.sub[i] = make(subslice, len(t.sub[i]))
	}
}

// remove scans every slot and nulls those for which match returns true.
func (t *table) remove(match func(key board.ZobristKey, data uint64) bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, sub := range t.sub {
		for i := range sub {
			s := &sub[i]
			d := s.data.Load()
			if d == 0 {
				continue
			}
			k := board.ZobristKey(s.key.Load() ^ d)
			if match(k, d) {
				s.data.Store(0)
				s.key.Store(0)
			}
		}
	}
}

func (t *table) advanceGeneration() {
	t.generation.advance()
}

func (t *table) currentGeneration() uint32 {
	return t.generation.current()
}

// size returns the total slot count across all four sub-tables.
func (t *table) size() uint64 {
	var n uint64
	for _, sub := range t.sub {
		n += uint64(len(sub))
	}
	return n
}

// used returns the fraction of occupied slots, sampled without locking (an
// approximation under concurrent writers).
func (t *table) used() float64 {
	var occupied, total int
	for _, sub := range t.sub {
		total += len(sub)
		for i := range sub {
			if sub[i].data.Load() != 0 {
				occupied++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(occupied) / float64(total)
}
