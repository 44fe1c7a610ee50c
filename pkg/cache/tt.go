package cache

import (
	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
)

// Bound classifies a stored search score relative to the window it was
// computed in.
type Bound uint8

const (
	Exact Bound = iota
	FailHigh
	FailLow
)

func (b Bound) String() string {
	switch b {
	case Exact:
		return "Exact"
	case FailHigh:
		return "FailHigh"
	case FailLow:
		return "FailLow"
	default:
		return "?"
	}
}

// TTResult is a decoded transposition table entry.
type TTResult struct {
	Bound      Bound
	Depth      int
	Score      eval.Score
	Move       board.Move
	Generation uint8
	Busy       bool
}

// Bit layout of the packed TT data word, MSB to LSB:
//
//	[63]    valid
//	[62:61] bound (2 bits)
//	[60:53] generation (8 bits)
//	[52]    busy
//	[51:36] score, as uint16 bit pattern of an int16 (16 bits)
//	[35:12] move: from(6) | to(6) | type(4) | moved(4) | captured(4) (24 bits)
//	[11:0]  depth (12 bits)
const (
	ttBoundShift      = 61
	ttGenerationShift = 53
	ttBusyShift       = 52
	ttScoreShift      = 36
	ttMoveShift       = 12
	ttDepthShift      = 0
)

func packMove(m board.Move) uint64 {
	return uint64(m.From) | uint64(m.To)<<6 | uint64(m.Type)<<12 | uint64(m.Moved)<<16 | uint64(m.Captured)<<20
}

func unpackMove(v uint64) (from, to board.Square, t board.MoveType, moved, captured board.Piece) {
	from = board.Square(v & 0x3f)
	to = board.Square((v >> 6) & 0x3f)
	t = board.MoveType((v >> 12) & 0xf)
	moved = board.Piece((v >> 16) & 0xf)
	captured = board.Piece((v >> 20) & 0xf)
	return
}

func packTT(bound Bound, generation uint8, busy bool, score eval.Score, move board.Move, depth int) uint64 {
	var busyBit uint64
	if busy {
		busyBit = 1
	}
	return validBit |
		uint64(bound)<<ttBoundShift |
		uint64(generation)<<ttGenerationShift |
		busyBit<<ttBusyShift |
		uint64(uint16(score))<<ttScoreShift |
		packMove(move)<<ttMoveShift |
		(uint64(depth)&0xfff)<<ttDepthShift
}

func unpackTT(data uint64) TTResult {
	from, to, mt, moved, captured := unpackMove((data >> ttMoveShift) & 0xffffff)
	return TTResult{
		Bound:      Bound((data >> ttBoundShift) & 0x3),
		Depth:      int((data >> ttDepthShift) & 0xfff),
		Score:      eval.Score(int16(uint16(data >> ttScoreShift))),
		Move:       board.Move{From: from, To: to, Type: mt, Moved: moved, Captured: captured},
		Generation: uint8((data >> ttGenerationShift) & 0xff),
		Busy:       (data>>ttBusyShift)&1 != 0,
	}
}

// ttBetterThan implements the §4.D/§3 replacement priority: prefer same or
// newer generation, then greater depth, then exact over bounded, then
// non-busy over busy. current is the search's live generation counter,
// against which "same or newer" staleness is judged.
func ttBetterThan(current uint8) func(incumbent, candidate uint64) bool {
	return func(incumbent, candidate uint64) bool {
		inc := unpackTT(incumbent)
		cand := unpackTT(candidate)

		incFresh := isFresh(inc.Generation, current)
		candFresh := isFresh(cand.Generation, current)
		if incFresh != candFresh {
			return incFresh
		}
		if inc.Depth != cand.Depth {
			return inc.Depth > cand.Depth
		}
		if (inc.Bound == Exact) != (cand.Bound == Exact) {
			return inc.Bound == Exact
		}
		if inc.Busy != cand.Busy {
			return !inc.Busy
		}
		return false
	}
}

// isFresh reports whether a stored generation is at least as new as the
// search's current generation, treating generation as a narrow wrapping
// counter (8 bits): "older" means strictly behind within half the range.
func isFresh(stored, current uint8) bool {
	return uint8(stored-current) < 128
}

// TranspositionTable is the concurrent TT: many readers and writers share
// it across the helper-thread pool, coordinated by the busy flag and the
// XOR-keyed tear-protection scheme rather than locks.
type TranspositionTable struct {
	t *table
}

// NewTranspositionTable allocates a TT of approximately sizeBytes, split
// across the four cuckoo sub-tables.
func NewTranspositionTable(sizeBytes uint64) *TranspositionTable {
	tt := &TranspositionTable{}
	tt.t = newTable(sizeBytes, func(incumbent, candidate uint64) bool {
		return ttBetterThan(uint8(tt.t.currentGeneration()))(incumbent, candidate)
	})
	return tt
}

func (tt *TranspositionTable) Read(key board.ZobristKey) (TTResult, bool) {
	d, ok := tt.t.get(key)
	if !ok {
		return TTResult{}, false
	}
	return unpackTT(d), true
}

func (tt *TranspositionTable) Write(key board.ZobristKey, bound Bound, score eval.Score, move board.Move, depth int) bool {
	gen := uint8(tt.t.currentGeneration())
	return tt.t.put(key, packTT(bound, gen, false, score, move, depth))
}

// SetBusy marks the entry for key as under active search by a helper
// thread, best-effort (a missing entry is silently ignored; tearing between
// the set and a concurrent write is tolerated).
func (tt *TranspositionTable) SetBusy(key board.ZobristKey, busy bool) {
	for _, sub := range tt.t.sub {
		s := &sub[slotIndex(key, uint64(len(sub)-1))]
		d := s.data.Load()
		if d == 0 || board.ZobristKey(s.key.Load()^d) != key {
			continue
		}
		r := unpackTT(d)
		tt.t.store(s, key, packTT(r.Bound, r.Generation, busy, r.Score, r.Move, r.Depth))
		return
	}
}

func (tt *TranspositionTable) NewSearch() {
	tt.t.advanceGeneration()
}

func (tt *TranspositionTable) Clear() {
	tt.t.clear()
}

func (tt *TranspositionTable) Remove(match func(key board.ZobristKey, r TTResult) bool) {
	tt.t.remove(func(key board.ZobristKey, d uint64) bool {
		return match(key, unpackTT(d))
	})
}

func (tt *TranspositionTable) Size() uint64      { return tt.t.size() * 16 }
func (tt *TranspositionTable) Used() float64     { return tt.t.used() }
func (tt *TranspositionTable) Generation() uint8 { return uint8(tt.t.currentGeneration()) }
