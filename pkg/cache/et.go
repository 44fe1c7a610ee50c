package cache

import (
	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
)

// ET data word layout: the valid bit, a generation and a score, since an
// evaluation is just a cached Evaluate(pos) result with no depth or bound
// semantics.
// Newer writes always replace a match and, on eviction contention, always
// win over an older occupant: fresher evaluations are always preferred.
const (
	etScoreShift      = 39
	etGenerationShift = 55
)

func packET(score eval.Score, generation uint8) uint64 {
	return validBit | uint64(generation)<<etGenerationShift | uint64(uint16(score))<<etScoreShift
}

func unpackET(data uint64) (eval.Score, uint8) {
	return eval.Score(int16(uint16(data >> etScoreShift))), uint8((data >> etGenerationShift) & 0xff)
}

// EvaluationTable caches static Evaluate results, keyed by Zobrist key, to
// avoid re-running the full tapered evaluation at quiescence leaves visited
// repeatedly via transposition.
type EvaluationTable struct {
	t *table
}

// NewEvaluationTable allocates an ET of approximately sizeBytes.
func NewEvaluationTable(sizeBytes uint64) *EvaluationTable {
	et := &EvaluationTable{}
	et.t = newTable(sizeBytes, func(incumbent, candidate uint64) bool {
		// Evaluations are cheap to recompute and carry no depth/bound
		// ordering, so the newest write always wins.
		return false
	})
	return et
}

func (et *EvaluationTable) Read(key board.ZobristKey) (eval.Score, bool) {
	d, ok := et.t.get(key)
	if !ok {
		return 0, false
	}
	s, _ := unpackET(d)
	return s, true
}

func (et *EvaluationTable) Write(key board.ZobristKey, score eval.Score, generation uint8) bool {
	return et.t.put(key, packET(score, generation))
}

func (et *EvaluationTable) Clear() {
	et.t.clear()
}

func (et *EvaluationTable) Size() uint64  { return et.t.size() * 16 }
func (et *EvaluationTable) Used() float64 { return et.t.used() }
