package search

import "github.com/corvidchess/corvid/pkg/board"

// maxPly bounds killer/history-table ply indexing; deeper than this and
// extensions would have to be pathological (checks/recaptures chained well
// past any realistic search horizon).
const maxPly = 128

// KillerTable holds up to two quiet killer moves per ply: moves that caused
// a beta cutoff at that ply in a sibling subtree, tried early as they are
// likely to cut off again. Not shared across threads; each search thread
// owns its own.
type KillerTable struct {
	slots [maxPly][2]board.Move
}

// Add records move as a killer at ply. A no-op if move is already the
// primary killer; otherwise the primary becomes the secondary and move
// becomes the new primary.
func (k *KillerTable) Add(ply int, move board.Move) {
	if ply < 0 || ply >= maxPly {
		return
	}
	if k.slots[ply][0].Equals(move) {
		return
	}
	k.slots[ply][1] = k.slots[ply][0]
	k.slots[ply][0] = move
}

// Moves returns the two killer moves recorded for ply (zero Move if unset).
func (k *KillerTable) Moves(ply int) (board.Move, board.Move) {
	if ply < 0 || ply >= maxPly {
		return board.Move{}, board.Move{}
	}
	return k.slots[ply][0], k.slots[ply][1]
}
