package eval

import "github.com/corvidchess/corvid/pkg/board"

// Params holds every tunable evaluation weight, loaded externally (this
// package only defines defaults; a config layer outside the core may
// override them). Each structural term carries a tunable (mg, eg) weight
// pair so its contribution can be tapered by game phase.
type Params struct {
	Material [board.NumPieceTypes]Pair

	BishopPair      Pair
	StoppedPawn     Pair
	BlockedPawn     Pair
	PassedPawn      Pair
	IsolatedPawn    Pair
	BackwardPawn    Pair
	PawnShield      Pair
	Mobility        [board.NumPieceTypes]Pair
	PieceDefense    [board.NumPieceTypes]Pair
	PawnDefense     [board.NumPieceTypes]Pair
	TropismOwn      [board.NumPieceTypes]Pair
	TropismEnemy    [board.NumPieceTypes]Pair
	PawnTropism     Pair // normal
	WeakPawnTropism Pair
	PassedPawnTropism Pair
	KingZoneAttackerWeight Pair
	KingZoneSquareWeight   Pair
	TempoBonus  Score
	MopUpWeight Score
	DeltaMargin Score

	// RazorMargin[d] and FutilityMargin[d] are indexed by remaining depth in
	// full plies, 1-based (index 0 unused); search owns the FULL_PLY unit.
	RazorMargin     [4]Score
	FutilityMargin  [6]Score

	// NullMoveReductionMinDepthLeft gates null-move pruning: only attempted
	// when the node's remaining depth, in fractional-ply units, is at least
	// this value (search owns the FULL_PLY unit; the default below assumes
	// FULL_PLY==8).
	NullMoveReductionMinDepthLeft int
}

// DefaultParams returns the default tunable weight set.
func DefaultParams() Params {
	p := Params{
		Material:     DefaultMaterial,
		BishopPair:   Pair{30, 45},
		StoppedPawn:  Pair{-8, -12},
		BlockedPawn:  Pair{-5, -8},
		PassedPawn:   Pair{10, 35},
		IsolatedPawn: Pair{-12, -10},
		BackwardPawn: Pair{-10, -6},
		PawnShield:   Pair{8, 0},

		PawnTropism:       Pair{0, -2},
		WeakPawnTropism:   Pair{0, -4},
		PassedPawnTropism: Pair{0, -6},

		KingZoneAttackerWeight: Pair{20, 5},
		KingZoneSquareWeight:   Pair{8, 2},

		TempoBonus:  12,
		MopUpWeight: 6,
		DeltaMargin: 200,

		RazorMargin:    [4]Score{0, 125, 175, 225},
		FutilityMargin: [6]Score{0, 100, 160, 220, 280, 340},

		NullMoveReductionMinDepthLeft: 10, // FullPly + FullPly/4, FullPly==8.
	}
	p.Mobility[board.Knight] = Pair{4, 4}
	p.Mobility[board.Bishop] = Pair{5, 5}
	p.Mobility[board.Rook] = Pair{2, 4}
	p.Mobility[board.Queen] = Pair{1, 2}
	p.Mobility[board.Pawn] = Pair{2, 2}

	p.PieceDefense[board.Knight] = Pair{2, 1}
	p.PieceDefense[board.Bishop] = Pair{2, 1}
	p.PieceDefense[board.Rook] = Pair{2, 1}
	p.PieceDefense[board.Queen] = Pair{2, 1}
	p.PieceDefense[board.Pawn] = Pair{1, 1}

	p.PawnDefense[board.Knight] = Pair{3, 2}
	p.PawnDefense[board.Bishop] = Pair{3, 2}
	p.PawnDefense[board.Rook] = Pair{3, 2}
	p.PawnDefense[board.Queen] = Pair{3, 2}

	p.TropismOwn[board.Knight] = Pair{0, -1}
	p.TropismOwn[board.Bishop] = Pair{0, -1}
	p.TropismOwn[board.Rook] = Pair{0, -1}
	p.TropismOwn[board.Queen] = Pair{0, -2}

	p.TropismEnemy[board.Knight] = Pair{-2, 0}
	p.TropismEnemy[board.Bishop] = Pair{-2, 0}
	p.TropismEnemy[board.Rook] = Pair{-1, 0}
	p.TropismEnemy[board.Queen] = Pair{-3, 0}

	return p
}
