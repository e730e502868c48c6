package quixo

// The 44 structurally allowed moves: every edge cell crossed with every
// shift that does not push the tile back toward its own edge. Corners get
// 2 directions, other edge cells 3. Built once, in a fixed column-major
// order - move generation must stay deterministic, the search's best-child
// tie-break relies on it.
var allowedMoves [44]Move

func init() {
	n := 0
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			if !IsEdge(x, y) {
				continue
			}
			for _, shift := range [4]Shift{ShiftTop, ShiftBottom, ShiftLeft, ShiftRight} {
				if shiftValid(x, y, shift) {
					allowedMoves[n] = MakeMove(x, y, shift)
					n++
				}
			}
		}
	}
	if n != len(allowedMoves) {
		panic("quixo: allowed move table incomplete")
	}
}

// A tile cannot be pushed back toward the edge it already occupies
func shiftValid(x, y int, shift Shift) bool {
	switch shift {
	case ShiftTop:
		return y != 0
	case ShiftBottom:
		return y != Size-1
	case ShiftLeft:
		return x != 0
	case ShiftRight:
		return x != Size-1
	}
	return false
}

// AllowedMoves returns the full structural move table, independent of
// ownership. Mostly useful for UIs and tests.
func AllowedMoves() []Move {
	return allowedMoves[:]
}

// Generate every legal move for the given player: structurally allowed
// moves whose source tile is empty or already owned by the player.
// The board is never mutated, calling this twice yields the same list.
func (b *Board) LegalMoves(p Piece) *MoveList {
	movelist := NewMoveList()
	for _, mv := range allowedMoves {
		if owner := b[mv.Index()]; owner == PieceNone || owner == p {
			movelist.Append(mv)
		}
	}
	return movelist
}
