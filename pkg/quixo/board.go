package quixo

import (
	"errors"
	"fmt"
	"strings"
)

// Board side length, the game is played on the fixed 5x5 grid
const Size = 5

// Move violates the ownership, edge or direction constraints. Recoverable:
// the caller simply keeps the previous state.
var ErrIllegalMove = errors.New("illegal move")

// The side to move has no legal moves, cannot happen in reachable Quixo
// positions but is guarded against when the search is invoked.
var ErrNoLegalMoves = errors.New("no legal moves available")

// The playing board, a flat row-major array of tile owners.
// Index = y*Size + x, (0,0) is the top left corner.
type Board [Size * Size]Piece

// Tile owner at the given coordinates. Coordinates outside [0,4] are a
// programmer error and panic, user-facing move validation reports
// ErrIllegalMove instead.
func (b Board) At(x, y int) Piece {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		panic(fmt.Sprintf("board coordinates out of range: (%d, %d)", x, y))
	}
	return b[y*Size+x]
}

func (b *Board) set(x, y int, p Piece) {
	b[y*Size+x] = p
}

// Whether the cell lies on the outer ring, only those tiles are movable
func IsEdge(x, y int) bool {
	return x == 0 || x == Size-1 || y == 0 || y == Size-1
}

// Pure shift-and-claim transformation: the source tile is picked up, the
// in-between tiles shift one slot toward the vacated cell, and the moved
// tile re-emerges at the terminal slot owned by 'p'. The receiver is never
// mutated, the new board is returned.
//
// ErrIllegalMove when the source is not an edge cell, is owned by the
// opponent, or the shift points back at the edge the source already occupies.
func (b Board) Apply(mv Move, p Piece) (Board, error) {
	if mv == MoveIllegal || mv.Index() >= Size*Size || p == PieceNone {
		return b, ErrIllegalMove
	}

	x, y := mv.X(), mv.Y()
	if !IsEdge(x, y) {
		return b, ErrIllegalMove
	}
	if owner := b.At(x, y); owner != PieceNone && owner != p {
		return b, ErrIllegalMove
	}

	switch mv.Shift() {
	case ShiftTop:
		if y == 0 {
			return b, ErrIllegalMove
		}
		for i := y; i > 0; i-- {
			b.set(x, i, b.At(x, i-1))
		}
		b.set(x, 0, p)
	case ShiftBottom:
		if y == Size-1 {
			return b, ErrIllegalMove
		}
		for i := y; i < Size-1; i++ {
			b.set(x, i, b.At(x, i+1))
		}
		b.set(x, Size-1, p)
	case ShiftLeft:
		if x == 0 {
			return b, ErrIllegalMove
		}
		for i := x; i > 0; i-- {
			b.set(i, y, b.At(i-1, y))
		}
		b.set(0, y, p)
	case ShiftRight:
		if x == Size-1 {
			return b, ErrIllegalMove
		}
		for i := x; i < Size-1; i++ {
			b.set(i, y, b.At(i+1, y))
		}
		b.set(Size-1, y, p)
	}

	return b, nil
}

// Whether the given player owns a complete row, column or main diagonal
func (b *Board) hasLine(p Piece) bool {
	if p == PieceNone {
		return false
	}

	for i := 0; i < Size; i++ {
		row, col := true, true
		for j := 0; j < Size; j++ {
			row = row && b.At(j, i) == p
			col = col && b.At(i, j) == p
		}
		if row || col {
			return true
		}
	}

	diag, anti := true, true
	for i := 0; i < Size; i++ {
		diag = diag && b.At(i, i) == p
		anti = anti && b.At(Size-1-i, i) == p
	}
	return diag || anti
}

// The effective winner of the position, given who made the last move.
//
// Standard Quixo rule: a shift can complete a line for BOTH players at
// once (the mover's push slides the opponent's tiles too). In that case
// the mover LOSES - the line was completed for the opponent by the
// mover's own action. Hence the mover's line only counts when the
// opponent has none.
func (b *Board) Winner(mover Piece) Piece {
	opponent := mover.Opponent()
	if b.hasLine(opponent) {
		return opponent
	}
	if b.hasLine(mover) {
		return mover
	}
	return PieceNone
}

func (b *Board) String() string {
	builder := strings.Builder{}
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			builder.WriteRune(b.At(x, y).Rune())
			if x < Size-1 {
				builder.WriteByte(' ')
			}
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}
