package quixo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Shorthand for readable board literals in tests
const (
	n = PieceNone
	x = PieceCross
	o = PieceCircle
)

// Position where Cross has four tiles of column b and several winning
// pushes available
var almostWon = Board{
	x, x, x, n, n,
	o, x, n, n, n,
	n, x, n, n, n,
	o, x, n, n, n,
	x, n, o, n, n,
}

var crossWon = Board{
	x, x, x, n, n,
	o, x, n, n, n,
	n, x, n, n, n,
	o, x, n, n, n,
	x, x, o, n, n,
}

func TestApplyCornerPushRight(t *testing.T) {
	board := Board{}
	next, err := board.Apply(MakeMove(0, 0, ShiftRight), PieceCross)
	require.NoError(t, err)

	assert.Equal(t, PieceCross, next.At(4, 0))
	assert.Equal(t, PieceNone, next.At(0, 0))
	for i, p := range next {
		if i != 4 {
			assert.Equal(t, PieceNone, p, "cell %d should be untouched", i)
		}
	}

	// The receiver is never mutated
	assert.Equal(t, Board{}, board)
}

func TestApplyShiftsInBetweenTiles(t *testing.T) {
	// Rebuilding the b5-left push that completes column b for Cross
	next, err := almostWon.Apply(MakeMove(1, 4, ShiftLeft), PieceCross)
	require.NoError(t, err)
	assert.Equal(t, crossWon, next)
}

func TestApplyChangesOnlyTheMoveLine(t *testing.T) {
	for _, mv := range almostWon.LegalMoves(PieceCross).Slice() {
		next, err := almostWon.Apply(mv, PieceCross)
		require.NoError(t, err, "move %s", mv)

		for y := 0; y < Size; y++ {
			for x := 0; x < Size; x++ {
				if x == mv.X() || y == mv.Y() {
					continue
				}
				assert.Equal(t, almostWon.At(x, y), next.At(x, y),
					"move %s must not touch cell (%d,%d)", mv, x, y)
			}
		}
	}
}

func TestApplyIllegalMoves(t *testing.T) {
	board := Board{}
	board.set(0, 1, o)

	cases := []struct {
		name string
		mv   Move
		p    Piece
	}{
		{"inner cell", MakeMove(2, 2, ShiftRight), PieceCross},
		{"opponent tile", MakeMove(0, 1, ShiftRight), PieceCross},
		{"push toward own edge, top", MakeMove(2, 0, ShiftTop), PieceCross},
		{"push toward own edge, left", MakeMove(0, 2, ShiftLeft), PieceCross},
		{"no mover piece", MakeMove(0, 0, ShiftRight), PieceNone},
		{"illegal sentinel", MoveIllegal, PieceCross},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := board.Apply(tc.mv, tc.p)
			assert.ErrorIs(t, err, ErrIllegalMove)
			assert.Equal(t, board, next, "board must come back unchanged")
		})
	}
}

func TestAtPanicsOutOfRange(t *testing.T) {
	board := Board{}
	assert.Panics(t, func() { board.At(5, 0) })
	assert.Panics(t, func() { board.At(0, -1) })
}

func TestWinnerLines(t *testing.T) {
	row := Board{}
	for i := 0; i < Size; i++ {
		row.set(i, 0, x)
	}
	assert.Equal(t, PieceCross, row.Winner(PieceCross))

	col := Board{}
	for i := 0; i < Size; i++ {
		col.set(3, i, o)
	}
	assert.Equal(t, PieceCircle, col.Winner(PieceCircle))

	diag := Board{}
	anti := Board{}
	for i := 0; i < Size; i++ {
		diag.set(i, i, o)
		anti.set(Size-1-i, i, x)
	}
	assert.Equal(t, PieceCircle, diag.Winner(PieceCircle))
	assert.Equal(t, PieceCross, anti.Winner(PieceCross))

	assert.Equal(t, PieceNone, almostWon.Winner(PieceCross))
	assert.Equal(t, PieceCross, crossWon.Winner(PieceCross))
}

// Standard Quixo rule: when a single shift completes a line for both
// players, the mover loses
func TestWinnerSimultaneousLinesMoverLoses(t *testing.T) {
	both := Board{}
	for i := 0; i < Size; i++ {
		both.set(i, 0, x)
		both.set(i, 4, o)
	}

	assert.Equal(t, PieceCircle, both.Winner(PieceCross))
	assert.Equal(t, PieceCross, both.Winner(PieceCircle))
}
