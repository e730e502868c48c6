package quixo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedMovesTable(t *testing.T) {
	moves := AllowedMoves()
	require.Len(t, moves, 44)

	// Corner cells carry 2 directions, other edge cells 3,
	// inner cells none
	perCell := map[int]int{}
	for _, mv := range moves {
		perCell[mv.Index()]++

		srcX, srcY := mv.X(), mv.Y()
		require.True(t, IsEdge(srcX, srcY), "move %s starts on an inner cell", mv)
		require.True(t, shiftValid(srcX, srcY, mv.Shift()), "move %s pushes toward its own edge", mv)
	}

	assert.Len(t, perCell, 16)
	for idx, count := range perCell {
		srcX, srcY := idx%Size, idx/Size
		corner := (srcX == 0 || srcX == Size-1) && (srcY == 0 || srcY == Size-1)
		if corner {
			assert.Equal(t, 2, count, "corner (%d,%d)", srcX, srcY)
		} else {
			assert.Equal(t, 3, count, "edge (%d,%d)", srcX, srcY)
		}
	}

	// The order is fixed, column-major - the search's deterministic
	// tie-break depends on it
	assert.Equal(t, "a1B", moves[0].String())
	assert.Equal(t, "a1R", moves[1].String())
	assert.Equal(t, "e5L", moves[43].String())
}

func TestLegalMovesOwnership(t *testing.T) {
	board := Board{}
	assert.Equal(t, 44, board.LegalMoves(PieceCross).Size())
	assert.Equal(t, 44, board.LegalMoves(PieceCircle).Size())

	// An opponent-owned edge-non-corner cell removes its 3 moves
	board.set(2, 0, o)
	assert.Equal(t, 41, board.LegalMoves(PieceCross).Size())
	assert.Equal(t, 44, board.LegalMoves(PieceCircle).Size())

	// Own tiles stay movable
	board.set(0, 0, x)
	assert.Equal(t, 41, board.LegalMoves(PieceCross).Size())
	assert.Equal(t, 42, board.LegalMoves(PieceCircle).Size())
}

func TestLegalMovesIdempotent(t *testing.T) {
	first := almostWon.LegalMoves(PieceCross)
	second := almostWon.LegalMoves(PieceCross)
	assert.Equal(t, first.Slice(), second.Slice())
}

func TestMoveNotation(t *testing.T) {
	mv := MakeMove(1, 4, ShiftLeft)
	assert.Equal(t, 1, mv.X())
	assert.Equal(t, 4, mv.Y())
	assert.Equal(t, ShiftLeft, mv.Shift())
	assert.Equal(t, "b5L", mv.String())
	assert.Equal(t, mv, MoveFromString("b5L"))
	assert.Equal(t, mv, MoveFromString("b5l"))

	assert.Equal(t, MoveIllegal, MoveFromString("f1R"))
	assert.Equal(t, MoveIllegal, MoveFromString("a6T"))
	assert.Equal(t, MoveIllegal, MoveFromString("a1X"))
	assert.Equal(t, MoveIllegal, MoveFromString("nonsense"))
	assert.Equal(t, "(none)", MoveIllegal.String())
}
