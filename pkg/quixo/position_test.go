package quixo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPosition(t *testing.T) {
	pos := NewPosition()
	assert.Equal(t, Board{}, pos.Board())
	assert.Equal(t, CrossTurn, pos.Turn())
	assert.False(t, pos.IsTerminated())
	assert.Equal(t, 0, pos.MoveCount())
	assert.Equal(t, PieceNone, pos.Winner())
}

func TestMakeMoveAlternatesTurns(t *testing.T) {
	pos := NewPosition()

	require.NoError(t, pos.MakeMove(MoveFromString("a1R")))
	assert.Equal(t, CircleTurn, pos.Turn())
	assert.Equal(t, PieceCross, pos.Board().At(4, 0))
	assert.Equal(t, 1, pos.MoveCount())

	require.NoError(t, pos.MakeMove(MoveFromString("a5R")))
	assert.Equal(t, CrossTurn, pos.Turn())
	assert.Equal(t, PieceCircle, pos.Board().At(4, 4))
	assert.Equal(t, 2, pos.MoveCount())
}

func TestMakeMoveIllegalLeavesStateUnchanged(t *testing.T) {
	pos := NewPosition()
	require.NoError(t, pos.MakeMove(MoveFromString("a1R"))) // (4,0) is now Cross

	before := pos.Clone()

	// Inner cell, opponent-owned edge cell, push toward own edge
	for _, notation := range []string{"c3R", "e1R", "a1L"} {
		err := pos.MakeMove(MoveFromString(notation))
		assert.ErrorIs(t, err, ErrIllegalMove, "move %s", notation)
		assert.Equal(t, before.Board(), pos.Board())
		assert.Equal(t, before.Turn(), pos.Turn())
		assert.Equal(t, before.MoveCount(), pos.MoveCount())
	}
}

func TestUndoMoveRestoresClaimedTile(t *testing.T) {
	pos := NewPosition()
	require.NoError(t, pos.MakeMove(MoveFromString("a1R")))

	// The source was empty, the shift claimed it, undo must forget the claim
	pos.UndoMove()
	assert.Equal(t, Board{}, pos.Board())
	assert.Equal(t, CrossTurn, pos.Turn())
	assert.Equal(t, 0, pos.MoveCount())
	assert.False(t, pos.IsTerminated())

	// Undo on the starting position is a no-op
	pos.UndoMove()
	assert.Equal(t, 0, pos.MoveCount())
}

func TestResetEqualsNewPosition(t *testing.T) {
	pos := NewPosition()
	require.NoError(t, pos.MakeMove(MoveFromString("a1R")))
	require.NoError(t, pos.MakeMove(MoveFromString("e5T")))

	pos.Reset()
	fresh := NewPosition()
	assert.Equal(t, fresh.Board(), pos.Board())
	assert.Equal(t, fresh.Turn(), pos.Turn())
	assert.Equal(t, fresh.MoveCount(), pos.MoveCount())
	assert.Equal(t, fresh.Termination(), pos.Termination())
}

func TestMakeMoveDetectsWin(t *testing.T) {
	pos := &Position{board: almostWon}
	require.NoError(t, pos.MakeMove(MoveFromString("b5L")))

	assert.True(t, pos.IsTerminated())
	assert.Equal(t, TerminationCrossWon, pos.Termination())
	assert.Equal(t, PieceCross, pos.Winner())
}

// The board is not locked after a win: moves are still applied and the
// winner recomputed
func TestMakeMoveAfterWin(t *testing.T) {
	pos := &Position{board: almostWon}
	require.NoError(t, pos.MakeMove(MoveFromString("b5L")))
	require.True(t, pos.IsTerminated())

	require.NoError(t, pos.MakeMove(MoveFromString("e5T")))
	assert.Equal(t, TerminationCrossWon, pos.Termination(), "the cross line is untouched")
}

func TestCloneSharesNoMemory(t *testing.T) {
	pos := NewPosition()
	require.NoError(t, pos.MakeMove(MoveFromString("a1R")))

	clone := pos.Clone()
	require.NoError(t, clone.MakeMove(MoveFromString("a5R")))
	clone.UndoMove()
	clone.UndoMove()

	assert.Equal(t, 1, pos.MoveCount())
	assert.Equal(t, PieceCross, pos.Board().At(4, 0))
}
