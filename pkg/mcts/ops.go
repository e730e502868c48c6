package mcts

import "math/rand"

// Game-specific operations driving the search, the implementation keeps
// an internal position that Traverse/BackTraverse walk up and down.
type GameOperations[T MoveLike] interface {
	// Generate moves here, and add them as children to the given node.
	// Children must ALWAYS be generated in the same order for a given
	// position, the deterministic best-child tie-break relies on it.
	ExpandNode(parent *NodeBase[T]) uint32
	// Make the given move on the internal position
	Traverse(T)
	// Go back up one level in the game tree (undo the move played in
	// Traverse). Backpropagation calls this once per node on the way up,
	// which is one call more than the Traverse count, so the implementation
	// must treat a call at the root as a no-op
	BackTraverse()
	// Play out the game from the internal position until a terminal
	// state (or the game's safety cap) is reached, and return the result
	// from the perspective of the side to move at the start of the playout
	Rollout() Result
	// Reset internal bookkeeping to the current position, called when the
	// tree is rebuilt
	Reset()
	// Clone itself, without any shared memory with the original
	Clone() GameOperations[T]
}

// Random-based (light) playouts
type RandGameOperations[T MoveLike] interface {
	GameOperations[T]
	// Sets the random generator
	SetRand(*rand.Rand)
}
