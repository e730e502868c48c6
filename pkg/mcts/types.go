package mcts

// Types shared across the search core.

// Result of a rollout, ranges over [0, 1] - 0 being a loss from the
// perspective of the side to move at the leaf node, 1 being a win
// and 0.5 a draw.
type Result float64

type MoveLike comparable
type BestChildPolicy int
type SeedGeneratorFnType func() int64

// Called on every descent step to pick the next child to follow.
// Warning: node stats may be written by other search workers, so
// read them only through the atomic accessors.
type SelectionPolicy[T MoveLike] func(parent *NodeBase[T]) *NodeBase[T]
