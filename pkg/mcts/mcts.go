package mcts

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"unsafe"
)

type TreeStats struct {
	maxdepth atomic.Int32
	cps      atomic.Uint32
	cycles   atomic.Uint32
}

type MCTS[T MoveLike] struct {
	TreeStats
	listener        *StatsListener[T]
	Limiter         LimiterLike
	selectionPolicy SelectionPolicy[T]
	Root            *NodeBase[T]
	size            atomic.Uint32
	wg              sync.WaitGroup
}

// Create a new tree over the given game operations. The root is expanded
// eagerly, so the legal root moves exist as children before any search runs.
func NewMCTS[T MoveLike](ops GameOperations[T], rootTerminal bool) *MCTS[T] {
	tree := &MCTS[T]{
		TreeStats:       TreeStats{},
		listener:        newStatsListener[T](),
		Limiter:         LimiterLike(NewLimiter()),
		selectionPolicy: UCB1[T],
		Root:            newRootNode[T](rootTerminal),
	}

	// Not searching yet
	tree.Limiter.SetStop(true)

	// If that's random-based playouts, attach a random number generator
	if rg, ok := ops.(RandGameOperations[T]); ok {
		rg.SetRand(rand.New(rand.NewSource(SeedGeneratorFn())))
	}

	if tree.Root.CanExpand() {
		tree.size.Store(1 + ops.ExpandNode(tree.Root))
		tree.Root.FinishExpanding()
	} else {
		tree.size.Store(1)
	}

	return tree
}

func (tree *MCTS[T]) SetSelectionPolicy(policy SelectionPolicy[T]) {
	if policy != nil {
		tree.selectionPolicy = policy
	}
}

func (tree *MCTS[T]) invokeListener(f ListenerFunc[T]) {
	if f != nil {
		f(toListenerStats(tree))
	}
}

func (tree *MCTS[T]) ResetListener() {
	tree.listener.OnCycle(nil).OnDepth(nil).OnStop(nil)
}

func (tree *MCTS[T]) StatsListener() *StatsListener[T] {
	return tree.listener
}

func (tree *MCTS[T]) SetListener(listener StatsListener[T]) {
	*tree.listener = listener
}

// Adds custom context to the limiter, enabling cancellation through it
//
// Example:
//
//	ctx, cancel := context.WithCancel(context.Background())
//
//	tree.SetContext(ctx)
//	go func() {
//	    time.Sleep(2 * time.Second)
//	    cancel() // Cancel the search after 2 seconds
//	}()
//
//	tree.Search(...)
func (tree *MCTS[T]) SetContext(ctx context.Context) {
	tree.Limiter.SetContext(ctx)
}

func (tree *MCTS[T]) IsSearching() bool {
	return !tree.Limiter.Stop()
}

// Stop the search
func (tree *MCTS[T]) Stop() {
	tree.Limiter.SetStop(true)
}

// Maximum depth reached during the search, note that usually MaxDepth != len(pv)
func (tree *MCTS[T]) MaxDepth() int {
	return int(tree.maxdepth.Load())
}

// Total number of full search cycles ran during the search
func (tree *MCTS[T]) Cycles() int {
	return int(tree.cycles.Load())
}

// Get the cycles per second statistic
func (tree *MCTS[T]) Cps() uint32 {
	return tree.cps.Load()
}

// Get the reason why the search was stopped, valid after search ends
func (tree *MCTS[T]) StopReason() StopReason {
	return tree.Limiter.StopReason()
}

func (tree *MCTS[T]) SetLimits(limits *Limits) {
	tree.Limiter.SetLimits(limits)
}

func (tree *MCTS[T]) Limits() *Limits {
	return tree.Limiter.Limits()
}

func (tree *MCTS[T]) String() string {
	return fmt.Sprintf("MCTS={Size=%d, Stats:{maxdepth=%d, cps=%d, cycles=%d}, Stop=%v, Root=%v}",
		tree.Size(), tree.MaxDepth(), tree.Cps(), tree.Cycles(), !tree.IsSearching(), tree.Root)
}

// Helper function to count tree nodes
func countTreeNodes[T MoveLike](node *NodeBase[T]) int {
	nodes := 1
	for i := range node.Children {
		if len(node.Children[i].Children) > 0 {
			nodes += countTreeNodes(&node.Children[i])
		} else {
			nodes += 1
		}
	}

	return nodes
}

// Get the size of the tree (by counting)
func (tree *MCTS[T]) Count() int {
	return countTreeNodes(tree.Root)
}

// Get the size of the tree
func (tree *MCTS[T]) Size() uint32 {
	return tree.size.Load()
}

// Returns an approximation of the memory used by the tree structure
func (tree *MCTS[T]) MemoryUsage() uint32 {
	return tree.Size()*uint32(unsafe.Sizeof(NodeBase[T]{})) + uint32(unsafe.Sizeof(MCTS[T]{}))
}

// Tries to make the given 'move' a new root, keeping the subtree already
// built for it. Returns false if no child carries that move.
func (tree *MCTS[T]) MakeMove(move T) bool {
	// If the search is running, stop it first
	if tree.IsSearching() {
		tree.Stop()
		tree.Synchronize()
	}

	var newRoot *NodeBase[T]
	for i := range tree.Root.Children {
		if tree.Root.Children[i].Move == move {
			newRoot = &tree.Root.Children[i]
			break
		}
	}

	if newRoot == nil {
		return false
	}

	oldRoot := tree.Root
	tree.Root = newRoot
	tree.size.Store(uint32(countTreeNodes(newRoot)))
	tree.maxdepth.Store(max(0, int32(tree.MaxDepth()-1)))

	// Detach the new root from its parent
	newRoot.Parent = nil

	// Clear the children of the old root, to make them available for GC
	oldRoot.Children = nil
	return true
}

// Remove the previous tree & rebuild the root from the ops' current position
func (tree *MCTS[T]) Reset(ops GameOperations[T], isTerminated bool) {
	// Discard a running search
	if tree.IsSearching() {
		tree.Stop()
		tree.Synchronize()
	}

	ops.Reset()
	tree.Root = newRootNode[T](isTerminated)
	tree.size.Store(1)
	tree.maxdepth.Store(0)

	if tree.Root.CanExpand() {
		tree.size.Add(ops.ExpandNode(tree.Root))
		tree.Root.FinishExpanding()
	}
}

// 'the best move' in the position
func (tree *MCTS[T]) RootMove() T {
	var move T
	if bestChild := tree.BestChild(tree.Root, BestChildMostVisits); bestChild != nil {
		move = bestChild.Move
	}
	return move
}

// Current evaluation of the position
func (tree *MCTS[T]) RootScore() Result {
	if bestChild := tree.BestChild(tree.Root, BestChildMostVisits); bestChild != nil {
		return bestChild.Outcomes() / Result(bestChild.Visits())
	}
	return Result(math.NaN())
}

// Return the best child of 'node', based on the given policy
func (tree *MCTS[T]) BestChild(node *NodeBase[T], policy BestChildPolicy) *NodeBase[T] {
	var bestChild *NodeBase[T]
	var child *NodeBase[T]
	maxVisits := int32(0)

	switch policy {
	case BestChildMostVisits:
		bestOutcomes := Result(-1)
		for i := 0; i < len(node.Children); i++ {
			child = &node.Children[i]
			v := child.RealVisits()
			if v <= 0 {
				continue
			}
			// Robust child: most visits, ties broken by accumulated
			// outcome, then by generation order
			if v > maxVisits || (v == maxVisits && child.Outcomes() > bestOutcomes) {
				maxVisits = v
				bestOutcomes = child.Outcomes()
				bestChild = child
			}
		}
	case BestChildWinRate:
		const minVisitsThreshold = 10

		bestWinRate := -1.0
		for i := 0; i < len(node.Children); i++ {
			child = &node.Children[i]
			if child.RealVisits() > minVisitsThreshold {
				winRate := float64(child.Outcomes()) / float64(child.Visits())
				if winRate > bestWinRate {
					bestWinRate = winRate
					bestChild = child
				}
			}
		}
	}

	return bestChild
}

// Get the principal variation (ie. the best sequence of moves) from the
// given starting 'root' node, returns (nodes, terminal)
func (tree *MCTS[T]) PvNodes(root *NodeBase[T], policy BestChildPolicy, includeRoot bool) ([]*NodeBase[T], bool) {
	if root == nil {
		return nil, false
	}

	pv := make([]*NodeBase[T], 0, tree.MaxDepth()+1)
	node := root
	terminal := false

	if includeRoot {
		pv = append(pv, root)
	}

	for len(node.Children) > 0 {
		node = tree.BestChild(node, policy)
		if node == nil {
			break
		}

		pv = append(pv, node)

		if node.Terminal() {
			terminal = true
			break
		}
	}

	return pv, terminal
}

// Get the principal variation, but only the moves, returns (moves, terminal, draw)
func (tree *MCTS[T]) Pv(root *NodeBase[T], policy BestChildPolicy, includeRoot bool) ([]T, bool, bool) {
	if root == nil {
		return nil, false, false
	}

	var node *NodeBase[T]
	nodes, terminal := tree.PvNodes(root, policy, includeRoot)
	pv := make([]T, len(nodes))
	for i := range nodes {
		node = nodes[i]
		pv[i] = node.Move
	}

	return pv, terminal, (terminal && node.AvgOutcome() == 0.5)
}
