package mcts

import (
	"math/rand"
	"runtime"
)

// Wait for all search workers spawned by SearchMultiThreaded to finish
func (tree *MCTS[T]) Synchronize() {
	tree.wg.Wait()
}

// Run a multi-threaded (tree parallel) search with Limits.NThreads workers,
// to wait for the result, call Synchronize. Every worker builds the same
// tree, virtual loss keeps them off each other's lines.
func (tree *MCTS[T]) SearchMultiThreaded(ops GameOperations[T]) {
	tree.setupSearch()
	threads := max(1, tree.Limiter.Limits().NThreads)

	// The root may be an unexpanded leaf after re-rooting with MakeMove
	if tree.Root.CanExpand() {
		tree.size.Add(ops.ExpandNode(tree.Root))
		tree.Root.FinishExpanding()
	}

	for id := 0; id < threads; id++ {
		tree.wg.Add(1)

		// Each worker gets its own ops clone (private position) and
		// its own random stream
		go tree.Search(tree.Root, ops.Clone(), id)
	}
}

// This function only sets the limits, resets the counters and the stop flag,
// it doesn't actually start the search
func (tree *MCTS[T]) setupSearch() {
	tree.Limiter.Reset()
	tree.cps.Store(0)
	tree.cycles.Store(0)
	tree.maxdepth.Store(0)
}

// Actual search loop, simply repeats:
//
// 1. selection - choose the most promising leaf (expanding it on the way)
//
// 2. rollout - simulate the game from the leaf, getting a playout result
//
// 3. backpropagation - update the counters up to the root
//
// until the limiter says the budget ran out. threadId must be unique,
// 0 meaning it's the main search thread with some privileges.
func (tree *MCTS[T]) Search(root *NodeBase[T], ops GameOperations[T], threadId int) {
	threadRand := rand.New(rand.NewSource(SeedGeneratorFn() + int64(threadId)))

	// For random (light) playouts, set the random number generator
	if rg, ok := ops.(RandGameOperations[T]); ok {
		rg.SetRand(threadRand)
	}

	if root.Terminal() || len(root.Children) == 0 {
		tree.Limiter.SetStop(true)
		if threadId == mainThreadId {
			tree.invokeListener(tree.listener.onStop)
		}
		tree.wg.Done()
		return
	}

	var node *NodeBase[T]

	for tree.Limiter.Ok(tree.Size(), uint32(tree.Cycles())) {
		// Choose the most promising node
		node = tree.Selection(root, ops, threadRand)
		// Playout and update the counters up to the root
		tree.Backpropagate(ops, node, ops.Rollout())

		// Increment the cycle count and store the cps
		tree.cycles.Add(1)
		tree.cps.Store(uint32(tree.Cycles()) * 1000 / tree.Limiter.Elapsed())

		if threadId == mainThreadId {
			tree.listener.invokeCycle(tree)
		}
	}

	// Evaluate the stop reason, only the main thread does this
	if threadId == mainThreadId {
		tree.Limiter.EvaluateStopReason(tree.Size(), uint32(tree.Cycles()))
	}

	// Synchronize all workers
	tree.Limiter.SetStop(true)

	if threadId == mainThreadId {
		tree.invokeListener(tree.listener.onStop)
	}
	tree.wg.Done()
}

// Selects the next node to simulate, descending by the selection policy
func (tree *MCTS[T]) Selection(root *NodeBase[T], ops GameOperations[T], threadRand *rand.Rand) *NodeBase[T] {
	node := root
	depth := int32(0)
	for node.Expanded() {
		node = tree.selectionPolicy(node)
		ops.Traverse(node.Move)
		depth++

		// Apply virtual loss
		node.AddVvl(VirtualLoss, VirtualLoss)
	}

	// Found a leaf, grow the tree below it, unless it's fresh or terminal
	if node.RealVisits() > 0 && !node.Terminal() {
		if node.CanExpand() {
			tree.size.Add(ops.ExpandNode(node))
			node.FinishExpanding()
		}

		// Another worker is expanding this node right now, wait it out
		for node.Expanding() {
			runtime.Gosched()
		}

		if node.Expanded() && len(node.Children) > 0 {
			// Descend into a random fresh child
			node = &node.Children[threadRand.Int31()%int32(len(node.Children))]
			ops.Traverse(node.Move)
			depth++
			node.AddVvl(VirtualLoss, VirtualLoss)
		}
	}

	if tree.maxdepth.Load() < depth {
		tree.maxdepth.Store(depth)
		tree.invokeListener(tree.listener.onDepth)
	}

	return node
}

// Update the statistics from the simulated node up to the root.
//
// The game is assumed to be 2 player and zero sum: for a given result for
// the current player, the value for the opponent is exactly 1 - result.
// The rollout result arrives from the perspective of the side to move at
// 'node', so the value is flipped before every node on the way up, crediting
// wins to the player who moved into each node.
func (tree *MCTS[T]) Backpropagate(ops GameOperations[T], node *NodeBase[T], result Result) {
	for node != nil {
		// Reverse virtual loss for non-root nodes
		if node.Parent != nil {
			node.AddVvl(1-VirtualLoss, -VirtualLoss)
		} else {
			node.AddVvl(1, 0)
		}

		result = 1.0 - result
		node.AddOutcome(result)

		node = node.Parent
		ops.BackTraverse()
	}
}
