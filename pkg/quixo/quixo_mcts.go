package quixo

import (
	"fmt"
	"math/rand"

	"github.com/quixo-engine/go-quixo/pkg/mcts"
)

// Safety cap for random playouts. Quixo terminates in practice because the
// board fills up with owned tiles, but random play can shuffle owned tiles
// forever, so capped playouts score as draws.
const RolloutMoveCap = 512

// Struct holding the outcome of a finished search
type SearchResult struct {
	BestMove Move
	Eval     float64 // win rate of the best move, from the root side's perspective
	Cycles   int
	Cps      uint32
	Depth    int
	Pv       []Move
	Terminal bool
	Draw     bool
}

func (s SearchResult) String() string {
	return fmt.Sprintf("bestmove %s eval %.2f depth %d cps %d cycles %d pv %v",
		s.BestMove, s.Eval, s.Depth, s.Cps, s.Cycles, s.Pv)
}

// Quixo MCTS engine, binds the game rules to the search core
type QuixoMCTS struct {
	*mcts.MCTS[Move]
	ops *quixoOps
}

func NewQuixoMCTS(pos Position) *QuixoMCTS {
	// Each tree must have its own operations instance
	ops := newQuixoOps(pos)
	return &QuixoMCTS{
		MCTS: mcts.NewMCTS[Move](ops, pos.IsTerminated()),
		ops:  ops,
	}
}

// Start the search in the background, call Synchronize to wait for it
func (tree *QuixoMCTS) AsyncSearch() {
	tree.MCTS.SearchMultiThreaded(tree.ops)
}

// Run the search, blocks until the limits are exhausted
func (tree *QuixoMCTS) Search() {
	tree.AsyncSearch()
	tree.Synchronize()
}

func (tree *QuixoMCTS) Ops() mcts.GameOperations[Move] {
	return tree.ops
}

// Current root position of the engine
func (tree *QuixoMCTS) Position() *Position {
	return &tree.ops.position
}

// Discard the tree and rebuild the root from the engine's position
func (tree *QuixoMCTS) Reset() {
	tree.MCTS.Reset(tree.ops, tree.ops.position.IsTerminated())
}

// Replace the engine's position, discarding the current tree
func (tree *QuixoMCTS) SetPosition(pos Position) {
	tree.ops.position = pos.Clone()
	tree.Reset()
}

// Play the given move in the root position. The subtree already built for
// the move is kept when possible, otherwise the tree is rebuilt. Returns
// false (and changes nothing) when the move is illegal.
func (tree *QuixoMCTS) MakeMove(mv Move) bool {
	if err := tree.ops.position.MakeMove(mv); err != nil {
		return false
	}
	tree.ops.rootTurn = tree.ops.position.Turn()

	if !tree.MCTS.MakeMove(mv) {
		tree.MCTS.Reset(tree.ops, tree.ops.position.IsTerminated())
	}
	return true
}

// The strongest root move found so far. ErrNoLegalMoves when the root is
// terminal or has no legal moves, callers should guard with a search first.
func (tree *QuixoMCTS) BestMove() (Move, error) {
	if tree.Root.Terminal() || len(tree.Root.Children) == 0 {
		return MoveIllegal, ErrNoLegalMoves
	}

	best := tree.BestChild(tree.Root, mcts.BestChildMostVisits)
	if best == nil {
		return MoveIllegal, ErrNoLegalMoves
	}
	return best.Move, nil
}

// Collect the result of a finished search: best move, win rate, pv
func (tree *QuixoMCTS) SearchResult() (SearchResult, error) {
	best, err := tree.BestMove()
	if err != nil {
		return SearchResult{}, err
	}

	pv, terminal, draw := tree.Pv(tree.Root, mcts.BestChildMostVisits, false)
	result := SearchResult{
		BestMove: best,
		Cycles:   tree.Cycles(),
		Cps:      tree.Cps(),
		Depth:    tree.MaxDepth(),
		Pv:       pv,
		Terminal: terminal,
		Draw:     draw,
	}

	if child := tree.BestChild(tree.Root, mcts.BestChildMostVisits); child != nil && child.Visits() > 0 {
		result.Eval = float64(child.AvgOutcome())
	}
	return result, nil
}

// SelectMove runs a fresh search from the given position and returns the
// strongest move found within the limits. A cycle budget below 1 still runs
// one full simulation, so a move is always produced for non-terminal
// positions. ErrNoLegalMoves when the position is already decided.
func SelectMove(pos *Position, limits *mcts.Limits) (Move, error) {
	if pos.IsTerminated() || pos.LegalMoves().Size() == 0 {
		return MoveIllegal, ErrNoLegalMoves
	}

	tree := NewQuixoMCTS(pos.Clone())
	tree.SetLimits(limits)
	tree.Search()
	return tree.BestMove()
}

// Game operations driving the search, keeps a private position that the
// selection phase walks with make/undo
type quixoOps struct {
	position Position
	rootTurn TurnType
	depth    int // distance from the tree's root, moves below it must stay
	random   *rand.Rand
}

func newQuixoOps(pos Position) *quixoOps {
	return &quixoOps{
		position: pos.Clone(),
		rootTurn: pos.Turn(),
		random:   rand.New(rand.NewSource(mcts.SeedGeneratorFn())),
	}
}

func (ops *quixoOps) Reset() {
	ops.rootTurn = ops.position.Turn()
	ops.depth = 0
}

func (ops *quixoOps) SetRand(r *rand.Rand) {
	ops.random = r
}

func (ops *quixoOps) ExpandNode(node *mcts.NodeBase[Move]) uint32 {
	moves := ops.position.LegalMoves()
	node.Children = make([]mcts.NodeBase[Move], moves.Size())

	for i, m := range moves.Slice() {
		if err := ops.position.MakeMove(m); err != nil {
			panic("quixo: generated move rejected: " + m.String())
		}
		isTerminal := ops.position.IsTerminated()
		ops.position.UndoMove()

		node.Children[i] = *mcts.NewBaseNode(node, m, isTerminal)
	}

	return uint32(moves.Size())
}

func (ops *quixoOps) Traverse(mv Move) {
	if err := ops.position.MakeMove(mv); err != nil {
		panic("quixo: generated move rejected: " + mv.String())
	}
	ops.depth++
}

// Backpropagation calls this once more than Traverse per cycle, the depth
// guard keeps moves played before the tree's root untouched
func (ops *quixoOps) BackTraverse() {
	if ops.depth == 0 {
		return
	}
	ops.position.UndoMove()
	ops.depth--
}

// Play uniformly-random legal moves for both sides until the game is
// decided or the safety cap is reached, then undo them all. The result is
// from the perspective of the side to move at the leaf.
func (ops *quixoOps) Rollout() mcts.Result {
	var result mcts.Result = 0.5
	moveCount := 0
	leafTurn := ops.position.Turn()

	for !ops.position.IsTerminated() && moveCount < RolloutMoveCap {
		moves := ops.position.LegalMoves()
		if moves.Size() == 0 {
			break
		}

		mv := moves.At(int(ops.random.Int31()) % moves.Size())
		if err := ops.position.MakeMove(mv); err != nil {
			panic("quixo: generated move rejected: " + mv.String())
		}
		moveCount++
	}

	switch t := ops.position.Termination(); t {
	case TerminationCrossWon:
		if leafTurn == CrossTurn {
			result = 1.0
		} else {
			result = 0.0
		}
	case TerminationCircleWon:
		if leafTurn == CircleTurn {
			result = 1.0
		} else {
			result = 0.0
		}
	}

	for i := 0; i < moveCount; i++ {
		ops.position.UndoMove()
	}

	return result
}

func (ops *quixoOps) Clone() mcts.GameOperations[Move] {
	return &quixoOps{
		position: ops.position.Clone(),
		rootTurn: ops.rootTurn,
		random:   rand.New(rand.NewSource(mcts.SeedGeneratorFn())),
	}
}
