package mcts

import (
	"fmt"
	"sync/atomic"
)

// Per-node counters, shared between search workers, so every field
// is accessed atomically. Visits and virtual loss always satisfy
// visits - virtualLoss >= 0, read them together with GetVvl.
type NodeStats struct {
	outcomes    atomic.Uint64 // compounded outcomes with 10^-3 precision
	visits      atomic.Int32
	virtualLoss atomic.Int32
}

// Average outcome for this node
func (stats *NodeStats) AvgOutcome() Result {
	return Result(stats.outcomes.Load()) / 1e3 / Result(stats.Visits())
}

// Accumulated outcomes for this node
func (stats *NodeStats) Outcomes() Result {
	return Result(stats.outcomes.Load()) / 1e3
}

func (stats *NodeStats) AddOutcome(result Result) {
	stats.outcomes.Add(uint64(result * 1e3))
}

func (stats *NodeStats) Visits() int32 {
	return stats.visits.Load()
}

func (stats *NodeStats) VirtualLossCount() int32 {
	return stats.virtualLoss.Load()
}

// Get both visits and virtual loss (to avoid reading one while the
// other is being modified), returns (visits, virtual loss)
func (stats *NodeStats) GetVvl() (int32, int32) {
	// cas loop, so we can read the values atomically
	for {
		visits := stats.visits.Load()
		virtualLoss := stats.virtualLoss.Load()

		if virtualLoss <= visits {
			return visits, virtualLoss
		}
	}
}

// Returns visits - virtual loss
func (stats *NodeStats) RealVisits() int32 {
	visits, virtualLoss := stats.GetVvl()
	return visits - virtualLoss
}

// Adds given deltas to both the visit and virtual loss counters
func (stats *NodeStats) AddVvl(visits, virtualLoss int32) {
	stats.virtualLoss.Add(virtualLoss)
	stats.visits.Add(visits)
}

// Sets visits and virtual loss of this node to specified values
func (stats *NodeStats) SetVvl(visits, virtualLoss int32) {
	stats.virtualLoss.Store(virtualLoss)
	stats.visits.Store(visits)

	if virtualLoss > visits {
		panic(fmt.Sprintf("virtual loss (%d) cannot be greater than visits (%d)", virtualLoss, visits))
	}
}

const (
	canExpand     uint32 = 0
	ExpandingMask uint32 = 1
	ExpandedMask  uint32 = 2
	TerminalMask  uint32 = 4
)

type NodeBase[T MoveLike] struct {
	NodeStats
	Move     T
	Children []NodeBase[T]
	Parent   *NodeBase[T]
	Flags    uint32 // must be read/written atomically
}

func newRootNode[T MoveLike](terminated bool) *NodeBase[T] {
	return &NodeBase[T]{
		Children: nil,
		Flags:    TerminalFlag(terminated),
	}
}

func NewBaseNode[T MoveLike](parent *NodeBase[T], move T, terminated bool) *NodeBase[T] {
	return &NodeBase[T]{
		Move:     move,
		Children: nil,
		Parent:   parent,
		Flags:    TerminalFlag(terminated),
	}
}

func TerminalFlag(terminal bool) uint32 {
	flag := uint32(0)
	if terminal {
		flag |= TerminalMask
	}
	return flag
}

// Reads the node flags, and returns whether the node is terminal
func (node *NodeBase[T]) Terminal() bool {
	return atomic.LoadUint32(&node.Flags)&TerminalMask == TerminalMask
}

// Same as asking if the node has children
func (node *NodeBase[T]) Expanded() bool {
	return atomic.LoadUint32(&node.Flags)&ExpandedMask == ExpandedMask
}

// See if the node is currently being expanded by another worker
func (node *NodeBase[T]) Expanding() bool {
	return atomic.LoadUint32(&node.Flags)&ExpandingMask == ExpandingMask
}

// Should be called when we want to expand this node, if it's possible,
// sets the internal flag to 'currently expanding'
func (node *NodeBase[T]) CanExpand() bool {
	return atomic.CompareAndSwapUint32(&node.Flags, canExpand, ExpandingMask)
}

// After a successful 'CanExpand' call, use this function to set
// the state of the node to 'expanded'
func (node *NodeBase[T]) FinishExpanding() {
	atomic.StoreUint32(&node.Flags, ExpandedMask)
}
