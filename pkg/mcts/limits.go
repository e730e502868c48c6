package mcts

import (
	"encoding/json"
	"math"
	"strings"
)

// Search limits, any combination may be set at once, the first one
// reached stops the search.
type Limits struct {
	Nodes    uint32
	Cycles   uint32
	Movetime int
	Infinite bool
	NThreads int
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const (
	DefaultNodeLimit     uint32 = math.MaxUint32
	DefaultCyclesLimit   uint32 = math.MaxUint32
	DefaultMovetimeLimit int    = -1
)

func DefaultLimits() *Limits {
	return &Limits{
		Nodes:    DefaultNodeLimit,
		Cycles:   DefaultCyclesLimit,
		Movetime: DefaultMovetimeLimit,
		Infinite: true,
		NThreads: 1,
	}
}

// Set the maximum number of nodes the tree can grow to
func (l *Limits) SetNodes(nodes uint32) *Limits {
	l.Nodes = nodes
	l.Infinite = false
	return l
}

// Set the number of search cycles (full selection-rollout-backpropagation
// iterations). Values below 1 clamp to 1, so at least one full simulation
// always runs and a move can be produced.
func (l *Limits) SetCycles(cycles int) *Limits {
	if cycles < 1 {
		cycles = 1
	}
	l.Cycles = uint32(cycles)
	l.Infinite = false
	return l
}

// Set the maximum time to think, in milliseconds
func (l *Limits) SetMovetime(movetime int) *Limits {
	l.Movetime = movetime
	l.Infinite = false
	return l
}

func (l *Limits) SetInfinite(infinite bool) *Limits {
	l.Infinite = infinite
	return l
}

func (l *Limits) SetThreads(threads int) *Limits {
	l.NThreads = max(threads, 1)
	return l
}
