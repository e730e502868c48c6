package mcts

import (
	"math"
	"time"
)

// Main thread id, which has some privileges, like calling the listener during the search
const mainThreadId = 0

// Virtual loss value, used in multithreaded search to discourage several
// workers from descending into the same node simultaneously
const VirtualLoss int32 = 2

// Exploration parameter used in the UCB1 formula, higher values increase
// exploration, lower values increase exploitation. sqrt(2) is the
// theoretical value, tune it per game.
var ExplorationParam float64 = math.Sqrt2

// Set the exploration parameter used in the UCB1 formula
func SetExplorationParam(c float64) {
	ExplorationParam = max(0.0, c)
}

var SeedGeneratorFn SeedGeneratorFnType = func() int64 {
	return time.Now().UnixNano()
}

// Set custom seed generator function for the rollout random number
// generators, by default uses current time in nanoseconds. Tests set
// a constant here to make playouts reproducible.
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}

const (
	// When choosing the best child, pick the one with most visits
	// (the robust child), this is the go-to method for MCTS.
	// Ties are broken by higher accumulated outcome, then by the
	// first-generated move, so the choice is deterministic.
	BestChildMostVisits BestChildPolicy = iota

	// Experimental: choose the child with the best win rate
	BestChildWinRate
)
