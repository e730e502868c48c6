package mcts

import "math"

// UCB1 selection: wins/visits + C * sqrt(ln(parent_visits)/visits).
// Unvisited children take priority, so every legal move gets tried at
// least once before refinement. Since the game is assumed zero-sum,
// each node's outcome is stored from the perspective of the player
// who moved into it, which is the player choosing at 'parent'.
func UCB1[T MoveLike](parent *NodeBase[T]) *NodeBase[T] {
	if parent.Terminal() {
		return parent
	}

	best := float64(-1)
	index := 0
	lnParentVisits := math.Log(float64(parent.Visits()))
	var child *NodeBase[T]
	var actualVisits, visits, vl int32
	var wins Result

	for i := 0; i < len(parent.Children); i++ {
		child = &parent.Children[i]
		visits, vl = child.GetVvl()
		actualVisits = visits - vl

		// Pick the unvisited one
		if actualVisits == 0 {
			return child
		}

		wins = child.Outcomes()

		ucb1 := float64(wins)/float64(visits) +
			ExplorationParam*math.Sqrt(lnParentVisits/float64(visits))

		if ucb1 > best {
			best = ucb1
			index = i
		}
	}

	return &parent.Children[index]
}
