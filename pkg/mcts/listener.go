package mcts

// Current snapshot of the search, handed to the listener callbacks
type ListenerTreeStats[T MoveLike] struct {
	BestMove   T
	Eval       float64
	Pv         []T
	Maxdepth   int
	Cycles     int
	TimeMs     int
	Cps        uint32
	Size       uint32
	StopReason StopReason
}

func toListenerStats[T MoveLike](tree *MCTS[T]) ListenerTreeStats[T] {
	stats := ListenerTreeStats[T]{
		Maxdepth:   tree.MaxDepth(),
		Cycles:     int(tree.Root.Visits()),
		TimeMs:     int(tree.Limiter.Elapsed()),
		Cps:        tree.Cps(),
		Size:       tree.Size(),
		StopReason: tree.Limiter.StopReason(),
	}

	if best := tree.BestChild(tree.Root, BestChildMostVisits); best != nil {
		pv, _, _ := tree.Pv(tree.Root, BestChildMostVisits, false)
		stats.BestMove = best.Move
		stats.Eval = float64(best.AvgOutcome())
		stats.Pv = pv
	}

	return stats
}

// Listener function callback, receives the current tree statistics
type ListenerFunc[T MoveLike] func(ListenerTreeStats[T])

type StatsListener[T MoveLike] struct {
	// called when 'max depth' increases
	onDepth ListenerFunc[T]

	// called every N full cycles
	onCycle ListenerFunc[T]
	nCycles int

	// called when the search stops (either by limiter or 'stop' signal)
	onStop ListenerFunc[T]
}

func NewStatsListener[T MoveLike]() StatsListener[T] {
	return StatsListener[T]{nCycles: 1}
}

func newStatsListener[T MoveLike]() *StatsListener[T] {
	return &StatsListener[T]{nCycles: 1}
}

// Attach a new on-max-depth-change callback, called only by the main search
// thread, so no synchronization is needed in it
func (listener *StatsListener[T]) OnDepth(onDepth ListenerFunc[T]) *StatsListener[T] {
	listener.onDepth = onDepth
	return listener
}

// Attach a new on-cycle callback, this will slow down the search because
// of the pv evaluation, so set a generous cycle interval
func (listener *StatsListener[T]) OnCycle(onCycle ListenerFunc[T]) *StatsListener[T] {
	listener.onCycle = onCycle
	return listener
}

func (listener *StatsListener[T]) invokeCycle(tree *MCTS[T]) {
	if listener.onCycle != nil && tree.Root.Visits()%int32(listener.nCycles) == 0 {
		listener.onCycle(toListenerStats(tree))
	}
}

func (listener *StatsListener[T]) SetCycleInterval(n int) *StatsListener[T] {
	if n < 1 {
		n = 1
	}
	listener.nCycles = n
	return listener
}

// Attach an 'on search end' callback, called once by the main thread,
// makes 'StopReason' available in the stats
func (listener *StatsListener[T]) OnStop(onStop ListenerFunc[T]) *StatsListener[T] {
	listener.onStop = onStop
	return listener
}
