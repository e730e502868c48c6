package mcts

import (
	"context"
	"testing"
	"time"
)

func TestLimiterCycles(t *testing.T) {
	l := NewLimiter()
	l.SetLimits(DefaultLimits().SetCycles(10))
	l.Reset()

	if !l.Ok(1, 9) {
		t.Error("limiter should allow the 10th cycle")
	}
	if l.Ok(1, 10) {
		t.Error("limiter should stop after 10 cycles")
	}

	l.EvaluateStopReason(1, 10)
	if l.StopReason() != StopCycles {
		t.Errorf("expected StopCycles, got %s", l.StopReason())
	}
}

func TestLimiterNodes(t *testing.T) {
	l := NewLimiter()
	l.SetLimits(DefaultLimits().SetNodes(100))
	l.Reset()

	if !l.Ok(99, 0) {
		t.Error("limiter should allow searching below the node limit")
	}
	if l.Ok(100, 0) {
		t.Error("limiter should stop at the node limit")
	}

	l.EvaluateStopReason(100, 0)
	if l.StopReason() != StopNodes {
		t.Errorf("expected StopNodes, got %s", l.StopReason())
	}
}

func TestLimiterMovetime(t *testing.T) {
	l := NewLimiter()
	l.SetLimits(DefaultLimits().SetMovetime(20))
	l.Reset()

	if !l.Ok(1, 1) {
		t.Error("limiter should allow searching right after reset")
	}

	time.Sleep(30 * time.Millisecond)
	if l.Ok(1, 1) {
		t.Error("limiter should stop once the movetime passed")
	}

	l.EvaluateStopReason(1, 1)
	if l.StopReason() != StopMovetime {
		t.Errorf("expected StopMovetime, got %s", l.StopReason())
	}
}

func TestLimiterInfinite(t *testing.T) {
	l := NewLimiter()
	l.SetLimits(DefaultLimits())
	l.Reset()

	if !l.Ok(1<<30, 1<<30) {
		t.Error("infinite search should ignore size and cycle counts")
	}

	l.SetStop(true)
	if l.Ok(1, 1) {
		t.Error("the stop flag must always be honored")
	}

	l.EvaluateStopReason(1, 1)
	if l.StopReason() != StopInterrupt {
		t.Errorf("expected StopInterrupt, got %s", l.StopReason())
	}
}

func TestLimiterContextCancel(t *testing.T) {
	l := NewLimiter()
	l.SetLimits(DefaultLimits())
	l.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	l.SetContext(ctx)

	if !l.Ok(1, 1) {
		t.Error("limiter should allow searching before cancellation")
	}

	cancel()
	if l.Ok(1, 1) {
		t.Error("limiter should stop on context cancellation")
	}

	l.EvaluateStopReason(1, 1)
	if l.StopReason() != StopInterrupt {
		t.Errorf("expected StopInterrupt, got %s", l.StopReason())
	}
}

func TestSetCyclesClampsToOne(t *testing.T) {
	for _, cycles := range []int{0, -5} {
		limits := DefaultLimits().SetCycles(cycles)
		if limits.Cycles != 1 {
			t.Errorf("SetCycles(%d) = %d, want 1", cycles, limits.Cycles)
		}
	}
}

func TestStopReasonString(t *testing.T) {
	cases := []struct {
		reason StopReason
		want   string
	}{
		{StopNone, "None"},
		{StopCycles, "Cycles"},
		{StopInterrupt | StopMovetime, "Interrupt|Movetime"},
	}
	for _, c := range cases {
		if got := c.reason.String(); got != c.want {
			t.Errorf("%d.String() = %q, want %q", c.reason, got, c.want)
		}
	}
}
