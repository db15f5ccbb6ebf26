package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRunPhaseSuccess(t *testing.T) {
	if err := runPhase(context.Background(), StageLoad, func(done func(error)) {
		done(nil)
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunPhaseWrapsError(t *testing.T) {
	boom := errors.New("boom")
	err := runPhase(context.Background(), StageResolve, func(done func(error)) {
		done(boom)
	})
	if !errors.Is(err, boom) {
		t.Fatalf("cause must be preserved: %v", err)
	}
	if !strings.Contains(err.Error(), "resolve phase") {
		t.Fatalf("error must name the phase: %v", err)
	}
}

func TestRunPhaseDoubleDoneIsHarmless(t *testing.T) {
	err := runPhase(context.Background(), StageSweep, func(done func(error)) {
		done(nil)
		done(errors.New("late"))
	})
	if err != nil {
		t.Fatalf("only the first completion counts: %v", err)
	}
}

func TestRunPhaseHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := runPhase(ctx, StageWrite, func(done func(error)) {
		// completion never signalled
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestTimings(t *testing.T) {
	var tm Timings
	if tm.Has(StageLoad) {
		t.Fatalf("empty timings must report nothing")
	}
	tm.Set(StageLoad, 10*time.Millisecond)
	tm.Set(StageResolve, 20*time.Millisecond)
	if !tm.Has(StageLoad) || tm.Duration(StageResolve) != 20*time.Millisecond {
		t.Fatalf("timings lost: %+v", tm)
	}
	if got := tm.Sum(StageLoad, StageResolve, StageWrite); got != 30*time.Millisecond {
		t.Fatalf("sum = %v", got)
	}
}
