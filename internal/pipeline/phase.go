package pipeline

import (
	"context"
	"fmt"
	"sync"
)

// PhaseFunc is one sealing phase. It must call done exactly once,
// synchronously or asynchronously, to signal completion; the sync.Once
// guard in runPhase makes extra calls harmless no-ops.
type PhaseFunc func(done func(error))

// runPhase executes one phase and blocks until its completion callback
// fires or the context is cancelled. Cancellation is only honored at phase
// boundaries; a phase itself always runs to completion.
func runPhase(ctx context.Context, stage Stage, fn PhaseFunc) error {
	errCh := make(chan error, 1)
	var once sync.Once
	done := func(err error) {
		once.Do(func() { errCh <- err })
	}
	fn(done)
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%s phase: %w", stage, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
