package service

import (
	"context"
	"testing"

	"kat/internal/localjudge/result"
	"kat/internal/testutil"
)

func TestWatchRunsOnceThenOnEachChange(t *testing.T) {
	dir, tests := setupProblem(t, map[string][2]string{"1": {"a", "a"}})
	fake := &fakeRunner{runs: map[uint64]result.ExecutionResult{1: {ExitSuccess: true, Stdout: []byte("a")}}}
	svc := NewService(fake)

	changes := make(chan struct{}, 4)
	runs := 0
	err := svc.Watch(context.Background(), catRequest(dir, tests), changes, func(summary result.Summary, err error) {
		runs++
		testutil.MustNoError(t, err)
		testutil.AssertTrue(t, summary.AllPassed, "expected pass")
		if runs == 1 {
			changes <- struct{}{}
			return
		}
		if runs == 2 {
			// a burst of notifications collapses into one more run
			changes <- struct{}{}
			changes <- struct{}{}
			changes <- struct{}{}
			return
		}
		close(changes)
	})
	testutil.MustNoError(t, err)
	testutil.AssertEqual(t, runs, 3)
}

func TestWatchStopsOnCancel(t *testing.T) {
	dir, tests := setupProblem(t, map[string][2]string{"1": {"a", "a"}})
	fake := &fakeRunner{runs: map[uint64]result.ExecutionResult{1: {ExitSuccess: true, Stdout: []byte("a")}}}
	ctx, cancel := context.WithCancel(context.Background())

	runs := 0
	err := NewService(fake).Watch(ctx, catRequest(dir, tests), make(chan struct{}), func(result.Summary, error) {
		runs++
		cancel()
	})
	testutil.MustNoError(t, err)
	testutil.AssertEqual(t, runs, 1)
}
