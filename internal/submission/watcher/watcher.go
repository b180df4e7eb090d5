// Package watcher follows a submission on the judge until it reaches a
// terminal status.
package watcher

import (
	"context"
	"time"

	"kat/internal/submission/parser"
	"kat/internal/submission/status"
	"kat/pkg/utils/logger"

	"go.uber.org/zap"
)

// DefaultPollInterval throttles requests to the judge.
const DefaultPollInterval = 250 * time.Millisecond

// Fetcher returns one fresh snapshot per call.
type Fetcher interface {
	Fetch(ctx context.Context, statusURL string) (parser.Snapshot, error)
}

// Progress is what the renderer sees after each poll.
type Progress struct {
	Status   status.Status
	Snapshot parser.Snapshot
	// Accepted counts test entries seen accepted so far.
	Accepted int
	Total    int
	// Settled holds entries that settled on this poll only.
	Settled []parser.TestEntry
}

// Result is the terminal outcome of a watch.
type Result struct {
	Status   status.Status
	Snapshot parser.Snapshot
	Polls    int
	Message  string
}

// Renderer displays progress. Update is called once per poll and Finish
// exactly once with the final summary message.
type Renderer interface {
	Update(p Progress)
	Finish(res Result)
}

// Watcher drives a poll, classify, render, sleep loop.
type Watcher struct {
	fetcher  Fetcher
	renderer Renderer
	interval time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewWatcher creates a watcher polling at DefaultPollInterval.
func NewWatcher(fetcher Fetcher, renderer Renderer) *Watcher {
	if renderer == nil {
		renderer = nopRenderer{}
	}
	return &Watcher{
		fetcher:  fetcher,
		renderer: renderer,
		interval: DefaultPollInterval,
		sleep:    sleepContext,
	}
}

// SetInterval overrides the delay between polls.
func (w *Watcher) SetInterval(d time.Duration) {
	if d > 0 {
		w.interval = d
	}
}

// SetSleep replaces the delay function, mainly for tests.
func (w *Watcher) SetSleep(sleep func(ctx context.Context, d time.Duration) error) {
	if sleep != nil {
		w.sleep = sleep
	}
}

// Watch polls statusURL until the judge reports a terminal status. A fetch or
// parse error ends the watch immediately; there is no retry.
func (w *Watcher) Watch(ctx context.Context, statusURL string) (Result, error) {
	settled := make(map[uint64]status.TestOutcome)
	accepted := 0
	polls := 0

	for {
		snap, err := w.fetcher.Fetch(ctx, statusURL)
		if err != nil {
			return Result{Polls: polls}, err
		}
		polls++
		if snap.SubmissionID != "" {
			ctx = logger.WithSubmissionID(ctx, snap.SubmissionID)
		}

		st := status.Classify(snap.RawStatus)
		progress := Progress{Status: st, Snapshot: snap, Total: len(snap.Tests)}
		for _, entry := range snap.Tests {
			if _, seen := settled[entry.Ordinal]; seen {
				continue
			}
			outcome := status.ClassifyTest(entry.RawStatus)
			if outcome == status.TestPending {
				continue
			}
			settled[entry.Ordinal] = outcome
			if outcome == status.TestAccepted {
				accepted++
			}
			progress.Settled = append(progress.Settled, entry)
		}
		progress.Accepted = accepted
		w.renderer.Update(progress)
		logger.Debug(ctx, "submission status classified",
			zap.String("raw_status", snap.RawStatus),
			zap.String("status", st.String()),
			zap.Int("accepted", accepted),
			zap.Int("poll", polls))

		if st.IsTerminal() {
			res := Result{Status: st, Snapshot: snap, Polls: polls, Message: FinalMessage(st, snap)}
			w.renderer.Finish(res)
			return res, nil
		}
		if err := w.sleep(ctx, w.interval); err != nil {
			return Result{Status: st, Snapshot: snap, Polls: polls}, err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type nopRenderer struct{}

func (nopRenderer) Update(Progress) {}
func (nopRenderer) Finish(Result)   {}
