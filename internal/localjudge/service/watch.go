package service

import (
	"context"

	"kat/internal/localjudge/result"
	"kat/pkg/utils/logger"

	"go.uber.org/zap"
)

// RunFunc receives the outcome of every run in watch mode.
type RunFunc func(summary result.Summary, err error)

// Watch runs the tests once and then again after each change notification,
// until ctx is cancelled or changes is closed. Notifications that arrive while
// a run is in progress are coalesced into a single follow-up run. Errors that
// prevent testing, such as a compile failure, are handed to onRun and do not
// stop watching.
func (s *Service) Watch(ctx context.Context, req Request, changes <-chan struct{}, onRun RunFunc) error {
	run := func() {
		summary, err := s.Execute(ctx, req)
		if onRun != nil {
			onRun(summary, err)
		}
	}

	run()
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			drain(changes)
			logger.Debug(ctx, "solution changed, testing again", zap.String("solution", req.SolutionPath))
			run()
		}
	}
}

func drain(changes <-chan struct{}) {
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
