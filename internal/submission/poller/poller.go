// Package poller fetches and parses a submission's status page.
package poller

import (
	"context"

	httpclient "kat/internal/cli/http"
	"kat/internal/submission/parser"
	appErr "kat/pkg/errors"
	"kat/pkg/utils/logger"

	"go.uber.org/zap"
)

// Transport is the part of the judge client the poller needs.
type Transport interface {
	Get(ctx context.Context, url string) (httpclient.ResponseInfo, error)
}

// Poller performs one status fetch per call. It does not retry; the watcher
// owns the polling cadence.
type Poller struct {
	transport Transport
}

// New creates a poller that reuses transport for every fetch, so the judge
// session cookie survives across polls.
func New(transport Transport) *Poller {
	return &Poller{transport: transport}
}

// Fetch GETs the status URL and parses the body. A non-2xx response is an
// error; so is any page the parser cannot fully read.
func (p *Poller) Fetch(ctx context.Context, statusURL string) (parser.Snapshot, error) {
	resp, err := p.transport.Get(ctx, statusURL)
	if err != nil {
		return parser.Snapshot{}, appErr.Wrapf(err, appErr.StatusFetchFailed, "fetch submission status failed: %v", err)
	}
	if !resp.IsSuccess() {
		return parser.Snapshot{}, appErr.Newf(appErr.StatusFetchFailed, "fetch submission status failed, status code: %d", resp.StatusCode).
			WithDetail("url", statusURL)
	}
	snap, err := parser.Parse(resp.Body)
	if err != nil {
		return parser.Snapshot{}, err
	}
	logger.Debug(ctx, "submission polled",
		zap.String("submission_id", snap.SubmissionID),
		zap.String("status", snap.RawStatus),
		zap.Int("tests", len(snap.Tests)))
	return snap, nil
}
