package problem

import (
	"context"
	"os"
	"path/filepath"

	appErr "kat/pkg/errors"
	"kat/pkg/utils/logger"

	"go.uber.org/zap"
)

// Catalog answers whether a problem exists on the judge.
type Catalog interface {
	ProblemExists(ctx context.Context, problemID string) (bool, error)
}

// SetupRequest describes one "kat get".
type SetupRequest struct {
	ProblemID  string
	ParentDir  string
	TestDir    string
	SamplesURL string
	// TemplatePath is optional.
	TemplatePath string
}

// SetupResult reports what was created.
type SetupResult struct {
	Dir          string
	Samples      int
	SolutionPath string
}

// Setup creates a problem directory with its sample tests and template. The
// problem must exist on the judge and must not have been fetched already.
func Setup(ctx context.Context, catalog Catalog, client Getter, req SetupRequest) (SetupResult, error) {
	dir := filepath.Join(req.ParentDir, req.ProblemID)
	res := SetupResult{Dir: dir}
	if _, err := os.Stat(dir); err == nil {
		return res, appErr.Newf(appErr.ProblemAlreadyExists, "looks like the problem %s has already been fetched", req.ProblemID)
	}

	exists, err := catalog.ProblemExists(ctx, req.ProblemID)
	if err != nil {
		return res, err
	}
	if !exists {
		return res, appErr.Newf(appErr.ProblemNotFound, "problem %s does not exist", req.ProblemID)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return res, appErr.Wrapf(err, appErr.IOFailed, "create problem directory failed: %v", err)
	}

	res.Samples, err = FetchSamples(ctx, client, req.SamplesURL, filepath.Join(dir, req.TestDir))
	if err != nil {
		return res, err
	}
	if req.TemplatePath != "" {
		res.SolutionPath, err = CopyTemplate(req.TemplatePath, dir, req.ProblemID)
		if err != nil {
			return res, err
		}
	} else {
		logger.Warn(ctx, "no template configured for language")
	}
	logger.Info(ctx, "problem initialised",
		zap.String("dir", dir),
		zap.Int("samples", res.Samples),
		zap.String("solution", res.SolutionPath))
	return res, nil
}
