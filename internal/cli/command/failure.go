package command

import (
	"context"
	"fmt"
	"io"

	appErr "kat/pkg/errors"
	"kat/pkg/utils/logger"

	"go.uber.org/zap"
)

// ReportFailure prints err for the user and returns the process exit code.
// The error's details and capture stack go to the debug log, visible with -v.
func ReportFailure(ctx context.Context, stderr io.Writer, err error) int {
	if err == nil {
		return appErr.Success.ExitCode()
	}
	e := appErr.GetError(err)
	logger.Debug(ctx, "command failed",
		zap.Int("code", int(e.Code)),
		zap.Any("details", e.Details),
		zap.String("stack", e.Stack),
		zap.Error(err))
	_ = logger.Sync()
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return e.Code.ExitCode()
}
