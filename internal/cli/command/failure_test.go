package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kat/internal/testutil"
	appErr "kat/pkg/errors"
	"kat/pkg/utils/logger"
)

func TestReportFailure(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "kat.log")
	testutil.MustNoError(t, logger.Init(logger.Config{Level: "debug", Format: "json", OutputPath: logPath}))

	var stderr bytes.Buffer
	err := fmt.Errorf("submit: %w", appErr.Newf(appErr.SubmitFailed, "submission rejected").WithDetail("status_code", 400))
	code := ReportFailure(context.Background(), &stderr, err)

	testutil.AssertEqual(t, code, 5)
	testutil.AssertEqual(t, stderr.String(), "Error: submit: submission rejected\n")
	data, readErr := os.ReadFile(logPath)
	testutil.MustNoError(t, readErr)
	log := string(data)
	testutil.AssertTrue(t, strings.Contains(log, `"status_code":400`), log)
	testutil.AssertTrue(t, strings.Contains(log, `"code":14100`), log)
	testutil.AssertTrue(t, strings.Contains(log, "TestReportFailure"), "stack should name the caller: "+log)
}

func TestReportFailurePlainError(t *testing.T) {
	var stderr bytes.Buffer
	testutil.AssertEqual(t, ReportFailure(context.Background(), &stderr, errors.New("unknown flag")), 1)
	testutil.AssertEqual(t, stderr.String(), "Error: unknown flag\n")
	testutil.AssertEqual(t, ReportFailure(context.Background(), &stderr, nil), 0)
}
