package runner

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"time"

	"kat/internal/localjudge/result"
	"kat/internal/localjudge/spec"
	appErr "kat/pkg/errors"
	"kat/pkg/utils/logger"

	"go.uber.org/zap"
)

// ProcessRunner runs compile and execute commands as local child processes.
// It applies no time limit of its own; the judge enforces limits remotely.
type ProcessRunner struct{}

// NewProcessRunner creates a runner backed by os/exec.
func NewProcessRunner() *ProcessRunner {
	return &ProcessRunner{}
}

// Compile runs the compile command once and captures its combined output.
// A non-zero exit status is reported through CompileResult.OK, not as an error.
func (r *ProcessRunner) Compile(ctx context.Context, req CompileRequest) (result.CompileResult, error) {
	if err := validateSpec(req.RunSpec); err != nil {
		return result.CompileResult{}, err
	}

	cmd := newCommand(ctx, req.RunSpec)
	start := time.Now()
	output, err := cmd.CombinedOutput()
	res := result.CompileResult{
		OK:       err == nil,
		Output:   string(output),
		Duration: time.Since(start),
	}
	logger.Debug(ctx, "compile finished",
		zap.Strings("cmd", req.RunSpec.Cmd),
		zap.Bool("ok", res.OK),
		zap.Duration("duration", res.Duration))
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	res.ExitCode = -1
	return res, startError(err, req.RunSpec.Cmd[0])
}

// Run executes one test with its input file attached as standard input.
// Standard output and standard error are captured separately.
func (r *ProcessRunner) Run(ctx context.Context, req RunRequest) (result.ExecutionResult, error) {
	if err := validateSpec(req.RunSpec); err != nil {
		return result.ExecutionResult{}, err
	}

	input, err := os.Open(req.RunSpec.StdinPath)
	if err != nil {
		return result.ExecutionResult{}, appErr.Wrapf(err, appErr.InputOpenFailed, "open test input %s failed: %v", req.RunSpec.StdinPath, err).
			WithDetail("test_id", req.TestID)
	}
	defer func() { _ = input.Close() }()

	var stdout, stderr bytes.Buffer
	cmd := newCommand(ctx, req.RunSpec)
	cmd.Stdin = input
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	res := result.ExecutionResult{
		ExitSuccess: err == nil,
		Stdout:      stdout.Bytes(),
		Stderr:      stderr.Bytes(),
		Duration:    time.Since(start),
	}
	logger.Debug(ctx, "execute finished",
		zap.Uint64("test_id", req.TestID),
		zap.Bool("exit_success", res.ExitSuccess),
		zap.Duration("duration", res.Duration))
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	res.ExitCode = -1
	return res, startError(err, req.RunSpec.Cmd[0])
}

func newCommand(ctx context.Context, rs spec.RunSpec) *exec.Cmd {
	cmd := exec.CommandContext(ctx, rs.Cmd[0], rs.Cmd[1:]...)
	cmd.Dir = rs.WorkDir
	if len(rs.Env) > 0 {
		cmd.Env = append(os.Environ(), rs.Env...)
	}
	return cmd
}

func validateSpec(rs spec.RunSpec) error {
	if len(rs.Cmd) == 0 || rs.Cmd[0] == "" {
		return appErr.New(appErr.CommandEmpty)
	}
	return nil
}

// startError separates a missing program from other spawn failures.
func startError(err error, program string) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return appErr.Wrapf(err, appErr.CommandNotFound, "could not find command: %s", program).
			WithDetail("program", program)
	}
	return appErr.Wrapf(err, appErr.InternalError, "failed to execute %s: %v", program, err).
		WithDetail("program", program)
}
