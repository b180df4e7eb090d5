// Package service runs a solution against its local tests.
package service

import (
	"context"
	"os"

	"kat/internal/localjudge/diff"
	"kat/internal/localjudge/result"
	"kat/internal/localjudge/runner"
	"kat/internal/localjudge/spec"
	"kat/internal/localjudge/testcase"
	appErr "kat/pkg/errors"
	"kat/pkg/utils/logger"

	"go.uber.org/zap"
)

// Request is one local test invocation.
type Request struct {
	ProblemID    string
	ProblemDir   string
	SolutionPath string
	Command      spec.CommandSpec
	Tests        []testcase.TestCase
	Env          []string
}

// Reporter receives progress while the engine runs. Implementations must not
// block for long; tests run strictly one after another.
type Reporter interface {
	CompileStarted(problemID string)
	CompileFinished(res result.CompileResult)
	TestFinished(res result.TestcaseResult)
}

// Service is the local test engine.
type Service struct {
	runner   runner.Runner
	reporter Reporter
}

// NewService creates an engine backed by runner.
func NewService(r runner.Runner) *Service {
	return &Service{runner: r, reporter: nopReporter{}}
}

// SetReporter injects a reporter for incremental output.
func (s *Service) SetReporter(reporter Reporter) {
	if reporter == nil {
		reporter = nopReporter{}
	}
	s.reporter = reporter
}

// Execute compiles the solution when the language needs it and then runs every
// test in ascending id order. A compile failure aborts before any test runs;
// a failing test never stops the ones after it. The returned error is non-nil
// only for failures that prevent testing; failed tests are reported through
// Summary.AllPassed.
func (s *Service) Execute(ctx context.Context, req Request) (result.Summary, error) {
	summary := result.Summary{ProblemID: req.ProblemID}
	if err := validateRequest(req); err != nil {
		return summary, err
	}
	if s.runner == nil {
		return summary, appErr.New(appErr.InternalError).WithMessage("runner is not initialized")
	}

	paths := spec.NewPathContext(req.ProblemDir, req.SolutionPath)
	executeCmd, err := runner.BuildCommand(req.Command.ExecuteTemplate, paths)
	if err != nil {
		return summary, err
	}

	if req.Command.NeedsCompile() {
		compileRes, err := s.compile(ctx, req, paths)
		summary.Compile = compileRes
		if err != nil {
			return summary, err
		}
	}

	summary.Tests = make([]result.TestcaseResult, 0, len(req.Tests))
	summary.AllPassed = true
	for _, tc := range req.Tests {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		res := s.runTest(ctx, req, executeCmd, tc)
		summary.Tests = append(summary.Tests, res)
		summary.TotalTime += res.Duration
		if !res.Passed() {
			summary.AllPassed = false
			logger.Info(ctx, "test failed",
				zap.Uint64("test_id", tc.ID),
				zap.String("verdict", string(res.Verdict)),
				zap.Error(res.Err))
		}
		s.reporter.TestFinished(res)
	}
	logger.Debug(ctx, "local tests finished",
		zap.Int("tests", len(summary.Tests)),
		zap.Bool("all_passed", summary.AllPassed),
		zap.Duration("total_time", summary.TotalTime))
	return summary, nil
}

func (s *Service) compile(ctx context.Context, req Request, paths spec.PathContext) (*result.CompileResult, error) {
	cmd, err := runner.BuildCommand(req.Command.CompileTemplate, paths)
	if err != nil {
		return nil, err
	}
	s.reporter.CompileStarted(req.ProblemID)
	res, err := s.runner.Compile(ctx, runner.CompileRequest{
		ProblemID: req.ProblemID,
		RunSpec:   spec.RunSpec{WorkDir: req.ProblemDir, Cmd: cmd, Env: req.Env},
	})
	s.reporter.CompileFinished(res)
	if err != nil {
		logger.Error(ctx, "compile command failed", zap.Strings("cmd", cmd), zap.Error(err))
		return &res, err
	}
	if !res.OK {
		return &res, appErr.Newf(appErr.CompilationError, "failed to compile %s", req.SolutionPath).
			WithDetail("exit_code", res.ExitCode).
			WithDetail("output", res.Output)
	}
	return &res, nil
}

func (s *Service) runTest(ctx context.Context, req Request, cmd []string, tc testcase.TestCase) result.TestcaseResult {
	res := result.TestcaseResult{TestID: tc.ID, Name: tc.Name()}

	execRes, err := s.runner.Run(ctx, runner.RunRequest{
		ProblemID: req.ProblemID,
		TestID:    tc.ID,
		RunSpec: spec.RunSpec{
			WorkDir:   req.ProblemDir,
			Cmd:       cmd,
			Env:       req.Env,
			StdinPath: tc.InputPath,
		},
	})
	res.Duration = execRes.Duration
	if err != nil {
		res.Verdict = result.VerdictSE
		res.Err = err
		return res
	}
	if !execRes.ExitSuccess {
		res.Verdict = result.VerdictRE
		res.Actual = diff.Decode(execRes.Stdout)
		res.Stderr = diff.Decode(execRes.Stderr)
		res.Err = appErr.Newf(appErr.RuntimeError, "test %s exited with code %d", tc.Name(), execRes.ExitCode).
			WithDetail("exit_code", execRes.ExitCode)
		return res
	}

	expected, err := os.ReadFile(tc.ExpectedOutputPath)
	if err != nil {
		res.Verdict = result.VerdictSE
		res.Err = appErr.Wrapf(err, appErr.AnswerReadError, "read expected output %s failed: %v", tc.ExpectedOutputPath, err)
		return res
	}

	outcome := diff.Compare(execRes.Stdout, expected)
	if outcome.Match {
		res.Verdict = result.VerdictAC
		return res
	}
	res.Verdict = result.VerdictWA
	res.Expected = outcome.Expected
	res.Actual = outcome.Actual
	res.Stderr = diff.Decode(execRes.Stderr)
	res.Err = appErr.Newf(appErr.WrongAnswer, "test %s failed", tc.Name())
	return res
}

func validateRequest(req Request) error {
	if req.ProblemDir == "" {
		return appErr.ValidationError("problem_dir", "required")
	}
	if req.SolutionPath == "" {
		return appErr.ValidationError("solution_path", "required")
	}
	if req.Command.ExecuteTemplate == "" {
		return appErr.Newf(appErr.CommandTemplateMissing, "no execute command configured for language %q", req.Command.Language)
	}
	if len(req.Tests) == 0 {
		return appErr.New(appErr.NoMatchingTests)
	}
	return nil
}

type nopReporter struct{}

func (nopReporter) CompileStarted(string)                {}
func (nopReporter) CompileFinished(result.CompileResult) {}
func (nopReporter) TestFinished(result.TestcaseResult)   {}

