package runner

import (
	"context"

	"kat/internal/localjudge/result"
	"kat/internal/localjudge/spec"
)

// CompileRequest describes one compilation task.
type CompileRequest struct {
	ProblemID string
	RunSpec   spec.RunSpec
}

// RunRequest describes one execution task.
type RunRequest struct {
	ProblemID string
	TestID    uint64
	RunSpec   spec.RunSpec
}

// Runner orchestrates compile and run workflows.
type Runner interface {
	Compile(ctx context.Context, req CompileRequest) (result.CompileResult, error)
	Run(ctx context.Context, req RunRequest) (result.ExecutionResult, error)
}
