package errors_test

import (
	"errors"
	"fmt"
	"testing"

	. "kat/pkg/errors"
)

func TestErrorCode_Message(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{Success, "Success"},
		{ProblemNotFound, "Problem not found"},
		{TestFilesMismatch, "Input and answer file counts differ"},
		{ErrorCode(99999), "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.code.Message(); got != tt.want {
				t.Errorf("Message() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorCode_ExitCode(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{Success, 0},
		{TestsFailed, 1},
		{InternalError, 1},
		{ConfigNotFound, 2},
		{CredentialsMissing, 2},
		{ProblemNotFound, 3},
		{NoMatchingTests, 3},
		{CompilationError, 4},
		{CommandNotFound, 4},
		{SubmitFailed, 5},
		{SubmitNotConfirmed, 5},
	}

	for _, tt := range tests {
		t.Run(tt.code.Message(), func(t *testing.T) {
			if got := tt.code.ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ProblemNotFound, "problem %s does not exist", "hello")

	if err.Code != ProblemNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ProblemNotFound)
	}
	if err.Error() != "problem hello does not exist" {
		t.Errorf("Error() = %v", err.Error())
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("connection refused")
	wrappedErr := Wrapf(originalErr, RequestFailed, "get failed: %v", originalErr)

	if wrappedErr.Code != RequestFailed {
		t.Errorf("Code = %v, want %v", wrappedErr.Code, RequestFailed)
	}
	if !errors.Is(wrappedErr, originalErr) {
		t.Error("wrapped error should match the original")
	}
	if Wrap(nil, RequestFailed) != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestValidationError(t *testing.T) {
	err := ValidationError("pollInterval", "must not be negative")

	if err.Details["field"] != "pollInterval" {
		t.Error("Field detail not set correctly")
	}
	if err.Error() != "pollInterval: must not be negative" {
		t.Errorf("Error() = %v", err.Error())
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "nil error", err: nil, want: Success},
		{name: "custom error", err: New(LoginFailed), want: LoginFailed},
		{name: "wrapped by fmt", err: fmt.Errorf("outer: %w", New(LoginFailed)), want: LoginFailed},
		{name: "standard error", err: errors.New("standard error"), want: InternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ProblemAlreadyExists)

	if !Is(err, ProblemAlreadyExists) {
		t.Error("Is() should match the error code")
	}
	if Is(err, ProblemNotFound) {
		t.Error("Is() should not match a different code")
	}
	if Is(errors.New("plain"), ProblemAlreadyExists) {
		t.Error("Is() should not match a plain error")
	}
}
