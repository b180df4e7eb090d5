package errors

// ErrorCode represents a unique error identifier
type ErrorCode int

// Error code ranges allocation:
// 10000-10999: System & Common errors
// 11000-11999: Configuration & setup errors
// 12000-12999: Problem & test discovery errors
// 13000-13999: Compile & execute errors
// 14000-14999: Judge communication & submission tracking errors

const (
	// ========== System & Common Errors (10000-10999) ==========

	// Success
	Success ErrorCode = 10000

	// Generic errors (10000-10099)
	InternalError ErrorCode = 10001
	InvalidParams ErrorCode = 10002
	NotFound      ErrorCode = 10003
	Timeout       ErrorCode = 10004
	IOFailed      ErrorCode = 10005

	// Validation errors (10300-10399)
	ValidationFailed ErrorCode = 10300
	InvalidFormat    ErrorCode = 10301

	// ========== Configuration Errors (11000-11999) ==========

	ConfigNotFound         ErrorCode = 11000
	ConfigInvalid          ErrorCode = 11001
	LanguageNotSupported   ErrorCode = 11002
	CommandTemplateMissing ErrorCode = 11003
	CredentialsMissing     ErrorCode = 11004
	TemplateNotFound       ErrorCode = 11005

	// ========== Discovery Errors (12000-12999) ==========

	// Problem (12000-12099)
	ProblemNotFound       ErrorCode = 12000
	InvalidProblemID      ErrorCode = 12001
	ProblemAlreadyExists  ErrorCode = 12002
	SolutionFileNotFound  ErrorCode = 12003
	AmbiguousSolutionFile ErrorCode = 12004

	// Test cases (12100-12199)
	TestDirNotFound     ErrorCode = 12100
	TestFilesMismatch   ErrorCode = 12101
	NoMatchingTests     ErrorCode = 12102
	InvalidTestFileName ErrorCode = 12103
	InvalidFilter       ErrorCode = 12104

	// ========== Compile & Execute Errors (13000-13999) ==========

	// Command templates (13000-13099)
	CommandParseFailed ErrorCode = 13000
	CommandEmpty       ErrorCode = 13001
	CommandNotFound    ErrorCode = 13002

	// Compile (13100-13199)
	CompilationError ErrorCode = 13100

	// Execute (13200-13299)
	RuntimeError    ErrorCode = 13200
	InputOpenFailed ErrorCode = 13201
	AnswerReadError ErrorCode = 13202
	WrongAnswer     ErrorCode = 13203
	TestsFailed     ErrorCode = 13204

	// ========== Judge Errors (14000-14999) ==========

	// Session (14000-14099)
	LoginFailed        ErrorCode = 14000
	JudgeUnavailable   ErrorCode = 14001
	RequestFailed      ErrorCode = 14002
	SampleFetchFailed  ErrorCode = 14003
	SubmitNotConfirmed ErrorCode = 14004

	// Submission (14100-14199)
	SubmitFailed        ErrorCode = 14100
	SubmissionIDMissing ErrorCode = 14101
	StatusFetchFailed   ErrorCode = 14102
	StatusParseFailed   ErrorCode = 14103
)

// errorMessages maps error codes to their default English messages
var errorMessages = map[ErrorCode]string{
	// System & Common
	Success:          "Success",
	InternalError:    "Internal error",
	InvalidParams:    "Invalid parameters",
	NotFound:         "Resource not found",
	Timeout:          "Request timeout",
	IOFailed:         "File operation failed",
	ValidationFailed: "Validation failed",
	InvalidFormat:    "Invalid format",

	// Configuration
	ConfigNotFound:         "Config file not found",
	ConfigInvalid:          "Config file is invalid",
	LanguageNotSupported:   "Programming language not configured",
	CommandTemplateMissing: "Execute command is not configured for this language",
	CredentialsMissing:     "No kattisrc credentials found",
	TemplateNotFound:       "Template file not found",

	// Problem
	ProblemNotFound:       "Problem not found",
	InvalidProblemID:      "Invalid problem id",
	ProblemAlreadyExists:  "Problem has already been fetched",
	SolutionFileNotFound:  "No matching solution file found",
	AmbiguousSolutionFile: "Multiple matching solution files found",

	// Test cases
	TestDirNotFound:     "No tests for this problem",
	TestFilesMismatch:   "Input and answer file counts differ",
	NoMatchingTests:     "No matching test files",
	InvalidTestFileName: "Test file name does not contain a number",
	InvalidFilter:       "Invalid test filter",

	// Commands
	CommandParseFailed: "Parse command template failed",
	CommandEmpty:       "Command is empty after expansion",
	CommandNotFound:    "Command not found",

	// Compile & execute
	CompilationError: "Compilation error",
	RuntimeError:     "Runtime error",
	InputOpenFailed:  "Open test input failed",
	AnswerReadError:  "Read expected output failed",
	WrongAnswer:      "Wrong answer",
	TestsFailed:      "Some tests failed",

	// Judge session
	LoginFailed:        "Login to the judge failed",
	JudgeUnavailable:   "Judge server is unavailable, please try again later",
	RequestFailed:      "Request to the judge failed",
	SampleFetchFailed:  "Fetch sample tests failed",
	SubmitNotConfirmed: "Submission not confirmed",

	// Submission
	SubmitFailed:        "Submission rejected by the judge",
	SubmissionIDMissing: "Submission id not found in judge response",
	StatusFetchFailed:   "Fetch submission status failed",
	StatusParseFailed:   "Parse submission status failed",
}

// Message returns the default message for the error code
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return "Unknown error"
}

// ExitCode returns the process exit code for the error code
func (c ErrorCode) ExitCode() int {
	switch {
	case c == Success:
		return 0
	case c == TestsFailed, c == WrongAnswer, c == RuntimeError:
		return 1
	case c >= 11000 && c < 12000: // Configuration errors
		return 2
	case c >= 12000 && c < 13000: // Discovery errors
		return 3
	case c >= 13000 && c < 13200: // Command & compile errors
		return 4
	case c >= 14000 && c < 15000: // Judge errors
		return 5
	default:
		return 1
	}
}
