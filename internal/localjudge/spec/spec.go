// Package spec defines command templates and per-process run settings for local runs.
package spec

import (
	"path/filepath"
	"strings"
)

// Placeholders recognized in command templates.
const (
	PlaceholderSourceFile      = "{source_file}"
	PlaceholderSourceFileNoExt = "{source_file_no_ext}"
	PlaceholderExecutablePath  = "{executable_path}"
	PlaceholderOutputDirectory = "{output_directory}"
)

// CommandSpec is the compile/execute template pair of one language.
type CommandSpec struct {
	Language        string
	CompileTemplate string
	ExecuteTemplate string
}

// NeedsCompile reports whether a compile step runs before the tests.
func (c CommandSpec) NeedsCompile() bool {
	return strings.TrimSpace(c.CompileTemplate) != ""
}

// PathContext holds the values substituted into command templates.
type PathContext struct {
	SourceFile      string
	SourceFileNoExt string
	ExecutablePath  string
	OutputDirectory string
}

// NewPathContext derives the template values for a solution file inside problemDir.
func NewPathContext(problemDir, solutionPath string) PathContext {
	base := filepath.Base(solutionPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return PathContext{
		SourceFile:      solutionPath,
		SourceFileNoExt: stem,
		ExecutablePath:  strings.TrimSuffix(solutionPath, filepath.Ext(solutionPath)),
		OutputDirectory: problemDir,
	}
}

// Replacements returns placeholder/value pairs suitable for strings.NewReplacer.
// Longer placeholders come first so {source_file_no_ext} is never split.
func (p PathContext) Replacements() []string {
	return []string{
		PlaceholderSourceFileNoExt, p.SourceFileNoExt,
		PlaceholderSourceFile, p.SourceFile,
		PlaceholderExecutablePath, p.ExecutablePath,
		PlaceholderOutputDirectory, p.OutputDirectory,
	}
}

// RunSpec describes how to start one process.
type RunSpec struct {
	WorkDir   string
	Cmd       []string
	Env       []string
	StdinPath string
}
