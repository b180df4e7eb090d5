// Package problem locates problem directories and solution files and sets up
// new problems from the judge.
package problem

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	appErr "kat/pkg/errors"
)

// ResolveDir turns a user supplied path into an absolute problem directory and
// its problem id, the directory's base name. "." is the working directory.
func ResolveDir(path string) (dir, problemID string, err error) {
	if path == "" {
		path = "."
	}
	dir, err = filepath.Abs(path)
	if err != nil {
		return "", "", appErr.Wrapf(err, appErr.IOFailed, "resolve path %s failed: %v", path, err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", "", appErr.Newf(appErr.ProblemNotFound, "problem directory does not exist: %s", dir)
	}
	return dir, filepath.Base(dir), nil
}

// FileStem is the solution file stem for a problem id. A site prefix such as
// "itu." is dropped.
func FileStem(problemID string) string {
	if _, rest, ok := strings.Cut(problemID, "."); ok && rest != "" {
		return rest
	}
	return problemID
}

// ResolveSolution finds the solution file. An explicit path wins; otherwise
// exactly one file in dir must match *<stem>*.<ext> for one of extensions.
func ResolveSolution(dir, problemID, explicit string, extensions []string) (string, error) {
	if explicit != "" {
		path := explicit
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
			if _, err := os.Stat(path); err != nil {
				// relative to the working directory instead
				if abs, absErr := filepath.Abs(explicit); absErr == nil {
					path = abs
				}
			}
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return "", appErr.Newf(appErr.SolutionFileNotFound, "solution file does not exist: %s", explicit)
		}
		return path, nil
	}

	stem := FileStem(problemID)
	seen := make(map[string]struct{})
	var candidates []string
	for _, ext := range extensions {
		ext = strings.TrimPrefix(ext, ".")
		matches, err := filepath.Glob(filepath.Join(dir, "*"+stem+"*."+ext))
		if err != nil {
			return "", appErr.Wrapf(err, appErr.IOFailed, "search solution files failed: %v", err)
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err != nil || info.IsDir() {
				continue
			}
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			candidates = append(candidates, m)
		}
	}
	sort.Strings(candidates)

	switch len(candidates) {
	case 0:
		return "", appErr.Newf(appErr.SolutionFileNotFound,
			"no solution file matching *%s*.{%s} in %s", stem, strings.Join(extensions, ","), dir)
	case 1:
		return candidates[0], nil
	default:
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = filepath.Base(c)
		}
		return "", appErr.Newf(appErr.AmbiguousSolutionFile,
			"multiple solution files found, pick one with --file: %s", strings.Join(names, ", ")).
			WithDetail("candidates", names)
	}
}
