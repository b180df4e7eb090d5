package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	appErr "kat/pkg/errors"
)

// LastSubmission remembers the most recent submission for "kat status".
type LastSubmission struct {
	SubmissionID string    `json:"submission_id"`
	ProblemID    string    `json:"problem_id"`
	StatusURL    string    `json:"status_url"`
	Language     string    `json:"language"`
	File         string    `json:"file"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// Empty reports whether nothing has been recorded.
func (s LastSubmission) Empty() bool {
	return s.StatusURL == ""
}

// Load reads the state file. A missing or empty file yields an empty record.
func Load(path string) (LastSubmission, error) {
	var st LastSubmission
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return st, appErr.Wrapf(err, appErr.IOFailed, "read state failed: %v", err)
	}
	if len(data) == 0 {
		return st, nil
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, appErr.Wrapf(err, appErr.InvalidFormat, "parse state failed: %v", err)
	}
	return st, nil
}

// Save writes the state file, creating its directory.
func Save(path string, st LastSubmission) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return appErr.Wrapf(err, appErr.IOFailed, "create state dir failed: %v", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return appErr.Wrapf(err, appErr.InternalError, "marshal state failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return appErr.Wrapf(err, appErr.IOFailed, "write state failed: %v", err)
	}
	return nil
}

// Clear removes the state file.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return appErr.Wrapf(err, appErr.IOFailed, "remove state failed: %v", err)
	}
	return nil
}
