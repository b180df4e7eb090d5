package problem

import (
	"os"
	"path/filepath"
	"strings"

	"kat/internal/localjudge/spec"
	appErr "kat/pkg/errors"
)

// CopyTemplate copies a language template into problemDir, naming it after the
// problem and filling in {source_file} and {source_file_no_ext}. It returns the
// new file's path.
func CopyTemplate(templatePath, problemDir, problemID string) (string, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", appErr.Newf(appErr.TemplateNotFound, "template file does not exist: %s", templatePath)
		}
		return "", appErr.Wrapf(err, appErr.IOFailed, "read template failed: %v", err)
	}

	stem := FileStem(problemID)
	base := filepath.Base(templatePath)
	fileName := stem + filepath.Ext(base)
	target := filepath.Join(problemDir, fileName)
	if _, err := os.Stat(target); err == nil {
		return "", appErr.Newf(appErr.ProblemAlreadyExists, "solution file already exists: %s", target)
	}

	replacer := strings.NewReplacer(
		spec.PlaceholderSourceFileNoExt, stem,
		spec.PlaceholderSourceFile, fileName,
	)
	if err := os.WriteFile(target, []byte(replacer.Replace(string(content))), 0o644); err != nil {
		return "", appErr.Wrapf(err, appErr.IOFailed, "write template failed: %v", err)
	}
	return target, nil
}
