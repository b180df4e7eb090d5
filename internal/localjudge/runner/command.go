package runner

import (
	"strings"

	"kat/internal/localjudge/spec"
	appErr "kat/pkg/errors"

	"github.com/google/shlex"
)

// BuildCommand expands the placeholders of tpl with paths and splits the
// result into an argument vector using POSIX shell-word rules. Unrecognized
// {...} tokens are kept as they are.
func BuildCommand(tpl string, paths spec.PathContext) ([]string, error) {
	if strings.TrimSpace(tpl) == "" {
		return nil, appErr.New(appErr.CommandEmpty).WithMessage("command template is required")
	}
	expanded := strings.NewReplacer(paths.Replacements()...).Replace(tpl)
	fields, err := shlex.Split(expanded)
	if err != nil {
		return nil, appErr.Wrapf(err, appErr.CommandParseFailed, "parse command template %q failed: %v", tpl, err).
			WithDetail("template", tpl)
	}
	if len(fields) == 0 {
		return nil, appErr.New(appErr.CommandEmpty).WithDetail("template", tpl)
	}
	return fields, nil
}
