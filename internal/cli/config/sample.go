package config

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	appErr "kat/pkg/errors"
)

// Choices for WriteSample.
const (
	SampleAll    = "all"
	SampleConfig = "config"
)

const (
	sampleRoot = "sample"
	rawSuffix  = ".tmpl"
)

//go:embed sample
var sampleFS embed.FS

// SampleResult lists what WriteSample did, as paths under the target dir.
type SampleResult struct {
	Written []string
	Skipped []string
}

// WriteSample copies the bundled config, and for SampleAll the language
// templates, into dir. Existing files are skipped unless overwrite is set.
// A trailing .tmpl on a bundled file name is dropped on write.
func WriteSample(dir, choice string, overwrite bool) (SampleResult, error) {
	var res SampleResult
	if choice == "" {
		choice = SampleAll
	}
	if choice != SampleAll && choice != SampleConfig {
		return res, appErr.Newf(appErr.InvalidParams, "invalid choice %q, use %q or %q", choice, SampleAll, SampleConfig)
	}

	err := fs.WalkDir(sampleFS, sampleRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel := strings.TrimPrefix(p, sampleRoot+"/")
		if choice == SampleConfig && rel != DefaultFileName {
			return nil
		}
		target := filepath.Join(dir, filepath.FromSlash(strings.TrimSuffix(rel, rawSuffix)))
		if _, err := os.Stat(target); err == nil && !overwrite {
			res.Skipped = append(res.Skipped, target)
			return nil
		}

		data, err := sampleFS.ReadFile(p)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
		res.Written = append(res.Written, target)
		return nil
	})
	if err != nil {
		return res, appErr.Wrapf(err, appErr.IOFailed, "write sample config failed: %v", err)
	}
	return res, nil
}

// Locations are the files kat reads from a config directory.
type Locations struct {
	Dir       string
	Config    string
	Kattisrc  string
	Templates string
	State     string
}

// Locate reports where the config at path and its companions live. Paths
// set in a readable config take precedence over the defaults.
func Locate(configPath string) Locations {
	cfg, err := Load(configPath)
	if err != nil {
		cfg = Config{}
		applyDefaults(&cfg, filepath.Dir(configPath))
	}
	return Locations{
		Dir:       filepath.Dir(configPath),
		Config:    configPath,
		Kattisrc:  cfg.Kattisrc,
		Templates: cfg.TemplateDir,
		State:     cfg.StatePath,
	}
}
