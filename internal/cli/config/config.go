package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"kat/internal/localjudge/spec"
	"kat/internal/localjudge/testcase"
	appErr "kat/pkg/errors"
	"kat/pkg/utils/logger"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHostname     = "open.kattis.com"
	DefaultTimeout      = 10 * time.Second
	DefaultPollInterval = 250 * time.Millisecond
	DefaultDirName      = ".kat"
	DefaultFileName     = "config.yaml"

	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "KAT_CONFIG"
	EnvHostname   = "KAT_HOSTNAME"
	EnvLanguage   = "KAT_LANGUAGE"
	EnvLogLevel   = "KAT_LOG_LEVEL"
)

// Language is one configured language profile.
type Language struct {
	CompileCommand string   `yaml:"compileCommand"`
	ExecuteCommand string   `yaml:"executeCommand"`
	Extensions     []string `yaml:"extensions"`
	// Template is a file name under TemplateDir copied by "kat get".
	Template string `yaml:"template"`
	// JudgeName is the language name the judge expects; defaults to the key.
	JudgeName string `yaml:"judgeName"`
}

// Defaults holds default selections.
type Defaults struct {
	Language string `yaml:"language"`
}

// Config holds CLI configuration.
type Config struct {
	Default      Defaults            `yaml:"default"`
	Hostname     string              `yaml:"hostname"`
	Kattisrc     string              `yaml:"kattisrc"`
	TemplateDir  string              `yaml:"templateDir"`
	PollInterval time.Duration       `yaml:"pollInterval"`
	Timeout      time.Duration       `yaml:"timeout"`
	Tests        testcase.Layout     `yaml:"tests"`
	StatePath    string              `yaml:"statePath"`
	Log          logger.Config       `yaml:"log"`
	Languages    map[string]Language `yaml:"languages"`
}

// DefaultPath returns $KAT_CONFIG or ~/.kat/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", appErr.Wrapf(err, appErr.ConfigNotFound, "resolve home directory failed: %v", err)
	}
	return filepath.Join(home, DefaultDirName, DefaultFileName), nil
}

// Load reads the YAML config at path, applies defaults relative to its
// directory and then KAT_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, appErr.Newf(appErr.ConfigNotFound, "no config file found at %s", path)
		}
		return cfg, appErr.Wrapf(err, appErr.ConfigInvalid, "read config file failed: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, appErr.Wrapf(err, appErr.ConfigInvalid, "parse config file %s failed: %v", path, err)
	}
	applyDefaults(&cfg, filepath.Dir(path))
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config, dir string) {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Kattisrc == "" {
		cfg.Kattisrc = filepath.Join(dir, "kattisrc")
	}
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = filepath.Join(dir, "templates")
	}
	if cfg.StatePath == "" {
		cfg.StatePath = filepath.Join(dir, "state.json")
	}
	def := testcase.DefaultLayout()
	if cfg.Tests.Dir == "" {
		cfg.Tests.Dir = def.Dir
	}
	if cfg.Tests.InputExt == "" {
		cfg.Tests.InputExt = def.InputExt
	}
	if cfg.Tests.AnswerExt == "" {
		cfg.Tests.AnswerExt = def.AnswerExt
	}
	for name, lang := range cfg.Languages {
		if lang.JudgeName == "" {
			lang.JudgeName = name
		}
		for i, ext := range lang.Extensions {
			lang.Extensions[i] = strings.TrimPrefix(ext, ".")
		}
		cfg.Languages[name] = lang
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvHostname); v != "" {
		cfg.Hostname = v
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		cfg.Default.Language = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

// Host picks the judge host: the configured hostname, then the one from
// kattisrc, then DefaultHostname.
func (c Config) Host(kattisrcHost string) string {
	switch {
	case c.Hostname != "":
		return c.Hostname
	case kattisrcHost != "":
		return kattisrcHost
	default:
		return DefaultHostname
	}
}

// Validate checks fields that would otherwise fail late.
func (c Config) Validate() error {
	if c.PollInterval < 0 {
		return appErr.ValidationError("pollInterval", "must not be negative")
	}
	if c.Timeout < 0 {
		return appErr.ValidationError("timeout", "must not be negative")
	}
	if c.Tests.InputExt == c.Tests.AnswerExt {
		return appErr.ValidationError("tests", "input and answer extensions must differ")
	}
	return nil
}

// Language resolves a language profile by name, falling back to the default
// language when name is empty.
func (c Config) Language(name string) (Language, spec.CommandSpec, error) {
	if name == "" {
		name = c.Default.Language
	}
	if name == "" {
		return Language{}, spec.CommandSpec{}, appErr.New(appErr.LanguageNotSupported).
			WithMessage("no language given and no default language configured")
	}
	lang, ok := c.Languages[name]
	if !ok {
		return Language{}, spec.CommandSpec{}, appErr.Newf(appErr.LanguageNotSupported,
			"language %q is not configured, available: %s", name, strings.Join(c.LanguageNames(), ", "))
	}
	if strings.TrimSpace(lang.ExecuteCommand) == "" {
		return lang, spec.CommandSpec{}, appErr.Newf(appErr.CommandTemplateMissing,
			"language %q has no executeCommand", name)
	}
	return lang, spec.CommandSpec{
		Language:        name,
		CompileTemplate: lang.CompileCommand,
		ExecuteTemplate: lang.ExecuteCommand,
	}, nil
}

// LanguageNames lists configured languages in sorted order.
func (c Config) LanguageNames() []string {
	names := make([]string, 0, len(c.Languages))
	for name := range c.Languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
