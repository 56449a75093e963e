// Package config loads the aplet project configuration.
//
// Configuration comes from an aplet.yml file, APLET_* environment variables
// and built-in defaults, in increasing order of precedence: defaults, file,
// environment. Nested keys map to environment variables by replacing dots
// with underscores, so paths.model is overridden by APLET_PATHS_MODEL.
//
// Relative paths are resolved against the directory containing the
// configuration file, or the searched directory when no file exists.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/aplet/pkg/errors"
	"github.com/matzehuels/aplet/pkg/product"
)

// FileName is the configuration file looked up in a project directory.
const FileName = "aplet.yml"

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "APLET"

// Configuration keys.
const (
	KeyProjectName   = "project_name"
	KeyModel         = "paths.model"
	KeyConfigs       = "paths.configs"
	KeyScenarios     = "paths.scenarios"
	KeyReports       = "paths.reports"
	KeyReportPattern = "paths.report_pattern"
	KeyRunnerName    = "test_runner.name"
	KeyRunnerCommand = "test_runner.command"
	KeyRunnerArgs    = "test_runner.arguments"
	KeyIncludeSwitch = "test_runner.feature_include_switch"
	KeyNotPrefix     = "test_runner.not_prefix"
	KeyCacheEnabled  = "cache.enabled"
	KeyCacheDir      = "cache.dir"
	KeyCacheRedisURL = "cache.redis_url"
	KeyCacheTTL      = "cache.ttl"
)

// Config is the project configuration.
type Config struct {
	ProjectName string      `mapstructure:"project_name" yaml:"project_name"`
	Paths       Paths       `mapstructure:"paths" yaml:"paths"`
	TestRunner  TestRunner  `mapstructure:"test_runner" yaml:"test_runner"`
	Cache       CacheConfig `mapstructure:"cache" yaml:"cache"`

	// File is the configuration file that was read, empty when only defaults
	// and environment were used.
	File string `mapstructure:"-" yaml:"-"`

	// Dir is the base directory for relative paths.
	Dir string `mapstructure:"-" yaml:"-"`
}

// Paths locates the project's inputs.
type Paths struct {
	Model         string `mapstructure:"model" yaml:"model"`
	Configs       string `mapstructure:"configs" yaml:"configs"`
	Scenarios     string `mapstructure:"scenarios" yaml:"scenarios"`
	Reports       string `mapstructure:"reports" yaml:"reports"`
	ReportPattern string `mapstructure:"report_pattern" yaml:"report_pattern"`
}

// TestRunner describes the external behavioral test runner.
type TestRunner struct {
	Name                 string   `mapstructure:"name" yaml:"name"`
	Command              string   `mapstructure:"command" yaml:"command"`
	Arguments            []string `mapstructure:"arguments" yaml:"arguments"`
	FeatureIncludeSwitch string   `mapstructure:"feature_include_switch" yaml:"feature_include_switch"`
	NotPrefix            string   `mapstructure:"not_prefix" yaml:"not_prefix"`
}

// CacheConfig selects and tunes the report cache.
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled" yaml:"enabled"`
	Dir      string        `mapstructure:"dir" yaml:"dir,omitempty"`
	RedisURL string        `mapstructure:"redis_url" yaml:"redis_url,omitempty"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyProjectName, "")
	v.SetDefault(KeyModel, "productline/model.xml")
	v.SetDefault(KeyConfigs, "productline/configs")
	v.SetDefault(KeyScenarios, "bddfeatures/scenarios.yml")
	v.SetDefault(KeyReports, "testreports")
	v.SetDefault(KeyReportPattern, "**/*.xml")
	v.SetDefault(KeyRunnerName, "")
	v.SetDefault(KeyRunnerCommand, "")
	v.SetDefault(KeyRunnerArgs, []string{})
	v.SetDefault(KeyIncludeSwitch, "--group")
	v.SetDefault(KeyNotPrefix, product.DefaultNotPrefix)
	v.SetDefault(KeyCacheEnabled, true)
	v.SetDefault(KeyCacheDir, "")
	v.SetDefault(KeyCacheRedisURL, "")
	v.SetDefault(KeyCacheTTL, "720h")
}

// Load reads the configuration at path. If path is a directory, FileName is
// looked up inside it and a missing file yields the defaults. A path naming a
// missing file is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "."
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	dir, file, err := locate(path)
	if err != nil {
		return nil, err
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", file)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode configuration")
	}
	cfg.File = file
	cfg.Dir = dir
	if cfg.ProjectName == "" {
		cfg.ProjectName = defaultProjectName(dir)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// locate returns the base directory and the configuration file for path.
// file is empty when a directory has no configuration file.
func locate(path string) (dir, file string, err error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", "", errors.Wrap(errors.ErrCodeFileNotFound, err, "configuration %s does not exist", path)
	}
	if err != nil {
		return "", "", errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", path)
	}
	if !info.IsDir() {
		return filepath.Dir(path), path, nil
	}
	for _, name := range []string{FileName, "aplet.yaml"} {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return path, candidate, nil
		}
	}
	return path, "", nil
}

func defaultProjectName(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return filepath.Base(abs)
	}
	return filepath.Base(dir)
}

// Validate checks paths, the report pattern and cache settings.
func (c *Config) Validate() error {
	for key, p := range map[string]string{
		KeyModel:     c.Paths.Model,
		KeyConfigs:   c.Paths.Configs,
		KeyScenarios: c.Paths.Scenarios,
		KeyReports:   c.Paths.Reports,
	} {
		if err := errors.ValidatePath(p); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", key)
		}
	}
	if !doublestar.ValidatePattern(c.Paths.ReportPattern) {
		return errors.New(errors.ErrCodeInvalidConfig, "%s: invalid glob %q", KeyReportPattern, c.Paths.ReportPattern)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative", KeyCacheTTL)
	}
	return nil
}

// Resolve returns p relative to the configuration directory unless p is
// absolute.
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// ModelPath is the resolved feature model location.
func (c *Config) ModelPath() string { return c.Resolve(c.Paths.Model) }

// ConfigsDir is the resolved product configuration directory.
func (c *Config) ConfigsDir() string { return c.Resolve(c.Paths.Configs) }

// ScenariosPath is the resolved scenario map location.
func (c *Config) ScenariosPath() string { return c.Resolve(c.Paths.Scenarios) }

// ReportsDir is the resolved test report directory.
func (c *Config) ReportsDir() string { return c.Resolve(c.Paths.Reports) }

// ToggleOptions returns the toggle settings for package product.
func (c *Config) ToggleOptions() product.Options {
	return product.Options{NotPrefix: c.TestRunner.NotPrefix}
}

// RunnerCommand builds the full test runner invocation for toggles.
func (c *Config) RunnerCommand(toggles []string) []string {
	var cmd []string
	if c.TestRunner.Command != "" {
		cmd = append(cmd, c.TestRunner.Command)
	}
	cmd = append(cmd, c.TestRunner.Arguments...)
	return append(cmd, product.RunnerArgs(toggles, c.TestRunner.FeatureIncludeSwitch)...)
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
