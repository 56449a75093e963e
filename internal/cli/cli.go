// Package cli implements the aplet command-line interface.
//
// Every command loads the project configuration named by --config (a project
// directory or an aplet.yml file), builds a [pipeline.Runner] and prints the
// result. Human-readable output goes to the command's output stream; logs go
// to stderr through charmbracelet/log.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/aplet/pkg/buildinfo"
	"github.com/matzehuels/aplet/pkg/cache"
	"github.com/matzehuels/aplet/pkg/config"
	"github.com/matzehuels/aplet/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "aplet"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Aplet tracks behavioral test results across a software product line",
		Long: `Aplet reads a FeatureIDE feature model and a set of product configurations,
derives the feature toggles for each product's test run, and folds behavioral
test reports back into the feature tree as passed, failed or inconclusive.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", ".", "project directory or "+config.FileName+" file")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the model and report cache")

	root.AddCommand(c.initCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.optionalCommand())
	root.AddCommand(c.togglesCommand())
	root.AddCommand(c.trimCommand())
	root.AddCommand(c.statusCommand())
	root.AddCommand(c.productsCommand())
	root.AddCommand(c.matrixCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig loads the project configuration named by --config.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded configuration", "file", cfg.File, "dir", cfg.Dir, "project", cfg.ProjectName)
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use. Callers close the
// runner's cache when done.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	store, keyer := c.newCache(ctx, cfg)
	return pipeline.NewRunner(cfg, store, keyer, c.Logger), nil
}

// newCache selects the cache backend: none when disabled, Redis when a URL
// is configured and reachable, otherwise the file cache.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config) (cache.Cache, cache.Keyer) {
	if c.noCache || !cfg.Cache.Enabled {
		return cache.NewNullCache(), nil
	}

	if cfg.Cache.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err == nil {
			c.Logger.Debug("using redis cache", "project", cfg.ProjectName)
			return rc, cache.NewScopedKeyer(nil, cfg.ProjectName+":")
		}
		c.Logger.Warn("redis cache unavailable, falling back to file cache", "err", err)
	}

	dir, err := fileCacheDir(cfg)
	if err != nil {
		c.Logger.Debug("no cache directory", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable", "dir", dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// fileCacheDir returns the configured cache directory, or the XDG default.
func fileCacheDir(cfg *config.Config) (string, error) {
	if cfg != nil && cfg.Cache.Dir != "" {
		return cfg.Resolve(cfg.Cache.Dir), nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/aplet/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
