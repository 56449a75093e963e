// Package pipeline runs aplet's end-to-end operations over a configured
// project: load the feature model, resolve product configurations, collect
// test reports and compute statuses.
//
// # Stages
//
// Every operation starts from [Runner.LoadModel], which parses the FeatureIDE
// model (cached by content hash). From there:
//
//   - [Runner.Optional] lists the optional features.
//   - [Runner.Toggles] resolves a product's configuration into test runner
//     toggles.
//   - [Runner.Trim] produces a product's trimmed tree.
//   - [Runner.Status] attaches scenarios, folds report outcomes into the tree
//     and returns the annotated result for the whole line or one product.
//   - [Runner.Matrix] and [Runner.Summaries] summarize all products.
//
// # Caching
//
// Parsed models and parsed reports are stored in the runner's [cache.Cache].
// Keys embed a hash of the input bytes, so edits invalidate entries without
// any bookkeeping.
//
// # Concurrency
//
// A Runner holds no per-call state and may be shared by goroutines. Each call
// parses its own copy of the model.
package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/aplet/pkg/cache"
	"github.com/matzehuels/aplet/pkg/config"
	"github.com/matzehuels/aplet/pkg/report"
)

// Runner executes operations against one project configuration.
type Runner struct {
	Config *config.Config
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// the default keyer and a nil logger uses log.Default().
func NewRunner(cfg *config.Config, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Config: cfg,
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

func (r *Runner) collector() *report.Collector {
	c := report.NewCollector(r.Cache, r.Keyer, r.Logger)
	c.TTL = r.Config.Cache.TTL
	return c
}
