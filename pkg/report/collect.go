package report

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/aplet/pkg/cache"
	"github.com/matzehuels/aplet/pkg/errors"
	"github.com/matzehuels/aplet/pkg/observability"
)

// DefaultPattern matches every XML report below the reports directory.
const DefaultPattern = "**/*.xml"

// defaultWorkers bounds concurrent report parsing.
const defaultWorkers = 8

// Collector finds and parses test reports, caching parsed reports by the hash
// of their contents.
type Collector struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	TTL     time.Duration
	Logger  *log.Logger
	Workers int
}

// NewCollector returns a Collector. A nil cache disables caching, a nil keyer
// uses the default keyer and a nil logger discards output.
func NewCollector(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Collector {
	return &Collector{Cache: c, Keyer: keyer, Logger: logger}
}

// Result is the outcome of a collection run.
type Result struct {
	Files    []string
	Outcomes Outcomes
}

// Collect parses every file under dir matching pattern (a doublestar glob,
// DefaultPattern when empty) and merges their outcomes. A missing directory
// yields no outcomes.
func (c *Collector) Collect(ctx context.Context, dir, pattern string) (*Result, error) {
	start := time.Now()
	res, err := c.collect(ctx, dir, pattern)
	n := 0
	if res != nil {
		n = len(res.Files)
	}
	observability.Pipeline().OnReportsCollected(ctx, dir, n, time.Since(start), err)
	return res, err
}

func (c *Collector) collect(ctx context.Context, dir, pattern string) (*Result, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "invalid report pattern %q", pattern)
	}

	files, err := Glob(dir, pattern)
	if err != nil {
		return nil, err
	}
	c.logger().Debug("collecting reports", "dir", dir, "pattern", pattern, "files", len(files))
	return c.CollectFiles(ctx, files)
}

// CollectFiles parses the given report files concurrently and merges their
// outcomes. Every file must exist.
func (c *Collector) CollectFiles(ctx context.Context, files []string) (*Result, error) {
	reports := make([]*Report, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers())
	for i, f := range files {
		g.Go(func() error {
			r, err := c.load(gctx, f)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]Outcomes, len(reports))
	for i, r := range reports {
		all[i] = r.Outcomes()
	}
	return &Result{Files: files, Outcomes: Merge(all...)}, nil
}

// Glob lists the files under dir matching pattern, sorted. A missing
// directory has no files.
func Glob(dir, pattern string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "glob %s in %s", pattern, dir)
	}
	files := make([]string, len(matches))
	for i, m := range matches {
		files[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	slices.Sort(files)
	return files, nil
}

func (c *Collector) load(ctx context.Context, path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidReport, err, "read test report %s", path)
	}

	key := c.keyer().ReportKey(cache.Hash(data))
	if r, ok := c.cached(ctx, key); ok {
		c.logger().Debug("report cache hit", "file", path)
		return r, nil
	}

	r, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidReport, err, "parse %s", path)
	}
	c.store(ctx, key, r)
	return r, nil
}

// cached treats backend errors as misses; the report is parsed again.
func (c *Collector) cached(ctx context.Context, key string) (*Report, bool) {
	if c.Cache == nil {
		return nil, false
	}
	data, ok, err := c.Cache.Get(ctx, key)
	if err != nil {
		c.logger().Warn("report cache read failed", "err", err)
		return nil, false
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, "report")
		return nil, false
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		_ = c.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, "report")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "report")
	return &r, true
}

func (c *Collector) store(ctx context.Context, key string, r *Report) {
	if c.Cache == nil {
		return
	}
	data, err := json.Marshal(r)
	if err != nil {
		return
	}
	if err := c.Cache.Set(ctx, key, data, c.TTL); err != nil {
		c.logger().Warn("report cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "report", len(data))
}

func (c *Collector) keyer() cache.Keyer {
	if c.Keyer == nil {
		return cache.NewDefaultKeyer()
	}
	return c.Keyer
}

func (c *Collector) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard)
	}
	return c.Logger
}

func (c *Collector) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return defaultWorkers
}
