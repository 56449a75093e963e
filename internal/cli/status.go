package cli

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/aplet/pkg/fm"
	pkgio "github.com/matzehuels/aplet/pkg/io"
	"github.com/matzehuels/aplet/pkg/observability"
	"github.com/matzehuels/aplet/pkg/pipeline"
	"github.com/matzehuels/aplet/pkg/watch"
)

type statusOptions struct {
	json        bool
	scenarios   bool
	metricsFile string
}

// statusCommand creates the "status" command.
func (c *CLI) statusCommand() *cobra.Command {
	var (
		opts     statusOptions
		all      bool
		watching bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "status [product]",
		Short: "Show test status per feature",
		Long: `Attach scenarios to features, fold the test report outcomes into the feature
tree and print each feature's state: passed, failed or inconclusive.

With a product, the product's trimmed tree is checked against its own report
(report<Product>.xml). Without one, the whole product line is checked against
every report; on a terminal you are asked to pick, unless --all is given.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeProducts,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer func() { r.Cache.Close() }()

			var name string
			switch {
			case len(args) == 1:
				name = args[0]
			case !all && !opts.json && interactive(cmd):
				summaries, err := r.Summaries(ctx)
				if err != nil {
					return err
				}
				if len(summaries) > 0 {
					picked, ok, err := pickProduct(summaries)
					if err != nil || !ok {
						return err
					}
					name = picked
				}
			}

			var metrics *observability.Metrics
			if opts.metricsFile != "" {
				metrics = observability.NewMetrics()
				observability.SetPipelineHooks(metrics)
				observability.SetCacheHooks(metrics)
				defer observability.Reset()
			}

			if !watching {
				return c.showStatus(ctx, cmd, r, name, opts, metrics)
			}
			return c.watchStatus(ctx, cmd, &r, name, opts, metrics, debounce)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print the annotated tree as JSON")
	cmd.Flags().BoolVarP(&opts.scenarios, "scenarios", "s", false, "list scenarios below their features")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "also write Prometheus metrics to this file")
	cmd.Flags().BoolVar(&all, "all", false, "show the whole product line without asking")
	cmd.Flags().BoolVarP(&watching, "watch", "w", false, "recompute when the model, configs, scenarios or reports change")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before recomputing in watch mode")

	return cmd
}

// interactive reports whether the command talks to a terminal.
func interactive(cmd *cobra.Command) bool {
	out, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(out.Fd())
}

func (c *CLI) showStatus(ctx context.Context, cmd *cobra.Command, r *pipeline.Runner, name string, opts statusOptions, metrics *observability.Metrics) error {
	res, err := r.Status(ctx, name)
	if err != nil {
		return err
	}

	if opts.json {
		err = pkgio.WriteJSON(res.Tree, name, cmd.OutOrStdout())
	} else {
		printStatus(cmd, r, res, opts.scenarios)
	}
	if err != nil {
		return err
	}

	if metrics != nil {
		res.Tree.Walk(func(f *fm.Feature) bool {
			metrics.SetFeatureState(name, f.Name, f.Status.Resolved().String())
			return true
		})
		if err := metrics.WriteTextfile(opts.metricsFile); err != nil {
			return err
		}
		c.Logger.Debug("wrote metrics", "path", opts.metricsFile)
	}
	return nil
}

func printStatus(cmd *cobra.Command, r *pipeline.Runner, res *pipeline.StatusResult, scenarios bool) {
	p := newPrinter(cmd)

	title := r.Config.ProjectName
	if res.Product != "" {
		title += " / " + res.Product
	}
	p.line(StyleTitle.Render(title) + "  " + renderState(res.State))

	switch {
	case len(res.Reports) == 0 && res.Product != "":
		p.warning("No report for %s", res.Product)
	case len(res.Reports) == 0:
		p.warning("No test reports in %s", r.Config.ReportsDir())
	default:
		p.detail("%d report(s), %d scenario outcome(s)", len(res.Reports), len(res.Outcomes))
	}
	p.newline()
	writeStatusTree(p.w, res.Tree, scenarios)
}

// watchStatus prints the status, then recomputes it whenever one of the
// project's inputs changes, until ctx is cancelled. A change to the
// configuration file rebuilds the runner. Failures while watching are logged
// and do not stop the loop.
func (c *CLI) watchStatus(ctx context.Context, cmd *cobra.Command, rp **pipeline.Runner, name string, opts statusOptions, metrics *observability.Metrics, debounce time.Duration) error {
	w, err := watch.New(debounce, c.Logger)
	if err != nil {
		return err
	}
	defer w.Close()

	cfg := (*rp).Config
	for _, path := range watchedPaths(cfg.File, cfg.ModelPath(), cfg.ConfigsDir(), cfg.ScenariosPath(), cfg.ReportsDir()) {
		if err := w.Add(path); err != nil {
			c.Logger.Warn("cannot watch path", "path", path, "err", err)
		}
	}

	prog := newProgress(c.Logger)
	refresh := func() {
		prog.restart()
		if err := c.showStatus(ctx, cmd, *rp, name, opts, metrics); err != nil {
			c.Logger.Error("status failed", "err", err)
			return
		}
		prog.done("refreshed status", "product", name)
	}

	refresh()
	p := newPrinter(cmd)
	p.info("Watching %d directories, press Ctrl+C to stop", len(w.Paths()))

	return w.Run(ctx, func(changed []string) {
		c.Logger.Debug("inputs changed", "files", changed)
		if file := (*rp).Config.File; file != "" && slices.Contains(changed, filepath.Clean(file)) {
			next, err := c.newRunner(ctx)
			if err != nil {
				c.Logger.Error("reload configuration", "err", err)
				return
			}
			(*rp).Cache.Close()
			*rp = next
			c.Logger.Info("reloaded configuration", "file", file)
		}
		p.newline()
		p.line(StyleDim.Render(time.Now().Format("15:04:05")))
		refresh()
	})
}

// watchedPaths drops empty entries and duplicates.
func watchedPaths(paths ...string) []string {
	var out []string
	for _, p := range paths {
		if p != "" && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}
