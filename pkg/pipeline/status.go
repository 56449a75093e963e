package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/matzehuels/aplet/pkg/errors"
	"github.com/matzehuels/aplet/pkg/fm"
	"github.com/matzehuels/aplet/pkg/observability"
	"github.com/matzehuels/aplet/pkg/report"
	"github.com/matzehuels/aplet/pkg/scenario"
)

// StatusResult is a status-annotated tree.
type StatusResult struct {
	// Product is empty for the whole product line.
	Product  string
	Tree     *fm.Tree
	State    fm.TestState
	Reports  []string
	Outcomes report.Outcomes
}

// Status computes test statuses. With an empty product the whole model is
// annotated using every report in the reports directory. Otherwise the
// product's trimmed tree is annotated using only that product's report; a
// product without a report is inconclusive throughout.
func (r *Runner) Status(ctx context.Context, product string) (*StatusResult, error) {
	start := time.Now()

	t, err := r.LoadModel(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := scenario.Load(r.Config.ScenariosPath())
	if err != nil {
		return nil, err
	}

	var collected *report.Result
	if product == "" {
		collected, err = r.collector().Collect(ctx, r.Config.ReportsDir(), r.Config.Paths.ReportPattern)
	} else {
		if t, err = r.trim(t, product); err != nil {
			return nil, err
		}
		collected, err = r.productReport(ctx, product)
	}
	if err != nil {
		return nil, err
	}

	t.AttachScenarios(groups)
	state := t.ComputeStatuses(collected.Outcomes)

	observability.Pipeline().OnStatusComputed(ctx, product, state.String(), time.Since(start))
	r.Logger.Info("computed status",
		"product", displayProduct(product),
		"state", state,
		"reports", len(collected.Files),
		"scenarios", len(collected.Outcomes),
		"duration", time.Since(start).Round(time.Millisecond))

	return &StatusResult{
		Product:  product,
		Tree:     t,
		State:    state,
		Reports:  collected.Files,
		Outcomes: collected.Outcomes,
	}, nil
}

func (r *Runner) productReport(ctx context.Context, product string) (*report.Result, error) {
	path := report.ProductPath(r.Config.ReportsDir(), product)
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		r.Logger.Debug("no report for product", "product", product, "path", path)
		return &report.Result{Outcomes: report.Outcomes{}}, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidReport, err, "stat %s", path)
	}
	return r.collector().CollectFiles(ctx, []string{path})
}

func displayProduct(p string) string {
	if p == "" {
		return "(all)"
	}
	return p
}
