package pipeline

import (
	"context"
	"slices"

	"github.com/matzehuels/aplet/pkg/fm"
	"github.com/matzehuels/aplet/pkg/product"
	"github.com/matzehuels/aplet/pkg/report"
)

// Matrix records which products include which features.
type Matrix struct {
	Products []string
	Rows     []MatrixRow
}

// MatrixRow is one feature of the model in pre-order.
type MatrixRow struct {
	Feature  string
	Depth    int
	Abstract bool
	// Included has one entry per product; always false for abstract features.
	Included []bool
}

// Matrix builds the feature by product inclusion matrix. A feature is
// included when the product selects it; the root is always selected.
func (r *Runner) Matrix(ctx context.Context) (*Matrix, error) {
	t, err := r.LoadModel(ctx)
	if err != nil {
		return nil, err
	}
	products, err := r.Products()
	if err != nil {
		return nil, err
	}

	selections := make([][]string, len(products))
	for i, p := range products {
		configured, err := product.Load(r.Config.ConfigsDir(), p)
		if err != nil {
			return nil, err
		}
		selections[i] = product.Selection(configured, t.RootName())
	}

	m := &Matrix{Products: products}
	var walk func(f *fm.Feature, depth int)
	walk = func(f *fm.Feature, depth int) {
		row := MatrixRow{Feature: f.Name, Depth: depth, Abstract: f.Abstract, Included: make([]bool, len(products))}
		if !f.Abstract {
			for i, sel := range selections {
				row.Included[i] = slices.Contains(sel, f.Name)
			}
		}
		m.Rows = append(m.Rows, row)
		for _, c := range f.Children() {
			walk(c, depth+1)
		}
	}
	if t.Root != nil {
		walk(t.Root, 0)
	}
	return m, nil
}

// ProductSummary describes one product's configuration and report.
type ProductSummary struct {
	Name     string
	Selected int
	Toggles  []string
	State    fm.TestState
}

// Summaries reports every product's selection size, toggles and report
// state.
func (r *Runner) Summaries(ctx context.Context) ([]ProductSummary, error) {
	t, err := r.LoadModel(ctx)
	if err != nil {
		return nil, err
	}
	products, err := r.Products()
	if err != nil {
		return nil, err
	}

	optional := t.OptionalFeatures()
	out := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		configured, err := product.Load(r.Config.ConfigsDir(), p)
		if err != nil {
			return nil, err
		}
		state, err := report.ProductStatus(r.Config.ReportsDir(), p)
		if err != nil {
			return nil, err
		}
		out = append(out, ProductSummary{
			Name:     p,
			Selected: len(configured),
			Toggles:  product.Toggles(configured, optional, t.RootName(), r.Config.ToggleOptions()),
			State:    state,
		})
	}
	return out, nil
}
