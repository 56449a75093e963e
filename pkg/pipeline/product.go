package pipeline

import (
	"context"

	"github.com/matzehuels/aplet/pkg/fm"
	"github.com/matzehuels/aplet/pkg/product"
)

// Products lists the products with a configuration file, sorted.
func (r *Runner) Products() ([]string, error) {
	return product.Discover(r.Config.ConfigsDir())
}

// Optional returns the names of the model's optional features in pre-order.
func (r *Runner) Optional(ctx context.Context) ([]string, error) {
	t, err := r.LoadModel(ctx)
	if err != nil {
		return nil, err
	}
	return fm.Names(t.OptionalFeatures()), nil
}

// Toggles resolves the toggle list of a product.
func (r *Runner) Toggles(ctx context.Context, name string) ([]string, error) {
	t, err := r.LoadModel(ctx)
	if err != nil {
		return nil, err
	}
	configured, err := product.Load(r.Config.ConfigsDir(), name)
	if err != nil {
		return nil, err
	}
	toggles := product.Toggles(configured, t.OptionalFeatures(), t.RootName(), r.Config.ToggleOptions())
	r.Logger.Debug("resolved toggles", "product", name, "selected", len(configured)+1, "toggles", len(toggles))
	return toggles, nil
}

// Trim returns a product's trimmed copy of the model.
func (r *Runner) Trim(ctx context.Context, name string) (*fm.Tree, error) {
	t, err := r.LoadModel(ctx)
	if err != nil {
		return nil, err
	}
	return r.trim(t, name)
}

func (r *Runner) trim(t *fm.Tree, name string) (*fm.Tree, error) {
	configured, err := product.Load(r.Config.ConfigsDir(), name)
	if err != nil {
		return nil, err
	}
	trimmed := t.CopyTrimmed(product.Selection(configured, t.RootName()))
	r.Logger.Debug("trimmed model", "product", name, "features", trimmed.Count(), "of", t.Count())
	return trimmed, nil
}
