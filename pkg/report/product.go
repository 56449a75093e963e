package report

import (
	"path/filepath"

	"github.com/matzehuels/aplet/pkg/errors"
	"github.com/matzehuels/aplet/pkg/fm"
)

// ProductPath returns the conventional report location of a product:
// <dir>/report<product>.xml.
func ProductPath(dir, product string) string {
	return filepath.Join(dir, "report"+product+".xml")
}

// ProductStatus summarizes the report of one product. A product without a
// report is inconclusive.
func ProductStatus(dir, product string) (fm.TestState, error) {
	if err := errors.ValidateProductName(product); err != nil {
		return fm.Unset, err
	}
	r, err := ParseFile(ProductPath(dir, product))
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return fm.Inconclusive, nil
	}
	if err != nil {
		return fm.Unset, err
	}
	return r.State(), nil
}
