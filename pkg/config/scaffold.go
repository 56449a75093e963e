package config

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matzehuels/aplet/pkg/errors"
)

//go:embed templates
var templates embed.FS

// scaffold maps embedded templates to their project-relative destination.
var scaffold = []struct{ src, dst string }{
	{"templates/aplet.yml", FileName},
	{"templates/model.xml", "productline/model.xml"},
	{"templates/ExampleProduct.config", "productline/configs/ExampleProduct.config"},
	{"templates/scenarios.yml", "bddfeatures/scenarios.yml"},
}

// Scaffold writes a starter project into dir and creates the reports
// directory. Existing files are left alone unless force is set. It returns the
// files written, relative to dir.
func Scaffold(dir string, force bool) ([]string, error) {
	var written []string
	for _, s := range scaffold {
		dst := filepath.Join(dir, filepath.FromSlash(s.dst))
		if _, err := os.Stat(dst); err == nil && !force {
			continue
		}
		data, err := fs.ReadFile(templates, s.src)
		if err != nil {
			return written, errors.Wrap(errors.ErrCodeInternal, err, "read template %s", s.src)
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return written, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", filepath.Dir(dst))
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return written, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", dst)
		}
		written = append(written, s.dst)
	}
	if err := os.MkdirAll(filepath.Join(dir, "testreports"), 0o755); err != nil {
		return written, errors.Wrap(errors.ErrCodeInvalidPath, err, "create reports directory")
	}
	return written, nil
}
