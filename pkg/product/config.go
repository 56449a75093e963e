// Package product resolves product configurations against a feature model.
//
// A product configuration is a plaintext file with one selected feature name
// per line, conventionally stored as <configs>/<Product>.config. The product
// line's root feature is always selected, whether or not the file lists it.
//
// [Toggles] turns a selection into the switches handed to an external test
// runner: the selected names, followed by a negated name for every optional
// feature the product leaves out. Negated names are sorted so that repeated
// invocations produce the same command line.
package product

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/aplet/pkg/errors"
	"github.com/matzehuels/aplet/pkg/fm"
)

const (
	// Ext is the file extension of product configuration files.
	Ext = ".config"

	// DefaultNotPrefix marks an excluded optional feature in a toggle list.
	DefaultNotPrefix = "Not"
)

// Options controls toggle generation.
type Options struct {
	// NotPrefix is prepended to excluded optional feature names.
	// Empty means DefaultNotPrefix.
	NotPrefix string
}

func (o Options) notPrefix() string {
	if o.NotPrefix == "" {
		return DefaultNotPrefix
	}
	return o.NotPrefix
}

// ReadConfig reads the feature names listed in the configuration file at path,
// in file order. Lines are trimmed and blank lines are skipped. A missing file
// is reported with code [errors.ErrCodeConfigNotFound].
func ReadConfig(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeConfigNotFound, err, "product config %s does not exist", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read product config %s", path)
	}
	return ParseConfig(data), nil
}

// ParseConfig splits configuration file contents into feature names.
func ParseConfig(data []byte) []string {
	var names []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if name := strings.TrimSpace(sc.Text()); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Selection returns the configured names with rootName appended.
func Selection(configured []string, rootName string) []string {
	selected := slices.Clone(configured)
	if rootName != "" {
		selected = append(selected, rootName)
	}
	return selected
}

// Toggles computes the toggle list for a product: the configured names
// followed by rootName, then one negated toggle per optional feature that is
// not selected, sorted and without duplicates.
func Toggles(configured []string, optional []*fm.Feature, rootName string, opts Options) []string {
	selected := Selection(configured, rootName)
	chosen := make(map[string]struct{}, len(selected))
	for _, name := range selected {
		chosen[name] = struct{}{}
	}

	var excluded []string
	for _, f := range optional {
		if _, ok := chosen[f.Name]; !ok {
			excluded = append(excluded, f.Name)
		}
	}
	slices.Sort(excluded)
	excluded = slices.Compact(excluded)

	prefix := opts.notPrefix()
	toggles := selected
	for _, name := range excluded {
		toggles = append(toggles, prefix+name)
	}
	return toggles
}

// ResolveToggles reads the configuration at path and computes its toggles.
func ResolveToggles(path string, optional []*fm.Feature, rootName string, opts Options) ([]string, error) {
	configured, err := ReadConfig(path)
	if err != nil {
		return nil, err
	}
	return Toggles(configured, optional, rootName, opts), nil
}

// RunnerArgs interleaves includeSwitch before every toggle, producing the
// argument tail of a test runner invocation. An empty switch returns the
// toggles unchanged.
func RunnerArgs(toggles []string, includeSwitch string) []string {
	if includeSwitch == "" {
		return slices.Clone(toggles)
	}
	args := make([]string, 0, 2*len(toggles))
	for _, t := range toggles {
		args = append(args, includeSwitch, t)
	}
	return args
}

// Path returns the configuration file path of product inside dir.
func Path(dir, product string) string {
	return filepath.Join(dir, product+Ext)
}

// Discover lists the product names with a configuration file in dir, sorted.
// A missing directory has no products.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "list product configs in %s", dir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Ext))
	}
	slices.Sort(names)
	return names, nil
}

// Load reads the configuration of a named product from dir after validating
// the name.
func Load(dir, name string) ([]string, error) {
	if err := errors.ValidateProductName(name); err != nil {
		return nil, err
	}
	return ReadConfig(Path(dir, name))
}
