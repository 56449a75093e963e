// Package scenario loads the mapping from feature names to the behavioral
// scenarios that exercise them.
//
// A scenario map is a table keyed by feature name whose values are lists of
// scenario names. It is written as TOML or YAML, chosen by file extension:
//
//	# scenarios.toml
//	AddTodo = ["Add one-word todo", "Add multi-word todo"]
//	Priorities = ["Sort by priority"]
//
//	# scenarios.yml
//	AddTodo:
//	  - Add one-word todo
//	Priorities:
//	  - Sort by priority
//
// Scenario names must match the names that appear in test reports; see
// package report.
package scenario

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/aplet/pkg/errors"
)

// Format identifies a scenario map encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Groups maps a feature name to its scenario names, in file order.
type Groups map[string][]string

// FormatFor picks the encoding from the extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yml", ".yaml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported scenario map format %q (want .toml, .yml or .yaml)", filepath.Ext(path))
	}
}

// Load reads the scenario map at path. A missing file yields empty groups.
func Load(path string) (Groups, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Groups{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read scenario map %s", path)
	}
	g, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	return g, nil
}

// Parse decodes a scenario map. Feature names are trimmed, and blank scenario
// names and duplicates within one feature are dropped.
func Parse(data []byte, format Format) (Groups, error) {
	raw := map[string][]string{}
	if len(bytes.TrimSpace(data)) > 0 {
		var err error
		switch format {
		case FormatTOML:
			_, err = toml.Decode(string(data), &raw)
		case FormatYAML:
			err = yaml.Unmarshal(data, &raw)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported scenario map format %q", format)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s scenario map", format)
		}
	}

	groups := make(Groups, len(raw))
	for feature, names := range raw {
		feature = strings.TrimSpace(feature)
		if err := errors.ValidateFeatureName(feature); err != nil {
			return nil, err
		}
		groups[feature] = clean(append(groups[feature], names...))
	}
	return groups, nil
}

// Features returns the mapped feature names, sorted.
func (g Groups) Features() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Scenarios returns every distinct scenario name, sorted.
func (g Groups) Scenarios() []string {
	var all []string
	for _, names := range g {
		all = append(all, names...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}

func clean(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
