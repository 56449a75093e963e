package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/aplet/pkg/fm"
)

// ReadJSON decodes a tree written by [WriteJSON]. It also returns the product
// label, empty for a whole product line.
//
// ReadJSON returns an error if the JSON is malformed, a feature has no name,
// or a status value is unknown. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*fm.Tree, string, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, "", fmt.Errorf("decode: %w", err)
	}
	if doc.Root == nil {
		return &fm.Tree{}, doc.Product, nil
	}
	root, err := fromJSON(doc.Root)
	if err != nil {
		return nil, "", err
	}
	return fm.NewTree(root), doc.Product, nil
}

// ImportJSON reads a JSON tree file at path.
func ImportJSON(path string) (*fm.Tree, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func fromJSON(in *feature) (*fm.Feature, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("feature without name")
	}
	kind := fm.KindFeature
	if in.Kind != "" {
		kind = fm.Kind(in.Kind)
	}
	status, err := parseState(in.Status)
	if err != nil {
		return nil, fmt.Errorf("feature %s: %w", in.Name, err)
	}

	f := fm.NewFeature(in.Name, fm.WithKind(kind))
	f.Abstract = in.Abstract
	f.Mandatory = in.Mandatory
	f.Status = status
	for _, s := range in.Scenarios {
		st, err := parseState(s.Status)
		if err != nil {
			return nil, fmt.Errorf("feature %s scenario %s: %w", in.Name, s.Name, err)
		}
		f.Scenarios = append(f.Scenarios, fm.Scenario{Name: s.Name, Status: st})
	}
	for _, c := range in.Children {
		if c == nil {
			continue
		}
		child, err := fromJSON(c)
		if err != nil {
			return nil, err
		}
		f.AddChild(child)
	}
	return f, nil
}

func parseState(s string) (fm.TestState, error) {
	st, ok := fm.ParseTestState(s)
	if !ok {
		return fm.Unset, fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}
