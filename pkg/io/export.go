package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/aplet/pkg/fm"
)

type document struct {
	Product string   `json:"product,omitempty"`
	Root    *feature `json:"root"`
}

type feature struct {
	Name      string     `json:"name"`
	Abstract  bool       `json:"abstract,omitempty"`
	Mandatory bool       `json:"mandatory,omitempty"`
	Kind      string     `json:"kind,omitempty"`
	Status    string     `json:"status,omitempty"`
	Scenarios []scenario `json:"scenarios,omitempty"`
	Children  []*feature `json:"children,omitempty"`
}

type scenario struct {
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

func stateString(s fm.TestState) string {
	if s == fm.Unset {
		return ""
	}
	return s.String()
}

func toJSON(f *fm.Feature) *feature {
	out := &feature{
		Name:      f.Name,
		Abstract:  f.Abstract,
		Mandatory: f.Mandatory,
		Kind:      string(f.Kind),
		Status:    stateString(f.Status),
	}
	for _, s := range f.Scenarios {
		out.Scenarios = append(out.Scenarios, scenario{Name: s.Name, Status: stateString(s.Status)})
	}
	for _, c := range f.Children() {
		out.Children = append(out.Children, toJSON(c))
	}
	return out
}

// WriteJSON encodes t as indented JSON and writes it to w. product labels the
// document and may be empty.
func WriteJSON(t *fm.Tree, product string, w io.Writer) error {
	doc := document{Product: product}
	if t != nil && t.Root != nil {
		doc.Root = toJSON(t.Root)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes t to a JSON file at path.
func ExportJSON(t *fm.Tree, product, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(t, product, f)
}
