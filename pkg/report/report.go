// Package report reads JUnit-style XML test reports produced by behavioral
// test runners and turns them into scenario outcomes.
//
// Each testcase of the first testsuite is one executed scenario. The scenario
// name is the testcase's feature attribute, falling back to its name
// attribute. A testcase with a failure or error child failed; a skipped
// testcase was not run and records no outcome.
//
// Outcomes from several reports, typically one per product, are combined with
// [Merge]: a scenario passes only if it passed everywhere it ran.
package report

import (
	"bytes"
	"encoding/xml"
	"os"

	"github.com/matzehuels/aplet/pkg/errors"
	"github.com/matzehuels/aplet/pkg/fm"
)

// Outcomes maps a scenario name to whether it passed.
type Outcomes map[string]bool

// Case is one executed testcase.
type Case struct {
	Scenario string `json:"scenario"`
	Passed   bool   `json:"passed"`
}

// Report is the parsed content of one report file.
type Report struct {
	Suite string `json:"suite,omitempty"`
	Cases []Case `json:"cases"`
}

type xmlCase struct {
	Name    string    `xml:"name,attr"`
	Feature string    `xml:"feature,attr"`
	Failure *struct{} `xml:"failure"`
	Error   *struct{} `xml:"error"`
	Skipped *struct{} `xml:"skipped"`
}

type xmlSuite struct {
	Name  string    `xml:"name,attr"`
	Cases []xmlCase `xml:"testcase"`
}

// xmlDoc accepts both a testsuites wrapper and a bare testsuite root.
type xmlDoc struct {
	XMLName xml.Name
	xmlSuite
	Suites []xmlSuite `xml:"testsuite"`
}

// Parse decodes a report. A document without a testsuite yields an empty
// report.
func Parse(data []byte) (*Report, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidReport, "test report is empty")
	}

	var doc xmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidReport, err, "test report is not valid XML")
	}

	var suite *xmlSuite
	switch {
	case doc.XMLName.Local == "testsuite":
		suite = &doc.xmlSuite
	case len(doc.Suites) > 0:
		suite = &doc.Suites[0]
	default:
		return &Report{}, nil
	}

	r := &Report{Suite: suite.Name, Cases: make([]Case, 0, len(suite.Cases))}
	for _, c := range suite.Cases {
		name := c.Feature
		if name == "" {
			name = c.Name
		}
		if name == "" || c.Skipped != nil {
			continue
		}
		r.Cases = append(r.Cases, Case{
			Scenario: name,
			Passed:   c.Failure == nil && c.Error == nil,
		})
	}
	return r, nil
}

// ParseFile reads and parses the report at path.
func ParseFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "test report %s does not exist", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidReport, err, "read test report %s", path)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidReport, err, "parse %s", path)
	}
	return r, nil
}

// Outcomes folds the report's cases by scenario. A scenario that ran more
// than once passes only if every run passed.
func (r *Report) Outcomes() Outcomes {
	out := make(Outcomes, len(r.Cases))
	for _, c := range r.Cases {
		record(out, c.Scenario, c.Passed)
	}
	return out
}

// State summarizes the report: inconclusive without cases, failed if any case
// failed, passed otherwise.
func (r *Report) State() fm.TestState {
	if r == nil || len(r.Cases) == 0 {
		return fm.Inconclusive
	}
	for _, c := range r.Cases {
		if !c.Passed {
			return fm.Failed
		}
	}
	return fm.Passed
}

// Merge combines outcomes from several reports with AND semantics.
func Merge(all ...Outcomes) Outcomes {
	out := Outcomes{}
	for _, o := range all {
		for name, passed := range o {
			record(out, name, passed)
		}
	}
	return out
}

func record(out Outcomes, name string, passed bool) {
	if prev, ok := out[name]; ok {
		passed = prev && passed
	}
	out[name] = passed
}
