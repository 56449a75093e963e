// Package featureide reads FeatureIDE feature model documents into [fm.Tree]
// values.
//
// A FeatureIDE model is an XML document whose root element (usually
// featureModel) contains a struct section. The struct section holds exactly one
// top-level grouping element, the product line's root feature, and each
// element below it is a feature:
//
//	<featureModel>
//	  <struct>
//	    <and abstract="true" mandatory="true" name="todoapp">
//	      <feature mandatory="true" name="AddTodo"/>
//	      <feature name="Priorities"/>
//	    </and>
//	  </struct>
//	</featureModel>
//
// The abstract and mandatory attributes are true only when their value is the
// string "true". Elements without a name attribute, such as description or
// graphics annotations, are not features and are skipped. An empty struct
// section is a valid, empty model.
//
// This package is the only one that handles the raw document; everything
// downstream works on the parsed tree.
package featureide

import (
	"bytes"
	"encoding/xml"
	"os"

	"github.com/matzehuels/aplet/pkg/errors"
	"github.com/matzehuels/aplet/pkg/fm"
)

const structElement = "struct"

// element is a generic XML element: name, attributes and child elements in
// document order.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []element  `xml:",any"`
}

func (e *element) attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (e *element) flag(name string) bool {
	v, _ := e.attr(name)
	return v == "true"
}

func (e *element) child(local string) *element {
	for i := range e.Children {
		if e.Children[i].XMLName.Local == local {
			return &e.Children[i]
		}
	}
	return nil
}

// Parse builds a feature tree from a FeatureIDE document.
//
// It returns an error with code [errors.ErrCodeMalformedModel] when data is
// empty, is not well-formed XML, or has no struct section. A struct section
// without features yields a tree with a nil root.
func Parse(data []byte) (*fm.Tree, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New(errors.ErrCodeMalformedModel, "feature model is empty")
	}

	var doc element
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedModel, err, "feature model is not valid XML")
	}

	st := doc.child(structElement)
	if st == nil {
		return nil, errors.New(errors.ErrCodeMalformedModel, "feature model <%s> has no <%s> section", doc.XMLName.Local, structElement)
	}

	for i := range st.Children {
		if _, ok := st.Children[i].attr("name"); ok {
			return fm.NewTree(buildFeature(&st.Children[i])), nil
		}
	}
	return &fm.Tree{}, nil
}

// ParseFile reads and parses the document at path. A missing file is
// reported with code [errors.ErrCodeFileNotFound].
func ParseFile(path string) (*fm.Tree, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "feature model %s does not exist", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedModel, err, "read feature model %s", path)
	}
	tree, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedModel, err, "parse %s", path)
	}
	return tree, nil
}

func buildFeature(e *element) *fm.Feature {
	name, _ := e.attr("name")
	f := fm.NewFeature(name, fm.WithKind(fm.Kind(e.XMLName.Local)))
	f.Abstract = e.flag("abstract")
	f.Mandatory = e.flag("mandatory")

	for i := range e.Children {
		c := &e.Children[i]
		if _, ok := c.attr("name"); !ok {
			continue
		}
		f.AddChild(buildFeature(c))
	}
	return f
}
