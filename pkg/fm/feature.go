package fm

import "slices"

// Kind is the structural element a feature was declared with in its source
// document. It is informational; no algorithm in this package depends on it.
type Kind string

const (
	KindFeature Kind = "feature" // leaf feature
	KindAnd     Kind = "and"     // all mandatory children are required
	KindOr      Kind = "or"      // at least one child is required
	KindAlt     Kind = "alt"     // exactly one child is required
)

// Scenario is a behavioral test case attached to a feature.
type Scenario struct {
	Name   string
	Status TestState // Unset until ComputeStatuses runs
}

// Feature is a node in a feature tree.
//
// Name, Abstract, Mandatory and Kind describe the feature itself. Scenarios and
// Status are annotations written by [Tree.AttachScenarios] and
// [Tree.ComputeStatuses]. The parent link and the children are managed through
// [Feature.AddChild] and [Feature.Detach] so that ownership stays exclusive.
type Feature struct {
	Name      string
	Abstract  bool
	Mandatory bool
	Kind      Kind

	Scenarios []Scenario
	Status    TestState

	parent   *Feature
	children []*Feature
}

// Option configures a feature created by [NewFeature].
type Option func(*Feature)

// WithAbstract marks the feature as abstract.
func WithAbstract() Option { return func(f *Feature) { f.Abstract = true } }

// WithMandatory marks the feature as mandatory.
func WithMandatory() Option { return func(f *Feature) { f.Mandatory = true } }

// WithKind sets the structural kind.
func WithKind(k Kind) Option { return func(f *Feature) { f.Kind = k } }

// NewFeature creates a detached concrete, optional feature of kind [KindFeature].
func NewFeature(name string, opts ...Option) *Feature {
	f := &Feature{Name: name, Kind: KindFeature}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Parent returns the owning feature, or nil for a root or detached feature.
func (f *Feature) Parent() *Feature { return f.parent }

// Children returns the owned children in document order.
// The returned slice is a copy; reordering it does not affect the tree.
func (f *Feature) Children() []*Feature { return slices.Clone(f.children) }

// ChildCount returns the number of direct children.
func (f *Feature) ChildCount() int { return len(f.children) }

// AddChild appends c to f's children and makes f its parent. If c already has
// a parent it is detached from it first. AddChild returns c.
func (f *Feature) AddChild(c *Feature) *Feature {
	if c.parent != nil {
		c.Detach()
	}
	c.parent = f
	f.children = append(f.children, c)
	return c
}

// Detach removes f (and with it its whole subtree) from its parent.
// Detaching a root or an already detached feature does nothing.
func (f *Feature) Detach() {
	if f.parent == nil {
		return
	}
	p := f.parent
	p.children = slices.DeleteFunc(p.children, func(c *Feature) bool { return c == f })
	f.parent = nil
}

// IsRoot reports whether f has no parent.
func (f *Feature) IsRoot() bool { return f.parent == nil }

// IsOptional reports whether f is concrete and not mandatory.
func (f *Feature) IsOptional() bool { return !f.Abstract && !f.Mandatory }

// IsAlwaysIncluded reports whether f is present in every product that
// includes its parent group: concrete and mandatory.
func (f *Feature) IsAlwaysIncluded() bool { return !f.Abstract && f.Mandatory }

// ScenarioNames returns the names of the attached scenarios in attachment order.
func (f *Feature) ScenarioNames() []string {
	names := make([]string, len(f.Scenarios))
	for i, s := range f.Scenarios {
		names[i] = s.Name
	}
	return names
}

// Walk visits f and its descendants in pre-order. If fn returns false the
// children of that feature are skipped.
func (f *Feature) Walk(fn func(*Feature) bool) {
	if !fn(f) {
		return
	}
	for _, c := range f.children {
		c.Walk(fn)
	}
}

// clone deep-copies f and its subtree. The copy is detached from any parent.
func (f *Feature) clone() *Feature {
	cp := &Feature{
		Name:      f.Name,
		Abstract:  f.Abstract,
		Mandatory: f.Mandatory,
		Kind:      f.Kind,
		Scenarios: slices.Clone(f.Scenarios),
		Status:    f.Status,
	}
	if len(f.children) > 0 {
		cp.children = make([]*Feature, len(f.children))
		for i, c := range f.children {
			cc := c.clone()
			cc.parent = cp
			cp.children[i] = cc
		}
	}
	return cp
}
