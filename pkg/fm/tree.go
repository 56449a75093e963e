package fm

// Tree is a feature model. Root is nil for an empty model; every method
// handles that case.
type Tree struct {
	Root *Feature
}

// NewTree creates a tree rooted at root. A non-nil root is detached from any
// previous parent.
func NewTree(root *Feature) *Tree {
	if root != nil {
		root.Detach()
	}
	return &Tree{Root: root}
}

// Empty reports whether the tree has no root feature.
func (t *Tree) Empty() bool { return t.Root == nil }

// RootName returns the root feature's name, or "" for an empty tree.
func (t *Tree) RootName() string {
	if t.Root == nil {
		return ""
	}
	return t.Root.Name
}

// Walk visits every feature reachable from the root in pre-order.
func (t *Tree) Walk(fn func(*Feature) bool) {
	if t.Root == nil {
		return
	}
	t.Root.Walk(fn)
}

// Features returns every feature reachable from the root in pre-order.
func (t *Tree) Features() []*Feature {
	var out []*Feature
	t.Walk(func(f *Feature) bool {
		out = append(out, f)
		return true
	})
	return out
}

// Count returns the number of features reachable from the root.
func (t *Tree) Count() int {
	n := 0
	t.Walk(func(*Feature) bool {
		n++
		return true
	})
	return n
}

// Find returns the first feature named name in pre-order, or nil.
func (t *Tree) Find(name string) *Feature {
	var found *Feature
	t.Walk(func(f *Feature) bool {
		if found != nil {
			return false
		}
		if f.Name == name {
			found = f
			return false
		}
		return true
	})
	return found
}

// Copy returns an independent deep copy of the tree.
func (t *Tree) Copy() *Tree {
	if t.Root == nil {
		return &Tree{}
	}
	return &Tree{Root: t.Root.clone()}
}

// OptionalFeatures returns the concrete, non-mandatory features in pre-order.
// Abstract features are skipped but their descendants are searched.
// The result is a fresh slice and is empty for an empty tree.
func (t *Tree) OptionalFeatures() []*Feature {
	out := []*Feature{}
	t.Walk(func(f *Feature) bool {
		if f.IsOptional() {
			out = append(out, f)
		}
		return true
	})
	return out
}

// Trim detaches every concrete feature whose name is not in selected, along
// with its subtree. Abstract features are kept regardless of selection.
//
// Every feature of the original tree is evaluated on its own name, including
// features below a parent that has already been removed. The root has no
// parent and is never detached.
func (t *Tree) Trim(selected []string) {
	keep := make(map[string]struct{}, len(selected))
	for _, name := range selected {
		keep[name] = struct{}{}
	}
	// Decide over a snapshot so detaching never hides a node from the pass.
	for _, f := range t.Features() {
		if f.Abstract {
			continue
		}
		if _, ok := keep[f.Name]; !ok {
			f.Detach()
		}
	}
}

// CopyTrimmed returns a deep copy of the tree trimmed to selected.
// The receiver is never modified.
func (t *Tree) CopyTrimmed(selected []string) *Tree {
	cp := t.Copy()
	cp.Trim(selected)
	return cp
}

// Names returns the names of features in order.
func Names(features []*Feature) []string {
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = f.Name
	}
	return names
}
