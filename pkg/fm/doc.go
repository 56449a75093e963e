// Package fm provides the feature model engine: an ordered tree of product-line
// features together with the algorithms that query, trim, and annotate it.
//
// # Overview
//
// A feature model describes the configuration space of a product line. Every
// [Feature] is either abstract (a structural grouping that is never toggled by a
// product) or concrete, and either mandatory or optional. Concrete features that
// are not mandatory are the optional features: the ones a product configuration
// can switch on or off.
//
// A [Tree] owns its features. Each feature owns its children in document order
// and holds a single parent link, so the structure is acyclic and connected by
// construction:
//
//	root := fm.NewFeature("todoapp", fm.WithAbstract(), fm.WithMandatory())
//	root.AddChild(fm.NewFeature("AddTodo", fm.WithMandatory()))
//	root.AddChild(fm.NewFeature("Priorities"))
//	tree := fm.NewTree(root)
//
// Trees are usually produced by the featureide parser rather than built by hand.
//
// # Queries
//
// [Tree.OptionalFeatures] returns the optional features in pre-order: a feature
// is appended before its children are visited. Abstract features never appear
// in the result, but their descendants are still searched.
//
// # Trimming
//
// [Tree.Trim] removes every concrete feature that a product does not select,
// together with its subtree. Decisions are made per feature over a snapshot of
// the original tree, so a feature under a removed parent is still evaluated on
// its own name. [Tree.CopyTrimmed] trims an independent deep copy and leaves the
// receiver untouched, which makes it safe to keep reading the original tree
// while a product view is derived from it.
//
// # Test Status
//
// [Tree.AttachScenarios] associates behavioral scenarios with features by name
// and [Tree.ComputeStatuses] folds scenario outcomes bottom-up into a
// [TestState] per feature. States form a monoid under [Combine] with
// [Failed] absorbing, then [Passed], then [Inconclusive]:
//
//	tree.AttachScenarios(map[string][]string{"AddTodo": {"Add one-word todo"}})
//	state := tree.ComputeStatuses(map[string]bool{"Add one-word todo": true})
//	// state == fm.Passed
//
// Missing outcomes and missing groupings are never errors; they fold to
// [Inconclusive]. Both passes overwrite earlier results, so running them again
// with the same inputs yields the same tree.
//
// # Concurrency
//
// Trees are not safe for concurrent mutation. The engine performs no I/O and
// keeps no references across calls. Copies share nothing with their source, so
// concurrent readers of the original are unaffected by work on a copy.
package fm
