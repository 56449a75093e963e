package fm

// TestState is the three-valued test status of a feature or scenario, plus
// Unset for values that have not been computed.
//
// States are ordered Unset < Inconclusive < Passed < Failed, and [Combine]
// takes the maximum, which makes aggregation associative, commutative and
// independent of child order.
type TestState int

const (
	Unset TestState = iota
	Inconclusive
	Passed
	Failed
)

// String returns the lowercase state name.
func (s TestState) String() string {
	switch s {
	case Inconclusive:
		return "inconclusive"
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return "unset"
	}
}

// ParseTestState is the inverse of [TestState.String]. Unknown names map to
// Unset and false.
func ParseTestState(s string) (TestState, bool) {
	switch s {
	case "inconclusive":
		return Inconclusive, true
	case "passed":
		return Passed, true
	case "failed":
		return Failed, true
	case "unset", "":
		return Unset, true
	}
	return Unset, false
}

// Combine folds two states: failed wins over passed, passed over inconclusive.
func Combine(a, b TestState) TestState {
	return max(a, b)
}

// Resolved returns s, or Inconclusive when s is Unset.
func (s TestState) Resolved() TestState {
	if s == Unset {
		return Inconclusive
	}
	return s
}

// StateOf maps a scenario outcome to a state.
func StateOf(passed bool) TestState {
	if passed {
		return Passed
	}
	return Failed
}

// AttachScenarios replaces every feature's scenario attachments with the
// names listed under the feature's name in groups. Features without an entry
// end up with no attachments.
func (t *Tree) AttachScenarios(groups map[string][]string) {
	t.Walk(func(f *Feature) bool {
		names := groups[f.Name]
		f.Scenarios = make([]Scenario, len(names))
		for i, name := range names {
			f.Scenarios[i] = Scenario{Name: name}
		}
		return true
	})
}

// ComputeStatuses folds scenario outcomes into a status for every feature and
// returns the root's status. A feature's status combines its children's
// statuses with the outcomes of its attached scenarios; scenarios absent from
// outcomes contribute nothing. Anything left undecided is Inconclusive, as is
// the result for an empty tree.
func (t *Tree) ComputeStatuses(outcomes map[string]bool) TestState {
	if t.Root == nil {
		return Inconclusive
	}
	return computeStatus(t.Root, outcomes)
}

func computeStatus(f *Feature, outcomes map[string]bool) TestState {
	state := Unset
	for _, c := range f.children {
		state = Combine(state, computeStatus(c, outcomes))
	}
	for i := range f.Scenarios {
		s := &f.Scenarios[i]
		s.Status = Inconclusive
		if passed, ok := outcomes[s.Name]; ok {
			s.Status = StateOf(passed)
			state = Combine(state, s.Status)
		}
	}
	f.Status = state.Resolved()
	return f.Status
}
