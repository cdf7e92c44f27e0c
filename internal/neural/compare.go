package neural

import "fmt"

// ComparisonResult is the outcome of comparing an actual type against an
// expected one.
type ComparisonResult int

const (
	// Same: identical axes and element type.
	Same ComparisonResult = iota
	// Greater: actual is more specific than expected; safe to substitute.
	Greater
	// Less: actual is more general than expected.
	Less
	// SameTypeIncompatibleParams: same element kind, different fields.
	SameTypeIncompatibleParams
	// Incompatible: axes or element kinds do not relate.
	Incompatible
	// Unchecked: one side is unconstrained.
	Unchecked
)

var comparisonNames = [...]string{
	Same:                       "SAME",
	Greater:                    "GREATER",
	Less:                       "LESS",
	SameTypeIncompatibleParams: "SAME_TYPE_INCOMPATIBLE_PARAMS",
	Incompatible:               "INCOMPATIBLE",
	Unchecked:                  "UNCHECKED",
}

func (r ComparisonResult) String() string {
	if r < 0 || int(r) >= len(comparisonNames) {
		return fmt.Sprintf("ComparisonResult(%d)", int(r))
	}
	return comparisonNames[r]
}

// Accepted reports whether a value with this result may be bound to an
// input port. Only Same, Greater and Unchecked are accepted.
func (r ComparisonResult) Accepted() bool {
	return r == Same || r == Greater || r == Unchecked
}

// Compare decides how actual relates to expected:
//
//  1. either side unconstrained: Unchecked
//  2. both sides constrain axes: ranks must agree and every position must
//     match (Any is a wildcard kind), otherwise Incompatible
//  3. element types are related through the lattice
//
// Neither operand is modified.
func Compare(actual, expected NeuralType) ComparisonResult {
	if actual.IsUnconstrained() || expected.IsUnconstrained() {
		return Unchecked
	}

	if actual.axes != nil && expected.axes != nil {
		if len(actual.axes) != len(expected.axes) {
			return Incompatible
		}
		for i := range actual.axes {
			if !actual.axes[i].compatible(expected.axes[i]) {
				return Incompatible
			}
		}
	}

	return actual.elements.Compare(expected.elements)
}
