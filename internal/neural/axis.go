// Package neural implements semantic tensor types: axis kinds, the element
// type lattice, NeuralType values and the comparison that decides whether a
// value of one type may be supplied where another is expected.
package neural

import (
	"fmt"
	"strconv"
	"strings"
)

// AxisKind is the semantic role of one tensor dimension.
type AxisKind int

// Axis kinds. Any matches every other kind during comparison.
const (
	Batch AxisKind = iota
	Time
	Dimension
	Channel
	Width
	Height
	Sequence
	FlowGroup
	Singleton
	Any
)

var axisKindNames = [...]struct{ short, long string }{
	Batch:     {"B", "BATCH"},
	Time:      {"T", "TIME"},
	Dimension: {"D", "DIMENSION"},
	Channel:   {"C", "CHANNEL"},
	Width:     {"W", "WIDTH"},
	Height:    {"H", "HEIGHT"},
	Sequence:  {"S", "SEQUENCE"},
	FlowGroup: {"FG", "FLOWGROUP"},
	Singleton: {"1", "SINGLETON"},
	Any:       {"ANY", "ANY"},
}

// String returns the short label of the kind ("B", "T", ...).
func (k AxisKind) String() string {
	if k < 0 || int(k) >= len(axisKindNames) {
		return fmt.Sprintf("AxisKind(%d)", int(k))
	}
	return axisKindNames[k].short
}

// Matches reports whether two kinds are interchangeable at one axis position.
func (k AxisKind) Matches(other AxisKind) bool {
	return k == other || k == Any || other == Any
}

// ParseAxisKind resolves a short ("B") or long ("batch") kind name,
// case-insensitively.
func ParseAxisKind(s string) (AxisKind, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	for k, n := range axisKindNames {
		if u == n.short || u == n.long {
			return AxisKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown axis kind %q", s)
}

// AxisType describes one axis of a NeuralType.
//
// Size is the fixed extent of the axis, or 0 when the extent is variable.
// IsList marks an axis that is represented by a container level around the
// tensors rather than by a tensor dimension.
type AxisType struct {
	Kind   AxisKind
	Size   int
	IsList bool
}

// Axis returns a variable-extent tensor axis of the given kind.
func Axis(kind AxisKind) AxisType {
	return AxisType{Kind: kind}
}

// String renders the axis in literal form: "B", "D=4", "[T]".
func (a AxisType) String() string {
	s := a.Kind.String()
	if a.Size > 0 {
		s += "=" + strconv.Itoa(a.Size)
	}
	if a.IsList {
		s = "[" + s + "]"
	}
	return s
}

// compatible reports whether a (actual) can stand at the position of e
// (expected).
func (a AxisType) compatible(e AxisType) bool {
	if !a.Kind.Matches(e.Kind) || a.IsList != e.IsList {
		return false
	}
	return a.Size == 0 || e.Size == 0 || a.Size == e.Size
}

// Axes builds an axis sequence from kind labels, e.g. Axes("B", "T", "D").
// A label may carry a fixed size ("D=4") or be bracketed to mark a list
// axis ("[B]"). Unknown labels panic; use ParseAxes for untrusted input.
//
// Axes() with no labels describes a scalar. It is not the same as a nil
// axis sequence, which places no constraint on rank.
func Axes(labels ...string) []AxisType {
	axes := make([]AxisType, 0, len(labels))
	for _, l := range labels {
		a, err := parseAxis(l)
		if err != nil {
			panic(err)
		}
		axes = append(axes, a)
	}
	return axes
}

// ParseAxes is the error-returning form of Axes.
func ParseAxes(labels ...string) ([]AxisType, error) {
	axes := make([]AxisType, 0, len(labels))
	for _, l := range labels {
		a, err := parseAxis(l)
		if err != nil {
			return nil, err
		}
		axes = append(axes, a)
	}
	return axes, nil
}

func parseAxis(label string) (AxisType, error) {
	s := strings.TrimSpace(label)
	var a AxisType
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		a.IsList = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	if name, size, ok := strings.Cut(s, "="); ok {
		n, err := strconv.Atoi(strings.TrimSpace(size))
		if err != nil || n <= 0 {
			return AxisType{}, fmt.Errorf("axis %q: invalid size %q", label, size)
		}
		a.Size = n
		s = name
	}

	kind, err := ParseAxisKind(s)
	if err != nil {
		return AxisType{}, fmt.Errorf("axis %q: %w", label, err)
	}
	a.Kind = kind
	return a, nil
}
