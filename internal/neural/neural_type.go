package neural

import "strings"

// NeuralType is the unit of type exchange between ports: an ordered axis
// sequence, an element type and an optional flag.
//
// A nil axis sequence places no constraint on rank; an empty, non-nil one
// describes a scalar. A NeuralType whose element type is Void is the
// unconstrained sentinel: it compares Unchecked against everything. The zero
// NeuralType is unconstrained.
//
// NeuralType values are immutable and safe for concurrent use.
type NeuralType struct {
	axes     []AxisType
	elements ElementType
	optional bool
}

// Option configures a NeuralType at construction.
type Option func(*NeuralType)

// Optional marks the type's port as optional: the value may be omitted or
// passed as nil.
func Optional() Option {
	return func(t *NeuralType) { t.optional = true }
}

// New builds a NeuralType. The axes slice is copied.
//
// Example:
//
//	logits := neural.New(neural.Axes("B", "D"), neural.Logits())
//	mask := neural.New(neural.Axes("B", "T"), neural.Mask(), neural.Optional())
func New(axes []AxisType, elements ElementType, opts ...Option) NeuralType {
	t := NeuralType{axes: cloneAxes(axes), elements: elements}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Unconstrained returns the sentinel type that accepts and matches anything.
func Unconstrained() NeuralType {
	return NeuralType{elements: Void()}
}

func cloneAxes(axes []AxisType) []AxisType {
	if axes == nil {
		return nil
	}
	out := make([]AxisType, len(axes))
	copy(out, axes)
	return out
}

// Axes returns a copy of the axis sequence; nil means no axis constraint.
func (t NeuralType) Axes() []AxisType {
	return cloneAxes(t.axes)
}

// HasAxes reports whether the type constrains its axes.
func (t NeuralType) HasAxes() bool {
	return t.axes != nil
}

// Elements returns the element type.
func (t NeuralType) Elements() ElementType {
	return t.elements
}

// IsOptional reports whether the port may be left without a value.
func (t NeuralType) IsOptional() bool {
	return t.optional
}

// IsUnconstrained reports whether t is the unconstrained sentinel.
func (t NeuralType) IsUnconstrained() bool {
	return t.elements.Kind() == KindVoid
}

// Rank returns the number of tensor dimensions the type expects (list axes
// excluded), or -1 when the axes are unconstrained.
func (t NeuralType) Rank() int {
	if t.axes == nil {
		return -1
	}
	n := 0
	for _, a := range t.axes {
		if !a.IsList {
			n++
		}
	}
	return n
}

// ListDepth returns the number of list axes, i.e. how many container levels
// wrap each tensor.
func (t NeuralType) ListDepth() int {
	n := 0
	for _, a := range t.axes {
		if a.IsList {
			n++
		}
	}
	return n
}

// Compare relates t (the actual type) to expected. See Compare.
func (t NeuralType) Compare(expected NeuralType) ComparisonResult {
	return Compare(t, expected)
}

// String renders the type in the literal form accepted by Parse, e.g.
// "(B,T,D):Logits" or "*:Element?".
func (t NeuralType) String() string {
	var b strings.Builder
	if t.axes == nil {
		b.WriteString("*")
	} else {
		b.WriteByte('(')
		for i, a := range t.axes {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(a.String())
		}
		b.WriteByte(')')
	}
	b.WriteByte(':')
	b.WriteString(t.elements.String())
	if t.optional {
		b.WriteByte('?')
	}
	return b.String()
}
