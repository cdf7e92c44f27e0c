package typecheck

import (
	"github.com/born-ml/neuraltype/internal/neural"
	"github.com/born-ml/neuraltype/internal/tensor"
)

// Tensor is the view of a tensor the checker needs: its shape.
// *tensor.RawTensor satisfies it.
type Tensor interface {
	Shape() tensor.Shape
}

// Value is an argument or result of a checked call: a *Leaf holding one
// tensor, a List nesting further values, or a Tuple returning several
// values at once. A nil Value means "no value".
type Value interface {
	isValue()
}

// Leaf is a tensor with an optional attached NeuralType.
//
// The attached type is metadata fixed at construction; it never alters the
// tensor. WithType returns a new Leaf sharing the same tensor.
type Leaf struct {
	tensor Tensor
	typ    neural.NeuralType
	typed  bool
}

// Of wraps a raw tensor without an attached type.
func Of(t Tensor) *Leaf {
	return &Leaf{tensor: t}
}

// Typed wraps t with an attached type.
func Typed(t Tensor, nt neural.NeuralType) *Leaf {
	return &Leaf{tensor: t, typ: nt, typed: true}
}

func (*Leaf) isValue() {}

// Tensor returns the wrapped tensor.
func (l *Leaf) Tensor() Tensor {
	return l.tensor
}

// NeuralType returns the attached type, if any.
func (l *Leaf) NeuralType() (neural.NeuralType, bool) {
	return l.typ, l.typed
}

// WithType returns a copy of l carrying nt.
func (l *Leaf) WithType(nt neural.NeuralType) *Leaf {
	return Typed(l.tensor, nt)
}

// List is an ordered container of values. Lists nest to any depth.
type List []Value

func (List) isValue() {}

// ListOf builds a List.
func ListOf(vs ...Value) List {
	return List(vs)
}

// Tuple is a multi-value result: element i is bound to output port i.
// Nested inside other values it behaves like a List.
type Tuple []Value

func (Tuple) isValue() {}

// TupleOf builds a Tuple.
func TupleOf(vs ...Value) Tuple {
	return Tuple(vs)
}

// elems returns the children of a container value.
func elems(v Value) ([]Value, bool) {
	switch v := v.(type) {
	case List:
		return v, true
	case Tuple:
		return v, true
	}
	return nil, false
}

// rebuild returns a container of the same kind as like holding vs.
func rebuild(like Value, vs []Value) Value {
	if _, ok := like.(Tuple); ok {
		return Tuple(vs)
	}
	return List(vs)
}

// Kw holds values bound to input ports by name.
type Kw = map[string]Value

// Annotation returns the type attached to v when v is a typed *Leaf.
func Annotation(v Value) (neural.NeuralType, bool) {
	l, ok := v.(*Leaf)
	if !ok || l == nil {
		return neural.NeuralType{}, false
	}
	return l.NeuralType()
}

// TensorOf returns the tensor of v when v is a *Leaf.
func TensorOf(v Value) (Tensor, bool) {
	l, ok := v.(*Leaf)
	if !ok || l == nil {
		return nil, false
	}
	return l.tensor, true
}

// Walk calls fn for every leaf in v, depth first, with the index path
// leading to it. Nil values are skipped.
func Walk(v Value, fn func(path []int, leaf *Leaf)) {
	walk(v, nil, fn)
}

func walk(v Value, path []int, fn func([]int, *Leaf)) {
	if l, ok := v.(*Leaf); ok {
		if l != nil {
			fn(path, l)
		}
		return
	}
	children, _ := elems(v)
	for i, child := range children {
		walk(child, appendPath(path, i), fn)
	}
}
