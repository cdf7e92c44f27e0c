// Package typecheck implements checked calls: entry points whose arguments
// are validated against, and whose results are annotated with, the neural
// types an object declares through the Typing capability.
package typecheck

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/born-ml/neuraltype/internal/neural"
)

// Func is a callable entry point. Positional values arrive in args, values
// bound to named ports in kwargs.
type Func func(args []Value, kwargs Kw) (Value, error)

// WrapOption configures a checked entry point.
type WrapOption func(*entry)

type entry struct {
	params []string
}

// Params declares the keyword parameters the entry point accepts. While
// checking is enabled, a call passing any other name fails with ErrBinding,
// and so does a call made while the object's active contract declares a
// required input port the entry point has no parameter for. An object whose
// contract depends on its mode thereby rejects calls to the entry point of
// another mode.
func Params(names ...string) WrapOption {
	return func(e *entry) { e.params = names }
}

// Wrap returns a checked version of fn, an entry point of obj.
//
// Each call of the returned Func:
//
//  1. fails with ErrContractMissing if obj does not implement Typing
//  2. calls fn directly if checking is disabled (see SetEnabled)
//  3. binds and validates the arguments against obj.InputTypes()
//  4. calls fn; its error, if any, is returned unchanged
//  5. binds the result to obj.OutputTypes() and attaches the declared types
//
// Both port maps are read once per call, before fn runs, so a call sees a
// single consistent contract even if fn switches the object's mode.
//
// Example:
//
//	type AddOne struct{}
//
//	func (AddOne) InputTypes() typecheck.Ports {
//	    return typecheck.Ports{typecheck.P("x", neural.MustParse("B:Element"))}
//	}
//	func (AddOne) OutputTypes() typecheck.Ports {
//	    return typecheck.Ports{typecheck.P("y", neural.MustParse("B:Element"))}
//	}
//
//	call := typecheck.Wrap(AddOne{}, addOne)
//	y, err := call(nil, typecheck.Kw{"x": typecheck.Of(x)})
func Wrap(obj any, fn Func, opts ...WrapOption) Func {
	var e entry
	for _, opt := range opts {
		opt(&e)
	}

	return func(args []Value, kwargs Kw) (Value, error) {
		typed, ok := obj.(Typing)
		if !ok {
			return nil, &CheckError{Kind: ErrContractMissing, Details: fmt.Sprintf("%T", obj)}
		}
		if !Enabled() {
			return fn(args, kwargs)
		}

		inputs, outputs := typed.InputTypes(), typed.OutputTypes()
		if err := bindInputs(inputs, args, kwargs); err != nil {
			return nil, err
		}
		if err := e.bindParams(inputs, kwargs); err != nil {
			return nil, err
		}

		result, err := fn(args, kwargs)
		if err != nil {
			return nil, err
		}
		return bindOutputs(outputs, result)
	}
}

func (e *entry) bindParams(inputs Ports, kwargs Kw) error {
	if e.params == nil {
		return nil
	}
	for _, name := range sortedKeys(kwargs) {
		if !slices.Contains(e.params, name) {
			return bindingErr(name, "entry point has no such parameter; it takes %s", strings.Join(e.params, ", "))
		}
	}
	for _, p := range inputs {
		if !p.Type.IsOptional() && !slices.Contains(e.params, p.Name) {
			return bindingErr(p.Name, "active contract requires this port but the entry point takes %s",
				strings.Join(e.params, ", "))
		}
	}
	return nil
}

// bindInputs validates a call's arguments against the declared inputs.
// With no declared inputs everything passes through, positional arguments
// included; this keeps output-only contracts usable for functions such as
// batch collation whose raw inputs carry no semantic type.
func bindInputs(inputs Ports, args []Value, kwargs Kw) error {
	if !inputs.Declared() {
		return nil
	}
	if err := inputs.Validate(); err != nil {
		return bindingErr("", "input ports: %v", err)
	}
	if len(args) > 0 {
		return bindingErr("", "%d positional argument(s) given; declared input ports %s must be bound by name",
			len(args), strings.Join(inputs.Names(), ", "))
	}

	for _, name := range sortedKeys(kwargs) {
		if _, ok := inputs.Lookup(name); !ok {
			return bindingErr(name, "no such input port; declared ports are %s", strings.Join(inputs.Names(), ", "))
		}
	}

	for _, p := range inputs {
		v, supplied := kwargs[p.Name]
		if !supplied || isNil(v) {
			if p.Type.IsOptional() {
				continue
			}
			return bindingErr(p.Name, "required input port has no value")
		}
		if err := validateValue(p.Name, p.Type, v, nil); err != nil {
			return err
		}
	}
	return nil
}

// validateValue checks a supplied value, recursing into containers. The
// length of path is the number of container levels above v.
func validateValue(port string, want neural.NeuralType, v Value, path []int) error {
	if want.IsUnconstrained() {
		return nil
	}

	if leaf, ok := v.(*Leaf); ok {
		if leaf == nil {
			return mismatchErr(port, path, "nil element")
		}
		if problem := leafShapeProblem(want, leaf, len(path)); problem != "" {
			return mismatchErr(port, path, "%s", problem)
		}
		if got, ok := leaf.NeuralType(); ok {
			if r := neural.Compare(got, want); !r.Accepted() {
				return mismatchErr(port, path, "got %s, want %s (%s)", got, want, r)
			}
		}
		return nil
	}

	children, ok := elems(v)
	if !ok {
		return mismatchErr(port, path, "unsupported value %T", v)
	}
	if d := want.ListDepth(); d > 0 && len(path) >= d {
		return mismatchErr(port, path, "nesting deeper than the %d list axes of %s", d, want)
	}
	for i, child := range children {
		if err := validateValue(port, want, child, appendPath(path, i)); err != nil {
			return err
		}
	}
	return nil
}

// leafShapeProblem describes how leaf, found depth containers deep, breaks
// the rank, fixed axis sizes or list depth implied by want's axes. It returns "" if it
// does not.
func leafShapeProblem(want neural.NeuralType, leaf *Leaf, depth int) string {
	if d := want.ListDepth(); d > 0 && depth != d {
		return fmt.Sprintf("tensor at nesting depth %d, %s expects %d", depth, want, d)
	}
	rank := want.Rank()
	if rank < 0 {
		return ""
	}
	if leaf.tensor == nil {
		return "leaf holds no tensor"
	}
	shape := leaf.tensor.Shape()
	if got := shape.Rank(); got != rank {
		return fmt.Sprintf("tensor of rank %d (shape %v), %s expects rank %d",
			got, []int(shape), want, rank)
	}
	dim := 0
	for _, a := range want.Axes() {
		if a.IsList {
			continue
		}
		if a.Size > 0 && shape[dim] != a.Size {
			return fmt.Sprintf("dimension %d of shape %v is %d, %s expects %d",
				dim, []int(shape), shape[dim], want, a.Size)
		}
		dim++
	}
	return ""
}

// bindOutputs attaches the declared output types to result.
//
// A single port takes the whole result, annotated at every leaf; a Tuple
// result must then hold exactly one value. N ports take a Tuple or List of
// exactly N values, value i annotated with port i.
func bindOutputs(outputs Ports, result Value) (Value, error) {
	if !outputs.Declared() {
		return result, nil
	}
	if err := outputs.Validate(); err != nil {
		return nil, bindingErr("", "output ports: %v", err)
	}

	if len(outputs) == 1 {
		if tuple, ok := result.(Tuple); ok {
			if len(tuple) != 1 {
				return nil, bindingErr(outputs[0].Name, "1 output port declared but %d values returned", len(tuple))
			}
			v, err := annotatePort(outputs[0], tuple[0])
			if err != nil {
				return nil, err
			}
			return Tuple{v}, nil
		}
		return annotatePort(outputs[0], result)
	}

	values, ok := elems(result)
	if !ok {
		return nil, bindingErr("", "%d output ports declared (%s) but the result is %s",
			len(outputs), strings.Join(outputs.Names(), ", "), describe(result))
	}
	if len(values) != len(outputs) {
		return nil, bindingErr("", "%d output ports declared (%s) but %d values returned",
			len(outputs), strings.Join(outputs.Names(), ", "), len(values))
	}

	out := make([]Value, len(values))
	for i, p := range outputs {
		v, err := annotatePort(p, values[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return rebuild(result, out), nil
}

func annotatePort(p Port, v Value) (Value, error) {
	if isNil(v) {
		if p.Type.IsOptional() {
			return v, nil
		}
		return nil, bindingErr(p.Name, "output port has no value")
	}
	return annotate(p.Name, p.Type, v, nil)
}

// annotate rebuilds v with t attached to every leaf, preserving nesting.
func annotate(port string, t neural.NeuralType, v Value, path []int) (Value, error) {
	if leaf, ok := v.(*Leaf); ok {
		if leaf == nil {
			return nil, &CheckError{Kind: ErrBinding, Port: port, Path: path, Details: "nil element"}
		}
		if !t.IsUnconstrained() {
			if problem := leafShapeProblem(t, leaf, len(path)); problem != "" {
				return nil, &CheckError{Kind: ErrBinding, Port: port, Path: path, Details: problem}
			}
		}
		return leaf.WithType(t), nil
	}

	children, ok := elems(v)
	if !ok {
		return nil, bindingErr(port, "unsupported result %T", v)
	}
	out := make([]Value, len(children))
	for i, child := range children {
		a, err := annotate(port, t, child, appendPath(path, i))
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return rebuild(v, out), nil
}

func isNil(v Value) bool {
	if v == nil {
		return true
	}
	l, ok := v.(*Leaf)
	return ok && l == nil
}

func describe(v Value) string {
	switch v := v.(type) {
	case nil:
		return "empty"
	case List, Tuple:
		return "a container"
	case *Leaf:
		if v == nil {
			return "empty"
		}
		return "a single tensor"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func appendPath(path []int, i int) []int {
	return append(path[:len(path):len(path)], i)
}

func sortedKeys(kw Kw) []string {
	return slices.Sorted(maps.Keys(kw))
}
