// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package typecheck provides checked calls: entry points whose inputs are
// validated against, and whose outputs are annotated with, the neural types
// an object declares.
//
// An object opts in by implementing Typing:
//
//	type Decoder struct{ /* ... */ }
//
//	func (d *Decoder) InputTypes() typecheck.Ports {
//	    return typecheck.Ports{
//	        typecheck.P("encoded", neural.MustParse("(B,T,D):AcousticEncodedRepresentation")),
//	    }
//	}
//
//	func (d *Decoder) OutputTypes() typecheck.Ports {
//	    return typecheck.Ports{typecheck.P("logprobs", neural.MustParse("(B,T,D):Logprobs"))}
//	}
//
// and routes its entry points through Wrap:
//
//	d.forward = typecheck.Wrap(d, d.decode)
//	out, err := d.forward(nil, typecheck.Kw{"encoded": typecheck.Of(x)})
//
// Checking is process wide and can be switched off with SetEnabled(false).
package typecheck

import (
	"io"

	"github.com/born-ml/neuraltype/internal/neural"
	"github.com/born-ml/neuraltype/internal/typecheck"
)

// NeuralType is the semantic type of a tensor.
type NeuralType = neural.NeuralType

// Values

// Tensor is anything with a shape.
type Tensor = typecheck.Tensor

// Value is a tensor or a nested structure of tensors.
type Value = typecheck.Value

// Leaf holds a single tensor and, once checked, its neural type.
type Leaf = typecheck.Leaf

// List is a nested structure of values.
type List = typecheck.List

// Tuple is a multi-value result, one value per output port.
type Tuple = typecheck.Tuple

// Kw binds values to port names.
type Kw = typecheck.Kw

// Of wraps an untyped tensor.
func Of(t Tensor) *Leaf { return typecheck.Of(t) }

// Typed wraps a tensor already carrying a neural type.
func Typed(t Tensor, nt NeuralType) *Leaf { return typecheck.Typed(t, nt) }

// ListOf builds a List.
func ListOf(vs ...Value) List { return typecheck.ListOf(vs...) }

// TupleOf builds a Tuple.
func TupleOf(vs ...Value) Tuple { return typecheck.TupleOf(vs...) }

// Annotation returns the neural type attached to a leaf value.
func Annotation(v Value) (NeuralType, bool) { return typecheck.Annotation(v) }

// TensorOf returns the tensor of a leaf value.
func TensorOf(v Value) (Tensor, bool) { return typecheck.TensorOf(v) }

// Walk visits every leaf of v with its path.
func Walk(v Value, fn func(path []int, leaf *Leaf)) { typecheck.Walk(v, fn) }

// Ports

// Typing is the capability of declaring input and output ports.
type Typing = typecheck.Typing

// Base is an embeddable Typing that declares nothing.
type Base = typecheck.Base

// Port is a named, typed input or output.
type Port = typecheck.Port

// Ports is an ordered port map.
type Ports = typecheck.Ports

// P creates a Port.
func P(name string, t NeuralType) Port { return typecheck.P(name, t) }

// Checked calls

// Func is a callable entry point.
type Func = typecheck.Func

// WrapOption configures a checked entry point.
type WrapOption = typecheck.WrapOption

// Wrap returns a checked version of fn, an entry point of obj.
func Wrap(obj any, fn Func, opts ...WrapOption) Func { return typecheck.Wrap(obj, fn, opts...) }

// Params declares the keyword parameters an entry point accepts.
func Params(names ...string) WrapOption { return typecheck.Params(names...) }

// Connect checks that upstream's outputs can feed downstream's inputs.
func Connect(upstream, downstream Typing) error { return typecheck.Connect(upstream, downstream) }

// SetEnabled switches checking on or off for the whole process.
func SetEnabled(enabled bool) { typecheck.SetEnabled(enabled) }

// Enabled reports whether checking is on.
func Enabled() bool { return typecheck.Enabled() }

// Errors

// Error kinds, matched with errors.Is.
var (
	ErrContractMissing = typecheck.ErrContractMissing
	ErrBinding         = typecheck.ErrBinding
	ErrTypeMismatch    = typecheck.ErrTypeMismatch
)

// CheckError describes a failed check.
type CheckError = typecheck.CheckError

// Contracts

// Contract is a declarative Typing, optionally with modes.
type Contract = typecheck.Contract

// Catalog holds contracts and pipelines loaded from YAML.
type Catalog = typecheck.Catalog

// NewContract creates a contract.
func NewContract(name string, inputs, outputs Ports) *Contract {
	return typecheck.NewContract(name, inputs, outputs)
}

// LoadContracts reads a YAML catalog.
func LoadContracts(r io.Reader) (*Catalog, error) { return typecheck.LoadContracts(r) }

// LoadContractFile reads a YAML catalog from a file.
func LoadContractFile(path string) (*Catalog, error) { return typecheck.LoadContractFile(path) }
