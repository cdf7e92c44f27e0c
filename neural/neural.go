// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package neural defines neural types: the semantic type of a tensor,
// made of its axes, an element type and an optional flag, plus the
// comparison between two of them.
//
// Example:
//
//	logits := neural.New(neural.Axes("B", "D"), neural.Logits())
//	lit := neural.MustParse("(B,D):Logits")
//	neural.Compare(lit, logits) // neural.Same
//
//	seq := neural.MustParse("(B,T,D):EncodedRepresentation")
//	acoustic := neural.MustParse("(B,T,D):AcousticEncodedRepresentation")
//	neural.Compare(acoustic, seq) // neural.Greater
package neural

import (
	"github.com/born-ml/neuraltype/internal/neural"
)

// NeuralType is the semantic type of a tensor.
type NeuralType = neural.NeuralType

// Option configures a NeuralType.
type Option = neural.Option

// New creates a NeuralType. Nil axes leave the axes unconstrained, empty
// axes describe a scalar.
func New(axes []AxisType, elem ElementType, opts ...Option) NeuralType {
	return neural.New(axes, elem, opts...)
}

// Unconstrained returns a NeuralType that accepts anything.
func Unconstrained() NeuralType { return neural.Unconstrained() }

// Optional marks a port as optional.
func Optional() Option { return neural.Optional() }

// Parse parses a type literal such as "(B,T,D=64):Logits?".
func Parse(literal string) (NeuralType, error) { return neural.Parse(literal) }

// MustParse is like Parse but panics on error.
func MustParse(literal string) NeuralType { return neural.MustParse(literal) }

// Comparison

// ComparisonResult is the outcome of comparing two neural types.
type ComparisonResult = neural.ComparisonResult

// Comparison results.
const (
	Same                       = neural.Same
	Greater                    = neural.Greater
	Less                       = neural.Less
	SameTypeIncompatibleParams = neural.SameTypeIncompatibleParams
	Incompatible               = neural.Incompatible
	Unchecked                  = neural.Unchecked
)

// Compare compares actual against expected.
func Compare(actual, expected NeuralType) ComparisonResult {
	return neural.Compare(actual, expected)
}

// Axes

// AxisKind is the semantic meaning of an axis.
type AxisKind = neural.AxisKind

// AxisType describes one axis.
type AxisType = neural.AxisType

// Axis kinds.
const (
	Batch     = neural.Batch
	Time      = neural.Time
	Dimension = neural.Dimension
	Channel   = neural.Channel
	Width     = neural.Width
	Height    = neural.Height
	Sequence  = neural.Sequence
	FlowGroup = neural.FlowGroup
	Singleton = neural.Singleton
	Any       = neural.Any
)

// Axis returns an AxisType of the given kind.
func Axis(kind AxisKind) AxisType { return neural.Axis(kind) }

// Axes builds axes from labels such as "B", "D=64" or "[T]".
func Axes(labels ...string) []AxisType { return neural.Axes(labels...) }

// ParseAxes is like Axes but returns an error on unknown labels.
func ParseAxes(labels ...string) ([]AxisType, error) { return neural.ParseAxes(labels...) }

// Elements

// ElementKind is a node of the element type hierarchy.
type ElementKind = neural.ElementKind

// ElementType is an element kind with its parameters.
type ElementType = neural.ElementType

// NewElementKind registers a kind below parent.
func NewElementKind(name string, parent *ElementKind) *ElementKind {
	return neural.NewElementKind(name, parent)
}

// LookupElementKind finds a registered kind by name.
func LookupElementKind(name string) (*ElementKind, bool) {
	return neural.LookupElementKind(name)
}

// NewElementType creates an element type with fields.
func NewElementType(kind *ElementKind, fields map[string]string) ElementType {
	return neural.NewElementType(kind, fields)
}

// Element returns the root element type.
func Element() ElementType { return neural.Element() }

// Void returns the element type that disables checking.
func Void() ElementType { return neural.Void() }

// Logits returns the Logits element type.
func Logits() ElementType { return neural.Logits() }

// Logprobs returns the Logprobs element type.
func Logprobs() ElementType { return neural.Logprobs() }

// Probs returns the Probs element type.
func Probs() ElementType { return neural.Probs() }

// Labels returns the Labels element type.
func Labels() ElementType { return neural.Labels() }

// Loss returns the Loss element type.
func Loss() ElementType { return neural.Loss() }

// Lengths returns the Lengths element type.
func Lengths() ElementType { return neural.Lengths() }

// Mask returns the Mask element type.
func Mask() ElementType { return neural.Mask() }

// AudioSignal returns the AudioSignal element type at the given sampling
// frequency, or unparameterized if freq is 0.
func AudioSignal(freq int) ElementType { return neural.AudioSignal(freq) }

// ChannelType returns the Channel element type.
func ChannelType() ElementType { return neural.ChannelType() }

// Index returns the Index element type.
func Index() ElementType { return neural.Index() }

// Predictions returns the Predictions element type.
func Predictions() ElementType { return neural.Predictions() }

// RegressionValues returns the RegressionValues element type.
func RegressionValues() ElementType { return neural.RegressionValues() }

// CategoricalValues returns the CategoricalValues element type.
func CategoricalValues() ElementType { return neural.CategoricalValues() }

// EncodedRepresentation returns the EncodedRepresentation element type.
func EncodedRepresentation() ElementType { return neural.EncodedRepresentation() }

// AcousticEncodedRepresentation returns the AcousticEncodedRepresentation element type.
func AcousticEncodedRepresentation() ElementType { return neural.AcousticEncodedRepresentation() }

// Spectrogram returns the Spectrogram element type.
func Spectrogram() ElementType { return neural.Spectrogram() }

// MelSpectrogram returns the MelSpectrogram element type.
func MelSpectrogram() ElementType { return neural.MelSpectrogram() }

// MFCCSpectrogram returns the MFCCSpectrogram element type.
func MFCCSpectrogram() ElementType { return neural.MFCCSpectrogram() }
