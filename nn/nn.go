// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides typed neural network layers.
//
// Every module declares its ports and checks each Forward call against
// them. Sequential verifies at construction that adjacent modules connect:
//
//	model, err := nn.NewSequential(
//	    nn.NewLinear(784, 128),
//	    nn.NewReLU(),
//	    nn.NewLinear(128, 10, nn.WithOutputType(neural.Logits())),
//	    nn.NewLogSoftmax(),
//	)
//	if err != nil {
//	    // e.g. a ReLU feeding LogSoftmax: Element is not Logits
//	}
//	out, err := model.Forward(typecheck.Kw{"x": typecheck.Of(x)})
package nn

import (
	"github.com/born-ml/neuraltype/internal/neural"
	"github.com/born-ml/neuraltype/internal/nn"
	"github.com/born-ml/neuraltype/internal/tensor"
)

// Module is the interface of all typed NN components.
type Module = nn.Module

// Parameter is a named trainable tensor.
type Parameter = nn.Parameter

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter(name string, t *tensor.RawTensor) *Parameter {
	return nn.NewParameter(name, t)
}

// Xavier returns a [fanOut, fanIn] Glorot-uniform tensor.
func Xavier(fanIn, fanOut int) *tensor.RawTensor { return nn.Xavier(fanIn, fanOut) }

// Layers

// Linear represents a fully connected (dense) layer.
type Linear = nn.Linear

// LinearOption configures a Linear layer.
type LinearOption = nn.LinearOption

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	layer := nn.NewLinear(784, 128)
func NewLinear(inFeatures, outFeatures int, opts ...LinearOption) *Linear {
	return nn.NewLinear(inFeatures, outFeatures, opts...)
}

// WithOutputType sets the element type a Linear layer declares for its output.
func WithOutputType(e neural.ElementType) LinearOption { return nn.WithOutputType(e) }

// Activations

// ReLU applies max(0, x) element-wise.
type ReLU = nn.ReLU

// NewReLU creates a ReLU module.
func NewReLU() *ReLU { return nn.NewReLU() }

// LogSoftmax turns logits into log-probabilities.
type LogSoftmax = nn.LogSoftmax

// NewLogSoftmax creates a LogSoftmax module.
func NewLogSoftmax() *LogSoftmax { return nn.NewLogSoftmax() }

// Argmax turns logits into labels.
type Argmax = nn.Argmax

// NewArgmax creates an Argmax module.
func NewArgmax() *Argmax { return nn.NewArgmax() }

// Containers

// Sequential chains modules.
type Sequential = nn.Sequential

// NewSequential creates a Sequential, checking every stage boundary.
func NewSequential(modules ...Module) (*Sequential, error) { return nn.NewSequential(modules...) }

// Heads

// Classifier is a linear classification head with train, eval and infer modes.
type Classifier = nn.Classifier

// Mode selects a Classifier contract.
type Mode = nn.Mode

// Classifier modes.
const (
	ModeTrain = nn.ModeTrain
	ModeEval  = nn.ModeEval
	ModeInfer = nn.ModeInfer
)

// NewClassifier creates a classifier in ModeInfer.
func NewClassifier(inFeatures, classes int) *Classifier { return nn.NewClassifier(inFeatures, classes) }

// ParseMode resolves a mode name.
func ParseMode(s string) (Mode, error) { return nn.ParseMode(s) }

// Checkpoints

// StateDict returns the module's parameters keyed "<index>.<name>".
func StateDict(m Module) map[string]*tensor.RawTensor { return nn.StateDict(m) }

// Save writes the module's parameters and ports to a .born file.
func Save(path string, m Module) error { return nn.Save(path, m) }

// Load restores parameters saved by Save, provided the module still
// declares the same ports.
func Load(path string, m Module) error { return nn.Load(path, m) }
