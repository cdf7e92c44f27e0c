// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"errors"
	"testing"

	"github.com/born-ml/neuraltype/neural"
	"github.com/born-ml/neuraltype/nn"
	"github.com/born-ml/neuraltype/tensor"
	"github.com/born-ml/neuraltype/typecheck"
)

// TestModuleInterface verifies that concrete types implement Module interface.
func TestModuleInterface(t *testing.T) {
	seq, err := nn.NewSequential(nn.NewLinear(10, 5), nn.NewReLU())
	if err != nil {
		t.Fatalf("NewSequential: %v", err)
	}

	tests := []struct {
		name   string
		module nn.Module
		params int
	}{
		{name: "Linear", module: nn.NewLinear(10, 5), params: 2},
		{name: "Sequential", module: seq, params: 2},
		{name: "Classifier", module: nn.NewClassifier(10, 5), params: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := typecheck.Kw{"x": typecheck.Of(tensor.Randn(tensor.Shape{2, 10}))}
			out, err := tt.module.Forward(input)
			if err != nil {
				t.Fatalf("Forward: %v", err)
			}
			if _, ok := typecheck.Annotation(out); !ok {
				t.Error("Forward result carries no neural type")
			}

			if got := len(tt.module.Parameters()); got != tt.params {
				t.Errorf("Parameters() returned %d, expected %d", got, tt.params)
			}
			if got := len(nn.StateDict(tt.module)); got != tt.params {
				t.Errorf("StateDict() returned %d entries, expected %d", got, tt.params)
			}
		})
	}
}

// TestSequentialTypeError verifies that incompatible stages are rejected
// before anything runs.
func TestSequentialTypeError(t *testing.T) {
	_, err := nn.NewSequential(
		nn.NewLinear(10, 5, nn.WithOutputType(neural.Logits())),
		nn.NewArgmax(),
		nn.NewLinear(5, 2),
	)
	if !errors.Is(err, typecheck.ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}
