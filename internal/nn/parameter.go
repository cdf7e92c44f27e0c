package nn

import (
	"fmt"

	"github.com/born-ml/neuraltype/internal/tensor"
)

// Parameter is a named trainable tensor of a module.
type Parameter struct {
	name   string
	tensor *tensor.RawTensor
}

// NewParameter creates a new parameter.
func NewParameter(name string, t *tensor.RawTensor) *Parameter {
	return &Parameter{name: name, tensor: t}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter) Tensor() *tensor.RawTensor {
	return p.tensor
}

// SetTensor replaces the parameter tensor. The shape must not change.
func (p *Parameter) SetTensor(t *tensor.RawTensor) error {
	if !t.Shape().Equal(p.tensor.Shape()) {
		return fmt.Errorf("parameter %s: shape %v, want %v", p.name, t.Shape(), p.tensor.Shape())
	}
	p.tensor = t
	return nil
}
