// Package nn implements typed neural network modules.
//
// Every module declares its ports through the typecheck.Typing capability
// and runs Forward through a checked call, so modules composed into a
// Sequential are validated at each stage boundary:
//
//	model, err := nn.NewSequential(
//	    nn.NewLinear(784, 128),
//	    nn.NewReLU(),
//	    nn.NewLinear(128, 10, nn.WithOutputType(neural.Logits())),
//	    nn.NewLogSoftmax(),
//	)
package nn

import (
	"github.com/born-ml/neuraltype/internal/neural"
	"github.com/born-ml/neuraltype/internal/tensor"
	"github.com/born-ml/neuraltype/internal/typecheck"
)

// Module is the interface of all typed NN components.
type Module interface {
	typecheck.Typing

	// Forward computes the module's outputs from values bound to its input
	// ports by name. Arguments and results are checked against the ports
	// the module declares at the time of the call.
	Forward(kwargs typecheck.Kw) (typecheck.Value, error)

	// Parameters returns all trainable parameters of this module, or an
	// empty slice for modules without any.
	Parameters() []*Parameter
}

func batchAxes(features int) []neural.AxisType {
	return []neural.AxisType{
		neural.Axis(neural.Batch),
		{Kind: neural.Dimension, Size: features},
	}
}

// leafTensor extracts the float tensor bound to a port.
func leafTensor(kw typecheck.Kw, port string) (*tensor.RawTensor, error) {
	t, ok := typecheck.TensorOf(kw[port])
	if !ok {
		return nil, &typecheck.CheckError{Kind: typecheck.ErrBinding, Port: port, Details: "expected a single tensor"}
	}
	raw, ok := t.(*tensor.RawTensor)
	if !ok {
		return nil, &typecheck.CheckError{Kind: typecheck.ErrBinding, Port: port, Details: "unsupported tensor implementation"}
	}
	return raw, nil
}
