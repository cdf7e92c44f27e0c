package nn

import (
	"fmt"

	"github.com/born-ml/neuraltype/internal/neural"
	"github.com/born-ml/neuraltype/internal/tensor"
	"github.com/born-ml/neuraltype/internal/typecheck"
)

// Linear implements a fully connected layer: y = x @ W.T + b.
//
// Ports:
//   - input  x: (B, D=in):Element
//   - output y: (B, D=out):<output element type, Element by default>
//
// Weights use Xavier initialization, biases start at zero.
//
// Example:
//
//	layer := nn.NewLinear(784, 10, nn.WithOutputType(neural.Logits()))
//	y, err := layer.Forward(typecheck.Kw{"x": typecheck.Of(x)})
type Linear struct {
	inFeatures  int
	outFeatures int
	outputType  neural.ElementType
	weight      *Parameter // [out_features, in_features]
	bias        *Parameter // [out_features]
	forward     typecheck.Func
}

// LinearOption configures a Linear layer.
type LinearOption func(*Linear)

// WithOutputType sets the element type the layer declares for its output,
// e.g. neural.Logits() for a classification head.
func WithOutputType(e neural.ElementType) LinearOption {
	return func(l *Linear) { l.outputType = e }
}

// NewLinear creates a new Linear layer.
func NewLinear(inFeatures, outFeatures int, opts ...LinearOption) *Linear {
	l := &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		outputType:  neural.Element(),
		weight:      NewParameter("weight", Xavier(inFeatures, outFeatures)),
		bias:        NewParameter("bias", tensor.Zeros(tensor.Shape{outFeatures})),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.forward = typecheck.Wrap(l, l.compute, typecheck.Params("x"))
	return l
}

// InputTypes implements typecheck.Typing.
func (l *Linear) InputTypes() typecheck.Ports {
	return typecheck.Ports{typecheck.P("x", neural.New(batchAxes(l.inFeatures), neural.Element()))}
}

// OutputTypes implements typecheck.Typing.
func (l *Linear) OutputTypes() typecheck.Ports {
	return typecheck.Ports{typecheck.P("y", neural.New(batchAxes(l.outFeatures), l.outputType))}
}

// Forward computes y from x.
func (l *Linear) Forward(kwargs typecheck.Kw) (typecheck.Value, error) {
	return l.forward(nil, kwargs)
}

func (l *Linear) compute(_ []typecheck.Value, kw typecheck.Kw) (typecheck.Value, error) {
	x, err := leafTensor(kw, "x")
	if err != nil {
		return nil, err
	}
	if s := x.Shape(); s.Rank() != 2 || s[1] != l.inFeatures {
		return nil, fmt.Errorf("linear: expected input [batch, %d], got %v", l.inFeatures, s)
	}

	wT, err := tensor.Transpose2D(l.weight.Tensor())
	if err != nil {
		return nil, err
	}
	y, err := tensor.MatMul(x, wT)
	if err != nil {
		return nil, fmt.Errorf("linear: %w", err)
	}
	if y, err = tensor.Add(y, l.bias.Tensor()); err != nil {
		return nil, fmt.Errorf("linear: %w", err)
	}
	return typecheck.Of(y), nil
}

// Parameters returns the weight and bias.
func (l *Linear) Parameters() []*Parameter {
	return []*Parameter{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *Parameter {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear) Bias() *Parameter {
	return l.bias
}
