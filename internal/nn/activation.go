package nn

import (
	"github.com/born-ml/neuraltype/internal/neural"
	"github.com/born-ml/neuraltype/internal/tensor"
	"github.com/born-ml/neuraltype/internal/typecheck"
)

// ReLU applies f(x) = max(0, x) element-wise.
//
// Ports: x (B, D):Element -> y (B, D):Element.
type ReLU struct {
	forward typecheck.Func
}

// NewReLU creates a new ReLU activation module.
func NewReLU() *ReLU {
	r := &ReLU{}
	r.forward = typecheck.Wrap(r, func(_ []typecheck.Value, kw typecheck.Kw) (typecheck.Value, error) {
		x, err := leafTensor(kw, "x")
		if err != nil {
			return nil, err
		}
		return typecheck.Of(tensor.ReLU(x)), nil
	}, typecheck.Params("x"))
	return r
}

// InputTypes implements typecheck.Typing.
func (r *ReLU) InputTypes() typecheck.Ports {
	return typecheck.Ports{typecheck.P("x", neural.New(neural.Axes("B", "D"), neural.Element()))}
}

// OutputTypes implements typecheck.Typing.
func (r *ReLU) OutputTypes() typecheck.Ports {
	return typecheck.Ports{typecheck.P("y", neural.New(neural.Axes("B", "D"), neural.Element()))}
}

// Forward applies the activation.
func (r *ReLU) Forward(kwargs typecheck.Kw) (typecheck.Value, error) {
	return r.forward(nil, kwargs)
}

// Parameters returns an empty slice.
func (r *ReLU) Parameters() []*Parameter {
	return []*Parameter{}
}

// LogSoftmax turns logits into log-probabilities over the last axis.
//
// Ports: logits (B, D):Logits -> logprobs (B, D):Logprobs.
type LogSoftmax struct {
	forward typecheck.Func
}

// NewLogSoftmax creates a new LogSoftmax module.
func NewLogSoftmax() *LogSoftmax {
	m := &LogSoftmax{}
	m.forward = typecheck.Wrap(m, func(_ []typecheck.Value, kw typecheck.Kw) (typecheck.Value, error) {
		x, err := leafTensor(kw, "logits")
		if err != nil {
			return nil, err
		}
		return typecheck.Of(tensor.LogSoftmax(x)), nil
	}, typecheck.Params("logits"))
	return m
}

// InputTypes implements typecheck.Typing.
func (m *LogSoftmax) InputTypes() typecheck.Ports {
	return typecheck.Ports{typecheck.P("logits", neural.New(neural.Axes("B", "D"), neural.Logits()))}
}

// OutputTypes implements typecheck.Typing.
func (m *LogSoftmax) OutputTypes() typecheck.Ports {
	return typecheck.Ports{typecheck.P("logprobs", neural.New(neural.Axes("B", "D"), neural.Logprobs()))}
}

// Forward applies log-softmax.
func (m *LogSoftmax) Forward(kwargs typecheck.Kw) (typecheck.Value, error) {
	return m.forward(nil, kwargs)
}

// Parameters returns an empty slice.
func (m *LogSoftmax) Parameters() []*Parameter {
	return []*Parameter{}
}

// Argmax picks the highest scoring class per batch row.
//
// Ports: logits (B, D):Logits -> labels (B):Labels.
type Argmax struct {
	forward typecheck.Func
}

// NewArgmax creates a new Argmax module.
func NewArgmax() *Argmax {
	m := &Argmax{}
	m.forward = typecheck.Wrap(m, func(_ []typecheck.Value, kw typecheck.Kw) (typecheck.Value, error) {
		x, err := leafTensor(kw, "logits")
		if err != nil {
			return nil, err
		}
		return typecheck.Of(tensor.Argmax(x)), nil
	}, typecheck.Params("logits"))
	return m
}

// InputTypes implements typecheck.Typing.
func (m *Argmax) InputTypes() typecheck.Ports {
	return typecheck.Ports{typecheck.P("logits", neural.New(neural.Axes("B", "D"), neural.Logits()))}
}

// OutputTypes implements typecheck.Typing.
func (m *Argmax) OutputTypes() typecheck.Ports {
	return typecheck.Ports{typecheck.P("labels", neural.New(neural.Axes("B"), neural.Labels()))}
}

// Forward computes the labels.
func (m *Argmax) Forward(kwargs typecheck.Kw) (typecheck.Value, error) {
	return m.forward(nil, kwargs)
}

// Parameters returns an empty slice.
func (m *Argmax) Parameters() []*Parameter {
	return []*Parameter{}
}
