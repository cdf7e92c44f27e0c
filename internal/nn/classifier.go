package nn

import (
	"fmt"

	"github.com/born-ml/neuraltype/internal/neural"
	"github.com/born-ml/neuraltype/internal/tensor"
	"github.com/born-ml/neuraltype/internal/typecheck"
)

// Mode selects which contract a Classifier exposes.
type Mode int

// Classifier modes.
const (
	// ModeTrain: x, labels -> loss.
	ModeTrain Mode = iota
	// ModeEval: x -> logits, labels.
	ModeEval
	// ModeInfer: x -> labels.
	ModeInfer
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeTrain:
		return "train"
	case ModeEval:
		return "eval"
	case ModeInfer:
		return "infer"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode resolves a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{ModeTrain, ModeEval, ModeInfer} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q: must be train, eval or infer", s)
}

// Classifier is a linear classification head whose ports follow its mode.
//
//	train: x (B, D=in):Element, labels (B):Labels -> loss ():Loss
//	eval:  x (B, D=in):Element -> logits (B, D=classes):Logits, labels (B):Labels
//	infer: x (B, D=in):Element -> labels (B):Labels
//
// Loss, Evaluate and Infer are the entry points of each mode; calling one
// while another mode is active fails with typecheck.ErrBinding. Forward
// dispatches to the entry point of the active mode.
//
// SetMode must not run concurrently with calls.
type Classifier struct {
	proj    *Linear
	classes int
	mode    Mode

	loss, evaluate, infer typecheck.Func
}

// NewClassifier creates a classifier over inFeatures inputs. It starts in
// ModeInfer.
func NewClassifier(inFeatures, classes int) *Classifier {
	c := &Classifier{
		proj:    NewLinear(inFeatures, classes, WithOutputType(neural.Logits())),
		classes: classes,
		mode:    ModeInfer,
	}
	c.loss = typecheck.Wrap(c, c.computeLoss, typecheck.Params("x", "labels"))
	c.evaluate = typecheck.Wrap(c, c.computeEval, typecheck.Params("x"))
	c.infer = typecheck.Wrap(c, c.computeInfer, typecheck.Params("x"))
	return c
}

// Mode returns the active mode.
func (c *Classifier) Mode() Mode {
	return c.mode
}

// SetMode switches the active contract.
func (c *Classifier) SetMode(m Mode) error {
	if m < ModeTrain || m > ModeInfer {
		return fmt.Errorf("classifier: invalid mode %v", m)
	}
	c.mode = m
	return nil
}

// InputTypes implements typecheck.Typing.
func (c *Classifier) InputTypes() typecheck.Ports {
	x := typecheck.P("x", neural.New(batchAxes(c.proj.inFeatures), neural.Element()))
	if c.mode == ModeTrain {
		return typecheck.Ports{x, typecheck.P("labels", neural.New(neural.Axes("B"), neural.Labels()))}
	}
	return typecheck.Ports{x}
}

// OutputTypes implements typecheck.Typing.
func (c *Classifier) OutputTypes() typecheck.Ports {
	labels := typecheck.P("labels", neural.New(neural.Axes("B"), neural.Labels()))
	switch c.mode {
	case ModeTrain:
		return typecheck.Ports{typecheck.P("loss", neural.New(neural.Axes(), neural.Loss()))}
	case ModeEval:
		return typecheck.Ports{
			typecheck.P("logits", neural.New(batchAxes(c.classes), neural.Logits())),
			labels,
		}
	default:
		return typecheck.Ports{labels}
	}
}

// Forward runs the entry point of the active mode.
func (c *Classifier) Forward(kwargs typecheck.Kw) (typecheck.Value, error) {
	switch c.mode {
	case ModeTrain:
		return c.Loss(kwargs)
	case ModeEval:
		return c.Evaluate(kwargs)
	default:
		return c.Infer(kwargs)
	}
}

// Loss computes the NLL loss of labels under the predicted distribution.
func (c *Classifier) Loss(kwargs typecheck.Kw) (typecheck.Value, error) {
	return c.loss(nil, kwargs)
}

// Evaluate returns the logits and predicted labels as a Tuple.
func (c *Classifier) Evaluate(kwargs typecheck.Kw) (typecheck.Value, error) {
	return c.evaluate(nil, kwargs)
}

// Infer returns the predicted labels.
func (c *Classifier) Infer(kwargs typecheck.Kw) (typecheck.Value, error) {
	return c.infer(nil, kwargs)
}

// Parameters returns the projection parameters.
func (c *Classifier) Parameters() []*Parameter {
	return c.proj.Parameters()
}

func (c *Classifier) logits(kw typecheck.Kw) (*tensor.RawTensor, error) {
	out, err := c.proj.Forward(typecheck.Kw{"x": kw["x"]})
	if err != nil {
		return nil, err
	}
	return leafTensor(typecheck.Kw{"y": out}, "y")
}

func (c *Classifier) computeLoss(_ []typecheck.Value, kw typecheck.Kw) (typecheck.Value, error) {
	logits, err := c.logits(kw)
	if err != nil {
		return nil, err
	}
	targets, err := leafTensor(kw, "labels")
	if err != nil {
		return nil, err
	}
	loss, err := nllLoss(tensor.LogSoftmax(logits), targets)
	if err != nil {
		return nil, err
	}
	return typecheck.Of(loss), nil
}

func (c *Classifier) computeEval(_ []typecheck.Value, kw typecheck.Kw) (typecheck.Value, error) {
	logits, err := c.logits(kw)
	if err != nil {
		return nil, err
	}
	return typecheck.TupleOf(typecheck.Of(logits), typecheck.Of(tensor.Argmax(logits))), nil
}

func (c *Classifier) computeInfer(_ []typecheck.Value, kw typecheck.Kw) (typecheck.Value, error) {
	logits, err := c.logits(kw)
	if err != nil {
		return nil, err
	}
	return typecheck.Of(tensor.Argmax(logits)), nil
}
