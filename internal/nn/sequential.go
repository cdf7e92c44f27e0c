package nn

import (
	"fmt"

	"github.com/born-ml/neuraltype/internal/typecheck"
)

// Sequential chains modules: each module's output is bound to the single
// input port of the next one.
//
// Construction checks every stage boundary with typecheck.Connect; each
// Forward call is checked again at runtime by the stages themselves.
//
// The chain's own contract is the first module's inputs and the last
// module's outputs.
type Sequential struct {
	modules []Module
	forward typecheck.Func
}

// NewSequential creates a new Sequential container.
//
// Returns an error if a module other than the first does not declare
// exactly one input port, or if two adjacent modules do not connect.
func NewSequential(modules ...Module) (*Sequential, error) {
	if len(modules) == 0 {
		return nil, fmt.Errorf("sequential: no modules")
	}
	for i := 1; i < len(modules); i++ {
		if n := len(modules[i].InputTypes()); n != 1 {
			return nil, fmt.Errorf("sequential: module %d (%T) declares %d input ports, want 1", i, modules[i], n)
		}
		if err := typecheck.Connect(modules[i-1], modules[i]); err != nil {
			return nil, fmt.Errorf("sequential: module %d (%T) -> %d (%T): %w", i-1, modules[i-1], i, modules[i], err)
		}
	}

	s := &Sequential{modules: modules}
	s.forward = typecheck.Wrap(s, s.run)
	return s, nil
}

// InputTypes implements typecheck.Typing.
func (s *Sequential) InputTypes() typecheck.Ports {
	return s.modules[0].InputTypes()
}

// OutputTypes implements typecheck.Typing.
func (s *Sequential) OutputTypes() typecheck.Ports {
	return s.modules[len(s.modules)-1].OutputTypes()
}

// Forward applies all modules in sequence.
func (s *Sequential) Forward(kwargs typecheck.Kw) (typecheck.Value, error) {
	return s.forward(nil, kwargs)
}

func (s *Sequential) run(_ []typecheck.Value, kw typecheck.Kw) (typecheck.Value, error) {
	out, err := s.modules[0].Forward(kw)
	if err != nil {
		return nil, fmt.Errorf("sequential: module 0: %w", err)
	}
	for i, m := range s.modules[1:] {
		port := m.InputTypes()[0].Name
		if out, err = m.Forward(typecheck.Kw{port: out}); err != nil {
			return nil, fmt.Errorf("sequential: module %d: %w", i+1, err)
		}
	}
	return out, nil
}

// Parameters returns all parameters of all modules.
func (s *Sequential) Parameters() []*Parameter {
	var params []*Parameter
	for _, m := range s.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}

// Len returns the number of modules.
func (s *Sequential) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential) Module(index int) Module {
	if index < 0 || index >= len(s.modules) {
		panic("Sequential.Module: index out of bounds")
	}
	return s.modules[index]
}
