package typecheck

import (
	"fmt"

	"github.com/born-ml/neuraltype/internal/neural"
)

// Typing is the capability an object must implement for its entry points to
// be checked. InputTypes and OutputTypes are read afresh on every checked
// call and may depend on mutable object state such as an operating mode.
// A nil or empty Ports means "no contract".
//
// Implementations that change mode concurrently with checked calls must
// provide their own synchronization.
type Typing interface {
	InputTypes() Ports
	OutputTypes() Ports
}

// Base declares no ports. Embed it and override one method to declare only
// inputs or only outputs.
type Base struct{}

// InputTypes returns nil.
func (Base) InputTypes() Ports { return nil }

// OutputTypes returns nil.
func (Base) OutputTypes() Ports { return nil }

// Port is a named slot of a contract.
type Port struct {
	Name string
	Type neural.NeuralType
}

// Ports is an ordered port map. Order matters for outputs: the i-th element
// of a multi-valued result is bound to the i-th port.
type Ports []Port

// P is shorthand for a Port literal.
func P(name string, t neural.NeuralType) Port {
	return Port{Name: name, Type: t}
}

// Declared reports whether the map constrains anything.
func (ps Ports) Declared() bool {
	return len(ps) > 0
}

// Lookup finds a port by name.
func (ps Ports) Lookup(name string) (neural.NeuralType, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p.Type, true
		}
	}
	return neural.NeuralType{}, false
}

// Names returns the port names in declaration order.
func (ps Ports) Names() []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}

// Validate rejects empty or duplicated port names.
func (ps Ports) Validate() error {
	seen := make(map[string]struct{}, len(ps))
	for _, p := range ps {
		if p.Name == "" {
			return fmt.Errorf("empty port name")
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("duplicate port %q", p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}
