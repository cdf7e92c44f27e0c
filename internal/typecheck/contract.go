package typecheck

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/neuraltype/internal/neural"
)

// Contract is a declarative Typing implementation: a named pair of port
// maps, optionally replaced by per-mode pairs. Wrap a plain function with a
// Contract to check it without defining a type.
//
// A Contract is not safe for concurrent SetMode and checked calls.
type Contract struct {
	name  string
	base  contractPorts
	modes map[string]contractPorts
	mode  string
}

type contractPorts struct {
	inputs, outputs Ports
}

// NewContract creates a contract with the given default ports.
func NewContract(name string, inputs, outputs Ports) *Contract {
	return &Contract{name: name, base: contractPorts{inputs, outputs}}
}

// AddMode registers the ports used while mode is active.
func (c *Contract) AddMode(mode string, inputs, outputs Ports) *Contract {
	if c.modes == nil {
		c.modes = map[string]contractPorts{}
	}
	c.modes[mode] = contractPorts{inputs, outputs}
	return c
}

// SetMode activates a registered mode; "" restores the default ports.
func (c *Contract) SetMode(mode string) error {
	if _, ok := c.modes[mode]; !ok && mode != "" {
		return fmt.Errorf("contract %q: unknown mode %q (have %v)", c.name, mode, c.Modes())
	}
	c.mode = mode
	return nil
}

// Mode returns the active mode, "" for the default ports.
func (c *Contract) Mode() string {
	return c.mode
}

// Modes returns the registered mode names, sorted.
func (c *Contract) Modes() []string {
	return slices.Sorted(maps.Keys(c.modes))
}

// Name returns the contract name.
func (c *Contract) Name() string {
	return c.name
}

func (c *Contract) active() contractPorts {
	if c.mode == "" {
		return c.base
	}
	return c.modes[c.mode]
}

// InputTypes implements Typing.
func (c *Contract) InputTypes() Ports {
	return c.active().inputs
}

// OutputTypes implements Typing.
func (c *Contract) OutputTypes() Ports {
	return c.active().outputs
}

// Catalog is a set of contracts and pipelines loaded from a contract file.
type Catalog struct {
	contracts map[string]*Contract
	order     []string
	pipelines map[string][]string
}

// YAML layout of a contract file:
//
//	contracts:
//	  - name: encoder
//	    inputs:
//	      - {name: audio, type: "B,T:AudioSignal(freq=16000)"}
//	    outputs:
//	      - {name: encoded, type: "B,D,T:AcousticEncodedRepresentation"}
//	    modes:
//	      export:
//	        inputs: [...]
//	        outputs: [...]
//	pipelines:
//	  - name: asr
//	    stages: [encoder, decoder]
type contractFile struct {
	Contracts []contractSpec `yaml:"contracts"`
	Pipelines []pipelineSpec `yaml:"pipelines"`
}

type contractSpec struct {
	Name    string              `yaml:"name"`
	Mode    string              `yaml:"mode"`
	Inputs  []portSpec          `yaml:"inputs"`
	Outputs []portSpec          `yaml:"outputs"`
	Modes   map[string]modeSpec `yaml:"modes"`
}

type modeSpec struct {
	Inputs  []portSpec `yaml:"inputs"`
	Outputs []portSpec `yaml:"outputs"`
}

type portSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type pipelineSpec struct {
	Name   string   `yaml:"name"`
	Stages []string `yaml:"stages"`
}

// LoadContracts decodes a YAML contract file.
func LoadContracts(r io.Reader) (*Catalog, error) {
	var file contractFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode contracts: %w", err)
	}

	cat := &Catalog{contracts: map[string]*Contract{}, pipelines: map[string][]string{}}
	for _, spec := range file.Contracts {
		c, err := spec.build()
		if err != nil {
			return nil, err
		}
		if _, dup := cat.contracts[c.name]; dup {
			return nil, fmt.Errorf("contract %q declared twice", c.name)
		}
		cat.contracts[c.name] = c
		cat.order = append(cat.order, c.name)
	}

	for _, p := range file.Pipelines {
		if _, dup := cat.pipelines[p.Name]; dup {
			return nil, fmt.Errorf("pipeline %q declared twice", p.Name)
		}
		for _, stage := range p.Stages {
			if _, ok := cat.contracts[stage]; !ok {
				return nil, fmt.Errorf("pipeline %q: unknown stage %q", p.Name, stage)
			}
		}
		cat.pipelines[p.Name] = slices.Clone(p.Stages)
	}
	return cat, nil
}

// LoadContractFile reads a contract file from disk.
func LoadContractFile(path string) (*Catalog, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path supplied by the caller
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return LoadContracts(f)
}

func (s contractSpec) build() (*Contract, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("contract without a name")
	}
	inputs, err := buildPorts(s.Name, s.Inputs)
	if err != nil {
		return nil, err
	}
	outputs, err := buildPorts(s.Name, s.Outputs)
	if err != nil {
		return nil, err
	}

	c := NewContract(s.Name, inputs, outputs)
	for mode, m := range s.Modes {
		in, err := buildPorts(s.Name+"/"+mode, m.Inputs)
		if err != nil {
			return nil, err
		}
		out, err := buildPorts(s.Name+"/"+mode, m.Outputs)
		if err != nil {
			return nil, err
		}
		c.AddMode(mode, in, out)
	}
	if err := c.SetMode(s.Mode); err != nil {
		return nil, err
	}
	return c, nil
}

func buildPorts(owner string, specs []portSpec) (Ports, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	ports := make(Ports, 0, len(specs))
	for _, s := range specs {
		t, err := neural.Parse(s.Type)
		if err != nil {
			return nil, fmt.Errorf("contract %q port %q: %w", owner, s.Name, err)
		}
		ports = append(ports, P(s.Name, t))
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("contract %q: %w", owner, err)
	}
	return ports, nil
}

// Contract returns a contract by name.
func (c *Catalog) Contract(name string) (*Contract, bool) {
	ct, ok := c.contracts[name]
	return ct, ok
}

// Contracts returns the contracts in file order.
func (c *Catalog) Contracts() []*Contract {
	out := make([]*Contract, len(c.order))
	for i, name := range c.order {
		out[i] = c.contracts[name]
	}
	return out
}

// Pipelines returns the pipeline names, sorted.
func (c *Catalog) Pipelines() []string {
	return slices.Sorted(maps.Keys(c.pipelines))
}

// CheckPipeline connects every pair of consecutive stages of a pipeline.
func (c *Catalog) CheckPipeline(name string) error {
	stages, ok := c.pipelines[name]
	if !ok {
		return fmt.Errorf("unknown pipeline %q", name)
	}
	for i := 1; i < len(stages); i++ {
		if err := Connect(c.contracts[stages[i-1]], c.contracts[stages[i]]); err != nil {
			return fmt.Errorf("pipeline %q: %s -> %s: %w", name, stages[i-1], stages[i], err)
		}
	}
	return nil
}
