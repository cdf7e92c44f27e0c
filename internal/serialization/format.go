package serialization

import (
	"fmt"

	"github.com/born-ml/neuraltype/internal/neural"
	"github.com/born-ml/neuraltype/internal/typecheck"
)

// Format constants.
const (
	MagicBytes      = "BORN"
	FormatVersion   = 3  // v3: typed ports in the header
	HeaderAlignment = 64 // Tensor data starts on a 64-byte boundary
	fixedHeaderSize = 4 + 4 + 8
)

// Header represents the JSON header in a .born file.
type Header struct {
	FormatVersion int               `json:"format_version"`
	ModelType     string            `json:"model_type"`
	Inputs        []PortMeta        `json:"inputs"`
	Outputs       []PortMeta        `json:"outputs"`
	Tensors       []TensorMeta      `json:"tensors"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	Checksum      string            `json:"checksum"` // hex SHA-256 of the data section
}

// PortMeta is a port recorded as its name and type literal.
type PortMeta struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// TensorMeta describes a tensor in the .born file.
type TensorMeta struct {
	Name   string `json:"name"`   // Tensor name (e.g., "0.weight")
	DType  string `json:"dtype"`  // tensor.DataType name (e.g., "float32")
	Shape  []int  `json:"shape"`  // Tensor shape
	Offset int64  `json:"offset"` // Offset in the data section
	Size   int64  `json:"size"`   // Size in bytes
}

func portsToMeta(ports typecheck.Ports) []PortMeta {
	if ports == nil {
		return nil
	}
	out := make([]PortMeta, len(ports))
	for i, p := range ports {
		out[i] = PortMeta{Name: p.Name, Type: p.Type.String()}
	}
	return out
}

func metaToPorts(metas []PortMeta) (typecheck.Ports, error) {
	if metas == nil {
		return nil, nil
	}
	out := make(typecheck.Ports, len(metas))
	for i, m := range metas {
		t, err := neural.Parse(m.Type)
		if err != nil {
			return nil, fmt.Errorf("port %q: %w", m.Name, err)
		}
		out[i] = typecheck.P(m.Name, t)
	}
	return out, nil
}
