package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/born-ml/neuraltype/internal/tensor"
	"github.com/born-ml/neuraltype/internal/typecheck"
)

// Checkpoint is a state dictionary together with the ports of the module it
// belongs to.
type Checkpoint struct {
	ModelType string
	Inputs    typecheck.Ports
	Outputs   typecheck.Ports
	Tensors   map[string]*tensor.RawTensor
	Metadata  map[string]string
}

// NewCheckpoint records the current ports of obj with the given tensors.
func NewCheckpoint(obj typecheck.Typing, tensors map[string]*tensor.RawTensor) *Checkpoint {
	return &Checkpoint{
		ModelType: strings.TrimPrefix(fmt.Sprintf("%T", obj), "*"),
		Inputs:    obj.InputTypes(),
		Outputs:   obj.OutputTypes(),
		Tensors:   tensors,
	}
}

// WriteTo writes the checkpoint in .born format. Tensors are written in
// name order.
func (c *Checkpoint) WriteTo(w io.Writer) (int64, error) {
	names := make([]string, 0, len(c.Tensors))
	for name := range c.Tensors {
		if err := ValidateTensorName(name); err != nil {
			return 0, err
		}
		names = append(names, name)
	}
	slices.Sort(names)

	var data bytes.Buffer
	metas := make([]TensorMeta, 0, len(names))
	for _, name := range names {
		raw := c.Tensors[name]
		metas = append(metas, TensorMeta{
			Name:   name,
			DType:  raw.DType().String(),
			Shape:  raw.Shape().Clone(),
			Offset: int64(data.Len()),
			Size:   int64(raw.ByteSize()),
		})
		data.Write(raw.Data())
	}

	header := Header{
		FormatVersion: FormatVersion,
		ModelType:     c.ModelType,
		Inputs:        portsToMeta(c.Inputs),
		Outputs:       portsToMeta(c.Outputs),
		Tensors:       metas,
		Metadata:      c.Metadata,
		Checksum:      ComputeChecksum(data.Bytes()),
	}
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal header: %w", err)
	}

	var out bytes.Buffer
	out.WriteString(MagicBytes)
	_ = binary.Write(&out, binary.LittleEndian, uint32(FormatVersion))
	_ = binary.Write(&out, binary.LittleEndian, uint64(len(headerJSON)))
	out.Write(headerJSON)
	out.Write(make([]byte, padding(int64(fixedHeaderSize+len(headerJSON)))))
	out.Write(data.Bytes())

	return out.WriteTo(w)
}

// Save writes the checkpoint to path.
func Save(path string, c *Checkpoint) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err := c.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func padding(pos int64) int64 {
	return (HeaderAlignment - pos%HeaderAlignment) % HeaderAlignment
}
